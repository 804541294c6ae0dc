package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"steamwatch/pkg/logx"
)

// fileStore is a dependency-free history backend: one append-only JSON
// Lines file. Reads scan the file; fine for the volumes a single-account
// monitor produces.
type fileStore struct {
	log logx.Logger

	mu   sync.Mutex
	path string
	f    *os.File
}

type changeRecord struct {
	At      int64  `json:"at"` // unix milli
	SteamID string `json:"steam_id"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Changed int    `json:"changed"`
	Report  string `json:"report,omitempty"`
}

func openFile(cfg Config, log logx.Logger) (Store, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, errors.New("history.path is required for file driver")
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	if ext := filepath.Ext(path); ext == "" {
		path += ".changes.jsonl"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return &fileStore{log: log, path: path, f: f}, nil
}

func (s *fileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

func (s *fileStore) AppendChange(ctx context.Context, e ChangeEvent) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return errors.New("history file closed")
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	rec := changeRecord{
		At:      e.At.UnixMilli(),
		SteamID: e.SteamID,
		Added:   e.Added,
		Removed: e.Removed,
		Changed: e.Changed,
		Report:  e.Report,
	}
	return json.NewEncoder(s.f).Encode(rec)
}

func (s *fileStore) RecentChanges(ctx context.Context, limit int) ([]ChangeEvent, error) {
	_ = ctx
	if limit <= 0 {
		limit = 20
	}

	s.mu.Lock()
	path := s.path
	s.mu.Unlock()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var all []ChangeEvent
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		var rec changeRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			// Skip torn/corrupt lines rather than fail the whole read.
			s.log.Debug("skipping corrupt history line", logx.Err(err))
			continue
		}
		all = append(all, ChangeEvent{
			At:      time.UnixMilli(rec.At),
			SteamID: rec.SteamID,
			Added:   rec.Added,
			Removed: rec.Removed,
			Changed: rec.Changed,
			Report:  rec.Report,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	// Newest first.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}
