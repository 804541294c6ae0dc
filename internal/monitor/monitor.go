// Package monitor implements the check cycle:
// fetch → diff → report → notify → persist.
package monitor

import (
	"context"
	"fmt"
	"time"

	"steamwatch/internal/inventory"
	"steamwatch/internal/storage"
	"steamwatch/pkg/logx"
)

const reportTitle = "Steam inventory changed"

// Fetcher retrieves the current inventory. A non-nil error means "no data"
// and the cycle must skip comparison entirely.
type Fetcher interface {
	Fetch(ctx context.Context) (inventory.Snapshot, inventory.Descriptions, error)
}

// Notifier delivers one rendered report.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

type Config struct {
	SteamID      string
	SnapshotFile string
}

// Monitor holds the one piece of in-memory state the program has: the
// previous snapshot. It is not safe for concurrent use; the scheduler
// guarantees one cycle at a time.
type Monitor struct {
	cfg      Config
	log      logx.Logger
	fetcher  Fetcher
	notifier Notifier
	history  storage.Store // nil when disabled

	prev inventory.Snapshot
}

// New loads the persisted snapshot into memory. An unreadable or corrupt
// snapshot file degrades to first-run behavior (empty previous) with a
// warning rather than failing startup.
func New(cfg Config, fetcher Fetcher, notifier Notifier, history storage.Store, log logx.Logger) *Monitor {
	if log.IsZero() {
		log = logx.Nop()
	}

	prev, err := inventory.LoadSnapshot(cfg.SnapshotFile)
	if err != nil {
		log.Warn("snapshot file unreadable; treating as first run",
			logx.String("path", cfg.SnapshotFile), logx.Err(err))
		prev = inventory.Snapshot{}
	}

	return &Monitor{
		cfg:      cfg,
		log:      log,
		fetcher:  fetcher,
		notifier: notifier,
		history:  history,
		prev:     prev,
	}
}

// Previous exposes the in-memory previous snapshot (for status/tests).
func (m *Monitor) Previous() inventory.Snapshot { return m.prev }

// RunOnce performs one check cycle.
//
// A fetch failure returns an error without touching any state: continuous
// mode logs it and waits for the next cycle, single-shot mode maps it to a
// non-zero exit. Notification and history failures are logged only and
// never block snapshot persistence.
func (m *Monitor) RunOnce(ctx context.Context) error {
	cur, descs, err := m.fetcher.Fetch(ctx)
	if err != nil {
		m.log.Warn("inventory fetch failed; skipping cycle", logx.Err(err))
		return fmt.Errorf("fetch inventory: %w", err)
	}
	m.log.Debug("inventory fetched", logx.Int("items", len(cur)))

	// First run: an empty previous mapping and an absent snapshot file are
	// deliberately the same signal. A legitimately emptied inventory
	// therefore restarts as a first run; known quirk.
	if len(m.prev) == 0 {
		if err := inventory.SaveSnapshot(m.cfg.SnapshotFile, cur); err != nil {
			return fmt.Errorf("persist initial snapshot: %w", err)
		}
		m.prev = cur
		m.log.Info("first run; initial snapshot saved", logx.Int("items", len(cur)))
		return nil
	}

	d := inventory.Diff(cur, m.prev)
	if d.Empty() {
		m.log.Info("no inventory change")
		return nil
	}

	m.log.Info("inventory change detected",
		logx.Int("added", len(d.Added)),
		logx.Int("removed", len(d.Removed)),
		logx.Int("changed", len(d.Changed)),
	)

	now := time.Now()
	body := fmt.Sprintf("<p>⏰ Checked at: %s</p>", now.Format("2006-01-02 15:04:05")) +
		inventory.Render(d, m.prev, descs)

	// Notification loss must not abort the cycle or block persistence.
	if err := m.notifier.Notify(ctx, reportTitle, body); err != nil {
		m.log.Warn("notification failed; continuing", logx.Err(err))
	}

	if m.history != nil {
		e := storage.ChangeEvent{
			At:      now,
			SteamID: m.cfg.SteamID,
			Added:   len(d.Added),
			Removed: len(d.Removed),
			Changed: len(d.Changed),
			Report:  body,
		}
		if err := m.history.AppendChange(ctx, e); err != nil {
			m.log.Warn("history append failed", logx.Err(err))
		}
	}

	if err := inventory.SaveSnapshot(m.cfg.SnapshotFile, cur); err != nil {
		// Keep the old in-memory previous so the next cycle re-detects.
		return fmt.Errorf("persist snapshot: %w", err)
	}
	m.prev = cur
	return nil
}
