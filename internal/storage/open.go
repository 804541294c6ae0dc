package storage

import (
	"context"
	"errors"
	"strings"

	"steamwatch/pkg/logx"
)

// Store is the minimal persistence API for the change history.
type Store interface {
	AppendChange(ctx context.Context, e ChangeEvent) error
	RecentChanges(ctx context.Context, limit int) ([]ChangeEvent, error)
	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if history is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "none" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver {
	case "file":
		return openFile(cfg, log)
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown history driver: " + driver)
	}
}
