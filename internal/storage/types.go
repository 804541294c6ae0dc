package storage

import (
	"errors"
	"time"
)

var ErrDisabled = errors.New("storage disabled")

// Config configures the change-history store.
//
// Driver values:
//   - "file": dependency-free JSONL backend
//   - "sqlite": SQLite database file (optional build tag)
//
// If Driver is empty or "none", history is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // sqlite only; 0 means default
}

// ChangeEvent records one detected inventory change.
// Keep it compact and schema-stable.
type ChangeEvent struct {
	At      time.Time
	SteamID string
	Added   int
	Removed int
	Changed int
	Report  string
}
