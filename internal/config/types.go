package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Steam   SteamConfig    `json:"steam"`
	Push    PushConfig     `json:"push,omitempty"`
	Monitor MonitorConfig  `json:"monitor,omitempty"`
	Logging LoggingConfig  `json:"logging,omitempty"`
	History *HistoryConfig `json:"history,omitempty"`
}

type SteamConfig struct {
	// SteamID is the 64-bit ID of the account to watch. Required.
	SteamID   string `json:"steam_id"`
	AppID     int    `json:"app_id,omitempty"`     // default 730
	ContextID int    `json:"context_id,omitempty"` // default 2
	UserAgent string `json:"user_agent,omitempty"`
	// FetchTimeout is a Go duration string (e.g. "30s").
	FetchTimeout string `json:"fetch_timeout,omitempty"`
}

type PushConfig struct {
	// Provider selects the transport: pushplus, serverchan, bark, telegram.
	// Empty with a token set means pushplus; empty without a token means
	// console output only.
	Provider string `json:"provider,omitempty"`
	Token    string `json:"token,omitempty"`
	// Timeout is a Go duration string (e.g. "10s").
	Timeout    string             `json:"timeout,omitempty"`
	RatePerSec int                `json:"rate_per_sec,omitempty"`
	Telegram   TelegramPushConfig `json:"telegram,omitempty"`
}

type TelegramPushConfig struct {
	Token  string `json:"token,omitempty"`
	ChatID int64  `json:"chat_id,omitempty"`
}

type MonitorConfig struct {
	// Schedule accepts a cron expression, a Go duration, or HH:MM.
	Schedule     string `json:"schedule,omitempty"` // default "1m"
	SnapshotFile string `json:"snapshot_file,omitempty"`
}

type LoggingConfig struct {
	Level   string      `json:"level,omitempty"`
	Console *bool       `json:"console,omitempty"` // pointer: distinguish omitted from explicit false
	File    LoggingFile `json:"file,omitempty"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// HistoryConfig controls the optional change-history store.
//
// Example:
//
//	"history": { "driver": "file", "path": "./steamwatch_history" }
type HistoryConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

const (
	DefaultSchedule     = "1m"
	DefaultSnapshotFile = "./inventory_data.json"
)

// Default returns the configuration used when no config file exists
// (env-only deployments).
func Default() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Schedule:     DefaultSchedule,
			SnapshotFile: DefaultSnapshotFile,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// ConsoleEnabled resolves the console sink flag; omitted means on.
func (l LoggingConfig) ConsoleEnabled() bool {
	if l.Console == nil {
		return true
	}
	return *l.Console
}

// Validate performs structural checks: required identifier and parseable
// duration fields. Schedule strings are validated by the caller, which
// owns the schedule parser.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Steam.SteamID) == "" {
		return fmt.Errorf("steam.steam_id is required (set it in the config file or the STEAM_ID environment variable)")
	}
	if _, err := ParseDurationField("steam.fetch_timeout", c.Steam.FetchTimeout); err != nil {
		return err
	}
	if _, err := ParseDurationField("push.timeout", c.Push.Timeout); err != nil {
		return err
	}
	if c.History != nil {
		if _, err := ParseDurationField("history.busy_timeout", c.History.BusyTimeout); err != nil {
			return err
		}
	}
	return nil
}
