package app

import (
	"strings"
	"time"

	"steamwatch/internal/config"
	"steamwatch/internal/push"
	"steamwatch/internal/steam"
	"steamwatch/internal/storage"
)

// Config mapping between the file/env schema and the component configs.
// Kept separate from the wiring so the validator can reuse it.

func mapSteamConfig(cfg *config.Config) (steam.Config, error) {
	timeout, err := config.ParseDurationOrDefault("steam.fetch_timeout", cfg.Steam.FetchTimeout, 0)
	if err != nil {
		return steam.Config{}, err
	}
	return steam.Config{
		SteamID:   strings.TrimSpace(cfg.Steam.SteamID),
		AppID:     cfg.Steam.AppID,
		ContextID: cfg.Steam.ContextID,
		UserAgent: cfg.Steam.UserAgent,
		Timeout:   timeout,
	}, nil
}

func mapPushConfig(cfg *config.Config) (push.Config, error) {
	timeout, err := config.ParseDurationOrDefault("push.timeout", cfg.Push.Timeout, 0)
	if err != nil {
		return push.Config{}, err
	}
	return push.Config{
		Provider:   cfg.Push.Provider,
		Token:      cfg.Push.Token,
		Timeout:    timeout,
		RatePerSec: cfg.Push.RatePerSec,
		Telegram: push.TelegramConfig{
			Token:  cfg.Push.Telegram.Token,
			ChatID: cfg.Push.Telegram.ChatID,
		},
	}, nil
}

// mapHistoryConfig returns (config, enabled, error). History is opt-in:
// a nil section or an empty driver means disabled.
func mapHistoryConfig(cfg *config.Config) (storage.Config, bool, error) {
	if cfg.History == nil || strings.TrimSpace(cfg.History.Driver) == "" {
		return storage.Config{}, false, nil
	}
	busy, err := config.ParseDurationOrDefault("history.busy_timeout", cfg.History.BusyTimeout, 5*time.Second)
	if err != nil {
		return storage.Config{}, false, err
	}
	return storage.Config{
		Driver:      cfg.History.Driver,
		Path:        cfg.History.Path,
		BusyTimeout: busy,
	}, true, nil
}
