package config

import (
	"os"
	"strings"
)

// Environment variable names recognized on top of the config file. These
// exist for single-shot deployments (cron, CI) that configure the monitor
// entirely through the process environment.
const (
	EnvSteamID   = "STEAM_ID"
	EnvPushToken = "PUSH_TOKEN"
)

// ApplyEnvOverrides layers the recognized environment variables over cfg.
// A set variable always wins over the file value.
func ApplyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvSteamID)); v != "" {
		cfg.Steam.SteamID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPushToken)); v != "" {
		cfg.Push.Token = v
	}
}
