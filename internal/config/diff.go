package config

import (
	"reflect"
	"sort"
	"strings"

	"steamwatch/pkg/logx"
)

// SummarizeConfigChange returns a compact list of changed sections plus
// safe structured attrs for logging (never includes tokens).
func SummarizeConfigChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}

	changed := make([]string, 0, 5)
	attrs := make([]logx.Field, 0, 12)

	if oldCfg.Steam != newCfg.Steam {
		changed = append(changed, "steam")
		attrs = append(attrs,
			logx.String("steam.steam_id", newCfg.Steam.SteamID),
			logx.Int("steam.app_id", newCfg.Steam.AppID),
			logx.Int("steam.context_id", newCfg.Steam.ContextID),
			logx.String("steam.fetch_timeout", strings.TrimSpace(newCfg.Steam.FetchTimeout)),
		)
	}

	// Push (never log tokens)
	if oldCfg.Push != newCfg.Push {
		changed = append(changed, "push")
		attrs = append(attrs,
			logx.String("push.provider", strings.TrimSpace(newCfg.Push.Provider)),
			logx.Bool("push.token_set", strings.TrimSpace(newCfg.Push.Token) != ""),
			logx.Int("push.rate_per_sec", newCfg.Push.RatePerSec),
			logx.Bool("push.telegram_set", newCfg.Push.Telegram.ChatID != 0),
		)
	}

	if oldCfg.Monitor != newCfg.Monitor {
		changed = append(changed, "monitor")
		attrs = append(attrs,
			logx.String("monitor.schedule", strings.TrimSpace(newCfg.Monitor.Schedule)),
			logx.String("monitor.snapshot_file", strings.TrimSpace(newCfg.Monitor.SnapshotFile)),
		)
	}

	if oldCfg.Logging.Level != newCfg.Logging.Level ||
		oldCfg.Logging.ConsoleEnabled() != newCfg.Logging.ConsoleEnabled() ||
		oldCfg.Logging.File != newCfg.Logging.File {
		changed = append(changed, "logging")
		attrs = append(attrs,
			logx.String("logx.level", newCfg.Logging.Level),
			logx.Bool("logx.console", newCfg.Logging.ConsoleEnabled()),
			logx.Bool("logx.file_enabled", newCfg.Logging.File.Enabled),
		)
	}

	// History: nil means disabled.
	if !reflect.DeepEqual(oldCfg.History, newCfg.History) {
		changed = append(changed, "history")
		var driver string
		var pathSet bool
		if newCfg.History != nil {
			driver = strings.TrimSpace(newCfg.History.Driver)
			pathSet = strings.TrimSpace(newCfg.History.Path) != ""
		}
		attrs = append(attrs,
			logx.String("history.driver", driver),
			logx.Bool("history.path_set", pathSet),
		)
	}

	sort.Strings(changed)
	return changed, attrs
}
