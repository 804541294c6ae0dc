// Package app wires configuration, logging, the Steam client, the push
// service, the history store and the monitor into a runnable program.
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/coreos/go-systemd/v22/daemon"

	"steamwatch/internal/config"
	"steamwatch/internal/inventory"
	"steamwatch/internal/monitor"
	"steamwatch/internal/push"
	"steamwatch/internal/scheduler"
	"steamwatch/internal/steam"
	"steamwatch/internal/storage"
	logx "steamwatch/pkg/logx"
)

type App struct {
	cfgPath string
	cfgm    *config.Manager

	log  logx.Logger
	logs *logx.Service

	history storage.Store // nil when disabled

	mu     sync.RWMutex // guards client and pushSvc (hot reload swaps them)
	client *steam.Client
	push   *push.Service

	mon    *monitor.Monitor
	runner *scheduler.Runner

	// restart carries a replacement runner built by the reload loop when
	// the schedule string changes.
	restart chan *scheduler.Runner
}

func New(cfgPath string) (*App, error) {
	cfgm := config.NewManager(cfgPath)
	cfg, err := cfgm.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.ConsoleEnabled(),
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	log = log.With(logx.String("comp", "app"))

	sc, err := mapSteamConfig(cfg)
	if err != nil {
		return nil, err
	}
	client, err := steam.New(sc)
	if err != nil {
		return nil, err
	}

	pc, err := mapPushConfig(cfg)
	if err != nil {
		return nil, err
	}
	pusher, err := push.NewPusher(pc)
	if err != nil {
		return nil, err
	}
	pushSvc := push.NewService(pc, pusher, log.With(logx.String("comp", "push")))

	var history storage.Store
	if hc, enabled, err := mapHistoryConfig(cfg); err != nil {
		return nil, err
	} else if enabled {
		st, err := storage.Open(hc, log.With(logx.String("comp", "history")))
		if err != nil {
			return nil, err
		}
		history = st
		log.Info("change history enabled", logx.String("driver", hc.Driver))
	}

	runner, err := scheduler.New(cfg.Monitor.Schedule, log.With(logx.String("comp", "sched")))
	if err != nil {
		return nil, fmt.Errorf("monitor.schedule: %w", err)
	}

	a := &App{
		cfgPath: cfgPath,
		cfgm:    cfgm,
		log:     log,
		logs:    logSvc,
		history: history,
		client:  client,
		runner:  runner,
		restart: make(chan *scheduler.Runner, 1),
	}
	a.push = pushSvc
	// The monitor talks to the app, not to the concrete client/service,
	// so hot reload can swap either without rebuilding the monitor.
	a.mon = monitor.New(monitor.Config{
		SteamID:      sc.SteamID,
		SnapshotFile: cfg.Monitor.SnapshotFile,
	}, a, a, history, log.With(logx.String("comp", "monitor")))

	log.Info("starting",
		logx.String("steam_id", sc.SteamID),
		logx.Int("app_id", orDefault(sc.AppID, steam.DefaultAppID)),
		logx.String("schedule", runner.Describe()),
		logx.String("push", pushSvc.Via()),
	)
	return a, nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// Fetch implements monitor.Fetcher against the current Steam client.
func (a *App) Fetch(ctx context.Context) (inventory.Snapshot, inventory.Descriptions, error) {
	a.mu.RLock()
	c := a.client
	a.mu.RUnlock()
	return c.Fetch(ctx)
}

// Notify implements monitor.Notifier against the current push service.
func (a *App) Notify(ctx context.Context, title, body string) error {
	a.mu.RLock()
	p := a.push
	a.mu.RUnlock()
	return p.Notify(ctx, title, body)
}

// RunOnce performs a single check cycle and returns its error (single-shot
// mode maps this to the process exit code).
func (a *App) RunOnce(ctx context.Context) error {
	return a.mon.RunOnce(ctx)
}

// Run blocks until ctx is canceled, running check cycles on the configured
// schedule and applying config hot reloads in between.
func (a *App) Run(ctx context.Context) error {
	a.cfgm.SetLogger(a.log.With(logx.String("comp", "config")))
	a.cfgm.SetValidator(func(_ context.Context, cfg *config.Config) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if _, err := mapSteamConfig(cfg); err != nil {
			return err
		}
		if _, err := mapPushConfig(cfg); err != nil {
			return err
		}
		if _, _, err := mapHistoryConfig(cfg); err != nil {
			return err
		}
		if _, err := scheduler.ParseSchedule(cfg.Monitor.Schedule); err != nil {
			return fmt.Errorf("monitor.schedule: %w", err)
		}
		return nil
	})

	go func() {
		if err := a.cfgm.Watch(ctx); err != nil && ctx.Err() == nil {
			a.log.Warn("config watcher stopped", logx.Err(err))
		}
	}()

	sub := a.cfgm.Subscribe(8)
	go a.reloadLoop(ctx, sub)

	// Best effort; no-op outside systemd.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
	defer func() { _, _ = daemon.SdNotify(false, daemon.SdNotifyStopping) }()

	for {
		runCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		runner := a.runner
		go func() { done <- runner.Run(runCtx, a.mon.RunOnce) }()

		select {
		case <-ctx.Done():
			cancel()
			<-done
			return nil
		case next := <-a.restart:
			cancel()
			<-done
			a.runner = next
			a.log.Info("schedule applied", logx.String("schedule", next.Describe()))
		case err := <-done:
			cancel()
			return err
		}
	}
}

// reloadLoop applies committed config changes: logging and push swaps take
// effect immediately, schedule changes restart the runner, storage and
// snapshot-file changes need a process restart.
func (a *App) reloadLoop(ctx context.Context, sub chan *config.Config) {
	defer a.cfgm.Unsubscribe(sub)
	lastApplied := a.cfgm.Get()
	for {
		select {
		case <-ctx.Done():
			return
		case newCfg, ok := <-sub:
			if !ok {
				return
			}
			// Coalesce bursts: keep only the latest config.
			for {
				select {
				case newer := <-sub:
					if newer != nil {
						newCfg = newer
					}
				default:
					goto APPLY
				}
			}
		APPLY:
			sections, attrs := config.SummarizeConfigChange(lastApplied, newCfg)
			if len(sections) == 0 {
				a.log.Debug("config reload received, but no effective changes detected")
				lastApplied = newCfg
				continue
			}
			fields := append([]logx.Field{logx.String("changed", strings.Join(sections, ","))}, attrs...)
			a.log.Debug("config change summary", fields...)
			a.applyConfig(lastApplied, newCfg, sections)
			lastApplied = newCfg
		}
	}
}

func (a *App) applyConfig(oldCfg, newCfg *config.Config, sections []string) {
	changed := func(name string) bool {
		for _, s := range sections {
			if s == name {
				return true
			}
		}
		return false
	}

	if changed("logging") {
		a.logs.Apply(logx.Config{
			Level:   newCfg.Logging.Level,
			Console: newCfg.Logging.ConsoleEnabled(),
			File: logx.FileConfig{
				Enabled: newCfg.Logging.File.Enabled,
				Path:    newCfg.Logging.File.Path,
			},
		})
	}

	if changed("steam") {
		sc, err := mapSteamConfig(newCfg)
		if err != nil {
			a.log.Warn("invalid steam config; keeping previous", logx.Err(err))
		} else if client, err := steam.New(sc); err != nil {
			a.log.Warn("invalid steam config; keeping previous", logx.Err(err))
		} else {
			a.mu.Lock()
			a.client = client
			a.mu.Unlock()
			a.log.Info("steam client reconfigured")
		}
	}

	if changed("push") {
		pc, err := mapPushConfig(newCfg)
		var pusher push.Pusher
		if err == nil {
			pusher, err = push.NewPusher(pc)
		}
		if err != nil {
			a.log.Warn("invalid push config; keeping previous", logx.Err(err))
		} else {
			svc := push.NewService(pc, pusher, a.log.With(logx.String("comp", "push")))
			a.mu.Lock()
			a.push = svc
			a.mu.Unlock()
			a.log.Info("push provider applied", logx.String("via", svc.Via()))
		}
	}

	if changed("monitor") {
		if newCfg.Monitor.Schedule != oldCfg.Monitor.Schedule {
			runner, err := scheduler.New(newCfg.Monitor.Schedule, a.log.With(logx.String("comp", "sched")))
			if err != nil {
				a.log.Warn("invalid schedule; keeping previous", logx.Err(err))
			} else {
				select {
				case a.restart <- runner:
				default:
					// A pending restart already carries a newer runner slot;
					// drop it and queue the latest.
					select {
					case <-a.restart:
					default:
					}
					a.restart <- runner
				}
			}
		}
		if newCfg.Monitor.SnapshotFile != oldCfg.Monitor.SnapshotFile {
			a.log.Warn("monitor.snapshot_file changed; restart required for changes to take effect")
		}
	}

	if changed("history") {
		a.log.Warn("history config changed; restart required for changes to take effect")
	}
}

// Close releases the history store and flushes log sinks.
func (a *App) Close() error {
	var first error
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			first = err
		}
	}
	if err := a.logs.Close(); err != nil && first == nil {
		first = err
	}
	return first
}
