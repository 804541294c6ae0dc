// Package push delivers rendered change reports to a phone.
//
// Providers mirror the services the monitor supports:
//   - pushplus (default when a bare token is configured)
//   - serverchan
//   - bark (iOS)
//   - telegram
//
// With no provider configured the console pusher prints the report to
// stdout with markup stripped. Delivery failures are never fatal to a
// check cycle; callers log and move on.
package push

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Pusher is one outbound notification transport.
type Pusher interface {
	Name() string
	// Push sends one message. body is HTML; transports that don't speak
	// HTML strip it themselves.
	Push(ctx context.Context, title, body string) error
}

type Config struct {
	Provider string
	Token    string
	Timeout  time.Duration

	// RatePerSec caps outbound notifications (token bucket). <=0 = 1/s.
	RatePerSec int

	Telegram TelegramConfig
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

// NewPusher builds the transport for cfg. An empty provider with an empty
// token yields the console fallback; an empty provider with a token set
// defaults to pushplus.
func NewPusher(cfg Config) (Pusher, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	token := strings.TrimSpace(cfg.Token)

	if provider == "" {
		if token == "" {
			return Console{}, nil
		}
		provider = "pushplus"
	}

	switch provider {
	case "console", "none":
		return Console{}, nil
	case "pushplus":
		if token == "" {
			return nil, fmt.Errorf("push.token is required for pushplus")
		}
		return &PushPlus{token: token, http: &http.Client{Timeout: cfg.Timeout}}, nil
	case "serverchan":
		if token == "" {
			return nil, fmt.Errorf("push.token is required for serverchan")
		}
		return &ServerChan{token: token, http: &http.Client{Timeout: cfg.Timeout}}, nil
	case "bark":
		if token == "" {
			return nil, fmt.Errorf("push.token is required for bark")
		}
		return &Bark{key: token, http: &http.Client{Timeout: cfg.Timeout}}, nil
	case "telegram":
		return NewTelegram(cfg.Telegram, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown push provider %q", cfg.Provider)
	}
}

func checkStatus(what string, code int) error {
	if code < 200 || code > 299 {
		return fmt.Errorf("%s: unexpected status %d", what, code)
	}
	return nil
}
