package push

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"steamwatch/pkg/logx"
)

const historyMax = 100

// HistoryItem records one delivery attempt for operator inspection.
type HistoryItem struct {
	At    time.Time
	Title string
	Via   string
	Err   string
}

// Service wraps a Pusher with a token-bucket rate limit and a bounded
// in-memory send history. Sends are sequential (one cycle at a time), the
// limiter only guards against a pathological schedule hammering the relay.
type Service struct {
	log    logx.Logger
	pusher Pusher

	limiter *rate.Limiter

	mu      sync.Mutex
	history []HistoryItem
}

func NewService(cfg Config, pusher Pusher, log logx.Logger) *Service {
	if log.IsZero() {
		log = logx.Nop()
	}
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 1
	}
	return &Service{
		log:     log,
		pusher:  pusher,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Via reports the active transport name.
func (s *Service) Via() string { return s.pusher.Name() }

// Notify delivers one report. Errors are returned for the caller to log;
// they must never abort a check cycle or block snapshot persistence.
func (s *Service) Notify(ctx context.Context, title, body string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	err := s.pusher.Push(ctx, title, body)

	item := HistoryItem{At: start, Title: title, Via: s.pusher.Name()}
	if err != nil {
		item.Err = err.Error()
		s.log.Warn("notification send failed",
			logx.String("via", s.pusher.Name()),
			logx.Err(err),
		)
	} else {
		s.log.Debug("notification sent",
			logx.String("via", s.pusher.Name()),
			logx.Duration("took", time.Since(start)),
		)
	}
	s.appendHistory(item)
	return err
}

func (s *Service) appendHistory(item HistoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, item)
	if len(s.history) > historyMax {
		s.history = s.history[len(s.history)-historyMax:]
	}
}

// History returns a copy of the recent delivery attempts, newest last.
func (s *Service) History() []HistoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HistoryItem, len(s.history))
	copy(out, s.history)
	return out
}
