// Package scheduler drives the check cycle: once immediately, then on a
// cron expression or fixed interval.
//
// Execution is strictly sequential. robfig/cron is used as a parser and
// next-time calculator only; the runner sleeps until the computed trigger
// itself, so a slow cycle delays the next one and cycles never overlap.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"steamwatch/pkg/logx"
)

// Job is one check cycle. Errors are logged and swallowed; the next
// scheduled cycle is the only retry mechanism.
type Job func(ctx context.Context) error

type Runner struct {
	log  logx.Logger
	spec ParsedSpec
	sch  cron.Schedule // nil for interval specs
}

// New parses raw into a runner. Cron expressions accept both 5-field and
// 6-field (with seconds) forms plus descriptors, matching robfig defaults.
func New(raw string, log logx.Logger) (*Runner, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	spec, err := ParseSchedule(raw)
	if err != nil {
		return nil, err
	}

	r := &Runner{log: log, spec: spec}
	if spec.Kind == SpecCron {
		parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		sch, err := parser.Parse(spec.Cron)
		if err != nil {
			return nil, fmt.Errorf("invalid cron schedule %q: %w", spec.Cron, err)
		}
		r.sch = sch
	}
	return r, nil
}

// Describe returns a human-readable form of the schedule for startup logs.
func (r *Runner) Describe() string {
	if r.spec.Kind == SpecCron {
		return "cron " + r.spec.Cron
	}
	return "every " + r.spec.Every.String()
}

func (r *Runner) next(after time.Time) time.Time {
	if r.sch != nil {
		return r.sch.Next(after)
	}
	return after.Add(r.spec.Every)
}

// Run executes job immediately, then repeatedly at the schedule until ctx
// is cancelled. It returns nil on cancellation.
func (r *Runner) Run(ctx context.Context, job Job) error {
	r.runOnce(ctx, job)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		wait := time.Until(r.next(time.Now()))
		if wait < 0 {
			wait = 0
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			r.runOnce(ctx, job)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := job(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		r.log.Warn("check cycle failed", logx.Err(err), logx.Duration("took", time.Since(start)))
		return
	}
	r.log.Debug("check cycle done", logx.Duration("took", time.Since(start)))
}
