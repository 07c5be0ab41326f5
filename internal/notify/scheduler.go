package notify

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Scheduler fires activity digests on a cron schedule and fans them out to
// every configured adapter.
type Scheduler struct {
	db       *gorm.DB
	adapters []Adapter
	sched    cron.Schedule
	out      io.Writer
	// now is swappable in tests.
	now func() time.Time
}

// SchedulerOpts holds parameters for creating a Scheduler.
type SchedulerOpts struct {
	DB       *gorm.DB
	Adapters []Adapter
	Cron     string // 5-field cron expression
	Out      io.Writer
}

// NewScheduler validates the cron expression and builds a scheduler.
func NewScheduler(opts SchedulerOpts) (*Scheduler, error) {
	if len(opts.Adapters) == 0 {
		return nil, fmt.Errorf("notify: at least one adapter is required")
	}
	sched, err := cronParser.Parse(opts.Cron)
	if err != nil {
		return nil, fmt.Errorf("notify: parse cron %q: %w", opts.Cron, err)
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Scheduler{
		db:       opts.DB,
		adapters: opts.Adapters,
		sched:    sched,
		out:      out,
		now:      time.Now,
	}, nil
}

// Run blocks until ctx is cancelled, firing a digest at each cron tick.
// Each digest covers the window since the previous tick, so restarts don't
// replay old activity.
func (s *Scheduler) Run(ctx context.Context) error {
	last := s.now()
	for {
		next := s.sched.Next(last)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(next)):
		}
		s.fire(ctx, last, next)
		last = next
	}
}

// fire builds and delivers one digest. Adapter failures are logged and do
// not stop the scheduler or block other adapters.
func (s *Scheduler) fire(ctx context.Context, since, until time.Time) {
	d, err := BuildDigest(s.db, since, until)
	if err != nil {
		fmt.Fprintf(s.out, "notify: build digest: %v\n", err)
		return
	}
	if d == nil {
		return // no activity, no message
	}
	for _, a := range s.adapters {
		if err := a.Send(ctx, d); err != nil {
			fmt.Fprintf(s.out, "notify: %s: %v\n", a.Name(), err)
		}
	}
}

// SendOnce builds a digest for [since, now) and delivers it immediately.
// Used by the CLI for on-demand digests. Reports whether anything was sent.
func (s *Scheduler) SendOnce(ctx context.Context, since time.Time) (bool, error) {
	d, err := BuildDigest(s.db, since, s.now())
	if err != nil {
		return false, err
	}
	if d == nil {
		return false, nil
	}
	for _, a := range s.adapters {
		if err := a.Send(ctx, d); err != nil {
			return false, fmt.Errorf("notify: %s: %w", a.Name(), err)
		}
	}
	return true, nil
}
