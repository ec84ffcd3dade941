// Package scheduler runs the periodic housekeeping jobs of the API process.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/robfig/cron/v3"
)

// SweepSpec runs the store sweep at the top of every minute
const SweepSpec = "0 * * * * *"

// Sweeper drops expired entries from a store
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// Regenerator rebuilds and persists the full project cache
type Regenerator interface {
	Regenerate(ctx context.Context) (domain.Records, error)
}

// Options configure the scheduler. An empty RegenerateSpec disables the
// scheduled resync; the request path keeps the cache fresh on its own.
type Options struct {
	RegenerateSpec    string
	RegenerateTimeout time.Duration
}

type Scheduler struct {
	cron    *cron.Cron
	store   Sweeper
	regen   Regenerator
	opts    Options
	baseCtx context.Context
}

func NewScheduler(store Sweeper, regen Regenerator, opts Options) *Scheduler {
	if opts.RegenerateTimeout <= 0 {
		opts.RegenerateTimeout = 5 * time.Minute
	}
	return &Scheduler{
		// SkipIfStillRunning keeps a slow resync from overlapping the next tick
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		store:   store,
		regen:   regen,
		opts:    opts,
		baseCtx: context.Background(),
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if s.store != nil {
		if _, err := s.cron.AddFunc(SweepSpec, s.sweep); err != nil {
			return fmt.Errorf("schedule sweep: %w", err)
		}
	}

	if s.opts.RegenerateSpec != "" && s.regen != nil {
		if _, err := s.cron.AddFunc(s.opts.RegenerateSpec, s.regenerate); err != nil {
			return fmt.Errorf("schedule regenerate %q: %w", s.opts.RegenerateSpec, err)
		}
		log.Printf("[info] scheduler: regenerate on %q", s.opts.RegenerateSpec)
	}

	s.cron.Start()
	log.Printf("[info] scheduler started with %d job(s)", len(s.cron.Entries()))
	return nil
}

// Stop halts scheduling and waits for running jobs to finish or ctx to end
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Printf("[warn] scheduler: stop timed out: %v", ctx.Err())
	}
}

func (s *Scheduler) sweep() {
	n, err := s.store.Sweep(s.baseCtx)
	if err != nil {
		log.Printf("[error] scheduler: sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[info] scheduler: swept %d expired entries", n)
	}
}

func (s *Scheduler) regenerate() {
	ctx, cancel := context.WithTimeout(s.baseCtx, s.opts.RegenerateTimeout)
	defer cancel()

	start := time.Now()
	records, err := s.regen.Regenerate(ctx)
	if err != nil {
		log.Printf("[error] scheduler: regenerate failed after %s: %v", time.Since(start), err)
		return
	}
	log.Printf("[info] scheduler: regenerated %d projects in %s", len(records), time.Since(start))
}
