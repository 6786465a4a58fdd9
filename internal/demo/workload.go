package demo

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/yndnr/gracerun/internal/infra/shutdown"
	"github.com/yndnr/gracerun/internal/telemetry/logger"
)

// Config configures a Workload.
type Config struct {
	// Workers caps the number of jobs running at once.
	Workers int
	// JobsPerSecond paces job dispatch.
	JobsPerSecond float64
	// JobDuration is how long each job runs.
	JobDuration time.Duration
	// Jobs stops dispatch after this many jobs. 0 dispatches until
	// termination is requested.
	Jobs int
	// Cooperative jobs return early when termination is requested.
	Cooperative bool
}

// Stats counts job outcomes.
type Stats struct {
	Dispatched  int64 `json:"dispatched" yaml:"dispatched"`
	Completed   int64 `json:"completed" yaml:"completed"`
	Interrupted int64 `json:"interrupted" yaml:"interrupted"`
	Rejected    int64 `json:"rejected" yaml:"rejected"`
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("dispatched=%d completed=%d interrupted=%d rejected=%d",
		s.Dispatched, s.Completed, s.Interrupted, s.Rejected)
}

// Workload dispatches demo jobs under a RunContext.
type Workload struct {
	cfg     Config
	limiter *rate.Limiter
	sem     *semaphore.Weighted
	logger  logger.Logger

	dispatched  atomic.Int64
	completed   atomic.Int64
	interrupted atomic.Int64
	rejected    atomic.Int64
}

// Option configures a Workload.
type Option func(*Workload)

// WithLogger sets the workload logger.
func WithLogger(l logger.Logger) Option {
	return func(w *Workload) {
		w.logger = l
	}
}

// New creates a Workload. Workers below 1 is treated as 1 and a
// non-positive JobsPerSecond disables pacing.
func New(cfg Config, opts ...Option) *Workload {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	limit := rate.Limit(cfg.JobsPerSecond)
	if cfg.JobsPerSecond <= 0 {
		limit = rate.Inf
	}
	w := &Workload{
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
		sem:     semaphore.NewWeighted(int64(cfg.Workers)),
		logger:  logger.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run dispatches jobs until termination is requested or Jobs have been
// dispatched. It returns without waiting for running jobs; the runner
// drains them.
func (w *Workload) Run(rc *shutdown.RunContext) error {
	ctx := logger.WithLogger(rc.Context(), w.logger)
	w.logger.Info("demo workload started",
		"workers", w.cfg.Workers,
		"jobs_per_second", w.cfg.JobsPerSecond,
		"job_duration", w.cfg.JobDuration.String())

	for n := 1; w.cfg.Jobs == 0 || n <= w.cfg.Jobs; n++ {
		if err := w.limiter.Wait(ctx); err != nil {
			return nil
		}
		if err := w.sem.Acquire(ctx, 1); err != nil {
			return nil
		}

		jobCtx := context.WithoutCancel(ctx)
		if w.cfg.Cooperative {
			jobCtx = ctx
		}

		err := rc.Go(jobCtx, fmt.Sprintf("job-%d", n), func(ctx context.Context) {
			defer w.sem.Release(1)
			w.job(ctx)
		})
		if err != nil {
			w.sem.Release(1)
			if errors.Is(err, shutdown.ErrTerminationRequested) {
				w.rejected.Add(1)
				return nil
			}
			return err
		}
		w.dispatched.Add(1)
	}

	w.logger.Info("demo workload dispatched all jobs", "jobs", w.cfg.Jobs)
	return nil
}

func (w *Workload) job(ctx context.Context) {
	log := logger.L(ctx)
	log.Debug("job started")

	timer := time.NewTimer(w.cfg.JobDuration)
	defer timer.Stop()

	select {
	case <-timer.C:
		w.completed.Add(1)
		log.Debug("job completed")
	case <-ctx.Done():
		w.interrupted.Add(1)
		log.Info("job interrupted")
	}
}

// Stats returns a snapshot of the job counters.
func (w *Workload) Stats() Stats {
	return Stats{
		Dispatched:  w.dispatched.Load(),
		Completed:   w.completed.Load(),
		Interrupted: w.interrupted.Load(),
		Rejected:    w.rejected.Load(),
	}
}
