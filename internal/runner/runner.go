package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/gracerun/internal/infra/shutdown"
	"github.com/yndnr/gracerun/internal/telemetry/logger"
)

// Exit statuses returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// StartupMessage is written to the console when Run starts.
const StartupMessage = "Press CTRL+C to exit"

// ErrRunPanicked wraps a panic recovered from the run function.
var ErrRunPanicked = errors.New("run panicked")

// RunFunc is the host workload. It receives the shared RunContext and
// should acquire a work handle for each unit of work it wants protected
// from interruption.
type RunFunc func(rc *shutdown.RunContext) error

// CleanupFunc is called once during shutdown, after drain.
type CleanupFunc func(ctx context.Context) error

// Runner orchestrates Running -> ShuttingDown -> Terminated.
type Runner struct {
	rc *shutdown.RunContext

	gracePeriod    time.Duration
	cleanupTimeout time.Duration
	exitOnReturn   bool

	console io.Writer
	signals <-chan os.Signal
	logger  logger.Logger

	mu    sync.Mutex
	hooks []CleanupFunc

	state atomic.Int32
}

// Option configures a Runner.
type Option func(*Runner)

// WithGracePeriod bounds the drain wait. A period <= 0 waits forever.
func WithGracePeriod(d time.Duration) Option {
	return func(r *Runner) {
		r.gracePeriod = d
	}
}

// WithCleanupTimeout bounds the context passed to cleanup hooks.
// A timeout <= 0 gives hooks an uncancelled context.
func WithCleanupTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.cleanupTimeout = d
	}
}

// WithExitOnReturn makes a nil return from the run function shut the
// runner down instead of waiting for an interrupt.
func WithExitOnReturn(v bool) Option {
	return func(r *Runner) {
		r.exitOnReturn = v
	}
}

// WithConsole sets the writer that receives the startup message.
func WithConsole(w io.Writer) Option {
	return func(r *Runner) {
		r.console = w
	}
}

// WithSignals replaces the OS signal subscription.
func WithSignals(ch <-chan os.Signal) Option {
	return func(r *Runner) {
		r.signals = ch
	}
}

// WithLogger sets the runner logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New creates a Runner around rc.
func New(rc *shutdown.RunContext, opts ...Option) *Runner {
	r := &Runner{
		rc:             rc,
		gracePeriod:    30 * time.Second,
		cleanupTimeout: 10 * time.Second,
		console:        os.Stdout,
		logger:         logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// OnCleanup registers a cleanup hook.
// Hooks are called in reverse order of registration.
func (r *Runner) OnCleanup(hook CleanupFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return State(r.state.Load())
}

// Run starts run on its own goroutine and blocks until the runner
// terminates. It returns the process exit status; callers pass it to
// os.Exit.
func (r *Runner) Run(run RunFunc) int {
	sigCh := r.signals
	if sigCh == nil {
		ch := make(chan os.Signal, 2)
		notifySignals(ch)
		defer signal.Stop(ch)
		sigCh = ch
	}

	r.setState(StateRunning)
	fmt.Fprintln(r.console, StartupMessage)

	errCh := make(chan error, 1)
	go func() {
		errCh <- r.invoke(run)
	}()

	for {
		select {
		case sig := <-sigCh:
			r.logger.Info("interrupt received", "signal", sig.String())
			if !r.rc.RequestTermination() {
				// Termination was already requested by the workload.
				return r.forceExit(sig)
			}
			return r.shutdown(sigCh, ExitOK)

		case err := <-errCh:
			errCh = nil
			if err != nil {
				r.logger.Error("run failed", "error", err)
				r.rc.RequestTermination()
				return r.shutdown(sigCh, ExitFailure)
			}
			if r.exitOnReturn {
				r.logger.Info("run returned, shutting down")
				r.rc.RequestTermination()
				return r.shutdown(sigCh, ExitOK)
			}
			r.logger.Debug("run returned, waiting for interrupt")
		}
	}
}

// invoke calls run and converts a panic into an error.
func (r *Runner) invoke(run RunFunc) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrRunPanicked, p)
		}
	}()

	if err := run(r.rc); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// shutdown drains and cleans up. Another signal received meanwhile ends
// the runner at once.
func (r *Runner) shutdown(sigCh <-chan os.Signal, code int) int {
	r.setState(StateShuttingDown)

	done := make(chan struct{})
	go func() {
		defer close(done)
		r.rc.WaitForDrain(r.gracePeriod)
		r.cleanup()
	}()

	select {
	case <-done:
		r.setState(StateTerminated)
		r.logger.Info("shutdown complete", "exit_code", code)
		return code
	case sig := <-sigCh:
		return r.forceExit(sig)
	}
}

func (r *Runner) forceExit(sig os.Signal) int {
	r.logger.Warn("forced exit", "signal", sig.String())
	r.setState(StateTerminated)
	return ExitOK
}

// cleanup runs the hooks in reverse order under the cleanup timeout.
func (r *Runner) cleanup() {
	ctx := context.Background()
	if r.cleanupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cleanupTimeout)
		defer cancel()
	}

	r.mu.Lock()
	hooks := make([]CleanupFunc, len(r.hooks))
	copy(hooks, r.hooks)
	r.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		if err := callHook(ctx, hooks[i]); err != nil {
			r.logger.Error("cleanup hook failed", "hook", i, "error", err)
		}
	}
}

func callHook(ctx context.Context, hook CleanupFunc) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("cleanup hook panicked: %v", p)
		}
	}()
	return hook(ctx)
}

func (r *Runner) setState(s State) {
	r.state.Store(int32(s))
}
