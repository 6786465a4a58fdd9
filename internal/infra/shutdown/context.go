package shutdown

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/gracerun/internal/telemetry/logger"
)

// RunContext owns the cancellation signal and the registry of live work.
// It is created once per process and shared by reference.
type RunContext struct {
	mu      sync.Mutex
	handles map[string]*WorkHandle
	closed  bool

	cancelled atomic.Bool
	done      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc

	logger   logger.Logger
	observer Observer
}

// Option configures a RunContext.
type Option func(*RunContext)

// WithLogger sets the logger used for registry and drain events.
func WithLogger(l logger.Logger) Option {
	return func(rc *RunContext) {
		rc.logger = l
	}
}

// WithObserver sets the observer notified of registry and drain events.
func WithObserver(o Observer) Option {
	return func(rc *RunContext) {
		rc.observer = o
	}
}

// DrainResult describes how a drain ended. Callers proceed to cleanup
// either way; a timed out drain is not an error.
type DrainResult struct {
	// Drained is true when every waited-on handle was released.
	Drained bool
	// Pending is the number of handles still held when the wait ended.
	Pending int
	// Elapsed is how long the wait took.
	Elapsed time.Duration
}

// New creates a RunContext in the running state.
func New(opts ...Option) *RunContext {
	ctx, cancel := context.WithCancel(context.Background())
	rc := &RunContext{
		handles:  make(map[string]*WorkHandle),
		done:     make(chan struct{}),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger.Default(),
		observer: nopObserver{},
	}

	for _, opt := range opts {
		opt(rc)
	}

	return rc
}

// Cancelled reports whether termination has been requested.
func (rc *RunContext) Cancelled() bool {
	return rc.cancelled.Load()
}

// Done returns a channel that is closed when termination is requested.
func (rc *RunContext) Done() <-chan struct{} {
	return rc.done
}

// Context returns a context that is cancelled when termination is requested.
func (rc *RunContext) Context() context.Context {
	return rc.ctx
}

// Pending returns the number of accepted handles not yet released.
func (rc *RunContext) Pending() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.handles)
}

// BlockInterruption registers a new unit of in-flight work. The returned
// handle must be released when the work ends, usually with defer.
// After RequestTermination it returns ErrTerminationRequested and a nil
// handle; releasing a nil handle is a no-op.
func (rc *RunContext) BlockInterruption(opts ...HandleOption) (*WorkHandle, error) {
	h := &WorkHandle{
		rc:   rc,
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	rc.mu.Lock()
	if rc.closed {
		rc.mu.Unlock()
		rc.observer.WorkRejected()
		rc.logger.Debug("work rejected", "label", h.label)
		return nil, ErrTerminationRequested
	}
	h.id = newHandleID()
	h.accepted = true
	rc.handles[h.id] = h
	rc.mu.Unlock()

	rc.observer.WorkAdmitted()
	return h, nil
}

// Do runs fn while holding a work handle. fn is not called when the
// handle cannot be acquired. The context passed to fn carries the handle
// ID for logger.L.
func (rc *RunContext) Do(ctx context.Context, label string, fn func(context.Context) error) error {
	h, err := rc.BlockInterruption(WithLabel(label))
	if err != nil {
		return err
	}
	defer h.Release()

	return fn(logger.WithWork(ctx, h.id, label))
}

// Go runs fn on a new goroutine while holding a work handle.
func (rc *RunContext) Go(ctx context.Context, label string, fn func(context.Context)) error {
	h, err := rc.BlockInterruption(WithLabel(label))
	if err != nil {
		return err
	}

	ctx = logger.WithWork(ctx, h.id, label)
	go func() {
		defer h.Release()
		fn(ctx)
	}()
	return nil
}

// RequestTermination flips the cancellation signal and closes the
// registry to new work. It returns true on the first call and false when
// termination had already been requested.
func (rc *RunContext) RequestTermination() bool {
	rc.mu.Lock()
	if rc.closed {
		rc.mu.Unlock()
		return false
	}
	rc.closed = true
	rc.cancelled.Store(true)
	close(rc.done)
	pending := len(rc.handles)
	rc.mu.Unlock()

	// Outside the lock: context callbacks may register work.
	rc.cancel()

	rc.logger.Info("termination requested", "pending", pending)
	return true
}

// WaitForDrain blocks until all registered work is released or the grace
// period elapses. A grace period <= 0 waits indefinitely.
func (rc *RunContext) WaitForDrain(grace time.Duration) DrainResult {
	ctx := context.Background()
	if grace > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, grace)
		defer cancel()
	}
	return rc.Drain(ctx)
}

// Drain waits for every handle registered at the time of the call to be
// released, or for ctx to be done, whichever comes first.
//
// Handles registered after the snapshot is taken are not waited on. Once
// RequestTermination has run no such handles can exist.
func (rc *RunContext) Drain(ctx context.Context) DrainResult {
	start := time.Now()
	snapshot := rc.snapshot()

	rc.logger.Debug("draining work", "pending", len(snapshot))

	for i, h := range snapshot {
		select {
		case <-h.done:
			continue
		default:
		}

		select {
		case <-h.done:
		case <-ctx.Done():
			res := DrainResult{
				Pending: unreleased(snapshot[i:]),
				Elapsed: time.Since(start),
			}
			rc.observer.DrainFinished(false, res.Elapsed)
			rc.logger.Warn("grace period elapsed before work drained",
				"pending", res.Pending,
				"elapsed", res.Elapsed.String())
			return res
		}
	}

	res := DrainResult{Drained: true, Elapsed: time.Since(start)}
	rc.observer.DrainFinished(true, res.Elapsed)
	rc.logger.Info("work drained", "handles", len(snapshot), "elapsed", res.Elapsed.String())
	return res
}

// snapshot returns the handles currently registered.
func (rc *RunContext) snapshot() []*WorkHandle {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	handles := make([]*WorkHandle, 0, len(rc.handles))
	for _, h := range rc.handles {
		handles = append(handles, h)
	}
	return handles
}

// release removes an accepted handle from the registry.
func (rc *RunContext) release(h *WorkHandle) {
	rc.mu.Lock()
	delete(rc.handles, h.id)
	rc.mu.Unlock()

	rc.observer.WorkReleased()
}

func unreleased(handles []*WorkHandle) int {
	n := 0
	for _, h := range handles {
		select {
		case <-h.done:
		default:
			n++
		}
	}
	return n
}
