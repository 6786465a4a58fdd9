package shutdown

import (
	"sync"

	"github.com/oklog/ulid/v2"
)

// WorkHandle is held by the caller for the duration of one unit of work.
// Handles are created by RunContext.BlockInterruption and must not be
// shared between call sites.
type WorkHandle struct {
	rc       *RunContext
	id       string
	label    string
	accepted bool

	once sync.Once
	done chan struct{}
}

// HandleOption configures a WorkHandle at registration.
type HandleOption func(*WorkHandle)

// WithLabel names the unit of work in logs.
func WithLabel(label string) HandleOption {
	return func(h *WorkHandle) {
		h.label = label
	}
}

// ID returns the handle identifier.
func (h *WorkHandle) ID() string {
	return h.id
}

// Label returns the label given at registration.
func (h *WorkHandle) Label() string {
	return h.label
}

// Accepted reports whether the handle was admitted to the registry.
func (h *WorkHandle) Accepted() bool {
	return h != nil && h.accepted
}

// Done returns a channel that is closed once the handle is released.
func (h *WorkHandle) Done() <-chan struct{} {
	return h.done
}

// Release marks the unit of work complete. Only the first call has an
// effect; releasing a nil handle does nothing.
func (h *WorkHandle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		close(h.done)
		if h.accepted {
			h.rc.release(h)
		}
	})
}

// newHandleID returns a new monotonic ULID string.
func newHandleID() string {
	return ulid.Make().String()
}
