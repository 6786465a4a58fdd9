package shutdown

import "time"

// Observer receives registry and drain events, typically to export metrics.
// Implementations must be safe for concurrent use.
type Observer interface {
	WorkAdmitted()
	WorkRejected()
	WorkReleased()
	DrainFinished(drained bool, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) WorkAdmitted()                     {}
func (nopObserver) WorkRejected()                     {}
func (nopObserver) WorkReleased()                     {}
func (nopObserver) DrainFinished(bool, time.Duration) {}
