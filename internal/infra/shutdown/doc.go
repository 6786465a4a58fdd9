// Package shutdown provides graceful shutdown coordination for gracerun.
//
// This package tracks in-flight units of work so that a process can
// stop cleanly when asked to terminate:
//
//   - RunContext: shared cancellation signal plus registry of live work
//   - WorkHandle: scoped token held while one unit of work runs
//   - Drain: bounded wait for all registered work to be released
//
// Once termination is requested, new work is rejected with
// ErrTerminationRequested, so the set of handles a drain waits on is final.
//
// Usage:
//
//	rc := shutdown.New()
//
//	h, err := rc.BlockInterruption(shutdown.WithLabel("flush"))
//	if err != nil {
//	    return err // shutting down, do not start
//	}
//	defer h.Release()
//
//	// elsewhere, on SIGINT
//	rc.RequestTermination()
//	res := rc.WaitForDrain(30 * time.Second)
package shutdown
