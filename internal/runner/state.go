package runner

// State is the lifecycle state of a Runner.
type State int32

const (
	// StateIdle means Run has not been called.
	StateIdle State = iota
	// StateRunning means the run function is executing or the runner is
	// waiting for an interrupt.
	StateRunning
	// StateShuttingDown means termination was requested and drain or
	// cleanup is in progress.
	StateShuttingDown
	// StateTerminated means Run has returned.
	StateTerminated
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting_down"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}
