package shutdown

import "errors"

// ErrTerminationRequested is returned when work is registered after
// termination was requested.
var ErrTerminationRequested = errors.New("shutdown: termination requested, work not accepted")
