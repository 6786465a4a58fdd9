// Package demo provides the sample workload hosted by "gracerun run".
//
// A rate-limited dispatcher starts jobs with at most Workers running at
// once. Each job holds a work handle for its whole duration, so an
// interrupt lets running jobs finish within the grace period while new
// jobs stop being dispatched.
package demo
