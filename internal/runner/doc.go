// Package runner hosts a long-running function and coordinates its
// graceful shutdown.
//
// A Runner moves through three states:
//
//	Running -> ShuttingDown -> Terminated
//
// The first interrupt requests termination on the shared RunContext,
// waits up to the grace period for in-flight work to drain, runs the
// cleanup hooks and returns exit status 0. A second interrupt while
// shutting down returns 0 immediately without waiting for drain or
// cleanup. A run function that fails or panics triggers the same drain
// and cleanup and returns 1.
//
// Usage:
//
//	rc := shutdown.New()
//	r := runner.New(rc, runner.WithGracePeriod(30*time.Second))
//	r.OnCleanup(func(ctx context.Context) error { return db.Close() })
//	os.Exit(r.Run(func(rc *shutdown.RunContext) error {
//		return serve(rc)
//	}))
package runner
