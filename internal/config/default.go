package config

import "time"

// Default configuration values.
const (
	DefaultGracePeriod    = 30 * time.Second
	DefaultCleanupTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultDemoWorkers       = 4
	DefaultDemoJobsPerSecond = 10
	DefaultDemoJobDuration   = 500 * time.Millisecond
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Shutdown: ShutdownSection{
			GracePeriod:    DefaultGracePeriod,
			CleanupTimeout: DefaultCleanupTimeout,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Demo: DemoSection{
			Workers:       DefaultDemoWorkers,
			JobsPerSecond: DefaultDemoJobsPerSecond,
			JobDuration:   DefaultDemoJobDuration,
		},
	}
}
