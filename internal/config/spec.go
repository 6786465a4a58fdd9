package config

import "time"

// Config is the root configuration for gracerun.
type Config struct {
	Shutdown ShutdownSection `koanf:"shutdown" yaml:"shutdown" json:"shutdown"`
	Log      LogSection      `koanf:"log" yaml:"log" json:"log"`
	Metrics  MetricsSection  `koanf:"metrics" yaml:"metrics" json:"metrics"`
	Demo     DemoSection     `koanf:"demo" yaml:"demo" json:"demo"`
}

// ShutdownSection configures the drain and cleanup phases.
type ShutdownSection struct {
	// GracePeriod bounds the wait for in-flight work. <= 0 waits forever.
	GracePeriod    time.Duration `koanf:"grace_period" yaml:"grace_period" json:"grace_period"`
	CleanupTimeout time.Duration `koanf:"cleanup_timeout" yaml:"cleanup_timeout" json:"cleanup_timeout"`
	// ExitOnReturn shuts down when the workload returns without error
	// instead of waiting for an interrupt.
	ExitOnReturn bool `koanf:"exit_on_return" yaml:"exit_on_return" json:"exit_on_return"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`
	Format string `koanf:"format" yaml:"format" json:"format"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	// Addr is the listen address for /metrics. Empty disables the endpoint.
	Addr string `koanf:"addr" yaml:"addr" json:"addr"`
}

// DemoSection configures the demo workload hosted by "gracerun run".
type DemoSection struct {
	Workers       int           `koanf:"workers" yaml:"workers" json:"workers"`
	JobsPerSecond float64       `koanf:"jobs_per_second" yaml:"jobs_per_second" json:"jobs_per_second"`
	JobDuration   time.Duration `koanf:"job_duration" yaml:"job_duration" json:"job_duration"`
	// Jobs stops dispatch after this many jobs. 0 is unlimited.
	Jobs int `koanf:"jobs" yaml:"jobs" json:"jobs"`
	// Cooperative jobs stop early when termination is requested.
	Cooperative bool `koanf:"cooperative" yaml:"cooperative" json:"cooperative"`
}
