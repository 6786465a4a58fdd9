package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/yndnr/gracerun/internal/telemetry/logger"
)

// Verify validates the configuration.
func Verify(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if err := verifyShutdown(&cfg.Shutdown); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if err := verifyMetrics(&cfg.Metrics); err != nil {
		return err
	}
	return verifyDemo(&cfg.Demo)
}

func verifyShutdown(cfg *ShutdownSection) error {
	if cfg.CleanupTimeout <= 0 {
		return fmt.Errorf("shutdown.cleanup_timeout must be positive, got %s", cfg.CleanupTimeout)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch cfg.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q is not one of text, json", cfg.Format)
	}
	return nil
}

func verifyMetrics(cfg *MetricsSection) error {
	if cfg.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return fmt.Errorf("metrics.addr %q: %w", cfg.Addr, err)
	}
	return nil
}

func verifyDemo(cfg *DemoSection) error {
	if cfg.Workers < 1 {
		return errors.New("demo.workers must be at least 1")
	}
	if cfg.JobsPerSecond <= 0 {
		return errors.New("demo.jobs_per_second must be positive")
	}
	if cfg.Jobs < 0 {
		return errors.New("demo.jobs must not be negative")
	}
	if cfg.JobDuration < 0 {
		return errors.New("demo.job_duration must not be negative")
	}
	return nil
}
