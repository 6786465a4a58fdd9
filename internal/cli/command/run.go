package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/gracerun/internal/cli/output"
	"github.com/yndnr/gracerun/internal/config"
	"github.com/yndnr/gracerun/internal/demo"
	"github.com/yndnr/gracerun/internal/infra/buildinfo"
	"github.com/yndnr/gracerun/internal/infra/confloader"
	"github.com/yndnr/gracerun/internal/infra/shutdown"
	"github.com/yndnr/gracerun/internal/runner"
	"github.com/yndnr/gracerun/internal/telemetry/logger"
	"github.com/yndnr/gracerun/internal/telemetry/metric"
)

// signalsKey holds an injected signal channel in App.Metadata.
const signalsKey = "signals"

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the demo workload until interrupted",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "grace-period",
				Usage: "How long in-flight work may take to finish after an interrupt (<= 0 waits forever)",
			},
			&cli.DurationFlag{
				Name:  "cleanup-timeout",
				Usage: "Deadline for cleanup hooks",
			},
			&cli.BoolFlag{
				Name:  "exit-on-return",
				Usage: "Shut down when the workload returns instead of waiting for an interrupt",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address (e.g. 127.0.0.1:9090)",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Maximum concurrent demo jobs",
			},
			&cli.Float64Flag{
				Name:  "jobs-per-second",
				Usage: "Demo job dispatch rate",
			},
			&cli.DurationFlag{
				Name:  "job-duration",
				Usage: "How long each demo job runs",
			},
			&cli.IntFlag{
				Name:  "jobs",
				Usage: "Stop dispatching after this many jobs (0 is unlimited)",
			},
			&cli.BoolFlag{
				Name:  "cooperative",
				Usage: "Demo jobs stop early when termination is requested",
			},
			&cli.BoolFlag{
				Name:  "watch-config",
				Usage: "Reload the log level when the config file changes",
			},
		},
		Action: runAction,
	}
}

func runAction(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	log.Info("starting gracerun",
		"version", buildinfo.Get().Version,
		"config", flags.Config,
		"grace_period", cfg.Shutdown.GracePeriod.String())

	metrics := metric.NewRegistry()
	rc := shutdown.New(
		shutdown.WithLogger(log.With("component", "shutdown")),
		shutdown.WithObserver(metrics),
	)
	if err := metrics.Watch(rc); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	opts := []runner.Option{
		runner.WithGracePeriod(cfg.Shutdown.GracePeriod),
		runner.WithCleanupTimeout(cfg.Shutdown.CleanupTimeout),
		runner.WithExitOnReturn(cfg.Shutdown.ExitOnReturn),
		runner.WithConsole(c.App.Writer),
		runner.WithLogger(log.With("component", "runner")),
	}
	if sigs, ok := c.App.Metadata[signalsKey].(<-chan os.Signal); ok {
		opts = append(opts, runner.WithSignals(sigs))
	}
	r := runner.New(rc, opts...)

	workload := demo.New(demo.Config{
		Workers:       cfg.Demo.Workers,
		JobsPerSecond: cfg.Demo.JobsPerSecond,
		JobDuration:   cfg.Demo.JobDuration,
		Jobs:          cfg.Demo.Jobs,
		Cooperative:   cfg.Demo.Cooperative,
	}, demo.WithLogger(log.With("component", "demo")))

	// Hooks run in reverse: stats first, metrics server last.
	if cfg.Metrics.Addr != "" {
		stop, err := serveMetrics(cfg.Metrics.Addr, metrics, log)
		if err != nil {
			return err
		}
		r.OnCleanup(stop)
	}

	if c.Bool("watch-config") && flags.Config != "" {
		stop, err := watchConfig(flags.Config, flagOverrides(c), log)
		if err != nil {
			return err
		}
		r.OnCleanup(stop)
	}

	r.OnCleanup(func(context.Context) error {
		stats := workload.Stats()
		log.Info("demo workload finished",
			"dispatched", stats.Dispatched,
			"completed", stats.Completed,
			"interrupted", stats.Interrupted,
			"rejected", stats.Rejected)
		return printStats(c.App.Writer, flags.Output, stats)
	})

	if code := r.Run(workload.Run); code != runner.ExitOK {
		return cli.Exit("", code)
	}
	return nil
}

// serveMetrics starts the /metrics endpoint and returns its cleanup hook.
func serveMetrics(addr string, metrics *metric.Registry, log logger.Logger) (runner.CleanupFunc, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listen: %w", err)
	}

	srv := metric.NewServer(addr, metrics)
	log.Info("metrics server listening", "addr", ln.Addr().String())
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server error", "error", err)
		}
	}()

	return func(ctx context.Context) error {
		log.Info("stopping metrics server")
		return srv.Shutdown(ctx)
	}, nil
}

// watchConfig reloads the log level whenever the config file changes.
func watchConfig(path string, overrides map[string]any, log logger.Logger) (runner.CleanupFunc, error) {
	w, err := confloader.NewWatcher(path, confloader.WithWatcherLogger(log.With("component", "confloader")))
	if err != nil {
		return nil, fmt.Errorf("watch config: %w", err)
	}

	w.OnChange(func(string) {
		cfg, err := config.Load(path, overrides)
		if err != nil {
			log.Warn("config reload failed", "error", err)
			return
		}
		before := logger.GetLevel()
		logger.SetLevel(cfg.Log.Level)
		if after := logger.GetLevel(); after != before {
			log.Info("log level changed", "from", before, "to", after)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	return func(context.Context) error {
		cancel()
		<-done
		return nil
	}, nil
}

func printStats(w io.Writer, format output.Format, stats demo.Stats) error {
	if format == output.FormatText {
		_, err := fmt.Fprintln(w, stats.String())
		return err
	}
	return output.NewFormatter(format).Format(w, stats)
}
