package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/gracerun/internal/cli/output"
	"github.com/yndnr/gracerun/internal/config"
	"github.com/yndnr/gracerun/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gracerun",
		Usage:   "Run a workload with graceful shutdown on interrupt",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			RunCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
		// Exit codes are returned to the caller instead of calling os.Exit.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// Execute runs the application with args and returns the process exit
// status. Errors are printed to the app's error writer.
func Execute(app *cli.App, args []string) int {
	err := app.Run(args)
	if err == nil {
		return 0
	}

	errOut := app.ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		if msg := exitErr.Error(); msg != "" {
			PrintError(errOut, "%s", msg)
		}
		return exitErr.ExitCode()
	}

	PrintError(errOut, "%v", err)
	return 1
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
			EnvVars: []string{"GRACERUN_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json, yaml",
			Value:   string(output.FormatText),
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Config string
	Output output.Format
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) (*GlobalFlags, error) {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return nil, err
	}
	return &GlobalFlags{
		Config: c.String("config"),
		Output: format,
	}, nil
}

// flagKeys maps flags that override configuration to their config keys.
var flagKeys = []struct {
	flag string
	key  string
}{
	{"log-level", "log.level"},
	{"log-format", "log.format"},
	{"grace-period", "shutdown.grace_period"},
	{"cleanup-timeout", "shutdown.cleanup_timeout"},
	{"exit-on-return", "shutdown.exit_on_return"},
	{"metrics-addr", "metrics.addr"},
	{"workers", "demo.workers"},
	{"jobs-per-second", "demo.jobs_per_second"},
	{"job-duration", "demo.job_duration"},
	{"jobs", "demo.jobs"},
	{"cooperative", "demo.cooperative"},
}

// flagOverrides collects explicitly set flags as config overrides.
func flagOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	for _, fk := range flagKeys {
		if !c.IsSet(fk.flag) {
			continue
		}
		overrides[fk.key] = c.Value(fk.flag)
	}
	return overrides
}

// loadConfig builds the effective configuration for c.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"), flagOverrides(c))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// PrintError prints an error message to w.
func PrintError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", args...)
}
