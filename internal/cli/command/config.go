package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/gracerun/internal/cli/output"
	"github.com/yndnr/gracerun/internal/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (defaults, file, env and flags merged)",
				Action: configShow,
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "FILE",
				Action:    configValidate,
			},
			{
				Name:   "default",
				Usage:  "Print the default configuration as YAML",
				Action: configDefault,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	flags, err := ParseGlobalFlags(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	return output.NewFormatter(flags.Output).Format(c.App.Writer, cfg)
}

func configValidate(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = c.String("config")
	}
	if path == "" {
		return cli.Exit("config validate: FILE is required", 2)
	}

	if _, err := config.Load(path, nil); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(c.App.Writer, "%s: configuration is valid\n", path)
	return nil
}

func configDefault(c *cli.Context) error {
	return (&output.YAMLFormatter{}).Format(c.App.Writer, config.Default())
}
