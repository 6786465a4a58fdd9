package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/gracerun/internal/cli/output"
	"github.com/yndnr/gracerun/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			flags, err := ParseGlobalFlags(c)
			if err != nil {
				return err
			}
			if flags.Output == output.FormatText {
				_, err := c.App.Writer.Write([]byte("gracerun " + buildinfo.String() + "\n"))
				return err
			}
			return output.NewFormatter(flags.Output).Format(c.App.Writer, buildinfo.Get())
		},
	}
}
