// Package command defines the gracerun CLI using urfave/cli/v2:
//
//   - root.go: App, global flags, config loading
//   - run.go: "run" hosts the demo workload under the graceful runner
//   - config.go: "config show" and "config validate"
//   - version.go: "version"
package command
