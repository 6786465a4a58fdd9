// Package output formats gracerun command output.
//
//   - formatter.go: Formatter interface and factory
//   - text.go: aligned key/value listing
//   - json.go: JSON output
//   - yaml.go: YAML output
package output
