// Package confloader loads gracerun configuration.
//
// It uses koanf with three sources, later ones overriding earlier ones:
//
//  1. YAML configuration file
//  2. Environment variables (GRACERUN_SECTION_KEY)
//  3. Command-line flag overrides, passed as a map
//
// Values absent from every source keep whatever the target struct held
// before loading, so callers start from config.Default().
//
// Watcher reports writes to the configuration file so that runtime
// settings such as the log level can be reloaded.
package confloader
