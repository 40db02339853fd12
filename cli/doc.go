// Package cli contains the command line interface for sweep.
//
// # Usage
//
// The default command expands a sweep file and runs every enumerated
// command line:
//
//	sweep run -f grid.yaml
//	sweep run -n -f grid.yaml          # print instead of execute
//	sweep run -f grid.yaml mode=fast   # pin a selection variable
//
// Trailing positional arguments are variable overrides of the form
// name=value (an optional @ prefix is accepted). Anything else is rejected
// before expansion begins.
//
// The fmt command reparses a sweep file and prints it in canonical form.
//
// # Configuration
//
// Flag defaults may be supplied by a YAML configuration file, a flat
// mapping from flag name to value:
//
//	log-level: debug
//	log-format: text
//
// The file is looked up in the user configuration directory (for example
// ~/.config/sweep/config.yaml). Command-line flags override it.
//
// # Logging Options
//
//   - --log-level: minimum log level (debug, info, warn, error)
//   - --log-format: log output format (text, json)
//   - --log-time-layout: timestamp layout (RFC3339, Stamp, none, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorized text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof ./...
//
//	sweep --pprof-mode=cpu run -f grid.yaml
package cli
