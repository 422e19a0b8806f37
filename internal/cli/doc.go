// Package cli implements the kalias command-line interface.
//
// Every command follows the same pipeline: load and validate the config,
// overlay the flags the user set, compile the fragment table (built-in
// kubectl table or a --table file), then hand the compiled table to the
// generator and report the result.
//
// # Command Structure
//
//	kalias                  - Write every alias to stdout (same as generate)
//	kalias generate         - Write every alias to stdout
//	kalias stats            - Per-group selection counts and run totals
//	kalias explain <alias>  - Show what alias names expand to
//	kalias check            - Validate the config and the table only
//	kalias version          - Print version information
//	kalias completion       - Shell completion scripts (provided by Cobra)
//
// # Flag Handling
//
// Global flags (--config, --verbose, --no-color) and the table flags
// (--table, --separator, --max-unordered) are persistent on the root
// command. The output flags (--format, --header, --no-header) exist on the
// root command and on generate. A flag only overrides the config file when
// the user actually set it.
package cli
