// Package cli wires together the Cobra command tree for the revet binary.
//
// It defines the root command and all subcommands (review, check, config,
// cache, init, version), binds flags, loads configuration, invokes the
// review engine, and returns deterministic exit codes for CI gating.
package cli
