// Package model defines the domain types and value objects for the
// max-parent-pfx-len CLI.
//
// This package contains pure data structures with no external dependencies.
// Nothing here has a lifecycle beyond a single computation: bit widths,
// prefix errors and aggregate breakdowns are created fresh on every call.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
