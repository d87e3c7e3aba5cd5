// Package cli implements the cobra-based command line for max-parent-pfx-len.
//
// The tool has a single root command: it takes a comma-separated list of
// prefix lengths and prints the shortest parent prefix length able to hold
// them. Batch plans (--file) reuse the same command. This file defines the
// command, its flags and the error handling shared by both modes.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/max-parent-pfx-len/internal/model"
)

// Global flag variables. These are bound to cobra flags on the root command.
var (
	// jsonOutput controls whether output is formatted as JSON.
	jsonOutput bool

	// verbose enables trace output on stderr.
	verbose bool
)

// verboseOut is where VerboseLog writes. Tests swap it for a buffer.
var verboseOut io.Writer = os.Stderr

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// rootFlags holds the flag values that only the root command uses.
type rootFlags struct {
	// ipv6 selects the 128-bit address family instead of IPv4.
	ipv6 bool

	// file is the path of a batch plan. Empty means single-shot mode.
	file string
}

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "max-parent-pfx-len <prefix_lengths>",
		Short: "Compute the shortest parent prefix able to hold child prefixes",
		Long: `max-parent-pfx-len computes the length of the smallest single parent prefix
whose address block is large enough for the combined address space of one or
more child prefixes. Only sizes are considered, not address alignment.

Provide one or more prefix lengths separated by commas. IPv4 is assumed
unless --ipv6 is given.

Examples:
  max-parent-pfx-len 26,27,28,29
  max-parent-pfx-len --ipv6 96,96,97,97
  max-parent-pfx-len --json 24,24
  max-parent-pfx-len --file plans.yaml
  cat inputs.txt | max-parent-pfx-len --file -`,

		Args: cobra.MaximumNArgs(1),

		// Errors and usage are printed by Execute, in text or JSON.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			width := model.BitWidthIPv4
			if flags.ipv6 {
				width = model.BitWidthIPv6
			}

			if flags.file != "" {
				if len(args) > 0 {
					return model.NewCLIError(model.ExitGeneralError,
						"prefix lengths cannot be combined with --file")
				}
				return runBatch(cmd.OutOrStdout(), flags.file, width)
			}

			if len(args) == 0 {
				return model.NewCLIError(model.ExitGeneralError,
					"missing prefix lengths: provide a comma-separated list such as 26,27,28")
			}
			return runCompute(cmd.OutOrStdout(), args[0], width)
		},
	}

	rootCmd.Flags().BoolVarP(&flags.ipv6, "ipv6", "6", false, "Treat prefix lengths as IPv6 (128-bit) instead of IPv4")
	rootCmd.Flags().StringVarP(&flags.file, "file", "f", "",
		"Compute every set in a plan file (.yaml, .json, .jsonc, or one list per line; - for stdin)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return rootCmd
}

// Execute runs the root command and exits the process with the resulting
// exit code. This is the main entry point called from main.go.
func Execute(rootCmd *cobra.Command) {
	os.Exit(Run(rootCmd))
}

// Run executes rootCmd and returns the exit code instead of exiting.
//
// Failures are printed to the command's standard output, matching the
// contract that both results and errors go to stdout.
func Run(rootCmd *cobra.Command) int {
	err := rootCmd.Execute()
	if err == nil {
		return int(model.ExitSuccess)
	}

	out := rootCmd.OutOrStdout()

	var cliErr *model.CLIError
	if errors.As(err, &cliErr) {
		printError(out, cliErr.Message, cliErr.Err, err)
		return int(cliErr.Code)
	}

	printError(out, err.Error(), nil, err)
	return int(model.ExitGeneralError)
}

// errorJSON is the JSON shape of a failure.
type errorJSON struct {
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Input   string `json:"input,omitempty"`
}

// newErrorJSON builds the JSON error object, pulling kind and input from
// a PrefixError anywhere in the cause chain.
func newErrorJSON(message string, underlying, cause error) errorJSON {
	e := errorJSON{Message: message}
	if underlying != nil {
		e.Detail = underlying.Error()
	}

	var pe *model.PrefixError
	if errors.As(cause, &pe) {
		e.Kind = pe.Kind.String()
		e.Input = pe.Input
	}
	return e
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag. cause is the full error
// as returned by the command, used to classify it in JSON output.
func printError(w io.Writer, message string, underlying, cause error) {
	if jsonOutput {
		data, _ := json.MarshalIndent(map[string]errorJSON{
			"error": newErrorJSON(message, underlying, cause),
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	if underlying != nil {
		fmt.Fprintf(w, "%s: %v\n", message, underlying)
	} else {
		fmt.Fprintln(w, message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(verboseOut, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
