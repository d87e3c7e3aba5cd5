// Package model defines the domain types for the max-parent-pfx-len CLI.
//
// All entities in this package are transient: they describe the inputs
// and outputs of one parent-prefix computation and are never persisted.
package model

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// BitWidth is the total number of address bits of an address family.
// It selects the domain against which prefix lengths are validated and
// is fixed for the duration of a single computation.
type BitWidth int

const (
	// BitWidthIPv4 is the address length of IPv4, in bits.
	BitWidthIPv4 BitWidth = 32

	// BitWidthIPv6 is the address length of IPv6, in bits.
	BitWidthIPv6 BitWidth = 128
)

// String returns the address family name for the width ("ipv4" or "ipv6").
// Unsupported widths are rendered as their bare bit count.
func (w BitWidth) String() string {
	switch w {
	case BitWidthIPv4:
		return "ipv4"
	case BitWidthIPv6:
		return "ipv6"
	default:
		return fmt.Sprintf("%d-bit", int(w))
	}
}

// IsValid checks whether the BitWidth is one of the supported families.
func (w BitWidth) IsValid() bool {
	return w == BitWidthIPv4 || w == BitWidthIPv6
}

// ParseBitWidth converts a family name or bit count to a BitWidth.
// Accepted spellings (case insensitive): ipv4, v4, 4, 32, ipv6, v6, 6, 128.
func ParseBitWidth(s string) (BitWidth, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ipv4", "v4", "4", "32":
		return BitWidthIPv4, nil
	case "ipv6", "v6", "6", "128":
		return BitWidthIPv6, nil
	default:
		return 0, fmt.Errorf("invalid address family: %q (valid: ipv4, ipv6)", s)
	}
}

// ErrorKind classifies why a computation was rejected.
type ErrorKind string

const (
	// KindParse indicates a supplied prefix length is not an integer.
	KindParse ErrorKind = "parse"

	// KindOutOfRange indicates a prefix length outside 1..width.
	KindOutOfRange ErrorKind = "out-of-range"

	// KindResult indicates the combined address space cannot be expressed
	// as a single prefix of the chosen family.
	KindResult ErrorKind = "result"
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	return string(k)
}

// Sentinel error categories. PrefixError values match them via errors.Is,
// so callers can branch on the category without inspecting messages.
var (
	// ErrInvalidInput covers both KindParse and KindOutOfRange.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnrepresentable covers KindResult.
	ErrUnrepresentable = errors.New("unrepresentable")
)

// PrefixError describes the first violation found while computing a
// parent prefix length.
type PrefixError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Message is the human-readable description printed by the CLI.
	Message string

	// Input is the offending element as supplied, if the failure is tied
	// to a single element. Empty for result errors.
	Input string
}

// Error satisfies the error interface.
func (e *PrefixError) Error() string {
	return e.Message
}

// Is maps the error kind onto its sentinel category.
func (e *PrefixError) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindParse || e.Kind == KindOutOfRange
	case ErrUnrepresentable:
		return e.Kind == KindResult
	default:
		return false
	}
}

// NewPrefixError creates a PrefixError of the given kind.
func NewPrefixError(kind ErrorKind, input, message string) *PrefixError {
	return &PrefixError{Kind: kind, Input: input, Message: message}
}

// KindOf returns the ErrorKind carried by err, or "" when err is not
// (and does not wrap) a PrefixError.
func KindOf(err error) ErrorKind {
	var pe *PrefixError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// Aggregate is the full breakdown of one parent-prefix computation.
//
// Block sizes are kept as *big.Int because IPv6 sums routinely reach
// 2^128, which no fixed-width integer can hold.
type Aggregate struct {
	// Width is the address family the computation ran against.
	Width BitWidth `json:"-"`

	// Family is Width rendered as a name, for JSON output.
	Family string `json:"family"`

	// Lengths holds the validated child prefix lengths, in input order.
	Lengths []int `json:"lengths"`

	// BlockSizes holds 2^(width-length) for each child, in input order.
	BlockSizes []*big.Int `json:"blockSizes"`

	// Size is the sum of all child block sizes.
	Size *big.Int `json:"aggregateSize"`

	// ParentLength is the minimal covering prefix length.
	ParentLength int `json:"parentLength"`

	// ParentSize is the block size of the parent prefix.
	ParentSize *big.Int `json:"parentSize"`
}

// Spare returns the number of addresses in the parent block left over
// once every child block has been placed.
func (a *Aggregate) Spare() *big.Int {
	return new(big.Int).Sub(a.ParentSize, a.Size)
}

// ExitCode defines the CLI exit codes. These codes allow scripts (for
// example an xargs pipeline over a file of inputs) to detect failures.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates a validation or computation failure, or
	// any other error.
	ExitGeneralError ExitCode = 1
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
