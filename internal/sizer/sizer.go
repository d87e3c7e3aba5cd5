package sizer

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/shinji-kodama/max-parent-pfx-len/internal/model"
)

// minPrefixLength is the shortest child prefix accepted. A /0 child would
// already be the whole address space and has no parent.
const minPrefixLength = 1

// Compute parses the prefix lengths and returns the length of the
// smallest parent prefix whose block is at least as large as the sum of
// the children's blocks.
//
// Elements may carry surrounding whitespace (" 26" is accepted) but must
// otherwise be base-10 integers. The first violation found is returned as
// a *model.PrefixError; no partial result is produced.
func Compute(lengths []string, width model.BitWidth) (int, error) {
	agg, err := Analyze(lengths, width)
	if err != nil {
		return 0, err
	}
	return agg.ParentLength, nil
}

// ComputeLengths is Compute for callers that already hold integers.
func ComputeLengths(lengths []int, width model.BitWidth) (int, error) {
	agg, err := AnalyzeLengths(lengths, width)
	if err != nil {
		return 0, err
	}
	return agg.ParentLength, nil
}

// Analyze is Compute returning the full breakdown of the computation:
// per-child block sizes, the aggregate size and the parent block size.
func Analyze(lengths []string, width model.BitWidth) (*model.Aggregate, error) {
	parsed, err := ParseLengths(lengths, width)
	if err != nil {
		return nil, err
	}
	return AnalyzeLengths(parsed, width)
}

// AnalyzeLengths is Analyze for callers that already hold integers.
func AnalyzeLengths(lengths []int, width model.BitWidth) (*model.Aggregate, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	if len(lengths) == 0 {
		return nil, errNoLengths()
	}

	// Validate everything before any arithmetic so the first violation
	// wins, matching the element order the caller supplied.
	for _, pl := range lengths {
		if err := validateLength(pl, width); err != nil {
			return nil, err
		}
	}

	agg := &model.Aggregate{
		Width:      width,
		Family:     width.String(),
		Lengths:    append([]int(nil), lengths...),
		BlockSizes: make([]*big.Int, 0, len(lengths)),
		Size:       new(big.Int),
	}
	for _, pl := range lengths {
		block := BlockSize(pl, width)
		agg.BlockSizes = append(agg.BlockSizes, block)
		agg.Size.Add(agg.Size, block)
	}

	parent, err := ParentLength(agg.Size, width)
	if err != nil {
		return nil, err
	}
	agg.ParentLength = parent
	agg.ParentSize = BlockSize(parent, width)
	return agg, nil
}

// ParentLength derives the shortest prefix length whose block holds size
// addresses. size must be at least 1.
//
// A parent length of 0 (the whole address space) is valid; only a
// negative result, meaning more addresses than the family has, fails
// with model.ErrUnrepresentable.
func ParentLength(size *big.Int, width model.BitWidth) (int, error) {
	if size.Sign() <= 0 {
		return 0, fmt.Errorf("aggregate size must be positive, got %s", size)
	}

	// Subtract one so exact powers of two fit tightly.
	b := BitLength(new(big.Int).Sub(size, big.NewInt(1)))

	parent := int(width) - b
	if parent < 0 {
		return 0, model.NewPrefixError(model.KindResult, "",
			"input prefix lengths too large to compute parent length")
	}
	return parent, nil
}

// ParseLengths converts textual prefix lengths to integers and checks
// each against the 1..width range.
//
// Every element is parsed before any is range-checked, so a list holding
// both a non-integer and an out-of-range value reports the parse error.
func ParseLengths(lengths []string, width model.BitWidth) ([]int, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	if len(lengths) == 0 {
		return nil, errNoLengths()
	}

	parsed := make([]int, len(lengths))
	overflowed := make([]bool, len(lengths))
	for i, raw := range lengths {
		pl, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			// A syntactically valid integer too large for int is still an
			// integer, so it is reported as out of range rather than unparseable.
			if errors.Is(err, strconv.ErrRange) {
				overflowed[i] = true
				continue
			}
			return nil, model.NewPrefixError(model.KindParse, raw,
				fmt.Sprintf("only numbers are accepted: %q is not an integer", raw))
		}
		parsed[i] = pl
	}

	for i, pl := range parsed {
		if overflowed[i] {
			return nil, errOutOfRange(lengths[i], width)
		}
		if err := validateLength(pl, width); err != nil {
			return nil, err
		}
	}
	return parsed, nil
}

// SplitList splits a comma-separated list of prefix lengths as accepted
// on the command line ("26,27,28,29"). Elements are returned untrimmed;
// ParseLengths handles surrounding whitespace.
func SplitList(s string) []string {
	return strings.Split(s, ",")
}

// validateLength enforces 1 <= pl <= width.
func validateLength(pl int, width model.BitWidth) error {
	if pl < minPrefixLength || pl > int(width) {
		return errOutOfRange(strconv.Itoa(pl), width)
	}
	return nil
}

func checkWidth(width model.BitWidth) error {
	if !width.IsValid() {
		return fmt.Errorf("unsupported bit width %d (valid: %d, %d)",
			int(width), int(model.BitWidthIPv4), int(model.BitWidthIPv6))
	}
	return nil
}

func errOutOfRange(input string, width model.BitWidth) error {
	return model.NewPrefixError(model.KindOutOfRange, input,
		fmt.Sprintf("prefix length %s out of range: has to be between %d and %d inclusive",
			strings.TrimSpace(input), minPrefixLength, int(width)))
}

func errNoLengths() error {
	return model.NewPrefixError(model.KindParse, "",
		"only numbers are accepted: no prefix lengths supplied")
}
