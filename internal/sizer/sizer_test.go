package sizer

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/max-parent-pfx-len/internal/model"
)

// TestComputeLengths_IPv4 covers the IPv4 scenarios, including the tight
// power-of-two fit and the one-extra-bit case for non-exact sums.
func TestComputeLengths_IPv4(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
		want    int
	}{
		// 64+32+16+8 = 120 addresses fit in a /25 (128).
		{"mixed children", []int{26, 27, 28, 29}, 25},
		{"single host", []int{32}, 32},
		{"half the address space", []int{1}, 1},
		{"two equal blocks", []int{24, 24}, 23},
		{"four equal blocks", []int{26, 26, 26, 26}, 24},
		{"exact power of two from mixed sizes", []int{25, 26, 26}, 24},
		{"power of two plus one", []int{25, 32}, 24},
		{"power of two alone", []int{25}, 25},
		{"two host routes", []int{32, 32}, 31},
		{"three host routes", []int{32, 32, 32}, 30},
		{"whole address space", []int{1, 1}, 0},
		{"whole address space from quarters", []int{2, 2, 2, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeLengths(tt.lengths, model.BitWidthIPv4)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestComputeLengths_IPv6 covers sums beyond 64 bits, which would
// overflow fixed-width arithmetic.
func TestComputeLengths_IPv6(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
		want    int
	}{
		// 2*2^32 + 2*2^31 = 3*2^32 needs a 2^34 block.
		{"pairs at 96 and 97", []int{96, 96, 97, 97}, 94},
		{"pairs at 97 only", []int{97, 97}, 96},
		{"single host", []int{128}, 128},
		{"half the address space", []int{1}, 1},
		{"two /64s", []int{64, 64}, 63},
		{"whole address space", []int{1, 1}, 0},
		{"top half plus a host", []int{1, 128}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeLengths(tt.lengths, model.BitWidthIPv6)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestComputeLengths_EqualPairs verifies that two equal blocks always
// combine into one block one bit shorter, for every valid length.
func TestComputeLengths_EqualPairs(t *testing.T) {
	for _, width := range []model.BitWidth{model.BitWidthIPv4, model.BitWidthIPv6} {
		for k := 1; k <= int(width); k++ {
			got, err := ComputeLengths([]int{k, k}, width)
			require.NoError(t, err, "width=%d k=%d", width, k)
			assert.Equal(t, k-1, got, "width=%d k=%d", width, k)
		}
	}
}

// TestComputeLengths_SingleElement verifies a lone child is its own parent.
func TestComputeLengths_SingleElement(t *testing.T) {
	for _, width := range []model.BitWidth{model.BitWidthIPv4, model.BitWidthIPv6} {
		for k := 1; k <= int(width); k++ {
			got, err := ComputeLengths([]int{k}, width)
			require.NoError(t, err)
			assert.Equal(t, k, got)
		}
	}
}

// TestComputeLengths_ResultWithinRange checks every successful result lies
// in [0, width] across a spread of inputs.
func TestComputeLengths_ResultWithinRange(t *testing.T) {
	inputs := [][]int{
		{1}, {32}, {8, 16, 24}, {30, 30, 30}, {2, 3, 4, 5, 6}, {1, 2, 3},
	}
	for _, in := range inputs {
		got, err := ComputeLengths(in, model.BitWidthIPv4)
		require.NoError(t, err, "input %v", in)
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 32)
	}
}

// TestCompute_Strings verifies the textual entry point, including
// whitespace tolerance.
func TestCompute_Strings(t *testing.T) {
	got, err := Compute([]string{"26", " 27", "28 ", "\t29"}, model.BitWidthIPv4)
	require.NoError(t, err)
	assert.Equal(t, 25, got)

	got, err = Compute([]string{"+32"}, model.BitWidthIPv4)
	require.NoError(t, err)
	assert.Equal(t, 32, got)
}

// TestCompute_Idempotent verifies repeated calls give identical output.
func TestCompute_Idempotent(t *testing.T) {
	in := []string{"96", "96", "97", "97"}
	first, err := Compute(in, model.BitWidthIPv6)
	require.NoError(t, err)
	second, err := Compute(in, model.BitWidthIPv6)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"96", "96", "97", "97"}, in, "input must not be modified")
}

// TestCompute_Errors checks each failure kind and that the first
// violation is reported.
func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		lengths  []string
		width    model.BitWidth
		kind     model.ErrorKind
		sentinel error
		contains string
	}{
		{"not a number", []string{"abc"}, model.BitWidthIPv4, model.KindParse, model.ErrInvalidInput, "only numbers are accepted"},
		{"empty element", []string{""}, model.BitWidthIPv4, model.KindParse, model.ErrInvalidInput, "only numbers are accepted"},
		{"float", []string{"24.5"}, model.BitWidthIPv4, model.KindParse, model.ErrInvalidInput, "only numbers are accepted"},
		{"no elements", []string{}, model.BitWidthIPv4, model.KindParse, model.ErrInvalidInput, "no prefix lengths"},
		{"zero", []string{"0"}, model.BitWidthIPv4, model.KindOutOfRange, model.ErrInvalidInput, "between 1 and 32"},
		{"negative", []string{"-1"}, model.BitWidthIPv4, model.KindOutOfRange, model.ErrInvalidInput, "between 1 and 32"},
		{"above IPv4 width", []string{"33"}, model.BitWidthIPv4, model.KindOutOfRange, model.ErrInvalidInput, "between 1 and 32"},
		{"above IPv6 width", []string{"129"}, model.BitWidthIPv6, model.KindOutOfRange, model.ErrInvalidInput, "between 1 and 128"},
		{"beyond int", []string{"99999999999999999999999"}, model.BitWidthIPv4, model.KindOutOfRange, model.ErrInvalidInput, "out of range"},
		{"parse error wins over earlier range error", []string{"0", "abc"}, model.BitWidthIPv4, model.KindParse, model.ErrInvalidInput, "only numbers"},
		{"three halves", []string{"1", "1", "1"}, model.BitWidthIPv4, model.KindResult, model.ErrUnrepresentable, "too large"},
		{"whole space plus a host", []string{"1", "1", "32"}, model.BitWidthIPv4, model.KindResult, model.ErrUnrepresentable, "too large"},
		{"IPv6 overflow", []string{"1", "1", "128"}, model.BitWidthIPv6, model.KindResult, model.ErrUnrepresentable, "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.lengths, tt.width)
			require.Error(t, err)
			assert.Equal(t, tt.kind, model.KindOf(err))
			assert.True(t, errors.Is(err, tt.sentinel), "expected %v, got %v", tt.sentinel, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

// TestCompute_FirstOutOfRangeReported verifies the earliest offending
// element is the one named in the message.
func TestCompute_FirstOutOfRangeReported(t *testing.T) {
	_, err := Compute([]string{"24", "40", "0"}, model.BitWidthIPv4)
	require.Error(t, err)

	var pe *model.PrefixError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "40", pe.Input)
}

// TestCompute_UnsupportedWidth rejects widths other than 32 and 128.
func TestCompute_UnsupportedWidth(t *testing.T) {
	_, err := Compute([]string{"24"}, model.BitWidth(64))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported bit width")

	_, err = ComputeLengths([]int{24}, model.BitWidth(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported bit width")
}

// TestAnalyzeLengths verifies the breakdown returned alongside the result.
func TestAnalyzeLengths(t *testing.T) {
	agg, err := AnalyzeLengths([]int{26, 27, 28, 29}, model.BitWidthIPv4)
	require.NoError(t, err)

	assert.Equal(t, model.BitWidthIPv4, agg.Width)
	assert.Equal(t, "ipv4", agg.Family)
	assert.Equal(t, []int{26, 27, 28, 29}, agg.Lengths)
	require.Len(t, agg.BlockSizes, 4)
	assert.Equal(t, int64(64), agg.BlockSizes[0].Int64())
	assert.Equal(t, int64(8), agg.BlockSizes[3].Int64())
	assert.Equal(t, int64(120), agg.Size.Int64())
	assert.Equal(t, 25, agg.ParentLength)
	assert.Equal(t, int64(128), agg.ParentSize.Int64())
	assert.Equal(t, int64(8), agg.Spare().Int64())
}

// TestAnalyzeLengths_IPv6WholeSpace verifies a 2^128 aggregate is held
// exactly and yields parent length 0.
func TestAnalyzeLengths_IPv6WholeSpace(t *testing.T) {
	agg, err := AnalyzeLengths([]int{1, 1}, model.BitWidthIPv6)
	require.NoError(t, err)

	want := new(big.Int).Lsh(big.NewInt(1), 128)
	assert.Equal(t, 0, want.Cmp(agg.Size), "aggregate = %s", agg.Size)
	assert.Equal(t, 0, agg.ParentLength)
	assert.Equal(t, 0, agg.Spare().Sign())
}

// TestParentLength_Boundary checks the 2^width boundary directly.
func TestParentLength_Boundary(t *testing.T) {
	whole := new(big.Int).Lsh(big.NewInt(1), 32)

	got, err := ParentLength(whole, model.BitWidthIPv4)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = ParentLength(new(big.Int).Add(whole, big.NewInt(1)), model.BitWidthIPv4)
	assert.True(t, errors.Is(err, model.ErrUnrepresentable))

	_, err = ParentLength(big.NewInt(0), model.BitWidthIPv4)
	assert.Error(t, err)
}

// TestSplitList verifies comma splitting as used by the CLI.
func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"26", "27", "28"}, SplitList("26,27,28"))
	assert.Equal(t, []string{"24"}, SplitList("24"))
	assert.Equal(t, []string{""}, SplitList(""))
	assert.Equal(t, []string{"24", ""}, SplitList("24,"))
}

// TestCompute_Concurrent exercises the function from several goroutines;
// run with -race to catch any shared state.
func TestCompute_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]int, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := Compute([]string{"96", "96", "97", "97"}, model.BitWidthIPv6)
			if err != nil {
				results[i] = -1
				return
			}
			results[i] = got
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, 94, got, fmt.Sprintf("goroutine %d", i))
	}
}
