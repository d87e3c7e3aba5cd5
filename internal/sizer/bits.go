package sizer

import (
	"fmt"
	"math/big"

	"github.com/shinji-kodama/max-parent-pfx-len/internal/model"
)

// BitLength returns the number of bits needed to represent the
// non-negative integer n. BitLength(0) is 0, BitLength(1) is 1 and
// BitLength(2^k) is k+1.
//
// It panics if n is negative; callers only ever pass aggregate-1 with an
// aggregate of at least 1.
func BitLength(n *big.Int) int {
	if n.Sign() < 0 {
		panic(fmt.Sprintf("sizer: BitLength of negative value %s", n))
	}
	return n.BitLen()
}

// BlockSize returns the number of addresses covered by a prefix of the
// given length: 2^(width - length). The caller must have validated
// 0 <= length <= width.
func BlockSize(length int, width model.BitWidth) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(int(width)-length))
}
