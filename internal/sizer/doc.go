// Package sizer computes the shortest parent prefix able to hold a set of
// child prefixes, measured purely by address count.
//
// The core algorithm is:
//
//	aggregate = Σ 2^(width - length)
//	parent    = width - BitLength(aggregate - 1)
//
// Subtracting one before taking the bit length makes an aggregate that is
// an exact power of two fit tightly (two /25s give a /24, not a /23),
// while any non-exact sum rounds up to the next power of two.
//
// All arithmetic runs on math/big integers: an IPv6 aggregate can reach
// 2^128, far beyond uint64. Functions in this package are pure and hold
// no state, so they are safe to call from multiple goroutines.
package sizer
