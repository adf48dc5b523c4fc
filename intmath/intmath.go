// Copyright (C) 2025-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package intmath provides special-case integer arithmetic for buffer
// management.
package intmath

import (
	"golang.org/x/exp/constraints"
)

// BoundedDouble returns `min(2*n,ceil)` without overflow. A non-positive `n`
// is treated as 1, so the result always makes progress towards `ceil`.
func BoundedDouble[T constraints.Integer](n, ceil T) T {
	if n <= 0 {
		return min(1, ceil)
	}
	// `n > ceil-n` is equivalent to `2*n > ceil` but can't overflow.
	if n > ceil-n {
		return ceil
	}
	return 2 * n
}

// BoundedHalve returns `max(n/2,floor)`.
func BoundedHalve[T constraints.Integer](n, floor T) T {
	return max(n/2, floor)
}

// Mod returns the non-negative remainder of `i/n`, i.e. it wraps `i` into
// `[0,n)` even if `i` is negative. It panics if `n` is zero.
func Mod[T constraints.Signed](i, n T) T {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}

// RingDistance returns the number of steps required to move forward from
// `from` to `to` in a ring of length `n`. Both MUST be in `[0,n)`.
func RingDistance[T constraints.Signed](from, to, n T) T {
	return Mod(to-from, n)
}
