// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package queue

import (
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// IntegerHash is a [Hasher] returning the value itself.
func IntegerHash[T constraints.Integer](x T) uint64 {
	return uint64(x) //nolint:gosec // Wrapping of negative values is intended
}

// FloatHash is a [Hasher] returning the IEEE 754 bits of the value. Positive
// and negative zero have the same hash, as do all NaN values.
func FloatHash[T constraints.Float](x T) uint64 {
	switch {
	case x == 0:
		return 0
	case x != x: //nolint:gocritic // NaN
		return math.Float64bits(math.NaN())
	}
	return math.Float64bits(float64(x))
}

// BoolHash is a [Hasher] returning 1 for true and 0 for false.
func BoolHash[T ~bool](x T) uint64 {
	if x {
		return 1
	}
	return 0
}

// StringHash is a [Hasher] returning the xxHash64 digest of the value.
func StringHash[T ~string](x T) uint64 {
	return xxhash.Sum64String(string(x))
}
