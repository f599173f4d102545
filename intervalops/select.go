package intervalops

import (
	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/intervalset"
	"github.com/hdlflow/bvintervals/ternary"
)

// Gate returns the abstraction of selecting between val and zero based
// on a 1-bit condition: precisely-zero conditions force zero,
// precisely-nonzero conditions pass val through unchanged, and
// conditions that might be either mix the two.
func Gate(cond, val intervalset.IntervalSet) intervalset.IntervalSet {
	if cond.Width() != 1 {
		panic("intervalops: Gate: condition must be 1 bit wide")
	}
	zero := intervalset.Precise(bits.Zero(val.Width()))
	if cond.IsPrecise() {
		if cond.CoversZero() {
			return zero
		}
		return val
	}
	if cond.CoversZero() {
		return intervalset.Combine(val, zero)
	}
	return val
}

// Side selects which end of a value OneHot scans from.
type Side int

const (
	// Lsb scans from the least-significant bit toward the most
	// significant.
	Lsb Side = iota
	// Msb scans from the most-significant bit toward the least
	// significant.
	Msb
)

// OneHot lifts val to a ternary vector, evaluates the ternary one-hot
// encoder for the requested scan direction, and lowers the result back
// to an IntervalSet with at most maxIntervalBits budget (see
// FromTernary for what that budget bounds). The result is one bit
// wider than val.
func OneHot(val intervalset.IntervalSet, side Side, maxIntervalBits int) intervalset.IntervalSet {
	src := ExtractTernary(val)
	var res ternary.Vector
	switch side {
	case Lsb:
		res = ternary.OneHotLsbToMsb(src)
	case Msb:
		res = ternary.OneHotMsbToLsb(src)
	default:
		panic("intervalops: OneHot: unknown side")
	}
	return FromTernary(res, maxIntervalBits)
}
