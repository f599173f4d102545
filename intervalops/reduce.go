package intervalops

import (
	"github.com/hdlflow/bvintervals/intervalset"
	"github.com/hdlflow/bvintervals/ternary"
)

// AndReduce returns 1 iff a is precisely the maximal value, 0 if a
// cannot cover the maximal value, and unknown otherwise.
func AndReduce(a intervalset.IntervalSet) intervalset.IntervalSet {
	if !a.CoversMax() {
		return ternaryToOneBit(ternary.Zero)
	}
	if a.IsPrecise() {
		return ternaryToOneBit(ternary.One)
	}
	return ternaryToOneBit(ternary.Unknown)
}

// OrReduce returns 0 iff a is precisely zero, 1 if a cannot cover
// zero, and unknown otherwise.
func OrReduce(a intervalset.IntervalSet) intervalset.IntervalSet {
	if !a.CoversZero() {
		return ternaryToOneBit(ternary.One)
	}
	if a.IsPrecise() {
		return ternaryToOneBit(ternary.Zero)
	}
	return ternaryToOneBit(ternary.Unknown)
}

// XorReduce returns the shared parity of every value in a if a
// consists entirely of precise, same-parity singleton intervals, and
// unknown otherwise: incrementing any bit pattern always flips its
// parity, so any interval spanning more than one value makes the
// parity unknowable.
func XorReduce(a intervalset.IntervalSet) intervalset.IntervalSet {
	ivs := a.Intervals()
	if len(ivs) == 0 || !ivs[0].IsPrecise() {
		return ternaryToOneBit(ternary.Unknown)
	}
	v, _ := ivs[0].GetPreciseValue()
	parity := v.XorReduce()
	for _, iv := range ivs[1:] {
		if !iv.IsPrecise() {
			return ternaryToOneBit(ternary.Unknown)
		}
		val, _ := iv.GetPreciseValue()
		if !val.XorReduce().Equal(parity) {
			return ternaryToOneBit(ternary.Unknown)
		}
	}
	if parity.IsZero() {
		return ternaryToOneBit(ternary.Zero)
	}
	return ternaryToOneBit(ternary.One)
}
