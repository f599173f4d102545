package intervalops

import (
	"fmt"

	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/interval"
	"github.com/hdlflow/bvintervals/intervalset"
	"github.com/hdlflow/bvintervals/ternary"
)

// extractTernaryInterval computes the ternary vector for a single
// interval: the longest common most-significant-bit prefix of Lo and
// Hi is known, the remaining low-order suffix is unknown.
func extractTernaryInterval(iv interval.Interval) ternary.Vector {
	width := iv.Width()
	v := ternary.New(width)
	for i := width - 1; i >= 0; i-- {
		loBit := iv.Lo.Bit(i)
		hiBit := iv.Hi.Bit(i)
		if loBit != hiBit {
			break
		}
		if loBit {
			v[i] = ternary.One
		} else {
			v[i] = ternary.Zero
		}
	}
	return v
}

// ExtractTernary computes the tightest ternary vector consistent with
// every value in a normalized, non-empty IntervalSet. Every value in
// the set is guaranteed to match the resulting vector; the converse
// need not hold. Panics if s is empty or not normalized.
func ExtractTernary(s intervalset.IntervalSet) ternary.Vector {
	if s.IsEmpty() {
		panic("intervalops: ExtractTernary: empty interval set")
	}
	if !s.IsNormalized() {
		panic("intervalops: ExtractTernary: interval set is not normalized")
	}
	ivs := s.Intervals()
	result := extractTernaryInterval(ivs[0])
	for _, iv := range ivs[1:] {
		result = ternary.Meet(result, extractTernaryInterval(iv))
	}
	return result
}

// ExtractKnownBits derives the known-bits mask/value pair for a
// normalized, non-empty IntervalSet via ExtractTernary.
func ExtractKnownBits(s intervalset.IntervalSet) ternary.KnownBits {
	return ternary.ToKnownBits(ExtractTernary(s))
}

// DefaultFromTernaryBudget is the interval-count budget used by
// callers (bitwise ops) that don't have a caller-specified budget of
// their own.
const DefaultFromTernaryBudget = 16

// FromTernary converts a ternary vector back into an IntervalSet with
// at most maxIntervals intervals (one, if maxIntervals is zero). Bits
// below the lowest known bit (plus however many further low-order bits
// are needed to leave at most maxIntervals unknown bits above them)
// collapse into a single contiguous low-order run; every remaining
// combination of unknown high bits is enumerated as its own interval,
// and the result is then minimized to the budget. Panics if
// maxIntervals is negative.
func FromTernary(t ternary.Vector, maxIntervals int) intervalset.IntervalSet {
	if maxIntervals < 0 {
		panic(fmt.Sprintf("intervalops: FromTernary: negative budget %d", maxIntervals))
	}
	width := len(t)
	if ternary.IsFullyKnown(t) {
		return intervalset.Precise(ternary.ToKnownBitsValues(t))
	}

	// lsbXs is how many of the lowest bits are folded into a single
	// unknown low-order run.
	lsbXs := 0
	for lsbXs < width && !ternary.IsKnown(t[lsbXs]) {
		lsbXs++
	}
	// Walk the remaining bits from just above lsbXs upward, tracking a
	// sliding window of unknown-bit positions sized at most
	// maxIntervals+1; once it overflows, absorb the oldest (lowest)
	// unknown position into the low-order run.
	var xLocations []int
	for i := lsbXs; i < width; i++ {
		if !ternary.IsKnown(t[i]) {
			xLocations = append(xLocations, i)
			if len(xLocations) > maxIntervals+1 {
				xLocations = xLocations[1:]
			}
		}
	}
	if len(xLocations) > maxIntervals {
		lsbXs = xLocations[0] + 1
		xLocations = xLocations[1:]
	}

	bld := intervalset.NewBuilder(width)
	if len(xLocations) == 0 {
		highBits := ternary.ToKnownBitsValues(t[lsbXs:])
		lo := bits.Concat(highBits, bits.Zero(lsbXs))
		hi := bits.Concat(highBits, bits.AllOnes(lsbXs))
		bld.Add(interval.New(lo, hi))
		return bld.Build()
	}

	highVec := make(ternary.Vector, width-lsbXs)
	copy(highVec, t[lsbXs:])
	for _, v := range ternary.AllBitsValues(highVec) {
		lo := bits.Concat(v, bits.Zero(lsbXs))
		hi := bits.Concat(v, bits.AllOnes(lsbXs))
		bld.Add(interval.New(lo, hi))
	}
	return MinimizeIntervals(bld.Build(), bits.MaxInt(maxIntervals, 1))
}
