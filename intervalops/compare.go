package intervalops

import (
	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/interval"
	"github.com/hdlflow/bvintervals/intervalset"
	"github.com/hdlflow/bvintervals/ternary"
)

// Eq returns 1 iff a and b are both precise and equal, 0 iff they are
// disjoint, and unknown otherwise.
func Eq(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	if a.IsPrecise() && b.IsPrecise() {
		av, _ := a.GetPreciseValue()
		bv, _ := b.GetPreciseValue()
		if av.Equal(bv) {
			return ternaryToOneBit(ternary.One)
		}
		return ternaryToOneBit(ternary.Zero)
	}
	if intervalset.Disjoint(a, b) {
		return ternaryToOneBit(ternary.Zero)
	}
	return ternaryToOneBit(ternary.Unknown)
}

// Ne is the complement of Eq.
func Ne(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	return Not(Eq(a, b))
}

// ULt compares the convex hulls of a and b: a result is only knowable
// when the hulls are disjoint.
func ULt(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	lhs, _ := a.ConvexHull()
	rhs, _ := b.ConvexHull()
	if interval.Disjoint(lhs, rhs) {
		if lhs.Less(rhs) {
			return ternaryToOneBit(ternary.One)
		}
		return ternaryToOneBit(ternary.Zero)
	}
	return ternaryToOneBit(ternary.Unknown)
}

// UGt is the mirror of ULt.
func UGt(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	lhs, _ := a.ConvexHull()
	rhs, _ := b.ConvexHull()
	if interval.Disjoint(lhs, rhs) {
		if rhs.Less(lhs) {
			return ternaryToOneBit(ternary.One)
		}
		return ternaryToOneBit(ternary.Zero)
	}
	return ternaryToOneBit(ternary.Unknown)
}

func isAllNegative(s intervalset.IntervalSet) bool {
	lo, _ := s.LowerBound()
	hi, _ := s.UpperBound()
	return lo.Msb() && hi.Msb()
}

func isAllPositive(s intervalset.IntervalSet) bool {
	lo, _ := s.LowerBound()
	hi, _ := s.UpperBound()
	return !lo.Msb() && !hi.Msb()
}

func signBias(width int) intervalset.IntervalSet {
	return intervalset.Precise(bits.Concat(bits.FromUint64(1, 1), bits.Zero(width-1)))
}

// SLt compares a and b as signed values. When both operands' hulls lie
// entirely in one sign class, this delegates directly to ULt; otherwise
// it biases both operands by 2^(w-1) (mapping the signed domain onto
// the unsigned one) and delegates to ULt on the biased sets. Biasing
// reuses Add's interval arithmetic, which may itself coarsen precision
// relative to an exact signed comparison.
func (e Engine) SLt(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	if (isAllPositive(a) && isAllPositive(b)) || (isAllNegative(a) && isAllNegative(b)) {
		return ULt(a, b)
	}
	offset := signBias(a.Width())
	return ULt(e.Add(a, offset), e.Add(b, offset))
}

// SLt compares a and b as signed values, using DefaultEngine's
// budgets.
func SLt(a, b intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.SLt(a, b) }

// SGt is the signed mirror of SLt.
func (e Engine) SGt(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	if (isAllPositive(a) && isAllPositive(b)) || (isAllNegative(a) && isAllNegative(b)) {
		return UGt(a, b)
	}
	offset := signBias(a.Width())
	return UGt(e.Add(a, offset), e.Add(b, offset))
}

// SGt is the signed mirror of SLt, using DefaultEngine's budgets.
func SGt(a, b intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.SGt(a, b) }
