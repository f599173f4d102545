package intervalops

import (
	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/intervalset"
	"github.com/hdlflow/bvintervals/ternary"
)

// oneBitToTernary converts a 1-bit interval set to a ternary value:
// precise sets map to their known value, anything else is unknown.
func oneBitToTernary(s intervalset.IntervalSet) ternary.Value {
	if s.Width() != 1 {
		panic("intervalops: oneBitToTernary: not a 1-bit set")
	}
	if s.IsPrecise() {
		if s.CoversZero() {
			return ternary.Zero
		}
		return ternary.One
	}
	return ternary.Unknown
}

// ternaryToOneBit converts a single ternary value back into a 1-bit
// interval set.
func ternaryToOneBit(v ternary.Value) intervalset.IntervalSet {
	switch v {
	case ternary.Zero:
		return intervalset.Precise(bits.Zero(1))
	case ternary.One:
		return intervalset.Precise(bits.FromUint64(1, 1))
	default:
		return intervalset.Maximal(1)
	}
}

// Not computes the abstract bitwise complement via the ternary bridge.
func (e Engine) Not(a intervalset.IntervalSet) intervalset.IntervalSet {
	if a.IsEmpty() {
		return intervalset.Empty(a.Width())
	}
	if a.Width() == 1 {
		return ternaryToOneBit(ternaryValueNot(oneBitToTernary(a)))
	}
	return FromTernary(ternary.Not(ExtractTernary(a)), e.FromTernaryBudget)
}

// Not computes the abstract bitwise complement, using DefaultEngine's
// budget.
func Not(a intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.Not(a) }

func ternaryValueNot(v ternary.Value) ternary.Value {
	switch v {
	case ternary.Zero:
		return ternary.One
	case ternary.One:
		return ternary.Zero
	default:
		return ternary.Unknown
	}
}

// And computes the abstract bitwise AND via the ternary bridge.
// Panics if a and b have different widths.
func (e Engine) And(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	requireSameWidth("And", a, b)
	if a.IsEmpty() || b.IsEmpty() {
		return intervalset.Empty(a.Width())
	}
	if a.Width() == 1 {
		return ternaryToOneBit(ternaryValueAnd(oneBitToTernary(a), oneBitToTernary(b)))
	}
	res := ternary.And(ExtractTernary(a), ExtractTernary(b))
	return FromTernary(res, e.FromTernaryBudget)
}

// And computes the abstract bitwise AND, using DefaultEngine's budget.
// Panics if a and b have different widths.
func And(a, b intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.And(a, b) }

func ternaryValueAnd(x, y ternary.Value) ternary.Value {
	return ternary.And(ternary.Vector{x}, ternary.Vector{y})[0]
}

// Or computes the abstract bitwise OR via the ternary bridge. Panics
// if a and b have different widths.
func (e Engine) Or(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	requireSameWidth("Or", a, b)
	if a.IsEmpty() || b.IsEmpty() {
		return intervalset.Empty(a.Width())
	}
	if a.Width() == 1 {
		return ternaryToOneBit(ternaryValueOr(oneBitToTernary(a), oneBitToTernary(b)))
	}
	res := ternary.Or(ExtractTernary(a), ExtractTernary(b))
	return FromTernary(res, e.FromTernaryBudget)
}

// Or computes the abstract bitwise OR, using DefaultEngine's budget.
// Panics if a and b have different widths.
func Or(a, b intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.Or(a, b) }

func ternaryValueOr(x, y ternary.Value) ternary.Value {
	return ternary.Or(ternary.Vector{x}, ternary.Vector{y})[0]
}

// Xor computes the abstract bitwise XOR via the ternary bridge. Panics
// if a and b have different widths.
func (e Engine) Xor(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	requireSameWidth("Xor", a, b)
	if a.IsEmpty() || b.IsEmpty() {
		return intervalset.Empty(a.Width())
	}
	if a.Width() == 1 {
		return ternaryToOneBit(ternaryValueXor(oneBitToTernary(a), oneBitToTernary(b)))
	}
	res := ternary.Xor(ExtractTernary(a), ExtractTernary(b))
	return FromTernary(res, e.FromTernaryBudget)
}

// Xor computes the abstract bitwise XOR, using DefaultEngine's budget.
// Panics if a and b have different widths.
func Xor(a, b intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.Xor(a, b) }

func ternaryValueXor(x, y ternary.Value) ternary.Value {
	return ternary.Xor(ternary.Vector{x}, ternary.Vector{y})[0]
}

func requireSameWidth(op string, a, b intervalset.IntervalSet) {
	if a.Width() != b.Width() {
		panic("intervalops: " + op + ": mismatched widths")
	}
}
