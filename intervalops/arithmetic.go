package intervalops

import (
	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/interval"
	"github.com/hdlflow/bvintervals/intervalset"
)

// Engine bundles the budgets that bound the variadic harness's search
// space and the ternary bridge's output size, so a caller (typically
// cmd/bvic, wiring in a loaded config.Config) can override spec.md's
// defaults without passing a budget to every call. The zero Engine is
// not valid; use DefaultEngine or NewEngine.
type Engine struct {
	Limits            Limits
	FromTernaryBudget int
}

// DefaultEngine matches spec.md's built-in budgets: DefaultLimits for
// the harness and DefaultFromTernaryBudget for the ternary bridge. The
// package-level Add, Sub, Not, And, and so on delegate to it, so a
// caller who never touches config.Config gets spec.md's defaults.
var DefaultEngine = Engine{Limits: DefaultLimits, FromTernaryBudget: DefaultFromTernaryBudget}

// NewEngine builds an Engine from explicit budgets, typically sourced
// from a loaded config.Config's Engine fields.
func NewEngine(limits Limits, fromTernaryBudget int) Engine {
	return Engine{Limits: limits, FromTernaryBudget: fromTernaryBudget}
}

// Add returns the abstract sum of two same-width interval sets.
func (e Engine) Add(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	width := a.Width()
	return performBinOp(func(lhs, rhs bits.Bits) overflowResult {
		padded := width + 1
		sum := lhs.ZeroExtend(padded).Add(rhs.ZeroExtend(padded))
		overflow := sum.Msb()
		return overflowResult{
			result:        sum.Truncate(width),
			firstOverflow: overflow,
		}
	}, a, Monotone, b, Monotone, width, e.Limits)
}

// Add returns the abstract sum of two same-width interval sets, using
// DefaultEngine's budgets.
func Add(a, b intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.Add(a, b) }

// Sub returns the abstract difference of two same-width interval sets.
func (e Engine) Sub(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	width := a.Width()
	return performBinOp(func(lhs, rhs bits.Bits) overflowResult {
		return overflowResult{
			result:        lhs.Sub(rhs),
			firstOverflow: lhs.ULessThan(rhs),
		}
	}, a, Monotone, b, Antitone, width, e.Limits)
}

// Sub returns the abstract difference of two same-width interval sets,
// using DefaultEngine's budgets.
func Sub(a, b intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.Sub(a, b) }

// Neg returns the abstract two's-complement negation.
func (e Engine) Neg(a intervalset.IntervalSet) intervalset.IntervalSet {
	return performUnaryPure(bits.Bits.Negate, a, Antitone, a.Width(), e.Limits)
}

// Neg returns the abstract two's-complement negation, using
// DefaultEngine's budgets.
func Neg(a intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.Neg(a) }

// UMul returns the abstract unsigned product, truncated or extended to
// outputWidth.
func (e Engine) UMul(a, b intervalset.IntervalSet, outputWidth int) intervalset.IntervalSet {
	return performBinOp(func(lhs, rhs bits.Bits) overflowResult {
		full := lhs.FullUMul(rhs)
		msbSet, ok := full.HighestSetBit()
		if !ok {
			msbSet = -1
		}
		return overflowResult{
			result:         full.Truncate(bits.MinInt(outputWidth, full.Width())).ZeroExtend(outputWidth),
			firstOverflow:  msbSet >= outputWidth,
			secondOverflow: msbSet >= outputWidth+1,
		}
	}, a, Monotone, b, Monotone, outputWidth, e.Limits)
}

// UMul returns the abstract unsigned product, using DefaultEngine's
// budgets.
func UMul(a, b intervalset.IntervalSet, outputWidth int) intervalset.IntervalSet {
	return DefaultEngine.UMul(a, b, outputWidth)
}

// UDiv returns the abstract unsigned quotient. Division by a set that
// covers zero folds in the defined by-zero result, Precise(MAX),
// exactly as spec.md's boundary behavior requires: even if the
// non-zero part of the divisor is itself empty, MAX is still unioned
// in.
func (e Engine) UDiv(a, b intervalset.IntervalSet) intervalset.IntervalSet {
	width := a.Width()
	if !b.CoversZero() {
		return performBinPure(bits.Bits.UDiv, a, Monotone, b, Antitone, width, e.Limits)
	}
	nonZeroDivisor := intervalset.Intersect(b, intervalset.NonZero(b.Width()))
	results := intervalset.Empty(width)
	if !nonZeroDivisor.IsEmpty() {
		results = performBinPure(bits.Bits.UDiv, a, Monotone, nonZeroDivisor, Antitone, width, e.Limits)
	}
	return intervalset.Combine(results, intervalset.Precise(bits.AllOnes(width)))
}

// UDiv returns the abstract unsigned quotient, using DefaultEngine's
// budgets.
func UDiv(a, b intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.UDiv(a, b) }

// SignExtend widens a to the given width, preserving sign.
func (e Engine) SignExtend(a intervalset.IntervalSet, width int) intervalset.IntervalSet {
	return performUnaryPure(func(b bits.Bits) bits.Bits { return b.SignExtend(width) }, a, Monotone, width, e.Limits)
}

// SignExtend widens a to the given width, preserving sign, using
// DefaultEngine's budgets.
func SignExtend(a intervalset.IntervalSet, width int) intervalset.IntervalSet {
	return DefaultEngine.SignExtend(a, width)
}

// ZeroExtend widens a to the given width with zero padding.
func (e Engine) ZeroExtend(a intervalset.IntervalSet, width int) intervalset.IntervalSet {
	return performUnaryPure(func(b bits.Bits) bits.Bits { return b.ZeroExtend(width) }, a, Monotone, width, e.Limits)
}

// ZeroExtend widens a to the given width with zero padding, using
// DefaultEngine's budgets.
func ZeroExtend(a intervalset.IntervalSet, width int) intervalset.IntervalSet {
	return DefaultEngine.ZeroExtend(a, width)
}

// Truncate narrows a to the given (smaller) width. Any interval
// spanning at least 2^width values collapses to Maximal(width), since
// narrowing loses the ability to bound it any tighter. Truncate takes
// no harness budget: it builds its result directly from a's intervals
// rather than through the variadic Cartesian-product harness.
func Truncate(a intervalset.IntervalSet, width int) intervalset.IntervalSet {
	bld := intervalset.NewBuilder(width)
	span := bits.AllOnes(width).ZeroExtend(a.Width())
	for _, iv := range a.Intervals() {
		if iv.Hi.Sub(iv.Lo).UGreaterThan(span) {
			return intervalset.Maximal(width)
		}
		lo := iv.Lo.Slice(0, width)
		hi := iv.Hi.Slice(0, width)
		bld.Add(interval.New(lo, hi))
	}
	return bld.Build()
}

// Concat concatenates interval sets most-significant-first: the first
// set's values occupy the highest bits of the result.
func (e Engine) Concat(sets []intervalset.IntervalSet) intervalset.IntervalSet {
	tonicities := make([]Tonicity, len(sets))
	total := 0
	for i, s := range sets {
		tonicities[i] = Monotone
		total += s.Width()
	}
	concat := func(parts []bits.Bits) bits.Bits { return bits.Concat(parts...) }
	return performVariadicPure(concat, tonicities, sets, total, e.Limits)
}

// Concat concatenates interval sets most-significant-first, using
// DefaultEngine's budgets.
func Concat(sets []intervalset.IntervalSet) intervalset.IntervalSet { return DefaultEngine.Concat(sets) }
