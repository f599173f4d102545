// Package intervalops implements the ternary bridge, the interval
// minimizer, and every transfer function over intervalset.IntervalSet:
// the abstract semantics of the bit-vector operation set.
package intervalops

import (
	"fmt"

	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/interval"
	"github.com/hdlflow/bvintervals/internal/radix"
	"github.com/hdlflow/bvintervals/intervalset"
)

// Tonicity describes the corner-selection direction of an operand to
// the variadic harness: Monotone operands contribute their (lo, hi)
// bounds directly to the lower/upper corner computation, Antitone
// operands contribute (hi, lo).
type Tonicity bool

const (
	Monotone Tonicity = false
	Antitone Tonicity = true
)

// overflowResult is the result of applying a concrete operation to one
// corner of the operand space, along with whether it overflowed into
// the (width+1)th or (width+2)th bit of an untruncated computation.
type overflowResult struct {
	result         bits.Bits
	firstOverflow  bool
	secondOverflow bool
}

// operandMinimizeCapN is how many leading operands get the (looser)
// per-operand cap; every operand after it gets the tail cap. spec.md
// fixes this at 12 regardless of config, since it bounds the shape of
// the Cartesian product rather than a budget a caller tunes.
const operandMinimizeCapN = 12

// Limits bounds the search space and output size of the variadic
// transfer-function harness: the interval count each operand is
// minimized to before Cartesian enumeration, and the interval count
// the accumulated result is minimized to afterward.
type Limits struct {
	// OperandMinimizeCap is the per-operand interval cap applied to the
	// first operandMinimizeCapN operands.
	OperandMinimizeCap int
	// OperandMinimizeTailCap is the per-operand interval cap applied to
	// every operand after the first operandMinimizeCapN.
	OperandMinimizeTailCap int
	// ResultMinimizeCap is the interval cap applied to the harness's
	// accumulated output.
	ResultMinimizeCap int
}

// DefaultLimits matches the caps spec.md's harness describes: the
// first 12 operands minimized to at most 5 intervals each, the rest to
// at most 1, capping the search space at 5^12, and at most 16 output
// intervals.
var DefaultLimits = Limits{
	OperandMinimizeCap:     5,
	OperandMinimizeTailCap: 1,
	ResultMinimizeCap:      16,
}

// performVariadicOp implements the shared harness described for the
// variadic transfer-function pattern: minimize each operand, enumerate
// the mixed-radix Cartesian product of interval choices, evaluate calc
// at each corner, classify the result for overflow, and minimize the
// accumulated output.
func performVariadicOp(
	calc func(operands []bits.Bits) overflowResult,
	tonicities []Tonicity,
	operands []intervalset.IntervalSet,
	resultWidth int,
	limits Limits,
) intervalset.IntervalSet {
	if len(operands) != len(tonicities) {
		panic("intervalops: performVariadicOp: operand/tonicity count mismatch")
	}

	minimized := make([]intervalset.IntervalSet, len(operands))
	radices := make([]int, len(operands))
	for i, operand := range operands {
		operandCap := limits.OperandMinimizeTailCap
		if i < operandMinimizeCapN {
			operandCap = limits.OperandMinimizeCap
		}
		minimized[i] = MinimizeIntervals(operand, operandCap)
		radices[i] = minimized[i].NumberOfIntervals()
	}

	result := intervalset.NewBuilder(resultWidth)

	radix.Iterate(radices, func(idx []int) bool {
		lower := make([]bits.Bits, len(idx))
		upper := make([]bits.Bits, len(idx))
		for i, choice := range idx {
			iv := minimized[i].Intervals()[choice]
			if tonicities[i] == Monotone {
				lower[i] = iv.Lo
				upper[i] = iv.Hi
			} else {
				lower[i] = iv.Hi
				upper[i] = iv.Lo
			}
		}
		lo := calc(lower)
		hi := calc(upper)

		switch {
		case !lo.firstOverflow && !hi.firstOverflow:
			result.Add(interval.New(lo.result, hi.result))
			return false
		case lo.firstOverflow && hi.firstOverflow &&
			!lo.secondOverflow && !hi.secondOverflow &&
			!lo.result.UGreaterThan(hi.result):
			// Both corners wrapped exactly once, so every value between
			// them wrapped exactly once too.
			result.Add(interval.New(lo.result, hi.result))
			return false
		case (lo.firstOverflow && hi.firstOverflow) ||
			lo.secondOverflow || hi.secondOverflow ||
			hi.result.UGreaterThan(lo.result):
			result.Add(interval.Maximal(resultWidth))
			return true
		default:
			result.Add(interval.New(lo.result, bits.AllOnes(resultWidth)))
			result.Add(interval.New(bits.Zero(resultWidth), hi.result))
			return false
		}
	})

	return MinimizeIntervals(result.Build(), limits.ResultMinimizeCap)
}

func performVariadicPure(
	calc func(operands []bits.Bits) bits.Bits,
	tonicities []Tonicity,
	operands []intervalset.IntervalSet,
	resultWidth int,
	limits Limits,
) intervalset.IntervalSet {
	return performVariadicOp(func(bs []bits.Bits) overflowResult {
		return overflowResult{result: calc(bs)}
	}, tonicities, operands, resultWidth, limits)
}

func performBinOp(
	calc func(a, b bits.Bits) overflowResult,
	a intervalset.IntervalSet, aTone Tonicity,
	b intervalset.IntervalSet, bTone Tonicity,
	resultWidth int,
	limits Limits,
) intervalset.IntervalSet {
	return performVariadicOp(func(bs []bits.Bits) overflowResult {
		if len(bs) != 2 {
			panic(fmt.Sprintf("intervalops: performBinOp: expected 2 operands, got %d", len(bs)))
		}
		return calc(bs[0], bs[1])
	}, []Tonicity{aTone, bTone}, []intervalset.IntervalSet{a, b}, resultWidth, limits)
}

func performBinPure(
	calc func(a, b bits.Bits) bits.Bits,
	a intervalset.IntervalSet, aTone Tonicity,
	b intervalset.IntervalSet, bTone Tonicity,
	resultWidth int,
	limits Limits,
) intervalset.IntervalSet {
	return performBinOp(func(a, b bits.Bits) overflowResult {
		return overflowResult{result: calc(a, b)}
	}, a, aTone, b, bTone, resultWidth, limits)
}

func performUnaryOp(
	calc func(a bits.Bits) overflowResult,
	a intervalset.IntervalSet, tone Tonicity,
	resultWidth int,
	limits Limits,
) intervalset.IntervalSet {
	return performVariadicOp(func(bs []bits.Bits) overflowResult {
		if len(bs) != 1 {
			panic(fmt.Sprintf("intervalops: performUnaryOp: expected 1 operand, got %d", len(bs)))
		}
		return calc(bs[0])
	}, []Tonicity{tone}, []intervalset.IntervalSet{a}, resultWidth, limits)
}

func performUnaryPure(
	calc func(a bits.Bits) bits.Bits,
	a intervalset.IntervalSet, tone Tonicity,
	resultWidth int,
	limits Limits,
) intervalset.IntervalSet {
	return performUnaryOp(func(a bits.Bits) overflowResult {
		return overflowResult{result: calc(a)}
	}, a, tone, resultWidth, limits)
}
