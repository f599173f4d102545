// Package interval implements closed ranges of same-width bits.Bits.
package interval

import (
	"fmt"

	"github.com/hdlflow/bvintervals/bits"
)

// Interval is a closed pair (Lo, Hi) of same-width bits.Bits.
//
// A proper interval has Lo <= Hi (unsigned) and denotes {v : Lo <= v <=
// Hi}. An improper interval (Lo > Hi) denotes the wrap-around set
// {v : v >= Lo} union {v : v <= Hi}. Improper intervals only ever
// appear transiently: intervalset.Normalize splits them into two
// proper intervals before they are stored in an IntervalSet.
type Interval struct {
	Lo, Hi bits.Bits
}

// New builds an Interval from two same-width bounds. It does not
// require Lo <= Hi; the result may be improper.
func New(lo, hi bits.Bits) Interval {
	if lo.Width() != hi.Width() {
		panic(fmt.Sprintf("interval: mismatched widths %d and %d", lo.Width(), hi.Width()))
	}
	return Interval{Lo: lo, Hi: hi}
}

// Precise returns the single-value interval [v, v].
func Precise(v bits.Bits) Interval {
	return Interval{Lo: v, Hi: v}
}

// Maximal returns the interval spanning the entire range of the given
// width, [0, 2^width-1].
func Maximal(width int) Interval {
	return Interval{Lo: bits.Zero(width), Hi: bits.AllOnes(width)}
}

// Width returns the bit width shared by Lo and Hi.
func (i Interval) Width() int { return i.Lo.Width() }

// IsProper reports whether Lo <= Hi unsigned.
func (i Interval) IsProper() bool { return !i.Lo.UGreaterThan(i.Hi) }

// IsPrecise reports whether the interval denotes a single value.
func (i Interval) IsPrecise() bool { return i.Lo.Equal(i.Hi) }

// GetPreciseValue returns the single value denoted by the interval, if
// it is precise.
func (i Interval) GetPreciseValue() (bits.Bits, bool) {
	if !i.IsPrecise() {
		return bits.Bits{}, false
	}
	return i.Lo, true
}

// Contains reports whether v lies within the interval. Improper
// intervals are interpreted as their wrap-around set.
func (i Interval) Contains(v bits.Bits) bool {
	if i.Lo.Width() != v.Width() {
		panic(fmt.Sprintf("interval: Contains: mismatched widths %d and %d", i.Lo.Width(), v.Width()))
	}
	if i.IsProper() {
		return !v.ULessThan(i.Lo) && !v.UGreaterThan(i.Hi)
	}
	return !v.ULessThan(i.Lo) || !v.UGreaterThan(i.Hi)
}

// Disjoint reports whether two proper intervals of the same width
// share no values.
func Disjoint(a, b Interval) bool {
	if a.Width() != b.Width() {
		panic(fmt.Sprintf("interval: Disjoint: mismatched widths %d and %d", a.Width(), b.Width()))
	}
	return a.Hi.ULessThan(b.Lo) || b.Hi.ULessThan(a.Lo)
}

// ConvexHull returns the smallest proper interval containing both a
// and b.
func ConvexHull(a, b Interval) Interval {
	if a.Width() != b.Width() {
		panic(fmt.Sprintf("interval: ConvexHull: mismatched widths %d and %d", a.Width(), b.Width()))
	}
	lo := a.Lo
	if b.Lo.ULessThan(lo) {
		lo = b.Lo
	}
	hi := a.Hi
	if b.Hi.UGreaterThan(hi) {
		hi = b.Hi
	}
	return Interval{Lo: lo, Hi: hi}
}

// Cmp orders intervals lexicographically by Lo then Hi.
func (a Interval) Cmp(b Interval) int {
	if c := a.Lo.Cmp(b.Lo); c != 0 {
		return c
	}
	return a.Hi.Cmp(b.Hi)
}

// Less reports whether a sorts before b under Cmp.
func (a Interval) Less(b Interval) bool { return a.Cmp(b) < 0 }

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s]", i.Lo, i.Hi)
}

// SplitImproper splits an improper interval into the two proper
// intervals its wrap-around set decomposes into: [Lo, MAX] and
// [0, Hi]. If i is already proper, it is returned unchanged as the
// sole element.
func (i Interval) SplitImproper() []Interval {
	if i.IsProper() {
		return []Interval{i}
	}
	width := i.Width()
	return []Interval{
		{Lo: i.Lo, Hi: bits.AllOnes(width)},
		{Lo: bits.Zero(width), Hi: i.Hi},
	}
}
