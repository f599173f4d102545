// Package intervalset implements width-tagged sorted unions of
// disjoint, non-adjacent, proper interval.Interval values: the core
// abstraction the rest of this module's transfer functions operate
// over.
package intervalset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/interval"
)

// IntervalSet is a normalized union of disjoint, non-adjacent, proper
// intervals of a fixed bit width. The zero value is not meaningful;
// use Empty, Precise, Maximal, NonZero, or a Builder to construct one.
type IntervalSet struct {
	width int
	ivs   []interval.Interval
}

// Empty returns the empty set of the given width.
func Empty(width int) IntervalSet {
	return IntervalSet{width: width}
}

// Precise returns the single-element set {v}.
func Precise(v bits.Bits) IntervalSet {
	return IntervalSet{width: v.Width(), ivs: []interval.Interval{interval.Precise(v)}}
}

// Maximal returns the set spanning every value of the given width.
func Maximal(width int) IntervalSet {
	return IntervalSet{width: width, ivs: []interval.Interval{interval.Maximal(width)}}
}

// NonZero returns the set [1, 2^width-1].
func NonZero(width int) IntervalSet {
	if width == 0 {
		return Empty(0)
	}
	return IntervalSet{width: width, ivs: []interval.Interval{
		{Lo: bits.FromUint64(width, 1), Hi: bits.AllOnes(width)},
	}}
}

// Width returns the tagged bit width of every interval in the set.
func (s IntervalSet) Width() int { return s.width }

// IsEmpty reports whether the set contains no values.
func (s IntervalSet) IsEmpty() bool { return len(s.ivs) == 0 }

// NumberOfIntervals returns the number of intervals in the normalized set.
func (s IntervalSet) NumberOfIntervals() int { return len(s.ivs) }

// Intervals returns the set's intervals in sorted order. The returned
// slice must not be mutated by the caller.
func (s IntervalSet) Intervals() []interval.Interval { return s.ivs }

// IsPrecise reports whether the set denotes exactly one value.
func (s IntervalSet) IsPrecise() bool {
	return len(s.ivs) == 1 && s.ivs[0].IsPrecise()
}

// GetPreciseValue returns the set's single value, if IsPrecise.
func (s IntervalSet) GetPreciseValue() (bits.Bits, bool) {
	if !s.IsPrecise() {
		return bits.Bits{}, false
	}
	return s.ivs[0].Lo, true
}

// Covers reports whether v is a member of the set.
func (s IntervalSet) Covers(v bits.Bits) bool {
	for _, iv := range s.ivs {
		if iv.Contains(v) {
			return true
		}
	}
	return false
}

// CoversZero reports whether the set contains the value zero.
func (s IntervalSet) CoversZero() bool { return s.Covers(bits.Zero(s.width)) }

// CoversMax reports whether the set contains the maximal value.
func (s IntervalSet) CoversMax() bool { return s.Covers(bits.AllOnes(s.width)) }

// ConvexHull returns the smallest single interval enclosing the set.
// The second return value is false iff the set is empty.
func (s IntervalSet) ConvexHull() (interval.Interval, bool) {
	if len(s.ivs) == 0 {
		return interval.Interval{}, false
	}
	hull := s.ivs[0]
	for _, iv := range s.ivs[1:] {
		hull = interval.ConvexHull(hull, iv)
	}
	return hull, true
}

// LowerBound returns the lowest value in the set.
func (s IntervalSet) LowerBound() (bits.Bits, bool) {
	if len(s.ivs) == 0 {
		return bits.Bits{}, false
	}
	return s.ivs[0].Lo, true
}

// UpperBound returns the highest value in the set.
func (s IntervalSet) UpperBound() (bits.Bits, bool) {
	if len(s.ivs) == 0 {
		return bits.Bits{}, false
	}
	return s.ivs[len(s.ivs)-1].Hi, true
}

// IsNormalized reports whether the set currently satisfies every
// normalization invariant: same-width proper intervals, sorted,
// pairwise non-overlapping and non-adjacent.
func (s IntervalSet) IsNormalized() bool {
	for idx, iv := range s.ivs {
		if iv.Width() != s.width || !iv.IsProper() {
			return false
		}
		if idx == 0 {
			continue
		}
		prev := s.ivs[idx-1]
		if !prev.Hi.ULessThan(iv.Lo) {
			return false
		}
		if adjacent(prev.Hi, iv.Lo) {
			return false
		}
	}
	return true
}

// adjacent reports whether hi+1 == lo without wrap-around.
func adjacent(hi, lo bits.Bits) bool {
	if hi.IsAllOnes() {
		return false
	}
	return hi.Add(bits.FromUint64(hi.Width(), 1)).Equal(lo)
}

func (s IntervalSet) String() string {
	parts := make([]string, len(s.ivs))
	for i, iv := range s.ivs {
		parts[i] = iv.String()
	}
	return fmt.Sprintf("{%s}_%d", strings.Join(parts, ", "), s.width)
}

// Normalize transforms an arbitrary list of same-width intervals into
// the canonical form: every improper interval split into two proper
// ones, sorted by Lo, then swept once merging overlapping or adjacent
// intervals. Idempotent.
func Normalize(width int, ivs []interval.Interval) []interval.Interval {
	var split []interval.Interval
	for _, iv := range ivs {
		if iv.Width() != width {
			panic(fmt.Sprintf("intervalset: Normalize: interval width %d does not match set width %d", iv.Width(), width))
		}
		split = append(split, iv.SplitImproper()...)
	}
	if len(split) == 0 {
		return nil
	}
	sort.Slice(split, func(i, j int) bool { return split[i].Less(split[j]) })

	merged := make([]interval.Interval, 0, len(split))
	cur := split[0]
	for _, next := range split[1:] {
		// next.Lo <= cur.Hi+1, computed without overflow: either
		// next.Lo <= cur.Hi outright, or cur.Hi is not the max value
		// and next.Lo == cur.Hi+1.
		if !next.Lo.UGreaterThan(cur.Hi) || adjacent(cur.Hi, next.Lo) {
			if next.Hi.UGreaterThan(cur.Hi) {
				cur.Hi = next.Hi
			}
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	merged = append(merged, cur)
	return merged
}

// Builder incrementally accumulates intervals for a single
// IntervalSet, normalizing only once, in Build. This is the Go-native
// analogue of repeatedly calling AddInterval followed by a final
// Normalize: no observer ever sees a partially-built, unnormalized
// set.
type Builder struct {
	width int
	ivs   []interval.Interval
}

// NewBuilder starts a Builder for intervals of the given width.
func NewBuilder(width int) *Builder {
	return &Builder{width: width}
}

// Add appends an interval, which may be improper or overlap with
// others already added.
func (b *Builder) Add(iv interval.Interval) *Builder {
	b.ivs = append(b.ivs, iv)
	return b
}

// Build normalizes the accumulated intervals into an IntervalSet.
func (b *Builder) Build() IntervalSet {
	return IntervalSet{width: b.width, ivs: Normalize(b.width, b.ivs)}
}

// Combine returns the normalized union of two same-width sets.
func Combine(a, b IntervalSet) IntervalSet {
	requireSameWidth("Combine", a, b)
	bld := NewBuilder(a.width)
	for _, iv := range a.ivs {
		bld.Add(iv)
	}
	for _, iv := range b.ivs {
		bld.Add(iv)
	}
	return bld.Build()
}

// Intersect returns the normalized intersection of two same-width sets.
func Intersect(a, b IntervalSet) IntervalSet {
	requireSameWidth("Intersect", a, b)
	bld := NewBuilder(a.width)
	i, j := 0, 0
	for i < len(a.ivs) && j < len(b.ivs) {
		x, y := a.ivs[i], b.ivs[j]
		lo := x.Lo
		if y.Lo.UGreaterThan(lo) {
			lo = y.Lo
		}
		hi := x.Hi
		if y.Hi.ULessThan(hi) {
			hi = y.Hi
		}
		if !lo.UGreaterThan(hi) {
			bld.Add(interval.Interval{Lo: lo, Hi: hi})
		}
		if x.Hi.ULessThan(y.Hi) {
			i++
		} else {
			j++
		}
	}
	return bld.Build()
}

// Disjoint reports whether two same-width sets share no values.
func Disjoint(a, b IntervalSet) bool {
	requireSameWidth("Disjoint", a, b)
	return Intersect(a, b).IsEmpty()
}

func requireSameWidth(op string, a, b IntervalSet) {
	if a.width != b.width {
		panic(fmt.Sprintf("intervalset: %s: mismatched widths %d and %d", op, a.width, b.width))
	}
}
