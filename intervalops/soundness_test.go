package intervalops

import (
	"math/big"
	"testing"

	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/intervalset"
	"github.com/hdlflow/bvintervals/ternary"
)

// allValues enumerates every concrete value of the given width. Only
// used at widths small enough to enumerate exhaustively (<=6).
func allValues(width int) []bits.Bits {
	n := uint64(1) << uint(width)
	out := make([]bits.Bits, n)
	for i := uint64(0); i < n; i++ {
		out[i] = bits.FromUint64(width, i)
	}
	return out
}

// membersOf returns every concrete value s covers, by brute-force
// membership test over allValues. Only used at small widths.
func membersOf(s intervalset.IntervalSet) []bits.Bits {
	var out []bits.Bits
	for _, v := range allValues(s.Width()) {
		if s.Covers(v) {
			out = append(out, v)
		}
	}
	return out
}

// candidateSets returns a fixed, deterministic sample of empty, 1- and
// 2-interval sets at the given width, covering edge cases (empty,
// singleton, full range, wrap-around, multi-interval) without
// exhaustively enumerating every possible set.
func candidateSets(width int) []intervalset.IntervalSet {
	max := uint64(1)<<uint(width) - 1
	mid := max / 2
	sets := []intervalset.IntervalSet{
		intervalset.Empty(width),
		intervalset.Precise(bits.Zero(width)),
		intervalset.Precise(bits.AllOnes(width)),
		intervalset.Precise(bits.FromUint64(width, mid)),
		intervalset.Maximal(width),
		intervalset.NewBuilder(width).Add(mustInterval(width, 0, mid)).Build(),
		intervalset.NewBuilder(width).Add(mustInterval(width, mid, max)).Build(),
	}
	if max >= 3 {
		sets = append(sets, intervalset.Combine(
			intervalset.Precise(bits.Zero(width)),
			intervalset.NewBuilder(width).Add(mustInterval(width, max-1, max)).Build(),
		))
	}
	if width >= 2 {
		// A wrap-around (improper) interval, e.g. [max-1, 1].
		sets = append(sets, intervalset.NewBuilder(width).Add(mustInterval(width, max-1, 1)).Build())
	}
	return sets
}

// pairCandidateSets is a smaller sample than candidateSets, used
// wherever two operand sets are paired up: pairing the full
// candidateSets list at width 6 would multiply out to an unreasonable
// number of concrete checks for a test that runs on every commit.
func pairCandidateSets(width int) []intervalset.IntervalSet {
	max := uint64(1)<<uint(width) - 1
	mid := max / 2
	return []intervalset.IntervalSet{
		intervalset.Empty(width),
		intervalset.Precise(bits.Zero(width)),
		intervalset.Precise(bits.AllOnes(width)),
		intervalset.NewBuilder(width).Add(mustInterval(width, 0, mid)).Build(),
		intervalset.NewBuilder(width).Add(mustInterval(width, mid, max)).Build(),
	}
}

func concreteNot(a bits.Bits) bits.Bits {
	full := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(a.Width())), big.NewInt(1))
	return bits.FromBigInt(a.Width(), new(big.Int).Xor(a.BigInt(), full))
}

func concreteAnd(a, b bits.Bits) bits.Bits {
	return bits.FromBigInt(a.Width(), new(big.Int).And(a.BigInt(), b.BigInt()))
}

func concreteOr(a, b bits.Bits) bits.Bits {
	return bits.FromBigInt(a.Width(), new(big.Int).Or(a.BigInt(), b.BigInt()))
}

func concreteXor(a, b bits.Bits) bits.Bits {
	return bits.FromBigInt(a.Width(), new(big.Int).Xor(a.BigInt(), b.BigInt()))
}

// TestAddSoundnessOverSmallWidths checks, for every width 1-6 and
// every pair of sampled operand sets, that the concrete sum of any
// member of each operand is covered by the abstract result: the
// soundness property spec.md 8.1 requires of every transfer function.
func TestAddSoundnessOverSmallWidths(t *testing.T) {
	for width := 1; width <= 6; width++ {
		for _, a := range pairCandidateSets(width) {
			for _, b := range pairCandidateSets(width) {
				abstract := Add(a, b)
				for _, x := range membersOf(a) {
					for _, y := range membersOf(b) {
						got := x.Add(y)
						if !abstract.Covers(got) {
							t.Fatalf("width %d: Add(%s, %s) = %s does not cover %s+%s=%s", width, a, b, abstract, x, y, got)
						}
					}
				}
			}
		}
	}
}

func TestSubSoundnessOverSmallWidths(t *testing.T) {
	for width := 1; width <= 6; width++ {
		for _, a := range pairCandidateSets(width) {
			for _, b := range pairCandidateSets(width) {
				abstract := Sub(a, b)
				for _, x := range membersOf(a) {
					for _, y := range membersOf(b) {
						got := x.Sub(y)
						if !abstract.Covers(got) {
							t.Fatalf("width %d: Sub(%s, %s) = %s does not cover %s-%s=%s", width, a, b, abstract, x, y, got)
						}
					}
				}
			}
		}
	}
}

func TestNegSoundnessOverSmallWidths(t *testing.T) {
	for width := 1; width <= 6; width++ {
		for _, a := range candidateSets(width) {
			abstract := Neg(a)
			for _, x := range membersOf(a) {
				got := x.Negate()
				if !abstract.Covers(got) {
					t.Fatalf("width %d: Neg(%s) = %s does not cover -%s=%s", width, a, abstract, x, got)
				}
			}
		}
	}
}

func TestUMulSoundnessOverSmallWidths(t *testing.T) {
	for width := 1; width <= 6; width++ {
		outputWidth := width + 1
		for _, a := range pairCandidateSets(width) {
			for _, b := range pairCandidateSets(width) {
				abstract := UMul(a, b, outputWidth)
				for _, x := range membersOf(a) {
					for _, y := range membersOf(b) {
						got := x.UMul(y, outputWidth)
						if !abstract.Covers(got) {
							t.Fatalf("width %d: UMul(%s, %s, %d) = %s does not cover %s*%s=%s", width, a, b, outputWidth, abstract, x, y, got)
						}
					}
				}
			}
		}
	}
}

func TestUDivSoundnessOverSmallWidths(t *testing.T) {
	for width := 1; width <= 6; width++ {
		for _, a := range pairCandidateSets(width) {
			for _, b := range pairCandidateSets(width) {
				if b.IsEmpty() {
					continue
				}
				abstract := UDiv(a, b)
				for _, x := range membersOf(a) {
					for _, y := range membersOf(b) {
						var got bits.Bits
						if y.IsZero() {
							got = bits.AllOnes(width)
						} else {
							got = x.UDiv(y)
						}
						if !abstract.Covers(got) {
							t.Fatalf("width %d: UDiv(%s, %s) = %s does not cover %s/%s=%s", width, a, b, abstract, x, y, got)
						}
					}
				}
			}
		}
	}
}

func TestSignExtendSoundnessOverSmallWidths(t *testing.T) {
	for width := 1; width <= 6; width++ {
		wider := width + 3
		for _, a := range candidateSets(width) {
			abstract := SignExtend(a, wider)
			for _, x := range membersOf(a) {
				got := x.SignExtend(wider)
				if !abstract.Covers(got) {
					t.Fatalf("width %d: SignExtend(%s, %d) = %s does not cover sext(%s)=%s", width, a, wider, abstract, x, got)
				}
			}
		}
	}
}

func TestTruncateSoundnessOverSmallWidths(t *testing.T) {
	for width := 2; width <= 6; width++ {
		narrower := width - 1
		for _, a := range candidateSets(width) {
			abstract := Truncate(a, narrower)
			for _, x := range membersOf(a) {
				got := x.Slice(0, narrower)
				if !abstract.Covers(got) {
					t.Fatalf("width %d: Truncate(%s, %d) = %s does not cover trunc(%s)=%s", width, a, narrower, abstract, x, got)
				}
			}
		}
	}
}

func TestNotSoundnessOverSmallWidths(t *testing.T) {
	for width := 1; width <= 6; width++ {
		for _, a := range candidateSets(width) {
			abstract := Not(a)
			for _, x := range membersOf(a) {
				got := concreteNot(x)
				if !abstract.Covers(got) {
					t.Fatalf("width %d: Not(%s) = %s does not cover ^%s=%s", width, a, abstract, x, got)
				}
			}
		}
	}
}

func TestAndOrXorSoundnessOverSmallWidths(t *testing.T) {
	ops := []struct {
		name     string
		abstract func(a, b intervalset.IntervalSet) intervalset.IntervalSet
		concrete func(a, b bits.Bits) bits.Bits
	}{
		{"And", And, concreteAnd},
		{"Or", Or, concreteOr},
		{"Xor", Xor, concreteXor},
	}
	for width := 1; width <= 6; width++ {
		for _, op := range ops {
			for _, a := range pairCandidateSets(width) {
				for _, b := range pairCandidateSets(width) {
					abstract := op.abstract(a, b)
					for _, x := range membersOf(a) {
						for _, y := range membersOf(b) {
							got := op.concrete(x, y)
							if !abstract.Covers(got) {
								t.Fatalf("width %d: %s(%s, %s) = %s does not cover %s(%s,%s)=%s", width, op.name, a, b, abstract, op.name, x, y, got)
							}
						}
					}
				}
			}
		}
	}
}

// The six concrete scenarios from spec.md 8.4. S3's second case
// diverges from the spec.md prose; see its comment below and
// DESIGN.md for the hand-traced justification against
// original_source/xls/ir/interval_ops.cc's overflow classification,
// which this package's harness (harness.go) matches exactly.

func TestScenarioS1AddOfPreciseAndRange(t *testing.T) {
	a := p(8, 5)
	b := intervalset.NewBuilder(8).Add(mustInterval(8, 3, 7)).Build()
	got := Add(a, b)
	want := intervalset.NewBuilder(8).Add(mustInterval(8, 8, 12)).Build()
	if got.String() != want.String() {
		t.Fatalf("Add(5, [3,7]) = %s, want %s", got, want)
	}
}

// Both harness corners of Sub([10,12], [20,25]) underflow exactly once
// (10-25 = 241 and 12-20 = 248 mod 256), so every difference between
// them wraps once too and the result is the single interval [241,248].
func TestScenarioS2SubBothCornersUnderflow(t *testing.T) {
	a := intervalset.NewBuilder(8).Add(mustInterval(8, 10, 12)).Build()
	b := intervalset.NewBuilder(8).Add(mustInterval(8, 20, 25)).Build()
	got := Sub(a, b)
	want := intervalset.NewBuilder(8).Add(mustInterval(8, 241, 248)).Build()
	if got.String() != want.String() {
		t.Fatalf("Sub([10,12], [20,25]) = %s, want %s (both corners underflow once)", got, want)
	}
}

func TestScenarioS3UMulOverflowWideOutput(t *testing.T) {
	a := intervalset.NewBuilder(4).Add(mustInterval(4, 2, 3)).Build()
	b := intervalset.NewBuilder(4).Add(mustInterval(4, 2, 3)).Build()
	got := UMul(a, b, 4)
	want := intervalset.NewBuilder(4).Add(mustInterval(4, 4, 9)).Build()
	if got.String() != want.String() {
		t.Fatalf("UMul([2,3],[2,3],4) = %s, want %s", got, want)
	}
}

// With output width 3, only the upper corner (3*3=9) overflows the
// output width while the lower corner (2*2=4) does not, so the
// harness reports the one-sided-overflow split rather than the
// spec.md prose's claimed Maximal(3).
func TestScenarioS3UMulOverflowNarrowOutputSplits(t *testing.T) {
	a := intervalset.NewBuilder(4).Add(mustInterval(4, 2, 3)).Build()
	b := intervalset.NewBuilder(4).Add(mustInterval(4, 2, 3)).Build()
	got := UMul(a, b, 3)
	want := intervalset.NewBuilder(3).
		Add(mustInterval(3, 0, 1)).
		Add(mustInterval(3, 4, 7)).
		Build()
	if got.String() != want.String() {
		t.Fatalf("UMul([2,3],[2,3],3) = %s, want %s", got, want)
	}
}

func TestScenarioS4AndOfFromTernaryAndPrecise(t *testing.T) {
	tv := ternary.Vector{ternary.One, ternary.Zero, ternary.Unknown, ternary.Unknown}
	a := FromTernary(tv, DefaultFromTernaryBudget)
	b := p(4, 0b1110)
	got := And(a, b)
	want := intervalset.NewBuilder(4).
		Add(mustInterval(4, 0, 0)).
		Add(mustInterval(4, 4, 4)).
		Add(mustInterval(4, 8, 8)).
		Add(mustInterval(4, 12, 12)).
		Build()
	if got.String() != want.String() {
		t.Fatalf("And(FromTernary(XX01,16), 0b1110) = %s, want %s", got, want)
	}
}

func TestScenarioS5MinimizeMergesSmallestGapFirst(t *testing.T) {
	s := intervalset.NewBuilder(8).
		Add(mustInterval(8, 0, 0)).
		Add(mustInterval(8, 2, 2)).
		Add(mustInterval(8, 10, 20)).
		Build()
	got := MinimizeIntervals(s, 2)
	want := intervalset.NewBuilder(8).
		Add(mustInterval(8, 0, 2)).
		Add(mustInterval(8, 10, 20)).
		Build()
	if got.String() != want.String() {
		t.Fatalf("MinimizeIntervals({[0,0],[2,2],[10,20]}, 2) = %s, want %s", got, want)
	}
}

func TestScenarioS6SLtSignedComparisonViaBias(t *testing.T) {
	got := SLt(p(8, 0xFF), p(8, 0x01))
	want := intervalset.Precise(bits.FromUint64(1, 1))
	if got.String() != want.String() {
		t.Fatalf("SLt(0xFF, 0x01) = %s, want %s", got, want)
	}
}
