package interval

import (
	"testing"

	"github.com/hdlflow/bvintervals/bits"
)

func b(width int, v uint64) bits.Bits { return bits.FromUint64(width, v) }

func TestPreciseAndMaximal(t *testing.T) {
	p := Precise(b(4, 3))
	if !p.IsPrecise() {
		t.Fatalf("Precise(3) not precise")
	}
	if v, ok := p.GetPreciseValue(); !ok || !v.Equal(b(4, 3)) {
		t.Fatalf("GetPreciseValue = (%s, %v), want (3, true)", v, ok)
	}
	m := Maximal(4)
	if !m.Contains(b(4, 0)) || !m.Contains(b(4, 15)) {
		t.Fatalf("Maximal(4) does not contain its endpoints")
	}
}

func TestIsProper(t *testing.T) {
	proper := New(b(4, 2), b(4, 5))
	if !proper.IsProper() {
		t.Fatalf("[2,5] reported improper")
	}
	improper := New(b(4, 5), b(4, 2))
	if improper.IsProper() {
		t.Fatalf("[5,2] reported proper")
	}
}

func TestContainsWrapAround(t *testing.T) {
	iv := New(b(4, 14), b(4, 2)) // wraps: {14,15,0,1,2}
	for _, v := range []uint64{14, 15, 0, 1, 2} {
		if !iv.Contains(b(4, v)) {
			t.Fatalf("improper interval does not contain %d", v)
		}
	}
	for _, v := range []uint64{3, 10, 13} {
		if iv.Contains(b(4, v)) {
			t.Fatalf("improper interval unexpectedly contains %d", v)
		}
	}
}

func TestDisjoint(t *testing.T) {
	a := New(b(4, 0), b(4, 3))
	c := New(b(4, 4), b(4, 8))
	if !Disjoint(a, c) {
		t.Fatalf("[0,3] and [4,8] reported overlapping")
	}
	d := New(b(4, 3), b(4, 8))
	if Disjoint(a, d) {
		t.Fatalf("[0,3] and [3,8] reported disjoint")
	}
}

func TestConvexHull(t *testing.T) {
	a := New(b(4, 1), b(4, 3))
	c := New(b(4, 8), b(4, 9))
	hull := ConvexHull(a, c)
	if !hull.Lo.Equal(b(4, 1)) || !hull.Hi.Equal(b(4, 9)) {
		t.Fatalf("ConvexHull = %s, want [1,9]", hull)
	}
}

func TestSplitImproper(t *testing.T) {
	improper := New(b(4, 14), b(4, 2))
	parts := improper.SplitImproper()
	if len(parts) != 2 {
		t.Fatalf("SplitImproper returned %d parts, want 2", len(parts))
	}
	if !parts[0].Lo.Equal(b(4, 14)) || !parts[0].Hi.Equal(b(4, 15)) {
		t.Fatalf("first split part = %s, want [14,15]", parts[0])
	}
	if !parts[1].Lo.Equal(b(4, 0)) || !parts[1].Hi.Equal(b(4, 2)) {
		t.Fatalf("second split part = %s, want [0,2]", parts[1])
	}

	proper := New(b(4, 1), b(4, 5))
	if got := proper.SplitImproper(); len(got) != 1 || got[0] != proper {
		t.Fatalf("SplitImproper on a proper interval changed it: %v", got)
	}
}

func TestCmpAndLess(t *testing.T) {
	a := New(b(4, 1), b(4, 2))
	c := New(b(4, 1), b(4, 5))
	if !a.Less(c) {
		t.Fatalf("[1,2] should sort before [1,5]")
	}
}
