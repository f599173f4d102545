package bits

import (
	"math/big"
	"testing"
)

func TestZeroAndAllOnes(t *testing.T) {
	z := Zero(8)
	if !z.IsZero() {
		t.Fatalf("Zero(8) is not zero: %s", z)
	}
	m := AllOnes(8)
	if !m.IsAllOnes() {
		t.Fatalf("AllOnes(8) is not all-ones: %s", m)
	}
	v, ok := m.Uint64()
	if !ok || v != 255 {
		t.Fatalf("AllOnes(8) = %v, want 255", v)
	}
}

func TestFromUint64Truncates(t *testing.T) {
	b := FromUint64(4, 0xFF)
	if v, _ := b.Uint64(); v != 0xF {
		t.Fatalf("FromUint64(4, 0xFF) = %d, want 15", v)
	}
}

func TestEqualRequiresSameWidth(t *testing.T) {
	a := FromUint64(8, 1)
	b := FromUint64(4, 1)
	if a.Equal(b) {
		t.Fatalf("values of differing width compared equal")
	}
}

func TestAddWraps(t *testing.T) {
	a := FromUint64(4, 15)
	b := FromUint64(4, 2)
	sum := a.Add(b)
	if v, _ := sum.Uint64(); v != 1 {
		t.Fatalf("15+2 mod 16 = %d, want 1", v)
	}
}

func TestSubWraps(t *testing.T) {
	a := FromUint64(4, 1)
	b := FromUint64(4, 3)
	diff := a.Sub(b)
	if v, _ := diff.Uint64(); v != 14 {
		t.Fatalf("1-3 mod 16 = %d, want 14", v)
	}
}

func TestNegate(t *testing.T) {
	a := FromUint64(4, 1)
	if v, _ := a.Negate().Uint64(); v != 15 {
		t.Fatalf("Negate(1) width 4 = %d, want 15", v)
	}
	if !Zero(4).Negate().IsZero() {
		t.Fatalf("Negate(0) != 0")
	}
}

func TestSliceAndConcatRoundTrip(t *testing.T) {
	v := FromUint64(8, 0xB6) // 1011 0110
	lo := v.Slice(0, 4)
	hi := v.Slice(4, 8)
	if got, _ := lo.Uint64(); got != 0x6 {
		t.Fatalf("low nibble = %#x, want 0x6", got)
	}
	if got, _ := hi.Uint64(); got != 0xB {
		t.Fatalf("high nibble = %#x, want 0xB", got)
	}
	roundTrip := Concat(hi, lo)
	if !roundTrip.Equal(v) {
		t.Fatalf("Concat(hi, lo) = %s, want %s", roundTrip, v)
	}
}

func TestZeroExtendSignExtend(t *testing.T) {
	neg1 := FromUint64(4, 0xF)
	if got, _ := neg1.SignExtend(8).Uint64(); got != 0xFF {
		t.Fatalf("SignExtend(-1) = %#x, want 0xFF", got)
	}
	if got, _ := neg1.ZeroExtend(8).Uint64(); got != 0x0F {
		t.Fatalf("ZeroExtend(0xF) = %#x, want 0x0F", got)
	}
	pos := FromUint64(4, 0x3)
	if got, _ := pos.SignExtend(8).Uint64(); got != 0x03 {
		t.Fatalf("SignExtend(3) = %#x, want 0x03", got)
	}
}

func TestTruncate(t *testing.T) {
	v := FromUint64(8, 0xAB)
	got := v.Truncate(4)
	if val, _ := got.Uint64(); val != 0xB {
		t.Fatalf("Truncate(0xAB, 4) = %#x, want 0xB", val)
	}
}

func TestUMulAndFullUMul(t *testing.T) {
	a := FromUint64(4, 15)
	b := FromUint64(4, 15)
	full := a.FullUMul(b)
	if full.Width() != 8 {
		t.Fatalf("FullUMul width = %d, want 8", full.Width())
	}
	if v, _ := full.Uint64(); v != 225 {
		t.Fatalf("15*15 = %d, want 225", v)
	}
	truncated := a.UMul(b, 4)
	if v, _ := truncated.Uint64(); v != 225%16 {
		t.Fatalf("UMul truncated = %d, want %d", v, 225%16)
	}
}

func TestUDivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("UDiv by zero did not panic")
		}
	}()
	FromUint64(4, 1).UDiv(Zero(4))
}

func TestUDiv(t *testing.T) {
	a := FromUint64(8, 17)
	b := FromUint64(8, 5)
	if v, _ := a.UDiv(b).Uint64(); v != 3 {
		t.Fatalf("17/5 = %d, want 3", v)
	}
}

func TestXorReduce(t *testing.T) {
	odd := FromUint64(8, 0b0000_0111) // 3 set bits
	even := FromUint64(8, 0b0000_0011)
	if v, _ := odd.XorReduce().Uint64(); v != 1 {
		t.Fatalf("XorReduce(3 bits set) = %d, want 1", v)
	}
	if v, _ := even.XorReduce().Uint64(); v != 0 {
		t.Fatalf("XorReduce(2 bits set) = %d, want 0", v)
	}
}

func TestHighestSetBitAndLeadingZeros(t *testing.T) {
	v := FromUint64(8, 0b0001_0000)
	idx, ok := v.HighestSetBit()
	if !ok || idx != 4 {
		t.Fatalf("HighestSetBit(0x10) = (%d, %v), want (4, true)", idx, ok)
	}
	if v.LeadingZeros() != 3 {
		t.Fatalf("LeadingZeros(0x10) = %d, want 3", v.LeadingZeros())
	}
	if _, ok := Zero(8).HighestSetBit(); ok {
		t.Fatalf("HighestSetBit(0) reported a bit set")
	}
}

func TestMinIntMaxInt(t *testing.T) {
	if MinInt(3, 5) != 3 {
		t.Fatalf("MinInt(3,5) != 3")
	}
	if MaxInt(3, 5) != 5 {
		t.Fatalf("MaxInt(3,5) != 5")
	}
}

func TestFromBigIntWideValue(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 100)
	b := FromBigInt(101, n)
	if b.BigInt().Cmp(n) != 0 {
		t.Fatalf("FromBigInt round trip failed for 2^100")
	}
}

func TestNegativeWidthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Zero(-1) did not panic")
		}
	}()
	Zero(-1)
}
