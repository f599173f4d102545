// Package bits implements fixed-width unsigned integers.
//
// A Bits value carries its bit width as part of the value itself: two
// Bits with different widths are never equal, and every arithmetic
// operation that combines two Bits requires them to share a width.
// Values above the tagged width are always zero; there is no way to
// construct a Bits that violates this invariant from outside the
// package.
package bits

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/constraints"
)

// Bits is an immutable fixed-width unsigned integer.
type Bits struct {
	width int
	val   *big.Int
}

func mask(width int) *big.Int {
	m := big.NewInt(1)
	m.Lsh(m, uint(width))
	m.Sub(m, big.NewInt(1))
	return m
}

func normalize(width int, v *big.Int) Bits {
	if width < 0 {
		panic(fmt.Sprintf("bits: negative width %d", width))
	}
	if v.Sign() < 0 {
		panic("bits: negative value")
	}
	n := new(big.Int).And(v, mask(width))
	return Bits{width: width, val: n}
}

// Zero returns the zero value of the given width.
func Zero(width int) Bits {
	return normalize(width, new(big.Int))
}

// AllOnes returns the maximal value of the given width, 2^width-1.
func AllOnes(width int) Bits {
	return normalize(width, mask(width))
}

// FromUint64 constructs a Bits of the given width from a uint64,
// truncating away any bits above width.
func FromUint64(width int, v uint64) Bits {
	return normalize(width, new(big.Int).SetUint64(v))
}

// FromBigInt constructs a Bits of the given width from a non-negative
// big.Int, truncating away any bits above width.
func FromBigInt(width int, v *big.Int) Bits {
	return normalize(width, v)
}

// Width returns the number of bits this value is tagged with.
func (b Bits) Width() int { return b.width }

// BigInt returns the value as a non-negative big.Int in [0, 2^width).
func (b Bits) BigInt() *big.Int {
	if b.val == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b.val)
}

// Uint64 returns the value truncated to a uint64, along with whether
// the value actually fit in 64 bits.
func (b Bits) Uint64() (uint64, bool) {
	if b.val == nil {
		return 0, true
	}
	return b.val.Uint64(), b.val.IsUint64()
}

func (b Bits) String() string {
	return fmt.Sprintf("%s_%d", b.BigInt().String(), b.width)
}

func requireSameWidth(op string, a, b Bits) {
	if a.width != b.width {
		panic(fmt.Sprintf("bits: %s: mismatched widths %d and %d", op, a.width, b.width))
	}
}

// Equal reports whether a and b have the same width and value.
// Bits of differing widths are never equal.
func (a Bits) Equal(b Bits) bool {
	if a.width != b.width {
		return false
	}
	return a.BigInt().Cmp(b.BigInt()) == 0
}

// Cmp performs an unsigned comparison, returning -1, 0, or 1.
// Panics if a and b have different widths.
func (a Bits) Cmp(b Bits) int {
	requireSameWidth("Cmp", a, b)
	return a.BigInt().Cmp(b.BigInt())
}

// ULessThan reports whether a < b unsigned.
func (a Bits) ULessThan(b Bits) bool { return a.Cmp(b) < 0 }

// UGreaterThan reports whether a > b unsigned.
func (a Bits) UGreaterThan(b Bits) bool { return a.Cmp(b) > 0 }

// IsZero reports whether the value is zero.
func (b Bits) IsZero() bool { return b.BigInt().Sign() == 0 }

// IsAllOnes reports whether the value is the maximal value for its width.
func (b Bits) IsAllOnes() bool {
	return b.BigInt().Cmp(mask(b.width)) == 0
}

// Bit returns the value of bit i, counted from the least-significant
// bit (bit 0). Panics if i is out of range.
func (b Bits) Bit(i int) bool {
	if i < 0 || i >= b.width {
		panic(fmt.Sprintf("bits: bit index %d out of range for width %d", i, b.width))
	}
	return b.BigInt().Bit(i) == 1
}

// Msb returns the most significant bit. Panics if width is 0.
func (b Bits) Msb() bool {
	if b.width == 0 {
		panic("bits: Msb of zero-width value")
	}
	return b.Bit(b.width - 1)
}

// LeadingZeros returns the number of leading (most-significant) zero
// bits.
func (b Bits) LeadingZeros() int {
	n := b.BigInt().BitLen()
	return b.width - n
}

// HighestSetBit returns the index (from the LSB) of the highest set
// bit, and false if the value is zero.
func (b Bits) HighestSetBit() (int, bool) {
	n := b.BigInt().BitLen()
	if n == 0 {
		return 0, false
	}
	return n - 1, true
}

// Slice extracts the half-open bit range [lo, hi) as a Bits of width
// hi-lo. Panics if the range is invalid for this value's width.
func (b Bits) Slice(lo, hi int) Bits {
	if lo < 0 || hi < lo || hi > b.width {
		panic(fmt.Sprintf("bits: invalid slice [%d,%d) of width %d", lo, hi, b.width))
	}
	v := new(big.Int).Rsh(b.BigInt(), uint(lo))
	return normalize(hi-lo, v)
}

// ZeroExtend widens the value to the given width, padding with zeros.
// Panics if width is smaller than the current width.
func (b Bits) ZeroExtend(width int) Bits {
	if width < b.width {
		panic(fmt.Sprintf("bits: ZeroExtend to smaller width %d < %d", width, b.width))
	}
	return normalize(width, b.BigInt())
}

// SignExtend widens the value to the given width, replicating the
// current most-significant bit. Panics if width is smaller than the
// current width. A zero-width value extends to zero.
func (b Bits) SignExtend(width int) Bits {
	if width < b.width {
		panic(fmt.Sprintf("bits: SignExtend to smaller width %d < %d", width, b.width))
	}
	if b.width == 0 {
		return Zero(width)
	}
	v := b.BigInt()
	if b.Msb() {
		ext := mask(width)
		ext.Xor(ext, mask(b.width))
		v.Or(v, ext)
	}
	return normalize(width, v)
}

// Truncate narrows the value to the given width, dropping the high
// bits. Panics if width is larger than the current width.
func (b Bits) Truncate(width int) Bits {
	if width > b.width {
		panic(fmt.Sprintf("bits: Truncate to larger width %d > %d", width, b.width))
	}
	return normalize(width, b.BigInt())
}

// Concat concatenates parts most-significant-first: the first
// argument occupies the highest bits of the result.
func Concat(parts ...Bits) Bits {
	total := 0
	for _, p := range parts {
		total += p.width
	}
	v := new(big.Int)
	for _, p := range parts {
		v.Lsh(v, uint(p.width))
		v.Or(v, p.BigInt())
	}
	return normalize(total, v)
}

// Add performs wrap-around unsigned addition. Panics on width mismatch.
func (a Bits) Add(b Bits) Bits {
	requireSameWidth("Add", a, b)
	return normalize(a.width, new(big.Int).Add(a.BigInt(), b.BigInt()))
}

// Sub performs wrap-around unsigned subtraction. Panics on width mismatch.
func (a Bits) Sub(b Bits) Bits {
	requireSameWidth("Sub", a, b)
	v := new(big.Int).Sub(a.BigInt(), b.BigInt())
	if v.Sign() < 0 {
		v.Add(v, mask(a.width))
		v.Add(v, big.NewInt(1))
	}
	return normalize(a.width, v)
}

// Negate returns the two's-complement negation, wrapping around.
func (b Bits) Negate() Bits {
	return Zero(b.width).Sub(b)
}

// UMul multiplies two values and truncates or zero-extends the full
// product to outputWidth.
func (a Bits) UMul(b Bits, outputWidth int) Bits {
	v := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return normalize(outputWidth, v)
}

// FullUMul returns the full-precision unsigned product, with width
// a.Width()+b.Width().
func (a Bits) FullUMul(b Bits) Bits {
	return a.UMul(b, a.width+b.width)
}

// UDiv performs unsigned integer division, truncating toward zero.
// Panics if b is zero; callers in this module never invoke UDiv with
// a zero divisor because the zero case has its own defined interval
// semantics (see intervalops.UDiv).
func (a Bits) UDiv(b Bits) Bits {
	requireSameWidth("UDiv", a, b)
	if b.IsZero() {
		panic("bits: UDiv by zero")
	}
	return normalize(a.width, new(big.Int).Div(a.BigInt(), b.BigInt()))
}

// XorReduce XORs together every bit of the value, returning a 1-bit
// result: the parity of the number of set bits.
func (b Bits) XorReduce() Bits {
	parity := 0
	v := b.BigInt()
	for i := 0; i < b.width; i++ {
		if v.Bit(i) == 1 {
			parity ^= 1
		}
	}
	return FromUint64(1, uint64(parity))
}

// MinInt and MaxInt are small generic helpers for the rest of the
// module (intervalops uses them), mirroring how the teacher's data-flow package
// keeps its arithmetic helpers generic over constraints.Integer rather
// than duplicating them per concrete type.

func MinInt[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func MaxInt[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}
