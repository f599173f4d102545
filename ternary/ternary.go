// Package ternary implements the per-bit {0, 1, unknown} lattice used
// to give bitwise IR operations a tractable interval-set semantics.
package ternary

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/hdlflow/bvintervals/bits"
)

// Value is a single bit's position in the ternary lattice.
type Value int8

const (
	Zero Value = iota
	One
	Unknown
)

func (v Value) String() string {
	switch v {
	case Zero:
		return "0"
	case One:
		return "1"
	case Unknown:
		return "X"
	default:
		return "?"
	}
}

// IsKnown reports whether v is Zero or One.
func IsKnown(v Value) bool { return v != Unknown }

// Vector is a fixed-width sequence of ternary values, index 0 being
// the least significant bit.
type Vector []Value

// New returns a Vector of the given width, every bit Unknown.
func New(width int) Vector {
	v := make(Vector, width)
	for i := range v {
		v[i] = Unknown
	}
	return v
}

// FromBits returns a fully-known Vector matching b.
func FromBits(b bits.Bits) Vector {
	v := make(Vector, b.Width())
	for i := range v {
		if b.Bit(i) {
			v[i] = One
		} else {
			v[i] = Zero
		}
	}
	return v
}

func (v Vector) String() string {
	var sb strings.Builder
	for i := len(v) - 1; i >= 0; i-- {
		sb.WriteString(v[i].String())
	}
	return sb.String()
}

// IsFullyKnown reports whether every bit of v is known.
func IsFullyKnown(v Vector) bool {
	for _, b := range v {
		if b == Unknown {
			return false
		}
	}
	return true
}

// ToKnownBitsValues returns the concrete value of v, treating every
// unknown bit as zero.
func ToKnownBitsValues(v Vector) bits.Bits {
	width := len(v)
	n := bits.Zero(width)
	for i, b := range v {
		if b == One {
			n = n.Add(bitValue(width, i))
		}
	}
	return n
}

// bitValue returns the value with only bit i set, using big.Int
// shifting since 1<<i can overflow a native uint64 for wide vectors.
func bitValue(width, i int) bits.Bits {
	n := new(big.Int).Lsh(big.NewInt(1), uint(i))
	return bits.FromBigInt(width, n)
}

// AllBitsValues enumerates every concrete filling of v's unknown bits,
// treating the highest-indexed (most significant) unknown bit as
// varying slowest, i.e. in msb-to-lsb order.
func AllBitsValues(v Vector) []bits.Bits {
	var unknownPositions []int
	for i, b := range v {
		if b == Unknown {
			unknownPositions = append(unknownPositions, i)
		}
	}
	// Order most-significant-first so that counting up through the
	// combinations fills the highest unknown bit slowest.
	for i, j := 0, len(unknownPositions)-1; i < j; i, j = i+1, j-1 {
		unknownPositions[i], unknownPositions[j] = unknownPositions[j], unknownPositions[i]
	}
	k := len(unknownPositions)
	base := ToKnownBitsValues(v)
	width := len(v)
	total := 1 << k
	out := make([]bits.Bits, 0, total)
	for c := 0; c < total; c++ {
		val := base
		for idx, pos := range unknownPositions {
			bitIdx := k - 1 - idx
			if (c>>bitIdx)&1 == 1 {
				val = val.Add(bitValue(width, pos))
			}
		}
		out = append(out, val)
	}
	return out
}

// KnownBits pairs a mask of which bits are known with the concrete
// values of those bits (zero elsewhere).
type KnownBits struct {
	Mask   bits.Bits
	Values bits.Bits
}

// ToKnownBits derives a KnownBits from a Vector.
func ToKnownBits(v Vector) KnownBits {
	width := len(v)
	mask := bits.Zero(width)
	values := bits.Zero(width)
	for i, b := range v {
		if b != Unknown {
			mask = mask.Add(bitValue(width, i))
			if b == One {
				values = values.Add(bitValue(width, i))
			}
		}
	}
	return KnownBits{Mask: mask, Values: values}
}

func requireSameLen(op string, a, b Vector) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("ternary: %s: mismatched widths %d and %d", op, len(a), len(b)))
	}
}

// Not computes the bitwise complement; Unknown bits stay Unknown.
func Not(v Vector) Vector {
	out := make(Vector, len(v))
	for i, b := range v {
		switch b {
		case Zero:
			out[i] = One
		case One:
			out[i] = Zero
		default:
			out[i] = Unknown
		}
	}
	return out
}

// And computes the bitwise AND. A known-zero bit dominates: 0 AND X
// is always 0, even when X is unknown.
func And(a, b Vector) Vector {
	requireSameLen("And", a, b)
	out := make(Vector, len(a))
	for i := range a {
		x, y := a[i], b[i]
		switch {
		case x == Zero || y == Zero:
			out[i] = Zero
		case x == One && y == One:
			out[i] = One
		default:
			out[i] = Unknown
		}
	}
	return out
}

// Or computes the bitwise OR. A known-one bit dominates.
func Or(a, b Vector) Vector {
	requireSameLen("Or", a, b)
	out := make(Vector, len(a))
	for i := range a {
		x, y := a[i], b[i]
		switch {
		case x == One || y == One:
			out[i] = One
		case x == Zero && y == Zero:
			out[i] = Zero
		default:
			out[i] = Unknown
		}
	}
	return out
}

// Xor computes the bitwise XOR. Unknown if either input bit is unknown.
func Xor(a, b Vector) Vector {
	requireSameLen("Xor", a, b)
	out := make(Vector, len(a))
	for i := range a {
		x, y := a[i], b[i]
		if x == Unknown || y == Unknown {
			out[i] = Unknown
			continue
		}
		if x == y {
			out[i] = Zero
		} else {
			out[i] = One
		}
	}
	return out
}

// Meet computes the lattice meet of a and b: bits both vectors agree
// on keep their value, disagreeing known bits become Unknown.
func Meet(a, b Vector) Vector {
	requireSameLen("Meet", a, b)
	out := make(Vector, len(a))
	for i := range a {
		switch {
		case a[i] == Unknown || b[i] == Unknown:
			out[i] = Unknown
		case a[i] == b[i]:
			out[i] = a[i]
		default:
			out[i] = Unknown
		}
	}
	return out
}

// OneHotLsbToMsb evaluates a one-hot-from-LSB encoding over ternary
// values: output bit i (for i < len(v)) is One iff input bit i is the
// lowest set bit, and the extra output bit (index len(v)) is One iff
// every input bit is Zero. Output width is len(v)+1.
func OneHotLsbToMsb(v Vector) Vector {
	return oneHot(v, false)
}

// OneHotMsbToLsb is the mirror of OneHotLsbToMsb, scanning from the
// most significant bit down.
func OneHotMsbToLsb(v Vector) Vector {
	return oneHot(v, true)
}

func oneHot(v Vector, fromMsb bool) Vector {
	w := len(v)
	out := make(Vector, w+1)
	definitePriorOne := false
	possiblePriorOne := false
	order := make([]int, w)
	for i := range order {
		if fromMsb {
			order[i] = w - 1 - i
		} else {
			order[i] = i
		}
	}
	for _, pos := range order {
		if definitePriorOne {
			out[pos] = Zero
		} else {
			switch v[pos] {
			case Zero:
				out[pos] = Zero
			case One:
				if possiblePriorOne {
					out[pos] = Unknown
				} else {
					out[pos] = One
				}
			case Unknown:
				out[pos] = Unknown
			}
		}
		switch v[pos] {
		case One:
			definitePriorOne = true
			possiblePriorOne = true
		case Unknown:
			possiblePriorOne = true
		}
	}
	switch {
	case definitePriorOne:
		out[w] = Zero
	case possiblePriorOne:
		out[w] = Unknown
	default:
		out[w] = One
	}
	return out
}
