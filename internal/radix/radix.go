// Package radix implements a mixed-radix counter used to enumerate
// the Cartesian product of per-operand interval choices without
// relying on any language-specific variadic facility.
package radix

import "golang.org/x/exp/constraints"

// Iterate walks every combination of indexes where indexes[i] ranges
// over [0, radix[i]) for each operand, calling f with each combination
// in turn. If f returns true, iteration stops early (used by callers
// that have determined the result is already maximal and further
// combinations cannot add information).
//
// A radix entry of 0 means that operand has no choices at all, so no
// combinations are produced and f is never called.
func Iterate(radix []int, f func(indexes []int) bool) {
	for _, r := range radix {
		if r == 0 {
			return
		}
	}
	if len(radix) == 0 {
		return
	}
	indexes := make([]int, len(radix))
	for {
		if f(indexes) {
			return
		}
		// Increment like an odometer, least-significant operand first.
		i := len(indexes) - 1
		for i >= 0 {
			indexes[i]++
			if indexes[i] < radix[i] {
				break
			}
			indexes[i] = 0
			i--
		}
		if i < 0 {
			return
		}
	}
}

// Product returns the product of xs, used to size-check or log the
// number of corner combinations a call to Iterate will produce.
func Product[T constraints.Integer](xs []T) T {
	var p T = 1
	for _, x := range xs {
		p *= x
	}
	return p
}
