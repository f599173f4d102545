package intervalops

import (
	"container/heap"

	"github.com/hdlflow/bvintervals/bits"
	"github.com/hdlflow/bvintervals/interval"
	"github.com/hdlflow/bvintervals/intervalset"
)

// mergeNode is an intrusive doubly-linked-list node over the
// interval set being minimized, paired with the gap between it and
// its predecessor. This is the arena-of-nodes-plus-index-heap
// rendition of the source's intrusive-pointer merge list: Go has no
// intrusive containers, so links are expressed as slice indexes into
// a fixed arena instead of raw pointers.
type mergeNode struct {
	final    interval.Interval
	gap      bits.Bits
	hasGap   bool
	prev     int
	next     int
	inHeap   bool
	heapIdx  int
	original int
}

// gapHeap is a min-heap of arena indexes ordered by (gap, original
// position) ascending, so equal gaps break ties in favor of the
// earlier interval.
type gapHeap struct {
	nodes []*mergeNode
	arena []mergeNode
}

func (h gapHeap) Len() int { return len(h.nodes) }
func (h gapHeap) Less(i, j int) bool {
	a, b := h.nodes[i], h.nodes[j]
	c := a.gap.Cmp(b.gap)
	if c != 0 {
		return c < 0
	}
	return a.original < b.original
}
func (h gapHeap) Swap(i, j int) {
	h.nodes[i], h.nodes[j] = h.nodes[j], h.nodes[i]
	h.nodes[i].heapIdx = i
	h.nodes[j].heapIdx = j
}
func (h *gapHeap) Push(x any) {
	n := x.(*mergeNode)
	n.heapIdx = len(h.nodes)
	h.nodes = append(h.nodes, n)
}
func (h *gapHeap) Pop() any {
	old := h.nodes
	n := len(old)
	item := old[n-1]
	h.nodes = old[:n-1]
	return item
}

// MinimizeIntervals returns a superset of s with at most k intervals,
// chosen by greedily merging the smallest gaps between consecutive
// intervals first (ties broken by the earlier gap). Panics if k is not
// positive.
func MinimizeIntervals(s intervalset.IntervalSet, k int) intervalset.IntervalSet {
	if k <= 0 {
		panic("intervalops: MinimizeIntervals: budget must be positive")
	}
	if s.NumberOfIntervals() <= k {
		return s
	}
	if k == 1 {
		hull, _ := s.ConvexHull()
		return intervalset.NewBuilder(s.Width()).Add(hull).Build()
	}

	ivs := s.Intervals()
	arena := make([]mergeNode, len(ivs))
	arena[0] = mergeNode{final: ivs[0], prev: -1, next: 1, original: 0}
	for i := 1; i < len(ivs); i++ {
		gap := ivs[i].Lo.Sub(ivs[i-1].Hi)
		next := i + 1
		if next >= len(ivs) {
			next = -1
		}
		arena[i] = mergeNode{
			final:    ivs[i],
			gap:      gap,
			hasGap:   true,
			prev:     i - 1,
			next:     next,
			original: i,
		}
	}

	h := &gapHeap{arena: arena}
	for i := 1; i < len(arena); i++ {
		heap.Push(h, &arena[i])
	}

	remaining := len(arena)
	for remaining > k {
		min := heap.Pop(h).(*mergeNode)
		prev := &arena[min.prev]
		prev.final = interval.New(prev.final.Lo, min.final.Hi)
		prev.next = min.next
		if min.next != -1 {
			arena[min.next].prev = min.prev
		}
		remaining--
	}

	bld := intervalset.NewBuilder(s.Width())
	for i := 0; i != -1; {
		n := &arena[i]
		// Skip nodes that were merged away: a merged-away node's slot
		// is still linked to by nobody once its prev absorbs it, so we
		// only need to walk from the head following live `next`
		// pointers, which the merge loop kept consistent.
		bld.Add(n.final)
		i = n.next
	}
	return bld.Build()
}
