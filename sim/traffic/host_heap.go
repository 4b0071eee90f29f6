package traffic

import "container/heap"

// hostArrival is the pending send time of one host.
type hostArrival struct {
	NextSendNs int64
	Host       int
}

// hostHeap implements a min-heap of host arrivals with deterministic ordering.
// Ordering: next send time → host ID
type hostHeap struct {
	arrivals []hostArrival
}

// newHostHeap builds a heap over the given arrivals in O(n).
func newHostHeap(arrivals []hostArrival) *hostHeap {
	h := &hostHeap{arrivals: arrivals}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *hostHeap) Len() int {
	return len(h.arrivals)
}

// Less implements heap.Interface with deterministic ordering
func (h *hostHeap) Less(i, j int) bool {
	ai, aj := h.arrivals[i], h.arrivals[j]
	if ai.NextSendNs != aj.NextSendNs {
		return ai.NextSendNs < aj.NextSendNs
	}
	return ai.Host < aj.Host
}

// Swap implements heap.Interface
func (h *hostHeap) Swap(i, j int) {
	h.arrivals[i], h.arrivals[j] = h.arrivals[j], h.arrivals[i]
}

// Push implements heap.Interface
func (h *hostHeap) Push(x interface{}) {
	h.arrivals = append(h.arrivals, x.(hostArrival))
}

// Pop implements heap.Interface
func (h *hostHeap) Pop() interface{} {
	old := h.arrivals
	n := len(old)
	item := old[n-1]
	h.arrivals = old[0 : n-1]
	return item
}

// Peek returns the earliest arrival without removing it.
// The heap must not be empty.
func (h *hostHeap) Peek() hostArrival {
	return h.arrivals[0]
}

// Retire removes the earliest arrival permanently.
func (h *hostHeap) Retire() hostArrival {
	return heap.Pop(h).(hostArrival)
}

// RescheduleTop moves the earliest host to nextSendNs in place:
// the root is overwritten and sifted down, so the heap never grows.
func (h *hostHeap) RescheduleTop(nextSendNs int64) {
	h.arrivals[0].NextSendNs = nextSendNs
	heap.Fix(h, 0)
}
