// Package heap provides a comparator-driven binary min-heap.
//
// Unlike container/heap, the element type is generic and ordering is
// supplied as a function, so callers can re-key the same elements with a
// different comparator (the assignment strategies rely on this between
// their quota and balance phases).
package heap

// LessFunc reports whether a orders strictly before b.
type LessFunc[T any] func(a, b T) bool

// Heap is a binary min-heap over a slice.
//
// The minimum element (per the configured LessFunc) is always at the root.
// Heap is not safe for concurrent use; callers that share a heap across
// goroutines must provide their own synchronization.
type Heap[T any] struct {
	items []T
	less  LessFunc[T]
}

// New creates an empty heap ordered by less.
//
// Parameters:
//   - less: Comparator defining the heap order
//
// Returns:
//   - *Heap[T]: Empty heap ready for Push/Pop
func New[T any](less LessFunc[T]) *Heap[T] {
	return &Heap[T]{less: less}
}

// Build constructs a heap from items in O(n) using bottom-up heapify.
//
// This is equivalent to creating an empty heap and pushing every item,
// but faster for bulk construction. The heap takes ownership of the
// provided slice; callers must not use it afterwards.
//
// Parameters:
//   - items: Initial elements (may be nil or empty)
//   - less: Comparator defining the heap order
//
// Returns:
//   - *Heap[T]: Heap containing all items
func Build[T any](items []T, less LessFunc[T]) *Heap[T] {
	h := &Heap[T]{items: items, less: less}
	for i := len(items)/2 - 1; i >= 0; i-- {
		h.siftDown(i)
	}

	return h
}

// Len returns the number of elements currently in the heap.
func (h *Heap[T]) Len() int {
	return len(h.items)
}

// Push inserts item into the heap in O(log n).
func (h *Heap[T]) Push(item T) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the minimum element.
//
// Returns:
//   - T: The minimum element (zero value if empty)
//   - bool: false if the heap was empty
func (h *Heap[T]) Pop() (T, bool) {
	var zero T
	if len(h.items) == 0 {
		return zero, false
	}

	top := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items[last] = zero // release reference
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.siftDown(0)
	}

	return top, true
}

// Peek returns the minimum element without removing it.
//
// Returns:
//   - T: The minimum element (zero value if empty)
//   - bool: false if the heap is empty
func (h *Heap[T]) Peek() (T, bool) {
	if len(h.items) == 0 {
		var zero T
		return zero, false
	}

	return h.items[0], true
}

// Drain empties the heap and returns its remaining elements in
// unspecified order. Useful for re-keying the same elements under a
// different comparator via Build.
func (h *Heap[T]) Drain() []T {
	items := h.items
	h.items = nil

	return items
}

// siftUp restores the heap property after an insertion at idx.
func (h *Heap[T]) siftUp(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if !h.less(h.items[idx], h.items[parent]) {
			break
		}
		h.items[idx], h.items[parent] = h.items[parent], h.items[idx]
		idx = parent
	}
}

// siftDown restores the heap property after a removal or replacement at idx.
func (h *Heap[T]) siftDown(idx int) {
	n := len(h.items)
	for {
		smallest := idx
		left := 2*idx + 1
		right := 2*idx + 2

		if left < n && h.less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && h.less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == idx {
			return
		}
		h.items[idx], h.items[smallest] = h.items[smallest], h.items[idx]
		idx = smallest
	}
}
