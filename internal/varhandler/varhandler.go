// Package varhandler allocates SAT variable identities for a single
// feasibility query. The labelling matrix occupies variables 1..n^2
// directly (x_{v,l} = (v-1)*n + l); the Handler hands out everything
// above that range to encoders that need auxiliary ("tseitin") bits.
package varhandler

// Handler owns a monotonically increasing variable counter. Once an
// id has been returned by Alloc it is never reused; a Handler is
// scoped to exactly one feasibility query and is discarded afterwards.
type Handler struct {
	base  int
	next  int
	count int
}

// New returns a Handler whose first Alloc() returns base+1. base is
// typically n*n, the size of the labelling matrix already spoken for.
func New(base int) *Handler {
	return &Handler{base: base, next: base + 1}
}

// Alloc returns the next unused variable id.
func (h *Handler) Alloc() int {
	id := h.next
	h.next++
	h.count++
	return id
}

// AllocN returns n consecutive fresh variable ids.
func (h *Handler) AllocN(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = h.Alloc()
	}
	return ids
}

// Total reports how many variables have been allocated via Alloc/AllocN.
func (h *Handler) Total() int {
	return h.count
}

// Last reports the most recently allocated id, or base if none has
// been allocated yet.
func (h *Handler) Last() int {
	return h.next - 1
}
