package renderer

// HeapLayout fixes where every constant-buffer view lives in the descriptor
// table. Object views occupy [0, RingDepth*ItemCount) grouped by ring slot;
// the per-slot pass views follow at PassOffset. The device must allocate its
// descriptors in exactly this order.
type HeapLayout struct {
	RingDepth uint32
	ItemCount uint32
}

// ObjectIndex returns the descriptor index of the object constants for the
// given ring slot and item slot.
func (h HeapLayout) ObjectIndex(ringSlot, itemSlot uint32) uint32 {
	return ringSlot*h.ItemCount + itemSlot
}

// PassOffset returns the descriptor index of the first pass-constant view.
func (h HeapLayout) PassOffset() uint32 {
	return h.RingDepth * h.ItemCount
}

// PassIndex returns the descriptor index of the pass constants for the given
// ring slot.
func (h HeapLayout) PassIndex(ringSlot uint32) uint32 {
	return h.PassOffset() + ringSlot
}

// TotalDescriptors is the size of the descriptor table.
func (h HeapLayout) TotalDescriptors() uint32 {
	return h.PassOffset() + h.RingDepth
}
