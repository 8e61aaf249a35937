package ui

// Handle is a stable reference to an attached widget. A handle outlives the
// widget it names: once the widget is released, resolving the handle fails
// because the slot's generation has moved on.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h was never assigned.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

type handleSlot struct {
	gen    uint32
	widget Widget
}

// registry hands out generation-checked handles for attached widgets.
type registry struct {
	slots []handleSlot
	free  []uint32
}

func (r *registry) add(w Widget) Handle {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		r.slots = append(r.slots, handleSlot{})
		idx = uint32(len(r.slots) - 1)
	}
	slot := &r.slots[idx]
	slot.gen++
	slot.widget = w
	return Handle{index: idx, gen: slot.gen}
}

func (r *registry) get(h Handle) Widget {
	if h.IsZero() || int(h.index) >= len(r.slots) {
		return nil
	}
	slot := r.slots[h.index]
	if slot.gen != h.gen {
		return nil
	}
	return slot.widget
}

func (r *registry) remove(h Handle) bool {
	if r.get(h) == nil {
		return false
	}
	slot := &r.slots[h.index]
	slot.gen++
	slot.widget = nil
	r.free = append(r.free, h.index)
	return true
}

func (r *registry) len() int {
	return len(r.slots) - len(r.free)
}
