package playback

// History is the stack of previously played items, most recent last.
type History struct {
	items []Item
}

// Push appends an item.
func (h *History) Push(item Item) {
	h.items = append(h.items, item)
}

// Pop removes and returns the most recent item.
func (h *History) Pop() (Item, bool) {
	if len(h.items) == 0 {
		return Item{}, false
	}
	item := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]
	return item, true
}

// Clear empties the history.
func (h *History) Clear() {
	h.items = nil
}

// Items returns a copy of the history, oldest first.
func (h *History) Items() []Item {
	out := make([]Item, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of items in the history.
func (h *History) Len() int {
	return len(h.items)
}
