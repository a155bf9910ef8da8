package playback

// Queue is the ordered sequence of upcoming items, front = next to play.
// Duplicates are allowed; the same song may be queued several times.
type Queue struct {
	items []Item
}

// PushBack appends items to the end of the queue.
func (q *Queue) PushBack(items ...Item) {
	q.items = append(q.items, items...)
}

// PushFront inserts an item at the front of the queue.
func (q *Queue) PushFront(item Item) {
	q.items = append([]Item{item}, q.items...)
}

// PopFront removes and returns the front item.
func (q *Queue) PopFront() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.items = nil
}

// Items returns a copy of the queued items.
func (q *Queue) Items() []Item {
	out := make([]Item, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}
