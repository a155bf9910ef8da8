// Package playback models what is playing, what plays next and what played
// before. The Controller is the single state machine of the application:
// transitions are applied in call order, atomically, and never fail —
// advancing past an empty queue or stepping back over empty history is a
// defined no-op, not an error.
package playback

import "sync"

// Controller tracks the current item, the upcoming queue, the play history
// and the transport flags. It holds snapshots only and performs no I/O;
// driving the audio primitive from its transitions is the caller's job.
//
// Events are emitted after the state lock is released, so their order is
// only guaranteed relative to the transitions of a single caller. The
// application drives all transitions from one goroutine (plus the
// track-end handoff, which serializes through the same service); callers
// introducing concurrent writers must not rely on cross-writer event
// order.
type Controller struct {
	mu sync.RWMutex

	current *Item
	playing bool
	queue   Queue
	history History
	volume  float64
	repeat  RepeatMode
	shuffle bool

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// NewController creates a controller with nothing loaded, full volume and
// repeat off.
func NewController() *Controller {
	return &Controller{volume: 1}
}

// Current returns the current item, if any.
func (c *Controller) Current() (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return Item{}, false
	}
	return *c.current, true
}

// IsPlaying reports whether transport is in the playing state.
func (c *Controller) IsPlaying() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playing
}

// SetCurrent replaces the current item, pushing the previous one onto the
// history, and forces the playing state. The queue is untouched: callers
// that want "play this and everything after it" clear and refill the queue
// around this call.
func (c *Controller) SetCurrent(item Item) {
	c.mu.Lock()
	prev := c.current
	if c.current != nil {
		c.history.Push(*c.current)
	}
	c.current = &item
	c.playing = true
	c.mu.Unlock()

	c.emitTrack(prev, &item)
	c.emitState(true)
}

// RestoreCurrent installs the current item without starting the transport
// and without touching the history, for rebuilding a saved session that
// comes back paused. Regular transitions go through SetCurrent.
func (c *Controller) RestoreCurrent(item Item) {
	c.mu.Lock()
	prev := c.current
	c.current = &item
	c.mu.Unlock()

	c.emitTrack(prev, &item)
}

// TogglePlayPause flips the playing flag. Queue, history and current item
// are unaffected.
func (c *Controller) TogglePlayPause() bool {
	c.mu.Lock()
	c.playing = !c.playing
	playing := c.playing
	c.mu.Unlock()

	c.emitState(playing)
	return playing
}

// SetPlaying forces the playing flag, for callers reconciling with the
// audio primitive (e.g. stopping on queue exhaustion).
func (c *Controller) SetPlaying(playing bool) {
	c.mu.Lock()
	if c.playing == playing {
		c.mu.Unlock()
		return
	}
	c.playing = playing
	c.mu.Unlock()

	c.emitState(playing)
}

// Enqueue appends items to the queue. No dedupe: the same song can appear
// multiple times.
func (c *Controller) Enqueue(items ...Item) {
	if len(items) == 0 {
		return
	}
	c.mu.Lock()
	c.queue.PushBack(items...)
	snapshot := c.queue.Items()
	c.mu.Unlock()

	c.emitQueue(snapshot)
}

// DequeueAll empties the queue.
func (c *Controller) DequeueAll() {
	c.mu.Lock()
	c.queue.Clear()
	c.mu.Unlock()

	c.emitQueue(nil)
}

// PlayNext pushes the current item onto the history and pops the queue
// front into current. With an empty queue, current becomes absent and the
// transport stops; repeat enforcement (refilling on repeat-all) is caller
// policy, not a controller transition.
func (c *Controller) PlayNext() (Item, bool) {
	c.mu.Lock()
	prev := c.current
	if c.current != nil {
		c.history.Push(*c.current)
	}
	next, ok := c.queue.PopFront()
	if ok {
		c.current = &next
		c.playing = true
	} else {
		c.current = nil
		c.playing = false
	}
	playing := c.playing
	snapshot := c.queue.Items()
	c.mu.Unlock()

	c.emitTrack(prev, c.currentPtr())
	c.emitState(playing)
	c.emitQueue(snapshot)
	return next, ok
}

// PlayPrevious pushes the current item onto the FRONT of the queue, so
// stepping backward does not lose the forward path, then pops the last
// history item into current. With empty history this is a no-op.
func (c *Controller) PlayPrevious() (Item, bool) {
	c.mu.Lock()
	last, ok := c.history.Pop()
	if !ok {
		c.mu.Unlock()
		return Item{}, false
	}
	prev := c.current
	if c.current != nil {
		c.queue.PushFront(*c.current)
	}
	c.current = &last
	c.playing = true
	snapshot := c.queue.Items()
	c.mu.Unlock()

	c.emitTrack(prev, &last)
	c.emitState(true)
	c.emitQueue(snapshot)
	return last, true
}

// SetVolume clamps to [0,1] and always succeeds.
func (c *Controller) SetVolume(v float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.mu.Lock()
	c.volume = v
	c.mu.Unlock()

	c.emitVolume(v)
	return v
}

// Volume returns the volume setting.
func (c *Controller) Volume() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.volume
}

// CycleRepeat advances the repeat mode through the fixed cycle
// None -> One -> All -> None.
func (c *Controller) CycleRepeat() RepeatMode {
	c.mu.Lock()
	c.repeat = c.repeat.next()
	mode := c.repeat
	shuffle := c.shuffle
	c.mu.Unlock()

	c.emitMode(mode, shuffle)
	return mode
}

// Repeat returns the repeat mode.
func (c *Controller) Repeat() RepeatMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.repeat
}

// SetRepeat forces the repeat mode, for state restoration.
func (c *Controller) SetRepeat(mode RepeatMode) {
	c.mu.Lock()
	if c.repeat == mode {
		c.mu.Unlock()
		return
	}
	c.repeat = mode
	shuffle := c.shuffle
	c.mu.Unlock()

	c.emitMode(mode, shuffle)
}

// ToggleShuffle flips the shuffle flag. The controller does not reorder
// the queue; callers apply ShuffledOrder to a queue snapshot if they want
// randomized playback.
func (c *Controller) ToggleShuffle() bool {
	c.mu.Lock()
	c.shuffle = !c.shuffle
	shuffle := c.shuffle
	mode := c.repeat
	c.mu.Unlock()

	c.emitMode(mode, shuffle)
	return shuffle
}

// SetShuffle forces the shuffle flag, for state restoration.
func (c *Controller) SetShuffle(enabled bool) {
	c.mu.Lock()
	if c.shuffle == enabled {
		c.mu.Unlock()
		return
	}
	c.shuffle = enabled
	mode := c.repeat
	c.mu.Unlock()

	c.emitMode(mode, enabled)
}

// Shuffle reports whether shuffle is enabled.
func (c *Controller) Shuffle() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shuffle
}

// QueueItems returns a copy of the upcoming queue, front first.
func (c *Controller) QueueItems() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.Items()
}

// QueueLen returns the number of queued items.
func (c *Controller) QueueLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.Len()
}

// HistoryItems returns a copy of the play history, oldest first.
func (c *Controller) HistoryItems() []Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.history.Items()
}

// HistoryLen returns the number of items in the history.
func (c *Controller) HistoryLen() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.history.Len()
}

// Subscribe creates a new event subscription.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	c.subs = append(c.subs, sub)
	return sub
}

// Close shuts down all subscriptions. The controller itself stays usable;
// it is a live session object for the lifetime of the process.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()
}

func (c *Controller) currentPtr() *Item {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return nil
	}
	item := *c.current
	return &item
}

func (c *Controller) emitTrack(prev, cur *Item) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendTrack(TrackChange{Previous: prev, Current: cur})
	}
}

func (c *Controller) emitState(playing bool) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendState(StateChange{Playing: playing})
	}
}

func (c *Controller) emitQueue(items []Item) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendQueue(QueueChange{Items: items})
	}
}

func (c *Controller) emitMode(mode RepeatMode, shuffle bool) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendMode(ModeChange{Repeat: mode, Shuffle: shuffle})
	}
}

func (c *Controller) emitVolume(v float64) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		sub.sendVolume(VolumeChange{Volume: v})
	}
}
