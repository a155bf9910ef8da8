package playback

// StateChange is emitted when the play/pause flag flips.
type StateChange struct {
	Playing bool
}

// TrackChange is emitted when the current item changes, whether through
// SetCurrent, PlayNext or PlayPrevious. Current is nil when the queue ran
// out and nothing is loaded anymore.
type TrackChange struct {
	Previous *Item
	Current  *Item
}

// QueueChange is emitted when the queue contents change.
type QueueChange struct {
	Items []Item
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	Repeat  RepeatMode
	Shuffle bool
}

// VolumeChange is emitted when the volume setting changes.
type VolumeChange struct {
	Volume float64
}
