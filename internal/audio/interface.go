// Package audio wraps the process-wide audio output behind a small
// primitive: load a source URL, play/pause, seek, volume, and three
// independent notification channels (time, duration, volume). Exactly one
// real player exists per application instance; it is constructed explicitly
// and injected into whatever drives it, never reached through a hidden
// global.
package audio

import "time"

// Interface defines the audio primitive contract for dependency injection
// and testing.
type Interface interface {
	// Play starts or resumes playback of the loaded source.
	Play() error
	// Pause suspends playback, keeping the position.
	Pause()
	// SetSource loads a media URL and blocks until it is ready to play.
	// Setting the same URL twice is a no-op rather than a restart.
	SetSource(url string) error
	// Source returns the currently loaded URL, if any.
	Source() string

	Position() time.Duration
	SetPosition(pos time.Duration) error
	Duration() time.Duration

	Volume() float64
	SetVolume(v float64)

	// Subscription channels. Each supports multiple simultaneous
	// subscribers; the returned func removes only that subscriber.
	OnTimeUpdate(fn func(time.Duration)) (unsubscribe func())
	OnDurationChange(fn func(time.Duration)) (unsubscribe func())
	OnVolumeChange(fn func(float64)) (unsubscribe func())

	// OnFinished registers the track-end callback.
	OnFinished(fn func())

	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Interface = (*Mock)(nil)
)
