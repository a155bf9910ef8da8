package audio

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

const tickInterval = 250 * time.Millisecond

// Player is the beep-backed audio primitive. It fetches the source URL
// over HTTP, decodes it in memory and drives the speaker. Construct one
// per process with New.
type Player struct {
	mu sync.Mutex

	httpClient *http.Client

	source   string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	playing  bool

	volumeLevel float64

	timeSubs     subscribers[time.Duration]
	durationSubs subscribers[time.Duration]
	volumeSubs   subscribers[float64]
	onFinished   func()

	speakerReady bool
	done         chan struct{}
	closed       bool
}

// New creates the audio player. The speaker is initialized lazily on the
// first successful SetSource.
func New() *Player {
	return NewWithTimeout(60 * time.Second)
}

// NewWithTimeout creates a player whose source fetches abort after the
// given timeout. A non-positive timeout disables the limit.
func NewWithTimeout(timeout time.Duration) *Player {
	if timeout < 0 {
		timeout = 0
	}
	return &Player{
		httpClient:  &http.Client{Timeout: timeout},
		volumeLevel: 1,
		done:        make(chan struct{}),
	}
}

// SetSource fetches and decodes the media at url, replacing the loaded
// track. Loading the URL that is already loaded is a no-op: playback
// position and state are untouched.
func (p *Player) SetSource(url string) error {
	p.mu.Lock()
	if url == p.source && p.streamer != nil {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	resp, err := p.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("fetch source: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch source: status %d", resp.StatusCode)
	}

	// The decoder needs a seekable stream; network bodies are not.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	streamer, format, err := decode(url, resp.Header.Get("Content-Type"), data)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	if !p.speakerReady {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.speakerReady = true
	}

	p.source = url
	p.streamer = streamer
	p.format = format
	p.ctrl = &beep.Ctrl{Streamer: streamer, Paused: true}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.volumeLevel <= 0,
	}
	p.playing = false

	speaker.Play(beep.Seq(p.volume, beep.Callback(p.handleFinished)))

	dur := format.SampleRate.D(streamer.Len())
	p.durationSubs.notify(dur)
	return nil
}

func decode(url, contentType string, data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	rc := io.NopCloser(bytes.NewReader(data))
	ext := strings.ToLower(path.Ext(url))
	switch {
	case ext == ".flac" || strings.Contains(contentType, "flac"):
		s, f, err := flac.Decode(rc)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode flac: %w", err)
		}
		return s, f, nil
	default:
		s, f, err := mp3.Decode(rc)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("decode mp3: %w", err)
		}
		return s, f, nil
	}
}

// Source returns the loaded URL, or empty if nothing is loaded.
func (p *Player) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

// Play starts or resumes playback.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return fmt.Errorf("play: no source loaded")
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	if !p.playing {
		p.playing = true
		go p.tickLoop()
	}
	return nil
}

// Pause suspends playback, keeping the position.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil || !p.playing {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
	p.playing = false
}

// Position returns the playback position within the loaded track.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.streamer.Position()
	speaker.Unlock()
	return p.format.SampleRate.D(pos)
}

// SetPosition seeks to the given position, clamped to the track bounds.
func (p *Player) SetPosition(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return fmt.Errorf("seek: no source loaded")
	}
	sample := p.format.SampleRate.N(pos)
	if sample < 0 {
		sample = 0
	}
	if max := p.streamer.Len(); sample > max {
		sample = max
	}
	speaker.Lock()
	err := p.streamer.Seek(sample)
	speaker.Unlock()
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// Duration returns the loaded track's duration, or 0 if nothing is loaded.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Volume returns the volume level (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumeLevel
}

// SetVolume sets the volume level, clamped to [0,1].
func (p *Player) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.mu.Lock()
	p.volumeLevel = v
	if p.volume != nil {
		speaker.Lock()
		p.volume.Volume = levelToVolume(v)
		p.volume.Silent = v <= 0
		speaker.Unlock()
	}
	p.mu.Unlock()

	p.volumeSubs.notify(v)
}

// OnTimeUpdate registers a position callback, fired periodically while
// playing.
func (p *Player) OnTimeUpdate(fn func(time.Duration)) func() {
	return p.timeSubs.add(fn)
}

// OnDurationChange registers a duration callback, fired when a new source
// finishes loading.
func (p *Player) OnDurationChange(fn func(time.Duration)) func() {
	return p.durationSubs.add(fn)
}

// OnVolumeChange registers a volume callback.
func (p *Player) OnVolumeChange(fn func(float64)) func() {
	return p.volumeSubs.add(fn)
}

// OnFinished registers the track-end callback.
func (p *Player) OnFinished(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFinished = fn
}

// Close stops playback and releases the loaded track. The speaker itself
// stays open for the process lifetime.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.stopLocked()
	close(p.done)
	return nil
}

func (p *Player) stopLocked() {
	if p.streamer == nil {
		return
	}
	if p.speakerReady {
		speaker.Clear()
	}
	p.streamer.Close()
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
	p.source = ""
	p.playing = false
}

// handleFinished runs on the speaker goroutine with the speaker mutex
// held. Taking p.mu here would invert the lock order against the
// transport methods, which hold p.mu and then take the speaker lock, so
// the state change is handed off to a fresh goroutine instead.
func (p *Player) handleFinished() {
	go func() {
		p.mu.Lock()
		p.playing = false
		fn := p.onFinished
		p.mu.Unlock()
		if fn != nil {
			fn()
		}
	}()
}

func (p *Player) tickLoop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.mu.Lock()
			playing := p.playing
			p.mu.Unlock()
			if !playing {
				return
			}
			p.timeSubs.notify(p.Position())
		}
	}
}

// levelToVolume converts a 0.0-1.0 level to beep's logarithmic scale.
// 1.0 -> 0, 0.5 -> -1, 0.25 -> -2; at 0 the Silent flag takes over.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
