package audio

import (
	"sync"
	"time"
)

// Mock is a test double for Player.
type Mock struct {
	mu sync.Mutex

	source    string
	playing   bool
	position  time.Duration
	duration  time.Duration
	volume    float64
	playErr   error
	sourceErr error

	playCalls   []string
	sourceCalls []string
	pauseCalls  int

	timeSubs     subscribers[time.Duration]
	durationSubs subscribers[time.Duration]
	volumeSubs   subscribers[float64]
	onFinished   func()
}

// NewMock creates a new mock audio primitive for testing.
func NewMock() *Mock {
	return &Mock{volume: 1}
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls = append(m.playCalls, m.source)
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	return nil
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	m.playing = false
}

func (m *Mock) SetSource(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sourceErr != nil {
		return m.sourceErr
	}
	if url == m.source {
		return nil
	}
	m.sourceCalls = append(m.sourceCalls, url)
	m.source = url
	m.position = 0
	return nil
}

func (m *Mock) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) SetPosition(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
	return nil
}

func (m *Mock) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.mu.Lock()
	m.volume = v
	m.mu.Unlock()
	m.volumeSubs.notify(v)
}

func (m *Mock) OnTimeUpdate(fn func(time.Duration)) func() {
	return m.timeSubs.add(fn)
}

func (m *Mock) OnDurationChange(fn func(time.Duration)) func() {
	return m.durationSubs.add(fn)
}

func (m *Mock) OnVolumeChange(fn func(float64)) func() {
	return m.volumeSubs.add(fn)
}

func (m *Mock) OnFinished(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFinished = fn
}

func (m *Mock) Close() error { return nil }

// Test helpers

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) SetSourceError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sourceErr = err
}

func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

func (m *Mock) SourceCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sourceCalls...)
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

// FireTimeUpdate delivers a position to time subscribers.
func (m *Mock) FireTimeUpdate(pos time.Duration) {
	m.timeSubs.notify(pos)
}

// FireDurationChange delivers a duration to duration subscribers.
func (m *Mock) FireDurationChange(d time.Duration) {
	m.durationSubs.notify(d)
}

// SimulateFinished invokes the registered track-end callback.
func (m *Mock) SimulateFinished() {
	m.mu.Lock()
	m.playing = false
	fn := m.onFinished
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}
