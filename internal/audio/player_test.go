package audio

import (
	"testing"
	"time"
)

// The streamer's finish callback fires on the speaker goroutine while the
// speaker mutex is held. Transport methods hold p.mu and then take the
// speaker lock, so the callback must never need p.mu to make progress or
// a track boundary can deadlock the mixer against a concurrent Position
// tick.
func TestHandleFinished_ReturnsWhilePlayerLockHeld(t *testing.T) {
	p := New()
	fired := make(chan struct{})
	p.OnFinished(func() { close(fired) })
	p.mu.Lock()
	p.playing = true
	returned := make(chan struct{})
	go func() {
		p.handleFinished()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		p.mu.Unlock()
		t.Fatal("handleFinished did not return while the player lock was held")
	}
	p.mu.Unlock()

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("finish callback never delivered")
	}

	p.mu.Lock()
	playing := p.playing
	p.mu.Unlock()
	if playing {
		t.Error("playing = true after track end, want false")
	}
}

func TestHandleFinished_NoCallbackRegistered(t *testing.T) {
	p := New()
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
	p.handleFinished()

	deadline := time.After(2 * time.Second)
	for {
		p.mu.Lock()
		playing := p.playing
		p.mu.Unlock()
		if !playing {
			return
		}
		select {
		case <-deadline:
			t.Fatal("playing flag never cleared after track end")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
