package app

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/catalog"
	"github.com/soundclone/soundclone/internal/playback"
	"github.com/soundclone/soundclone/internal/state"
)

// PlaySong snapshots a song and plays it immediately. The queue is
// untouched; the previous current item moves to history.
func (s *Service) PlaySong(id catalog.SongID) error {
	song, ok := s.cache.Song(id)
	if !ok {
		fetched, err := s.FetchSong(id)
		if err != nil {
			return err
		}
		song = fetched
	}

	item := s.snapshot(song)
	s.ctrl.SetCurrent(item)

	if err := s.loadAndPlay(item); err != nil {
		return err
	}

	s.persistPlayer()
	return nil
}

// PlayPlaylist replaces the whole playback context with a playlist: first
// resolvable song becomes current, the rest fill the queue. With shuffle
// on, the order is randomized before the split.
func (s *Service) PlayPlaylist(id catalog.PlaylistID) error {
	songs, missing := s.cache.PlaylistSongs(id)
	if len(missing) > 0 || len(songs) == 0 {
		fetched, err := s.FetchPlaylistSongs(id)
		if err != nil {
			return err
		}
		songs = fetched
	}
	if len(songs) == 0 {
		return fmt.Errorf("playlist %d has no playable songs", id)
	}

	items := make([]playback.Item, len(songs))
	for i, song := range songs {
		items[i] = s.snapshot(song)
	}
	items = playback.ShuffledOrder(items, s.ctrl.Shuffle(), s.rng)

	s.ctrl.DequeueAll()
	s.ctrl.SetCurrent(items[0])
	s.ctrl.Enqueue(items[1:]...)

	if err := s.loadAndPlay(items[0]); err != nil {
		return err
	}

	s.persistPlayer()
	return nil
}

// EnqueueSong appends a song snapshot to the queue without touching the
// current item.
func (s *Service) EnqueueSong(id catalog.SongID) error {
	song, ok := s.cache.Song(id)
	if !ok {
		fetched, err := s.FetchSong(id)
		if err != nil {
			return err
		}
		song = fetched
	}

	s.ctrl.Enqueue(s.snapshot(song))
	s.persistPlayer()
	return nil
}

// ClearQueue empties the upcoming queue.
func (s *Service) ClearQueue() {
	s.ctrl.DequeueAll()
	s.persistPlayer()
}

// Next advances playback. Repeat policy lives here, not in the
// controller: repeat-one replays the current item, repeat-all refills an
// exhausted queue from history, repeat-off lets playback stop.
func (s *Service) Next() error {
	if s.ctrl.Repeat() == playback.RepeatOne {
		if current, ok := s.ctrl.Current(); ok {
			s.ctrl.SetPlaying(true)
			return s.replay(current)
		}
	}

	item, ok := s.ctrl.PlayNext()
	if !ok {
		if s.ctrl.Repeat() == playback.RepeatAll {
			return s.restartFromHistory()
		}
		s.audio.Pause()
		s.persistPlayer()
		return nil
	}

	if err := s.loadAndPlay(item); err != nil {
		return err
	}
	s.persistPlayer()
	return nil
}

// Previous steps back through history; the interrupted item goes to the
// queue front so the forward path survives. With empty history this is a
// no-op.
func (s *Service) Previous() error {
	item, ok := s.ctrl.PlayPrevious()
	if !ok {
		return nil
	}

	if err := s.loadAndPlay(item); err != nil {
		return err
	}
	s.persistPlayer()
	return nil
}

// TogglePlayPause flips the transport and mirrors it to the audio output.
func (s *Service) TogglePlayPause() error {
	if _, ok := s.ctrl.Current(); !ok {
		return nil
	}

	if s.ctrl.TogglePlayPause() {
		// The source may not be loaded yet after a state restore.
		if current, ok := s.ctrl.Current(); ok && s.audio.Source() != current.StreamURL {
			return s.loadAndPlay(current)
		}
		if err := s.audio.Play(); err != nil {
			s.ctrl.SetPlaying(false)
			return fmt.Errorf("start playback: %w", err)
		}
	} else {
		s.audio.Pause()
	}
	return nil
}

// SetVolume clamps, applies to the audio output and persists the level.
func (s *Service) SetVolume(v float64) float64 {
	v = s.ctrl.SetVolume(v)
	s.audio.SetVolume(v)
	if err := s.store.SaveVolume(v); err != nil {
		s.log.Warn().Err(err).Msg("persist volume")
	}
	return v
}

// CycleRepeat advances the repeat mode and persists the transport flags.
func (s *Service) CycleRepeat() playback.RepeatMode {
	mode := s.ctrl.CycleRepeat()
	s.persistPlayer()
	return mode
}

// ToggleShuffle flips the shuffle flag. Nothing reorders now; the flag
// applies the next time a playback context is built.
func (s *Service) ToggleShuffle() bool {
	enabled := s.ctrl.ToggleShuffle()
	s.persistPlayer()
	return enabled
}

// RestorePlayer loads the saved queue, transport flags and volume. The
// restored session comes back paused; no source is loaded until the user
// resumes.
func (s *Service) RestorePlayer() error {
	vol, err := s.store.GetVolume()
	if err != nil {
		return fmt.Errorf("load volume: %w", err)
	}
	s.ctrl.SetVolume(vol)
	s.audio.SetVolume(vol)

	st, err := s.store.GetQueue()
	if err != nil {
		return fmt.Errorf("load queue: %w", err)
	}

	s.ctrl.SetRepeat(playback.RepeatMode(st.RepeatMode))
	s.ctrl.SetShuffle(st.Shuffle)

	items := make([]playback.Item, len(st.Items))
	for i, it := range st.Items {
		items[i] = fromStateItem(it)
	}
	s.ctrl.Enqueue(items...)

	if st.Current != nil {
		s.ctrl.RestoreCurrent(fromStateItem(*st.Current))
	}

	return nil
}

// loadAndPlay points the audio output at an item's stream and starts it.
// On failure the transport is reconciled to stopped.
func (s *Service) loadAndPlay(item playback.Item) error {
	if err := s.audio.SetSource(item.StreamURL); err != nil {
		s.ctrl.SetPlaying(false)
		return fmt.Errorf("load %q: %w", item.Title, err)
	}
	if err := s.audio.Play(); err != nil {
		s.ctrl.SetPlaying(false)
		return fmt.Errorf("play %q: %w", item.Title, err)
	}
	return nil
}

// replay restarts the loaded source from the beginning.
func (s *Service) replay(item playback.Item) error {
	if s.audio.Source() != item.StreamURL {
		return s.loadAndPlay(item)
	}
	if err := s.audio.SetPosition(0); err != nil {
		return fmt.Errorf("rewind %q: %w", item.Title, err)
	}
	if err := s.audio.Play(); err != nil {
		s.ctrl.SetPlaying(false)
		return fmt.Errorf("play %q: %w", item.Title, err)
	}
	return nil
}

// restartFromHistory rebuilds the playback context from everything played,
// oldest first, for repeat-all after queue exhaustion.
func (s *Service) restartFromHistory() error {
	played := s.ctrl.HistoryItems()
	if len(played) == 0 {
		s.audio.Pause()
		return nil
	}

	played = playback.ShuffledOrder(played, s.ctrl.Shuffle(), s.rng)

	s.ctrl.SetCurrent(played[0])
	s.ctrl.Enqueue(played[1:]...)

	if err := s.loadAndPlay(played[0]); err != nil {
		return err
	}
	s.persistPlayer()
	return nil
}

// persistPlayer saves the controller state through the debounced store.
func (s *Service) persistPlayer() {
	st := state.QueueState{
		RepeatMode: int(s.ctrl.Repeat()),
		Shuffle:    s.ctrl.Shuffle(),
	}
	if current, ok := s.ctrl.Current(); ok {
		item := toStateItem(current)
		st.Current = &item
	}
	for _, it := range s.ctrl.QueueItems() {
		st.Items = append(st.Items, toStateItem(it))
	}
	s.store.SaveQueue(st)
}
