// Package app wires the API client, the entity cache, the playback
// controller and the audio primitive into one session service. Every
// mutation flows the same way: call the server, then reconcile the cache,
// then (for transport actions) drive the audio output from the controller
// transition.
package app

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/soundclone/soundclone/internal/api"
	"github.com/soundclone/soundclone/internal/audio"
	"github.com/soundclone/soundclone/internal/catalog"
	"github.com/soundclone/soundclone/internal/playback"
	"github.com/soundclone/soundclone/internal/search"
	"github.com/soundclone/soundclone/internal/state"
)

// Service is the application session: one API client, one cache, one
// controller, one audio output.
type Service struct {
	api   *api.Client
	cache *catalog.Catalog
	ctrl  *playback.Controller
	audio audio.Interface
	store state.Interface
	log   zerolog.Logger
	rng   *rand.Rand
}

// Options collects the service dependencies. Client, Audio and Store are
// required; the rest default sensibly.
type Options struct {
	Client *api.Client
	Audio  audio.Interface
	Store  state.Interface
	Logger zerolog.Logger
	Rand   *rand.Rand
}

// New builds the service and hooks track-end advancement to the audio
// primitive.
func New(opts Options) *Service {
	rng := opts.Rand
	if rng == nil {
		now := time.Now()
		rng = rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
	}

	s := &Service{
		api:   opts.Client,
		cache: catalog.New(),
		ctrl:  playback.NewController(),
		audio: opts.Audio,
		store: opts.Store,
		log:   opts.Logger,
		rng:   rng,
	}

	// The finished callback fires on the audio output's goroutine; advancing
	// loads the next source, which must not run under the output's lock.
	s.audio.OnFinished(func() {
		go func() {
			if err := s.Next(); err != nil {
				s.log.Error().Err(err).Msg("advance after track end")
			}
		}()
	})

	return s
}

// Cache exposes the entity cache for read access.
func (s *Service) Cache() *catalog.Catalog {
	return s.cache
}

// Controller exposes the playback controller, mainly for subscriptions.
func (s *Service) Controller() *playback.Controller {
	return s.ctrl
}

// Audio exposes the audio primitive for position and duration reads.
func (s *Service) Audio() audio.Interface {
	return s.audio
}

// SearchIndex builds a local search index over everything currently cached.
func (s *Service) SearchIndex() *search.Index {
	return search.BuildIndex(s.cache)
}

// Close flushes persisted state and releases the controller and audio
// output.
func (s *Service) Close() error {
	s.persistPlayer()
	s.ctrl.Close()
	audioErr := s.audio.Close()
	storeErr := s.store.Close()
	if audioErr != nil {
		return audioErr
	}
	return storeErr
}

// snapshot captures a song and its artist's display identity into a
// playback item.
func (s *Service) snapshot(song catalog.Song) playback.Item {
	return playback.Snapshot(song, s.cache.DisplayName(song.ArtistID))
}

func toStateItem(it playback.Item) state.QueueItem {
	return state.QueueItem{
		SongID:     int64(it.SongID),
		Title:      it.Title,
		Artist:     it.Artist,
		ArtistID:   int64(it.ArtistID),
		StreamURL:  it.StreamURL,
		ThumbURL:   it.ThumbURL,
		DurationMS: it.Duration.Milliseconds(),
	}
}

func fromStateItem(it state.QueueItem) playback.Item {
	return playback.Item{
		SongID:    catalog.SongID(it.SongID),
		Title:     it.Title,
		Artist:    it.Artist,
		ArtistID:  catalog.UserID(it.ArtistID),
		StreamURL: it.StreamURL,
		ThumbURL:  it.ThumbURL,
		Duration:  time.Duration(it.DurationMS) * time.Millisecond,
	}
}
