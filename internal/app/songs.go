package app

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/api"
	"github.com/soundclone/soundclone/internal/catalog"
)

// UploadSong uploads a new song and caches the server's view of it.
func (s *Service) UploadSong(up api.SongUpload) (catalog.Song, error) {
	if _, ok := s.cache.Session(); !ok {
		return catalog.Song{}, ErrNoSession
	}

	id, err := s.api.CreateSong(up)
	if err != nil {
		return catalog.Song{}, fmt.Errorf("upload song: %w", err)
	}

	// The create response carries only id and timestamps; fetch the full
	// record for the stored media URLs.
	song, err := s.api.Song(id)
	if err != nil {
		return catalog.Song{}, fmt.Errorf("load uploaded song %d: %w", id, err)
	}
	s.cache.UpsertSong(song)

	s.log.Info().Int64("song_id", int64(id)).Str("name", song.Name).Msg("song uploaded")
	return song, nil
}

// UpdateSong replaces a song's metadata and optionally its media.
func (s *Service) UpdateSong(id catalog.SongID, up api.SongUpload) error {
	if err := s.api.UpdateSong(id, up); err != nil {
		return fmt.Errorf("update song %d: %w", id, err)
	}

	song, err := s.api.Song(id)
	if err != nil {
		return fmt.Errorf("reload song %d: %w", id, err)
	}
	s.cache.UpsertSong(song)
	return nil
}

// DeleteSong removes a song from the server and the cache. Playlist
// membership sets may keep dangling references; resolution drops them.
func (s *Service) DeleteSong(id catalog.SongID) error {
	if err := s.api.DeleteSong(id); err != nil {
		return fmt.Errorf("delete song %d: %w", id, err)
	}
	s.cache.RemoveSong(id)
	return nil
}

// UpdateProfile updates the session user's artist profile and refreshes
// the cached record.
func (s *Service) UpdateProfile(p api.ArtistProfile) error {
	session, ok := s.cache.Session()
	if !ok {
		return ErrNoSession
	}

	if err := s.api.UpdateArtistProfile(p); err != nil {
		return fmt.Errorf("update artist profile: %w", err)
	}

	user, err := s.api.Artist(session.ID)
	if err != nil {
		return fmt.Errorf("reload artist profile: %w", err)
	}
	s.cache.UpsertUser(user)
	return nil
}
