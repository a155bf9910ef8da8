package app

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/catalog"
)

// CreatePlaylist creates an empty playlist owned by the session user.
func (s *Service) CreatePlaylist(name, thumbnail string) (catalog.Playlist, error) {
	session, ok := s.cache.Session()
	if !ok {
		return catalog.Playlist{}, ErrNoSession
	}

	id, err := s.api.CreatePlaylist(name, thumbnail)
	if err != nil {
		return catalog.Playlist{}, fmt.Errorf("create playlist: %w", err)
	}

	playlist := catalog.Playlist{
		ID:        id,
		Name:      name,
		UserID:    session.ID,
		Thumbnail: thumbnail,
		Songs:     map[catalog.SongID]struct{}{},
	}
	s.cache.UpsertPlaylist(playlist)
	return playlist, nil
}

// RenamePlaylist changes a playlist's name.
func (s *Service) RenamePlaylist(id catalog.PlaylistID, name string) error {
	if err := s.api.UpdatePlaylist(id, name, ""); err != nil {
		return fmt.Errorf("rename playlist %d: %w", id, err)
	}

	if cached, ok := s.cache.Playlist(id); ok {
		cached.Name = name
		cached.Songs = nil // membership unchanged, keep the cached set
		s.cache.UpsertPlaylist(cached)
	}
	return nil
}

// DeletePlaylist removes a playlist. Its songs stay cached; only the
// membership container goes away.
func (s *Service) DeletePlaylist(id catalog.PlaylistID) error {
	if err := s.api.DeletePlaylist(id); err != nil {
		return fmt.Errorf("delete playlist %d: %w", id, err)
	}
	s.cache.RemovePlaylist(id)
	return nil
}

// AddToPlaylist adds a song to a playlist's membership set.
func (s *Service) AddToPlaylist(id catalog.PlaylistID, songID catalog.SongID) error {
	if err := s.api.AddPlaylistSong(id, songID); err != nil {
		return fmt.Errorf("add song %d to playlist %d: %w", songID, id, err)
	}
	s.cache.AddPlaylistSong(id, songID)
	return nil
}

// RemoveFromPlaylist removes a song from a playlist's membership set.
func (s *Service) RemoveFromPlaylist(id catalog.PlaylistID, songID catalog.SongID) error {
	if err := s.api.RemovePlaylistSong(id, songID); err != nil {
		return fmt.Errorf("remove song %d from playlist %d: %w", songID, id, err)
	}
	s.cache.RemovePlaylistSong(id, songID)
	return nil
}
