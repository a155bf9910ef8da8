package app

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/catalog"
)

// LikeSong records a like optimistically: the set and the counter update
// before the request, and roll back if it fails. Liking an already-liked
// song is a no-op.
func (s *Service) LikeSong(id catalog.SongID) error {
	if _, ok := s.cache.Session(); !ok {
		return ErrNoSession
	}
	if s.cache.Liked(id) {
		return nil
	}

	s.cache.AddLike(id)
	s.cache.AdjustSongLikes(id, 1)

	if err := s.api.Like(id); err != nil {
		s.cache.RemoveLike(id)
		s.cache.AdjustSongLikes(id, -1)
		return fmt.Errorf("like song %d: %w", id, err)
	}
	return nil
}

// UnlikeSong removes a like with the same optimistic update and rollback.
// Unliking a song that is not liked is a no-op.
func (s *Service) UnlikeSong(id catalog.SongID) error {
	if _, ok := s.cache.Session(); !ok {
		return ErrNoSession
	}
	if !s.cache.Liked(id) {
		return nil
	}

	s.cache.RemoveLike(id)
	s.cache.AdjustSongLikes(id, -1)

	if err := s.api.Unlike(id); err != nil {
		s.cache.AddLike(id)
		s.cache.AdjustSongLikes(id, 1)
		return fmt.Errorf("unlike song %d: %w", id, err)
	}
	return nil
}

// ToggleLike likes or unlikes based on the current session set.
func (s *Service) ToggleLike(id catalog.SongID) error {
	if s.cache.Liked(id) {
		return s.UnlikeSong(id)
	}
	return s.LikeSong(id)
}
