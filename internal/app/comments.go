package app

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/catalog"
)

// PostComment creates a comment on a song and caches the created record.
func (s *Service) PostComment(songID catalog.SongID, text string) (catalog.Comment, error) {
	session, ok := s.cache.Session()
	if !ok {
		return catalog.Comment{}, ErrNoSession
	}

	id, ts, err := s.api.CreateComment(songID, text)
	if err != nil {
		return catalog.Comment{}, fmt.Errorf("post comment: %w", err)
	}

	comment := catalog.Comment{
		ID:         id,
		Text:       text,
		SongID:     songID,
		AuthorID:   session.ID,
		Timestamps: ts,
	}
	s.cache.UpsertComment(comment)
	return comment, nil
}

// EditComment replaces a comment's text.
func (s *Service) EditComment(id catalog.CommentID, text string) error {
	if err := s.api.UpdateComment(id, text); err != nil {
		return fmt.Errorf("edit comment %d: %w", id, err)
	}

	if cached, ok := s.cache.Comment(id); ok {
		cached.Text = text
		s.cache.UpsertComment(cached)
	}
	return nil
}

// DeleteComment removes a comment from the server and the cache.
func (s *Service) DeleteComment(id catalog.CommentID) error {
	if err := s.api.DeleteComment(id); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	s.cache.RemoveComment(id)
	return nil
}
