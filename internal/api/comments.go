package api

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/catalog"
)

// SongComments fetches the comments on a song.
func (c *Client) SongComments(songID catalog.SongID) ([]catalog.Comment, error) {
	var out wireComments
	if err := c.get(fmt.Sprintf("/api/songs/%d/comments", songID), &out); err != nil {
		return nil, err
	}
	comments := make([]catalog.Comment, 0, len(out.Comments))
	for _, w := range out.Comments {
		cm, err := commentToCatalog(w, songID)
		if err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, nil
}

type commentBody struct {
	Text string `json:"text"`
}

// CreateComment posts a comment on a song. Returns the new comment's id
// and timestamps.
func (c *Client) CreateComment(songID catalog.SongID, text string) (catalog.CommentID, catalog.Timestamps, error) {
	var out wireIDTimestamps
	if err := c.post(fmt.Sprintf("/api/songs/%d/comments", songID), commentBody{Text: text}, &out); err != nil {
		return 0, catalog.Timestamps{}, err
	}
	created, err := parseTime(out.CreatedAt)
	if err != nil {
		return 0, catalog.Timestamps{}, fmt.Errorf("comment %d: %w", out.ID, err)
	}
	updated, err := parseTime(out.UpdatedAt)
	if err != nil {
		return 0, catalog.Timestamps{}, fmt.Errorf("comment %d: %w", out.ID, err)
	}
	return catalog.CommentID(out.ID), catalog.Timestamps{CreatedAt: created, UpdatedAt: updated}, nil
}

// UpdateComment replaces a comment's text.
func (c *Client) UpdateComment(id catalog.CommentID, text string) error {
	return c.put(fmt.Sprintf("/api/comments/%d", id), commentBody{Text: text}, nil)
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(id catalog.CommentID) error {
	return c.delete(fmt.Sprintf("/api/comments/%d", id), nil)
}
