package api

import (
	"fmt"
	"time"
)

// Wire types mirror the server's JSON resources. Timestamps travel as
// ISO-8601 strings and are parsed exactly once, here; downstream code only
// ever sees time.Time.

type wireSong struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ArtistID  int64  `json:"artist_id"`
	Genre     string `json:"genre,omitempty"`
	ThumbURL  string `json:"thumb_url,omitempty"`
	SongRef   string `json:"song_ref"`
	NumLikes  int    `json:"num_likes"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type wireSongs struct {
	Songs []wireSong `json:"songs"`
}

type wirePlaylist struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UserID    int64  `json:"user_id"`
	Thumbnail string `json:"thumbnail,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type wirePlaylists struct {
	Playlists []wirePlaylist `json:"playlists"`
}

type wireComment struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	UserID    int64  `json:"user_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type wireComments struct {
	Comments []wireComment `json:"comments"`
}

type wireArtist struct {
	ID           int64  `json:"id"`
	StageName    string `json:"stage_name"`
	ProfileImage string `json:"profile_image,omitempty"`
	FirstRelease string `json:"first_release,omitempty"`
	Biography    string `json:"biography,omitempty"`
	Location     string `json:"location,omitempty"`
	Homepage     string `json:"homepage,omitempty"`
}

type wireUser struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	StageName    string `json:"stage_name,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	FirstRelease string `json:"first_release,omitempty"`
	Biography    string `json:"biography,omitempty"`
	Location     string `json:"location,omitempty"`
	Homepage     string `json:"homepage,omitempty"`
}

type wireIDTimestamps struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type wireError struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// SearchResult is one hit from the server-side search, which spans songs,
// artists and playlists.
type SearchResult struct {
	Type       string `json:"type"` // "song", "artist" or "playlist"
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ThumbURL   string `json:"thumb_url,omitempty"`
	ArtistName string `json:"artist_name,omitempty"`
}

type wireSearch struct {
	Results []SearchResult `json:"results"`
}

// timeLayouts covers the server's timestamp spellings: RFC3339 and the
// space-separated variant, with or without fractional seconds.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", s)
}
