package playback

import (
	"time"

	"github.com/soundclone/soundclone/internal/catalog"
)

// Item is a denormalized snapshot of a song and its artist's display
// identity, captured at the moment it is enqueued or played. It is a copy
// of the data, not a reference into the catalog: a track keeps playing
// under its original metadata even if the cached records change
// mid-session.
type Item struct {
	SongID    catalog.SongID
	Title     string
	Artist    string
	ArtistID  catalog.UserID
	StreamURL string
	ThumbURL  string
	Duration  time.Duration
}

// Snapshot builds an Item from a song and its artist's display name.
func Snapshot(s catalog.Song, artistName string) Item {
	return Item{
		SongID:    s.ID,
		Title:     s.Name,
		Artist:    artistName,
		ArtistID:  s.ArtistID,
		StreamURL: s.SongURL,
		ThumbURL:  s.ThumbURL,
	}
}
