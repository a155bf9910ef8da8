package catalog

import "time"

// Entity identifiers are distinct integer types so a SongID can never be
// handed to a playlist lookup by accident.
type (
	SongID     int64
	UserID     int64
	PlaylistID int64
	CommentID  int64
)

// Timestamps holds the server-assigned creation and update times.
// They are parsed from the wire exactly once, in the api package.
type Timestamps struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Song is a catalog track. Optional fields are zero-valued when unknown.
type Song struct {
	ID       SongID
	Name     string
	ArtistID UserID
	Likes    int
	Genre    string
	ThumbURL string
	SongURL  string
	Timestamps
}

// User is an account or artist profile. Records may be partial: a user
// fetched only as a song's author carries just ID and DisplayName, and
// later fetches fill in the rest.
type User struct {
	ID           UserID
	DisplayName  string
	ProfileImage string
	FirstRelease time.Time
	Biography    string
	Location     string
	HomepageURL  string
}

// Playlist holds a membership set of song ids, not an ordered sequence.
type Playlist struct {
	ID        PlaylistID
	Name      string
	UserID    UserID
	Thumbnail string
	Songs     map[SongID]struct{}
	Timestamps
}

// Comment is a user comment on a song.
type Comment struct {
	ID       CommentID
	Text     string
	SongID   SongID
	AuthorID UserID
	Timestamps
}

// SessionUser is the minimal identity of the authenticated user.
type SessionUser struct {
	ID       UserID
	Username string
	Email    string
}

// HasSong reports whether the playlist contains the song.
func (p *Playlist) HasSong(id SongID) bool {
	_, ok := p.Songs[id]
	return ok
}
