// Package catalog is the normalized in-memory store for fetched domain
// entities. Records enter via upserts as API responses arrive, in any
// order; fill-in merge semantics guarantee two overlapping fetches for the
// same entity converge to the union of known fields regardless of which
// completes first.
package catalog

import (
	"sort"
	"sync"
)

// Catalog holds every fetched entity, keyed by id. A map never contains an
// entry for an id that has not been fetched at least once; a missing lookup
// means "not yet loaded or no longer exists" and the catalog does not
// distinguish the two.
type Catalog struct {
	mu sync.RWMutex

	songs     map[SongID]Song
	users     map[UserID]User
	playlists map[PlaylistID]Playlist
	comments  map[CommentID]Comment

	session *SessionUser
	likes   map[SongID]struct{}
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		songs:     make(map[SongID]Song),
		users:     make(map[UserID]User),
		playlists: make(map[PlaylistID]Playlist),
		comments:  make(map[CommentID]Comment),
		likes:     make(map[SongID]struct{}),
	}
}

// Song returns the song for the given id.
func (c *Catalog) Song(id SongID) (Song, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.songs[id]
	return s, ok
}

// User returns the user for the given id.
func (c *Catalog) User(id UserID) (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[id]
	return u, ok
}

// Playlist returns the playlist for the given id. The membership set is
// copied so callers cannot mutate cached state.
func (c *Catalog) Playlist(id PlaylistID) (Playlist, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.playlists[id]
	if !ok {
		return Playlist{}, false
	}
	p.Songs = copySet(p.Songs)
	return p, true
}

// Comment returns the comment for the given id.
func (c *Catalog) Comment(id CommentID) (Comment, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cm, ok := c.comments[id]
	return cm, ok
}

// UpsertSong inserts or merges a song record by id.
func (c *Catalog) UpsertSong(s Song) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upsertSongLocked(s)
}

// UpsertSongs inserts or merges multiple song records.
func (c *Catalog) UpsertSongs(songs []Song) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range songs {
		c.upsertSongLocked(s)
	}
}

func (c *Catalog) upsertSongLocked(s Song) {
	if old, ok := c.songs[s.ID]; ok {
		s = mergeSong(old, s)
	}
	c.songs[s.ID] = s
}

// UpsertUser inserts or merges a user record by id.
func (c *Catalog) UpsertUser(u User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upsertUserLocked(u)
}

// UpsertUsers inserts or merges multiple user records.
func (c *Catalog) UpsertUsers(users []User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range users {
		c.upsertUserLocked(u)
	}
}

func (c *Catalog) upsertUserLocked(u User) {
	if old, ok := c.users[u.ID]; ok {
		u = mergeUser(old, u)
	}
	c.users[u.ID] = u
}

// UpsertPlaylist inserts or merges a playlist record by id. An incoming
// record with a nil membership set leaves the known membership untouched;
// use SetPlaylistSongs to replace it wholesale.
func (c *Catalog) UpsertPlaylist(p Playlist) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.playlists[p.ID]; ok {
		p = mergePlaylist(old, p)
	} else if p.Songs == nil {
		p.Songs = make(map[SongID]struct{})
	} else {
		p.Songs = copySet(p.Songs)
	}
	c.playlists[p.ID] = p
}

// UpsertComment inserts or merges a comment record by id.
func (c *Catalog) UpsertComment(cm Comment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.upsertCommentLocked(cm)
}

// UpsertComments inserts or merges multiple comment records.
func (c *Catalog) UpsertComments(comments []Comment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, cm := range comments {
		c.upsertCommentLocked(cm)
	}
}

func (c *Catalog) upsertCommentLocked(cm Comment) {
	if old, ok := c.comments[cm.ID]; ok {
		cm = mergeComment(old, cm)
	}
	c.comments[cm.ID] = cm
}

// RemoveSong deletes a song. References to it from playlists or comments
// are left dangling; consumers treat the missing lookup as not present.
func (c *Catalog) RemoveSong(id SongID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.songs, id)
}

// RemovePlaylist deletes a playlist.
func (c *Catalog) RemovePlaylist(id PlaylistID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.playlists, id)
}

// RemoveComment deletes a comment.
func (c *Catalog) RemoveComment(id CommentID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.comments, id)
}

// AddPlaylistSong adds a song id to a playlist's membership set.
// No-op if the playlist is not cached.
func (c *Catalog) AddPlaylistSong(id PlaylistID, songID SongID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.playlists[id]
	if !ok {
		return
	}
	p.Songs[songID] = struct{}{}
}

// RemovePlaylistSong removes a song id from a playlist's membership set.
func (c *Catalog) RemovePlaylistSong(id PlaylistID, songID SongID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.playlists[id]
	if !ok {
		return
	}
	delete(p.Songs, songID)
}

// SetPlaylistSongs replaces a playlist's membership set.
func (c *Catalog) SetPlaylistSongs(id PlaylistID, songIDs []SongID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.playlists[id]
	if !ok {
		return
	}
	songs := make(map[SongID]struct{}, len(songIDs))
	for _, sid := range songIDs {
		songs[sid] = struct{}{}
	}
	p.Songs = songs
	c.playlists[id] = p
}

// AdjustSongLikes applies a delta to a song's like counter, clamped at
// zero. Used for optimistic updates; the server counter taken on the next
// fetch is authoritative.
func (c *Catalog) AdjustSongLikes(id SongID, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.songs[id]
	if !ok {
		return
	}
	s.Likes += delta
	if s.Likes < 0 {
		s.Likes = 0
	}
	c.songs[id] = s
}

// SongsNewestFirst returns all cached songs sorted by creation time,
// newest first.
func (c *Catalog) SongsNewestFirst() []Song {
	c.mu.RLock()
	defer c.mu.RUnlock()
	songs := make([]Song, 0, len(c.songs))
	for _, s := range c.songs {
		songs = append(songs, s)
	}
	sort.Slice(songs, func(i, j int) bool {
		if songs[i].CreatedAt.Equal(songs[j].CreatedAt) {
			return songs[i].ID > songs[j].ID
		}
		return songs[i].CreatedAt.After(songs[j].CreatedAt)
	})
	return songs
}

// SongsByArtist returns the cached songs of one artist, newest first.
func (c *Catalog) SongsByArtist(artistID UserID) []Song {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var songs []Song
	for _, s := range c.songs {
		if s.ArtistID == artistID {
			songs = append(songs, s)
		}
	}
	sort.Slice(songs, func(i, j int) bool {
		if songs[i].CreatedAt.Equal(songs[j].CreatedAt) {
			return songs[i].ID > songs[j].ID
		}
		return songs[i].CreatedAt.After(songs[j].CreatedAt)
	})
	return songs
}

// CommentsForSong returns the cached comments on a song, oldest first.
func (c *Catalog) CommentsForSong(songID SongID) []Comment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var comments []Comment
	for _, cm := range c.comments {
		if cm.SongID == songID {
			comments = append(comments, cm)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments
}

// Users returns all cached users sorted by id.
func (c *Catalog) Users() []User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	users := make([]User, 0, len(c.users))
	for _, u := range c.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})
	return users
}

// Playlists returns all cached playlists sorted by id.
func (c *Catalog) Playlists() []Playlist {
	c.mu.RLock()
	defer c.mu.RUnlock()
	playlists := make([]Playlist, 0, len(c.playlists))
	for _, p := range c.playlists {
		p.Songs = copySet(p.Songs)
		playlists = append(playlists, p)
	}
	sort.Slice(playlists, func(i, j int) bool {
		return playlists[i].ID < playlists[j].ID
	})
	return playlists
}

// PlaylistsForUser returns the cached playlists owned by a user.
func (c *Catalog) PlaylistsForUser(userID UserID) []Playlist {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var playlists []Playlist
	for _, p := range c.playlists {
		if p.UserID == userID {
			p.Songs = copySet(p.Songs)
			playlists = append(playlists, p)
		}
	}
	sort.Slice(playlists, func(i, j int) bool {
		return playlists[i].ID < playlists[j].ID
	})
	return playlists
}

// PlaylistSongs resolves a playlist's membership set against the song map.
// Dangling ids resolve to nothing; the missing tail is reported so callers
// can render a loading state.
func (c *Catalog) PlaylistSongs(id PlaylistID) (resolved []Song, missing []SongID) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.playlists[id]
	if !ok {
		return nil, nil
	}
	for sid := range p.Songs {
		if s, found := c.songs[sid]; found {
			resolved = append(resolved, s)
		} else {
			missing = append(missing, sid)
		}
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].ID < resolved[j].ID })
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return resolved, missing
}

// DisplayName resolves a user's display identity, falling back to the
// session username when the user record is the session user and carries no
// stage name.
func (c *Catalog) DisplayName(id UserID) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if u, ok := c.users[id]; ok && u.DisplayName != "" {
		return u.DisplayName
	}
	if c.session != nil && c.session.ID == id {
		return c.session.Username
	}
	return ""
}

func copySet(set map[SongID]struct{}) map[SongID]struct{} {
	out := make(map[SongID]struct{}, len(set))
	for id := range set {
		out[id] = struct{}{}
	}
	return out
}
