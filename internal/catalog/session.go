package catalog

import "sort"

// Session state: at most one authenticated identity plus the set of song
// ids that identity has liked. The likes set and the Song.Likes counter
// are maintained independently; nothing derives one from the other.

// SetSession records the authenticated user.
func (c *Catalog) SetSession(u SessionUser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = &u
}

// Session returns the authenticated user, if any.
func (c *Catalog) Session() (SessionUser, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return SessionUser{}, false
	}
	return *c.session, true
}

// ClearSession destroys the session wholesale. Logout resets all
// session-scoped state, so the likes set goes with it.
func (c *Catalog) ClearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.likes = make(map[SongID]struct{})
}

// AddLike adds a song id to the session likes set. Idempotent. Does not
// touch the Song entity's like counter.
func (c *Catalog) AddLike(id SongID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.likes[id] = struct{}{}
}

// RemoveLike removes a song id from the session likes set. Removing an
// absent id is a no-op, not an error.
func (c *Catalog) RemoveLike(id SongID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.likes, id)
}

// SetLikes replaces the likes set wholesale, as after a bulk fetch.
func (c *Catalog) SetLikes(ids []SongID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	likes := make(map[SongID]struct{}, len(ids))
	for _, id := range ids {
		likes[id] = struct{}{}
	}
	c.likes = likes
}

// Liked reports whether the session user has liked the song.
func (c *Catalog) Liked(id SongID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.likes[id]
	return ok
}

// LikedSongIDs returns the liked song ids in ascending order.
func (c *Catalog) LikedSongIDs() []SongID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]SongID, 0, len(c.likes))
	for id := range c.likes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
