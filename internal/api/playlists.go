package api

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/catalog"
)

// MyPlaylists fetches the session user's playlists.
func (c *Client) MyPlaylists() ([]catalog.Playlist, error) {
	var out wirePlaylists
	if err := c.get("/api/playlists/current", &out); err != nil {
		return nil, err
	}
	playlists := make([]catalog.Playlist, 0, len(out.Playlists))
	for _, w := range out.Playlists {
		p, err := playlistToCatalog(w)
		if err != nil {
			return nil, err
		}
		playlists = append(playlists, p)
	}
	return playlists, nil
}

type playlistBody struct {
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// CreatePlaylist creates an empty playlist. Returns the new id.
func (c *Client) CreatePlaylist(name, thumbnail string) (catalog.PlaylistID, error) {
	var out wireIDTimestamps
	if err := c.post("/api/playlists", playlistBody{Name: name, Thumbnail: thumbnail}, &out); err != nil {
		return 0, err
	}
	return catalog.PlaylistID(out.ID), nil
}

// UpdatePlaylist replaces a playlist's metadata.
func (c *Client) UpdatePlaylist(id catalog.PlaylistID, name, thumbnail string) error {
	return c.put(fmt.Sprintf("/api/playlists/%d", id), playlistBody{Name: name, Thumbnail: thumbnail}, nil)
}

// DeletePlaylist removes a playlist.
func (c *Client) DeletePlaylist(id catalog.PlaylistID) error {
	return c.delete(fmt.Sprintf("/api/playlists/%d", id), nil)
}

// PlaylistSongs fetches the songs belonging to a playlist.
func (c *Client) PlaylistSongs(id catalog.PlaylistID) ([]catalog.Song, error) {
	var out wireSongs
	if err := c.get(fmt.Sprintf("/api/playlists/%d/songs", id), &out); err != nil {
		return nil, err
	}
	return songsToCatalog(out.Songs)
}

type playlistSongBody struct {
	SongID int64 `json:"song_id"`
}

// AddPlaylistSong adds a song to a playlist.
func (c *Client) AddPlaylistSong(id catalog.PlaylistID, songID catalog.SongID) error {
	return c.post(fmt.Sprintf("/api/playlists/%d/songs", id), playlistSongBody{SongID: int64(songID)}, nil)
}

// RemovePlaylistSong removes a song from a playlist.
func (c *Client) RemovePlaylistSong(id catalog.PlaylistID, songID catalog.SongID) error {
	return c.delete(fmt.Sprintf("/api/playlists/%d/songs", id), playlistSongBody{SongID: int64(songID)})
}
