package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/soundclone/soundclone/internal/catalog"
)

// Songs fetches the full song listing.
func (c *Client) Songs() ([]catalog.Song, error) {
	var out wireSongs
	if err := c.get("/api/songs", &out); err != nil {
		return nil, err
	}
	return songsToCatalog(out.Songs)
}

// Song fetches one song by id.
func (c *Client) Song(id catalog.SongID) (catalog.Song, error) {
	var out wireSong
	if err := c.get(fmt.Sprintf("/api/songs/%d", id), &out); err != nil {
		return catalog.Song{}, err
	}
	return songToCatalog(out)
}

// DeleteSong removes a song the session user owns.
func (c *Client) DeleteSong(id catalog.SongID) error {
	return c.delete(fmt.Sprintf("/api/songs/%d", id), nil)
}

// LikedSongs fetches the session user's liked songs.
func (c *Client) LikedSongs() ([]catalog.Song, error) {
	var out wireSongs
	if err := c.get("/api/likes", &out); err != nil {
		return nil, err
	}
	return songsToCatalog(out.Songs)
}

// Like records a like on a song for the session user.
func (c *Client) Like(id catalog.SongID) error {
	return c.post(fmt.Sprintf("/api/songs/%d/likes", id), nil, nil)
}

// Unlike removes the session user's like from a song.
func (c *Client) Unlike(id catalog.SongID) error {
	return c.delete(fmt.Sprintf("/api/songs/%d/likes", id), nil)
}

// SongUpload is a multipart song submission. The client never inspects the
// media contents; the server stores them and returns the resulting URLs on
// the next fetch.
type SongUpload struct {
	Name      string
	Genre     string
	Audio     io.Reader
	AudioName string
	Thumb     io.Reader // optional
	ThumbName string
}

// CreateSong uploads a new song. Returns the created song's id.
func (c *Client) CreateSong(up SongUpload) (catalog.SongID, error) {
	return c.uploadSong(http.MethodPost, "/api/songs", up)
}

// UpdateSong replaces a song's metadata and optionally its media.
func (c *Client) UpdateSong(id catalog.SongID, up SongUpload) error {
	_, err := c.uploadSong(http.MethodPut, fmt.Sprintf("/api/songs/%d", id), up)
	return err
}

func (c *Client) uploadSong(method, path string, up SongUpload) (catalog.SongID, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeSongForm(mw, up)
		if closeErr := mw.Close(); err == nil {
			err = closeErr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequest(method, c.baseURL+path, pr)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out wireIDTimestamps
	if err := c.send(req, &out); err != nil {
		return 0, err
	}
	return catalog.SongID(out.ID), nil
}

func writeSongForm(mw *multipart.Writer, up SongUpload) error {
	if err := mw.WriteField("name", up.Name); err != nil {
		return err
	}
	if up.Genre != "" {
		if err := mw.WriteField("genre", up.Genre); err != nil {
			return err
		}
	}
	if up.Audio != nil {
		part, err := mw.CreateFormFile("song_file", up.AudioName)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, up.Audio); err != nil {
			return err
		}
	}
	if up.Thumb != nil {
		part, err := mw.CreateFormFile("thumbnail_img", up.ThumbName)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, up.Thumb); err != nil {
			return err
		}
	}
	return nil
}
