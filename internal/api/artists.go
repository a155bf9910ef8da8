package api

import (
	"fmt"
	"net/url"

	"github.com/soundclone/soundclone/internal/catalog"
)

// Artist fetches an artist profile as a user record.
func (c *Client) Artist(id catalog.UserID) (catalog.User, error) {
	var out wireArtist
	if err := c.get(fmt.Sprintf("/api/artists/%d", id), &out); err != nil {
		return catalog.User{}, err
	}
	return artistToCatalog(out)
}

// ArtistProfile is the editable part of the session user's artist page.
type ArtistProfile struct {
	StageName    string `json:"stage_name,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
	FirstRelease string `json:"first_release,omitempty"`
	Biography    string `json:"biography,omitempty"`
	Location     string `json:"location,omitempty"`
	Homepage     string `json:"homepage,omitempty"`
}

// UpdateArtistProfile updates the session user's artist profile.
func (c *Client) UpdateArtistProfile(p ArtistProfile) error {
	return c.post("/api/artists", p, nil)
}

// Search runs the server-side search across songs, artists and playlists.
// Queries shorter than two characters return nothing.
func (c *Client) Search(query string) ([]SearchResult, error) {
	var out wireSearch
	if err := c.get("/api/search?q="+url.QueryEscape(query), &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
