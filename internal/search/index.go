// Package search provides trigram-based local search over cached catalog
// entities. It complements server-side search: results reflect only what
// has already been fetched.
package search

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/catalog"
)

// Kind identifies the entity type behind a result.
type Kind string

const (
	KindSong     Kind = "song"
	KindArtist   Kind = "artist"
	KindPlaylist Kind = "playlist"
)

// Result is one local search hit.
type Result struct {
	Kind       Kind
	SongID     catalog.SongID
	ArtistID   catalog.UserID
	PlaylistID catalog.PlaylistID
	Display    string
	Score      float64
}

// Index is an immutable snapshot of the catalog prepared for matching.
// Rebuild it after cache writes; building is cheap relative to fetches.
type Index struct {
	items   []Item
	results []Result
	matcher *TrigramMatcher
}

type indexItem struct {
	filter  string
	display string
}

func (it indexItem) FilterValue() string { return it.filter }
func (it indexItem) DisplayText() string { return it.display }

// BuildIndex snapshots the catalog into a searchable index. Songs match on
// title and artist name, artists on display name, playlists on name.
func BuildIndex(c *catalog.Catalog) *Index {
	idx := &Index{}

	for _, s := range c.SongsNewestFirst() {
		artist := c.DisplayName(s.ArtistID)
		display := s.Name
		if artist != "" {
			display = fmt.Sprintf("%s - %s", s.Name, artist)
		}
		idx.items = append(idx.items, indexItem{
			filter:  s.Name + " " + artist,
			display: display,
		})
		idx.results = append(idx.results, Result{
			Kind:    KindSong,
			SongID:  s.ID,
			Display: display,
		})
	}

	for _, u := range c.Users() {
		if u.DisplayName == "" {
			continue
		}
		idx.items = append(idx.items, indexItem{
			filter:  u.DisplayName,
			display: u.DisplayName,
		})
		idx.results = append(idx.results, Result{
			Kind:     KindArtist,
			ArtistID: u.ID,
			Display:  u.DisplayName,
		})
	}

	for _, p := range c.Playlists() {
		idx.items = append(idx.items, indexItem{
			filter:  p.Name,
			display: p.Name,
		})
		idx.results = append(idx.results, Result{
			Kind:       KindPlaylist,
			PlaylistID: p.ID,
			Display:    p.Name,
		})
	}

	idx.matcher = NewTrigramMatcher(idx.items)
	return idx
}

// Search returns matching results, best first. An empty query returns
// everything in index order.
func (idx *Index) Search(query string) []Result {
	matches := idx.matcher.Search(query)
	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		r := idx.results[m.Index]
		r.Score = m.Score
		results = append(results, r)
	}
	return results
}

// Len returns the number of indexed entities.
func (idx *Index) Len() int {
	return len(idx.items)
}
