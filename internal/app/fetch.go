package app

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/api"
	"github.com/soundclone/soundclone/internal/catalog"
)

// FetchNewReleases loads the song listing and fills in any artists the
// cache does not know yet.
func (s *Service) FetchNewReleases() ([]catalog.Song, error) {
	songs, err := s.api.Songs()
	if err != nil {
		return nil, fmt.Errorf("load songs: %w", err)
	}
	s.cache.UpsertSongs(songs)
	s.fetchUnknownArtists(songs)

	s.log.Debug().Int("count", len(songs)).Msg("fetched song listing")
	return s.cache.SongsNewestFirst(), nil
}

// FetchSong loads one song with its artist and comments.
func (s *Service) FetchSong(id catalog.SongID) (catalog.Song, error) {
	song, err := s.api.Song(id)
	if err != nil {
		return catalog.Song{}, fmt.Errorf("load song %d: %w", id, err)
	}
	s.cache.UpsertSong(song)
	s.fetchUnknownArtists([]catalog.Song{song})

	comments, err := s.api.SongComments(id)
	if err != nil {
		return catalog.Song{}, fmt.Errorf("load comments for song %d: %w", id, err)
	}
	s.cache.UpsertComments(comments)

	cached, _ := s.cache.Song(id)
	return cached, nil
}

// FetchArtist loads an artist profile and their songs.
func (s *Service) FetchArtist(id catalog.UserID) (catalog.User, error) {
	user, err := s.api.Artist(id)
	if err != nil {
		return catalog.User{}, fmt.Errorf("load artist %d: %w", id, err)
	}
	s.cache.UpsertUser(user)

	cached, _ := s.cache.User(id)
	return cached, nil
}

// FetchLikedSongs loads the session user's liked songs and replaces the
// likes set with the server's view.
func (s *Service) FetchLikedSongs() error {
	songs, err := s.api.LikedSongs()
	if err != nil {
		return fmt.Errorf("load liked songs: %w", err)
	}
	s.cache.UpsertSongs(songs)

	ids := make([]catalog.SongID, len(songs))
	for i, song := range songs {
		ids[i] = song.ID
	}
	s.cache.SetLikes(ids)

	s.log.Debug().Int("count", len(ids)).Msg("fetched likes")
	return nil
}

// FetchMyPlaylists loads the session user's playlists.
func (s *Service) FetchMyPlaylists() ([]catalog.Playlist, error) {
	session, ok := s.cache.Session()
	if !ok {
		return nil, ErrNoSession
	}

	playlists, err := s.api.MyPlaylists()
	if err != nil {
		return nil, fmt.Errorf("load playlists: %w", err)
	}
	for _, p := range playlists {
		s.cache.UpsertPlaylist(p)
	}

	return s.cache.PlaylistsForUser(session.ID), nil
}

// FetchPlaylistSongs loads a playlist's songs and replaces its cached
// membership set with the server's view.
func (s *Service) FetchPlaylistSongs(id catalog.PlaylistID) ([]catalog.Song, error) {
	songs, err := s.api.PlaylistSongs(id)
	if err != nil {
		return nil, fmt.Errorf("load playlist %d songs: %w", id, err)
	}
	s.cache.UpsertSongs(songs)
	s.fetchUnknownArtists(songs)

	ids := make([]catalog.SongID, len(songs))
	for i, song := range songs {
		ids[i] = song.ID
	}
	s.cache.SetPlaylistSongs(id, ids)

	resolved, _ := s.cache.PlaylistSongs(id)
	return resolved, nil
}

// Search runs a server-side search. Local (cache-only) search is available
// through SearchIndex.
func (s *Service) Search(query string) ([]api.SearchResult, error) {
	results, err := s.api.Search(query)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return results, nil
}

// fetchUnknownArtists resolves artist ids the cache has no display name
// for. Failures are logged, not returned: a missing name degrades display,
// nothing else.
func (s *Service) fetchUnknownArtists(songs []catalog.Song) {
	seen := map[catalog.UserID]struct{}{}
	for _, song := range songs {
		if song.ArtistID == 0 {
			continue
		}
		if _, dup := seen[song.ArtistID]; dup {
			continue
		}
		seen[song.ArtistID] = struct{}{}

		if s.cache.DisplayName(song.ArtistID) != "" {
			continue
		}
		user, err := s.api.Artist(song.ArtistID)
		if err != nil {
			s.log.Warn().Err(err).Int64("artist_id", int64(song.ArtistID)).Msg("resolve artist")
			continue
		}
		s.cache.UpsertUser(user)
	}
}
