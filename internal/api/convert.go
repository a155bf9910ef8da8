package api

import (
	"fmt"

	"github.com/soundclone/soundclone/internal/catalog"
)

func songToCatalog(w wireSong) (catalog.Song, error) {
	created, err := parseTime(w.CreatedAt)
	if err != nil {
		return catalog.Song{}, fmt.Errorf("song %d: %w", w.ID, err)
	}
	updated, err := parseTime(w.UpdatedAt)
	if err != nil {
		return catalog.Song{}, fmt.Errorf("song %d: %w", w.ID, err)
	}
	return catalog.Song{
		ID:       catalog.SongID(w.ID),
		Name:     w.Name,
		ArtistID: catalog.UserID(w.ArtistID),
		Likes:    w.NumLikes,
		Genre:    w.Genre,
		ThumbURL: w.ThumbURL,
		SongURL:  w.SongRef,
		Timestamps: catalog.Timestamps{
			CreatedAt: created,
			UpdatedAt: updated,
		},
	}, nil
}

func songsToCatalog(ws []wireSong) ([]catalog.Song, error) {
	songs := make([]catalog.Song, 0, len(ws))
	for _, w := range ws {
		s, err := songToCatalog(w)
		if err != nil {
			return nil, err
		}
		songs = append(songs, s)
	}
	return songs, nil
}

func playlistToCatalog(w wirePlaylist) (catalog.Playlist, error) {
	created, err := parseTime(w.CreatedAt)
	if err != nil {
		return catalog.Playlist{}, fmt.Errorf("playlist %d: %w", w.ID, err)
	}
	updated, err := parseTime(w.UpdatedAt)
	if err != nil {
		return catalog.Playlist{}, fmt.Errorf("playlist %d: %w", w.ID, err)
	}
	return catalog.Playlist{
		ID:        catalog.PlaylistID(w.ID),
		Name:      w.Name,
		UserID:    catalog.UserID(w.UserID),
		Thumbnail: w.Thumbnail,
		Timestamps: catalog.Timestamps{
			CreatedAt: created,
			UpdatedAt: updated,
		},
	}, nil
}

func commentToCatalog(w wireComment, songID catalog.SongID) (catalog.Comment, error) {
	created, err := parseTime(w.CreatedAt)
	if err != nil {
		return catalog.Comment{}, fmt.Errorf("comment %d: %w", w.ID, err)
	}
	updated, err := parseTime(w.UpdatedAt)
	if err != nil {
		return catalog.Comment{}, fmt.Errorf("comment %d: %w", w.ID, err)
	}
	return catalog.Comment{
		ID:       catalog.CommentID(w.ID),
		Text:     w.Text,
		SongID:   songID,
		AuthorID: catalog.UserID(w.UserID),
		Timestamps: catalog.Timestamps{
			CreatedAt: created,
			UpdatedAt: updated,
		},
	}, nil
}

func artistToCatalog(w wireArtist) (catalog.User, error) {
	firstRelease, err := parseTime(w.FirstRelease)
	if err != nil {
		return catalog.User{}, fmt.Errorf("artist %d: %w", w.ID, err)
	}
	return catalog.User{
		ID:           catalog.UserID(w.ID),
		DisplayName:  w.StageName,
		ProfileImage: w.ProfileImage,
		FirstRelease: firstRelease,
		Biography:    w.Biography,
		Location:     w.Location,
		HomepageURL:  w.Homepage,
	}, nil
}

// userToCatalog splits an auth response into the session identity and the
// user record. The display name falls back to the account username when no
// stage name is set.
func userToCatalog(w wireUser) (catalog.SessionUser, catalog.User, error) {
	firstRelease, err := parseTime(w.FirstRelease)
	if err != nil {
		return catalog.SessionUser{}, catalog.User{}, fmt.Errorf("user %d: %w", w.ID, err)
	}
	session := catalog.SessionUser{
		ID:       catalog.UserID(w.ID),
		Username: w.Username,
		Email:    w.Email,
	}
	display := w.StageName
	if display == "" {
		display = w.Username
	}
	user := catalog.User{
		ID:           session.ID,
		DisplayName:  display,
		ProfileImage: w.ProfileImage,
		FirstRelease: firstRelease,
		Biography:    w.Biography,
		Location:     w.Location,
		HomepageURL:  w.Homepage,
	}
	return session, user, nil
}
