package app

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/soundclone/soundclone/internal/api"
	"github.com/soundclone/soundclone/internal/catalog"
)

func mustLogin(t *testing.T, svc *Service) catalog.SessionUser {
	t.Helper()
	session, err := svc.Login("n@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return session
}

func TestPostComment_CachesCreatedRecord(t *testing.T) {
	fake := newFakeServer()
	fake.mux.HandleFunc("POST /api/songs/10/comments", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"id": 99, "created_at": "2024-03-02 10:00:00", "updated_at": "2024-03-02 10:00:00",
		})
	})
	svc, _, _ := newTestService(t, fake.mux)
	session := mustLogin(t, svc)

	comment, err := svc.PostComment(10, "great track")
	if err != nil {
		t.Fatalf("PostComment: %v", err)
	}
	if comment.ID != 99 || comment.Text != "great track" {
		t.Errorf("PostComment = %+v, want id 99 text %q", comment, "great track")
	}
	if comment.AuthorID != session.ID {
		t.Errorf("AuthorID = %d, want session user %d", comment.AuthorID, session.ID)
	}

	got := svc.Cache().CommentsForSong(10)
	if len(got) != 1 || got[0].ID != 99 {
		t.Errorf("CommentsForSong(10) = %+v, want the created comment", got)
	}
}

func TestPostComment_RequiresSession(t *testing.T) {
	svc, _, _ := newTestService(t, newFakeServer().mux)

	if _, err := svc.PostComment(10, "hello"); !errors.Is(err, ErrNoSession) {
		t.Errorf("PostComment without session: err = %v, want ErrNoSession", err)
	}
}

func TestEditComment_UpdatesCache(t *testing.T) {
	fake := newFakeServer()
	fake.mux.HandleFunc("PUT /api/comments/99", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{})
	})
	svc, _, _ := newTestService(t, fake.mux)
	svc.Cache().UpsertComment(catalog.Comment{ID: 99, Text: "old", SongID: 10, AuthorID: 7})

	if err := svc.EditComment(99, "new"); err != nil {
		t.Fatalf("EditComment: %v", err)
	}
	if got, _ := svc.Cache().Comment(99); got.Text != "new" {
		t.Errorf("Comment(99).Text = %q, want %q", got.Text, "new")
	}
}

func TestDeleteComment_RemovesFromCache(t *testing.T) {
	fake := newFakeServer()
	fake.mux.HandleFunc("DELETE /api/comments/99", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{})
	})
	svc, _, _ := newTestService(t, fake.mux)
	svc.Cache().UpsertComment(catalog.Comment{ID: 99, Text: "bye", SongID: 10})

	if err := svc.DeleteComment(99); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if _, ok := svc.Cache().Comment(99); ok {
		t.Error("Comment(99) still cached after delete")
	}
}

func TestCreatePlaylist_OwnedBySessionUser(t *testing.T) {
	fake := newFakeServer()
	fake.mux.HandleFunc("POST /api/playlists", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": 20})
	})
	svc, _, _ := newTestService(t, fake.mux)
	session := mustLogin(t, svc)

	playlist, err := svc.CreatePlaylist("Late Night Mix", "")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	if playlist.ID != 20 || playlist.UserID != session.ID {
		t.Errorf("CreatePlaylist = %+v, want id 20 owned by %d", playlist, session.ID)
	}

	mine := svc.Cache().PlaylistsForUser(session.ID)
	if len(mine) != 1 || mine[0].Name != "Late Night Mix" {
		t.Errorf("PlaylistsForUser = %+v, want the created playlist", mine)
	}
}

func TestCreatePlaylist_RequiresSession(t *testing.T) {
	svc, _, _ := newTestService(t, newFakeServer().mux)

	if _, err := svc.CreatePlaylist("Mix", ""); !errors.Is(err, ErrNoSession) {
		t.Errorf("CreatePlaylist without session: err = %v, want ErrNoSession", err)
	}
}

func TestRenamePlaylist_KeepsMembership(t *testing.T) {
	fake := newFakeServer()
	fake.mux.HandleFunc("PUT /api/playlists/20", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{})
	})
	svc, _, _ := newTestService(t, fake.mux)
	svc.Cache().UpsertPlaylist(catalog.Playlist{
		ID: 20, Name: "Old Name", UserID: 7,
		Songs: map[catalog.SongID]struct{}{10: {}, 11: {}},
	})

	if err := svc.RenamePlaylist(20, "New Name"); err != nil {
		t.Fatalf("RenamePlaylist: %v", err)
	}

	got, _ := svc.Cache().Playlist(20)
	if got.Name != "New Name" {
		t.Errorf("Name = %q, want %q", got.Name, "New Name")
	}
	if len(got.Songs) != 2 {
		t.Errorf("membership = %v, want 2 songs untouched by rename", got.Songs)
	}
}

func TestPlaylistMembership_AddAndRemove(t *testing.T) {
	fake := newFakeServer()
	fake.mux.HandleFunc("POST /api/playlists/20/songs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{})
	})
	fake.mux.HandleFunc("DELETE /api/playlists/20/songs", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{})
	})
	svc, _, _ := newTestService(t, fake.mux)
	svc.Cache().UpsertPlaylist(catalog.Playlist{ID: 20, Name: "Mix", UserID: 7})

	if err := svc.AddToPlaylist(20, 10); err != nil {
		t.Fatalf("AddToPlaylist: %v", err)
	}
	got, _ := svc.Cache().Playlist(20)
	if _, ok := got.Songs[10]; !ok {
		t.Errorf("membership after add = %v, want song 10", got.Songs)
	}

	if err := svc.RemoveFromPlaylist(20, 10); err != nil {
		t.Fatalf("RemoveFromPlaylist: %v", err)
	}
	got, _ = svc.Cache().Playlist(20)
	if _, ok := got.Songs[10]; ok {
		t.Errorf("membership after remove = %v, want song 10 gone", got.Songs)
	}
}

func TestDeletePlaylist_KeepsSongsCached(t *testing.T) {
	fake := newFakeServer()
	fake.mux.HandleFunc("DELETE /api/playlists/20", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{})
	})
	svc, _, _ := newTestService(t, fake.mux)
	svc.Cache().UpsertSong(catalog.Song{ID: 10, Name: "Midnight Drive", ArtistID: 1})
	svc.Cache().UpsertPlaylist(catalog.Playlist{
		ID: 20, Name: "Mix", UserID: 7,
		Songs: map[catalog.SongID]struct{}{10: {}},
	})

	if err := svc.DeletePlaylist(20); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}
	if _, ok := svc.Cache().Playlist(20); ok {
		t.Error("Playlist(20) still cached after delete")
	}
	if _, ok := svc.Cache().Song(10); !ok {
		t.Error("Song(10) evicted by playlist delete, want it kept")
	}
}

func TestUploadSong_FetchesStoredRecord(t *testing.T) {
	fake := newFakeServer()
	var gotName string
	var gotUpload bool
	fake.mux.HandleFunc("POST /api/songs", func(w http.ResponseWriter, r *http.Request) {
		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		form, err := readForm(mr)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotName = form["name"]
		_, gotUpload = form["song_file"]
		writeJSON(w, map[string]any{
			"id": 33, "created_at": "2024-03-05 09:00:00", "updated_at": "2024-03-05 09:00:00",
		})
	})
	fake.mux.HandleFunc("GET /api/songs/33", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"id": 33, "name": "New Track", "artist_id": 7,
			"song_ref": "/media/33.mp3", "created_at": "2024-03-05 09:00:00",
		})
	})
	svc, _, _ := newTestService(t, fake.mux)
	mustLogin(t, svc)

	song, err := svc.UploadSong(api.SongUpload{
		Name:      "New Track",
		Audio:     strings.NewReader("riff"),
		AudioName: "new.mp3",
	})
	if err != nil {
		t.Fatalf("UploadSong: %v", err)
	}
	if gotName != "New Track" || !gotUpload {
		t.Errorf("server saw name=%q upload=%v, want the multipart form", gotName, gotUpload)
	}
	if song.ID != 33 || song.SongURL != "/media/33.mp3" {
		t.Errorf("UploadSong = %+v, want the stored record", song)
	}
	if _, ok := svc.Cache().Song(33); !ok {
		t.Error("uploaded song not cached")
	}
}

func TestUploadSong_RequiresSession(t *testing.T) {
	svc, _, _ := newTestService(t, newFakeServer().mux)

	if _, err := svc.UploadSong(api.SongUpload{Name: "x"}); !errors.Is(err, ErrNoSession) {
		t.Errorf("UploadSong without session: err = %v, want ErrNoSession", err)
	}
}

func TestDeleteSong_RemovesFromCache(t *testing.T) {
	fake := newFakeServer()
	fake.mux.HandleFunc("DELETE /api/songs/10", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{})
	})
	svc, _, _ := newTestService(t, fake.mux)
	svc.Cache().UpsertSong(catalog.Song{ID: 10, Name: "Midnight Drive", ArtistID: 1})

	if err := svc.DeleteSong(10); err != nil {
		t.Fatalf("DeleteSong: %v", err)
	}
	if _, ok := svc.Cache().Song(10); ok {
		t.Error("Song(10) still cached after delete")
	}
}

func TestUpdateProfile_RefreshesCachedArtist(t *testing.T) {
	fake := newFakeServer()
	fake.mux.HandleFunc("POST /api/artists", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{})
	})
	fake.mux.HandleFunc("GET /api/artists/7", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{
			"id": 7, "stage_name": "Nadia", "biography": "late night electronica",
		})
	})
	svc, _, _ := newTestService(t, fake.mux)
	mustLogin(t, svc)

	if err := svc.UpdateProfile(api.ArtistProfile{Biography: "late night electronica"}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	got, _ := svc.Cache().User(7)
	if got.Biography != "late night electronica" {
		t.Errorf("Biography = %q, want the updated profile", got.Biography)
	}
}

// readForm collects multipart parts into a name->content map.
func readForm(mr *multipart.Reader) (map[string]string, error) {
	form := map[string]string{}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		if _, err := io.Copy(&sb, part); err != nil {
			return nil, err
		}
		form[part.FormName()] = sb.String()
	}
}
