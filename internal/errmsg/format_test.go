//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSongsLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpSongsLoad,
			err:      errors.New("connection refused"),
			expected: "Failed to load songs: connection refused",
		},
		{
			name:     "session operation",
			op:       OpSessionLogin,
			err:      errors.New("invalid credentials"),
			expected: "Failed to log in: invalid credentials",
		},
		{
			name:     "like operation",
			op:       OpLikeToggle,
			err:      errors.New("not authorized"),
			expected: "Failed to update likes: not authorized",
		},
		{
			name:     "playlist operation",
			op:       OpPlaylistCreate,
			err:      errors.New("already exists"),
			expected: "Failed to create playlist: already exists",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSongDelete,
			context:  "Dust",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpSongDelete,
			context:  "Dust",
			err:      errors.New("not authorized"),
			expected: "Failed to delete song 'Dust': not authorized",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpSongDelete,
			context:  "",
			err:      errors.New("not authorized"),
			expected: "Failed to delete song: not authorized",
		},
		{
			name:     "playlist add song with context",
			op:       OpPlaylistAddSong,
			context:  "Late Night Mix",
			err:      errors.New("song not found"),
			expected: "Failed to add song to playlist 'Late Night Mix': song not found",
		},
		{
			name:     "upload with filename context",
			op:       OpSongUpload,
			context:  "demo.mp3",
			err:      errors.New("unsupported format"),
			expected: "Failed to upload song 'demo.mp3': unsupported format",
		},
		{
			name:     "search with query context",
			op:       OpSongsSearch,
			context:  "lofi",
			err:      errors.New("server unavailable"),
			expected: "Failed to search 'lofi': server unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	// Verify that Op constants are non-empty and produce valid messages
	ops := []Op{
		OpSessionRestore, OpSessionLogin, OpSessionSignup, OpSessionLogout,
		OpSongsLoad, OpSongLoad, OpSongUpload, OpSongUpdate, OpSongDelete,
		OpLikesLoad, OpLikeToggle, OpSongsSearch,
		OpArtistLoad, OpArtistProfileUpdate,
		OpCommentsLoad, OpCommentPost, OpCommentEdit, OpCommentDelete,
		OpPlaylistsLoad, OpPlaylistCreate, OpPlaylistRename, OpPlaylistDelete,
		OpPlaylistSongsLoad, OpPlaylistAddSong, OpPlaylistRemove,
		OpQueueLoad, OpQueueSave, OpQueueAdd,
		OpPlaybackStart, OpPlaybackSeek,
		OpInitialize,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			result := Format(op, testErr)
			if result == "" {
				t.Error("Format should return non-empty string for non-nil error")
			}

			// Verify the format includes the operation
			expected := "Failed to " + string(op) + ": test error"
			if result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
