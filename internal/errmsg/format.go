// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Session operations
	OpSessionRestore Op = "restore session"
	OpSessionLogin   Op = "log in"
	OpSessionSignup  Op = "sign up"
	OpSessionLogout  Op = "log out"

	// Song operations
	OpSongsLoad   Op = "load songs"
	OpSongLoad    Op = "load song"
	OpSongUpload  Op = "upload song"
	OpSongUpdate  Op = "update song"
	OpSongDelete  Op = "delete song"
	OpLikesLoad   Op = "load liked songs"
	OpLikeToggle  Op = "update likes"
	OpSongsSearch Op = "search"

	// Artist operations
	OpArtistLoad          Op = "load artist"
	OpArtistProfileUpdate Op = "update artist profile"

	// Comment operations
	OpCommentsLoad  Op = "load comments"
	OpCommentPost   Op = "post comment"
	OpCommentEdit   Op = "edit comment"
	OpCommentDelete Op = "delete comment"

	// Playlist operations
	OpPlaylistsLoad     Op = "load playlists"
	OpPlaylistCreate    Op = "create playlist"
	OpPlaylistRename    Op = "rename playlist"
	OpPlaylistDelete    Op = "delete playlist"
	OpPlaylistSongsLoad Op = "load playlist songs"
	OpPlaylistAddSong   Op = "add song to playlist"
	OpPlaylistRemove    Op = "remove song from playlist"

	// Queue operations
	OpQueueLoad Op = "load queue"
	OpQueueSave Op = "save queue"
	OpQueueAdd  Op = "add to queue"

	// Playback operations
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
