package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/soundclone/soundclone/internal/db"
)

// QueueItem represents one saved queue entry. It mirrors the playback
// snapshot so restoring never requires a fetch.
type QueueItem struct {
	SongID     int64
	Title      string
	Artist     string
	ArtistID   int64
	StreamURL  string
	ThumbURL   string
	DurationMS int64
}

// QueueState represents the saved player state.
type QueueState struct {
	Current    *QueueItem
	RepeatMode int
	Shuffle    bool
	Items      []QueueItem
}

func getQueue(db *sql.DB) (*QueueState, error) {
	var (
		currentID              sql.NullInt64
		title, artist          sql.NullString
		artistID               sql.NullInt64
		streamURL, thumbURL    sql.NullString
		durationMS             sql.NullInt64
		repeatMode             int
		shuffle                bool
	)
	row := db.QueryRow(`
		SELECT current_song_id, current_title, current_artist, current_artist_id,
		       current_stream_url, current_thumb_url, current_duration_ms,
		       repeat_mode, shuffle
		FROM player_state WHERE id = 1
	`)
	err := row.Scan(&currentID, &title, &artist, &artistID,
		&streamURL, &thumbURL, &durationMS, &repeatMode, &shuffle)
	if errors.Is(err, sql.ErrNoRows) {
		return &QueueState{}, nil
	}
	if err != nil {
		return nil, err
	}

	st := &QueueState{
		RepeatMode: repeatMode,
		Shuffle:    shuffle,
	}
	if currentID.Valid {
		st.Current = &QueueItem{
			SongID:     currentID.Int64,
			Title:      dbutil.NullStringValue(title),
			Artist:     dbutil.NullStringValue(artist),
			ArtistID:   dbutil.NullInt64Value(artistID),
			StreamURL:  dbutil.NullStringValue(streamURL),
			ThumbURL:   dbutil.NullStringValue(thumbURL),
			DurationMS: dbutil.NullInt64Value(durationMS),
		}
	}

	rows, err := db.Query(`
		SELECT song_id, title, artist, artist_id, stream_url, thumb_url, duration_ms
		FROM queue_items
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it QueueItem
		var itArtist, itStream, itThumb sql.NullString
		var itArtistID, itDuration sql.NullInt64

		err := rows.Scan(&it.SongID, &it.Title, &itArtist, &itArtistID, &itStream, &itThumb, &itDuration)
		if err != nil {
			return nil, err
		}

		it.Artist = dbutil.NullStringValue(itArtist)
		it.ArtistID = dbutil.NullInt64Value(itArtistID)
		it.StreamURL = dbutil.NullStringValue(itStream)
		it.ThumbURL = dbutil.NullStringValue(itThumb)
		it.DurationMS = dbutil.NullInt64Value(itDuration)
		st.Items = append(st.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return st, nil
}

func saveQueue(sqlDB *sql.DB, state QueueState) error {
	return dbutil.WithTx(sqlDB, func(tx *sql.Tx) error {
		// Clear existing queue
		_, err := tx.Exec(`DELETE FROM queue_items`)
		if err != nil {
			return err
		}

		var (
			currentID, artistID, durationMS any
			title, artist, stream, thumb    any
		)
		if c := state.Current; c != nil {
			currentID = c.SongID
			title = c.Title
			artist = c.Artist
			artistID = c.ArtistID
			stream = c.StreamURL
			thumb = c.ThumbURL
			durationMS = c.DurationMS
		}

		_, err = tx.Exec(`
			INSERT INTO player_state (id, current_song_id, current_title, current_artist,
				current_artist_id, current_stream_url, current_thumb_url, current_duration_ms,
				repeat_mode, shuffle)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				current_song_id = excluded.current_song_id,
				current_title = excluded.current_title,
				current_artist = excluded.current_artist,
				current_artist_id = excluded.current_artist_id,
				current_stream_url = excluded.current_stream_url,
				current_thumb_url = excluded.current_thumb_url,
				current_duration_ms = excluded.current_duration_ms,
				repeat_mode = excluded.repeat_mode,
				shuffle = excluded.shuffle
		`, currentID, title, artist, artistID, stream, thumb, durationMS,
			state.RepeatMode, state.Shuffle)
		if err != nil {
			return err
		}

		stmt, err := tx.Prepare(`
			INSERT INTO queue_items (position, song_id, title, artist, artist_id, stream_url, thumb_url, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, it := range state.Items {
			_, err = stmt.Exec(i, it.SongID, it.Title, it.Artist, it.ArtistID,
				it.StreamURL, it.ThumbURL, it.DurationMS)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
