package catalog

// Fill-in merge: fields absent in the incoming partial record never erase
// previously known values, while present fields win last-write per field.
// "Absent" is the zero value; the wire never delivers a meaningful empty
// string or zero time for these fields.

func mergeSong(old, incoming Song) Song {
	out := old
	if incoming.Name != "" {
		out.Name = incoming.Name
	}
	if incoming.ArtistID != 0 {
		out.ArtistID = incoming.ArtistID
	}
	if incoming.Genre != "" {
		out.Genre = incoming.Genre
	}
	if incoming.ThumbURL != "" {
		out.ThumbURL = incoming.ThumbURL
	}
	if incoming.SongURL != "" {
		out.SongURL = incoming.SongURL
	}
	// The like counter is server-sourced and authoritative whenever the
	// incoming record carries timestamps, i.e. came off the wire as a full
	// song resource.
	if !incoming.CreatedAt.IsZero() {
		out.Likes = incoming.Likes
	}
	out.Timestamps = mergeTimestamps(old.Timestamps, incoming.Timestamps)
	return out
}

func mergeUser(old, incoming User) User {
	out := old
	if incoming.DisplayName != "" {
		out.DisplayName = incoming.DisplayName
	}
	if incoming.ProfileImage != "" {
		out.ProfileImage = incoming.ProfileImage
	}
	if !incoming.FirstRelease.IsZero() {
		out.FirstRelease = incoming.FirstRelease
	}
	if incoming.Biography != "" {
		out.Biography = incoming.Biography
	}
	if incoming.Location != "" {
		out.Location = incoming.Location
	}
	if incoming.HomepageURL != "" {
		out.HomepageURL = incoming.HomepageURL
	}
	return out
}

func mergePlaylist(old, incoming Playlist) Playlist {
	out := old
	if incoming.Name != "" {
		out.Name = incoming.Name
	}
	if incoming.UserID != 0 {
		out.UserID = incoming.UserID
	}
	if incoming.Thumbnail != "" {
		out.Thumbnail = incoming.Thumbnail
	}
	if incoming.Songs != nil {
		out.Songs = copySet(incoming.Songs)
	}
	out.Timestamps = mergeTimestamps(old.Timestamps, incoming.Timestamps)
	return out
}

func mergeComment(old, incoming Comment) Comment {
	out := old
	if incoming.Text != "" {
		out.Text = incoming.Text
	}
	if incoming.SongID != 0 {
		out.SongID = incoming.SongID
	}
	if incoming.AuthorID != 0 {
		out.AuthorID = incoming.AuthorID
	}
	out.Timestamps = mergeTimestamps(old.Timestamps, incoming.Timestamps)
	return out
}

func mergeTimestamps(old, incoming Timestamps) Timestamps {
	out := old
	if !incoming.CreatedAt.IsZero() {
		out.CreatedAt = incoming.CreatedAt
	}
	if !incoming.UpdatedAt.IsZero() {
		out.UpdatedAt = incoming.UpdatedAt
	}
	return out
}
