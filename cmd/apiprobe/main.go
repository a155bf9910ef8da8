// Diagnostic tool that exercises the REST client against a live server.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/soundclone/soundclone/internal/api"
	"github.com/soundclone/soundclone/internal/catalog"
)

func main() {
	_ = godotenv.Load()

	server := flag.String("server", "http://localhost:5000", "server URL")
	songID := flag.Int64("song", 0, "fetch one song (with comments) instead of the listing")
	search := flag.String("search", "", "run a search query")
	flag.Parse()

	client, err := api.NewClient(*server)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	if email, password := os.Getenv("SOUNDCLONE_EMAIL"), os.Getenv("SOUNDCLONE_PASSWORD"); email != "" {
		session, _, err := client.Login(email, password)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		log.Printf("Logged in as %s (id %d)", session.Username, session.ID)

		liked, err := client.LikedSongs()
		if err != nil {
			log.Printf("Warning: failed to load likes: %v", err)
		} else {
			log.Printf("Session has %d liked songs", len(liked))
		}
	}

	switch {
	case *search != "":
		results, err := client.Search(*search)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		log.Printf("Found %d results for %q:", len(results), *search)
		for _, r := range results {
			log.Printf("  [%s] %d %s %s", r.Type, r.ID, r.Name, r.ArtistName)
		}

	case *songID != 0:
		probeSong(client, catalog.SongID(*songID))

	default:
		songs, err := client.Songs()
		if err != nil {
			log.Fatalf("Failed to list songs: %v", err)
		}
		log.Printf("Server has %d songs:", len(songs))
		for _, s := range songs {
			log.Printf("  %4d  %-30s artist=%d likes=%d uploaded %s",
				s.ID, s.Name, s.ArtistID, s.Likes, humanize.Time(s.CreatedAt))
		}
	}
}

func probeSong(client *api.Client, id catalog.SongID) {
	song, err := client.Song(id)
	if err != nil {
		log.Fatalf("Failed to fetch song %d: %v", id, err)
	}
	log.Printf("Song %d: %s (genre %q)", song.ID, song.Name, song.Genre)
	log.Printf("  stream: %s", song.SongURL)
	log.Printf("  uploaded %s, %d likes", humanize.Time(song.CreatedAt), song.Likes)

	artist, err := client.Artist(song.ArtistID)
	if err != nil {
		log.Printf("Warning: failed to fetch artist %d: %v", song.ArtistID, err)
	} else {
		log.Printf("  by %s (id %d)", artist.DisplayName, artist.ID)
	}

	comments, err := client.SongComments(song.ID)
	if err != nil {
		log.Fatalf("Failed to fetch comments: %v", err)
	}
	log.Printf("  %d comments:", len(comments))
	for _, c := range comments {
		log.Printf("    [user %d, %s] %s", c.AuthorID, humanize.Time(c.CreatedAt), c.Text)
	}
}
