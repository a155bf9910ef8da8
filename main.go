package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/soundclone/soundclone/internal/api"
	"github.com/soundclone/soundclone/internal/app"
	"github.com/soundclone/soundclone/internal/audio"
	"github.com/soundclone/soundclone/internal/catalog"
	"github.com/soundclone/soundclone/internal/config"
	"github.com/soundclone/soundclone/internal/errmsg"
	"github.com/soundclone/soundclone/internal/logging"
	"github.com/soundclone/soundclone/internal/state"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configFlag := flag.String("config", "", "path to config file (skips default locations)")
	serverFlag := flag.String("server", "", "server URL (overrides config)")
	logLevelFlag := flag.String("log-level", "", "log level: debug, info, warn, error")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *configFlag != "" {
		cfg, err = config.LoadFrom(*configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *serverFlag != "" {
		cfg.ServerURL = strings.TrimSuffix(*serverFlag, "/")
	}

	logCfg := cfg.GetLogConfig()
	if *logLevelFlag != "" {
		logCfg.Level = *logLevelFlag
	}

	var logOut io.Writer = os.Stderr
	if logCfg.File != "" {
		f, err := logging.OpenFile(logCfg.File)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(logging.Config{
		Level:  logCfg.Level,
		Format: logCfg.Format,
		Output: logOut,
	})
	logging.SetGlobal(logger)

	client, err := api.NewClient(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("create API client: %w", err)
	}

	store, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}

	pb := cfg.GetPlaybackConfig()
	svc := app.New(app.Options{
		Client: client,
		Audio:  audio.NewWithTimeout(time.Duration(pb.StreamTimeoutMS) * time.Millisecond),
		Store:  store,
		Logger: logger,
	})
	defer svc.Close()

	if err := startup(svc, cfg, logger); err != nil {
		return err
	}

	return commandLoop(svc, os.Stdin, os.Stdout)
}

func startup(svc *app.Service, cfg *config.Config, logger zerolog.Logger) error {
	if session, ok, err := svc.Restore(); err != nil {
		logger.Warn().Err(err).Msg("session restore failed")
	} else if ok {
		fmt.Printf("Welcome back, %s\n", session.Username)
	}

	pb := cfg.GetPlaybackConfig()
	if *pb.RestoreQueue {
		if err := svc.RestorePlayer(); err != nil {
			logger.Warn().Err(err).Msg(errmsg.Format(errmsg.OpQueueLoad, err))
		}
	} else {
		svc.SetVolume(*pb.DefaultVolume)
	}

	// Print track changes as they happen
	sub := svc.Controller().Subscribe()
	go func() {
		for {
			select {
			case ev := <-sub.TrackChanged:
				if ev.Current != nil {
					fmt.Printf("Now playing: %s - %s\n", ev.Current.Title, ev.Current.Artist)
				}
			case <-sub.Done:
				return
			}
		}
	}()

	return nil
}

func commandLoop(svc *app.Service, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, `Type "help" for commands.`)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" || cmd == "exit" {
			return nil
		}
		runCommand(svc, out, cmd, args)
	}
}

func runCommand(svc *app.Service, out io.Writer, cmd string, args []string) {
	switch cmd {
	case "help":
		printHelp(out)

	case "login":
		if len(args) != 2 {
			fmt.Fprintln(out, "usage: login <email> <password>")
			return
		}
		session, err := svc.Login(args[0], args[1])
		if err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpSessionLogin, err))
			return
		}
		fmt.Fprintf(out, "Logged in as %s\n", session.Username)

	case "signup":
		if len(args) != 3 {
			fmt.Fprintln(out, "usage: signup <username> <email> <password>")
			return
		}
		session, err := svc.Signup(args[0], args[1], args[2])
		if err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpSessionSignup, err))
			return
		}
		fmt.Fprintf(out, "Welcome, %s\n", session.Username)

	case "logout":
		if err := svc.Logout(); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpSessionLogout, err))
		}

	case "songs":
		songs, err := svc.FetchNewReleases()
		if err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpSongsLoad, err))
			return
		}
		printSongs(svc, out, songs)

	case "song":
		id, ok := parseID(out, args, "song")
		if !ok {
			return
		}
		song, err := svc.FetchSong(catalog.SongID(id))
		if err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpSongLoad, err))
			return
		}
		printSongDetail(svc, out, song)

	case "play":
		id, ok := parseID(out, args, "song")
		if !ok {
			return
		}
		if err := svc.PlaySong(catalog.SongID(id)); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpPlaybackStart, err))
		}

	case "playlist":
		id, ok := parseID(out, args, "playlist")
		if !ok {
			return
		}
		if err := svc.PlayPlaylist(catalog.PlaylistID(id)); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpPlaybackStart, err))
		}

	case "playlists":
		playlists, err := svc.FetchMyPlaylists()
		if err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpPlaylistsLoad, err))
			return
		}
		for _, p := range playlists {
			fmt.Fprintf(out, "%4d  %s (%d songs)\n", p.ID, p.Name, len(p.Songs))
		}

	case "queue":
		id, ok := parseID(out, args, "song")
		if !ok {
			return
		}
		if err := svc.EnqueueSong(catalog.SongID(id)); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpQueueAdd, err))
		}

	case "next":
		if err := svc.Next(); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpPlaybackStart, err))
		}

	case "prev":
		if err := svc.Previous(); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpPlaybackStart, err))
		}

	case "pause", "resume":
		if err := svc.TogglePlayPause(); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpPlaybackStart, err))
		}

	case "volume":
		if len(args) != 1 {
			fmt.Fprintf(out, "volume: %.0f%%\n", svc.Controller().Volume()*100)
			return
		}
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fmt.Fprintln(out, "usage: volume <0-100>")
			return
		}
		applied := svc.SetVolume(v / 100)
		fmt.Fprintf(out, "volume: %.0f%%\n", applied*100)

	case "repeat":
		fmt.Fprintf(out, "repeat: %s\n", svc.CycleRepeat())

	case "shuffle":
		fmt.Fprintf(out, "shuffle: %v\n", svc.ToggleShuffle())

	case "like":
		id, ok := parseID(out, args, "song")
		if !ok {
			return
		}
		if err := svc.ToggleLike(catalog.SongID(id)); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpLikeToggle, err))
		}

	case "likes":
		if err := svc.FetchLikedSongs(); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpLikesLoad, err))
			return
		}
		for _, id := range svc.Cache().LikedSongIDs() {
			if song, ok := svc.Cache().Song(id); ok {
				fmt.Fprintf(out, "%4d  %s\n", song.ID, song.Name)
			}
		}

	case "comment":
		if len(args) < 2 {
			fmt.Fprintln(out, "usage: comment <song-id> <text>")
			return
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			fmt.Fprintln(out, "usage: comment <song-id> <text>")
			return
		}
		text := strings.Join(args[1:], " ")
		if _, err := svc.PostComment(catalog.SongID(id), text); err != nil {
			fmt.Fprintln(out, errmsg.Format(errmsg.OpCommentPost, err))
		}

	case "search":
		if len(args) == 0 {
			fmt.Fprintln(out, "usage: search <query>")
			return
		}
		query := strings.Join(args, " ")
		results, err := svc.Search(query)
		if err != nil {
			// Fall back to whatever is cached locally
			for _, r := range svc.SearchIndex().Search(query) {
				fmt.Fprintf(out, "%-8s  %s\n", r.Kind, r.Display)
			}
			fmt.Fprintln(out, errmsg.FormatWith(errmsg.OpSongsSearch, query, err))
			return
		}
		for _, r := range results {
			fmt.Fprintf(out, "%-8s  %s", r.Type, r.Name)
			if r.ArtistName != "" {
				fmt.Fprintf(out, " - %s", r.ArtistName)
			}
			fmt.Fprintln(out)
		}

	case "status":
		printStatus(svc, out)

	default:
		fmt.Fprintf(out, "unknown command %q, try \"help\"\n", cmd)
	}
}

func parseID(out io.Writer, args []string, noun string) (int64, bool) {
	if len(args) != 1 {
		fmt.Fprintf(out, "usage: expects one %s id\n", noun)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(out, "bad %s id %q\n", noun, args[0])
		return 0, false
	}
	return id, true
}

func printSongs(svc *app.Service, out io.Writer, songs []catalog.Song) {
	for _, song := range songs {
		artist := svc.Cache().DisplayName(song.ArtistID)
		liked := " "
		if svc.Cache().Liked(song.ID) {
			liked = "*"
		}
		fmt.Fprintf(out, "%4d %s %-30s %-20s %s\n",
			song.ID, liked, song.Name, artist, likesLabel(song.Likes))
	}
}

func printSongDetail(svc *app.Service, out io.Writer, song catalog.Song) {
	artist := svc.Cache().DisplayName(song.ArtistID)
	fmt.Fprintf(out, "%s - %s\n", song.Name, artist)
	if song.Genre != "" {
		fmt.Fprintf(out, "genre: %s\n", song.Genre)
	}
	fmt.Fprintf(out, "%s, released %s\n", likesLabel(song.Likes), humanize.Time(song.CreatedAt))

	for _, c := range svc.Cache().CommentsForSong(song.ID) {
		author := svc.Cache().DisplayName(c.AuthorID)
		if author == "" {
			author = fmt.Sprintf("user %d", c.AuthorID)
		}
		fmt.Fprintf(out, "  [%s, %s] %s\n", author, humanize.Time(c.CreatedAt), c.Text)
	}
}

func printStatus(svc *app.Service, out io.Writer) {
	current, ok := svc.Controller().Current()
	if !ok {
		fmt.Fprintln(out, "nothing playing")
		return
	}

	status := "paused"
	if svc.Controller().IsPlaying() {
		status = "playing"
	}
	fmt.Fprintf(out, "%s: %s - %s\n", status, current.Title, current.Artist)
	fmt.Fprintf(out, "position %s / %s\n",
		formatDuration(svc.Audio().Position()), formatDuration(svc.Audio().Duration()))
	fmt.Fprintf(out, "repeat %s, shuffle %v, %d queued\n",
		svc.Controller().Repeat(), svc.Controller().Shuffle(), svc.Controller().QueueLen())
}

func printHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  login <email> <password>    signup <username> <email> <password>    logout
  songs                       song <id>                 search <query>
  play <id>                   playlist <id>             playlists
  queue <id>                  next / prev               pause
  volume [0-100]              repeat                    shuffle
  like <id>                   likes                     comment <id> <text>
  status                      quit
`)
}

func likesLabel(n int) string {
	if n == 1 {
		return "1 like"
	}
	return fmt.Sprintf("%s likes", humanize.Comma(int64(n)))
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
