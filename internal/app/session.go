package app

import (
	"errors"
	"fmt"

	"github.com/soundclone/soundclone/internal/api"
	"github.com/soundclone/soundclone/internal/catalog"
)

// ErrNoSession is returned by operations that need an authenticated user.
var ErrNoSession = errors.New("not logged in")

// Restore resumes the server session from the stored cookie, if any.
// Returns ok=false without error when no session exists.
func (s *Service) Restore() (catalog.SessionUser, bool, error) {
	session, user, err := s.api.Restore()
	if errors.Is(err, api.ErrUnauthorized) {
		return catalog.SessionUser{}, false, nil
	}
	if err != nil {
		return catalog.SessionUser{}, false, fmt.Errorf("restore session: %w", err)
	}

	s.beginSession(session, user)
	return session, true, nil
}

// Login authenticates with email and password and loads the user's likes.
func (s *Service) Login(email, password string) (catalog.SessionUser, error) {
	session, user, err := s.api.Login(email, password)
	if err != nil {
		return catalog.SessionUser{}, err
	}

	s.beginSession(session, user)
	return session, nil
}

// Signup registers a new account and starts its session.
func (s *Service) Signup(username, email, password string) (catalog.SessionUser, error) {
	session, user, err := s.api.Signup(username, email, password)
	if err != nil {
		return catalog.SessionUser{}, err
	}

	s.beginSession(session, user)
	return session, nil
}

// Logout ends the server session and clears all session-scoped state,
// including the likes set. Cached entities survive; they are public data.
func (s *Service) Logout() error {
	if err := s.api.Logout(); err != nil {
		return fmt.Errorf("log out: %w", err)
	}
	s.cache.ClearSession()
	s.log.Info().Msg("logged out")
	return nil
}

func (s *Service) beginSession(session catalog.SessionUser, user catalog.User) {
	s.cache.SetSession(session)
	s.cache.UpsertUser(user)
	s.log.Info().Int64("user_id", int64(session.ID)).Str("username", session.Username).Msg("session started")

	// Likes are session state; load them eagerly so Liked() is meaningful
	// from the first render. Missing likes are not fatal to the session.
	if err := s.FetchLikedSongs(); err != nil {
		s.log.Warn().Err(err).Msg("load likes after login")
	}
}
