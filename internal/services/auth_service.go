package services

import (
	"database/sql"
	"errors"

	"tradenook/internal/domain"
	"tradenook/internal/repos"
)

// AuthService ties browser sessions (sid cookies) to Directory sessions.
type AuthService struct {
	Store    *Store
	Sessions *repos.SessionRepo
}

// Directory resumes the session bound to sid. An unknown sid, or a user who
// has since been banned, yields a signed-out directory.
func (s *AuthService) Directory(sid string) (*Directory, error) {
	d := s.Store.Directory()
	if sid == "" {
		return d, nil
	}
	uid, err := s.Sessions.UserID(sid)
	if errors.Is(err, sql.ErrNoRows) {
		return d, nil
	}
	if err != nil {
		return nil, err
	}
	if err := d.Resume(uid); err != nil && !IsExpected(err) {
		return nil, err
	}
	return d, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Store.Directory().Authenticate(email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Bind(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Register(sid, username, email, password string) (*domain.User, error) {
	u, err := s.Store.Directory().Register(username, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Bind(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.Unbind(sid)
}

// CurrentUser is the signed-in user for sid, or nil.
func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	d, err := s.Directory(sid)
	if err != nil {
		return nil, err
	}
	return d.CurrentSession(), nil
}
