package services

import (
	"errors"
	"fmt"

	"tradenook/internal/domain"
	"tradenook/internal/repos"
)

// Directory is one session's view of the marketplace. It holds the signed-in
// user (nil when signed out) and exposes the only sanctioned reads and writes
// of the store. A Directory is meant for one caller at a time; share the
// Store, not the Directory.
type Directory struct {
	store   *Store
	current *domain.User
}

// Authenticate signs in the account registered under email. Passwords are
// only checked against their hash when the store verifies passwords;
// otherwise any non-empty password is accepted. The session is left as it
// was on failure.
func (d *Directory) Authenticate(email, password string) (*domain.User, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	u, err := d.store.Users.ByEmail(email)
	if err != nil {
		return nil, notFound(err)
	}
	if d.store.verifyPasswords {
		if !repos.CheckPassword(u.Hash, password) {
			return nil, ErrBadCreds
		}
	}
	if u.IsBanned {
		return nil, ErrBanned
	}
	d.current = u
	return u, nil
}

// CurrentSession returns the signed-in user, or nil.
func (d *Directory) CurrentSession() *domain.User {
	return d.current
}

// EndSession signs out. Calling it while signed out is a no-op.
func (d *Directory) EndSession() {
	d.current = nil
}

// Register creates a regular account and signs it in. Email and username
// are not required to be unique.
func (d *Directory) Register(username, email, password string) (*domain.User, error) {
	h, err := repos.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	u := &domain.User{
		ID:        d.store.nextUserID(),
		Username:  username,
		Email:     email,
		Hash:      h,
		CreatedAt: d.store.now().UTC(),
	}
	if err := d.store.Users.Create(u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	d.current = u
	return u, nil
}

// Resume re-establishes the session of a previously signed-in user. A
// missing or banned account leaves the directory signed out.
func (d *Directory) Resume(userID string) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	d.current = nil
	u, err := d.store.user(userID)
	if err != nil {
		return err
	}
	if u.IsBanned {
		return ErrBanned
	}
	d.current = u
	return nil
}

// GetUser is a public profile lookup.
func (d *Directory) GetUser(id string) (*domain.User, error) {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	return d.store.user(id)
}

// IsExpected reports whether err is one of the ordinary failure signals
// rather than a store fault.
func IsExpected(err error) bool {
	for _, e := range []error{ErrNotFound, ErrUnauthenticated, ErrUnauthorized, ErrValidation, ErrBanned, ErrBadCreds, ErrPaymentDeclined} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
