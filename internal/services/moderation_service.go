package services

import "tradenook/internal/domain"

// ListUsers returns every account. Admin only.
func (d *Directory) ListUsers() ([]domain.User, error) {
	if err := d.requireAdmin(); err != nil {
		return nil, err
	}
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	return d.store.Users.List()
}

// BanUser blocks an account from signing in. Admin only; the target id is
// not looked at until the caller is known to be an admin.
func (d *Directory) BanUser(id string) error {
	return d.setBanned(id, true)
}

func (d *Directory) UnbanUser(id string) error {
	return d.setBanned(id, false)
}

func (d *Directory) setBanned(id string, banned bool) error {
	if err := d.requireAdmin(); err != nil {
		return err
	}
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	ok, err := d.store.Users.SetBanned(id, banned)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
