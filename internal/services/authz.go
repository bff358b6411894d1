package services

import "tradenook/internal/domain"

// IsAdmin reports whether u may run admin-only moderation.
func IsAdmin(u *domain.User) bool {
	return u != nil && u.IsAdmin
}

// CanModerate reports whether u may mark p sold or delete it: the seller
// or any admin.
func CanModerate(u *domain.User, p *domain.Product) bool {
	if u == nil || p == nil {
		return false
	}
	return u.ID == p.SellerID || u.IsAdmin
}

func (d *Directory) requireSession() error {
	if d.current == nil {
		return ErrUnauthenticated
	}
	return nil
}

func (d *Directory) requireAdmin() error {
	if err := d.requireSession(); err != nil {
		return err
	}
	if !IsAdmin(d.current) {
		return ErrUnauthorized
	}
	return nil
}

// requireModerator loads the listing and checks CanModerate against it.
// Caller holds the store lock.
func (d *Directory) requireModerator(productID string) (*domain.Product, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	p, err := d.store.product(productID)
	if err != nil {
		return nil, err
	}
	if !CanModerate(d.current, p) {
		return nil, ErrUnauthorized
	}
	return p, nil
}
