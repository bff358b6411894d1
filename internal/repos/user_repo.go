package repos

import (
	"tradenook/internal/domain"

	"github.com/jmoiron/sqlx"
)

const userCols = `id,username,email,password_hash,is_admin,is_banned,created_at`

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

// ByEmail returns the first account registered under the exact email.
func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE email=? ORDER BY rowid LIMIT 1`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every account in registration order.
func (r *UserRepo) List() ([]domain.User, error) {
	out := []domain.User{}
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM users ORDER BY rowid`)
	return out, err
}

func (r *UserRepo) Create(u *domain.User) error {
	_, err := r.DB.Exec(`
		INSERT INTO users(`+userCols+`)
		VALUES(?,?,?,?,?,?,?)
	`, u.ID, u.Username, u.Email, u.Hash, u.IsAdmin, u.IsBanned, u.CreatedAt.UTC())
	return err
}

// SetBanned flips the ban flag and reports whether the user exists.
func (r *UserRepo) SetBanned(id string, banned bool) (bool, error) {
	res, err := r.DB.Exec(`UPDATE users SET is_banned=? WHERE id=?`, banned, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// MaxNumericID is the highest id that parses as an integer; others count as 0.
func (r *UserRepo) MaxNumericID() (int64, error) {
	var n int64
	err := r.DB.Get(&n, `SELECT COALESCE(MAX(CAST(id AS INTEGER)),0) FROM users`)
	return n, err
}
