package domain

import "time"

type User struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Hash      string    `db:"password_hash" json:"-"`
	IsAdmin   bool      `db:"is_admin" json:"isAdmin"`
	IsBanned  bool      `db:"is_banned" json:"isBanned"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
