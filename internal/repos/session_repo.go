package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

// SessionRepo remembers which user each browser session (sid cookie) is
// signed in as, so a request can resume its session.
type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Bind(sid, userID string) error {
	now := time.Now().UTC()
	_, err := r.db.Exec(`INSERT INTO sessions(id,user_id,created_at,last_seen)
                          VALUES(?,?,?,?)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=excluded.last_seen`,
		sid, userID, now, now)
	return err
}

// UserID returns the bound user, or sql.ErrNoRows when the sid is signed out.
func (r *SessionRepo) UserID(sid string) (string, error) {
	var id string
	err := r.db.Get(&id, `SELECT user_id FROM sessions WHERE id=? AND user_id IS NOT NULL`, sid)
	return id, err
}

func (r *SessionRepo) Unbind(sid string) error {
	_, err := r.db.Exec(`UPDATE sessions SET user_id=NULL,last_seen=? WHERE id=?`, time.Now().UTC(), sid)
	return err
}
