package repos_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradenook/internal/repos"
)

func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var hashes []string
	require.NoError(t, db.Select(&hashes, `SELECT password_hash FROM users`))
	require.Len(t, hashes, 3)
	for _, h := range hashes {
		assert.False(t, strings.Contains(h, "Passw0rd!"), "hash contains plaintext password")
		assert.True(t, strings.HasPrefix(h, "$2"), "unexpected hash format: %s", h)
		assert.True(t, repos.CheckPassword(h, "Passw0rd!"))
	}
}

func TestSeedContents(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	users, err := repos.NewUserRepo(db).List()
	require.NoError(t, err)
	require.Len(t, users, 3)
	admins := 0
	for _, u := range users {
		if u.IsAdmin {
			admins++
			assert.Equal(t, "3", u.ID)
		}
	}
	assert.Equal(t, 1, admins)

	n, err := repos.NewProductRepo(db).Count()
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	p, err := repos.NewProductRepo(db).Get("3")
	require.NoError(t, err)
	assert.True(t, p.IsSold)
	assert.True(t, p.IsPaid)
	assert.Equal(t, "johndoe", p.SellerName)
	assert.Equal(t, 2023, p.CreatedAt.Year())
}

func TestParseSeedRejectsBrokenData(t *testing.T) {
	_, err := repos.ParseSeed([]byte(`
users:
  - { id: "1", username: a, email: a@x.com, admin: true }
  - { id: "2", username: b, email: b@x.com, admin: true }
`))
	assert.ErrorContains(t, err, "exactly one admin")

	_, err = repos.ParseSeed([]byte(`
users:
  - { id: "1", username: a, email: a@x.com, admin: true }
categories:
  - { id: "1", name: Books }
products:
  - { id: "1", title: t, price: 1, category: Cars, condition: Good, sellerId: "1" }
`))
	assert.ErrorContains(t, err, "unknown category")

	_, err = repos.ParseSeed([]byte(`
users:
  - { id: "1", username: a, email: a@x.com, admin: true }
categories:
  - { id: "1", name: Books }
products:
  - { id: "1", title: t, price: 1, category: Books, condition: Mint, sellerId: "1" }
`))
	assert.ErrorContains(t, err, "invalid condition")

	_, err = repos.ParseSeed([]byte("users: ["))
	assert.Error(t, err)
}

func TestLoadSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
password: pw
users:
  - { id: "10", username: boss, email: boss@x.com, admin: true }
categories:
  - { id: "1", name: Books }
products:
  - { id: "41", title: Dune, price: 8, category: Books, condition: Fair, sellerId: "10" }
`), 0o600))

	seed, err := repos.LoadSeed(path)
	require.NoError(t, err)

	db, err := repos.OpenDBWithSeed(":memory:", seed)
	require.NoError(t, err)
	defer db.Close()

	maxUser, err := repos.NewUserRepo(db).MaxNumericID()
	require.NoError(t, err)
	assert.Equal(t, int64(10), maxUser)

	maxProduct, err := repos.NewProductRepo(db).MaxNumericID()
	require.NoError(t, err)
	assert.Equal(t, int64(41), maxProduct)

	p, err := repos.NewProductRepo(db).Get("41")
	require.NoError(t, err)
	assert.Equal(t, "boss", p.SellerName)

	_, err = repos.LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSessionBinding(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()
	sessions := repos.NewSessionRepo(db)

	_, err = sessions.UserID("sid-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, sessions.Bind("sid-1", "1"))
	uid, err := sessions.UserID("sid-1")
	require.NoError(t, err)
	assert.Equal(t, "1", uid)

	require.NoError(t, sessions.Bind("sid-1", "2"))
	uid, err = sessions.UserID("sid-1")
	require.NoError(t, err)
	assert.Equal(t, "2", uid)

	require.NoError(t, sessions.Unbind("sid-1"))
	_, err = sessions.UserID("sid-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMigrationsEnforceSchema(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	var version int64
	require.NoError(t, db.Get(&version, `SELECT MAX(version_id) FROM goose_db_version`))
	assert.Equal(t, int64(2), version)

	// unknown seller and category are refused by the foreign keys
	_, err = db.Exec(`INSERT INTO products(id, title, price, category, condition, seller_id, seller_name, created_at)
	  VALUES ('x', 'Ghost', 1, 'Electronics', 'New', 'nobody', 'nobody', CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
	_, err = db.Exec(`INSERT INTO products(id, title, price, category, condition, seller_id, seller_name, created_at)
	  VALUES ('x', 'Ghost', 1, 'Spaceships', 'New', '1', 'johndoe', CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
	_, err = db.Exec(`INSERT INTO products(id, title, price, category, condition, seller_id, seller_name, created_at)
	  VALUES ('x', 'Ghost', -1, 'Electronics', 'New', '1', 'johndoe', CURRENT_TIMESTAMP)`)
	assert.Error(t, err)
}
