package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"tradenook/internal/repos/migrations"
)

// OpenDB opens the store with the embedded demo seed.
func OpenDB(dsn string) (*sqlx.DB, error) {
	seed, err := DefaultSeed()
	if err != nil {
		return nil, err
	}
	return OpenDBWithSeed(dsn, seed)
}

func OpenDBWithSeed(dsn string, seed Seed) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	// Reference data and accounts (idempotent; safe to run every start)
	if err := seedUsers(db, seed); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := seedCategories(db, seed); err != nil {
		_ = db.Close()
		return nil, err
	}
	// Listings only go into an empty catalog
	if err := seedProductsIfEmpty(db, seed); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// migrateUp applies the embedded schema migrations. Foreign keys are
// switched on first since SQLite ignores the pragma inside a transaction.
func migrateUp(db *sqlx.DB) error {
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return err
	}
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.Up(db.DB, ".")
}

// seedUsers ensures the demo accounts exist.
func seedUsers(db *sqlx.DB, seed Seed) error {
	h, err := HashPassword(seed.Password)
	if err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range seed.Users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,username,email,password_hash,is_admin,is_banned,created_at)
			VALUES(?,?,?,?,?,?,?)
			ON CONFLICT(id) DO NOTHING
		`, u.ID, u.Username, u.Email, h, u.Admin, u.Banned, u.CreatedAt.UTC()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func seedCategories(db *sqlx.DB, seed Seed) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range seed.Categories {
		if _, err := tx.Exec(`INSERT INTO categories(id,name) VALUES(?,?) ON CONFLICT DO NOTHING`, c.ID, c.Name); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func seedProductsIfEmpty(db *sqlx.DB, seed Seed) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Printf("[seed] inserting %d demo listings", len(seed.Products))

	names := map[string]string{}
	for _, u := range seed.Users {
		names[u.ID] = u.Username
	}

	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range seed.Products {
		if _, err := tx.Exec(`
			INSERT INTO products(id,title,description,price,image_url,category,condition,location,
			  contact_phone,seller_id,seller_name,is_sold,is_paid,created_at)
			VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		`, p.ID, p.Title, p.Description, p.Price, p.ImageURL, p.Category, p.Condition, p.Location,
			p.ContactPhone, p.SellerID, names[p.SellerID], p.Sold, p.Paid, p.CreatedAt.UTC()); err != nil {
			return err
		}
	}
	return tx.Commit()
}
