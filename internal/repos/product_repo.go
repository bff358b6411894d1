package repos

import (
	"strings"

	"tradenook/internal/domain"

	"github.com/jmoiron/sqlx"
)

const productCols = `id, title, description, price, image_url, category, condition, location,
    contact_phone, seller_id, seller_name, is_sold, is_paid, created_at`

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// Search filters the catalog in insertion order. An empty category skips
// the category filter; a non-empty query must appear in the title or the
// description, ignoring case.
func (r *ProductRepo) Search(category, query string) ([]domain.Product, error) {
	where := `1 = 1`
	args := []any{}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}

	var rows []domain.Product
	if err := r.db.Select(&rows, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY rowid`, args...); err != nil {
		return nil, err
	}

	// SQLite's lower() only folds ASCII, so the text match happens here.
	out := make([]domain.Product, 0, len(rows))
	q := strings.ToLower(query)
	for _, p := range rows {
		if q == "" || strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) BySeller(sellerID string) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE seller_id = ? ORDER BY rowid`, sellerID)
	return out, err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func (r *ProductRepo) Insert(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(`+productCols+`)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, p.ID, p.Title, p.Description, p.Price, p.ImageURL, p.Category, string(p.Condition), p.Location,
		p.ContactPhone, p.SellerID, p.SellerName, p.IsSold, p.IsPaid, p.CreatedAt.UTC())
	return err
}

// MarkPaid sets is_paid and reports whether the listing exists.
func (r *ProductRepo) MarkPaid(id string) (bool, error) {
	return r.update(`UPDATE products SET is_paid = 1 WHERE id = ?`, id)
}

// MarkSold sets is_sold and reports whether the listing exists.
func (r *ProductRepo) MarkSold(id string) (bool, error) {
	return r.update(`UPDATE products SET is_sold = 1 WHERE id = ?`, id)
}

func (r *ProductRepo) Delete(id string) (bool, error) {
	return r.update(`DELETE FROM products WHERE id = ?`, id)
}

func (r *ProductRepo) update(query, id string) (bool, error) {
	res, err := r.db.Exec(query, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *ProductRepo) MaxNumericID() (int64, error) {
	var n int64
	err := r.db.Get(&n, `SELECT COALESCE(MAX(CAST(id AS INTEGER)),0) FROM products`)
	return n, err
}
