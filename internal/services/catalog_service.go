package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"tradenook/internal/domain"
)

// AllCategories is the category filter value that disables filtering.
const AllCategories = "All"

func (d *Directory) Categories() ([]domain.Category, error) {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	return d.store.Categories.List()
}

// ListProducts returns a snapshot of the catalog in insertion order. A
// category other than "" or AllCategories must match exactly; a non-empty
// query must occur in the title or description, ignoring case.
func (d *Directory) ListProducts(category, query string) ([]domain.Product, error) {
	if category == AllCategories {
		category = ""
	}
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	return d.store.Products.Search(category, query)
}

func (d *Directory) GetProduct(id string) (*domain.Product, error) {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	return d.store.product(id)
}

// MyListings returns the signed-in seller's listings.
func (d *Directory) MyListings() ([]domain.Product, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	d.store.mu.Lock()
	defer d.store.mu.Unlock()
	return d.store.Products.BySeller(d.current.ID)
}

// CreateProduct lists an item for the signed-in seller. The listing starts
// unpaid; ConfirmPayment publishes it.
func (d *Directory) CreateProduct(in domain.ProductInput) (*domain.Product, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	if !in.Condition.Valid() {
		return nil, fmt.Errorf("%w: unknown condition %q", ErrValidation, in.Condition)
	}
	if in.Price < 0 || math.IsNaN(in.Price) || math.IsInf(in.Price, 0) {
		return nil, fmt.Errorf("%w: price must be a non-negative amount", ErrValidation)
	}

	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	if _, err := d.store.Categories.ByName(in.Category); err != nil {
		if err = notFound(err); errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, in.Category)
		}
		return nil, err
	}

	p := &domain.Product{
		ID:           d.store.nextProductID(),
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		Category:     in.Category,
		Condition:    in.Condition,
		Location:     in.Location,
		ContactPhone: in.ContactPhone,
		SellerID:     d.current.ID,
		SellerName:   d.current.Username,
		CreatedAt:    d.store.now().UTC(),
	}
	if err := d.store.Products.Insert(p); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// ConfirmPayment charges the listing fee and marks the listing paid. It
// does not check who is paying. A listing that is already paid is not
// charged again and yields an empty receipt.
func (d *Directory) ConfirmPayment(ctx context.Context, id string) (Receipt, error) {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	p, err := d.store.product(id)
	if err != nil {
		return Receipt{}, err
	}
	if p.IsPaid {
		return Receipt{}, nil
	}
	rcpt, err := d.store.payments.Charge(ctx, ListingCharge{ProductID: p.ID, SellerID: p.SellerID, Amount: d.store.listingFee})
	if err != nil {
		return Receipt{}, fmt.Errorf("charge listing %s: %w", p.ID, err)
	}
	ok, err := d.store.Products.MarkPaid(p.ID)
	if err != nil {
		return Receipt{}, err
	}
	if !ok {
		return Receipt{}, ErrNotFound
	}
	return rcpt, nil
}

// MarkSold closes a listing. Only its seller or an admin may do so.
func (d *Directory) MarkSold(id string) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	p, err := d.requireModerator(id)
	if err != nil {
		return err
	}
	ok, err := d.store.Products.MarkSold(p.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// DeleteProduct removes a listing. Only its seller or an admin may do so.
func (d *Directory) DeleteProduct(id string) error {
	d.store.mu.Lock()
	defer d.store.mu.Unlock()

	p, err := d.requireModerator(id)
	if err != nil {
		return err
	}
	ok, err := d.store.Products.Delete(p.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
