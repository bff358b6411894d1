package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"tradenook/internal/domain"
	"tradenook/internal/repos"
)

// DefaultListingFee is what ConfirmPayment charges when no fee is configured.
const DefaultListingFee = 5.00

type Options struct {
	Payments PaymentGateway
	// ListingFee overrides DefaultListingFee when set. Zero means free listings.
	ListingFee      *float64
	VerifyPasswords bool
	Now             func() time.Time
}

// Store owns the marketplace collections. Every Directory operation runs
// under its lock, so operations from concurrent sessions never interleave.
type Store struct {
	Users      *repos.UserRepo
	Products   *repos.ProductRepo
	Categories *repos.CategoryRepo

	payments        PaymentGateway
	listingFee      float64
	verifyPasswords bool
	now             func() time.Time

	mu            sync.Mutex
	lastUserID    int64
	lastProductID int64
}

func NewStore(db *sqlx.DB, opts Options) (*Store, error) {
	if opts.Payments == nil {
		opts.Payments = StubGateway{}
	}
	fee := DefaultListingFee
	if opts.ListingFee != nil {
		if *opts.ListingFee < 0 {
			return nil, fmt.Errorf("%w: listing fee must not be negative", ErrValidation)
		}
		fee = *opts.ListingFee
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Store{
		Users:           repos.NewUserRepo(db),
		Products:        repos.NewProductRepo(db),
		Categories:      repos.NewCategoryRepo(db),
		payments:        opts.Payments,
		listingFee:      fee,
		verifyPasswords: opts.VerifyPasswords,
		now:             opts.Now,
	}

	// Ids keep counting up from the seed and are never handed out twice,
	// even after deletions.
	var err error
	if s.lastUserID, err = s.Users.MaxNumericID(); err != nil {
		return nil, fmt.Errorf("load user ids: %w", err)
	}
	if s.lastProductID, err = s.Products.MaxNumericID(); err != nil {
		return nil, fmt.Errorf("load product ids: %w", err)
	}
	return s, nil
}

// Directory opens a new signed-out session over the store.
func (s *Store) Directory() *Directory {
	return &Directory{store: s}
}

func (s *Store) ListingFee() float64 { return s.listingFee }

func (s *Store) nextUserID() string {
	s.lastUserID++
	return strconv.FormatInt(s.lastUserID, 10)
}

func (s *Store) nextProductID() string {
	s.lastProductID++
	return strconv.FormatInt(s.lastProductID, 10)
}

func (s *Store) product(id string) (*domain.Product, error) {
	p, err := s.Products.Get(id)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *Store) user(id string) (*domain.User, error) {
	u, err := s.Users.ByID(id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// notFound maps a missing row to ErrNotFound and leaves other errors alone.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
