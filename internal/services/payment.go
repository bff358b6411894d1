package services

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListingCharge is the fee a seller pays to publish one listing.
type ListingCharge struct {
	ProductID string
	SellerID  string
	Amount    float64
}

type Receipt struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	Amount    float64   `json:"amount"`
	PaidAt    time.Time `json:"paidAt"`
}

// PaymentGateway settles listing fees. Implementations should wrap
// ErrPaymentDeclined when the charge is refused.
type PaymentGateway interface {
	Charge(ctx context.Context, ch ListingCharge) (Receipt, error)
}

// StubGateway approves every charge without moving money.
type StubGateway struct{}

func (StubGateway) Charge(ctx context.Context, ch ListingCharge) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	return Receipt{
		ID:        uuid.NewString(),
		ProductID: ch.ProductID,
		Amount:    ch.Amount,
		PaidAt:    time.Now().UTC(),
	}, nil
}
