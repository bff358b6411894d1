package domain

import "time"

type Category struct {
	ID   string `db:"id" json:"id" yaml:"id"`
	Name string `db:"name" json:"name" yaml:"name"`
}

// Condition is the wear grade a seller declares for a listing.
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
	ConditionPoor    Condition = "Poor"
)

func Conditions() []Condition {
	return []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor}
}

func (c Condition) Valid() bool {
	for _, v := range Conditions() {
		if c == v {
			return true
		}
	}
	return false
}

type Product struct {
	ID           string    `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Price        float64   `db:"price" json:"price"`
	ImageURL     string    `db:"image_url" json:"imageUrl"`
	Category     string    `db:"category" json:"category"`
	Condition    Condition `db:"condition" json:"condition"`
	Location     string    `db:"location" json:"location"`
	ContactPhone string    `db:"contact_phone" json:"contactPhone"`
	SellerID     string    `db:"seller_id" json:"sellerId"`
	SellerName   string    `db:"seller_name" json:"sellerName"`
	IsSold       bool      `db:"is_sold" json:"isSold"`
	IsPaid       bool      `db:"is_paid" json:"isPaid"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// ProductInput carries the fields a seller supplies when creating a listing.
// Identity, seller, payment and sale state are assigned by the store.
type ProductInput struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"imageUrl"`
	Category     string    `json:"category"`
	Condition    Condition `json:"condition"`
	Location     string    `json:"location"`
	ContactPhone string    `json:"contactPhone"`
}
