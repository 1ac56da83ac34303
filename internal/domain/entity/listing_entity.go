package entity

import "time"

// Listing is an ad owned by exactly one seller.
type Listing struct {
	ID          string
	SellerID    string
	Title       string
	Desc        string
	Price       float64
	MinOrderQty int
	Stock       int
	ImageURLs   []string
	CreatedAt   time.Time
}

// ListingDetail pairs a listing with the seller that owns it.
type ListingDetail struct {
	Listing Listing
	Seller  User
}
