package domain

import "time"

// FavouriteID is the composite key of a favourite. It is a comparable
// value type so it can serve as a map key in tests and callers; there
// is no surrogate id.
type FavouriteID struct {
	UserID    int
	ProductID int
	LikeDate  time.Time
}

// Favourite records that a user liked a product at a point in time.
// Both UserID and ProductID are cross-service references.
type Favourite struct {
	UserID    int       `json:"userId" db:"user_id"`
	ProductID int       `json:"productId" db:"product_id"`
	LikeDate  time.Time `json:"likeDate" db:"like_date"`
}

// ID returns the composite key for the row.
func (f Favourite) ID() FavouriteID {
	return FavouriteID{UserID: f.UserID, ProductID: f.ProductID, LikeDate: f.LikeDate}
}
