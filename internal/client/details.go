package client

import "time"

// UserDetail is the user service's outward representation of a user.
type UserDetail struct {
	UserID    int    `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	ImageURL  string `json:"imageUrl"`
}

// ProductDetail is the product service's outward representation of a
// product.
type ProductDetail struct {
	ProductID int     `json:"productId"`
	Title     string  `json:"title"`
	ImageURL  string  `json:"imageUrl"`
	SKU       string  `json:"sku"`
	PriceUnit float64 `json:"priceUnit"`
	Quantity  int     `json:"quantity"`
}

// OrderDetail is the order service's outward representation of an
// order.
type OrderDetail struct {
	OrderID   int       `json:"orderId"`
	OrderDate time.Time `json:"orderDate"`
	OrderDesc string    `json:"orderDesc"`
	OrderFee  float64   `json:"orderFee"`
}
