package domain

import "time"

// Cart belongs to the order service. UserID is a cross-service
// reference: only the raw identifier is stored, the user itself lives
// in the user service and is fetched at read time.
type Cart struct {
	CartID int `json:"cartId" db:"cart_id"`
	UserID int `json:"userId" db:"user_id"`
}

// Order is an order placed from a cart.
type Order struct {
	OrderID   int       `json:"orderId" db:"order_id"`
	OrderDate time.Time `json:"orderDate" db:"order_date"`
	OrderDesc string    `json:"orderDesc" db:"order_desc"`
	OrderFee  float64   `json:"orderFee" db:"order_fee"`
	CartID    int       `json:"cartId" db:"cart_id"`
}
