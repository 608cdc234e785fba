package domain

// OrderItemID is the composite key of an order item.
type OrderItemID struct {
	ProductID int
	OrderID   int
}

// OrderItem belongs to the shipping service. Both ProductID and
// OrderID are cross-service references.
type OrderItem struct {
	ProductID       int `json:"productId" db:"product_id"`
	OrderID         int `json:"orderId" db:"order_id"`
	OrderedQuantity int `json:"orderedQuantity" db:"ordered_quantity"`
}

// ID returns the composite key for the row.
func (o OrderItem) ID() OrderItemID {
	return OrderItemID{ProductID: o.ProductID, OrderID: o.OrderID}
}
