package domain

// PaymentStatus enumerates the lifecycle of a payment.
type PaymentStatus string

const (
	PaymentNotStarted PaymentStatus = "NOT_STARTED"
	PaymentInProgress PaymentStatus = "IN_PROGRESS"
	PaymentCompleted  PaymentStatus = "COMPLETED"
)

// Payment belongs to the payment service. OrderID is a cross-service
// reference into the order service.
type Payment struct {
	PaymentID     int           `json:"paymentId" db:"payment_id"`
	OrderID       int           `json:"orderId" db:"order_id"`
	IsPayed       bool          `json:"isPayed" db:"is_payed"`
	PaymentStatus PaymentStatus `json:"paymentStatus" db:"payment_status"`
}
