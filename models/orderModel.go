package models

import "gorm.io/gorm"

const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentMethodCard   = "card"
	PaymentMethodPaypal = "paypal"
	PaymentMethodCrypto = "crypto"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

type Order struct {
	gorm.Model
	UserID     int         `json:"userId" gorm:"index"`
	FullName   string      `json:"fullName"`
	Phone      string      `json:"phone"`
	Address    string      `json:"address"`
	TotalPrice float64     `json:"totalPrice"`
	Status     string      `json:"status"`
	OrderItems []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID"`
	Payments   []Payment   `json:"payments,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem freezes the sneaker's unit price at order time. Rows are never
// updated after creation; later price edits do not touch historical orders.
type OrderItem struct {
	gorm.Model
	OrderID   int     `json:"orderId"`
	SneakerID int     `json:"sneakerId"`
	SizeID    int     `json:"sizeId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Payment struct {
	gorm.Model
	OrderID   int    `json:"orderId" gorm:"index"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	Reference string `json:"reference" gorm:"uniqueIndex"`
}

// ValidPaymentMethod reports whether method is one of the accepted values.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCard, PaymentMethodPaypal, PaymentMethodCrypto:
		return true
	}
	return false
}

// ValidOrderTransition reports whether an order may move from one status to
// the next. Moves are forward-only; cancellation is shut off once the order
// has shipped.
func ValidOrderTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	}
	return false
}
