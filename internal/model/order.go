package model

import "time"

type OrderStatus = string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusFailed    OrderStatus = "failed"
)

// Order is one purchase attempt. Customer details are denormalized because
// the purchaser may be a guest with no user row.
type Order struct {
	ID            uint   `gorm:"primaryKey"`
	UserID        *uint  `gorm:"index"`
	PackageName   string `gorm:"size:255;not null"`
	Amount        string `gorm:"size:32;not null"` // decimal-as-string, e.g. "199.00"
	Currency      string `gorm:"size:8;not null"`  // 3-letter code
	PaypalOrderID string `gorm:"size:64;index"`
	PaypalPayerID string `gorm:"size:64"`
	Status        string `gorm:"size:32;index;not null;default:pending"`
	CustomerName  string `gorm:"size:255"`
	CustomerEmail string `gorm:"size:255;index"`
	CustomerPhone string `gorm:"size:64"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Terminal reports whether the order has left the pending state. Terminal
// orders are never moved back to pending through the public API.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusCompleted ||
		o.Status == OrderStatusCancelled ||
		o.Status == OrderStatusFailed
}
