package model

import "time"

type DiscountType = string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromoCode is a discount code. UsedCount is incremented atomically at
// redemption time; a code is redeemable only while active, unexpired, under
// its usage cap and above the order's minimum purchase.
type PromoCode struct {
	ID            uint   `gorm:"primaryKey"`
	Code          string `gorm:"size:64;uniqueIndex;not null"` // stored uppercased
	Description   string `gorm:"size:512"`
	DiscountType  string `gorm:"size:16;not null"`
	DiscountValue string `gorm:"size:32;not null"` // decimal-as-string
	MinPurchase   string `gorm:"size:32"`          // decimal-as-string, optional
	MaxUses       *int
	UsedCount     int  `gorm:"not null;default:0"`
	Active        bool `gorm:"not null;default:true"`
	ExpiresAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
