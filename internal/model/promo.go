package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount kinds and value types.
const (
	DiscountKindPromo   = "promo"
	DiscountKindVoucher = "voucher"
	DiscountKindManual  = "manual"

	DiscountTypePercent = "percent"
	DiscountTypeAmount  = "amount"
)

// PromoVoucher is a redeemable code. TimesRedeemed only ever increases and is
// bumped under a row lock so UsageLimit holds across concurrent checkouts.
type PromoVoucher struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code                 string          `gorm:"uniqueIndex;not null"`
	Name                 string          `gorm:"not null"`
	Kind                 string          `gorm:"type:varchar(10);not null"` // promo | voucher
	DiscountType         string          `gorm:"type:varchar(10);not null"` // percent | amount
	Value                decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UsageLimit           *int
	TimesRedeemed        int `gorm:"not null;default:0"`
	StartsAt             *time.Time
	ExpiresAt            *time.Time
	IsActive             bool `gorm:"not null;default:true"`
	DiscontinuedAt       *time.Time
	DiscontinuedByUserID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsActiveForDate checks the active flag and the starts_at/expires_at window.
func (p *PromoVoucher) IsActiveForDate(date time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.StartsAt != nil && date.Before(*p.StartsAt) {
		return false
	}
	if p.ExpiresAt != nil && date.After(*p.ExpiresAt) {
		return false
	}
	return true
}

// LimitReached reports whether the usage limit, when set, is exhausted.
func (p *PromoVoucher) LimitReached() bool {
	return p.UsageLimit != nil && p.TimesRedeemed >= *p.UsageLimit
}

// PromoRedemption is the immutable audit row linking a Sale to a Voucher.
type PromoRedemption struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PromoVoucherID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	CashierUserID  uuid.UUID       `gorm:"type:uuid;not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RedeemedAt     time.Time       `gorm:"not null"`
	CreatedAt      time.Time
}
