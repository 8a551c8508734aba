package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the tender type accepted at checkout.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentGCash        PaymentMethod = "gcash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentGCash, PaymentCard, PaymentBankTransfer:
		return true
	}
	return false
}

// NeedsReference reports whether the method requires an external reference
// number on the payment row.
func (m PaymentMethod) NeedsReference() bool {
	switch m {
	case PaymentGCash, PaymentCard, PaymentBankTransfer:
		return true
	}
	return false
}

// Payment is created once per sale and never mutated by this core; the
// non-cash verification flow lives outside it.
type Payment struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Method           PaymentMethod   `gorm:"type:varchar(20);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReferenceNo      *string         `gorm:"type:varchar(64)"`
	ReceivedByUserID uuid.UUID       `gorm:"type:uuid;not null"`
	PaidAt           time.Time       `gorm:"not null"`
	CreatedAt        time.Time
}
