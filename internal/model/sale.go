package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	SaleTypeWalkin   = "walkin"
	SaleTypeDelivery = "delivery"

	SaleStatusPaid = "paid"
)

// Sale is the checkout header. Immutable once status=paid except for
// downstream references (receipt, delivery, ledger).
type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleNumber    string    `gorm:"uniqueIndex;not null"`
	SaleType      string    `gorm:"type:varchar(20);not null"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CashierUserID uuid.UUID `gorm:"type:uuid;not null"`
	Status        string    `gorm:"type:varchar(20);not null"`
	SaleDatetime  time.Time `gorm:"not null;index"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	VatTreatment string          `gorm:"type:varchar(20);not null"`
	VatRate      decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0"`
	VatInclusive bool            `gorm:"not null;default:true"`
	VatAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	NetAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GrossAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	VatApplied   bool            `gorm:"not null;default:false"`

	CashTendered *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CashChange   *decimal.Decimal `gorm:"type:decimal(12,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem is one cart line, owned exclusively by its Sale.
type SaleItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductVariantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Qty              decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineNetAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LineVatAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LineGrossAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PricingSource    string          `gorm:"type:varchar(20);not null;default:'manual'"`
	CreatedAt        time.Time

	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID"`
}

// FormatSaleNumber renders SALE-YYYYMMDD-NNNN for the given date and
// per-day sequence.
func FormatSaleNumber(date time.Time, seq int) string {
	return fmt.Sprintf("SALE-%s-%04d", date.Format("20060102"), seq)
}

type Receipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiptNumber string    `gorm:"uniqueIndex;not null"`
	PrintedCount  int       `gorm:"not null;default:0"`
	IssuedAt      time.Time `gorm:"not null"`
	CreatedAt     time.Time
}

// FormatReceiptNumber renders R-NNNNNN.
func FormatReceiptNumber(seq int) string {
	return fmt.Sprintf("R-%06d", seq)
}

// Delivery is the header consumed by the dispatch flow outside this core.
type Delivery struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DailyClose marks a business date as reconciled; sales on or after the
// close are rejected with a LockedPeriodError.
type DailyClose struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BusinessDate   string    `gorm:"type:date;uniqueIndex;not null"`
	ClosedByUserID uuid.UUID `gorm:"type:uuid;not null"`
	ClosedAt       time.Time `gorm:"not null"`
}
