package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryBalance is the current quantity on hand per (location, variant).
// It is the read-modify-write target of every sale and receipt; mutations
// happen only under a row lock inside the owning transaction.
type InventoryBalance struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_location_variant"`
	ProductVariantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_balance_location_variant"`
	QtyFilled        int       `gorm:"not null;default:0"`
	QtyEmpty         int       `gorm:"not null;default:0"`
	QtyReserved      int       `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Stock movement types.
const (
	MovementPurchaseIn = "purchase_in"
	MovementSaleOut    = "sale_out"
	MovementAdjustment = "adjustment"
	MovementDamage     = "damage"
)

// StockMovement is an immutable signed-quantity log row. Movements are never
// updated or deleted; corrections are new movements.
type StockMovement struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductVariantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MovementType     string          `gorm:"type:varchar(20);not null"`
	Qty              decimal.Decimal `gorm:"type:decimal(12,3);not null"` // positive = in, negative = out
	// UnitCost is captured on purchase_in movements and feeds the
	// weighted-average costing engine.
	UnitCost          *decimal.Decimal `gorm:"type:decimal(12,4)"`
	ReferenceKind     RefKind          `gorm:"type:varchar(20);not null"`
	ReferenceID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	PerformedByUserID uuid.UUID        `gorm:"type:uuid;not null"`
	MovedAt           time.Time        `gorm:"not null;index"`
	Notes             string
	CreatedAt         time.Time

	ProductVariant *ProductVariant `gorm:"foreignKey:ProductVariantID"`
}

// RestockAlert is raised when a sale depletes a variant to or below its
// reorder level. Advisory only; purchasing acts on it outside this core.
type RestockAlert struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductVariantID uuid.UUID `gorm:"type:uuid;not null;index"`
	LocationID       uuid.UUID `gorm:"type:uuid;not null"`
	QtyFilled        int       `gorm:"not null"`
	ReorderLevel     int       `gorm:"not null"`
	Status           string    `gorm:"type:varchar(20);not null;default:'open'"` // open | resolved
	CreatedAt        time.Time
}
