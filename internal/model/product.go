package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product categories with inventory-relevant behavior. LPG products track
// filled and empty containers separately; everything else is a plain count.
const (
	CategoryLPG       = "lpg"
	CategoryAccessory = "accessory"
)

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Category  string    `gorm:"type:varchar(30);not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSwappable reports whether sales of this product move container counts
// (filled out, empty in) rather than a single stock figure.
func (p *Product) IsSwappable() bool {
	return strings.EqualFold(p.Category, CategoryLPG)
}

// ProductVariant is the sellable unit (e.g. an 11kg cylinder of a brand).
type ProductVariant struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU          string          `gorm:"uniqueIndex;not null"`
	Name         string          `gorm:"not null"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SupplierCost is the fallback unit cost for variants with no receipt
	// history yet.
	SupplierCost decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReorderLevel int             `gorm:"not null;default:5"`
	Active       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
}

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"index;not null"`
	Phone     *string
	Address   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
