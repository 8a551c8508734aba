package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VAT pricing modes.
const (
	VatModeInclusive = "inclusive"
	VatModeExclusive = "exclusive"
)

// CompanySetting is the single settings row. The transaction engine reads it
// but never writes it; updates go through the admin endpoint.
type CompanySetting struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VatRegistered    bool            `gorm:"not null;default:false"`
	VatRate          decimal.Decimal `gorm:"type:decimal(6,4);not null;default:0.12"`
	VatMode          string          `gorm:"type:varchar(10);not null;default:'inclusive'"`
	VatEffectiveDate *time.Time      `gorm:"type:date"`
	ManagerPinHash   *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// AuditLog is an immutable trail row; manual discounts are audit-logged here
// since there is no usage limit to enforce.
type AuditLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	Action      string    `gorm:"not null;index"`
	EntityType  string    `gorm:"not null"`
	EntityID    uuid.UUID `gorm:"type:uuid;not null"`
	Message     string
	BeforeJSON  *string `gorm:"type:jsonb"`
	AfterJSON   *string `gorm:"type:jsonb"`
	CreatedAt   time.Time
}
