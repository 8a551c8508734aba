package repository

import (
	"context"

	"lpgpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Payments ─────────────────────────────────────────────────────────────────

type PaymentRepository interface {
	CreateTx(tx *gorm.DB, p *model.Payment) error
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) CreateTx(tx *gorm.DB, p *model.Payment) error {
	return tx.Create(p).Error
}

// ── Customers ────────────────────────────────────────────────────────────────

type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

// ── Product variants ─────────────────────────────────────────────────────────

type ProductRepository interface {
	FindVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) FindVariantByID(ctx context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).Preload("Product").First(&v, "id = ?", id).Error
	return &v, err
}

// ── Audit log ────────────────────────────────────────────────────────────────

type AuditRepository interface {
	CreateTx(tx *gorm.DB, a *model.AuditLog) error
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) CreateTx(tx *gorm.DB, a *model.AuditLog) error {
	return tx.Create(a).Error
}
