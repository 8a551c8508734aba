package repository

import (
	"context"
	"errors"
	"time"

	"lpgpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer

	// LockBalanceTx selects the (location, variant) balance row FOR UPDATE,
	// lazily creating a zero row for late-onboarded products. Concurrent
	// sales for the same variant serialize on this lock.
	LockBalanceTx(tx *gorm.DB, locationID, variantID uuid.UUID) (*model.InventoryBalance, error)
	SaveBalanceTx(tx *gorm.DB, b *model.InventoryBalance) error
	CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error

	GetBalance(ctx context.Context, locationID, variantID uuid.UUID) (*model.InventoryBalance, error)
	ListBalances(ctx context.Context, locationID uuid.UUID) ([]model.InventoryBalance, error)

	// ReceiptMovementsAsOf returns all purchase_in movements for the variant
	// with moved_at <= asOf, oldest first.
	ReceiptMovementsAsOf(ctx context.Context, variantID uuid.UUID, asOf time.Time) ([]model.StockMovement, error)

	FirstLocation(ctx context.Context) (*model.Location, error)

	CreateRestockAlert(ctx context.Context, a *model.RestockAlert) error
	HasOpenRestockAlert(ctx context.Context, variantID uuid.UUID) (bool, error)
}

type inventoryRepo struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) InventoryRepository { return &inventoryRepo{db: db} }

func (r *inventoryRepo) DB() *gorm.DB { return r.db }

func (r *inventoryRepo) LockBalanceTx(tx *gorm.DB, locationID, variantID uuid.UUID) (*model.InventoryBalance, error) {
	var b model.InventoryBalance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("location_id = ? AND product_variant_id = ?", locationID, variantID).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		b = model.InventoryBalance{
			LocationID:       locationID,
			ProductVariantID: variantID,
		}
		if err := tx.Create(&b).Error; err != nil {
			return nil, err
		}
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&b, "id = ?", b.ID).Error
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *inventoryRepo) SaveBalanceTx(tx *gorm.DB, b *model.InventoryBalance) error {
	return tx.Save(b).Error
}

func (r *inventoryRepo) CreateMovementTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *inventoryRepo) GetBalance(ctx context.Context, locationID, variantID uuid.UUID) (*model.InventoryBalance, error) {
	var b model.InventoryBalance
	err := r.db.WithContext(ctx).
		Where("location_id = ? AND product_variant_id = ?", locationID, variantID).
		First(&b).Error
	return &b, err
}

func (r *inventoryRepo) ListBalances(ctx context.Context, locationID uuid.UUID) ([]model.InventoryBalance, error) {
	var balances []model.InventoryBalance
	err := r.db.WithContext(ctx).Where("location_id = ?", locationID).Find(&balances).Error
	return balances, err
}

func (r *inventoryRepo) ReceiptMovementsAsOf(ctx context.Context, variantID uuid.UUID, asOf time.Time) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("product_variant_id = ? AND movement_type = ? AND moved_at <= ?",
			variantID, model.MovementPurchaseIn, asOf).
		Order("moved_at ASC").
		Find(&movements).Error
	return movements, err
}

func (r *inventoryRepo) FirstLocation(ctx context.Context) (*model.Location, error) {
	var loc model.Location
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&loc).Error
	return &loc, err
}

func (r *inventoryRepo) CreateRestockAlert(ctx context.Context, a *model.RestockAlert) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *inventoryRepo) HasOpenRestockAlert(ctx context.Context, variantID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RestockAlert{}).
		Where("product_variant_id = ? AND status = 'open'", variantID).
		Count(&count).Error
	return count > 0, err
}
