package repository

import (
	"context"

	"lpgpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromoRepository interface {
	FindByCode(ctx context.Context, code string) (*model.PromoVoucher, error)
	// LockByIDTx selects the voucher row FOR UPDATE; redemption re-validates
	// and increments under this lock so usage_limit holds across concurrent
	// checkouts.
	LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PromoVoucher, error)
	IncrementRedeemedTx(tx *gorm.DB, id uuid.UUID) error
	CreateRedemptionTx(tx *gorm.DB, r *model.PromoRedemption) error

	Create(ctx context.Context, p *model.PromoVoucher) error
	List(ctx context.Context) ([]model.PromoVoucher, error)
	Discontinue(ctx context.Context, id uuid.UUID, byUserID uuid.UUID) error
}

type promoRepo struct{ db *gorm.DB }

func NewPromoRepository(db *gorm.DB) PromoRepository { return &promoRepo{db: db} }

func (r *promoRepo) FindByCode(ctx context.Context, code string) (*model.PromoVoucher, error) {
	var p model.PromoVoucher
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&p).Error
	return &p, err
}

func (r *promoRepo) LockByIDTx(tx *gorm.DB, id uuid.UUID) (*model.PromoVoucher, error) {
	var p model.PromoVoucher
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *promoRepo) IncrementRedeemedTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.PromoVoucher{}).
		Where("id = ?", id).
		UpdateColumn("times_redeemed", gorm.Expr("times_redeemed + 1")).Error
}

func (r *promoRepo) CreateRedemptionTx(tx *gorm.DB, red *model.PromoRedemption) error {
	return tx.Create(red).Error
}

func (r *promoRepo) Create(ctx context.Context, p *model.PromoVoucher) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *promoRepo) List(ctx context.Context) ([]model.PromoVoucher, error) {
	var promos []model.PromoVoucher
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&promos).Error
	return promos, err
}

func (r *promoRepo) Discontinue(ctx context.Context, id uuid.UUID, byUserID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PromoVoucher{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":                false,
			"discontinued_at":          gorm.Expr("NOW()"),
			"discontinued_by_user_id":  byUserID,
		}).Error
}
