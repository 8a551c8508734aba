package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"lpgpos/internal/dto"
	"lpgpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer

	CreateTx(tx *gorm.DB, s *model.Sale) error
	CreateItemTx(tx *gorm.DB, item *model.SaleItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)

	// NextSaleSequenceTx returns the next per-day sale number sequence,
	// derived from today's highest sale_number suffix inside the tx.
	NextSaleSequenceTx(tx *gorm.DB, date time.Time) (int, error)

	CreateReceiptTx(tx *gorm.DB, r *model.Receipt) error
	NextReceiptSequenceTx(tx *gorm.DB) (int, error)
	FindReceiptBySaleID(ctx context.Context, saleID uuid.UUID) (*model.Receipt, error)

	CreateDeliveryTx(tx *gorm.DB, d *model.Delivery) error

	// IsSaleLockedTx reports whether the business date has a daily close row.
	// Runs inside the sale tx so a close cannot slip in mid-checkout.
	IsSaleLockedTx(tx *gorm.DB, businessDate string) (bool, error)
	IsSaleLocked(ctx context.Context, businessDate string) (bool, error)
	CreateDailyCloseTx(tx *gorm.DB, c *model.DailyClose) error
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) CreateItemTx(tx *gorm.DB, item *model.SaleItem) error {
	return tx.Create(item).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items.ProductVariant").First(&s, "id = ?", id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.Date != "" {
		q = q.Where("DATE(sale_datetime) = ?", filter.Date)
	} else {
		q = q.Where("DATE(sale_datetime) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("sale_datetime DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) NextSaleSequenceTx(tx *gorm.DB, date time.Time) (int, error) {
	prefix := "SALE-" + date.Format("20060102") + "-"
	var last model.Sale
	err := tx.Where("sale_number LIKE ?", prefix+"%").
		Order("sale_number DESC").
		First(&last).Error
	if err == gorm.ErrRecordNotFound {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	seq, convErr := strconv.Atoi(strings.TrimPrefix(last.SaleNumber, prefix))
	if convErr != nil {
		return 0, convErr
	}
	return seq + 1, nil
}

func (r *saleRepo) CreateReceiptTx(tx *gorm.DB, rec *model.Receipt) error {
	return tx.Create(rec).Error
}

func (r *saleRepo) NextReceiptSequenceTx(tx *gorm.DB) (int, error) {
	var last model.Receipt
	err := tx.Order("receipt_number DESC").First(&last).Error
	if err == gorm.ErrRecordNotFound {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	seq, convErr := strconv.Atoi(strings.TrimPrefix(last.ReceiptNumber, "R-"))
	if convErr != nil {
		return 0, convErr
	}
	return seq + 1, nil
}

func (r *saleRepo) FindReceiptBySaleID(ctx context.Context, saleID uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).First(&rec, "sale_id = ?", saleID).Error
	return &rec, err
}

func (r *saleRepo) CreateDeliveryTx(tx *gorm.DB, d *model.Delivery) error {
	return tx.Create(d).Error
}

func (r *saleRepo) IsSaleLockedTx(tx *gorm.DB, businessDate string) (bool, error) {
	var count int64
	err := tx.Model(&model.DailyClose{}).Where("business_date = ?", businessDate).Count(&count).Error
	return count > 0, err
}

func (r *saleRepo) IsSaleLocked(ctx context.Context, businessDate string) (bool, error) {
	return r.IsSaleLockedTx(r.db.WithContext(ctx), businessDate)
}

func (r *saleRepo) CreateDailyCloseTx(tx *gorm.DB, c *model.DailyClose) error {
	return tx.Create(c).Error
}
