package repository

import (
	"context"

	"lpgpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LedgerRepository interface {
	// FindEntryByReferenceTx makes posting idempotent per business document.
	FindEntryByReferenceTx(tx *gorm.DB, kind model.RefKind, id uuid.UUID) (*model.LedgerEntry, error)
	CreateEntryTx(tx *gorm.DB, e *model.LedgerEntry) error
	FindAccountByCode(ctx context.Context, code model.AccountCode) (*model.ChartOfAccount, error)
	ListEntriesByDate(ctx context.Context, date string) ([]model.LedgerEntry, error)
}

type ledgerRepo struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) LedgerRepository { return &ledgerRepo{db: db} }

func (r *ledgerRepo) FindEntryByReferenceTx(tx *gorm.DB, kind model.RefKind, id uuid.UUID) (*model.LedgerEntry, error) {
	var e model.LedgerEntry
	err := tx.Preload("Lines").
		Where("reference_kind = ? AND reference_id = ?", kind, id).
		First(&e).Error
	return &e, err
}

// CreateEntryTx writes the header and its lines atomically; callers already
// hold the sale transaction.
func (r *ledgerRepo) CreateEntryTx(tx *gorm.DB, e *model.LedgerEntry) error {
	return tx.Create(e).Error
}

func (r *ledgerRepo) FindAccountByCode(ctx context.Context, code model.AccountCode) (*model.ChartOfAccount, error) {
	var a model.ChartOfAccount
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&a).Error
	return &a, err
}

func (r *ledgerRepo) ListEntriesByDate(ctx context.Context, date string) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := r.db.WithContext(ctx).Preload("Lines").
		Where("entry_date = ?", date).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
