package repository

import (
	"context"
	"errors"

	"lpgpos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	// Get returns the single settings row, creating the non-registered
	// default on first access.
	Get(ctx context.Context) (*model.CompanySetting, error)
	Save(ctx context.Context, s *model.CompanySetting) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

func (r *settingsRepo) Get(ctx context.Context) (*model.CompanySetting, error) {
	var s model.CompanySetting
	err := r.db.WithContext(ctx).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.CompanySetting{
			VatRegistered: false,
			VatRate:       decimal.NewFromFloat(0.12),
			VatMode:       model.VatModeInclusive,
		}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) Save(ctx context.Context, s *model.CompanySetting) error {
	return r.db.WithContext(ctx).Save(s).Error
}
