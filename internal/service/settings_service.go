package service

import (
	"context"
	"sync"
	"time"

	"lpgpos/internal/dto"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SettingsService exposes VAT configuration and the manager PIN check. The
// transaction engine treats settings as read-only; Update serves the admin
// endpoint only.
type SettingsService interface {
	Get(ctx context.Context) (*model.CompanySetting, error)
	IsVatActiveForDate(ctx context.Context, date time.Time) (bool, error)
	VerifyManagerPin(ctx context.Context, pin *string) bool
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*model.CompanySetting, error)
}

type settingsService struct {
	repo repository.SettingsRepository

	mu     sync.Mutex
	cached *model.CompanySetting
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (*model.CompanySetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}
	setting, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.cached = setting
	return setting, nil
}

// IsVatActiveForDate is true when the company is VAT registered and the date
// is on or after the effective date (always true when no effective date).
func (s *settingsService) IsVatActiveForDate(ctx context.Context, date time.Time) (bool, error) {
	setting, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if !setting.VatRegistered {
		return false, nil
	}
	if setting.VatEffectiveDate == nil {
		return true, nil
	}
	return date.Format("2006-01-02") >= setting.VatEffectiveDate.Format("2006-01-02"), nil
}

func (s *settingsService) VerifyManagerPin(ctx context.Context, pin *string) bool {
	if pin == nil || *pin == "" {
		return false
	}
	setting, err := s.Get(ctx)
	if err != nil || setting.ManagerPinHash == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*setting.ManagerPinHash), []byte(*pin)) == nil
}

func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*model.CompanySetting, error) {
	setting, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.VatRegistered != nil {
		setting.VatRegistered = *req.VatRegistered
	}
	if req.VatRate != nil {
		rate := *req.VatRate
		if rate.IsNegative() {
			rate = decimal.Zero
		}
		setting.VatRate = rate
	}
	if req.VatMode != nil {
		setting.VatMode = *req.VatMode
	}
	if req.VatEffectiveDate != nil {
		if *req.VatEffectiveDate == "" {
			setting.VatEffectiveDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *req.VatEffectiveDate)
			if err != nil {
				return nil, err
			}
			setting.VatEffectiveDate = &d
		}
	}
	if req.ManagerPin != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.ManagerPin), 12)
		if err != nil {
			return nil, err
		}
		hashStr := string(hash)
		setting.ManagerPinHash = &hashStr
	}

	if err := s.repo.Save(ctx, setting); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = setting
	s.mu.Unlock()
	return setting, nil
}
