package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"lpgpos/internal/apierror"
	"lpgpos/internal/dto"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoService covers the manager-side lifecycle of promo and voucher codes.
// Vouchers are never deleted or edited after creation: a bad code is
// discontinued and a replacement issued, so past redemptions keep their terms.
type PromoService interface {
	Create(ctx context.Context, req dto.CreatePromoRequest) (*dto.PromoResponse, error)
	List(ctx context.Context) ([]dto.PromoResponse, error)
	Discontinue(ctx context.Context, id uuid.UUID, byUserID uuid.UUID) error
}

type promoService struct {
	repo repository.PromoRepository
}

func NewPromoService(repo repository.PromoRepository) PromoService {
	return &promoService{repo: repo}
}

func (s *promoService) Create(ctx context.Context, req dto.CreatePromoRequest) (*dto.PromoResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, apierror.Validationf("code", "code is required")
	}
	if _, err := s.repo.FindByCode(ctx, code); err == nil {
		return nil, apierror.Validationf("code", "code %s already exists", code)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if !req.Value.IsPositive() {
		return nil, apierror.Validationf("value", "value must be positive")
	}
	if req.DiscountType == model.DiscountTypePercent && req.Value.GreaterThan(percentHundred) {
		return nil, apierror.Validationf("value", "percent value cannot exceed 100")
	}

	startsAt, err := parseDatePtr(req.StartsAt, "starts_at")
	if err != nil {
		return nil, err
	}
	expiresAt, err := parseDatePtr(req.ExpiresAt, "expires_at")
	if err != nil {
		return nil, err
	}
	if startsAt != nil && expiresAt != nil && expiresAt.Before(*startsAt) {
		return nil, apierror.Validationf("expires_at", "expiry cannot precede the start date")
	}

	promo := &model.PromoVoucher{
		Code:         code,
		Name:         strings.TrimSpace(req.Name),
		Kind:         req.Kind,
		DiscountType: req.DiscountType,
		Value:        req.Value.Round(2),
		UsageLimit:   req.UsageLimit,
		StartsAt:     startsAt,
		ExpiresAt:    expiresAt,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, promo); err != nil {
		return nil, err
	}
	resp := promoResponse(promo)
	return &resp, nil
}

func (s *promoService) List(ctx context.Context) ([]dto.PromoResponse, error) {
	promos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PromoResponse, len(promos))
	for i := range promos {
		resp[i] = promoResponse(&promos[i])
	}
	return resp, nil
}

func (s *promoService) Discontinue(ctx context.Context, id uuid.UUID, byUserID uuid.UUID) error {
	return s.repo.Discontinue(ctx, id, byUserID)
}

func parseDatePtr(raw *string, field string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, apierror.Validationf(field, "invalid date, expected YYYY-MM-DD")
	}
	return &t, nil
}

func promoResponse(p *model.PromoVoucher) dto.PromoResponse {
	var startsAt, expiresAt *string
	if p.StartsAt != nil {
		s := p.StartsAt.Format("2006-01-02")
		startsAt = &s
	}
	if p.ExpiresAt != nil {
		s := p.ExpiresAt.Format("2006-01-02")
		expiresAt = &s
	}
	return dto.PromoResponse{
		ID:            p.ID.String(),
		Code:          p.Code,
		Name:          p.Name,
		Kind:          p.Kind,
		DiscountType:  p.DiscountType,
		Value:         p.Value,
		UsageLimit:    p.UsageLimit,
		TimesRedeemed: p.TimesRedeemed,
		StartsAt:      startsAt,
		ExpiresAt:     expiresAt,
		IsActive:      p.IsActive,
	}
}
