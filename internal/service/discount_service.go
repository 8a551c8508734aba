package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lpgpos/internal/apierror"
	"lpgpos/internal/dto"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ValidatedDiscount is one priced discount from the validation pass.
type ValidatedDiscount struct {
	Kind         string
	PromoID      *uuid.UUID
	Code         string
	Name         string
	DiscountType string
	Value        decimal.Decimal
	Amount       decimal.Decimal
}

// DiscountSummary is the result of pricing all requested discounts.
type DiscountSummary struct {
	Total decimal.Decimal
	Items []ValidatedDiscount
}

// DiscountService validates discounts as a pure check against current state
// and redeems promo/voucher codes later, inside the sale transaction, under a
// row lock on the voucher.
type DiscountService interface {
	ValidateDiscounts(ctx context.Context, discounts []dto.DiscountRequest, managerPin *string, cashierID uuid.UUID, subtotal decimal.Decimal, saleDate time.Time) (DiscountSummary, error)
	ValidatePromoCode(ctx context.Context, kind, code string, saleDate time.Time) (*model.PromoVoucher, error)
	RedeemDiscountsTx(tx *gorm.DB, sale *model.Sale, items []ValidatedDiscount, cashierID uuid.UUID, saleDate time.Time) error
}

type discountService struct {
	promoRepo repository.PromoRepository
	auditRepo repository.AuditRepository
	settings  SettingsService
}

func NewDiscountService(promoRepo repository.PromoRepository, auditRepo repository.AuditRepository, settings SettingsService) DiscountService {
	return &discountService{promoRepo: promoRepo, auditRepo: auditRepo, settings: settings}
}

var percentHundred = decimal.NewFromInt(100)

// ValidateDiscounts prices the requested discounts against the subtotal.
// Pure check: nothing is mutated. Duplicate codes are rejected, manual
// percents are clamped to [0,100], and the total is capped at the subtotal.
func (s *discountService) ValidateDiscounts(ctx context.Context, discounts []dto.DiscountRequest, managerPin *string, cashierID uuid.UUID, subtotal decimal.Decimal, saleDate time.Time) (DiscountSummary, error) {
	if len(discounts) == 0 {
		return DiscountSummary{Total: decimal.Zero}, nil
	}
	if !subtotal.IsPositive() {
		return DiscountSummary{}, apierror.Validationf("discounts", "discounts cannot be applied without items in the cart")
	}

	seenCodes := make(map[string]bool)
	manualUsed := false
	items := make([]ValidatedDiscount, 0, len(discounts))

	for _, raw := range discounts {
		switch raw.Kind {
		case model.DiscountKindManual:
			manualUsed = true
			item, err := priceManualDiscount(raw, subtotal)
			if err != nil {
				return DiscountSummary{}, err
			}
			items = append(items, item)

		case model.DiscountKindPromo, model.DiscountKindVoucher:
			code := strings.ToUpper(strings.TrimSpace(raw.Code))
			if code == "" {
				return DiscountSummary{}, apierror.Validationf("discounts", "promo or voucher code is required")
			}
			if seenCodes[code] {
				return DiscountSummary{}, apierror.Validationf("discounts", "code %s is already applied", code)
			}
			seenCodes[code] = true

			promo, err := s.ValidatePromoCode(ctx, raw.Kind, code, saleDate)
			if err != nil {
				return DiscountSummary{}, err
			}

			promoID := promo.ID
			items = append(items, ValidatedDiscount{
				Kind:         promo.Kind,
				PromoID:      &promoID,
				Code:         promo.Code,
				Name:         promo.Name,
				DiscountType: promo.DiscountType,
				Value:        promo.Value,
				Amount:       discountAmount(promo.DiscountType, promo.Value, subtotal),
			})

		default:
			return DiscountSummary{}, apierror.Validationf("discounts", "invalid discount type")
		}
	}

	if manualUsed && !s.settings.VerifyManagerPin(ctx, managerPin) {
		return DiscountSummary{}, apierror.Validationf("manager_pin", "invalid manager PIN for manual discounts")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	if total.GreaterThan(subtotal) {
		total = subtotal
	}

	return DiscountSummary{Total: total.Round(2), Items: items}, nil
}

func priceManualDiscount(raw dto.DiscountRequest, subtotal decimal.Decimal) (ValidatedDiscount, error) {
	discountType := raw.DiscountType
	if discountType != model.DiscountTypePercent {
		discountType = model.DiscountTypeAmount
	}

	value := raw.Value
	if !value.IsPositive() {
		return ValidatedDiscount{}, apierror.Validationf("discounts", "manual discount value is required")
	}
	if discountType == model.DiscountTypePercent {
		if value.GreaterThan(percentHundred) {
			value = percentHundred
		}
	}

	return ValidatedDiscount{
		Kind:         model.DiscountKindManual,
		Code:         strings.TrimSpace(raw.Code),
		DiscountType: discountType,
		Value:        value.Round(2),
		Amount:       discountAmount(discountType, value, subtotal),
	}, nil
}

func discountAmount(discountType string, value, subtotal decimal.Decimal) decimal.Decimal {
	var amount decimal.Decimal
	if discountType == model.DiscountTypePercent {
		amount = subtotal.Mul(value).Div(percentHundred)
	} else {
		amount = value
	}
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return amount.Round(2)
}

// ValidatePromoCode checks existence, the active window, the kind match, and
// the usage limit. Read-only; the same conditions run again under lock at
// redemption time.
func (s *discountService) ValidatePromoCode(ctx context.Context, kind, code string, saleDate time.Time) (*model.PromoVoucher, error) {
	promo, err := s.promoRepo.FindByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.Validationf("code", "code %s is not active", code)
	}
	if err != nil {
		return nil, err
	}
	if !promo.IsActiveForDate(saleDate) {
		return nil, apierror.Validationf("code", "code %s is not active", code)
	}
	if promo.Kind != kind {
		return nil, apierror.Validationf("code", "code %s is not a %s", code, kind)
	}
	if promo.LimitReached() {
		return nil, apierror.Validationf("code", "code %s has reached its usage limit", code)
	}
	return promo, nil
}

// RedeemDiscountsTx runs inside the sale transaction. Each voucher row is
// locked FOR UPDATE, re-validated, incremented, and an immutable redemption
// row ties it to the sale. Manual discounts carry no limit and are only
// audit-logged. Any failure aborts the whole sale.
func (s *discountService) RedeemDiscountsTx(tx *gorm.DB, sale *model.Sale, items []ValidatedDiscount, cashierID uuid.UUID, saleDate time.Time) error {
	for _, item := range items {
		if item.Kind == model.DiscountKindManual {
			if err := s.auditManualDiscount(tx, sale, item, cashierID); err != nil {
				return err
			}
			continue
		}
		if item.PromoID == nil {
			continue
		}

		promo, err := s.promoRepo.LockByIDTx(tx, *item.PromoID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.Validationf("discounts", "a promo or voucher was invalidated before checkout")
		}
		if err != nil {
			return err
		}
		if !promo.IsActiveForDate(saleDate) {
			return apierror.Validationf("discounts", "a promo or voucher was invalidated before checkout")
		}
		if promo.LimitReached() {
			return apierror.Validationf("discounts", "code %s reached its usage limit", promo.Code)
		}

		if err := s.promoRepo.IncrementRedeemedTx(tx, promo.ID); err != nil {
			return err
		}
		if err := s.promoRepo.CreateRedemptionTx(tx, &model.PromoRedemption{
			PromoVoucherID: promo.ID,
			SaleID:         sale.ID,
			CashierUserID:  cashierID,
			DiscountAmount: item.Amount,
			RedeemedAt:     saleDate,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (s *discountService) auditManualDiscount(tx *gorm.DB, sale *model.Sale, item ValidatedDiscount, cashierID uuid.UUID) error {
	after, err := json.Marshal(map[string]interface{}{
		"discount_type": item.DiscountType,
		"value":         item.Value,
		"amount":        item.Amount,
		"label":         item.Code,
	})
	if err != nil {
		return err
	}
	afterJSON := string(after)
	return s.auditRepo.CreateTx(tx, &model.AuditLog{
		ActorUserID: cashierID,
		Action:      "sale.manual_discount",
		EntityType:  "Sale",
		EntityID:    sale.ID,
		Message:     fmt.Sprintf("Manual discount applied to Sale %s", sale.SaleNumber),
		AfterJSON:   &afterJSON,
	})
}
