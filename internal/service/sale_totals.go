package service

import (
	"context"
	"time"

	"lpgpos/internal/dto"
	"lpgpos/internal/model"

	"github.com/shopspring/decimal"
)

// SaleTotals is everything the orchestrator needs to write the sale header.
type SaleTotals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	VatAmount     decimal.Decimal
	NetAmount     decimal.Decimal
	GrossAmount   decimal.Decimal
	GrandTotal    decimal.Decimal
	VatRate       decimal.Decimal
	VatInclusive  bool
	VatTreatment  VatTreatment
	VatApplied    bool
}

// SaleTotalsService resolves the effective VAT configuration for a sale date
// and prices the cart with it.
type SaleTotalsService interface {
	CalculateTotals(ctx context.Context, lines []dto.CheckoutLineRequest, discountTotal decimal.Decimal, saleDate time.Time) (SaleTotals, error)
	CalculateLineVat(lineAmount, rate decimal.Decimal, inclusive bool, treatment VatTreatment) (VatResult, error)
}

type saleTotalsService struct {
	settings SettingsService
}

func NewSaleTotalsService(settings SettingsService) SaleTotalsService {
	return &saleTotalsService{settings: settings}
}

// CartSubtotal is the pre-discount, pre-tax sum of qty × unit_price.
func CartSubtotal(lines []dto.CheckoutLineRequest) decimal.Decimal {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Qty.Mul(line.UnitPrice))
	}
	return subtotal
}

func (s *saleTotalsService) CalculateTotals(ctx context.Context, lines []dto.CheckoutLineRequest, discountTotal decimal.Decimal, saleDate time.Time) (SaleTotals, error) {
	// VAT is computed over the full pre-discount subtotal so that the sale
	// total always reconciles with the per-line VAT splits; the discount is
	// recorded on the header and redeemed against the vouchers.
	subtotal := CartSubtotal(lines)

	setting, err := s.settings.Get(ctx)
	if err != nil {
		return SaleTotals{}, err
	}
	vatActive, err := s.settings.IsVatActiveForDate(ctx, saleDate)
	if err != nil {
		return SaleTotals{}, err
	}

	treatment := TreatmentExempt
	rate := decimal.Zero
	if vatActive {
		treatment = TreatmentVatable
		rate = setting.VatRate
	}
	inclusive := setting.VatMode != model.VatModeExclusive

	result, err := CalculateVAT(subtotal, rate, inclusive, treatment)
	if err != nil {
		return SaleTotals{}, err
	}

	return SaleTotals{
		Subtotal:      subtotal,
		DiscountTotal: discountTotal,
		VatAmount:     result.Vat,
		NetAmount:     result.Net,
		GrossAmount:   result.Gross,
		GrandTotal:    result.Gross,
		VatRate:       result.RateUsed,
		VatInclusive:  result.Inclusive,
		VatTreatment:  result.Treatment,
		VatApplied:    vatActive && result.Treatment == TreatmentVatable && result.Vat.IsPositive(),
	}, nil
}

func (s *saleTotalsService) CalculateLineVat(lineAmount, rate decimal.Decimal, inclusive bool, treatment VatTreatment) (VatResult, error) {
	return CalculateVAT(lineAmount, rate, inclusive, treatment)
}
