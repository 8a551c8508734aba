package service

import (
	"context"
	"testing"
	"time"

	"lpgpos/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totalsFixture() (SaleTotalsService, *stubSettingsRepo) {
	settingsRepo := newStubSettingsRepo()
	return NewSaleTotalsService(NewSettingsService(settingsRepo)), settingsRepo
}

func cartLines(prices ...string) []dto.CheckoutLineRequest {
	lines := make([]dto.CheckoutLineRequest, 0, len(prices))
	for _, p := range prices {
		lines = append(lines, dto.CheckoutLineRequest{Qty: dec("1"), UnitPrice: dec(p)})
	}
	return lines
}

func TestCalculateTotals_InclusiveVat(t *testing.T) {
	svc, _ := totalsFixture()

	totals, err := svc.CalculateTotals(context.Background(), cartLines("950.00", "170.00"), dec("0"), time.Now())
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(dec("1120.00")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.VatAmount.Equal(dec("120.00")), "vat %s", totals.VatAmount)
	assert.True(t, totals.NetAmount.Equal(dec("1000.00")), "net %s", totals.NetAmount)
	assert.True(t, totals.GrandTotal.Equal(dec("1120.00")), "grand %s", totals.GrandTotal)
	assert.True(t, totals.VatInclusive)
	assert.True(t, totals.VatApplied)
	assert.Equal(t, TreatmentVatable, totals.VatTreatment)
}

func TestCalculateTotals_DiscountDoesNotChangeVatBase(t *testing.T) {
	svc, _ := totalsFixture()

	withDiscount, err := svc.CalculateTotals(context.Background(), cartLines("1120.00"), dec("100.00"), time.Now())
	require.NoError(t, err)
	without, err := svc.CalculateTotals(context.Background(), cartLines("1120.00"), dec("0"), time.Now())
	require.NoError(t, err)

	// VAT is computed over the full pre-discount subtotal.
	assert.True(t, withDiscount.VatAmount.Equal(without.VatAmount))
	assert.True(t, withDiscount.GrandTotal.Equal(without.GrandTotal))
	assert.True(t, withDiscount.DiscountTotal.Equal(dec("100.00")))
}

func TestCalculateTotals_ReconcilesWithLineVat(t *testing.T) {
	svc, _ := totalsFixture()
	ctx := context.Background()

	lines := cartLines("950.00", "170.00", "33.33")
	totals, err := svc.CalculateTotals(ctx, lines, dec("0"), time.Now())
	require.NoError(t, err)

	lineGross := dec("0")
	for _, l := range lines {
		r, err := svc.CalculateLineVat(l.Qty.Mul(l.UnitPrice), totals.VatRate, totals.VatInclusive, totals.VatTreatment)
		require.NoError(t, err)
		lineGross = lineGross.Add(r.Gross)
	}

	assert.True(t, totals.GrandTotal.Equal(lineGross), "grand %s vs lines %s", totals.GrandTotal, lineGross)
}

func TestCalculateTotals_VatNotRegistered(t *testing.T) {
	svc, settingsRepo := totalsFixture()
	settingsRepo.setting.VatRegistered = false

	totals, err := svc.CalculateTotals(context.Background(), cartLines("1120.00"), dec("0"), time.Now())
	require.NoError(t, err)

	assert.True(t, totals.VatAmount.IsZero())
	assert.True(t, totals.NetAmount.Equal(dec("1120.00")))
	assert.True(t, totals.GrandTotal.Equal(dec("1120.00")))
	assert.False(t, totals.VatApplied)
	assert.Equal(t, TreatmentExempt, totals.VatTreatment)
}

func TestCalculateTotals_VatEffectiveDateGate(t *testing.T) {
	svc, settingsRepo := totalsFixture()
	effective := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	settingsRepo.setting.VatEffectiveDate = &effective

	before, err := svc.CalculateTotals(context.Background(), cartLines("1120.00"), dec("0"),
		time.Date(2026, 2, 28, 18, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, before.VatApplied)
	assert.True(t, before.VatAmount.IsZero())

	after, err := svc.CalculateTotals(context.Background(), cartLines("1120.00"), dec("0"),
		time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, after.VatApplied)
	assert.True(t, after.VatAmount.Equal(dec("120.00")))
}
