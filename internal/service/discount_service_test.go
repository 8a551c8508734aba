package service

import (
	"context"
	"testing"
	"time"

	"lpgpos/internal/apierror"
	"lpgpos/internal/dto"
	"lpgpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscountFixture() (DiscountService, *stubPromoRepo, *stubAuditRepo, *stubSettingsRepo) {
	promoRepo := newStubPromoRepo()
	auditRepo := &stubAuditRepo{}
	settingsRepo := newStubSettingsRepo()
	settings := NewSettingsService(settingsRepo)
	return NewDiscountService(promoRepo, auditRepo, settings), promoRepo, auditRepo, settingsRepo
}

func activeVoucher(code string, discountType, value string, limit *int) *model.PromoVoucher {
	return &model.PromoVoucher{
		Code:         code,
		Name:         "Test " + code,
		Kind:         model.DiscountKindVoucher,
		DiscountType: discountType,
		Value:        dec(value),
		UsageLimit:   limit,
		IsActive:     true,
	}
}

func TestValidateDiscounts_PercentVoucher(t *testing.T) {
	svc, promoRepo, _, _ := newDiscountFixture()
	promoRepo.add(activeVoucher("SUMMER10", model.DiscountTypePercent, "10", nil))

	summary, err := svc.ValidateDiscounts(context.Background(), []dto.DiscountRequest{
		{Kind: model.DiscountKindVoucher, Code: "summer10"},
	}, nil, uuid.New(), dec("1000.00"), time.Now())
	require.NoError(t, err)

	assert.True(t, summary.Total.Equal(dec("100.00")), "total %s", summary.Total)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "SUMMER10", summary.Items[0].Code)
}

func TestValidateDiscounts_DuplicateCodeRejected(t *testing.T) {
	svc, promoRepo, _, _ := newDiscountFixture()
	promoRepo.add(activeVoucher("ONCE", model.DiscountTypeAmount, "50", nil))

	_, err := svc.ValidateDiscounts(context.Background(), []dto.DiscountRequest{
		{Kind: model.DiscountKindVoucher, Code: "ONCE"},
		{Kind: model.DiscountKindVoucher, Code: "once"},
	}, nil, uuid.New(), dec("1000.00"), time.Now())

	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestValidateDiscounts_TotalCappedAtSubtotal(t *testing.T) {
	svc, promoRepo, _, _ := newDiscountFixture()
	promoRepo.add(activeVoucher("BIG", model.DiscountTypeAmount, "5000", nil))

	summary, err := svc.ValidateDiscounts(context.Background(), []dto.DiscountRequest{
		{Kind: model.DiscountKindVoucher, Code: "BIG"},
	}, nil, uuid.New(), dec("1200.00"), time.Now())
	require.NoError(t, err)

	assert.True(t, summary.Total.Equal(dec("1200.00")), "total %s", summary.Total)
}

func TestValidateDiscounts_ManualNeedsManagerPin(t *testing.T) {
	svc, _, _, settingsRepo := newDiscountFixture()
	settingsRepo.setting.ManagerPinHash = mustHash("4321")

	req := []dto.DiscountRequest{
		{Kind: model.DiscountKindManual, DiscountType: model.DiscountTypeAmount, Value: dec("100")},
	}

	_, err := svc.ValidateDiscounts(context.Background(), req, nil, uuid.New(), dec("1000.00"), time.Now())
	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "manager_pin")

	pin := "4321"
	summary, err := svc.ValidateDiscounts(context.Background(), req, &pin, uuid.New(), dec("1000.00"), time.Now())
	require.NoError(t, err)
	assert.True(t, summary.Total.Equal(dec("100.00")))
}

func TestValidatePromoCode_InactiveAndExpired(t *testing.T) {
	svc, promoRepo, _, _ := newDiscountFixture()

	inactive := activeVoucher("OFF", model.DiscountTypeAmount, "50", nil)
	inactive.IsActive = false
	promoRepo.add(inactive)

	expired := activeVoucher("OLD", model.DiscountTypeAmount, "50", nil)
	past := time.Now().Add(-48 * time.Hour)
	expired.ExpiresAt = &past
	promoRepo.add(expired)

	for _, code := range []string{"OFF", "OLD", "NEVER"} {
		_, err := svc.ValidatePromoCode(context.Background(), model.DiscountKindVoucher, code, time.Now())
		var vErr *apierror.ValidationError
		require.ErrorAs(t, err, &vErr, "code %s", code)
	}
}

func TestValidatePromoCode_KindMismatch(t *testing.T) {
	svc, promoRepo, _, _ := newDiscountFixture()
	promoRepo.add(activeVoucher("V1", model.DiscountTypeAmount, "50", nil))

	_, err := svc.ValidatePromoCode(context.Background(), model.DiscountKindPromo, "V1", time.Now())
	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestRedeemDiscounts_IncrementsUnderLimit(t *testing.T) {
	svc, promoRepo, _, _ := newDiscountFixture()
	limit := 3
	voucher := promoRepo.add(activeVoucher("LIM3", model.DiscountTypeAmount, "50", &limit))

	sale := &model.Sale{ID: uuid.New(), SaleNumber: "SALE-20260301-0001"}
	cashier := uuid.New()
	items := []ValidatedDiscount{{
		Kind:    model.DiscountKindVoucher,
		PromoID: &voucher.ID,
		Code:    "LIM3",
		Amount:  dec("50.00"),
	}}

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RedeemDiscountsTx(nil, sale, items, cashier, time.Now()))
	}
	assert.Equal(t, 3, voucher.TimesRedeemed)
	assert.Len(t, promoRepo.redemptions, 3)

	// Redemption N+1 must fail even though the earlier validation passed.
	err := svc.RedeemDiscountsTx(nil, sale, items, cashier, time.Now())
	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 3, voucher.TimesRedeemed)
}

func TestRedeemDiscounts_ManualIsAuditLogged(t *testing.T) {
	svc, promoRepo, auditRepo, _ := newDiscountFixture()

	sale := &model.Sale{ID: uuid.New(), SaleNumber: "SALE-20260301-0002"}
	items := []ValidatedDiscount{{
		Kind:         model.DiscountKindManual,
		DiscountType: model.DiscountTypeAmount,
		Value:        dec("75.00"),
		Amount:       dec("75.00"),
	}}

	require.NoError(t, svc.RedeemDiscountsTx(nil, sale, items, uuid.New(), time.Now()))

	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, "sale.manual_discount", auditRepo.logs[0].Action)
	assert.Equal(t, sale.ID, auditRepo.logs[0].EntityID)
	assert.Empty(t, promoRepo.redemptions)
}
