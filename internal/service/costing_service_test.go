package service

import (
	"context"
	"testing"
	"time"

	"lpgpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiptMovement(variantID uuid.UUID, qty int64, unitCost string, movedAt time.Time) model.StockMovement {
	cost := dec(unitCost)
	return model.StockMovement{
		ID:               uuid.New(),
		LocationID:       uuid.New(),
		ProductVariantID: variantID,
		MovementType:     model.MovementPurchaseIn,
		Qty:              decimal.NewFromInt(qty),
		UnitCost:         &cost,
		MovedAt:          movedAt,
	}
}

func TestWeightedAverageCost_BlendsReceipts(t *testing.T) {
	invRepo := newStubInventoryRepo()
	prodRepo := newStubProductRepo()
	variant := prodRepo.addVariant(model.CategoryLPG, dec("950.00"), dec("0"))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	invRepo.movements = append(invRepo.movements,
		receiptMovement(variant.ID, 10, "500.00", base),
		receiptMovement(variant.ID, 10, "700.00", base.Add(24*time.Hour)),
	)

	svc := NewCostingService(invRepo, prodRepo)
	cost, err := svc.WeightedAverageCost(context.Background(), variant.ID, base.Add(48*time.Hour))
	require.NoError(t, err)

	// (10*500 + 10*700) / 20 = 600
	assert.True(t, cost.Equal(dec("600.00")), "cost %s", cost)
}

func TestWeightedAverageCost_IgnoresReceiptsAfterAsOf(t *testing.T) {
	invRepo := newStubInventoryRepo()
	prodRepo := newStubProductRepo()
	variant := prodRepo.addVariant(model.CategoryLPG, dec("950.00"), dec("0"))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	invRepo.movements = append(invRepo.movements,
		receiptMovement(variant.ID, 10, "500.00", base),
		receiptMovement(variant.ID, 10, "900.00", base.Add(72*time.Hour)),
	)

	svc := NewCostingService(invRepo, prodRepo)
	cost, err := svc.WeightedAverageCost(context.Background(), variant.ID, base.Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, cost.Equal(dec("500.00")), "cost %s", cost)
}

func TestWeightedAverageCost_FallsBackToSupplierCost(t *testing.T) {
	invRepo := newStubInventoryRepo()
	prodRepo := newStubProductRepo()
	variant := prodRepo.addVariant(model.CategoryLPG, dec("950.00"), dec("480.00"))

	svc := NewCostingService(invRepo, prodRepo)
	cost, err := svc.WeightedAverageCost(context.Background(), variant.ID, time.Now())
	require.NoError(t, err)

	assert.True(t, cost.Equal(dec("480.00")), "cost %s", cost)
}

func TestWeightedAverageCost_UnknownVariantIsZero(t *testing.T) {
	svc := NewCostingService(newStubInventoryRepo(), newStubProductRepo())
	cost, err := svc.WeightedAverageCost(context.Background(), uuid.New(), time.Now())
	require.NoError(t, err)
	assert.True(t, cost.IsZero())
}
