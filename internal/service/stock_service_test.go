package service

import (
	"context"
	"testing"
	"time"

	"lpgpos/internal/apierror"
	"lpgpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeductForSale_LpgSwapsContainers(t *testing.T) {
	invRepo := newStubInventoryRepo()
	prodRepo := newStubProductRepo()
	variant := prodRepo.addVariant(model.CategoryLPG, dec("950.00"), dec("500.00"))

	invRepo.balances[variant.ID] = &model.InventoryBalance{
		ID:               uuid.New(),
		LocationID:       invRepo.location.ID,
		ProductVariantID: variant.ID,
		QtyFilled:        10,
		QtyEmpty:         2,
	}

	svc := NewStockService(invRepo, prodRepo)
	err := svc.DeductForSaleTx(context.Background(), nil, StockDeduction{
		LocationID: invRepo.location.ID,
		VariantID:  variant.ID,
		Qty:        3,
		SaleID:     uuid.New(),
		UserID:     uuid.New(),
		MovedAt:    time.Now(),
	})
	require.NoError(t, err)

	balance := invRepo.balances[variant.ID]
	assert.Equal(t, 7, balance.QtyFilled)
	assert.Equal(t, 5, balance.QtyEmpty, "swap returns one empty per filled sold")

	require.Len(t, invRepo.movements, 1)
	m := invRepo.movements[0]
	assert.Equal(t, model.MovementSaleOut, m.MovementType)
	assert.True(t, m.Qty.Equal(dec("-3")), "qty %s", m.Qty)
}

func TestDeductForSale_AccessoryDoesNotSwap(t *testing.T) {
	invRepo := newStubInventoryRepo()
	prodRepo := newStubProductRepo()
	variant := prodRepo.addVariant(model.CategoryAccessory, dec("150.00"), dec("80.00"))

	invRepo.balances[variant.ID] = &model.InventoryBalance{
		ID:               uuid.New(),
		LocationID:       invRepo.location.ID,
		ProductVariantID: variant.ID,
		QtyFilled:        4,
	}

	svc := NewStockService(invRepo, prodRepo)
	err := svc.DeductForSaleTx(context.Background(), nil, StockDeduction{
		LocationID: invRepo.location.ID,
		VariantID:  variant.ID,
		Qty:        1,
		SaleID:     uuid.New(),
		UserID:     uuid.New(),
		MovedAt:    time.Now(),
	})
	require.NoError(t, err)

	balance := invRepo.balances[variant.ID]
	assert.Equal(t, 3, balance.QtyFilled)
	assert.Equal(t, 0, balance.QtyEmpty)
}

func TestDeductForSale_InsufficientStock(t *testing.T) {
	invRepo := newStubInventoryRepo()
	prodRepo := newStubProductRepo()
	variant := prodRepo.addVariant(model.CategoryLPG, dec("950.00"), dec("500.00"))

	invRepo.balances[variant.ID] = &model.InventoryBalance{
		ID:               uuid.New(),
		LocationID:       invRepo.location.ID,
		ProductVariantID: variant.ID,
		QtyFilled:        2,
	}

	svc := NewStockService(invRepo, prodRepo)
	err := svc.DeductForSaleTx(context.Background(), nil, StockDeduction{
		LocationID: invRepo.location.ID,
		VariantID:  variant.ID,
		Qty:        5,
		SaleID:     uuid.New(),
		UserID:     uuid.New(),
		MovedAt:    time.Now(),
	})

	var stockErr *apierror.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(2), stockErr.Available)
	assert.Equal(t, int64(5), stockErr.Requested)

	// Nothing moved.
	assert.Equal(t, 2, invRepo.balances[variant.ID].QtyFilled)
	assert.Empty(t, invRepo.movements)
}

func TestReceiveStock_RecordsCostBearingMovement(t *testing.T) {
	invRepo := newStubInventoryRepo()
	prodRepo := newStubProductRepo()
	variant := prodRepo.addVariant(model.CategoryLPG, dec("950.00"), dec("500.00"))

	svc := NewStockService(invRepo, prodRepo)
	err := svc.ReceiveStock(context.Background(), invRepo.location.ID, variant.ID, 20, dec("510.00"),
		model.Reference{Kind: model.RefPurchase, ID: uuid.New()}, uuid.New(), time.Now(), "PO-1001")
	require.NoError(t, err)

	assert.Equal(t, 20, invRepo.balances[variant.ID].QtyFilled)
	require.Len(t, invRepo.movements, 1)
	m := invRepo.movements[0]
	assert.Equal(t, model.MovementPurchaseIn, m.MovementType)
	require.NotNil(t, m.UnitCost)
	assert.True(t, m.UnitCost.Equal(dec("510.00")))
}

func TestReceiveStock_RejectsBadInput(t *testing.T) {
	invRepo := newStubInventoryRepo()
	prodRepo := newStubProductRepo()
	variant := prodRepo.addVariant(model.CategoryLPG, dec("950.00"), dec("500.00"))
	svc := NewStockService(invRepo, prodRepo)

	ref := model.Reference{Kind: model.RefPurchase, ID: uuid.New()}

	err := svc.ReceiveStock(context.Background(), invRepo.location.ID, variant.ID, 0, dec("510.00"), ref, uuid.New(), time.Now(), "")
	var vErr *apierror.ValidationError
	require.ErrorAs(t, err, &vErr)

	err = svc.ReceiveStock(context.Background(), invRepo.location.ID, variant.ID, 5, dec("-1"), ref, uuid.New(), time.Now(), "")
	require.ErrorAs(t, err, &vErr)

	err = svc.ReceiveStock(context.Background(), invRepo.location.ID, variant.ID, 5, dec("510.00"),
		model.Reference{Kind: model.RefKind("bogus"), ID: uuid.New()}, uuid.New(), time.Now(), "")
	require.ErrorAs(t, err, &vErr)
}
