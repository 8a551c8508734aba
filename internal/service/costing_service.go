package service

import (
	"context"
	"errors"
	"time"

	"lpgpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CostingService computes the time-varying weighted-average unit cost of a
// variant. Read-only: for a fixed (variant, asOf) pair the result is stable
// until a new movement lands earlier than asOf.
type CostingService interface {
	WeightedAverageCost(ctx context.Context, variantID uuid.UUID, asOf time.Time) (decimal.Decimal, error)
}

type costingService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
}

func NewCostingService(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository) CostingService {
	return &costingService{inventoryRepo: inventoryRepo, productRepo: productRepo}
}

// WeightedAverageCost folds every purchase_in movement up to and including
// asOf: Σ(qty × unit_cost) / Σ(qty). Variants with no receipt history yet
// fall back to their catalog supplier cost.
func (s *costingService) WeightedAverageCost(ctx context.Context, variantID uuid.UUID, asOf time.Time) (decimal.Decimal, error) {
	receipts, err := s.inventoryRepo.ReceiptMovementsAsOf(ctx, variantID, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	totalQty := decimal.Zero
	totalCost := decimal.Zero
	for _, m := range receipts {
		if m.UnitCost == nil || !m.Qty.IsPositive() {
			continue
		}
		totalQty = totalQty.Add(m.Qty)
		totalCost = totalCost.Add(m.Qty.Mul(*m.UnitCost))
	}

	if totalQty.IsPositive() {
		return totalCost.Div(totalQty).Round(4), nil
	}

	variant, err := s.productRepo.FindVariantByID(ctx, variantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return variant.SupplierCost, nil
}
