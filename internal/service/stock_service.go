package service

import (
	"context"
	"time"

	"lpgpos/internal/apierror"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockDeduction identifies one sale line to take out of inventory.
type StockDeduction struct {
	LocationID uuid.UUID
	VariantID  uuid.UUID
	Qty        int
	SaleID     uuid.UUID
	UserID     uuid.UUID
	MovedAt    time.Time
}

// StockService owns the inventory ledger: balances are mutated only under a
// row lock and every change leaves an immutable signed movement row.
type StockService interface {
	// DeductForSaleTx decrements qty_filled for a sale line inside the sale
	// transaction. LPG products additionally gain an empty container (swap).
	// Requesting more than qty_filled fails the whole sale with a StockError.
	DeductForSaleTx(ctx context.Context, tx *gorm.DB, d StockDeduction) error

	// ReceiveStock records a purchase receipt: qty_filled up, positive
	// purchase_in movement carrying the unit cost for the costing engine.
	ReceiveStock(ctx context.Context, locationID, variantID uuid.UUID, qty int, unitCost decimal.Decimal, ref model.Reference, userID uuid.UUID, movedAt time.Time, notes string) error
}

type stockService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
}

func NewStockService(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository) StockService {
	return &stockService{inventoryRepo: inventoryRepo, productRepo: productRepo}
}

func (s *stockService) DeductForSaleTx(ctx context.Context, tx *gorm.DB, d StockDeduction) error {
	if d.Qty <= 0 {
		return apierror.Validationf("lines", "quantity must be positive")
	}

	// Lock first: the availability check and the decrement must see the same
	// row state even when two sales race for the last unit.
	balance, err := s.inventoryRepo.LockBalanceTx(tx, d.LocationID, d.VariantID)
	if err != nil {
		return err
	}

	if balance.QtyFilled < d.Qty {
		return &apierror.StockError{
			VariantID: d.VariantID.String(),
			Available: int64(balance.QtyFilled),
			Requested: int64(d.Qty),
		}
	}

	variant, err := s.productRepo.FindVariantByID(ctx, d.VariantID)
	if err != nil {
		return err
	}

	balance.QtyFilled -= d.Qty
	if variant.Product != nil && variant.Product.IsSwappable() {
		// Swap: the customer hands back an empty container per filled one.
		// Empty-container returns outside a swap are tracked elsewhere.
		balance.QtyEmpty += d.Qty
	}

	if err := s.inventoryRepo.SaveBalanceTx(tx, balance); err != nil {
		return err
	}

	return s.inventoryRepo.CreateMovementTx(tx, &model.StockMovement{
		LocationID:        d.LocationID,
		ProductVariantID:  d.VariantID,
		MovementType:      model.MovementSaleOut,
		Qty:               decimal.NewFromInt(int64(d.Qty)).Neg(),
		ReferenceKind:     model.RefSale,
		ReferenceID:       d.SaleID,
		PerformedByUserID: d.UserID,
		MovedAt:           d.MovedAt,
		Notes:             "Sale via POS",
	})
}

func (s *stockService) ReceiveStock(ctx context.Context, locationID, variantID uuid.UUID, qty int, unitCost decimal.Decimal, ref model.Reference, userID uuid.UUID, movedAt time.Time, notes string) error {
	if qty <= 0 {
		return apierror.Validationf("qty", "quantity must be positive")
	}
	if unitCost.IsNegative() {
		return apierror.Validationf("unit_cost", "unit cost cannot be negative")
	}
	if !ref.Kind.Valid() {
		return apierror.Validationf("reference", "unknown reference kind %q", ref.Kind)
	}

	return runTx(ctx, s.inventoryRepo.DB(), func(tx *gorm.DB) error {
		balance, err := s.inventoryRepo.LockBalanceTx(tx, locationID, variantID)
		if err != nil {
			return err
		}
		balance.QtyFilled += qty
		if err := s.inventoryRepo.SaveBalanceTx(tx, balance); err != nil {
			return err
		}
		return s.inventoryRepo.CreateMovementTx(tx, &model.StockMovement{
			LocationID:        locationID,
			ProductVariantID:  variantID,
			MovementType:      model.MovementPurchaseIn,
			Qty:               decimal.NewFromInt(int64(qty)),
			UnitCost:          &unitCost,
			ReferenceKind:     ref.Kind,
			ReferenceID:       ref.ID,
			PerformedByUserID: userID,
			MovedAt:           movedAt,
			Notes:             notes,
		})
	})
}
