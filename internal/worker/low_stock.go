package worker

import (
	"context"
	"encoding/json"

	"lpgpos/internal/model"
	"lpgpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// LowStockPayload is the job body enqueued after every checkout.
type LowStockPayload struct {
	LocationID string   `json:"location_id"`
	VariantIDs []string `json:"variant_ids"`
}

// NewLowStockHandler compares the post-sale balances of the touched variants
// against their reorder levels and raises one open restock alert per variant.
func NewLowStockHandler(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository) Handler {
	return func(ctx context.Context, payload json.RawMessage) error {
		var p LowStockPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		locationID, err := uuid.Parse(p.LocationID)
		if err != nil {
			return err
		}

		for _, raw := range p.VariantIDs {
			variantID, err := uuid.Parse(raw)
			if err != nil {
				log.Warn().Str("variant_id", raw).Msg("skipping malformed variant id")
				continue
			}

			balance, err := inventoryRepo.GetBalance(ctx, locationID, variantID)
			if err != nil {
				return err
			}
			variant, err := productRepo.FindVariantByID(ctx, variantID)
			if err != nil {
				return err
			}
			if balance.QtyFilled > variant.ReorderLevel {
				continue
			}

			// One open alert per variant; a resolved alert can recur.
			open, err := inventoryRepo.HasOpenRestockAlert(ctx, variantID)
			if err != nil {
				return err
			}
			if open {
				continue
			}

			if err := inventoryRepo.CreateRestockAlert(ctx, &model.RestockAlert{
				ProductVariantID: variantID,
				LocationID:       locationID,
				QtyFilled:        balance.QtyFilled,
				ReorderLevel:     variant.ReorderLevel,
			}); err != nil {
				return err
			}
			log.Info().
				Str("variant_id", variantID.String()).
				Int("qty_filled", balance.QtyFilled).
				Int("reorder_level", variant.ReorderLevel).
				Msg("restock alert raised")
		}
		return nil
	}
}
