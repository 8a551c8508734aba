package dto

import "github.com/shopspring/decimal"

// ReceiveStockRequest records a purchase receipt: qty_filled goes up and a
// positive purchase_in movement captures the unit cost for costing.
type ReceiveStockRequest struct {
	ProductVariantID string          `json:"product_variant_id" validate:"required,uuid"`
	LocationID       string          `json:"location_id"        validate:"required,uuid"`
	Qty              int             `json:"qty"                validate:"required,min=1"`
	UnitCost         decimal.Decimal `json:"unit_cost"          validate:"required"`
	ReferenceID      string          `json:"reference_id"       validate:"required,uuid"`
	Notes            string          `json:"notes"              validate:"omitempty,max=200"`
}

type BalanceResponse struct {
	ProductVariantID string `json:"product_variant_id"`
	Variant          string `json:"variant,omitempty"`
	LocationID       string `json:"location_id"`
	QtyFilled        int    `json:"qty_filled"`
	QtyEmpty         int    `json:"qty_empty"`
	QtyReserved      int    `json:"qty_reserved"`
}

type UnitCostResponse struct {
	ProductVariantID string          `json:"product_variant_id"`
	AsOf             string          `json:"as_of"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}
