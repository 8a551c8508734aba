package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CheckoutLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Qty       decimal.Decimal `json:"qty"        validate:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"required"`
}

type DiscountRequest struct {
	Kind         string          `json:"kind"          validate:"required,oneof=promo voucher manual"`
	Code         string          `json:"code"          validate:"omitempty,max=40"`
	DiscountType string          `json:"discount_type" validate:"omitempty,oneof=amount percent"`
	Value        decimal.Decimal `json:"value"`
}

type CheckoutRequest struct {
	CustomerID    string                `json:"customer_id"    validate:"required,uuid"`
	IsDelivery    bool                  `json:"is_delivery"`
	PaymentMethod string                `json:"payment_method" validate:"required,oneof=cash gcash card bank_transfer"`
	PaymentRef    *string               `json:"payment_ref"    validate:"omitempty,max=64"`
	CashTendered  *decimal.Decimal      `json:"cash_tendered"`
	Lines         []CheckoutLineRequest `json:"lines"          validate:"required,min=1,dive"`
	Discounts     []DiscountRequest     `json:"discounts"      validate:"omitempty,dive"`
	ManagerPin    *string               `json:"manager_pin"    validate:"omitempty,max=8"`
}

// ValidateCodeRequest is the POS pre-check before a code is added to the cart.
type ValidateCodeRequest struct {
	Kind     string          `json:"kind"     validate:"required,oneof=promo voucher"`
	Code     string          `json:"code"     validate:"required,max=40"`
	Subtotal decimal.Decimal `json:"subtotal" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductVariantID string          `json:"product_variant_id"`
	Variant          string          `json:"variant,omitempty"`
	Qty              decimal.Decimal `json:"qty"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	LineTotal        decimal.Decimal `json:"line_total"`
	LineNetAmount    decimal.Decimal `json:"line_net_amount"`
	LineVatAmount    decimal.Decimal `json:"line_vat_amount"`
	LineGrossAmount  decimal.Decimal `json:"line_gross_amount"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	SaleNumber    string             `json:"sale_number"`
	SaleType      string             `json:"sale_type"`
	Status        string             `json:"status"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	DiscountTotal decimal.Decimal    `json:"discount_total"`
	VatAmount     decimal.Decimal    `json:"vat_amount"`
	NetAmount     decimal.Decimal    `json:"net_amount"`
	GrossAmount   decimal.Decimal    `json:"gross_amount"`
	GrandTotal    decimal.Decimal    `json:"grand_total"`
	VatTreatment  string             `json:"vat_treatment"`
	VatRate       decimal.Decimal    `json:"vat_rate"`
	VatInclusive  bool               `json:"vat_inclusive"`
	CashTendered  *decimal.Decimal   `json:"cash_tendered,omitempty"`
	CashChange    *decimal.Decimal   `json:"cash_change,omitempty"`
	ReceiptNumber string             `json:"receipt_number"`
	CreatedAt     string             `json:"created_at"`
}

type ValidateCodeResponse struct {
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	DiscountType   string          `json:"discount_type"`
	Value          decimal.Decimal `json:"value"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Date  string `form:"date"` // YYYY-MM-DD; empty = today
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListItem struct {
	ID            string          `json:"id"`
	SaleNumber    string          `json:"sale_number"`
	SaleType      string          `json:"sale_type"`
	CustomerID    string          `json:"customer_id"`
	CashierUserID string          `json:"cashier_user_id"`
	Status        string          `json:"status"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	VatAmount     decimal.Decimal `json:"vat_amount"`
	CreatedAt     string          `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleListItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
