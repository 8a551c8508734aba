package dto

import "github.com/shopspring/decimal"

type CreatePromoRequest struct {
	Code         string          `json:"code"          validate:"required,max=40"`
	Name         string          `json:"name"          validate:"required"`
	Kind         string          `json:"kind"          validate:"required,oneof=promo voucher"`
	DiscountType string          `json:"discount_type" validate:"required,oneof=amount percent"`
	Value        decimal.Decimal `json:"value"         validate:"required"`
	UsageLimit   *int            `json:"usage_limit"   validate:"omitempty,min=1"`
	StartsAt     *string         `json:"starts_at"     validate:"omitempty,datetime=2006-01-02"`
	ExpiresAt    *string         `json:"expires_at"    validate:"omitempty,datetime=2006-01-02"`
}

type PromoResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	DiscountType  string          `json:"discount_type"`
	Value         decimal.Decimal `json:"value"`
	UsageLimit    *int            `json:"usage_limit"`
	TimesRedeemed int             `json:"times_redeemed"`
	StartsAt      *string         `json:"starts_at"`
	ExpiresAt     *string         `json:"expires_at"`
	IsActive      bool            `json:"is_active"`
}
