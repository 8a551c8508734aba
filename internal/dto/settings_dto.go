package dto

import "github.com/shopspring/decimal"

type UpdateSettingsRequest struct {
	VatRegistered    *bool            `json:"vat_registered"`
	VatRate          *decimal.Decimal `json:"vat_rate"`
	VatMode          *string          `json:"vat_mode"           validate:"omitempty,oneof=inclusive exclusive"`
	VatEffectiveDate *string          `json:"vat_effective_date" validate:"omitempty,datetime=2006-01-02"`
	ManagerPin       *string          `json:"manager_pin"        validate:"omitempty,numeric,min=4,max=8"`
}

type SettingsResponse struct {
	VatRegistered    bool            `json:"vat_registered"`
	VatRate          decimal.Decimal `json:"vat_rate"`
	VatMode          string          `json:"vat_mode"`
	VatEffectiveDate *string         `json:"vat_effective_date"`
	VatActive        bool            `json:"vat_active"`
	ManagerPinSet    bool            `json:"manager_pin_set"`
}

type CloseDayRequest struct {
	BusinessDate string `json:"business_date" validate:"required,datetime=2006-01-02"`
}
