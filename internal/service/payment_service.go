package service

import (
	"strings"

	"lpgpos/internal/apierror"
	"lpgpos/internal/model"

	"github.com/shopspring/decimal"
)

// CashDetails carries the tendered/change pair for cash sales; both are nil
// for non-cash methods.
type CashDetails struct {
	Tendered *decimal.Decimal
	Change   *decimal.Decimal
}

// ValidatePaymentReference enforces a reference number (min 4 chars) for
// methods that need one.
func ValidatePaymentReference(method model.PaymentMethod, ref *string) error {
	if !method.Valid() {
		return apierror.Validationf("payment_method", "unknown payment method %q", method)
	}
	if !method.NeedsReference() {
		return nil
	}
	trimmed := ""
	if ref != nil {
		trimmed = strings.TrimSpace(*ref)
	}
	if len(trimmed) < 4 {
		return apierror.Validationf("payment_ref", "reference number is required for this payment method")
	}
	return nil
}

// ValidateAndCalculateCash checks tendered cash against the grand total and
// returns it with the change. Non-cash methods have nothing to validate.
func ValidateAndCalculateCash(method model.PaymentMethod, tendered *decimal.Decimal, grandTotal decimal.Decimal) (CashDetails, error) {
	if method != model.PaymentCash {
		return CashDetails{}, nil
	}
	if tendered == nil {
		return CashDetails{}, apierror.Validationf("cash_tendered", "amount received is required for cash payment")
	}

	cash := tendered.Round(2)
	if cash.IsNegative() {
		cash = decimal.Zero
	}
	if cash.LessThan(grandTotal) {
		return CashDetails{}, apierror.Validationf("cash_tendered", "amount received must be equal to or higher than the total")
	}

	change := cash.Sub(grandTotal).Round(2)
	return CashDetails{Tendered: &cash, Change: &change}, nil
}
