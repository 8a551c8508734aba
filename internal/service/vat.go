package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VAT treatment codes, stored verbatim on sales and sale items.
type VatTreatment string

const (
	TreatmentVatable   VatTreatment = "vatable_12"
	TreatmentZeroRated VatTreatment = "zero_rated_0"
	TreatmentExempt    VatTreatment = "exempt"
)

func (t VatTreatment) Valid() bool {
	switch t {
	case TreatmentVatable, TreatmentZeroRated, TreatmentExempt:
		return true
	}
	return false
}

// VatResult is the breakdown of one amount under a treatment.
type VatResult struct {
	Gross     decimal.Decimal
	Net       decimal.Decimal
	Vat       decimal.Decimal
	RateUsed  decimal.Decimal
	Treatment VatTreatment
	Inclusive bool
}

var decimalOne = decimal.NewFromInt(1)

// CalculateVAT splits an amount into gross/net/vat under the given treatment.
// Inclusive means the amount is gross (vat = amount*rate/(1+rate)); exclusive
// means the amount is net (vat = net*rate). Zero-rated and exempt force vat
// to zero with gross == net == amount. All intermediate math stays exact;
// rounding to 2 decimals happens only on the way out. Pure and deterministic.
func CalculateVAT(amount, rate decimal.Decimal, inclusive bool, treatment VatTreatment) (VatResult, error) {
	if !treatment.Valid() {
		return VatResult{}, fmt.Errorf("unknown VAT treatment: %s", treatment)
	}

	if amount.IsNegative() {
		amount = decimal.Zero
	}
	if rate.IsNegative() {
		rate = decimal.Zero
	}

	var gross, net, vat decimal.Decimal
	if treatment == TreatmentVatable && rate.IsPositive() {
		if inclusive {
			gross = amount
			vat = amount.Mul(rate).Div(decimalOne.Add(rate))
			net = amount.Sub(vat)
		} else {
			net = amount
			vat = net.Mul(rate)
			gross = net.Add(vat)
		}
	} else {
		gross = amount
		net = amount
		vat = decimal.Zero
	}

	return VatResult{
		Gross:     gross.Round(2),
		Net:       net.Round(2),
		Vat:       vat.Round(2),
		RateUsed:  rate.Round(4),
		Treatment: treatment,
		Inclusive: inclusive,
	}, nil
}
