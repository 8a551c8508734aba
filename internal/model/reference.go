package model

import "github.com/google/uuid"

// RefKind tags the business document a ledger entry or stock movement points
// at. A typed kind plus uuid replaces the raw class-name strings the ledger
// would otherwise accumulate.
type RefKind string

const (
	RefSale       RefKind = "sale"
	RefPurchase   RefKind = "purchase"
	RefRemittance RefKind = "remittance"
	RefAdjustment RefKind = "adjustment"
)

var refKindLabels = map[RefKind]string{
	RefSale:       "Sale",
	RefPurchase:   "Purchase",
	RefRemittance: "Remittance",
	RefAdjustment: "Stock Adjustment",
}

func (k RefKind) Valid() bool {
	_, ok := refKindLabels[k]
	return ok
}

func (k RefKind) Label() string {
	if label, ok := refKindLabels[k]; ok {
		return label
	}
	return string(k)
}

// Reference is a typed pointer to the originating document.
type Reference struct {
	Kind RefKind
	ID   uuid.UUID
}
