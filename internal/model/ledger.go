package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountCode names a chart-of-accounts code. Centralizing the codes turns a
// composer typo into a compile error instead of a runtime ConfigurationError.
type AccountCode string

const (
	AccountCashOnHand         AccountCode = "1010"
	AccountCashInBank         AccountCode = "1020"
	AccountInventory          AccountCode = "1200"
	AccountTurnoverReceivable AccountCode = "2010"
	AccountVATPayable         AccountCode = "2030"
	AccountSalesRevenue       AccountCode = "4010"
	AccountCOGS               AccountCode = "5000"
)

// DefaultAccounts is the chart seeded at install time.
var DefaultAccounts = map[AccountCode]ChartOfAccount{
	AccountCashOnHand:         {Code: AccountCashOnHand, Name: "Cash on Hand", AccountType: "asset"},
	AccountCashInBank:         {Code: AccountCashInBank, Name: "Cash in Bank", AccountType: "asset"},
	AccountInventory:          {Code: AccountInventory, Name: "Inventory", AccountType: "asset"},
	AccountTurnoverReceivable: {Code: AccountTurnoverReceivable, Name: "Turnover Receivable", AccountType: "asset"},
	AccountVATPayable:         {Code: AccountVATPayable, Name: "VAT Payable", AccountType: "liability"},
	AccountSalesRevenue:       {Code: AccountSalesRevenue, Name: "Sales Revenue", AccountType: "revenue"},
	AccountCOGS:               {Code: AccountCOGS, Name: "Cost of Goods Sold", AccountType: "expense"},
}

type ChartOfAccount struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code        AccountCode `gorm:"type:varchar(10);uniqueIndex;not null"`
	Name        string      `gorm:"not null"`
	AccountType string      `gorm:"type:varchar(20);not null"` // asset | liability | equity | revenue | expense
	CreatedAt   time.Time
}

// LedgerEntry is a dated, reference-tagged posting header. Entries are
// append-only; corrections are reversing entries, never edits.
type LedgerEntry struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntryDate       string    `gorm:"type:date;not null;index"`
	ReferenceKind   RefKind   `gorm:"type:varchar(20);not null;uniqueIndex:idx_ledger_reference"`
	ReferenceID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_reference"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null"`
	Memo            string
	Reversed        bool `gorm:"not null;default:false"`
	CreatedAt       time.Time

	Lines []LedgerLine `gorm:"foreignKey:LedgerEntryID"`
}

// LedgerLine is one debit or credit row. Invariant across every entry:
// sum(debit) == sum(credit) to the cent.
type LedgerLine struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LedgerEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string
	Debit         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Credit        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt     time.Time
}
