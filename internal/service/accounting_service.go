package service

import (
	"context"
	"fmt"

	"lpgpos/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AccountingService composes the journal entry for a completed sale and hands
// it to the ledger poster as a single balanced posting.
type AccountingService interface {
	PostSaleTx(ctx context.Context, tx *gorm.DB, sale *model.Sale, method model.PaymentMethod, cogs decimal.Decimal) (*model.LedgerEntry, error)
}

type accountingService struct {
	ledger LedgerService
}

func NewAccountingService(ledger LedgerService) AccountingService {
	return &accountingService{ledger: ledger}
}

// PostSaleTx builds the sale posting:
//
//	debit  2010 Turnover Receivable (cash) or 1020 Cash in Bank (non-cash)  grand total
//	credit 4010 Sales Revenue                                              net (or gross when no VAT)
//	credit 2030 VAT Payable                                                vat amount
//	debit  5000 COGS / credit 1200 Inventory                               weighted-average cost
//
// The COGS pair is omitted when the cost is zero so an unconfigured cost
// history never produces a zero-value line pair.
func (s *accountingService) PostSaleTx(ctx context.Context, tx *gorm.DB, sale *model.Sale, method model.PaymentMethod, cogs decimal.Decimal) (*model.LedgerEntry, error) {
	memo := fmt.Sprintf("Sale %s", sale.SaleNumber)

	receivingAccount := model.AccountCashInBank
	if method == model.PaymentCash {
		receivingAccount = model.AccountTurnoverReceivable
	}

	lines := []EntryLine{
		{Account: receivingAccount, Debit: sale.GrandTotal, Description: memo},
	}

	if sale.VatAmount.IsPositive() {
		lines = append(lines,
			EntryLine{Account: model.AccountSalesRevenue, Credit: sale.NetAmount, Description: memo},
			EntryLine{Account: model.AccountVATPayable, Credit: sale.VatAmount, Description: memo + " output VAT"},
		)
	} else {
		lines = append(lines,
			EntryLine{Account: model.AccountSalesRevenue, Credit: sale.GrandTotal, Description: memo},
		)
	}

	if cogs.IsPositive() {
		lines = append(lines,
			EntryLine{Account: model.AccountCOGS, Debit: cogs, Description: memo + " cost of goods"},
			EntryLine{Account: model.AccountInventory, Credit: cogs, Description: memo + " cost of goods"},
		)
	}

	return s.ledger.PostEntryTx(ctx, tx, EntryInput{
		EntryDate: sale.SaleDatetime.Format("2006-01-02"),
		Reference: model.Reference{Kind: model.RefSale, ID: sale.ID},
		CreatedBy: sale.CashierUserID,
		Memo:      memo,
		Lines:     lines,
	})
}
