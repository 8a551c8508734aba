package service

import (
	"context"
	"errors"

	"lpgpos/internal/apierror"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntryLine is one debit or credit row of a posting request.
type EntryLine struct {
	Account     model.AccountCode
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// EntryInput is a full posting request.
type EntryInput struct {
	EntryDate string // YYYY-MM-DD
	Reference model.Reference
	CreatedBy uuid.UUID
	Memo      string
	Lines     []EntryLine
}

// LedgerService posts balanced double-entry records. Entries are append-only:
// there is no update or delete path, corrections are reversing entries.
type LedgerService interface {
	// PostEntryTx verifies sum(debit) == sum(credit) to the cent before any
	// row is written; unbalanced input or an unknown account code is a
	// ConfigurationError (caller defect, never user input). Idempotent per
	// reference: re-posting the same document returns the existing entry.
	PostEntryTx(ctx context.Context, tx *gorm.DB, input EntryInput) (*model.LedgerEntry, error)

	// ReverseEntryTx posts a mirror entry (debits and credits swapped) for
	// an existing posting.
	ReverseEntryTx(ctx context.Context, tx *gorm.DB, ref model.Reference, entryDate string, createdBy uuid.UUID, memo string) (*model.LedgerEntry, error)
}

type ledgerService struct {
	repo repository.LedgerRepository
}

func NewLedgerService(repo repository.LedgerRepository) LedgerService {
	return &ledgerService{repo: repo}
}

func (s *ledgerService) PostEntryTx(ctx context.Context, tx *gorm.DB, input EntryInput) (*model.LedgerEntry, error) {
	if !input.Reference.Kind.Valid() {
		return nil, apierror.Configurationf("unknown ledger reference kind %q", input.Reference.Kind)
	}
	if len(input.Lines) == 0 {
		return nil, apierror.Configurationf("ledger entry for %s %s has no lines", input.Reference.Kind, input.Reference.ID)
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, line := range input.Lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	if !debits.Round(2).Equal(credits.Round(2)) {
		return nil, apierror.Configurationf("ledger entry not balanced: debits %s != credits %s",
			debits.Round(2), credits.Round(2))
	}

	if existing, err := s.repo.FindEntryByReferenceTx(tx, input.Reference.Kind, input.Reference.ID); err == nil {
		return existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry := &model.LedgerEntry{
		EntryDate:       input.EntryDate,
		ReferenceKind:   input.Reference.Kind,
		ReferenceID:     input.Reference.ID,
		CreatedByUserID: input.CreatedBy,
		Memo:            input.Memo,
	}
	for _, line := range input.Lines {
		account, err := s.repo.FindAccountByCode(ctx, line.Account)
		if err != nil {
			return nil, apierror.Configurationf("unknown account code %q", line.Account)
		}
		entry.Lines = append(entry.Lines, model.LedgerLine{
			AccountID:   account.ID,
			Description: line.Description,
			Debit:       line.Debit.Round(2),
			Credit:      line.Credit.Round(2),
		})
	}

	if err := s.repo.CreateEntryTx(tx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) ReverseEntryTx(ctx context.Context, tx *gorm.DB, ref model.Reference, entryDate string, createdBy uuid.UUID, memo string) (*model.LedgerEntry, error) {
	original, err := s.repo.FindEntryByReferenceTx(tx, ref.Kind, ref.ID)
	if err != nil {
		return nil, err
	}

	reversal := &model.LedgerEntry{
		EntryDate:       entryDate,
		ReferenceKind:   model.RefAdjustment,
		ReferenceID:     uuid.New(),
		CreatedByUserID: createdBy,
		Memo:            memo,
		Reversed:        false,
	}
	for _, line := range original.Lines {
		reversal.Lines = append(reversal.Lines, model.LedgerLine{
			AccountID:   line.AccountID,
			Description: "Reversal: " + line.Description,
			Debit:       line.Credit,
			Credit:      line.Debit,
		})
	}

	if err := s.repo.CreateEntryTx(tx, reversal); err != nil {
		return nil, err
	}
	return reversal, nil
}
