package service

import (
	"context"
	"encoding/json"
	"time"

	"lpgpos/internal/apierror"
	"lpgpos/internal/clock"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyCloseService locks a business date once it has been reconciled. New
// sales on a closed date fail with a LockedPeriodError.
type DailyCloseService interface {
	CloseDay(ctx context.Context, businessDate string, byUserID uuid.UUID) error
}

type dailyCloseService struct {
	saleRepo  repository.SaleRepository
	auditRepo repository.AuditRepository
	clk       clock.Clock
}

func NewDailyCloseService(saleRepo repository.SaleRepository, auditRepo repository.AuditRepository, clk clock.Clock) DailyCloseService {
	return &dailyCloseService{saleRepo: saleRepo, auditRepo: auditRepo, clk: clk}
}

func (s *dailyCloseService) CloseDay(ctx context.Context, businessDate string, byUserID uuid.UUID) error {
	if _, err := time.Parse("2006-01-02", businessDate); err != nil {
		return apierror.Validationf("business_date", "invalid date, expected YYYY-MM-DD")
	}

	now := s.clk.Now()
	if businessDate > now.Format("2006-01-02") {
		return apierror.Validationf("business_date", "cannot close a future date")
	}

	if locked, err := s.saleRepo.IsSaleLocked(ctx, businessDate); err != nil {
		return err
	} else if locked {
		return apierror.Validationf("business_date", "date %s is already closed", businessDate)
	}

	return runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		dailyClose := &model.DailyClose{
			BusinessDate:   businessDate,
			ClosedByUserID: byUserID,
			ClosedAt:       now,
		}
		if err := s.saleRepo.CreateDailyCloseTx(tx, dailyClose); err != nil {
			return err
		}

		after, err := json.Marshal(map[string]string{"business_date": businessDate})
		if err != nil {
			return err
		}
		afterJSON := string(after)
		return s.auditRepo.CreateTx(tx, &model.AuditLog{
			ActorUserID: byUserID,
			Action:      "day.close",
			EntityType:  "DailyClose",
			EntityID:    dailyClose.ID,
			Message:     "Business date " + businessDate + " closed",
			AfterJSON:   &afterJSON,
		})
	})
}
