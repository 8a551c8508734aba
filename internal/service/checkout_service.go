package service

import (
	"context"
	"errors"

	"lpgpos/internal/apierror"
	"lpgpos/internal/clock"
	"lpgpos/internal/dto"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobQueue pushes background jobs to the worker pool. Checkout uses it after
// commit to trigger the low-stock scan for the variants it touched.
type JobQueue interface {
	Enqueue(ctx context.Context, jobType string, payload any) error
}

// JobLowStockScan asks the worker to compare balances against reorder levels.
const JobLowStockScan = "inventory.low_stock_scan"

// CheckoutService is the sale orchestrator. A checkout either fully succeeds,
// writing the sale, its items, stock movements, redemptions, payment, journal
// entry, and receipt in one transaction, or leaves no trace.
type CheckoutService interface {
	Checkout(ctx context.Context, req dto.CheckoutRequest, cashierID uuid.UUID) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type checkoutService struct {
	saleRepo      repository.SaleRepository
	paymentRepo   repository.PaymentRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	totals        SaleTotalsService
	discounts     DiscountService
	stock         StockService
	costing       CostingService
	accounting    AccountingService
	clk           clock.Clock
	queue         JobQueue
	log           zerolog.Logger
}

func NewCheckoutService(
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	totals SaleTotalsService,
	discounts DiscountService,
	stock StockService,
	costing CostingService,
	accounting AccountingService,
	clk clock.Clock,
	queue JobQueue,
	log zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		saleRepo:      saleRepo,
		paymentRepo:   paymentRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		totals:        totals,
		discounts:     discounts,
		stock:         stock,
		costing:       costing,
		accounting:    accounting,
		clk:           clk,
		queue:         queue,
		log:           log,
	}
}

// checkoutLine is a parsed, pre-validated cart line.
type checkoutLine struct {
	VariantID uuid.UUID
	Variant   *model.ProductVariant
	Qty       int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

func (s *checkoutService) Checkout(ctx context.Context, req dto.CheckoutRequest, cashierID uuid.UUID) (*dto.SaleResponse, error) {
	now := s.clk.Now()
	businessDate := now.Format("2006-01-02")

	// Fast fail before any pricing work; the check runs again inside the
	// transaction so a close cannot slip in mid-checkout.
	if locked, err := s.saleRepo.IsSaleLocked(ctx, businessDate); err != nil {
		return nil, err
	} else if locked {
		return nil, &apierror.LockedPeriodError{BusinessDate: businessDate}
	}

	method := model.PaymentMethod(req.PaymentMethod)
	if err := ValidatePaymentReference(method, req.PaymentRef); err != nil {
		return nil, err
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, apierror.Validationf("customer_id", "invalid customer id")
	}
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validationf("customer_id", "customer not found")
		}
		return nil, err
	}

	lines, err := s.resolveLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	subtotal := CartSubtotal(req.Lines)
	summary, err := s.discounts.ValidateDiscounts(ctx, req.Discounts, req.ManagerPin, cashierID, subtotal, now)
	if err != nil {
		return nil, err
	}

	saleTotals, err := s.totals.CalculateTotals(ctx, req.Lines, summary.Total, now)
	if err != nil {
		return nil, err
	}

	cash, err := ValidateAndCalculateCash(method, req.CashTendered, saleTotals.GrandTotal)
	if err != nil {
		return nil, err
	}

	location, err := s.inventoryRepo.FirstLocation(ctx)
	if err != nil {
		return nil, apierror.Configurationf("no stock location configured")
	}

	saleType := model.SaleTypeWalkin
	if req.IsDelivery {
		saleType = model.SaleTypeDelivery
	}

	var sale *model.Sale
	var receipt *model.Receipt

	err = runTx(ctx, s.saleRepo.DB(), func(tx *gorm.DB) error {
		if locked, err := s.saleRepo.IsSaleLockedTx(tx, businessDate); err != nil {
			return err
		} else if locked {
			return &apierror.LockedPeriodError{BusinessDate: businessDate}
		}

		seq, err := s.saleRepo.NextSaleSequenceTx(tx, now)
		if err != nil {
			return err
		}

		sale = &model.Sale{
			SaleNumber:    model.FormatSaleNumber(now, seq),
			SaleType:      saleType,
			CustomerID:    customerID,
			CashierUserID: cashierID,
			Status:        model.SaleStatusPaid,
			SaleDatetime:  now,
			Subtotal:      saleTotals.Subtotal.Round(2),
			DiscountTotal: saleTotals.DiscountTotal,
			TaxTotal:      saleTotals.VatAmount,
			GrandTotal:    saleTotals.GrandTotal,
			VatTreatment:  string(saleTotals.VatTreatment),
			VatRate:       saleTotals.VatRate,
			VatInclusive:  saleTotals.VatInclusive,
			VatAmount:     saleTotals.VatAmount,
			NetAmount:     saleTotals.NetAmount,
			GrossAmount:   saleTotals.GrossAmount,
			VatApplied:    saleTotals.VatApplied,
			CashTendered:  cash.Tendered,
			CashChange:    cash.Change,
		}
		if err := s.saleRepo.CreateTx(tx, sale); err != nil {
			return err
		}

		cogs := decimal.Zero
		for _, line := range lines {
			lineVat, err := s.totals.CalculateLineVat(line.LineTotal, saleTotals.VatRate, saleTotals.VatInclusive, saleTotals.VatTreatment)
			if err != nil {
				return err
			}

			pricingSource := "manual"
			if line.UnitPrice.Equal(line.Variant.SellingPrice) {
				pricingSource = "catalog"
			}

			item := &model.SaleItem{
				SaleID:           sale.ID,
				ProductVariantID: line.VariantID,
				Qty:              decimal.NewFromInt(int64(line.Qty)),
				UnitPrice:        line.UnitPrice,
				LineTotal:        line.LineTotal.Round(2),
				LineNetAmount:    lineVat.Net,
				LineVatAmount:    lineVat.Vat,
				LineGrossAmount:  lineVat.Gross,
				PricingSource:    pricingSource,
			}
			if err := s.saleRepo.CreateItemTx(tx, item); err != nil {
				return err
			}
			item.ProductVariant = line.Variant
			sale.Items = append(sale.Items, *item)

			if err := s.stock.DeductForSaleTx(ctx, tx, StockDeduction{
				LocationID: location.ID,
				VariantID:  line.VariantID,
				Qty:        line.Qty,
				SaleID:     sale.ID,
				UserID:     cashierID,
				MovedAt:    now,
			}); err != nil {
				return err
			}

			unitCost, err := s.costing.WeightedAverageCost(ctx, line.VariantID, now)
			if err != nil {
				return err
			}
			cogs = cogs.Add(unitCost.Mul(decimal.NewFromInt(int64(line.Qty))))
		}

		if err := s.discounts.RedeemDiscountsTx(tx, sale, summary.Items, cashierID, now); err != nil {
			return err
		}

		if err := s.paymentRepo.CreateTx(tx, &model.Payment{
			SaleID:           sale.ID,
			Method:           method,
			Amount:           saleTotals.GrandTotal,
			ReferenceNo:      req.PaymentRef,
			ReceivedByUserID: cashierID,
			PaidAt:           now,
		}); err != nil {
			return err
		}

		if _, err := s.accounting.PostSaleTx(ctx, tx, sale, method, cogs.Round(2)); err != nil {
			return err
		}

		receiptSeq, err := s.saleRepo.NextReceiptSequenceTx(tx)
		if err != nil {
			return err
		}
		receipt = &model.Receipt{
			SaleID:        sale.ID,
			ReceiptNumber: model.FormatReceiptNumber(receiptSeq),
			IssuedAt:      now,
		}
		if err := s.saleRepo.CreateReceiptTx(tx, receipt); err != nil {
			return err
		}

		if req.IsDelivery {
			if err := s.saleRepo.CreateDeliveryTx(tx, &model.Delivery{
				SaleID:     sale.ID,
				CustomerID: customerID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.dispatchLowStockScan(sale, location.ID, lines)

	s.log.Info().
		Str("sale_number", sale.SaleNumber).
		Str("grand_total", sale.GrandTotal.String()).
		Str("payment_method", string(method)).
		Msg("sale completed")

	return buildSaleResponse(sale, receipt.ReceiptNumber), nil
}

func (s *checkoutService) resolveLines(ctx context.Context, reqLines []dto.CheckoutLineRequest) ([]checkoutLine, error) {
	lines := make([]checkoutLine, 0, len(reqLines))
	for _, raw := range reqLines {
		variantID, err := uuid.Parse(raw.ProductID)
		if err != nil {
			return nil, apierror.Validationf("lines", "invalid product id %q", raw.ProductID)
		}
		if !raw.Qty.IsPositive() || !raw.Qty.IsInteger() {
			return nil, apierror.Validationf("lines", "quantity must be a positive whole number")
		}
		if raw.UnitPrice.IsNegative() {
			return nil, apierror.Validationf("lines", "unit price cannot be negative")
		}

		variant, err := s.productRepo.FindVariantByID(ctx, variantID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validationf("lines", "product %s not found", raw.ProductID)
		}
		if err != nil {
			return nil, err
		}

		lines = append(lines, checkoutLine{
			VariantID: variantID,
			Variant:   variant,
			Qty:       int(raw.Qty.IntPart()),
			UnitPrice: raw.UnitPrice.Round(2),
			LineTotal: raw.Qty.Mul(raw.UnitPrice),
		})
	}
	return lines, nil
}

// dispatchLowStockScan runs after commit, fire and forget: a queue outage
// must not fail a sale that already went through.
func (s *checkoutService) dispatchLowStockScan(sale *model.Sale, locationID uuid.UUID, lines []checkoutLine) {
	if s.queue == nil {
		return
	}
	variantIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		variantIDs = append(variantIDs, line.VariantID.String())
	}
	if err := s.queue.Enqueue(context.Background(), JobLowStockScan, map[string]any{
		"location_id": locationID.String(),
		"variant_ids": variantIDs,
	}); err != nil {
		s.log.Warn().Err(err).Str("sale_number", sale.SaleNumber).Msg("low stock scan dispatch failed")
	}
}

func (s *checkoutService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	receiptNumber := ""
	if receipt, err := s.saleRepo.FindReceiptBySaleID(ctx, id); err == nil {
		receiptNumber = receipt.ReceiptNumber
	}
	return buildSaleResponse(sale, receiptNumber), nil
}

func (s *checkoutService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	sales, total, err := s.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SaleListItem, 0, len(sales))
	for _, sale := range sales {
		items = append(items, dto.SaleListItem{
			ID:            sale.ID.String(),
			SaleNumber:    sale.SaleNumber,
			SaleType:      sale.SaleType,
			CustomerID:    sale.CustomerID.String(),
			CashierUserID: sale.CashierUserID.String(),
			Status:        sale.Status,
			GrandTotal:    sale.GrandTotal,
			DiscountTotal: sale.DiscountTotal,
			VatAmount:     sale.VatAmount,
			CreatedAt:     sale.SaleDatetime.Format("2006-01-02 15:04:05"),
		})
	}

	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func buildSaleResponse(sale *model.Sale, receiptNumber string) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		variantName := ""
		if item.ProductVariant != nil {
			variantName = item.ProductVariant.Name
		}
		items = append(items, dto.SaleItemResponse{
			ProductVariantID: item.ProductVariantID.String(),
			Variant:          variantName,
			Qty:              item.Qty,
			UnitPrice:        item.UnitPrice,
			LineTotal:        item.LineTotal,
			LineNetAmount:    item.LineNetAmount,
			LineVatAmount:    item.LineVatAmount,
			LineGrossAmount:  item.LineGrossAmount,
		})
	}

	return &dto.SaleResponse{
		ID:            sale.ID.String(),
		SaleNumber:    sale.SaleNumber,
		SaleType:      sale.SaleType,
		Status:        sale.Status,
		Items:         items,
		Subtotal:      sale.Subtotal,
		DiscountTotal: sale.DiscountTotal,
		VatAmount:     sale.VatAmount,
		NetAmount:     sale.NetAmount,
		GrossAmount:   sale.GrossAmount,
		GrandTotal:    sale.GrandTotal,
		VatTreatment:  sale.VatTreatment,
		VatRate:       sale.VatRate,
		VatInclusive:  sale.VatInclusive,
		CashTendered:  sale.CashTendered,
		CashChange:    sale.CashChange,
		ReceiptNumber: receiptNumber,
		CreatedAt:     sale.SaleDatetime.Format("2006-01-02 15:04:05"),
	}
}
