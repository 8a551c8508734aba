package service

import (
	"context"
	"time"

	"lpgpos/internal/dto"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Stub repositories ─────────────────────────────────────────────────────────
// In-memory implementations driving the services with a nil *gorm.DB; runTx
// short-circuits so everything runs synchronously without a database.

type stubSettingsRepo struct {
	setting *model.CompanySetting
}

func newStubSettingsRepo() *stubSettingsRepo {
	return &stubSettingsRepo{setting: &model.CompanySetting{
		ID:            uuid.New(),
		VatRegistered: true,
		VatRate:       dec("0.12"),
		VatMode:       model.VatModeInclusive,
	}}
}

func (r *stubSettingsRepo) Get(_ context.Context) (*model.CompanySetting, error) {
	return r.setting, nil
}
func (r *stubSettingsRepo) Save(_ context.Context, s *model.CompanySetting) error {
	r.setting = s
	return nil
}

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)

func mustHash(pin string) *string {
	h, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s := string(h)
	return &s
}

type stubInventoryRepo struct {
	balances  map[uuid.UUID]*model.InventoryBalance // keyed by variant
	movements []model.StockMovement
	alerts    []model.RestockAlert
	location  model.Location
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{
		balances: make(map[uuid.UUID]*model.InventoryBalance),
		location: model.Location{ID: uuid.New(), Name: "Main Station", Active: true},
	}
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

func (r *stubInventoryRepo) LockBalanceTx(_ *gorm.DB, locationID, variantID uuid.UUID) (*model.InventoryBalance, error) {
	b, ok := r.balances[variantID]
	if !ok {
		b = &model.InventoryBalance{
			ID:               uuid.New(),
			LocationID:       locationID,
			ProductVariantID: variantID,
		}
		r.balances[variantID] = b
	}
	return b, nil
}

func (r *stubInventoryRepo) SaveBalanceTx(_ *gorm.DB, b *model.InventoryBalance) error {
	r.balances[b.ProductVariantID] = b
	return nil
}

func (r *stubInventoryRepo) CreateMovementTx(_ *gorm.DB, m *model.StockMovement) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubInventoryRepo) GetBalance(_ context.Context, _, variantID uuid.UUID) (*model.InventoryBalance, error) {
	b, ok := r.balances[variantID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubInventoryRepo) ListBalances(_ context.Context, _ uuid.UUID) ([]model.InventoryBalance, error) {
	out := make([]model.InventoryBalance, 0, len(r.balances))
	for _, b := range r.balances {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubInventoryRepo) ReceiptMovementsAsOf(_ context.Context, variantID uuid.UUID, asOf time.Time) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if m.ProductVariantID == variantID && m.MovementType == model.MovementPurchaseIn && !m.MovedAt.After(asOf) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubInventoryRepo) FirstLocation(_ context.Context) (*model.Location, error) {
	return &r.location, nil
}

func (r *stubInventoryRepo) CreateRestockAlert(_ context.Context, a *model.RestockAlert) error {
	r.alerts = append(r.alerts, *a)
	return nil
}

func (r *stubInventoryRepo) HasOpenRestockAlert(_ context.Context, variantID uuid.UUID) (bool, error) {
	for _, a := range r.alerts {
		if a.ProductVariantID == variantID && a.Status != "resolved" {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

type stubProductRepo struct {
	variants map[uuid.UUID]*model.ProductVariant
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{variants: make(map[uuid.UUID]*model.ProductVariant)}
}

func (r *stubProductRepo) addVariant(category string, sellingPrice, supplierCost decimal.Decimal) *model.ProductVariant {
	product := &model.Product{ID: uuid.New(), Name: "Product", Category: category, Active: true}
	v := &model.ProductVariant{
		ID:           uuid.New(),
		ProductID:    product.ID,
		SKU:          uuid.NewString()[:8],
		Name:         "Variant",
		SellingPrice: sellingPrice,
		SupplierCost: supplierCost,
		ReorderLevel: 5,
		Active:       true,
		Product:      product,
	}
	r.variants[v.ID] = v
	return v
}

func (r *stubProductRepo) FindVariantByID(_ context.Context, id uuid.UUID) (*model.ProductVariant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

type stubPromoRepo struct {
	promos      map[uuid.UUID]*model.PromoVoucher
	redemptions []model.PromoRedemption
}

func newStubPromoRepo() *stubPromoRepo {
	return &stubPromoRepo{promos: make(map[uuid.UUID]*model.PromoVoucher)}
}

func (r *stubPromoRepo) add(p *model.PromoVoucher) *model.PromoVoucher {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.promos[p.ID] = p
	return p
}

func (r *stubPromoRepo) FindByCode(_ context.Context, code string) (*model.PromoVoucher, error) {
	for _, p := range r.promos {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPromoRepo) LockByIDTx(_ *gorm.DB, id uuid.UUID) (*model.PromoVoucher, error) {
	p, ok := r.promos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPromoRepo) IncrementRedeemedTx(_ *gorm.DB, id uuid.UUID) error {
	r.promos[id].TimesRedeemed++
	return nil
}

func (r *stubPromoRepo) CreateRedemptionTx(_ *gorm.DB, red *model.PromoRedemption) error {
	if red.ID == uuid.Nil {
		red.ID = uuid.New()
	}
	r.redemptions = append(r.redemptions, *red)
	return nil
}

func (r *stubPromoRepo) Create(_ context.Context, p *model.PromoVoucher) error {
	r.add(p)
	return nil
}

func (r *stubPromoRepo) List(_ context.Context) ([]model.PromoVoucher, error) {
	out := make([]model.PromoVoucher, 0, len(r.promos))
	for _, p := range r.promos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPromoRepo) Discontinue(_ context.Context, id uuid.UUID, byUserID uuid.UUID) error {
	p, ok := r.promos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsActive = false
	p.DiscontinuedByUserID = &byUserID
	return nil
}

var _ repository.PromoRepository = (*stubPromoRepo)(nil)

type stubAuditRepo struct {
	logs []model.AuditLog
}

func (r *stubAuditRepo) CreateTx(_ *gorm.DB, a *model.AuditLog) error {
	r.logs = append(r.logs, *a)
	return nil
}

var _ repository.AuditRepository = (*stubAuditRepo)(nil)

type stubLedgerRepo struct {
	entries  []*model.LedgerEntry
	accounts map[model.AccountCode]*model.ChartOfAccount
}

func newStubLedgerRepo() *stubLedgerRepo {
	r := &stubLedgerRepo{accounts: make(map[model.AccountCode]*model.ChartOfAccount)}
	for code, account := range model.DefaultAccounts {
		a := account
		a.ID = uuid.New()
		r.accounts[code] = &a
	}
	return r
}

func (r *stubLedgerRepo) FindEntryByReferenceTx(_ *gorm.DB, kind model.RefKind, id uuid.UUID) (*model.LedgerEntry, error) {
	for _, e := range r.entries {
		if e.ReferenceKind == kind && e.ReferenceID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLedgerRepo) CreateEntryTx(_ *gorm.DB, e *model.LedgerEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *stubLedgerRepo) FindAccountByCode(_ context.Context, code model.AccountCode) (*model.ChartOfAccount, error) {
	a, ok := r.accounts[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubLedgerRepo) ListEntriesByDate(_ context.Context, date string) ([]model.LedgerEntry, error) {
	var out []model.LedgerEntry
	for _, e := range r.entries {
		if e.EntryDate == date {
			out = append(out, *e)
		}
	}
	return out, nil
}

var _ repository.LedgerRepository = (*stubLedgerRepo)(nil)

type stubSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	items      []model.SaleItem
	receipts   []model.Receipt
	deliveries []model.Delivery
	closes     map[string]bool
	saleSeq    int
	receiptSeq int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale), closes: make(map[string]bool)}
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) CreateItemTx(_ *gorm.DB, item *model.SaleItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) NextSaleSequenceTx(_ *gorm.DB, _ time.Time) (int, error) {
	r.saleSeq++
	return r.saleSeq, nil
}

func (r *stubSaleRepo) CreateReceiptTx(_ *gorm.DB, rec *model.Receipt) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.receipts = append(r.receipts, *rec)
	return nil
}

func (r *stubSaleRepo) NextReceiptSequenceTx(_ *gorm.DB) (int, error) {
	r.receiptSeq++
	return r.receiptSeq, nil
}

func (r *stubSaleRepo) FindReceiptBySaleID(_ context.Context, saleID uuid.UUID) (*model.Receipt, error) {
	for _, rec := range r.receipts {
		if rec.SaleID == saleID {
			return &rec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubSaleRepo) CreateDeliveryTx(_ *gorm.DB, d *model.Delivery) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.deliveries = append(r.deliveries, *d)
	return nil
}

func (r *stubSaleRepo) IsSaleLockedTx(_ *gorm.DB, businessDate string) (bool, error) {
	return r.closes[businessDate], nil
}

func (r *stubSaleRepo) IsSaleLocked(_ context.Context, businessDate string) (bool, error) {
	return r.closes[businessDate], nil
}

func (r *stubSaleRepo) CreateDailyCloseTx(_ *gorm.DB, c *model.DailyClose) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.closes[c.BusinessDate] = true
	return nil
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

type stubPaymentRepo struct {
	payments []model.Payment
}

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.payments = append(r.payments, *p)
	return nil
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

type stubCustomerRepo struct {
	customers map[uuid.UUID]*model.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[uuid.UUID]*model.Customer)}
}

func (r *stubCustomerRepo) add() *model.Customer {
	c := &model.Customer{ID: uuid.New(), Name: "Walk-in", Active: true}
	r.customers[c.ID] = c
	return c
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)
