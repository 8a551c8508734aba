package router

import (
	"time"

	"lpgpos/internal/clock"
	"lpgpos/internal/config"
	"lpgpos/internal/handler"
	"lpgpos/internal/middleware"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"
	"lpgpos/internal/service"
	"lpgpos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, clk clock.Clock) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	promoRepo := repository.NewPromoRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	settingsSvc := service.NewSettingsService(settingsRepo)
	totalsSvc := service.NewSaleTotalsService(settingsSvc)
	discountSvc := service.NewDiscountService(promoRepo, auditRepo, settingsSvc)
	stockSvc := service.NewStockService(inventoryRepo, productRepo)
	costingSvc := service.NewCostingService(inventoryRepo, productRepo)
	ledgerSvc := service.NewLedgerService(ledgerRepo)
	accountingSvc := service.NewAccountingService(ledgerSvc)
	promoSvc := service.NewPromoService(promoRepo)
	dailyCloseSvc := service.NewDailyCloseService(saleRepo, auditRepo, clk)

	// Worker dispatcher — injected into checkout for post-commit jobs
	dispatcher := worker.NewDispatcher(rdb)

	checkoutSvc := service.NewCheckoutService(
		saleRepo, paymentRepo, customerRepo, productRepo, inventoryRepo,
		totalsSvc, discountSvc, stockSvc, costingSvc, accountingSvc,
		clk, dispatcher, log.Logger,
	)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	salesH := handler.NewSalesHandler(checkoutSvc, discountSvc, clk)
	inventoryH := handler.NewInventoryHandler(stockSvc, costingSvc, inventoryRepo, clk)
	promosH := handler.NewPromosHandler(promoSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc, dailyCloseSvc, clk)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	allRoles := middleware.RequireRole(model.RoleCashier, model.RoleManager, model.RoleAdmin)
	managerUp := middleware.RequireRole(model.RoleManager, model.RoleAdmin)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/sales", allRoles, salesH.Checkout)
		v1.GET("/sales", allRoles, salesH.ListSales)
		v1.GET("/sales/:id", allRoles, salesH.GetSale)
		v1.POST("/discounts/validate", allRoles, salesH.ValidateCode)

		inv := v1.Group("/inventory", managerUp)
		{
			inv.POST("/receipts", inventoryH.ReceiveStock)
			inv.GET("/balances/:location_id", inventoryH.ListBalances)
			inv.GET("/costs/:variant_id", inventoryH.GetUnitCost)
		}

		promos := v1.Group("/promos", managerUp)
		{
			promos.POST("", promosH.Create)
			promos.GET("", promosH.List)
			promos.DELETE("/:id", promosH.Discontinue)
		}

		v1.GET("/settings", managerUp, settingsH.Get)
		v1.PUT("/settings", adminOnly, settingsH.Update)
		v1.POST("/close-day", managerUp, settingsH.CloseDay)
	}

	return r
}
