package router

import (
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/config"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/handler"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/middleware"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/service"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(rdb, 1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	medicineRepo := repository.NewMedicineRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	priceChangeRepo := repository.NewPriceChangeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	pricingSvc := service.NewPricingService(doctorRepo, medicineRepo, priceChangeRepo)
	stockSvc := service.NewStockService(medicineRepo, invoiceRepo)
	medicineSvc := service.NewMedicineService(medicineRepo, invoiceRepo, rdb)
	doctorSvc := service.NewDoctorService(doctorRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, paymentRepo, doctorRepo, medicineRepo, pricingSvc, dispatcher)
	ledgerSvc := service.NewLedgerService(invoiceRepo, paymentRepo, doctorRepo)
	reportSvc := service.NewReportService(invoiceRepo)
	settingsSvc := service.NewSettingsService(settingsRepo)
	backupSvc := service.NewBackupService(medicineSvc, doctorSvc, invoiceSvc, settingsSvc, paymentRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	medicinesH := handler.NewMedicinesHandler(medicineSvc, stockSvc)
	doctorsH := handler.NewDoctorsHandler(doctorSvc, pricingSvc, ledgerSvc)
	invoicesH := handler.NewInvoicesHandler(invoiceSvc, ledgerSvc, cfg.PDFStoragePath)
	reportsH := handler.NewReportsHandler(reportSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc, backupSvc)
	priceCheckH := handler.NewPriceCheckHandler(medicineRepo, invoiceRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	// Price check — public, read-only
	r.GET("/v1/price/:medicine", priceCheckH.GetPrice)

	v1 := r.Group("/v1")
	{
		meds := v1.Group("/medicines")
		{
			meds.POST("", medicinesH.Upsert)
			meds.GET("", medicinesH.List)
			meds.GET("/:name", medicinesH.Get)
			meds.DELETE("/:name", medicinesH.Delete)
			meds.GET("/:name/billed", medicinesH.Billed)
			meds.PATCH("/:name/opening-stock", medicinesH.UpdateOpeningStock)
			meds.PATCH("/:name/sampling", medicinesH.UpdateSampling)
			meds.PATCH("/:name/reduce-stock", medicinesH.ReduceStock)
		}

		docs := v1.Group("/doctors")
		{
			docs.POST("", doctorsH.Create)
			docs.GET("", doctorsH.List)
			docs.GET("/:name", doctorsH.Get)
			docs.PUT("/:name", doctorsH.Update)
			docs.DELETE("/:name", doctorsH.Delete)
			docs.GET("/:name/prices", doctorsH.Prices)
			docs.GET("/:name/prices/:medicine", doctorsH.ResolvePrice)
			docs.PUT("/:name/prices/:medicine", doctorsH.SetPrice)
			docs.DELETE("/:name/prices/:medicine", doctorsH.ClearPrice)
			docs.GET("/:name/price-history", doctorsH.PriceHistory)
			docs.GET("/:name/ledger", doctorsH.Ledger)
		}

		invs := v1.Group("/invoices")
		{
			invs.POST("", invoicesH.Create)
			invs.GET("", invoicesH.List)
			invs.GET("/:number", invoicesH.Get)
			invs.DELETE("/:number", invoicesH.Delete)
			invs.POST("/:number/payments", invoicesH.RecordPayment)
			invs.GET("/:number/payments", invoicesH.ListPayments)
			invs.GET("/:number/pdf", invoicesH.DownloadPDF)
		}

		v1.GET("/reports/profit-loss", reportsH.ProfitLoss)
		v1.GET("/settings", settingsH.Get)
		v1.PUT("/settings", settingsH.Update)
		v1.GET("/backup", settingsH.Backup)
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
