package router

import (
	"github.com/gin-gonic/gin"

	"kiosco/internal/command"
	"kiosco/internal/config"
	"kiosco/internal/handler"
	"kiosco/internal/middleware"
	"kiosco/internal/repository"
	"kiosco/internal/service"
	"kiosco/internal/storage"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Registry ← Service ← Repository ← Handle
func New(cfg *config.Config, h *storage.Handle) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(h)
	invoiceRepo := repository.NewInvoiceRepository(h)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo)
	receiptSvc := service.NewReceiptService(invoiceRepo, cfg.ReceiptStoragePath)

	// ── Command boundary ─────────────────────────────────────────────────────
	reg := command.NewRegistry()
	command.BindAll(reg, productSvc, invoiceSvc, receiptSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	commandsH := handler.NewCommandsHandler(reg)
	r.GET("/health", handler.Health(h))
	r.POST("/invoke/:command", commandsH.Invoke)

	return r
}
