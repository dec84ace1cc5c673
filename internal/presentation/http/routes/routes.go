package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/boumia-pos/internal/config"
	domainRepo "github.com/sangkips/boumia-pos/internal/domain/repository"
	"github.com/sangkips/boumia-pos/internal/presentation/http/handler"
	"github.com/sangkips/boumia-pos/internal/presentation/http/middleware"
	"github.com/sangkips/boumia-pos/pkg/metrics"
	"github.com/sangkips/boumia-pos/pkg/printer"
	"github.com/sangkips/boumia-pos/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Catalog  *handler.CatalogHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Printer  *handler.PrinterHandler
}

// PrinterStatus reports the thermal channel state for the health check.
type PrinterStatus interface {
	GetStatus() printer.Status
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Sessions        middleware.SessionResolver
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.SessionRateLimiter
	Printer         PrinterStatus
	Metrics         *metrics.Metrics
	Log             *zap.Logger
}

// NewRateLimiter builds the per-session limiter from configuration.
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.SessionRateLimiter {
	return middleware.NewSessionRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RatePerSecond(),
		BurstSize:         cfg.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(deps.Log))
	router.Use(middleware.Logger(deps.Log))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		}
		if deps.Printer != nil {
			body["printer"] = deps.Printer.GetStatus()
		}
		c.JSON(http.StatusOK, body)
	})

	if deps.Cfg.Metrics.Enabled && deps.Metrics != nil {
		path := deps.Cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(deps.Metrics.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.SessionMiddleware(deps.Sessions))

		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = NewRateLimiter(&deps.Cfg.RateLimit)
		}
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	registerCatalogRoutes(protected, h)
	registerCheckoutRoutes(protected, h, deps)
	registerOrderRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	catalog := protected.Group("/catalog")
	{
		catalog.GET("/products", h.Catalog.SearchProducts)
		catalog.GET("/customers", h.Catalog.SearchCustomers)
	}
}

func registerCheckoutRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		Log:  deps.Log,
	})

	checkout := protected.Group("/checkout")
	{
		checkout.GET("", h.Checkout.Get)
		checkout.POST("/items", h.Checkout.AddItem)
		checkout.PATCH("/items/:product_id", h.Checkout.UpdateItem)
		checkout.DELETE("/items/:product_id", h.Checkout.RemoveItem)
		checkout.PUT("/discount", h.Checkout.SetDiscount)
		checkout.PUT("/customer", h.Checkout.SelectCustomer)
		checkout.DELETE("/customer", h.Checkout.ClearCustomer)
		checkout.POST("/confirm", idempotent, h.Checkout.Confirm)
		checkout.POST("/save", idempotent, h.Checkout.Save)
		checkout.POST("/cancel", h.Checkout.Cancel)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.GET("/:id/receipt", h.Order.Receipt)
		orders.GET("/:id/receipt/preview", h.Order.Preview)
		orders.GET("/:id/receipt/a4", h.Order.A4)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/connect", h.Printer.Connect)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/receipt", h.Printer.PrintReceipt)
		printerGroup.GET("/jobs", h.Printer.ListJobs)
	}
}
