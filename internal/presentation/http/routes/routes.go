package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopcart/pos-api/internal/config"
	domainRepo "github.com/shopcart/pos-api/internal/domain/repository"
	"github.com/shopcart/pos-api/internal/presentation/http/handler"
	"github.com/shopcart/pos-api/internal/presentation/http/middleware"
	"github.com/shopcart/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Session  *handler.SessionHandler
	Customer *handler.CustomerHandler
	Invoice  *handler.InvoiceHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo})

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.Session.Create)
		sessions.GET("/:id", h.Session.Get)
		sessions.DELETE("/:id", h.Session.Close)
		sessions.POST("/:id/items", h.Session.AddItem)
		sessions.DELETE("/:id/items", h.Session.ClearCart)
		sessions.PUT("/:id/customer", h.Session.AttachCustomer)
		sessions.DELETE("/:id/customer", h.Session.DetachCustomer)
		sessions.POST("/:id/bill", h.Session.CalculateBill)
		// Checkout is the one mutation that mints money records, so it
		// gets the retry guard.
		sessions.POST("/:id/checkout", idempotency, h.Session.Checkout)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/suggestions", h.Customer.Suggestions)
		customers.GET("/:mobile", h.Customer.Get)
		customers.PUT("/:mobile", h.Customer.Upsert)
	}

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("/:id/email", h.Invoice.Email)
		invoices.POST("/:id/print", h.Invoice.Print)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/sales", h.Invoice.SalesReport)
	}
}
