package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopcart/pos-api/internal/application/service"
	"github.com/shopcart/pos-api/internal/config"
	"github.com/shopcart/pos-api/internal/infrastructure/database"
	"github.com/shopcart/pos-api/internal/infrastructure/repository"
	"github.com/shopcart/pos-api/internal/presentation/http/handler"
	"github.com/shopcart/pos-api/internal/presentation/http/routes"
	"github.com/shopcart/pos-api/pkg/email"
	"github.com/shopcart/pos-api/pkg/printer"
	"github.com/shopcart/pos-api/pkg/utils"
	"github.com/shopcart/pos-api/pkg/validator"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register POS binding rules (mobile, ddmmyyyy)
	if err := validator.RegisterBindingRules(); err != nil {
		log.Fatalf("Failed to register binding rules: %v", err)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	sessions := service.NewSessionManager(time.Duration(cfg.POS.SessionTTLMinutes) * time.Minute)
	authService := service.NewAuthService(employeeRepo, jwtManager)
	billingService := service.NewBillingService(sessions, customerRepo, invoiceRepo, cfg.POS.CurrencySymbol)
	customerService := service.NewCustomerService(customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, emailService, thermalPrinter, cfg.POS.StoreName, cfg.POS.CurrencySymbol)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Session:  handler.NewSessionHandler(billingService, invoiceService),
		Customer: handler.NewCustomerHandler(customerService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
