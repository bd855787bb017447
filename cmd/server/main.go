package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "librarium-backend/internal/api/http"
	"librarium-backend/internal/config"
	"librarium-backend/internal/logger"
	"librarium-backend/internal/repository/postgres"
	"librarium-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local .env overrides, ignored when absent
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Librarium Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email)
	rules := service.NewRuleCatalog(store)
	userSvc := service.NewUserService(store, rules)
	materialSvc := service.NewMaterialService(store)
	loanSvc := service.NewLoanService(store, rules)
	overdueSvc := service.NewOverdueQueryService(store)
	reservationSvc := service.NewReservationService(store)
	billingSvc := service.NewBillingService(store, rules, emailSvc, cfg.Billing.LateFeeInvoiceReason)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Users:        userSvc,
		Materials:    materialSvc,
		Loans:        loanSvc,
		Overdue:      overdueSvc,
		Reservations: reservationSvc,
		Billing:      billingSvc,
	})

	addr := cfg.GetServerAddress()
	logger.Info("HTTP server listening", "address", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
