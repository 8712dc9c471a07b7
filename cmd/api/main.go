package main

import (
	"fmt"
	"net/http"
	"os"

	"tharwa/internal/bank"
	"tharwa/internal/config"
	"tharwa/internal/database"
	"tharwa/internal/handlers"
	"tharwa/internal/logger"
	"tharwa/internal/middleware"
	"tharwa/internal/services"
	"tharwa/internal/store"
	"tharwa/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom validation rules
	validator.Register()

	// Initialize persistence and the bank registry
	db := dbManager.DB()
	investorStore := store.NewInvestorStore(db)

	registry := bank.NewRegistry()
	accounts, err := investorStore.AllBankAccounts()
	if err != nil {
		return fmt.Errorf("failed to load bank accounts: %w", err)
	}
	registry.Rebuild(accounts)

	// Initialize services
	auditService := services.NewAuditService(db)
	investorService := services.NewInvestorService(investorStore, auditService)
	portfolioService := services.NewPortfolioService(investorStore, auditService)
	bankService := services.NewBankService(investorStore, registry, auditService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(investorService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	bankHandler := handlers.NewBankHandler(bankService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Investor profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)

	// Portfolio routes
	portfolio := protected.Group("/portfolio")
	portfolio.GET("", portfolioHandler.GetPortfolio)
	portfolio.GET("/value", portfolioHandler.GetTotalValue)
	portfolio.GET("/zakat", portfolioHandler.GetZakatDue)
	portfolio.GET("/assets", portfolioHandler.FindAsset)
	portfolio.POST("/assets", portfolioHandler.AddAsset)
	portfolio.PUT("/assets/:index", portfolioHandler.EditAsset)
	portfolio.POST("/assets/:index/sell", portfolioHandler.SellAsset)
	portfolio.PUT("/assets/:index/state", portfolioHandler.ChangeAssetState)
	portfolio.DELETE("/assets", portfolioHandler.RemoveAsset)

	// Bank account linking
	bankAccounts := protected.Group("/bank-accounts")
	bankAccounts.POST("", bankHandler.InitiateLink)
	bankAccounts.POST("/confirm", bankHandler.ConfirmLink)

	// Cross-investor registry lookups
	bankRegistry := protected.Group("/bank/accounts")
	bankRegistry.GET("/:ownerID", bankHandler.GetByOwner)
	bankRegistry.PUT("/:ownerID/expiry", bankHandler.ExtendExpiry)

	log.Infof("Starting Tharwa backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
