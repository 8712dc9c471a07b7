package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tharwa/internal/bank"
	"tharwa/internal/handlers"
	"tharwa/internal/logger"
	"tharwa/internal/middleware"
	"tharwa/internal/models"
	"tharwa/internal/services"
	"tharwa/internal/store"
	"tharwa/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Registry *bank.Registry
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.Investor{},
		&models.Asset{},
		&models.BankAccount{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Persistence and registry
	investorStore := store.NewInvestorStore(db)
	registry := bank.NewRegistry()

	// Services
	auditService := services.NewAuditService(db)
	investorService := services.NewInvestorService(investorStore, auditService)
	portfolioService := services.NewPortfolioService(investorStore, auditService)
	bankService := services.NewBankService(investorStore, registry, auditService)

	// Handlers
	authHandler := handlers.NewAuthHandler(investorService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	bankHandler := handlers.NewBankHandler(bankService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)

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

	bankAccounts := protected.Group("/bank-accounts")
	bankAccounts.POST("", bankHandler.InitiateLink)
	bankAccounts.POST("/confirm", bankHandler.ConfirmLink)

	bankRegistry := protected.Group("/bank/accounts")
	bankRegistry.GET("/:ownerID", bankHandler.GetByOwner)
	bankRegistry.PUT("/:ownerID/expiry", bankHandler.ExtendExpiry)

	return &testApp{DB: db, Router: router, Registry: registry}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerInvestor registers a new investor and returns the token and investor ID.
func (app *testApp) registerInvestor(t *testing.T, username string) (token, investorID string) {
	t.Helper()
	body := fmt.Sprintf(`{"full_name":"Test Investor","username":%q,"email":%q,"password":"Secret123"}`,
		username, username+"@test.com")
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	investor := result["investor"].(map[string]interface{})
	return result["token"].(string), investor["id"].(string)
}

// addAsset adds an asset through the API and fails the test on any error.
func (app *testApp) addAsset(t *testing.T, token, name string, quantity, price int, halal bool) {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"quantity":%d,"purchase_price":%d,"purchase_date":"2024-06-15","asset_type":"stock","halal":%v}`,
		name, quantity, price, halal)
	rec := app.request("POST", "/api/v1/portfolio/assets", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add asset failed: %d %s", rec.Code, rec.Body.String())
	}
}
