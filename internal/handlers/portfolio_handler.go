package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/services"
)

// PortfolioHandler handles asset and aggregate requests for the
// authenticated investor's portfolio.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// AddAssetRequest represents the payload for adding an asset.
type AddAssetRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date" binding:"required,date_shape"`
	AssetType     string          `json:"asset_type" binding:"max=50"`
	Halal         bool            `json:"halal"`
}

// EditAssetRequest represents the payload for editing an asset. Every field
// is overwritten together; the purchase date is not editable.
type EditAssetRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	AssetType     string          `json:"asset_type" binding:"max=50"`
	Halal         bool            `json:"halal"`
}

// SellAssetRequest represents the payload for a partial sale.
type SellAssetRequest struct {
	Percentage decimal.Decimal `json:"percentage"`
}

// ChangeStateRequest represents the payload for a lifecycle transition.
type ChangeStateRequest struct {
	State string `json:"state" binding:"required,asset_state"`
}

// GetPortfolio returns the full portfolio: assets, linked bank accounts,
// total value, and zakat due.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.portfolioService.Summary(investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": summary})
}

// AddAsset adds a new asset to the portfolio.
func (h *PortfolioHandler) AddAsset(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.portfolioService.AddAsset(investorID, services.AssetInput{
		Name:          req.Name,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		PurchaseDate:  req.PurchaseDate,
		AssetType:     req.AssetType,
		Halal:         req.Halal,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// EditAsset overwrites the asset at the given index.
func (h *PortfolioHandler) EditAsset(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req EditAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.portfolioService.EditAsset(investorID, index, services.AssetUpdate{
		Name:          req.Name,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		AssetType:     req.AssetType,
		Halal:         req.Halal,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// SellAsset sells a percentage of the asset at the given index.
func (h *PortfolioHandler) SellAsset(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SellAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.portfolioService.SellFromAsset(investorID, index, req.Percentage)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// ChangeAssetState applies a lifecycle transition to the asset at the given
// index.
func (h *PortfolioHandler) ChangeAssetState(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	index, err := parseIndexParam(c, "index")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ChangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.portfolioService.ChangeAssetState(investorID, index, models.AssetState(req.State))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// RemoveAsset removes the first asset matching the name query parameter,
// case-insensitively.
func (h *PortfolioHandler) RemoveAsset(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name := c.Query("name")
	if name == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Query parameter 'name' is required"))
		return
	}

	if err := h.portfolioService.RemoveAsset(investorID, name); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": name})
}

// FindAsset returns the first asset matching the name query parameter.
func (h *PortfolioHandler) FindAsset(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	name := c.Query("name")
	if name == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Query parameter 'name' is required"))
		return
	}

	asset, err := h.portfolioService.FindAsset(investorID, name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// GetTotalValue returns the recomputed total value of the portfolio.
func (h *PortfolioHandler) GetTotalValue(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	total, err := h.portfolioService.TotalValue(investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_value": total})
}

// GetZakatDue returns the zakat obligation over the halal holdings.
func (h *PortfolioHandler) GetZakatDue(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	due, err := h.portfolioService.ZakatDue(investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"zakat_due": due})
}
