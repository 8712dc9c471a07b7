package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/middleware"
	"tharwa/internal/models"
	"tharwa/internal/services"
)

// AuthHandler handles registration, login, and profile requests.
type AuthHandler struct {
	investorService services.InvestorServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(investorService services.InvestorServicer) *AuthHandler {
	return &AuthHandler{investorService: investorService}
}

// RegisterRequest represents the signup request payload
type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required,person_name,max=100"`
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,strong_password,max=128"`
}

// LoginRequest represents the login request payload. The identifier may be
// either the username or the email.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the profile update payload. All fields are
// applied together or not at all.
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,strong_password,max=128"`
}

func investorJSON(inv *models.Investor) gin.H {
	return gin.H{
		"id":        inv.ID,
		"full_name": inv.FullName,
		"username":  inv.Username,
		"email":     inv.Email,
	}
}

// Register handles investor signup and returns a token for the new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.Register(req.FullName, req.Username, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(investor)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"investor": investorJSON(investor),
	})
}

// Login authenticates an investor by username or email plus password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.Authenticate(req.Identifier, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := middleware.GenerateToken(investor)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"investor": investorJSON(investor),
	})
}

// GetProfile returns the authenticated investor's profile.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	investor, err := h.investorService.GetByID(investorID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investorJSON(investor)})
}

// UpdateProfile overwrites the authenticated investor's username, email, and
// password together.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	investor, err := h.investorService.UpdateProfile(investorID, req.Username, req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"investor": investorJSON(investor)})
}
