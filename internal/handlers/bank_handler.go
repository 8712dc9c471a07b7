package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/services"
)

// BankHandler handles bank-account linking and registry lookups.
type BankHandler struct {
	bankService services.BankServicer
}

// NewBankHandler creates a new BankHandler
func NewBankHandler(bankService services.BankServicer) *BankHandler {
	return &BankHandler{bankService: bankService}
}

// InitiateLinkRequest represents the payload to start linking a card.
type InitiateLinkRequest struct {
	CardNumber string `json:"card_number" binding:"required,card_number"`
	HolderName string `json:"holder_name" binding:"required,person_name,max=100"`
	ExpiryDate string `json:"expiry_date" binding:"required,date_shape"`
}

// ConfirmLinkRequest represents the OTP confirmation payload.
type ConfirmLinkRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
}

// ExtendExpiryRequest represents the payload to extend a card's expiry.
type ExtendExpiryRequest struct {
	ExpiryDate string `json:"expiry_date" binding:"required,date_shape"`
}

// InitiateLink validates the card details and opens an OTP challenge. The
// OTP is included in the response because the second factor is simulated.
func (h *BankHandler) InitiateLink(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req InitiateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	challenge, err := h.bankService.InitiateLink(investorID, req.CardNumber, req.HolderName, req.ExpiryDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"challenge": challenge})
}

// ConfirmLink completes a pending link when the OTP matches.
func (h *BankHandler) ConfirmLink(c *gin.Context) {
	investorID, err := getInvestorID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ConfirmLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.bankService.ConfirmLink(investorID, req.ChallengeID, req.OTP)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"bank_account": account})
}

// GetByOwner looks up the first registered account for an owner id.
func (h *BankHandler) GetByOwner(c *gin.Context) {
	account, err := h.bankService.FindByOwnerID(c.Param("ownerID"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_account": account})
}

// ExtendExpiry overwrites the expiry date on the owner's account.
func (h *BankHandler) ExtendExpiry(c *gin.Context) {
	var req ExtendExpiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	account, err := h.bankService.ExtendExpiry(c.Param("ownerID"), req.ExpiryDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bank_account": account})
}
