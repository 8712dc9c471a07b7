package services

import (
	"github.com/shopspring/decimal"

	"tharwa/internal/models"
)

// InvestorServicer defines the contract for investor-related business logic.
type InvestorServicer interface {
	Register(fullName, username, email, password string) (*models.Investor, error)
	Authenticate(identifier, password string) (*models.Investor, error)
	GetByID(id string) (*models.Investor, error)
	UpdateProfile(id, username, email, password string) (*models.Investor, error)
}

// AssetInput holds the fields needed to build a new asset. The purchase date
// crosses this boundary as a YYYY-MM-DD string; the validation rules are the
// single authority on its shape before any parsing happens.
type AssetInput struct {
	Name          string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	PurchaseDate  string
	AssetType     string
	Halal         bool
}

// AssetUpdate holds the fields of an asset edit. Edits overwrite every field
// together; the purchase date is not editable.
type AssetUpdate struct {
	Name          string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	AssetType     string
	Halal         bool
}

// PortfolioSummary is the aggregate view of one investor's portfolio.
type PortfolioSummary struct {
	Assets       []models.Asset       `json:"assets"`
	BankAccounts []models.BankAccount `json:"bank_accounts"`
	TotalValue   decimal.Decimal      `json:"total_value"`
	ZakatDue     decimal.Decimal      `json:"zakat_due"`
}

// PortfolioServicer defines the contract for portfolio mutations and queries.
type PortfolioServicer interface {
	Summary(investorID string) (*PortfolioSummary, error)
	AddAsset(investorID string, in AssetInput) (*models.Asset, error)
	EditAsset(investorID string, index int, in AssetUpdate) (*models.Asset, error)
	SellFromAsset(investorID string, index int, pct decimal.Decimal) (*models.Asset, error)
	ChangeAssetState(investorID string, index int, next models.AssetState) (*models.Asset, error)
	RemoveAsset(investorID, name string) error
	FindAsset(investorID, name string) (*models.Asset, error)
	TotalValue(investorID string) (decimal.Decimal, error)
	ZakatDue(investorID string) (decimal.Decimal, error)
}

// LinkChallenge is a pending bank-account link awaiting OTP confirmation.
// The OTP is returned to the caller because the second factor is simulated;
// nothing is persisted until the challenge is confirmed.
type LinkChallenge struct {
	ID  string `json:"id"`
	OTP string `json:"otp"`

	investorID string
	account    models.BankAccount
}

// BankServicer defines the contract for linking bank accounts and for the
// cross-investor registry operations.
type BankServicer interface {
	InitiateLink(investorID, cardNumber, holderName, expiryDate string) (*LinkChallenge, error)
	ConfirmLink(investorID, challengeID, otp string) (*models.BankAccount, error)
	FindByOwnerID(ownerID string) (*models.BankAccount, error)
	ExtendExpiry(ownerID, newExpiry string) (*models.BankAccount, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(investorID, action, entityType, entityID string, details map[string]interface{})
}
