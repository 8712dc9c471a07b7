package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"tharwa/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewTestInvestor builds an unpersisted investor with a hashed password and
// unique username. The plaintext password is always "Password123".
func NewTestInvestor(t *testing.T) *models.Investor {
	t.Helper()
	return NewTestInvestorWithUsername(t, fmt.Sprintf("investor%d", nextID()))
}

// NewTestInvestorWithUsername builds an unpersisted investor with the given username.
func NewTestInvestorWithUsername(t *testing.T, username string) *models.Investor {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	investor, err := models.NewInvestorBuilder().
		FullName("Test Investor").
		Username(username).
		Email(username + "@test.com").
		PasswordHash(string(hash)).
		Build()
	if err != nil {
		t.Fatalf("failed to build test investor: %v", err)
	}
	return investor
}

// CreateTestInvestor builds an investor and persists it directly.
func CreateTestInvestor(t *testing.T, db *gorm.DB) *models.Investor {
	t.Helper()

	investor := NewTestInvestor(t)
	if err := db.Create(investor).Error; err != nil {
		t.Fatalf("failed to create test investor: %v", err)
	}
	return investor
}

// NewTestAsset builds an unpersisted asset: 10 units at 100 per unit, halal,
// purchased yesterday.
func NewTestAsset(t *testing.T) *models.Asset {
	t.Helper()
	return NewTestAssetWithName(t, fmt.Sprintf("Test Asset %d", nextID()))
}

// NewTestAssetWithName builds an unpersisted asset with the given name.
func NewTestAssetWithName(t *testing.T, name string) *models.Asset {
	t.Helper()

	asset, err := models.NewAssetBuilder().
		Name(name).
		Quantity(decimal.NewFromInt(10)).
		PurchasePrice(decimal.NewFromInt(100)).
		PurchaseDate(time.Now().AddDate(0, 0, -1)).
		AssetType("stock").
		Halal(true).
		Build()
	if err != nil {
		t.Fatalf("failed to build test asset: %v", err)
	}
	return asset
}

// NewTestBankAccount builds an unpersisted bank account for the given owner,
// expiring one year from now.
func NewTestBankAccount(t *testing.T, ownerID string) *models.BankAccount {
	t.Helper()

	return &models.BankAccount{
		CardNumber: fmt.Sprintf("%016d", nextID()),
		HolderName: "Test Holder",
		ExpiryDate: time.Now().AddDate(1, 0, 0),
		OwnerID:    ownerID,
	}
}
