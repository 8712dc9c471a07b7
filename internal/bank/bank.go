// Package bank holds the cross-investor view of linked bank accounts.
// The registry keeps copies of accounts keyed to their owners; it does not
// own their lifecycle and can be rebuilt from the store at any time.
package bank

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"tharwa/internal/models"
)

// Registry is a read-mostly list of bank accounts across all investors.
// It must be constructed explicitly and passed where needed; there is no
// process-wide instance.
type Registry struct {
	mu       sync.RWMutex
	accounts []models.BankAccount
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{accounts: []models.BankAccount{}}
}

// Add records a copy of the account.
func (r *Registry) Add(acct models.BankAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = append(r.accounts, acct)
}

// FindByOwnerID returns a copy of the first account owned by ownerID.
func (r *Registry) FindByOwnerID(ownerID string) (*models.BankAccount, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.accounts {
		if r.accounts[i].OwnerID == ownerID {
			acct := r.accounts[i]
			return &acct, true
		}
	}
	return nil, false
}

// ExtendExpiry overwrites the expiry date on the first account owned by
// ownerID. It reports whether such an account existed.
func (r *Registry) ExtendExpiry(ownerID string, newDate time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].OwnerID == ownerID {
			r.accounts[i].ExtendExpiry(newDate)
			return true
		}
	}
	return false
}

// Rebuild replaces the registry contents, e.g. after loading the store.
func (r *Registry) Rebuild(accounts []models.BankAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = append([]models.BankAccount{}, accounts...)
}

// Len returns the number of registered accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

// otpSpan covers the six-digit codes 100000 through 999999, so generated
// codes always have exactly six digits.
var otpSpan = big.NewInt(900000)

// GenerateOTP produces a uniformly random six-digit one-time password.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}
