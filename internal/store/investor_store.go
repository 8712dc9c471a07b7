// Package store persists the investor list as a whole-collection snapshot.
// Every save rewrites the entire collection in one transaction; there are no
// record-level appends, so a failed save never leaves a torn store.
package store

import (
	"errors"
	"strings"
	"sync"

	"gorm.io/gorm"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
)

// isNoData reports whether err is the empty-store condition rather than a
// real failure.
func isNoData(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Code == apperrors.ErrNoData.Code
}

// InvestorStore reads and writes the full investor collection. All
// read-modify-write cycles run under a single mutual-exclusion boundary.
type InvestorStore struct {
	db *gorm.DB
	mu sync.Mutex
}

// NewInvestorStore creates a store over the given database.
func NewInvestorStore(db *gorm.DB) *InvestorStore {
	return &InvestorStore{db: db}
}

// LoadAll returns every saved investor with portfolio contents attached.
// It returns ErrNoData when nothing has ever been saved.
func (s *InvestorStore) LoadAll() ([]*models.Investor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAll()
}

// SaveAll replaces the entire saved collection with the given investors.
func (s *InvestorStore) SaveAll(investors []*models.Investor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveAll(investors)
}

// Add appends a new investor to the collection and rewrites it. Usernames
// must be unique across the store.
func (s *InvestorStore) Add(inv *models.Investor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	investors, err := s.loadAll()
	if err != nil {
		if !isNoData(err) {
			return err
		}
		investors = []*models.Investor{}
	}

	for _, existing := range investors {
		if strings.EqualFold(existing.Username, inv.Username) {
			return apperrors.ErrDuplicateUsername
		}
	}

	investors = append(investors, inv)
	return s.saveAll(investors)
}

// Get returns the investor with the given id.
func (s *InvestorStore) Get(id string) (*models.Investor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	investors, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	return findByID(investors, id)
}

// Mutate loads the collection, applies fn to the investor with the given id,
// and rewrites the collection. If fn returns an error nothing is saved, so a
// refused mutation leaves the store untouched.
func (s *InvestorStore) Mutate(id string, fn func(*models.Investor) error) (*models.Investor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	investors, err := s.loadAll()
	if err != nil {
		return nil, err
	}

	inv, err := findByID(investors, id)
	if err != nil {
		return nil, err
	}

	if err := fn(inv); err != nil {
		return nil, err
	}

	if err := s.saveAll(investors); err != nil {
		return nil, err
	}
	return inv, nil
}

// AllBankAccounts returns every linked bank account across all investors,
// e.g. to rebuild the bank registry at startup. An empty store yields an
// empty list, not an error.
func (s *InvestorStore) AllBankAccounts() ([]models.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	investors, err := s.loadAll()
	if err != nil {
		if isNoData(err) {
			return []models.BankAccount{}, nil
		}
		return nil, err
	}

	var accounts []models.BankAccount
	for _, inv := range investors {
		accounts = append(accounts, inv.Portfolio.BankAccounts...)
	}
	return accounts, nil
}

func (s *InvestorStore) loadAll() ([]*models.Investor, error) {
	var rows []models.Investor
	if err := s.db.Order("username").Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptStore, err)
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNoData
	}

	var assets []models.Asset
	if err := s.db.Order("position").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptStore, err)
	}
	assetsByOwner := make(map[string][]models.Asset)
	for _, a := range assets {
		assetsByOwner[a.InvestorID] = append(assetsByOwner[a.InvestorID], a)
	}

	var accounts []models.BankAccount
	if err := s.db.Order("position").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCorruptStore, err)
	}
	accountsByOwner := make(map[string][]models.BankAccount)
	for _, b := range accounts {
		accountsByOwner[b.OwnerID] = append(accountsByOwner[b.OwnerID], b)
	}

	investors := make([]*models.Investor, 0, len(rows))
	for i := range rows {
		inv := rows[i]
		inv.Portfolio = models.NewPortfolio()
		if owned, ok := assetsByOwner[inv.ID]; ok {
			inv.Portfolio.Assets = owned
		}
		if linked, ok := accountsByOwner[inv.ID]; ok {
			inv.Portfolio.BankAccounts = linked
		}
		// Warm the cached total so loaded portfolios match saved ones.
		inv.Portfolio.TotalValue()
		investors = append(investors, &inv)
	}
	return investors, nil
}

func (s *InvestorStore) saveAll(investors []*models.Investor) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"assets", "bank_accounts", "investors"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}

		for _, inv := range investors {
			if err := tx.Create(inv).Error; err != nil {
				return err
			}
			for i := range inv.Portfolio.Assets {
				asset := &inv.Portfolio.Assets[i]
				asset.InvestorID = inv.ID
				asset.Position = i
				if err := tx.Create(asset).Error; err != nil {
					return err
				}
			}
			for i := range inv.Portfolio.BankAccounts {
				acct := &inv.Portfolio.BankAccounts[i]
				acct.OwnerID = inv.ID
				acct.Position = i
				if err := tx.Create(acct).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func findByID(investors []*models.Investor, id string) (*models.Investor, error) {
	for _, inv := range investors {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, apperrors.ErrInvestorNotFound
}
