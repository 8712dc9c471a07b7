package services

import (
	"github.com/shopspring/decimal"

	apperrors "tharwa/internal/errors"
	"tharwa/internal/models"
	"tharwa/internal/store"
)

// portfolioService handles portfolio mutations and aggregate queries. Every
// mutation runs as a read-modify-write of the whole investor collection
// through the store, so refusals leave the saved state untouched.
type portfolioService struct {
	store *store.InvestorStore
	audit AuditServicer
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(st *store.InvestorStore, audit AuditServicer) PortfolioServicer {
	return &portfolioService{store: st, audit: audit}
}

// Summary returns the investor's assets, linked accounts, and aggregates.
func (s *portfolioService) Summary(investorID string) (*PortfolioSummary, error) {
	inv, err := s.store.Get(investorID)
	if err != nil {
		return nil, err
	}
	return &PortfolioSummary{
		Assets:       inv.Portfolio.Assets,
		BankAccounts: inv.Portfolio.BankAccounts,
		TotalValue:   inv.Portfolio.TotalValue(),
		ZakatDue:     inv.Portfolio.ZakatDue(),
	}, nil
}

// AddAsset builds a new asset from validated input and appends it to the
// investor's portfolio.
func (s *portfolioService) AddAsset(investorID string, in AssetInput) (*models.Asset, error) {
	purchaseDate, err := parseDate(in.PurchaseDate)
	if err != nil {
		return nil, err
	}

	asset, err := models.NewAssetBuilder().
		Name(in.Name).
		Quantity(in.Quantity).
		PurchasePrice(in.PurchasePrice).
		PurchaseDate(purchaseDate).
		AssetType(in.AssetType).
		Halal(in.Halal).
		Build()
	if err != nil {
		return nil, err
	}

	var added *models.Asset
	_, err = s.store.Mutate(investorID, func(inv *models.Investor) error {
		inv.Portfolio.AddAsset(asset)
		added = &inv.Portfolio.Assets[len(inv.Portfolio.Assets)-1]
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(investorID, "asset.add", "asset", added.ID, map[string]interface{}{
		"name":     added.Name,
		"quantity": added.Quantity.String(),
	})
	return added, nil
}

// EditAsset overwrites the mutable fields of the asset at index. The new
// values are checked here; the asset's own Update never refuses.
func (s *portfolioService) EditAsset(investorID string, index int, in AssetUpdate) (*models.Asset, error) {
	if in.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset name is required")
	}
	if in.Quantity.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset quantity cannot be negative")
	}
	if in.PurchasePrice.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset purchase price cannot be negative")
	}

	var edited *models.Asset
	_, err := s.store.Mutate(investorID, func(inv *models.Investor) error {
		asset, err := inv.Portfolio.Asset(index)
		if err != nil {
			return err
		}
		asset.Update(in.Name, in.Quantity, in.PurchasePrice, in.AssetType, in.Halal)
		inv.Portfolio.TotalValue()
		edited = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(investorID, "asset.edit", "asset", edited.ID, map[string]interface{}{
		"name": edited.Name,
	})
	return edited, nil
}

// SellFromAsset sells pct percent of the asset at index.
func (s *portfolioService) SellFromAsset(investorID string, index int, pct decimal.Decimal) (*models.Asset, error) {
	var sold *models.Asset
	_, err := s.store.Mutate(investorID, func(inv *models.Investor) error {
		if err := inv.Portfolio.SellFromAsset(pct, index); err != nil {
			return err
		}
		asset, err := inv.Portfolio.Asset(index)
		if err != nil {
			return err
		}
		sold = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(investorID, "asset.sell", "asset", sold.ID, map[string]interface{}{
		"percentage": pct.String(),
		"remaining":  sold.Quantity.String(),
	})
	return sold, nil
}

// ChangeAssetState applies a validated lifecycle transition to the asset at
// index.
func (s *portfolioService) ChangeAssetState(investorID string, index int, next models.AssetState) (*models.Asset, error) {
	var changed *models.Asset
	_, err := s.store.Mutate(investorID, func(inv *models.Investor) error {
		asset, err := inv.Portfolio.Asset(index)
		if err != nil {
			return err
		}
		if err := asset.TransitionTo(next); err != nil {
			return err
		}
		changed = asset
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(investorID, "asset.state", "asset", changed.ID, map[string]interface{}{
		"state": string(next),
	})
	return changed, nil
}

// RemoveAsset removes the first asset matching name, case-insensitively.
func (s *portfolioService) RemoveAsset(investorID, name string) error {
	_, err := s.store.Mutate(investorID, func(inv *models.Investor) error {
		return inv.Portfolio.RemoveAsset(name)
	})
	if err != nil {
		return err
	}

	s.audit.Log(investorID, "asset.remove", "asset", "", map[string]interface{}{
		"name": name,
	})
	return nil
}

// FindAsset returns the first asset matching name, case-insensitively.
func (s *portfolioService) FindAsset(investorID, name string) (*models.Asset, error) {
	inv, err := s.store.Get(investorID)
	if err != nil {
		return nil, err
	}
	return inv.Portfolio.FindAsset(name)
}

// TotalValue returns the recomputed total portfolio value.
func (s *portfolioService) TotalValue(investorID string) (decimal.Decimal, error) {
	inv, err := s.store.Get(investorID)
	if err != nil {
		return decimal.Zero, err
	}
	return inv.Portfolio.TotalValue(), nil
}

// ZakatDue returns the zakat obligation over the halal holdings.
func (s *portfolioService) ZakatDue(investorID string) (decimal.Decimal, error) {
	inv, err := s.store.Get(investorID)
	if err != nil {
		return decimal.Zero, err
	}
	return inv.Portfolio.ZakatDue(), nil
}
