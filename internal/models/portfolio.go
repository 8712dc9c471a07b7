package models

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "tharwa/internal/errors"
)

// zakatRate is the levy applied to the value of halal holdings: 2.5%.
var zakatRate = decimal.New(25, -3)

var oneHundred = decimal.New(100, 0)

// Portfolio owns one investor's assets and linked bank accounts. The total
// value is a cached projection over the assets, recomputed after every
// mutation; it is never the source of truth.
type Portfolio struct {
	Assets       []Asset       `gorm:"-" json:"assets"`
	BankAccounts []BankAccount `gorm:"-" json:"bank_accounts"`

	totalValue decimal.Decimal
}

// NewPortfolio returns an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		Assets:       []Asset{},
		BankAccounts: []BankAccount{},
	}
}

// AddAsset appends the asset and recomputes the total value.
func (p *Portfolio) AddAsset(a *Asset) {
	p.Assets = append(p.Assets, *a)
	p.TotalValue()
}

// Asset returns a pointer to the asset at the given 0-based index of the
// current listing order. An out-of-range index is an error, never clamped.
func (p *Portfolio) Asset(index int) (*Asset, error) {
	if index < 0 || index >= len(p.Assets) {
		return nil, apperrors.ErrAssetIndexOutOfRange
	}
	return &p.Assets[index], nil
}

// FindAsset returns the first asset whose name matches, case-insensitively.
func (p *Portfolio) FindAsset(name string) (*Asset, error) {
	for i := range p.Assets {
		if strings.EqualFold(p.Assets[i].Name, name) {
			return &p.Assets[i], nil
		}
	}
	return nil, apperrors.ErrAssetNotFound
}

// RemoveAsset removes the first asset whose name matches, case-insensitively,
// and recomputes the total value. A missing asset is reported, not fatal.
func (p *Portfolio) RemoveAsset(name string) error {
	for i := range p.Assets {
		if strings.EqualFold(p.Assets[i].Name, name) {
			p.Assets = append(p.Assets[:i], p.Assets[i+1:]...)
			p.TotalValue()
			return nil
		}
	}
	return apperrors.ErrAssetNotFound
}

// SellFromAsset sells pct percent of the asset at the given index.
// pct must be within [0, 100]; anything else is refused with no mutation.
// The remaining quantity is quantity × (1 − pct/100); if nothing remains the
// asset is marked sold. The total value is recomputed on success.
func (p *Portfolio) SellFromAsset(pct decimal.Decimal, index int) error {
	if pct.IsNegative() || pct.GreaterThan(oneHundred) {
		return apperrors.ErrSellPercentageRange
	}

	asset, err := p.Asset(index)
	if err != nil {
		return err
	}

	soldQty := asset.Quantity.Mul(pct).Div(oneHundred)
	remaining := asset.Quantity.Sub(soldQty)

	asset.Quantity = remaining
	if remaining.Sign() <= 0 && asset.State != AssetStateSold {
		if err := asset.TransitionTo(AssetStateSold); err != nil {
			return err
		}
	}

	p.TotalValue()
	return nil
}

// TotalValue recomputes Σ quantity × purchase price over all assets,
// regardless of state, caches it, and returns it.
func (p *Portfolio) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for i := range p.Assets {
		total = total.Add(p.Assets[i].Value())
	}
	p.totalValue = total
	return total
}

// ZakatDue returns 2.5% of the value of halal-classified holdings.
// Non-halal assets are excluded entirely, not discounted.
func (p *Portfolio) ZakatDue() decimal.Decimal {
	due := decimal.Zero
	for i := range p.Assets {
		if p.Assets[i].Halal {
			due = due.Add(p.Assets[i].Value().Mul(zakatRate))
		}
	}
	return due
}

// AddBankAccount appends an already-verified bank account.
func (p *Portfolio) AddBankAccount(acct *BankAccount) {
	p.BankAccounts = append(p.BankAccounts, *acct)
}
