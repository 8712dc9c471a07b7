package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "tharwa/internal/errors"
)

// AssetState represents the lifecycle state of an asset.
type AssetState string

const (
	AssetStateNew    AssetState = "new"
	AssetStateActive AssetState = "active"
	AssetStateFrozen AssetState = "frozen"
	AssetStateSold   AssetState = "sold"
)

// assetTransitions is the explicit transition table. Sold is reachable from
// every other state (a full liquidation can hit a frozen holding too) and is
// terminal. Frozen holdings can only thaw back to active.
var assetTransitions = map[AssetState]map[AssetState]bool{
	AssetStateNew:    {AssetStateActive: true, AssetStateFrozen: true, AssetStateSold: true},
	AssetStateActive: {AssetStateFrozen: true, AssetStateSold: true},
	AssetStateFrozen: {AssetStateActive: true, AssetStateSold: true},
	AssetStateSold:   {},
}

// IsValid reports whether s is one of the known asset states.
func (s AssetState) IsValid() bool {
	switch s {
	case AssetStateNew, AssetStateActive, AssetStateFrozen, AssetStateSold:
		return true
	}
	return false
}

// Asset represents a single holding: what it is, how much is owned, what it
// cost, and where it sits in its lifecycle.
type Asset struct {
	Base
	InvestorID    string          `gorm:"type:uuid;index;not null" json:"-"`
	Name          string          `gorm:"not null" json:"name"`
	Quantity      decimal.Decimal `gorm:"type:numeric;not null" json:"quantity"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric;not null" json:"purchase_price"`
	PurchaseDate  time.Time       `gorm:"not null" json:"purchase_date"`
	AssetType     string          `json:"asset_type"`
	Halal         bool            `json:"halal"`
	State         AssetState      `gorm:"not null" json:"state"`

	// Position preserves the listing order across snapshot rewrites; the
	// session layer selects assets by 0-based index into this order.
	Position int `gorm:"not null;default:0" json:"-"`
}

// Value returns quantity × purchase price for this holding.
func (a *Asset) Value() decimal.Decimal {
	return a.Quantity.Mul(a.PurchasePrice)
}

// Update overwrites the mutable fields unconditionally. Validating the new
// values is the caller's job; Update itself never refuses.
func (a *Asset) Update(name string, quantity, purchasePrice decimal.Decimal, assetType string, halal bool) {
	a.Name = name
	a.Quantity = quantity
	a.PurchasePrice = purchasePrice
	a.AssetType = assetType
	a.Halal = halal
}

// TransitionTo moves the asset to next if the transition table allows it.
// Illegal moves (sold → anything, frozen → new, ...) are rejected and leave
// the asset unchanged.
func (a *Asset) TransitionTo(next AssetState) error {
	if !next.IsValid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Unknown asset state: "+string(next))
	}
	if !assetTransitions[a.State][next] {
		return apperrors.WithMessage(apperrors.ErrIllegalStateChange,
			"Asset cannot move from "+string(a.State)+" to "+string(next))
	}
	a.State = next
	return nil
}

// AssetBuilder accumulates asset fields and constructs an Asset. Build
// rejects builders whose required fields were never set, rather than
// defaulting them silently.
type AssetBuilder struct {
	name          string
	quantity      decimal.Decimal
	purchasePrice decimal.Decimal
	purchaseDate  time.Time
	assetType     string
	halal         bool

	nameSet     bool
	quantitySet bool
	priceSet    bool
	dateSet     bool
}

// NewAssetBuilder returns an empty builder.
func NewAssetBuilder() *AssetBuilder {
	return &AssetBuilder{}
}

// Name sets the asset name.
func (b *AssetBuilder) Name(name string) *AssetBuilder {
	b.name = name
	b.nameSet = true
	return b
}

// Quantity sets the quantity owned.
func (b *AssetBuilder) Quantity(quantity decimal.Decimal) *AssetBuilder {
	b.quantity = quantity
	b.quantitySet = true
	return b
}

// PurchasePrice sets the per-unit purchase price.
func (b *AssetBuilder) PurchasePrice(price decimal.Decimal) *AssetBuilder {
	b.purchasePrice = price
	b.priceSet = true
	return b
}

// PurchaseDate sets the purchase date.
func (b *AssetBuilder) PurchaseDate(date time.Time) *AssetBuilder {
	b.purchaseDate = date
	b.dateSet = true
	return b
}

// AssetType sets the asset category.
func (b *AssetBuilder) AssetType(assetType string) *AssetBuilder {
	b.assetType = assetType
	return b
}

// Halal sets the halal classification.
func (b *AssetBuilder) Halal(halal bool) *AssetBuilder {
	b.halal = halal
	return b
}

// Build constructs the Asset. The state is always new at build time.
// It fails if name, quantity, purchase price, or purchase date were never
// set, if quantity or price is negative, or if the purchase date is in the
// future.
func (b *AssetBuilder) Build() (*Asset, error) {
	switch {
	case !b.nameSet || b.name == "":
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset name is required")
	case !b.quantitySet:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset quantity is required")
	case !b.priceSet:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset purchase price is required")
	case !b.dateSet:
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset purchase date is required")
	}
	if b.quantity.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset quantity cannot be negative")
	}
	if b.purchasePrice.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Asset purchase price cannot be negative")
	}
	if b.purchaseDate.After(time.Now()) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Purchase date cannot be in the future")
	}

	return &Asset{
		Name:          b.name,
		Quantity:      b.quantity,
		PurchasePrice: b.purchasePrice,
		PurchaseDate:  b.purchaseDate,
		AssetType:     b.assetType,
		Halal:         b.halal,
		State:         AssetStateNew,
	}, nil
}
