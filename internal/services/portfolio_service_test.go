package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"tharwa/internal/models"
	"tharwa/internal/store"
	"tharwa/internal/testutil"
)

func newPortfolioService(t *testing.T) (PortfolioServicer, *models.Investor) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	st := store.NewInvestorStore(db)
	investor := testutil.NewTestInvestor(t)
	testutil.AssertNoError(t, st.Add(investor))

	return NewPortfolioService(st, NewAuditService(db)), investor
}

func goldInput() AssetInput {
	return AssetInput{
		Name:          "Gold",
		Quantity:      decimal.NewFromInt(10),
		PurchasePrice: decimal.NewFromInt(100),
		PurchaseDate:  "2024-06-15",
		AssetType:     "commodity",
		Halal:         true,
	}
}

func TestAddAssetService(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		asset, err := svc.AddAsset(investor.ID, goldInput())
		testutil.AssertNoError(t, err)

		if asset.Name != "Gold" {
			t.Errorf("expected name Gold, got %s", asset.Name)
		}
		if asset.State != models.AssetStateNew {
			t.Errorf("expected new state, got %s", asset.State)
		}

		summary, err := svc.Summary(investor.ID)
		testutil.AssertNoError(t, err)
		if len(summary.Assets) != 1 {
			t.Fatalf("expected 1 asset in summary, got %d", len(summary.Assets))
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), summary.TotalValue)
	})

	t.Run("malformed_date", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		in := goldInput()
		in.PurchaseDate = "15/06/2024"
		_, err := svc.AddAsset(investor.ID, in)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("impossible_calendar_date", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		in := goldInput()
		in.PurchaseDate = "2024-13-45"
		_, err := svc.AddAsset(investor.ID, in)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_quantity", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		in := goldInput()
		in.Quantity = decimal.NewFromInt(-5)
		_, err := svc.AddAsset(investor.ID, in)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_investor", func(t *testing.T) {
		svc, _ := newPortfolioService(t)
		_, err := svc.AddAsset("missing-id", goldInput())
		testutil.AssertAppError(t, err, "INVESTOR_NOT_FOUND")
	})
}

func TestEditAssetService(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		_, err := svc.AddAsset(investor.ID, goldInput())
		testutil.AssertNoError(t, err)

		edited, err := svc.EditAsset(investor.ID, 0, AssetUpdate{
			Name:          "Gold Bars",
			Quantity:      decimal.NewFromInt(20),
			PurchasePrice: decimal.NewFromInt(50),
			AssetType:     "commodity",
			Halal:         true,
		})
		testutil.AssertNoError(t, err)
		if edited.Name != "Gold Bars" {
			t.Errorf("expected name Gold Bars, got %s", edited.Name)
		}

		value, err := svc.TotalValue(investor.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), value)
	})

	t.Run("empty_name", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		_, err := svc.AddAsset(investor.ID, goldInput())
		testutil.AssertNoError(t, err)

		_, err = svc.EditAsset(investor.ID, 0, AssetUpdate{
			Quantity:      decimal.NewFromInt(1),
			PurchasePrice: decimal.NewFromInt(1),
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("index_out_of_range", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		_, err := svc.EditAsset(investor.ID, 0, AssetUpdate{
			Name:          "Gold",
			Quantity:      decimal.NewFromInt(1),
			PurchasePrice: decimal.NewFromInt(1),
		})
		testutil.AssertAppError(t, err, "ASSET_INDEX_OUT_OF_RANGE")
	})
}

func TestSellFromAssetService(t *testing.T) {
	t.Run("partial_sale_persists", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		_, err := svc.AddAsset(investor.ID, goldInput())
		testutil.AssertNoError(t, err)

		sold, err := svc.SellFromAsset(investor.ID, 0, decimal.NewFromInt(25))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromFloat(7.5), sold.Quantity)

		summary, err := svc.Summary(investor.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(750), summary.TotalValue)
	})

	t.Run("full_sale_marks_sold", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		_, err := svc.AddAsset(investor.ID, goldInput())
		testutil.AssertNoError(t, err)

		sold, err := svc.SellFromAsset(investor.ID, 0, decimal.NewFromInt(100))
		testutil.AssertNoError(t, err)
		if sold.State != models.AssetStateSold {
			t.Errorf("expected sold state, got %s", sold.State)
		}
	})

	t.Run("percentage_out_of_range", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		_, err := svc.AddAsset(investor.ID, goldInput())
		testutil.AssertNoError(t, err)

		for _, pct := range []int64{-1, 101, 150} {
			_, err := svc.SellFromAsset(investor.ID, 0, decimal.NewFromInt(pct))
			testutil.AssertAppError(t, err, "SELL_PERCENTAGE_OUT_OF_RANGE")
		}

		// The refused sale must not have touched the holding.
		value, err := svc.TotalValue(investor.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(1000), value)
	})
}

func TestChangeAssetStateService(t *testing.T) {
	t.Run("valid_transition", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		_, err := svc.AddAsset(investor.ID, goldInput())
		testutil.AssertNoError(t, err)

		changed, err := svc.ChangeAssetState(investor.ID, 0, models.AssetStateActive)
		testutil.AssertNoError(t, err)
		if changed.State != models.AssetStateActive {
			t.Errorf("expected active state, got %s", changed.State)
		}
	})

	t.Run("illegal_transition_persists_nothing", func(t *testing.T) {
		svc, investor := newPortfolioService(t)

		_, err := svc.AddAsset(investor.ID, goldInput())
		testutil.AssertNoError(t, err)

		_, err = svc.ChangeAssetState(investor.ID, 0, models.AssetStateSold)
		testutil.AssertNoError(t, err)

		_, err = svc.ChangeAssetState(investor.ID, 0, models.AssetStateActive)
		testutil.AssertAppError(t, err, "ILLEGAL_STATE_CHANGE")

		summary, err := svc.Summary(investor.ID)
		testutil.AssertNoError(t, err)
		if summary.Assets[0].State != models.AssetStateSold {
			t.Errorf("expected asset to stay sold, got %s", summary.Assets[0].State)
		}
	})
}

func TestRemoveAndFindAssetService(t *testing.T) {
	svc, investor := newPortfolioService(t)

	_, err := svc.AddAsset(investor.ID, goldInput())
	testutil.AssertNoError(t, err)

	found, err := svc.FindAsset(investor.ID, "gold")
	testutil.AssertNoError(t, err)
	if found.Name != "Gold" {
		t.Errorf("expected Gold, got %s", found.Name)
	}

	testutil.AssertNoError(t, svc.RemoveAsset(investor.ID, "GOLD"))

	_, err = svc.FindAsset(investor.ID, "gold")
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")

	err = svc.RemoveAsset(investor.ID, "gold")
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
}

func TestZakatDueService(t *testing.T) {
	svc, investor := newPortfolioService(t)

	_, err := svc.AddAsset(investor.ID, goldInput())
	testutil.AssertNoError(t, err)

	haram := goldInput()
	haram.Name = "Brewery Shares"
	haram.Halal = false
	_, err = svc.AddAsset(investor.ID, haram)
	testutil.AssertNoError(t, err)

	due, err := svc.ZakatDue(investor.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(25), due)

	value, err := svc.TotalValue(investor.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(2000), value)
}
