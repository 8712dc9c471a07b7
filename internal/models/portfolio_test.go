package models_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tharwa/internal/models"
	"tharwa/internal/testutil"
)

func buildNamedAsset(t *testing.T, name string, quantity, price int64, halal bool) *models.Asset {
	t.Helper()

	asset, err := models.NewAssetBuilder().
		Name(name).
		Quantity(decimal.NewFromInt(quantity)).
		PurchasePrice(decimal.NewFromInt(price)).
		PurchaseDate(time.Now().AddDate(0, 0, -1)).
		AssetType("stock").
		Halal(halal).
		Build()
	testutil.AssertNoError(t, err)
	return asset
}

func TestPortfolioAddAndIndex(t *testing.T) {
	p := models.NewPortfolio()
	p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))
	p.AddAsset(buildNamedAsset(t, "Silver", 5, 20, true))

	first, err := p.Asset(0)
	testutil.AssertNoError(t, err)
	if first.Name != "Gold" {
		t.Errorf("expected Gold at index 0, got %s", first.Name)
	}

	second, err := p.Asset(1)
	testutil.AssertNoError(t, err)
	if second.Name != "Silver" {
		t.Errorf("expected Silver at index 1, got %s", second.Name)
	}

	_, err = p.Asset(2)
	testutil.AssertAppError(t, err, "ASSET_INDEX_OUT_OF_RANGE")

	_, err = p.Asset(-1)
	testutil.AssertAppError(t, err, "ASSET_INDEX_OUT_OF_RANGE")
}

func TestPortfolioFindAsset(t *testing.T) {
	p := models.NewPortfolio()
	p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))

	found, err := p.FindAsset("gOLD")
	testutil.AssertNoError(t, err)
	if found.Name != "Gold" {
		t.Errorf("expected case-insensitive match for Gold, got %s", found.Name)
	}

	_, err = p.FindAsset("Platinum")
	testutil.AssertAppError(t, err, "ASSET_NOT_FOUND")
}

func TestPortfolioRemoveAsset(t *testing.T) {
	p := models.NewPortfolio()
	p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))
	p.AddAsset(buildNamedAsset(t, "Silver", 5, 20, true))

	testutil.AssertNoError(t, p.RemoveAsset("GOLD"))
	if len(p.Assets) != 1 {
		t.Fatalf("expected 1 asset after removal, got %d", len(p.Assets))
	}
	testutil.AssertDecimalEqual(t, decimal.NewFromInt(100), p.TotalValue())

	testutil.AssertAppError(t, p.RemoveAsset("Gold"), "ASSET_NOT_FOUND")
}

func TestPortfolioSellFromAsset(t *testing.T) {
	t.Run("partial_sale", func(t *testing.T) {
		p := models.NewPortfolio()
		p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))

		testutil.AssertNoError(t, p.SellFromAsset(decimal.NewFromInt(50), 0))

		asset, err := p.Asset(0)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(5), asset.Quantity)
		if asset.State == models.AssetStateSold {
			t.Error("partial sale should not mark the asset sold")
		}
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(500), p.TotalValue())
	})

	t.Run("full_sale_marks_sold", func(t *testing.T) {
		p := models.NewPortfolio()
		p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))

		testutil.AssertNoError(t, p.SellFromAsset(decimal.NewFromInt(100), 0))

		asset, err := p.Asset(0)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.Zero, asset.Quantity)
		if asset.State != models.AssetStateSold {
			t.Errorf("expected sold state after full sale, got %s", asset.State)
		}
	})

	t.Run("sell_zero_is_noop", func(t *testing.T) {
		p := models.NewPortfolio()
		p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))

		testutil.AssertNoError(t, p.SellFromAsset(decimal.Zero, 0))

		asset, err := p.Asset(0)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(10), asset.Quantity)
	})

	t.Run("percentage_above_hundred_rejected", func(t *testing.T) {
		p := models.NewPortfolio()
		p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))

		testutil.AssertAppError(t, p.SellFromAsset(decimal.NewFromInt(150), 0), "SELL_PERCENTAGE_OUT_OF_RANGE")

		asset, err := p.Asset(0)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(10), asset.Quantity)
	})

	t.Run("negative_percentage_rejected", func(t *testing.T) {
		p := models.NewPortfolio()
		p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))

		testutil.AssertAppError(t, p.SellFromAsset(decimal.NewFromInt(-10), 0), "SELL_PERCENTAGE_OUT_OF_RANGE")

		asset, err := p.Asset(0)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(10), asset.Quantity)
	})

	t.Run("index_out_of_range", func(t *testing.T) {
		p := models.NewPortfolio()
		testutil.AssertAppError(t, p.SellFromAsset(decimal.NewFromInt(50), 0), "ASSET_INDEX_OUT_OF_RANGE")
	})

	t.Run("selling_from_sold_asset_stays_sold", func(t *testing.T) {
		p := models.NewPortfolio()
		p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))

		testutil.AssertNoError(t, p.SellFromAsset(decimal.NewFromInt(100), 0))
		testutil.AssertNoError(t, p.SellFromAsset(decimal.NewFromInt(100), 0))

		asset, err := p.Asset(0)
		testutil.AssertNoError(t, err)
		if asset.State != models.AssetStateSold {
			t.Errorf("expected asset to stay sold, got %s", asset.State)
		}
	})
}

func TestPortfolioTotalValue(t *testing.T) {
	p := models.NewPortfolio()
	testutil.AssertDecimalEqual(t, decimal.Zero, p.TotalValue())

	p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))
	p.AddAsset(buildNamedAsset(t, "Silver", 5, 20, false))

	testutil.AssertDecimalEqual(t, decimal.NewFromInt(1100), p.TotalValue())
}

func TestPortfolioZakatDue(t *testing.T) {
	t.Run("halal_only", func(t *testing.T) {
		p := models.NewPortfolio()
		p.AddAsset(buildNamedAsset(t, "Gold", 10, 100, true))
		p.AddAsset(buildNamedAsset(t, "Casino", 10, 100, false))

		// 2.5% of the 1000 halal value; the non-halal holding is excluded.
		testutil.AssertDecimalEqual(t, decimal.NewFromInt(25), p.ZakatDue())
	})

	t.Run("empty_portfolio", func(t *testing.T) {
		p := models.NewPortfolio()
		testutil.AssertDecimalEqual(t, decimal.Zero, p.ZakatDue())
	})

	t.Run("no_halal_holdings", func(t *testing.T) {
		p := models.NewPortfolio()
		p.AddAsset(buildNamedAsset(t, "Casino", 10, 100, false))
		testutil.AssertDecimalEqual(t, decimal.Zero, p.ZakatDue())
	})
}

func TestPortfolioAddBankAccount(t *testing.T) {
	p := models.NewPortfolio()
	p.AddBankAccount(&models.BankAccount{
		CardNumber: "1234567812345678",
		HolderName: "Test Holder",
		ExpiryDate: time.Now().AddDate(1, 0, 0),
	})

	if len(p.BankAccounts) != 1 {
		t.Fatalf("expected 1 bank account, got %d", len(p.BankAccounts))
	}
}
