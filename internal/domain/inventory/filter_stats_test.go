package inventory

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFilterStats(t *testing.T) {
	t.Run("aggregates distinct values and ranges", func(t *testing.T) {
		items := append(catalog(), InventoryItem{SKU: "N-1", Vendor: "", ProductType: "", Location: "Annex", Quantity: 7, Price: 20})

		stats := ComputeFilterStats(items)

		assert.Equal(t, 5, stats.TotalProducts)
		assert.Equal(t, 5, stats.FilteredProducts)
		assert.Equal(t, []string{"Acme", "Globex"}, stats.Vendors)
		assert.Equal(t, []string{"Gadget", "Part"}, stats.ProductTypes)
		assert.Equal(t, []string{"Annex", "Main Warehouse"}, stats.Locations)
		assert.Equal(t, Range{Min: 0, Max: 40}, stats.QuantityRange)
		assert.Equal(t, Range{Min: 2.5, Max: 20}, stats.PriceRange)
	})

	t.Run("empty dataset yields zero ranges and empty arrays", func(t *testing.T) {
		stats := ComputeFilterStats(nil)

		assert.Zero(t, stats.TotalProducts)
		assert.Equal(t, Range{}, stats.QuantityRange)
		assert.Equal(t, Range{}, stats.PriceRange)

		body, err := json.Marshal(stats)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"totalProducts": 0,
			"filteredProducts": 0,
			"vendors": [],
			"productTypes": [],
			"locations": [],
			"quantityRange": {"min": 0, "max": 0},
			"priceRange": {"min": 0, "max": 0}
		}`, string(body))
	})
}

func TestSummarize(t *testing.T) {
	t.Run("computes stock metrics", func(t *testing.T) {
		s := Summarize(catalog())

		assert.Equal(t, 4, s.TotalItems)
		assert.Equal(t, 1, s.LowStockItems)
		assert.Equal(t, 1, s.OutOfStockItems)
		// 5*9.99 + 0*2.50 + 40*15 + 12*4.75
		assert.True(t, decimal.RequireFromString("706.95").Equal(s.TotalValue), s.TotalValue.String())
		assert.True(t, decimal.RequireFromString("176.74").Equal(s.AveragePrice), s.AveragePrice.String())

		require.Len(t, s.TopVendors, 2)
		assert.Equal(t, "Globex", s.TopVendors[0].Name)
		assert.Equal(t, 2, s.TopVendors[0].Count)
		assert.True(t, decimal.RequireFromString("657").Equal(s.TopVendors[0].Value))
		assert.Equal(t, "Acme", s.TopVendors[1].Name)
	})

	t.Run("empty dataset", func(t *testing.T) {
		s := Summarize(nil)

		assert.Zero(t, s.TotalItems)
		assert.True(t, s.TotalValue.IsZero())
		assert.True(t, s.AveragePrice.IsZero())
		assert.NotNil(t, s.TopVendors)
	})
}
