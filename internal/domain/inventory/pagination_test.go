package inventory

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numbered(n int) []InventoryItem {
	items := make([]InventoryItem, n)
	for i := range items {
		items[i] = InventoryItem{SKU: fmt.Sprintf("SKU-%02d", i+1)}
	}
	return items
}

func TestPaginate(t *testing.T) {
	t.Run("second page of twenty-five", func(t *testing.T) {
		res := Paginate(numbered(25), 2, 10)

		assert.Len(t, res.Data, 10)
		assert.Equal(t, "SKU-11", res.Data[0].SKU)
		assert.Equal(t, "SKU-20", res.Data[9].SKU)
		assert.Equal(t, 3, res.TotalPages)
		assert.Equal(t, 25, res.Total)
		assert.True(t, res.HasNextPage)
		assert.True(t, res.HasPreviousPage)
	})

	t.Run("last partial page", func(t *testing.T) {
		res := Paginate(numbered(25), 3, 10)

		assert.Len(t, res.Data, 5)
		assert.False(t, res.HasNextPage)
		assert.True(t, res.HasPreviousPage)
	})

	t.Run("page past the end is empty but keeps metadata", func(t *testing.T) {
		res := Paginate(numbered(25), 9, 10)

		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)
		assert.Equal(t, 3, res.TotalPages)
		assert.False(t, res.HasNextPage)
		assert.True(t, res.HasPreviousPage)
	})

	t.Run("huge page number does not overflow the offset", func(t *testing.T) {
		page := math.MaxInt/100 + 2
		res := Paginate(numbered(25), page, 100)

		assert.NotNil(t, res.Data)
		assert.Empty(t, res.Data)
		assert.Equal(t, page, res.Page)
		assert.Equal(t, 1, res.TotalPages)
		assert.Equal(t, 25, res.Total)
		assert.False(t, res.HasNextPage)
		assert.True(t, res.HasPreviousPage)
	})

	t.Run("max int page with max limit", func(t *testing.T) {
		res := Paginate(numbered(3), math.MaxInt, MaxLimit)

		assert.Empty(t, res.Data)
		assert.False(t, res.HasNextPage)
	})

	t.Run("max int limit", func(t *testing.T) {
		res := Paginate(numbered(3), 1, math.MaxInt)

		assert.Len(t, res.Data, 3)
		assert.Equal(t, 1, res.TotalPages)
		assert.False(t, res.HasNextPage)
	})

	t.Run("empty input", func(t *testing.T) {
		res := Paginate([]InventoryItem(nil), 1, 50)

		assert.NotNil(t, res.Data)
		assert.Equal(t, 0, res.TotalPages)
		assert.False(t, res.HasNextPage)
		assert.False(t, res.HasPreviousPage)
	})

	t.Run("invalid page and limit fall back to defaults", func(t *testing.T) {
		res := Paginate(numbered(3), 0, 0)

		assert.Equal(t, DefaultPage, res.Page)
		assert.Equal(t, DefaultLimit, res.Limit)
		assert.Len(t, res.Data, 3)
	})
}

func TestPaginate_Identity(t *testing.T) {
	for total := 0; total <= 23; total++ {
		for _, limit := range []int{1, 4, 10, 50} {
			for page := 1; page <= 7; page++ {
				res := Paginate(numbered(total), page, limit)

				want := max(0, min(limit, total-(page-1)*limit))
				assert.Len(t, res.Data, want, "total=%d limit=%d page=%d", total, limit, page)
				assert.Equal(t, (total+limit-1)/limit, res.TotalPages)
			}
		}
	}
}
