package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiltersMerge(t *testing.T) {
	base := DefaultFilters()

	t.Run("patch overrides only its non-zero fields", func(t *testing.T) {
		merged := base.Merge(Filters{Category: "shirts", Page: 3})
		assert.Equal(t, "shirts", merged.Category)
		assert.Equal(t, 3, merged.Page)
		assert.Equal(t, "createdAt", merged.SortBy)
		assert.Equal(t, "desc", merged.SortOrder)
	})

	t.Run("empty patch is identity", func(t *testing.T) {
		assert.Equal(t, base, base.Merge(Filters{}))
	})

	t.Run("merge does not mutate the receiver", func(t *testing.T) {
		_ = base.Merge(Filters{Search: "linen"})
		assert.Empty(t, base.Search)
	})
}

func TestFiltersValues(t *testing.T) {
	t.Run("defaults encode sort and page only", func(t *testing.T) {
		values := DefaultFilters().Values()
		assert.Equal(t, "createdAt", values.Get("sortBy"))
		assert.Equal(t, "desc", values.Get("sortOrder"))
		assert.Equal(t, "1", values.Get("page"))
		assert.NotContains(t, values, "search")
		assert.NotContains(t, values, "category")
	})

	t.Run("all fields encode", func(t *testing.T) {
		f := Filters{
			Search:    "linen shirt",
			Category:  "shirts",
			MinPrice:  "10",
			MaxPrice:  "100",
			SortBy:    "price",
			SortOrder: "asc",
			Page:      2,
		}
		values := f.Values()
		assert.Equal(t, "linen shirt", values.Get("search"))
		assert.Equal(t, "shirts", values.Get("category"))
		assert.Equal(t, "10", values.Get("minPrice"))
		assert.Equal(t, "100", values.Get("maxPrice"))
		assert.Equal(t, "price", values.Get("sortBy"))
		assert.Equal(t, "asc", values.Get("sortOrder"))
		assert.Equal(t, "2", values.Get("page"))
	})
}
