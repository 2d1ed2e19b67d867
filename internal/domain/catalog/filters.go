package catalog

import (
	"net/url"
	"strconv"
)

// Filters is the catalog query state: search text, category, price bounds,
// sort key and direction, and page number. A pure value object; empty fields
// are omitted from the encoded query.
type Filters struct {
	Search    string `json:"search"`
	Category  string `json:"category"`
	MinPrice  string `json:"minPrice"`
	MaxPrice  string `json:"maxPrice"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
	Page      int    `json:"page"`
}

// DefaultFilters returns the initial filter state
func DefaultFilters() Filters {
	return Filters{
		SortBy:    "createdAt",
		SortOrder: "desc",
		Page:      1,
	}
}

// Merge returns a copy of f with the non-zero fields of patch applied.
// A shallow merge-patch: no validation is performed at this layer.
func (f Filters) Merge(patch Filters) Filters {
	out := f
	if patch.Search != "" {
		out.Search = patch.Search
	}
	if patch.Category != "" {
		out.Category = patch.Category
	}
	if patch.MinPrice != "" {
		out.MinPrice = patch.MinPrice
	}
	if patch.MaxPrice != "" {
		out.MaxPrice = patch.MaxPrice
	}
	if patch.SortBy != "" {
		out.SortBy = patch.SortBy
	}
	if patch.SortOrder != "" {
		out.SortOrder = patch.SortOrder
	}
	if patch.Page != 0 {
		out.Page = patch.Page
	}
	return out
}

// Values encodes the filters as URL query parameters
func (f Filters) Values() url.Values {
	values := url.Values{}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.MinPrice != "" {
		values.Set("minPrice", f.MinPrice)
	}
	if f.MaxPrice != "" {
		values.Set("maxPrice", f.MaxPrice)
	}
	if f.SortBy != "" {
		values.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		values.Set("sortOrder", f.SortOrder)
	}
	if f.Page > 0 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	return values
}
