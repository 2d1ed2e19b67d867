package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/storefront/client/internal/api"
	"github.com/storefront/client/internal/domain/catalog"
)

// Pagination describes the current catalog page
type Pagination struct {
	Total       int
	TotalPages  int
	CurrentPage int
}

// Catalog caches the current page of products, the active filter set, the
// category list, and a single detail product. Fetches always replace, never
// merge.
type Catalog struct {
	mu         sync.Mutex
	products   []catalog.Product
	detail     *catalog.Product
	categories []string
	filters    catalog.Filters
	pagination Pagination
	loading    bool
	err        string

	client *api.Client
	logger *zap.Logger

	listSeq       sequence
	detailSeq     sequence
	categoriesSeq sequence
}

// NewCatalog creates an empty catalog slice
func NewCatalog(client *api.Client, logger *zap.Logger) *Catalog {
	return &Catalog{
		filters: catalog.DefaultFilters(),
		client:  client,
		logger:  logger.Named("catalog"),
	}
}

// FetchProducts loads the page matching the filters, replacing the product
// list and every pagination field with the response.
func (c *Catalog) FetchProducts(ctx context.Context, filters catalog.Filters) error {
	ticket := c.listSeq.next()
	c.setPending()

	page, err := c.client.Products(ctx, filters)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.listSeq.current(ticket) {
		c.logger.Debug("discarding stale product list response")
		return err
	}
	c.loading = false
	if err != nil {
		c.err = errorMessage(err, "Failed to fetch products")
		return err
	}

	c.applyPageLocked(page)
	return nil
}

// FetchAllProducts loads every product including inactive ones (admin)
func (c *Catalog) FetchAllProducts(ctx context.Context) error {
	ticket := c.listSeq.next()
	c.setPending()

	page, err := c.client.AllProducts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.listSeq.current(ticket) {
		c.logger.Debug("discarding stale product list response")
		return err
	}
	c.loading = false
	if err != nil {
		c.err = errorMessage(err, "Failed to fetch all products")
		return err
	}

	c.applyPageLocked(page)
	return nil
}

// FetchDetails loads a single product into the detail slot, independent of
// the list.
func (c *Catalog) FetchDetails(ctx context.Context, id string) error {
	ticket := c.detailSeq.next()
	c.setPending()

	product, err := c.client.Product(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.detailSeq.current(ticket) {
		c.logger.Debug("discarding stale product detail response")
		return err
	}
	c.loading = false
	if err != nil {
		c.err = errorMessage(err, "Failed to fetch product details")
		return err
	}

	c.detail = product
	return nil
}

// FetchCategories loads the category list
func (c *Catalog) FetchCategories(ctx context.Context) error {
	ticket := c.categoriesSeq.next()
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	categories, err := c.client.Categories(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.categoriesSeq.current(ticket) {
		c.logger.Debug("discarding stale categories response")
		return err
	}
	c.loading = false
	if err != nil {
		c.err = errorMessage(err, "Failed to fetch categories")
		return err
	}

	c.categories = categories
	return nil
}

// CreateProduct adds a catalog item (admin) and prepends it to the list
func (c *Catalog) CreateProduct(ctx context.Context, product catalog.Product) error {
	c.setPending()

	created, err := c.client.CreateProduct(ctx, product)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = errorMessage(err, "Failed to create product")
		return err
	}

	c.products = append([]catalog.Product{*created}, c.products...)
	return nil
}

// UpdateProduct replaces a catalog item (admin), patching the list entry and
// the detail slot in place.
func (c *Catalog) UpdateProduct(ctx context.Context, id string, product catalog.Product) error {
	c.setPending()

	updated, err := c.client.UpdateProduct(ctx, id, product)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = errorMessage(err, "Failed to update product")
		return err
	}

	c.patchProductLocked(*updated)
	return nil
}

// DeleteProduct removes a catalog item (admin) from the server and the list
func (c *Catalog) DeleteProduct(ctx context.Context, id string) error {
	c.setPending()

	err := c.client.DeleteProduct(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = errorMessage(err, "Failed to delete product")
		return err
	}

	kept := c.products[:0]
	for _, p := range c.products {
		if !p.MatchesID(id) {
			kept = append(kept, p)
		}
	}
	c.products = kept
	if c.detail != nil && c.detail.MatchesID(id) {
		c.detail = nil
	}
	return nil
}

// ToggleProductStatus flips a product's active flag (admin), patching in place
func (c *Catalog) ToggleProductStatus(ctx context.Context, id string) error {
	c.setPending()

	updated, err := c.client.ToggleProductStatus(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = errorMessage(err, "Failed to toggle product status")
		return err
	}

	c.patchProductLocked(*updated)
	return nil
}

// SetFilters shallow-merges a partial filter patch into the current filters.
// No validation happens here; the view layer clears stale values before
// dispatching a query.
func (c *Catalog) SetFilters(patch catalog.Filters) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = c.filters.Merge(patch)
}

// ClearFilters resets the filters to their initial state
func (c *Catalog) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = catalog.DefaultFilters()
}

// ClearDetails empties the detail slot
func (c *Catalog) ClearDetails() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail = nil
}

// Products returns a copy of the current page's products
func (c *Catalog) Products() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Detail returns the current detail product, or nil
func (c *Catalog) Detail() *catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detail == nil {
		return nil
	}
	detail := *c.detail
	return &detail
}

// Categories returns a copy of the category list
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// Filters returns the current filter state
func (c *Catalog) Filters() catalog.Filters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Pagination returns the current page counters
func (c *Catalog) Pagination() Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// Loading reports whether a catalog flow is pending
func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the last catalog flow error message
func (c *Catalog) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// ClearError discards the last catalog flow error
func (c *Catalog) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = ""
}

// setPending marks a catalog flow as in flight
func (c *Catalog) setPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = true
	c.err = ""
}

// applyPageLocked replaces list and pagination state. Caller must hold c.mu.
func (c *Catalog) applyPageLocked(page *api.ProductsPage) {
	c.products = page.Products
	c.pagination = Pagination{
		Total:       page.Total,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
	}
}

// patchProductLocked updates the list entry and detail slot matching the
// product's key. Caller must hold c.mu.
func (c *Catalog) patchProductLocked(updated catalog.Product) {
	for i := range c.products {
		if c.products[i].Key() == updated.Key() {
			c.products[i] = updated
			break
		}
	}
	if c.detail != nil && c.detail.Key() == updated.Key() {
		c.detail = &updated
	}
}
