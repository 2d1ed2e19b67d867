package store

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/storage"
)

// CartItem is one size/color/quantity selection of a product. The product is
// a denormalized snapshot, not a live catalog reference; Price is the unit
// price captured at add-time.
type CartItem struct {
	Product  catalog.Product `json:"product"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Key returns the item's resolved product key
func (i *CartItem) Key() string {
	return i.Product.Key()
}

// Cart maintains the authoritative list of cart line items, unique by
// (product key, size, color), and mirrors them to durable storage on every
// mutation.
type Cart struct {
	mu      sync.Mutex
	items   []CartItem
	storage storage.Storage
	logger  *zap.Logger
}

// NewCart creates a cart hydrated from durable storage
func NewCart(st storage.Storage, logger *zap.Logger) *Cart {
	c := &Cart{
		storage: st,
		logger:  logger.Named("cart"),
	}
	hydrate(st, c.logger, storage.KeyCart, &c.items)
	return c
}

// AddItem adds a selection to the cart. If a line item with the same
// (product key, size, color) already exists its quantity is incremented by
// quantity; otherwise a new line item is appended capturing the product's
// current price. Products without any identifier are rejected with a logged
// diagnostic. The quantity range (1-10) is the caller's responsibility.
func (c *Cart) AddItem(product catalog.Product, size, color string, quantity int) {
	if !product.HasKey() {
		c.logger.Warn("ignoring add of product without identifier",
			zap.String("name", product.Name),
		)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.findLocked(product.Key(), size, color); idx != -1 {
		c.items[idx].Quantity += quantity
	} else {
		c.items = append(c.items, CartItem{
			Product:  product,
			Size:     size,
			Color:    color,
			Quantity: quantity,
			Price:    product.Price,
		})
	}

	c.persistLocked()
}

// RemoveItem removes the line item matching (productKey, size, color).
// No-op with a logged diagnostic when no item matches.
func (c *Cart) RemoveItem(productKey, size, color string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.findLocked(productKey, size, color)
	if idx == -1 {
		c.logger.Warn("remove of item not in cart",
			zap.String("productKey", productKey),
			zap.String("size", size),
			zap.String("color", color),
		)
		return
	}

	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.persistLocked()
}

// SetQuantity overwrites the matching item's quantity; a quantity of zero or
// less removes the item. No-op with a logged diagnostic when no item matches.
func (c *Cart) SetQuantity(productKey, size, color string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.findLocked(productKey, size, color)
	if idx == -1 {
		c.logger.Warn("quantity update for item not in cart",
			zap.String("productKey", productKey),
			zap.String("size", size),
			zap.String("color", color),
		)
		return
	}

	if quantity <= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	} else {
		c.items[idx].Quantity = quantity
	}

	c.persistLocked()
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persistLocked()
}

// Items returns a copy of the current line items
func (c *Cart) Items() []CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount returns the sum of quantities across items
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Total returns the sum of unit price times quantity across items
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// findLocked returns the index of the item matching the identity triple,
// or -1. Caller must hold c.mu.
func (c *Cart) findLocked(productKey, size, color string) int {
	for i := range c.items {
		if c.items[i].Key() == productKey && c.items[i].Size == size && c.items[i].Color == color {
			return i
		}
	}
	return -1
}

// persistLocked mirrors the item list to durable storage. Caller must hold c.mu.
func (c *Cart) persistLocked() {
	items := c.items
	if items == nil {
		items = []CartItem{}
	}
	persist(c.storage, c.logger, storage.KeyCart, items)
}
