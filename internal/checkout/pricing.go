// Package checkout drives the four-step checkout flow: cart review, shipping
// details, payment, and order placement. Pricing is computed client-side for
// display; the server's total is authoritative once an order exists.
package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/client/internal/config"
	"github.com/storefront/client/internal/store"
)

// Pricing computes order totals from the configured checkout constants
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// NewPricing builds a pricing calculator from checkout configuration
func NewPricing(cfg config.CheckoutConfig) Pricing {
	return Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		TaxRate:               cfg.TaxRate,
	}
}

// Quote is the full price breakdown for a cart
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// Subtotal sums unit price times quantity across the items
func (p Pricing) Subtotal(items []store.CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Shipping returns the flat fee, waived when the subtotal reaches the free
// shipping threshold. A subtotal exactly at the threshold ships free.
func (p Pricing) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.ShippingFee
}

// Tax returns the tax on the subtotal. Shipping is not taxed.
func (p Pricing) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate)
}

// QuoteFor computes the full breakdown for a set of cart items
func (p Pricing) QuoteFor(items []store.CartItem) Quote {
	subtotal := p.Subtotal(items)
	shipping := p.Shipping(subtotal)
	tax := p.Tax(subtotal)
	return Quote{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
