package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how an order is paid
type PaymentMethod string

const (
	PaymentBank        PaymentMethod = "bank"
	PaymentCard        PaymentMethod = "card"
	PaymentCash        PaymentMethod = "cash"
	PaymentMobileMoney PaymentMethod = "mobile_money"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentBank, PaymentCard, PaymentCash, PaymentMobileMoney:
		return true
	}
	return false
}

// Item is one order line, a frozen copy of the cart selection at order time.
// Never re-derived from the live cart or catalog after creation.
type Item struct {
	ProductID string          `json:"prodId"`
	Name      string          `json:"name,omitempty"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Address is an order's shipping destination
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Payment describes how the order is paid. Screenshot is the
// proof-of-payment reference required for bank transfers.
type Payment struct {
	Method     PaymentMethod `json:"method"`
	Screenshot string        `json:"screenshot,omitempty"`
	Status     string        `json:"status,omitempty"`
}

// GuestInfo identifies a guest purchaser in place of a user reference
type GuestInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phoneNumber"`
}

// Order is an order as returned by the remote API. The total is computed
// client-side before submission, but the authoritative value is whatever the
// server returns here.
type Order struct {
	ID          string          `json:"_id"`
	TrackingID  string          `json:"trackingId"`
	Items       []Item          `json:"items"`
	Shipping    Address         `json:"shippingAddress"`
	Payment     Payment         `json:"paymentDetails"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      Status          `json:"status"`
	User        *string         `json:"user,omitempty"`
	Guest       *GuestInfo      `json:"guestInfo,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// IsGuest reports whether the order was placed without an account
func (o *Order) IsGuest() bool {
	return o.Guest != nil
}

// CustomerName returns the guest name or, for account orders, empty —
// account profiles are resolved by the caller from the user reference.
func (o *Order) CustomerName() string {
	if o.Guest != nil {
		return o.Guest.Name
	}
	return ""
}

// CreateRequest is the payload for order creation. GuestInfo is set only on
// the guest variant.
type CreateRequest struct {
	Items    []Item     `json:"items"`
	Shipping Address    `json:"shippingAddress"`
	Payment  Payment    `json:"paymentDetails"`
	Guest    *GuestInfo `json:"guestInfo,omitempty"`
}
