package api

import (
	"encoding/json"

	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/domain/identity"
	"github.com/storefront/client/internal/domain/order"
)

// Credentials is the login request payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the register request payload
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phoneNumber,omitempty"`
	Address  string `json:"address,omitempty"`
}

// AuthResponse is the login/register response: the profile plus a bearer token
type AuthResponse struct {
	identity.User
	Token string `json:"token"`
}

// ProductsPage is one page of catalog results
type ProductsPage struct {
	Products    []catalog.Product `json:"products"`
	Total       int               `json:"total"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

// OrdersPage is one page of admin order results. The API has served both a
// bare array and a paginated envelope over its lifetime; both decode here.
type OrdersPage struct {
	Orders      []order.Order `json:"orders"`
	Total       int           `json:"total"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// UnmarshalJSON accepts both the envelope and the bare-array encoding
func (p *OrdersPage) UnmarshalJSON(data []byte) error {
	var bare []order.Order
	if err := json.Unmarshal(data, &bare); err == nil {
		p.Orders = bare
		p.Total = len(bare)
		p.TotalPages = 1
		p.CurrentPage = 1
		return nil
	}

	type page OrdersPage
	var envelope page
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	*p = OrdersPage(envelope)
	return nil
}

// RoleUpdate is the admin role-change payload
type RoleUpdate struct {
	Role identity.Role `json:"role"`
}

// StatusUpdate is the admin order-status payload
type StatusUpdate struct {
	Status order.Status `json:"status"`
}

// PaymentUpdate is the admin payment-status payload
type PaymentUpdate struct {
	Status string `json:"status"`
}

// apiError is the server's error envelope
type apiError struct {
	Error string `json:"error"`
}
