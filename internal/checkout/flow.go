package checkout

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/storefront/client/internal/domain/order"
	"github.com/storefront/client/internal/store"
)

// Step is a checkout flow position
type Step int

const (
	StepCart       Step = 1
	StepPayment    Step = 2
	StepReview     Step = 3
	StepPlaceOrder Step = 4
)

// String returns the step's display name
func (s Step) String() string {
	switch s {
	case StepCart:
		return "cart"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	case StepPlaceOrder:
		return "place-order"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// emailPattern accepts anything shaped local@domain.tld without whitespace.
// Deliberately shallow; the server does real address verification.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form holds the shipping and payment details collected across steps two and
// three. Validation tags are checked against trimmed values.
type Form struct {
	FirstName         string              `json:"firstName" validate:"required"`
	LastName          string              `json:"lastName" validate:"required"`
	Email             string              `json:"email" validate:"required,shallow_email"`
	Address           string              `json:"address" validate:"required"`
	City              string              `json:"city" validate:"required"`
	PostalCode        string              `json:"postalCode" validate:"required"`
	Country           string              `json:"country"`
	PhoneNumber       string              `json:"phoneNumber" validate:"required"`
	OrderNote         string              `json:"orderNote"`
	PaymentMethod     order.PaymentMethod `json:"paymentMethod"`
	PaymentScreenshot string              `json:"paymentScreenshot" validate:"required_if=PaymentMethod bank"`
}

// trimmed returns a copy with surrounding whitespace stripped from every text
// field, so a value of only spaces fails required checks and the submitted
// order carries clean values.
func (f Form) trimmed() Form {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Address = strings.TrimSpace(f.Address)
	f.City = strings.TrimSpace(f.City)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.Country = strings.TrimSpace(f.Country)
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	f.OrderNote = strings.TrimSpace(f.OrderNote)
	f.PaymentScreenshot = strings.TrimSpace(f.PaymentScreenshot)
	return f
}

// fieldMessages maps a form field to its validation error message
var fieldMessages = map[string]string{
	"firstName":         "First name is required",
	"lastName":          "Last name is required",
	"email":             "Please enter a valid email address",
	"address":           "Address is required",
	"city":              "City is required",
	"postalCode":        "Postal code is required",
	"phoneNumber":       "Phone number is required",
	"paymentScreenshot": "Payment screenshot is required for bank transfers",
}

// Flow is the checkout state machine. Forward movement out of the payment
// step is gated on form validation; backward movement is always allowed and
// never clears collected data.
type Flow struct {
	mu     sync.Mutex
	step   Step
	form   Form
	errors map[string]string

	cart    *store.Cart
	orders  *store.Orders
	auth    *store.Auth
	pricing Pricing

	validate *validator.Validate
	logger   *zap.Logger
}

// NewFlow creates a checkout flow at the cart step
func NewFlow(s *store.Store, pricing Pricing, logger *zap.Logger) *Flow {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Never errors for a func that doesn't call external resources
	_ = v.RegisterValidation("shallow_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	return &Flow{
		step:     StepCart,
		errors:   map[string]string{},
		cart:     s.Cart,
		orders:   s.Orders,
		auth:     s.Auth,
		pricing:  pricing,
		validate: v,
		logger:   logger.Named("checkout"),
	}
}

// Step returns the current flow position
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Form returns a copy of the collected form data
func (f *Flow) Form() Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.form
}

// SetForm merges submitted field values into the form. Does not validate;
// validation happens on forward movement and submission.
func (f *Flow) SetForm(form Form) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.form = form
}

// Errors returns the field-keyed validation errors from the last gate
func (f *Flow) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Quote prices the live cart
func (f *Flow) Quote() Quote {
	return f.pricing.QuoteFor(f.cart.Items())
}

// Next advances the flow one step. Leaving the payment step requires the
// form to validate; the review step is display-only, so all other forward
// movement is unconditional. At the last step Next is a no-op.
func (f *Flow) Next() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepCart:
		f.step = StepPayment
	case StepPayment:
		if !f.validateLocked() {
			return false
		}
		f.step = StepReview
	case StepReview:
		f.step = StepPlaceOrder
	case StepPlaceOrder:
		return false
	}
	return true
}

// Back moves the flow one step toward the cart, keeping all collected data.
// At the first step Back is a no-op.
func (f *Flow) Back() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step <= StepCart {
		return false
	}
	f.step--
	return true
}

// Reset returns the flow to the cart step and discards form data and errors
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepCart
	f.form = Form{}
	f.errors = map[string]string{}
}

// Submit re-validates and places the order, choosing the guest or
// authenticated endpoint by session state at submission time. The line items
// are frozen from the live cart at this moment; a successful placement clears
// the cart through the store's order-placed subscription.
func (f *Flow) Submit(ctx context.Context) (*order.Order, error) {
	f.mu.Lock()
	if !f.validateLocked() {
		errs := f.errors
		f.mu.Unlock()
		return nil, &ValidationError{Fields: errs}
	}
	form := f.form.trimmed()
	f.mu.Unlock()

	items := f.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	req := order.CreateRequest{
		Items:    orderItems(items),
		Shipping: shippingAddress(form),
		Payment: order.Payment{
			Method:     form.PaymentMethod,
			Screenshot: form.PaymentScreenshot,
		},
	}

	authenticated := f.auth.IsAuthenticated()
	if !authenticated {
		req.Guest = &order.GuestInfo{
			Name:  form.FirstName + " " + form.LastName,
			Email: form.Email,
			Phone: form.PhoneNumber,
		}
	}

	f.logger.Info("submitting order",
		zap.Int("items", len(items)),
		zap.Bool("guest", !authenticated),
		zap.String("paymentMethod", string(form.PaymentMethod)),
	)

	if authenticated {
		return f.orders.Create(ctx, req)
	}
	return f.orders.CreateGuest(ctx, req)
}

// validateLocked checks the trimmed form, refreshing the field-keyed error
// map. Caller must hold f.mu.
func (f *Flow) validateLocked() bool {
	f.errors = map[string]string{}

	err := f.validate.Struct(f.form.trimmed())
	if err == nil {
		return true
	}

	invalid, ok := err.(validator.ValidationErrors)
	if !ok {
		f.logger.Error("form validation failed unexpectedly", zap.Error(err))
		f.errors["form"] = "Invalid form data"
		return false
	}

	for _, fieldErr := range invalid {
		field := fieldErr.Field()
		if msg, known := fieldMessages[field]; known {
			f.errors[field] = msg
		} else {
			f.errors[field] = "Invalid value"
		}
	}
	return false
}

// orderItems freezes cart selections into order lines
func orderItems(items []store.CartItem) []order.Item {
	lines := make([]order.Item, len(items))
	for i, item := range items {
		lines[i] = order.Item{
			ProductID: item.Key(),
			Name:      item.Product.Name,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return lines
}

// shippingAddress maps the flat form onto the API's address shape. The form
// collects no separate state field, so the city doubles as the state.
func shippingAddress(form Form) order.Address {
	return order.Address{
		Street:  form.Address,
		City:    form.City,
		State:   form.City,
		ZipCode: form.PostalCode,
		Country: form.Country,
	}
}
