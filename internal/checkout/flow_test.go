package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/client/internal/api"
	"github.com/storefront/client/internal/config"
	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/domain/order"
	"github.com/storefront/client/internal/storage"
	"github.com/storefront/client/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// orderCapture records the order creation requests a fake server received
type orderCapture struct {
	authed []order.CreateRequest
	guest  []order.CreateRequest
}

func checkoutRouter(t *testing.T, capture *orderCapture) *gin.Engine {
	t.Helper()
	r := gin.New()

	placed := gin.H{
		"_id":        "o1",
		"trackingId": "TRK-0001",
		"status":     "pending",
		"createdAt":  "2025-06-01T12:00:00Z",
	}

	r.POST("/users/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"_id": "u1", "name": "Amina", "role": "customer", "token": "session-token"})
	})
	r.POST("/orders", func(c *gin.Context) {
		var req order.CreateRequest
		require.NoError(t, c.BindJSON(&req))
		capture.authed = append(capture.authed, req)
		c.JSON(http.StatusCreated, placed)
	})
	r.POST("/orders/guest", func(c *gin.Context) {
		var req order.CreateRequest
		require.NoError(t, c.BindJSON(&req))
		capture.guest = append(capture.guest, req)
		c.JSON(http.StatusCreated, placed)
	})

	return r
}

func newTestFlow(t *testing.T, handler http.Handler) (*Flow, *store.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		API: config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
		Checkout: config.CheckoutConfig{
			FreeShippingThreshold: testPricing().FreeShippingThreshold,
			ShippingFee:           testPricing().ShippingFee,
			TaxRate:               testPricing().TaxRate,
		},
	}
	s := store.New(cfg, storage.NewMemoryStorage(), zap.NewNop())
	return NewFlow(s, NewPricing(cfg.Checkout), zap.NewNop()), s
}

func validForm() Form {
	return Form{
		FirstName:     "Amina",
		LastName:      "Diallo",
		Email:         "amina@example.com",
		Address:       "12 Market Street",
		City:          "Accra",
		PostalCode:    "GA-145",
		Country:       "Ghana",
		PhoneNumber:   "+233201234567",
		PaymentMethod: order.PaymentCash,
	}
}

func seedCart(s *store.Store) {
	s.Cart.AddItem(catalog.Product{
		CanonicalID: "SHIRT-001",
		Name:        "Oxford Shirt",
		Price:       testPricing().ShippingFee, // any non-zero price
	}, "M", "White", 2)
}

func TestFlowNavigation(t *testing.T) {
	t.Run("forward walk with a valid form", func(t *testing.T) {
		flow, _ := newTestFlow(t, http.NotFoundHandler())
		flow.SetForm(validForm())

		assert.Equal(t, StepCart, flow.Step())
		assert.True(t, flow.Next())
		assert.Equal(t, StepPayment, flow.Step())
		assert.True(t, flow.Next())
		assert.Equal(t, StepReview, flow.Step())
		assert.True(t, flow.Next())
		assert.Equal(t, StepPlaceOrder, flow.Step())
		assert.False(t, flow.Next(), "last step has no forward movement")
	})

	t.Run("payment gate blocks an invalid form", func(t *testing.T) {
		flow, _ := newTestFlow(t, http.NotFoundHandler())
		require.True(t, flow.Next())

		assert.False(t, flow.Next())
		assert.Equal(t, StepPayment, flow.Step())
		assert.NotEmpty(t, flow.Errors())
	})

	t.Run("back always succeeds and keeps data", func(t *testing.T) {
		flow, _ := newTestFlow(t, http.NotFoundHandler())
		flow.SetForm(validForm())
		flow.Next()
		flow.Next()

		assert.True(t, flow.Back())
		assert.Equal(t, StepPayment, flow.Step())
		assert.Equal(t, "Amina", flow.Form().FirstName)

		assert.True(t, flow.Back())
		assert.False(t, flow.Back(), "cart step has no backward movement")
	})

	t.Run("reset returns to the cart and clears everything", func(t *testing.T) {
		flow, _ := newTestFlow(t, http.NotFoundHandler())
		flow.SetForm(validForm())
		flow.Next()

		flow.Reset()
		assert.Equal(t, StepCart, flow.Step())
		assert.Empty(t, flow.Form().FirstName)
		assert.Empty(t, flow.Errors())
	})
}

func TestFlowValidation(t *testing.T) {
	gate := func(form Form) map[string]string {
		flow, _ := newTestFlow(t, http.NotFoundHandler())
		flow.SetForm(form)
		flow.Next() // to payment
		flow.Next() // gate
		return flow.Errors()
	}

	t.Run("empty form reports every required field", func(t *testing.T) {
		errs := gate(Form{PaymentMethod: order.PaymentCash})
		for _, field := range []string{"firstName", "lastName", "email", "address", "city", "postalCode", "phoneNumber"} {
			assert.Contains(t, errs, field)
		}
		assert.NotContains(t, errs, "paymentScreenshot")
	})

	t.Run("whitespace-only values fail required checks", func(t *testing.T) {
		form := validForm()
		form.City = "   "
		errs := gate(form)
		assert.Equal(t, "City is required", errs["city"])
	})

	t.Run("malformed email", func(t *testing.T) {
		tests := []string{"plain", "no@tld", "spaces in@example.com", "@example.com"}
		for _, email := range tests {
			form := validForm()
			form.Email = email
			errs := gate(form)
			assert.Equal(t, "Please enter a valid email address", errs["email"], email)
		}
	})

	t.Run("bank transfer requires a screenshot", func(t *testing.T) {
		form := validForm()
		form.PaymentMethod = order.PaymentBank
		errs := gate(form)
		assert.Equal(t, "Payment screenshot is required for bank transfers", errs["paymentScreenshot"])

		form.PaymentScreenshot = "uploads/receipt-001.jpg"
		assert.Empty(t, gate(form))
	})

	t.Run("other methods need no screenshot", func(t *testing.T) {
		for _, method := range []order.PaymentMethod{order.PaymentCard, order.PaymentCash, order.PaymentMobileMoney} {
			form := validForm()
			form.PaymentMethod = method
			assert.Empty(t, gate(form), method)
		}
	})
}

func TestFlowSubmit(t *testing.T) {
	t.Run("guest submission carries guest info", func(t *testing.T) {
		capture := &orderCapture{}
		flow, s := newTestFlow(t, checkoutRouter(t, capture))
		seedCart(s)
		flow.SetForm(validForm())

		placed, err := flow.Submit(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "TRK-0001", placed.TrackingID)

		require.Len(t, capture.guest, 1)
		req := capture.guest[0]
		require.NotNil(t, req.Guest)
		assert.Equal(t, "Amina Diallo", req.Guest.Name)
		assert.Equal(t, "amina@example.com", req.Guest.Email)

		require.Len(t, req.Items, 1)
		assert.Equal(t, "SHIRT-001", req.Items[0].ProductID)
		assert.Equal(t, 2, req.Items[0].Quantity)
		assert.Equal(t, "12 Market Street", req.Shipping.Street)
		assert.Equal(t, "Accra", req.Shipping.City)
		assert.Equal(t, "Accra", req.Shipping.State)
		assert.Equal(t, "GA-145", req.Shipping.ZipCode)
	})

	t.Run("authenticated submission omits guest info", func(t *testing.T) {
		capture := &orderCapture{}
		flow, s := newTestFlow(t, checkoutRouter(t, capture))
		seedCart(s)
		require.NoError(t, s.Auth.Login(context.Background(), api.Credentials{Email: "amina@example.com", Password: "pw"}))
		flow.SetForm(validForm())

		_, err := flow.Submit(context.Background())
		require.NoError(t, err)

		require.Len(t, capture.authed, 1)
		assert.Nil(t, capture.authed[0].Guest)
		assert.Empty(t, capture.guest)
	})

	t.Run("invalid form fails before any request", func(t *testing.T) {
		capture := &orderCapture{}
		flow, s := newTestFlow(t, checkoutRouter(t, capture))
		seedCart(s)

		_, err := flow.Submit(context.Background())
		var invalid *ValidationError
		require.ErrorAs(t, err, &invalid)
		assert.Contains(t, invalid.Fields, "firstName")
		assert.Empty(t, capture.guest)
		assert.Empty(t, capture.authed)
	})

	t.Run("empty cart fails before any request", func(t *testing.T) {
		capture := &orderCapture{}
		flow, _ := newTestFlow(t, checkoutRouter(t, capture))
		flow.SetForm(validForm())

		_, err := flow.Submit(context.Background())
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Empty(t, capture.guest)
	})

	t.Run("successful submission clears the cart", func(t *testing.T) {
		capture := &orderCapture{}
		flow, s := newTestFlow(t, checkoutRouter(t, capture))
		seedCart(s)
		flow.SetForm(validForm())

		_, err := flow.Submit(context.Background())
		require.NoError(t, err)
		assert.Empty(t, s.Cart.Items())
	})
}
