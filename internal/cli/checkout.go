package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/storefront/client/internal/checkout"
	"github.com/storefront/client/internal/domain/order"
)

var checkoutForm checkout.Form

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the current cart",
	Long: `Walk the cart through the checkout flow and place the order.

Runs as a guest when no session is held; log in first to attach the order
to your account.`,
	RunE: runCheckout,
}

func init() {
	f := checkoutCmd.Flags()
	f.StringVar(&checkoutForm.FirstName, "first-name", "", "first name")
	f.StringVar(&checkoutForm.LastName, "last-name", "", "last name")
	f.StringVar(&checkoutForm.Email, "email", "", "email address")
	f.StringVar(&checkoutForm.Address, "address", "", "street address")
	f.StringVar(&checkoutForm.City, "city", "", "city")
	f.StringVar(&checkoutForm.PostalCode, "postal-code", "", "postal code")
	f.StringVar(&checkoutForm.Country, "country", "", "country")
	f.StringVar(&checkoutForm.PhoneNumber, "phone", "", "phone number")
	f.StringVar(&checkoutForm.OrderNote, "note", "", "order note")
	f.StringVar((*string)(&checkoutForm.PaymentMethod), "payment-method", string(order.PaymentCash), "payment method (bank, card, cash, mobile_money)")
	f.StringVar(&checkoutForm.PaymentScreenshot, "payment-screenshot", "", "proof-of-payment reference (required for bank)")
	rootCmd.AddCommand(checkoutCmd)
}

func runCheckout(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.closer()

	if !checkoutForm.PaymentMethod.IsValid() {
		return fmt.Errorf("unknown payment method %q", checkoutForm.PaymentMethod)
	}

	pricing := checkout.NewPricing(a.cfg.Checkout)
	flow := checkout.NewFlow(a.store, pricing, a.log)
	flow.SetForm(checkoutForm)

	quote := flow.Quote()
	fmt.Printf("Subtotal: %10s\n", quote.Subtotal.StringFixed(2))
	fmt.Printf("Shipping: %10s\n", quote.Shipping.StringFixed(2))
	fmt.Printf("Tax:      %10s\n", quote.Tax.StringFixed(2))
	fmt.Printf("Total:    %10s\n\n", quote.Total.StringFixed(2))

	// Walk the flow forward; a validation failure stops at the shipping gate
	for flow.Step() != checkout.StepPlaceOrder {
		if !flow.Next() {
			return validationFailure(flow.Errors())
		}
	}

	placed, err := flow.Submit(cmd.Context())
	if err != nil {
		var invalid *checkout.ValidationError
		if errors.As(err, &invalid) {
			return validationFailure(invalid.Fields)
		}
		if errors.Is(err, checkout.ErrEmptyCart) {
			return fmt.Errorf("cart is empty; add items before checking out")
		}
		return fmt.Errorf("failed to place order: %s", a.store.Orders.Err())
	}

	fmt.Printf("Order placed. Tracking ID: %s\n", placed.TrackingID)
	return nil
}

func validationFailure(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for field := range fields {
		names = append(names, field)
	}
	sort.Strings(names)

	fmt.Println("The order form has problems:")
	for _, field := range names {
		fmt.Printf("  %s: %s\n", field, fields[field])
	}
	return fmt.Errorf("form validation failed")
}
