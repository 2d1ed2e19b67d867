package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, Status("returned").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		from  Status
		to    Status
		legal bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusPending, StatusShipped, false},
		{StatusProcessing, StatusDelivered, false},
		{StatusDelivered, StatusPending, false},
		{StatusPending, StatusCancelled, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.legal, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPaymentMethodIsValid(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentBank, PaymentCard, PaymentCash, PaymentMobileMoney} {
		assert.True(t, m.IsValid(), m)
	}
	assert.False(t, PaymentMethod("crypto").IsValid())
}

func TestOrderCustomerName(t *testing.T) {
	guest := Order{Guest: &GuestInfo{Name: "Amina Diallo", Email: "amina@example.com"}}
	assert.True(t, guest.IsGuest())
	assert.Equal(t, "Amina Diallo", guest.CustomerName())

	user := "u1"
	account := Order{User: &user}
	assert.False(t, account.IsGuest())
	assert.Empty(t, account.CustomerName())
}
