package store

import (
	"context"
	"net/url"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/client/internal/api"
	"github.com/storefront/client/internal/domain/order"
)

// trackingHistoryLimit caps the number of remembered tracking lookups
const trackingHistoryLimit = 10

// TrackingEntry is one remembered tracking lookup
type TrackingEntry struct {
	TrackingID   string          `json:"trackingId"`
	OrderDate    string          `json:"orderDate"`
	Status       order.Status    `json:"status"`
	CustomerName string          `json:"customerName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// Orders submits orders and retrieves them by owner or public tracking id;
// for admins it lists and transitions all orders. The just-placed "current"
// order and the publicly "tracked" order are distinct slots, so tracking
// someone else's order never overwrites the user's own.
type Orders struct {
	mu          sync.Mutex
	current     *order.Order
	tracked     *order.Order
	userOrders  []order.Order
	adminOrders []order.Order
	history     []TrackingEntry
	loading     bool
	err         string
	success     bool

	client *api.Client
	logger *zap.Logger
	bus    *eventBus

	createSeq sequence
	trackSeq  sequence
	userSeq   sequence
	adminSeq  sequence
}

// NewOrders creates an empty order slice. The bus carries the order-placed
// event that the composed store routes to the cart.
func NewOrders(client *api.Client, bus *eventBus, logger *zap.Logger) *Orders {
	return &Orders{
		client: client,
		logger: logger.Named("orders"),
		bus:    bus,
	}
}

// Create places an order for the authenticated user. On success the result
// becomes the current order and the order-placed event fires, clearing the
// cart through the store's subscription.
func (o *Orders) Create(ctx context.Context, req order.CreateRequest) (*order.Order, error) {
	return o.create(ctx, req, false)
}

// CreateGuest places an order without a session; req must carry GuestInfo
func (o *Orders) CreateGuest(ctx context.Context, req order.CreateRequest) (*order.Order, error) {
	return o.create(ctx, req, true)
}

func (o *Orders) create(ctx context.Context, req order.CreateRequest, guest bool) (*order.Order, error) {
	ticket := o.createSeq.next()
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.success = false
	o.mu.Unlock()

	var created *order.Order
	var err error
	if guest {
		created, err = o.client.CreateGuestOrder(ctx, req)
	} else {
		created, err = o.client.CreateOrder(ctx, req)
	}

	o.mu.Lock()
	if !o.createSeq.current(ticket) {
		o.mu.Unlock()
		o.logger.Debug("discarding stale order creation response")
		return created, err
	}
	o.loading = false
	if err != nil {
		o.err = errorMessage(err, "Failed to create order")
		o.mu.Unlock()
		return nil, err
	}

	o.current = created
	o.success = true
	o.mu.Unlock()

	// Publish outside the lock: the cart's Clear runs on this goroutine
	o.bus.publish(EventOrderPlaced)
	return created, nil
}

// Track looks up an order by its public tracking identifier, storing the
// result in the tracked slot and prepending it to the tracking history.
func (o *Orders) Track(ctx context.Context, trackingID string) (*order.Order, error) {
	ticket := o.trackSeq.next()
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.mu.Unlock()

	tracked, err := o.client.TrackOrder(ctx, trackingID)

	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.trackSeq.current(ticket) {
		o.logger.Debug("discarding stale tracking response")
		return tracked, err
	}
	o.loading = false
	if err != nil {
		o.err = errorMessage(err, "Failed to track order")
		return nil, err
	}

	o.tracked = tracked
	o.rememberTrackingLocked(tracked)
	return tracked, nil
}

// FetchUserOrders loads the authenticated user's order list
func (o *Orders) FetchUserOrders(ctx context.Context) error {
	ticket := o.userSeq.next()
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.mu.Unlock()

	orders, err := o.client.MyOrders(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.userSeq.current(ticket) {
		o.logger.Debug("discarding stale user orders response")
		return err
	}
	o.loading = false
	if err != nil {
		o.err = errorMessage(err, "Failed to fetch orders")
		return err
	}

	o.userOrders = orders
	return nil
}

// FetchAll loads the admin order list
func (o *Orders) FetchAll(ctx context.Context, query url.Values) error {
	ticket := o.adminSeq.next()
	o.mu.Lock()
	o.loading = true
	o.err = ""
	o.mu.Unlock()

	page, err := o.client.Orders(ctx, query)

	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.adminSeq.current(ticket) {
		o.logger.Debug("discarding stale admin orders response")
		return err
	}
	o.loading = false
	if err != nil {
		o.err = errorMessage(err, "Failed to fetch orders")
		return err
	}

	o.adminOrders = page.Orders
	return nil
}

// UpdateStatus transitions an order's status (admin/coordinator). On success
// every in-memory copy of the order is patched — admin list, user list, and
// current order — so no view shows stale status. The client performs no
// transition-legality check; the server is authoritative.
func (o *Orders) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	updated, err := o.client.UpdateOrderStatus(ctx, id, status)
	return o.applyPatched(updated, err, "Failed to update order status")
}

// UpdatePayment updates an order's payment status (admin), patching all copies
func (o *Orders) UpdatePayment(ctx context.Context, id, status string) error {
	updated, err := o.client.UpdatePaymentStatus(ctx, id, status)
	return o.applyPatched(updated, err, "Failed to update payment status")
}

// Cancel cancels an order, patching all copies with the returned state
func (o *Orders) Cancel(ctx context.Context, id string) error {
	cancelled, err := o.client.CancelOrder(ctx, id)
	return o.applyPatched(cancelled, err, "Failed to cancel order")
}

// applyPatched records a mutation result: on failure the error message, on
// success the returned order patched into every list that holds a copy.
func (o *Orders) applyPatched(updated *order.Order, err error, fallback string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loading = false
	if err != nil {
		o.err = errorMessage(err, fallback)
		return err
	}

	for i := range o.adminOrders {
		if o.adminOrders[i].ID == updated.ID {
			o.adminOrders[i] = *updated
			break
		}
	}
	for i := range o.userOrders {
		if o.userOrders[i].ID == updated.ID {
			o.userOrders[i] = *updated
			break
		}
	}
	if o.current != nil && o.current.ID == updated.ID {
		o.current = updated
	}
	o.err = ""
	return nil
}

// ClearOrderState drops the current and tracked orders along with the
// error and success flags
func (o *Orders) ClearOrderState() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.current = nil
	o.tracked = nil
	o.err = ""
	o.success = false
}

// ClearError discards the last order flow error
func (o *Orders) ClearError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err = ""
}

// ClearSuccess resets the success flag
func (o *Orders) ClearSuccess() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.success = false
}

// ClearTrackingHistory empties the remembered tracking lookups
func (o *Orders) ClearTrackingHistory() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.history = nil
}

// Current returns the just-placed order, or nil
func (o *Orders) Current() *order.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.current == nil {
		return nil
	}
	current := *o.current
	return &current
}

// Tracked returns the last publicly tracked order, or nil
func (o *Orders) Tracked() *order.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.tracked == nil {
		return nil
	}
	tracked := *o.tracked
	return &tracked
}

// UserOrders returns a copy of the user's order list
func (o *Orders) UserOrders() []order.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]order.Order, len(o.userOrders))
	copy(out, o.userOrders)
	return out
}

// AdminOrders returns a copy of the admin order list
func (o *Orders) AdminOrders() []order.Order {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]order.Order, len(o.adminOrders))
	copy(out, o.adminOrders)
	return out
}

// History returns a copy of the tracking history, most recent first
func (o *Orders) History() []TrackingEntry {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]TrackingEntry, len(o.history))
	copy(out, o.history)
	return out
}

// Loading reports whether an order flow is pending
func (o *Orders) Loading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.loading
}

// Err returns the last order flow error message
func (o *Orders) Err() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Success reports whether the last creation flow fulfilled
func (o *Orders) Success() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.success
}

// rememberTrackingLocked prepends a tracking lookup to the history,
// deduplicated by tracking id and capped. Caller must hold o.mu.
func (o *Orders) rememberTrackingLocked(tracked *order.Order) {
	for _, entry := range o.history {
		if entry.TrackingID == tracked.TrackingID {
			return
		}
	}

	name := tracked.CustomerName()
	entry := TrackingEntry{
		TrackingID:   tracked.TrackingID,
		OrderDate:    tracked.CreatedAt.Format("2006-01-02"),
		Status:       tracked.Status,
		CustomerName: name,
		TotalAmount:  tracked.TotalAmount,
	}
	o.history = append([]TrackingEntry{entry}, o.history...)
	if len(o.history) > trackingHistoryLimit {
		o.history = o.history[:trackingHistoryLimit]
	}
}
