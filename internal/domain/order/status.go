package order

// Status represents the status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are possible
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status:
// linear progression pending → processing → shipped → delivered, with
// cancellation possible from any non-terminal state.
//
// The order store does not gate on this predicate — the server is
// authoritative and the client reflects whatever status it returns. It exists
// for display logic and the admin CLI.
func (s Status) CanTransitionTo(target Status) bool {
	if target == StatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case StatusPending:
		return target == StatusProcessing
	case StatusProcessing:
		return target == StatusShipped
	case StatusShipped:
		return target == StatusDelivered
	}
	return false
}
