package order

// Status is the lifecycle position of an order. It is derived from the payment and
// delivery flags and never stored on its own.
type Status string

const (
	StatusCreated   Status = "Created"
	StatusPaid      Status = "Paid"
	StatusDelivered Status = "Delivered"
)

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is one of the three lifecycle statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusCreated, StatusPaid, StatusDelivered:
		return true
	default:
		return false
	}
}

func statusOf(isPaid, isDelivered bool) Status {
	switch {
	case isDelivered:
		return StatusDelivered
	case isPaid:
		return StatusPaid
	default:
		return StatusCreated
	}
}
