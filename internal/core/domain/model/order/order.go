package order

import (
	"errors"
	"strings"
	"time"

	"orderledger/internal/core/domain/model/kernel"
	"orderledger/internal/pkg/errs"
	"orderledger/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned by state transitions on an Order that did not
	// come from NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errs.NewValueIsRequiredError("Order must be created via NewOrder or RestoreOrder")

	// ErrAlreadyPaid rejects a second payment for the same order.
	ErrAlreadyPaid = errs.NewConflictError("order is already paid")
	// ErrNotPaid rejects delivery of an unpaid order under the default DeliveryPolicy.
	ErrNotPaid = errs.NewConflictError("order must be paid before it is delivered")

	ErrParcelIDRequired  = errs.NewValueIsRequiredError("parcelId")
	ErrNoItems           = errs.NewValueIsRequiredError("orderItems")
	ErrEmptyAddressPatch = errs.NewValueIsRequiredError("shippingAddress")
)

// DeliveryPolicy decides whether delivery may be recorded for an unpaid order.
type DeliveryPolicy struct {
	RequirePaymentBeforeDelivery bool
}

// DefaultDeliveryPolicy enforces Created → Paid → Delivered.
func DefaultDeliveryPolicy() DeliveryPolicy {
	return DeliveryPolicy{RequirePaymentBeforeDelivery: true}
}

// Order is the authoritative record of a purchase and the aggregate root of the ledger.
//
// Order follows these invariants:
//   - isPaid is true exactly when paidAt and paymentResult are set, and never goes back
//   - isDelivered is true exactly when deliveredAt is set, and deliveredAt never changes
//   - Items and prices are fixed at creation
//   - version grows by one with every persisted write
//
// Every state change raises an Event, which the unit of work publishes after commit.
type Order struct {
	id              kernel.UUID
	items           []LineItem
	shippingAddress Address
	paymentMethod   string
	prices          Prices

	isPaid        bool
	paidAt        *time.Time
	paymentResult *PaymentResult

	isDelivered bool
	deliveredAt *time.Time

	parcelID *string

	version   int64
	createdAt time.Time
	updatedAt time.Time

	events []Event

	guard guard.ConstructorGuard
}

// NewOrder creates an unpaid, undelivered order at version 1 and raises EventCreated.
//
// Parameters:
//   - id: identifier for the new order
//   - items: at least one valid line item, priced from the catalog
//   - shippingAddress: a validated Address
//   - paymentMethod: non-empty after trimming
//   - prices: the price calculator's result for the same items
//   - now: creation time, stored in UTC
//
// Returns:
//   - *Order: the new order
//   - error: every validation failure, joined
//
// Example:
//
//	prices := calculator.Calculate(items)
//	o, err := order.NewOrder(kernel.NewUUID(), items, address, "Razorpay", prices, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	items []LineItem,
	shippingAddress Address,
	paymentMethod string,
	prices Prices,
	now time.Time,
) (*Order, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if len(items) == 0 {
		problems = append(problems, ErrNoItems)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	if err := shippingAddress.Validate(); err != nil {
		problems = append(problems, err)
	}
	paymentMethod = strings.TrimSpace(paymentMethod)
	if paymentMethod == "" {
		problems = append(problems, errs.NewValueIsRequiredError("paymentMethod"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}

	now = now.UTC()
	o := &Order{
		id:              id,
		items:           append([]LineItem(nil), items...),
		shippingAddress: shippingAddress,
		paymentMethod:   paymentMethod,
		prices:          prices,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
		guard:           guard.NewConstructorGuard(),
	}
	o.raise(EventCreated, now)
	return o, nil
}

// Snapshot is the complete persisted state of an order, used by repositories to rebuild
// the aggregate.
type Snapshot struct {
	ID              kernel.UUID
	Items           []LineItem
	ShippingAddress Address
	PaymentMethod   string
	Prices          Prices
	IsPaid          bool
	PaidAt          *time.Time
	PaymentResult   *PaymentResult
	IsDelivered     bool
	DeliveredAt     *time.Time
	ParcelID        *string
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RestoreOrder rebuilds an order from storage. It checks only the invariants that tie
// the flags to their timestamps, and raises no events.
//
// Parameters:
//   - s: the persisted state, including the version read from storage
//
// Returns:
//   - *Order: the rebuilt aggregate
//   - error: ValueIsInvalidError when isPaid or isDelivered disagree with their timestamps
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, err
	}
	if s.IsPaid != (s.PaidAt != nil) {
		return nil, errs.NewValueIsInvalidError("paidAt")
	}
	if s.IsDelivered != (s.DeliveredAt != nil) {
		return nil, errs.NewValueIsInvalidError("deliveredAt")
	}
	if s.ParcelID != nil && *s.ParcelID == "" {
		s.ParcelID = nil
	}

	return &Order{
		id:              s.ID,
		items:           append([]LineItem(nil), s.Items...),
		shippingAddress: s.ShippingAddress,
		paymentMethod:   s.PaymentMethod,
		prices:          s.Prices,
		isPaid:          s.IsPaid,
		paidAt:          s.PaidAt,
		paymentResult:   s.PaymentResult,
		isDelivered:     s.IsDelivered,
		deliveredAt:     s.DeliveredAt,
		parcelID:        s.ParcelID,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate reports whether the order was built through a constructor.
func (o *Order) Validate() error {
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// ShippingAddress returns the current delivery address.
func (o *Order) ShippingAddress() Address {
	return o.shippingAddress
}

// PaymentMethod returns the payment method chosen at checkout.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// Prices returns the prices computed when the order was created.
func (o *Order) Prices() Prices {
	return o.prices
}

// IsPaid reports whether a payment has been recorded.
func (o *Order) IsPaid() bool {
	return o.isPaid
}

// PaidAt returns when the order was paid, or nil.
func (o *Order) PaidAt() *time.Time {
	return copyTime(o.paidAt)
}

// PaymentResult returns a copy of the recorded payment, or nil when unpaid.
func (o *Order) PaymentResult() *PaymentResult {
	if o.paymentResult == nil {
		return nil
	}
	pr := *o.paymentResult
	return &pr
}

// IsDelivered reports whether delivery has been recorded.
func (o *Order) IsDelivered() bool {
	return o.isDelivered
}

// DeliveredAt returns the first recorded delivery time, or nil.
func (o *Order) DeliveredAt() *time.Time {
	return copyTime(o.deliveredAt)
}

// ParcelID returns the linked tracking-service parcel id.
// Returns nil if no parcel is assigned.
func (o *Order) ParcelID() *string {
	if o.parcelID == nil {
		return nil
	}
	id := *o.parcelID
	return &id
}

// HasParcel reports whether a parcel is assigned.
func (o *Order) HasParcel() bool {
	return o.parcelID != nil
}

// Status derives the lifecycle status from the paid and delivered flags.
func (o *Order) Status() Status {
	return statusOf(o.isPaid, o.isDelivered)
}

// Version returns the version the order was read or created at.
func (o *Order) Version() int64 {
	return o.version
}

// CreatedAt returns the creation time in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last state change in UTC.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsEqual compares two orders by their identifiers.
// Returns false if other is nil.
func (o *Order) IsEqual(other *Order) bool {
	if other == nil {
		return false
	}
	return o.id.IsEqual(other.id)
}

// MarkPaid records a settled payment and raises EventPaid. An order is paid at most once.
//
// Parameters:
//   - result: what the gateway or processor reported about the payment
//   - at: payment time, stored in UTC
//
// Returns:
//   - nil on success
//   - ErrAlreadyPaid if a payment is already recorded; the first result is kept
//   - ErrOrderIsNotConstructed if the order did not come from a constructor
//
// Example:
//
//	err := o.MarkPaid(order.PaymentResult{GatewayPaymentID: "pay_1", Status: "completed"}, time.Now())
//	if errors.Is(err, order.ErrAlreadyPaid) {
//	    // Report a conflict
//	}
func (o *Order) MarkPaid(result PaymentResult, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.isPaid {
		return ErrAlreadyPaid
	}

	at = at.UTC()
	o.isPaid = true
	o.paidAt = &at
	o.paymentResult = &result
	o.updatedAt = at
	o.raise(EventPaid, at)
	return nil
}

// MarkDelivered records delivery and raises EventDelivered. It reports false without
// changing anything when the order is already delivered, so the first deliveredAt is kept.
//
// Parameters:
//   - at: delivery time, stored in UTC
//   - policy: whether payment must come first
//
// Returns:
//   - bool: true when the order changed and must be persisted
//   - error: ErrNotPaid when policy requires payment and the order is unpaid
//
// Example:
//
//	changed, err := o.MarkDelivered(time.Now(), order.DefaultDeliveryPolicy())
//	if err == nil && changed {
//	    // Persist the order
//	}
func (o *Order) MarkDelivered(at time.Time, policy DeliveryPolicy) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}
	if o.isDelivered {
		return false, nil
	}
	if policy.RequirePaymentBeforeDelivery && !o.isPaid {
		return false, ErrNotPaid
	}

	at = at.UTC()
	o.isDelivered = true
	o.deliveredAt = &at
	o.updatedAt = at
	o.raise(EventDelivered, at)
	return true, nil
}

// AssignParcel links the order to a parcel in the tracking service, replacing any
// previous link, and raises EventParcelAssigned.
//
// Parameters:
//   - parcelID: the tracking service's parcel id, trimmed; must not be empty
//   - at: assignment time
//
// Returns:
//   - nil on success
//   - ErrParcelIDRequired if parcelID is blank
func (o *Order) AssignParcel(parcelID string, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	parcelID = strings.TrimSpace(parcelID)
	if parcelID == "" {
		return ErrParcelIDRequired
	}

	o.parcelID = &parcelID
	o.updatedAt = at.UTC()
	o.raise(EventParcelAssigned, at)
	return nil
}

// ChangeShippingAddress merges patch into the current address, raises
// EventAddressChanged and returns the address it replaced.
//
// Parameters:
//   - patch: the fields to change; absent fields keep their current value
//   - at: change time
//
// Returns:
//   - Address: the previous address, for compensation
//   - error: ErrEmptyAddressPatch for an empty patch, or the validation error of the
//     merged address
//
// Example:
//
//	city := "Mysuru"
//	previous, err := o.ChangeShippingAddress(order.AddressPatch{City: &city}, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//
// The order is unchanged when an error is returned.
func (o *Order) ChangeShippingAddress(patch AddressPatch, at time.Time) (Address, error) {
	if err := o.Validate(); err != nil {
		return Address{}, err
	}
	if patch.IsEmpty() {
		return Address{}, ErrEmptyAddressPatch
	}

	merged, err := o.shippingAddress.Merge(patch)
	if err != nil {
		return Address{}, err
	}

	previous := o.shippingAddress
	o.shippingAddress = merged
	o.updatedAt = at.UTC()
	o.raise(EventAddressChanged, at)
	return previous, nil
}

// AdvanceVersion is called by repositories after a successful conditional write.
func (o *Order) AdvanceVersion() {
	o.version++
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
