package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrItemsAreRequired is returned when creating an order without items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrCustomerNameIsRequired is returned when creating an order without a customer name.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customer name")
	// ErrPhoneIsRequired is returned when creating an order without a contact phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrAddressIsRequired is returned when creating an order without a delivery address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrRejectReasonIsRequired is returned when rejecting an order without a reason.
	ErrRejectReasonIsRequired = errs.NewValueIsRequiredError("reject reason")
	// ErrWalletExceedsTotal is returned when the applied wallet amount plus
	// discount would drive the final amount below zero.
	ErrWalletExceedsTotal = errs.NewValueIsInvalidError(
		"wallet and discount must not exceed subtotal plus delivery fee")
)

// Order is the aggregate root for a placed order and the single source of
// truth for its lifecycle. It holds the frozen line items and amounts, the
// customer and address snapshot, and the status that only this aggregate's
// transition methods may change.
//
// Invariants:
//   - finalAmount = subtotal + deliveryFee − discount − walletUsed, never negative
//   - status walks only the edges defined on Status; terminal statuses are immutable
//   - items and amounts never change after placement
//
// Concurrency: the aggregate carries an optimistic version counter. Every
// successful mutation increments Version(); the postgres repository writes
// back with a compare-and-set against PersistedVersion() and reports a
// StaleStateError when a concurrent writer advanced the record first.
type Order struct {
	id        kernel.UUID
	shortCode kernel.ShortCode

	customerID   *kernel.UUID // nil for guest checkout
	customerName string
	phone        string
	address      string
	instructions string

	items       []Item
	subtotal    kernel.Money
	deliveryFee kernel.Money
	discount    kernel.Money
	walletUsed  kernel.Money
	finalAmount kernel.Money

	paymentMethod PaymentMethod
	status        Status
	rejectReason  string
	rejectNote    string
	riderID       *kernel.UUID

	placedAt    time.Time
	statusTimes map[Status]time.Time

	version          int
	persistedVersion int

	guard guard.ConstructorGuard
}

// NewOrder creates an order at checkout time. The delivery fee must already
// have passed the fee calculator gate; this constructor only records it.
//
// The subtotal is derived from the items, and the final amount from the
// amount invariant; both are frozen from then on. The initial status follows
// the payment method: methods settling immediately (cash) or a wallet balance
// covering the full amount start in Pending, everything else starts in
// PendingPayment and is subject to the expiry deadline.
func NewOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	customerName, phone, address, instructions string,
	items []Item,
	deliveryFee, discount, walletUsed kernel.Money,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Order, error) {
	o := &Order{
		shortCode:   kernel.NewShortCode(),
		guard:       guard.NewConstructorGuard(),
		statusTimes: make(map[Status]time.Time),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customerID, customerName, phone, address),
		o.setItems(items),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	o.instructions = instructions
	o.paymentMethod = paymentMethod
	o.deliveryFee = deliveryFee
	o.discount = discount
	o.walletUsed = walletUsed

	final, err := o.subtotal.Add(deliveryFee).Sub(discount.Add(walletUsed))
	if err != nil {
		return nil, ErrWalletExceedsTotal
	}
	o.finalAmount = final

	if paymentMethod.SettlesImmediately() || final.IsZero() {
		o.status = Pending
	} else {
		o.status = PendingPayment
	}

	o.placedAt = now
	o.statusTimes[o.status] = now
	o.version = 1
	o.persistedVersion = 0

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistence, including
// its version counter. The restored order behaves identically to one built
// through normal domain operations.
func RestoreOrder(
	id kernel.UUID,
	shortCode kernel.ShortCode,
	customerID *kernel.UUID,
	customerName, phone, address, instructions string,
	items []Item,
	deliveryFee, discount, walletUsed kernel.Money,
	paymentMethod PaymentMethod,
	status Status,
	rejectReason, rejectNote string,
	riderID *kernel.UUID,
	placedAt time.Time,
	statusTimes map[Status]time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		guard:       guard.NewConstructorGuard(),
		statusTimes: make(map[Status]time.Time, len(statusTimes)),
	}

	if err := errors.Join(
		o.setID(id),
		shortCode.Validate(),
		o.setCustomer(customerID, customerName, phone, address),
		o.setItems(items),
		paymentMethod.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidError("version")
	}

	o.shortCode = shortCode
	o.instructions = instructions
	o.paymentMethod = paymentMethod
	o.deliveryFee = deliveryFee
	o.discount = discount
	o.walletUsed = walletUsed

	final, err := o.subtotal.Add(deliveryFee).Sub(discount.Add(walletUsed))
	if err != nil {
		return nil, ErrWalletExceedsTotal
	}
	o.finalAmount = final

	o.status = status
	o.rejectReason = rejectReason
	o.rejectNote = rejectNote
	o.riderID = riderID
	o.placedAt = placedAt
	for s, ts := range statusTimes {
		o.statusTimes[s] = ts
	}
	o.version = version
	o.persistedVersion = version

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// ShortCode returns the human-readable order code.
func (o *Order) ShortCode() kernel.ShortCode { return o.shortCode }

// CustomerID returns the account customer's id, or nil for guest checkout.
func (o *Order) CustomerID() *kernel.UUID { return o.customerID }

// CustomerName returns the name captured at checkout.
func (o *Order) CustomerName() string { return o.customerName }

// Phone returns the contact phone captured at checkout.
func (o *Order) Phone() string { return o.phone }

// Address returns the delivery address snapshot.
func (o *Order) Address() string { return o.address }

// Instructions returns the customer's free-text instructions.
func (o *Order) Instructions() string { return o.instructions }

// Items returns a copy of the ordered line items.
func (o *Order) Items() []Item { return append([]Item(nil), o.items...) }

// Subtotal returns the sum of the line totals.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// DeliveryFee returns the fee charged at checkout.
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }

// Discount returns the discount applied at checkout.
func (o *Order) Discount() kernel.Money { return o.discount }

// WalletUsed returns the wallet amount applied at checkout.
func (o *Order) WalletUsed() kernel.Money { return o.walletUsed }

// FinalAmount returns subtotal + deliveryFee − discount − walletUsed.
func (o *Order) FinalAmount() kernel.Money { return o.finalAmount }

// PaymentMethod returns the chosen payment method.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// RejectReason returns the reason recorded on rejection, if any.
func (o *Order) RejectReason() string { return o.rejectReason }

// RejectNote returns the free-text note recorded on rejection, if any.
func (o *Order) RejectNote() string { return o.rejectNote }

// Rider returns the assigned rider's id, or nil while unassigned.
func (o *Order) Rider() *kernel.UUID { return o.riderID }

// PlacedAt returns the checkout timestamp.
func (o *Order) PlacedAt() time.Time { return o.placedAt }

// StatusTimes returns a copy of the per-status entry timestamps.
func (o *Order) StatusTimes() map[Status]time.Time {
	times := make(map[Status]time.Time, len(o.statusTimes))
	for s, ts := range o.statusTimes {
		times[s] = ts
	}
	return times
}

// Version returns the current (possibly unpersisted) version counter.
func (o *Order) Version() int { return o.version }

// PersistedVersion returns the version the aggregate was loaded with. The
// repository's compare-and-set matches against this value.
func (o *Order) PersistedVersion() int { return o.persistedVersion }

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ConfirmPayment applies the confirmed payment signal,
// moving PendingPayment to Pending.
func (o *Order) ConfirmPayment(now time.Time) error {
	return o.applyTransition(Status.ConfirmPayment, now)
}

// Accept applies staff acceptance, moving Pending to Confirmed.
func (o *Order) Accept(now time.Time) error {
	return o.applyTransition(Status.Accept, now)
}

// StartPreparing moves Confirmed to Preparing when kitchen work begins.
func (o *Order) StartPreparing(now time.Time) error {
	return o.applyTransition(Status.StartPreparing, now)
}

// Dispatch moves Preparing to OutForDelivery. Callers must verify the
// kitchen ticket reports all items ready before invoking this.
func (o *Order) Dispatch(now time.Time) error {
	return o.applyTransition(Status.Dispatch, now)
}

// Deliver moves OutForDelivery to Delivered and stamps the completion time.
func (o *Order) Deliver(now time.Time) error {
	return o.applyTransition(Status.Deliver, now)
}

// Reject moves any non-terminal status to Rejected, recording the mandatory
// reason and an optional note.
func (o *Order) Reject(reason, note string, now time.Time) error {
	if reason == "" {
		return ErrRejectReasonIsRequired
	}
	if err := o.applyTransition(Status.Reject, now); err != nil {
		return err
	}
	o.rejectReason = reason
	o.rejectNote = note
	return nil
}

// Cancel moves any non-terminal status to Cancelled. Caller-scoped rules
// (customer and scheduler may only cancel unpaid orders) are enforced by the
// command handlers.
func (o *Order) Cancel(now time.Time) error {
	return o.applyTransition(Status.Cancel, now)
}

// AssignRider records the rider on the order. Rider assignment is a field
// mutation, not a status edge; it is legal in any non-terminal status and may
// reassign an already assigned rider.
func (o *Order) AssignRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewTerminalStateError("order", o.status.String())
	}
	o.riderID = &riderID
	o.version++
	return nil
}

// applyTransition routes every status change through the Status state
// machine, stamps the entry time, and bumps the optimistic version.
func (o *Order) applyTransition(edge func(Status) (Status, error), now time.Time) error {
	newStatus, err := edge(o.status)
	if err != nil {
		return err
	}
	o.status = newStatus
	o.statusTimes[newStatus] = now
	o.version++
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID *kernel.UUID, name, phone, address string) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}
	if name == "" {
		return ErrCustomerNameIsRequired
	}
	if phone == "" {
		return ErrPhoneIsRequired
	}
	if address == "" {
		return ErrAddressIsRequired
	}
	o.customerID = customerID
	o.customerName = name
	o.phone = phone
	o.address = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	subtotal := kernel.Money{}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		subtotal = subtotal.Add(item.LineTotal())
	}
	o.items = append([]Item(nil), items...)
	o.subtotal = subtotal
	return nil
}
