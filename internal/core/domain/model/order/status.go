package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a state
// machine with defined transitions so orders follow the fulfillment workflow:
//
//	PendingPayment ──> Pending ──> Confirmed ──> Preparing ──> OutForDelivery ──> Delivered
//	      │               │            │              │                │
//	      └── Cancelled   └─ Rejected  └──────── Cancelled/Rejected ───┘
//	          (timeout or explicit)        (admin override, any non-terminal)
//
// Delivered, Cancelled and Rejected are terminal; no edge leaves them.
// Every transition method returns the new status or an error from the errs
// taxonomy: TerminalStateError when the order already rests in a terminal
// status, IllegalTransitionError when the requested edge is not defined from
// the current status.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingPayment is the initial status for payment methods that settle
	// asynchronously (card, bank transfer, mobile wallet). Orders left here
	// past the payment deadline are cancelled by the expiry scheduler.
	PendingPayment

	// Pending means payment is settled (or not required up front) and the
	// order awaits acceptance by admin or kitchen staff.
	Pending

	// Confirmed means staff accepted the order; the kitchen ticket is live.
	Confirmed

	// Preparing means the kitchen started work on at least one item.
	Preparing

	// OutForDelivery means the kitchen handed the order off for delivery.
	OutForDelivery

	// Delivered is the successful terminal status.
	Delivered

	// Cancelled is the terminal status for expiry timeouts, customer
	// cancellation of unpaid orders, and admin override cancellation.
	Cancelled

	// Rejected is the terminal status for staff rejection; a reason is
	// recorded on the order.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		PendingPayment: "pending_payment",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Rejected:       "rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingPayment: "pending_payment",
		Pending:        "pending",
		Confirmed:      "confirmed",
		Preparing:      "preparing",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Rejected:       "rejected",
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid. Used when reconstructing
// orders from persistence or parsing status filters from requests.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errInvalidStatusValue(s)
	}
	return nil
}

// String returns the wire name of the status ("pending_payment", ...).
// Safe to call on any value; invalid values yield "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire status name. Used for status filters in
// listing queries.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errInvalidStatusName(s)
}

// IsTerminal reports whether no further transitions may leave this status.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}

// IsKitchenActive reports whether an order in this status has a live kitchen
// ticket.
func (s Status) IsKitchenActive() bool {
	return s == Pending || s == Confirmed || s == Preparing
}

// ConfirmPayment transitions PendingPayment to Pending on a confirmed
// payment signal.
func (s Status) ConfirmPayment() (Status, error) {
	return s.transition(PendingPayment, Pending)
}

// Accept transitions Pending to Confirmed on staff acceptance.
func (s Status) Accept() (Status, error) {
	return s.transition(Pending, Confirmed)
}

// StartPreparing transitions Confirmed to Preparing when kitchen work starts.
func (s Status) StartPreparing() (Status, error) {
	return s.transition(Confirmed, Preparing)
}

// Dispatch transitions Preparing to OutForDelivery. The caller is responsible
// for checking the kitchen ticket reports all items ready before requesting
// this edge.
func (s Status) Dispatch() (Status, error) {
	return s.transition(Preparing, OutForDelivery)
}

// Deliver transitions OutForDelivery to Delivered.
func (s Status) Deliver() (Status, error) {
	return s.transition(OutForDelivery, Delivered)
}

// Reject transitions any non-terminal status to Rejected. Role rules (who may
// reject from which status) are enforced at the mutation boundary, not here.
func (s Status) Reject() (Status, error) {
	return s.transitionFromAnyActive(Rejected)
}

// Cancel transitions any non-terminal status to Cancelled. The expiry
// scheduler and customers are restricted to cancelling from PendingPayment;
// that restriction lives in the command handlers.
func (s Status) Cancel() (Status, error) {
	return s.transitionFromAnyActive(Cancelled)
}

// transition applies a single-source edge.
func (s Status) transition(from, to Status) (Status, error) {
	if s.IsTerminal() {
		return Unknown, errs.NewTerminalStateError("order", s.String())
	}
	if s != from {
		return Unknown, errs.NewIllegalTransitionError("order", s.String(), to.String())
	}
	return to, nil
}

// transitionFromAnyActive applies an edge legal from every non-terminal state.
func (s Status) transitionFromAnyActive(to Status) (Status, error) {
	if s.IsTerminal() {
		return Unknown, errs.NewTerminalStateError("order", s.String())
	}
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	return to, nil
}

func errInvalidStatusValue(s Status) error {
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", int(s)))
}

func errInvalidStatusName(name string) error {
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status name", name))
}
