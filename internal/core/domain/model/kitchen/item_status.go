package kitchen

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ItemStatus is the prep state of a single kitchen item. Items move strictly
// forward, one step at a time:
//
//	ItemPending ──> ItemPreparing ──> ItemReady
//
// An item cannot jump from ItemPending to ItemReady, and repeating a step is
// a DuplicateActionError so a double submission from a UI retry stays
// observable instead of silently succeeding.
type ItemStatus int

const (
	// ItemStatusUnknown represents an invalid or undefined item status.
	ItemStatusUnknown ItemStatus = iota

	// ItemPending means work on the item has not started.
	ItemPending

	// ItemPreparing means the item is being prepared.
	ItemPreparing

	// ItemReady means the item is finished and waiting for hand-off.
	ItemReady
)

func getItemStatusStrings() map[ItemStatus]string {
	//nolint:exhaustive // ItemStatusUnknown is intentionally excluded as it's invalid
	return map[ItemStatus]string{
		ItemPending:   "pending",
		ItemPreparing: "preparing",
		ItemReady:     "ready",
	}
}

// Validate checks that the value is one of the defined item states.
func (s ItemStatus) Validate() error {
	if _, ok := getItemStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("item status",
			fmt.Errorf("%d is not a valid item status", int(s)))
	}
	return nil
}

// String returns the wire name of the item status.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// AggregateStatus is the rolled-up status of a kitchen ticket, derived from
// its items. It is computed, never stored: recomputing it on every read is
// what keeps it from drifting away from item reality.
type AggregateStatus int

const (
	// AggregateNew means all items are still pending.
	AggregateNew AggregateStatus = iota + 1

	// AggregatePreparing means work started but not every item is ready.
	AggregatePreparing

	// AggregateReady means every item is ready and the ticket awaits the
	// explicit complete-order hand-off.
	AggregateReady

	// AggregateCompleted means staff confirmed the hand-off.
	AggregateCompleted
)

// String returns the wire name of the aggregate status.
func (s AggregateStatus) String() string {
	switch s {
	case AggregateNew:
		return "new"
	case AggregatePreparing:
		return "preparing"
	case AggregateReady:
		return "ready"
	case AggregateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}
