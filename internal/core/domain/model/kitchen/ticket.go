package kitchen

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for kitchen ticket operations.
var (
	// ErrTicketIsNotConstructed is returned when a Ticket instance was not
	// created through NewTicket or RestoreTicket.
	ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket or RestoreTicket")
	// ErrTicketItemIsNotConstructed is returned when a TicketItem was not
	// created through NewTicketItem or RestoreTicketItem.
	ErrTicketItemIsNotConstructed = errors.New(
		"TicketItem must be created via NewTicketItem or RestoreTicketItem")
	// ErrTicketItemsAreRequired is returned when creating a ticket without items.
	ErrTicketItemsAreRequired = errs.NewValueIsRequiredError("ticket items")
	// ErrItemNameIsRequired is returned when creating a ticket item without a name.
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("item name")
)

// TicketItem is a single prep line on a kitchen ticket. It mirrors an order
// line item but carries its own prep status; the name and quantity are frozen
// copies so the kitchen display never re-reads the order.
type TicketItem struct {
	menuItemID kernel.UUID
	name       string
	quantity   int
	status     ItemStatus

	guard guard.ConstructorGuard
}

// NewTicketItem creates a prep line in the pending state.
func NewTicketItem(menuItemID kernel.UUID, name string, quantity int) (TicketItem, error) {
	i := TicketItem{
		status: ItemPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		i.setMenuItemID(menuItemID),
		i.setName(name),
		i.setQuantity(quantity),
	); err != nil {
		return TicketItem{}, err
	}

	return i, nil
}

// RestoreTicketItem reconstructs a prep line from persistence.
func RestoreTicketItem(menuItemID kernel.UUID, name string, quantity int, status ItemStatus) (TicketItem, error) {
	i, err := NewTicketItem(menuItemID, name, quantity)
	if err != nil {
		return TicketItem{}, err
	}
	if err := status.Validate(); err != nil {
		return TicketItem{}, err
	}
	i.status = status
	return i, nil
}

// Validate ensures the TicketItem was created through a constructor.
func (i *TicketItem) Validate() error {
	if i == nil {
		return ErrTicketItemIsNotConstructed
	}
	return i.guard.Validate(ErrTicketItemIsNotConstructed)
}

// MenuItemID returns the menu item this line was created from.
func (i TicketItem) MenuItemID() kernel.UUID { return i.menuItemID }

// Name returns the item name frozen at ticket creation.
func (i TicketItem) Name() string { return i.name }

// Quantity returns the number of units to prepare.
func (i TicketItem) Quantity() int { return i.quantity }

// Status returns the line's current prep status.
func (i TicketItem) Status() ItemStatus { return i.status }

func (i *TicketItem) setMenuItemID(menuItemID kernel.UUID) error {
	if err := menuItemID.Validate(); err != nil {
		return err
	}
	i.menuItemID = menuItemID
	return nil
}

func (i *TicketItem) setName(name string) error {
	if name == "" {
		return ErrItemNameIsRequired
	}
	i.name = name
	return nil
}

func (i *TicketItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, nil)
	}
	i.quantity = quantity
	return nil
}

// Ticket is the kitchen-side aggregate tracking per-item preparation for one
// order. It is created when an order becomes visible to the kitchen and
// retired when the order leaves the active kitchen states.
//
// The ticket's aggregate status is always derived from its items via
// AggregateStatus and is never stored. The only stored bits of progress are
// the per-item statuses, the one-shot completion stamp, and the retired flag.
//
// Concurrency follows the order aggregate: every mutation bumps Version() and
// the repository compare-and-sets against PersistedVersion().
type Ticket struct {
	orderID      kernel.UUID
	shortCode    kernel.ShortCode
	customerName string
	instructions string
	placedAt     time.Time

	items       []TicketItem
	completedAt *time.Time
	retired     bool

	version          int
	persistedVersion int

	guard guard.ConstructorGuard
}

// NewTicket opens a kitchen ticket for an order. All items start pending.
func NewTicket(
	orderID kernel.UUID,
	shortCode kernel.ShortCode,
	customerName, instructions string,
	items []TicketItem,
	now time.Time,
) (*Ticket, error) {
	t := &Ticket{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setOrderID(orderID),
		shortCode.Validate(),
		t.setItems(items),
	); err != nil {
		return nil, err
	}

	t.shortCode = shortCode
	t.customerName = customerName
	t.instructions = instructions
	t.placedAt = now
	t.version = 1
	t.persistedVersion = 0

	return t, nil
}

// RestoreTicket reconstructs a ticket from persistence, including its version
// counter.
func RestoreTicket(
	orderID kernel.UUID,
	shortCode kernel.ShortCode,
	customerName, instructions string,
	items []TicketItem,
	completedAt *time.Time,
	retired bool,
	placedAt time.Time,
	version int,
) (*Ticket, error) {
	t := &Ticket{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setOrderID(orderID),
		shortCode.Validate(),
		t.setItems(items),
	); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidError("version")
	}

	t.shortCode = shortCode
	t.customerName = customerName
	t.instructions = instructions
	t.completedAt = completedAt
	t.retired = retired
	t.placedAt = placedAt
	t.version = version
	t.persistedVersion = version

	return t, nil
}

// Validate ensures the Ticket was created through a constructor.
func (t *Ticket) Validate() error {
	if t == nil {
		return ErrTicketIsNotConstructed
	}
	return t.guard.Validate(ErrTicketIsNotConstructed)
}

// OrderID returns the order this ticket tracks. It doubles as the ticket's
// identity: one order has at most one ticket.
func (t *Ticket) OrderID() kernel.UUID { return t.orderID }

// ShortCode returns the order's human-readable code for the kitchen display.
func (t *Ticket) ShortCode() kernel.ShortCode { return t.shortCode }

// CustomerName returns the customer name frozen at ticket creation.
func (t *Ticket) CustomerName() string { return t.customerName }

// Instructions returns the customer's free-text instructions.
func (t *Ticket) Instructions() string { return t.instructions }

// PlacedAt returns the moment the ticket entered the kitchen.
func (t *Ticket) PlacedAt() time.Time { return t.placedAt }

// Items returns a copy of the prep lines.
func (t *Ticket) Items() []TicketItem { return append([]TicketItem(nil), t.items...) }

// CompletedAt returns the hand-off confirmation time, or nil while open.
func (t *Ticket) CompletedAt() *time.Time { return t.completedAt }

// IsRetired reports whether the ticket left the active kitchen view.
func (t *Ticket) IsRetired() bool { return t.retired }

// Version returns the current (possibly unpersisted) version counter.
func (t *Ticket) Version() int { return t.version }

// PersistedVersion returns the version the aggregate was loaded with.
func (t *Ticket) PersistedVersion() int { return t.persistedVersion }

// IsEqual compares two tickets by the order they track.
func (t *Ticket) IsEqual(other *Ticket) bool {
	return other != nil && t.orderID.IsEqual(other.orderID)
}

// AggregateStatus derives the ticket's rolled-up status from its items. It is
// pure: calling it never changes the ticket.
func (t *Ticket) AggregateStatus() AggregateStatus {
	if t.completedAt != nil {
		return AggregateCompleted
	}

	allPending, allReady := true, true
	for _, item := range t.items {
		if item.status != ItemPending {
			allPending = false
		}
		if item.status != ItemReady {
			allReady = false
		}
	}

	switch {
	case allPending:
		return AggregateNew
	case allReady:
		return AggregateReady
	default:
		return AggregatePreparing
	}
}

// StartItem moves one prep line from pending to preparing. Starting a line
// that is already past pending is a duplicate, not an illegal transition, so
// UI retries stay distinguishable from wrong-state requests.
func (t *Ticket) StartItem(menuItemID kernel.UUID) error {
	idx, err := t.findItem(menuItemID)
	if err != nil {
		return err
	}
	if err := t.checkOpen(); err != nil {
		return err
	}

	switch t.items[idx].status {
	case ItemPending:
		t.items[idx].status = ItemPreparing
		t.version++
		return nil
	case ItemPreparing, ItemReady:
		return errs.NewDuplicateActionError("start item", "ticket item", menuItemID)
	default:
		return errs.NewValueIsInvalidError("item status")
	}
}

// ReadyItem moves one prep line from preparing to ready. A pending line
// cannot skip straight to ready; an already ready line is a duplicate.
func (t *Ticket) ReadyItem(menuItemID kernel.UUID) error {
	idx, err := t.findItem(menuItemID)
	if err != nil {
		return err
	}
	if err := t.checkOpen(); err != nil {
		return err
	}

	switch t.items[idx].status {
	case ItemPreparing:
		t.items[idx].status = ItemReady
		t.version++
		return nil
	case ItemReady:
		return errs.NewDuplicateActionError("ready item", "ticket item", menuItemID)
	case ItemPending:
		return errs.NewIllegalTransitionError("ticket item",
			ItemPending.String(), ItemReady.String())
	default:
		return errs.NewValueIsInvalidError("item status")
	}
}

// Complete confirms the hand-off. It is accepted only while every item is
// ready and only once; a second call is a duplicate.
func (t *Ticket) Complete(now time.Time) error {
	if t.retired {
		return errs.NewTerminalStateError("ticket", "retired")
	}
	if t.completedAt != nil {
		return errs.NewDuplicateActionError("complete", "ticket", t.orderID)
	}
	if status := t.AggregateStatus(); status != AggregateReady {
		return errs.NewIllegalTransitionError("ticket",
			status.String(), AggregateCompleted.String())
	}

	t.completedAt = &now
	t.version++
	return nil
}

// Retire removes the ticket from the active kitchen view when its order
// leaves the kitchen-active states. Retiring twice is a no-op.
func (t *Ticket) Retire() {
	if t.retired {
		return
	}
	t.retired = true
	t.version++
}

// checkOpen rejects item mutations once the ticket is handed off or retired.
func (t *Ticket) checkOpen() error {
	if t.retired {
		return errs.NewTerminalStateError("ticket", "retired")
	}
	if t.completedAt != nil {
		return errs.NewTerminalStateError("ticket", AggregateCompleted.String())
	}
	return nil
}

func (t *Ticket) findItem(menuItemID kernel.UUID) (int, error) {
	if err := menuItemID.Validate(); err != nil {
		return 0, err
	}
	for idx, item := range t.items {
		if item.menuItemID.IsEqual(menuItemID) {
			return idx, nil
		}
	}
	return 0, errs.NewObjectNotFoundError("ticket item", menuItemID)
}

func (t *Ticket) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	t.orderID = orderID
	return nil
}

func (t *Ticket) setItems(items []TicketItem) error {
	if len(items) == 0 {
		return ErrTicketItemsAreRequired
	}
	for idx := range items {
		if err := items[idx].Validate(); err != nil {
			return err
		}
	}
	t.items = append([]TicketItem(nil), items...)
	return nil
}
