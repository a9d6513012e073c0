package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Domain errors for order line items.
var (
	// ErrItemNameIsRequired is returned when creating an item without a name.
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("item name")
	// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is an ordered line item: a menu item reference with the quantity,
// the unit price frozen at purchase time, and the customer's chosen options.
// Items are immutable after construction; price changes on the menu never
// affect an already placed order.
type Item struct {
	menuItemID kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int
	options    []string
}

// NewItem creates a validated line item. The unit price is the price at
// order time and is never recomputed.
func NewItem(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int, options []string) (Item, error) {
	if err := menuItemID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, ErrItemNameIsRequired
	}
	if quantity < 1 || quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxItemQuantity)
	}

	return Item{
		menuItemID: menuItemID,
		name:       name,
		unitPrice:  unitPrice,
		quantity:   quantity,
		options:    append([]string(nil), options...),
	}, nil
}

// maxItemQuantity bounds a single line item.
const maxItemQuantity = 99

// MenuItemID returns the referenced menu item's identifier.
func (i Item) MenuItemID() kernel.UUID {
	return i.menuItemID
}

// Name returns the menu item name captured at order time.
func (i Item) Name() string {
	return i.name
}

// UnitPrice returns the price per unit frozen at order time.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// Options returns a copy of the chosen options.
func (i Item) Options() []string {
	return append([]string(nil), i.options...)
}

// LineTotal returns unit price times quantity.
func (i Item) LineTotal() kernel.Money {
	return i.unitPrice.Mul(i.quantity)
}

// Validate ensures the item was created through NewItem.
func (i Item) Validate() error {
	if i.name == "" {
		return ErrItemIsNotConstructed
	}
	return nil
}
