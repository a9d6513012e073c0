package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
	ErrOrderItemsAreRequired = errors.New("at least one item is required")
)

// PlaceOrderCommand represents a checkout request. It carries the cart
// contents, the customer snapshot, the chosen payment method, and the
// delivery zone configuration the fee calculator will evaluate before the
// order may be created.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerID   *kernel.UUID
	customerName string
	phone        string
	address      string
	instructions string

	items      []order.Item
	discount   kernel.Money
	walletUsed kernel.Money
	payment    order.PaymentMethod

	deliveryZone zone.DeliveryZone
	distanceKm   float64

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a checkout command. Validates identities, the
// customer snapshot, the items and the payment method; amount arithmetic and
// fee gating are left to the order aggregate and the fee calculator.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerID *kernel.UUID,
	customerName, phone, address, instructions string,
	items []order.Item,
	discount, walletUsed kernel.Money,
	payment order.PaymentMethod,
	deliveryZone zone.DeliveryZone,
	distanceKm float64,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customerID, customerName, phone, address),
		cmd.setItems(items),
		payment.Validate(),
		deliveryZone.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.instructions = instructions
	cmd.discount = discount
	cmd.walletUsed = walletUsed
	cmd.payment = payment
	cmd.deliveryZone = deliveryZone
	cmd.distanceKm = distanceKm

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created with.
func (c PlaceOrderCommand) OrderID() kernel.UUID { return c.orderID }

// CustomerID returns the account customer's id, or nil for guest checkout.
func (c PlaceOrderCommand) CustomerID() *kernel.UUID { return c.customerID }

// CustomerName returns the name captured at checkout.
func (c PlaceOrderCommand) CustomerName() string { return c.customerName }

// Phone returns the contact phone captured at checkout.
func (c PlaceOrderCommand) Phone() string { return c.phone }

// Address returns the delivery address.
func (c PlaceOrderCommand) Address() string { return c.address }

// Instructions returns the customer's free-text instructions.
func (c PlaceOrderCommand) Instructions() string { return c.instructions }

// Items returns a copy of the cart items.
func (c PlaceOrderCommand) Items() []order.Item { return append([]order.Item(nil), c.items...) }

// Discount returns the discount applied at checkout.
func (c PlaceOrderCommand) Discount() kernel.Money { return c.discount }

// WalletUsed returns the wallet amount applied at checkout.
func (c PlaceOrderCommand) WalletUsed() kernel.Money { return c.walletUsed }

// PaymentMethod returns the chosen payment method.
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod { return c.payment }

// DeliveryZone returns the zone configuration snapshot for fee evaluation.
func (c PlaceOrderCommand) DeliveryZone() zone.DeliveryZone { return c.deliveryZone }

// DistanceKm returns the delivery distance for distance-priced zones.
func (c PlaceOrderCommand) DistanceKm() float64 { return c.distanceKm }

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomer(customerID *kernel.UUID, name, phone, address string) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}
	if name == "" {
		return order.ErrCustomerNameIsRequired
	}
	if phone == "" {
		return order.ErrPhoneIsRequired
	}
	if address == "" {
		return order.ErrAddressIsRequired
	}

	c.customerID = customerID
	c.customerName = name
	c.phone = phone
	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrOrderItemsAreRequired
	}
	for idx := range items {
		if err := items[idx].Validate(); err != nil {
			return err
		}
	}

	c.items = append([]order.Item(nil), items...)
	return nil
}
