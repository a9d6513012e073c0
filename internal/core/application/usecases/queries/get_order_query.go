// Package queries contains the read side of the application layer. Query
// handlers bypass the domain aggregates and read projection rows straight
// from the database, returning lightweight response models for the HTTP
// adapter to serialize.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full read model of a single order, including
// its line items and the timestamps of every status it has passed through.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderItemResponse is one line item of an order read model.
type OrderItemResponse struct {
	MenuItemID kernel.UUID
	Name       string
	UnitPrice  kernel.Money
	Quantity   int
	Options    []string
}

// GetOrderQueryResponse is the full order read model.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	ShortCode    string
	CustomerName string
	Phone        string
	Address      string
	Instructions string

	Items []OrderItemResponse

	Subtotal    kernel.Money
	DeliveryFee kernel.Money
	Discount    kernel.Money
	WalletUsed  kernel.Money
	FinalAmount kernel.Money

	PaymentMethod string
	Status        string
	RejectReason  string
	RiderID       *kernel.UUID

	PlacedAt    time.Time
	StatusTimes map[string]time.Time

	// Version is the optimistic concurrency counter of the row. Clients
	// reconciling pushed state changes compare it against event versions.
	Version int
}
