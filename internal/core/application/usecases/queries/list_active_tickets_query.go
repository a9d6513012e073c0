package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListActiveTicketsQueryIsNotConstructed = errors.New(
	"ListActiveTicketsQuery must be created via NewListActiveTicketsQuery constructor",
)

// ListActiveTicketsQuery retrieves the kitchen board: every ticket that has
// not been retired, oldest first.
type ListActiveTicketsQuery struct {
	guard guard.ConstructorGuard
}

// NewListActiveTicketsQuery creates a query for the kitchen board.
func NewListActiveTicketsQuery() ListActiveTicketsQuery {
	return ListActiveTicketsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListActiveTicketsQuery) Validate() error {
	return q.guard.Validate(ErrListActiveTicketsQueryIsNotConstructed)
}

// TicketItemResponse is one prep line on a kitchen board row.
type TicketItemResponse struct {
	MenuItemID kernel.UUID
	Name       string
	Quantity   int
	Status     string
}

// ListActiveTicketsQueryResponse is one row of the kitchen board.
type ListActiveTicketsQueryResponse struct {
	OrderID      kernel.UUID
	ShortCode    string
	CustomerName string
	Instructions string
	Status       string
	Items        []TicketItemResponse
	PlacedAt     time.Time
}
