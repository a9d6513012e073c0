package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrListOrdersByStatusQueryIsNotConstructed = errors.New(
	"ListOrdersByStatusQuery must be created via NewListOrdersByStatusQuery constructor",
)

// ListOrdersByStatusQuery retrieves the admin dashboard rows for every order
// currently in the given status.
type ListOrdersByStatusQuery struct {
	status order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersByStatusQuery creates a query for orders in one status.
func NewListOrdersByStatusQuery(status order.Status) (ListOrdersByStatusQuery, error) {
	if err := status.Validate(); err != nil {
		return ListOrdersByStatusQuery{}, err
	}
	return ListOrdersByStatusQuery{status: status, guard: guard.NewConstructorGuard()}, nil
}

// Status returns the status filter.
func (q ListOrdersByStatusQuery) Status() order.Status { return q.status }

// Validate ensures the query was created through the constructor.
func (q ListOrdersByStatusQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersByStatusQueryIsNotConstructed)
}

// ListOrdersByStatusQueryResponse is one row of the admin dashboard view.
type ListOrdersByStatusQueryResponse struct {
	ID           kernel.UUID
	ShortCode    string
	CustomerName string
	Phone        string
	Status       string
	FinalAmount  kernel.Money
	PlacedAt     time.Time
	Version      int
}
