package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrTrackOrdersQueryIsNotConstructed = errors.New(
	"TrackOrdersQuery must be created via a NewTrackOrdersQueryBy* constructor",
)

// TrackOrdersQuery retrieves the compact tracking rows for a customer's
// orders. Registered customers are looked up by their identifier; guests
// track by the phone number given at checkout.
type TrackOrdersQuery struct {
	phone      string
	customerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewTrackOrdersQueryByPhone creates a tracking query keyed by phone number.
func NewTrackOrdersQueryByPhone(phone string) (TrackOrdersQuery, error) {
	if phone == "" {
		return TrackOrdersQuery{}, errs.NewValueIsRequiredError("phone")
	}
	return TrackOrdersQuery{phone: phone, guard: guard.NewConstructorGuard()}, nil
}

// NewTrackOrdersQueryByCustomer creates a tracking query keyed by customer ID.
func NewTrackOrdersQueryByCustomer(customerID kernel.UUID) (TrackOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return TrackOrdersQuery{}, err
	}
	return TrackOrdersQuery{customerID: &customerID, guard: guard.NewConstructorGuard()}, nil
}

// Phone returns the phone number key, empty when tracking by customer.
func (q TrackOrdersQuery) Phone() string { return q.phone }

// CustomerID returns the customer key, nil when tracking by phone.
func (q TrackOrdersQuery) CustomerID() *kernel.UUID { return q.customerID }

// Validate ensures the query was created through a constructor.
func (q TrackOrdersQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrdersQueryIsNotConstructed)
}

// TrackOrdersQueryResponse is one row of the customer tracking view.
type TrackOrdersQueryResponse struct {
	ID          kernel.UUID
	ShortCode   string
	Status      string
	FinalAmount kernel.Money
	PlacedAt    time.Time
}
