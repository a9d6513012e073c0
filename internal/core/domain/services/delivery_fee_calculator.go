package services

import (
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/pkg/errs"
)

// FeeQuote is the outcome of a delivery fee evaluation at checkout time.
//
// OriginalFee always carries the fee the zone would normally charge; when the
// free-delivery threshold applies, Fee drops to zero while OriginalFee keeps
// the waived amount so the storefront can show what the customer saved.
type FeeQuote struct {
	Fee           kernel.Money
	OriginalFee   kernel.Money
	EstimatedTime string
	IsFreeApplied bool
}

// DeliveryFeeCalculator evaluates a zone's fee configuration against a cart.
// It is a pure domain service: no state, no side effects, evaluated before
// order creation is permitted.
//
// Outcomes are kept deliberately distinct so operators can tell them apart:
// an inactive zone is "delivery paused", a zone without a usable fee
// definition is "misconfigured", and a cart under the zone minimum is
// "below minimum order". Only a successful quote allows checkout to proceed.
type DeliveryFeeCalculator struct{}

// NewDeliveryFeeCalculator creates a new DeliveryFeeCalculator instance.
func NewDeliveryFeeCalculator() DeliveryFeeCalculator {
	return DeliveryFeeCalculator{}
}

// Quote computes the delivery fee for the given zone, cart subtotal and
// delivery distance. The distance is only consulted for distance-priced
// zones; flat zones ignore it.
func (c DeliveryFeeCalculator) Quote(
	z zone.DeliveryZone,
	subtotal kernel.Money,
	distanceKm float64,
) (FeeQuote, error) {
	if err := z.Validate(); err != nil {
		return FeeQuote{}, err
	}

	if !z.IsActive() {
		return FeeQuote{}, fmt.Errorf("%w: zone %s is paused", errs.ErrDeliveryUnavailable, z.Name())
	}

	if !subtotal.IsGreaterOrEqual(z.MinOrder()) {
		return FeeQuote{}, fmt.Errorf("%w: zone %s requires at least %s, cart subtotal is %s",
			errs.ErrBelowMinimumOrder, z.Name(), z.MinOrder(), subtotal)
	}

	fee, err := c.baseQuote(z, distanceKm)
	if err != nil {
		return FeeQuote{}, err
	}

	quote := FeeQuote{
		Fee:           fee,
		OriginalFee:   fee,
		EstimatedTime: z.EstimatedTime(),
	}

	if threshold := z.FreeThreshold(); threshold != nil && subtotal.IsGreaterOrEqual(*threshold) {
		quote.Fee = kernel.Money{}
		quote.IsFreeApplied = true
	}

	return quote, nil
}

// baseQuote resolves the fee the zone would charge before any free-delivery
// waiver.
func (c DeliveryFeeCalculator) baseQuote(z zone.DeliveryZone, distanceKm float64) (kernel.Money, error) {
	switch z.FeeMode() {
	case zone.FeeModeFlat:
		return z.FlatFee(), nil

	case zone.FeeModeDistance:
		if z.BaseDistanceKm() < 0 {
			return kernel.Money{}, fmt.Errorf("%w: zone %s has a negative base distance",
				errs.ErrFeeMisconfigured, z.Name())
		}
		if distanceKm < 0 {
			return kernel.Money{}, errs.NewValueIsOutOfRangeError("distanceKm", distanceKm, 0, nil)
		}
		extraKm := int(math.Ceil(distanceKm - z.BaseDistanceKm()))
		if extraKm < 0 {
			extraKm = 0
		}
		return z.BaseFee().Add(z.PerKmRate().Mul(extraKm)), nil

	default:
		return kernel.Money{}, fmt.Errorf("%w: zone %s has no usable fee definition",
			errs.ErrFeeMisconfigured, z.Name())
	}
}
