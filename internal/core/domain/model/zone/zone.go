package zone

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrZoneIsNotConstructed is returned when a DeliveryZone instance was not
// created through one of the factories.
var ErrZoneIsNotConstructed = errors.New(
	"DeliveryZone must be created via NewFlatFeeZone, NewDistanceFeeZone or RestoreZone")

// FeeMode selects how a zone prices delivery.
type FeeMode int

const (
	// FeeModeUnknown marks a zone without a usable fee definition.
	FeeModeUnknown FeeMode = iota

	// FeeModeFlat charges one flat fee for the whole zone.
	FeeModeFlat

	// FeeModeDistance charges a base fee up to a base distance plus a
	// per-kilometre rate beyond it.
	FeeModeDistance
)

// String returns the wire name of the fee mode.
func (m FeeMode) String() string {
	switch m {
	case FeeModeFlat:
		return "flat"
	case FeeModeDistance:
		return "distance"
	default:
		return "unknown"
	}
}

// DeliveryZone is a read-only snapshot of an operator-managed zone
// configuration. The zone catalogue is owned elsewhere; this value object only
// carries what the fee calculator needs, and deliberately tolerates
// misconfigured input so the calculator can report it as a distinct error
// instead of the snapshot failing to load.
type DeliveryZone struct {
	name   string
	active bool

	feeMode        FeeMode
	flatFee        kernel.Money
	baseDistanceKm float64
	baseFee        kernel.Money
	perKmRate      kernel.Money

	minOrder      kernel.Money
	freeThreshold *kernel.Money
	estimatedTime string

	constructed bool
}

// NewFlatFeeZone creates an active zone charging a single flat fee.
func NewFlatFeeZone(
	name string,
	flatFee, minOrder kernel.Money,
	freeThreshold *kernel.Money,
	estimatedTime string,
) (DeliveryZone, error) {
	if name == "" {
		return DeliveryZone{}, errs.NewValueIsRequiredError("zone name")
	}
	return DeliveryZone{
		name:          name,
		active:        true,
		feeMode:       FeeModeFlat,
		flatFee:       flatFee,
		minOrder:      minOrder,
		freeThreshold: copyThreshold(freeThreshold),
		estimatedTime: estimatedTime,
		constructed:   true,
	}, nil
}

// NewDistanceFeeZone creates an active zone charging baseFee up to
// baseDistanceKm and perKmRate for every started kilometre beyond it.
func NewDistanceFeeZone(
	name string,
	baseDistanceKm float64,
	baseFee, perKmRate, minOrder kernel.Money,
	freeThreshold *kernel.Money,
	estimatedTime string,
) (DeliveryZone, error) {
	if name == "" {
		return DeliveryZone{}, errs.NewValueIsRequiredError("zone name")
	}
	return DeliveryZone{
		name:           name,
		active:         true,
		feeMode:        FeeModeDistance,
		baseDistanceKm: baseDistanceKm,
		baseFee:        baseFee,
		perKmRate:      perKmRate,
		minOrder:       minOrder,
		freeThreshold:  copyThreshold(freeThreshold),
		estimatedTime:  estimatedTime,
		constructed:    true,
	}, nil
}

// RestoreZone reconstructs a zone snapshot exactly as configured upstream,
// including inactive or misconfigured states.
func RestoreZone(
	name string,
	active bool,
	feeMode FeeMode,
	flatFee kernel.Money,
	baseDistanceKm float64,
	baseFee, perKmRate, minOrder kernel.Money,
	freeThreshold *kernel.Money,
	estimatedTime string,
) (DeliveryZone, error) {
	if name == "" {
		return DeliveryZone{}, errs.NewValueIsRequiredError("zone name")
	}
	return DeliveryZone{
		name:           name,
		active:         active,
		feeMode:        feeMode,
		flatFee:        flatFee,
		baseDistanceKm: baseDistanceKm,
		baseFee:        baseFee,
		perKmRate:      perKmRate,
		minOrder:       minOrder,
		freeThreshold:  copyThreshold(freeThreshold),
		estimatedTime:  estimatedTime,
		constructed:    true,
	}, nil
}

// Validate ensures the zone was created through a factory.
func (z DeliveryZone) Validate() error {
	if !z.constructed {
		return ErrZoneIsNotConstructed
	}
	return nil
}

// Name returns the operator-facing zone name.
func (z DeliveryZone) Name() string { return z.name }

// IsActive reports whether delivery is currently enabled for the zone.
func (z DeliveryZone) IsActive() bool { return z.active }

// FeeMode returns how the zone prices delivery.
func (z DeliveryZone) FeeMode() FeeMode { return z.feeMode }

// FlatFee returns the flat fee for FeeModeFlat zones.
func (z DeliveryZone) FlatFee() kernel.Money { return z.flatFee }

// BaseDistanceKm returns the distance covered by the base fee.
func (z DeliveryZone) BaseDistanceKm() float64 { return z.baseDistanceKm }

// BaseFee returns the fee charged up to the base distance.
func (z DeliveryZone) BaseFee() kernel.Money { return z.baseFee }

// PerKmRate returns the rate per started kilometre beyond the base distance.
func (z DeliveryZone) PerKmRate() kernel.Money { return z.perKmRate }

// MinOrder returns the minimum subtotal required to order from the zone.
func (z DeliveryZone) MinOrder() kernel.Money { return z.minOrder }

// FreeThreshold returns the free-delivery subtotal threshold, or nil when the
// zone never waives the fee.
func (z DeliveryZone) FreeThreshold() *kernel.Money { return copyThreshold(z.freeThreshold) }

// EstimatedTime returns the operator-entered delivery time label.
func (z DeliveryZone) EstimatedTime() string { return z.estimatedTime }

// Deactivated returns a copy of the zone with delivery paused.
func (z DeliveryZone) Deactivated() DeliveryZone {
	z.active = false
	return z
}

func copyThreshold(threshold *kernel.Money) *kernel.Money {
	if threshold == nil {
		return nil
	}
	v := *threshold
	return &v
}
