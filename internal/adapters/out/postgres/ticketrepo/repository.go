package ticketrepo

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormKitchenTicketRepository implements KitchenTicketRepository using GORM.
type GormKitchenTicketRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormKitchenTicketRepository creates a new GORM kitchen ticket repository.
func NewGormKitchenTicketRepository(db *gorm.DB, tracker aggregateTracker) *GormKitchenTicketRepository {
	return &GormKitchenTicketRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new kitchen ticket to the database.
func (r *GormKitchenTicketRepository) Add(ctx context.Context, aggregate *kitchen.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Update writes a ticket back using a compare-and-set on the version column,
// mirroring the order repository. This whole-ticket path covers the hand-off
// and retire transitions; per-item prep progress goes through
// UpdateItemStatus so cooks on different items do not contend.
func (r *GormKitchenTicketRepository) Update(ctx context.Context, aggregate *kitchen.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&TicketDTO{}).
		Where("order_id = ? AND version = ?", dto.OrderID, aggregate.PersistedVersion()).
		Select("*").Omit("order_id").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStaleStateError("kitchen ticket", aggregate.OrderID().String(), aggregate.Version())
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// UpdateItemStatus rewrites a single line item's status inside the JSONB
// document, conditioned on that item's current status instead of the ticket
// version. The guard clauses keep the write from landing on a closed ticket
// or over a concurrent writer of the same item; either case reports stale so
// the caller refetches. The ticket version still advances so readers and
// event consumers observe the change.
func (r *GormKitchenTicketRepository) UpdateItemStatus(
	ctx context.Context, orderID, menuItemID kernel.UUID,
	from, to kitchen.ItemStatus,
) (int, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}
	if err := menuItemID.Validate(); err != nil {
		return 0, err
	}

	row := r.db.WithContext(ctx).Raw(`
		UPDATE kitchen_tickets SET
			items = (
				SELECT jsonb_agg(
					CASE WHEN item->>'menu_item_id' = @menu_item_id
						THEN jsonb_set(item, '{status}', to_jsonb(@to::int))
						ELSE item
					END)
				FROM jsonb_array_elements(kitchen_tickets.items) AS item
			),
			version = version + 1
		WHERE order_id = @order_id
			AND retired = false
			AND completed_at IS NULL
			AND EXISTS (
				SELECT 1 FROM jsonb_array_elements(kitchen_tickets.items) AS item
				WHERE item->>'menu_item_id' = @menu_item_id
					AND (item->>'status')::int = @from
			)
		RETURNING version`,
		sql.Named("order_id", orderID.Bytes()),
		sql.Named("menu_item_id", menuItemID.String()),
		sql.Named("from", int(from)),
		sql.Named("to", int(to)),
	).Row()

	var version int
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.NewStaleStateError("kitchen ticket item", menuItemID.String(), int(from))
		}
		return 0, err
	}
	return version, nil
}

// GetByOrderID retrieves the ticket tracking the given order.
func (r *GormKitchenTicketRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*kitchen.Ticket, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("kitchen ticket", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
