package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackOrdersQueryHandler serves the customer tracking view: newest orders
// first, one compact row per order.
type TrackOrdersQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrdersQueryHandler creates a handler for tracking queries.
func NewTrackOrdersQueryHandler(db *gorm.DB) TrackOrdersQueryHandler {
	return TrackOrdersQueryHandler{db: db}
}

// Handle executes the tracking query by whichever key the query carries.
func (h TrackOrdersQueryHandler) Handle(
	ctx context.Context,
	query TrackOrdersQuery,
) ([]TrackOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	const baseSelect = `
		SELECT
			id,
			short_code,
			status,
			final_amount,
			placed_at
		FROM orders
	`

	var tx *gorm.DB
	if customerID := query.CustomerID(); customerID != nil {
		tx = h.db.WithContext(ctx).Raw(
			baseSelect+`WHERE customer_id = ? ORDER BY placed_at DESC`,
			customerID.Bytes(),
		)
	} else {
		tx = h.db.WithContext(ctx).Raw(
			baseSelect+`WHERE phone = ? ORDER BY placed_at DESC`,
			query.Phone(),
		)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]TrackOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp        TrackOrdersQueryResponse
			id          uuid.UUID
			status      int
			finalAmount int64
		)

		err = rows.Scan(&id, &resp.ShortCode, &status, &finalAmount, &resp.PlacedAt)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.Status = order.Status(status).String()
		resp.FinalAmount = kernel.MustMoney(finalAmount)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
