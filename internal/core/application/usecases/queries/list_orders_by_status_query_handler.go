package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListOrdersByStatusQueryHandler serves the admin dashboard listing. Oldest
// orders come first so the longest-waiting work surfaces at the top.
type ListOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersByStatusQueryHandler creates a handler for dashboard queries.
func NewListOrdersByStatusQueryHandler(db *gorm.DB) ListOrdersByStatusQueryHandler {
	return ListOrdersByStatusQueryHandler{db: db}
}

// Handle executes the query for all orders in the requested status.
func (h ListOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query ListOrdersByStatusQuery,
) ([]ListOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			short_code,
			customer_name,
			phone,
			status,
			final_amount,
			placed_at,
			version
		FROM orders
		WHERE status = ?
		ORDER BY placed_at
	`, query.Status()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]ListOrdersByStatusQueryResponse, 0)
	for rows.Next() {
		var (
			resp        ListOrdersByStatusQueryResponse
			id          uuid.UUID
			status      int
			finalAmount int64
		)

		err = rows.Scan(
			&id,
			&resp.ShortCode,
			&resp.CustomerName,
			&resp.Phone,
			&status,
			&finalAmount,
			&resp.PlacedAt,
			&resp.Version,
		)
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
