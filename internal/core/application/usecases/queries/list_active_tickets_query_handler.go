package queries

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListActiveTicketsQueryHandler serves the kitchen board. The board status of
// each ticket is derived from its item statuses on read, the same way the
// aggregate derives it, so the board can never disagree with the domain.
type ListActiveTicketsQueryHandler struct {
	db *gorm.DB
}

// NewListActiveTicketsQueryHandler creates a handler for kitchen board queries.
func NewListActiveTicketsQueryHandler(db *gorm.DB) ListActiveTicketsQueryHandler {
	return ListActiveTicketsQueryHandler{db: db}
}

// Handle executes the query for all non-retired tickets.
func (h ListActiveTicketsQueryHandler) Handle(
	ctx context.Context,
	query ListActiveTicketsQuery,
) ([]ListActiveTicketsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			short_code,
			customer_name,
			instructions,
			items,
			completed_at,
			placed_at
		FROM kitchen_tickets
		WHERE retired = false
		ORDER BY placed_at
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]ListActiveTicketsQueryResponse, 0)
	for rows.Next() {
		var (
			resp        ListActiveTicketsQueryResponse
			orderID     uuid.UUID
			itemsJSON   []byte
			completedAt *time.Time
		)

		err = rows.Scan(
			&orderID,
			&resp.ShortCode,
			&resp.CustomerName,
			&resp.Instructions,
			&itemsJSON,
			&completedAt,
			&resp.PlacedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}

		var statuses []kitchen.ItemStatus
		resp.Items, statuses, err = unmarshalTicketItems(itemsJSON)
		if err != nil {
			return nil, err
		}
		resp.Status = deriveBoardStatus(statuses, completedAt)

		tickets = append(tickets, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

// ticketItemRow is the JSON shape of one prep line in the items document.
type ticketItemRow struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Status     int    `json:"status"`
}

func unmarshalTicketItems(raw []byte) ([]TicketItemResponse, []kitchen.ItemStatus, error) {
	var rows []ticketItemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, nil, err
	}

	items := make([]TicketItemResponse, 0, len(rows))
	statuses := make([]kitchen.ItemStatus, 0, len(rows))
	for _, row := range rows {
		menuItemID, err := kernel.UUIDFromString(row.MenuItemID)
		if err != nil {
			return nil, nil, err
		}
		status := kitchen.ItemStatus(row.Status)
		items = append(items, TicketItemResponse{
			MenuItemID: menuItemID,
			Name:       row.Name,
			Quantity:   row.Quantity,
			Status:     status.String(),
		})
		statuses = append(statuses, status)
	}
	return items, statuses, nil
}

// deriveBoardStatus mirrors the aggregate status derivation of the kitchen
// ticket: new until any item starts, ready once all are, preparing between.
func deriveBoardStatus(statuses []kitchen.ItemStatus, completedAt *time.Time) string {
	if completedAt != nil {
		return kitchen.AggregateCompleted.String()
	}

	allPending := true
	allReady := true
	for _, status := range statuses {
		if status != kitchen.ItemPending {
			allPending = false
		}
		if status != kitchen.ItemReady {
			allReady = false
		}
	}

	switch {
	case allPending:
		return kitchen.AggregateNew.String()
	case allReady:
		return kitchen.AggregateReady.String()
	default:
		return kitchen.AggregatePreparing.String()
	}
}
