package queries

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler serves the order detail read model. It reads the
// projection row directly rather than going through the aggregate, since no
// business rules apply on the read path.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle fetches the order row and expands its JSONB documents.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			short_code,
			customer_name,
			phone,
			address,
			instructions,
			items,
			subtotal,
			delivery_fee,
			discount,
			wallet_used,
			final_amount,
			payment_method,
			status,
			reject_reason,
			rider_id,
			placed_at,
			status_times,
			version
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var (
		resp          GetOrderQueryResponse
		id            uuid.UUID
		riderID       uuid.NullUUID
		itemsJSON     []byte
		timesJSON     []byte
		subtotal      int64
		deliveryFee   int64
		discount      int64
		walletUsed    int64
		finalAmount   int64
		paymentMethod int
		status        int
	)

	err = rows.Scan(
		&id,
		&resp.ShortCode,
		&resp.CustomerName,
		&resp.Phone,
		&resp.Address,
		&resp.Instructions,
		&itemsJSON,
		&subtotal,
		&deliveryFee,
		&discount,
		&walletUsed,
		&finalAmount,
		&paymentMethod,
		&status,
		&resp.RejectReason,
		&riderID,
		&resp.PlacedAt,
		&timesJSON,
		&resp.Version,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	if riderID.Valid {
		rID, rErr := kernel.UUIDFromBytes(riderID.UUID[:])
		if rErr != nil {
			return GetOrderQueryResponse{}, rErr
		}
		resp.RiderID = &rID
	}

	resp.Items, err = unmarshalItems(itemsJSON)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	var statusTimes map[string]time.Time
	if err = json.Unmarshal(timesJSON, &statusTimes); err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.StatusTimes = statusTimes

	resp.Subtotal = kernel.MustMoney(subtotal)
	resp.DeliveryFee = kernel.MustMoney(deliveryFee)
	resp.Discount = kernel.MustMoney(discount)
	resp.WalletUsed = kernel.MustMoney(walletUsed)
	resp.FinalAmount = kernel.MustMoney(finalAmount)
	resp.PaymentMethod = order.PaymentMethod(paymentMethod).String()
	resp.Status = order.Status(status).String()

	return resp, nil
}

// orderItemRow is the JSON shape of one line item in the items document.
type orderItemRow struct {
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name"`
	UnitPrice  int64    `json:"unit_price"`
	Quantity   int      `json:"quantity"`
	Options    []string `json:"options"`
}

func unmarshalItems(raw []byte) ([]OrderItemResponse, error) {
	var rows []orderItemRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	items := make([]OrderItemResponse, 0, len(rows))
	for _, row := range rows {
		menuItemID, err := kernel.UUIDFromString(row.MenuItemID)
		if err != nil {
			return nil, err
		}
		items = append(items, OrderItemResponse{
			MenuItemID: menuItemID,
			Name:       row.Name,
			UnitPrice:  kernel.MustMoney(row.UnitPrice),
			Quantity:   row.Quantity,
			Options:    row.Options,
		})
	}
	return items, nil
}
