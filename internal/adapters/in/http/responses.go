package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
)

// OrderDetailItem is one line item of the order detail response.
type OrderDetailItem struct {
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name"`
	UnitPrice  int64    `json:"unit_price"`
	Quantity   int      `json:"quantity"`
	Options    []string `json:"options,omitempty"`
}

// OrderDetail is the full order read model response.
type OrderDetail struct {
	ID           string `json:"id"`
	ShortCode    string `json:"short_code"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Instructions string `json:"instructions,omitempty"`

	Items []OrderDetailItem `json:"items"`

	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Discount    int64 `json:"discount"`
	WalletUsed  int64 `json:"wallet_used"`
	FinalAmount int64 `json:"final_amount"`

	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	RejectReason  string `json:"reject_reason,omitempty"`
	RiderID       string `json:"rider_id,omitempty"`

	PlacedAt    time.Time            `json:"placed_at"`
	StatusTimes map[string]time.Time `json:"status_times"`
	Version     int                  `json:"version"`
}

// OrderSummary is one row of the customer tracking response.
type OrderSummary struct {
	ID          string    `json:"id"`
	ShortCode   string    `json:"short_code"`
	Status      string    `json:"status"`
	FinalAmount int64     `json:"final_amount"`
	PlacedAt    time.Time `json:"placed_at"`
}

// AdminOrderRow is one row of the admin dashboard response.
type AdminOrderRow struct {
	ID           string    `json:"id"`
	ShortCode    string    `json:"short_code"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Status       string    `json:"status"`
	FinalAmount  int64     `json:"final_amount"`
	PlacedAt     time.Time `json:"placed_at"`
	Version      int       `json:"version"`
}

// KitchenTicketItem is one prep line of a kitchen board response row.
type KitchenTicketItem struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Status     string `json:"status"`
}

// KitchenTicketRow is one row of the kitchen board response.
type KitchenTicketRow struct {
	OrderID      string              `json:"order_id"`
	ShortCode    string              `json:"short_code"`
	CustomerName string              `json:"customer_name"`
	Instructions string              `json:"instructions,omitempty"`
	Status       string              `json:"status"`
	Items        []KitchenTicketItem `json:"items"`
	PlacedAt     time.Time           `json:"placed_at"`
}

func toOrderDetail(result queries.GetOrderQueryResponse) OrderDetail {
	items := make([]OrderDetailItem, len(result.Items))
	for i, item := range result.Items {
		items[i] = OrderDetailItem{
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice.Amount(),
			Quantity:   item.Quantity,
			Options:    item.Options,
		}
	}

	detail := OrderDetail{
		ID:            result.ID.String(),
		ShortCode:     result.ShortCode,
		CustomerName:  result.CustomerName,
		Phone:         result.Phone,
		Address:       result.Address,
		Instructions:  result.Instructions,
		Items:         items,
		Subtotal:      result.Subtotal.Amount(),
		DeliveryFee:   result.DeliveryFee.Amount(),
		Discount:      result.Discount.Amount(),
		WalletUsed:    result.WalletUsed.Amount(),
		FinalAmount:   result.FinalAmount.Amount(),
		PaymentMethod: result.PaymentMethod,
		Status:        result.Status,
		RejectReason:  result.RejectReason,
		PlacedAt:      result.PlacedAt,
		StatusTimes:   result.StatusTimes,
		Version:       result.Version,
	}
	if result.RiderID != nil {
		detail.RiderID = result.RiderID.String()
	}
	return detail
}
