// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between domain entities and database
// representations including the optimistic version counter backing
// compare-and-set writes.
package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items and per-status timestamps are stored as JSONB documents: they are
// only ever read and written whole, together with the rest of the row.
type OrderDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShortCode string    `gorm:"type:varchar(6);index"`

	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName string
	Phone        string `gorm:"index"`
	Address      string
	Instructions string

	Items []byte `gorm:"type:jsonb"`

	Subtotal    int64
	DeliveryFee int64
	Discount    int64
	WalletUsed  int64
	FinalAmount int64

	PaymentMethod int
	Status        int `gorm:"index"`
	RejectReason  string
	RejectNote    string
	RiderID       *uuid.UUID `gorm:"type:uuid;index"`

	PlacedAt    time.Time `gorm:"index"`
	StatusTimes []byte    `gorm:"type:jsonb"`

	Version int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// itemDTO is the JSON shape of one line item inside the items document.
type itemDTO struct {
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name"`
	UnitPrice  int64    `json:"unit_price"`
	Quantity   int      `json:"quantity"`
	Options    []string `json:"options,omitempty"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) (OrderDTO, error) {
	items := make([]itemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemDTO{
			MenuItemID: item.MenuItemID().String(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice().Amount(),
			Quantity:   item.Quantity(),
			Options:    item.Options(),
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return OrderDTO{}, err
	}

	statusTimes := make(map[string]time.Time, len(o.StatusTimes()))
	for status, ts := range o.StatusTimes() {
		statusTimes[status.String()] = ts
	}
	statusTimesJSON, err := json.Marshal(statusTimes)
	if err != nil {
		return OrderDTO{}, err
	}

	var customerID *uuid.UUID
	if id := o.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}
	var riderID *uuid.UUID
	if id := o.Rider(); id != nil {
		raw := id.Bytes()
		riderID = &raw
	}

	return OrderDTO{
		ID:            o.ID().Bytes(),
		ShortCode:     o.ShortCode().String(),
		CustomerID:    customerID,
		CustomerName:  o.CustomerName(),
		Phone:         o.Phone(),
		Address:       o.Address(),
		Instructions:  o.Instructions(),
		Items:         itemsJSON,
		Subtotal:      o.Subtotal().Amount(),
		DeliveryFee:   o.DeliveryFee().Amount(),
		Discount:      o.Discount().Amount(),
		WalletUsed:    o.WalletUsed().Amount(),
		FinalAmount:   o.FinalAmount().Amount(),
		PaymentMethod: int(o.PaymentMethod()),
		Status:        int(o.Status()),
		RejectReason:  o.RejectReason(),
		RejectNote:    o.RejectNote(),
		RiderID:       riderID,
		PlacedAt:      o.PlacedAt(),
		StatusTimes:   statusTimesJSON,
		Version:       o.Version(),
	}, nil
}

// toDomain converts a database DTO back to an order aggregate via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shortCode, err := kernel.ShortCodeFromString(dto.ShortCode)
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if cErr != nil {
			return nil, cErr
		}
		customerID = &cID
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, rErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if rErr != nil {
			return nil, rErr
		}
		riderID = &rID
	}

	var itemDTOs []itemDTO
	if err = json.Unmarshal(dto.Items, &itemDTOs); err != nil {
		return nil, err
	}
	items := make([]order.Item, 0, len(itemDTOs))
	for _, raw := range itemDTOs {
		menuItemID, itemErr := kernel.UUIDFromString(raw.MenuItemID)
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, itemErr := kernel.NewMoney(raw.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(menuItemID, raw.Name, unitPrice, raw.Quantity, raw.Options)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var rawStatusTimes map[string]time.Time
	if err = json.Unmarshal(dto.StatusTimes, &rawStatusTimes); err != nil {
		return nil, err
	}
	statusTimes := make(map[order.Status]time.Time, len(rawStatusTimes))
	for name, ts := range rawStatusTimes {
		status, tsErr := order.StatusFromString(name)
		if tsErr != nil {
			return nil, tsErr
		}
		statusTimes[status] = ts
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	discount, err := kernel.NewMoney(dto.Discount)
	if err != nil {
		return nil, err
	}
	walletUsed, err := kernel.NewMoney(dto.WalletUsed)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, shortCode, customerID,
		dto.CustomerName, dto.Phone, dto.Address, dto.Instructions,
		items,
		deliveryFee, discount, walletUsed,
		order.PaymentMethod(dto.PaymentMethod), order.Status(dto.Status),
		dto.RejectReason, dto.RejectNote, riderID,
		dto.PlacedAt, statusTimes, dto.Version,
	)
}
