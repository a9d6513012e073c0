// Package ticketrepo provides data transfer objects and mapping functions for
// kitchen ticket persistence. Tickets are keyed by the order they track; the
// per-item prep statuses travel as a JSONB document since they are always
// read and written together with the ticket row.
package ticketrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/kitchen"

	"github.com/google/uuid"
)

// TicketDTO represents the database structure for persisting kitchen tickets.
// The aggregate status is never stored: it is derived from the item statuses
// on every read.
type TicketDTO struct {
	OrderID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShortCode    string    `gorm:"type:varchar(6)"`
	CustomerName string
	Instructions string
	PlacedAt     time.Time

	Items       []byte `gorm:"type:jsonb"`
	CompletedAt *time.Time
	Retired     bool `gorm:"index"`

	Version int
}

// TableName specifies the database table name for kitchen tickets.
func (TicketDTO) TableName() string {
	return "kitchen_tickets"
}

// ticketItemDTO is the JSON shape of one prep line inside the items document.
type ticketItemDTO struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Status     int    `json:"status"`
}

// fromDomain converts a kitchen ticket to its database representation.
func fromDomain(t *kitchen.Ticket) (TicketDTO, error) {
	items := make([]ticketItemDTO, 0, len(t.Items()))
	for _, item := range t.Items() {
		items = append(items, ticketItemDTO{
			MenuItemID: item.MenuItemID().String(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			Status:     int(item.Status()),
		})
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return TicketDTO{}, err
	}

	return TicketDTO{
		OrderID:      t.OrderID().Bytes(),
		ShortCode:    t.ShortCode().String(),
		CustomerName: t.CustomerName(),
		Instructions: t.Instructions(),
		PlacedAt:     t.PlacedAt(),
		Items:        itemsJSON,
		CompletedAt:  t.CompletedAt(),
		Retired:      t.IsRetired(),
		Version:      t.Version(),
	}, nil
}

// toDomain converts a database DTO back to a kitchen ticket via RestoreTicket.
func toDomain(dto TicketDTO) (*kitchen.Ticket, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	shortCode, err := kernel.ShortCodeFromString(dto.ShortCode)
	if err != nil {
		return nil, err
	}

	var itemDTOs []ticketItemDTO
	if err = json.Unmarshal(dto.Items, &itemDTOs); err != nil {
		return nil, err
	}
	items := make([]kitchen.TicketItem, 0, len(itemDTOs))
	for _, raw := range itemDTOs {
		menuItemID, itemErr := kernel.UUIDFromString(raw.MenuItemID)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := kitchen.RestoreTicketItem(menuItemID, raw.Name, raw.Quantity, kitchen.ItemStatus(raw.Status))
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return kitchen.RestoreTicket(
		orderID, shortCode,
		dto.CustomerName, dto.Instructions,
		items, dto.CompletedAt, dto.Retired,
		dto.PlacedAt, dto.Version,
	)
}
