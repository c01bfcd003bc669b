// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order domain aggregate, handling the conversion between domain entities and
// database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The item ledger lives in its own table and is loaded with the order; the
// stored status column is denormalized from the item statuses so query
// handlers can filter without joining.
type OrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerRef         string
	ShippingAddress     string
	SupplierRef         string
	SpecialInstructions string
	Carrier             string
	TrackingNumber      string
	Status              int `gorm:"index"`
	CreatedAt           time.Time
	Items               []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one line item row of an order.
type ItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	SKU               string    `gorm:"column:sku;index"`
	RequestedQuantity int
	UnitPriceCents    int64
	IsFragile         bool
	Status            int
	PickedQuantity    int
	PackedQuantity    int
	PackingMaterialID string
	ShortageFlagged   bool `gorm:"index"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	domainItems := aggregate.Items()
	items := make([]ItemDTO, 0, len(domainItems))
	for _, item := range domainItems {
		items = append(items, ItemDTO{
			ID:                item.ID().Bytes(),
			OrderID:           aggregate.ID().Bytes(),
			SKU:               item.SKU(),
			RequestedQuantity: item.RequestedQuantity(),
			UnitPriceCents:    item.UnitPrice(),
			IsFragile:         item.IsFragile(),
			Status:            int(item.Status()),
			PickedQuantity:    item.PickedQuantity(),
			PackedQuantity:    item.PackedQuantity(),
			PackingMaterialID: item.PackingMaterialID(),
			ShortageFlagged:   item.ShortageFlagged(),
		})
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		CustomerRef:         aggregate.CustomerRef(),
		ShippingAddress:     aggregate.ShippingAddress(),
		SupplierRef:         aggregate.SupplierRef(),
		SpecialInstructions: aggregate.SpecialInstructions(),
		Carrier:             aggregate.Carrier(),
		TrackingNumber:      aggregate.TrackingNumber(),
		Status:              int(aggregate.Status()),
		CreatedAt:           aggregate.CreatedAt(),
		Items:               items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including item state using RestoreOrder,
// which re-validates the stored status against the item statuses.
func toDomain(dto OrderDTO) (*order.Order, error) {
	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, err := kernel.UUIDFromBytes(itemDTO.ID[:])
		if err != nil {
			return nil, err
		}

		item, err := order.RestoreItem(
			itemID,
			itemDTO.SKU,
			itemDTO.RequestedQuantity,
			itemDTO.UnitPriceCents,
			itemDTO.IsFragile,
			order.ItemStatus(itemDTO.Status),
			itemDTO.PickedQuantity,
			itemDTO.PackedQuantity,
			itemDTO.PackingMaterialID,
			itemDTO.ShortageFlagged,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.CustomerRef,
		dto.ShippingAddress,
		dto.SupplierRef,
		dto.SpecialInstructions,
		dto.Carrier,
		dto.TrackingNumber,
		dto.CreatedAt,
		order.Status(dto.Status),
		items,
	)
}
