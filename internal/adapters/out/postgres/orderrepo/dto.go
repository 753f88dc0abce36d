// Package orderrepo persists order aggregates. The orders row is the single
// source of truth for order status, so every mutating statement here is
// conditional on the status the caller read.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database representation of an order aggregate.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID     uuid.UUID  `gorm:"type:uuid;index"`
	CourierID        *uuid.UUID `gorm:"type:uuid;index"`
	Status           string     `gorm:"type:varchar(16);index"`
	ConfirmationCode string
	Items            []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
	AcceptedAt       *time.Time
	PickedUpAt       *time.Time
	DeliveredAt      *time.Time
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one order line. Lines are immutable after checkout.
type ItemDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity       int
	UnitPriceMinor int64
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := aggregate.CourierID(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:        aggregate.ID().Bytes(),
			ProductID:      item.ProductID().Bytes(),
			Quantity:       item.Quantity(),
			UnitPriceMinor: item.UnitPriceMinor(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		RestaurantID:     aggregate.RestaurantID().Bytes(),
		CourierID:        courierID,
		Status:           aggregate.Status().String(),
		ConfirmationCode: aggregate.ConfirmationCode(),
		Items:            items,
		CreatedAt:        aggregate.CreatedAt(),
		AcceptedAt:       aggregate.AcceptedAt(),
		PickedUpAt:       aggregate.PickedUpAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := order.NewItem(productID, itemDTO.Quantity, itemDTO.UnitPriceMinor)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, customerID, restaurantID, courierID,
		items, dto.ConfirmationCode,
		order.Status(dto.Status),
		dto.CreatedAt, dto.AcceptedAt, dto.PickedUpAt, dto.DeliveredAt,
	)
}
