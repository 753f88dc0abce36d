package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableOrdersQueryHandler lists claimable orders straight from the
// database. Oldest orders come first so long-waiting food gets claimed first.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for claimable-order queries.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query. The join flattens order lines into rows; rows
// sharing an order id are folded back into one response entry.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.restaurant_id,
			o.created_at,
			i.product_id,
			i.quantity,
			i.unit_price_minor
		FROM orders o
		LEFT JOIN order_items i ON i.order_id = o.id
		WHERE o.status = ? AND o.courier_id IS NULL
		ORDER BY o.created_at, o.id, i.product_id
	`, order.StatusReady).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetAvailableOrdersQueryResponse, 0)
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			id, restaurantID uuid.UUID
			createdAt        time.Time
			productID        uuid.NullUUID
			quantity         *int
			unitPriceMinor   *int64
		)
		if err = rows.Scan(&id, &restaurantID, &createdAt, &productID, &quantity, &unitPriceMinor); err != nil {
			return nil, err
		}

		pos, seen := index[id]
		if !seen {
			orderID, idErr := kernel.UUIDFromBytes(id[:])
			if idErr != nil {
				return nil, idErr
			}
			restID, idErr := kernel.UUIDFromBytes(restaurantID[:])
			if idErr != nil {
				return nil, idErr
			}
			responses = append(responses, GetAvailableOrdersQueryResponse{
				ID:           orderID,
				RestaurantID: restID,
				Items:        make([]OrderItemResponse, 0),
				CreatedAt:    createdAt,
			})
			pos = len(responses) - 1
			index[id] = pos
		}

		if productID.Valid {
			pid, pidErr := kernel.UUIDFromBytes(productID.UUID[:])
			if pidErr != nil {
				return nil, pidErr
			}
			responses[pos].Items = append(responses[pos].Items, OrderItemResponse{
				ProductID:      pid,
				Quantity:       *quantity,
				UnitPriceMinor: *unitPriceMinor,
			})
		}
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
