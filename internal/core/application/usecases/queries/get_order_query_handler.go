package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order straight from the database,
// bypassing the aggregate. Read models never load the confirmation code.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. A missing order surfaces as an object-not-found
// error so the transport layer can answer 404.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			courier_id,
			status,
			created_at,
			accepted_at,
			picked_up_at,
			delivered_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		id, customerID, restaurantID        uuid.UUID
		courierID                           uuid.NullUUID
		status                              string
		createdAt                           time.Time
		acceptedAt, pickedUpAt, deliveredAt sql.NullTime
	)
	err := row.Scan(
		&id, &customerID, &restaurantID, &courierID,
		&status, &createdAt, &acceptedAt, &pickedUpAt, &deliveredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	custID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	restID, err := kernel.UUIDFromBytes(restaurantID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp := GetOrderQueryResponse{
		ID:           orderID,
		CustomerID:   custID,
		RestaurantID: restID,
		Status:       order.Status(status),
		CreatedAt:    createdAt,
	}
	if courierID.Valid {
		cid, cidErr := kernel.UUIDFromBytes(courierID.UUID[:])
		if cidErr != nil {
			return GetOrderQueryResponse{}, cidErr
		}
		resp.CourierID = &cid
	}
	if acceptedAt.Valid {
		resp.AcceptedAt = &acceptedAt.Time
	}
	if pickedUpAt.Valid {
		resp.PickedUpAt = &pickedUpAt.Time
	}
	if deliveredAt.Valid {
		resp.DeliveredAt = &deliveredAt.Time
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			quantity,
			unit_price_minor
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var (
			productID      uuid.UUID
			quantity       int
			unitPriceMinor int64
		)
		if err = rows.Scan(&productID, &quantity, &unitPriceMinor); err != nil {
			return nil, err
		}
		pid, pidErr := kernel.UUIDFromBytes(productID[:])
		if pidErr != nil {
			return nil, pidErr
		}
		items = append(items, OrderItemResponse{
			ProductID:      pid,
			Quantity:       quantity,
			UnitPriceMinor: unitPriceMinor,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
