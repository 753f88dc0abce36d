package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorBody is the uniform error response. Conflict responses carry the
// machine-readable conflict code so clients can branch on it.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps the error taxonomy onto HTTP status codes.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorBody{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, errorBody{
			Code:    string(errs.ConflictCodeOf(err)),
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, errorBody{
			Code:    "INTERNAL",
			Message: "internal server error",
		})
	}
}

type createOrderItemRequest struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceMinor int64  `json:"unitPriceMinor"`
}

type createOrderRequest struct {
	RestaurantID     string                   `json:"restaurantId"`
	Items            []createOrderItemRequest `json:"items"`
	ConfirmationCode string                   `json:"confirmationCode"`
}

type createCourierRequest struct {
	Name string `json:"name"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type deliverRequest struct {
	ConfirmationCode string `json:"confirmationCode"`
}

type availabilityRequest struct {
	IsAvailable bool `json:"isAvailable"`
}

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type orderItemResponse struct {
	ProductID      string `json:"productId"`
	Quantity       int    `json:"quantity"`
	UnitPriceMinor int64  `json:"unitPriceMinor"`
}

// orderResponse is the REST view of an order. Like every read model it omits
// the confirmation code.
type orderResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customerId"`
	RestaurantID string              `json:"restaurantId"`
	CourierID    *string             `json:"courierId,omitempty"`
	Status       string              `json:"status"`
	Items        []orderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"createdAt"`
	AcceptedAt   *time.Time          `json:"acceptedAt,omitempty"`
	PickedUpAt   *time.Time          `json:"pickedUpAt,omitempty"`
	DeliveredAt  *time.Time          `json:"deliveredAt,omitempty"`
}

type availableOrderResponse struct {
	ID           string              `json:"id"`
	RestaurantID string              `json:"restaurantId"`
	Items        []orderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"createdAt"`
}

type courierResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsAvailable bool   `json:"isAvailable"`
}

func orderResponseFromAggregate(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, orderItemResponse{
			ProductID:      item.ProductID().String(),
			Quantity:       item.Quantity(),
			UnitPriceMinor: item.UnitPriceMinor(),
		})
	}

	resp := orderResponse{
		ID:           o.ID().String(),
		CustomerID:   o.CustomerID().String(),
		RestaurantID: o.RestaurantID().String(),
		Status:       o.Status().String(),
		Items:        items,
		CreatedAt:    o.CreatedAt(),
		AcceptedAt:   o.AcceptedAt(),
		PickedUpAt:   o.PickedUpAt(),
		DeliveredAt:  o.DeliveredAt(),
	}
	if id := o.CourierID(); id != nil {
		s := id.String()
		resp.CourierID = &s
	}
	return resp
}

func orderResponseFromQuery(q queries.GetOrderQueryResponse) orderResponse {
	items := make([]orderItemResponse, 0, len(q.Items))
	for _, item := range q.Items {
		items = append(items, orderItemResponse{
			ProductID:      item.ProductID.String(),
			Quantity:       item.Quantity,
			UnitPriceMinor: item.UnitPriceMinor,
		})
	}

	resp := orderResponse{
		ID:           q.ID.String(),
		CustomerID:   q.CustomerID.String(),
		RestaurantID: q.RestaurantID.String(),
		Status:       q.Status.String(),
		Items:        items,
		CreatedAt:    q.CreatedAt,
		AcceptedAt:   q.AcceptedAt,
		PickedUpAt:   q.PickedUpAt,
		DeliveredAt:  q.DeliveredAt,
	}
	if q.CourierID != nil {
		s := q.CourierID.String()
		resp.CourierID = &s
	}
	return resp
}
