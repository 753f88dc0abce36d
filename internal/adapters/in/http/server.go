package http

import (
	"net/http"

	"dispatch/internal/adapters/ws"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// Server wires REST routes to command and query handlers.
type Server struct {
	createOrderHandler          commands.CreateOrderCommandHandler
	claimOrderHandler           commands.ClaimOrderCommandHandler
	markPickedUpHandler         commands.MarkPickedUpCommandHandler
	markDeliveredHandler        commands.MarkDeliveredCommandHandler
	restaurantTransitionHandler commands.RestaurantTransitionCommandHandler
	updateStatusHandler         commands.UpdateStatusCommandHandler
	createCourierHandler        commands.CreateCourierCommandHandler
	setAvailabilityHandler      commands.SetAvailabilityCommandHandler
	reportLocationHandler       commands.ReportLocationCommandHandler

	getOrderHandler           queries.GetOrderQueryHandler
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler

	gateway *ws.Gateway
}

// NewServer creates the REST ingress.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	markPickedUpHandler commands.MarkPickedUpCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	restaurantTransitionHandler commands.RestaurantTransitionCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	setAvailabilityHandler commands.SetAvailabilityCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	gateway *ws.Gateway,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		claimOrderHandler:           claimOrderHandler,
		markPickedUpHandler:         markPickedUpHandler,
		markDeliveredHandler:        markDeliveredHandler,
		restaurantTransitionHandler: restaurantTransitionHandler,
		updateStatusHandler:         updateStatusHandler,
		createCourierHandler:        createCourierHandler,
		setAvailabilityHandler:      setAvailabilityHandler,
		reportLocationHandler:       reportLocationHandler,
		getOrderHandler:             getOrderHandler,
		getAvailableOrdersHandler:   getAvailableOrdersHandler,
		gateway:                     gateway,
	}
}

// RegisterRoutes mounts every endpoint on the echo instance. The websocket
// upgrade and the health probe skip identity middleware; everything else
// requires it.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/ws", s.gateway.Handle)

	api := e.Group("", IdentityMiddleware())

	api.POST("/orders", s.CreateOrder, RequireRole(RoleCustomer))
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/accept", s.transition(commands.ActionAccept), RequireRole(RoleRestaurant))
	api.PATCH("/orders/:id/reject", s.transition(commands.ActionReject), RequireRole(RoleRestaurant))
	api.PATCH("/orders/:id/ready", s.transition(commands.ActionReady), RequireRole(RoleRestaurant))
	api.PATCH("/orders/:id/cancel", s.transition(commands.ActionCancel), RequireRole(RoleRestaurant))
	api.PATCH("/orders/:id/status", s.UpdateStatus, RequireRole(RoleAdmin))

	api.POST("/couriers", s.CreateCourier, RequireRole(RoleAdmin))
	api.GET("/couriers/available-orders", s.GetAvailableOrders, RequireRole(RoleCourier))
	api.POST("/couriers/orders/:id/accept", s.ClaimOrder, RequireRole(RoleCourier))
	api.PATCH("/couriers/orders/:id/pickup", s.MarkPickedUp, RequireRole(RoleCourier))
	api.PATCH("/couriers/orders/:id/deliver", s.MarkDelivered, RequireRole(RoleCourier))
	api.PATCH("/couriers/availability", s.SetAvailability, RequireRole(RoleCourier))
	api.POST("/couriers/location", s.ReportLocation, RequireRole(RoleCourier))
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid request body"})
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid restaurantId"})
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, line := range req.Items {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid productId"})
		}
		item, lineErr := order.NewItem(productID, line.Quantity, line.UnitPriceMinor)
		if lineErr != nil {
			return respondError(c, lineErr)
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), IdentityFrom(c).ID, restaurantID, items, req.ConfirmationCode)
	if err != nil {
		return respondError(c, err)
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, orderResponseFromAggregate(created))
}

// GetOrder handles GET /orders/:id. Customers see their own orders,
// restaurants theirs, couriers the orders assigned to them, admins all.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid order id"})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	identity := IdentityFrom(c)
	allowed := false
	switch identity.Role {
	case RoleAdmin:
		allowed = true
	case RoleCustomer:
		allowed = resp.CustomerID.IsEqual(identity.ID)
	case RoleRestaurant:
		allowed = resp.RestaurantID.IsEqual(identity.ID)
	case RoleCourier:
		allowed = resp.CourierID != nil && resp.CourierID.IsEqual(identity.ID)
	}
	if !allowed {
		return c.JSON(http.StatusForbidden, errorBody{Code: "FORBIDDEN", Message: "order belongs to someone else"})
	}

	return c.JSON(http.StatusOK, orderResponseFromQuery(resp))
}

// transition builds the handler for the restaurant lifecycle endpoints.
func (s *Server) transition(action commands.TransitionAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		orderID, err := kernel.UUIDFromString(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid order id"})
		}

		cmd, err := commands.NewRestaurantTransitionCommand(IdentityFrom(c).ID, orderID, action)
		if err != nil {
			return respondError(c, err)
		}

		updated, err := s.restaurantTransitionHandler.Handle(c.Request().Context(), cmd)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusOK, orderResponseFromAggregate(updated))
	}
}

// UpdateStatus handles PATCH /orders/:id/status.
func (s *Server) UpdateStatus(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid order id"})
	}

	var req updateStatusRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid request body"})
	}

	cmd, err := commands.NewUpdateStatusCommand(orderID, order.Status(req.Status))
	if err != nil {
		return respondError(c, err)
	}

	updated, err := s.updateStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// CreateCourier handles POST /couriers.
func (s *Server) CreateCourier(c echo.Context) error {
	var req createCourierRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid request body"})
	}

	cmd, err := commands.NewCreateCourierCommand(kernel.NewUUID(), req.Name)
	if err != nil {
		return respondError(c, err)
	}

	created, err := s.createCourierHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, courierResponse{
		ID:          created.ID().String(),
		Name:        created.Name(),
		IsAvailable: created.IsAvailable(),
	})
}

// GetAvailableOrders handles GET /couriers/available-orders.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	query := queries.NewGetAvailableOrdersQuery()

	available, err := s.getAvailableOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]availableOrderResponse, 0, len(available))
	for _, entry := range available {
		items := make([]orderItemResponse, 0, len(entry.Items))
		for _, item := range entry.Items {
			items = append(items, orderItemResponse{
				ProductID:      item.ProductID.String(),
				Quantity:       item.Quantity,
				UnitPriceMinor: item.UnitPriceMinor,
			})
		}
		resp = append(resp, availableOrderResponse{
			ID:           entry.ID.String(),
			RestaurantID: entry.RestaurantID.String(),
			Items:        items,
			CreatedAt:    entry.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, resp)
}

// ClaimOrder handles POST /couriers/orders/:id/accept.
func (s *Server) ClaimOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid order id"})
	}

	cmd, err := commands.NewClaimOrderCommand(IdentityFrom(c).ID, orderID)
	if err != nil {
		return respondError(c, err)
	}

	claimed, err := s.claimOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponseFromAggregate(claimed))
}

// MarkPickedUp handles PATCH /couriers/orders/:id/pickup.
func (s *Server) MarkPickedUp(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid order id"})
	}

	cmd, err := commands.NewMarkPickedUpCommand(IdentityFrom(c).ID, orderID)
	if err != nil {
		return respondError(c, err)
	}

	updated, err := s.markPickedUpHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// MarkDelivered handles PATCH /couriers/orders/:id/deliver.
func (s *Server) MarkDelivered(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid order id"})
	}

	var req deliverRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid request body"})
	}

	cmd, err := commands.NewMarkDeliveredCommand(IdentityFrom(c).ID, orderID, req.ConfirmationCode)
	if err != nil {
		return respondError(c, err)
	}

	updated, err := s.markDeliveredHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, orderResponseFromAggregate(updated))
}

// SetAvailability handles PATCH /couriers/availability.
func (s *Server) SetAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid request body"})
	}

	cmd, err := commands.NewSetAvailabilityCommand(IdentityFrom(c).ID, req.IsAvailable)
	if err != nil {
		return respondError(c, err)
	}

	updated, err := s.setAvailabilityHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, courierResponse{
		ID:          updated.ID().String(),
		Name:        updated.Name(),
		IsAvailable: updated.IsAvailable(),
	})
}

// ReportLocation handles POST /couriers/location.
func (s *Server) ReportLocation(c echo.Context) error {
	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_FAILED", Message: "invalid request body"})
	}

	location, err := kernel.NewLocation(req.Lat, req.Lng)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewReportLocationCommand(IdentityFrom(c).ID, location)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.reportLocationHandler.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}
