package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Client→server binding frames. A connection carries no pushes until it
// joins at least one identity.
const (
	frameJoin           = "join"
	frameJoinRestaurant = "joinRestaurant"
)

type joinPayload struct {
	UserID       string `json:"userId"`
	RestaurantID string `json:"restaurantId"`
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Gateway upgrades HTTP requests to websocket channels and keeps reading
// binding frames until the connection dies.
type Gateway struct {
	registry *Registry
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewGateway creates a websocket gateway backed by the given registry.
func NewGateway(registry *Registry, logger *slog.Logger) *Gateway {
	return &Gateway{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "ws_gateway")),
	}
}

// Handle serves GET /ws. The upgrade itself is role-agnostic; identity
// binding happens through join frames afterwards.
func (g *Gateway) Handle(c echo.Context) error {
	conn, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	ch := NewChannel(conn)
	defer func() {
		g.registry.Unregister(ch)
		_ = ch.Close()
	}()

	for {
		var frame inboundFrame
		if err = conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Debug("connection closed unexpectedly", "error", err)
			}
			return nil
		}

		switch frame.Event {
		case frameJoin:
			g.bind(frame.Data, ch, false)
		case frameJoinRestaurant:
			g.bind(frame.Data, ch, true)
		default:
			g.logger.Debug("ignoring unknown frame", slog.String("event", frame.Event))
		}
	}
}

func (g *Gateway) bind(data json.RawMessage, ch *Channel, restaurant bool) {
	var payload joinPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		g.logger.Debug("malformed join frame", "error", err)
		return
	}

	raw := payload.UserID
	if restaurant {
		raw = payload.RestaurantID
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		g.logger.Debug("join frame with invalid identity", "error", err)
		return
	}

	if restaurant {
		g.registry.RegisterRestaurant(id, ch)
	} else {
		g.registry.RegisterUser(id, ch)
	}
}
