// Package ws is the realtime notification fabric: one websocket channel per
// connected identity, a process-local registry routing pushes to channels,
// and an echo gateway that upgrades connections and binds identities.
package ws

import (
	"sync"
	"time"

	"dispatch/internal/core/ports"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Envelope is the wire frame in both directions: an event name and a payload.
type Envelope struct {
	Event ports.Event `json:"event"`
	Data  any         `json:"data,omitempty"`
}

// Channel wraps one websocket connection. gorilla/websocket allows a single
// concurrent writer, so all writes go through the channel's mutex.
type Channel struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewChannel wraps an upgraded connection.
func NewChannel(conn *websocket.Conn) *Channel {
	return &Channel{conn: conn}
}

// Send writes one event frame. The error is the caller's signal that the
// channel is dead; delivery is never guaranteed.
func (c *Channel) Send(event ports.Event, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(Envelope{Event: event, Data: payload})
}

// Ping probes whether the peer is still reachable.
func (c *Channel) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
}

// Close tears the connection down.
func (c *Channel) Close() error {
	return c.conn.Close()
}
