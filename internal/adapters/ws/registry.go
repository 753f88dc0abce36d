package ws

import (
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// sender is the outbound surface the registry needs from a channel.
type sender interface {
	Send(event ports.Event, payload any) error
	Ping() error
	Close() error
}

// Registry routes pushes to the live channels of connected identities.
// It is process-local state, not durable routing: a registration lives
// exactly as long as its connection, and a push to an absent identity is a
// silent no-op.
//
// Rebinding an identity is last-writer-wins: the newest connection takes the
// slot and the previous one is closed.
type Registry struct {
	mu          sync.RWMutex
	users       map[kernel.UUID]sender
	restaurants map[kernel.UUID]sender
	logger      *slog.Logger
}

// NewRegistry creates an empty connection registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		users:       make(map[kernel.UUID]sender),
		restaurants: make(map[kernel.UUID]sender),
		logger:      logger.With(slog.String("component", "ws_registry")),
	}
}

// RegisterUser binds a customer or courier identity to a channel.
func (r *Registry) RegisterUser(userID kernel.UUID, ch sender) {
	r.mu.Lock()
	prev := r.users[userID]
	r.users[userID] = ch
	r.mu.Unlock()

	if prev != nil && prev != ch {
		_ = prev.Close()
	}
}

// RegisterRestaurant binds a restaurant identity to a channel.
func (r *Registry) RegisterRestaurant(restaurantID kernel.UUID, ch sender) {
	r.mu.Lock()
	prev := r.restaurants[restaurantID]
	r.restaurants[restaurantID] = ch
	r.mu.Unlock()

	if prev != nil && prev != ch {
		_ = prev.Close()
	}
}

// Unregister removes every binding held by the given channel. A newer
// connection that already took the slot is left alone.
func (r *Registry) Unregister(ch sender) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, bound := range r.users {
		if bound == ch {
			delete(r.users, id)
		}
	}
	for id, bound := range r.restaurants {
		if bound == ch {
			delete(r.restaurants, id)
		}
	}
}

// PushToUser sends an event to the identity's live channel, if any.
func (r *Registry) PushToUser(userID kernel.UUID, event ports.Event, payload any) {
	r.mu.RLock()
	ch := r.users[userID]
	r.mu.RUnlock()

	if ch == nil {
		return
	}
	if err := ch.Send(event, payload); err != nil {
		r.logger.Debug("push failed", "event", string(event), "error", err)
	}
}

// PushToRestaurant sends an event to the restaurant's live channel, if any.
func (r *Registry) PushToRestaurant(restaurantID kernel.UUID, event ports.Event, payload any) {
	r.mu.RLock()
	ch := r.restaurants[restaurantID]
	r.mu.RUnlock()

	if ch == nil {
		return
	}
	if err := ch.Send(event, payload); err != nil {
		r.logger.Debug("push failed", "event", string(event), "error", err)
	}
}

// Broadcast fans an event out to every live channel.
func (r *Registry) Broadcast(event ports.Event, payload any) {
	r.mu.RLock()
	channels := make([]sender, 0, len(r.users)+len(r.restaurants))
	for _, ch := range r.users {
		channels = append(channels, ch)
	}
	for _, ch := range r.restaurants {
		channels = append(channels, ch)
	}
	r.mu.RUnlock()

	for _, ch := range channels {
		if err := ch.Send(event, payload); err != nil {
			r.logger.Debug("broadcast push failed", "event", string(event), "error", err)
		}
	}
}

// SweepDead pings every channel and unregisters the ones that fail.
// Returns how many channels were dropped.
func (r *Registry) SweepDead() int {
	r.mu.RLock()
	channels := make([]sender, 0, len(r.users)+len(r.restaurants))
	seen := make(map[sender]bool)
	for _, ch := range r.users {
		if !seen[ch] {
			seen[ch] = true
			channels = append(channels, ch)
		}
	}
	for _, ch := range r.restaurants {
		if !seen[ch] {
			seen[ch] = true
			channels = append(channels, ch)
		}
	}
	r.mu.RUnlock()

	dropped := 0
	for _, ch := range channels {
		if err := ch.Ping(); err != nil {
			_ = ch.Close()
			r.Unregister(ch)
			dropped++
		}
	}
	return dropped
}
