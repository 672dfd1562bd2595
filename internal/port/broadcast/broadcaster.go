// Package broadcast defines the port for pushing farm events to live clients.
package broadcast

import "context"

// Broadcaster fans a typed event out to connected clients. Delivery is best
// effort and never fails the caller.
type Broadcaster interface {
	BroadcastEvent(ctx context.Context, eventType string, payload any)
}

// Nop discards every event.
type Nop struct{}

func (Nop) BroadcastEvent(context.Context, string, any) {}
