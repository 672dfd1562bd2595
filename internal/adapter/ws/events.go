package ws

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/Strob0t/animalfarm/internal/domain/animal"
)

// Event types pushed to clients.
const (
	EventAnimalCreated = "animal.created"
	EventAnimalDeleted = "animal.deleted"
	EventAnimalUpdated = "animal.updated"
	EventAnimalAction  = "animal.action"
)

// AnimalEvent describes one change to an animal. Status is omitted for
// deletions.
type AnimalEvent struct {
	Animal    string         `json:"animal"`
	Operation string         `json:"operation"`
	Message   string         `json:"message"`
	Status    *animal.Status `json:"status,omitempty"`
}

// BroadcastEvent marshals payload and broadcasts it under eventType. Payloads
// of type AnimalEvent are routed to clients subscribed to that animal.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	msg := Message{Type: eventType, Payload: json.RawMessage(data)}
	if ev, ok := payload.(AnimalEvent); ok {
		msg.Animal = ev.Animal
	}
	h.Broadcast(ctx, msg)
}
