package messagequeue

import (
	"time"

	"github.com/google/uuid"

	"github.com/Strob0t/animalfarm/internal/domain/animal"
)

// AnimalEventPayload is the schema for all animals.* messages.
type AnimalEventPayload struct {
	ID         string         `json:"id"`
	Animal     string         `json:"animal"`
	Operation  string         `json:"operation"`
	Message    string         `json:"message,omitempty"`
	Status     *animal.Status `json:"status,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewAnimalEvent builds a payload with a fresh event ID.
func NewAnimalEvent(name, operation, message string, status *animal.Status) AnimalEventPayload {
	return AnimalEventPayload{
		ID:         uuid.NewString(),
		Animal:     name,
		Operation:  operation,
		Message:    message,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}
}
