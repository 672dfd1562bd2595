// Package messagequeue defines the message queue port (interface).
package messagequeue

import "context"

// Queue is the port interface for publishing farm events.
type Queue interface {
	// Publish sends a message to the given subject.
	Publish(ctx context.Context, subject string, data []byte) error

	// Drain flushes pending publishes before closing.
	Drain() error

	// Close shuts down the queue connection immediately.
	Close() error

	// IsConnected reports whether the queue is currently connected.
	IsConnected() bool
}

// Subject constants for NATS subjects used by the farm.
const (
	SubjectAnimalCreated = "animals.created"
	SubjectAnimalDeleted = "animals.deleted"
	SubjectAnimalUpdated = "animals.updated" // state flag, duty or action assignment changed
	SubjectAnimalAction  = "animals.action"  // duty or action performed
)
