// Package database defines the animal store port (interface).
package database

import (
	"context"

	"github.com/Strob0t/animalfarm/internal/domain/animal"
)

// Store owns animal identity. Names are unique within a store.
type Store interface {
	// CreateAnimal constructs the requested variant and inserts it.
	// Fails with domain.ErrNameRequired or domain.ErrDuplicateName.
	CreateAnimal(ctx context.Context, req *animal.CreateRequest) (animal.Animal, error)

	// GetAnimal fails with domain.ErrNotFound when the name is absent.
	GetAnimal(ctx context.Context, name string) (animal.Animal, error)

	// DeleteAnimal fails with domain.ErrNotFound when the name is absent.
	DeleteAnimal(ctx context.Context, name string) error

	// ListAnimals returns all animals in insertion order.
	ListAnimals(ctx context.Context) ([]animal.Animal, error)

	CountAnimals(ctx context.Context) (int, error)
}
