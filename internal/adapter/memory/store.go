// Package memory implements the database store port with process-lifetime
// in-memory state.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Strob0t/animalfarm/internal/domain"
	"github.com/Strob0t/animalfarm/internal/domain/animal"
)

// Store keeps animals in a map keyed by name plus a slice recording
// insertion order for deterministic listings.
type Store struct {
	mu      sync.RWMutex
	animals map[string]animal.Animal
	order   []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{animals: make(map[string]animal.Animal)}
}

// CreateAnimal validates req, rejects duplicate names and inserts the new animal.
func (s *Store) CreateAnimal(_ context.Context, req *animal.CreateRequest) (animal.Animal, error) {
	if req.Name == "" {
		return nil, domain.Errorf(domain.KindNameRequired, "Name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.animals[req.Name]; exists {
		return nil, domain.Errorf(domain.KindDuplicateName, "Animal '%s' already exists", req.Name)
	}

	a, err := animal.New(req)
	if err != nil {
		return nil, err
	}
	s.animals[req.Name] = a
	s.order = append(s.order, req.Name)
	return a, nil
}

// GetAnimal returns the animal with the given name.
func (s *Store) GetAnimal(_ context.Context, name string) (animal.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.animals[name]
	if !ok {
		return nil, domain.Errorf(domain.KindNotFound, "Animal '%s' not found on the farm.", name)
	}
	return a, nil
}

// DeleteAnimal removes the animal with the given name.
func (s *Store) DeleteAnimal(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.animals[name]; !ok {
		return domain.Errorf(domain.KindNotFound, "Animal '%s' not found", name)
	}
	delete(s.animals, name)
	if i := slices.Index(s.order, name); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

// ListAnimals returns all animals in insertion order.
func (s *Store) ListAnimals(_ context.Context) ([]animal.Animal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]animal.Animal, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.animals[name])
	}
	return out, nil
}

// CountAnimals returns the number of animals currently stored.
func (s *Store) CountAnimals(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.animals), nil
}
