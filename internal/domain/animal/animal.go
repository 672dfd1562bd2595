// Package animal defines the farm animal entity, its state machine and the
// concrete variants (Bird, Dog).
package animal

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Strob0t/animalfarm/internal/domain"
)

// Animal is a managed farm animal. The interface is sealed: only the
// variants in this package implement it, so the shared base state can never
// be instantiated on its own.
type Animal interface {
	Name() string
	Kind() Kind
	Legs() int
	AvailableActions() []string

	SetHungry(hungry bool) string
	SetSleepy(sleepy bool) string
	Eat() string
	Sleep() string

	SetDuty(duty string) string
	PerformDuty() (string, error)
	SetAction(action string) (string, error)
	PerformAction() (string, error)

	Status() Status

	base() *state
}

// behavior is a capability-backed action bound to one animal instance.
type behavior func() (string, error)

// state is the mutable record shared by every variant. mu guards the
// mutable fields; name, kind, legs, actions and behaviors never change after
// construction.
type state struct {
	mu sync.Mutex

	name      string
	kind      Kind
	legs      int
	actions   []string
	behaviors map[string]behavior

	hungry bool
	sleepy bool
	duty   string
	action string
}

func (s *state) init(name string, kind Kind, legs int) {
	s.name = name
	s.kind = kind
	s.legs = legs
	s.actions = []string{}
	s.behaviors = make(map[string]behavior)
}

// grant registers an action when the capability is present. Call order
// determines the order of AvailableActions.
func (s *state) grant(capable bool, action string, fn behavior) {
	s.behaviors[strings.ToLower(action)] = fn
	if capable {
		s.actions = append(s.actions, action)
	}
}

func (s *state) base() *state { return s }

// Name returns the animal's immutable identifier.
func (s *state) Name() string { return s.name }

// Kind returns the variant tag.
func (s *state) Kind() Kind { return s.kind }

// Legs returns the leg count fixed by the variant.
func (s *state) Legs() int { return s.legs }

// AvailableActions returns a copy of the actions unlocked at construction.
func (s *state) AvailableActions() []string { return slices.Clone(s.actions) }

// SetHungry sets the hunger flag unconditionally.
func (s *state) SetHungry(hungry bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hungry = hungry
	if hungry {
		return fmt.Sprintf("%s is now hungry.", s.name)
	}
	return fmt.Sprintf("%s is now not hungry.", s.name)
}

// SetSleepy sets the sleepiness flag unconditionally.
func (s *state) SetSleepy(sleepy bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sleepy = sleepy
	if sleepy {
		return fmt.Sprintf("%s is now sleepy.", s.name)
	}
	return fmt.Sprintf("%s is now not sleepy.", s.name)
}

// Eat clears hunger. It is a no-op when the animal is not hungry.
func (s *state) Eat() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hungry {
		return fmt.Sprintf("%s is not hungry right now.", s.name)
	}
	s.hungry = false
	return fmt.Sprintf("%s is eating.", s.name)
}

// Sleep clears sleepiness. It is a no-op when the animal is not sleepy.
func (s *state) Sleep() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sleepy {
		return fmt.Sprintf("%s is not sleepy right now.", s.name)
	}
	s.sleepy = false
	return fmt.Sprintf("%s is sleeping.", s.name)
}

// SetDuty assigns a free-text duty, replacing any previous one. Callers must
// pass non-empty text; an empty duty leaves the animal with no duty assigned.
func (s *state) SetDuty(duty string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duty = duty
	return fmt.Sprintf("%s's duty is now: %s", s.name, duty)
}

// PerformDuty reports the assigned duty. It does not mutate state.
func (s *state) PerformDuty() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.duty == "" {
		return "", domain.Errorf(domain.KindNoDutyAssigned, "%s has no duty assigned.", s.name)
	}
	if err := s.ready("duty"); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is performing duty: %s", s.name, s.duty), nil
}

// SetAction selects one of the available actions.
func (s *state) SetAction(action string) (string, error) {
	if !slices.Contains(s.actions, action) {
		return "", domain.Errorf(domain.KindInvalidAction, "%s is not a valid action for %s", action, s.kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.action = action
	return fmt.Sprintf("%s's action is now: %s", s.name, action), nil
}

// PerformAction runs the behavior bound to the current action.
func (s *state) PerformAction() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.action == "" {
		return "", domain.Errorf(domain.KindNoActionAssigned, "%s has no action assigned.", s.name)
	}
	if err := s.ready("action"); err != nil {
		return "", err
	}
	if fn, ok := s.behaviors[strings.ToLower(s.action)]; ok {
		return fn()
	}
	return fmt.Sprintf("%s is performing action: %s", s.name, s.action), nil
}

// ready must be called with s.mu held. Hunger is reported before sleepiness.
func (s *state) ready(what string) error {
	switch {
	case s.hungry:
		return domain.Errorf(domain.KindIncapacitated, "%s cannot perform %s because they are hungry.", s.name, what)
	case s.sleepy:
		return domain.Errorf(domain.KindIncapacitated, "%s cannot perform %s because they are sleepy.", s.name, what)
	}
	return nil
}

func (s *state) snapshot() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		Name:             s.name,
		Type:             s.kind,
		Legs:             s.legs,
		IsHungry:         s.hungry,
		IsSleepy:         s.sleepy,
		AvailableActions: slices.Clone(s.actions),
	}
	if s.duty != "" {
		duty := s.duty
		st.CurrentDuty = &duty
	}
	if s.action != "" {
		action := s.action
		st.CurrentAction = &action
	}
	return st
}
