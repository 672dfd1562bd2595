package animal

import (
	"fmt"

	"github.com/Strob0t/animalfarm/internal/domain"
)

// Action names unlocked by bird capabilities.
const (
	ActionFly  = "fly"
	ActionCrow = "crow"
)

// Bird is a two-legged animal that may fly and crow.
type Bird struct {
	state
	canFly  bool
	canCrow bool
}

// NewBird creates a bird with the given capabilities.
func NewBird(name string, canFly, canCrow bool) *Bird {
	b := &Bird{canFly: canFly, canCrow: canCrow}
	b.init(name, KindBird, 2)
	b.grant(canFly, ActionFly, b.Fly)
	b.grant(canCrow, ActionCrow, b.Crow)
	return b
}

// Fly fails with a capability error when the bird cannot fly.
func (b *Bird) Fly() (string, error) {
	if !b.canFly {
		return "", domain.Errorf(domain.KindCapabilityMissing, "%s cannot fly.", b.name)
	}
	return fmt.Sprintf("%s is flying!", b.name), nil
}

// Crow fails with a capability error when the bird cannot crow.
func (b *Bird) Crow() (string, error) {
	if !b.canCrow {
		return "", domain.Errorf(domain.KindCapabilityMissing, "%s cannot crow.", b.name)
	}
	return fmt.Sprintf("%s is crowing!", b.name), nil
}

// CanFly reports the flight capability.
func (b *Bird) CanFly() bool { return b.canFly }

// CanCrow reports the crowing capability.
func (b *Bird) CanCrow() bool { return b.canCrow }

// Status returns the base snapshot plus canFly and canCrow.
func (b *Bird) Status() Status {
	st := b.snapshot()
	canFly, canCrow := b.canFly, b.canCrow
	st.CanFly = &canFly
	st.CanCrow = &canCrow
	return st
}
