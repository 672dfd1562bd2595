package animal

import (
	"fmt"

	"github.com/Strob0t/animalfarm/internal/domain"
)

// Action names unlocked by dog capabilities.
const (
	ActionBark  = "bark"
	ActionChase = "chase"
)

// Dog is a four-legged animal that may bark and chase sheep.
type Dog struct {
	state
	canBark  bool
	canChase bool
}

// NewDog creates a dog with the given capabilities.
func NewDog(name string, canBark, canChase bool) *Dog {
	d := &Dog{canBark: canBark, canChase: canChase}
	d.init(name, KindDog, 4)
	d.grant(canBark, ActionBark, d.Bark)
	d.grant(canChase, ActionChase, d.Chase)
	return d
}

// Bark fails with a capability error when the dog cannot bark.
func (d *Dog) Bark() (string, error) {
	if !d.canBark {
		return "", domain.Errorf(domain.KindCapabilityMissing, "%s cannot bark.", d.name)
	}
	return fmt.Sprintf("%s is barking!", d.name), nil
}

// Chase fails with a capability error when the dog cannot chase sheep.
func (d *Dog) Chase() (string, error) {
	if !d.canChase {
		return "", domain.Errorf(domain.KindCapabilityMissing, "%s cannot chase sheep.", d.name)
	}
	return fmt.Sprintf("%s is chasing sheep!", d.name), nil
}

// CanBark reports the barking capability.
func (d *Dog) CanBark() bool { return d.canBark }

// CanChase reports the chasing capability.
func (d *Dog) CanChase() bool { return d.canChase }

// Status returns the base snapshot plus canBark and canChase.
func (d *Dog) Status() Status {
	st := d.snapshot()
	canBark, canChase := d.canBark, d.canChase
	st.CanBark = &canBark
	st.CanChase = &canChase
	return st
}
