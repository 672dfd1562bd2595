package animal_test

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/Strob0t/animalfarm/internal/domain"
	"github.com/Strob0t/animalfarm/internal/domain/animal"
)

func TestEatIdempotentWhenNotHungry(t *testing.T) {
	d := animal.NewDog("Rex", true, true)
	for range 3 {
		if got := d.Eat(); got != "Rex is not hungry right now." {
			t.Fatalf("Eat() = %q", got)
		}
		if d.Status().IsHungry {
			t.Fatal("expected isHungry to stay false")
		}
	}
}

func TestEatClearsHunger(t *testing.T) {
	d := animal.NewDog("Rex", false, false)
	if got := d.SetHungry(true); got != "Rex is now hungry." {
		t.Fatalf("SetHungry(true) = %q", got)
	}
	if got := d.Eat(); got != "Rex is eating." {
		t.Fatalf("first Eat() = %q", got)
	}
	if d.Status().IsHungry {
		t.Fatal("expected hunger cleared")
	}
	if got := d.Eat(); !strings.Contains(got, "not hungry") {
		t.Fatalf("second Eat() = %q", got)
	}
}

func TestSleepClearsSleepiness(t *testing.T) {
	b := animal.NewBird("Tweety", true, false)
	if got := b.Sleep(); got != "Tweety is not sleepy right now." {
		t.Fatalf("Sleep() while awake = %q", got)
	}
	if got := b.SetSleepy(true); got != "Tweety is now sleepy." {
		t.Fatalf("SetSleepy(true) = %q", got)
	}
	if got := b.Sleep(); got != "Tweety is sleeping." {
		t.Fatalf("Sleep() = %q", got)
	}
	if b.Status().IsSleepy {
		t.Fatal("expected sleepiness cleared")
	}
	if got := b.SetSleepy(false); got != "Tweety is now not sleepy." {
		t.Fatalf("SetSleepy(false) = %q", got)
	}
}

func TestPerformDuty(t *testing.T) {
	d := animal.NewDog("Rex", true, true)

	if _, err := d.PerformDuty(); !errors.Is(err, domain.ErrNoDutyAssigned) {
		t.Fatalf("expected ErrNoDutyAssigned, got %v", err)
	}

	if got := d.SetDuty("guard the farm"); got != "Rex's duty is now: guard the farm" {
		t.Fatalf("SetDuty() = %q", got)
	}
	msg, err := d.PerformDuty()
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Rex is performing duty: guard the farm" {
		t.Fatalf("PerformDuty() = %q", msg)
	}
}

func TestEmptyDutyLeavesNoneAssigned(t *testing.T) {
	d := animal.NewDog("Rex", true, true)
	d.SetDuty("guard the farm")
	d.SetDuty("")

	if st := d.Status(); st.CurrentDuty != nil {
		t.Fatalf("expected null duty, got %q", *st.CurrentDuty)
	}
	if _, err := d.PerformDuty(); !errors.Is(err, domain.ErrNoDutyAssigned) {
		t.Fatalf("expected ErrNoDutyAssigned, got %v", err)
	}
}

func TestIncapacitatedBlocksDutyAndAction(t *testing.T) {
	tests := []struct {
		name    string
		hungry  bool
		sleepy  bool
		wantMsg string
	}{
		{"hungry", true, false, "hungry"},
		{"sleepy", false, true, "sleepy"},
		{"both prefers hungry", true, true, "hungry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := animal.NewDog("Rex", true, false)
			d.SetDuty("guard the farm")
			if _, err := d.SetAction(animal.ActionBark); err != nil {
				t.Fatal(err)
			}
			d.SetHungry(tt.hungry)
			d.SetSleepy(tt.sleepy)

			_, err := d.PerformDuty()
			if !errors.Is(err, domain.ErrIncapacitated) {
				t.Fatalf("PerformDuty: expected ErrIncapacitated, got %v", err)
			}
			if !strings.Contains(err.Error(), "because they are "+tt.wantMsg) {
				t.Fatalf("PerformDuty message %q does not mention %s", err, tt.wantMsg)
			}

			_, err = d.PerformAction()
			if !errors.Is(err, domain.ErrIncapacitated) {
				t.Fatalf("PerformAction: expected ErrIncapacitated, got %v", err)
			}
			if !strings.Contains(err.Error(), "perform action because they are "+tt.wantMsg) {
				t.Fatalf("PerformAction message %q does not mention %s", err, tt.wantMsg)
			}
		})
	}
}

func TestIncapacitatedWithoutAssignmentReportsMissingFirst(t *testing.T) {
	d := animal.NewDog("Rex", true, true)
	d.SetHungry(true)
	if _, err := d.PerformAction(); !errors.Is(err, domain.ErrNoActionAssigned) {
		t.Fatalf("expected ErrNoActionAssigned, got %v", err)
	}
	if _, err := d.PerformDuty(); !errors.Is(err, domain.ErrNoDutyAssigned) {
		t.Fatalf("expected ErrNoDutyAssigned, got %v", err)
	}
}

func TestAvailableActionsOrder(t *testing.T) {
	tests := []struct {
		name string
		a    animal.Animal
		want []string
	}{
		{"bird both", animal.NewBird("b", true, true), []string{"fly", "crow"}},
		{"bird fly", animal.NewBird("b", true, false), []string{"fly"}},
		{"bird crow", animal.NewBird("b", false, true), []string{"crow"}},
		{"bird none", animal.NewBird("b", false, false), []string{}},
		{"dog both", animal.NewDog("d", true, true), []string{"bark", "chase"}},
		{"dog chase", animal.NewDog("d", false, true), []string{"chase"}},
		{"dog none", animal.NewDog("d", false, false), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.AvailableActions()
			if !slices.Equal(got, tt.want) {
				t.Fatalf("AvailableActions() = %v, want %v", got, tt.want)
			}
			if st := tt.a.Status(); st.AvailableActions == nil {
				t.Fatal("status availableActions must not be nil")
			}
		})
	}
}

func TestSetActionOnlyAcceptsAvailable(t *testing.T) {
	d := animal.NewDog("Rex", true, false)

	for _, action := range []string{"chase", "fly", "Bark", ""} {
		if _, err := d.SetAction(action); !errors.Is(err, domain.ErrInvalidAction) {
			t.Fatalf("SetAction(%q): expected ErrInvalidAction, got %v", action, err)
		}
	}

	msg, err := d.SetAction("bark")
	if err != nil {
		t.Fatal(err)
	}
	if msg != "Rex's action is now: bark" {
		t.Fatalf("SetAction() = %q", msg)
	}
	// Setting the same action again succeeds.
	if _, err := d.SetAction("bark"); err != nil {
		t.Fatalf("repeat SetAction: %v", err)
	}
}

func TestNoCapabilitiesRejectsEveryAction(t *testing.T) {
	b := animal.NewBird("Tweety", false, false)
	if len(b.AvailableActions()) != 0 {
		t.Fatalf("expected no actions, got %v", b.AvailableActions())
	}
	for _, action := range []string{"fly", "crow", "bark", "chase"} {
		if _, err := b.SetAction(action); !errors.Is(err, domain.ErrInvalidAction) {
			t.Fatalf("SetAction(%q): expected ErrInvalidAction, got %v", action, err)
		}
	}
}

func TestFlyingBird(t *testing.T) {
	b := animal.NewBird("Tweety", true, false)
	if !slices.Equal(b.AvailableActions(), []string{"fly"}) {
		t.Fatalf("AvailableActions() = %v", b.AvailableActions())
	}
	if _, err := b.SetAction("fly"); err != nil {
		t.Fatal(err)
	}
	msg, err := b.PerformAction()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "flying") {
		t.Fatalf("PerformAction() = %q", msg)
	}
}

func TestGroundedBirdCannotSetFly(t *testing.T) {
	b := animal.NewBird("Tweety", false, true)
	_, err := b.SetAction("fly")
	if !errors.Is(err, domain.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if err.Error() != "fly is not a valid action for Bird" {
		t.Fatalf("unexpected message %q", err)
	}
}

func TestDogActionReplacement(t *testing.T) {
	d := animal.NewDog("Rex", true, true)

	if _, err := d.SetAction("bark"); err != nil {
		t.Fatal(err)
	}
	msg, err := d.PerformAction()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "barking") {
		t.Fatalf("bark: got %q", msg)
	}

	if _, err := d.SetAction("chase"); err != nil {
		t.Fatal(err)
	}
	msg, err = d.PerformAction()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "chasing sheep") {
		t.Fatalf("chase: got %q", msg)
	}
	if got := *d.Status().CurrentAction; got != "chase" {
		t.Fatalf("currentAction = %q", got)
	}
}

func TestDirectBehaviorGuards(t *testing.T) {
	b := animal.NewBird("Tweety", false, false)
	d := animal.NewDog("Rex", false, false)

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"fly", b.Fly, "Tweety cannot fly."},
		{"crow", b.Crow, "Tweety cannot crow."},
		{"bark", d.Bark, "Rex cannot bark."},
		{"chase", d.Chase, "Rex cannot chase sheep."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			if !errors.Is(err, domain.ErrCapabilityMissing) {
				t.Fatalf("expected ErrCapabilityMissing, got %v", err)
			}
			if err.Error() != tt.want {
				t.Fatalf("message = %q, want %q", err, tt.want)
			}
		})
	}

	capable := animal.NewBird("Foghorn", true, true)
	if msg, _ := capable.Crow(); msg != "Foghorn is crowing!" {
		t.Fatalf("Crow() = %q", msg)
	}
}

func TestStatusSnapshot(t *testing.T) {
	d := animal.NewDog("Rex", true, false)
	st := d.Status()

	if st.Name != "Rex" || st.Type != animal.KindDog || st.Legs != 4 {
		t.Fatalf("unexpected identity fields: %+v", st)
	}
	if st.CurrentDuty != nil || st.CurrentAction != nil {
		t.Fatal("expected unset duty and action")
	}
	if st.CanBark == nil || !*st.CanBark || st.CanChase == nil || *st.CanChase {
		t.Fatalf("unexpected dog capabilities: %+v", st)
	}
	if st.CanFly != nil || st.CanCrow != nil {
		t.Fatal("dog snapshot must not carry bird capabilities")
	}

	d.SetDuty("guard the farm")
	if st.CurrentDuty != nil {
		t.Fatal("snapshot must not change after later mutation")
	}

	b := animal.NewBird("Tweety", true, true)
	bst := b.Status()
	if bst.Legs != 2 || bst.Type != animal.KindBird {
		t.Fatalf("unexpected bird fields: %+v", bst)
	}
	if bst.CanFly == nil || bst.CanCrow == nil || bst.CanBark != nil {
		t.Fatalf("unexpected bird capabilities: %+v", bst)
	}
}

func TestNew(t *testing.T) {
	a, err := animal.New(&animal.CreateRequest{Kind: animal.KindBird, Name: "Tweety", CanFly: true, CanBark: true})
	if err != nil {
		t.Fatal(err)
	}
	if a.Kind() != animal.KindBird || !slices.Equal(a.AvailableActions(), []string{"fly"}) {
		t.Fatalf("unexpected animal: %+v", a.Status())
	}

	if _, err := animal.New(&animal.CreateRequest{Kind: animal.KindDog}); !errors.Is(err, domain.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := animal.New(&animal.CreateRequest{Kind: "Cow", Name: "Bessie"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestConcurrentMutationIsSerialized(t *testing.T) {
	d := animal.NewDog("Rex", true, true)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.SetHungry(i%2 == 0)
			_ = d.Eat()
			_ = d.Status()
		}()
	}
	wg.Wait()
}
