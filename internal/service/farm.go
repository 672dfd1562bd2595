// Package service implements farm business logic on top of ports.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Strob0t/animalfarm/internal/adapter/otel"
	"github.com/Strob0t/animalfarm/internal/adapter/ws"
	"github.com/Strob0t/animalfarm/internal/domain"
	"github.com/Strob0t/animalfarm/internal/domain/animal"
	"github.com/Strob0t/animalfarm/internal/logger"
	"github.com/Strob0t/animalfarm/internal/port/broadcast"
	"github.com/Strob0t/animalfarm/internal/port/database"
	"github.com/Strob0t/animalfarm/internal/port/messagequeue"
	"github.com/Strob0t/animalfarm/internal/resilience"
)

const publishTimeout = 2 * time.Second

// Result is the outcome of an operation on one animal: the human-readable
// message and the status snapshot taken right after it.
type Result struct {
	Message string        `json:"message"`
	Status  animal.Status `json:"status"`
}

// FarmService runs animal operations against the store and announces every
// successful change to live clients and, when configured, the event bus.
type FarmService struct {
	store     database.Store
	hub       broadcast.Broadcaster
	queue     messagequeue.Queue
	breaker   *resilience.Breaker
	metrics   *otel.Metrics
	startedAt time.Time
	now       func() time.Time
}

// NewFarmService creates a FarmService. hub may be nil.
func NewFarmService(store database.Store, hub broadcast.Broadcaster) *FarmService {
	if hub == nil {
		hub = broadcast.Nop{}
	}
	return &FarmService{store: store, hub: hub, startedAt: time.Now(), now: time.Now}
}

// SetQueue enables event publishing. Publishes run through b so an
// unreachable bus cannot slow every request down.
func (s *FarmService) SetQueue(q messagequeue.Queue, b *resilience.Breaker) {
	s.queue = q
	s.breaker = b
}

// SetMetrics enables OTel operation metrics.
func (s *FarmService) SetMetrics(m *otel.Metrics) {
	s.metrics = m
}

// Create adds a new animal and returns the creation message with its status.
func (s *FarmService) Create(ctx context.Context, req *animal.CreateRequest) (*Result, error) {
	log := logger.From(ctx)
	start := s.now()

	a, err := s.store.CreateAnimal(ctx, req)
	s.metrics.RecordOperation(ctx, "create", outcome(err), s.now().Sub(start))
	if err != nil {
		log.Warn(fmt.Sprintf("%s creation failed", req.Kind), "name", req.Name, "error", err)
		return nil, err
	}

	msg := fmt.Sprintf("%s '%s' created successfully!", a.Kind(), a.Name())
	st := a.Status()
	log.Info(fmt.Sprintf("%s created: %s", a.Kind(), a.Name()), "capabilities", a.AvailableActions())

	if s.metrics != nil {
		s.metrics.AnimalsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("type", string(a.Kind()))))
	}
	s.emit(ctx, ws.EventAnimalCreated, messagequeue.SubjectAnimalCreated, "create", a.Name(), msg, &st)
	return &Result{Message: msg, Status: st}, nil
}

// Get returns the status of one animal.
func (s *FarmService) Get(ctx context.Context, name string) (animal.Status, error) {
	a, err := s.store.GetAnimal(ctx, name)
	if err != nil {
		return animal.Status{}, err
	}
	return a.Status(), nil
}

// List returns the status of every animal in insertion order.
func (s *FarmService) List(ctx context.Context) ([]animal.Status, error) {
	animals, err := s.store.ListAnimals(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]animal.Status, 0, len(animals))
	for _, a := range animals {
		out = append(out, a.Status())
	}
	return out, nil
}

// Count returns the number of animals on the farm.
func (s *FarmService) Count(ctx context.Context) (int, error) {
	return s.store.CountAnimals(ctx)
}

// Delete removes an animal and returns the removal message.
func (s *FarmService) Delete(ctx context.Context, name string) (string, error) {
	start := s.now()
	err := s.store.DeleteAnimal(ctx, name)
	s.metrics.RecordOperation(ctx, "delete", outcome(err), s.now().Sub(start))
	if err != nil {
		return "", err
	}

	msg := fmt.Sprintf("%s has been removed from the farm.", name)
	logger.From(ctx).Info("animal removed", "name", name)
	if s.metrics != nil {
		s.metrics.AnimalsDeleted.Add(ctx, 1)
	}
	s.emit(ctx, ws.EventAnimalDeleted, messagequeue.SubjectAnimalDeleted, "delete", name, msg, nil)
	return msg, nil
}

// Eat feeds the animal. Feeding an animal that is not hungry is not an error.
func (s *FarmService) Eat(ctx context.Context, name string) (*Result, error) {
	return s.apply(ctx, "eat", name, updated, func(a animal.Animal) (string, error) {
		return a.Eat(), nil
	})
}

// Sleep rests the animal. Resting an animal that is not sleepy is not an error.
func (s *FarmService) Sleep(ctx context.Context, name string) (*Result, error) {
	return s.apply(ctx, "sleep", name, updated, func(a animal.Animal) (string, error) {
		return a.Sleep(), nil
	})
}

func (s *FarmService) SetHungry(ctx context.Context, name string, hungry bool) (*Result, error) {
	return s.apply(ctx, "set_hungry", name, updated, func(a animal.Animal) (string, error) {
		return a.SetHungry(hungry), nil
	})
}

func (s *FarmService) SetSleepy(ctx context.Context, name string, sleepy bool) (*Result, error) {
	return s.apply(ctx, "set_sleepy", name, updated, func(a animal.Animal) (string, error) {
		return a.SetSleepy(sleepy), nil
	})
}

// SetDuty assigns a duty. An empty duty is rejected after the animal lookup,
// so an unknown name still reports not found.
func (s *FarmService) SetDuty(ctx context.Context, name, duty string) (*Result, error) {
	return s.apply(ctx, "set_duty", name, updated, func(a animal.Animal) (string, error) {
		if duty == "" {
			return "", domain.Errorf(domain.KindValidation, "duty is required")
		}
		return a.SetDuty(duty), nil
	})
}

func (s *FarmService) PerformDuty(ctx context.Context, name string) (*Result, error) {
	return s.apply(ctx, "perform_duty", name, performed, animal.Animal.PerformDuty)
}

// SetAction selects one of the animal's available actions.
func (s *FarmService) SetAction(ctx context.Context, name, action string) (*Result, error) {
	return s.apply(ctx, "set_action", name, updated, func(a animal.Animal) (string, error) {
		if action == "" {
			return "", domain.Errorf(domain.KindValidation, "action is required")
		}
		return a.SetAction(action)
	})
}

func (s *FarmService) PerformAction(ctx context.Context, name string) (*Result, error) {
	return s.apply(ctx, "perform_action", name, performed, animal.Animal.PerformAction)
}

type eventClass int

const (
	updated eventClass = iota
	performed
)

// apply looks up name, runs fn and, on success, snapshots the animal and
// emits an event of the given class.
func (s *FarmService) apply(ctx context.Context, op, name string, class eventClass, fn func(animal.Animal) (string, error)) (*Result, error) {
	ctx, span := otel.StartOperationSpan(ctx, op, name)
	start := s.now()

	var msg string
	a, err := s.store.GetAnimal(ctx, name)
	if err == nil {
		msg, err = fn(a)
	}

	s.metrics.RecordOperation(ctx, op, outcome(err), s.now().Sub(start))
	otel.EndSpan(span, err)

	if err != nil {
		logger.From(ctx).Debug("operation rejected", "operation", op, "name", name, "error", err)
		return nil, err
	}

	st := a.Status()
	logger.From(ctx).Info(msg, "operation", op, "name", name)

	wsType, subject := ws.EventAnimalUpdated, messagequeue.SubjectAnimalUpdated
	if class == performed {
		wsType, subject = ws.EventAnimalAction, messagequeue.SubjectAnimalAction
	}
	s.emit(ctx, wsType, subject, op, name, msg, &st)
	return &Result{Message: msg, Status: st}, nil
}

// emit pushes the event to live clients and publishes it to the bus.
// Publish failures are logged and counted, never returned.
func (s *FarmService) emit(ctx context.Context, wsType, subject, op, name, msg string, st *animal.Status) {
	s.hub.BroadcastEvent(ctx, wsType, ws.AnimalEvent{
		Animal:    name,
		Operation: op,
		Message:   msg,
		Status:    st,
	})

	if s.queue == nil {
		return
	}

	ev := messagequeue.NewAnimalEvent(name, op, msg, st)
	ev.RequestID = logger.RequestID(ctx)
	data, err := json.Marshal(ev)
	if err != nil {
		logger.From(ctx).Error("marshal animal event", "subject", subject, "error", err)
		return
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	pctx, span := otel.StartPublishSpan(pctx, subject)

	publish := func(ctx context.Context) error { return s.queue.Publish(ctx, subject, data) }
	if s.breaker != nil {
		err = s.breaker.Execute(pctx, publish)
	} else {
		err = publish(pctx)
	}
	otel.EndSpan(span, err)

	switch {
	case err == nil:
		if s.metrics != nil {
			s.metrics.EventsPublished.Add(ctx, 1)
		}
	case errors.Is(err, resilience.ErrCircuitOpen):
		logger.From(ctx).Debug("event dropped, breaker open", "subject", subject, "id", ev.ID)
		s.dropped(ctx)
	default:
		logger.From(ctx).Warn("event publish failed", "subject", subject, "id", ev.ID, "error", err)
		s.dropped(ctx)
	}
}

func (s *FarmService) dropped(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.EventsDropped.Add(ctx, 1)
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k := domain.KindOf(err); k != "" {
		return string(k)
	}
	return "error"
}
