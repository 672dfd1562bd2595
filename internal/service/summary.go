package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Strob0t/animalfarm/internal/domain/animal"
)

// Summary counts animals by type and condition.
type Summary struct {
	TotalAnimals       int `json:"totalAnimals"`
	Birds              int `json:"birds"`
	Dogs               int `json:"dogs"`
	HungryAnimals      int `json:"hungryAnimals"`
	SleepyAnimals      int `json:"sleepyAnimals"`
	AnimalsWithDuties  int `json:"animalsWithDuties"`
	AnimalsWithActions int `json:"animalsWithActions"`
}

// Summary walks the farm once and tallies each animal's snapshot.
func (s *FarmService) Summary(ctx context.Context) (Summary, error) {
	animals, err := s.store.ListAnimals(ctx)
	if err != nil {
		return Summary{}, err
	}

	var sum Summary
	for _, a := range animals {
		st := a.Status()
		sum.TotalAnimals++
		switch st.Type {
		case animal.KindBird:
			sum.Birds++
		case animal.KindDog:
			sum.Dogs++
		}
		if st.IsHungry {
			sum.HungryAnimals++
		}
		if st.IsSleepy {
			sum.SleepyAnimals++
		}
		if st.CurrentDuty != nil {
			sum.AnimalsWithDuties++
		}
		if st.CurrentAction != nil {
			sum.AnimalsWithActions++
		}
	}
	return sum, nil
}

// Gauges flattens the summary for the OTel observable gauge callback.
func (s *FarmService) Gauges(ctx context.Context) (map[string]int64, error) {
	sum, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]int64{
		"total":       int64(sum.TotalAnimals),
		"bird":        int64(sum.Birds),
		"dog":         int64(sum.Dogs),
		"hungry":      int64(sum.HungryAnimals),
		"sleepy":      int64(sum.SleepyAnimals),
		"with_duty":   int64(sum.AnimalsWithDuties),
		"with_action": int64(sum.AnimalsWithActions),
	}, nil
}

// Health reports liveness information.
type Health struct {
	Status       string `json:"status"`
	Uptime       string `json:"uptime"`
	Timestamp    string `json:"timestamp"`
	AnimalsCount int    `json:"animalsCount"`
	Events       string `json:"events,omitempty"`
	Breaker      string `json:"breaker,omitempty"`
}

// Health returns uptime in whole seconds and the animal count. Event bus
// fields appear only when a queue is configured.
func (s *FarmService) Health(ctx context.Context) (Health, error) {
	n, err := s.store.CountAnimals(ctx)
	if err != nil {
		return Health{}, err
	}
	now := s.now()
	h := Health{
		Status:       "healthy",
		Uptime:       fmt.Sprintf("%ds", int64(now.Sub(s.startedAt)/time.Second)),
		Timestamp:    now.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		AnimalsCount: n,
	}
	if s.queue != nil {
		h.Events = "disconnected"
		if s.queue.IsConnected() {
			h.Events = "connected"
		}
	}
	if s.breaker != nil {
		h.Breaker = s.breaker.State().String()
	}
	return h, nil
}
