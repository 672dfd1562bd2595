package otel

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "animalfarm"

// Metrics holds the farm's metric instruments.
type Metrics struct {
	AnimalsCreated    metric.Int64Counter
	AnimalsDeleted    metric.Int64Counter
	Operations        metric.Int64Counter
	OperationDuration metric.Float64Histogram
	EventsPublished   metric.Int64Counter
	EventsDropped     metric.Int64Counter
}

// NewMetrics creates the instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.AnimalsCreated, err = meter.Int64Counter("animalfarm.animals.created",
		metric.WithDescription("Number of animals created, by type"))
	if err != nil {
		return nil, err
	}

	m.AnimalsDeleted, err = meter.Int64Counter("animalfarm.animals.deleted",
		metric.WithDescription("Number of animals removed"))
	if err != nil {
		return nil, err
	}

	m.Operations, err = meter.Int64Counter("animalfarm.operations",
		metric.WithDescription("Animal operations, by name and outcome"))
	if err != nil {
		return nil, err
	}

	m.OperationDuration, err = meter.Float64Histogram("animalfarm.operation.duration_seconds",
		metric.WithDescription("Animal operation latency in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	m.EventsPublished, err = meter.Int64Counter("animalfarm.events.published",
		metric.WithDescription("Events published to the message queue"))
	if err != nil {
		return nil, err
	}

	m.EventsDropped, err = meter.Int64Counter("animalfarm.events.dropped",
		metric.WithDescription("Events not published because the queue failed or the breaker was open"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordOperation counts one operation and its latency. outcome is "ok" or
// the domain error kind.
func (m *Metrics) RecordOperation(ctx context.Context, op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	)
	m.Operations.Add(ctx, 1, attrs)
	m.OperationDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// ObserveFarm registers an observable gauge reporting animal counts by
// category. fn is called on each collection.
func ObserveFarm(fn func(ctx context.Context) (map[string]int64, error)) (metric.Registration, error) {
	meter := otel.Meter(meterName)
	gauge, err := meter.Int64ObservableGauge("animalfarm.animals",
		metric.WithDescription("Animals on the farm, by category"))
	if err != nil {
		return nil, err
	}
	return meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
		counts, err := fn(ctx)
		if err != nil {
			return err
		}
		for category, n := range counts {
			o.ObserveInt64(gauge, n, metric.WithAttributes(attribute.String("category", category)))
		}
		return nil
	}, gauge)
}
