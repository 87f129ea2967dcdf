package api

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/bluebite-kiosk/internal/domain/session"
)

// Checkout outcomes recorded on the checkouts counter.
const (
	resultPlaced = "placed"
	resultFailed = "failed"
	resultEmpty  = "empty"
	resultBusy   = "busy"
)

type metrics struct {
	sessions  metric.Int64Counter
	checkouts metric.Int64Counter
}

func newMetrics(meter metric.Meter, store *session.Store) (*metrics, error) {
	sessions, err := meter.Int64Counter("kiosk.sessions.created",
		metric.WithDescription("Ordering sessions opened"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "sessions counter")
	}

	checkouts, err := meter.Int64Counter("kiosk.checkouts",
		metric.WithDescription("Checkout attempts by result"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "checkouts counter")
	}

	if _, err := meter.Int64ObservableGauge("kiosk.sessions.active",
		metric.WithDescription("Open ordering sessions"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(store.Len()))
			return nil
		}),
	); err != nil {
		return nil, errors.Wrap(err, "active sessions gauge")
	}

	return &metrics{sessions: sessions, checkouts: checkouts}, nil
}

func (m *metrics) sessionCreated(ctx context.Context) {
	m.sessions.Add(ctx, 1)
}

func (m *metrics) checkout(ctx context.Context, result string) {
	m.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
