package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CommerceMetrics instruments calls to the remote commerce API.
type CommerceMetrics struct {
	requests  *Counter
	fallbacks *Counter
	duration  *Histogram
}

// NewCommerceMetrics creates the commerce client instruments.
func NewCommerceMetrics(meter metric.Meter) (*CommerceMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	requests, err := NewCounter(meter,
		"storefront.commerce.requests",
		"Calls made to the commerce API",
		"{request}",
	)
	if err != nil {
		return nil, err
	}
	fallbacks, err := NewCounter(meter,
		"storefront.commerce.fallbacks",
		"Failed reads answered with static fallback data",
		"{response}",
	)
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "storefront.commerce.duration",
		Description: "Commerce API call latency",
		Unit:        "s",
		Boundaries:  RemoteCallBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &CommerceMetrics{requests: requests, fallbacks: fallbacks, duration: duration}, nil
}

// RecordCall records one remote call and its latency.
func (m *CommerceMetrics) RecordCall(ctx context.Context, operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrOperation.String(operation), AttrOutcome.String(outcome)}
	m.requests.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs...)
}

// RecordFallback records a read served from fallback data.
func (m *CommerceMetrics) RecordFallback(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.fallbacks.Inc(ctx, AttrOperation.String(operation))
}

// CartMetrics instruments the cart workflow.
type CartMetrics struct {
	reconciliations *Counter
	checkouts       *Counter
	unitCount       *Gauge
	activeViews     *Gauge
}

// NewCartMetrics creates the cart workflow instruments.
func NewCartMetrics(meter metric.Meter) (*CartMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	reconciliations, err := NewCounter(meter,
		"storefront.cart.reconciliations",
		"Cart reconciliations after a quantity change, by outcome",
		"{reconciliation}",
	)
	if err != nil {
		return nil, err
	}
	checkouts, err := NewCounter(meter,
		"storefront.cart.checkouts",
		"Order placement attempts, by outcome",
		"{checkout}",
	)
	if err != nil {
		return nil, err
	}
	unitCount, err := NewGauge(meter,
		"storefront.cart.unit_count",
		"Units in the server-held cart as last seen by the cart store",
		"{unit}",
	)
	if err != nil {
		return nil, err
	}
	activeViews, err := NewGauge(meter,
		"storefront.cart.active_views",
		"Live cart page instances",
		"{view}",
	)
	if err != nil {
		return nil, err
	}
	return &CartMetrics{
		reconciliations: reconciliations,
		checkouts:       checkouts,
		unitCount:       unitCount,
		activeViews:     activeViews,
	}, nil
}

// RecordReconciliation counts a reconciliation outcome for an action.
func (m *CartMetrics) RecordReconciliation(ctx context.Context, action, outcome string) {
	if m == nil {
		return
	}
	m.reconciliations.Inc(ctx, AttrAction.String(action), AttrOutcome.String(outcome))
}

// RecordCheckout counts an order placement outcome.
func (m *CartMetrics) RecordCheckout(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.checkouts.Inc(ctx, AttrOutcome.String(outcome))
}

// RecordUnitCount records the cart store's current count.
func (m *CartMetrics) RecordUnitCount(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.unitCount.Record(ctx, int64(n))
}

// RecordActiveViews records the number of live cart views.
func (m *CartMetrics) RecordActiveViews(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.activeViews.Record(ctx, int64(n))
}
