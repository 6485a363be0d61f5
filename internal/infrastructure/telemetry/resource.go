// Package telemetry wires OpenTelemetry tracing, metrics and logs plus
// Pyroscope continuous profiling for the storefront. Every provider degrades
// to a no-op when its feature is disabled, so callers never branch on config.
package telemetry

import (
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ServiceVersion is reported on every exported signal
const ServiceVersion = "1.0.0"

// ErrMeterNil is returned when a metrics bundle is built without a meter
var ErrMeterNil = errors.New("telemetry: meter is nil")

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
