// Package telemetry exposes OpenTelemetry metrics through a prometheus
// exporter and records HTTP and article write measurements.
package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// NewProvider registers a prometheus backed meter provider as the global
// one. The returned handler serves the scrape endpoint.
func NewProvider() (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return provider, promhttp.Handler(), nil
}

type Metrics struct {
	completed metric.Int64Counter
	writes    metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	completed, err := meter.Int64Counter(
		"http.server.completed_requests",
		metric.WithDescription("Count of completed requests, by HTTP method, route and response status"),
	)
	if err != nil {
		return nil, err
	}

	writes, err := meter.Int64Counter(
		"articles.writes",
		metric.WithDescription("Count of article writes, by action and outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{completed: completed, writes: writes}, nil
}

// Middleware counts every completed request. The route label is the chi
// route pattern so ids do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.completed.Add(r.Context(), 1, metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", route),
			attribute.String("status", strconv.Itoa(status)),
		))
	})
}

// Write records one create, update or destroy and whether it succeeded.
func (m *Metrics) Write(ctx context.Context, action, outcome string) {
	m.writes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", outcome),
	))
}
