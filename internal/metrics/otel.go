package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

var (
	promReaderFactory = prometheusComponents
	otlpReaderFactory = buildOTLPReader
	instrumentFactory = newOtelInstruments
)

// TelemetryConfig controls how metrics are exported.
type TelemetryConfig struct {
	Enabled      bool
	Port         string
	ServiceName  string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Setup configures OpenTelemetry metrics with a Prometheus exporter and optional OTLP exporter.
// It returns a Recorder, the Prometheus HTTP handler, and a shutdown function.
func Setup(ctx context.Context, cfg TelemetryConfig) (*Recorder, http.Handler, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewRecorder(), nil, func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "flagstat-service"
	}

	promReader, promHandler, err := promReaderFactory()
	if err != nil {
		return nil, nil, nil, err
	}

	opts := []sdkmetric.Option{sdkmetric.WithReader(promReader)}

	if cfg.OtlpEndpoint != "" {
		otlpReader, err := otlpReaderFactory(ctx, cfg.OtlpEndpoint, cfg.OtlpInsecure)
		if err != nil {
			return nil, nil, nil, err
		}
		opts = append(opts, sdkmetric.WithReader(otlpReader))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	opts = append(opts, sdkmetric.WithResource(res))

	provider := sdkmetric.NewMeterProvider(opts...)

	otelInst, err := instrumentFactory(provider)
	if err != nil {
		return nil, nil, nil, err
	}

	rec := newRecorder(otelInst)
	shutdown := func(c context.Context) error {
		return provider.Shutdown(c)
	}

	return rec, promHandler, shutdown, nil
}

func buildOTLPReader(ctx context.Context, endpoint string, insecure bool) (sdkmetric.Reader, error) {
	otlpOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(endpoint)}
	if insecure {
		otlpOpts = append(otlpOpts, otlpmetrichttp.WithInsecure())
	}
	otlpExp, err := otlpmetrichttp.New(ctx, otlpOpts...)
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewPeriodicReader(otlpExp, sdkmetric.WithInterval(15*time.Second)), nil
}

func prometheusComponents() (sdkmetric.Reader, http.Handler, error) {
	reg := prometheus.NewRegistry()
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, nil, err
	}
	return promExp, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), nil
}

type otelInstruments struct {
	ctx               context.Context
	meter             metric.Meter
	requests          metric.Int64Counter
	requestLatencyMs  metric.Float64Histogram
	mutations         metric.Int64Counter
	aggregationRuns   metric.Int64Counter
	aggregationMs     metric.Float64Histogram
	aggregationEvents metric.Int64Histogram
	persistWrites     metric.Int64Counter
	persistErrors     metric.Int64Counter
	persistMs         metric.Float64Histogram
	liveBroadcasts    metric.Int64Counter
}

func newOtelInstruments(provider metric.MeterProvider) (*otelInstruments, error) {
	meter := provider.Meter("flagstat-service")
	ctx := context.Background()

	requests, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	requestLatency, err := meter.Float64Histogram("http_request_duration_ms")
	if err != nil {
		return nil, err
	}
	mutations, err := meter.Int64Counter("store_mutations_total")
	if err != nil {
		return nil, err
	}
	aggregationRuns, err := meter.Int64Counter("aggregation_runs_total")
	if err != nil {
		return nil, err
	}
	aggregationMs, err := meter.Float64Histogram("aggregation_duration_ms")
	if err != nil {
		return nil, err
	}
	aggregationEvents, err := meter.Int64Histogram("aggregation_event_count")
	if err != nil {
		return nil, err
	}
	persistWrites, err := meter.Int64Counter("persist_writes_total")
	if err != nil {
		return nil, err
	}
	persistErrors, err := meter.Int64Counter("persist_errors_total")
	if err != nil {
		return nil, err
	}
	persistMs, err := meter.Float64Histogram("persist_duration_ms")
	if err != nil {
		return nil, err
	}
	liveBroadcasts, err := meter.Int64Counter("live_broadcasts_total")
	if err != nil {
		return nil, err
	}

	return &otelInstruments{
		ctx:               ctx,
		meter:             meter,
		requests:          requests,
		requestLatencyMs:  requestLatency,
		mutations:         mutations,
		aggregationRuns:   aggregationRuns,
		aggregationMs:     aggregationMs,
		aggregationEvents: aggregationEvents,
		persistWrites:     persistWrites,
		persistErrors:     persistErrors,
		persistMs:         persistMs,
		liveBroadcasts:    liveBroadcasts,
	}, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.recordCounter(o.requests, 1, attrs...)
	o.recordHistogram(o.requestLatencyMs, float64(duration.Milliseconds()), attrs...)
}

func (o *otelInstruments) recordMutation(action string) {
	if o == nil {
		return
	}
	o.recordCounter(o.mutations, 1, attribute.String(AttrAction, action))
}

func (o *otelInstruments) recordAggregation(duration time.Duration, eventCount int) {
	if o == nil {
		return
	}
	o.recordCounter(o.aggregationRuns, 1)
	o.recordHistogram(o.aggregationMs, float64(duration.Milliseconds()))
	o.aggregationEvents.Record(o.ctx, int64(eventCount))
}

func (o *otelInstruments) recordPersist(duration time.Duration, err error) {
	if o == nil {
		return
	}
	o.recordCounter(o.persistWrites, 1)
	o.recordHistogram(o.persistMs, float64(duration.Milliseconds()))
	if err != nil {
		o.recordCounter(o.persistErrors, 1)
	}
}

func (o *otelInstruments) recordLiveBroadcast() {
	if o == nil {
		return
	}
	o.recordCounter(o.liveBroadcasts, 1)
}

func (o *otelInstruments) recordCounter(counter metric.Int64Counter, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	counter.Add(o.ctx, value, metric.WithAttributes(attrs...))
}

func (o *otelInstruments) recordHistogram(hist metric.Float64Histogram, value float64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	hist.Record(o.ctx, value, metric.WithAttributes(attrs...))
}
