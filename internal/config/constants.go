package config

const (
	envPort         = "PORT"
	envDataDir      = "DATA_DIR"
	envAutosave     = "AUTOSAVE_ENABLED"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort        = "4000"
	defaultDataDir     = "data"
	defaultAutosave    = true
	defaultMetricsPort = "9090"
)
