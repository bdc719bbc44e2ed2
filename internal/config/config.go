package config

// Config holds runtime configuration for the server.
type Config struct {
	Port     string
	DataDir  string
	Autosave bool
	Metrics  MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:     envOrDefault(envPort, defaultPort),
		DataDir:  envOrDefault(envDataDir, defaultDataDir),
		Autosave: boolEnvOrDefault(envAutosave, defaultAutosave),
		Metrics:  loadMetrics(),
	}
}
