package config

// Package config provides structures and utilities for managing service configuration.

// EmbeddedConfig holds the content of the configuration file, typically passed from main.go.
type EmbeddedConfig []byte

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the logging level (e.g. "INFO", "DEBUG").
	Level string `yaml:"level"`
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	// Timezone is the service timezone. Collection timestamps are always
	// computed in UTC/KST regardless of this value; it only affects logs.
	Timezone string `yaml:"timezone"`
	// Logging is the logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port                int `yaml:"port"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
}

// AuthConfig holds the header-based authentication keys.
// When both keys are empty, authentication degrades to allow-all with a
// logged warning (development mode).
type AuthConfig struct {
	ClientAPIKey string `yaml:"client_api_key"`
	AdminSecret  string `yaml:"admin_secret"`
}

// RateLimitConfig holds the in-memory rate limiter defaults. Per-route
// overrides are applied in the API layer.
type RateLimitConfig struct {
	Limit         int `yaml:"limit"`
	WindowSeconds int `yaml:"window_seconds"`
}

// KMAConfig holds Korea Meteorological Administration endpoint settings.
type KMAConfig struct {
	// AuthKey is the apihub.kma.go.kr authKey query parameter. Required for
	// every KMA collector; a run fails immediately when it is empty.
	AuthKey string `yaml:"auth_key"`
	// HubBaseURL is the apihub base for sea observations and medium-term CSV endpoints.
	HubBaseURL string `yaml:"hub_base_url"`
	// ForecastBaseURL is the apihub short-term grid forecast base.
	ForecastBaseURL string `yaml:"forecast_base_url"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

// OpenWeatherConfig holds OpenWeatherMap settings.
type OpenWeatherConfig struct {
	APIKey         string `yaml:"api_key"`
	OneCallURL     string `yaml:"one_call_url"`
	ForecastURL    string `yaml:"forecast_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	BatchSize      int    `yaml:"batch_size"`
	BatchDelayMs   int    `yaml:"batch_delay_ms"`
	MaxAttempts    int    `yaml:"max_attempts"`
}

// WeatherAPIConfig holds WeatherAPI.com settings.
type WeatherAPIConfig struct {
	APIKey                 string `yaml:"api_key"`
	BaseURL                string `yaml:"base_url"`
	CurrentTimeoutSeconds  int    `yaml:"current_timeout_seconds"`
	ForecastTimeoutSeconds int    `yaml:"forecast_timeout_seconds"`
	ForecastDays           int    `yaml:"forecast_days"`
	IncludeAQI             bool   `yaml:"include_aqi"`
	BatchSize              int    `yaml:"batch_size"`
	BatchDelayMs           int    `yaml:"batch_delay_ms"`
	MaxAttempts            int    `yaml:"max_attempts"`
}

// ProvidersConfig groups the upstream provider settings.
type ProvidersConfig struct {
	KMA         KMAConfig         `yaml:"kma"`
	OpenWeather OpenWeatherConfig `yaml:"openweather"`
	WeatherAPI  WeatherAPIConfig  `yaml:"weatherapi"`
}

// CollectConfig holds collection pipeline tuning.
type CollectConfig struct {
	// ChunkSize is the default upsert chunk size.
	ChunkSize int `yaml:"chunk_size"`
	// ChunkDelayMs is the pause between sequential upsert chunks.
	ChunkDelayMs int `yaml:"chunk_delay_ms"`
	// GridBatchSize is the concurrency batch size for the KMA grid forecast collector.
	GridBatchSize int `yaml:"grid_batch_size"`
	// FailedLocationLogCap caps the failed-location list recorded in collection logs.
	FailedLocationLogCap int `yaml:"failed_location_log_cap"`
}

// CleanupConfig holds retention sweep settings.
type CleanupConfig struct {
	RetentionDays int `yaml:"retention_days"`
}

// ArchiveConfig holds parquet archive settings for the retention sweep.
// When Bucket is empty, archiving is skipped with a warning.
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bucket  string `yaml:"bucket"`
	Prefix  string `yaml:"prefix"`
}

// TracingConfig holds OpenTelemetry exporter settings.
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
	// Exporter is "grpc" or "http".
	Exporter string `yaml:"exporter"`
	Endpoint string `yaml:"endpoint"`
}

// MetricsConfig holds the optional OTLP export settings for the collection
// instruments. The Prometheus registry is always on; OTLP export is additive.
type MetricsConfig struct {
	OTLP OTLPExportConfig `yaml:"otlp"`
}

// OTLPExportConfig selects the metric exporter, mirroring TracingConfig.
type OTLPExportConfig struct {
	Enabled bool `yaml:"enabled"`
	// Exporter is "grpc" or "http".
	Exporter        string `yaml:"exporter"`
	Endpoint        string `yaml:"endpoint"`
	IntervalSeconds int    `yaml:"interval_seconds"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxOpenConns           int `yaml:"max_open_conns"`
	MaxIdleConns           int `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Type     string     `yaml:"type"`
	Host     string     `yaml:"host"`
	Port     int        `yaml:"port"`
	Database string     `yaml:"database"`
	User     string     `yaml:"user"`
	Password string     `yaml:"password"`
	Sslmode  string     `yaml:"sslmode"`
	Pool     PoolConfig `yaml:"pool"`
}

// TidecastConfig holds all configuration under the "tidecast" top-level key.
type TidecastConfig struct {
	System    SystemConfig    `yaml:"system"`
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Providers ProvidersConfig `yaml:"providers"`
	Collect   CollectConfig   `yaml:"collect"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Database  DatabaseConfig  `yaml:"database"`
}

// Config is the root structure for the entire service configuration.
type Config struct {
	Tidecast TidecastConfig `yaml:"tidecast"`
	// EmbeddedConfig holds configuration loaded from an embedded source, not from YAML.
	EmbeddedConfig EmbeddedConfig `yaml:"-"`
}

// NewConfig returns a new Config instance with default values.
func NewConfig() *Config {
	return &Config{
		Tidecast: TidecastConfig{
			System: SystemConfig{
				Timezone: "UTC",
				Logging:  LoggingConfig{Level: "INFO"},
			},
			Server: ServerConfig{
				Port:                8080,
				ReadTimeoutSeconds:  30,
				WriteTimeoutSeconds: 60,
			},
			RateLimit: RateLimitConfig{
				Limit:         100,
				WindowSeconds: 60,
			},
			Providers: ProvidersConfig{
				KMA: KMAConfig{
					HubBaseURL:      "https://apihub.kma.go.kr/api/typ01/url",
					ForecastBaseURL: "https://apihub.kma.go.kr/api/typ02/openApi/VilageFcstInfoService_2.0",
					TimeoutSeconds:  30,
				},
				OpenWeather: OpenWeatherConfig{
					OneCallURL:     "https://api.openweathermap.org/data/3.0/onecall",
					ForecastURL:    "https://api.openweathermap.org/data/2.5/forecast",
					TimeoutSeconds: 15,
					BatchSize:      5,
					BatchDelayMs:   100,
					MaxAttempts:    3,
				},
				WeatherAPI: WeatherAPIConfig{
					BaseURL:                "http://api.weatherapi.com/v1",
					CurrentTimeoutSeconds:  15,
					ForecastTimeoutSeconds: 20,
					ForecastDays:           14,
					BatchSize:              10,
					BatchDelayMs:           500,
					MaxAttempts:            2,
				},
			},
			Collect: CollectConfig{
				ChunkSize:            500,
				ChunkDelayMs:         50,
				GridBatchSize:        20,
				FailedLocationLogCap: 10,
			},
			Cleanup: CleanupConfig{
				RetentionDays: 20,
			},
			Archive: ArchiveConfig{
				Prefix: "archive",
			},
			Tracing: TracingConfig{
				Exporter: "grpc",
			},
			Metrics: MetricsConfig{
				OTLP: OTLPExportConfig{
					Exporter:        "grpc",
					IntervalSeconds: 60,
				},
			},
			Database: DatabaseConfig{
				Type:    "postgres",
				Sslmode: "disable",
				Pool: PoolConfig{
					MaxOpenConns: 10,
					MaxIdleConns: 5,
				},
			},
		},
	}
}
