package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // event time zones must resolve in minimal containers

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Sheets        SheetsConfig
	Mail          MailConfig
	Event         EventConfig
	RateLimit     RateLimitConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
	AppEnv  string
}

type SheetsConfig struct {
	WebhookURL     string
	TimeoutSeconds int
}

type MailConfig struct {
	Host            string
	Port            int
	Username        string // Also used as the sender address
	Password        string
	AdminEmail      string // Optional: falls back to Username
	SenderName      string
	AdminSenderName string
}

type EventConfig struct {
	Organization string
	Name         string
	ShortName    string
	Date         string
	Time         string
	Venue        string
	ContactEmail string
	TimeZone     string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	AlloyEndpoint     string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("SHEETS_WEBHOOK_TIMEOUT_SECONDS", 30)
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("EMAIL_SENDER_NAME", "Apex Advisory Solutions")
	v.SetDefault("EMAIL_ADMIN_SENDER_NAME", "RSVP System")
	v.SetDefault("EVENT_ORGANIZATION", "Apex Advisory Solutions")
	v.SetDefault("EVENT_NAME", "Apex Advisory Solutions Launch & Networking Event")
	v.SetDefault("EVENT_SHORT_NAME", "Apex Advisory Launch")
	v.SetDefault("EVENT_DATE", "March 6, 2026 (Thursday)")
	v.SetDefault("EVENT_TIME", "08:00 AM - 05:00 PM")
	v.SetDefault("EVENT_VENUE", "To be announced (Durban, KwaZulu-Natal)")
	v.SetDefault("EVENT_CONTACT_EMAIL", "info.apexadvisorysolutions@gmail.com")
	v.SetDefault("EVENT_TIMEZONE", "Africa/Johannesburg")
	v.SetDefault("RSVP_RATE_LIMIT_RPS", 2)
	v.SetDefault("RSVP_RATE_LIMIT_BURST", 5)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "") // OTLP over HTTP, tracing disabled when empty
	v.SetDefault("O11Y_BE_SERVICE_NAME", "rsvp-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "apex-advisory")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "rsvp-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:    v.GetString("PORT"),
			GinMode: v.GetString("GIN_MODE"),
			AppEnv:  v.GetString("APP_ENV"),
		},
		Sheets: SheetsConfig{
			WebhookURL:     strings.TrimSpace(v.GetString("GOOGLE_SHEETS_WEBHOOK_URL")),
			TimeoutSeconds: v.GetInt("SHEETS_WEBHOOK_TIMEOUT_SECONDS"),
		},
		Mail: MailConfig{
			Host:            v.GetString("SMTP_HOST"),
			Port:            v.GetInt("SMTP_PORT"),
			Username:        v.GetString("EMAIL_USER"),
			Password:        v.GetString("EMAIL_PASS"),
			AdminEmail:      v.GetString("ADMIN_EMAIL"),
			SenderName:      v.GetString("EMAIL_SENDER_NAME"),
			AdminSenderName: v.GetString("EMAIL_ADMIN_SENDER_NAME"),
		},
		Event: EventConfig{
			Organization: v.GetString("EVENT_ORGANIZATION"),
			Name:         v.GetString("EVENT_NAME"),
			ShortName:    v.GetString("EVENT_SHORT_NAME"),
			Date:         v.GetString("EVENT_DATE"),
			Time:         v.GetString("EVENT_TIME"),
			Venue:        v.GetString("EVENT_VENUE"),
			ContactEmail: v.GetString("EVENT_CONTACT_EMAIL"),
			TimeZone:     v.GetString("EVENT_TIMEZONE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RSVP_RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RSVP_RATE_LIMIT_BURST"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			AlloyEndpoint:     v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	// Mail relay credentials
	if c.Mail.Username == "" {
		return fmt.Errorf("EMAIL_USER is required")
	}
	if c.Mail.Password == "" {
		return fmt.Errorf("EMAIL_PASS is required")
	}
	if c.Mail.Host == "" {
		return fmt.Errorf("SMTP_HOST is required")
	}
	if c.Mail.Port <= 0 {
		return fmt.Errorf("SMTP_PORT must be positive")
	}

	// Server configuration
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if _, err := c.Event.Location(); err != nil {
		return fmt.Errorf("EVENT_TIMEZONE is invalid: %w", err)
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// Timeout returns the storage webhook transport timeout
func (s SheetsConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Location loads the event time zone, defaulting to UTC when unset
func (e EventConfig) Location() (*time.Location, error) {
	if e.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(e.TimeZone)
}
