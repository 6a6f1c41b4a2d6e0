package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the kiosk service
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Redis configuration (durable kiosk settings)
	Redis RedisConfig

	// Upstream museum/ticketing API
	Upstream UpstreamConfig

	// Kiosk behavior
	Kiosk KioskConfig

	// JWT configuration (operator routes)
	JWT JWTConfig

	// Operator provisioning
	Operator OperatorConfig

	// Email relay
	Email EmailConfig

	// Native wrapper bridge
	Bridge BridgeConfig

	// Logging
	LogLevel string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
}

// UpstreamConfig holds the external museum/ticket-issuing API configuration
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// KioskConfig holds kiosk defaults and timing behavior
type KioskConfig struct {
	DefaultMuseumID    string
	DefaultTicketPrice float64
	CheckInBaseURL     string
	IdleCountdownStart int
	IdleTickInterval   time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// OperatorConfig holds the operator provisioning configuration
type OperatorConfig struct {
	PIN string
}

// EmailConfig holds email relay configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	RelayURL     string
	QRImageBase  string
}

// BridgeConfig holds native wrapper notification configuration.
/// Channels are probed in order: socket, Kafka, webhook.
type BridgeConfig struct {
	SocketPath   string
	KafkaBrokers []string
	PaymentTopic string
	WebhookURL   string
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},

		// Upstream API
		Upstream: UpstreamConfig{
			BaseURL: getEnv("UPSTREAM_BASE_URL", "https://xejn-1dw8-r0nq.f2.xano.io/api:B_gGZXzt"),
			Timeout: getDurationEnv("UPSTREAM_TIMEOUT", 10*time.Second),
		},

		// Kiosk behavior
		Kiosk: KioskConfig{
			DefaultMuseumID:    getEnv("KIOSK_DEFAULT_MUSEUM_ID", "467"),
			DefaultTicketPrice: getFloatEnv("KIOSK_DEFAULT_TICKET_PRICE", 5),
			CheckInBaseURL:     getEnv("KIOSK_CHECKIN_BASE_URL", "https://web.amuseapp.art/"),
			IdleCountdownStart: getIntEnv("KIOSK_IDLE_COUNTDOWN_START", 20),
			IdleTickInterval:   getDurationEnv("KIOSK_IDLE_TICK_INTERVAL", time.Second),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:    getEnv("JWT_SECRET", "kiosk-operator-secret"),
			ExpiresIn: getDurationEnv("JWT_EXPIRES_IN", 12*time.Hour),
		},

		// Operator provisioning
		Operator: OperatorConfig{
			PIN: getEnv("OPERATOR_PIN", "0000"),
		},

		// Email relay
		Email: EmailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getIntEnv("SMTP_PORT", 587),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			FromEmail:    getEnv("FROM_EMAIL", "em156@amuseapp.it"),
			FromName:     getEnv("SMTP_FROM_NAME", "AmuseApp"),
			RelayURL:     getEnv("EMAIL_RELAY_URL", ""),
			QRImageBase:  getEnv("QR_IMAGE_BASE_URL", "https://api.qrserver.com/v1/create-qr-code/"),
		},

		// Native wrapper bridge
		Bridge: BridgeConfig{
			SocketPath:   getEnv("BRIDGE_SOCKET_PATH", ""),
			KafkaBrokers: getStringSliceEnv("BRIDGE_KAFKA_BROKERS", []string{}),
			PaymentTopic: getEnv("BRIDGE_PAYMENT_TOPIC", "kiosk-payments"),
			WebhookURL:   getEnv("BRIDGE_WEBHOOK_URL", ""),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port
	if cfg.Email.RelayURL == "" {
		cfg.Email.RelayURL = "http://localhost:" + cfg.Port + cfg.GetAPIBasePath() + "/send-email"
	}

	return cfg
}

// GetServerAddress returns the address the HTTP server binds to
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the versioned API prefix, e.g. /api/v1
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}

// IsDevelopment reports whether the service runs in gin debug mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated environment variable with a fallback value
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}
