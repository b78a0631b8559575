package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Payment      PaymentConfig
	Tokenization TokenizationConfig
	Email        EmailConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds the per-resource API keys checked by the auth
// middleware. Each resource group carries its own key.
type AuthConfig struct {
	CustomerAPIKey     string
	ProductAPIKey      string
	OrderAPIKey        string
	PaymentAPIKey      string
	TokenizationAPIKey string
	AuditAPIKey        string
}

// PaymentConfig drives the simulated payment gateway.
type PaymentConfig struct {
	ApprovalProbability float64
	MaxRetryAttempts    int
	RetryDelay          time.Duration
}

// TokenizationConfig drives the simulated tokenization provider.
type TokenizationConfig struct {
	RejectionProbability float64
}

// EmailConfig holds notification settings. When Enabled is false the
// sender short-circuits without contacting the SMTP host.
type EmailConfig struct {
	Enabled     bool
	FromAddress string
	FromName    string
	SMTPHost    string
	SMTPPort    int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "kartpay"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			CustomerAPIKey:     getEnv("CUSTOMER_API_KEY", ""),
			ProductAPIKey:      getEnv("PRODUCT_API_KEY", ""),
			OrderAPIKey:        getEnv("ORDER_API_KEY", ""),
			PaymentAPIKey:      getEnv("PAYMENT_API_KEY", ""),
			TokenizationAPIKey: getEnv("TOKENIZATION_API_KEY", ""),
			AuditAPIKey:        getEnv("AUDIT_API_KEY", ""),
		},
		Payment: PaymentConfig{
			ApprovalProbability: getEnvAsFloat("PAYMENT_APPROVAL_PROBABILITY", 0.7),
			MaxRetryAttempts:    getEnvAsInt("PAYMENT_MAX_RETRY_ATTEMPTS", 3),
			RetryDelay:          time.Duration(getEnvAsInt("PAYMENT_RETRY_DELAY_MILLIS", 1000)) * time.Millisecond,
		},
		Tokenization: TokenizationConfig{
			RejectionProbability: getEnvAsFloat("TOKENIZATION_REJECTION_PROBABILITY", 0.0),
		},
		Email: EmailConfig{
			Enabled:     getEnvAsBool("EMAIL_NOTIFICATION_ENABLED", true),
			FromAddress: getEnv("EMAIL_FROM_ADDRESS", "noreply@kartpay.local"),
			FromName:    getEnv("EMAIL_FROM_NAME", "KartPay"),
			SMTPHost:    getEnv("EMAIL_SMTP_HOST", "localhost"),
			SMTPPort:    getEnvAsInt("EMAIL_SMTP_PORT", 587),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	apiKeys := []struct {
		name  string
		value string
	}{
		{"CUSTOMER_API_KEY", c.Auth.CustomerAPIKey},
		{"PRODUCT_API_KEY", c.Auth.ProductAPIKey},
		{"ORDER_API_KEY", c.Auth.OrderAPIKey},
		{"PAYMENT_API_KEY", c.Auth.PaymentAPIKey},
		{"TOKENIZATION_API_KEY", c.Auth.TokenizationAPIKey},
		{"AUDIT_API_KEY", c.Auth.AuditAPIKey},
	}
	for _, k := range apiKeys {
		if k.value == "" {
			return fmt.Errorf("%s is required", k.name)
		}
	}

	if c.Payment.ApprovalProbability < 0 || c.Payment.ApprovalProbability > 1 {
		return fmt.Errorf("payment approval probability must be between 0 and 1, got %v", c.Payment.ApprovalProbability)
	}

	if c.Payment.MaxRetryAttempts < 1 {
		return fmt.Errorf("payment max retry attempts must be at least 1")
	}

	if c.Payment.RetryDelay < 0 {
		return fmt.Errorf("payment retry delay cannot be negative")
	}

	if c.Tokenization.RejectionProbability < 0 || c.Tokenization.RejectionProbability > 1 {
		return fmt.Errorf("tokenization rejection probability must be between 0 and 1, got %v", c.Tokenization.RejectionProbability)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
