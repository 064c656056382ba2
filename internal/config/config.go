package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Email     EmailConfig     `yaml:"email"`
	Log       LogConfig       `yaml:"log"`
	Policy    PolicyConfig    `yaml:"policy"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains access token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// EmailConfig contains SendGrid settings for loan notifications
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// PolicyConfig contains the borrowing policy knobs
type PolicyConfig struct {
	FinePerDay      string `yaml:"fine_per_day"` // currency per day, e.g. "0.50"
	GracePeriodDays int32  `yaml:"grace_period_days"`
	MaxBooksPerUser int32  `yaml:"max_books_per_user"`
	ItemsPerPage    int32  `yaml:"items_per_page"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	FineSweep        string `yaml:"fine_sweep"`
	DueSoonReminders string `yaml:"due_soon_reminders"`
	OverdueNotices   string `yaml:"overdue_notices"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	// Policy
	if val := os.Getenv("FINE_PER_DAY"); val != "" {
		c.Policy.FinePerDay = val
	}
	if val := os.Getenv("GRACE_PERIOD_DAYS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Policy.GracePeriodDays)
	}
	if val := os.Getenv("MAX_BOOKS_PER_USER"); val != "" {
		fmt.Sscanf(val, "%d", &c.Policy.MaxBooksPerUser)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks the configuration and fills policy and scheduler defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 1440 // 24 hours
	}

	// Policy defaults
	if c.Policy.FinePerDay == "" {
		c.Policy.FinePerDay = "0.50"
	}
	if _, err := decimal.NewFromString(c.Policy.FinePerDay); err != nil {
		return fmt.Errorf("invalid fine_per_day %q: %w", c.Policy.FinePerDay, err)
	}
	if c.Policy.GracePeriodDays == 0 {
		c.Policy.GracePeriodDays = 3
	}
	if c.Policy.GracePeriodDays < 0 {
		return fmt.Errorf("grace_period_days must not be negative")
	}
	if c.Policy.MaxBooksPerUser == 0 {
		c.Policy.MaxBooksPerUser = 5
	}
	if c.Policy.MaxBooksPerUser < 1 {
		return fmt.Errorf("max_books_per_user must be at least 1")
	}
	if c.Policy.ItemsPerPage == 0 {
		c.Policy.ItemsPerPage = 20
	}

	// Scheduler defaults
	if c.Scheduler.FineSweep == "" {
		c.Scheduler.FineSweep = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.DueSoonReminders == "" {
		c.Scheduler.DueSoonReminders = "0 0 8 * * *" // 8 AM UTC
	}
	if c.Scheduler.OverdueNotices == "" {
		c.Scheduler.OverdueNotices = "0 0 9 * * *" // 9 AM UTC
	}

	return nil
}

// FinePerDay returns the configured per-day fine as a decimal. Validate
// guarantees the stored string parses.
func (c *Config) FinePerDay() decimal.Decimal {
	d, _ := decimal.NewFromString(c.Policy.FinePerDay)
	return d
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
