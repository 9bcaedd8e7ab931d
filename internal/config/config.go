package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Remote    RemoteConfig    `yaml:"remote"`
	Session   SessionConfig   `yaml:"session"`
	Ledger    LedgerConfig    `yaml:"ledger"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	Email     EmailConfig     `yaml:"email"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains dashboard HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RemoteConfig points at the CentsWise ledger service
type RemoteConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SessionConfig selects where the bearer token is persisted
type SessionConfig struct {
	Store     string `yaml:"store"`      // "file", "redis" or "memory"
	TokenFile string `yaml:"token_file"` // For file store
	RedisKey  string `yaml:"redis_key"`  // For redis store
}

// LedgerConfig tunes the in-memory ledger store
type LedgerConfig struct {
	SettleDelayMS int `yaml:"settle_delay_ms"`
	PageSize      int `yaml:"page_size"`
}

// DatabaseConfig contains PostgreSQL settings for the distribution journal.
// The journal is disabled when Host is empty.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RedisConfig contains redis connection settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// StorageConfig contains receipt archive settings
type StorageConfig struct {
	Type   string `yaml:"type"` // "local" or "s3"
	Dir    string `yaml:"dir"`  // For local storage
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
	Prefix string `yaml:"prefix"`
}

// EmailConfig contains SendGrid settings. Receipts are not mailed when
// APIKey is empty.
type EmailConfig struct {
	APIKey    string `yaml:"sendgrid_api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	RefreshLedger            string `yaml:"refresh_ledger"`
	MarkOverdueDistributions string `yaml:"mark_overdue_distributions"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Remote
	if val := os.Getenv("CENTSWISE_API_URL"); val != "" {
		c.Remote.BaseURL = val
	}
	if val := os.Getenv("CENTSWISE_API_TIMEOUT_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Remote.TimeoutSeconds)
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Session
	if val := os.Getenv("SESSION_STORE"); val != "" {
		c.Session.Store = val
	}
	if val := os.Getenv("SESSION_TOKEN_FILE"); val != "" {
		c.Session.TokenFile = val
	}

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

	// Redis
	if val := os.Getenv("REDIS_ADDR"); val != "" {
		c.Redis.Addr = val
	}
	if val := os.Getenv("REDIS_PASSWORD"); val != "" {
		c.Redis.Password = val
	}
	if val := os.Getenv("REDIS_DB"); val != "" {
		fmt.Sscanf(val, "%d", &c.Redis.DB)
	}

	// Storage
	if val := os.Getenv("STORAGE_TYPE"); val != "" {
		c.Storage.Type = val
	}
	if val := os.Getenv("RECEIPT_DIR"); val != "" {
		c.Storage.Dir = val
	}
	if val := os.Getenv("S3_BUCKET"); val != "" {
		c.Storage.Bucket = val
	}
	if val := os.Getenv("AWS_REGION"); val != "" {
		c.Storage.Region = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromEmail = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills in defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Remote validation
	if c.Remote.BaseURL == "" {
		return fmt.Errorf("remote base_url is required")
	}
	if u, err := url.Parse(c.Remote.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid remote base_url: %q", c.Remote.BaseURL)
	}
	if c.Remote.TimeoutSeconds == 0 {
		c.Remote.TimeoutSeconds = 15
	}

	// Session validation
	switch c.Session.Store {
	case "":
		c.Session.Store = "file"
	case "file", "redis", "memory":
	default:
		return fmt.Errorf("unknown session store: %q", c.Session.Store)
	}
	if c.Session.Store == "file" && c.Session.TokenFile == "" {
		c.Session.TokenFile = ".centswise/token"
	}
	if c.Session.Store == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis addr is required for the redis session store")
	}
	if c.Session.RedisKey == "" {
		c.Session.RedisKey = "centswise:session:token"
	}

	// Ledger defaults
	if c.Ledger.SettleDelayMS == 0 {
		c.Ledger.SettleDelayMS = 500
	}
	if c.Ledger.PageSize == 0 {
		c.Ledger.PageSize = 500
	}

	// Database validation, only when the journal is enabled
	if c.JournalEnabled() {
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.Port == 0 {
			c.Database.Port = 5432
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	}

	// Storage validation
	switch c.Storage.Type {
	case "":
		c.Storage.Type = "local"
	case "local", "s3":
	default:
		return fmt.Errorf("unknown storage type: %q", c.Storage.Type)
	}
	if c.Storage.Type == "local" && c.Storage.Dir == "" {
		c.Storage.Dir = "./receipts"
	}
	if c.Storage.Type == "s3" && c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket is required for s3 storage")
	}

	// Email validation
	if c.EmailEnabled() && c.Email.FromEmail == "" {
		return fmt.Errorf("email from_email is required when SendGrid is configured")
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "CentsWise"
	}

	// Scheduler defaults
	if c.Scheduler.RefreshLedger == "" {
		c.Scheduler.RefreshLedger = "0 */5 * * * *" // Every 5 minutes
	}
	if c.Scheduler.MarkOverdueDistributions == "" {
		c.Scheduler.MarkOverdueDistributions = "0 0 2 * * *" // 2 AM UTC
	}

	return nil
}

// JournalEnabled reports whether distributions are journaled to PostgreSQL
func (c *Config) JournalEnabled() bool {
	return c.Database.Host != ""
}

// EmailEnabled reports whether receipts can be e-mailed
func (c *Config) EmailEnabled() bool {
	return c.Email.APIKey != ""
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

// GetServerAddress returns the dashboard listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// RemoteTimeout returns the ledger service request timeout
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Remote.TimeoutSeconds) * time.Second
}

// SettleDelay returns the pause before post-write reconciliation
func (c *Config) SettleDelay() time.Duration {
	return time.Duration(c.Ledger.SettleDelayMS) * time.Millisecond
}
