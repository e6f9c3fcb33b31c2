package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName  = "trend-tracker"
	defaultServicePort  = 8095
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"
	defaultLoggingFmt   = "json"
	defaultDBHost       = "localhost"
	defaultDBPort       = 5432
	defaultDBName       = "trend_tracker"
	defaultDBUser       = "postgres"
	defaultDBSSLMode    = "disable"

	defaultFeedBaseURL = "http://hn.algolia.com/api/v1"
	defaultFeedSource  = "HackerNews"

	defaultFeedTimeoutS = 10
	defaultRunTimeoutS  = 30

	defaultTrendWindowH  = 24
	defaultTrendLimit    = 10
	defaultTrendMaxLimit = 100
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Database  DatabaseConfig  `yaml:"database"`
	Feed      FeedConfig      `yaml:"feed"`
	Collector CollectorConfig `yaml:"collector"`
	Trends    TrendsConfig    `yaml:"trends"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"TREND_TRACKER_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"          yaml:"debug"`
}

// DatabaseConfig holds PostgreSQL database configuration.
// URL, when set, takes precedence over the individual fields.
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL"                   yaml:"url"`
	Host     string `env:"POSTGRES_TREND_TRACKER_HOST"    yaml:"host"`
	Port     int    `env:"POSTGRES_TREND_TRACKER_PORT"    yaml:"port"`
	User     string `env:"POSTGRES_TREND_TRACKER_USER"    yaml:"user"`
	Password string `env:"POSTGRES_TREND_TRACKER_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_TREND_TRACKER_DB"      yaml:"database"`
	SSLMode  string `env:"POSTGRES_TREND_TRACKER_SSLMODE" yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// FeedConfig holds the upstream feed API configuration.
type FeedConfig struct {
	BaseURL string        `env:"FEED_BASE_URL" yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// CollectorConfig holds collection run configuration.
// Schedule is a standard 5-field cron expression; when empty the built-in
// scheduler stays off and collection runs only via the /collect endpoint.
type CollectorConfig struct {
	Source     string        `yaml:"source"`
	Schedule   string        `env:"COLLECT_SCHEDULE" yaml:"schedule"`
	RunTimeout time.Duration `yaml:"run_timeout"`
}

// TrendsConfig holds trend query defaults.
type TrendsConfig struct {
	DefaultWindow time.Duration `yaml:"default_window"`
	DefaultLimit  int           `yaml:"default_limit"`
	MaxLimit      int           `yaml:"max_limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults(path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setFeedDefaults(&cfg.Feed)
	setCollectorDefaults(&cfg.Collector)
	setTrendsDefaults(&cfg.Trends)
	setLoggingDefaults(&cfg.Logging)
}

// setServiceDefaults applies default values to ServiceConfig.
func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

// setDatabaseDefaults applies default values to DatabaseConfig.
func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Host == "" {
		db.Host = defaultDBHost
	}
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
}

// setFeedDefaults applies default values to FeedConfig.
func setFeedDefaults(feed *FeedConfig) {
	if feed.BaseURL == "" {
		feed.BaseURL = defaultFeedBaseURL
	}
	if feed.Timeout == 0 {
		feed.Timeout = defaultFeedTimeoutS * time.Second
	}
}

// setCollectorDefaults applies default values to CollectorConfig.
func setCollectorDefaults(col *CollectorConfig) {
	if col.Source == "" {
		col.Source = defaultFeedSource
	}
	if col.RunTimeout == 0 {
		col.RunTimeout = defaultRunTimeoutS * time.Second
	}
}

// setTrendsDefaults applies default values to TrendsConfig.
func setTrendsDefaults(tr *TrendsConfig) {
	if tr.DefaultWindow == 0 {
		tr.DefaultWindow = defaultTrendWindowH * time.Hour
	}
	if tr.DefaultLimit == 0 {
		tr.DefaultLimit = defaultTrendLimit
	}
	if tr.MaxLimit == 0 {
		tr.MaxLimit = defaultTrendMaxLimit
	}
}

// setLoggingDefaults applies default values to LoggingConfig.
func setLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = defaultLoggingLevel
	}
	if log.Format == "" {
		log.Format = defaultLoggingFmt
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := c.Database.validate(); err != nil {
		return err
	}
	if c.Feed.BaseURL == "" {
		return &ValidationError{Field: "feed.base_url", Message: "is required"}
	}
	if c.Trends.DefaultLimit < 1 {
		return &ValidationError{Field: "trends.default_limit", Message: "must be positive"}
	}
	if c.Trends.MaxLimit < c.Trends.DefaultLimit {
		return &ValidationError{Field: "trends.max_limit", Message: "must be >= trends.default_limit"}
	}
	if err := ValidateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// validate checks the database section. A full URL stands on its own;
// otherwise the individual connection fields must be usable.
func (d *DatabaseConfig) validate() error {
	if d.URL != "" {
		return nil
	}
	if d.Host == "" {
		return &ValidationError{Field: "database.host", Message: "is required"}
	}
	if err := ValidatePort("database.port", d.Port); err != nil {
		return err
	}
	if d.User == "" {
		return &ValidationError{Field: "database.user", Message: "is required"}
	}
	if d.Database == "" {
		return &ValidationError{Field: "database.database", Message: "is required"}
	}
	return nil
}
