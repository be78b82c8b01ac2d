package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	DB      DBConfig
	Booking BookingConfig
	Events  EventsConfig
	Log     LogConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
}

// StoreConfig selects where bookings and coupons are persisted.
type StoreConfig struct {
	Driver  string `envconfig:"STORE_DRIVER" default:"file"`
	DataDir string `envconfig:"STORE_DATA_DIR" default:"data"`
}

// DBConfig holds database-related configuration, used when Store.Driver is postgres.
// WARNING: Default password is for local development only.
type DBConfig struct {
	Host       string `envconfig:"DB_HOST" default:"localhost"`
	Port       int    `envconfig:"DB_PORT" default:"5432"`
	User       string `envconfig:"DB_USER" default:"postgres"`
	Password   string `envconfig:"DB_PASSWORD" default:"postgres"` // CHANGE IN PRODUCTION
	Name       string `envconfig:"DB_NAME" default:"booking_db"`
	SSLMode    string `envconfig:"DB_SSLMODE" default:"disable"` // Use "require" in production
	MaxConns   int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns   int32  `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxRetries int    `envconfig:"DB_MAX_RETRIES" default:"5"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// BookingConfig holds lifecycle options.
type BookingConfig struct {
	// MockMode labels confirmations confirmed_mock instead of confirmed.
	MockMode bool `envconfig:"MOCK_MODE" default:"false"`
}

// EventsConfig holds the RabbitMQ settings. An empty URL disables publishing.
type EventsConfig struct {
	RabbitURL string `envconfig:"RABBIT_URL"`
	Exchange  string `envconfig:"BOOKING_EXCHANGE" default:"booking.exchange"`
}

// Enabled reports whether events should be published.
func (c EventsConfig) Enabled() bool {
	return c.RabbitURL != ""
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// Validate rejects combinations envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile:
		if c.Store.DataDir == "" {
			return errors.New("STORE_DATA_DIR must not be empty")
		}
	case DriverPostgres:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %q or %q)", c.Store.Driver, DriverFile, DriverPostgres)
	}
	return nil
}

// Load reads an optional .env file, then parses environment variables into the Config struct.
// Variables already present in the environment take precedence over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
