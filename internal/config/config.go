package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListen          = ":18080"
	DefaultRefreshInterval = 24 * time.Hour
	DefaultNATSSubject     = "gtfs.feed"
)

// Config is the application configuration.
type Config struct {
	Source          string        `yaml:"source" validate:"required"`
	Listen          string        `yaml:"listen" validate:"required"`
	RefreshInterval time.Duration `yaml:"refresh_interval" validate:"gte=0"`

	Loader   LoaderConfig   `yaml:"loader"`
	Database DatabaseConfig `yaml:"database"`
	NATS     NATSConfig     `yaml:"nats"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type LoaderConfig struct {
	BestEffort         bool `yaml:"best_effort"`
	SkipMismatchedRows bool `yaml:"skip_mismatched_rows"`
	MaxLineBytes       int  `yaml:"max_line_bytes" validate:"gte=0"`
}

// DatabaseConfig enables the SQL export when Driver is set.
type DatabaseConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=sqlite3 pgx"`
	DSN    string `yaml:"dsn" validate:"required_with=Driver"`
}

// NATSConfig enables feed load events when URL is set.
type NATSConfig struct {
	URL     string `yaml:"url" validate:"omitempty,url"`
	Subject string `yaml:"subject" validate:"required"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

func defaults() *Config {
	return &Config{
		Listen:          DefaultListen,
		RefreshInterval: DefaultRefreshInterval,
		NATS:            NATSConfig{Subject: DefaultNATSSubject},
		Metrics:         MetricsConfig{Enabled: true},
	}
}

// Load reads the YAML file at path, if any, then applies environment
// overrides. A .env file in the working directory is loaded into the
// environment first. The result is not validated, so that callers can
// apply command-line flags before calling Validate.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("GTFS_SOURCE"); v != "" {
		c.Source = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		c.NATS.URL = v
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid REFRESH_INTERVAL: %q", v)
		}
		c.RefreshInterval = d
	}
	return nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q", fe.Namespace(), fe.Tag())
		}
		return err
	}
	return nil
}
