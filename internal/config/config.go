package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type AppConfig struct {
	// NASAAPIKey is forwarded as the api_key query parameter on every
	// credentialed NASA call. DEMO_KEY works but is heavily rate limited.
	NASAAPIKey string `validate:"required"`

	// DatabasePath locates the SQLite database file.
	DatabasePath string `validate:"required"`

	// FetchTimeout bounds each single-shot upstream fetch.
	FetchTimeout time.Duration `validate:"gt=0"`

	// Session lifetime and how often expired sessions are purged.
	SessionTTL           time.Duration `validate:"gt=0"`
	SessionPurgeInterval time.Duration `validate:"gt=0"`

	// MetricsAddr exposes Prometheus metrics on its own listener when
	// non-empty (e.g. ":9091"). Empty disables the listener.
	MetricsAddr string

	Port string `validate:"required"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.WithFields(log.Fields{"error": err}).Debug("no .env file loaded")
	}

	cfg := &AppConfig{
		NASAAPIKey:   getenvDefault("NASA_API_KEY", "DEMO_KEY"),
		DatabasePath: getenvDefault("DATABASE_PATH", "astrodash.db"),
		MetricsAddr:  os.Getenv("METRICS_ADDR"),
		Port:         getenvDefault("PORT", "8080"),
	}

	var err error
	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getenvDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionPurgeInterval, err = getenvDuration("SESSION_PURGE_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
