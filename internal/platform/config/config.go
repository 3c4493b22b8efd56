package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hkidcheck/pkg/platform/middleware/metadata"
)

// Server captures process-level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// BatchLimit caps the number of values in one batch request.
	BatchLimit int
	// BatchWorkers bounds concurrent validations inside one batch.
	BatchWorkers int
	// AuditSampleRate keeps this fraction of routine validation audit events.
	AuditSampleRate float64
	// RateLimit is the per-client request budget per RateWindow; 0 disables it.
	RateLimit  int
	RateWindow time.Duration
	// TrustedProxies are the peers whose X-Forwarded-For / X-Real-IP headers
	// are believed. Empty means the TCP peer is always the client.
	TrustedProxies []netip.Prefix
}

// Defaults used when the environment leaves a value unset.
const (
	DefaultAddr            = ":8080"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultBatchLimit      = 100
	DefaultBatchWorkers    = 8
	DefaultAuditSampleRate = 1.0
	DefaultRateLimit       = 120
	DefaultRateWindow      = time.Minute
)

// LoadDotEnv merges a .env file into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:      envOr("HKID_ADDR", DefaultAddr),
		LogLevel:  envOr("LOG_LEVEL", DefaultLogLevel),
		LogFormat: envOr("LOG_FORMAT", DefaultLogFormat),
	}

	var errs []error
	var err error
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout); err != nil {
		errs = append(errs, err)
	}
	if cfg.BatchLimit, err = positiveIntEnv("HKID_BATCH_LIMIT", DefaultBatchLimit); err != nil {
		errs = append(errs, err)
	}
	if cfg.BatchWorkers, err = positiveIntEnv("HKID_BATCH_WORKERS", DefaultBatchWorkers); err != nil {
		errs = append(errs, err)
	}
	if cfg.AuditSampleRate, err = rateEnv("AUDIT_SAMPLE_RATE", DefaultAuditSampleRate); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateLimit, err = nonNegativeIntEnv("HKID_RATE_LIMIT", DefaultRateLimit); err != nil {
		errs = append(errs, err)
	}
	if cfg.RateWindow, err = durationEnv("HKID_RATE_WINDOW", DefaultRateWindow); err != nil {
		errs = append(errs, err)
	}
	if v := os.Getenv("HKID_TRUSTED_PROXIES"); v != "" {
		if cfg.TrustedProxies, err = metadata.ParseTrustedProxies(strings.Split(v, ",")); err != nil {
			errs = append(errs, fmt.Errorf("HKID_TRUSTED_PROXIES: %w", err))
		}
	}

	return cfg, errors.Join(errs...)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func positiveIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback, fmt.Errorf("%s: must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func nonNegativeIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback, fmt.Errorf("%s: must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}

func rateEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 || f > 1 {
		return fallback, fmt.Errorf("%s: must be between 0 and 1, got %q", key, v)
	}
	return f, nil
}
