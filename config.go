package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/dnldd/bazaar/chart"
	"github.com/dnldd/bazaar/fetch"
	"github.com/dnldd/bazaar/shared"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	// defaultInterval is the default polling interval.
	defaultInterval = time.Second * 10
	// defaultRetryDelay is the default wait before retrying a failed candidate fetch.
	defaultRetryDelay = time.Second * 5
	// defaultTimeout is the default bazaar request timeout.
	defaultTimeout = time.Second * 5
)

// Config is the configuration struct for the service.
type Config struct {
	// BazaarURL is the bazaar endpoint.
	BazaarURL string
	// Interval is the polling interval once a product is resolved.
	Interval time.Duration
	// Capacity is the number of samples retained for the price history charts.
	Capacity int
	// RetryDelay is the wait before retrying a candidate whose fetch failed.
	RetryDelay time.Duration
	// Timeout is the bazaar request timeout.
	Timeout time.Duration
	// ChartWidth is the price history chart width in columns.
	ChartWidth int
	// ChartHeight is the price history chart height in rows.
	ChartHeight int
	// LogLevel is the minimum level of logged messages.
	LogLevel string

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.BazaarURL == "" {
		errs = errors.Join(errs, fmt.Errorf("bazaar url cannot be an empty string"))
	}
	if cfg.Interval <= 0 {
		errs = errors.Join(errs, fmt.Errorf("polling interval must be positive"))
	}
	if cfg.Capacity <= 0 {
		errs = errors.Join(errs, fmt.Errorf("window capacity must be positive"))
	}
	if cfg.RetryDelay <= 0 {
		errs = errors.Join(errs, fmt.Errorf("retry delay must be positive"))
	}
	if cfg.Timeout <= 0 {
		errs = errors.Join(errs, fmt.Errorf("request timeout must be positive"))
	}
	if cfg.ChartWidth <= 0 {
		errs = errors.Join(errs, fmt.Errorf("chart width must be positive"))
	}
	if cfg.ChartHeight <= 0 {
		errs = errors.Join(errs, fmt.Errorf("chart height must be positive"))
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		errs = errors.Join(errs, fmt.Errorf("invalid log level %q", cfg.LogLevel))
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
// Environment variables take precedence over the provided fallback as the flag default.
func (cfg *Config) registerFlag(name string, value interface{}, fallback string, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	if defValue == "" {
		defValue = fallback
	}

	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	// Durations are int64 kinds, handle them before the kind switch.
	if d, ok := value.(*time.Duration); ok {
		var def time.Duration
		if defValue != "" {
			parsed, err := time.ParseDuration(defValue)
			if err != nil {
				return fmt.Errorf("%s: parsing duration: %w", name, err)
			}
			def = parsed
		}
		flag.DurationVar(d, name, def, usage)
		return nil
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	err = cfg.registerFlag("bazaarurl", &cfg.BazaarURL, fetch.BaseURL, "the bazaar endpoint")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("interval", &cfg.Interval, defaultInterval.String(), "the polling interval")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("capacity", &cfg.Capacity, strconv.Itoa(shared.DefaultWindowCapacity),
		"the number of samples retained for the price history")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("retrydelay", &cfg.RetryDelay, defaultRetryDelay.String(),
		"the wait before retrying a failed candidate fetch")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("timeout", &cfg.Timeout, defaultTimeout.String(), "the bazaar request timeout")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("chartwidth", &cfg.ChartWidth, strconv.Itoa(chart.DefaultWidth), "the chart width")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("chartheight", &cfg.ChartHeight, strconv.Itoa(chart.DefaultHeight), "the chart height")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("loglevel", &cfg.LogLevel, zerolog.InfoLevel.String(), "the log level")
	if err != nil {
		return err
	}

	// Parse command-line flags.
	flag.Parse()

	return cfg.Validate()
}
