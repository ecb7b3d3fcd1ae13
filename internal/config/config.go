package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr      string `env:"ADDR" validate:"required"`
	DBPath    string `env:"DB_PATH" validate:"required"`
	LogLevel  string `env:"LOG_LEVEL" validate:"oneof=DEBUG INFO WARN ERROR"`
	LogFormat string `env:"LOG_FORMAT" validate:"oneof=text json"`
	Timezone  string `env:"TIMEZONE" validate:"required,location"`

	DailyNewWordsLimit int     `env:"DAILY_NEW_WORDS_LIMIT" validate:"min=1,max=100"`
	DesiredRetention   float64 `env:"DESIRED_RETENTION" validate:"gt=0,lt=1"`
	MaximumInterval    int     `env:"MAXIMUM_INTERVAL" validate:"min=1,max=36500"`

	WeakLapseThreshold     int     `env:"WEAK_LAPSE_THRESHOLD" validate:"min=1"`
	WeakStabilityThreshold float64 `env:"WEAK_STABILITY_THRESHOLD" validate:"gt=0"`
	StaleDays              int     `env:"STALE_DAYS" validate:"min=1"`
	StrongestLimit         int     `env:"STRONGEST_LIMIT" validate:"min=1"`

	VocabularySource  string `env:"VOCABULARY_SOURCE"`
	ImportWorkerCount int    `env:"IMPORT_WORKER_COUNT" validate:"min=1"`
	ImportQueueSize   int    `env:"IMPORT_QUEUE_SIZE" validate:"min=1"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:      envOr("ADDR", ":8080"),
		DBPath:    envOr("DB_PATH", "file:wordflash.db"),
		LogLevel:  strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		LogFormat: strings.ToLower(envOr("LOG_FORMAT", "text")),
		Timezone:  envOr("TIMEZONE", "Local"),

		DailyNewWordsLimit: envIntOr("DAILY_NEW_WORDS_LIMIT", 20),
		DesiredRetention:   envFloatOr("DESIRED_RETENTION", 0.9),
		MaximumInterval:    envIntOr("MAXIMUM_INTERVAL", 36500),

		WeakLapseThreshold:     envIntOr("WEAK_LAPSE_THRESHOLD", 7),
		WeakStabilityThreshold: envFloatOr("WEAK_STABILITY_THRESHOLD", 3.0),
		StaleDays:              envIntOr("STALE_DAYS", 80),
		StrongestLimit:         envIntOr("STRONGEST_LIMIT", 20),

		VocabularySource:  os.Getenv("VOCABULARY_SOURCE"),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 1),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 4),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		_, err := Config{Timezone: fl.Field().String()}.Location()
		return err == nil
	})
	return v
}

// Validate checks every field and reports all problems at once, naming the
// environment variable of each.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "location":
		return fmt.Sprintf("%s is not a known time zone: %q", fe.Field(), fe.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "lt":
		return fmt.Sprintf("%s must be less than %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// Location resolves Timezone. "Local" is the host's zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
