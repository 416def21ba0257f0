// Package config reads canteiro settings from the environment, after
// loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

const (
	EnvDB              = "CANTEIRO_DB"
	EnvTemplateID      = "CANTEIRO_TEMPLATE_ID"
	EnvCascade         = "CANTEIRO_CASCADE"
	EnvConflictRetries = "CANTEIRO_CONFLICT_RETRIES"
	EnvLogLevel        = "CANTEIRO_LOG_LEVEL"
	EnvLogFormat       = "CANTEIRO_LOG_FORMAT"
	EnvLogCalls        = "CANTEIRO_LOG_CALLS"
	EnvLocale          = "CANTEIRO_LOCALE"
)

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogText LogFormat = "text"
	LogJSON LogFormat = "json"
)

type Config struct {
	DBPath string
	// TemplateID is empty unless overridden; services then fall back to
	// their well-known template id.
	TemplateID      string
	Cascade         domain.CascadeMode
	ConflictRetries int
	LogLevel        slog.Level
	LogFormat       LogFormat
	LogCalls        bool
	Locale          language.Tag
}

// Default returns the configuration used when nothing is set.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	return Config{
		DBPath:          filepath.Join(home, ".canteiro", "canteiro.db"),
		Cascade:         domain.CascadeFull,
		ConflictRetries: 3,
		LogLevel:        slog.LevelWarn,
		LogFormat:       LogText,
		Locale:          language.BrazilianPortuguese,
	}, nil
}

// Load reads envFiles (".env" when none are given; missing files are
// fine), then overlays every CANTEIRO_* variable on the defaults. Variables
// already set in the process environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}

	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	cfg.DBPath = getEnvAsString(EnvDB, cfg.DBPath)

	if v := os.Getenv(EnvTemplateID); v != "" {
		if err := domain.ValidateID("template construction", v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTemplateID, err)
		}
		cfg.TemplateID = v
	}

	if cfg.Cascade, err = domain.ParseCascadeMode(strings.ToLower(os.Getenv(EnvCascade))); err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvCascade, err)
	}

	if cfg.ConflictRetries, err = getEnvAsInt(EnvConflictRetries, cfg.ConflictRetries); err != nil {
		return Config{}, err
	}
	if cfg.ConflictRetries < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", EnvConflictRetries)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}

	switch f := LogFormat(strings.ToLower(getEnvAsString(EnvLogFormat, string(cfg.LogFormat)))); f {
	case LogText, LogJSON:
		cfg.LogFormat = f
	default:
		return Config{}, fmt.Errorf("%s: unknown format %q (want text or json)", EnvLogFormat, f)
	}

	if cfg.LogCalls, err = getEnvAsBool(EnvLogCalls, cfg.LogCalls); err != nil {
		return Config{}, err
	}

	if v := os.Getenv(EnvLocale); v != "" {
		tag, err := language.Parse(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLocale, err)
		}
		cfg.Locale = tag
	}

	return cfg, nil
}

func getEnvAsString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	return b, nil
}
