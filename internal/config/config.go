// Package config loads and validates application configuration.
//
// Sources are layered, later ones winning: built-in defaults, an optional
// YAML file (PLANNER_CONFIG), an optional dotenv file (PLANNER_ENV_FILE,
// default ".env"), and finally the process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultSQLitePath is used when STORE_DRIVER is sqlite and no URL is set.
const DefaultSQLitePath = "planner.db"

// Config holds all configuration values for the CLI and the API server.
type Config struct {
	// StoreDriver selects the backend: "sqlite" (default) or "postgres".
	StoreDriver string

	// DatabaseURL is the SQLite file path or the Postgres connection string.
	// Defaults to DefaultSQLitePath for sqlite; required for postgres.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat is "text" (default) or "json".
	LogFormat string

	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	CORSOrigins []string

	// BufferMin is the default tight-connection buffer in minutes.
	BufferMin int

	// RejectOverlaps is the default for item create and reschedule.
	RejectOverlaps bool

	// MaxCost is the largest cost accepted without being flagged as a typo.
	MaxCost float64
}

// fileConfig mirrors the YAML layout. Pointer fields distinguish "absent"
// from zero values.
type fileConfig struct {
	Store struct {
		Driver string `yaml:"driver"`
		URL    string `yaml:"url"`
	} `yaml:"store"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Schedule struct {
		BufferMin      *int     `yaml:"buffer_min"`
		RejectOverlaps *bool    `yaml:"reject_overlaps"`
		MaxCost        *float64 `yaml:"max_cost"`
	} `yaml:"schedule"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StoreDriver:    DriverSQLite,
		LogLevel:       "info",
		LogFormat:      "text",
		Port:           "8080",
		CORSOrigins:    []string{"http://localhost:5173"},
		BufferMin:      15,
		RejectOverlaps: true,
		MaxCost:        1_000_000,
	}
}

// Load reads configuration from all sources and returns a Config.
// Returns an error naming every variable that is missing or malformed.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PLANNER_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readDotenv(getEnv(os.Getenv, "PLANNER_ENV_FILE", ".env"))
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	return fromLookup(cfg, lookup)
}

// applyFile overlays a YAML file onto cfg. ${VAR} placeholders are expanded
// from the environment before parsing.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	data = []byte(os.ExpandEnv(string(data)))

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setString(&cfg.StoreDriver, fc.Store.Driver)
	setString(&cfg.DatabaseURL, fc.Store.URL)
	setString(&cfg.LogLevel, fc.Log.Level)
	setString(&cfg.LogFormat, fc.Log.Format)
	setString(&cfg.Port, fc.Server.Port)
	if len(fc.Server.CORSOrigins) > 0 {
		cfg.CORSOrigins = fc.Server.CORSOrigins
	}
	if fc.Schedule.BufferMin != nil {
		cfg.BufferMin = *fc.Schedule.BufferMin
	}
	if fc.Schedule.RejectOverlaps != nil {
		cfg.RejectOverlaps = *fc.Schedule.RejectOverlaps
	}
	if fc.Schedule.MaxCost != nil {
		cfg.MaxCost = *fc.Schedule.MaxCost
	}
	return nil
}

// readDotenv parses a dotenv file without touching the process
// environment. A missing file is not an error.
func readDotenv(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	slog.Debug("loaded dotenv file", "path", path, "keys", len(vals))
	return vals, nil
}

// fromLookup overlays environment-style variables onto base and validates
// the result.
func fromLookup(base Config, lookup func(string) string) (Config, error) {
	cfg := base
	cfg.StoreDriver = strings.ToLower(getEnv(lookup, "STORE_DRIVER", cfg.StoreDriver))
	cfg.DatabaseURL = getEnv(lookup, "DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = strings.ToLower(getEnv(lookup, "LOG_LEVEL", cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getEnv(lookup, "LOG_FORMAT", cfg.LogFormat))
	cfg.Port = getEnv(lookup, "PORT", cfg.Port)
	if v := lookup("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitCSV(v)
	}

	var problems []string

	if v := lookup("PLANNER_BUFFER_MIN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			problems = append(problems, "PLANNER_BUFFER_MIN must be an integer")
		}
		cfg.BufferMin = n
	}
	if cfg.BufferMin < 0 {
		problems = append(problems, "PLANNER_BUFFER_MIN must be >= 0")
	}

	if v := lookup("PLANNER_REJECT_OVERLAPS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			problems = append(problems, "PLANNER_REJECT_OVERLAPS must be true or false")
		}
		cfg.RejectOverlaps = b
	}

	if v := lookup("PLANNER_MAX_COST"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			problems = append(problems, "PLANNER_MAX_COST must be a number")
		}
		cfg.MaxCost = f
	}
	if cfg.MaxCost <= 0 {
		problems = append(problems, "PLANNER_MAX_COST must be > 0")
	}

	switch cfg.StoreDriver {
	case DriverSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultSQLitePath
		}
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER must be %q or %q", DriverSQLite, DriverPostgres))
	}

	if _, err := cfg.SlogLevel(); err != nil {
		problems = append(problems, "LOG_LEVEL must be one of debug, info, warn, error")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		problems = append(problems, "LOG_FORMAT must be text or json")
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// SlogLevel parses LogLevel into a slog.Level.
func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl, err
}

// getEnv returns lookup(key), or fallback if the value is empty.
func getEnv(lookup func(string) string, key, fallback string) string {
	if v := lookup(key); v != "" {
		return v
	}
	return fallback
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
