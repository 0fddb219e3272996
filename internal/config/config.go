package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"github.com/alexiusacademia/gopipe/internal/hydro"
)

// DefaultPath is the config file looked up when none is given
const DefaultPath = "gopipe.ini"

// Environment overrides
const (
	EnvGravity       = "GOPIPE_GRAVITY"
	EnvTolerance     = "GOPIPE_TOLERANCE"
	EnvMaxIterations = "GOPIPE_MAX_ITERATIONS"
	EnvAddr          = "GOPIPE_ADDR"
	EnvLogLevel      = "GOPIPE_LOG_LEVEL"
)

// Config is the merged gopipe.ini, .env and environment configuration
type Config struct {
	Solver SolverConfig
	Server ServerConfig
	Log    LogConfig
}

// SolverConfig is the [solver] section
type SolverConfig struct {
	Gravity       float64 // m/s²
	Tolerance     float64
	MaxIterations int
}

// ServerConfig is the [server] section used by gopipe serve
type ServerConfig struct {
	Addr      string
	RateLimit float64 // requests per second per client
	Burst     int
}

// LogConfig is the [log] section
type LogConfig struct {
	Level string
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Gravity:       hydro.G,
			Tolerance:     hydro.Tolerance,
			MaxIterations: hydro.MaxIterations,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			RateLimit: 10,
			Burst:     20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the ini file at path, then a .env file in the working
// directory, then GOPIPE_* environment variables. A missing file at the
// default path is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := Default()
	file, err := ini.Load(path)
	switch {
	case err == nil:
		loadCfg(cfg, file)
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		log.WithField("path", path).Debug("no config file, using defaults")
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadCfg(cfg *Config, file *ini.File) {
	solver := file.Section("solver")
	cfg.Solver.Gravity = solver.Key("Gravity").MustFloat64(cfg.Solver.Gravity)
	cfg.Solver.Tolerance = solver.Key("Tolerance").MustFloat64(cfg.Solver.Tolerance)
	cfg.Solver.MaxIterations = solver.Key("MaxIterations").MustInt(cfg.Solver.MaxIterations)

	server := file.Section("server")
	cfg.Server.Addr = server.Key("Addr").MustString(cfg.Server.Addr)
	cfg.Server.RateLimit = server.Key("RateLimit").MustFloat64(cfg.Server.RateLimit)
	cfg.Server.Burst = server.Key("Burst").MustInt(cfg.Server.Burst)

	cfg.Log.Level = file.Section("log").Key("Level").MustString(cfg.Log.Level)
}

func applyEnv(cfg *Config) error {
	floatVar := func(name string, dst *float64) error {
		if s, ok := os.LookupEnv(name); ok && s != "" {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*dst = v
		}
		return nil
	}
	if err := floatVar(EnvGravity, &cfg.Solver.Gravity); err != nil {
		return err
	}
	if err := floatVar(EnvTolerance, &cfg.Solver.Tolerance); err != nil {
		return err
	}
	if s, ok := os.LookupEnv(EnvMaxIterations); ok && s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxIterations, err)
		}
		cfg.Solver.MaxIterations = v
	}
	if s := os.Getenv(EnvAddr); s != "" {
		cfg.Server.Addr = s
	}
	if s := os.Getenv(EnvLogLevel); s != "" {
		cfg.Log.Level = s
	}
	return nil
}

// Validate rejects settings the solvers cannot run with
func (c *Config) Validate() error {
	if c.Solver.Gravity <= 0 {
		return fmt.Errorf("solver gravity must be positive, got %g", c.Solver.Gravity)
	}
	if c.Solver.Tolerance <= 0 {
		return fmt.Errorf("solver tolerance must be positive, got %g", c.Solver.Tolerance)
	}
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("solver max iterations must be positive, got %d", c.Solver.MaxIterations)
	}
	if c.Server.RateLimit <= 0 || c.Server.Burst <= 0 {
		return fmt.Errorf("server rate limit and burst must be positive, got %g/%d", c.Server.RateLimit, c.Server.Burst)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Options converts the solver section to solver options
func (c *Config) Options() hydro.Options {
	return hydro.Options{
		Gravity:       c.Solver.Gravity,
		Tolerance:     c.Solver.Tolerance,
		MaxIterations: c.Solver.MaxIterations,
	}
}

// ApplyLogLevel sets the global logrus level
func (c *Config) ApplyLogLevel() error {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	return nil
}
