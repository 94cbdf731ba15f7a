package config

import (
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Defaults.
const (
	DefaultAddress      = ":8000"
	DefaultDatabasePath = "iran_laws.db"
	DefaultSecretHeader = "X-RebLaw-Secret"
	DefaultLogLevel     = "info"
)

// Environment variables that override the configuration file.
const (
	EnvDatabasePath = "REBLAW_DB_PATH"
	EnvSharedSecret = "REBLAW_SHARED_SECRET"
	EnvLogLevel     = "REBLAW_LOG_LEVEL"
	EnvPort         = "PORT"
)

// Config contains the service configuration. It is built once at startup and
// shared read-only by every component.
type Config struct {
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `hcl:"log_level,optional"`

	// Server configures the HTTP listener.
	Server *Server `hcl:"server,block"`

	// Database configures the article database.
	Database *Database `hcl:"database,block"`

	// Judge configures the scoring endpoint.
	Judge *Judge `hcl:"judge,block"`
}

// Server configures the HTTP listener.
type Server struct {
	// Address is the listen address (e.g., ":8000").
	Address string `hcl:"address,optional"`
}

// Database configures the article database.
type Database struct {
	// Path is the SQLite file holding the articles table.
	Path string `hcl:"path,optional"`
}

// Judge configures the scoring endpoint.
type Judge struct {
	// SharedSecret gates the endpoint when non-empty.
	SharedSecret string `hcl:"shared_secret,optional"`

	// Header is the request header carrying the secret.
	Header string `hcl:"header,optional"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load builds the configuration: defaults, then the HCL file at path (if
// path is not empty), then environment variables.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
			return nil, fmt.Errorf("error decoding config file: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv(lookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Database == nil {
		c.Database = &Database{}
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Judge == nil {
		c.Judge = &Judge{}
	}
	if c.Judge.Header == "" {
		c.Judge.Header = DefaultSecretHeader
	}
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvDatabasePath); ok && v != "" {
		c.Database.Path = v
	}
	// An explicitly empty secret disables the gate.
	if v, ok := lookupEnv(EnvSharedSecret); ok {
		c.Judge.SharedSecret = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookupEnv(EnvPort); ok && v != "" {
		c.Server.Address = ":" + v
	}
}

// Validate checks the configuration after defaults and overrides.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LogLevel, validation.Required, validation.By(validLogLevel)),
		validation.Field(&c.Server, validation.Required),
		validation.Field(&c.Database, validation.Required),
		validation.Field(&c.Judge, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Address, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (d Database) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Path, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (j Judge) Validate() error {
	return validation.ValidateStruct(&j,
		validation.Field(&j.Header, validation.Required),
	)
}

func validLogLevel(value interface{}) error {
	s, _ := value.(string)
	if hclog.LevelFromString(s) == hclog.NoLevel {
		return fmt.Errorf("unknown log level %q", s)
	}
	return nil
}

// HCLogLevel returns the configured level for hclog.
func (c *Config) HCLogLevel() hclog.Level {
	return hclog.LevelFromString(strings.ToLower(c.LogLevel))
}

// JudgeGateEnabled reports whether the scoring endpoint requires the secret.
func (c *Config) JudgeGateEnabled() bool {
	return c.Judge != nil && c.Judge.SharedSecret != ""
}
