package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds configuration for the SQLite article store.
type Config struct {
	// Path is the database file, e.g. "iran_laws.db".
	Path string

	// ReadOnly opens the file with mode=ro. The serving path never writes.
	ReadOnly bool

	// BusyTimeout is how long SQLite waits on a locked file (default: 5s).
	BusyTimeout time.Duration

	// MaxOpenConns caps concurrent connections (default: 16).
	MaxOpenConns int
}

// DSN builds the go-sqlite3 connection string for cfg.
func (cfg Config) DSN() string {
	if cfg.Path == ":memory:" {
		return cfg.Path
	}

	busyTimeout := cfg.BusyTimeout
	if busyTimeout == 0 {
		busyTimeout = 5 * time.Second
	}

	q := url.Values{}
	q.Set("_busy_timeout", fmt.Sprintf("%d", busyTimeout.Milliseconds()))
	if cfg.ReadOnly {
		q.Set("mode", "ro")
	}

	path := uriPath.Replace(strings.TrimPrefix(cfg.Path, "file:"))
	return "file:" + path + "?" + q.Encode()
}

// uriPath escapes the characters SQLite treats as URI delimiters in the path
// part of a file: URI. SQLite decodes the escapes before opening the file.
var uriPath = strings.NewReplacer(
	"%", "%25",
	"?", "%3f",
	"#", "%23",
)

// Open opens the SQLite database described by cfg.
//
// No idle connections are kept: every connection checked out for a query is
// closed when it is released, so no connection state outlives a request.
func Open(cfg Config, log hclog.Logger) (*gorm.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	gormConfig := &gorm.Config{}
	if log != nil {
		gormConfig.Logger = NewGormLogger(log.Named("gorm"))
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns == 0 {
		maxOpenConns = 16
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(0)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database %q: %w", cfg.Path, err)
	}

	if log != nil {
		log.Info("opened article database",
			"path", cfg.Path,
			"read_only", cfg.ReadOnly,
			"max_open_conns", maxOpenConns,
		)
	}

	return db, nil
}

// Close closes the underlying connection pool of db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	return sqlDB.Close()
}

// PoolStats holds database connection pool statistics.
type PoolStats struct {
	MaxOpenConnections int   // Maximum number of open connections to the database
	OpenConnections    int   // The number of established connections both in use and idle
	InUse              int   // The number of connections currently in use
	Idle               int   // The number of idle connections
	MaxIdleClosed      int64 // The total number of connections closed due to SetMaxIdleConns
}

// GetPoolStats returns connection pool statistics from a GORM DB instance.
func GetPoolStats(db *gorm.DB) (*PoolStats, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	stats := sqlDB.Stats()
	return &PoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		MaxIdleClosed:      stats.MaxIdleClosed,
	}, nil
}

// slowQuery is the duration above which a query is logged as a warning.
const slowQuery = 200 * time.Millisecond

// gormLogger routes gorm's logging to hclog. Every statement is logged at
// Debug when the level is logger.Info.
type gormLogger struct {
	log   hclog.Logger
	level logger.LogLevel
}

// NewGormLogger returns a gorm logger writing to log at logger.Warn.
func NewGormLogger(log hclog.Logger) logger.Interface {
	return &gormLogger{log: log, level: logger.Warn}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{log: g.log, level: level}
}

func (g *gormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	g.printf(logger.Info, hclog.Info, msg, data)
}

func (g *gormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	g.printf(logger.Warn, hclog.Warn, msg, data)
}

func (g *gormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	g.printf(logger.Error, hclog.Error, msg, data)
}

func (g *gormLogger) enabled(at logger.LogLevel) bool {
	return g.log != nil && g.level >= at
}

func (g *gormLogger) printf(at logger.LogLevel, to hclog.Level, msg string, data []interface{}) {
	if g.enabled(at) {
		g.log.Log(to, fmt.Sprintf(msg, data...))
	}
}

// Trace reports failed and slow statements. A missing row is not a failure:
// lookups report it through their own return values.
func (g *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if !g.enabled(logger.Error) {
		return
	}

	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)
	elapsed := time.Since(begin)
	slow := elapsed > slowQuery

	if !failed && !(slow && g.enabled(logger.Warn)) && !g.enabled(logger.Info) {
		return
	}

	sql, rows := fc()
	args := []interface{}{"elapsed", elapsed, "rows", rows, "sql", sql}
	switch {
	case failed:
		g.log.Error("statement failed", append(args, "error", err)...)
	case slow && g.enabled(logger.Warn):
		g.log.Warn("slow statement", args...)
	default:
		g.log.Debug("statement", args...)
	}
}
