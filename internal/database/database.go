package database

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUninitializedStorage is returned when a session is requested before
// Initialize has succeeded.
var ErrUninitializedStorage = errors.New("storage is not initialized: call Initialize before OpenSession")

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Location identifies the backing store.
type Location struct {
	Driver string
	// DSN is a file path (or ":memory:") for SQLite and a connection string
	// for the server drivers.
	DSN      string
	LogLevel logger.LogLevel
}

// SQLiteLocation returns the location of a local SQLite file.
func SQLiteLocation(path string) Location {
	return Location{Driver: DriverSQLite, DSN: path, LogLevel: logger.Warn}
}

// ParseLogLevel maps a textual level onto the GORM logger levels.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Storage owns the process-wide engine. The zero value is ready to use and
// must be initialized once by the entry point.
type Storage struct {
	mu       sync.Mutex
	db       *gorm.DB
	location Location
	log      *slog.Logger
}

// NewStorage creates an uninitialized Storage.
func NewStorage(log *slog.Logger) *Storage {
	return &Storage{log: log}
}

// Initialize opens the engine bound to loc. Only the first successful call
// has an effect.
func (s *Storage) Initialize(loc Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	dialector, err := dialectorFor(loc)
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(loc.LogLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if loc.Driver == DriverSQLite && isMemory(loc.DSN) {
		// Every connection to :memory: is a separate database.
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to access connection pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	s.db = db
	s.location = loc
	if s.log != nil {
		s.log.Info("database connection established", slog.String("driver", loc.Driver))
	}
	return nil
}

// Initialized reports whether Initialize has succeeded.
func (s *Storage) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db != nil
}

// Location returns the location the engine is bound to.
func (s *Storage) Location() Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

// OpenSession returns a new session bound to the shared engine.
func (s *Storage) OpenSession() (*gorm.DB, error) {
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()

	if db == nil {
		return nil, ErrUninitializedStorage
	}
	return db.Session(&gorm.Session{NewDB: true}), nil
}

// WithSession runs fn on a dedicated connection checked out of the pool.
// The connection goes back to the pool on every exit path. fn gets a fresh
// statement per chain, so several queries may run on the same handle.
func (s *Storage) WithSession(fn func(db *gorm.DB) error) error {
	session, err := s.OpenSession()
	if err != nil {
		return err
	}
	return session.Connection(func(tx *gorm.DB) error {
		return fn(tx.Session(&gorm.Session{NewDB: true}))
	})
}

// Close tears the engine down. A closed Storage may be initialized again.
func (s *Storage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}

func dialectorFor(loc Location) (gorm.Dialector, error) {
	switch loc.Driver {
	case DriverSQLite, "":
		if loc.DSN == "" {
			return nil, errors.New("sqlite location requires a file path")
		}
		return sqlite.Open(sqliteDSN(loc.DSN)), nil
	case DriverMySQL:
		return mysql.Open(loc.DSN), nil
	case DriverPostgres:
		return postgres.Open(loc.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", loc.Driver)
	}
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// sqliteDSN adds a busy timeout so concurrent sessions of this process wait
// for the file lock instead of failing.
func sqliteDSN(path string) string {
	if isMemory(path) || strings.Contains(path, "_busy_timeout") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000"
}
