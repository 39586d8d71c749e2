package types

import (
	"errors"
	"slices"
)

// Config holds backend selection and tracker parameters for Backend.Attach.
type Config struct {
	Backend     string   `json:"backend" yaml:"backend"`
	LogLevel    string   `json:"log_level" yaml:"log_level"`
	BorrowLimit int      `json:"borrow_limit" yaml:"borrow_limit"`
	LibrarySeed []string `json:"library_seed" yaml:"library_seed"`
}

// Supported backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Defaults applied when configuration leaves a value unset.
const (
	DefaultBackend     = BackendMemory
	DefaultLogLevel    = "warn"
	DefaultBorrowLimit = 3
)

// DefaultLibrarySeed lists the titles a fresh library starts with.
var DefaultLibrarySeed = []string{
	"C# Fundamentals",
	"Introduction to .NET",
	"ASP.NET Core Essentials",
	"Entity Framework Core Guide",
}

// Config validation errors.
var (
	ErrBackendEmpty       = errors.New("backend must not be empty")
	ErrBackendUnknown     = errors.New("unknown backend")
	ErrBorrowLimitInvalid = errors.New("borrow limit must be positive")
	ErrLogLevelUnknown    = errors.New("unknown log level")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendMemory: true,
	BackendSQLite: true,
}

// KnownLogLevels lists the accepted log_level values in increasing severity.
var KnownLogLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns a Config populated with every default.
func DefaultConfig() Config {
	return Config{
		Backend:     DefaultBackend,
		LogLevel:    DefaultLogLevel,
		BorrowLimit: DefaultBorrowLimit,
		LibrarySeed: slices.Clone(DefaultLibrarySeed),
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. An empty LogLevel is accepted and means the
// default level.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.BorrowLimit <= 0 {
		return ErrBorrowLimitInvalid
	}
	if c.LogLevel != "" && !slices.Contains(KnownLogLevels, c.LogLevel) {
		return ErrLogLevelUnknown
	}
	return nil
}
