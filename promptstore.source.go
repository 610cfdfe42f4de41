package promptstore

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Source is a backing-storage strategy behind a Store. Eager sources hand
// over their full content through Entries; lazy sources answer single-name
// probes through Resolve. A source may support both.
//
// Implementations must be safe for concurrent use.
type Source interface {
	// Name returns the driver name of the source.
	Name() string

	// Describe returns the backing descriptor: a folder path, a document
	// path, or an empty string for purely in-memory sources.
	Describe() string

	// Entries returns the eager snapshot as a mapping of qualified name to
	// prompt text. Lazy sources return an empty snapshot.
	Entries(ctx context.Context) (map[string]string, error)

	// Resolve probes the source for a single qualified name and returns the
	// prompt text. Returns a not-found error when the source has no backing
	// entry for the name.
	Resolve(ctx context.Context, name string) (string, error)

	// Close releases any resources held by the source.
	Close() error
}

// SourceOption is a functional option for configuring a source.
type SourceOption func(*sourceConfig)

// sourceConfig holds the internal configuration for a source.
type sourceConfig struct {
	logger   *zap.Logger
	recorder Recorder
	eager    bool
	validate bool
}

func defaultSourceConfig() *sourceConfig {
	return &sourceConfig{}
}

// normalized fills nil collaborators with no-op implementations.
func (c *sourceConfig) normalized() *sourceConfig {
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.recorder == nil {
		c.recorder = &NopRecorder{}
	}
	return c
}

// WithSourceLogger sets the logger for a source.
// Default: nil (no logging)
func WithSourceLogger(logger *zap.Logger) SourceOption {
	return func(c *sourceConfig) {
		c.logger = logger
	}
}

// WithSourceRecorder sets the diagnostics recorder for a source.
// Default: nil (diagnostics are dropped)
func WithSourceRecorder(recorder Recorder) SourceOption {
	return func(c *sourceConfig) {
		c.recorder = recorder
	}
}

// WithSourceEagerLoad makes a folder source walk its whole tree in Entries.
// Default: lazy (empty snapshot, per-name resolution)
func WithSourceEagerLoad() SourceOption {
	return func(c *sourceConfig) {
		c.eager = true
	}
}

// WithSourceValidation makes a JSON source validate the document shape
// before returning any entries.
// Default: no pre-validation
func WithSourceValidation() SourceOption {
	return func(c *sourceConfig) {
		c.validate = true
	}
}

// SourceDriver creates sources from driver-specific locator strings.
type SourceDriver interface {
	Open(locator string) (Source, error)
}

// SourceDriverFunc adapts a function to the SourceDriver interface.
type SourceDriverFunc func(locator string) (Source, error)

// Open calls the wrapped function.
func (f SourceDriverFunc) Open(locator string) (Source, error) {
	return f(locator)
}

// Source driver registry
var (
	sourceDriversMu sync.RWMutex
	sourceDrivers   = make(map[string]SourceDriver)
)

// RegisterSourceDriver registers a source driver by name.
// This is typically called from a driver's init() function.
// Panics if a driver with the same name is already registered.
func RegisterSourceDriver(name string, driver SourceDriver) {
	sourceDriversMu.Lock()
	defer sourceDriversMu.Unlock()

	if driver == nil {
		panic(ErrMsgNilSourceDriver)
	}
	if _, exists := sourceDrivers[name]; exists {
		panic(ErrMsgDriverAlreadyRegistered + ": " + name)
	}
	sourceDrivers[name] = driver
}

// OpenSource opens a source using the named driver. The locator format is
// driver-specific.
//
// Example:
//
//	src, err := promptstore.OpenSource("folder", "./prompts")
//	src, err := promptstore.OpenSource("json", "prompts.json")
func OpenSource(driverName, locator string) (Source, error) {
	sourceDriversMu.RLock()
	driver, ok := sourceDrivers[driverName]
	sourceDriversMu.RUnlock()

	if !ok {
		return nil, NewSourceDriverNotFoundError(driverName)
	}
	return driver.Open(locator)
}

// ListSourceDrivers returns the sorted names of all registered drivers.
func ListSourceDrivers() []string {
	sourceDriversMu.RLock()
	defer sourceDriversMu.RUnlock()

	names := make([]string, 0, len(sourceDrivers))
	for name := range sourceDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source error message constants
const (
	ErrMsgNilSourceDriver         = "source driver is nil"
	ErrMsgDriverAlreadyRegistered = "source driver already registered"
	ErrMsgSourceDriverNotFound    = "source driver not found"
	ErrMsgSourceClosed            = "source is closed"
)

// NewSourceDriverNotFoundError creates an error for a missing source driver.
func NewSourceDriverNotFoundError(name string) error {
	return &SourceError{Message: ErrMsgSourceDriverNotFound, Driver: name}
}

// NewSourceClosedError creates an error for operations on a closed source.
func NewSourceClosedError(driver string) error {
	return &SourceError{Message: ErrMsgSourceClosed, Driver: driver}
}

// SourceError represents a source-related error.
type SourceError struct {
	Message string
	Driver  string
	Path    string
	Cause   error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	switch {
	case e.Driver != "" && e.Path != "":
		return e.Message + ": " + e.Driver + " " + e.Path
	case e.Driver != "":
		return e.Message + ": " + e.Driver
	case e.Path != "":
		return e.Message + ": " + e.Path
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *SourceError) Unwrap() error {
	return e.Cause
}
