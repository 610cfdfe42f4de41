package promptstore

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Store.
type Option func(*storeConfig)

// storeConfig holds the internal configuration for a Store.
type storeConfig struct {
	logger       *zap.Logger
	recorder     Recorder
	eagerLoad    bool
	validateJSON bool
}

// defaultStoreConfig returns the default store configuration.
func defaultStoreConfig() *storeConfig {
	return &storeConfig{
		logger:       nil,
		recorder:     nil,
		eagerLoad:    false,
		validateJSON: false,
	}
}

// WithLogger sets the logger for the store and the sources it creates.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *storeConfig) {
		c.logger = logger
	}
}

// WithRecorder sets the diagnostics recorder receiving soft warnings.
// Default: nil (diagnostics are dropped)
func WithRecorder(recorder Recorder) Option {
	return func(c *storeConfig) {
		c.recorder = recorder
	}
}

// WithEagerLoad makes NewFolderStore materialize the whole directory tree at
// construction instead of lazily on first access.
// Default: lazy
func WithEagerLoad() Option {
	return func(c *storeConfig) {
		c.eagerLoad = true
	}
}

// WithJSONValidation makes NewJSONStore validate the document shape before
// committing any entries.
// Default: no pre-validation
func WithJSONValidation() Option {
	return func(c *storeConfig) {
		c.validateJSON = true
	}
}
