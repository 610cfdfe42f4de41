package promptstore

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// JSONSource reads prompts from a single JSON document. The document root
// must be an object; string values become leaves and nested objects become
// namespaces, with object keys as name segments.
//
// Document shape:
//
//	{
//	  "greeting": "Hello there.",
//	  "reviews": {
//	    "tone": "Keep the tone neutral."
//	  }
//	}
//
// JSON sources are always eager: the document is parsed in full and there is
// no per-name resolution.
type JSONSource struct {
	mu       sync.RWMutex
	path     string
	validate bool
	closed   bool
	logger   *zap.Logger
}

// JSONSourceDriver creates JSONSource instances.
type JSONSourceDriver struct{}

func init() {
	RegisterSourceDriver(SourceDriverJSON, &JSONSourceDriver{})
}

// Open creates a new JSONSource. The locator is the document path.
func (d *JSONSourceDriver) Open(locator string) (Source, error) {
	return NewJSONSource(locator)
}

// NewJSONSource creates a JSON-document-backed source. The path must name an
// existing regular file.
func NewJSONSource(path string, opts ...SourceOption) (*JSONSource, error) {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg = cfg.normalized()

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, NewFileInvalidError(path)
	}

	return &JSONSource{
		path:     path,
		validate: cfg.validate,
		logger:   cfg.logger,
	}, nil
}

// Name returns the driver name of the source.
func (s *JSONSource) Name() string {
	return SourceDriverJSON
}

// Describe returns the document path.
func (s *JSONSource) Describe() string {
	return s.path
}

// Entries parses the document and returns all prompts keyed by qualified
// name. With validation enabled the whole document shape is checked before
// any entries are produced.
func (s *JSONSource) Entries(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewSourceClosedError(s.Name())
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, NewFileReadError(s.path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, NewJSONParseError(s.path, err)
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return nil, NewJSONNotObjectError(s.path)
	}

	if s.validate {
		if err := validateObject(root, ""); err != nil {
			return nil, err
		}
	}

	entries := make(map[string]string)
	if err := flattenObject(root, "", entries); err != nil {
		return nil, err
	}

	s.logger.Debug(LogMsgEagerLoadComplete,
		zap.String(LogFieldPath, s.path),
		zap.Int(LogFieldCount, len(entries)),
	)
	return entries, nil
}

// Resolve always reports not found. The document is fully materialized by
// Entries and has no lazy path.
func (s *JSONSource) Resolve(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", NewSourceClosedError(s.Name())
	}
	return "", NewPromptNotFoundError(name)
}

// Close marks the source closed. Later calls fail with a closed error.
func (s *JSONSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// sortedObjectKeys returns the keys of a decoded JSON object in sorted
// order, making walk results deterministic.
func sortedObjectKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// validateObject checks that every value in the object tree is a string or
// a nested object. Fails on the first offending key.
func validateObject(obj map[string]any, prefix string) error {
	for _, key := range sortedObjectKeys(obj) {
		qualified := key
		if prefix != "" {
			qualified = prefix + NameSeparator + key
		}
		switch value := obj[key].(type) {
		case string:
		case map[string]any:
			if err := validateObject(value, qualified); err != nil {
				return err
			}
		default:
			return NewJSONValueTypeError(key, qualified)
		}
	}
	return nil
}

// flattenObject collects the object tree into entries keyed by qualified
// name. Values are stored exactly as they appear in the document.
func flattenObject(obj map[string]any, prefix string, entries map[string]string) error {
	for _, key := range sortedObjectKeys(obj) {
		qualified := key
		if prefix != "" {
			qualified = prefix + NameSeparator + key
		}
		switch value := obj[key].(type) {
		case string:
			entries[qualified] = value
		case map[string]any:
			if err := flattenObject(value, qualified, entries); err != nil {
				return err
			}
		default:
			return NewJSONValueTypeError(key, qualified)
		}
	}
	return nil
}
