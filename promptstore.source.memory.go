package promptstore

import (
	"context"
	"strings"
	"sync"
)

// MemorySource is an in-memory source. It is mostly useful for tests and
// for seeding stores programmatically before wrapping them in a Store.
type MemorySource struct {
	mu      sync.RWMutex
	entries map[string]string
	closed  bool
}

// MemorySourceDriver creates MemorySource instances.
type MemorySourceDriver struct{}

func init() {
	RegisterSourceDriver(SourceDriverMemory, &MemorySourceDriver{})
}

// Open creates a new empty MemorySource. The locator is ignored.
func (d *MemorySourceDriver) Open(locator string) (Source, error) {
	return NewMemorySource(), nil
}

// NewMemorySource creates an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		entries: make(map[string]string),
	}
}

// Name returns the driver name of the source.
func (s *MemorySource) Name() string {
	return SourceDriverMemory
}

// Describe returns an empty string. Memory sources have no backing
// descriptor.
func (s *MemorySource) Describe() string {
	return ""
}

// Put stores a prompt under a qualified name, trimming surrounding
// whitespace. An existing entry is replaced.
func (s *MemorySource) Put(name, text string) error {
	if err := ValidatePromptName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewSourceClosedError(s.Name())
	}
	s.entries[name] = strings.TrimSpace(text)
	return nil
}

// Delete removes a prompt. Deleting an absent name is a no-op.
func (s *MemorySource) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewSourceClosedError(s.Name())
	}
	delete(s.entries, name)
	return nil
}

// Entries returns a copy of all stored prompts.
func (s *MemorySource) Entries(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewSourceClosedError(s.Name())
	}
	return copyStringMap(s.entries), nil
}

// Resolve returns the prompt stored under a qualified name.
func (s *MemorySource) Resolve(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", NewSourceClosedError(s.Name())
	}
	if text, ok := s.entries[name]; ok {
		return text, nil
	}
	return "", NewPromptNotFoundError(name)
}

// Close marks the source closed. Later calls fail with a closed error.
func (s *MemorySource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
