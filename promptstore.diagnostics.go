package promptstore

import (
	"sync"
	"time"
)

// Recorder receives the soft-warning diagnostics emitted by the store, its
// sources, and the placeholder filler. Implementations must be safe for
// concurrent use.
type Recorder interface {
	Record(d *Diagnostic)
}

// DiagnosticKind identifies a soft-warning category.
type DiagnosticKind int

const (
	// DiagnosticDuplicatePrompt - AddPrompt hit an existing name, nothing was changed
	DiagnosticDuplicatePrompt DiagnosticKind = iota
	// DiagnosticExtensionCollision - markdown and plain text files share a base name
	DiagnosticExtensionCollision
	// DiagnosticFillCountMismatch - positional fill marker and value counts differ
	DiagnosticFillCountMismatch
	// DiagnosticUnresolvedPlaceholder - named fill left a marker untouched
	DiagnosticUnresolvedPlaceholder
)

// Diagnostic kind string values
const (
	DiagnosticNameDuplicatePrompt       = "duplicate_prompt"
	DiagnosticNameExtensionCollision    = "extension_collision"
	DiagnosticNameFillCountMismatch     = "fill_count_mismatch"
	DiagnosticNameUnresolvedPlaceholder = "unresolved_placeholder"
)

// String returns the string representation of the diagnostic kind
func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticExtensionCollision:
		return DiagnosticNameExtensionCollision
	case DiagnosticFillCountMismatch:
		return DiagnosticNameFillCountMismatch
	case DiagnosticUnresolvedPlaceholder:
		return DiagnosticNameUnresolvedPlaceholder
	default:
		return DiagnosticNameDuplicatePrompt
	}
}

// Diagnostic message constants
const (
	DiagMsgDuplicatePrompt       = "prompt already present, adding nothing"
	DiagMsgExtensionCollision    = "markdown and plain text files share a base name, keeping markdown"
	DiagMsgFillCountMismatch     = "placeholder and value counts differ"
	DiagMsgUnresolvedPlaceholder = "no value supplied for named placeholder"
)

// Diagnostic is a single structured warning record.
type Diagnostic struct {
	// Kind is the warning category.
	Kind DiagnosticKind

	// Message is the human-readable description (always one of the DiagMsg
	// constants).
	Message string

	// Name is the qualified prompt name the warning concerns, if any.
	Name string

	// Path is the backing file or document path, if any.
	Path string

	// Details carries additional key/value context (MetaKey* keys).
	Details map[string]string

	// Timestamp records when the diagnostic was emitted.
	Timestamp time.Time
}

// NewDiagnostic creates a diagnostic with the current timestamp.
func NewDiagnostic(kind DiagnosticKind, message string) *Diagnostic {
	return &Diagnostic{
		Kind:      kind,
		Message:   message,
		Timestamp: timeNow(),
	}
}

// WithName sets the qualified prompt name.
func (d *Diagnostic) WithName(name string) *Diagnostic {
	d.Name = name
	return d
}

// WithPath sets the backing path.
func (d *Diagnostic) WithPath(path string) *Diagnostic {
	d.Path = path
	return d
}

// WithDetail adds a key/value detail.
func (d *Diagnostic) WithDetail(key, value string) *Diagnostic {
	if d.Details == nil {
		d.Details = make(map[string]string)
	}
	d.Details[key] = value
	return d
}

// NopRecorder discards all diagnostics.
// Useful when warnings are only wanted in the log stream.
type NopRecorder struct{}

// Record does nothing.
func (r *NopRecorder) Record(d *Diagnostic) {}

// MemoryRecorder stores diagnostics in memory.
// Useful for testing and for asserting on emitted warnings.
type MemoryRecorder struct {
	mu          sync.RWMutex
	diagnostics []*Diagnostic
	limit       int
}

// NewMemoryRecorder creates an in-memory recorder.
// If limit > 0, only the most recent diagnostics are kept.
func NewMemoryRecorder(limit int) *MemoryRecorder {
	return &MemoryRecorder{
		diagnostics: make([]*Diagnostic, 0),
		limit:       limit,
	}
}

// Record stores a diagnostic in memory.
func (r *MemoryRecorder) Record(d *Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.diagnostics = append(r.diagnostics, d)

	// Trim if over limit
	if r.limit > 0 && len(r.diagnostics) > r.limit {
		r.diagnostics = r.diagnostics[len(r.diagnostics)-r.limit:]
	}
}

// Diagnostics returns all stored diagnostics.
func (r *MemoryRecorder) Diagnostics() []*Diagnostic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Diagnostic, len(r.diagnostics))
	copy(result, r.diagnostics)
	return result
}

// Clear removes all stored diagnostics.
func (r *MemoryRecorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics = make([]*Diagnostic, 0)
}

// Count returns the number of stored diagnostics.
func (r *MemoryRecorder) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.diagnostics)
}

// Last returns the most recent diagnostic, or nil if none.
func (r *MemoryRecorder) Last() *Diagnostic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.diagnostics) == 0 {
		return nil
	}
	return r.diagnostics[len(r.diagnostics)-1]
}

// Filtered returns diagnostics matching the filter function.
func (r *MemoryRecorder) Filtered(filter func(*Diagnostic) bool) []*Diagnostic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Diagnostic
	for _, d := range r.diagnostics {
		if filter(d) {
			result = append(result, d)
		}
	}
	return result
}

// OfKind returns diagnostics of the given kind.
func (r *MemoryRecorder) OfKind(kind DiagnosticKind) []*Diagnostic {
	return r.Filtered(func(d *Diagnostic) bool {
		return d.Kind == kind
	})
}

// ChannelRecorder sends diagnostics to a channel.
// Useful for streaming warnings to an external consumer.
type ChannelRecorder struct {
	ch chan<- *Diagnostic
}

// NewChannelRecorder creates a recorder that sends diagnostics to a channel.
// The channel should be buffered to prevent drops.
func NewChannelRecorder(ch chan<- *Diagnostic) *ChannelRecorder {
	return &ChannelRecorder{ch: ch}
}

// Record sends the diagnostic to the channel.
// Returns immediately if the channel is full (non-blocking).
func (r *ChannelRecorder) Record(d *Diagnostic) {
	select {
	case r.ch <- d:
	default:
		// Channel full, drop diagnostic
	}
}

// FuncRecorder wraps a function as a recorder.
// Useful for simple inline recorders.
type FuncRecorder struct {
	fn func(*Diagnostic)
}

// NewFuncRecorder creates a recorder from a function.
func NewFuncRecorder(fn func(*Diagnostic)) *FuncRecorder {
	return &FuncRecorder{fn: fn}
}

// Record calls the wrapped function.
func (r *FuncRecorder) Record(d *Diagnostic) {
	r.fn(d)
}

// MultiRecorder fans diagnostics out to multiple recorders.
type MultiRecorder struct {
	recorders []Recorder
}

// NewMultiRecorder creates a recorder that forwards to all given recorders.
func NewMultiRecorder(recorders ...Recorder) *MultiRecorder {
	return &MultiRecorder{recorders: recorders}
}

// Record forwards the diagnostic to every recorder.
func (r *MultiRecorder) Record(d *Diagnostic) {
	for _, rec := range r.recorders {
		rec.Record(d)
	}
}

// AddRecorder appends a recorder to the fan-out set.
func (r *MultiRecorder) AddRecorder(rec Recorder) {
	r.recorders = append(r.recorders, rec)
}

// timeNow allows tests to stub time.
var timeNow = time.Now
