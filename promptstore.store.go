package promptstore

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Store holds a namespace of named prompts: an in-memory tree of leaves and
// namespaces, a content digest per materialized leaf, and an optional backing
// source consulted lazily on resolution misses. A single mutex guards
// mutation (AddPrompt and lazy cache inserts); readers work against a stable
// snapshot.
type Store struct {
	mu       sync.RWMutex
	root     *Entry
	digests  map[string]string
	source   Source
	logger   *zap.Logger
	recorder Recorder
}

// New creates an empty in-memory store.
func New(opts ...Option) *Store {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return newStore(cfg, nil)
}

// NewFolderStore creates a store backed by a directory tree of .md and .txt
// files. Resolution is lazy by default; WithEagerLoad materializes the whole
// tree at construction. The path must be an existing directory.
func NewFolderStore(root string, opts ...Option) (*Store, error) {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	srcOpts := []SourceOption{
		WithSourceLogger(cfg.logger),
		WithSourceRecorder(cfg.recorder),
	}
	if cfg.eagerLoad {
		srcOpts = append(srcOpts, WithSourceEagerLoad())
	}
	src, err := NewFolderSource(root, srcOpts...)
	if err != nil {
		return nil, err
	}
	s := newStore(cfg, src)
	if err := s.loadFromSource(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// NewJSONStore creates a store loaded eagerly from a JSON document of nested
// string values. WithJSONValidation checks the whole document shape before
// any entry is committed.
func NewJSONStore(path string, opts ...Option) (*Store, error) {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	srcOpts := []SourceOption{
		WithSourceLogger(cfg.logger),
		WithSourceRecorder(cfg.recorder),
	}
	if cfg.validateJSON {
		srcOpts = append(srcOpts, WithSourceValidation())
	}
	src, err := NewJSONSource(path, srcOpts...)
	if err != nil {
		return nil, err
	}
	s := newStore(cfg, src)
	if err := s.loadFromSource(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStoreFromSource creates a store over any source: the source's eager
// snapshot is materialized at construction and the source stays attached for
// lazy resolution.
func NewStoreFromSource(src Source, opts ...Option) (*Store, error) {
	cfg := defaultStoreConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	s := newStore(cfg, src)
	if src != nil {
		if err := s.loadFromSource(context.Background()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newStore(cfg *storeConfig, src Source) *Store {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	recorder := cfg.recorder
	if recorder == nil {
		recorder = &NopRecorder{}
	}
	s := &Store{
		root:     newNamespace(),
		digests:  make(map[string]string),
		source:   src,
		logger:   logger,
		recorder: recorder,
	}
	if src != nil {
		s.logger.Debug(LogMsgSourceOpened,
			zap.String(LogFieldDriver, src.Name()),
			zap.String(LogFieldSource, src.Describe()))
	}
	s.logger.Debug(LogMsgStoreCreated, zap.String(LogFieldSource, s.Describe()))
	return s
}

// loadFromSource materializes the source's eager snapshot. Entries are
// inserted in sorted name order so collisions resolve deterministically.
func (s *Store) loadFromSource(ctx context.Context) error {
	entries, err := s.source.Entries(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		s.insertLocked(name, entries[name])
	}
	s.logger.Debug(LogMsgEagerLoadComplete,
		zap.String(LogFieldSource, s.source.Describe()),
		zap.Int(LogFieldCount, len(names)))
	return nil
}

// AddPrompt inserts a leaf prompt at the top level of the namespace. An
// existing name is never overwritten: the call emits a duplicate diagnostic
// and leaves the store unchanged. The digest cache is updated on insert.
func (s *Store) AddPrompt(name, text string) error {
	if err := validateTopLevelName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.root.children[name]; exists {
		s.warn(NewDiagnostic(DiagnosticDuplicatePrompt, DiagMsgDuplicatePrompt).
			WithName(name))
		return nil
	}
	s.root.children[name] = newLeaf(text)
	s.digests[name] = Digest(text)
	s.logger.Debug(LogMsgPromptAdded, zap.String(LogFieldPrompt, name))
	return nil
}

// GetPrompt resolves a qualified name to leaf text. In-memory entries are
// consulted first; on a full-path miss the backing source's lazy resolution
// is probed and a hit is cached together with its digest. Resolution never
// mutates navigation state: the full path is walked per call.
func (s *Store) GetPrompt(ctx context.Context, name string) (string, error) {
	if err := ValidatePromptName(name); err != nil {
		return "", err
	}

	s.mu.RLock()
	entry, err := s.lookupLocked(name)
	s.mu.RUnlock()
	if err != nil {
		return "", err
	}
	if entry != nil {
		if entry.IsLeaf() {
			return entry.Text(), nil
		}
		return "", NewNotALeafError(name)
	}

	return s.materialize(ctx, name)
}

// MustGetPrompt is like GetPrompt but panics on error.
func (s *Store) MustGetPrompt(ctx context.Context, name string) string {
	text, err := s.GetPrompt(ctx, name)
	if err != nil {
		panic(err)
	}
	return text
}

// GetPromptWithDigest returns the prompt text together with its recorded
// digest. Unlike GetPrompt it never probes the backing source: a prompt
// that has not been materialized yet fails with a not-found error.
func (s *Store) GetPromptWithDigest(name string) (string, string, error) {
	if err := ValidatePromptName(name); err != nil {
		return "", "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	digest, ok := s.digests[name]
	if !ok {
		return "", "", NewPromptNotFoundError(name)
	}
	entry, err := s.lookupLocked(name)
	if err != nil {
		return "", "", err
	}
	if entry == nil || !entry.IsLeaf() {
		return "", "", NewPromptNotFoundError(name)
	}
	return entry.Text(), digest, nil
}

// Resolve resolves a qualified name to an entry view: a leaf or a navigable
// namespace. Leaf misses fall back to the source's lazy resolution, exactly
// like GetPrompt.
func (s *Store) Resolve(ctx context.Context, name string) (*Entry, error) {
	if err := ValidatePromptName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entry, err := s.lookupLocked(name)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry, nil
	}

	if _, err := s.materialize(ctx, name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, err = s.lookupLocked(name)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, NewPromptNotFoundError(name)
	}
	return entry, nil
}

// materialize probes the backing source for a leaf and caches the hit.
func (s *Store) materialize(ctx context.Context, name string) (string, error) {
	if s.source == nil {
		return "", NewPromptNotFoundError(name)
	}
	text, err := s.source.Resolve(ctx, name)
	if err != nil {
		s.logger.Debug(LogMsgLazyLoadMiss,
			zap.String(LogFieldPrompt, name),
			zap.String(LogFieldSource, s.source.Describe()))
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock: a concurrent caller may have resolved
	// the same name already.
	entry, lerr := s.lookupLocked(name)
	if lerr != nil {
		return "", lerr
	}
	if entry != nil {
		if entry.IsLeaf() {
			return entry.Text(), nil
		}
		return "", NewNotALeafError(name)
	}
	if !s.insertLocked(name, text) {
		return "", NewPromptNotFoundError(name)
	}
	s.logger.Debug(LogMsgPromptMaterialized,
		zap.String(LogFieldPrompt, name),
		zap.String(LogFieldSource, s.source.Describe()))
	return text, nil
}

// lookupLocked walks the tree. It returns the entry when the full path
// resolves, a nil entry on a final-segment miss, and an error when an
// intermediate segment resolves to a leaf. Callers hold the mutex.
func (s *Store) lookupLocked(name string) (*Entry, error) {
	node := s.root
	segments := SplitPromptName(name)
	for i, segment := range segments {
		child, ok := node.children[segment]
		if !ok {
			return nil, nil
		}
		if i == len(segments)-1 {
			return child, nil
		}
		if !child.IsNamespace() {
			return nil, NewNotANamespaceError(name, segment)
		}
		node = child
	}
	return nil, nil
}

// insertLocked inserts a leaf under a qualified name, creating intermediate
// namespaces. Existing entries are never overwritten: any collision emits a
// duplicate diagnostic and the insert is skipped. Callers hold the mutex.
func (s *Store) insertLocked(name, text string) bool {
	segments := SplitPromptName(name)
	node := s.root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node.children[segment]
		if ok && !child.IsNamespace() {
			s.warn(NewDiagnostic(DiagnosticDuplicatePrompt, DiagMsgDuplicatePrompt).
				WithName(name).
				WithDetail(MetaKeySegment, segment))
			return false
		}
		if !ok {
			child = newNamespace()
			node.children[segment] = child
		}
		node = child
	}

	last := segments[len(segments)-1]
	if _, exists := node.children[last]; exists {
		s.warn(NewDiagnostic(DiagnosticDuplicatePrompt, DiagMsgDuplicatePrompt).
			WithName(name))
		return false
	}
	node.children[last] = newLeaf(text)
	s.digests[name] = Digest(text)
	return true
}

// Names returns the sorted qualified names of all materialized leaves.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.digests))
	for name := range s.digests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Digests returns a copy of the digest map: qualified name to SHA-256 hex.
func (s *Store) Digests() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyStringMap(s.digests)
}

// Len returns the number of materialized leaves.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.digests)
}

// Walk visits every materialized leaf in sorted qualified-name order.
// Returning false from the callback stops the walk.
func (s *Store) Walk(fn func(name, text string) bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.root.Walk(fn)
}

// Source returns the backing source, or nil for a memory-only store.
func (s *Store) Source() Source {
	return s.source
}

// Describe returns the backing descriptor: the folder or document path, or
// an empty string for a memory-only store.
func (s *Store) Describe() string {
	if s.source == nil {
		return ""
	}
	return s.source.Describe()
}

// Close releases the backing source, if any.
func (s *Store) Close() error {
	if s.source == nil {
		return nil
	}
	return s.source.Close()
}

// warn logs a diagnostic and forwards it to the recorder.
func (s *Store) warn(d *Diagnostic) {
	s.logger.Warn(d.Message,
		zap.String(LogFieldPrompt, d.Name),
		zap.String(LogFieldPath, d.Path))
	s.recorder.Record(d)
}

// copyStringMap returns a shallow copy of a string map.
func copyStringMap(m map[string]string) map[string]string {
	result := make(map[string]string, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
