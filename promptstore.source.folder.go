package promptstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FolderSource reads prompts from a folder tree. Each prompt is a markdown
// or plain text file; the qualified name of a prompt is its slash-separated
// path relative to the root, without the file extension. When both a
// markdown and a plain text file share a base name the markdown file wins.
//
// Folder layout:
//
//	<root>/
//	  hello.txt
//	  test.md
//	  subfolder/
//	    nested.md
//
// A lazy folder source resolves names one file at a time; an eager one
// walks the whole tree up front.
type FolderSource struct {
	mu       sync.RWMutex
	root     string
	eager    bool
	closed   bool
	logger   *zap.Logger
	recorder Recorder
}

// FolderSourceDriver creates lazy FolderSource instances.
type FolderSourceDriver struct{}

// EagerFolderSourceDriver creates eager FolderSource instances.
type EagerFolderSourceDriver struct{}

func init() {
	RegisterSourceDriver(SourceDriverFolder, &FolderSourceDriver{})
	RegisterSourceDriver(SourceDriverFolderEager, &EagerFolderSourceDriver{})
}

// Open creates a new lazy FolderSource. The locator is the root folder path.
func (d *FolderSourceDriver) Open(locator string) (Source, error) {
	return NewFolderSource(locator)
}

// Open creates a new eager FolderSource. The locator is the root folder path.
func (d *EagerFolderSourceDriver) Open(locator string) (Source, error) {
	return NewFolderSource(locator, WithSourceEagerLoad())
}

// NewFolderSource creates a folder-backed source. The root must name an
// existing directory.
func NewFolderSource(root string, opts ...SourceOption) (*FolderSource, error) {
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg = cfg.normalized()

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, NewFolderInvalidError(root)
	}

	return &FolderSource{
		root:     root,
		eager:    cfg.eager,
		logger:   cfg.logger,
		recorder: cfg.recorder,
	}, nil
}

// Name returns the driver name of the source.
func (s *FolderSource) Name() string {
	if s.eager {
		return SourceDriverFolderEager
	}
	return SourceDriverFolder
}

// Describe returns the root folder path.
func (s *FolderSource) Describe() string {
	return s.root
}

// Entries returns all prompts under the root for an eager source. A lazy
// source returns an empty snapshot.
func (s *FolderSource) Entries(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewSourceClosedError(s.Name())
	}

	entries := make(map[string]string)
	if !s.eager {
		return entries, nil
	}

	exts := make(map[string]string)
	if err := s.walkFolder(ctx, s.root, "", entries, exts); err != nil {
		return nil, err
	}

	s.logger.Debug(LogMsgEagerLoadComplete,
		zap.String(LogFieldPath, s.root),
		zap.Int(LogFieldCount, len(entries)),
	)
	return entries, nil
}

// walkFolder descends into dir collecting prompt files. exts remembers the
// file extension behind each collected name so extension collisions can be
// resolved in favor of markdown.
func (s *FolderSource) walkFolder(ctx context.Context, dir, prefix string, entries, exts map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return NewFileReadError(dir, err)
	}

	for _, dirEntry := range dirEntries {
		path := filepath.Join(dir, dirEntry.Name())
		if dirEntry.IsDir() {
			childPrefix := dirEntry.Name()
			if prefix != "" {
				childPrefix = prefix + NameSeparator + dirEntry.Name()
			}
			if err := s.walkFolder(ctx, path, childPrefix, entries, exts); err != nil {
				return err
			}
			continue
		}

		ext := filepath.Ext(dirEntry.Name())
		if ext != FileExtensionMarkdown && ext != FileExtensionPlainText {
			continue
		}

		name := strings.TrimSuffix(dirEntry.Name(), ext)
		if prefix != "" {
			name = prefix + NameSeparator + name
		}

		if prevExt, exists := exts[name]; exists {
			s.noteCollision(name, path)
			if prevExt == FileExtensionMarkdown {
				continue
			}
		}

		text, err := readPromptFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		entries[name] = text
		exts[name] = ext
	}
	return nil
}

// noteCollision logs and records a markdown/plain-text base name clash.
func (s *FolderSource) noteCollision(name, path string) {
	s.logger.Warn(LogMsgExtensionCollision,
		zap.String(LogFieldPrompt, name),
		zap.String(LogFieldPath, path),
	)
	s.recorder.Record(
		NewDiagnostic(DiagnosticExtensionCollision, DiagMsgExtensionCollision).
			WithName(name).
			WithPath(path),
	)
}

// Resolve probes the folder for a single qualified name, trying the
// markdown extension before the plain text one.
func (s *FolderSource) Resolve(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := ValidatePromptName(name); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", NewSourceClosedError(s.Name())
	}

	base := filepath.Join(s.root, filepath.FromSlash(name))
	text, err := readPromptFile(base + FileExtensionMarkdown)
	if err == nil {
		// Markdown wins, but a plain text sibling is still a collision.
		if _, statErr := os.Stat(base + FileExtensionPlainText); statErr == nil {
			s.noteCollision(name, base+FileExtensionPlainText)
		}
		return text, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	text, err = readPromptFile(base + FileExtensionPlainText)
	if err == nil {
		return text, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	s.logger.Debug(LogMsgLazyLoadMiss,
		zap.String(LogFieldPrompt, name),
		zap.String(LogFieldPath, base),
	)
	return "", NewPromptNotFoundError(name)
}

// Close marks the source closed. Later calls fail with a closed error.
func (s *FolderSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// readPromptFile reads a prompt file and trims surrounding whitespace.
// A missing file is reported as fs.ErrNotExist so callers can keep probing.
func readPromptFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		return "", NewFileReadError(path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
