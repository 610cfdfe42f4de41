package promptstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePromptFile creates a prompt file under dir, creating parent folders.
func writePromptFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// promptFolder builds the standard test tree: hello.txt, test.md and
// subfolder/nested.txt.
func promptFolder(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writePromptFile(t, dir, "hello.txt", "Say hello!")
	writePromptFile(t, dir, "test.md", "This is a test prompt.")
	writePromptFile(t, dir, "subfolder/nested.txt", "This is a nested prompt.")
	return dir
}

func TestNewFolderSource(t *testing.T) {
	t.Run("accepts existing directory", func(t *testing.T) {
		src, err := NewFolderSource(t.TempDir())
		require.NoError(t, err)
		defer src.Close()

		assert.Equal(t, SourceDriverFolder, src.Name())
	})

	t.Run("rejects missing directory", func(t *testing.T) {
		_, err := NewFolderSource(filepath.Join(t.TempDir(), "absent"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFolderInvalid)
	})

	t.Run("rejects file path", func(t *testing.T) {
		dir := t.TempDir()
		path := writePromptFile(t, dir, "file.txt", "text")

		_, err := NewFolderSource(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFolderInvalid)
	})
}

func TestFolderSource_Resolve(t *testing.T) {
	dir := promptFolder(t)
	src, err := NewFolderSource(dir)
	require.NoError(t, err)
	defer src.Close()

	ctx := context.Background()

	t.Run("resolves plain text file", func(t *testing.T) {
		text, err := src.Resolve(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "Say hello!", text)
	})

	t.Run("resolves markdown file", func(t *testing.T) {
		text, err := src.Resolve(ctx, "test")
		require.NoError(t, err)
		assert.Equal(t, "This is a test prompt.", text)
	})

	t.Run("resolves nested name", func(t *testing.T) {
		text, err := src.Resolve(ctx, "subfolder/nested")
		require.NoError(t, err)
		assert.Equal(t, "This is a nested prompt.", text)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		writePromptFile(t, dir, "padded.txt", "\n  padded content \n\n")
		text, err := src.Resolve(ctx, "padded")
		require.NoError(t, err)
		assert.Equal(t, "padded content", text)
	})

	t.Run("markdown wins over plain text and records the collision", func(t *testing.T) {
		writePromptFile(t, dir, "both.md", "markdown text")
		writePromptFile(t, dir, "both.txt", "plain text")

		rec := NewMemoryRecorder(DefaultRecorderLimit)
		recorded, err := NewFolderSource(dir, WithSourceRecorder(rec))
		require.NoError(t, err)
		defer recorded.Close()

		text, err := recorded.Resolve(ctx, "both")
		require.NoError(t, err)
		assert.Equal(t, "markdown text", text)

		collisions := rec.OfKind(DiagnosticExtensionCollision)
		require.Len(t, collisions, 1)
		assert.Equal(t, "both", collisions[0].Name)
	})

	t.Run("miss returns not-found", func(t *testing.T) {
		_, err := src.Resolve(ctx, "absent")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("rejects traversal names", func(t *testing.T) {
		for _, name := range []string{"../outside", "a/../b", "..", `a\b`} {
			_, err := src.Resolve(ctx, name)
			require.Error(t, err, "name %q should be rejected", name)
			assert.False(t, IsNotFound(err), "name %q should fail validation, not lookup", name)
		}
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := src.Resolve(cancelled, "hello")
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestFolderSource_Entries(t *testing.T) {
	t.Run("lazy source returns empty snapshot", func(t *testing.T) {
		src, err := NewFolderSource(promptFolder(t))
		require.NoError(t, err)
		defer src.Close()

		entries, err := src.Entries(context.Background())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("eager source walks the whole tree", func(t *testing.T) {
		src, err := NewFolderSource(promptFolder(t), WithSourceEagerLoad())
		require.NoError(t, err)
		defer src.Close()

		entries, err := src.Entries(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"hello":            "Say hello!",
			"test":             "This is a test prompt.",
			"subfolder/nested": "This is a nested prompt.",
		}, entries)
	})

	t.Run("ignores unrecognized extensions", func(t *testing.T) {
		dir := t.TempDir()
		writePromptFile(t, dir, "keep.md", "kept")
		writePromptFile(t, dir, "skip.json", "{}")
		writePromptFile(t, dir, "skip.yaml", "a: b")
		writePromptFile(t, dir, "noext", "no extension")

		src, err := NewFolderSource(dir, WithSourceEagerLoad())
		require.NoError(t, err)
		defer src.Close()

		entries, err := src.Entries(context.Background())
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"keep": "kept"}, entries)
	})

	t.Run("extension collision keeps markdown and records a diagnostic", func(t *testing.T) {
		dir := t.TempDir()
		writePromptFile(t, dir, "both.md", "markdown text")
		writePromptFile(t, dir, "both.txt", "plain text")

		rec := NewMemoryRecorder(DefaultRecorderLimit)
		src, err := NewFolderSource(dir, WithSourceEagerLoad(), WithSourceRecorder(rec))
		require.NoError(t, err)
		defer src.Close()

		entries, err := src.Entries(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "markdown text", entries["both"])

		collisions := rec.OfKind(DiagnosticExtensionCollision)
		require.Len(t, collisions, 1)
		assert.Equal(t, "both", collisions[0].Name)
	})
}

func TestFolderSource_Close(t *testing.T) {
	src, err := NewFolderSource(promptFolder(t))
	require.NoError(t, err)
	require.NoError(t, src.Close())

	_, err = src.Resolve(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgSourceClosed)

	_, err = src.Entries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgSourceClosed)
}
