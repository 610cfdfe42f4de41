package promptstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddPrompt(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and resolves a prompt", func(t *testing.T) {
		store := New()
		require.NoError(t, store.AddPrompt("greeting", "Hello there."))

		text, err := store.GetPrompt(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "Hello there.", text)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("never overwrites an existing name", func(t *testing.T) {
		rec := NewMemoryRecorder(DefaultRecorderLimit)
		store := New(WithRecorder(rec))

		require.NoError(t, store.AddPrompt("greeting", "first text"))
		firstDigest := store.Digests()["greeting"]

		require.NoError(t, store.AddPrompt("greeting", "second text"))

		text, err := store.GetPrompt(ctx, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "first text", text)
		assert.Equal(t, firstDigest, store.Digests()["greeting"])
		assert.Equal(t, Digest("first text"), firstDigest)

		dups := rec.OfKind(DiagnosticDuplicatePrompt)
		require.Len(t, dups, 1)
		assert.Equal(t, "greeting", dups[0].Name)
	})

	t.Run("rejects invalid names", func(t *testing.T) {
		store := New()
		assert.Error(t, store.AddPrompt("", "text"))
		assert.Error(t, store.AddPrompt("bad:name", "text"))
	})

	t.Run("rejects nested names", func(t *testing.T) {
		store := New()
		err := store.AddPrompt("nested/name", "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInvalidPromptName)
	})
}

func TestStore_GetPrompt_Memory(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.AddPrompt("greeting", "Hello there."))

	t.Run("rejects invalid names", func(t *testing.T) {
		_, err := store.GetPrompt(ctx, "")
		assert.Error(t, err)
	})

	t.Run("miss is not-found", func(t *testing.T) {
		_, err := store.GetPrompt(ctx, "absent")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("intermediate leaf fails resolution", func(t *testing.T) {
		_, err := store.GetPrompt(ctx, "greeting/deeper")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgNotANamespace)
	})
}

func TestStore_MustGetPrompt(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.AddPrompt("greeting", "Hello there."))

	assert.Equal(t, "Hello there.", store.MustGetPrompt(ctx, "greeting"))
	assert.Panics(t, func() {
		store.MustGetPrompt(ctx, "absent")
	})
}

func TestStore_GetPromptWithDigest(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.AddPrompt("greeting", "Hello there."))

	text, digest, err := store.GetPromptWithDigest("greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", text)
	assert.Equal(t, Digest("Hello there."), digest)
	assert.Len(t, digest, DigestHexLength)

	_, _, err = store.GetPromptWithDigest("absent")
	assert.True(t, IsNotFound(err))

	t.Run("never probes the backing source", func(t *testing.T) {
		dir := promptFolder(t)
		lazy, err := NewFolderStore(dir)
		require.NoError(t, err)
		defer lazy.Close()

		// The file exists but has not been materialized yet.
		_, _, err = lazy.GetPromptWithDigest("hello")
		assert.True(t, IsNotFound(err))
		assert.Zero(t, lazy.Len())

		// GetPrompt stays the materializing path.
		text, err := lazy.GetPrompt(ctx, "hello")
		require.NoError(t, err)

		got, digest, err := lazy.GetPromptWithDigest("hello")
		require.NoError(t, err)
		assert.Equal(t, text, got)
		assert.Equal(t, Digest(text), digest)
	})
}

func TestNewFolderStore_Lazy(t *testing.T) {
	ctx := context.Background()
	dir := promptFolder(t)

	store, err := NewFolderStore(dir)
	require.NoError(t, err)
	defer store.Close()

	t.Run("nothing materialized up front", func(t *testing.T) {
		assert.Equal(t, 0, store.Len())
	})

	t.Run("resolves the standard tree", func(t *testing.T) {
		for name, want := range map[string]string{
			"hello":            "Say hello!",
			"test":             "This is a test prompt.",
			"subfolder/nested": "This is a nested prompt.",
		} {
			text, err := store.GetPrompt(ctx, name)
			require.NoError(t, err, "prompt %q", name)
			assert.Equal(t, want, text)
		}
		assert.Equal(t, 3, store.Len())
		assert.Equal(t, []string{"hello", "subfolder/nested", "test"}, store.Names())
	})

	t.Run("serves cached text after the backing file is gone", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(dir, "hello.txt")))

		text, err := store.GetPrompt(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "Say hello!", text)
	})

	t.Run("namespace name is not a leaf", func(t *testing.T) {
		_, err := store.GetPrompt(ctx, "subfolder")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("miss is not-found", func(t *testing.T) {
		_, err := store.GetPrompt(ctx, "absent")
		assert.True(t, IsNotFound(err))
	})
}

func TestNewFolderStore_Eager(t *testing.T) {
	dir := promptFolder(t)

	store, err := NewFolderStore(dir, WithEagerLoad())
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, 3, store.Len())
	assert.Equal(t, []string{"hello", "subfolder/nested", "test"}, store.Names())

	text, err := store.GetPrompt(context.Background(), "subfolder/nested")
	require.NoError(t, err)
	assert.Equal(t, "This is a nested prompt.", text)
}

func TestNewFolderStore_InvalidRoot(t *testing.T) {
	_, err := NewFolderStore(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFolderInvalid)
}

func TestNewFolderStore_LeafNamespaceConflict(t *testing.T) {
	dir := t.TempDir()
	writePromptFile(t, dir, "a.txt", "leaf text")
	writePromptFile(t, dir, "a/b.txt", "nested text")

	rec := NewMemoryRecorder(DefaultRecorderLimit)
	store, err := NewFolderStore(dir, WithEagerLoad(), WithRecorder(rec))
	require.NoError(t, err)
	defer store.Close()

	// Sorted insertion materializes "a" first; "a/b" cannot nest under a
	// leaf and is skipped with a diagnostic.
	assert.Equal(t, []string{"a"}, store.Names())
	require.NotEmpty(t, rec.OfKind(DiagnosticDuplicatePrompt))
}

func TestNewJSONStore(t *testing.T) {
	ctx := context.Background()

	t.Run("loads a flat document", func(t *testing.T) {
		path := writeJSONDocument(t, `{"test": "this is a test"}`)
		store, err := NewJSONStore(path)
		require.NoError(t, err)
		defer store.Close()

		text, err := store.GetPrompt(ctx, "test")
		require.NoError(t, err)
		assert.Equal(t, "this is a test", text)
	})

	t.Run("nested objects are reachable by concatenated segments", func(t *testing.T) {
		path := writeJSONDocument(t, `{"reviews": {"tone": "Keep the tone neutral."}}`)
		store, err := NewJSONStore(path)
		require.NoError(t, err)
		defer store.Close()

		text, err := store.GetPrompt(ctx, "reviews/tone")
		require.NoError(t, err)
		assert.Equal(t, "Keep the tone neutral.", text)

		entry, err := store.Resolve(ctx, "reviews")
		require.NoError(t, err)
		assert.True(t, entry.IsNamespace())
		assert.Equal(t, []string{"tone"}, entry.ChildNames())
	})

	t.Run("construction fails on a bad value type", func(t *testing.T) {
		path := writeJSONDocument(t, `{"stats": {"count": 42}}`)
		_, err := NewJSONStore(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgJSONValueType)
	})

	t.Run("validation flag checks before committing", func(t *testing.T) {
		path := writeJSONDocument(t, `{"bad": true}`)
		_, err := NewJSONStore(path, WithJSONValidation())
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgJSONValueType)
	})

	t.Run("missing file fails construction", func(t *testing.T) {
		_, err := NewJSONStore(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFileInvalid)
	})
}

func TestNewStoreFromSource(t *testing.T) {
	ctx := context.Background()

	src := NewMemorySource()
	require.NoError(t, src.Put("greeting", "Hello there."))

	store, err := NewStoreFromSource(src)
	require.NoError(t, err)
	defer store.Close()

	t.Run("materializes the eager snapshot", func(t *testing.T) {
		assert.Equal(t, []string{"greeting"}, store.Names())
	})

	t.Run("falls back to the source on a miss", func(t *testing.T) {
		require.NoError(t, src.Put("late", "Added after construction."))

		text, err := store.GetPrompt(ctx, "late")
		require.NoError(t, err)
		assert.Equal(t, "Added after construction.", text)
		assert.Contains(t, store.Names(), "late")
	})

	t.Run("nil source behaves like a memory-only store", func(t *testing.T) {
		store, err := NewStoreFromSource(nil)
		require.NoError(t, err)
		_, err = store.GetPrompt(ctx, "anything")
		assert.True(t, IsNotFound(err))
	})
}

func TestStore_Resolve(t *testing.T) {
	ctx := context.Background()
	store, err := NewFolderStore(promptFolder(t))
	require.NoError(t, err)
	defer store.Close()

	t.Run("resolves a leaf", func(t *testing.T) {
		entry, err := store.Resolve(ctx, "hello")
		require.NoError(t, err)
		assert.True(t, entry.IsLeaf())
		assert.Equal(t, "Say hello!", entry.Text())
	})

	t.Run("resolves a namespace view", func(t *testing.T) {
		// Materialize the nested leaf so the namespace exists
		_, err := store.GetPrompt(ctx, "subfolder/nested")
		require.NoError(t, err)

		entry, err := store.Resolve(ctx, "subfolder")
		require.NoError(t, err)
		assert.True(t, entry.IsNamespace())
		assert.Equal(t, []string{"nested"}, entry.ChildNames())

		child, ok := entry.Child("nested")
		require.True(t, ok)
		assert.Equal(t, "This is a nested prompt.", child.Text())
	})

	t.Run("repeated resolution needs no state reset", func(t *testing.T) {
		// Failed lookups must not poison later ones
		_, err := store.Resolve(ctx, "absent")
		require.Error(t, err)

		entry, err := store.Resolve(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "Say hello!", entry.Text())
	})

	t.Run("miss is not-found", func(t *testing.T) {
		_, err := store.Resolve(ctx, "absent")
		assert.True(t, IsNotFound(err))
	})
}

func TestStore_Walk(t *testing.T) {
	store := New()
	require.NoError(t, store.AddPrompt("b", "bee"))
	require.NoError(t, store.AddPrompt("a", "ay"))

	var names []string
	store.Walk(func(name, text string) bool {
		names = append(names, name)
		return true
	})
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestStore_Describe(t *testing.T) {
	t.Run("memory-only store has no descriptor", func(t *testing.T) {
		store := New()
		assert.Equal(t, "", store.Describe())
		assert.Nil(t, store.Source())
		assert.NoError(t, store.Close())
	})

	t.Run("folder store describes its root", func(t *testing.T) {
		dir := promptFolder(t)
		store, err := NewFolderStore(dir)
		require.NoError(t, err)
		defer store.Close()

		assert.Equal(t, dir, store.Describe())
		require.NotNil(t, store.Source())
		assert.Equal(t, SourceDriverFolder, store.Source().Name())
	})
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store, err := NewFolderStore(promptFolder(t))
	require.NoError(t, err)
	defer store.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				text, err := store.GetPrompt(ctx, "subfolder/nested")
				assert.NoError(t, err)
				assert.Equal(t, "This is a nested prompt.", text)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, store.Len())
}
