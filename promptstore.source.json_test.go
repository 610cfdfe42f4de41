package promptstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeJSONDocument writes a prompts document into a temp folder.
func writeJSONDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewJSONSource(t *testing.T) {
	t.Run("accepts existing file", func(t *testing.T) {
		path := writeJSONDocument(t, `{"test": "this is a test"}`)
		src, err := NewJSONSource(path)
		require.NoError(t, err)
		defer src.Close()

		assert.Equal(t, SourceDriverJSON, src.Name())
		assert.Equal(t, path, src.Describe())
	})

	t.Run("rejects missing file", func(t *testing.T) {
		_, err := NewJSONSource(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFileInvalid)
	})

	t.Run("rejects directory path", func(t *testing.T) {
		_, err := NewJSONSource(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFileInvalid)
	})
}

func TestJSONSource_Entries(t *testing.T) {
	ctx := context.Background()

	t.Run("flattens nested objects into qualified names", func(t *testing.T) {
		path := writeJSONDocument(t, `{
			"test": "this is a test",
			"reviews": {
				"tone": "Keep the tone neutral.",
				"length": "Stay under 100 words."
			}
		}`)
		src, err := NewJSONSource(path)
		require.NoError(t, err)
		defer src.Close()

		entries, err := src.Entries(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"test":           "this is a test",
			"reviews/tone":   "Keep the tone neutral.",
			"reviews/length": "Stay under 100 words.",
		}, entries)
	})

	t.Run("keeps surrounding whitespace intact", func(t *testing.T) {
		path := writeJSONDocument(t, `{"padded": "  padded value \n"}`)
		src, err := NewJSONSource(path)
		require.NoError(t, err)
		defer src.Close()

		entries, err := src.Entries(ctx)
		require.NoError(t, err)
		assert.Equal(t, "  padded value \n", entries["padded"])

		// The exact document value survives all the way through a store.
		store, err := NewJSONStore(path)
		require.NoError(t, err)
		defer store.Close()

		text, err := store.GetPrompt(ctx, "padded")
		require.NoError(t, err)
		assert.Equal(t, "  padded value \n", text)
	})

	t.Run("rejects non-object root", func(t *testing.T) {
		path := writeJSONDocument(t, `["not", "an", "object"]`)
		src, err := NewJSONSource(path)
		require.NoError(t, err)
		defer src.Close()

		_, err = src.Entries(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgJSONNotObject)
	})

	t.Run("rejects malformed document", func(t *testing.T) {
		path := writeJSONDocument(t, `{"broken":`)
		src, err := NewJSONSource(path)
		require.NoError(t, err)
		defer src.Close()

		_, err = src.Entries(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgJSONParseFailed)
	})

	t.Run("names the offending key on a bad value type", func(t *testing.T) {
		path := writeJSONDocument(t, `{"stats": {"count": 42}}`)
		src, err := NewJSONSource(path)
		require.NoError(t, err)
		defer src.Close()

		_, err = src.Entries(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgJSONValueType)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))

		key, ok := customErr.GetMetadata(MetaKeyKey)
		require.True(t, ok)
		assert.Equal(t, "count", key)

		keyPath, ok := customErr.GetMetadata(MetaKeyPath)
		require.True(t, ok)
		assert.Equal(t, "stats/count", keyPath)
	})

	t.Run("validation checks the whole document up front", func(t *testing.T) {
		path := writeJSONDocument(t, `{"zz": {"bad": null}, "aa": "fine"}`)
		src, err := NewJSONSource(path, WithSourceValidation())
		require.NoError(t, err)
		defer src.Close()

		_, err = src.Entries(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgJSONValueType)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		path := writeJSONDocument(t, `{"test": "this is a test"}`)
		src, err := NewJSONSource(path)
		require.NoError(t, err)
		defer src.Close()

		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = src.Entries(cancelled)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestJSONSource_Resolve(t *testing.T) {
	path := writeJSONDocument(t, `{"test": "this is a test"}`)
	src, err := NewJSONSource(path)
	require.NoError(t, err)
	defer src.Close()

	// JSON sources have no lazy path
	_, err = src.Resolve(context.Background(), "test")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestJSONSource_Close(t *testing.T) {
	path := writeJSONDocument(t, `{"test": "this is a test"}`)
	src, err := NewJSONSource(path)
	require.NoError(t, err)
	require.NoError(t, src.Close())

	_, err = src.Entries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgSourceClosed)
}
