package promptstore

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPromptName(t *testing.T) {
	assert.Equal(t, []string{"hello"}, SplitPromptName("hello"))
	assert.Equal(t, []string{"subfolder", "nested"}, SplitPromptName("subfolder/nested"))
	assert.Equal(t, []string{"a", "b", "c"}, SplitPromptName("a/b/c"))
}

func TestJoinPromptName(t *testing.T) {
	assert.Equal(t, "hello", JoinPromptName("hello"))
	assert.Equal(t, "subfolder/nested", JoinPromptName("subfolder", "nested"))
}

func TestValidatePromptName(t *testing.T) {
	t.Run("accepts valid names", func(t *testing.T) {
		valid := []string{
			"hello",
			"subfolder/nested",
			"a/b/c",
			"with_underscore",
			"with-dash",
			"with.dot",
			"UPPER case",
		}
		for _, name := range valid {
			assert.NoError(t, ValidatePromptName(name), "name %q should be valid", name)
		}
	})

	t.Run("rejects empty name", func(t *testing.T) {
		err := ValidatePromptName("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEmptyPromptName)
	})

	t.Run("rejects empty segments", func(t *testing.T) {
		for _, name := range []string{"/leading", "trailing/", "a//b"} {
			err := ValidatePromptName(name)
			require.Error(t, err, "name %q should be rejected", name)
			assert.Contains(t, err.Error(), ErrMsgInvalidPromptName)
		}
	})

	t.Run("rejects dot segments", func(t *testing.T) {
		for _, name := range []string{"..", ".", "a/../b", "./a"} {
			err := ValidatePromptName(name)
			require.Error(t, err, "name %q should be rejected", name)
		}
	})

	t.Run("rejects filesystem metacharacters", func(t *testing.T) {
		for _, name := range []string{`back\slash`, "colon:name", "star*", "quest?", `quo"te`, "pipe|name", "nul\x00byte"} {
			err := ValidatePromptName(name)
			require.Error(t, err, "name %q should be rejected", name)
		}
	})

	t.Run("carries name and reason metadata", func(t *testing.T) {
		err := ValidatePromptName("a/../b")
		require.Error(t, err)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		name, ok := customErr.GetMetadata(MetaKeyPrompt)
		require.True(t, ok)
		assert.Equal(t, "a/../b", name)
		reason, ok := customErr.GetMetadata(MetaKeyReason)
		require.True(t, ok)
		assert.Equal(t, ReasonDotSegment, reason)
	})
}

func TestValidateTopLevelName(t *testing.T) {
	assert.NoError(t, validateTopLevelName("hello"))

	err := validateTopLevelName("subfolder/nested")
	require.Error(t, err)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	reason, ok := customErr.GetMetadata(MetaKeyReason)
	require.True(t, ok)
	assert.Equal(t, ReasonNestedName, reason)
}
