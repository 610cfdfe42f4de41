package promptstore

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSourceDrivers_BuiltIns(t *testing.T) {
	drivers := ListSourceDrivers()

	assert.Contains(t, drivers, SourceDriverFolder)
	assert.Contains(t, drivers, SourceDriverFolderEager)
	assert.Contains(t, drivers, SourceDriverJSON)
	assert.Contains(t, drivers, SourceDriverMemory)
	assert.True(t, sort.StringsAreSorted(drivers))
}

func TestRegisterSourceDriver(t *testing.T) {
	// Clean up after test
	defer func() {
		sourceDriversMu.Lock()
		delete(sourceDrivers, "test-driver")
		sourceDriversMu.Unlock()
	}()

	RegisterSourceDriver("test-driver", SourceDriverFunc(func(locator string) (Source, error) {
		return NewMemorySource(), nil
	}))

	assert.Contains(t, ListSourceDrivers(), "test-driver")

	src, err := OpenSource("test-driver", "")
	require.NoError(t, err)
	assert.Equal(t, SourceDriverMemory, src.Name())
}

func TestRegisterSourceDriver_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() {
		RegisterSourceDriver("nil-driver", nil)
	})
}

func TestRegisterSourceDriver_PanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() {
		RegisterSourceDriver(SourceDriverFolder, &FolderSourceDriver{})
	})
}

func TestOpenSource(t *testing.T) {
	t.Run("opens folder source", func(t *testing.T) {
		dir := t.TempDir()
		src, err := OpenSource(SourceDriverFolder, dir)
		require.NoError(t, err)
		defer src.Close()

		assert.Equal(t, SourceDriverFolder, src.Name())
		assert.Equal(t, dir, src.Describe())
	})

	t.Run("opens eager folder source", func(t *testing.T) {
		dir := t.TempDir()
		src, err := OpenSource(SourceDriverFolderEager, dir)
		require.NoError(t, err)
		defer src.Close()

		assert.Equal(t, SourceDriverFolderEager, src.Name())
	})

	t.Run("opens memory source", func(t *testing.T) {
		src, err := OpenSource(SourceDriverMemory, "")
		require.NoError(t, err)
		defer src.Close()

		assert.Equal(t, SourceDriverMemory, src.Name())
		assert.Equal(t, "", src.Describe())
	})

	t.Run("fails for unknown driver", func(t *testing.T) {
		_, err := OpenSource("no-such-driver", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgSourceDriverNotFound)
	})
}
