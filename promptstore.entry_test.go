package promptstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryKind_String(t *testing.T) {
	assert.Equal(t, EntryKindNameLeaf, EntryKindLeaf.String())
	assert.Equal(t, EntryKindNameNamespace, EntryKindNamespace.String())
	assert.Equal(t, EntryKindNameLeaf, EntryKind(99).String())
}

func TestEntry_Leaf(t *testing.T) {
	leaf := newLeaf("some text")

	assert.True(t, leaf.IsLeaf())
	assert.False(t, leaf.IsNamespace())
	assert.Equal(t, EntryKindLeaf, leaf.Kind())
	assert.Equal(t, "some text", leaf.Text())
	assert.Equal(t, 0, leaf.Len())
	assert.Empty(t, leaf.ChildNames())

	_, ok := leaf.Child("anything")
	assert.False(t, ok)
}

func TestEntry_Namespace(t *testing.T) {
	ns := newNamespace()
	ns.children["b"] = newLeaf("bee")
	ns.children["a"] = newLeaf("ay")

	assert.True(t, ns.IsNamespace())
	assert.False(t, ns.IsLeaf())
	assert.Equal(t, EntryKindNamespace, ns.Kind())
	assert.Equal(t, "", ns.Text())
	assert.Equal(t, 2, ns.Len())
	assert.Equal(t, []string{"a", "b"}, ns.ChildNames())

	child, ok := ns.Child("a")
	require.True(t, ok)
	assert.Equal(t, "ay", child.Text())
}

func TestEntry_Walk(t *testing.T) {
	root := newNamespace()
	root.children["hello"] = newLeaf("Say hello!")
	sub := newNamespace()
	sub.children["nested"] = newLeaf("This is a nested prompt.")
	root.children["subfolder"] = sub

	t.Run("visits leaves in sorted qualified order", func(t *testing.T) {
		var names []string
		root.Walk(func(name, text string) bool {
			names = append(names, name)
			return true
		})
		assert.Equal(t, []string{"hello", "subfolder/nested"}, names)
	})

	t.Run("stops when callback returns false", func(t *testing.T) {
		var names []string
		root.Walk(func(name, text string) bool {
			names = append(names, name)
			return false
		})
		assert.Equal(t, []string{"hello"}, names)
	})
}
