package promptstore

import "sort"

// EntryKind distinguishes leaf prompts from nested namespaces.
type EntryKind int

const (
	// EntryKindLeaf is a terminal entry holding prompt text
	EntryKindLeaf EntryKind = iota
	// EntryKindNamespace is a non-terminal entry holding named children
	EntryKindNamespace
)

// Entry kind string values
const (
	EntryKindNameLeaf      = "leaf"
	EntryKindNameNamespace = "namespace"
)

// String returns the string representation of the entry kind
func (k EntryKind) String() string {
	switch k {
	case EntryKindNamespace:
		return EntryKindNameNamespace
	default:
		return EntryKindNameLeaf
	}
}

// Entry is one node of a prompt namespace tree: either a leaf holding prompt
// text or a namespace holding named children. Entries are built by the store
// and its sources; consumers get read-only views. A tree has no cycles since
// every subtree is created fresh from a distinct backing source.
type Entry struct {
	kind     EntryKind
	text     string
	children map[string]*Entry
}

func newLeaf(text string) *Entry {
	return &Entry{kind: EntryKindLeaf, text: text}
}

func newNamespace() *Entry {
	return &Entry{kind: EntryKindNamespace, children: make(map[string]*Entry)}
}

// Kind returns the entry kind.
func (e *Entry) Kind() EntryKind {
	return e.kind
}

// IsLeaf reports whether the entry holds prompt text.
func (e *Entry) IsLeaf() bool {
	return e.kind == EntryKindLeaf
}

// IsNamespace reports whether the entry holds child entries.
func (e *Entry) IsNamespace() bool {
	return e.kind == EntryKindNamespace
}

// Text returns the prompt text for a leaf entry. Namespaces return the empty
// string.
func (e *Entry) Text() string {
	return e.text
}

// Child returns the named direct child of a namespace entry.
func (e *Entry) Child(name string) (*Entry, bool) {
	if e.kind != EntryKindNamespace {
		return nil, false
	}
	child, ok := e.children[name]
	return child, ok
}

// ChildNames returns the sorted names of a namespace's direct children.
func (e *Entry) ChildNames() []string {
	if e.kind != EntryKindNamespace {
		return nil
	}
	names := make([]string, 0, len(e.children))
	for name := range e.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of direct children. Leaves have none.
func (e *Entry) Len() int {
	return len(e.children)
}

// Walk visits every leaf under the entry in sorted qualified-name order. The
// callback receives the qualified name relative to this entry and the leaf
// text; returning false stops the walk. Walking a leaf entry directly yields
// one call with an empty name.
func (e *Entry) Walk(fn func(name, text string) bool) {
	e.walk("", fn)
}

func (e *Entry) walk(prefix string, fn func(name, text string) bool) bool {
	if e.kind == EntryKindLeaf {
		return fn(prefix, e.text)
	}
	for _, name := range e.ChildNames() {
		qualified := name
		if prefix != "" {
			qualified = prefix + NameSeparator + name
		}
		if !e.children[name].walk(qualified, fn) {
			return false
		}
	}
	return true
}
