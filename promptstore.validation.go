package promptstore

import "strings"

// Name validation reason constants
const (
	ReasonEmptySegment = "empty path segment"
	ReasonDotSegment   = "dot segments are not allowed"
	ReasonInvalidChars = "segment contains invalid characters"
	ReasonNestedName   = "name must be a single segment"
)

// invalidSegmentChars are rejected inside name segments. Folder sources
// compose filesystem paths from segments, so anything with filesystem
// semantics beyond a plain file name is refused.
const invalidSegmentChars = "\\:*?\"<>|\x00"

// SplitPromptName splits a qualified name into its path segments.
func SplitPromptName(name string) []string {
	return strings.Split(name, NameSeparator)
}

// JoinPromptName joins path segments into a qualified name.
func JoinPromptName(segments ...string) string {
	return strings.Join(segments, NameSeparator)
}

// ValidatePromptName checks a qualified prompt name: non-empty, slash-joined
// segments, no empty or dot segments, no filesystem metacharacters.
func ValidatePromptName(name string) error {
	if name == "" {
		return NewEmptyPromptNameError()
	}
	for _, segment := range SplitPromptName(name) {
		if err := validateNameSegment(name, segment); err != nil {
			return err
		}
	}
	return nil
}

// validateTopLevelName additionally requires a single segment. AddPrompt
// inserts at the root namespace only.
func validateTopLevelName(name string) error {
	if err := ValidatePromptName(name); err != nil {
		return err
	}
	if strings.Contains(name, NameSeparator) {
		return NewInvalidPromptNameError(name, ReasonNestedName)
	}
	return nil
}

func validateNameSegment(name, segment string) error {
	if segment == "" {
		return NewInvalidPromptNameError(name, ReasonEmptySegment)
	}
	if segment == "." || segment == ".." {
		return NewInvalidPromptNameError(name, ReasonDotSegment)
	}
	if strings.ContainsAny(segment, invalidSegmentChars) {
		return NewInvalidPromptNameError(name, ReasonInvalidChars)
	}
	return nil
}
