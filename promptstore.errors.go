package promptstore

import (
	"errors"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Resolution errors
	ErrMsgPromptNotFound = "prompt not found"
	ErrMsgNotANamespace  = "intermediate segment does not resolve to a namespace"
	ErrMsgNotALeaf       = "entry resolves to a namespace, not a leaf"

	// Name validation errors
	ErrMsgEmptyPromptName   = "prompt name cannot be empty"
	ErrMsgInvalidPromptName = "invalid prompt name"

	// Source construction and load errors
	ErrMsgFolderInvalid   = "prompt folder is not a directory"
	ErrMsgFileInvalid     = "prompt file is not a regular file"
	ErrMsgFileReadFailed  = "failed to read prompt file"
	ErrMsgJSONParseFailed = "failed to parse prompts document"
	ErrMsgJSONNotObject   = "prompts document must be a JSON object"
	ErrMsgJSONValueType   = "prompts document value must be a string or object"

	// Report errors
	ErrMsgReportWriteFailed  = "failed to write prompt report"
	ErrMsgReportReadFailed   = "failed to read prompt report"
	ErrMsgReportParseFailed  = "failed to parse prompt report"
	ErrMsgReportEncodeFailed = "failed to encode prompt report"
	ErrMsgDigestMismatch     = "prompt digest mismatch"

	// Preprocessor errors
	ErrMsgConfigReadFailed  = "failed to read preprocessor config"
	ErrMsgConfigParseFailed = "failed to parse preprocessor config"
	ErrMsgOptionInvalid     = "invalid preprocessor option"
	ErrMsgNormalizeInvalid  = "unsupported unicode normalization form"
	ErrMsgPipelineEmpty     = "preprocessing pipeline is empty"
	ErrMsgStepNameEmpty     = "pipeline step name cannot be empty"
	ErrMsgStepFuncNil       = "pipeline step function is nil"
)

// Error code constants for categorization
const (
	ErrCodeResolve    = "PROMPTSTORE_RESOLVE"
	ErrCodeValidation = "PROMPTSTORE_VALIDATION"
	ErrCodeSource     = "PROMPTSTORE_SOURCE"
	ErrCodeReport     = "PROMPTSTORE_REPORT"
	ErrCodeDrift      = "PROMPTSTORE_DRIFT"
	ErrCodeConfig     = "PROMPTSTORE_CONFIG"
)

// Error kind metadata values, used by IsNotFound and IsDrift
const (
	MetaKeyErrorKind  = "error_kind"
	ErrorKindNotFound = "not_found"
	ErrorKindDrift    = "drift"
)

// NewPromptNotFoundError creates an error for a prompt name with no backing
// entry in the store or its source.
func NewPromptNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyPrompt, ErrMsgPromptNotFound).
		WithMetadata(MetaKeyPrompt, name).
		WithMetadata(MetaKeyErrorKind, ErrorKindNotFound)
}

// NewNotANamespaceError creates an error for a qualified name whose
// intermediate segment resolves to a leaf.
func NewNotANamespaceError(name, segment string) error {
	return cuserr.NewNotFoundError(MetaKeyPrompt, ErrMsgNotANamespace).
		WithMetadata(MetaKeyPrompt, name).
		WithMetadata(MetaKeySegment, segment).
		WithMetadata(MetaKeyErrorKind, ErrorKindNotFound)
}

// NewNotALeafError creates an error for a name that resolves to a namespace
// where leaf text was required.
func NewNotALeafError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyPrompt, ErrMsgNotALeaf).
		WithMetadata(MetaKeyPrompt, name).
		WithMetadata(MetaKeyErrorKind, ErrorKindNotFound)
}

// NewInvalidPromptNameError creates a validation error for a malformed name
func NewInvalidPromptNameError(name, reason string) error {
	return cuserr.NewValidationError(ErrCodeValidation, ErrMsgInvalidPromptName).
		WithMetadata(MetaKeyPrompt, name).
		WithMetadata(MetaKeyReason, reason)
}

// NewEmptyPromptNameError creates a validation error for an empty name
func NewEmptyPromptNameError() error {
	return cuserr.NewValidationError(ErrCodeValidation, ErrMsgEmptyPromptName)
}

// NewFolderInvalidError creates an error for a folder source path that is not
// a directory.
func NewFolderInvalidError(path string) error {
	return cuserr.NewValidationError(ErrCodeSource, ErrMsgFolderInvalid).
		WithMetadata(MetaKeyPath, path)
}

// NewFileInvalidError creates an error for a document source path that does
// not point at a regular file.
func NewFileInvalidError(path string) error {
	return cuserr.NewValidationError(ErrCodeSource, ErrMsgFileInvalid).
		WithMetadata(MetaKeyPath, path)
}

// NewFileReadError wraps a failed file read with source context
func NewFileReadError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeSource, ErrMsgFileReadFailed).
		WithMetadata(MetaKeyPath, path)
}

// NewJSONParseError wraps a JSON decode failure for a prompts document
func NewJSONParseError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeSource, ErrMsgJSONParseFailed).
		WithMetadata(MetaKeyPath, path)
}

// NewJSONNotObjectError creates an error for a prompts document whose top
// level is not a JSON object.
func NewJSONNotObjectError(path string) error {
	return cuserr.NewValidationError(ErrCodeSource, ErrMsgJSONNotObject).
		WithMetadata(MetaKeyPath, path)
}

// NewJSONValueTypeError creates an error naming the key whose value is
// neither a string nor a nested object. keyPath is the qualified path of the
// offending key.
func NewJSONValueTypeError(key, keyPath string) error {
	return cuserr.NewValidationError(ErrCodeSource, ErrMsgJSONValueType).
		WithMetadata(MetaKeyKey, key).
		WithMetadata(MetaKeyPath, keyPath)
}

// NewReportWriteError wraps a failed report write
func NewReportWriteError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeReport, ErrMsgReportWriteFailed).
		WithMetadata(MetaKeyPath, path)
}

// NewReportReadError wraps a failed report read
func NewReportReadError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeReport, ErrMsgReportReadFailed).
		WithMetadata(MetaKeyPath, path)
}

// NewReportParseError wraps a failed report decode
func NewReportParseError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeReport, ErrMsgReportParseFailed).
		WithMetadata(MetaKeyPath, path)
}

// NewReportEncodeError wraps a failed report encode
func NewReportEncodeError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeReport, ErrMsgReportEncodeFailed).
		WithMetadata(MetaKeyPath, path)
}

// NewDigestDriftError creates an error for a strict report reload that found
// a prompt whose recomputed digest disagrees with the recorded one.
func NewDigestDriftError(name, expected, actual string) error {
	return cuserr.NewValidationError(ErrCodeDrift, ErrMsgDigestMismatch).
		WithMetadata(MetaKeyPrompt, name).
		WithMetadata(MetaKeyExpected, expected).
		WithMetadata(MetaKeyActual, actual).
		WithMetadata(MetaKeyErrorKind, ErrorKindDrift)
}

// NewOptionInvalidError creates a validation error for an out-of-range
// preprocessor option.
func NewOptionInvalidError(field, value, reason string) error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgOptionInvalid).
		WithMetadata(MetaKeyField, field).
		WithMetadata(MetaKeyValue, value).
		WithMetadata(MetaKeyReason, reason)
}

// NewNormalizeFormError creates a validation error for an unsupported
// normalization form.
func NewNormalizeFormError(form string) error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgNormalizeInvalid).
		WithMetadata(MetaKeyField, FieldUnicodeNormalize).
		WithMetadata(MetaKeyForm, form)
}

// NewEmptyPipelineError creates a validation error for a configuration that
// yields no pipeline steps.
func NewEmptyPipelineError() error {
	return cuserr.NewValidationError(ErrCodeConfig, ErrMsgPipelineEmpty)
}

// NewPipelineStepError creates a validation error for an invalid custom step.
// The index is the position of the step in the supplied slice.
func NewPipelineStepError(index int, msg string) error {
	return cuserr.NewValidationError(ErrCodeConfig, msg).
		WithMetadata(MetaKeyStep, strconv.Itoa(index))
}

// NewConfigReadError wraps a failed preprocessor config read
func NewConfigReadError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, ErrMsgConfigReadFailed).
		WithMetadata(MetaKeyPath, path)
}

// NewConfigParseError wraps a failed preprocessor config decode
func NewConfigParseError(path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, ErrMsgConfigParseFailed).
		WithMetadata(MetaKeyPath, path)
}

// IsNotFound reports whether err represents a failed prompt resolution.
func IsNotFound(err error) bool {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return false
	}
	kind, ok := customErr.GetMetadata(MetaKeyErrorKind)
	return ok && kind == ErrorKindNotFound
}

// IsDrift reports whether err represents a digest mismatch from a strict
// report reload.
func IsDrift(err error) bool {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return false
	}
	kind, ok := customErr.GetMetadata(MetaKeyErrorKind)
	return ok && kind == ErrorKindDrift
}
