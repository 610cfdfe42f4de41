package promptstore

// Qualified name separator - prompt names are slash-joined path segments
const (
	NameSeparator = "/"
)

// Recognized prompt file extensions. Probe and precedence order is fixed:
// markdown before plain text.
const (
	FileExtensionMarkdown  = ".md"
	FileExtensionPlainText = ".txt"
)

// Recognized configuration file extensions
const (
	FileExtensionYAML = ".yaml"
	FileExtensionYML  = ".yml"
)

// Source driver names registered by this package
const (
	SourceDriverFolder      = "folder"
	SourceDriverFolderEager = "folder-eager"
	SourceDriverJSON        = "json"
	SourceDriverMemory      = "memory"
)

// Prompt report constants
const (
	ReportFileSuffix      = ".json"
	ReportFilePermissions = 0644
	DigestHexLength       = 64
)

// PlaceholderPattern matches {{name}} style markers. The identifier may
// contain letters, digits, underscores and interior spaces; {{}} is a valid
// empty marker.
const PlaceholderPattern = `\{\{([a-zA-Z0-9_ ]*)\}\}`

// Preprocessor option defaults
const (
	DefaultDoStrip              = true
	DefaultCheckEmpty           = true
	DefaultCheckLetters         = false
	DefaultPercentageLetters    = 0.85
	DefaultDoTruncate           = false
	DefaultMaxLength            = -1
	DefaultMinLength            = 0
	DefaultSpacesOnly           = true
	DefaultMaxConsecutiveSpaces = 2
	DefaultASCIIOnly            = false
	DefaultUnicodeNormalize     = NormalizeFormNone
)

// Unicode normalization form names accepted by PreprocessorConfig
const (
	NormalizeFormNone = ""
	NormalizeFormNFC  = "NFC"
	NormalizeFormNFKC = "NFKC"
	NormalizeFormNFD  = "NFD"
	NormalizeFormNFKD = "NFKD"
)

// Pipeline step names, listed in fixed evaluation order
const (
	StepNameStrip          = "strip"
	StepNameCheckEmpty     = "check_empty"
	StepNameSpacesOnly     = "spaces_only"
	StepNameMaxConsecutive = "max_consecutive_spaces"
	StepNameTruncate       = "truncate"
	StepNameASCIIOnly      = "ascii_only"
	StepNameNormalize      = "unicode_normalize"
	StepNameCheckLetters   = "check_letters"
	StepNameMinLength      = "min_length"
)

// Diagnostics defaults
const (
	DefaultRecorderLimit = 1000
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyPrompt   = "prompt"
	MetaKeySegment  = "segment"
	MetaKeyPath     = "path"
	MetaKeyKey      = "key"
	MetaKeyField    = "field"
	MetaKeyValue    = "value"
	MetaKeyReason   = "reason"
	MetaKeyExpected = "expected"
	MetaKeyActual   = "actual"
	MetaKeyStep     = "step"
	MetaKeyForm     = "form"
)

// Log messages
const (
	LogMsgStoreCreated          = "prompt store created"
	LogMsgSourceOpened          = "prompt source opened"
	LogMsgEagerLoadComplete     = "eager load complete"
	LogMsgPromptAdded           = "prompt added"
	LogMsgPromptMaterialized    = "prompt materialized from source"
	LogMsgLazyLoadMiss          = "lazy load miss"
	LogMsgReportSaved           = "prompt report saved"
	LogMsgReportLoaded          = "prompt report loaded"
	LogMsgDigestMismatch        = "prompt digest mismatch"
	LogMsgExtensionCollision    = "extension collision - markdown wins"
	LogMsgFillCountMismatch     = "placeholder/value count mismatch"
	LogMsgUnresolvedPlaceholder = "unresolved named placeholder"
	LogMsgPipelineBuilt         = "preprocessing pipeline built"
	LogMsgStepRejected          = "preprocessing step rejected text"
	LogMsgTemplateCompiled      = "template compiled and cached"
)

// Log field names
const (
	LogFieldPrompt      = "prompt"
	LogFieldPath        = "path"
	LogFieldSource      = "source"
	LogFieldDriver      = "driver"
	LogFieldCount       = "count"
	LogFieldStep        = "step"
	LogFieldSteps       = "steps"
	LogFieldExpected    = "expected"
	LogFieldActual      = "actual"
	LogFieldMarkers     = "markers"
	LogFieldValues      = "values"
	LogFieldStrict      = "strict"
	LogFieldPlaceholder = "placeholder"
)
