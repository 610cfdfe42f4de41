package promptstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/itsatony/go-promptstore/internal"
)

// Configuration field names as they appear in config documents and in
// validation error metadata.
const (
	FieldDoStrip              = "do_strip"
	FieldCheckEmpty           = "check_empty"
	FieldCheckLetters         = "check_letters"
	FieldPercentageLetters    = "percentage_letters"
	FieldDoTruncate           = "do_truncate"
	FieldMaxLength            = "max_length"
	FieldMinLength            = "min_length"
	FieldSpacesOnly           = "spaces_only"
	FieldMaxConsecutiveSpaces = "max_consecutive_spaces"
	FieldASCIIOnly            = "ascii_only"
	FieldUnicodeNormalize     = "unicode_normalize"
)

// Validation reason constants for out-of-range options
const (
	ReasonPercentageRange  = "must be at least 0 and below 1"
	ReasonMaxLengthRange   = "must be -1 or positive"
	ReasonMinLengthRange   = "must be -1 or non-negative"
	ReasonSpaceRunPositive = "must be positive"
	ReasonMaxBelowMin      = "cannot be below min_length"
)

// PreprocessorConfig is the flat option set behind a preprocessing
// pipeline. The zero value does not validate; start from
// DefaultPreprocessorConfig and override fields as needed.
type PreprocessorConfig struct {
	// DoStrip trims leading and trailing whitespace.
	DoStrip bool `json:"do_strip" yaml:"do_strip"`

	// CheckEmpty rejects empty text.
	CheckEmpty bool `json:"check_empty" yaml:"check_empty"`

	// CheckLetters rejects text whose letter fraction falls below
	// PercentageLetters.
	CheckLetters bool `json:"check_letters" yaml:"check_letters"`

	// PercentageLetters is the minimum letter fraction, at least 0 and
	// below 1.
	PercentageLetters float64 `json:"percentage_letters" yaml:"percentage_letters"`

	// DoTruncate cuts text to MaxLength runes.
	DoTruncate bool `json:"do_truncate" yaml:"do_truncate"`

	// MaxLength is the truncation limit in runes. -1 means unlimited.
	MaxLength int `json:"max_length" yaml:"max_length"`

	// MinLength rejects text shorter than this many runes. -1 disables
	// the check.
	MinLength int `json:"min_length" yaml:"min_length"`

	// SpacesOnly replaces every whitespace character with a plain space.
	SpacesOnly bool `json:"spaces_only" yaml:"spaces_only"`

	// MaxConsecutiveSpaces caps whitespace runs at this many spaces.
	// Must be positive.
	MaxConsecutiveSpaces int `json:"max_consecutive_spaces" yaml:"max_consecutive_spaces"`

	// ASCIIOnly drops every rune outside the ASCII range.
	ASCIIOnly bool `json:"ascii_only" yaml:"ascii_only"`

	// UnicodeNormalize names the normalization form to apply: one of
	// "", "NFC", "NFKC", "NFD", "NFKD". Empty disables normalization.
	UnicodeNormalize string `json:"unicode_normalize" yaml:"unicode_normalize"`
}

// DefaultPreprocessorConfig returns the standard preprocessing profile.
func DefaultPreprocessorConfig() PreprocessorConfig {
	return PreprocessorConfig{
		DoStrip:              DefaultDoStrip,
		CheckEmpty:           DefaultCheckEmpty,
		CheckLetters:         DefaultCheckLetters,
		PercentageLetters:    DefaultPercentageLetters,
		DoTruncate:           DefaultDoTruncate,
		MaxLength:            DefaultMaxLength,
		MinLength:            DefaultMinLength,
		SpacesOnly:           DefaultSpacesOnly,
		MaxConsecutiveSpaces: DefaultMaxConsecutiveSpaces,
		ASCIIOnly:            DefaultASCIIOnly,
		UnicodeNormalize:     DefaultUnicodeNormalize,
	}
}

// Validate checks every option against its allowed range.
func (c PreprocessorConfig) Validate() error {
	if c.PercentageLetters < 0 || c.PercentageLetters >= 1 {
		return NewOptionInvalidError(FieldPercentageLetters,
			strconv.FormatFloat(c.PercentageLetters, 'g', -1, 64),
			ReasonPercentageRange)
	}
	if c.MaxLength != -1 && c.MaxLength <= 0 {
		return NewOptionInvalidError(FieldMaxLength,
			strconv.Itoa(c.MaxLength), ReasonMaxLengthRange)
	}
	if c.MinLength < -1 {
		return NewOptionInvalidError(FieldMinLength,
			strconv.Itoa(c.MinLength), ReasonMinLengthRange)
	}
	if c.MaxConsecutiveSpaces <= 0 {
		return NewOptionInvalidError(FieldMaxConsecutiveSpaces,
			strconv.Itoa(c.MaxConsecutiveSpaces), ReasonSpaceRunPositive)
	}
	if c.MaxLength != -1 && c.MinLength != -1 && c.MaxLength < c.MinLength {
		return NewOptionInvalidError(FieldMaxLength,
			strconv.Itoa(c.MaxLength), ReasonMaxBelowMin)
	}
	if c.UnicodeNormalize != NormalizeFormNone {
		if _, ok := internal.NormalizeForm(c.UnicodeNormalize); !ok {
			return NewNormalizeFormError(c.UnicodeNormalize)
		}
	}
	return nil
}

// LoadPreprocessorConfig reads a preprocessing profile from a JSON or YAML
// file, chosen by extension. Absent fields keep their defaults. The loaded
// config is validated before being returned.
func LoadPreprocessorConfig(path string) (PreprocessorConfig, error) {
	cfg := DefaultPreprocessorConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, NewConfigReadError(path, err)
	}

	switch filepath.Ext(path) {
	case FileExtensionYAML, FileExtensionYML:
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, NewConfigParseError(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// StepFunc transforms text and reports whether the text passed the step.
// Transforms always report true; checks leave the text unchanged and report
// the outcome.
type StepFunc func(text string) (string, bool)

// Step is one named stage of a preprocessing pipeline.
type Step struct {
	Name string
	Fn   StepFunc
}

// Result is the outcome of running text through a pipeline. On rejection,
// Step names the failing stage and Text holds the text as it stood there.
type Result struct {
	Text string
	Step string
	OK   bool
}

// Preprocessor runs text through an ordered pipeline of steps, stopping at
// the first rejection. Pipelines are built once at construction and are
// safe for concurrent use.
type Preprocessor struct {
	config PreprocessorConfig
	steps  []Step
	logger *zap.Logger
}

// PreprocessorOption is a functional option for configuring a Preprocessor.
type PreprocessorOption func(*Preprocessor)

// WithPreprocessorLogger sets the logger for a Preprocessor.
// Default: no-op logger
func WithPreprocessorLogger(logger *zap.Logger) PreprocessorOption {
	return func(p *Preprocessor) {
		p.logger = logger
	}
}

// NewPreprocessor validates the config and builds its pipeline. Steps are
// bound in fixed evaluation order; disabled steps are omitted entirely.
func NewPreprocessor(cfg PreprocessorConfig, opts ...PreprocessorOption) (*Preprocessor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Preprocessor{
		config: cfg,
		steps:  buildPipeline(cfg),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	if len(p.steps) == 0 {
		return nil, NewEmptyPipelineError()
	}

	p.logger.Debug(LogMsgPipelineBuilt,
		zap.Strings(LogFieldSteps, p.StepNames()),
	)
	return p, nil
}

// MustNewPreprocessor is like NewPreprocessor but panics on error.
func MustNewPreprocessor(cfg PreprocessorConfig, opts ...PreprocessorOption) *Preprocessor {
	p, err := NewPreprocessor(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// NewPreprocessorFromSteps builds a pipeline from custom steps, run in the
// given order. The pipeline must be non-empty and every step needs a name
// and a function.
func NewPreprocessorFromSteps(steps []Step, opts ...PreprocessorOption) (*Preprocessor, error) {
	if len(steps) == 0 {
		return nil, NewEmptyPipelineError()
	}
	for i, step := range steps {
		if step.Name == "" {
			return nil, NewPipelineStepError(i, ErrMsgStepNameEmpty)
		}
		if step.Fn == nil {
			return nil, NewPipelineStepError(i, ErrMsgStepFuncNil)
		}
	}

	p := &Preprocessor{
		steps: append([]Step(nil), steps...),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}

	p.logger.Debug(LogMsgPipelineBuilt,
		zap.Strings(LogFieldSteps, p.StepNames()),
	)
	return p, nil
}

// buildPipeline binds the enabled steps in fixed evaluation order.
func buildPipeline(cfg PreprocessorConfig) []Step {
	var steps []Step

	if cfg.DoStrip {
		steps = append(steps, Step{Name: StepNameStrip, Fn: func(text string) (string, bool) {
			return internal.Strip(text), true
		}})
	}
	if cfg.CheckEmpty {
		steps = append(steps, Step{Name: StepNameCheckEmpty, Fn: func(text string) (string, bool) {
			return text, !internal.IsEmpty(text)
		}})
	}
	if cfg.SpacesOnly {
		steps = append(steps, Step{Name: StepNameSpacesOnly, Fn: func(text string) (string, bool) {
			return internal.WhitespaceToSpaces(text), true
		}})
	}
	if cfg.MaxConsecutiveSpaces > 0 {
		max := cfg.MaxConsecutiveSpaces
		steps = append(steps, Step{Name: StepNameMaxConsecutive, Fn: func(text string) (string, bool) {
			return internal.LimitSpaceRuns(text, max), true
		}})
	}
	if cfg.DoTruncate && cfg.MaxLength > -1 {
		max := cfg.MaxLength
		steps = append(steps, Step{Name: StepNameTruncate, Fn: func(text string) (string, bool) {
			return internal.TruncateRunes(text, max), true
		}})
	}
	if cfg.ASCIIOnly {
		steps = append(steps, Step{Name: StepNameASCIIOnly, Fn: func(text string) (string, bool) {
			return internal.StripNonASCII(text), true
		}})
	}
	if cfg.UnicodeNormalize != NormalizeFormNone {
		form, _ := internal.NormalizeForm(cfg.UnicodeNormalize)
		steps = append(steps, Step{Name: StepNameNormalize, Fn: func(text string) (string, bool) {
			return internal.Normalize(text, form), true
		}})
	}
	if cfg.CheckLetters {
		minRatio := cfg.PercentageLetters
		steps = append(steps, Step{Name: StepNameCheckLetters, Fn: func(text string) (string, bool) {
			letters, total := internal.LetterStats(text)
			if total == 0 {
				return text, false
			}
			return text, float64(letters)/float64(total) >= minRatio
		}})
	}
	if cfg.MinLength > -1 {
		min := cfg.MinLength
		steps = append(steps, Step{Name: StepNameMinLength, Fn: func(text string) (string, bool) {
			return text, internal.RuneCount(text) >= min
		}})
	}
	return steps
}

// Process runs text through the pipeline, returning at the first rejection.
func (p *Preprocessor) Process(text string) Result {
	current := text
	for _, step := range p.steps {
		next, ok := step.Fn(current)
		if !ok {
			p.logger.Debug(LogMsgStepRejected,
				zap.String(LogFieldStep, step.Name),
			)
			return Result{Text: next, Step: step.Name}
		}
		current = next
	}
	return Result{Text: current, OK: true}
}

// Config returns the configuration the pipeline was built from. Custom-step
// pipelines return the zero config.
func (p *Preprocessor) Config() PreprocessorConfig {
	return p.config
}

// StepNames returns the names of the bound steps in evaluation order.
func (p *Preprocessor) StepNames() []string {
	names := make([]string, 0, len(p.steps))
	for _, step := range p.steps {
		names = append(names, step.Name)
	}
	return names
}

// Len returns the number of bound steps.
func (p *Preprocessor) Len() int {
	return len(p.steps)
}
