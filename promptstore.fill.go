package promptstore

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// placeholderRegexp matches {{name}} style markers, compiled once.
var placeholderRegexp = regexp.MustCompile(PlaceholderPattern)

// Filler substitutes placeholder markers in prompt text. It is the built-in
// dependency-free substitution for cases where full templating is unneeded;
// see Renderer for the template engine path.
//
// A Filler never fails: markers it cannot substitute stay verbatim and are
// reported through the logger and the diagnostics recorder.
type Filler struct {
	logger   *zap.Logger
	recorder Recorder
}

// FillerOption is a functional option for configuring a Filler.
type FillerOption func(*Filler)

// WithFillerLogger sets the logger for a Filler.
// Default: no-op logger
func WithFillerLogger(logger *zap.Logger) FillerOption {
	return func(f *Filler) {
		f.logger = logger
	}
}

// WithFillerRecorder sets the diagnostics recorder for a Filler.
// Default: diagnostics are dropped
func WithFillerRecorder(recorder Recorder) FillerOption {
	return func(f *Filler) {
		f.recorder = recorder
	}
}

// NewFiller creates a Filler.
func NewFiller(opts ...FillerOption) *Filler {
	f := &Filler{}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = zap.NewNop()
	}
	if f.recorder == nil {
		f.recorder = &NopRecorder{}
	}
	return f
}

// FillNamed replaces every marker whose trimmed identifier is a key in
// values. Markers whose identifier is not a key stay verbatim and emit an
// unresolved-placeholder diagnostic.
func (f *Filler) FillNamed(text string, values map[string]string) string {
	return placeholderRegexp.ReplaceAllStringFunc(text, func(marker string) string {
		identifier := strings.TrimSpace(markerIdentifier(marker))
		if value, ok := values[identifier]; ok {
			return value
		}
		f.noteUnresolved(identifier)
		return marker
	})
}

// FillPositional replaces markers left to right, named and empty alike,
// each consuming the next unused value. A marker/value count mismatch is
// reported once; substitution still proceeds as far as the values allow,
// leftover markers stay verbatim and leftover values are ignored.
func (f *Filler) FillPositional(text string, values []string) string {
	markerCount := len(placeholderRegexp.FindAllString(text, -1))
	if markerCount != len(values) {
		f.noteCountMismatch(markerCount, len(values))
	}

	index := 0
	return placeholderRegexp.ReplaceAllStringFunc(text, func(marker string) string {
		if index >= len(values) {
			return marker
		}
		value := values[index]
		index++
		return value
	})
}

// markerIdentifier returns the text between the braces of a matched marker.
func markerIdentifier(marker string) string {
	return marker[2 : len(marker)-2]
}

func (f *Filler) noteUnresolved(identifier string) {
	f.logger.Warn(LogMsgUnresolvedPlaceholder,
		zap.String(LogFieldPlaceholder, identifier),
	)
	f.recorder.Record(
		NewDiagnostic(DiagnosticUnresolvedPlaceholder, DiagMsgUnresolvedPlaceholder).
			WithDetail(LogFieldPlaceholder, identifier),
	)
}

func (f *Filler) noteCountMismatch(markers, values int) {
	f.logger.Warn(LogMsgFillCountMismatch,
		zap.Int(LogFieldMarkers, markers),
		zap.Int(LogFieldValues, values),
	)
	f.recorder.Record(
		NewDiagnostic(DiagnosticFillCountMismatch, DiagMsgFillCountMismatch).
			WithDetail(LogFieldMarkers, strconv.Itoa(markers)).
			WithDetail(LogFieldValues, strconv.Itoa(values)),
	)
}

// defaultFiller backs the package-level fill helpers. It neither logs nor
// records diagnostics.
var defaultFiller = NewFiller()

// FillNamed replaces named markers using a silent default Filler.
func FillNamed(text string, values map[string]string) string {
	return defaultFiller.FillNamed(text, values)
}

// FillPositional replaces markers in order using a silent default Filler.
func FillPositional(text string, values []string) string {
	return defaultFiller.FillPositional(text, values)
}
