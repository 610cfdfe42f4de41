package promptstore

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Digest returns the 64-character lowercase hex SHA-256 digest of the UTF-8
// encoding of text.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// PromptReport maps qualified prompt names to content digests. Reports are
// serialized as a single JSON object and used to detect drift between a
// recorded prompt set and current backing content.
type PromptReport map[string]string

// Names returns the sorted prompt names in the report.
func (r PromptReport) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeReportPath forces the .json suffix on a report path, replacing
// any existing extension.
func NormalizeReportPath(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if base == ext {
		// Dotfile without a real extension
		return path + ReportFileSuffix
	}
	return strings.TrimSuffix(path, ext) + ReportFileSuffix
}

// SaveReport writes a report as JSON to path. The suffix is normalized to
// .json regardless of the path given; the path written is returned.
func SaveReport(report PromptReport, path string) (string, error) {
	path = NormalizeReportPath(path)
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", NewReportEncodeError(path, err)
	}
	if err := os.WriteFile(path, data, ReportFilePermissions); err != nil {
		return "", NewReportWriteError(path, err)
	}
	return path, nil
}

// LoadReport reads a report from path. The suffix is normalized to .json
// before reading.
func LoadReport(path string) (PromptReport, error) {
	path = NormalizeReportPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewReportReadError(path, err)
	}
	var report PromptReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, NewReportParseError(path, err)
	}
	return report, nil
}

// SavePromptReport serializes the store's full digest mapping to path and
// returns the normalized path written.
func (s *Store) SavePromptReport(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	report := PromptReport(s.Digests())
	written, err := SaveReport(report, path)
	if err != nil {
		return "", err
	}
	s.logger.Debug(LogMsgReportSaved,
		zap.String(LogFieldPath, written),
		zap.Int(LogFieldCount, len(report)))
	return written, nil
}

// LoadFromPromptReport reads a report and materializes every prompt it
// names, triggering lazy loads as needed. With strict, each freshly computed
// digest must match the recorded one and the first mismatch aborts with a
// drift error. Without strict the prompts are only materialized.
func (s *Store) LoadFromPromptReport(ctx context.Context, path string, strict bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	report, err := LoadReport(path)
	if err != nil {
		return err
	}
	for _, name := range report.Names() {
		text, err := s.GetPrompt(ctx, name)
		if err != nil {
			return err
		}
		if !strict {
			continue
		}
		expected := report[name]
		if actual := Digest(text); actual != expected {
			s.logger.Warn(LogMsgDigestMismatch,
				zap.String(LogFieldPrompt, name),
				zap.String(LogFieldExpected, expected),
				zap.String(LogFieldActual, actual))
			return NewDigestDriftError(name, expected, actual)
		}
	}
	s.logger.Debug(LogMsgReportLoaded,
		zap.String(LogFieldPath, NormalizeReportPath(path)),
		zap.Int(LogFieldCount, len(report)),
		zap.Bool(LogFieldStrict, strict))
	return nil
}
