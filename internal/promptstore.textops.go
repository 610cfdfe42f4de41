package internal

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Unicode normalization form names
const (
	FormNFC  = "NFC"
	FormNFKC = "NFKC"
	FormNFD  = "NFD"
	FormNFKD = "NFKD"
)

// ASCIILimit is the first rune value outside the ASCII range.
const ASCIILimit = 128

// whitespacePattern matches a single whitespace character.
var whitespacePattern = regexp.MustCompile(`\s`)

// Space run patterns are compiled per run length and reused.
var (
	spaceRunMu       sync.Mutex
	spaceRunPatterns = make(map[int]*regexp.Regexp)
)

// Strip removes leading and trailing whitespace.
func Strip(text string) string {
	return strings.TrimSpace(text)
}

// IsEmpty reports whether text is the empty string.
func IsEmpty(text string) bool {
	return text == ""
}

// WhitespaceToSpaces replaces every whitespace character with a single
// space. Run lengths are preserved character for character, so the result
// is stable under repeated application.
func WhitespaceToSpaces(text string) string {
	return whitespacePattern.ReplaceAllString(text, " ")
}

// LimitSpaceRuns replaces every whitespace run longer than max with exactly
// max spaces. max must be positive.
func LimitSpaceRuns(text string, max int) string {
	return spaceRunPattern(max).ReplaceAllString(text, strings.Repeat(" ", max))
}

func spaceRunPattern(max int) *regexp.Regexp {
	spaceRunMu.Lock()
	defer spaceRunMu.Unlock()

	if pattern, ok := spaceRunPatterns[max]; ok {
		return pattern
	}
	pattern := regexp.MustCompile(`\s{` + strconv.Itoa(max+1) + `,}`)
	spaceRunPatterns[max] = pattern
	return pattern
}

// TruncateRunes cuts text to at most max runes.
func TruncateRunes(text string, max int) string {
	if max < 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max])
}

// StripNonASCII removes every rune outside the ASCII range.
func StripNonASCII(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if r < ASCIILimit {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// NormalizeForm maps a form name to its normalizer. The second return value
// is false for unknown names.
func NormalizeForm(name string) (norm.Form, bool) {
	switch name {
	case FormNFC:
		return norm.NFC, true
	case FormNFKC:
		return norm.NFKC, true
	case FormNFD:
		return norm.NFD, true
	case FormNFKD:
		return norm.NFKD, true
	}
	return norm.NFC, false
}

// Normalize applies a unicode normalization form to text.
func Normalize(text string, form norm.Form) string {
	return form.String(text)
}

// LetterStats counts the letter runes and the total runes in text.
func LetterStats(text string) (letters, total int) {
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
		}
		total++
	}
	return letters, total
}

// RuneCount returns the number of runes in text.
func RuneCount(text string) int {
	return utf8.RuneCountInString(text)
}
