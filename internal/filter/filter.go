// Package filter rebuilds text from the characters selected by script, math and code
// membership tests.
//
// Remove and Extract are duals: Remove keeps the characters no enabled test matches,
// Extract keeps the ones some enabled test matches. Scripts and math are decided per code
// point. Code is also span-aware: fenced blocks, inline code spans and keyword occurrences
// are located over the whole normalized text first, so a keyword like "return" is
// removed or extracted as a unit even though its letters are not code symbols.
//
// Usage Example:
//
//	out, err := filter.Remove("Hello Привет 123", filter.Config{Scripts: []string{"cyrillic"}})
//	// out == "Hello  123"
package filter

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/chriscorrea/scriptsift/internal/script"
	"github.com/chriscorrea/scriptsift/internal/symbol"
)

// Config selects which membership tests a filtering call applies.
type Config struct {
	Scripts        []string // script names, resolved with script.Resolve
	Math           bool     // math symbols
	Code           bool     // code symbols, code spans and keywords
	KeepWhitespace bool     // Extract only: keep every whitespace character
}

// matcher holds the resolved state of one filtering call.
type matcher struct {
	sets     []script.Set
	math     bool
	code     bool
	codeMask []bool
}

// enabled reports whether any membership test is selected.
func (m *matcher) enabled() bool {
	return len(m.sets) > 0 || m.math || m.code
}

// matches reports whether the rune at code-point index i matches a selected test.
func (m *matcher) matches(i int, r rune) bool {
	if m.code && (m.codeMask[i] || symbol.IsCodeSymbol(r)) {
		return true
	}
	if m.math && symbol.IsMathSymbol(r) {
		return true
	}
	return script.AnyContains(m.sets, r)
}

// newMatcher resolves scripts and, when code is selected, computes the code span mask
// over the normalized text. Unknown scripts fail before any text is processed.
func newMatcher(normalized []rune, cfg Config) (*matcher, error) {
	sets, err := script.ResolveAll(cfg.Scripts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scripts: %w", err)
	}

	m := &matcher{
		sets: sets,
		math: cfg.Math,
		code: cfg.Code,
	}
	if cfg.Code {
		spans := symbol.CodeSpans(string(normalized))
		m.codeMask = symbol.SpanMask(len(normalized), spans)
		slog.Debug("Code spans located", "spans", len(spans))
	}
	return m, nil
}

// Remove returns the normalized text without the characters matched by cfg. With no
// test selected the normalized text is returned unchanged.
func Remove(text string, cfg Config) (string, error) {
	normalized := []rune(script.Normalize(text))

	m, err := newMatcher(normalized, cfg)
	if err != nil {
		return "", err
	}
	if !m.enabled() {
		return string(normalized), nil
	}

	var out strings.Builder
	out.Grow(len(normalized))
	for i, r := range normalized {
		if m.matches(i, r) {
			continue
		}
		out.WriteRune(r)
	}

	slog.Debug("Characters removed", "scripts", len(m.sets), "math", m.math, "code", m.code,
		"inputRunes", len(normalized), "outputBytes", out.Len())
	return out.String(), nil
}

// Extract returns only the characters of the normalized text matched by cfg, plus every
// whitespace character when KeepWhitespace is set. With no test selected the result is
// empty.
func Extract(text string, cfg Config) (string, error) {
	normalized := []rune(script.Normalize(text))

	m, err := newMatcher(normalized, cfg)
	if err != nil {
		return "", err
	}
	if !m.enabled() {
		return "", nil
	}

	var out strings.Builder
	for i, r := range normalized {
		if cfg.KeepWhitespace && unicode.IsSpace(r) {
			out.WriteRune(r)
			continue
		}
		if m.matches(i, r) {
			out.WriteRune(r)
		}
	}

	slog.Debug("Characters extracted", "scripts", len(m.sets), "math", m.math, "code", m.code,
		"inputRunes", len(normalized), "outputBytes", out.Len())
	return out.String(), nil
}

// RemoveScriptsAndMath removes the characters of the given scripts, and optionally math
// symbols and code, from text.
func RemoveScriptsAndMath(text string, scripts []string, removeMath, removeCode bool) (string, error) {
	return Remove(text, Config{Scripts: scripts, Math: removeMath, Code: removeCode})
}

// ExtractScriptsAndMath keeps only the characters of the given scripts, and optionally
// math symbols and code, from text.
func ExtractScriptsAndMath(text string, scripts []string, includeMath, includeCode, keepWhitespace bool) (string, error) {
	return Extract(text, Config{Scripts: scripts, Math: includeMath, Code: includeCode, KeepWhitespace: keepWhitespace})
}
