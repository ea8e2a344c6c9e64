// Package passage selects the passages of a document written in given scripts.
//
// A document is split into passages (see package chunk), boilerplate passages such as
// copyright footers are dropped, and the remaining passages that contain at least one
// character of a requested script are returned with their script composition.
package passage

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/chriscorrea/scriptsift/internal/chunk"
	"github.com/chriscorrea/scriptsift/internal/classify"
	"github.com/chriscorrea/scriptsift/internal/script"
)

// ErrNoScripts is returned when no script was requested.
var ErrNoScripts = errors.New("no scripts requested")

// DefaultMaxLength applies when Options.MaxLength is zero; DefaultMinLength is the
// minimum length the CLI starts from.
const (
	DefaultMaxLength = 1000
	DefaultMinLength = 10
)

// Options configures Filter.
type Options struct {
	Scripts    []string // scripts a passage must contain
	MinLength  int      // minimum passage length in code points
	MaxLength  int      // maximum passage length in code points, used for splitting
	IncludeAll bool     // keep boilerplate passages
}

// Hit is a passage that matched.
type Hit struct {
	Index   int             `json:"index"`
	Text    string          `json:"text"`
	Scripts classify.Report `json:"scripts"`
}

// Filter returns the passages of text containing a character of any requested script.
// Unknown scripts fail before the text is split.
func Filter(text string, opts Options) ([]Hit, error) {
	sets, err := script.ResolveAll(opts.Scripts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scripts: %w", err)
	}
	if len(sets) == 0 {
		return nil, ErrNoScripts
	}

	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	minLength := opts.MinLength
	if minLength < 0 {
		minLength = 0
	}

	passages := chunk.SplitText(script.Normalize(text), maxLength)
	detector := NewBoilerplateDetector()
	classifier := classify.NewClassifier()

	hits := []Hit{}
	for i, p := range passages {
		if utf8.RuneCountInString(p) < minLength {
			continue
		}
		if !opts.IncludeAll && detector.IsBoilerplate(p, i, len(passages)) {
			slog.Debug("Skipping boilerplate passage", "index", i)
			continue
		}
		if !containsAny(p, sets) {
			continue
		}
		hits = append(hits, Hit{
			Index:   i,
			Text:    p,
			Scripts: classifier.Classify(p),
		})
	}

	slog.Debug("Passages filtered", "passages", len(passages), "hits", len(hits))
	return hits, nil
}

// containsAny reports whether any rune of text belongs to one of sets.
func containsAny(text string, sets []script.Set) bool {
	for _, r := range text {
		if script.AnyContains(sets, r) {
			return true
		}
	}
	return false
}
