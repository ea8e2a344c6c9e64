// Package counter provides the text counting strategies used in scriptsift reports.
//
// Counting is done on code points, never bytes, so that a Cyrillic or Han character weighs
// the same as an ASCII letter. The symbol detectors measure density against the
// non-whitespace count; the classify command can additionally report word and token
// counts (cl100k_base via tiktoken) for a document.
//
// Usage Example:
//
//	c := counter.NewNonWhitespaceCounter()
//	n := c.Count("x^2 + y^2") // 7
package counter

import "fmt"

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units (tokens, words, or characters) in given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the different available counting strategies.
type CountingMethod int

const (
	// Characters counts code points including whitespace
	Characters CountingMethod = iota
	// NonWhitespace counts code points that are not Unicode whitespace
	NonWhitespace
	// Words counts whitespace-separated words, and each Han or kana code point
	Words
	// Tokens uses tiktoken with cl100k_base encoding
	Tokens
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Characters:
		return "characters"
	case NonWhitespace:
		return "non-whitespace"
	case Words:
		return "words"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// NewCounter creates a new Counter instance based on the specified method.
// Returns an error if the counter cannot be initialized (e.g., tiktoken encoding fails).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Characters:
		return NewCharCounter(), nil
	case NonWhitespace:
		return NewNonWhitespaceCounter(), nil
	case Words:
		return NewWordCounter(), nil
	case Tokens:
		return NewTokenCounter()
	default:
		return nil, fmt.Errorf("unsupported counting method %d", int(method))
	}
}

// Stats holds every count scriptsift reports for a document.
type Stats struct {
	Characters    int `json:"characters"`
	NonWhitespace int `json:"non_whitespace"`
	Words         int `json:"words"`
	Tokens        int `json:"tokens"`
}

// Collect computes Stats for text. Token counting needs the cl100k_base encoding;
// if it cannot be loaded the error is returned along with the other counts.
func Collect(text string) (Stats, error) {
	var stats Stats
	targets := []struct {
		method CountingMethod
		value  *int
	}{
		{Characters, &stats.Characters},
		{NonWhitespace, &stats.NonWhitespace},
		{Words, &stats.Words},
		{Tokens, &stats.Tokens},
	}

	for _, target := range targets {
		c, err := NewCounter(target.method)
		if err != nil {
			return stats, err
		}
		*target.value = c.Count(text)
	}
	return stats, nil
}
