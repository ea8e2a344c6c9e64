package counter

import (
	"log/slog"
	"unicode"
	"unicode/utf8"
)

// CharCounter counts code points, whitespace included.
type CharCounter struct{}

// NewCharCounter creates a new CharCounter instance.
func NewCharCounter() Counter {
	return &CharCounter{}
}

// Count returns the number of code points in the given text.
func (cc *CharCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	charCount := utf8.RuneCountInString(text)

	slog.Debug("Character count calculated", "textLength", len(text), "charCount", charCount)
	return charCount
}

// Name returns the name of this counting method for logging and debugging.
func (cc *CharCounter) Name() string {
	return "characters"
}

// NonWhitespaceCounter counts code points that are not Unicode whitespace.
// It is the denominator of every symbol density ratio.
type NonWhitespaceCounter struct{}

// NewNonWhitespaceCounter creates a new NonWhitespaceCounter instance.
func NewNonWhitespaceCounter() Counter {
	return &NonWhitespaceCounter{}
}

// Count returns the number of non-whitespace code points in text.
func (nc *NonWhitespaceCounter) Count(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Name returns the name of this counting method for logging and debugging.
func (nc *NonWhitespaceCounter) Name() string {
	return "non-whitespace"
}
