package counter

import (
	"log/slog"
	"unicode"
)

// WordCounter counts whitespace-separated words. Han, Hiragana and Katakana are written
// without spaces, so each of their code points counts as a word of its own.
type WordCounter struct{}

// NewWordCounter creates a new WordCounter instance.
func NewWordCounter() Counter {
	return &WordCounter{}
}

// Count returns the number of words in text.
func (wc *WordCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	wordCount := 0
	inWord := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			inWord = false
		case unsegmented(r):
			wordCount++
			inWord = false
		case !inWord:
			wordCount++
			inWord = true
		}
	}

	slog.Debug("Word count calculated", "textLength", len(text), "wordCount", wordCount)
	return wordCount
}

// Name returns the name of this counting method for logging and debugging.
func (wc *WordCounter) Name() string {
	return "words"
}

func unsegmented(r rune) bool {
	return unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana)
}
