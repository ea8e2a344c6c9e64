// Package chunk splits documents into passages for per-passage script analysis.
//
// Splitting is hierarchical: paragraphs first, then sentences, lines and finally words,
// each strategy applied only to the pieces still over the size limit. Sizes are measured
// in code points, so a passage of Japanese text holds as many characters as a passage of
// English text.
//
// Usage Example:
//
//	passages := chunk.SplitText(content, 500)
//	// Creates passages of at most 500 code points
package chunk

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// splitStrategy defines a method for breaking up text.
type splitStrategy struct {
	name      string
	delimiter string
	// restore is appended to every part but the last to put the delimiter back
	restore string
}

// strategies are ordered from largest semantic unit to smallest; each applied iteratively
var strategies = []splitStrategy{
	{name: "paragraph", delimiter: "\n\n", restore: "\n\n"},
	{name: "sentence", delimiter: ". ", restore: "."},
	{name: "sentence-question", delimiter: "? ", restore: "?"},
	{name: "sentence-exclamation", delimiter: "! ", restore: "!"},
	{name: "sentence-ideographic", delimiter: "。", restore: "。"},
	{name: "line", delimiter: "\n", restore: "\n"},
	{name: "word", delimiter: " "},
}

// size is the length of s in code points.
func size(s string) int {
	return utf8.RuneCountInString(s)
}

// SplitText breaks text into passages of at most maxChunkSize code points, except for
// single words longer than the limit, which are kept whole. Passages come back in
// document order.
func SplitText(text string, maxChunkSize int) []string {
	slog.Debug("SplitText called", "textLength", size(text), "maxChunkSize", maxChunkSize)

	if maxChunkSize <= 0 {
		return []string{}
	}
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	// use gentle trimming to preserve intentional line breaks
	text = trimSpacesOnly(text)
	if size(text) <= maxChunkSize {
		return []string{text}
	}

	finalChunks := splitWith(text, 0, maxChunkSize)

	slog.Debug("SplitText completed", "finalChunkCount", len(finalChunks))
	return finalChunks
}

// splitWith applies strategies[level:] to text until every piece fits, keeping pieces in
// document order.
func splitWith(text string, level, maxChunkSize int) []string {
	if size(text) <= maxChunkSize || level == len(strategies) {
		return []string{text}
	}

	strategy := strategies[level]
	slog.Debug("Splitting oversized chunk", "strategy", strategy.name, "chunkLength", size(text))

	var chunks []string
	for _, sub := range splitByDelimiter(text, strategy, maxChunkSize) {
		if trimmed := trimSpacesOnly(sub); trimmed != "" {
			chunks = append(chunks, splitWith(trimmed, level+1, maxChunkSize)...)
		}
	}
	return chunks
}

// splitByDelimiter splits text with a strategy and packs the segments back together up
// to the size limit.
func splitByDelimiter(text string, strategy splitStrategy, maxChunkSize int) []string {
	if !strings.Contains(text, strategy.delimiter) {
		return []string{text}
	}

	parts := strings.Split(text, strategy.delimiter)
	segments := make([]string, 0, len(parts))
	for i, part := range parts {
		trimmed := trimSpacesOnly(part)
		if trimmed == "" {
			continue
		}
		if i < len(parts)-1 {
			trimmed += strategy.restore
		}
		segments = append(segments, trimmed)
	}

	if strategy.name == "word" {
		return packWords(segments, maxChunkSize)
	}
	return mergeShortSegments(segments, maxChunkSize, minimumChunkSize(maxChunkSize))
}

// minimumChunkSize is a quarter of the limit, and at least 3 code points.
func minimumChunkSize(maxChunkSize int) int {
	return max(maxChunkSize/4, 3)
}

// packWords combines word segments into chunks of at most maxChunkSize.
func packWords(segments []string, maxChunkSize int) []string {
	var result []string
	var current strings.Builder
	currentSize := 0

	for _, segment := range segments {
		needed := size(segment)
		if currentSize > 0 {
			needed++ // separator
		}

		if currentSize > 0 && currentSize+needed > maxChunkSize {
			result = append(result, current.String())
			current.Reset()
			currentSize = 0
			needed = size(segment)
		}

		if currentSize > 0 {
			current.WriteString(" ")
		}
		current.WriteString(segment)
		currentSize += needed
	}

	if currentSize > 0 {
		result = append(result, current.String())
	}
	return result
}

// mergeShortSegments merges segments below minChunkSize with a neighbour so that
// fragments like initials do not end up as passages of their own.
func mergeShortSegments(segments []string, maxChunkSize int, minChunkSize int) []string {
	if len(segments) <= 1 {
		return segments
	}

	var result []string
	for i := 0; i < len(segments); i++ {
		current := segments[i]
		if size(current) >= minChunkSize {
			result = append(result, current)
			continue
		}

		// prefer merging forward
		if i+1 < len(segments) {
			if combined := current + " " + segments[i+1]; size(combined) <= maxChunkSize {
				segments[i+1] = combined
				continue
			}
		}

		if len(result) > 0 {
			if combined := result[len(result)-1] + " " + current; size(combined) <= maxChunkSize {
				result[len(result)-1] = combined
				continue
			}
		}

		result = append(result, current)
	}
	return result
}

// trimSpacesOnly removes leading and trailing spaces and tabs but preserves line breaks.
func trimSpacesOnly(s string) string {
	return strings.Trim(s, " \t")
}
