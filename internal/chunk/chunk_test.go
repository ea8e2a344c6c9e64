package chunk_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/chriscorrea/scriptsift/internal/chunk"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		maxChunkSize int
		expectChunks int
		description  string
	}{
		{
			name:         "empty string",
			text:         "",
			maxChunkSize: 100,
			expectChunks: 0,
			description:  "should return empty slice for empty input",
		},
		{
			name:         "whitespace only",
			text:         "   \n\t   ",
			maxChunkSize: 100,
			expectChunks: 0,
			description:  "should return empty slice for whitespace-only input",
		},
		{
			name:         "text fits in single chunk",
			text:         "This is a short text that fits in one chunk.",
			maxChunkSize: 100,
			expectChunks: 1,
			description:  "should return single chunk when text fits within maxChunkSize",
		},
		{
			name:         "zero maxChunkSize",
			text:         "Some text",
			maxChunkSize: 0,
			expectChunks: 0,
			description:  "should return empty slice for invalid maxChunkSize",
		},
		{
			name:         "paragraph splitting",
			text:         "First paragraph.\n\nSecond paragraph.\n\nThird paragraph.",
			maxChunkSize: 25,
			expectChunks: 3,
			description:  "should split on paragraph boundaries",
		},
		{
			name:         "cyrillic measured in code points",
			text:         "Привет мир",
			maxChunkSize: 10,
			expectChunks: 1,
			description:  "10 code points fit a limit of 10 even though they take 19 bytes",
		},
		{
			name:         "ideographic sentences",
			text:         "今日は晴れです。明日は雨です。",
			maxChunkSize: 9,
			expectChunks: 2,
			description:  "should split on the ideographic full stop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunk.SplitText(tt.text, tt.maxChunkSize)
			if len(chunks) != tt.expectChunks {
				t.Errorf("SplitText() returned %d chunks, expected %d: %q\nDescription: %s",
					len(chunks), tt.expectChunks, chunks, tt.description)
			}
		})
	}
}

func TestSplitTextRespectsLimit(t *testing.T) {
	texts := []string{
		"This is a long text that needs to be split into multiple chunks for testing purposes.",
		"Sentence one is here. Sentence two follows! Is there a third? Yes there is.",
		"Line one\nLine two\nLine three\nLine four\nLine five",
		strings.Repeat("Привет мир, это тест. ", 20),
		strings.Repeat("日本語のテキストです。", 12),
	}

	for _, text := range texts {
		for _, limit := range []int{15, 30, 80} {
			chunks := chunk.SplitText(text, limit)
			if len(chunks) == 0 {
				t.Fatalf("SplitText(%q, %d) returned no chunks", text, limit)
			}
			for _, c := range chunks {
				if n := utf8.RuneCountInString(c); n > limit && strings.Contains(strings.TrimSpace(c), " ") {
					t.Errorf("chunk %q has %d code points, limit %d", c, n, limit)
				}
				if strings.TrimSpace(c) == "" {
					t.Errorf("SplitText(%q, %d) produced a blank chunk", text, limit)
				}
			}
		}
	}
}

func TestSplitTextKeepsWords(t *testing.T) {
	text := "Alpha beta gamma. Delta epsilon zeta! Eta theta iota? Kappa lambda mu.\n\nNu xi omicron pi rho."
	chunks := chunk.SplitText(text, 20)

	original := strings.Fields(text)
	var rebuilt []string
	for _, c := range chunks {
		rebuilt = append(rebuilt, strings.Fields(c)...)
	}

	if strings.Join(rebuilt, " ") != strings.Join(original, " ") {
		t.Errorf("words changed by splitting:\n got %q\nwant %q", rebuilt, original)
	}
}

func TestSplitTextOversizedWord(t *testing.T) {
	word := strings.Repeat("x", 50)
	chunks := chunk.SplitText("short "+word+" tail", 10)

	found := false
	for _, c := range chunks {
		if c == word {
			found = true
		}
	}
	if !found {
		t.Errorf("oversized word should be kept whole, got %q", chunks)
	}
}
