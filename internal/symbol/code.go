package symbol

import (
	"log/slog"
	"unicode"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/rangetable"

	"github.com/chriscorrea/scriptsift/internal/counter"
	"github.com/chriscorrea/scriptsift/internal/script"
)

// codeTable holds the punctuation and operator characters typical of source code.
var codeTable = rangetable.New([]rune("{}()[];,.:=<>/*+-_|#@`$%^&~")...)

// keywords span the control-flow and declaration words of Python, JavaScript and R,
// plus the common SQL verbs.
const keywords = `def|class|return|import|from|as|with|lambda|yield|async|await|try|except|finally|` +
	`if|elif|else|for|while|break|continue|pass|raise|` +
	`function|const|let|var|new|this|switch|case|default|` +
	`library|require|pkg|data|model|plot|ggplot|` +
	`SELECT|FROM|WHERE|INSERT|UPDATE|DELETE`

// regexp2 reports match positions in code points, which is what spans are measured in.
// \b is Unicode-aware, so a keyword glued to a non-ASCII letter is not a match.
var (
	keywordRegex    = regexp2.MustCompile(`\b(`+keywords+`)\b`, regexp2.IgnoreCase)
	fencedCodeRegex = regexp2.MustCompile("```.*?```", regexp2.Singleline)
	inlineCodeRegex = regexp2.MustCompile("`[^`\n]+`", regexp2.None)
)

// IsCodeSymbol reports whether r is a code punctuation or operator character.
func IsCodeSymbol(r rune) bool {
	return unicode.Is(codeTable, r)
}

// CodeReport is the density report produced by DetectCode.
type CodeReport struct {
	SymbolCount        int     `json:"code_symbols"`
	KeywordMatches     int     `json:"keyword_matches"`
	TotalNonWhitespace int     `json:"total_characters"`
	Ratio              float64 `json:"code_ratio"`
	IsCodeLike         bool    `json:"is_code_like"`
}

// DetectCode measures the density of code symbols in text and counts keyword
// occurrences. Any keyword match flags the text as code-like regardless of threshold.
// Empty or whitespace-only text yields a zero report.
func DetectCode(text string, threshold float64) CodeReport {
	normalized := script.Normalize(text)

	total := counter.NewNonWhitespaceCounter().Count(normalized)
	if total == 0 {
		return CodeReport{}
	}

	symbols := 0
	for _, r := range normalized {
		if IsCodeSymbol(r) {
			symbols++
		}
	}
	keywordMatches := len(findSpans(keywordRegex, normalized))

	ratio := percent(symbols, total)
	slog.Debug("Code density calculated", "symbols", symbols, "keywords", keywordMatches, "total", total, "ratio", ratio)

	return CodeReport{
		SymbolCount:        symbols,
		KeywordMatches:     keywordMatches,
		TotalNonWhitespace: total,
		Ratio:              ratio,
		IsCodeLike:         ratio >= threshold || keywordMatches > 0,
	}
}

// CodeSpans returns the fenced blocks, inline code spans and keyword occurrences of an
// already normalized text. Spans from different patterns may overlap.
func CodeSpans(normalized string) []Span {
	var spans []Span
	spans = append(spans, findSpans(fencedCodeRegex, normalized)...)
	spans = append(spans, findSpans(inlineCodeRegex, normalized)...)
	spans = append(spans, findSpans(keywordRegex, normalized)...)
	return spans
}

// findSpans collects every non-overlapping match of re in text.
func findSpans(re *regexp2.Regexp, text string) []Span {
	var spans []Span

	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		spans = append(spans, Span{Start: m.Index, End: m.Index + m.Length})
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		// only a match timeout can fail here; keep what was found
		slog.Debug("Span search stopped early", "pattern", re.String(), "error", err)
	}

	return spans
}
