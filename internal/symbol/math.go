// Package symbol detects symbolic content in text: mathematical notation and
// source-code-like tokens.
//
// Each detector exposes a per-rune membership test (IsMathSymbol, IsCodeSymbol), used by
// the filtering engine, and a text-level density report (DetectMath, DetectCode). Density is
// the share of matching code points among the non-whitespace code points, as a percentage
// rounded to two decimals.
package symbol

import (
	"log/slog"
	"math"
	"unicode"

	"golang.org/x/text/unicode/rangetable"

	"github.com/chriscorrea/scriptsift/internal/counter"
	"github.com/chriscorrea/scriptsift/internal/script"
)

// DefaultThreshold is the density, in percent, at which text is flagged.
const DefaultThreshold = 1.0

// mathTable covers the Unicode math symbol category, the mathematical operator and
// symbol blocks, and the ASCII characters used as operators in plain-text math.
var mathTable = rangetable.Merge(
	unicode.Sm,
	span(0x2200, 0x22FF),   // Mathematical Operators
	span(0x27C0, 0x27EF),   // Miscellaneous Mathematical Symbols-A
	span(0x2980, 0x29FF),   // Miscellaneous Mathematical Symbols-B
	span(0x2A00, 0x2AFF),   // Supplemental Mathematical Operators
	span(0x1D400, 0x1D7FF), // Mathematical Alphanumeric Symbols
	rangetable.New('^', '*', '/', '-', '%'),
)

// IsMathSymbol reports whether r is a mathematical symbol.
func IsMathSymbol(r rune) bool {
	return unicode.Is(mathTable, r)
}

// MathReport is the density report produced by DetectMath.
type MathReport struct {
	SymbolCount        int     `json:"math_symbols"`
	TotalNonWhitespace int     `json:"total_characters"`
	Ratio              float64 `json:"math_ratio"`
	IsMathLike         bool    `json:"is_math_like"`
}

// DetectMath measures the density of math symbols in text. Text is flagged as math-like
// when the ratio reaches threshold (inclusive). Empty or whitespace-only text yields a
// zero report.
func DetectMath(text string, threshold float64) MathReport {
	normalized := script.Normalize(text)

	total := counter.NewNonWhitespaceCounter().Count(normalized)
	if total == 0 {
		return MathReport{}
	}

	symbols := 0
	for _, r := range normalized {
		if IsMathSymbol(r) {
			symbols++
		}
	}

	ratio := percent(symbols, total)
	slog.Debug("Math density calculated", "symbols", symbols, "total", total, "ratio", ratio)

	return MathReport{
		SymbolCount:        symbols,
		TotalNonWhitespace: total,
		Ratio:              ratio,
		IsMathLike:         ratio >= threshold,
	}
}

// percent returns part/total*100 rounded to two decimals; total must be positive.
func percent(part, total int) float64 {
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// span returns a range table covering lo..hi inclusive.
func span(lo, hi rune) *unicode.RangeTable {
	if hi <= 0xFFFF {
		return &unicode.RangeTable{R16: []unicode.Range16{{Lo: uint16(lo), Hi: uint16(hi), Stride: 1}}}
	}
	return &unicode.RangeTable{R32: []unicode.Range32{{Lo: uint32(lo), Hi: uint32(hi), Stride: 1}}}
}
