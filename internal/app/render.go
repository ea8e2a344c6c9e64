package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chriscorrea/scriptsift/internal/classify"
	"github.com/chriscorrea/scriptsift/internal/counter"
	"github.com/chriscorrea/scriptsift/internal/passage"
	"github.com/chriscorrea/scriptsift/internal/symbol"
)

// result is the analysis of one document.
type result struct {
	Source string `json:"source"`
	Value  any    `json:"result"`
}

type classifyWithStats struct {
	Scripts classify.Report `json:"scripts"`
	Stats   counter.Stats   `json:"stats"`
}

type filtered struct {
	Text string `json:"text"`
}

// render formats results. A single result is rendered bare; several are labelled with
// their source.
func render(cfg Config, results []result) (string, error) {
	if cfg.OutputFormat == Text {
		return renderText(results), nil
	}

	var payload any = results
	if len(results) == 1 {
		payload = results[0].Value
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return buf.String(), nil
}

func renderText(results []result) string {
	var sb strings.Builder
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				sb.WriteString("\n")
			}
			fmt.Fprintf(&sb, "==> %s <==\n", r.Source)
		}
		writeValue(&sb, r.Value)
	}

	out := sb.String()
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func writeValue(sb *strings.Builder, value any) {
	switch v := value.(type) {
	case []string:
		for _, s := range v {
			sb.WriteString(s + "\n")
		}
	case classify.Report:
		writeReport(sb, v, "")
	case classifyWithStats:
		writeReport(sb, v.Scripts, "")
		fmt.Fprintf(sb, "characters: %d\nnon-whitespace: %d\nwords: %d\ntokens: %d\n",
			v.Stats.Characters, v.Stats.NonWhitespace, v.Stats.Words, v.Stats.Tokens)
	case symbol.MathReport:
		fmt.Fprintf(sb, "math_symbols: %d\ntotal_characters: %d\nmath_ratio: %.2f%%\nis_math_like: %t\n",
			v.SymbolCount, v.TotalNonWhitespace, v.Ratio, v.IsMathLike)
	case symbol.CodeReport:
		fmt.Fprintf(sb, "code_symbols: %d\nkeyword_matches: %d\ntotal_characters: %d\ncode_ratio: %.2f%%\nis_code_like: %t\n",
			v.SymbolCount, v.KeywordMatches, v.TotalNonWhitespace, v.Ratio, v.IsCodeLike)
	case filtered:
		sb.WriteString(v.Text)
	case []passage.Hit:
		for _, hit := range v {
			fmt.Fprintf(sb, "[%d] %s\n", hit.Index, hit.Text)
			writeReport(sb, hit.Scripts, "    ")
		}
	default:
		fmt.Fprintf(sb, "%v\n", v)
	}
}

func writeReport(sb *strings.Builder, report classify.Report, indent string) {
	for _, category := range report.Categories() {
		percent, _ := report.Percent(category)
		fmt.Fprintf(sb, "%s%s: %.2f%%\n", indent, category, percent)
	}
}
