// Package app contains the application logic behind the scriptsift commands.
// It loads documents, runs the requested analysis on each one and renders the results,
// independent of CLI concerns.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/chriscorrea/scriptsift/internal/classify"
	"github.com/chriscorrea/scriptsift/internal/counter"
	"github.com/chriscorrea/scriptsift/internal/fetch"
	"github.com/chriscorrea/scriptsift/internal/filter"
	"github.com/chriscorrea/scriptsift/internal/markup"
	"github.com/chriscorrea/scriptsift/internal/passage"
	"github.com/chriscorrea/scriptsift/internal/script"
	"github.com/chriscorrea/scriptsift/internal/spinner"
	"github.com/chriscorrea/scriptsift/internal/symbol"
)

// Command selects the analysis Run performs.
type Command int

const (
	Classify Command = iota
	DetectMath
	DetectCode
	Remove
	Extract
	Passages
	Scripts
)

// String returns the CLI name of the command.
func (c Command) String() string {
	switch c {
	case Classify:
		return "classify"
	case DetectMath:
		return "detect-math"
	case DetectCode:
		return "detect-code"
	case Remove:
		return "remove"
	case Extract:
		return "extract"
	case Passages:
		return "passages"
	case Scripts:
		return "scripts"
	default:
		return "unknown"
	}
}

// OutputFormat defines the output format for results
type OutputFormat int

const (
	// JSON output format (default)
	JSON OutputFormat = iota
	// plaintext output format
	Text
)

// String returns the string representation of the output
func (f OutputFormat) String() string {
	switch f {
	case JSON:
		return "JSON"
	case Text:
		return "Text"
	default:
		return "Unknown"
	}
}

// ParseOutputFormat maps a configuration value to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return JSON, nil
	case "text", "txt":
		return Text, nil
	default:
		return JSON, fmt.Errorf("unknown output format %q", s)
	}
}

// Config holds all configuration options for a run.
type Config struct {
	Command Command

	Sources []string // URLs, file paths, or "-" for stdin
	Text    string   // literal input, used instead of Sources when UseText is set
	UseText bool

	HTML     bool   // treat every input as HTML
	Selector string // CSS selector for HTML inputs
	FullHTML bool   // convert whole HTML documents instead of their main content

	Scripts        []string // script names for remove, extract and passages
	Math           bool     // remove or extract math symbols
	Code           bool     // remove or extract code spans and symbols
	KeepWhitespace bool     // extract keeps whitespace

	MathThreshold float64
	CodeThreshold float64
	Stats         bool // classify adds text statistics

	ChunkSize  int // passage size limit in code points
	MinLength  int // minimum passage length in code points
	IncludeAll bool

	OutputFormat OutputFormat
	Quiet        bool      // suppress warnings and the spinner
	Debug        bool
	Stderr       io.Writer // warnings and spinner; os.Stderr when nil
}

func (c Config) stderr() io.Writer {
	if c.Stderr != nil {
		return c.Stderr
	}
	return os.Stderr
}

// document is one loaded input, reduced to text.
type document struct {
	Name string
	Text string
}

// Run executes the configured command and returns the rendered output.
//
// Script names are checked before any source is read. Sources that cannot be loaded
// are reported as warnings and skipped; Run fails only when none could be loaded.
// ctx allows for cancellation of network fetches.
func Run(ctx context.Context, cfg Config) (string, error) {
	if cfg.Command == Scripts {
		return render(cfg, []result{{Value: script.Names()}})
	}

	if _, err := script.ResolveAll(cfg.Scripts); err != nil {
		return "", err
	}
	if cfg.Command == Passages && len(cfg.Scripts) == 0 {
		return "", passage.ErrNoScripts
	}

	docs, err := loadDocuments(ctx, cfg)
	if err != nil {
		return "", err
	}

	results := make([]result, 0, len(docs))
	for _, doc := range docs {
		value, err := analyze(doc.Text, cfg)
		if err != nil {
			return "", fmt.Errorf("failed to %s %q: %w", cfg.Command, doc.Name, err)
		}
		results = append(results, result{Source: doc.Name, Value: value})
	}

	slog.Debug("Run completed", "command", cfg.Command.String(), "documents", len(results))
	return render(cfg, results)
}

// analyze runs the configured command on one document.
func analyze(text string, cfg Config) (any, error) {
	switch cfg.Command {
	case Classify:
		report := classify.Classify(text)
		if !cfg.Stats {
			return report, nil
		}
		stats, err := counter.Collect(text)
		if err != nil && !cfg.Quiet {
			fmt.Fprintf(cfg.stderr(), "Warning: token count unavailable: %v\n", err)
		}
		return classifyWithStats{Scripts: report, Stats: stats}, nil
	case DetectMath:
		return symbol.DetectMath(text, cfg.MathThreshold), nil
	case DetectCode:
		return symbol.DetectCode(text, cfg.CodeThreshold), nil
	case Remove, Extract:
		fc := filter.Config{
			Scripts:        cfg.Scripts,
			Math:           cfg.Math,
			Code:           cfg.Code,
			KeepWhitespace: cfg.KeepWhitespace,
		}
		var out string
		var err error
		if cfg.Command == Remove {
			out, err = filter.Remove(text, fc)
		} else {
			out, err = filter.Extract(text, fc)
		}
		if err != nil {
			return nil, err
		}
		return filtered{Text: out}, nil
	case Passages:
		return passage.Filter(text, passage.Options{
			Scripts:    cfg.Scripts,
			MinLength:  cfg.MinLength,
			MaxLength:  cfg.ChunkSize,
			IncludeAll: cfg.IncludeAll,
		})
	default:
		return nil, fmt.Errorf("unknown command %d", cfg.Command)
	}
}

// loadDocuments reads every input, warning about and skipping the ones that fail.
func loadDocuments(ctx context.Context, cfg Config) ([]document, error) {
	if cfg.UseText {
		text, err := toText(cfg.Text, "", cfg.HTML, cfg)
		if err != nil {
			return nil, err
		}
		return []document{{Name: "text", Text: text}}, nil
	}

	sources := cfg.Sources
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	var docs []document
	for _, source := range sources {
		text, err := loadSource(ctx, source, cfg)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(cfg.stderr(), "Warning: failed to process source %q: %v\n", source, err)
			}
			continue
		}
		docs = append(docs, document{Name: source, Text: text})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no content loaded from any source")
	}
	return docs, nil
}

// loadSource fetches one source, with a spinner for remote ones, and reduces HTML to text.
func loadSource(ctx context.Context, source string, cfg Config) (string, error) {
	var src fetch.Source
	load := func() error {
		var err error
		src, err = fetch.Load(ctx, source)
		return err
	}

	var err error
	if fetch.IsURL(source) && !cfg.Quiet {
		err = spinner.While(ctx, cfg.stderr(), "Fetching "+source, load)
	} else {
		err = load()
	}
	if err != nil {
		return "", err
	}

	return toText(src.Text, source, src.HTML || cfg.HTML, cfg)
}

// toText converts HTML inputs to markdown and passes everything else through.
func toText(content, source string, isHTML bool, cfg Config) (string, error) {
	if !isHTML {
		return content, nil
	}

	var baseURL *url.URL
	if fetch.IsURL(source) {
		baseURL, _ = url.Parse(source) // nil on error, which readability accepts
	}

	text, err := markup.ToText(strings.NewReader(content), markup.Options{
		Selector: cfg.Selector,
		Full:     cfg.FullHTML,
		BaseURL:  baseURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}
	slog.Debug("HTML converted", "source", source, "inputBytes", len(content), "outputBytes", len(text))
	return text, nil
}
