// Package markup reduces HTML documents to Markdown text before script analysis.
//
// Markdown keeps code blocks as fenced blocks and inline code as backtick spans, which is
// what the code detector and the span-aware filters look for.
package markup

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Options controls which part of an HTML document is converted.
type Options struct {
	// Selector restricts conversion to the elements matching a CSS selector.
	// It takes precedence over Full.
	Selector string
	// Full converts the whole document instead of the readable main content.
	Full bool
	// BaseURL resolves relative links during main content extraction. May be nil.
	BaseURL *url.URL
}

// ToText converts HTML to Markdown.
func ToText(content io.Reader, opts Options) (string, error) {
	switch {
	case opts.Selector != "":
		return convertSelection(content, opts.Selector)
	case opts.Full:
		return convertDocument(content)
	default:
		return convertMainContent(content, opts.BaseURL)
	}
}

func convertMainContent(content io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}
	return convertToMarkdown(article.Content)
}

func convertSelection(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var parts []string
	selection.Each(func(_ int, s *goquery.Selection) {
		inner, err := s.Html()
		if err != nil {
			return
		}
		tag := goquery.NodeName(s)
		parts = append(parts, fmt.Sprintf("<%s>%s</%s>", tag, inner, tag))
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return convertToMarkdown(strings.Join(parts, "\n"))
}

// TODO: stream the conversion once inputs outgrow the fetch size limits
func convertDocument(content io.Reader) (string, error) {
	htmlBytes, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}
	return convertToMarkdown(string(htmlBytes))
}

// rubyAnnotations drops furigana and ruby parentheses so that only the base text of
// annotated CJK words is counted.
func rubyAnnotations(_ *md.Converter) []md.Rule {
	return []md.Rule{
		{
			Filter: []string{"rt", "rp"},
			Replacement: func(_ string, _ *goquery.Selection, _ *md.Options) *string {
				return md.String("")
			},
		},
	}
}

func convertToMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, &md.Options{
		CodeBlockStyle: "fenced",
		Fence:          "```",
	})
	converter.Remove("script", "style", "noscript")
	converter.Use(rubyAnnotations)

	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	cleaned := strings.TrimSpace(markdown)
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}
	return cleaned, nil
}
