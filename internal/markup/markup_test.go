package markup_test

import (
	"strings"
	"testing"

	"github.com/chriscorrea/scriptsift/internal/markup"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Language notes</title>
</head>
<body>
    <header>
        <h1>Site Header</h1>
        <nav>Navigation</nav>
    </header>
    <main>
        <article>
            <h1>Notes on writing systems</h1>
            <p>Russian is written in Cyrillic: <strong>Привет, мир</strong> means hello world.
            Greek uses its own alphabet, as in <em>καλημέρα</em> for good morning.</p>
            <p>Japanese mixes kana and kanji, for example 日本語のテキスト, while Chinese uses
            hanzi only, for example 这是中文.</p>
            <ul>
                <li>First script family</li>
                <li>Second script family</li>
            </ul>
        </article>
    </main>
    <aside>
        <p>This is sidebar content that should be filtered out.</p>
    </aside>
    <footer>
        <p>Footer content</p>
    </footer>
</body>
</html>`

const codeHTML = `<html><body>
<div class="doc">
<p>Call <code>len(s)</code> to get the length.</p>
<pre><code>def add(a, b):
    return a + b
</code></pre>
<script>var tracking = 1;</script>
<style>p { color: red; }</style>
</div>
</body></html>`

func TestToText(t *testing.T) {
	tests := []struct {
		name        string
		html        string
		opts        markup.Options
		expectError bool
		contains    []string
		notContains []string
	}{
		{
			name:        "main content extraction",
			html:        articleHTML,
			contains:    []string{"Notes on writing systems", "Привет, мир", "καλημέρα", "日本語のテキスト", "这是中文", "First script family"},
			notContains: []string{"Site Header", "Footer content"},
		},
		{
			name:        "selector",
			html:        articleHTML,
			opts:        markup.Options{Selector: "li"},
			contains:    []string{"First script family", "Second script family"},
			notContains: []string{"Привет", "Site Header"},
		},
		{
			name:     "full document",
			html:     articleHTML,
			opts:     markup.Options{Full: true},
			contains: []string{"Site Header", "Привет, мир", "Footer content"},
		},
		{
			name:        "selector wins over full",
			html:        articleHTML,
			opts:        markup.Options{Selector: "footer", Full: true},
			contains:    []string{"Footer content"},
			notContains: []string{"Site Header"},
		},
		{
			name:        "missing selector",
			html:        articleHTML,
			opts:        markup.Options{Selector: ".missing"},
			expectError: true,
		},
		{
			name:        "invalid selector",
			html:        articleHTML,
			opts:        markup.Options{Selector: ">>invalid<<"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := markup.ToText(strings.NewReader(tt.html), tt.opts)
			if tt.expectError {
				if err == nil {
					t.Errorf("ToText() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("ToText() unexpected error: %v", err)
			}

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("ToText() result should contain %q.\nResult: %s", expected, result)
				}
			}
			for _, notExpected := range tt.notContains {
				if strings.Contains(result, notExpected) {
					t.Errorf("ToText() result should not contain %q.\nResult: %s", notExpected, result)
				}
			}
			for _, tag := range []string{"<div>", "<span>", "<article>", "</p>"} {
				if strings.Contains(result, tag) {
					t.Errorf("ToText() result contains raw HTML tag %q", tag)
				}
			}
		})
	}
}

func TestToTextCode(t *testing.T) {
	result, err := markup.ToText(strings.NewReader(codeHTML), markup.Options{Selector: ".doc"})
	if err != nil {
		t.Fatalf("ToText() unexpected error: %v", err)
	}

	if !strings.Contains(result, "`len(s)`") {
		t.Errorf("inline code should become a backtick span.\nResult: %s", result)
	}
	if !strings.Contains(result, "```") || !strings.Contains(result, "return a + b") {
		t.Errorf("code blocks should be fenced.\nResult: %s", result)
	}
	if strings.Contains(result, "tracking") || strings.Contains(result, "color: red") {
		t.Errorf("script and style content should be removed.\nResult: %s", result)
	}
}

func TestToTextRuby(t *testing.T) {
	html := `<html><body><p><ruby>漢<rp>(</rp><rt>かん</rt><rp>)</rp></ruby><ruby>字<rt>じ</rt></ruby>を読む</p></body></html>`

	result, err := markup.ToText(strings.NewReader(html), markup.Options{Selector: "p"})
	if err != nil {
		t.Fatalf("ToText() unexpected error: %v", err)
	}
	if !strings.Contains(result, "漢字を読む") {
		t.Errorf("base text should be kept.\nResult: %s", result)
	}
	for _, annotation := range []string{"かん", "じ", "("} {
		if strings.Contains(result, annotation) {
			t.Errorf("ruby annotation %q should be dropped.\nResult: %s", annotation, result)
		}
	}
}

func TestToTextEmpty(t *testing.T) {
	for _, html := range []string{"", "   \n\t   "} {
		result, err := markup.ToText(strings.NewReader(html), markup.Options{Full: true})
		if err != nil {
			t.Fatalf("ToText(%q) unexpected error: %v", html, err)
		}
		if strings.TrimSpace(result) != "" {
			t.Errorf("ToText(%q) = %q, want empty", html, result)
		}
	}
}
