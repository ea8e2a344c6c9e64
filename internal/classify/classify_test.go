package classify_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriscorrea/scriptsift/internal/classify"
	"github.com/chriscorrea/scriptsift/internal/script"
)

func TestNewClassifier(t *testing.T) {
	classifier := classify.NewClassifier()
	if classifier == nil {
		t.Fatal("NewClassifier() returned nil")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		expected    map[string]float64
		order       []string
		description string
	}{
		{
			name:        "empty text",
			text:        "",
			expected:    map[string]float64{},
			description: "empty text should produce an empty report",
		},
		{
			name:        "ascii only",
			text:        "Hello world 123",
			expected:    map[string]float64{},
			description: "basic latin belongs to no category",
		},
		{
			name:        "latin and cyrillic",
			text:        "Hello Привет 123",
			expected:    map[string]float64{script.Russian: 37.5, script.Other: 37.5},
			order:       []string{script.Russian, script.Other},
			description: "6 cyrillic letters over 16 code points, spaces included",
		},
		{
			name:        "japanese with kanji",
			text:        "ひらがなと漢字",
			expected:    map[string]float64{script.Japanese: 100, script.Other: 100},
			order:       []string{script.Japanese, script.Other},
			description: "kana presence folds kanji into japanese",
		},
		{
			name:        "chinese",
			text:        "中文字",
			expected:    map[string]float64{script.Other: 100, script.Chinese: 100},
			order:       []string{script.Other, script.Chinese},
			description: "han without kana is reported as chinese",
		},
		{
			name:        "korean",
			text:        "한국어",
			expected:    map[string]float64{script.Korean: 100, script.Other: 100},
			description: "hangul syllables are korean",
		},
		{
			name:        "greek with latin",
			text:        "Ελληνικά abc",
			expected:    map[string]float64{script.Greek: 66.67, script.Other: 66.67},
			description: "8 greek letters over 12 code points",
		},
		{
			name:        "decomposed accent",
			text:        "e\u0301",
			expected:    map[string]float64{script.Other: 100},
			description: "NFC composes the accent into a single latin-1 code point",
		},
		{
			name:        "latin extended",
			text:        "Łódź",
			expected:    map[string]float64{script.LatinExtended: 50, script.Other: 75},
			description: "Ł and ź are latin extended, ó is latin-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := classify.Classify(tt.text)
			assert.Equal(t, tt.expected, report.Map(), tt.description)
			if tt.order != nil {
				assert.Equal(t, tt.order, report.Categories())
			}
		})
	}
}

func TestClassify_Disambiguation(t *testing.T) {
	texts := []string{
		"日本語のテキスト",
		"カタカナと漢字と中文",
		"東京へ行きます",
	}

	for _, text := range texts {
		report := classify.Classify(text)
		_, hasKanji := report.Percent(script.Kanji)
		_, hasChinese := report.Percent(script.Chinese)
		assert.False(t, hasKanji, "kana text %q must not report kanji", text)
		assert.False(t, hasChinese, "kana text %q must not report chinese", text)

		japanese, ok := report.Percent(script.Japanese)
		require.True(t, ok)
		assert.Equal(t, 100.0, japanese, "every code point of %q is kana or han", text)

		count, _ := report.Counts.Get(script.Kanji)
		assert.Equal(t, 0, count)
	}
}

func TestClassify_ExclusiveSharesStayWithinTotal(t *testing.T) {
	texts := []string{
		"Hello Привет 123",
		"ひらがなと漢字 and Ελληνικά",
		"مرحبا שלום 안녕 Привет Łódź 中文",
		"   ",
	}

	for _, text := range texts {
		report := classify.Classify(text)
		sum := 0.0
		for name, pct := range report.Map() {
			if name == script.Other {
				continue // overlaps with every other category
			}
			sum += pct
		}
		assert.LessOrEqual(t, sum, 100.01, "shares of %q", text)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	for _, text := range []string{"été", "Hello Привет", "ひらがな漢字", ""} {
		assert.Equal(t, classify.Classify(text).Map(), classify.Classify(script.Normalize(text)).Map())
	}
}

func TestReport_JSON(t *testing.T) {
	data, err := json.Marshal(classify.Classify("Hello Привет 123"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"russe": 37.5, "autre": 37.5}`, string(data))
	assert.Less(t, strings.Index(string(data), "russe"), strings.Index(string(data), "autre"))

	data, err = json.Marshal(classify.Classify(""))
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	data, err = json.Marshal(classify.Report{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestReport_Counts(t *testing.T) {
	report := classify.Classify("Hello Привет 123")
	assert.Equal(t, 16, report.Total)

	russian, ok := report.Counts.Get(script.Russian)
	require.True(t, ok)
	assert.Equal(t, 6, russian)

	greek, ok := report.Counts.Get(script.Greek)
	require.True(t, ok, "zero categories stay in the counts view")
	assert.Equal(t, 0, greek)
}
