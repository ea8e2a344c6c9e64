// Package classify computes the script composition of a text.
//
// The classifier counts, for each curated script category, how many code points of the
// normalized text belong to it, then applies a Japanese/Chinese disambiguation pass:
// Han ideographs count as Japanese whenever kana are present, and as Chinese otherwise.
// Shares are expressed as percentages of the total code-point count (whitespace included),
// rounded to two decimals. Categories are not mutually exclusive: "autre" covers every
// code point outside Basic Latin.
package classify

import (
	"log/slog"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/chriscorrea/scriptsift/internal/script"
)

// Classifier computes script proportions over a fixed list of script sets.
type Classifier struct {
	sets []script.Set
}

// NewClassifier creates a Classifier over the curated script categories.
func NewClassifier() *Classifier {
	return &Classifier{
		sets: script.Categories(),
	}
}

// Classify is shorthand for NewClassifier().Classify(text).
func Classify(text string) Report {
	return NewClassifier().Classify(text)
}

// Classify normalizes text and reports the share of each script category.
// Empty text yields an empty report.
func (c *Classifier) Classify(text string) Report {
	normalized := script.Normalize(text)

	counts := c.count(normalized)
	disambiguate(counts)

	report := newReport(counts, runeCount(normalized))
	slog.Debug("Text classified", "total", report.Total, "categories", report.Percentages.Len())
	return report
}

// count scans the text once per set and returns the raw counts in category order.
func (c *Classifier) count(normalized string) *orderedmap.OrderedMap[string, int] {
	counts := orderedmap.New[string, int]()
	for _, s := range c.sets {
		counts.Set(s.Name(), s.Count(normalized))
	}
	return counts
}

// disambiguate folds Han counts into Japanese when any kana is present; otherwise Han is
// reported under the synthesized Chinese category. Either way the plain kanji count ends
// at zero.
func disambiguate(counts *orderedmap.OrderedMap[string, int]) {
	kana, _ := counts.Get(script.Japanese)
	kanji, _ := counts.Get(script.Kanji)

	switch {
	case kana > 0:
		counts.Set(script.Japanese, kana+kanji)
		counts.Set(script.Kanji, 0)
	case kanji > 0:
		counts.Set(script.Chinese, kanji)
		counts.Set(script.Kanji, 0)
	}
}

// roundPercent returns count/total*100 rounded to two decimals.
func roundPercent(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*100*100) / 100
}
