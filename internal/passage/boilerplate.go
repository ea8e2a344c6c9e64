package passage

import (
	"math"
	"regexp"
	"strings"

	"github.com/kljensen/snowball"
)

// boilerplateStems contains stemmed words that commonly appear in headers, footers,
// navigation and publishing metadata.
var boilerplateStems = map[string]struct{}{
	// --- Publishing & Document Structure ---
	"author":    {},
	"appendix":  {},
	"book":      {},
	"chapter":   {},
	"content":   {}, // from "table of contents"
	"edit":      {}, // from "edition"
	"ebook":     {},
	"footer":    {},
	"glossari":  {},
	"gutenberg": {}, // from "Project Gutenberg"
	"navig":     {},
	"page":      {},
	"project":   {},
	"publish":   {},

	// --- Navigation & Interaction ---
	"about":  {},
	"locat":  {},
	"profil": {},
	"share":  {},
	"updat":  {},

	// --- Legal & Footer Text ---
	"copyright": {},
	"licens":    {},
	"permiss":   {},
	"polici":    {},
	"privaci":   {},
	"reproduc":  {},
	"reserv":    {},
	"right":     {},
	"term":      {},

	// --- References ---
	"citat":   {},
	"https":   {},
	"isbn":    {},
	"refer":   {},
	"foundat": {},
}

// BoilerplateDetector flags passages that look like document furniture rather than
// content, using the share of boilerplate stems among a passage's Latin-script words.
type BoilerplateDetector struct {
	tokenRegex *regexp.Regexp
}

// NewBoilerplateDetector creates and initializes a new BoilerplateDetector.
func NewBoilerplateDetector() *BoilerplateDetector {
	return &BoilerplateDetector{
		tokenRegex: regexp.MustCompile(`\b[a-zA-Z]+\b`),
	}
}

// IsBoilerplate reports whether the passage at index (of total) is boilerplate.
// Blank passages are boilerplate. Passages without Latin-script words are never
// flagged: the stem list only speaks English.
func (d *BoilerplateDetector) IsBoilerplate(text string, index, total int) bool {
	if total <= 0 || index < 0 || index >= total {
		return false
	}
	if strings.TrimSpace(text) == "" {
		return true
	}

	tokens := d.tokenRegex.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return false
	}

	hits := 0
	for _, token := range tokens {
		stemmed, err := snowball.Stem(token, "english", true)
		if err != nil {
			stemmed = token
		}
		if _, ok := boilerplateStems[stemmed]; ok {
			hits++
		}
	}

	ratio := float64(hits) / float64(len(tokens))
	return ratio > threshold(index, total)
}

// threshold is lowest at the edges of a document, where furniture concentrates, and
// highest in the middle.
func threshold(index, total int) float64 {
	if total <= 3 {
		return 0.5
	}

	relative := float64(index) / float64(total-1)
	// inverted V: 0 at both ends, 1 in the middle
	position := 1.0 - math.Abs(2.0*relative-1.0)

	const edge, middle = 0.1, 0.33
	return edge + (middle-edge)*position
}
