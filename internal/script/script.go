// Package script provides the named script sets used to classify and filter text.
//
// A script set is an immutable predicate over a single code point. The package keeps a
// curated registry of sets (the categories reported by the classifier, plus aliases such
// as "japanese" or "chinese") and falls back to the Unicode script property tables for
// any other name, so that "Thai", "devanagari" or "Old_Italic" resolve as well.
//
// Usage Example:
//
//	set, err := script.Resolve("cyrillic")
//	if err != nil {
//		return err
//	}
//	set.Contains('Ж') // true
package script

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Category names reported by the classifier. They are a stable contract for downstream
// reporting, so they keep their historical spelling.
const (
	Japanese      = "japonais"
	Kanji         = "kanji"
	Korean        = "coréen"
	Russian       = "russe"
	Arabic        = "arabe"
	Hebrew        = "hébreu"
	Greek         = "grec"
	LatinExtended = "latin étendu"
	Other         = "autre"
	// Chinese is synthesized by the classifier when Han appears without kana.
	Chinese = "chinois"
)

// Set is a named predicate over a single code point.
type Set struct {
	name     string
	contains func(r rune) bool
}

// Name returns the name the set was registered or resolved under.
func (s Set) Name() string {
	return s.name
}

// Contains reports whether r belongs to the set. The zero Set contains nothing.
func (s Set) Contains(r rune) bool {
	if s.contains == nil {
		return false
	}
	return s.contains(r)
}

// Count returns the number of code points of text that belong to the set.
func (s Set) Count(text string) int {
	n := 0
	for _, r := range text {
		if s.Contains(r) {
			n++
		}
	}
	return n
}

// fromTable builds a set backed by a Unicode range table.
func fromTable(name string, table *unicode.RangeTable) Set {
	return Set{
		name:     name,
		contains: func(r rune) bool { return unicode.Is(table, r) },
	}
}

// span returns a range table covering lo..hi inclusive.
func span(lo, hi rune) *unicode.RangeTable {
	if hi <= 0xFFFF {
		return &unicode.RangeTable{R16: []unicode.Range16{{Lo: uint16(lo), Hi: uint16(hi), Stride: 1}}}
	}
	return &unicode.RangeTable{R32: []unicode.Range32{{Lo: uint32(lo), Hi: uint32(hi), Stride: 1}}}
}

// union merges range tables into one normalized table.
func union(tables ...*unicode.RangeTable) *unicode.RangeTable {
	return rangetable.Merge(tables...)
}

var (
	kanaTable = union(
		span(0x3040, 0x309F), // hiragana
		span(0x30A0, 0x30FF), // katakana
		span(0x31F0, 0x31FF), // katakana phonetic extensions
	)
	kanjiTable  = span(0x4E00, 0x9FFF)
	hangulTable = union(span(0xAC00, 0xD7AF), span(0x1100, 0x11FF))
	arabicTable = union(span(0x0600, 0x06FF), span(0x0750, 0x077F))
)

// categories lists the classification sets in report order.
var categories = []Set{
	fromTable(Japanese, kanaTable),
	fromTable(Kanji, kanjiTable),
	fromTable(Korean, hangulTable),
	fromTable(Russian, span(0x0400, 0x04FF)),
	fromTable(Arabic, arabicTable),
	fromTable(Hebrew, span(0x0590, 0x05FF)),
	fromTable(Greek, span(0x0370, 0x03FF)),
	fromTable(LatinExtended, span(0x0100, 0x024F)),
	// anything outside Basic Latin; overlaps with every other category
	{name: Other, contains: func(r rune) bool { return r > unicode.MaxASCII }},
}

// Categories returns the classification sets in report order.
func Categories() []Set {
	out := make([]Set, len(categories))
	copy(out, categories)
	return out
}

// Category returns the classification set registered under name.
func Category(name string) (Set, bool) {
	for _, s := range categories {
		if s.name == name {
			return s, true
		}
	}
	return Set{}, false
}
