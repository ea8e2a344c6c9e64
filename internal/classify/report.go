package classify

import (
	"encoding/json"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Report holds the outcome of a classification. Counts keeps every category after
// disambiguation, zero or not; Percentages keeps only the non-zero ones.
type Report struct {
	Total       int
	Counts      *orderedmap.OrderedMap[string, int]
	Percentages *orderedmap.OrderedMap[string, float64]
}

// newReport derives the percentage view from disambiguated counts over a text of total
// code points.
func newReport(counts *orderedmap.OrderedMap[string, int], total int) Report {
	r := Report{
		Total:       total,
		Counts:      counts,
		Percentages: orderedmap.New[string, float64](),
	}
	if total == 0 {
		return r
	}
	for pair := counts.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value > 0 {
			r.Percentages.Set(pair.Key, roundPercent(pair.Value, total))
		}
	}
	return r
}

// Percent returns the share of a category and whether it is present in the report.
func (r Report) Percent(category string) (float64, bool) {
	if r.Percentages == nil {
		return 0, false
	}
	return r.Percentages.Get(category)
}

// Map returns the percentage view as a plain map.
func (r Report) Map() map[string]float64 {
	out := make(map[string]float64)
	if r.Percentages == nil {
		return out
	}
	for pair := r.Percentages.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// Categories returns the names present in the percentage view, in report order.
func (r Report) Categories() []string {
	if r.Percentages == nil {
		return nil
	}
	names := make([]string, 0, r.Percentages.Len())
	for pair := r.Percentages.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// MarshalJSON encodes the percentage view as an object in category order.
func (r Report) MarshalJSON() ([]byte, error) {
	if r.Percentages == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Percentages)
}

// runeCount is the classification total: every code point, whitespace included.
func runeCount(normalized string) int {
	return utf8.RuneCountInString(normalized)
}
