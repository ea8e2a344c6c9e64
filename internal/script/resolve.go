package script

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"
)

// ErrUnknownScript is matched by errors.Is for every unresolvable script name.
var ErrUnknownScript = errors.New("unknown script")

// UnknownScriptError reports a script name that neither the curated registry nor the
// Unicode script tables know about.
type UnknownScriptError struct {
	Name string
}

func (e *UnknownScriptError) Error() string {
	return fmt.Sprintf("unknown or invalid script name: %q", e.Name)
}

// Is makes errors.Is(err, ErrUnknownScript) hold.
func (e *UnknownScriptError) Is(target error) bool {
	return target == ErrUnknownScript
}

// aliases is the curated lookup table, keyed by lower-case name.
var aliases = map[string]Set{}

func init() {
	for _, s := range categories {
		aliases[strings.ToLower(s.name)] = s
	}

	register := func(name string, s Set) {
		aliases[name] = Set{name: name, contains: s.contains}
	}

	register("hiragana", fromTable("hiragana", unicode.Hiragana))
	register("katakana", fromTable("katakana", unicode.Katakana))
	register("han", fromTable("han", unicode.Han))
	register("chinese", fromTable("chinese", unicode.Han))
	register("japanese", fromTable("japanese", union(unicode.Hiragana, unicode.Katakana, unicode.Han)))

	// english spellings of the classification categories
	register("korean", aliases[Korean])
	register("russian", aliases[Russian])
	register("cyrillic", aliases[Russian])
	register("arabic", aliases[Arabic])
	register("hebrew", aliases[Hebrew])
	register("greek", aliases[Greek])
	register("latin extended", aliases[LatinExtended])
	register("latin-extended", aliases[LatinExtended])
	register("other", aliases[Other])
}

// Resolve maps a user-supplied script name to a Set. Lookup is case-insensitive and
// ignores surrounding whitespace. Curated names win; anything else is looked up as a
// Unicode script property ("Thai", "old italic", "Old_Italic").
func Resolve(name string) (Set, error) {
	trimmed := strings.TrimSpace(name)
	key := strings.ToLower(trimmed)
	if key == "" {
		return Set{}, &UnknownScriptError{Name: name}
	}

	if s, ok := aliases[key]; ok {
		return s, nil
	}

	if table, property := unicodeScript(key); table != nil {
		slog.Debug("Resolved script from Unicode property", "name", trimmed, "property", property)
		return fromTable(trimmed, table), nil
	}

	return Set{}, &UnknownScriptError{Name: trimmed}
}

// ResolveAll resolves names in order, skipping blank entries. It fails on the first
// unknown name so callers never produce partial output.
func ResolveAll(names []string) ([]Set, error) {
	sets := make([]Set, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		s, err := Resolve(name)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, nil
}

// AnyContains reports whether any of sets contains r.
func AnyContains(sets []Set, r rune) bool {
	for _, s := range sets {
		if s.Contains(r) {
			return true
		}
	}
	return false
}

// Names returns the curated names accepted by Resolve, sorted.
func Names() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// unicodeScript finds a Unicode script table by case-insensitive property name.
func unicodeScript(key string) (*unicode.RangeTable, string) {
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	for property, table := range unicode.Scripts {
		if strings.ToLower(property) == key {
			return table, property
		}
	}
	return nil, ""
}
