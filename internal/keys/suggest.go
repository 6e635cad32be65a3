package keys

import (
	"maps"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a misspelt token may be from a known
// name and still get a suggestion.
const maxSuggestDistance = 2

// Unresolved returns the first token of value that does not resolve, or ""
// when every token does.
func Unresolved(value string) string {
	for _, tok := range Tokenize(value) {
		if _, ok := Resolve(tok); !ok {
			return tok
		}
	}
	return ""
}

// Suggest returns the alias or namespace name closest to token, or "" when
// nothing is within a couple of edits. The VK_ prefix is optional on both
// sides, as it is for Resolve.
func Suggest(token string) string {
	t := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(token)), "VK_")
	if t == "" {
		return ""
	}

	best, bestDist := "", maxSuggestDistance+1
	consider := func(name string) {
		d := levenshtein.ComputeDistance(t, strings.TrimPrefix(name, "VK_"))
		if d < bestDist && d < len(t) {
			best, bestDist = name, d
		}
	}
	for _, name := range Names() {
		consider(name)
	}
	for _, alias := range slices.Sorted(maps.Keys(aliases)) {
		consider(alias)
	}
	return best
}
