package keys

import "strings"

// Chord is a parsed "+"-joined key combination.
type Chord struct {
	// Tokens holds every resolved code in the order written.
	Tokens []Code
	// Modifiers and Keys partition Tokens, each keeping written order.
	Modifiers []Code
	Keys      []Code
}

// Tokenize splits a chord string on "+", trims each part and drops empty
// parts.
func Tokenize(value string) []string {
	parts := strings.Split(value, "+")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// ParseChord resolves every token of value. It reports false when value has
// no tokens or any token does not resolve; a partial chord is never returned.
func ParseChord(value string) (Chord, bool) {
	tokens := Tokenize(value)
	if len(tokens) == 0 {
		return Chord{}, false
	}

	var c Chord
	c.Tokens = make([]Code, 0, len(tokens))
	for _, tok := range tokens {
		code, ok := Resolve(tok)
		if !ok {
			return Chord{}, false
		}
		c.Tokens = append(c.Tokens, code)
		if IsModifier(code) {
			c.Modifiers = append(c.Modifiers, code)
		} else {
			c.Keys = append(c.Keys, code)
		}
	}
	return c, true
}

// IsValid reports whether value parses as a complete chord.
func IsValid(value string) bool {
	_, ok := ParseChord(value)
	return ok
}

// Single reports whether the chord was written as exactly one token.
func (c Chord) Single() bool {
	return len(c.Tokens) == 1
}

// String renders the chord with canonical names, e.g. "LCONTROL+VK_A".
func (c Chord) String() string {
	names := make([]string, len(c.Tokens))
	for i, code := range c.Tokens {
		names[i] = code.String()
	}
	return strings.Join(names, "+")
}
