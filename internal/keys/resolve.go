package keys

import "strings"

// prefix is prepended to a token on the last resolution attempt so that
// "A", "1" and "f4" reach VK_A, VK_1 and F4.
const prefix = "VK_"

// aliases are checked before the namespace. Modifier aliases map to the
// left-hand variant, which injects more reliably than the generic code.
var aliases = map[string]Code{
	"ALT":       LMenu,
	"CTRL":      LControl,
	"SHIFT":     LShift,
	"WIN":       LWin,
	"ENTER":     Return,
	"ESC":       Escape,
	"BACKSPACE": Back,
	"BS":        Back,
	"TAB":       Tab,
	"DEL":       Delete,
	"INS":       Insert,
	"PGUP":      Prior,
	"PGDN":      Next,
	"HOME":      Home,
	"END":       End,
}

// Resolve maps a single token to a Code: alias table first, then an exact
// case-insensitive namespace match, then the namespace with the VK_ prefix.
func Resolve(token string) (Code, bool) {
	upper := strings.ToUpper(strings.TrimSpace(token))
	if upper == "" {
		return None, false
	}
	if code, ok := aliases[upper]; ok {
		return code, true
	}
	if code, ok := byName[upper]; ok {
		return code, true
	}
	if code, ok := byName[prefix+upper]; ok {
		return code, true
	}
	return None, false
}

// IsModifier reports whether c is a Control, Alt, Shift or Win key of any
// side.
func IsModifier(c Code) bool {
	switch c {
	case Control, LControl, RControl,
		Menu, LMenu, RMenu,
		Shift, LShift, RShift,
		LWin, RWin:
		return true
	}
	return false
}
