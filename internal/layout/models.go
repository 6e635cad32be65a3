package layout

import (
	"slices"
	"strconv"
	"strings"
)

// ActionKind selects how a button's Value is interpreted.
type ActionKind string

const (
	ActionSendKey    ActionKind = "SendKey"
	ActionCommandKey ActionKind = "CommandKey"
	ActionSendValue  ActionKind = "SendValue"
	ActionNavigate   ActionKind = "Navigate"
	ActionRunCommand ActionKind = "RunCommand"
)

// ActionKinds lists the recognised kinds in display order.
var ActionKinds = []ActionKind{
	ActionSendKey,
	ActionCommandKey,
	ActionSendValue,
	ActionNavigate,
	ActionRunCommand,
}

// Known reports whether k is one of ActionKinds.
func (k ActionKind) Known() bool {
	return slices.Contains(ActionKinds, k)
}

// Layout is a complete keyboard: window geometry, grid settings and pages.
// Field order here is the field order of the persisted document.
type Layout struct {
	Name        string  `yaml:"name" json:"name"`
	Width       float64 `yaml:"width" json:"width"`
	Height      float64 `yaml:"height" json:"height"`
	WindowX     float64 `yaml:"windowX" json:"windowX"`
	WindowY     float64 `yaml:"windowY" json:"windowY"`
	GridRows    int     `yaml:"gridRows" json:"gridRows"`
	GridCols    int     `yaml:"gridCols" json:"gridCols"`
	GridEnabled bool    `yaml:"gridEnabled" json:"gridEnabled"`
	GridVisible bool    `yaml:"gridVisible" json:"gridVisible"`
	Pages       []Page  `yaml:"pages" json:"pages"`
}

// Page is a named set of buttons. Name is also the navigation key.
type Page struct {
	Name    string   `yaml:"name" json:"name"`
	Buttons []Button `yaml:"buttons" json:"buttons"`
}

// Button is one key on a page. Text, colors and geometry are opaque to the
// runtime; Action and Value drive execution.
type Button struct {
	Text      string     `yaml:"text" json:"text"`
	Color     string     `yaml:"color" json:"color"`
	TextColor string     `yaml:"textColor" json:"textColor"`
	FontSize  float64    `yaml:"fontSize" json:"fontSize"`
	IsBold    bool       `yaml:"isBold" json:"isBold"`
	Width     float64    `yaml:"width" json:"width"`
	Height    float64    `yaml:"height" json:"height"`
	X         float64    `yaml:"x" json:"x"`
	Y         float64    `yaml:"y" json:"y"`
	Action    ActionKind `yaml:"action" json:"action"`
	Value     string     `yaml:"value" json:"value"`
}

// Defaults used by the designer when creating entities.
const (
	DefaultLayoutName  = "New Keyboard"
	DefaultWidth       = 1000
	DefaultHeight      = 600
	DefaultWindowX     = 100
	DefaultWindowY     = 100
	DefaultGridRows    = 10
	DefaultGridCols    = 10
	DefaultButtonColor = "#DDDDDD"
	DefaultTextColor   = "#000000"
	DefaultFontSize    = 14
	DefaultButtonSize  = 60
)

// New returns an empty layout with designer defaults.
func New(name string) *Layout {
	if name == "" {
		name = DefaultLayoutName
	}
	return &Layout{
		Name:        name,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		WindowX:     DefaultWindowX,
		WindowY:     DefaultWindowY,
		GridRows:    DefaultGridRows,
		GridCols:    DefaultGridCols,
		GridEnabled: true,
		GridVisible: false,
		Pages:       []Page{},
	}
}

// NewPage returns an empty page.
func NewPage(name string) Page {
	return Page{Name: name, Buttons: []Button{}}
}

// NewButton returns a button with designer defaults.
func NewButton() Button {
	return Button{
		Text:      "Key",
		Color:     DefaultButtonColor,
		TextColor: DefaultTextColor,
		FontSize:  DefaultFontSize,
		Width:     DefaultButtonSize,
		Height:    DefaultButtonSize,
		Action:    ActionSendKey,
	}
}

// Default is the fallback layout used when nothing could be loaded: one
// empty "Main" page.
func Default() *Layout {
	l := New("Default")
	l.Pages = append(l.Pages, NewPage("Main"))
	return l
}

// PageIndex returns the index of the first page whose name matches
// case-insensitively, or -1. Duplicate names resolve to the first.
func (l *Layout) PageIndex(name string) int {
	if l == nil {
		return -1
	}
	for i := range l.Pages {
		if strings.EqualFold(l.Pages[i].Name, name) {
			return i
		}
	}
	return -1
}

// FindPage resolves ref as a 1-based page number or, failing that, a page
// name. It returns -1 when nothing matches.
func (l *Layout) FindPage(ref string) int {
	if l == nil {
		return -1
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(l.Pages) {
			return n - 1
		}
		return -1
	}
	return l.PageIndex(ref)
}

// FindButton resolves ref as a 1-based button number or the text of the
// first button matching case-insensitively. It returns -1 when nothing
// matches.
func (p *Page) FindButton(ref string) int {
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(p.Buttons) {
			return n - 1
		}
		return -1
	}
	for i := range p.Buttons {
		if strings.EqualFold(p.Buttons[i].Text, ref) {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	c := *l
	c.Pages = make([]Page, len(l.Pages))
	for i, p := range l.Pages {
		c.Pages[i] = Page{Name: p.Name, Buttons: slices.Clone(p.Buttons)}
		if c.Pages[i].Buttons == nil {
			c.Pages[i].Buttons = []Button{}
		}
	}
	return &c
}

// Equal compares two layouts field by field, including page and button
// order. Nil and empty slices compare equal.
func (l *Layout) Equal(o *Layout) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.Name != o.Name || l.Width != o.Width || l.Height != o.Height ||
		l.WindowX != o.WindowX || l.WindowY != o.WindowY ||
		l.GridRows != o.GridRows || l.GridCols != o.GridCols ||
		l.GridEnabled != o.GridEnabled || l.GridVisible != o.GridVisible {
		return false
	}
	return slices.EqualFunc(l.Pages, o.Pages, func(a, b Page) bool {
		return a.Name == b.Name && slices.Equal(a.Buttons, b.Buttons)
	})
}

// ButtonCount returns the number of buttons across all pages.
func (l *Layout) ButtonCount() int {
	n := 0
	for _, p := range l.Pages {
		n += len(p.Buttons)
	}
	return n
}
