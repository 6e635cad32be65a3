package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The first designer saved indented JSON with PascalCase keys and no grid
// settings. JSON is valid YAML, so the yaml decoder reads it directly.

type legacyLayout struct {
	Name    string       `yaml:"Name"`
	Width   float64      `yaml:"Width"`
	Height  float64      `yaml:"Height"`
	WindowX float64      `yaml:"WindowX"`
	WindowY float64      `yaml:"WindowY"`
	Pages   []legacyPage `yaml:"Pages"`
}

type legacyPage struct {
	Name    string         `yaml:"Name"`
	Buttons []legacyButton `yaml:"Buttons"`
}

type legacyButton struct {
	Text      string  `yaml:"Text"`
	Color     string  `yaml:"Color"`
	TextColor string  `yaml:"TextColor"`
	FontSize  float64 `yaml:"FontSize"`
	IsBold    bool    `yaml:"IsBold"`
	Width     float64 `yaml:"Width"`
	Height    float64 `yaml:"Height"`
	X         float64 `yaml:"X"`
	Y         float64 `yaml:"Y"`
	Action    string  `yaml:"Action"`
	Value     string  `yaml:"Value"`
}

// ImportLegacy reads a layout saved by the JSON-based designer and converts
// it. Unlike Load, a missing file is an error: the caller named it.
func ImportLegacy(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StoreError{Type: ErrTypeRead, Path: path, Err: err}
	}
	l, err := DecodeLegacy(data)
	if err != nil {
		return nil, &StoreError{Type: ErrTypeDecode, Path: path, Err: err}
	}
	return l, nil
}

// DecodeLegacy converts a legacy JSON document.
func DecodeLegacy(data []byte) (*Layout, error) {
	var in legacyLayout
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, err
	}
	if in.Name == "" && len(in.Pages) == 0 {
		return nil, fmt.Errorf("document has no Name or Pages; not a legacy layout")
	}

	out := New(in.Name)
	out.Width, out.Height = in.Width, in.Height
	out.WindowX, out.WindowY = in.WindowX, in.WindowY

	for _, lp := range in.Pages {
		p := NewPage(lp.Name)
		for _, lb := range lp.Buttons {
			p.Buttons = append(p.Buttons, Button{
				Text:      lb.Text,
				Color:     lb.Color,
				TextColor: lb.TextColor,
				FontSize:  lb.FontSize,
				IsBold:    lb.IsBold,
				Width:     lb.Width,
				Height:    lb.Height,
				X:         lb.X,
				Y:         lb.Y,
				Action:    ActionKind(lb.Action),
				Value:     lb.Value,
			})
		}
		out.Pages = append(out.Pages, p)
	}
	return out, nil
}
