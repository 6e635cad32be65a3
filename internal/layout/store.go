package layout

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileExtension is the extension written by the designer.
const FileExtension = ".yaml"

// Load reads a layout document.
//
// A missing file is not an error: Load returns (nil, nil). A file that exists
// but cannot be read or decoded returns a *StoreError whose Type is
// ErrTypeRead or ErrTypeDecode.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &StoreError{Type: ErrTypeRead, Path: path, Err: err}
	}

	l, err := Decode(data)
	if err != nil {
		return nil, &StoreError{Type: ErrTypeDecode, Path: path, Err: err}
	}
	return l, nil
}

// Decode parses a layout document.
func Decode(data []byte) (*Layout, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty document")
	}

	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, err
	}
	l.normalize()
	return &l, nil
}

// Encode renders a layout as YAML. Field order is fixed by the struct
// definitions, so the output is stable across saves.
func Encode(l *Layout) ([]byte, error) {
	if l == nil {
		return nil, errors.New("nil layout")
	}
	c := l.Clone()
	c.normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes the layout to path, creating missing parent directories.
//
// The document is written to "<path>.tmp" and renamed over the destination,
// so readers never observe a half-written file on the same filesystem. There
// is no locking: concurrent saves to one path race and the last rename wins.
func Save(l *Layout, path string) error {
	data, err := Encode(l)
	if err != nil {
		return &StoreError{Type: ErrTypeEncode, Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StoreError{Type: ErrTypeDirectory, Path: path, Err: err}
		}
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return &StoreError{Type: ErrTypeWrite, Path: path, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return &StoreError{Type: ErrTypeWrite, Path: path, Err: fmt.Errorf("rename: %w", err)}
	}
	return nil
}

// normalize replaces nil slices with empty ones so encoded documents always
// carry explicit "pages" and "buttons" sequences.
func (l *Layout) normalize() {
	if l.Pages == nil {
		l.Pages = []Page{}
	}
	for i := range l.Pages {
		if l.Pages[i].Buttons == nil {
			l.Pages[i].Buttons = []Button{}
		}
	}
}
