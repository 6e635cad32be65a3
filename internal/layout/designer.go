package layout

import (
	"fmt"
	"math"
)

// MinButtonSize is the smallest width or height a resize may produce.
const MinButtonSize = 20

// AddPage appends a page named "Page N", where N starts at the new page
// count and increases until no existing page has that name
// (case-insensitive). Returns the new page's index.
func (l *Layout) AddPage() int {
	n := len(l.Pages) + 1
	name := fmt.Sprintf("Page %d", n)
	for l.PageIndex(name) >= 0 {
		n++
		name = fmt.Sprintf("Page %d", n)
	}
	l.Pages = append(l.Pages, NewPage(name))
	return len(l.Pages) - 1
}

// DeletePage removes the page at index.
func (l *Layout) DeletePage(index int) error {
	if index < 0 || index >= len(l.Pages) {
		return fmt.Errorf("page index %d out of range (layout has %d pages)", index, len(l.Pages))
	}
	l.Pages = append(l.Pages[:index], l.Pages[index+1:]...)
	return nil
}

// AddButton appends a new button at (10,10) sized 80x50 to the page and
// returns its index.
func (l *Layout) AddButton(pageIndex int) (int, error) {
	if pageIndex < 0 || pageIndex >= len(l.Pages) {
		return -1, fmt.Errorf("page index %d out of range (layout has %d pages)", pageIndex, len(l.Pages))
	}
	b := NewButton()
	b.Text = "New"
	b.X, b.Y = 10, 10
	b.Width, b.Height = 80, 50

	p := &l.Pages[pageIndex]
	p.Buttons = append(p.Buttons, b)
	return len(p.Buttons) - 1, nil
}

// DeleteButton removes a button from a page.
func (l *Layout) DeleteButton(pageIndex, buttonIndex int) error {
	if pageIndex < 0 || pageIndex >= len(l.Pages) {
		return fmt.Errorf("page index %d out of range (layout has %d pages)", pageIndex, len(l.Pages))
	}
	p := &l.Pages[pageIndex]
	if buttonIndex < 0 || buttonIndex >= len(p.Buttons) {
		return fmt.Errorf("button index %d out of range (page %q has %d buttons)", buttonIndex, p.Name, len(p.Buttons))
	}
	p.Buttons = append(p.Buttons[:buttonIndex], p.Buttons[buttonIndex+1:]...)
	return nil
}

// Move offsets a button. Each axis is applied only if it stays >= 0.
func (b *Button) Move(dx, dy float64) {
	if x := b.X + dx; x >= 0 {
		b.X = x
	}
	if y := b.Y + dy; y >= 0 {
		b.Y = y
	}
}

// Resize grows or shrinks a button, never below MinButtonSize. With
// keepAspect the larger-magnitude delta drives and the other side follows
// the current ratio.
func (b *Button) Resize(dw, dh float64, keepAspect bool) {
	w := math.Max(MinButtonSize, b.Width+dw)
	h := math.Max(MinButtonSize, b.Height+dh)

	if keepAspect && b.Width > 0 && b.Height > 0 {
		ratio := b.Width / b.Height
		if math.Abs(dw) > math.Abs(dh) {
			h = w / ratio
		} else {
			w = h * ratio
		}
	}

	b.Width = w
	b.Height = h
}
