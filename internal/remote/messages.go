package remote

import (
	"github.com/muurk/macropad/internal/action"
	"github.com/muurk/macropad/internal/router"
)

// Message types exchanged over the socket
const (
	TypePress   = "press"
	TypeCommand = "command"
	TypeState   = "state"
	TypePage    = "page"
	TypeExit    = "exit"
	TypeError   = "error"
)

// Request is a client to server message.
type Request struct {
	Type string `json:"type"`

	// Page is the page index a press targets; nil means the active page.
	Page   *int `json:"page,omitempty"`
	Button int  `json:"button,omitempty"`

	// Value is the command for TypeCommand requests.
	Value string `json:"value,omitempty"`
}

// Reply is a server to client message.
type Reply struct {
	Type    string       `json:"type"`
	Layout  string       `json:"layout,omitempty"`
	Page    string       `json:"page,omitempty"`
	Index   int          `json:"index"`
	Pages   int          `json:"pages,omitempty"`
	Buttons []ButtonView `json:"buttons,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// ButtonView is the client-facing description of one button.
type ButtonView struct {
	Index       int     `json:"index"`
	Text        string  `json:"text"`
	Color       string  `json:"color"`
	TextColor   string  `json:"textColor"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Action      string  `json:"action"`
	Value       string  `json:"value"`
	Description string  `json:"description"`
}

// PageReply describes the active page of s.
func PageReply(s *router.Snapshot) Reply {
	r := Reply{Type: TypePage, Index: s.Index, Pages: s.PageCount()}
	if s.Layout != nil {
		r.Layout = s.Layout.Name
	}
	if s.Page == nil {
		return r
	}
	r.Page = s.Page.Name
	r.Buttons = make([]ButtonView, 0, len(s.Page.Buttons))
	for i, b := range s.Page.Buttons {
		r.Buttons = append(r.Buttons, ButtonView{
			Index:       i,
			Text:        b.Text,
			Color:       b.Color,
			TextColor:   b.TextColor,
			X:           b.X,
			Y:           b.Y,
			Width:       b.Width,
			Height:      b.Height,
			Action:      string(b.Action),
			Value:       b.Value,
			Description: action.Describe(action.Parse(b)),
		})
	}
	return r
}

// ErrorReply wraps a request failure.
func ErrorReply(err error) Reply {
	return Reply{Type: TypeError, Index: -1, Error: err.Error()}
}
