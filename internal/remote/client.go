package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a remote control connected to a runtime.
type Client struct {
	ws *websocket.Conn
}

// Dial connects to the WebSocket endpoint at url (ws://host:port/ws).
func Dial(ctx context.Context, url string) (*Client, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	return &Client{ws: ws}, nil
}

// Press activates button on the active page.
func (c *Client) Press(button int) error {
	return c.send(Request{Type: TypePress, Button: button})
}

// PressOn activates button on page, failing server-side if page is not
// active.
func (c *Client) PressOn(page, button int) error {
	return c.send(Request{Type: TypePress, Page: &page, Button: button})
}

// Command sends a command such as "NextPage", "Navigate:Main" or "EXIT".
func (c *Client) Command(value string) error {
	return c.send(Request{Type: TypeCommand, Value: value})
}

// State asks for the current page.
func (c *Client) State() error {
	return c.send(Request{Type: TypeState})
}

// Next waits for the next reply until timeout; zero waits forever.
func (c *Client) Next(timeout time.Duration) (Reply, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := c.ws.SetReadDeadline(deadline); err != nil {
		return Reply{}, err
	}
	var r Reply
	if err := c.ws.ReadJSON(&r); err != nil {
		return Reply{}, err
	}
	return r, nil
}

// Close says goodbye and closes the connection.
func (c *Client) Close() error {
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	return c.ws.Close()
}

func (c *Client) send(r Request) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteJSON(r)
}
