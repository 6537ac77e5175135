package hyprland

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// WindowClient is one entry of `hyprctl -j clients`.
type WindowClient struct {
	Address  string `json:"address"`
	PID      int    `json:"pid"`
	Class    string `json:"class"`
	Title    string `json:"title"`
	Floating bool   `json:"floating"`
	Pinned   bool   `json:"pinned"`
}

// Client issues typed hyprctl requests through a Commander.
type Client struct {
	cmd Commander
}

// NewClient wraps cmd.
func NewClient(cmd Commander) *Client {
	return &Client{cmd: cmd}
}

// Clients returns the live client list.
func (c *Client) Clients(ctx context.Context) ([]WindowClient, error) {
	out, err := c.cmd.Run(ctx, "-j", "clients")
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	var clients []WindowClient
	if err := json.Unmarshal(out, &clients); err != nil {
		return nil, fmt.Errorf("parse clients output: %w", err)
	}
	return clients, nil
}

// Dispatch runs `dispatch <dispatcher> <argument>`. hyprctl reports some
// dispatcher failures on stdout with a zero exit code, so any output other
// than "ok" is treated as failure.
func (c *Client) Dispatch(ctx context.Context, dispatcher, argument string) error {
	out, err := c.cmd.Run(ctx, "dispatch", dispatcher, argument)
	if err != nil {
		return fmt.Errorf("dispatch %s: %w", dispatcher, err)
	}
	if reply := strings.TrimSpace(string(out)); reply != "" && !strings.EqualFold(reply, "ok") {
		return fmt.Errorf("dispatch %s: %s", dispatcher, reply)
	}
	return nil
}

// SetFloating makes the window at address float.
func (c *Client) SetFloating(ctx context.Context, address string) error {
	return c.Dispatch(ctx, "setfloating", "address:"+address)
}

// Pin pins the window at address to all workspaces.
func (c *Client) Pin(ctx context.Context, address string) error {
	return c.Dispatch(ctx, "pin", "address:"+address)
}

// SetNoScreenShare hides the window at address from screen capture.
func (c *Client) SetNoScreenShare(ctx context.Context, address string) error {
	return c.Dispatch(ctx, "setprop", "address:"+address+" no_screen_share 1")
}

// Reload asks Hyprland to re-read its configuration.
func (c *Client) Reload(ctx context.Context) error {
	if _, err := c.cmd.Run(ctx, "reload"); err != nil {
		return fmt.Errorf("%w: %w", ErrReloadFailed, err)
	}
	return nil
}

// Available reports whether `hyprctl version` succeeds. Output is ignored.
func (c *Client) Available(ctx context.Context) bool {
	_, err := c.cmd.Run(ctx, "version")
	return err == nil
}
