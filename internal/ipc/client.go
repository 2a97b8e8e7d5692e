package ipc

import (
	"bufio"
	"fmt"
	"net"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DefaultTimeout bounds a whole client round trip.
const DefaultTimeout = 5 * time.Second

// Status is the daemon state reported by the status op.
type Status struct {
	Visible    bool
	LeftLayer  int
	RightLayer int
	Modifiers  uint32
	Locks      uint32
}

// Client issues one-shot commands to a running daemon. Each call
// opens its own connection, so a zero-value timeout never leaves one
// behind.
type Client struct {
	path    string
	timeout time.Duration
}

// NewClient creates a client for the daemon socket at path.
func NewClient(path string) *Client {
	return &Client{path: path, timeout: DefaultTimeout}
}

// Show makes the key grid visible.
func (c *Client) Show() error {
	_, err := c.do(opRequest(OpShow))
	return err
}

// Hide collapses the key grid to the trigger bar.
func (c *Client) Hide() error {
	_, err := c.do(opRequest(OpHide))
	return err
}

// Toggle flips visibility and reports the state the daemon switched to.
func (c *Client) Toggle() (bool, error) {
	resp, err := c.do(opRequest(OpToggle))
	if err != nil {
		return false, err
	}
	return gjson.GetBytes(resp, "visible").Bool(), nil
}

// Status fetches the daemon's visibility, layers, and key state.
func (c *Client) Status() (Status, error) {
	resp, err := c.do(opRequest(OpStatus))
	if err != nil {
		return Status{}, err
	}
	return Status{
		Visible:    gjson.GetBytes(resp, "visible").Bool(),
		LeftLayer:  int(gjson.GetBytes(resp, "layers.left").Int()),
		RightLayer: int(gjson.GetBytes(resp, "layers.right").Int()),
		Modifiers:  uint32(gjson.GetBytes(resp, "modifiers").Uint()),
		Locks:      uint32(gjson.GetBytes(resp, "locks").Uint()),
	}, nil
}

// Layer switches one side of the keyboard to the given layer index.
func (c *Client) Layer(side string, index int) error {
	req := opRequest(OpLayer)
	req, _ = sjson.SetBytes(req, "side", side)
	req, _ = sjson.SetBytes(req, "index", index)
	_, err := c.do(req)
	return err
}

// do sends one request line and decodes the response line.
func (c *Client) do(req []byte) ([]byte, error) {
	conn, err := net.DialTimeout("unix", c.path, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}
	if _, err := conn.Write(append(req, '\n')); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	resp, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if !gjson.GetBytes(resp, "ok").Bool() {
		return nil, fmt.Errorf("daemon: %s", gjson.GetBytes(resp, "error").String())
	}
	return resp, nil
}

func opRequest(op string) []byte {
	req, _ := sjson.SetBytes([]byte(`{}`), "op", op)
	return req
}
