package printer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// State is the thermal channel lifecycle.
type State int

const (
	StateUnsupported State = iota
	StateDisconnected
	StateConnecting
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateUnsupported:
		return "unsupported"
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	}
	return "unknown"
}

func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

var (
	ErrUnsupported    = errors.New("printer: thermal transport not supported on this terminal")
	ErrNotConnected   = errors.New("printer: no device paired")
	ErrBusy           = errors.New("printer: a print job is already in progress")
	ErrConnectionLost = errors.New("printer: connection lost")
)

// Printer is a paired thermal printer that accepts raw ESC/POS bytes.
type Printer interface {
	// Connect pairs with the device. It is a no-op when already connected.
	Connect(ctx context.Context) error
	// Print sends raw ESC/POS bytes and returns how many were written.
	Print(ctx context.Context, data []byte) (int, error)
	// Probe connects silently when a device is already present.
	Probe(ctx context.Context) bool
	Status() Status
	// Close releases the printer connection/handle.
	Close() error
}

// Status is a point-in-time view of the channel.
type Status struct {
	State     State  `json:"state"`
	Supported bool   `json:"supported"`
	Transport string `json:"transport"`
	Target    string `json:"target,omitempty"`
}

type deadlineWriter interface {
	SetWriteDeadline(t time.Time) error
}

// Channel owns the one device handle of the terminal. Print calls are
// never queued: a second call during a transfer fails with ErrBusy.
type Channel struct {
	transport    Transport
	writeTimeout time.Duration

	mu    sync.Mutex
	state State
	conn  io.WriteCloser

	busy atomic.Bool
}

// NewChannel wraps a transport. A nil transport yields a permanently
// unsupported channel.
func NewChannel(t Transport) *Channel {
	c := &Channel{
		transport:    t,
		writeTimeout: 10 * time.Second,
		state:        StateDisconnected,
	}
	if t == nil {
		c.state = StateUnsupported
	}
	return c
}

func (c *Channel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := Status{State: c.state, Supported: c.state != StateUnsupported, Transport: TransportNone}
	if c.transport != nil {
		st.Transport = c.transport.Kind()
		st.Target = c.transport.Target()
	}
	return st
}

func (c *Channel) Connect(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateUnsupported:
		c.mu.Unlock()
		return ErrUnsupported
	case StateConnected:
		c.mu.Unlock()
		return nil
	case StateConnecting:
		c.mu.Unlock()
		return ErrBusy
	}
	c.state = StateConnecting
	c.mu.Unlock()

	w, err := c.transport.Open(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateDisconnected
		return fmt.Errorf("printer: pairing with %s failed: %w", c.transport.Target(), err)
	}
	c.conn = w
	c.state = StateConnected
	return nil
}

func (c *Channel) Probe(ctx context.Context) bool {
	if c.transport == nil || !c.transport.Available() {
		return false
	}
	return c.Connect(ctx) == nil
}

func (c *Channel) Print(ctx context.Context, data []byte) (int, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	defer c.busy.Store(false)

	c.mu.Lock()
	state, conn := c.state, c.conn
	c.mu.Unlock()

	switch state {
	case StateUnsupported:
		return 0, ErrUnsupported
	case StateConnected:
	default:
		return 0, ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if dw, ok := conn.(deadlineWriter); ok {
		deadline := time.Now().Add(c.writeTimeout)
		if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
			deadline = d
		}
		_ = dw.SetWriteDeadline(deadline)
	}

	n, err := conn.Write(data)
	if err != nil {
		c.drop(conn)
		return n, fmt.Errorf("%w: %v", ErrConnectionLost, err)
	}
	return n, nil
}

// drop closes a failed handle and returns to Disconnected, unless a
// concurrent Connect already replaced it.
func (c *Channel) drop(conn io.WriteCloser) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != conn {
		return
	}
	_ = conn.Close()
	c.conn = nil
	c.state = StateDisconnected
}

func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUnsupported {
		return nil
	}
	var err error
	if c.conn != nil {
		err = c.conn.Close()
		c.conn = nil
	}
	c.state = StateDisconnected
	return err
}
