// Package wayland owns the compositor connection: socket setup via wlturbo,
// registry discovery, seat and output tracking, and the protocol capability
// negotiation that decides what this daemon can bind.
package wayland

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/wlturbo"
)

// wl_output.mode event fields.
const (
	outputEvtMode       uint16 = 1
	outputModeFlagCurrent      = 0x1
)

// Conn wraps a wlturbo display with the ambient objects every backend needs:
// an input seat for activate requests and the primary output's size for
// placeholder geometry.
type Conn struct {
	display *wlturbo.Display
	logger  *slog.Logger

	mu      sync.Mutex
	seatID  uint32
	screenW int
	screenH int
}

// Connect opens the Wayland socket (WAYLAND_DISPLAY when display is empty)
// and subscribes to seat and output globals. Callers must Roundtrip before
// relying on Seat or ScreenSize.
func Connect(display string, logger *slog.Logger) (*Conn, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	disp, err := wlturbo.Connect(display)
	if err != nil {
		return nil, fmt.Errorf("connect to wayland display: %w", err)
	}

	c := &Conn{display: disp, logger: logger}
	reg := disp.Registry()

	reg.AddHandler("wl_seat", func(r *wlturbo.Registry, name uint32, version uint32) {
		c.mu.Lock()
		bound := c.seatID != 0
		c.mu.Unlock()
		if bound {
			return
		}
		id, err := r.BindID(name, "wl_seat", 1)
		if err != nil {
			logger.Warn("bind wl_seat failed", "err", err)
			return
		}
		c.mu.Lock()
		c.seatID = id
		c.mu.Unlock()
		logger.Debug("seat bound", "object", id)
	})

	reg.AddHandler("wl_output", func(r *wlturbo.Registry, name uint32, version uint32) {
		id, err := r.BindID(name, "wl_output", 1)
		if err != nil {
			logger.Warn("bind wl_output failed", "err", err)
			return
		}
		disp.AddListener(id, outputEvtMode, func(data []byte) {
			c.onOutputMode(data)
		})
	})

	return c, nil
}

// onOutputMode records the size of the first output's current mode. The
// first advertised output stands in for the primary display.
func (c *Conn) onOutputMode(data []byte) {
	if len(data) < 12 {
		return
	}
	flags := binary.LittleEndian.Uint32(data[0:4])
	if flags&outputModeFlagCurrent == 0 {
		return
	}
	w := int(int32(binary.LittleEndian.Uint32(data[4:8])))
	h := int(int32(binary.LittleEndian.Uint32(data[8:12])))
	c.mu.Lock()
	if c.screenW == 0 && c.screenH == 0 {
		c.screenW, c.screenH = w, h
	}
	c.mu.Unlock()
}

// Display exposes the underlying wlturbo display for protocol packages.
func (c *Conn) Display() *wlturbo.Display { return c.display }

// Registry returns the compositor's global registry.
func (c *Conn) Registry() *wlturbo.Registry { return c.display.Registry() }

// Seat returns the bound wl_seat object id, 0 if none was advertised.
func (c *Conn) Seat() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seatID
}

// ScreenSize returns the primary output's pixel size, zeros when unknown.
func (c *Conn) ScreenSize() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screenW, c.screenH
}

// Roundtrip blocks until the compositor has processed all prior requests.
func (c *Conn) Roundtrip() error {
	return c.display.Roundtrip()
}

// Run dispatches compositor events until the context is cancelled or the
// connection fails. Every protocol callback in the process runs on this one
// goroutine, which is what the accumulate-then-commit contract assumes.
func (c *Conn) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		// Unblocks the Dispatch read below.
		_ = c.display.Close()
	}()
	for {
		if err := c.display.Dispatch(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("wayland dispatch: %w", err)
		}
	}
}

// Close tears down the compositor connection.
func (c *Conn) Close() error {
	return c.display.Close()
}
