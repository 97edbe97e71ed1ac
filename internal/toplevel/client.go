package toplevel

import (
	"log/slog"

	"github.com/1broseidon/waydock/internal/mirror"
)

// Conn is the slice of the Wayland connection this package needs: issuing
// requests on an object and subscribing to its events. *wlturbo.Display
// satisfies it; tests use fakes.
type Conn interface {
	SendRequest(objectID uint32, opcode uint16, args ...interface{}) error
	AddListener(objectID uint32, opcode uint16, handler func([]byte))
}

// Client demultiplexes the toplevel manager's event stream into mirror
// updates. One client per bound manager; all callbacks run on the single
// connection dispatch goroutine.
type Client struct {
	conn      Conn
	managerID uint32
	reg       *mirror.Registry
	logger    *slog.Logger
}

// NewClient wraps a bound zwlr_foreign_toplevel_manager_v1 object.
func NewClient(conn Conn, managerID uint32, reg *mirror.Registry, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{conn: conn, managerID: managerID, reg: reg, logger: logger}
}

// Listen subscribes to manager events. Must run before the next roundtrip so
// no toplevel announcement is missed.
func (c *Client) Listen() {
	c.conn.AddListener(c.managerID, managerEvtToplevel, c.onToplevel)
	c.conn.AddListener(c.managerID, managerEvtFinished, func([]byte) {
		c.logger.Info("toplevel manager finished, no further windows will be announced")
	})
}

// Stop asks the compositor to stop sending toplevel events.
func (c *Client) Stop() error {
	return c.conn.SendRequest(c.managerID, managerReqStop)
}

// onToplevel handles a new window announcement. The announcement always
// precedes any field event for the handle, so the actor exists before the
// per-handle listeners can fire.
func (c *Client) onToplevel(data []byte) {
	id, err := wireUint32(data)
	if err != nil {
		c.logger.Warn("malformed toplevel announcement", "err", err)
		return
	}
	c.reg.Announce(mirror.HandleID(id))
	c.listenHandle(id)
}

// listenHandle wires the per-field event demux for one handle.
func (c *Client) listenHandle(id uint32) {
	hid := mirror.HandleID(id)

	c.conn.AddListener(id, handleEvtTitle, func(data []byte) {
		title, err := wireString(data)
		if err != nil {
			c.logger.Warn("malformed title event", "handle", id, "err", err)
			return
		}
		c.reg.SetTitle(hid, title)
	})

	c.conn.AddListener(id, handleEvtAppID, func(data []byte) {
		appID, err := wireString(data)
		if err != nil {
			c.logger.Warn("malformed app_id event", "handle", id, "err", err)
			return
		}
		c.reg.SetAppID(hid, appID)
	})

	c.conn.AddListener(id, handleEvtState, func(data []byte) {
		tokens, err := wireUint32Array(data)
		if err != nil {
			c.logger.Warn("malformed state event", "handle", id, "err", err)
			return
		}
		c.reg.SetState(hid, scanState(tokens))
	})

	c.conn.AddListener(id, handleEvtParent, func(data []byte) {
		parent, err := wireUint32(data)
		if err != nil {
			c.logger.Warn("malformed parent event", "handle", id, "err", err)
			return
		}
		// Stored raw; resolution to an actor happens lazily because the
		// parent may not have been announced yet.
		c.reg.SetParent(hid, mirror.HandleID(parent))
	})

	// Niri's scrolling layout gives no reliable window/output/workspace
	// mapping through this protocol, so output association is ignored
	// rather than used to guess workspace membership.
	c.conn.AddListener(id, handleEvtOutputEnter, func([]byte) {})
	c.conn.AddListener(id, handleEvtOutputLeave, func([]byte) {})

	c.conn.AddListener(id, handleEvtDone, func([]byte) {
		c.reg.Commit(hid)
	})

	c.conn.AddListener(id, handleEvtClosed, func([]byte) {
		c.reg.Close(hid)
	})
}

// scanState derives the four state flags from one state event. Every flag
// absent from the token array is false; unknown tokens are ignored.
func scanState(tokens []uint32) mirror.State {
	var st mirror.State
	for _, tok := range tokens {
		switch tok {
		case stateActivated:
			st.Activated = true
		case stateMaximized:
			st.Maximized = true
		case stateMinimized:
			st.Minimized = true
		case stateFullscreen:
			st.Fullscreen = true
		}
	}
	return st
}
