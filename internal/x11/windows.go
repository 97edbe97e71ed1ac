package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

// Window is one top-level X11 window as the control plane sees it.
type Window struct {
	ID         uint32
	Title      string
	AppID      string
	Activated  bool
	Maximized  bool
	Minimized  bool
	Fullscreen bool
	// Desktop is 0-based, -1 for sticky windows (all desktops).
	Desktop int
}

// ListWindows returns the EWMH client list with the attributes the control
// plane reports for mirrored windows.
func (c *Connection) ListWindows() ([]Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, err
	}

	active, activeErr := ewmh.ActiveWindowGet(c.XUtil)

	windows := make([]Window, 0, len(clients))
	for _, windowID := range clients {
		w := Window{ID: uint32(windowID), Desktop: -1}

		if name, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil {
			w.Title = name
		}
		if class, err := icccm.WmClassGet(c.XUtil, windowID); err == nil {
			w.AppID = class.Class
		}
		if desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID); err == nil && desktop != 0xFFFFFFFF {
			w.Desktop = int(desktop)
		}
		if activeErr == nil {
			w.Activated = windowID == active
		}
		c.applyStates(windowID, &w)

		windows = append(windows, w)
	}
	return windows, nil
}

func (c *Connection) applyStates(windowID xproto.Window, w *Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}
	var maxH, maxV bool
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ":
			maxH = true
		case "_NET_WM_STATE_MAXIMIZED_VERT":
			maxV = true
		case "_NET_WM_STATE_HIDDEN":
			w.Minimized = true
		case "_NET_WM_STATE_FULLSCREEN":
			w.Fullscreen = true
		}
	}
	w.Maximized = maxH && maxV
}
