package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// clientMessage sends a 32-bit format client message to the root window with
// the substructure masks EWMH requires. We build messages manually because
// some xgbutil ewmh request helpers panic on this library version (uint vs
// int type assertion).
func (c *Connection) clientMessage(windowID uint32, atomName string, data []uint32) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len(atomName)), atomName).Reply()
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", atomName, err)
	}

	padded := make([]uint32, 5)
	copy(padded, data)
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(windowID),
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New(padded),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

const sourceIndication = 2 // pager/direct action

// FocusWindow activates and raises a window using _NET_ACTIVE_WINDOW.
func (c *Connection) FocusWindow(windowID uint32) error {
	return c.clientMessage(windowID, "_NET_ACTIVE_WINDOW", []uint32{sourceIndication})
}

// CloseWindow requests a graceful close using _NET_CLOSE_WINDOW.
func (c *Connection) CloseWindow(windowID uint32) error {
	return c.clientMessage(windowID, "_NET_CLOSE_WINDOW", []uint32{0, sourceIndication})
}

// MinimizeWindow iconifies a window via WM_CHANGE_STATE.
func (c *Connection) MinimizeWindow(windowID uint32) error {
	const iconicState = 3
	return c.clientMessage(windowID, "WM_CHANGE_STATE", []uint32{iconicState})
}

// SetMaximized adds or removes both EWMH maximization states.
func (c *Connection) SetMaximized(windowID uint32, on bool) error {
	action := 0 // remove
	if on {
		action = 1 // add
	}
	if err := ewmh.WmStateReq(c.XUtil, xproto.Window(windowID), action, "_NET_WM_STATE_MAXIMIZED_HORZ"); err != nil {
		return fmt.Errorf("failed to set horizontal maximization: %w", err)
	}
	if err := ewmh.WmStateReq(c.XUtil, xproto.Window(windowID), action, "_NET_WM_STATE_MAXIMIZED_VERT"); err != nil {
		return fmt.Errorf("failed to set vertical maximization: %w", err)
	}
	return nil
}

// SetFullscreen adds or removes _NET_WM_STATE_FULLSCREEN.
func (c *Connection) SetFullscreen(windowID uint32, on bool) error {
	action := 0
	if on {
		action = 1
	}
	return ewmh.WmStateReq(c.XUtil, xproto.Window(windowID), action, "_NET_WM_STATE_FULLSCREEN")
}

// SetWindowDesktop moves a window to the specified virtual desktop via a
// _NET_WM_DESKTOP client message. X11 desktops are addressable directly, so
// no out-of-process fallback is involved.
func (c *Connection) SetWindowDesktop(windowID uint32, desktop int) error {
	return c.clientMessage(windowID, "_NET_WM_DESKTOP", []uint32{uint32(desktop), sourceIndication})
}

// GetCurrentDesktop returns the current virtual desktop number (0-indexed).
func (c *Connection) GetCurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// GetDesktopCount returns the number of virtual desktops.
func (c *Connection) GetDesktopCount() (int, error) {
	count, err := ewmh.NumberOfDesktopsGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get desktop count: %w", err)
	}
	return int(count), nil
}
