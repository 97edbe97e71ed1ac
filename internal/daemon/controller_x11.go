package daemon

import (
	"fmt"
	"strconv"
	"time"

	"github.com/1broseidon/waydock/internal/ipc"
	"github.com/1broseidon/waydock/internal/x11"
)

// x11Controller serves the control plane from a live EWMH connection
// instead of a mirror: X11 state is queryable on demand, so there is
// nothing to mirror.
type x11Controller struct {
	conn    *x11.Connection
	started time.Time
}

var _ ipc.Controller = (*x11Controller)(nil)

func newX11Controller(conn *x11.Connection) *x11Controller {
	return &x11Controller{conn: conn, started: time.Now()}
}

func (c *x11Controller) Status() ipc.StatusData {
	windowCount := 0
	if windows, err := c.conn.ListWindows(); err == nil {
		windowCount = len(windows)
	}
	workspaceCount, _ := c.conn.GetDesktopCount()
	return ipc.StatusData{
		BackendName:    "X11/EWMH",
		WindowCount:    windowCount,
		WorkspaceCount: workspaceCount,
		HasWorkspaces:  true,
		UptimeSeconds:  int64(time.Since(c.started).Seconds()),
	}
}

func (c *x11Controller) Windows() []ipc.WindowInfo {
	windows, err := c.conn.ListWindows()
	if err != nil {
		return nil
	}
	out := make([]ipc.WindowInfo, 0, len(windows))
	for _, w := range windows {
		out = append(out, ipc.WindowInfo{
			ID:         w.ID,
			Title:      w.Title,
			AppID:      w.AppID,
			Activated:  w.Activated,
			Maximized:  w.Maximized,
			Minimized:  w.Minimized,
			Fullscreen: w.Fullscreen,
			Workspace:  w.Desktop,
		})
	}
	return out
}

func (c *x11Controller) Workspaces() []ipc.WorkspaceInfo {
	count, err := c.conn.GetDesktopCount()
	if err != nil {
		return nil
	}
	current, currentErr := c.conn.GetCurrentDesktop()
	out := make([]ipc.WorkspaceInfo, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, ipc.WorkspaceInfo{
			ID:     strconv.Itoa(i),
			Name:   fmt.Sprintf("Desktop %d", i+1),
			Active: currentErr == nil && i == current,
		})
	}
	return out
}

func (c *x11Controller) Capabilities() ipc.CapabilitiesData {
	return ipc.CapabilitiesData{Minimize: true, Maximize: true, Close: true, Fullscreen: true}
}

func (c *x11Controller) WindowAction(action string, windowID uint32, workspace int) error {
	switch action {
	case ipc.ActionShow:
		return c.conn.FocusWindow(windowID)
	case ipc.ActionClose:
		return c.conn.CloseWindow(windowID)
	case ipc.ActionMinimize:
		return c.conn.MinimizeWindow(windowID)
	case ipc.ActionMaximize:
		return c.conn.SetMaximized(windowID, true)
	case ipc.ActionUnmaximize:
		return c.conn.SetMaximized(windowID, false)
	case ipc.ActionFullscreen:
		return c.conn.SetFullscreen(windowID, true)
	case ipc.ActionUnfullscreen:
		return c.conn.SetFullscreen(windowID, false)
	case ipc.ActionMoveToWorkspace:
		if workspace < 0 {
			return fmt.Errorf("invalid workspace index %d", workspace)
		}
		// X11 desktops are directly addressable; no IPC fallback here.
		return c.conn.SetWindowDesktop(windowID, workspace)
	}
	return fmt.Errorf("unknown action %q", action)
}
