package daemon

import (
	"fmt"
	"time"

	"github.com/1broseidon/waydock/internal/backend"
	"github.com/1broseidon/waydock/internal/ipc"
	"github.com/1broseidon/waydock/internal/mirror"
	"github.com/1broseidon/waydock/internal/workspaces"
)

// controller exposes the running backend to the control socket.
type controller struct {
	backend backend.Backend
	reg     *mirror.Registry
	tracker *workspaces.Tracker // nil when the workspace protocol is absent
	started time.Time
}

var _ ipc.Controller = (*controller)(nil)

func newController(b backend.Backend, reg *mirror.Registry, tracker *workspaces.Tracker) *controller {
	return &controller{backend: b, reg: reg, tracker: tracker, started: time.Now()}
}

func (c *controller) Status() ipc.StatusData {
	workspaceCount := 0
	if c.tracker != nil {
		workspaceCount = c.tracker.Count()
	}
	return ipc.StatusData{
		BackendName:    c.backend.Name,
		WindowCount:    c.reg.Len(),
		WorkspaceCount: workspaceCount,
		HasWorkspaces:  c.backend.Flags.Has(backend.FlagHasWorkspaces),
		UptimeSeconds:  int64(time.Since(c.started).Seconds()),
	}
}

func (c *controller) Windows() []ipc.WindowInfo {
	snapshot := c.reg.Snapshot()
	out := make([]ipc.WindowInfo, 0, len(snapshot))
	for _, a := range snapshot {
		info := ipc.WindowInfo{
			ID:         uint32(a.ID()),
			Title:      a.Title,
			AppID:      a.AppID,
			Activated:  a.Activated,
			Maximized:  a.Maximized,
			Minimized:  a.Minimized,
			Fullscreen: a.Fullscreen,
			Workspace:  a.Workspace,
		}
		// Report the parent only while it resolves to a live window.
		if pid := a.ParentHandle(); pid != 0 {
			if _, ok := c.reg.Lookup(pid); ok {
				info.Parent = uint32(pid)
			}
		}
		out = append(out, info)
	}
	return out
}

func (c *controller) Workspaces() []ipc.WorkspaceInfo {
	if c.tracker == nil {
		return nil
	}
	list := c.tracker.List()
	out := make([]ipc.WorkspaceInfo, 0, len(list))
	for _, w := range list {
		out = append(out, ipc.WorkspaceInfo{ID: w.ID, Name: w.Name, Active: w.Active})
	}
	return out
}

func (c *controller) Capabilities() ipc.CapabilitiesData {
	caps := c.backend.Actions.Capabilities()
	return ipc.CapabilitiesData{
		Minimize:   caps.Minimize,
		Maximize:   caps.Maximize,
		Close:      caps.Close,
		Fullscreen: caps.Fullscreen,
		Sticky:     caps.Sticky,
		Below:      caps.Below,
		Above:      caps.Above,
		Kill:       caps.Kill,
	}
}

func (c *controller) WindowAction(action string, windowID uint32, workspace int) error {
	a, ok := c.reg.Lookup(mirror.HandleID(windowID))
	if !ok {
		return fmt.Errorf("window %d not found", windowID)
	}

	acts := c.backend.Actions
	switch action {
	case ipc.ActionShow:
		return acts.Show(a)
	case ipc.ActionClose:
		return acts.Close(a)
	case ipc.ActionMinimize:
		return acts.Minimize(a)
	case ipc.ActionMaximize:
		return acts.SetMaximized(a, true)
	case ipc.ActionUnmaximize:
		return acts.SetMaximized(a, false)
	case ipc.ActionFullscreen:
		return acts.SetFullscreen(a, true)
	case ipc.ActionUnfullscreen:
		return acts.SetFullscreen(a, false)
	case ipc.ActionMoveToWorkspace:
		if workspace < 0 {
			return fmt.Errorf("invalid workspace index %d", workspace)
		}
		return acts.MoveToWorkspace(a, workspace)
	}
	return fmt.Errorf("unknown action %q", action)
}
