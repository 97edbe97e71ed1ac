package daemon

import (
	"testing"

	"github.com/1broseidon/waydock/internal/backend"
	"github.com/1broseidon/waydock/internal/ipc"
	"github.com/1broseidon/waydock/internal/mirror"
)

type fakeActions struct {
	calls     []string
	lastIndex int
}

func (f *fakeActions) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeActions) Show(*mirror.Actor) error     { return f.record("show") }
func (f *fakeActions) Close(*mirror.Actor) error    { return f.record("close") }
func (f *fakeActions) Minimize(*mirror.Actor) error { return f.record("minimize") }
func (f *fakeActions) SetMaximized(_ *mirror.Actor, on bool) error {
	if on {
		return f.record("maximize")
	}
	return f.record("unmaximize")
}
func (f *fakeActions) SetFullscreen(_ *mirror.Actor, on bool) error {
	if on {
		return f.record("fullscreen")
	}
	return f.record("unfullscreen")
}
func (f *fakeActions) MoveToWorkspace(_ *mirror.Actor, index int) error {
	f.lastIndex = index
	return f.record("move")
}
func (f *fakeActions) SetThumbnailRegion(_ *mirror.Actor, _ uint32, _, _, _, _ int) error {
	return f.record("thumbnail")
}
func (f *fakeActions) TransientParent(*mirror.Actor) (*mirror.Actor, bool) { return nil, false }
func (f *fakeActions) Capabilities() backend.Capabilities {
	return backend.Capabilities{Minimize: true, Maximize: true, Close: true, Fullscreen: true}
}

func testController(t *testing.T) (*controller, *fakeActions, *mirror.Registry) {
	t.Helper()
	reg := mirror.NewRegistry(mirror.Options{})
	acts := &fakeActions{}
	b := backend.Backend{
		Name:    "Niri",
		Flags:   backend.FlagNoViewportOverlap | backend.FlagRelativeGeometry,
		Actions: acts,
	}
	return newController(b, reg, nil), acts, reg
}

func TestControllerStatusCountsWindows(t *testing.T) {
	c, _, reg := testController(t)
	reg.Announce(1)
	reg.Announce(2)

	status := c.Status()
	if status.BackendName != "Niri" {
		t.Errorf("backend name = %q", status.BackendName)
	}
	if status.WindowCount != 2 {
		t.Errorf("window count = %d, want 2", status.WindowCount)
	}
	if status.HasWorkspaces {
		t.Error("has_workspaces true without tracker flag")
	}
	if status.WorkspaceCount != 0 {
		t.Errorf("workspace count = %d, want 0 without tracker", status.WorkspaceCount)
	}
}

func TestControllerWindowActionRouting(t *testing.T) {
	c, acts, reg := testController(t)
	reg.Announce(42)

	steps := []struct {
		action string
		want   string
	}{
		{ipc.ActionShow, "show"},
		{ipc.ActionClose, "close"},
		{ipc.ActionMinimize, "minimize"},
		{ipc.ActionMaximize, "maximize"},
		{ipc.ActionUnmaximize, "unmaximize"},
		{ipc.ActionFullscreen, "fullscreen"},
		{ipc.ActionUnfullscreen, "unfullscreen"},
	}
	for _, step := range steps {
		if err := c.WindowAction(step.action, 42, 0); err != nil {
			t.Fatalf("WindowAction(%s): %v", step.action, err)
		}
	}
	for i, step := range steps {
		if acts.calls[i] != step.want {
			t.Errorf("call %d = %q, want %q", i, acts.calls[i], step.want)
		}
	}
}

func TestControllerMoveToWorkspace(t *testing.T) {
	c, acts, reg := testController(t)
	reg.Announce(42)

	if err := c.WindowAction(ipc.ActionMoveToWorkspace, 42, 3); err != nil {
		t.Fatalf("WindowAction: %v", err)
	}
	if acts.lastIndex != 3 {
		t.Errorf("workspace index = %d, want 3", acts.lastIndex)
	}

	if err := c.WindowAction(ipc.ActionMoveToWorkspace, 42, -1); err == nil {
		t.Error("expected error for negative workspace index")
	}
}

func TestControllerRejectsUnknownWindow(t *testing.T) {
	c, acts, _ := testController(t)

	if err := c.WindowAction(ipc.ActionShow, 99, 0); err == nil {
		t.Fatal("expected error for unknown window")
	}
	if len(acts.calls) != 0 {
		t.Errorf("backend called for unknown window: %v", acts.calls)
	}
}

func TestControllerWindowsReportsParentOnlyWhenLive(t *testing.T) {
	c, _, reg := testController(t)
	reg.Announce(1)
	reg.Announce(2)
	reg.SetParent(2, 1)
	reg.Commit(2)

	var child *ipc.WindowInfo
	for _, w := range c.Windows() {
		if w.ID == 2 {
			w := w
			child = &w
		}
	}
	if child == nil {
		t.Fatal("window 2 missing from listing")
	}
	if child.Parent != 1 {
		t.Errorf("parent = %d, want 1", child.Parent)
	}

	reg.Close(1)
	for _, w := range c.Windows() {
		if w.ID == 2 && w.Parent != 0 {
			t.Errorf("parent still reported after close: %d", w.Parent)
		}
	}
}
