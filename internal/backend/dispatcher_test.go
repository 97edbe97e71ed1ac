package backend

import (
	"errors"
	"testing"

	"github.com/1broseidon/waydock/internal/mirror"
)

type call struct {
	name   string
	handle uint32
	arg    string
}

type fakeRequester struct {
	calls       []call
	activateErr error
}

func (f *fakeRequester) Activate(handle, seat uint32) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	f.calls = append(f.calls, call{name: "activate", handle: handle})
	return nil
}
func (f *fakeRequester) Close(handle uint32) error {
	f.calls = append(f.calls, call{name: "close", handle: handle})
	return nil
}
func (f *fakeRequester) SetMinimized(handle uint32) error {
	f.calls = append(f.calls, call{name: "set_minimized", handle: handle})
	return nil
}
func (f *fakeRequester) SetMaximized(handle uint32, on bool) error {
	name := "unset_maximized"
	if on {
		name = "set_maximized"
	}
	f.calls = append(f.calls, call{name: name, handle: handle})
	return nil
}
func (f *fakeRequester) SetFullscreen(handle uint32, on bool) error {
	name := "unset_fullscreen"
	if on {
		name = "set_fullscreen"
	}
	f.calls = append(f.calls, call{name: name, handle: handle})
	return nil
}
func (f *fakeRequester) SetRectangle(handle, surface uint32, x, y, w, h int32) error {
	f.calls = append(f.calls, call{name: "set_rectangle", handle: handle})
	return nil
}

type fakeRunner struct {
	calls []call
	err   error
}

func (f *fakeRunner) Action(action, arg string) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, call{name: action, arg: arg})
	return nil
}

func newTestDispatcher(req *fakeRequester, runner *fakeRunner) (*Dispatcher, *mirror.Actor) {
	reg := mirror.NewRegistry(mirror.Options{})
	a := reg.Announce(42)
	d := NewDispatcher(req, func() uint32 { return 7 }, runner, reg, nil)
	return d, a
}

func TestDirectActionsMapToSingleProtocolRequests(t *testing.T) {
	req := &fakeRequester{}
	runner := &fakeRunner{}
	d, a := newTestDispatcher(req, runner)

	if err := d.Show(a); err != nil {
		t.Fatalf("show: %v", err)
	}
	if err := d.Close(a); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := d.Minimize(a); err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if err := d.SetMaximized(a, true); err != nil {
		t.Fatalf("maximize: %v", err)
	}
	if err := d.SetFullscreen(a, false); err != nil {
		t.Fatalf("unfullscreen: %v", err)
	}
	if err := d.SetThumbnailRegion(a, 3, 10, 20, 32, 32); err != nil {
		t.Fatalf("thumbnail: %v", err)
	}

	want := []string{"activate", "close", "set_minimized", "set_maximized", "unset_fullscreen", "set_rectangle"}
	if len(req.calls) != len(want) {
		t.Fatalf("expected %d protocol requests, got %d", len(want), len(req.calls))
	}
	for i, name := range want {
		if req.calls[i].name != name || req.calls[i].handle != 42 {
			t.Fatalf("request %d = %+v, want %s on handle 42", i, req.calls[i], name)
		}
	}
	if len(runner.calls) != 0 {
		t.Fatalf("direct actions must never touch the fallback channel: %v", runner.calls)
	}
}

func TestMoveToWorkspace_ActivatesBeforeFallbackWithOneBasedArg(t *testing.T) {
	req := &fakeRequester{}
	runner := &fakeRunner{}
	d, a := newTestDispatcher(req, runner)

	if err := d.MoveToWorkspace(a, 2); err != nil {
		t.Fatalf("move to workspace: %v", err)
	}

	if len(req.calls) != 1 || req.calls[0].name != "activate" || req.calls[0].handle != 42 {
		t.Fatalf("expected a single activate request first, got %v", req.calls)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("expected a single fallback command, got %v", runner.calls)
	}
	if runner.calls[0].name != "move-window-to-workspace" || runner.calls[0].arg != "3" {
		t.Fatalf("expected move-window-to-workspace 3 (0-based index 2), got %+v", runner.calls[0])
	}
}

func TestMoveToWorkspace_ActivateFailureSkipsFallback(t *testing.T) {
	req := &fakeRequester{activateErr: errors.New("connection lost")}
	runner := &fakeRunner{}
	d, a := newTestDispatcher(req, runner)

	if err := d.MoveToWorkspace(a, 0); err == nil {
		t.Fatalf("expected activation failure to surface")
	}
	if len(runner.calls) != 0 {
		t.Fatalf("fallback must not run when activation failed (it targets the focused window)")
	}
}

func TestMoveToWorkspace_FallbackLaunchFailureIsBestEffort(t *testing.T) {
	req := &fakeRequester{}
	runner := &fakeRunner{err: errors.New("niri not in PATH")}
	d, a := newTestDispatcher(req, runner)

	if err := d.MoveToWorkspace(a, 1); err != nil {
		t.Fatalf("fallback launch failure must not escalate, got %v", err)
	}
}

func TestCapabilitiesAreStatic(t *testing.T) {
	d, a := newTestDispatcher(&fakeRequester{}, &fakeRunner{})

	// Mutate actor state; the report must not care.
	_ = a

	got := d.Capabilities()
	want := Capabilities{Minimize: true, Maximize: true, Close: true, Fullscreen: true}
	if got != want {
		t.Fatalf("capabilities = %+v, want %+v", got, want)
	}
}

func TestFeatureFlags(t *testing.T) {
	f := FlagNoViewportOverlap | FlagRelativeGeometry
	if !f.Has(FlagNoViewportOverlap) || !f.Has(FlagRelativeGeometry) {
		t.Fatalf("expected both flags set")
	}
	if f.Has(FlagHasWorkspaces) {
		t.Fatalf("has-workspaces should be unset")
	}
}
