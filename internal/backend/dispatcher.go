package backend

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/waydock/internal/mirror"
	"github.com/1broseidon/waydock/internal/niri"
)

// ToplevelRequester issues direct protocol requests on a window handle.
// *toplevel.Requester satisfies it.
type ToplevelRequester interface {
	Activate(handle, seat uint32) error
	Close(handle uint32) error
	SetMinimized(handle uint32) error
	SetMaximized(handle uint32, on bool) error
	SetFullscreen(handle uint32, on bool) error
	SetRectangle(handle, surface uint32, x, y, w, h int32) error
}

// FallbackRunner submits an out-of-process compositor command, detached and
// unconfirmed. *niri.Runner satisfies it.
type FallbackRunner interface {
	Action(action, arg string) error
}

// SeatFunc resolves the input-focus seat handle needed for activate
// requests.
type SeatFunc func() uint32

// Dispatcher routes each action to its execution channel. The channel per
// action is fixed at design time:
//
//	show, close, minimize, maximize, fullscreen, thumbnail  -> protocol
//	move-to-workspace                                       -> protocol activate + niri IPC
//	transient-parent                                        -> mirror lookup
//
// The protocol cannot address niri's dynamic workspace indices directly,
// hence the hybrid path.
type Dispatcher struct {
	req    ToplevelRequester
	seat   SeatFunc
	runner FallbackRunner
	reg    *mirror.Registry
	logger *slog.Logger
}

var _ Actions = (*Dispatcher)(nil)

// NewDispatcher wires the dispatcher's two execution channels.
func NewDispatcher(req ToplevelRequester, seat SeatFunc, runner FallbackRunner, reg *mirror.Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{req: req, seat: seat, runner: runner, reg: reg, logger: logger}
}

// Show activates the window on the input seat.
func (d *Dispatcher) Show(a *mirror.Actor) error {
	return d.req.Activate(uint32(a.ID()), d.seat())
}

// Close requests a graceful close.
func (d *Dispatcher) Close(a *mirror.Actor) error {
	return d.req.Close(uint32(a.ID()))
}

// Minimize minimizes the window.
func (d *Dispatcher) Minimize(a *mirror.Actor) error {
	return d.req.SetMinimized(uint32(a.ID()))
}

// SetMaximized maximizes or restores the window.
func (d *Dispatcher) SetMaximized(a *mirror.Actor, on bool) error {
	return d.req.SetMaximized(uint32(a.ID()), on)
}

// SetFullscreen toggles fullscreen on the current output.
func (d *Dispatcher) SetFullscreen(a *mirror.Actor, on bool) error {
	return d.req.SetFullscreen(uint32(a.ID()), on)
}

// MoveToWorkspace moves the window to the given 0-based workspace index.
//
// The move command acts on the focused window and names no target, so the
// activate request must be delivered before the command is submitted; the
// ordering here is load-bearing. Both steps are asynchronous and
// unconfirmed. A failure to launch the fallback command is best-effort:
// logged as a warning, never escalated to the caller.
func (d *Dispatcher) MoveToWorkspace(a *mirror.Actor, index int) error {
	if err := d.req.Activate(uint32(a.ID()), d.seat()); err != nil {
		return fmt.Errorf("activate before workspace move: %w", err)
	}
	arg := niri.WorkspaceArg(index)
	if err := d.runner.Action("move-window-to-workspace", arg); err != nil {
		d.logger.Warn("fallback command failed",
			"action", "move-window-to-workspace", "arg", arg, "err", err)
	}
	return nil
}

// SetThumbnailRegion publishes the window's dock thumbnail rectangle.
func (d *Dispatcher) SetThumbnailRegion(a *mirror.Actor, surface uint32, x, y, w, h int) error {
	return d.req.SetRectangle(uint32(a.ID()), surface, int32(x), int32(y), int32(w), int32(h))
}

// TransientParent resolves the window's parent actor through the mirror.
func (d *Dispatcher) TransientParent(a *mirror.Actor) (*mirror.Actor, bool) {
	return d.reg.ResolveParent(a)
}

// Capabilities reports the static action support of this backend. Niri's
// scrolling layout exposes no stacking order or workspace pinning through
// this protocol family, so sticky/below/above/kill stay false.
func (d *Dispatcher) Capabilities() Capabilities {
	return Capabilities{
		Minimize:   true,
		Maximize:   true,
		Close:      true,
		Fullscreen: true,
	}
}
