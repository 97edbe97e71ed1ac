// Package backend defines the action surface a window-management backend
// hands to the surrounding application, and the hybrid dispatcher that
// implements it for wlr-foreign-toplevel compositors.
package backend

import "github.com/1broseidon/waydock/internal/mirror"

// FeatureFlags describe static properties of a backend's window model.
type FeatureFlags uint32

const (
	// FlagNoViewportOverlap: windows occupy exactly one workspace, never
	// spatial regions spanning several.
	FlagNoViewportOverlap FeatureFlags = 1 << iota
	// FlagRelativeGeometry: window geometry is relative to its viewport.
	FlagRelativeGeometry
	// FlagHasWorkspaces: the backend can enumerate workspaces.
	FlagHasWorkspaces
)

// Has reports whether all given flags are set.
func (f FeatureFlags) Has(flags FeatureFlags) bool { return f&flags == flags }

// Capabilities is the static per-window action capability report.
type Capabilities struct {
	Minimize   bool
	Maximize   bool
	Close      bool
	Fullscreen bool
	Sticky     bool
	Below      bool
	Above      bool
	Kill       bool
}

// Actions is the per-window action surface consumed by the surrounding
// application. Every call is fire-and-forget; state changes are only
// confirmed asynchronously through later mirror updates.
type Actions interface {
	// Show activates (focuses and raises) the window.
	Show(a *mirror.Actor) error
	// Close asks the window to close.
	Close(a *mirror.Actor) error
	// Minimize minimizes the window.
	Minimize(a *mirror.Actor) error
	// SetMaximized maximizes or restores the window.
	SetMaximized(a *mirror.Actor, on bool) error
	// SetFullscreen toggles fullscreen on the current output.
	SetFullscreen(a *mirror.Actor, on bool) error
	// MoveToWorkspace moves the window to a 0-based workspace index.
	MoveToWorkspace(a *mirror.Actor, index int) error
	// SetThumbnailRegion tells the compositor where the window's dock icon
	// lives on the given surface.
	SetThumbnailRegion(a *mirror.Actor, surface uint32, x, y, w, h int) error
	// TransientParent resolves the window's parent actor, absent when the
	// parent is unknown or gone.
	TransientParent(a *mirror.Actor) (*mirror.Actor, bool)
	// Capabilities reports which actions this backend supports.
	Capabilities() Capabilities
}

// Backend is the registration record handed to the window-management
// subsystem after successful capability negotiation.
type Backend struct {
	Name    string
	Flags   FeatureFlags
	Actions Actions
}
