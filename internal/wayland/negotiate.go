package wayland

import (
	"errors"
	"log/slog"

	"github.com/1broseidon/waydock/internal/toplevel"
	"github.com/1broseidon/waydock/internal/workspaces"
)

// ErrToplevelUnavailable means the compositor never advertised the mandatory
// window-management global. Initialization fails and is not retried; a later
// registry scan has to start over.
var ErrToplevelUnavailable = errors.New("compositor does not advertise " + toplevel.ManagerInterface)

// Extension records the negotiation outcome for one optional protocol
// global: whether it was advertised, under which registry name, the version
// clamped to what this client supports, and whether binding succeeded.
type Extension struct {
	Interface  string
	Advertised bool
	Name       uint32
	Version    uint32
	ObjectID   uint32
	Bound      bool
}

// CapabilitySet is the process-wide negotiation result. Populated once by
// TryInit and read-only afterward.
type CapabilitySet struct {
	Toplevel   Extension
	Workspaces Extension
}

// HasWorkspaces reports whether the optional workspace-listing protocol was
// bound.
func (c CapabilitySet) HasWorkspaces() bool { return c.Workspaces.Bound }

// Binder binds a registry global and returns the new object id.
// *wlturbo.Registry satisfies it.
type Binder interface {
	BindID(name uint32, iface string, version uint32) (uint32, error)
}

// Negotiator claims the protocol globals this daemon understands as the
// registry announces them, then performs the binds in one TryInit pass.
type Negotiator struct {
	toplevel   Extension
	workspaces Extension
	logger     *slog.Logger
}

// NewNegotiator creates a negotiator for the window-management protocol
// family (mandatory) and the workspace-listing family (optional).
func NewNegotiator(logger *slog.Logger) *Negotiator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Negotiator{
		toplevel:   Extension{Interface: toplevel.ManagerInterface},
		workspaces: Extension{Interface: workspaces.ManagerInterface},
		logger:     logger,
	}
}

// Matches is the registry scan predicate: it reports whether this daemon
// claims the advertised global, recording registry name and the minimum of
// the advertised and locally supported versions as a side effect.
func (n *Negotiator) Matches(name uint32, iface string, version uint32) bool {
	switch iface {
	case toplevel.ManagerInterface:
		n.record(&n.toplevel, name, version, toplevel.ManagerVersion)
		return true
	case workspaces.ManagerInterface:
		n.record(&n.workspaces, name, version, workspaces.ManagerVersion)
		return true
	}
	return false
}

func (n *Negotiator) record(ext *Extension, name, advertised, supported uint32) {
	ext.Advertised = true
	ext.Name = name
	ext.Version = min(advertised, supported)
	n.logger.Debug("protocol advertised",
		"interface", ext.Interface, "name", name,
		"advertised", advertised, "negotiated", ext.Version)
}

// Register subscribes the negotiator to a wlturbo-style registry via the
// given per-interface hook. The next roundtrip populates the match state.
func (n *Negotiator) Register(addHandler func(iface string, handler func(name, version uint32))) {
	addHandler(toplevel.ManagerInterface, func(name, version uint32) {
		n.Matches(name, toplevel.ManagerInterface, version)
	})
	addHandler(workspaces.ManagerInterface, func(name, version uint32) {
		n.Matches(name, workspaces.ManagerInterface, version)
	})
}

// TryInit binds the claimed globals. The window-management protocol is
// mandatory: without it the whole backend fails. The workspace protocol
// degrades gracefully; its absence only clears the has-workspaces feature
// flag downstream.
func (n *Negotiator) TryInit(binder Binder) (CapabilitySet, error) {
	caps := CapabilitySet{Toplevel: n.toplevel, Workspaces: n.workspaces}

	if !caps.Toplevel.Advertised {
		return caps, ErrToplevelUnavailable
	}

	id, err := binder.BindID(caps.Toplevel.Name, caps.Toplevel.Interface, caps.Toplevel.Version)
	if err != nil {
		return caps, errors.Join(ErrToplevelUnavailable, err)
	}
	caps.Toplevel.ObjectID = id
	caps.Toplevel.Bound = true

	if caps.Workspaces.Advertised {
		id, err := binder.BindID(caps.Workspaces.Name, caps.Workspaces.Interface, caps.Workspaces.Version)
		if err != nil {
			n.logger.Warn("workspace manager bind failed, workspace listing disabled", "err", err)
		} else {
			caps.Workspaces.ObjectID = id
			caps.Workspaces.Bound = true
		}
	}

	n.logger.Info("capability negotiation complete",
		"toplevel_version", caps.Toplevel.Version,
		"has_workspaces", caps.HasWorkspaces())
	return caps, nil
}
