// Package workspaces binds the optional ext_workspace_v1 protocol and keeps
// a list of the compositor's dynamically created workspaces. The list feeds
// the control plane and the has-workspaces feature flag only: niri gives no
// reliable window-to-workspace mapping through this channel, so nothing here
// ever attributes a window to a workspace.
package workspaces

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ManagerInterface is the registry name of the workspace manager global.
const ManagerInterface = "ext_workspace_manager_v1"

// ManagerVersion is the highest protocol version this client understands.
const ManagerVersion = 1

// ext_workspace_manager_v1 events.
const (
	managerEvtWorkspaceGroup uint16 = 0
	managerEvtWorkspace      uint16 = 1
	managerEvtDone           uint16 = 2
	managerEvtFinished       uint16 = 3
)

// ext_workspace_handle_v1 events.
const (
	workspaceEvtID           uint16 = 0
	workspaceEvtName         uint16 = 1
	workspaceEvtCoordinates  uint16 = 2
	workspaceEvtState        uint16 = 3
	workspaceEvtCapabilities uint16 = 4
	workspaceEvtRemoved      uint16 = 5
)

// ext_workspace_handle_v1.state bits.
const stateActive = 0x1

// Conn is the slice of the Wayland connection this package needs.
type Conn interface {
	SendRequest(objectID uint32, opcode uint16, args ...interface{}) error
	AddListener(objectID uint32, opcode uint16, handler func([]byte))
}

// Workspace is one compositor workspace as last reported.
type Workspace struct {
	ID     string
	Name   string
	Active bool
}

// Tracker mirrors the workspace list announced by a bound
// ext_workspace_manager_v1 object.
type Tracker struct {
	conn      Conn
	managerID uint32
	logger    *slog.Logger

	mu         sync.Mutex
	workspaces map[uint32]*Workspace
}

// NewTracker wraps a bound workspace manager object.
func NewTracker(conn Conn, managerID uint32, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tracker{
		conn:       conn,
		managerID:  managerID,
		logger:     logger,
		workspaces: make(map[uint32]*Workspace),
	}
}

// Listen subscribes to manager events. Must run before the next roundtrip.
func (t *Tracker) Listen() {
	t.conn.AddListener(t.managerID, managerEvtWorkspace, t.onWorkspace)
	// Groups carry output association, which this daemon does not use.
	t.conn.AddListener(t.managerID, managerEvtWorkspaceGroup, func([]byte) {})
	t.conn.AddListener(t.managerID, managerEvtDone, func([]byte) {})
	t.conn.AddListener(t.managerID, managerEvtFinished, func([]byte) {
		t.logger.Info("workspace manager finished")
	})
}

func (t *Tracker) onWorkspace(data []byte) {
	id, err := readUint32(data)
	if err != nil {
		t.logger.Warn("malformed workspace announcement", "err", err)
		return
	}

	t.mu.Lock()
	t.workspaces[id] = &Workspace{}
	t.mu.Unlock()

	t.conn.AddListener(id, workspaceEvtID, func(data []byte) {
		if s, err := readString(data); err == nil {
			t.set(id, func(w *Workspace) { w.ID = s })
		}
	})
	t.conn.AddListener(id, workspaceEvtName, func(data []byte) {
		if s, err := readString(data); err == nil {
			t.set(id, func(w *Workspace) { w.Name = s })
		}
	})
	t.conn.AddListener(id, workspaceEvtState, func(data []byte) {
		if st, err := readUint32(data); err == nil {
			t.set(id, func(w *Workspace) { w.Active = st&stateActive != 0 })
		}
	})
	t.conn.AddListener(id, workspaceEvtCoordinates, func([]byte) {})
	t.conn.AddListener(id, workspaceEvtCapabilities, func([]byte) {})
	t.conn.AddListener(id, workspaceEvtRemoved, func([]byte) {
		t.mu.Lock()
		delete(t.workspaces, id)
		t.mu.Unlock()
	})
}

func (t *Tracker) set(id uint32, update func(*Workspace)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if w, ok := t.workspaces[id]; ok {
		update(w)
	}
}

// Count returns the number of known workspaces.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.workspaces)
}

// List returns the known workspaces sorted by name.
func (t *Tracker) List() []Workspace {
	t.mu.Lock()
	out := make([]Workspace, 0, len(t.workspaces))
	for _, w := range t.workspaces {
		out = append(out, *w)
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func readUint32(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, fmt.Errorf("event body too short: %d bytes", len(data))
	}
	return binary.LittleEndian.Uint32(data[:4]), nil
}

func readString(data []byte) (string, error) {
	n, err := readUint32(data)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	if len(data) < 4+int(n) {
		return "", fmt.Errorf("string length %d exceeds body of %d bytes", n, len(data))
	}
	return string(data[4 : 4+n-1]), nil
}
