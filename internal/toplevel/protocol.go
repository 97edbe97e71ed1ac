// Package toplevel speaks zwlr_foreign_toplevel_management_unstable_v1 on
// top of a generic Wayland connection. The manager announces window handles;
// each handle streams per-field events that this package decodes and feeds
// into the mirror, and accepts the window-control requests issued by the
// action dispatcher.
package toplevel

// ManagerInterface is the registry name of the toplevel management global.
const ManagerInterface = "zwlr_foreign_toplevel_manager_v1"

// ManagerVersion is the highest protocol version this client understands.
const ManagerVersion = 3

// zwlr_foreign_toplevel_manager_v1 events.
const (
	managerEvtToplevel uint16 = 0
	managerEvtFinished uint16 = 1
)

// zwlr_foreign_toplevel_manager_v1 requests.
const (
	managerReqStop uint16 = 0
)

// zwlr_foreign_toplevel_handle_v1 events.
const (
	handleEvtTitle       uint16 = 0
	handleEvtAppID       uint16 = 1
	handleEvtOutputEnter uint16 = 2
	handleEvtOutputLeave uint16 = 3
	handleEvtState       uint16 = 4
	handleEvtDone        uint16 = 5
	handleEvtClosed      uint16 = 6
	handleEvtParent      uint16 = 7
)

// zwlr_foreign_toplevel_handle_v1 requests.
const (
	handleReqSetMaximized    uint16 = 0
	handleReqUnsetMaximized  uint16 = 1
	handleReqSetMinimized    uint16 = 2
	handleReqUnsetMinimized  uint16 = 3
	handleReqActivate        uint16 = 4
	handleReqClose           uint16 = 5
	handleReqSetRectangle    uint16 = 6
	handleReqDestroy         uint16 = 7
	handleReqSetFullscreen   uint16 = 8
	handleReqUnsetFullscreen uint16 = 9
)

// zwlr_foreign_toplevel_handle_v1.state tokens. Tokens outside this set are
// forward-compatibility noise and get ignored during scanning.
const (
	stateMaximized  uint32 = 0
	stateMinimized  uint32 = 1
	stateActivated  uint32 = 2
	stateFullscreen uint32 = 3
)
