package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents the control commands the daemon accepts.
type CommandType string

const (
	CommandGetStatus       CommandType = "GET_STATUS"
	CommandListWindows     CommandType = "LIST_WINDOWS"
	CommandListWorkspaces  CommandType = "LIST_WORKSPACES"
	CommandGetCapabilities CommandType = "GET_CAPABILITIES"
	CommandWindowAction    CommandType = "WINDOW_ACTION"
)

// Window actions accepted by CommandWindowAction.
const (
	ActionShow            = "show"
	ActionClose           = "close"
	ActionMinimize        = "minimize"
	ActionMaximize        = "maximize"
	ActionUnmaximize      = "unmaximize"
	ActionFullscreen      = "fullscreen"
	ActionUnfullscreen    = "unfullscreen"
	ActionMoveToWorkspace = "move-to-workspace"
)

// Request is one control request, JSON on a single line.
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response is the daemon's reply.
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData is returned by GET_STATUS.
type StatusData struct {
	BackendName    string `json:"backend_name"`
	WindowCount    int    `json:"window_count"`
	WorkspaceCount int    `json:"workspace_count"`
	HasWorkspaces  bool   `json:"has_workspaces"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

// WindowInfo describes one mirrored window.
type WindowInfo struct {
	ID         uint32 `json:"id"`
	Title      string `json:"title"`
	AppID      string `json:"app_id"`
	Activated  bool   `json:"activated"`
	Maximized  bool   `json:"maximized"`
	Minimized  bool   `json:"minimized"`
	Fullscreen bool   `json:"fullscreen"`
	// Workspace is 0-based, -1 means all workspaces.
	Workspace int `json:"workspace"`
	// Parent is the transient parent window id, 0 when none resolves.
	Parent uint32 `json:"parent,omitempty"`
}

// WindowsData is returned by LIST_WINDOWS.
type WindowsData struct {
	Windows []WindowInfo `json:"windows"`
}

// WorkspaceInfo describes one compositor workspace.
type WorkspaceInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// WorkspacesData is returned by LIST_WORKSPACES.
type WorkspacesData struct {
	Workspaces []WorkspaceInfo `json:"workspaces"`
}

// CapabilitiesData is returned by GET_CAPABILITIES.
type CapabilitiesData struct {
	Minimize   bool `json:"minimize"`
	Maximize   bool `json:"maximize"`
	Close      bool `json:"close"`
	Fullscreen bool `json:"fullscreen"`
	Sticky     bool `json:"sticky"`
	Below      bool `json:"below"`
	Above      bool `json:"above"`
	Kill       bool `json:"kill"`
}

// WindowActionPayload is the payload for WINDOW_ACTION.
type WindowActionPayload struct {
	Action   string `json:"action"`
	WindowID uint32 `json:"window_id"`
	// Workspace is the 0-based target index for move-to-workspace.
	Workspace int `json:"workspace,omitempty"`
}

// ParseRequest decodes one request line.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid request JSON: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("missing command")
	}
	return &req, nil
}

// Marshal encodes a response.
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

// OKResponse builds a success response carrying data.
func OKResponse(data interface{}) *Response {
	if data == nil {
		return &Response{Status: "OK"}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return ErrorResponse(fmt.Sprintf("marshal response data: %v", err))
	}
	return &Response{Status: "OK", Data: raw}
}

// ErrorResponse builds an error response.
func ErrorResponse(msg string) *Response {
	return &Response{Status: "ERROR", Error: msg}
}
