package mcp

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	AppID string `json:"app_id,omitempty" jsonschema:"Optional application id filter; only windows whose app id matches exactly are returned"`
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
	// Workspace is 0-based; -1 means the window has not reported one.
	Workspace int    `json:"workspace"`
	Parent    uint32 `json:"parent,omitempty"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowInfo `json:"windows"`
}

// ActivateWindowInput is the input for the activate_window tool.
type ActivateWindowInput struct {
	WindowID uint32 `json:"window_id" jsonschema:"required,Window id from list_windows"`
}

// ActivateWindowOutput is the output for the activate_window tool.
type ActivateWindowOutput struct {
	WindowID  uint32 `json:"window_id"`
	Activated bool   `json:"activated"`
}

// CloseWindowInput is the input for the close_window tool.
type CloseWindowInput struct {
	WindowID uint32 `json:"window_id" jsonschema:"required,Window id from list_windows"`
}

// CloseWindowOutput is the output for the close_window tool.
type CloseWindowOutput struct {
	WindowID uint32 `json:"window_id"`
	Closed   bool   `json:"closed"`
}

// MoveWindowInput is the input for the move_window_to_workspace tool.
type MoveWindowInput struct {
	WindowID  uint32 `json:"window_id" jsonschema:"required,Window id from list_windows"`
	Workspace int    `json:"workspace" jsonschema:"required,Target workspace index (0-based)"`
}

// MoveWindowOutput is the output for the move_window_to_workspace tool.
type MoveWindowOutput struct {
	WindowID  uint32 `json:"window_id"`
	Workspace int    `json:"workspace"`
	Moved     bool   `json:"moved"`
}

// QueryCapabilitiesInput is the input for the query_capabilities tool.
type QueryCapabilitiesInput struct{}

// QueryCapabilitiesOutput is the output for the query_capabilities tool.
type QueryCapabilitiesOutput struct {
	BackendName    string `json:"backend_name"`
	WindowCount    int    `json:"window_count"`
	WorkspaceCount int    `json:"workspace_count"`
	HasWorkspaces  bool   `json:"has_workspaces"`
	Minimize       bool   `json:"minimize"`
	Maximize       bool   `json:"maximize"`
	Close          bool   `json:"close"`
	Fullscreen     bool   `json:"fullscreen"`
	Sticky         bool   `json:"sticky"`
	Below          bool   `json:"below"`
	Above          bool   `json:"above"`
	Kill           bool   `json:"kill"`
}
