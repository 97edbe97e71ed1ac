// Package mcp exposes the running daemon's window mirror and action channel
// as MCP tools over stdio, backed by the control socket.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/waydock/internal/ipc"
)

const (
	ServerName    = "waydock"
	ServerVersion = "0.1.0"
)

// Dock is the slice of the control-socket client the MCP tools need.
// *ipc.Client satisfies it.
type Dock interface {
	Status() (*ipc.StatusData, error)
	Windows() ([]ipc.WindowInfo, error)
	Capabilities() (*ipc.CapabilitiesData, error)
	WindowAction(action string, windowID uint32, workspace int) error
}

// Server is the MCP server for window control.
type Server struct {
	mcpServer *mcpsdk.Server
	dock      Dock
}

// NewServer creates an MCP server talking to the daemon at socketPath
// (empty for the default runtime location).
func NewServer(socketPath string) *Server {
	return newServer(ipc.NewClient(socketPath))
}

func newServer(dock Dock) *Server {
	s := &Server{dock: dock}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all open windows with their id, title, application id, state flags and workspace. Optionally filter by exact application id.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "activate_window",
		Description: "Give keyboard focus to a window and bring it to the front, unminimizing it if needed.",
	}, s.handleActivateWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Ask a window to close gracefully. The window disappears from list_windows once the compositor confirms.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window_to_workspace",
		Description: "Move a window to a workspace by 0-based index. The window is focused first, then relocated.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "query_capabilities",
		Description: "Report the active backend, window and workspace counts, and which per-window actions it supports.",
	}, s.handleQueryCapabilities)
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	windows, err := s.dock.Windows()
	if err != nil {
		return nil, ListWindowsOutput{}, fmt.Errorf("list windows: %w", err)
	}

	out := ListWindowsOutput{Windows: make([]WindowInfo, 0, len(windows))}
	for _, w := range windows {
		if args.AppID != "" && w.AppID != args.AppID {
			continue
		}
		out.Windows = append(out.Windows, WindowInfo{
			ID:         w.ID,
			Title:      w.Title,
			AppID:      w.AppID,
			Activated:  w.Activated,
			Maximized:  w.Maximized,
			Minimized:  w.Minimized,
			Fullscreen: w.Fullscreen,
			Workspace:  w.Workspace,
			Parent:     w.Parent,
		})
	}
	return nil, out, nil
}

func (s *Server) handleActivateWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ActivateWindowInput) (*mcpsdk.CallToolResult, ActivateWindowOutput, error) {
	if err := s.dock.WindowAction(ipc.ActionShow, args.WindowID, 0); err != nil {
		return nil, ActivateWindowOutput{}, fmt.Errorf("activate window %d: %w", args.WindowID, err)
	}
	return nil, ActivateWindowOutput{WindowID: args.WindowID, Activated: true}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args CloseWindowInput) (*mcpsdk.CallToolResult, CloseWindowOutput, error) {
	if err := s.dock.WindowAction(ipc.ActionClose, args.WindowID, 0); err != nil {
		return nil, CloseWindowOutput{}, fmt.Errorf("close window %d: %w", args.WindowID, err)
	}
	return nil, CloseWindowOutput{WindowID: args.WindowID, Closed: true}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, MoveWindowOutput, error) {
	if args.Workspace < 0 {
		return nil, MoveWindowOutput{}, fmt.Errorf("invalid workspace index %d", args.Workspace)
	}
	if err := s.dock.WindowAction(ipc.ActionMoveToWorkspace, args.WindowID, args.Workspace); err != nil {
		return nil, MoveWindowOutput{}, fmt.Errorf("move window %d to workspace %d: %w", args.WindowID, args.Workspace, err)
	}
	return nil, MoveWindowOutput{WindowID: args.WindowID, Workspace: args.Workspace, Moved: true}, nil
}

func (s *Server) handleQueryCapabilities(_ context.Context, _ *mcpsdk.CallToolRequest, _ QueryCapabilitiesInput) (*mcpsdk.CallToolResult, QueryCapabilitiesOutput, error) {
	status, err := s.dock.Status()
	if err != nil {
		return nil, QueryCapabilitiesOutput{}, fmt.Errorf("query status: %w", err)
	}
	caps, err := s.dock.Capabilities()
	if err != nil {
		return nil, QueryCapabilitiesOutput{}, fmt.Errorf("query capabilities: %w", err)
	}
	return nil, QueryCapabilitiesOutput{
		BackendName:    status.BackendName,
		WindowCount:    status.WindowCount,
		WorkspaceCount: status.WorkspaceCount,
		HasWorkspaces:  status.HasWorkspaces,
		Minimize:       caps.Minimize,
		Maximize:       caps.Maximize,
		Close:          caps.Close,
		Fullscreen:     caps.Fullscreen,
		Sticky:         caps.Sticky,
		Below:          caps.Below,
		Above:          caps.Above,
		Kill:           caps.Kill,
	}, nil
}
