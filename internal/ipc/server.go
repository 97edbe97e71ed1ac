package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
)

// Controller is the daemon surface the control plane exposes. Implemented by
// the daemon over the mirror, the dispatcher and the workspace tracker.
type Controller interface {
	Status() StatusData
	Windows() []WindowInfo
	Workspaces() []WorkspaceInfo
	Capabilities() CapabilitiesData
	WindowAction(action string, windowID uint32, workspace int) error
}

// Server answers control requests on a unix socket, one JSON line per
// request and response.
type Server struct {
	socketPath string
	controller Controller
	logger     *slog.Logger

	listener     net.Listener
	shutdownMu   sync.Mutex
	shuttingDown bool
}

// NewServer creates a control server bound to the given socket path.
func NewServer(socketPath string, controller Controller, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{socketPath: socketPath, controller: controller, logger: logger}
}

// Start begins listening for control connections.
func (s *Server) Start() error {
	// Remove a stale socket from a previous run.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create control socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.logger.Info("control server listening", "socket", s.socketPath)
	go s.acceptLoop()
	return nil
}

// Stop closes the listener and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			down := s.shuttingDown
			s.shutdownMu.Unlock()
			if down {
				return
			}
			s.logger.Warn("control accept error", "err", err)
			continue
		}
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.logger.Warn("control read error", "err", err)
		return
	}

	req, err := ParseRequest(data)
	var resp *Response
	if err != nil {
		resp = ErrorResponse(err.Error())
	} else {
		resp = s.handleCommand(req)
	}

	respData, err := resp.Marshal()
	if err != nil {
		s.logger.Warn("control marshal error", "err", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.logger.Warn("control write error", "err", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return OKResponse(s.controller.Status())
	case CommandListWindows:
		return OKResponse(WindowsData{Windows: s.controller.Windows()})
	case CommandListWorkspaces:
		return OKResponse(WorkspacesData{Workspaces: s.controller.Workspaces()})
	case CommandGetCapabilities:
		return OKResponse(s.controller.Capabilities())
	case CommandWindowAction:
		var payload WindowActionPayload
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			return ErrorResponse(fmt.Sprintf("invalid payload: %v", err))
		}
		if err := s.controller.WindowAction(payload.Action, payload.WindowID, payload.Workspace); err != nil {
			return ErrorResponse(err.Error())
		}
		return OKResponse(nil)
	}
	return ErrorResponse(fmt.Sprintf("unknown command %q", req.Command))
}
