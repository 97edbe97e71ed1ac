package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/waydock/internal/runtimepath"
)

// Client talks to a running daemon over the control socket.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a control client. An empty socketPath resolves the
// default runtime location.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		// Keep the constructor non-failing; sendRequest surfaces
		// connection errors.
		socketPath, _ = runtimepath.SocketPath()
	}
	return &Client{socketPath: socketPath, timeout: 5 * time.Second}
}

func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is waydock daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

// Status retrieves daemon status.
func (c *Client) Status() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}
	var data StatusData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	return &data, nil
}

// Windows retrieves the mirrored window list.
func (c *Client) Windows() ([]WindowInfo, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWindows})
	if err != nil {
		return nil, err
	}
	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse window list: %w", err)
	}
	return data.Windows, nil
}

// Workspaces retrieves the compositor workspace list.
func (c *Client) Workspaces() ([]WorkspaceInfo, error) {
	resp, err := c.sendRequest(&Request{Command: CommandListWorkspaces})
	if err != nil {
		return nil, err
	}
	var data WorkspacesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse workspace list: %w", err)
	}
	return data.Workspaces, nil
}

// Capabilities retrieves the backend's static capability report.
func (c *Client) Capabilities() (*CapabilitiesData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetCapabilities})
	if err != nil {
		return nil, err
	}
	var data CapabilitiesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse capabilities: %w", err)
	}
	return &data, nil
}

// WindowAction asks the daemon to perform an action on a window.
func (c *Client) WindowAction(action string, windowID uint32, workspace int) error {
	payload, err := json.Marshal(WindowActionPayload{
		Action:    action,
		WindowID:  windowID,
		Workspace: workspace,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	_, err = c.sendRequest(&Request{Command: CommandWindowAction, Payload: payload})
	return err
}
