// Package daemon composes the backend, the window mirror and the control
// socket into one long-running process.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/wlturbo"

	"github.com/1broseidon/waydock/internal/backend"
	"github.com/1broseidon/waydock/internal/config"
	"github.com/1broseidon/waydock/internal/ipc"
	"github.com/1broseidon/waydock/internal/mirror"
	"github.com/1broseidon/waydock/internal/niri"
	"github.com/1broseidon/waydock/internal/runtimepath"
	"github.com/1broseidon/waydock/internal/toplevel"
	"github.com/1broseidon/waydock/internal/wayland"
	"github.com/1broseidon/waydock/internal/workspaces"
	"github.com/1broseidon/waydock/internal/x11"
)

// Run starts the daemon with the given configuration and blocks until a
// termination signal arrives or the session connection fails.
func Run(cfg *config.Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	socketPath, err := resolveSocketPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve control socket path: %w", err)
	}

	switch selectBackend(cfg.Backend) {
	case config.BackendWayland:
		return runWayland(ctx, cfg, socketPath, logger)
	case config.BackendX11:
		return runX11(ctx, socketPath, logger)
	}
	return fmt.Errorf("no usable window system: neither WAYLAND_DISPLAY nor DISPLAY is set")
}

// resolveSocketPath prefers the configured socket location, falling back to
// the runtime directory default.
func resolveSocketPath(cfg *config.Config) (string, error) {
	if cfg.SocketPath != "" {
		return cfg.SocketPath, nil
	}
	return runtimepath.SocketPath()
}

// selectBackend resolves the auto backend from the session environment,
// preferring Wayland when both displays are available.
func selectBackend(configured string) string {
	if configured != config.BackendAuto {
		return configured
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return config.BackendWayland
	}
	if os.Getenv("DISPLAY") != "" {
		return config.BackendX11
	}
	return ""
}

func runWayland(ctx context.Context, cfg *config.Config, socketPath string, logger *slog.Logger) error {
	conn, err := wayland.Connect(cfg.Display, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	neg := wayland.NewNegotiator(logger)
	registry := conn.Registry()
	neg.Register(func(iface string, handler func(name, version uint32)) {
		registry.AddHandler(iface, func(_ *wlturbo.Registry, name, version uint32) {
			handler(name, version)
		})
	})

	// First roundtrip delivers the registry globals the handlers above claim.
	if err := conn.Roundtrip(); err != nil {
		return fmt.Errorf("registry roundtrip: %w", err)
	}

	caps, err := neg.TryInit(registry)
	if err != nil {
		return err
	}

	requester := toplevel.NewRequester(conn.Display())
	reg := mirror.NewRegistry(mirror.Options{
		Sink: &logSink{logger: logger},
		Release: func(id mirror.HandleID) {
			if err := requester.Destroy(uint32(id)); err != nil {
				logger.Warn("release toplevel handle failed", "handle", uint32(id), "err", err)
			}
		},
		ScreenSize: conn.ScreenSize,
		Logger:     logger,
	})

	client := toplevel.NewClient(conn.Display(), caps.Toplevel.ObjectID, reg, logger)
	client.Listen()

	var tracker *workspaces.Tracker
	if caps.Workspaces.Bound {
		tracker = workspaces.NewTracker(conn.Display(), caps.Workspaces.ObjectID, logger)
		tracker.Listen()
	}

	// Second roundtrip replays the initial window and workspace state.
	if err := conn.Roundtrip(); err != nil {
		return fmt.Errorf("state roundtrip: %w", err)
	}

	runner := niri.NewRunner(cfg.NiriCommand)
	dispatcher := backend.NewDispatcher(requester, conn.Seat, runner, reg, logger)

	flags := backend.FlagNoViewportOverlap | backend.FlagRelativeGeometry
	if caps.HasWorkspaces() {
		flags |= backend.FlagHasWorkspaces
	}
	b := backend.Backend{Name: "Niri", Flags: flags, Actions: dispatcher}

	server := ipc.NewServer(socketPath, newController(b, reg, tracker), logger)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start control socket: %w", err)
	}
	defer server.Stop()

	logger.Info("daemon running",
		"backend", b.Name,
		"socket", socketPath,
		"windows", reg.Len(),
		"has_workspaces", caps.HasWorkspaces())

	err = conn.Run(ctx)

	// Halt further announcements, then send protocol destroys for every
	// surviving handle. Both are best-effort once the connection is down.
	if stopErr := client.Stop(); stopErr != nil {
		logger.Debug("toplevel manager stop failed", "err", stopErr)
	}
	reg.TeardownAll()

	if errors.Is(err, context.Canceled) {
		logger.Info("daemon stopped")
		return nil
	}
	return err
}

func runX11(ctx context.Context, socketPath string, logger *slog.Logger) error {
	conn, err := x11.NewConnection()
	if err != nil {
		return fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()

	server := ipc.NewServer(socketPath, newX11Controller(conn), logger)
	if err := server.Start(); err != nil {
		return fmt.Errorf("start control socket: %w", err)
	}
	defer server.Stop()

	logger.Info("daemon running", "backend", "X11/EWMH", "socket", socketPath)

	<-ctx.Done()
	logger.Info("daemon stopped")
	return nil
}
