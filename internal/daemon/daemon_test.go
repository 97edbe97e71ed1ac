package daemon

import (
	"path/filepath"
	"testing"

	"github.com/1broseidon/waydock/internal/config"
)

func TestResolveSocketPathPrefersConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SocketPath = "/tmp/custom.sock"

	got, err := resolveSocketPath(cfg)
	if err != nil {
		t.Fatalf("resolveSocketPath: %v", err)
	}
	if got != "/tmp/custom.sock" {
		t.Errorf("socket path = %q, want configured override", got)
	}
}

func TestResolveSocketPathDefaultsToRuntimeDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)

	got, err := resolveSocketPath(config.DefaultConfig())
	if err != nil {
		t.Fatalf("resolveSocketPath: %v", err)
	}
	if want := filepath.Join(dir, "waydock.sock"); got != want {
		t.Errorf("socket path = %q, want %q", got, want)
	}
}

func TestSelectBackend(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "wayland-1")
	t.Setenv("DISPLAY", ":0")
	if got := selectBackend(config.BackendAuto); got != config.BackendWayland {
		t.Errorf("auto with both displays = %q, want wayland", got)
	}
	if got := selectBackend(config.BackendX11); got != config.BackendX11 {
		t.Errorf("explicit x11 = %q", got)
	}

	t.Setenv("WAYLAND_DISPLAY", "")
	if got := selectBackend(config.BackendAuto); got != config.BackendX11 {
		t.Errorf("auto with DISPLAY only = %q, want x11", got)
	}

	t.Setenv("DISPLAY", "")
	if got := selectBackend(config.BackendAuto); got != "" {
		t.Errorf("auto with no displays = %q, want empty", got)
	}
}
