package config

import (
	"fmt"
	"log/slog"
)

// Backend selection values.
const (
	BackendAuto    = "auto"
	BackendWayland = "wayland"
	BackendX11     = "x11"
)

// Config is the daemon configuration.
type Config struct {
	// NiriCommand is the binary used for fallback IPC actions.
	NiriCommand string `yaml:"niri_command"`
	// Backend selects the window system: auto, wayland or x11.
	Backend string `yaml:"backend"`
	// Display overrides WAYLAND_DISPLAY when connecting the wayland backend.
	Display string `yaml:"display"`
	// SocketPath overrides the control socket location.
	SocketPath string `yaml:"socket_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		NiriCommand: "niri",
		Backend:     BackendAuto,
		LogLevel:    "info",
	}
}

// Validate checks the configuration for values the daemon cannot use.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendWayland, BackendX11:
	default:
		return fmt.Errorf("invalid backend %q (want auto, wayland or x11)", c.Backend)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.NiriCommand == "" {
		return fmt.Errorf("niri_command must not be empty")
	}
	return nil
}

// ParseLevel maps a config log level string onto slog.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log_level %q (want debug, info, warn or error)", level)
}
