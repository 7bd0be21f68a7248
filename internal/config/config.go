// Package config provides configuration helpers for the engine commands.
package config

import (
	"os"
	"strconv"
)

// Defaults for the engine server.
const (
	DefaultPort    = "8090"
	DefaultFrameHz = 60.0
	DefaultProfile = "profile.yaml"
)

// Port returns the HTTP port from the PORT env var or the default.
func Port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return DefaultPort
}

// ProfilePath returns the profile file path from PROFILE_PATH or the
// default.
func ProfilePath() string {
	if p := os.Getenv("PROFILE_PATH"); p != "" {
		return p
	}
	return DefaultProfile
}

// FrameHz returns the frame loop rate from FRAME_HZ or the default.
func FrameHz() float64 {
	if v := os.Getenv("FRAME_HZ"); v != "" {
		if hz, err := strconv.ParseFloat(v, 64); err == nil && hz > 0 {
			return hz
		}
	}
	return DefaultFrameHz
}

// LogLevel returns the log level from LOG_LEVEL, defaulting to "info".
func LogLevel() string {
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		return l
	}
	return "info"
}

// SessionToken returns the session gate token from SESSION_TOKEN.
// An empty token disables the gate (development mode).
func SessionToken() string {
	return os.Getenv("SESSION_TOKEN")
}

// StaticDir returns the frontend asset directory from STATIC_DIR or "./web".
func StaticDir() string {
	if d := os.Getenv("STATIC_DIR"); d != "" {
		return d
	}
	return "./web"
}
