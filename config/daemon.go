package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DaemonConfig is the richer configuration read by cmd/deskshelld. It is
// not part of the shell library itself — the library only knows the
// [screensaver] section (screensaver.go) — but a real deployment needs more than
// that to wire up key bindings and the helper binary path.
type DaemonConfig struct {
	HelperPath      string             `yaml:"helper_path"`
	Screensaver     ScreensaverSection `yaml:"-"`
	ScreensaverPath string             `yaml:"screensaver_path"`
	ScreensaverSecs int                `yaml:"screensaver_seconds"`
	ZoomIncrement   float64            `yaml:"zoom_increment"`
	ClickToActivate bool               `yaml:"click_to_activate"`
	DebugOverlay    bool               `yaml:"debug_overlay_enabled"`
}

// DefaultDaemonConfig returns the baseline configuration used when no
// config file is present.
func DefaultDaemonConfig() DaemonConfig {
	return DaemonConfig{
		HelperPath:      "/usr/libexec/deskshell-helper",
		ScreensaverSecs: defaultScreensaverDuration,
		ZoomIncrement:   0.1,
		ClickToActivate: true,
	}
}

// ParseDaemonConfig decodes a yaml document into a DaemonConfig, starting
// from DefaultDaemonConfig so a partial file only overrides what it sets.
func ParseDaemonConfig(r io.Reader) (DaemonConfig, error) {
	cfg := DefaultDaemonConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return cfg, fmt.Errorf("decode daemon config: %w", err)
	}
	cfg.Screensaver = ScreensaverSection{Path: cfg.ScreensaverPath, Duration: cfg.ScreensaverSecs}
	return cfg, nil
}
