package deskshell

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/oxwm/deskshell/compositor"
)

// deathWindow is the leaky-bucket window spec §4.11 measures helper
// deaths against.
const deathWindow = 30 * time.Second

// maxDeathsPerWindow is the number of deaths tolerated within
// deathWindow before the supervisor gives up, spec §4.11.
const maxDeathsPerWindow = 5

// helperSupervisor launches the privileged helper client and restarts it
// on crash with a leaky-bucket limit, spec §4.11.
type helperSupervisor struct {
	sh   *Shell
	path string

	helperClient compositor.Client
	deathCount   int
	firstDeathAt time.Time
	gaveUp       bool
}

func newHelperSupervisor(sh *Shell) *helperSupervisor {
	return &helperSupervisor{sh: sh}
}

// client returns the current helper client, or nil if none is running
// (never launched, crashed out, or gave up).
func (h *helperSupervisor) client() compositor.Client {
	return h.helperClient
}

// isHelper reports whether client is the recorded helper client, the
// privileged-binding gate's core check, spec §4.11/invariant 7.
func (h *helperSupervisor) isHelper(client compositor.Client) bool {
	return h.helperClient != nil && client != nil && h.helperClient.ID() == client.ID()
}

// launch starts (or restarts) the helper binary at path.
func (h *helperSupervisor) launch(path string) error {
	h.path = path
	client, err := h.sh.comp.LaunchClient(path, h.onExit)
	if err != nil {
		return fmt.Errorf("launch helper %q: %w", path, err)
	}
	h.helperClient = client
	if he, ok := client.(compositor.HelperEvents); ok {
		h.sh.lockState.helperEvents = he
	}
	return nil
}

// stop is called on shell teardown; it does not attempt to respawn.
func (h *helperSupervisor) stop() {
	if h.helperClient != nil {
		h.helperClient.Kill(sigterm)
		h.helperClient = nil
	}
}

// onExit is the compositor's process-exit callback for the helper,
// spec §4.11's leaky-bucket restart policy.
func (h *helperSupervisor) onExit(pid int, exitErr error) {
	h.helperClient = nil
	h.sh.lockState.helperEvents = nil

	now := time.Now()
	if h.firstDeathAt.IsZero() || now.Sub(h.firstDeathAt) > deathWindow {
		h.firstDeathAt = now
		h.deathCount = 0
	}
	h.deathCount++

	if h.deathCount > maxDeathsPerWindow {
		h.gaveUp = true
		h.sh.log.Error("shell helper crashed repeatedly, giving up",
			slog.Int("deaths", h.deathCount), slog.Int("pid", pid))
		return
	}

	h.sh.log.Info("respawning shell helper", slog.Int("pid", pid), slog.Int("attempt", h.deathCount))
	if err := h.launch(h.path); err != nil {
		h.sh.log.Error("helper respawn failed", slog.String("error", err.Error()))
		return
	}
	// The respawned client gets a fresh ClientID, so the privileged-binding
	// restriction recorded at New() (spec §4.11/invariant 7) must move to
	// it too, or the protocol gate keeps pointing at the dead client.
	h.sh.comp.BindGlobal("desktop_shell", h.helperClient.ID())
	h.sh.comp.BindGlobal("screensaver", h.helperClient.ID())
}

// screensaverProcess supervises the screensaver helper process, spec
// §4.10/§4.11: relaunched on lock, pid zeroed on exit so a later lock
// can launch a fresh instance. Unlike the shell helper it carries no
// leaky-bucket limit — the spec only specifies that one for the shell
// helper itself.
type screensaverProcess struct {
	sh     *Shell
	client compositor.Client
}

func (s *screensaverProcess) running() bool { return s.client != nil }

func (s *screensaverProcess) launch(path string) error {
	client, err := s.sh.comp.LaunchClient(path, s.onExit)
	if err != nil {
		return fmt.Errorf("launch screensaver %q: %w", path, err)
	}
	s.client = client
	return nil
}

func (s *screensaverProcess) onExit(pid int, exitErr error) {
	s.client = nil
}

func (s *screensaverProcess) kill() {
	if s.client == nil {
		return
	}
	s.client.Kill(sigterm)
	s.client = nil
}
