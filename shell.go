// Package deskshell implements the window-management policy of a
// compositor's desktop shell plug-in: surface role classification, layer
// stacking, the pointer/keyboard grab state machines, the lock/
// screensaver orchestrator, and the map/configure hooks the compositor
// calls on every client surface change. Everything the shell needs from
// the compositor itself — surface allocation, rendering, input decoding,
// wire dispatch — is named only as an interface in the compositor
// package; this package never reaches past that boundary.
package deskshell

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/oxwm/deskshell/compositor"
	"github.com/oxwm/deskshell/config"
)

// Shell is the per-compositor shell state, spec §3.
type Shell struct {
	comp compositor.Compositor
	log  *slog.Logger

	layers   *LayerStack
	surfaces map[compositor.SurfaceID]*ShellSurface

	backgrounds []*ShellSurface
	panels      []*ShellSurface

	bindings *KeyBindings

	lockState lockOrchestrator

	debugOverlay       compositor.Surface
	debugOverlayMember *satellite
	x11Bridge          X11Bridge

	posRand *rand.Rand

}

// Options configures a Shell at construction.
type Options struct {
	// HelperPath is the privileged helper binary launched at startup,
	// spec §4.11. If empty, no helper is launched and the shell runs
	// without panel/background/lock UI, per spec §7.
	HelperPath  string
	Screensaver config.ScreensaverSection
	Logger      *slog.Logger
}

// New creates a Shell bound to comp. It runs once at compositor init,
// spec §3 lifecycles.
func New(comp compositor.Compositor, opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	sh := &Shell{
		comp:     comp,
		log:      logger,
		layers:   NewLayerStack(),
		surfaces: make(map[compositor.SurfaceID]*ShellSurface),
		posRand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	sh.bindings = defaultKeyBindings(sh)
	sh.lockState.init(sh, opts.Screensaver)
	comp.BindGlobal("desktop_shell", 0)
	comp.BindGlobal("screensaver", 0)

	if opts.HelperPath != "" {
		if err := sh.lockState.helper.launch(opts.HelperPath); err != nil {
			sh.log.Error("initial helper launch failed", slog.String("error", err.Error()))
		} else {
			comp.BindGlobal("desktop_shell", sh.lockState.helper.client().ID())
			comp.BindGlobal("screensaver", sh.lockState.helper.client().ID())
		}
	}
	return sh
}

// Destroy tears down the shell, spec §3 lifecycles: releases the helper
// client binding and stops the screensaver supervisor.
func (sh *Shell) Destroy() {
	sh.lockState.shutdown()
}

// GetShellSurface implements the wl_shell.get_shell_surface request,
// spec §6. It is the only way a ShellSurface gets created; invariant 1
// (at most one shell-surface per compositor surface) is enforced here.
func (sh *Shell) GetShellSurface(surface compositor.Surface, client compositor.ShellSurfaceClient) (*ShellSurface, error) {
	if _, exists := sh.surfaces[surface.ID()]; exists {
		return nil, protoErr(ErrAlreadyRequested, "surface %d already has a shell surface", surface.ID())
	}
	ss := &ShellSurface{
		shell:   sh,
		surface: surface,
		client:  client,
		role:    RoleNone,
		rotation: RotationState{
			Committed: compositor.Identity(),
		},
	}
	sh.surfaces[surface.ID()] = ss
	surface.OnDestroy(func() { sh.onSurfaceDestroyed(ss) })
	return ss, nil
}

// ShellSurfaceFor looks up the shell-surface record for a compositor
// surface, or nil if it never requested one.
func (sh *Shell) ShellSurfaceFor(id compositor.SurfaceID) *ShellSurface {
	return sh.surfaces[id]
}

// onSurfaceDestroyed implements spec §3's destruction lifecycle: cancel
// any active popup grab, destroy the fullscreen black backdrop, and
// remove the surface from every list that references it.
func (sh *Shell) onSurfaceDestroyed(ss *ShellSurface) {
	if ss.role == RolePopup && ss.popup != nil && ss.popup.Grab != nil {
		ss.popup.Grab.cancel()
	}
	if ss.fullscreen != nil && ss.fullscreen.Black != nil {
		if ss.fullscreen.blackMember != nil {
			sh.layers.fullscreen.remove(ss.fullscreen.blackMember)
		}
		ss.fullscreen.Black.Destroy()
	}
	switch ss.role {
	case RolePanel:
		sh.detachPanel(ss)
	case RoleBackground:
		sh.detachBackground(ss)
	case RoleLock:
		sh.lockState.onLockSurfaceDestroyed(ss)
	case RoleScreensaver:
		sh.lockState.removeScreensaverSurface(ss)
	}
	if ss.layer != nil {
		ss.layer.remove(ss)
	}
	delete(sh.surfaces, ss.surface.ID())
}

// detachPanel removes ss from the panels list and its layer, spec
// §4.1 reset protocol. It also resets ss's role to none: this is called
// both on ss's own reset path (where resetRole immediately overwrites
// the role anyway) and to evict a *different* surface displaced by a
// new set_panel on the same output, spec invariant 5, which otherwise
// leaves the evicted surface claiming RolePanel while untracked
// everywhere else.
func (sh *Shell) detachPanel(ss *ShellSurface) {
	for i, p := range sh.panels {
		if p == ss {
			sh.panels = append(sh.panels[:i], sh.panels[i+1:]...)
			break
		}
	}
	if ss.layer != nil {
		ss.layer.remove(ss)
	}
	ss.role = RoleNone
}

// detachBackground removes ss from the backgrounds list and its layer,
// resetting its role for the same reason detachPanel does, spec
// invariant 5.
func (sh *Shell) detachBackground(ss *ShellSurface) {
	for i, b := range sh.backgrounds {
		if b == ss {
			sh.backgrounds = append(sh.backgrounds[:i], sh.backgrounds[i+1:]...)
			break
		}
	}
	if ss.layer != nil {
		ss.layer.remove(ss)
	}
	ss.role = RoleNone
}

// panelFor returns the panel bound to output, or nil.
func (sh *Shell) panelFor(output compositor.Output) *ShellSurface {
	for _, p := range sh.panels {
		if p.output == output {
			return p
		}
	}
	return nil
}

// backgroundFor returns the background bound to output, or nil.
func (sh *Shell) backgroundFor(output compositor.Output) *ShellSurface {
	for _, b := range sh.backgrounds {
		if b.output == output {
			return b
		}
	}
	return nil
}

func (sh *Shell) logf(format string, args ...any) {
	sh.log.Debug(fmt.Sprintf(format, args...))
}
