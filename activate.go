package deskshell

import "github.com/oxwm/deskshell/compositor"

// X11Bridge is notified of activation changes for compatibility with an
// external Xwayland-style bridge, spec §4.7. It is optional: Shell works
// fine with none installed.
type X11Bridge interface {
	OnActivate(ss *ShellSurface)
}

// SetX11Bridge installs (or clears, with nil) the optional activation
// bridge.
func (sh *Shell) SetX11Bridge(b X11Bridge) { sh.x11Bridge = b }

// Activate implements spec §4.7: make ss the keyboard focus recipient on
// every seat, notify the optional bridge, then restack by role.
func (sh *Shell) Activate(ss *ShellSurface) {
	for _, dev := range sh.comp.InputDevices() {
		dev.SetKeyboardFocus(ss.surface)
	}
	if sh.x11Bridge != nil {
		sh.x11Bridge.OnActivate(ss)
	}

	switch ss.role {
	case RoleBackground, RolePanel, RoleLock:
		// No restack.
	case RoleScreensaver:
		if sh.lockState.lockSurface != nil {
			sh.layers.lock.insertBelow(ss, sh.lockState.lockSurface)
		}
	case RoleFullscreen:
		// Already on top, spec §4.7.
	default:
		sh.layers.toplevel.raiseToTop(ss)
	}
}

// activateIfUnlocked activates ss unless the desktop is currently locked,
// the guard spec §4.13 applies to every post-map activation.
func (sh *Shell) activateIfUnlocked(ss *ShellSurface) {
	if !sh.lockState.locked {
		sh.Activate(ss)
	}
}

// ClickToActivate implements spec §4.7's click-to-activate rule: on a
// left-button press with no active grab, activate the surface under the
// pointer, with the fullscreen-backdrop special case.
func (sh *Shell) ClickToActivate(dev compositor.InputDevice) {
	if dev.ActivePointerGrab() != nil {
		return
	}
	target := dev.PointerFocus()
	if target == nil {
		return
	}
	if owner := sh.fullscreenOwnerOfBackdrop(target); owner != nil {
		sh.restackFullscreenPair(owner)
		sh.Activate(owner)
		return
	}
	ss := sh.ShellSurfaceFor(target.ID())
	if ss == nil {
		return
	}
	sh.Activate(ss)
}

// fullscreenOwnerOfBackdrop returns the fullscreen shell-surface whose
// black backdrop is target, or nil. Used to detect a click that landed
// on the backdrop rather than the fullscreen surface itself, spec §4.7.
func (sh *Shell) fullscreenOwnerOfBackdrop(target compositor.Surface) *ShellSurface {
	members := sh.layers.fullscreen.members
	for i, m := range members {
		sat, ok := m.(*satellite)
		if !ok || sat.s != target {
			continue
		}
		if i == 0 {
			return nil
		}
		if ss, ok := members[i-1].(*ShellSurface); ok {
			return ss
		}
	}
	return nil
}
