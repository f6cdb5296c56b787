package deskshell

import (
	"log/slog"

	"github.com/oxwm/deskshell/compositor"
	"github.com/oxwm/deskshell/config"
)

// lockOrchestrator owns the lock state machine, the helper supervisor,
// and the screensaver process supervisor, spec §4.10/§4.11. It is
// embedded in Shell rather than split into its own package because it
// reaches directly into the shell's layer stack and role lists — exactly
// the entanglement spec §1 calls out as the interesting content here.
type lockOrchestrator struct {
	sh *Shell

	locked           bool
	prepareEventSent bool

	lockSurface         *ShellSurface
	screensaverSurfaces []*ShellSurface

	screensaverCfg  config.ScreensaverSection
	screensaverProc *screensaverProcess

	helper           *helperSupervisor
	helperEvents     compositor.HelperEvents
	screensaverBound bool

	savedIdleTime      int
	savedIdleTimeValid bool
}

func (l *lockOrchestrator) init(sh *Shell, cfg config.ScreensaverSection) {
	l.sh = sh
	l.screensaverCfg = cfg
	l.helper = newHelperSupervisor(sh)
	l.screensaverProc = &screensaverProcess{sh: sh}
}

func (l *lockOrchestrator) shutdown() {
	l.helper.stop()
	l.screensaverProc.kill()
}

// Locked reports whether the desktop is currently locked.
func (sh *Shell) Locked() bool { return sh.lockState.locked }

// Lock implements the compositor→shell lock() hook, spec §4.10.
func (sh *Shell) Lock() {
	l := &sh.lockState
	if l.locked {
		// Already locked: cycle DPMS to standby, idempotently per output.
		for _, out := range sh.comp.Outputs() {
			if !out.DPMSStandby() {
				out.SetDPMS(true)
			}
		}
		return
	}

	l.locked = true
	l.prepareEventSent = false
	sh.layers.spliceOutDesktop()

	if l.screensaverCfg.Path != "" && !l.screensaverProc.running() {
		if err := l.screensaverProc.launch(l.screensaverCfg.Path); err != nil {
			sh.log.Warn("screensaver launch failed", slog.String("error", err.Error()))
		}
	}

	for _, ss := range l.screensaverSurfaces {
		sh.placeScreensaver(ss, ss.fullscreenOutput)
	}

	for _, dev := range sh.comp.InputDevices() {
		dev.SetPointerFocus(nil)
		dev.SetKeyboardFocus(nil)
	}

	if len(l.screensaverSurfaces) > 0 {
		l.savedIdleTime = sh.comp.IdleTime()
		l.savedIdleTimeValid = true
		sh.comp.SetIdleTime(l.screensaverCfg.Duration)
	}

	sh.log.Info("desktop locked")
}

// Unlock implements the compositor→shell unlock() hook, spec §4.10.
func (sh *Shell) Unlock() {
	l := &sh.lockState
	if !l.locked || l.lockSurface != nil {
		sh.comp.WakeIdle()
		return
	}
	if l.helper.client() == nil {
		l.resumeDesktop()
		return
	}
	if !l.prepareEventSent {
		l.prepareEventSent = true
		if l.helperEvents != nil {
			l.helperEvents.SendPrepareLockSurface()
		}
	}
}

// SetLockSurface implements the helper-only desktop_shell.set_lock_surface
// request, spec §4.1/§4.10. It is a no-op, not a protocol error, if the
// desktop isn't currently locked — the request simply arrived stale.
func (ss *ShellSurface) SetLockSurface() error {
	l := &ss.shell.lockState
	if !l.locked {
		return nil
	}
	if err := ss.beginRole(RoleLock); err != nil {
		return err
	}
	l.lockSurface = ss
	ss.shell.placeLock(ss)
	return nil
}

// onLockSurfaceDestroyed clears the lock-surface reference so a later
// unlock can force-resume, spec §4.10.
func (l *lockOrchestrator) onLockSurfaceDestroyed(ss *ShellSurface) {
	if l.lockSurface == ss {
		l.lockSurface = nil
	}
}

func (l *lockOrchestrator) removeScreensaverSurface(ss *ShellSurface) {
	for i, s := range l.screensaverSurfaces {
		if s == ss {
			l.screensaverSurfaces = append(l.screensaverSurfaces[:i], l.screensaverSurfaces[i+1:]...)
			return
		}
	}
}

// SetScreensaverSurface implements the screensaver.set_surface request,
// spec §4.1/§6.
func (ss *ShellSurface) SetScreensaverSurface(output compositor.Output) error {
	if err := ss.beginRole(RoleScreensaver); err != nil {
		return err
	}
	ss.shell.lockState.screensaverSurfaces = append(ss.shell.lockState.screensaverSurfaces, ss)
	ss.shell.placeScreensaver(ss, output)
	return nil
}

// HelperUnlock implements the helper→shell desktop_shell.unlock request,
// spec §4.10's resume_desktop path.
func (sh *Shell) HelperUnlock() {
	sh.lockState.resumeDesktop()
}

// resumeDesktop implements spec §4.10's resume_desktop: hide screensaver
// surfaces, kill the screensaver helper, restore layers and idle time,
// wake, and damage everything.
func (l *lockOrchestrator) resumeDesktop() {
	if !l.locked {
		return
	}
	sh := l.sh
	for _, ss := range l.screensaverSurfaces {
		if ss.layer != nil {
			ss.layer.remove(ss)
		}
	}
	l.screensaverProc.kill()

	sh.layers.spliceInDesktop()
	l.locked = false
	l.prepareEventSent = false
	l.lockSurface = nil

	if l.savedIdleTimeValid {
		sh.comp.SetIdleTime(l.savedIdleTime)
		l.savedIdleTimeValid = false
	}
	sh.comp.WakeIdle()
	sh.comp.DamageAll()
	sh.log.Info("desktop unlocked")
}
