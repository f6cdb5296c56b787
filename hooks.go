package deskshell

import (
	"image"

	"github.com/oxwm/deskshell/compositor"
)

// toplevelPosMin and toplevelPosRange bound the pseudo-random initial
// toplevel position of spec §4.13: [10, 410) on each axis.
const (
	toplevelPosMin   = 10
	toplevelPosRange = 400
)

func (sh *Shell) randomToplevelPos() (int, int) {
	return toplevelPosMin + sh.posRand.Intn(toplevelPosRange), toplevelPosMin + sh.posRand.Intn(toplevelPosRange)
}

// Map implements the compositor→shell map hook, spec §4.13: role-driven
// stacking (§4.2) plus role-specific initial position, then output
// assignment, pick recomputation, and activation of the interactive
// roles.
func (sh *Shell) Map(ss *ShellSurface, w, h, sx, sy int) {
	switch ss.role {
	case RoleBackground:
		sh.placeBackground(ss)
	case RolePanel:
		sh.placePanel(ss)
	case RoleLock:
		sh.placeLock(ss)
	case RoleScreensaver:
		sh.placeScreensaver(ss, ss.fullscreenOutput)
	case RoleFullscreen:
		sh.placeFullscreen(ss)
	case RoleMaximized:
		sh.placeMaximized(ss)
	case RoleToplevel:
		x, y := sh.randomToplevelPos()
		ss.surface.SetPosition(x, y)
		sh.layers.toplevel.insertTop(ss)
		sh.comp.ZoomInSurface(ss.surface, 0.8, 1.0)
	case RolePopup:
		sh.setupPopupGrab(ss)
		fallthrough // §9 open question: preserved — popup also receives the NONE-branch offset below.
	case RoleNone:
		g := ss.surface.Geometry()
		ss.surface.SetPosition(g.Min.X+sx, g.Min.Y+sy)
	}

	out := sh.comp.OutputAt(ss.surface.Geometry().Min)
	ss.surface.SetOutput(out)

	for _, dev := range sh.comp.InputDevices() {
		sh.recomputePointerFocus(dev)
	}

	switch ss.role {
	case RoleToplevel, RoleTransient, RoleFullscreen, RoleMaximized:
		sh.activateIfUnlocked(ss)
	}
}

// Configure implements the compositor→shell configure hook, spec §4.12:
// per-role geometry override on every client commit.
func (sh *Shell) Configure(ss *ShellSurface, x, y, w, h int) {
	switch ss.role {
	case RoleScreensaver:
		sh.placeScreensaver(ss, ss.fullscreenOutput)
	case RoleFullscreen:
		// §9 open question: the source's "only restack on role transition"
		// guard was never wired up; this restacks on every configure.
		sh.placeFullscreen(ss)
	case RoleMaximized:
		sh.placeMaximized(ss)
	default:
		ss.surface.SetPosition(x, y)
	}
	ss.surface.Damage()
}

// pickSurfaceAt returns the topmost surface, across every layer in
// global Z-order, whose geometry contains p, or nil.
func (sh *Shell) pickSurfaceAt(p image.Point) compositor.Surface {
	for _, l := range sh.layers.Order() {
		for _, m := range l.members {
			s := m.handle()
			if p.In(s.Geometry()) {
				return s
			}
		}
	}
	return nil
}

// recomputePointerFocus re-resolves dev's pointer focus against the
// current stacking order, spec §4.13's "the pick is recomputed".
func (sh *Shell) recomputePointerFocus(dev compositor.InputDevice) {
	p := dev.PointerPosition()
	dev.SetPointerFocus(sh.pickSurfaceAt(p))
}
