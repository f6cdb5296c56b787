package deskshell

import "github.com/oxwm/deskshell/compositor"

// moveGrab implements spec §4.3: translate the surface to track the
// pointer, offset by the grab-start delta between surface origin and
// pointer position.
type moveGrab struct {
	ss   *ShellSurface
	offX int
	offY int
}

func (g *moveGrab) Focus(dev compositor.InputDevice) {
	// Holds focus until released, spec §4.3.
}

func (g *moveGrab) Motion(dev compositor.InputDevice, time uint32) {
	p := dev.PointerPosition()
	g.ss.surface.SetPosition(p.X+g.offX, p.Y+g.offY)
}

func (g *moveGrab) Button(dev compositor.InputDevice, time uint32, button uint32, pressed bool) {
	if dev.ButtonsPressed() == 0 {
		dev.EndPointerGrab()
	}
}

// startMoveGrab installs a move grab on dev for ss, spec §4.3.
func startMoveGrab(ss *ShellSurface, dev compositor.InputDevice) {
	p := dev.PointerPosition()
	g := ss.surface.Geometry()
	dev.StartPointerGrab(&moveGrab{
		ss:   ss,
		offX: g.Min.X - p.X,
		offY: g.Min.Y - p.Y,
	})
}

// Move implements the wl_shell_surface.move request, spec §4.3. Rejected
// silently (not a protocol error, spec §7's "stale timed requests") if
// the grab time is stale, no button is held, or the pointer isn't
// focused on this surface.
func (ss *ShellSurface) Move(dev compositor.InputDevice, time uint32) error {
	if dev.GrabTime() != time {
		return nil
	}
	if dev.ButtonsPressed() < 1 {
		return nil
	}
	if dev.PointerFocus() != ss.surface {
		return nil
	}
	startMoveGrab(ss, dev)
	return nil
}
