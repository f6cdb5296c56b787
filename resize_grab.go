package deskshell

import "github.com/oxwm/deskshell/compositor"

// resizeGrab implements spec §4.4: derive a new width/height from the
// pointer's surface-local motion along the active edges and ask the
// client to commit a buffer at that size.
type resizeGrab struct {
	ss    *ShellSurface
	edges Edge

	startW, startH int
	startLocalX    int
	startLocalY    int
}

func (g *resizeGrab) Focus(dev compositor.InputDevice) {
	// Holds focus until released, spec §4.4 (same rule as move).
}

func (g *resizeGrab) Motion(dev compositor.InputDevice, time uint32) {
	local := dev.ToSurfaceLocal(g.ss.surface, dev.PointerPosition())
	dx := local.X - g.startLocalX
	dy := local.Y - g.startLocalY

	w, h := g.startW, g.startH
	if g.edges&EdgeLeft != 0 {
		w -= dx
	}
	if g.edges&EdgeRight != 0 {
		w += dx
	}
	if g.edges&EdgeTop != 0 {
		h -= dy
	}
	if g.edges&EdgeBottom != 0 {
		h += dy
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	g.ss.client.SendConfigure(time, uint32(g.edges), w, h)
}

func (g *resizeGrab) Button(dev compositor.InputDevice, time uint32, button uint32, pressed bool) {
	if dev.ButtonsPressed() == 0 {
		dev.EndPointerGrab()
	}
}

// startResizeGrab installs a resize grab on dev for ss along edges, spec
// §4.4.
func startResizeGrab(ss *ShellSurface, dev compositor.InputDevice, edges Edge) {
	g := ss.surface.Geometry()
	local := dev.ToSurfaceLocal(ss.surface, dev.PointerPosition())
	dev.StartPointerGrab(&resizeGrab{
		ss:          ss,
		edges:       edges,
		startW:      g.Dx(),
		startH:      g.Dy(),
		startLocalX: local.X,
		startLocalY: local.Y,
	})
}

// Resize implements the wl_shell_surface.resize request, spec §4.4: same
// time/button/focus checks as Move, plus edge validation and a reject for
// the fullscreen role. Both rejections are silent, matching spec §7's
// treatment of stale or inapplicable timed requests.
func (ss *ShellSurface) Resize(dev compositor.InputDevice, time uint32, edges Edge) error {
	if dev.GrabTime() != time {
		return nil
	}
	if dev.ButtonsPressed() < 1 {
		return nil
	}
	if dev.PointerFocus() != ss.surface {
		return nil
	}
	if ss.role == RoleFullscreen {
		return nil
	}
	if !edges.valid() {
		return nil
	}
	startResizeGrab(ss, dev, edges)
	return nil
}
