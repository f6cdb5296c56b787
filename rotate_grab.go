package deskshell

import (
	"image"
	"math"

	"github.com/oxwm/deskshell/compositor"
)

// rotateDeadzone is the radius, in pixels, inside which pointer motion is
// too close to the surface centre to derive a stable rotation, spec §4.8.
const rotateDeadzone = 20.0

// rotateGrab implements spec §4.8: accumulate a delta rotation from the
// pointer's angular offset from the surface centre, composed with the
// rotation already committed by prior grabs.
type rotateGrab struct {
	ss        *ShellSurface
	cx, cy    float64
	committed compositor.Matrix
	delta     compositor.Matrix
}

func (g *rotateGrab) Focus(dev compositor.InputDevice) {
	// Holds focus until released, spec §4.8.
}

func (g *rotateGrab) Motion(dev compositor.InputDevice, time uint32) {
	p := dev.PointerPosition()
	dx := float64(p.X) - g.cx
	dy := float64(p.Y) - g.cy
	r := math.Hypot(dx, dy)

	if r > rotateDeadzone {
		g.delta = compositor.Rotate(dx/r, -dy/r)
		// Mul(a, b) applies b first, then a (matrix.go), so to rotate about
		// the surface centre the point must be translated to the origin
		// last in the expression (applied first), then rotated, then
		// translated back to the centre first in the expression (applied
		// last).
		m := compositor.Translate(g.cx, g.cy).Mul(g.committed).Mul(g.delta).Mul(compositor.Translate(-g.cx, -g.cy))
		g.ss.surface.SetTransform(m)
		g.ss.rotation.Installed = true
	} else {
		g.delta = compositor.Identity()
		g.ss.surface.ClearTransform()
		g.ss.rotation.Installed = false
	}
	g.ss.shell.comp.ScheduleRepaint()
}

func (g *rotateGrab) Button(dev compositor.InputDevice, time uint32, button uint32, pressed bool) {
	if dev.ButtonsPressed() == 0 {
		g.ss.rotation.Committed = g.committed.Mul(g.delta)
		dev.EndPointerGrab()
	}
}

// startRotateGrab installs a rotate grab on dev for ss, spec §4.8. The
// surface centre is the transformed midpoint of its extent, converted to
// global coordinates through the device's existing coordinate mapping so
// an already-rotated surface rotates further around its true centre.
func startRotateGrab(ss *ShellSurface, dev compositor.InputDevice) {
	g := ss.surface.Geometry()
	mid := image.Pt(g.Dx()/2, g.Dy()/2)
	centre := dev.ToGlobal(ss.surface, mid)
	dev.StartPointerGrab(&rotateGrab{
		ss:        ss,
		cx:        float64(centre.X),
		cy:        float64(centre.Y),
		committed: ss.rotation.Committed,
		delta:     compositor.Identity(),
	})
}
