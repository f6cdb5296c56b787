package deskshell

import "github.com/oxwm/deskshell/compositor"

// Modifier is a bitmask of held keyboard modifiers, matching whatever
// encoding the compositor's input decoding (out of scope here) chooses
// to report.
type Modifier uint32

const (
	ModSuper Modifier = 1 << iota
	ModAlt
	ModCtrl
	ModShift
)

// Pointer button codes, as reported by the compositor.
const (
	BtnLeft uint32 = iota + 1
	BtnMiddle
	BtnRight
)

// Key codes the bindings table matches against, as reported by the
// compositor's input decoding.
const (
	KeyTab uint32 = iota + 1
	KeyUp
	KeyDown
	KeyBackspace
	KeyF9
	KeyF10
	KeyBrightnessDown
	KeyBrightnessUp
	KeySpace
)

// zoomIncrement is the per-press zoom step of spec §4.14.
const zoomIncrement = 0.1

// resizeChordEdges is the edge selection spec §4.4 leaves to the
// implementation when resize is triggered by a pointer chord rather than
// an explicit client request naming edges: the bottom-right corner, the
// conventional default for a drag-resize initiated from anywhere on the
// window.
const resizeChordEdges = EdgeBottom | EdgeRight

// KeyBindings is the table of (key, button, modifier) → handler, spec
// §2/§6. It holds no state of its own beyond the Shell it dispatches
// into.
type KeyBindings struct {
	sh *Shell
}

func defaultKeyBindings(sh *Shell) *KeyBindings {
	return &KeyBindings{sh: sh}
}

// HandleButton dispatches a pointer button event against the bindings
// table of spec §6. It reports whether the event was consumed.
func (kb *KeyBindings) HandleButton(dev compositor.InputDevice, time uint32, button uint32, mods Modifier, pressed bool) bool {
	if !pressed {
		return false
	}
	sh := kb.sh

	switch {
	case mods == ModSuper && button == BtnLeft:
		return kb.startGrabOnFocused(dev, func(ss *ShellSurface) {
			startMoveGrab(ss, dev)
		})
	case mods == ModSuper && button == BtnMiddle:
		return kb.startGrabOnFocused(dev, func(ss *ShellSurface) {
			if ss.role != RoleFullscreen {
				startResizeGrab(ss, dev, resizeChordEdges)
			}
		})
	case mods == ModSuper|ModAlt && button == BtnLeft:
		return kb.startGrabOnFocused(dev, func(ss *ShellSurface) {
			startRotateGrab(ss, dev)
		})
	case mods == 0 && button == BtnLeft:
		sh.ClickToActivate(dev)
		return true
	}
	return false
}

func (kb *KeyBindings) startGrabOnFocused(dev compositor.InputDevice, start func(ss *ShellSurface)) bool {
	target := dev.PointerFocus()
	if target == nil {
		return false
	}
	ss := kb.sh.ShellSurfaceFor(target.ID())
	if ss == nil {
		return false
	}
	start(ss)
	return true
}

// HandleKey dispatches a key event against the bindings table of spec
// §6. It reports whether the event was consumed.
func (kb *KeyBindings) HandleKey(dev compositor.InputDevice, time uint32, key uint32, mods Modifier, pressed bool) bool {
	if !pressed {
		return false
	}
	sh := kb.sh

	switch {
	case mods == ModCtrl|ModAlt && key == KeyBackspace:
		sh.comp.Shutdown()
		return true
	case mods == ModSuper && key == KeyUp:
		sh.adjustZoom(dev, zoomIncrement)
		return true
	case mods == ModSuper && key == KeyDown:
		sh.adjustZoom(dev, -zoomIncrement)
		return true
	case mods == ModSuper && key == KeyTab:
		startSwitcherGrab(sh, dev, uint32(ModSuper))
		return true
	case key == KeyBrightnessDown || (mods == ModCtrl && key == KeyF9):
		sh.adjustBacklight(-1)
		return true
	case key == KeyBrightnessUp || (mods == ModCtrl && key == KeyF10):
		sh.adjustBacklight(1)
		return true
	case mods == ModSuper && key == KeySpace:
		sh.ToggleDebugOverlay()
		return true
	}
	return false
}

// adjustZoom implements the zoom half of spec §4.14: per output
// containing the pointer, step the zoom level, clamped to
// [zoomIncrement, 1.0], deactivating (returning to 1.0's unmagnified
// state) once it reaches the top of the range.
func (sh *Shell) adjustZoom(dev compositor.InputDevice, delta float64) {
	out := sh.comp.OutputAt(dev.PointerPosition())
	if out == nil {
		return
	}
	level := out.Zoom() + delta
	if level > 1.0 {
		level = 1.0
	}
	if level < zoomIncrement {
		level = zoomIncrement
	}
	out.SetZoom(level)
}

// adjustBacklight implements the brightness half of spec §4.14: step the
// default output's backlight, clamped to [1, 10].
func (sh *Shell) adjustBacklight(delta int) {
	out := sh.comp.DefaultOutput()
	if out == nil {
		return
	}
	level := out.Backlight() + delta
	if level < 1 {
		level = 1
	}
	if level > 10 {
		level = 10
	}
	out.SetBacklight(level)
}

// ToggleDebugOverlay implements spec §4.14's debug-repaint binding: a
// translucent red full-screen surface in the always-on-top fade layer.
// The overlay is never damaged here, so it adds no damage of its own and
// only subsequently-damaged regions get recoloured, making partial
// repaints visible.
func (sh *Shell) ToggleDebugOverlay() {
	if sh.debugOverlay != nil {
		sh.layers.fade.remove(sh.debugOverlayMember)
		sh.debugOverlay.Destroy()
		sh.debugOverlay = nil
		sh.debugOverlayMember = nil
		return
	}
	out := sh.comp.DefaultOutput()
	if out == nil {
		return
	}
	g := out.Geometry()
	ov := sh.comp.CreateSurface()
	ov.SetPosition(g.Min.X, g.Min.Y)
	ov.SetSize(g.Dx(), g.Dy())
	ov.SetOutput(out)
	ov.SetColor(255, 0, 0, 96)
	sh.debugOverlay = ov
	sh.debugOverlayMember = &satellite{s: ov}
	sh.layers.fade.insertTop(sh.debugOverlayMember)
}
