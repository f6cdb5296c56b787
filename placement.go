package deskshell

import "github.com/oxwm/deskshell/compositor"

// placeBackground implements the background case of spec §4.2: bottom of
// the background layer.
func (sh *Shell) placeBackground(ss *ShellSurface) {
	sh.layers.background.insertBottom(ss)
}

// placePanel implements the panel case of spec §4.2: top of the panel
// layer.
func (sh *Shell) placePanel(ss *ShellSurface) {
	sh.layers.panel.insertTop(ss)
}

// placeToplevel implements the toplevel/maximized/fullscreen-default case
// of spec §4.2: top of the toplevel layer.
func (sh *Shell) placeToplevel(ss *ShellSurface) {
	sh.layers.toplevel.insertTop(ss)
}

// placeTransient implements the transient case of spec §4.2: immediately
// below the parent in whatever layer the parent occupies, positioned at
// parent-origin + (x, y).
func (sh *Shell) placeTransient(ss *ShellSurface, x, y int) {
	sh.stackBelowParent(ss)
	if ss.parent != nil {
		pg := ss.parent.surface.Geometry()
		ss.surface.SetPosition(pg.Min.X+x, pg.Min.Y+y)
	}
}

// stackBelowParent places ss immediately below its parent in the
// parent's current layer, falling back to the top of the toplevel layer
// if the parent has none (e.g. the parent itself isn't mapped yet).
func (sh *Shell) stackBelowParent(ss *ShellSurface) {
	if ss.parent == nil || ss.parent.layer == nil {
		sh.layers.toplevel.insertTop(ss)
		return
	}
	ss.parent.layer.insertBelow(ss, ss.parent)
}

// placeFullscreen implements spec §4.5 in full: centre on the target
// output, allocate the black backdrop if absent, apply the method's
// transform, and stack both surface and backdrop at the top of the
// fullscreen layer.
func (sh *Shell) placeFullscreen(ss *ShellSurface) {
	out := ss.fullscreenOutput
	if out == nil {
		out = sh.comp.DefaultOutput()
		ss.fullscreenOutput = out
	}
	geom := out.Geometry()
	mode := out.CurrentMode()
	sw, shh := ss.surface.Geometry().Dx(), ss.surface.Geometry().Dy()

	cx := geom.Min.X + (geom.Dx()-sw)/2
	cy := geom.Min.Y + (geom.Dy()-shh)/2
	ss.surface.SetPosition(cx, cy)
	ss.surface.SetOutput(out)

	if ss.fullscreen.Black == nil {
		bd := sh.comp.CreateSurface()
		bd.SetPosition(geom.Min.X, geom.Min.Y)
		bd.SetSize(geom.Dx(), geom.Dy())
		bd.SetOutput(out)
		bd.SetColor(0, 0, 0, 255)
		ss.fullscreen.Black = bd
		ss.fullscreen.blackMember = &satellite{s: bd}
	}

	switch ss.fullscreen.Method {
	case FullscreenDefault, FullscreenDriver:
		// Geometry alone; a driver switch is delegated entirely to the
		// compositor, per spec §4.5.
		ss.surface.ClearTransform()
		ss.fullscreen.TransformInstalled = false
	case FullscreenScale:
		if sw > 0 {
			factor := float64(mode.Width) / float64(sw)
			ss.surface.SetTransform(compositor.Scale(factor, factor))
			ss.fullscreen.TransformInstalled = true
		}
	case FullscreenFill:
		// §9 open question: the source declares "fill" but leaves it
		// producing no transform. Resolved here as a non-uniform scale
		// to the output size rather than an inert no-op.
		if sw > 0 && shh > 0 {
			ss.surface.SetTransform(compositor.Scale(float64(mode.Width)/float64(sw), float64(mode.Height)/float64(shh)))
			ss.fullscreen.TransformInstalled = true
		}
	}

	sh.restackFullscreenPair(ss)
	ss.surface.Damage()
	if ss.fullscreen.Black != nil {
		ss.fullscreen.Black.Damage()
	}
}

// restackFullscreenPair moves ss and its black backdrop to the top of
// the fullscreen layer, backdrop immediately below, spec §4.5/invariant
// 2. Used both by placeFullscreen and by the click-to-activate backdrop
// special case, spec §4.7.
func (sh *Shell) restackFullscreenPair(ss *ShellSurface) {
	sh.layers.fullscreen.insertTop(ss)
	if ss.fullscreen != nil && ss.fullscreen.blackMember != nil {
		sh.layers.fullscreen.insertBelow(ss.fullscreen.blackMember, ss)
	}
}

// placeMaximized implements the maximized position rule common to map
// (§4.13) and configure (§4.12): pinned to (output.x, output.y +
// panel_height).
func (sh *Shell) placeMaximized(ss *ShellSurface) {
	out := ss.output
	if out == nil {
		out = sh.comp.DefaultOutput()
		ss.output = out
	}
	g := out.Geometry()
	ss.surface.SetPosition(g.Min.X, g.Min.Y+out.PanelHeight())
	sh.layers.toplevel.insertTop(ss)
}

// placeLock stacks a lock-role surface at the top of the lock layer,
// spec §4.2, centred on the default output.
func (sh *Shell) placeLock(ss *ShellSurface) {
	out := sh.comp.DefaultOutput()
	g := out.Geometry()
	sw, shh := ss.surface.Geometry().Dx(), ss.surface.Geometry().Dy()
	ss.surface.SetPosition(g.Min.X+(g.Dx()-sw)/2, g.Min.Y+(g.Dy()-shh)/2)
	sh.layers.lock.insertTop(ss)
}

// placeScreensaver implements the screensaver insertion rule of spec
// §4.2: top of the lock surface's siblings if a lock surface exists,
// otherwise top of the lock layer, and only while locked. It is centred
// on its fullscreen output per §4.13.
func (sh *Shell) placeScreensaver(ss *ShellSurface, out compositor.Output) {
	if out == nil {
		out = sh.comp.DefaultOutput()
	}
	ss.fullscreenOutput = out
	g := out.Geometry()
	sw, shh := ss.surface.Geometry().Dx(), ss.surface.Geometry().Dy()
	ss.surface.SetPosition(g.Min.X+(g.Dx()-sw)/2, g.Min.Y+(g.Dy()-shh)/2)

	if !sh.lockState.locked {
		return
	}
	if sh.lockState.lockSurface != nil {
		sh.layers.lock.insertBelow(ss, sh.lockState.lockSurface)
	} else {
		sh.layers.lock.insertTop(ss)
	}
}
