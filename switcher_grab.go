package deskshell

import "github.com/oxwm/deskshell/compositor"

// switcherDimAlpha is the alpha applied to every eligible surface except
// the current one while the switcher grab is held, spec §4.9.
const switcherDimAlpha = 64

// switcherGrab implements spec §4.9: a keyboard grab that cycles visible
// toplevel/maximized/fullscreen surfaces, dimming everything but the
// current one, until the triggering modifier is released.
type switcherGrab struct {
	sh       *Shell
	modifier uint32
	eligible []*ShellSurface
	current  int // index into eligible, or -1 if eligible is empty.

	// subscribed tracks which surfaces already have an onCurrentDestroyed
	// callback registered. compositor.Surface.OnDestroy is additive with no
	// unregister, so cycling back to an already-seen surface (tab count
	// exceeds len(eligible)) must not call OnDestroy on it again.
	subscribed map[*ShellSurface]bool
}

// startSwitcherGrab implements the Super+Tab binding of spec §4.9/§6.
func startSwitcherGrab(sh *Shell, dev compositor.InputDevice, modifier uint32) {
	g := &switcherGrab{
		sh:         sh,
		modifier:   modifier,
		eligible:   sh.switchableSurfaces(),
		current:    -1,
		subscribed: make(map[*ShellSurface]bool),
	}
	if len(g.eligible) > 0 {
		g.current = 0
	}
	g.applyAlphas()
	g.subscribeCurrent()
	dev.StartKeyboardGrab(g)
}

// switchableSurfaces collects the visible toplevel/maximized/fullscreen
// surfaces in layer order, spec §4.9's "compositor surface-list order"
// rendered here as the shell's own deterministic stacking order: the
// fullscreen layer first, then the toplevel layer (which also holds
// maximized surfaces, spec §4.2). Transients and popups stack in the same
// layer as their parent (placement.go's stackBelowParent) but are not
// independently switchable windows, so they're filtered out by role.
func (sh *Shell) switchableSurfaces() []*ShellSurface {
	var out []*ShellSurface
	for _, ss := range sh.layers.fullscreen.Surfaces() {
		if ss.Role() == RoleFullscreen {
			out = append(out, ss)
		}
	}
	for _, ss := range sh.layers.toplevel.Surfaces() {
		switch ss.Role() {
		case RoleToplevel, RoleMaximized:
			out = append(out, ss)
		}
	}
	return out
}

func (g *switcherGrab) applyAlphas() {
	for i, ss := range g.eligible {
		if i == g.current {
			ss.surface.SetAlpha(255)
		} else {
			ss.surface.SetAlpha(switcherDimAlpha)
		}
	}
}

// subscribeCurrent arms the auto-advance-on-destroy rule, spec §4.9: the
// grab subscribes to the current surface's destruction and advances if
// it vanishes mid-grab. Each eligible surface is subscribed at most once
// per grab, since OnDestroy has no unregister and cycling past a full
// lap revisits surfaces already current before.
func (g *switcherGrab) subscribeCurrent() {
	if g.current < 0 {
		return
	}
	ss := g.eligible[g.current]
	if g.subscribed[ss] {
		return
	}
	g.subscribed[ss] = true
	ss.surface.OnDestroy(func() {
		g.onCurrentDestroyed(ss)
	})
}

func (g *switcherGrab) onCurrentDestroyed(dead *ShellSurface) {
	idx := -1
	for i, ss := range g.eligible {
		if ss == dead {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	g.eligible = append(g.eligible[:idx], g.eligible[idx+1:]...)
	// §9 open question: the first advance after a destruction must handle
	// the now-possibly-empty eligible list explicitly rather than leaving
	// a stale index.
	if len(g.eligible) == 0 {
		g.current = -1
		return
	}
	if idx < g.current {
		// A surface before the current one was removed: shift current left
		// so it keeps pointing at the same surface, not the one now at its
		// old index.
		g.current--
	} else if g.current >= len(g.eligible) {
		g.current = 0
	}
	g.applyAlphas()
	g.subscribeCurrent()
}

// Key advances the switcher on every Tab press; all other keys are
// ignored while the grab is held.
func (g *switcherGrab) Key(dev compositor.InputDevice, time uint32, key uint32, pressed bool) {
	if !pressed || key != KeyTab {
		return
	}
	if len(g.eligible) == 0 {
		return
	}
	g.current = (g.current + 1) % len(g.eligible)
	g.applyAlphas()
	g.subscribeCurrent()
}

// ModifiersChanged releases the grab once the triggering modifier is no
// longer held, spec §4.9: restore alphas, activate the current surface,
// release the grab.
func (g *switcherGrab) ModifiersChanged(dev compositor.InputDevice, mods uint32) {
	if mods&g.modifier != 0 {
		return
	}
	for _, ss := range g.eligible {
		ss.surface.SetAlpha(255)
	}
	if g.current >= 0 && g.current < len(g.eligible) {
		g.sh.activateIfUnlocked(g.eligible[g.current])
	}
	dev.EndKeyboardGrab()
}
