package deskshell

import "github.com/oxwm/deskshell/compositor"

// stackable is anything that can occupy a layer slot: a client
// shell-surface, or a shell-owned satellite surface (the fullscreen black
// backdrop, the debug overlay) that has no role of its own.
type stackable interface {
	handle() compositor.Surface
}

// handle implements stackable for ShellSurface.
func (ss *ShellSurface) handle() compositor.Surface { return ss.surface }

// satellite wraps a shell-owned compositor.Surface that needs a layer
// slot but isn't itself a shell-surface, spec §3 ("fullscreen black
// backdrop", §4.14 debug overlay). Like ShellSurface it tracks which
// layer currently holds it, so a re-insertion (e.g. restackFullscreenPair
// running again on the same backdrop) detaches it from its old slot
// first instead of leaving a stale duplicate entry behind.
type satellite struct {
	s     compositor.Surface
	layer *Layer
}

func (sa *satellite) handle() compositor.Surface { return sa.s }

// Layer is an ordered list of surface links, spec §2/§3. Index 0 is the
// top of the layer; later indices are progressively lower.
type Layer struct {
	name    string
	members []stackable
}

func newLayer(name string) *Layer {
	return &Layer{name: name}
}

// Name returns the layer's identifying name ("toplevel", "panel", ...).
func (l *Layer) Name() string { return l.name }

// Surfaces returns the shell-surfaces in the layer, top first, skipping
// any shell-owned satellite members (black backdrops, debug overlay).
func (l *Layer) Surfaces() []*ShellSurface {
	out := make([]*ShellSurface, 0, len(l.members))
	for _, m := range l.members {
		if ss, ok := m.(*ShellSurface); ok {
			out = append(out, ss)
		}
	}
	return out
}

func (l *Layer) indexOf(m stackable) int {
	for i, s := range l.members {
		if s == m {
			return i
		}
	}
	return -1
}

// currentLayer returns the layer m currently believes it occupies, for
// both kinds of stackable member.
func currentLayer(m stackable) *Layer {
	switch v := m.(type) {
	case *ShellSurface:
		return v.layer
	case *satellite:
		return v.layer
	default:
		return nil
	}
}

func (l *Layer) track(m stackable) {
	switch v := m.(type) {
	case *ShellSurface:
		v.layer = l
	case *satellite:
		v.layer = l
	}
}

func (l *Layer) untrack(m stackable) {
	if currentLayer(m) != l {
		return
	}
	switch v := m.(type) {
	case *ShellSurface:
		v.layer = nil
	case *satellite:
		v.layer = nil
	}
}

// remove detaches m from the layer if present.
func (l *Layer) remove(m stackable) {
	i := l.indexOf(m)
	if i == -1 {
		return
	}
	l.members = append(l.members[:i], l.members[i+1:]...)
	l.untrack(m)
}

// detachFromCurrent removes m from whatever layer it currently occupies
// (tracked via currentLayer), so every insert* method is idempotent
// against re-inserting an already-placed member.
func (l *Layer) detachFromCurrent(m stackable) {
	if cur := currentLayer(m); cur != nil {
		cur.remove(m)
	}
}

// insertTop places m at the top of the layer.
func (l *Layer) insertTop(m stackable) {
	l.detachFromCurrent(m)
	l.members = append([]stackable{m}, l.members...)
	l.track(m)
}

// insertBottom places m at the bottom of the layer.
func (l *Layer) insertBottom(m stackable) {
	l.detachFromCurrent(m)
	l.members = append(l.members, m)
	l.track(m)
}

// insertAbove places m immediately above ref within the layer.
func (l *Layer) insertAbove(m, ref stackable) {
	l.detachFromCurrent(m)
	i := l.indexOf(ref)
	if i == -1 {
		l.members = append([]stackable{m}, l.members...)
	} else {
		l.members = append(l.members[:i], append([]stackable{m}, l.members[i:]...)...)
	}
	l.track(m)
}

// insertBelow places m immediately below ref within the layer.
func (l *Layer) insertBelow(m, ref stackable) {
	l.detachFromCurrent(m)
	i := l.indexOf(ref)
	if i == -1 {
		l.members = append(l.members, m)
	} else {
		i++
		l.members = append(l.members[:i], append([]stackable{m}, l.members[i:]...)...)
	}
	l.track(m)
}

// raiseToTop moves an already-present member to the top of its layer.
func (l *Layer) raiseToTop(m stackable) {
	if l.indexOf(m) == -1 {
		return
	}
	l.remove(m)
	l.members = append([]stackable{m}, l.members...)
	l.track(m)
}

// LayerStack holds the named layers and the subset of them currently
// participating in the global Z-order, spec §3/§4.10 invariant 4.
type LayerStack struct {
	fullscreen *Layer
	panel      *Layer
	toplevel   *Layer
	background *Layer
	lock       *Layer
	fade       *Layer // debug-overlay layer, spec §4.14; always on top.

	// order is the current global Z-order, top layer first (excluding the
	// fade layer, which always renders above everything regardless of
	// lock state — it exists purely to visualize repaint damage).
	order []*Layer
}

// NewLayerStack builds the named layers in their default (unlocked)
// global order: fullscreen above panel above toplevel above background.
// The lock layer starts spliced out.
func NewLayerStack() *LayerStack {
	ls := &LayerStack{
		fullscreen: newLayer("fullscreen"),
		panel:      newLayer("panel"),
		toplevel:   newLayer("toplevel"),
		background: newLayer("background"),
		lock:       newLayer("lock"),
		fade:       newLayer("fade"),
	}
	ls.order = []*Layer{ls.fullscreen, ls.panel, ls.toplevel, ls.background}
	return ls
}

// Order returns the current global Z-order, top layer first, including
// the always-on-top fade layer.
func (ls *LayerStack) Order() []*Layer {
	return append([]*Layer{ls.fade}, ls.order...)
}

// Locked reports whether the lock layer is currently spliced into the
// global order (i.e. the desktop is locked).
func (ls *LayerStack) Locked() bool {
	return ls.contains(ls.lock)
}

func (ls *LayerStack) contains(l *Layer) bool {
	for _, o := range ls.order {
		if o == l {
			return true
		}
	}
	return false
}

// spliceOutDesktop removes panel, toplevel, and fullscreen from the
// global order, and splices the lock layer in above everything else
// (above "cursor", per spec §4.10 — this module has no separate cursor
// layer object, so "above cursor" means "at the top of the non-fade
// order").
func (ls *LayerStack) spliceOutDesktop() {
	kept := make([]*Layer, 0, len(ls.order))
	for _, l := range ls.order {
		if l == ls.panel || l == ls.toplevel || l == ls.fullscreen {
			continue
		}
		kept = append(kept, l)
	}
	ls.order = append([]*Layer{ls.lock}, kept...)
}

// spliceInDesktop reverses spliceOutDesktop, restoring panel, toplevel,
// and fullscreen to their default relative order and removing lock.
func (ls *LayerStack) spliceInDesktop() {
	kept := make([]*Layer, 0, len(ls.order))
	for _, l := range ls.order {
		if l == ls.lock {
			continue
		}
		kept = append(kept, l)
	}
	ls.order = append([]*Layer{ls.fullscreen, ls.panel, ls.toplevel}, kept...)
}
