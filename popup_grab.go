package deskshell

import (
	"time"

	"github.com/oxwm/deskshell/compositor"
)

// popupInitialUpGrace is the window, from grab start, during which a
// button release on a non-owner surface does not by itself terminate the
// popup if no release has been seen yet, spec §4.6.
const popupInitialUpGrace = 500 * time.Millisecond

// PopupGrab implements spec §4.6: routes pointer input to whichever
// surface of the popup's owning client currently has the pointer,
// suppressing events to (and nulling focus for) every other client, and
// terminates on the release rules spelled out there.
type PopupGrab struct {
	ss          *ShellSurface
	dev         compositor.InputDevice
	ownerClient compositor.ClientID
	started     time.Time
}

// Focus enforces the owner-only routing rule: if the pointer is over a
// surface belonging to a different client (or no surface at all), the
// compositor is told focus is null rather than letting it resolve
// normally.
func (g *PopupGrab) Focus(dev compositor.InputDevice) {
	focus := dev.PointerFocus()
	if focus == nil || focus.Client() == nil || focus.Client().ID() != g.ownerClient {
		dev.SetPointerFocus(nil)
	}
}

// Motion is a no-op: once Focus has restricted pointer focus to the
// owning client (or null), the compositor's normal motion dispatch to
// the focused surface already implements the routing, spec §4.6.
func (g *PopupGrab) Motion(dev compositor.InputDevice, time uint32) {}

func (g *PopupGrab) Button(dev compositor.InputDevice, time uint32, button uint32, pressed bool) {
	if pressed {
		return
	}
	focus := dev.PointerFocus()
	onOwner := focus != nil && focus.Client() != nil && focus.Client().ID() == g.ownerClient
	pastGrace := stdnow().Sub(g.started) >= popupInitialUpGrace

	if !onOwner && (g.ss.popup.InitialUpSeen || pastGrace) {
		g.terminate()
		return
	}
	g.ss.popup.InitialUpSeen = true
}

// terminate sends popup_done and releases the pointer grab, spec §4.6.
func (g *PopupGrab) terminate() {
	g.ss.client.SendPopupDone()
	g.dev.EndPointerGrab()
	g.ss.popup.Grab = nil
}

// cancel releases the pointer grab without sending popup_done: the
// owning surface resource is already gone, spec §4.6 path (ii).
func (g *PopupGrab) cancel() {
	if g.dev != nil {
		g.dev.EndPointerGrab()
	}
}

// stdnow is indirected so tests can fake elapsed time by constructing a
// PopupGrab with a started timestamp in the past rather than sleeping.
var stdnow = time.Now

// setupPopupGrab implements the popup-map setup of spec §4.6/§4.13:
// snapshot the parent's committed rotation, position the popup by that
// transform, and install the pointer grab.
func (sh *Shell) setupPopupGrab(ss *ShellSurface) {
	if ss.popup == nil {
		return
	}
	if ss.parent != nil {
		ss.popup.ParentTransform = ss.parent.rotation.Committed
	} else {
		ss.popup.ParentTransform = compositor.Identity()
	}
	sh.placePopup(ss)

	if ss.popup.Device == nil {
		return
	}
	var owner compositor.ClientID
	if c := ss.surface.Client(); c != nil {
		owner = c.ID()
	}
	grab := &PopupGrab{ss: ss, dev: ss.popup.Device, ownerClient: owner, started: stdnow()}
	ss.popup.Grab = grab
	ss.popup.Device.StartPointerGrab(grab)
}

// placePopup implements the stacking and transform-following half of
// spec §4.6: stacked immediately below the parent (the general
// popup/transient rule of §4.2), positioned at the parent's origin plus
// the requested local anchor transformed by the parent's committed
// rotation, and carrying that same transform itself so it visually
// follows an already-rotated parent.
func (sh *Shell) placePopup(ss *ShellSurface) {
	sh.stackBelowParent(ss)
	if ss.parent == nil {
		return
	}
	tx, ty := ss.popup.ParentTransform.Apply(float64(ss.popup.LocalX), float64(ss.popup.LocalY))
	pg := ss.parent.surface.Geometry()
	ss.surface.SetPosition(pg.Min.X+int(tx), pg.Min.Y+int(ty))
	if !ss.popup.ParentTransform.IsIdentity() {
		ss.surface.SetTransform(ss.popup.ParentTransform)
	}
}
