package deskshell

import (
	"image"
	"testing"
)

func TestResizeRejectedForFullscreenRole(t *testing.T) {
	sh, comp := newTestShell()
	client := &fakeClient{id: 1}
	ss, _ := addSurface(t, sh, comp, client, 100, 100)
	if err := ss.SetFullscreen(FullscreenDefault, 0, comp.DefaultOutput()); err != nil {
		t.Fatalf("SetFullscreen: %v", err)
	}

	dev := comp.devices[0].(*fakeInputDevice)
	dev.grabSerial = 1
	dev.buttonsDown = 1
	dev.focus = ss.surface

	if err := ss.Resize(dev, 1, EdgeBottom|EdgeRight); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if dev.pointerGrab != nil {
		t.Fatal("resize must be rejected for the fullscreen role")
	}
}

func TestResizeRejectsInvalidEdges(t *testing.T) {
	sh, comp := newTestShell()
	client := &fakeClient{id: 1}
	ss, _ := addSurface(t, sh, comp, client, 100, 100)

	dev := comp.devices[0].(*fakeInputDevice)
	dev.grabSerial = 1
	dev.buttonsDown = 1
	dev.focus = ss.surface

	if err := ss.Resize(dev, 1, EdgeTop|EdgeBottom); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if dev.pointerGrab != nil {
		t.Fatal("opposite edges must be rejected")
	}
}

func TestResizeGrabSendsConfigureWithDerivedSize(t *testing.T) {
	sh, comp := newTestShell()
	client := &fakeClient{id: 1}
	ss, sc := addSurface(t, sh, comp, client, 100, 100)
	ss.surface.SetPosition(0, 0)

	dev := comp.devices[0].(*fakeInputDevice)
	dev.grabSerial = 1
	dev.buttonsDown = 1
	dev.focus = ss.surface
	dev.pos = image.Pt(100, 100)

	if err := ss.Resize(dev, 1, EdgeRight|EdgeBottom); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if dev.pointerGrab == nil {
		t.Fatal("Resize should install a pointer grab")
	}

	dev.pos = image.Pt(140, 125)
	dev.pointerGrab.Motion(dev, 7)

	if sc.configures != 1 {
		t.Fatalf("configures = %d, want 1", sc.configures)
	}
	if sc.lastW != 140 || sc.lastH != 125 {
		t.Fatalf("configure size = (%d,%d), want (140,125)", sc.lastW, sc.lastH)
	}
}
