package deskshell

import "testing"

func TestSwitcherGrabAdvancesAndDims(t *testing.T) {
	sh, comp := newTestShell()
	client := &fakeClient{id: 1}
	a, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = a.SetToplevel()
	sh.Map(a, 50, 50, 0, 0)
	b, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = b.SetToplevel()
	sh.Map(b, 50, 50, 0, 0)

	dev := comp.devices[0].(*fakeInputDevice)
	startSwitcherGrab(sh, dev, uint32(ModSuper))
	if dev.keyboardGrab == nil {
		t.Fatal("startSwitcherGrab should install a keyboard grab")
	}
	grab := dev.keyboardGrab.(*switcherGrab)

	// b was inserted on top of the toplevel layer, so it's eligible[0].
	if grab.eligible[grab.current].surface.(*fakeSurface).alpha != 255 {
		t.Fatal("current surface should be fully opaque")
	}
	for i, ss := range grab.eligible {
		if i == grab.current {
			continue
		}
		if ss.surface.(*fakeSurface).alpha != switcherDimAlpha {
			t.Fatalf("non-current surface alpha = %d, want %d", ss.surface.(*fakeSurface).alpha, switcherDimAlpha)
		}
	}

	before := grab.current
	grab.Key(dev, 0, KeyTab, true)
	if grab.current == before {
		t.Fatal("Tab press should advance the current index")
	}
}

func TestSwitcherGrabReleaseRestoresAlphasAndActivates(t *testing.T) {
	sh, comp := newTestShell()
	client := &fakeClient{id: 1}
	a, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = a.SetToplevel()
	sh.Map(a, 50, 50, 0, 0)

	dev := comp.devices[0].(*fakeInputDevice)
	startSwitcherGrab(sh, dev, uint32(ModSuper))
	grab := dev.keyboardGrab.(*switcherGrab)

	grab.ModifiersChanged(dev, 0) // modifier dropped
	if dev.keyboardGrab != nil {
		t.Fatal("releasing the modifier should end the switcher grab")
	}
	if a.surface.(*fakeSurface).alpha != 255 {
		t.Fatal("release should restore full opacity")
	}
}

func TestSwitcherGrabHandlesEmptyEligibleList(t *testing.T) {
	sh, comp := newTestShell()
	dev := comp.devices[0].(*fakeInputDevice)
	startSwitcherGrab(sh, dev, uint32(ModSuper))
	grab := dev.keyboardGrab.(*switcherGrab)

	if grab.current != -1 {
		t.Fatalf("current = %d, want -1 with no eligible surfaces", grab.current)
	}
	// Must not panic on Tab or release with nothing eligible.
	grab.Key(dev, 0, KeyTab, true)
	grab.ModifiersChanged(dev, 0)
}

func TestSwitcherGrabAdvancesOnCurrentDestroyed(t *testing.T) {
	sh, comp := newTestShell()
	client := &fakeClient{id: 1}
	a, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = a.SetToplevel()
	sh.Map(a, 50, 50, 0, 0)
	b, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = b.SetToplevel()
	sh.Map(b, 50, 50, 0, 0)

	dev := comp.devices[0].(*fakeInputDevice)
	startSwitcherGrab(sh, dev, uint32(ModSuper))
	grab := dev.keyboardGrab.(*switcherGrab)
	current := grab.eligible[grab.current]

	current.surface.(*fakeSurface).Destroy()

	if len(grab.eligible) != 1 {
		t.Fatalf("eligible list should shrink to 1, got %d", len(grab.eligible))
	}
	if grab.current != 0 {
		t.Fatalf("current should clamp back to 0, got %d", grab.current)
	}
}

func TestSwitcherGrabExcludesTransientsAndPopups(t *testing.T) {
	sh, comp := newTestShell()
	client := &fakeClient{id: 1}
	parent, _ := addSurface(t, sh, comp, client, 100, 100)
	_ = parent.SetToplevel()
	sh.Map(parent, 100, 100, 0, 0)

	transient, _ := addSurface(t, sh, comp, client, 50, 50)
	if err := transient.SetTransient(parent, 5, 5, 0); err != nil {
		t.Fatalf("SetTransient: %v", err)
	}
	sh.Map(transient, 50, 50, 0, 0)

	dev := comp.devices[0].(*fakeInputDevice)
	startSwitcherGrab(sh, dev, uint32(ModSuper))
	grab := dev.keyboardGrab.(*switcherGrab)

	if len(grab.eligible) != 1 || grab.eligible[0] != parent {
		t.Fatalf("switcher should only see the toplevel, not its transient; eligible = %v", grab.eligible)
	}
}

func TestSwitcherGrabDestroyingEarlierSurfaceKeepsCurrentPointingAtSameSurface(t *testing.T) {
	sh, comp := newTestShell()
	client := &fakeClient{id: 1}
	a, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = a.SetToplevel()
	sh.Map(a, 50, 50, 0, 0)
	b, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = b.SetToplevel()
	sh.Map(b, 50, 50, 0, 0)
	c, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = c.SetToplevel()
	sh.Map(c, 50, 50, 0, 0)

	dev := comp.devices[0].(*fakeInputDevice)
	startSwitcherGrab(sh, dev, uint32(ModSuper))
	grab := dev.keyboardGrab.(*switcherGrab)

	// Advance twice so current sits on the third distinct surface, then
	// destroy the first (index 0, strictly before current).
	grab.Key(dev, 0, KeyTab, true)
	grab.Key(dev, 0, KeyTab, true)
	wantSurface := grab.eligible[grab.current]

	grab.eligible[0].surface.(*fakeSurface).Destroy()

	if grab.eligible[grab.current] != wantSurface {
		t.Fatalf("current should still point at the same surface after an earlier one was destroyed, got a different surface")
	}
}

func TestSwitcherGrabDoesNotResubscribeOnRevisit(t *testing.T) {
	sh, comp := newTestShell()
	client := &fakeClient{id: 1}
	a, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = a.SetToplevel()
	sh.Map(a, 50, 50, 0, 0)
	b, _ := addSurface(t, sh, comp, client, 50, 50)
	_ = b.SetToplevel()
	sh.Map(b, 50, 50, 0, 0)

	dev := comp.devices[0].(*fakeInputDevice)
	startSwitcherGrab(sh, dev, uint32(ModSuper))
	grab := dev.keyboardGrab.(*switcherGrab)

	// A full lap (2 eligible surfaces, 2 Tab presses) revisits the
	// surface that was already current at grab start.
	grab.Key(dev, 0, KeyTab, true)
	grab.Key(dev, 0, KeyTab, true)

	// Each surface always carries the shell's own table-cleanup callback
	// from GetShellSurface, plus (after becoming current) exactly one from
	// the switcher grab: 2 total, not a growing count on revisit.
	for _, ss := range grab.eligible {
		if fs := ss.surface.(*fakeSurface); len(fs.destroyFns) != 2 {
			t.Fatalf("surface %d has %d destroy callbacks registered, want exactly 2", fs.ID(), len(fs.destroyFns))
		}
	}
}
