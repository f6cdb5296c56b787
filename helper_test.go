package deskshell

import "testing"

func TestHelperSupervisorRespawnsWithinWindow(t *testing.T) {
	sh, _ := newTestShell()
	h := sh.lockState.helper
	if err := h.launch("/usr/libexec/helper"); err != nil {
		t.Fatalf("launch: %v", err)
	}
	first := h.client()
	if first == nil {
		t.Fatal("launch should record a client")
	}

	h.onExit(first.Pid(), nil)

	if h.gaveUp {
		t.Fatal("a single crash must not exhaust the leaky bucket")
	}
	if h.client() == nil {
		t.Fatal("onExit should respawn the helper within the death window")
	}
}

func TestHelperSupervisorRebindsGlobalsOnRespawn(t *testing.T) {
	sh, comp := newTestShell()
	h := sh.lockState.helper
	if err := h.launch("/usr/libexec/helper"); err != nil {
		t.Fatalf("launch: %v", err)
	}
	original := h.client().ID()

	h.onExit(h.client().Pid(), nil)

	respawned := h.client().ID()
	if respawned == original {
		t.Fatal("the fake compositor should hand the respawned client a new ID")
	}
	if comp.boundGlobals["desktop_shell"] != respawned {
		t.Fatalf("desktop_shell bound to %v, want the respawned client %v", comp.boundGlobals["desktop_shell"], respawned)
	}
	if comp.boundGlobals["screensaver"] != respawned {
		t.Fatalf("screensaver bound to %v, want the respawned client %v", comp.boundGlobals["screensaver"], respawned)
	}
}

func TestHelperSupervisorGivesUpAfterSixDeathsInWindow(t *testing.T) {
	sh, _ := newTestShell()
	h := sh.lockState.helper
	if err := h.launch("/usr/libexec/helper"); err != nil {
		t.Fatalf("launch: %v", err)
	}

	// 6 deaths within the 30s window: deaths 1-5 respawn, the 6th gives up.
	for i := 0; i < 5; i++ {
		pid := h.client().Pid()
		h.onExit(pid, nil)
		if h.gaveUp {
			t.Fatalf("gave up after only %d deaths, want 5 tolerated", i+1)
		}
		if h.client() == nil {
			t.Fatalf("death %d should have respawned", i+1)
		}
	}

	h.onExit(h.client().Pid(), nil)
	if !h.gaveUp {
		t.Fatal("the 6th death within the window should exhaust the leaky bucket")
	}
	if h.client() != nil {
		t.Fatal("a given-up supervisor must not respawn")
	}
}

func TestHelperSupervisorResetsWindowAfterDeathWindowElapses(t *testing.T) {
	sh, _ := newTestShell()
	h := sh.lockState.helper
	if err := h.launch("/usr/libexec/helper"); err != nil {
		t.Fatalf("launch: %v", err)
	}
	h.deathCount = 5
	h.firstDeathAt = h.firstDeathAt.Add(-deathWindow * 2) // force it stale by hand.

	h.onExit(h.client().Pid(), nil)

	if h.gaveUp {
		t.Fatal("a death after the window elapsed should reset the count, not give up")
	}
	if h.deathCount != 1 {
		t.Fatalf("deathCount = %d, want reset to 1", h.deathCount)
	}
}

func TestHelperSupervisorIsHelperIdentifiesOnlyCurrentClient(t *testing.T) {
	sh, _ := newTestShell()
	h := sh.lockState.helper
	if h.isHelper(&fakeClient{id: 1}) {
		t.Fatal("isHelper must be false before any helper is launched")
	}
	if err := h.launch("/usr/libexec/helper"); err != nil {
		t.Fatalf("launch: %v", err)
	}
	current := h.client()
	if !h.isHelper(current) {
		t.Fatal("isHelper must be true for the current helper client")
	}
	if h.isHelper(&fakeClient{id: current.ID() + 100}) {
		t.Fatal("isHelper must be false for an unrelated client")
	}
}
