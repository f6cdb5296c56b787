package deskshell

import "github.com/oxwm/deskshell/compositor"

// SetToplevel implements the wl_shell_surface.set_toplevel request,
// spec §4.1/§6.
func (ss *ShellSurface) SetToplevel() error {
	if err := ss.beginRole(RoleToplevel); err != nil {
		return err
	}
	ss.shell.placeToplevel(ss)
	ss.shell.activateIfUnlocked(ss)
	return nil
}

// SetTransient implements wl_shell_surface.set_transient.
func (ss *ShellSurface) SetTransient(parent *ShellSurface, x, y int, flags uint32) error {
	if err := ss.beginRole(RoleTransient); err != nil {
		return err
	}
	ss.parent = parent
	ss.shell.placeTransient(ss, x, y)
	ss.shell.activateIfUnlocked(ss)
	return nil
}

// SetPopup implements wl_shell_surface.set_popup. Grab installation is
// deferred to the map hook, spec §4.6: "Installed by the shell on map of
// a popup-role surface".
func (ss *ShellSurface) SetPopup(input compositor.InputDevice, time uint32, parent *ShellSurface, x, y int, flags uint32) error {
	if err := ss.beginRole(RolePopup); err != nil {
		return err
	}
	ss.parent = parent
	ss.popup = &PopupState{
		Device:     input,
		AnchorTime: time,
		LocalX:     x,
		LocalY:     y,
	}
	return nil
}

// SetFullscreen implements wl_shell_surface.set_fullscreen. It prepares
// fullscreen state and sends the target-size configure event; actual
// placement (§4.5) happens on map or on the client's next commit
// (§4.12 configure hook).
func (ss *ShellSurface) SetFullscreen(method FullscreenMethod, framerate uint32, output compositor.Output) error {
	if err := ss.beginRole(RoleFullscreen); err != nil {
		return err
	}
	if output == nil {
		output = ss.shell.comp.DefaultOutput()
	}
	ss.fullscreenOutput = output
	ss.saveGeometry()
	ss.fullscreen = &FullscreenState{Method: method, Framerate: framerate}
	mode := output.CurrentMode()
	ss.client.SendConfigure(0, 0, mode.Width, mode.Height)
	return nil
}

// SetMaximized implements wl_shell_surface.set_maximized.
func (ss *ShellSurface) SetMaximized(output compositor.Output) error {
	if err := ss.beginRole(RoleMaximized); err != nil {
		return err
	}
	if output == nil {
		output = ss.shell.comp.DefaultOutput()
	}
	ss.output = output
	ss.saveGeometry()
	geom := output.Geometry()
	w, h := geom.Dx(), geom.Dy()-output.PanelHeight()
	ss.client.SendConfigure(0, uint32(edgesTopLeft), w, h)
	return nil
}

// SetBackground implements desktop_shell.set_background (helper-only).
// Binding a new background on an occupied output evicts the old one,
// spec invariant 5.
func (ss *ShellSurface) SetBackground(output compositor.Output) error {
	if err := ss.beginRole(RoleBackground); err != nil {
		return err
	}
	ss.output = output
	if existing := ss.shell.backgroundFor(output); existing != nil && existing != ss {
		ss.shell.detachBackground(existing)
	}
	ss.shell.backgrounds = append(ss.shell.backgrounds, ss)
	ss.shell.placeBackground(ss)
	return nil
}

// SetPanel implements desktop_shell.set_panel (helper-only).
func (ss *ShellSurface) SetPanel(output compositor.Output) error {
	if err := ss.beginRole(RolePanel); err != nil {
		return err
	}
	ss.output = output
	if existing := ss.shell.panelFor(output); existing != nil && existing != ss {
		ss.shell.detachPanel(existing)
	}
	ss.shell.panels = append(ss.shell.panels, ss)
	ss.shell.placePanel(ss)
	return nil
}
