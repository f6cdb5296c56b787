package deskshell

import "github.com/oxwm/deskshell/compositor"

// BindDesktopShell implements the privileged-binding gate of spec §4.11
// for the desktop_shell global: only the recorded helper client may bind
// it; anyone else gets a protocol error and should have their resource
// destroyed by the caller.
func (sh *Shell) BindDesktopShell(client compositor.Client) error {
	if !sh.lockState.helper.isHelper(client) {
		return protoErr(ErrDesktopShellPermission, "client %d is not the shell helper", client.ID())
	}
	return nil
}

// BindScreensaver implements the privileged-binding gate for the
// screensaver global: helper-only, and singleton — a second bind attempt
// fails even from the helper itself, spec §6/§7.
func (sh *Shell) BindScreensaver(client compositor.Client) error {
	if sh.lockState.screensaverBound {
		return protoErr(ErrInterfaceAlreadyBound, "screensaver already bound")
	}
	if !sh.lockState.helper.isHelper(client) {
		return protoErr(ErrDesktopShellPermission, "client %d is not the shell helper", client.ID())
	}
	sh.lockState.screensaverBound = true
	return nil
}
