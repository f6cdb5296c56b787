// Package compositor declares the interfaces the desktop shell consumes
// from its host compositor. The compositor owns display output, surface
// allocation, damage tracking, transform application, input decoding, and
// wire protocol dispatch; this package names only the subset of that
// surface the shell plug-in needs, never its implementation.
package compositor

import "image"

// ClientID identifies a connected wire-protocol client. The zero value
// never names a real client.
type ClientID uint32

// SurfaceID identifies a compositor surface. The zero value never names a
// real surface.
type SurfaceID uint32

// Mode is a physical output's current video mode.
type Mode struct {
	Width, Height int
}

// Output is a physical display the compositor currently drives.
type Output interface {
	// Geometry returns the output's position and size in global coordinates.
	Geometry() image.Rectangle
	// CurrentMode returns the active video mode.
	CurrentMode() Mode
	// PanelHeight returns the height reserved by the panel bound to this
	// output, or 0 if none is bound.
	PanelHeight() int

	// Zoom returns the current magnification level, 1.0 meaning unmagnified.
	Zoom() float64
	// SetZoom sets the magnification level.
	SetZoom(level float64)

	// DPMSStandby reports whether the output is currently in standby.
	DPMSStandby() bool
	// SetDPMS puts the output in standby (true) or wakes it (false).
	SetDPMS(standby bool)

	// Backlight returns the current backlight level, 1-10.
	Backlight() int
	// SetBacklight sets the backlight level, clamped by the caller to 1-10.
	SetBacklight(level int)
}

// Client is a connected wire-protocol client process.
type Client interface {
	ID() ClientID
	Pid() int
	// Kill sends the given signal to the client process.
	Kill(sig int) error
}

// ShellSurfaceClient receives the events the shell sends back to the
// client that owns a shell-surface (the wl_shell "configure" and
// "popup_done" events, and the desktop_shell analogues).
type ShellSurfaceClient interface {
	// SendConfigure delivers a wl_shell_surface.configure or
	// desktop_shell.configure event.
	SendConfigure(time uint32, edges uint32, width, height int)
	// SendPopupDone delivers wl_shell_surface.popup_done.
	SendPopupDone()
}

// Surface is a compositor-owned rectangular client buffer. The shell
// never allocates pixels for one; it only repositions, transforms, and
// stacks the handle the compositor gives it. Surfaces the shell itself
// needs (the fullscreen black backdrop, the debug overlay) are created
// through Compositor.CreateSurface and are Surfaces like any other.
type Surface interface {
	ID() SurfaceID

	// Geometry returns the surface's current position and size.
	Geometry() image.Rectangle
	// SetPosition moves the surface without resizing it.
	SetPosition(x, y int)
	// SetSize resizes a shell-owned surface (the fullscreen black
	// backdrop, the debug overlay) without moving its position. Client
	// surfaces size themselves by attaching a buffer; the shell never
	// calls this on one.
	SetSize(w, h int)

	Output() Output
	SetOutput(o Output)

	// SetTransform installs m as the surface's active transform.
	SetTransform(m Matrix)
	// ClearTransform removes any active transform.
	ClearTransform()

	// SetAlpha sets the surface's blend alpha, 0-255.
	SetAlpha(alpha uint8)

	// SetColor fills a shell-owned surface with a solid color (the
	// fullscreen black backdrop, the debug repaint overlay). Client
	// surfaces ignore it; their pixels come from the client's buffer.
	SetColor(r, g, b, a uint8)

	Damage()
	// OnDestroy registers fn to run exactly once when the surface is
	// destroyed by the client or by the compositor.
	OnDestroy(fn func())

	// Destroy tears down a shell-owned surface (e.g. a black backdrop).
	// Client surfaces are destroyed by the compositor, not the shell.
	Destroy()

	// Client returns the owning wire-protocol client, if the surface
	// belongs to one (shell-owned helper surfaces return nil).
	Client() Client
}

// PointerGrab is installed on an InputDevice and intercepts pointer input
// until released. Exactly one may be active per device.
type PointerGrab interface {
	// Focus is called whenever the compositor would otherwise update
	// pointer focus; a grab may choose to override or ignore it.
	Focus(dev InputDevice)
	Motion(dev InputDevice, time uint32)
	Button(dev InputDevice, time uint32, button uint32, pressed bool)
}

// KeyboardGrab is installed on an InputDevice and intercepts key input
// until released. Exactly one may be active per device.
type KeyboardGrab interface {
	Key(dev InputDevice, time uint32, key uint32, pressed bool)
	// ModifiersChanged is called whenever the device's modifier mask
	// changes; grabs use this to detect the releasing modifier going up.
	ModifiersChanged(dev InputDevice, mods uint32)
}

// InputDevice is a seat's pointer+keyboard pair.
type InputDevice interface {
	// PointerPosition returns the pointer's current position in global
	// coordinates.
	PointerPosition() image.Point
	// PointerFocus returns the surface currently under the pointer,
	// ignoring any active grab.
	PointerFocus() Surface
	SetPointerFocus(s Surface)

	// ButtonsPressed reports how many pointer buttons are currently held.
	ButtonsPressed() int

	// GrabTime returns the serial of the device's most recent
	// button-press or key-press event, used to validate timed client
	// requests (move/resize) against stale input.
	GrabTime() uint32

	StartPointerGrab(g PointerGrab)
	EndPointerGrab()
	ActivePointerGrab() PointerGrab

	StartKeyboardGrab(g KeyboardGrab)
	EndKeyboardGrab()
	ActiveKeyboardGrab() KeyboardGrab

	SetKeyboardFocus(s Surface)

	// ToSurfaceLocal converts a global point to surface-local coordinates,
	// accounting for the surface's position and active transform.
	ToSurfaceLocal(s Surface, p image.Point) image.Point
	// ToGlobal converts a surface-local point to global coordinates.
	ToGlobal(s Surface, p image.Point) image.Point
}

// HelperEvents is implemented by the privileged helper client connection
// to receive desktop_shell events that aren't tied to any one surface
// (prepare_lock_surface, spec §6/§4.10).
type HelperEvents interface {
	SendPrepareLockSurface()
}

// Compositor is the host the shell plug-in runs inside.
type Compositor interface {
	Outputs() []Output
	DefaultOutput() Output
	// OutputAt returns the output containing p, or DefaultOutput() if none
	// does.
	OutputAt(p image.Point) Output

	// InputDevices returns every seat's pointer+keyboard pair, used to
	// reset focus across all seats on lock, spec §4.10.
	InputDevices() []InputDevice

	// CreateSurface allocates a compositor-owned surface for the shell's
	// own use (black backdrops, debug overlays). It is never delivered to
	// a client.
	CreateSurface() Surface

	ScheduleRepaint()
	DamageAll()

	// ZoomInSurface requests a single zoom-in visual effect from `from`
	// to `to` magnification on s, spec §4.13's toplevel-map effect. The
	// compositor owns the animation curve entirely; the shell only
	// triggers it once.
	ZoomInSurface(s Surface, from, to float64)

	// LaunchClient forks and execs path, returning a handle to the new
	// privileged client. onExit is invoked exactly once, on the event
	// loop, when the process exits.
	LaunchClient(path string, onExit func(pid int, exitErr error)) (Client, error)

	IdleTime() int
	SetIdleTime(seconds int)
	// WakeIdle resets the idle timer as if input had just occurred.
	WakeIdle()

	Shutdown()

	// BindGlobal records which ClientID, if any, is allowed to bind a
	// privileged global (desktop_shell, screensaver). A zero ClientID
	// means unrestricted.
	BindGlobal(name string, restrictTo ClientID)
}
