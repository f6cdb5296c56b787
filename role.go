package deskshell

import "github.com/oxwm/deskshell/compositor"

// Role is the closed set of functions a shell-surface can serve, drawn
// from spec §3. It is a tagged variant, not a type hierarchy: role-
// specific state lives in the pointer fields below and only the field
// matching the current Role is meaningful.
type Role int

const (
	RoleNone Role = iota
	RoleToplevel
	RoleTransient
	RolePopup
	RoleFullscreen
	RoleMaximized
	RolePanel
	RoleBackground
	RoleLock
	RoleScreensaver
)

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleToplevel:
		return "toplevel"
	case RoleTransient:
		return "transient"
	case RolePopup:
		return "popup"
	case RoleFullscreen:
		return "fullscreen"
	case RoleMaximized:
		return "maximized"
	case RolePanel:
		return "panel"
	case RoleBackground:
		return "background"
	case RoleLock:
		return "lock"
	case RoleScreensaver:
		return "screensaver"
	default:
		return "unknown"
	}
}

// FullscreenMethod selects how a fullscreen surface's geometry is made to
// fill the output, spec §4.5.
type FullscreenMethod int

const (
	FullscreenDefault FullscreenMethod = iota
	FullscreenScale
	FullscreenDriver
	FullscreenFill
)

// RotationState is the rotate grab's persistent, per-surface state,
// spec §3/§4.8: the committed rotation folded in by the last completed
// grab, plus whether a transform is currently installed on the surface.
type RotationState struct {
	Committed compositor.Matrix
	Installed bool
}

// PopupState is a popup-role surface's grab bookkeeping, spec §3/§4.6.
type PopupState struct {
	Device          compositor.InputDevice
	Grab            *PopupGrab
	AnchorTime      uint32
	ParentTransform compositor.Matrix
	InitialUpSeen   bool
	LocalX, LocalY  int
}

// FullscreenState is a fullscreen-role surface's placement bookkeeping,
// spec §3/§4.5.
type FullscreenState struct {
	Method             FullscreenMethod
	Framerate          uint32
	Black              compositor.Surface
	blackMember        *satellite
	TransformInstalled bool
}

// ShellSurface is the shell-side role record attached to a compositor
// surface on an explicit get_shell_surface request, spec §3.
type ShellSurface struct {
	shell   *Shell
	surface compositor.Surface
	client  compositor.ShellSurfaceClient

	parent *ShellSurface
	role   Role

	savedX, savedY     int
	savedPositionValid bool

	rotation RotationState

	popup      *PopupState
	fullscreen *FullscreenState

	output           compositor.Output
	fullscreenOutput compositor.Output

	layer *Layer
}

// Role returns the surface's current role.
func (ss *ShellSurface) Role() Role { return ss.role }

// Surface returns the underlying compositor surface.
func (ss *ShellSurface) Surface() compositor.Surface { return ss.surface }

// Parent returns the transient/popup parent, or nil.
func (ss *ShellSurface) Parent() *ShellSurface { return ss.parent }

// HasBlackBackdrop reports whether a fullscreen-role surface currently
// has its black backdrop allocated, spec invariant 2.
func (ss *ShellSurface) HasBlackBackdrop() bool {
	return ss.fullscreen != nil && ss.fullscreen.Black != nil
}

// saveGeometry captures the current position as the one to restore when
// leaving fullscreen or maximized, spec invariant 3.
func (ss *ShellSurface) saveGeometry() {
	if ss.savedPositionValid {
		return
	}
	g := ss.surface.Geometry()
	ss.savedX, ss.savedY = g.Min.X, g.Min.Y
	ss.savedPositionValid = true
}

// restoreGeometry restores the position saved by saveGeometry, consuming
// it: a later non-fullscreen/maximized transition does not re-apply it.
func (ss *ShellSurface) restoreGeometry() {
	if !ss.savedPositionValid {
		return
	}
	ss.surface.SetPosition(ss.savedX, ss.savedY)
	ss.savedPositionValid = false
}

// resetRole runs the reset protocol that precedes every public role
// transition, spec §4.1. It must be called before mutating ss.role.
func (ss *ShellSurface) resetRole() error {
	switch ss.role {
	case RoleLock, RoleScreensaver:
		return protoErr(ErrCannotReassignSurface, "surface %d has role %s", ss.surface.ID(), ss.role)
	case RoleFullscreen:
		ss.surface.ClearTransform()
		if ss.fullscreen != nil && ss.fullscreen.Black != nil {
			if ss.fullscreen.blackMember != nil {
				ss.shell.layers.fullscreen.remove(ss.fullscreen.blackMember)
			}
			ss.fullscreen.Black.Destroy()
		}
		ss.fullscreen = nil
		ss.fullscreenOutput = nil
		ss.restoreGeometry()
	case RoleMaximized:
		ss.output = nil
		ss.restoreGeometry()
	case RolePanel:
		ss.shell.detachPanel(ss)
	case RoleBackground:
		ss.shell.detachBackground(ss)
	default:
		// RoleNone, RoleToplevel, RoleTransient, RolePopup: no side effect.
	}
	ss.role = RoleNone
	return nil
}

// beginRole clears the previous role via resetRole and sets the new one.
// Callers then populate role-specific state and call the shell's map/
// stacking logic.
func (ss *ShellSurface) beginRole(r Role) error {
	if err := ss.resetRole(); err != nil {
		return err
	}
	ss.role = r
	return nil
}
