package deskshell

import "fmt"

// ProtocolError is a client-visible protocol violation: the caller is
// expected to post it back to the offending client resource and destroy
// that resource, per spec §7. It is never raised for shell-internal bugs.
type ProtocolError struct {
	Code    string
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Stable protocol error codes, spec §7.
const (
	ErrAlreadyRequested       = "already requested"
	ErrCannotReassignSurface  = "cannot reassign surface type"
	ErrDesktopShellPermission = "permission to bind desktop_shell denied"
	ErrInterfaceAlreadyBound  = "interface object already bound"
)

func protoErr(code, format string, args ...any) *ProtocolError {
	return &ProtocolError{Code: code, Message: fmt.Sprintf(format, args...)}
}
