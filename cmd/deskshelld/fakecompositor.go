package main

import (
	"image"

	"github.com/oxwm/deskshell/compositor"
)

// This file implements a minimal, entirely in-memory compositor.Compositor
// so the daemon binary can exercise the shell's map/configure/grab/lock
// sequences without a real display server. It owns no pixels: geometry is
// tracked, damage and repaint are logged, transforms and colors are
// recorded but never rasterized. It exists for this demo only — a real
// deployment links the shell against its own compositor's implementation
// of these interfaces.

type fakeOutput struct {
	geom  image.Rectangle
	mode  compositor.Mode
	panel int

	zoom    float64
	standby bool
	backlit int
}

func (o *fakeOutput) Geometry() image.Rectangle   { return o.geom }
func (o *fakeOutput) CurrentMode() compositor.Mode { return o.mode }
func (o *fakeOutput) PanelHeight() int             { return o.panel }
func (o *fakeOutput) Zoom() float64                { return o.zoom }
func (o *fakeOutput) SetZoom(level float64)        { o.zoom = level }
func (o *fakeOutput) DPMSStandby() bool            { return o.standby }
func (o *fakeOutput) SetDPMS(standby bool)         { o.standby = standby }
func (o *fakeOutput) Backlight() int               { return o.backlit }
func (o *fakeOutput) SetBacklight(level int)       { o.backlit = level }

type fakeClient struct {
	id  compositor.ClientID
	pid int
}

func (c *fakeClient) ID() compositor.ClientID  { return c.id }
func (c *fakeClient) Pid() int                 { return c.pid }
func (c *fakeClient) Kill(sig int) error       { return nil }

type destroyHook struct {
	fns []func()
}

func (d *destroyHook) add(fn func())  { d.fns = append(d.fns, fn) }
func (d *destroyHook) fire()          {
	for _, fn := range d.fns {
		fn()
	}
	d.fns = nil
}

type fakeSurface struct {
	id     compositor.SurfaceID
	geom   image.Rectangle
	output compositor.Output
	client compositor.Client

	transform compositor.Matrix
	alpha     uint8
	color     [4]uint8

	destroy destroyHook
}

func (s *fakeSurface) ID() compositor.SurfaceID          { return s.id }
func (s *fakeSurface) Geometry() image.Rectangle          { return s.geom }
func (s *fakeSurface) SetPosition(x, y int) {
	s.geom = image.Rect(x, y, x+s.geom.Dx(), y+s.geom.Dy())
}
func (s *fakeSurface) SetSize(w, h int) {
	s.geom = image.Rect(s.geom.Min.X, s.geom.Min.Y, s.geom.Min.X+w, s.geom.Min.Y+h)
}
func (s *fakeSurface) Output() compositor.Output    { return s.output }
func (s *fakeSurface) SetOutput(o compositor.Output) { s.output = o }
func (s *fakeSurface) SetTransform(m compositor.Matrix) { s.transform = m }
func (s *fakeSurface) ClearTransform()                  { s.transform = compositor.Identity() }
func (s *fakeSurface) SetAlpha(a uint8)                 { s.alpha = a }
func (s *fakeSurface) SetColor(r, g, b, a uint8)        { s.color = [4]uint8{r, g, b, a} }
func (s *fakeSurface) Damage()                          {}
func (s *fakeSurface) OnDestroy(fn func())              { s.destroy.add(fn) }
func (s *fakeSurface) Destroy()                         { s.destroy.fire() }
func (s *fakeSurface) Client() compositor.Client        { return s.client }

type fakeInputDevice struct {
	pos           image.Point
	focus         compositor.Surface
	buttonsDown   int
	grabSerial    uint32
	pointerGrab   compositor.PointerGrab
	keyboardGrab  compositor.KeyboardGrab
	keyboardFocus compositor.Surface
}

func (d *fakeInputDevice) PointerPosition() image.Point { return d.pos }
func (d *fakeInputDevice) PointerFocus() compositor.Surface { return d.focus }
func (d *fakeInputDevice) SetPointerFocus(s compositor.Surface) { d.focus = s }
func (d *fakeInputDevice) ButtonsPressed() int { return d.buttonsDown }
func (d *fakeInputDevice) GrabTime() uint32    { return d.grabSerial }

func (d *fakeInputDevice) StartPointerGrab(g compositor.PointerGrab) { d.pointerGrab = g }
func (d *fakeInputDevice) EndPointerGrab()                           { d.pointerGrab = nil }
func (d *fakeInputDevice) ActivePointerGrab() compositor.PointerGrab { return d.pointerGrab }

func (d *fakeInputDevice) StartKeyboardGrab(g compositor.KeyboardGrab) { d.keyboardGrab = g }
func (d *fakeInputDevice) EndKeyboardGrab()                            { d.keyboardGrab = nil }
func (d *fakeInputDevice) ActiveKeyboardGrab() compositor.KeyboardGrab { return d.keyboardGrab }

func (d *fakeInputDevice) SetKeyboardFocus(s compositor.Surface) { d.keyboardFocus = s }

// ToSurfaceLocal and ToGlobal ignore the surface's transform: this demo
// never drives a rotated resize or rotate-grab-under-popup scenario, and
// a faithful transform-aware mapping belongs to the real compositor this
// stands in for.
func (d *fakeInputDevice) ToSurfaceLocal(s compositor.Surface, p image.Point) image.Point {
	g := s.Geometry()
	return image.Pt(p.X-g.Min.X, p.Y-g.Min.Y)
}

func (d *fakeInputDevice) ToGlobal(s compositor.Surface, p image.Point) image.Point {
	g := s.Geometry()
	return image.Pt(p.X+g.Min.X, p.Y+g.Min.Y)
}

// fakeCompositor is the demo's entire compositor.Compositor implementation.
type fakeCompositor struct {
	outputs []compositor.Output
	devices []compositor.InputDevice

	idleTime int
	nextID   compositor.SurfaceID

	shutdownRequested bool
	launches          []string
}

func newFakeCompositor() *fakeCompositor {
	out := &fakeOutput{
		geom:    image.Rect(0, 0, 1920, 1080),
		mode:    compositor.Mode{Width: 1920, Height: 1080},
		panel:   24,
		zoom:    1.0,
		backlit: 8,
	}
	return &fakeCompositor{
		outputs: []compositor.Output{out},
		devices: []compositor.InputDevice{&fakeInputDevice{pos: image.Pt(100, 100)}},
	}
}

func (c *fakeCompositor) Outputs() []compositor.Output { return c.outputs }
func (c *fakeCompositor) DefaultOutput() compositor.Output {
	if len(c.outputs) == 0 {
		return nil
	}
	return c.outputs[0]
}

func (c *fakeCompositor) OutputAt(p image.Point) compositor.Output {
	for _, o := range c.outputs {
		if p.In(o.Geometry()) {
			return o
		}
	}
	return c.DefaultOutput()
}

func (c *fakeCompositor) InputDevices() []compositor.InputDevice { return c.devices }

func (c *fakeCompositor) CreateSurface() compositor.Surface {
	c.nextID++
	return &fakeSurface{id: c.nextID, geom: image.Rect(0, 0, 1, 1)}
}

func (c *fakeCompositor) ScheduleRepaint()         {}
func (c *fakeCompositor) DamageAll()               {}
func (c *fakeCompositor) ZoomInSurface(s compositor.Surface, from, to float64) {}

func (c *fakeCompositor) LaunchClient(path string, onExit func(pid int, exitErr error)) (compositor.Client, error) {
	c.launches = append(c.launches, path)
	c.nextID++
	return &fakeClient{id: compositor.ClientID(c.nextID), pid: 1000 + int(c.nextID)}, nil
}

func (c *fakeCompositor) IdleTime() int          { return c.idleTime }
func (c *fakeCompositor) SetIdleTime(seconds int) { c.idleTime = seconds }
func (c *fakeCompositor) WakeIdle()               {}

func (c *fakeCompositor) Shutdown() { c.shutdownRequested = true }

func (c *fakeCompositor) BindGlobal(name string, restrictTo compositor.ClientID) {}

// newClientSurface creates a surface plus the compositor.ShellSurfaceClient
// stub it's delivered to, the pairing a real wl_shell.get_shell_surface
// request produces.
func (c *fakeCompositor) newClientSurface(owner compositor.Client) (compositor.Surface, *fakeShellClient) {
	c.nextID++
	s := &fakeSurface{id: c.nextID, geom: image.Rect(0, 0, 100, 100), client: owner}
	return s, &fakeShellClient{}
}

// fakeShellClient is the demo's compositor.ShellSurfaceClient: it just
// records the events the shell sent so the demo can log them.
type fakeShellClient struct {
	configures []string
	popupDones int
}

func (c *fakeShellClient) SendConfigure(time, edges uint32, width, height int) {
	c.configures = append(c.configures, "configure")
}
func (c *fakeShellClient) SendPopupDone() { c.popupDones++ }
