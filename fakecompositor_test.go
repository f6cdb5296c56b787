package deskshell

import (
	"image"

	"github.com/oxwm/deskshell/compositor"
)

// Shared fakes for this package's tests: an in-memory stand-in for every
// interface compositor declares, tracking just enough state (geometry,
// alpha, transform, focus, grabs) to assert against.

type fakeOutput struct {
	geom  image.Rectangle
	mode  compositor.Mode
	panel int

	zoom    float64
	standby bool
	backlit int
}

func (o *fakeOutput) Geometry() image.Rectangle    { return o.geom }
func (o *fakeOutput) CurrentMode() compositor.Mode { return o.mode }
func (o *fakeOutput) PanelHeight() int             { return o.panel }
func (o *fakeOutput) Zoom() float64                { return o.zoom }
func (o *fakeOutput) SetZoom(level float64)        { o.zoom = level }
func (o *fakeOutput) DPMSStandby() bool            { return o.standby }
func (o *fakeOutput) SetDPMS(standby bool)         { o.standby = standby }
func (o *fakeOutput) Backlight() int               { return o.backlit }
func (o *fakeOutput) SetBacklight(level int)       { o.backlit = level }

type fakeClient struct {
	id      compositor.ClientID
	pid     int
	killed  []int
}

func (c *fakeClient) ID() compositor.ClientID { return c.id }
func (c *fakeClient) Pid() int                { return c.pid }
func (c *fakeClient) Kill(sig int) error {
	c.killed = append(c.killed, sig)
	return nil
}

type fakeSurface struct {
	id     compositor.SurfaceID
	geom   image.Rectangle
	output compositor.Output
	client compositor.Client

	transform    compositor.Matrix
	alpha        uint8
	color        [4]uint8
	damageCount  int
	destroyFns   []func()
	destroyed    bool
}

func newFakeSurface(id compositor.SurfaceID, w, h int) *fakeSurface {
	return &fakeSurface{id: id, geom: image.Rect(0, 0, w, h), transform: compositor.Identity(), alpha: 255}
}

func (s *fakeSurface) ID() compositor.SurfaceID { return s.id }
func (s *fakeSurface) Geometry() image.Rectangle { return s.geom }
func (s *fakeSurface) SetPosition(x, y int) {
	s.geom = image.Rect(x, y, x+s.geom.Dx(), y+s.geom.Dy())
}
func (s *fakeSurface) SetSize(w, h int) {
	s.geom = image.Rect(s.geom.Min.X, s.geom.Min.Y, s.geom.Min.X+w, s.geom.Min.Y+h)
}
func (s *fakeSurface) Output() compositor.Output        { return s.output }
func (s *fakeSurface) SetOutput(o compositor.Output)     { s.output = o }
func (s *fakeSurface) SetTransform(m compositor.Matrix)  { s.transform = m }
func (s *fakeSurface) ClearTransform()                   { s.transform = compositor.Identity() }
func (s *fakeSurface) SetAlpha(a uint8)                  { s.alpha = a }
func (s *fakeSurface) SetColor(r, g, b, a uint8)         { s.color = [4]uint8{r, g, b, a} }
func (s *fakeSurface) Damage()                           { s.damageCount++ }
func (s *fakeSurface) OnDestroy(fn func())               { s.destroyFns = append(s.destroyFns, fn) }
func (s *fakeSurface) Client() compositor.Client         { return s.client }

// Destroy fires every registered destroy callback, as the compositor
// would on a real surface teardown, then marks the surface destroyed.
func (s *fakeSurface) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	fns := s.destroyFns
	s.destroyFns = nil
	for _, fn := range fns {
		fn()
	}
}

type fakeInputDevice struct {
	pos          image.Point
	focus        compositor.Surface
	kbFocus      compositor.Surface
	buttonsDown  int
	grabSerial   uint32
	pointerGrab  compositor.PointerGrab
	keyboardGrab compositor.KeyboardGrab
}

func (d *fakeInputDevice) PointerPosition() image.Point         { return d.pos }
func (d *fakeInputDevice) PointerFocus() compositor.Surface     { return d.focus }
func (d *fakeInputDevice) SetPointerFocus(s compositor.Surface) { d.focus = s }
func (d *fakeInputDevice) ButtonsPressed() int                  { return d.buttonsDown }
func (d *fakeInputDevice) GrabTime() uint32                     { return d.grabSerial }

func (d *fakeInputDevice) StartPointerGrab(g compositor.PointerGrab) { d.pointerGrab = g }
func (d *fakeInputDevice) EndPointerGrab()                           { d.pointerGrab = nil }
func (d *fakeInputDevice) ActivePointerGrab() compositor.PointerGrab { return d.pointerGrab }

func (d *fakeInputDevice) StartKeyboardGrab(g compositor.KeyboardGrab) { d.keyboardGrab = g }
func (d *fakeInputDevice) EndKeyboardGrab()                            { d.keyboardGrab = nil }
func (d *fakeInputDevice) ActiveKeyboardGrab() compositor.KeyboardGrab { return d.keyboardGrab }

func (d *fakeInputDevice) SetKeyboardFocus(s compositor.Surface) { d.kbFocus = s }

func (d *fakeInputDevice) ToSurfaceLocal(s compositor.Surface, p image.Point) image.Point {
	g := s.Geometry()
	return image.Pt(p.X-g.Min.X, p.Y-g.Min.Y)
}

func (d *fakeInputDevice) ToGlobal(s compositor.Surface, p image.Point) image.Point {
	g := s.Geometry()
	return image.Pt(p.X+g.Min.X, p.Y+g.Min.Y)
}

type fakeCompositor struct {
	outputs []compositor.Output
	devices []compositor.InputDevice

	idleTime int
	nextID   compositor.SurfaceID

	shutdownRequested bool
	launches          []string
	launchErr         error
	zoomedIn          []compositor.Surface
	boundGlobals      map[string]compositor.ClientID
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
		outputs:      []compositor.Output{out},
		devices:      []compositor.InputDevice{&fakeInputDevice{}},
		boundGlobals: make(map[string]compositor.ClientID),
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
	return newFakeSurface(c.nextID, 1, 1)
}

func (c *fakeCompositor) ScheduleRepaint() {}
func (c *fakeCompositor) DamageAll()       {}
func (c *fakeCompositor) ZoomInSurface(s compositor.Surface, from, to float64) {
	c.zoomedIn = append(c.zoomedIn, s)
}

func (c *fakeCompositor) LaunchClient(path string, onExit func(pid int, exitErr error)) (compositor.Client, error) {
	if c.launchErr != nil {
		return nil, c.launchErr
	}
	c.launches = append(c.launches, path)
	c.nextID++
	return &fakeClient{id: compositor.ClientID(c.nextID), pid: 1000 + int(c.nextID)}, nil
}

func (c *fakeCompositor) IdleTime() int           { return c.idleTime }
func (c *fakeCompositor) SetIdleTime(seconds int) { c.idleTime = seconds }
func (c *fakeCompositor) WakeIdle()               {}

func (c *fakeCompositor) Shutdown() { c.shutdownRequested = true }

func (c *fakeCompositor) BindGlobal(name string, restrictTo compositor.ClientID) {
	c.boundGlobals[name] = restrictTo
}

type fakeShellClient struct {
	configures int
	lastEdges  uint32
	lastW      int
	lastH      int
	popupDones int
}

func (c *fakeShellClient) SendConfigure(time, edges uint32, width, height int) {
	c.configures++
	c.lastEdges = edges
	c.lastW = width
	c.lastH = height
}
func (c *fakeShellClient) SendPopupDone() { c.popupDones++ }

// newTestShell builds a Shell over a fresh fakeCompositor with no helper
// launched, the configuration most tests want.
func newTestShell() (*Shell, *fakeCompositor) {
	comp := newFakeCompositor()
	sh := New(comp, Options{})
	return sh, comp
}

// addSurface creates a shell-surface on a fresh compositor surface owned
// by client, wired to a fakeShellClient the test can inspect.
func addSurface(t interface{ Helper() }, sh *Shell, comp *fakeCompositor, client compositor.Client, w, h int) (*ShellSurface, *fakeShellClient) {
	comp.nextID++
	surf := newFakeSurface(comp.nextID, w, h)
	surf.client = client
	sc := &fakeShellClient{}
	ss, err := sh.GetShellSurface(surf, sc)
	if err != nil {
		panic(err)
	}
	return ss, sc
}
