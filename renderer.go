package marathon

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/marathon/device"
	"github.com/gogpu/marathon/resource"
)

// Renderer turns resources into device objects and submits draws.
//
// A Renderer is an explicit context: it owns the handler cache, the state
// snapshot and the transform stack for one device. Create one per graphics
// context with [New] and release it with [Renderer.Close].
type Renderer struct {
	dev    device.Device
	logger *slog.Logger

	meshes       map[*resource.Mesh]*MeshHandler
	shaders      map[*resource.Shader]*ShaderHandler
	handlerStats HandlerStats

	bound *ShaderHandler

	state      State
	transforms *TransformStack
	view       mgl32.Mat4
	projection mgl32.Mat4
	clock      *Clock
	width      int
	height     int

	stats  Stats
	closed bool
}

// Stats counts draw submissions since the last BeginFrame.
type Stats struct {
	// DrawCalls counts every Draw call, including skipped ones.
	DrawCalls int

	// Submitted counts draws that reached the device.
	Submitted int

	// Skipped counts draws rejected by validation.
	Skipped int

	// Triangles counts assembled triangles of submitted draws.
	Triangles int
}

// New creates a renderer for dev and applies the initial state to it.
func New(dev device.Device, opts ...Option) *Renderer {
	if dev == nil {
		panic(msgNilDevice)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = NewClock(nil)
	}

	r := &Renderer{
		dev:        dev,
		logger:     o.logger,
		meshes:     make(map[*resource.Mesh]*MeshHandler),
		shaders:    make(map[*resource.Shader]*ShaderHandler),
		transforms: NewTransformStack(),
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		clock:      o.clock,
	}
	propagateLogger(dev, r.log())

	r.SetState(o.state)
	if o.width > 0 && o.height > 0 {
		r.SetViewport(o.width, o.height)
	}
	r.log().Info("marathon: renderer created", "width", o.width, "height", o.height)
	return r
}

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Device returns the device the renderer draws with.
func (r *Renderer) Device() device.Device { return r.dev }

// Clock returns the clock feeding the time uniforms.
func (r *Renderer) Clock() *Clock { return r.clock }

// BeginFrame advances the clock and resets the per-frame statistics.
func (r *Renderer) BeginFrame() {
	r.checkOpen()
	r.clock.Tick()
	r.stats = Stats{}
}

// EndFrame returns the statistics of the frame and checks that every pushed
// transform was popped.
func (r *Renderer) EndFrame() Stats {
	if d := r.transforms.Depth(); d != 0 {
		r.log().Warn("marathon: transforms left on the stack at end of frame", "depth", d)
		r.transforms.Reset()
	}
	r.log().Debug("marathon: frame finished",
		"frame", r.clock.FrameIndex(),
		"draws", r.stats.DrawCalls,
		"submitted", r.stats.Submitted,
		"skipped", r.stats.Skipped,
		"triangles", r.stats.Triangles)
	return r.stats
}

// Stats returns the statistics of the current frame.
func (r *Renderer) Stats() Stats { return r.stats }

// Close releases every device object owned by the handler cache. Each object
// is released exactly once; later calls do nothing. The renderer must not be
// used after Close.
func (r *Renderer) Close() {
	if r.closed {
		return
	}
	if r.bound != nil {
		r.dev.UseProgram(device.InvalidID)
		r.bound = nil
	}
	r.dev.BindVertexArray(device.InvalidID)
	for mesh, h := range r.meshes {
		r.releaseMeshObjects(h)
		delete(r.meshes, mesh)
	}
	for shader, h := range r.shaders {
		r.releaseProgram(h)
		delete(r.shaders, shader)
	}
	r.closed = true
	r.log().Info("marathon: renderer closed")
}

func (r *Renderer) checkOpen() {
	if r.closed {
		panic(msgClosed)
	}
}
