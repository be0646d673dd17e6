package marathon

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/marathon/device"
)

// State is a snapshot of the fixed-function render state. Each Renderer
// setter records its value here and issues exactly one device call.
type State struct {
	ClearColor    gputypes.Color
	ColorMask     gputypes.ColorWriteMask
	CullTest      bool
	CullFace      device.CullFace
	CullWinding   gputypes.FrontFace
	DepthTest     bool
	DepthFunction gputypes.CompareFunction
	DepthWrite    bool
	LineWidth     float32
	PointSize     float32
	Wireframe     bool
}

// DefaultState returns the state a renderer starts with: opaque black clear
// colour, all channels written, culling off (back faces, counter-clockwise
// front), depth test on with LESS and depth writes, unit line width and
// point size, filled polygons.
func DefaultState() State {
	return State{
		ClearColor:    gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		ColorMask:     gputypes.ColorWriteMaskAll,
		CullTest:      false,
		CullFace:      device.CullBack,
		CullWinding:   gputypes.FrontFaceCCW,
		DepthTest:     true,
		DepthFunction: gputypes.CompareFunctionLess,
		DepthWrite:    true,
		LineWidth:     1,
		PointSize:     1,
		Wireframe:     false,
	}
}

// State returns the current state snapshot.
func (r *Renderer) State() State { return r.state }

// SetState applies every field of s.
func (r *Renderer) SetState(s State) {
	r.SetClearColor(s.ClearColor)
	r.SetColorMask(s.ColorMask)
	r.SetCullTest(s.CullTest)
	r.SetCullFace(s.CullFace)
	r.SetCullWinding(s.CullWinding)
	r.SetDepthTest(s.DepthTest)
	r.SetDepthFunction(s.DepthFunction)
	r.SetDepthMask(s.DepthWrite)
	r.SetLineWidth(s.LineWidth)
	r.SetPointSize(s.PointSize)
	r.SetWireframe(s.Wireframe)
}

// ResetState applies [DefaultState].
func (r *Renderer) ResetState() { r.SetState(DefaultState()) }

// SetClearColor sets the colour used by Clear.
func (r *Renderer) SetClearColor(c gputypes.Color) {
	r.checkOpen()
	r.state.ClearColor = c
	r.dev.SetClearColor(c)
}

// ClearColor returns the clear colour.
func (r *Renderer) ClearColor() gputypes.Color { return r.state.ClearColor }

// SetColorMask selects the colour channels written by draws.
func (r *Renderer) SetColorMask(mask gputypes.ColorWriteMask) {
	r.checkOpen()
	r.state.ColorMask = mask
	r.dev.SetColorMask(mask)
}

// ColorMask returns the colour write mask.
func (r *Renderer) ColorMask() gputypes.ColorWriteMask { return r.state.ColorMask }

// SetCullTest enables or disables face culling.
func (r *Renderer) SetCullTest(enabled bool) {
	r.checkOpen()
	r.state.CullTest = enabled
	r.dev.SetCullEnabled(enabled)
}

// CullTest reports whether face culling is enabled.
func (r *Renderer) CullTest() bool { return r.state.CullTest }

// SetCullFace selects the faces removed by culling.
func (r *Renderer) SetCullFace(face device.CullFace) {
	r.checkOpen()
	r.state.CullFace = face
	r.dev.SetCullFace(face)
}

// CullFace returns the culled faces.
func (r *Renderer) CullFace() device.CullFace { return r.state.CullFace }

// SetCullWinding sets the winding of front faces.
func (r *Renderer) SetCullWinding(winding gputypes.FrontFace) {
	r.checkOpen()
	r.state.CullWinding = winding
	r.dev.SetFrontFace(winding)
}

// CullWinding returns the winding of front faces.
func (r *Renderer) CullWinding() gputypes.FrontFace { return r.state.CullWinding }

// SetDepthTest enables or disables the depth test.
func (r *Renderer) SetDepthTest(enabled bool) {
	r.checkOpen()
	r.state.DepthTest = enabled
	r.dev.SetDepthTestEnabled(enabled)
}

// DepthTest reports whether the depth test is enabled.
func (r *Renderer) DepthTest() bool { return r.state.DepthTest }

// SetDepthFunction sets the depth comparison.
func (r *Renderer) SetDepthFunction(fn gputypes.CompareFunction) {
	r.checkOpen()
	r.state.DepthFunction = fn
	r.dev.SetDepthFunc(fn)
}

// DepthFunction returns the depth comparison.
func (r *Renderer) DepthFunction() gputypes.CompareFunction { return r.state.DepthFunction }

// SetDepthMask enables or disables depth writes.
func (r *Renderer) SetDepthMask(write bool) {
	r.checkOpen()
	r.state.DepthWrite = write
	r.dev.SetDepthMask(write)
}

// DepthMask reports whether depth writes are enabled.
func (r *Renderer) DepthMask() bool { return r.state.DepthWrite }

// SetLineWidth sets the rasterized line width.
func (r *Renderer) SetLineWidth(width float32) {
	r.checkOpen()
	r.state.LineWidth = width
	r.dev.SetLineWidth(width)
}

// LineWidth returns the line width.
func (r *Renderer) LineWidth() float32 { return r.state.LineWidth }

// SetPointSize sets the rasterized point size.
func (r *Renderer) SetPointSize(size float32) {
	r.checkOpen()
	r.state.PointSize = size
	r.dev.SetPointSize(size)
}

// PointSize returns the point size.
func (r *Renderer) PointSize() float32 { return r.state.PointSize }

// SetWireframe switches between line and filled polygon rasterization.
func (r *Renderer) SetWireframe(enabled bool) {
	r.checkOpen()
	r.state.Wireframe = enabled
	r.dev.SetWireframe(enabled)
}

// Wireframe reports whether polygons are drawn as lines.
func (r *Renderer) Wireframe() bool { return r.state.Wireframe }

// Clear clears the selected buffers with the current clear colour.
func (r *Renderer) Clear(color, depth, stencil bool) {
	r.checkOpen()
	r.dev.Clear(color, depth, stencil)
}

// SetViewport sets the drawable size in pixels. It also feeds u_resolution.
func (r *Renderer) SetViewport(width, height int) {
	r.checkOpen()
	r.width, r.height = width, height
	r.dev.Viewport(width, height)
}

// Viewport returns the drawable size in pixels.
func (r *Renderer) Viewport() (width, height int) { return r.width, r.height }
