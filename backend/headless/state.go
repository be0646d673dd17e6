package headless

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/marathon/device"
)

// State is the fixed-function state held by the device.
type State struct {
	ClearColor     gputypes.Color
	ColorMask      gputypes.ColorWriteMask
	CullEnabled    bool
	CullFace       device.CullFace
	FrontFace      gputypes.FrontFace
	DepthTest      bool
	DepthFunc      gputypes.CompareFunction
	DepthMask      bool
	LineWidth      float32
	PointSize      float32
	Wireframe      bool
	ViewportWidth  int
	ViewportHeight int
}

// defaultState matches the initial state of an OpenGL context.
func defaultState() State {
	return State{
		ClearColor: gputypes.Color{},
		ColorMask:  gputypes.ColorWriteMaskAll,
		CullFace:   device.CullBack,
		FrontFace:  gputypes.FrontFaceCCW,
		DepthFunc:  gputypes.CompareFunctionLess,
		DepthMask:  true,
		LineWidth:  1,
		PointSize:  1,
	}
}

// State returns the current fixed-function state.
func (d *Device) State() State { return d.state }

// SetClearColor implements device.Device.
func (d *Device) SetClearColor(c gputypes.Color) {
	d.record(OpSetClearColor, c)
	d.state.ClearColor = c
}

// SetColorMask implements device.Device.
func (d *Device) SetColorMask(mask gputypes.ColorWriteMask) {
	d.record(OpSetColorMask, mask)
	d.state.ColorMask = mask
}

// SetCullEnabled implements device.Device.
func (d *Device) SetCullEnabled(enabled bool) {
	d.record(OpSetCullEnabled, enabled)
	d.state.CullEnabled = enabled
}

// SetCullFace implements device.Device.
func (d *Device) SetCullFace(face device.CullFace) {
	d.record(OpSetCullFace, face)
	d.state.CullFace = face
}

// SetFrontFace implements device.Device.
func (d *Device) SetFrontFace(winding gputypes.FrontFace) {
	d.record(OpSetFrontFace, winding)
	d.state.FrontFace = winding
}

// SetDepthTestEnabled implements device.Device.
func (d *Device) SetDepthTestEnabled(enabled bool) {
	d.record(OpSetDepthTest, enabled)
	d.state.DepthTest = enabled
}

// SetDepthFunc implements device.Device.
func (d *Device) SetDepthFunc(fn gputypes.CompareFunction) {
	d.record(OpSetDepthFunc, fn)
	d.state.DepthFunc = fn
}

// SetDepthMask implements device.Device.
func (d *Device) SetDepthMask(write bool) {
	d.record(OpSetDepthMask, write)
	d.state.DepthMask = write
}

// SetLineWidth implements device.Device.
func (d *Device) SetLineWidth(width float32) {
	d.record(OpSetLineWidth, width)
	d.state.LineWidth = width
}

// SetPointSize implements device.Device.
func (d *Device) SetPointSize(size float32) {
	d.record(OpSetPointSize, size)
	d.state.PointSize = size
}

// SetWireframe implements device.Device.
func (d *Device) SetWireframe(enabled bool) {
	d.record(OpSetWireframe, enabled)
	d.state.Wireframe = enabled
}

// Viewport implements device.Device.
func (d *Device) Viewport(width, height int) {
	d.record(OpViewport, width, height)
	d.state.ViewportWidth = width
	d.state.ViewportHeight = height
}

// Clear implements device.Device.
func (d *Device) Clear(color, depth, stencil bool) {
	d.record(OpClear, color, depth, stencil)
}
