package marathon

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/marathon/backend/headless"
	"github.com/gogpu/marathon/device"
)

func TestNewAppliesDefaultState(t *testing.T) {
	dev := headless.New()
	r := New(dev)
	defer r.Close()

	if r.State() != DefaultState() {
		t.Errorf("State() = %+v", r.State())
	}
	got := dev.State()
	if got.ColorMask != gputypes.ColorWriteMaskAll || !got.DepthTest || got.DepthFunc != gputypes.CompareFunctionLess {
		t.Errorf("device state = %+v", got)
	}
	if got.CullEnabled || got.Wireframe || got.LineWidth != 1 {
		t.Errorf("device state = %+v", got)
	}
}

func TestWithState(t *testing.T) {
	s := DefaultState()
	s.Wireframe = true
	s.ClearColor = gputypes.Color{R: 0.2, G: 0.3, B: 0.4, A: 1}

	dev := headless.New()
	r := New(dev, WithState(s), WithViewport(320, 200))
	if r.State() != s {
		t.Errorf("State() = %+v", r.State())
	}
	if !dev.State().Wireframe || dev.State().ClearColor != s.ClearColor {
		t.Errorf("device state = %+v", dev.State())
	}
	if w, h := r.Viewport(); w != 320 || h != 200 {
		t.Errorf("Viewport() = %d, %d", w, h)
	}

	r.ResetState()
	if r.State() != DefaultState() || dev.State().Wireframe {
		t.Error("ResetState did not restore defaults")
	}
}

func TestStateSettersIssueOneCall(t *testing.T) {
	tests := []struct {
		name  string
		op    headless.Op
		set   func(r *Renderer)
		check func(r *Renderer) bool
	}{
		{"clear colour", headless.OpSetClearColor,
			func(r *Renderer) { r.SetClearColor(gputypes.Color{R: 1, A: 1}) },
			func(r *Renderer) bool { return r.ClearColor() == gputypes.Color{R: 1, A: 1} }},
		{"colour mask", headless.OpSetColorMask,
			func(r *Renderer) { r.SetColorMask(gputypes.ColorWriteMaskNone) },
			func(r *Renderer) bool { return r.ColorMask() == gputypes.ColorWriteMaskNone }},
		{"cull test", headless.OpSetCullEnabled,
			func(r *Renderer) { r.SetCullTest(true) },
			func(r *Renderer) bool { return r.CullTest() }},
		{"cull face", headless.OpSetCullFace,
			func(r *Renderer) { r.SetCullFace(device.CullFront) },
			func(r *Renderer) bool { return r.CullFace() == device.CullFront }},
		{"cull winding", headless.OpSetFrontFace,
			func(r *Renderer) { r.SetCullWinding(gputypes.FrontFaceCW) },
			func(r *Renderer) bool { return r.CullWinding() == gputypes.FrontFaceCW }},
		{"depth test", headless.OpSetDepthTest,
			func(r *Renderer) { r.SetDepthTest(false) },
			func(r *Renderer) bool { return !r.DepthTest() }},
		{"depth function", headless.OpSetDepthFunc,
			func(r *Renderer) { r.SetDepthFunction(gputypes.CompareFunctionAlways) },
			func(r *Renderer) bool { return r.DepthFunction() == gputypes.CompareFunctionAlways }},
		{"depth mask", headless.OpSetDepthMask,
			func(r *Renderer) { r.SetDepthMask(false) },
			func(r *Renderer) bool { return !r.DepthMask() }},
		{"line width", headless.OpSetLineWidth,
			func(r *Renderer) { r.SetLineWidth(3) },
			func(r *Renderer) bool { return r.LineWidth() == 3 }},
		{"point size", headless.OpSetPointSize,
			func(r *Renderer) { r.SetPointSize(4) },
			func(r *Renderer) bool { return r.PointSize() == 4 }},
		{"wireframe", headless.OpSetWireframe,
			func(r *Renderer) { r.SetWireframe(true) },
			func(r *Renderer) bool { return r.Wireframe() }},
		{"viewport", headless.OpViewport,
			func(r *Renderer) { r.SetViewport(800, 600) },
			func(r *Renderer) bool { w, h := r.Viewport(); return w == 800 && h == 600 }},
		{"clear", headless.OpClear,
			func(r *Renderer) { r.Clear(true, true, false) },
			func(*Renderer) bool { return true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)
			tt.set(e.r)
			calls := e.dev.Calls()
			if len(calls) != 1 || calls[0].Op != tt.op {
				t.Errorf("calls = %v, want one %s", calls, tt.op)
			}
			if !tt.check(e.r) {
				t.Errorf("snapshot not updated: %+v", e.r.State())
			}
		})
	}
}

func TestStateMirroredOnDevice(t *testing.T) {
	e := newTestEnv(t)
	e.r.SetCullTest(true)
	e.r.SetCullFace(device.CullFrontAndBack)
	e.r.SetDepthFunction(gputypes.CompareFunctionNotEqual)
	e.r.SetViewport(64, 32)

	got := e.dev.State()
	if !got.CullEnabled || got.CullFace != device.CullFrontAndBack {
		t.Errorf("cull state = %+v", got)
	}
	if got.DepthFunc != gputypes.CompareFunctionNotEqual {
		t.Errorf("DepthFunc = %v", got.DepthFunc)
	}
	if got.ViewportWidth != 64 || got.ViewportHeight != 32 {
		t.Errorf("viewport = %dx%d", got.ViewportWidth, got.ViewportHeight)
	}
}

func TestStateSettersAfterClosePanic(t *testing.T) {
	setters := map[string]func(r *Renderer){
		"SetClearColor": func(r *Renderer) { r.SetClearColor(gputypes.Color{}) },
		"SetDepthTest":  func(r *Renderer) { r.SetDepthTest(false) },
		"SetWireframe":  func(r *Renderer) { r.SetWireframe(true) },
		"SetViewport":   func(r *Renderer) { r.SetViewport(1, 1) },
		"Clear":         func(r *Renderer) { r.Clear(true, false, false) },
		"ResetState":    func(r *Renderer) { r.ResetState() },
	}
	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			e := newTestEnv(t)
			e.r.Close()
			e.dev.ResetCalls()
			defer func() {
				if recover() == nil {
					t.Errorf("%s after Close did not panic", name)
				}
				if calls := e.dev.Calls(); len(calls) != 0 {
					t.Errorf("device calls after Close: %v", calls)
				}
			}()
			set(e.r)
		})
	}
}
