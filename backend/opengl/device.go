//go:build !nogl

package opengl

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/marathon/backend"
	"github.com/gogpu/marathon/device"
	"github.com/gogpu/marathon/internal/cache"
	"github.com/gogpu/marathon/vertex"
)

func init() {
	backend.Register(backend.NameOpenGL, func() (device.Device, error) {
		return New()
	})
}

type locationKey struct {
	program device.ProgramID
	name    string
}

// Device is a [device.Device] backed by the current OpenGL context.
type Device struct {
	logger     *slog.Logger
	locations  *cache.Cache[locationKey, device.UniformLocation]
	boundArray uint32
}

// New loads the GL function pointers and returns a device for the current
// context.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", backend.ErrNoContext, err)
	}
	version := gl.GetString(gl.VERSION)
	if version == nil {
		return nil, backend.ErrNoContext
	}
	d := &Device{
		logger:    slog.New(slog.DiscardHandler),
		locations: cache.New[locationKey, device.UniformLocation](512),
	}
	d.logger.Info("opengl: device created", "version", gl.GoStr(version))
	return d, nil
}

// SetLogger sets the logger used for device diagnostics. Pass nil to disable.
func (d *Device) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	d.logger = l
}

// === Buffers ===

func bufferTarget(t device.BufferTarget) uint32 {
	if t == device.BufferTargetIndex {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

// bindForUpload binds a buffer to its target. Index buffers are bound with
// no vertex array current so the bound array's element binding is untouched.
func (d *Device) bindForUpload(target device.BufferTarget, id uint32) {
	if target == device.BufferTargetIndex {
		gl.BindVertexArray(0)
	}
	gl.BindBuffer(bufferTarget(target), id)
}

func (d *Device) restoreArray(target device.BufferTarget) {
	if target == device.BufferTargetIndex {
		gl.BindVertexArray(d.boundArray)
	}
}

// CreateBuffer implements device.Device.
func (d *Device) CreateBuffer(target device.BufferTarget, data []byte) device.BufferID {
	var id uint32
	gl.GenBuffers(1, &id)
	d.bindForUpload(target, id)
	if len(data) == 0 {
		gl.BufferData(bufferTarget(target), 0, nil, gl.STATIC_DRAW)
	} else {
		gl.BufferData(bufferTarget(target), len(data), gl.Ptr(data), gl.STATIC_DRAW)
	}
	d.restoreArray(target)
	return device.BufferID(id)
}

// UpdateBuffer implements device.Device. Every buffer is updated through
// GL_ARRAY_BUFFER so the bound vertex array's element binding is untouched.
func (d *Device) UpdateBuffer(id device.BufferID, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(id))
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, len(data), gl.Ptr(data))
}

// DestroyBuffer implements device.Device.
func (d *Device) DestroyBuffer(id device.BufferID) {
	name := uint32(id)
	gl.DeleteBuffers(1, &name)
}

// === Vertex layout ===

var formatTypes = map[vertex.Format]uint32{
	vertex.Float16: gl.HALF_FLOAT,
	vertex.Float32: gl.FLOAT,
	vertex.Float64: gl.DOUBLE,
	vertex.Int8:    gl.BYTE,
	vertex.Int16:   gl.SHORT,
	vertex.Int32:   gl.INT,
	vertex.Uint8:   gl.UNSIGNED_BYTE,
	vertex.Uint16:  gl.UNSIGNED_SHORT,
	vertex.Uint32:  gl.UNSIGNED_INT,
}

// CreateVertexArray implements device.Device.
func (d *Device) CreateVertexArray(desc *device.VertexArrayDesc) device.VertexArrayID {
	var id uint32
	gl.GenVertexArrays(1, &id)
	gl.BindVertexArray(id)
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(desc.VertexBuffer))
	if desc.IndexBuffer != device.InvalidID {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(desc.IndexBuffer))
	}
	for _, a := range desc.Attributes {
		xtype, ok := formatTypes[a.Format]
		if !ok {
			d.logger.Warn("opengl: skipping attribute with invalid format",
				"location", a.Location, "format", a.Format.String())
			continue
		}
		gl.EnableVertexAttribArray(a.Location)
		gl.VertexAttribPointerWithOffset(a.Location, int32(a.Components), xtype,
			a.Normalized, int32(a.Stride), uintptr(a.Offset))
	}
	gl.BindVertexArray(d.boundArray)
	return device.VertexArrayID(id)
}

// BindVertexArray implements device.Device.
func (d *Device) BindVertexArray(id device.VertexArrayID) {
	d.boundArray = uint32(id)
	gl.BindVertexArray(d.boundArray)
}

// DestroyVertexArray implements device.Device.
func (d *Device) DestroyVertexArray(id device.VertexArrayID) {
	name := uint32(id)
	gl.DeleteVertexArrays(1, &name)
	if d.boundArray == name {
		d.boundArray = 0
	}
}

// === Programs ===

// CompileShader implements device.Device.
func (d *Device) CompileShader(stage device.Stage, lang device.Language, source string) (device.ShaderID, device.CompileResult) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if stage == device.StageFragment {
		shaderType = gl.FRAGMENT_SHADER
	}
	id := gl.CreateShader(shaderType)
	if lang != device.LanguageGLSL {
		return device.ShaderID(id), device.CompileResult{
			Log: fmt.Sprintf("%v sources are not supported by OpenGL 3.3", lang),
		}
	}

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	return device.ShaderID(id), device.CompileResult{OK: status == gl.TRUE, Log: shaderLog(id)}
}

func shaderLog(id uint32) string {
	var n int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetShaderInfoLog(id, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

func programLog(id uint32) string {
	var n int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(id, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00\n")
}

// DestroyShader implements device.Device.
func (d *Device) DestroyShader(id device.ShaderID) {
	gl.DeleteShader(uint32(id))
}

// LinkProgram implements device.Device.
func (d *Device) LinkProgram(vs, fs device.ShaderID) (device.ProgramID, device.CompileResult) {
	id := gl.CreateProgram()
	gl.AttachShader(id, uint32(vs))
	gl.AttachShader(id, uint32(fs))
	gl.LinkProgram(id)
	gl.DetachShader(id, uint32(vs))
	gl.DetachShader(id, uint32(fs))

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	return device.ProgramID(id), device.CompileResult{OK: status == gl.TRUE, Log: programLog(id)}
}

// UseProgram implements device.Device.
func (d *Device) UseProgram(id device.ProgramID) {
	gl.UseProgram(uint32(id))
}

// DestroyProgram implements device.Device.
func (d *Device) DestroyProgram(id device.ProgramID) {
	gl.DeleteProgram(uint32(id))
	// GL reuses program names; stale locations must not survive.
	d.locations.DeleteFunc(func(k locationKey) bool { return k.program == id })
}

// UniformLocation implements device.Device.
func (d *Device) UniformLocation(program device.ProgramID, name string) device.UniformLocation {
	return d.locations.GetOrCreate(locationKey{program: program, name: name}, func() device.UniformLocation {
		return device.UniformLocation(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
	})
}

// === Uniforms ===

// SetUniformInt implements device.Device.
func (d *Device) SetUniformInt(loc device.UniformLocation, v int32) {
	gl.Uniform1i(int32(loc), v)
}

// SetUniformFloat implements device.Device.
func (d *Device) SetUniformFloat(loc device.UniformLocation, v float32) {
	gl.Uniform1f(int32(loc), v)
}

// SetUniformVec2 implements device.Device.
func (d *Device) SetUniformVec2(loc device.UniformLocation, v mgl32.Vec2) {
	gl.Uniform2fv(int32(loc), 1, &v[0])
}

// SetUniformVec3 implements device.Device.
func (d *Device) SetUniformVec3(loc device.UniformLocation, v mgl32.Vec3) {
	gl.Uniform3fv(int32(loc), 1, &v[0])
}

// SetUniformVec4 implements device.Device.
func (d *Device) SetUniformVec4(loc device.UniformLocation, v mgl32.Vec4) {
	gl.Uniform4fv(int32(loc), 1, &v[0])
}

// SetUniformMat2 implements device.Device.
func (d *Device) SetUniformMat2(loc device.UniformLocation, m mgl32.Mat2) {
	gl.UniformMatrix2fv(int32(loc), 1, false, &m[0])
}

// SetUniformMat3 implements device.Device.
func (d *Device) SetUniformMat3(loc device.UniformLocation, m mgl32.Mat3) {
	gl.UniformMatrix3fv(int32(loc), 1, false, &m[0])
}

// SetUniformMat4 implements device.Device.
func (d *Device) SetUniformMat4(loc device.UniformLocation, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

// === Fixed-function state ===

func enable(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// SetClearColor implements device.Device.
func (d *Device) SetClearColor(c gputypes.Color) {
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
}

// SetColorMask implements device.Device.
func (d *Device) SetColorMask(mask gputypes.ColorWriteMask) {
	gl.ColorMask(
		mask&gputypes.ColorWriteMaskRed != 0,
		mask&gputypes.ColorWriteMaskGreen != 0,
		mask&gputypes.ColorWriteMaskBlue != 0,
		mask&gputypes.ColorWriteMaskAlpha != 0,
	)
}

// SetCullEnabled implements device.Device.
func (d *Device) SetCullEnabled(enabled bool) { enable(gl.CULL_FACE, enabled) }

// SetCullFace implements device.Device.
func (d *Device) SetCullFace(face device.CullFace) {
	switch face {
	case device.CullFront:
		gl.CullFace(gl.FRONT)
	case device.CullFrontAndBack:
		gl.CullFace(gl.FRONT_AND_BACK)
	default:
		gl.CullFace(gl.BACK)
	}
}

// SetFrontFace implements device.Device.
func (d *Device) SetFrontFace(winding gputypes.FrontFace) {
	if winding == gputypes.FrontFaceCW {
		gl.FrontFace(gl.CW)
		return
	}
	gl.FrontFace(gl.CCW)
}

// SetDepthTestEnabled implements device.Device.
func (d *Device) SetDepthTestEnabled(enabled bool) { enable(gl.DEPTH_TEST, enabled) }

var compareFuncs = map[gputypes.CompareFunction]uint32{
	gputypes.CompareFunctionNever:        gl.NEVER,
	gputypes.CompareFunctionLess:         gl.LESS,
	gputypes.CompareFunctionEqual:        gl.EQUAL,
	gputypes.CompareFunctionLessEqual:    gl.LEQUAL,
	gputypes.CompareFunctionGreater:      gl.GREATER,
	gputypes.CompareFunctionNotEqual:     gl.NOTEQUAL,
	gputypes.CompareFunctionGreaterEqual: gl.GEQUAL,
	gputypes.CompareFunctionAlways:       gl.ALWAYS,
}

// SetDepthFunc implements device.Device.
func (d *Device) SetDepthFunc(fn gputypes.CompareFunction) {
	f, ok := compareFuncs[fn]
	if !ok {
		d.logger.Warn("opengl: unknown depth function, using LESS", "func", uint32(fn))
		f = gl.LESS
	}
	gl.DepthFunc(f)
}

// SetDepthMask implements device.Device.
func (d *Device) SetDepthMask(write bool) { gl.DepthMask(write) }

// SetLineWidth implements device.Device.
func (d *Device) SetLineWidth(width float32) { gl.LineWidth(width) }

// SetPointSize implements device.Device.
func (d *Device) SetPointSize(size float32) { gl.PointSize(size) }

// SetWireframe implements device.Device.
func (d *Device) SetWireframe(enabled bool) {
	mode := uint32(gl.FILL)
	if enabled {
		mode = gl.LINE
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
}

// Viewport implements device.Device.
func (d *Device) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Clear implements device.Device.
func (d *Device) Clear(color, depth, stencil bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if stencil {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}

// === Drawing ===

func primitiveMode(p vertex.Primitive) uint32 {
	switch p {
	case vertex.TriangleFan:
		return gl.TRIANGLE_FAN
	case vertex.TriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		return gl.TRIANGLES
	}
}

// DrawArrays implements device.Device.
func (d *Device) DrawArrays(primitive vertex.Primitive, first, count int) {
	gl.DrawArrays(primitiveMode(primitive), int32(first), int32(count))
}

// DrawElements implements device.Device.
func (d *Device) DrawElements(primitive vertex.Primitive, count int, format vertex.IndexFormat) {
	var xtype uint32
	switch format {
	case vertex.IndexUint8:
		xtype = gl.UNSIGNED_BYTE
	case vertex.IndexUint16:
		xtype = gl.UNSIGNED_SHORT
	case vertex.IndexUint32:
		xtype = gl.UNSIGNED_INT
	default:
		d.logger.Warn("opengl: DrawElements without index format")
		return
	}
	gl.DrawElements(primitiveMode(primitive), int32(count), xtype, gl.PtrOffset(0))
}
