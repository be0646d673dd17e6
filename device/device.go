// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/marathon/vertex"
)

// Device abstracts an immediate-mode graphics device.
//
// Resource lifecycle:
//   - Objects are created via Create*, CompileShader and LinkProgram
//   - Objects must be explicitly destroyed via the matching Destroy* method
//   - Destroying an object that is bound is allowed; the binding is dropped
//   - IDs become invalid after destruction and must not be used again
type Device interface {
	// === Buffers ===

	// CreateBuffer allocates a buffer of len(data) bytes and uploads data.
	// A zero-length buffer is allowed.
	CreateBuffer(target BufferTarget, data []byte) BufferID

	// UpdateBuffer overwrites part of a buffer starting at offset.
	UpdateBuffer(id BufferID, offset int, data []byte)

	// DestroyBuffer releases a buffer.
	DestroyBuffer(id BufferID)

	// === Vertex layout ===

	// CreateVertexArray creates a vertex layout object that binds the given
	// buffers and attribute pointers.
	CreateVertexArray(desc *VertexArrayDesc) VertexArrayID

	// BindVertexArray makes a vertex layout object current. InvalidID unbinds.
	BindVertexArray(id VertexArrayID)

	// DestroyVertexArray releases a vertex layout object.
	DestroyVertexArray(id VertexArrayID)

	// === Programs ===

	// CompileShader compiles one shader stage. The returned ID is valid even
	// when compilation fails and must be released with DestroyShader.
	CompileShader(stage Stage, lang Language, source string) (ShaderID, CompileResult)

	// DestroyShader releases a shader stage. Stages may be destroyed once a
	// program using them has been linked.
	DestroyShader(id ShaderID)

	// LinkProgram links a vertex and a fragment stage into a program. The
	// returned ID is valid even when linking fails.
	LinkProgram(vs, fs ShaderID) (ProgramID, CompileResult)

	// UseProgram makes a program current. InvalidID unbinds.
	UseProgram(id ProgramID)

	// DestroyProgram releases a program.
	DestroyProgram(id ProgramID)

	// UniformLocation returns the location of a uniform in a program, or
	// NoUniform when the program has no such active uniform.
	UniformLocation(program ProgramID, name string) UniformLocation

	// === Uniforms (apply to the current program) ===

	SetUniformInt(loc UniformLocation, v int32)
	SetUniformFloat(loc UniformLocation, v float32)
	SetUniformVec2(loc UniformLocation, v mgl32.Vec2)
	SetUniformVec3(loc UniformLocation, v mgl32.Vec3)
	SetUniformVec4(loc UniformLocation, v mgl32.Vec4)
	SetUniformMat2(loc UniformLocation, m mgl32.Mat2)
	SetUniformMat3(loc UniformLocation, m mgl32.Mat3)
	SetUniformMat4(loc UniformLocation, m mgl32.Mat4)

	// === Fixed-function state ===

	SetClearColor(c gputypes.Color)
	SetColorMask(mask gputypes.ColorWriteMask)
	SetCullEnabled(enabled bool)
	SetCullFace(face CullFace)
	SetFrontFace(winding gputypes.FrontFace)
	SetDepthTestEnabled(enabled bool)
	SetDepthFunc(fn gputypes.CompareFunction)
	SetDepthMask(write bool)
	SetLineWidth(width float32)
	SetPointSize(size float32)
	SetWireframe(enabled bool)

	// Viewport sets the drawable region in pixels.
	Viewport(width, height int)

	// Clear clears the selected buffers of the current render target.
	Clear(color, depth, stencil bool)

	// === Drawing (uses the current program and vertex array) ===

	// DrawArrays draws count vertices starting at first.
	DrawArrays(primitive vertex.Primitive, first, count int)

	// DrawElements draws count indices from the bound index buffer.
	DrawElements(primitive vertex.Primitive, count int, format vertex.IndexFormat)
}
