package marathon

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/marathon/device"
	"github.com/gogpu/marathon/resource"
	"github.com/gogpu/marathon/uniform"
)

// Draw draws mesh with its material at the current transform.
//
// Draw never fails loudly: a nil mesh, an invalid mesh, a mesh without a
// material or a shader that cannot be bound skips the draw with a warning.
// Material uniforms missing from the shader are reported and the draw
// proceeds. Every call counts towards Stats().DrawCalls.
func (r *Renderer) Draw(mesh *resource.Mesh) {
	r.checkOpen()
	r.stats.DrawCalls++

	if mesh == nil {
		r.skip("marathon: Draw called with nil mesh")
		return
	}
	if ok, warnings := r.ValidateMesh(mesh); !ok {
		r.skip("marathon: mesh is invalid, draw skipped", "mesh", mesh.Name(), "warnings", warnings)
		return
	}
	mat := mesh.Material()
	if mat == nil {
		r.skip("marathon: mesh has no material, draw skipped", "mesh", mesh.Name())
		return
	}

	shader := mat.Shader()
	r.SetShader(shader)
	if r.bound == nil || r.bound.Shader != shader {
		r.skip("marathon: material shader could not be bound, draw skipped",
			"mesh", mesh.Name(), "material", mat.Name())
		return
	}

	r.uploadReserved(r.bound.Program)
	r.uploadMaterial(r.bound.Program, mat)

	h := r.meshes[mesh]
	r.dev.BindVertexArray(h.VertexArray)
	prim := mesh.Primitive()
	n := mesh.VertexCount()
	if mesh.IndexCount() > 0 {
		n = mesh.IndexCount()
		r.dev.DrawElements(prim, n, mesh.IndexFormat())
	} else {
		r.dev.DrawArrays(prim, 0, n)
	}
	r.stats.Submitted++
	r.stats.Triangles += prim.TriangleCount(n)
}

func (r *Renderer) skip(msg string, args ...any) {
	r.stats.Skipped++
	r.log().Warn(msg, args...)
}

// SetShader makes shader's program current, building it on first use.
//
// A nil shader unbinds the current program with a warning. An invalid
// shader is reported and the current binding is kept.
func (r *Renderer) SetShader(shader *resource.Shader) {
	r.checkOpen()
	if shader == nil {
		r.log().Warn("marathon: SetShader called with nil shader, unbinding program")
		r.dev.UseProgram(device.InvalidID)
		r.bound = nil
		return
	}
	ok, warnings := r.ValidateShader(shader)
	if !ok {
		r.log().Warn("marathon: shader is invalid, binding unchanged",
			"shader", shader.Name(), "warnings", warnings)
		return
	}
	h := r.shaders[shader]
	if r.bound == h {
		return
	}
	r.dev.UseProgram(h.Program)
	r.bound = h
}

// Shader returns the bound shader, or nil.
func (r *Renderer) Shader() *resource.Shader {
	if r.bound == nil {
		return nil
	}
	return r.bound.Shader
}

// HasUniform reports whether the bound shader has an active uniform called
// name. Reserved names always report false.
func (r *Renderer) HasUniform(name string) bool {
	if uniform.IsReserved(name) || r.bound == nil {
		return false
	}
	return r.dev.UniformLocation(r.bound.Program, name) != device.NoUniform
}

// SetUniform uploads v to the bound shader. Reserved names are rejected;
// they are set by the renderer on every draw.
func (r *Renderer) SetUniform(name string, v uniform.Value) error {
	r.checkOpen()
	switch {
	case uniform.IsReserved(name):
		return fmt.Errorf("SetUniform %q: %w", name, ErrReservedUniform)
	case !v.Valid():
		return fmt.Errorf("SetUniform %q: %w", name, ErrInvalidUniform)
	case r.bound == nil:
		return fmt.Errorf("SetUniform %q: %w", name, ErrNoShader)
	}
	loc := r.dev.UniformLocation(r.bound.Program, name)
	if loc == device.NoUniform {
		r.log().Warn("marathon: uniform not found in shader",
			"shader", r.bound.Shader.Name(), "uniform", name)
		return fmt.Errorf("SetUniform %q: %w", name, ErrUniformNotFound)
	}
	r.upload(loc, v)
	return nil
}

// uploadReserved sets the engine uniforms the program uses. Uniforms the
// program does not use are skipped silently.
func (r *Renderer) uploadReserved(program device.ProgramID) {
	values := [...]struct {
		name string
		v    uniform.Value
	}{
		{uniform.Time, uniform.Float(float32(r.clock.Time()))},
		{uniform.TimeDelta, uniform.Float(float32(r.clock.Delta()))},
		{uniform.FrameIndex, uniform.Int(int32(r.clock.FrameIndex()))},
		{uniform.Resolution, uniform.Vec2(mgl32.Vec2{float32(r.width), float32(r.height)})},
		{uniform.Model, uniform.Mat4(r.transforms.Top())},
		{uniform.View, uniform.Mat4(r.view)},
		{uniform.Projection, uniform.Mat4(r.projection)},
	}
	for _, u := range values {
		if loc := r.dev.UniformLocation(program, u.name); loc != device.NoUniform {
			r.upload(loc, u.v)
		}
	}
}

// uploadMaterial sets the material's uniforms in name order.
func (r *Renderer) uploadMaterial(program device.ProgramID, mat *resource.Material) {
	for _, name := range mat.Uniforms() {
		v, err := mat.GetUniform(name)
		if err != nil {
			continue
		}
		loc := r.dev.UniformLocation(program, name)
		if loc == device.NoUniform {
			r.log().Warn("marathon: material uniform not found in shader",
				"material", mat.Name(), "uniform", name)
			continue
		}
		r.upload(loc, v)
	}
}

func (r *Renderer) upload(loc device.UniformLocation, v uniform.Value) {
	switch v.Type() {
	case uniform.TypeInt:
		r.dev.SetUniformInt(loc, v.Int())
	case uniform.TypeFloat:
		r.dev.SetUniformFloat(loc, v.Float())
	case uniform.TypeVec2:
		r.dev.SetUniformVec2(loc, v.Vec2())
	case uniform.TypeVec3:
		r.dev.SetUniformVec3(loc, v.Vec3())
	case uniform.TypeVec4:
		r.dev.SetUniformVec4(loc, v.Vec4())
	case uniform.TypeMat2:
		r.dev.SetUniformMat2(loc, v.Mat2())
	case uniform.TypeMat3:
		r.dev.SetUniformMat3(loc, v.Mat3())
	case uniform.TypeMat4:
		r.dev.SetUniformMat4(loc, v.Mat4())
	case uniform.TypeInvalid:
		r.log().Warn("marathon: skipping invalid uniform value", "location", loc)
	}
}
