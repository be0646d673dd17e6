package main

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/marathon"
	"github.com/gogpu/marathon/primitives"
	"github.com/gogpu/marathon/resource"
	"github.com/gogpu/marathon/uniform"
	"github.com/gogpu/marathon/vertex"
)

const triangleVS = `
void main() {
	varying_colour = vertex_colour;
	gl_Position = u_projection * u_view * u_model * vec4(vertex_position, 1.0);
}
`

const triangleFS = `
out vec4 frag_colour;
uniform vec4 u_tint;
void main() {
	float pulse = 0.75 + 0.25 * sin(u_time * 2.0);
	frag_colour = varying_colour * u_tint * vec4(vec3(pulse), 1.0);
}
`

type scene struct {
	mesh *resource.Mesh
	cube *resource.Mesh
}

func newScene(shader *resource.Shader) (*scene, error) {
	mesh := resource.NewMesh("triangle")
	mesh.SetVertexParams(3, []vertex.Descriptor{
		{Attribute: vertex.Position, Format: vertex.Float32, Components: 3},
		{Attribute: vertex.Colour, Format: vertex.Uint8, Components: 4, Normalized: true},
	})

	var data []byte
	corners := [3]struct {
		pos    [3]float32
		colour [4]byte
	}{
		{[3]float32{-0.8, -0.7, 0}, [4]byte{255, 64, 64, 255}},
		{[3]float32{0.8, -0.7, 0}, [4]byte{64, 255, 64, 255}},
		{[3]float32{0, 0.8, 0}, [4]byte{64, 64, 255, 255}},
	}
	for _, c := range corners {
		for _, f := range c.pos {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
		}
		data = append(data, c.colour[:]...)
	}
	if err := mesh.SetVertexData(data, len(data), 0, 0); err != nil {
		return nil, err
	}

	mat := resource.NewMaterial("triangle", shader)
	if err := mat.SetUniform("u_tint", uniform.Vec4(mgl32.Vec4{1, 1, 1, 1})); err != nil {
		return nil, err
	}
	mesh.SetMaterial(mat)

	cube := primitives.NewCube()
	cube.SetMaterial(resource.NewMaterial("cube", primitives.DefaultShader()))
	return &scene{mesh: mesh, cube: cube}, nil
}

func (s *scene) draw(r *marathon.Renderer, width, height int) {
	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	r.SetProjection(mgl32.Perspective(mgl32.DegToRad(45), aspect, 0.1, 100))
	r.SetView(mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	r.Clear(true, true, false)

	angle := float32(r.Clock().Time())
	r.PushTranslate(mgl32.Vec3{0, 0, -2})
	r.PushRotate(mgl32.Vec3{angle * 0.5, angle, 0})
	r.PushScale(mgl32.Vec3{0.4, 0.4, 0.4})
	r.Draw(s.cube)
	r.PopTransform()
	r.PopTransform()
	r.PopTransform()

	r.PushRotate(mgl32.Vec3{0, angle, 0})
	r.Draw(s.mesh)
	r.PushTranslate(mgl32.Vec3{0, 0, -1})
	r.PushScale(mgl32.Vec3{0.5, 0.5, 0.5})
	r.Draw(s.mesh)
	r.PopTransform()
	r.PopTransform()
	r.PopTransform()
}
