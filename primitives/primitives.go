// Package primitives provides built-in meshes and a default shader so a
// scene can be drawn without loading any files.
//
// Every mesh has a single Float32x3 position attribute spanning [-1, 1] and
// no material. Indexed meshes use 32-bit indices and counter-clockwise
// front faces.
package primitives

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/marathon/resource"
	"github.com/gogpu/marathon/vertex"
)

var triangleVertices = []float32{
	0, 1, 0,
	-1, -1, 0,
	1, -1, 0,
}

var quadVertices = []float32{
	-1, -1, 0,
	1, -1, 0,
	1, 1, 0,
	-1, 1, 0,
}

var quadIndices = []uint32{0, 1, 2, 2, 3, 0}

var cubeVertices = []float32{
	// front
	-1, -1, 1,
	1, -1, 1,
	1, 1, 1,
	-1, 1, 1,
	// back
	-1, -1, -1,
	1, -1, -1,
	1, 1, -1,
	-1, 1, -1,
}

var cubeIndices = []uint32{
	0, 1, 2, 2, 3, 0,
	1, 5, 6, 6, 2, 1,
	7, 6, 5, 5, 4, 7,
	4, 0, 3, 3, 7, 4,
	3, 2, 6, 6, 7, 3,
	4, 5, 1, 1, 0, 4,
}

// PositionLayout is the vertex layout of every built-in mesh.
func PositionLayout() []vertex.Descriptor {
	return []vertex.Descriptor{{Attribute: vertex.Position, Format: vertex.Float32, Components: 3}}
}

// NewTriangle returns a non-indexed triangle.
func NewTriangle() *resource.Mesh {
	return newMesh("triangle", triangleVertices, nil)
}

// NewQuad returns an indexed quad in the XY plane made of two triangles.
func NewQuad() *resource.Mesh {
	return newMesh("quad", quadVertices, quadIndices)
}

// NewCube returns an indexed cube with 8 shared corners and 12 triangles.
func NewCube() *resource.Mesh {
	return newMesh("cube", cubeVertices, cubeIndices)
}

func newMesh(name string, positions []float32, indices []uint32) *resource.Mesh {
	m := resource.NewMesh(name)
	m.SetVertexParams(len(positions)/3, PositionLayout())
	data := make([]byte, 0, 4*len(positions))
	for _, f := range positions {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}
	mustWrite(m.SetVertexData(data, len(data), 0, 0))

	if len(indices) > 0 {
		m.SetIndexParams(len(indices), vertex.IndexUint32, vertex.Triangles)
		idx := make([]byte, 0, 4*len(indices))
		for _, i := range indices {
			idx = binary.LittleEndian.AppendUint32(idx, i)
		}
		mustWrite(m.SetIndexData(idx, len(idx), 0, 0))
	}
	return m
}

// mustWrite panics on a failed write of built-in data, which sizes its own
// buffers.
func mustWrite(err error) {
	if err != nil {
		panic("primitives: " + err.Error())
	}
}

const defaultVertexSource = `
void main() {
	varying_position = vec4(vertex_position, 1.0);
	gl_Position = u_projection * u_view * u_model * vec4(vertex_position, 1.0);
}
`

// The object-space position doubles as the colour.
const defaultFragmentSource = `
out vec4 frag_colour;

void main() {
	frag_colour = vec4(abs(varying_position.xyz), 1.0);
}
`

// DefaultShader returns a new GLSL shader that transforms positions by the
// model, view and projection matrices and colours fragments by their
// object-space position. It uses no material uniforms.
func DefaultShader() *resource.Shader {
	return resource.NewShader("default", defaultVertexSource, defaultFragmentSource)
}
