package marathon

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/marathon/backend/headless"
	"github.com/gogpu/marathon/resource"
	"github.com/gogpu/marathon/uniform"
	"github.com/gogpu/marathon/vertex"
)

const flatVS = `
void main() {
	varying_colour = vertex_colour;
	gl_Position = u_projection * u_view * u_model * vec4(vertex_position, 1.0);
}
`

const flatFS = `
out vec4 frag_colour;
uniform vec4 u_tint;
void main() {
	frag_colour = varying_colour * u_tint;
}
`

const timeFS = `
out vec4 frag_colour;
void main() {
	frag_colour = vec4(u_time, u_time_delta, float(u_frame_index), u_resolution.x);
}
`

type testEnv struct {
	r   *Renderer
	dev *headless.Device
	log *bytes.Buffer
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	dev := headless.New()
	r := New(dev, append([]Option{WithLogger(logger)}, opts...)...)
	dev.ResetCalls()
	return &testEnv{r: r, dev: dev, log: &buf}
}

func (e *testEnv) warnings() string {
	var out []string
	for _, line := range strings.Split(e.log.String(), "\n") {
		if strings.Contains(line, "level=WARN") {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func (e *testEnv) assertNoDeviceErrors(t *testing.T) {
	t.Helper()
	if errs := e.dev.Errors(); len(errs) != 0 {
		t.Errorf("device errors: %v", errs)
	}
}

func putFloats(b []byte, fs ...float32) []byte {
	for _, f := range fs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

func triangleLayout() []vertex.Descriptor {
	return []vertex.Descriptor{
		{Attribute: vertex.Position, Format: vertex.Float32, Components: 3},
		{Attribute: vertex.Colour, Format: vertex.Uint8, Components: 4, Normalized: true},
	}
}

func triangleData() []byte {
	var b []byte
	b = putFloats(b, -1, -1, 0)
	b = append(b, 255, 0, 0, 255)
	b = putFloats(b, 1, -1, 0)
	b = append(b, 0, 255, 0, 255)
	b = putFloats(b, 0, 1, 0)
	b = append(b, 0, 0, 255, 255)
	return b
}

func newTriangle(t *testing.T, mat *resource.Material) *resource.Mesh {
	t.Helper()
	m := resource.NewMesh("triangle")
	m.SetVertexParams(3, triangleLayout())
	data := triangleData()
	if err := m.SetVertexData(data, len(data), 0, 0); err != nil {
		t.Fatal(err)
	}
	m.SetMaterial(mat)
	return m
}

func newFlatMaterial(t *testing.T) *resource.Material {
	t.Helper()
	mat := resource.NewMaterial("flat", resource.NewShader("flat", flatVS, flatFS))
	if err := mat.SetUniform("u_tint", uniform.Vec4(mgl32.Vec4{1, 1, 1, 1})); err != nil {
		t.Fatal(err)
	}
	return mat
}
