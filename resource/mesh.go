package resource

import (
	"fmt"

	"github.com/gogpu/marathon/vertex"
)

// Dirty records what the device copy of a buffer needs before the next draw.
type Dirty uint8

// Dirty states, ordered by precedence. Realloc is never downgraded to Update.
const (
	// Clean means the device copy matches the CPU data.
	Clean Dirty = iota

	// Update means the contents changed but the size did not.
	Update

	// Realloc means the layout or size changed and device objects must be
	// recreated.
	Realloc

	// Delete means the CPU data was released and device objects must be too.
	Delete
)

func (d Dirty) String() string {
	switch d {
	case Clean:
		return "clean"
	case Update:
		return "update"
	case Realloc:
		return "realloc"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("Dirty(%d)", uint8(d))
	}
}

// Mesh owns interleaved vertex data, optional index data and the layout that
// describes them.
//
// Parameters are declared once with SetVertexParams and SetIndexParams, which
// allocate the CPU buffers. Data is then written in sub-ranges; writes never
// change the buffer size.
type Mesh struct {
	name string

	attrs       []vertex.Descriptor
	vertexCount int
	vertexData  []byte
	vertexDirty Dirty

	indexCount  int
	indexFormat vertex.IndexFormat
	indexData   []byte
	indexDirty  Dirty

	primitive vertex.Primitive
	material  *Material
}

// NewMesh returns an empty mesh. The primitive defaults to Triangles.
func NewMesh(name string) *Mesh {
	return &Mesh{name: name, primitive: vertex.Triangles}
}

// Name returns the debug name of the mesh.
func (m *Mesh) Name() string { return m.name }

// SetVertexParams declares the vertex count and layout and allocates a zeroed
// buffer of count × stride bytes, replacing any previous buffer.
//
// It panics if count <= 0 or attrs is empty.
func (m *Mesh) SetVertexParams(count int, attrs []vertex.Descriptor) {
	if count <= 0 {
		panic(fmt.Sprintf("resource: SetVertexParams: vertex count %d must be positive", count))
	}
	if len(attrs) == 0 {
		panic("resource: SetVertexParams: no vertex attributes")
	}
	m.attrs = vertex.Layout(attrs)
	m.vertexCount = count
	m.vertexData = make([]byte, count*vertex.Stride(attrs))
	m.vertexDirty = Realloc
}

// SetVertexData copies size bytes from data[srcOffset:] into the vertex
// buffer at dstOffset.
//
// Bad arguments are logged as warnings on the package logger (see
// [SetLogger]) and reported as an error; the buffer is left unmodified.
func (m *Mesh) SetVertexData(data []byte, size, srcOffset, dstOffset int) error {
	if err := writeRange(m.vertexData, data, size, srcOffset, dstOffset); err != nil {
		Logger().Warn("resource: SetVertexData rejected",
			"mesh", m.name, "size", size, "src", srcOffset, "dst", dstOffset, "err", err)
		return fmt.Errorf("SetVertexData: %w", err)
	}
	m.vertexDirty = touched(m.vertexDirty)
	return nil
}

// SetIndexParams declares the index count, format and primitive and
// allocates a zeroed index buffer. A count of zero removes the index buffer
// and the mesh is drawn non-indexed.
//
// It panics if count is negative, if count > 0 with IndexNone, or if the
// primitive is not drawable.
func (m *Mesh) SetIndexParams(count int, format vertex.IndexFormat, primitive vertex.Primitive) {
	if count < 0 {
		panic(fmt.Sprintf("resource: SetIndexParams: index count %d is negative", count))
	}
	if count > 0 && format.Size() == 0 {
		panic(fmt.Sprintf("resource: SetIndexParams: index format %v has no size", format))
	}
	if !primitive.Valid() {
		panic(fmt.Sprintf("resource: SetIndexParams: invalid primitive %v", primitive))
	}
	m.indexCount = count
	m.indexFormat = format
	m.primitive = primitive
	m.indexData = nil
	if count > 0 {
		m.indexData = make([]byte, count*format.Size())
	}
	m.indexDirty = Realloc
}

// SetIndexData copies size bytes from data[srcOffset:] into the index buffer
// at dstOffset. It follows the same rules as SetVertexData.
func (m *Mesh) SetIndexData(data []byte, size, srcOffset, dstOffset int) error {
	if err := writeRange(m.indexData, data, size, srcOffset, dstOffset); err != nil {
		Logger().Warn("resource: SetIndexData rejected",
			"mesh", m.name, "size", size, "src", srcOffset, "dst", dstOffset, "err", err)
		return fmt.Errorf("SetIndexData: %w", err)
	}
	m.indexDirty = touched(m.indexDirty)
	return nil
}

// SetPrimitive sets the topology used for drawing. It panics on an invalid
// primitive.
func (m *Mesh) SetPrimitive(p vertex.Primitive) {
	if !p.Valid() {
		panic(fmt.Sprintf("resource: SetPrimitive: invalid primitive %v", p))
	}
	m.primitive = p
}

// Clear releases both CPU buffers. The next validation releases the device
// objects and the mesh stops drawing until parameters are declared again.
func (m *Mesh) Clear() {
	m.vertexCount = 0
	m.vertexData = nil
	m.vertexDirty = Delete
	m.indexCount = 0
	m.indexData = nil
	m.indexDirty = Delete
}

func writeRange(dst, src []byte, size, srcOffset, dstOffset int) error {
	switch {
	case src == nil:
		return ErrNilData
	case dst == nil:
		return ErrNotAllocated
	case size < 0 || srcOffset < 0 || dstOffset < 0:
		return ErrOutOfRange
	case dstOffset > len(dst) || srcOffset > len(dst)-dstOffset:
		return ErrOutOfRange
	case size > len(dst)-dstOffset-srcOffset:
		return ErrOutOfRange
	case srcOffset > len(src) || size > len(src)-srcOffset:
		return ErrOutOfRange
	}
	copy(dst[dstOffset:dstOffset+size], src[srcOffset:srcOffset+size])
	return nil
}

func touched(d Dirty) Dirty {
	if d == Realloc {
		return Realloc
	}
	return Update
}

// VertexCount returns the declared number of vertices.
func (m *Mesh) VertexCount() int { return m.vertexCount }

// VertexSize returns the stride of one vertex in bytes.
func (m *Mesh) VertexSize() int { return vertex.Stride(m.attrs) }

// VertexAttributes returns a copy of the vertex layout.
func (m *Mesh) VertexAttributes() []vertex.Descriptor {
	out := make([]vertex.Descriptor, len(m.attrs))
	copy(out, m.attrs)
	return out
}

// HasVertexAttribute reports whether attr is part of the layout.
func (m *Mesh) HasVertexAttribute(attr vertex.Attribute) bool { return vertex.Has(m.attrs, attr) }

// VertexAttributeOffset returns the byte offset of attr, or -1 if absent.
func (m *Mesh) VertexAttributeOffset(attr vertex.Attribute) int { return vertex.Offset(m.attrs, attr) }

// VertexAttributeFormat returns the format of attr, or FormatInvalid if absent.
func (m *Mesh) VertexAttributeFormat(attr vertex.Attribute) vertex.Format {
	if i := vertex.IndexOf(m.attrs, attr); i != -1 {
		return m.attrs[i].Format
	}
	return vertex.FormatInvalid
}

// VertexAttributeComponents returns the component count of attr, or 0 if absent.
func (m *Mesh) VertexAttributeComponents(attr vertex.Attribute) int {
	if i := vertex.IndexOf(m.attrs, attr); i != -1 {
		return m.attrs[i].Components
	}
	return 0
}

// VertexAttributeLocation returns the device binding location of attr.
func (m *Mesh) VertexAttributeLocation(attr vertex.Attribute) int { return vertex.Location(attr) }

// VertexData returns the CPU vertex buffer. Callers must not retain it across
// SetVertexParams or Clear.
func (m *Mesh) VertexData() []byte { return m.vertexData }

// VertexDirty returns the vertex dirty state.
func (m *Mesh) VertexDirty() Dirty { return m.vertexDirty }

// ClearVertexDirty marks the vertex buffer as synchronized.
func (m *Mesh) ClearVertexDirty() { m.vertexDirty = Clean }

// IndexCount returns the declared number of indices.
func (m *Mesh) IndexCount() int { return m.indexCount }

// IndexFormat returns the index format.
func (m *Mesh) IndexFormat() vertex.IndexFormat { return m.indexFormat }

// IndexSize returns the size of one index in bytes.
func (m *Mesh) IndexSize() int { return m.indexFormat.Size() }

// IndexData returns the CPU index buffer, or nil for non-indexed meshes.
func (m *Mesh) IndexData() []byte { return m.indexData }

// IndexDirty returns the index dirty state.
func (m *Mesh) IndexDirty() Dirty { return m.indexDirty }

// ClearIndexDirty marks the index buffer as synchronized.
func (m *Mesh) ClearIndexDirty() { m.indexDirty = Clean }

// Primitive returns the draw topology.
func (m *Mesh) Primitive() vertex.Primitive { return m.primitive }

// Material returns the material used to draw the mesh, or nil.
func (m *Mesh) Material() *Material { return m.material }

// SetMaterial sets the material used to draw the mesh.
func (m *Mesh) SetMaterial(mat *Material) { m.material = mat }
