// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vertex

import "fmt"

// Attribute is the semantic meaning of a vertex attribute.
type Attribute uint8

// Semantic attributes.
const (
	Position Attribute = iota
	Normal
	Tangent
	Colour
	TexCoord0
	TexCoord1
	TexCoord2
	TexCoord3
	TexCoord4
	TexCoord5
	TexCoord6
	TexCoord7

	attributeCount
)

var attributeNames = [...]string{
	Position:  "position",
	Normal:    "normal",
	Tangent:   "tangent",
	Colour:    "colour",
	TexCoord0: "texcoord0",
	TexCoord1: "texcoord1",
	TexCoord2: "texcoord2",
	TexCoord3: "texcoord3",
	TexCoord4: "texcoord4",
	TexCoord5: "texcoord5",
	TexCoord6: "texcoord6",
	TexCoord7: "texcoord7",
}

// String returns the lower-case attribute name.
func (a Attribute) String() string {
	if a < attributeCount {
		return attributeNames[a]
	}
	return fmt.Sprintf("Attribute(%d)", uint8(a))
}

// Valid reports whether a is one of the declared semantic attributes.
func (a Attribute) Valid() bool { return a < attributeCount }

// Location returns the device binding location of a semantic attribute:
// position=0, normal=1, tangent=2, colour=3, texcoord0..7=4..11.
// Returns -1 for an unknown attribute.
func Location(a Attribute) int {
	if !a.Valid() {
		return -1
	}
	return int(a)
}

// Format is the storage format of a single attribute component.
type Format uint8

// Component formats. The zero value is invalid.
const (
	FormatInvalid Format = iota
	Float16
	Float32
	Float64
	Int8
	Int16
	Int32
	Uint8
	Uint16
	Uint32
)

var formatSizes = [...]int{
	FormatInvalid: 0,
	Float16:       2,
	Float32:       4,
	Float64:       8,
	Int8:          1,
	Int16:         2,
	Int32:         4,
	Uint8:         1,
	Uint16:        2,
	Uint32:        4,
}

var formatNames = [...]string{
	FormatInvalid: "invalid",
	Float16:       "float16",
	Float32:       "float32",
	Float64:       "float64",
	Int8:          "int8",
	Int16:         "int16",
	Int32:         "int32",
	Uint8:         "uint8",
	Uint16:        "uint16",
	Uint32:        "uint32",
}

// Size returns the size of one component in bytes, or 0 for an invalid format.
func (f Format) Size() int {
	if int(f) < len(formatSizes) {
		return formatSizes[f]
	}
	return 0
}

// Valid reports whether f is a known, non-zero format.
func (f Format) Valid() bool { return f != FormatInvalid && int(f) < len(formatSizes) }

// IsFloat reports whether components are stored as floating point.
func (f Format) IsFloat() bool { return f == Float16 || f == Float32 || f == Float64 }

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Descriptor describes one attribute of an interleaved vertex.
//
// Stride and Offset are derived values. They are filled in by [Layout]; values
// supplied by the caller are ignored by every function in this package.
type Descriptor struct {
	Attribute  Attribute
	Format     Format
	Components int
	Normalized bool
	Stride     int
	Offset     int
}

// Size returns the size of the attribute in bytes.
func (d Descriptor) Size() int {
	if d.Components <= 0 {
		return 0
	}
	return d.Format.Size() * d.Components
}

// IndexOf returns the position of attr in descs, or -1 if it was not declared.
func IndexOf(descs []Descriptor, attr Attribute) int {
	for i := range descs {
		if descs[i].Attribute == attr {
			return i
		}
	}
	return -1
}

// Has reports whether attr is declared in descs.
func Has(descs []Descriptor, attr Attribute) bool {
	return IndexOf(descs, attr) != -1
}

// Offset returns the byte offset of attr within a vertex, or -1 if attr was
// not declared. Callers should check [Has] first.
func Offset(descs []Descriptor, attr Attribute) int {
	idx := IndexOf(descs, attr)
	if idx == -1 {
		return -1
	}
	offset := 0
	for i := 0; i < idx; i++ {
		offset += descs[i].Size()
	}
	return offset
}

// Stride returns the total size of one vertex in bytes.
func Stride(descs []Descriptor) int {
	stride := 0
	for i := range descs {
		stride += descs[i].Size()
	}
	return stride
}

// Layout returns a copy of descs with Stride and Offset computed.
func Layout(descs []Descriptor) []Descriptor {
	out := make([]Descriptor, len(descs))
	stride := Stride(descs)
	offset := 0
	for i, d := range descs {
		d.Stride = stride
		d.Offset = offset
		offset += d.Size()
		out[i] = d
	}
	return out
}

// Primitive is the topology used to assemble vertices.
type Primitive uint8

// Primitive topologies. The zero value means "not set".
const (
	PrimitiveNone Primitive = iota
	Triangles
	TriangleFan
	TriangleStrip
)

// Valid reports whether p is a drawable topology.
func (p Primitive) Valid() bool { return p >= Triangles && p <= TriangleStrip }

func (p Primitive) String() string {
	switch p {
	case PrimitiveNone:
		return "none"
	case Triangles:
		return "triangles"
	case TriangleFan:
		return "triangle-fan"
	case TriangleStrip:
		return "triangle-strip"
	default:
		return fmt.Sprintf("Primitive(%d)", uint8(p))
	}
}

// TriangleCount returns the number of triangles assembled from n vertices.
func (p Primitive) TriangleCount(n int) int {
	switch p {
	case Triangles:
		return n / 3
	case TriangleFan, TriangleStrip:
		if n < 3 {
			return 0
		}
		return n - 2
	default:
		return 0
	}
}

// IndexFormat is the storage format of one index.
type IndexFormat uint8

// Index formats. IndexNone means the mesh has no index buffer.
const (
	IndexNone IndexFormat = iota
	IndexUint8
	IndexUint16
	IndexUint32
)

// Size returns the size of one index in bytes, or 0 for IndexNone.
func (f IndexFormat) Size() int {
	switch f {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	case IndexUint32:
		return 4
	default:
		return 0
	}
}

func (f IndexFormat) String() string {
	switch f {
	case IndexNone:
		return "none"
	case IndexUint8:
		return "uint8"
	case IndexUint16:
		return "uint16"
	case IndexUint32:
		return "uint32"
	default:
		return fmt.Sprintf("IndexFormat(%d)", uint8(f))
	}
}
