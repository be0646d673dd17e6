// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package device

import (
	"fmt"

	"github.com/gogpu/marathon/vertex"
)

// Resource IDs
//
// These opaque IDs represent device objects. Each implementation maintains
// the mapping between IDs and backend objects.

// BufferID is an opaque handle to a device buffer.
type BufferID uint32

// VertexArrayID is an opaque handle to a vertex layout object.
type VertexArrayID uint32

// ShaderID is an opaque handle to a compiled shader stage.
type ShaderID uint32

// ProgramID is an opaque handle to a linked shader program.
type ProgramID uint32

// InvalidID is the zero value, representing no object.
const InvalidID = 0

// UniformLocation is the location of a uniform within a linked program.
type UniformLocation int32

// NoUniform is returned for uniforms that do not exist in a program, either
// because they were never declared or because the compiler removed them.
const NoUniform UniformLocation = -1

// BufferTarget selects the binding point of a buffer.
type BufferTarget uint8

// Buffer targets.
const (
	// BufferTargetVertex holds interleaved vertex data.
	BufferTargetVertex BufferTarget = iota + 1

	// BufferTargetIndex holds index data.
	BufferTargetIndex
)

func (t BufferTarget) String() string {
	switch t {
	case BufferTargetVertex:
		return "vertex"
	case BufferTargetIndex:
		return "index"
	default:
		return fmt.Sprintf("BufferTarget(%d)", uint8(t))
	}
}

// Stage is a programmable pipeline stage.
type Stage uint8

// Shader stages.
const (
	StageVertex Stage = iota + 1
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// Language is the source language of a shader stage.
type Language uint8

// Shader languages. GLSL is the default.
const (
	LanguageGLSL Language = iota
	LanguageWGSL
)

func (l Language) String() string {
	switch l {
	case LanguageGLSL:
		return "glsl"
	case LanguageWGSL:
		return "wgsl"
	default:
		return fmt.Sprintf("Language(%d)", uint8(l))
	}
}

// CullFace selects which polygon faces are culled when culling is enabled.
type CullFace uint8

// Cull faces.
const (
	CullBack CullFace = iota
	CullFront
	CullFrontAndBack
)

func (c CullFace) String() string {
	switch c {
	case CullBack:
		return "back"
	case CullFront:
		return "front"
	case CullFrontAndBack:
		return "front-and-back"
	default:
		return fmt.Sprintf("CullFace(%d)", uint8(c))
	}
}

// AttributeBinding binds one vertex attribute of a vertex buffer to a shader
// input location.
type AttributeBinding struct {
	// Location is the shader input location.
	Location uint32

	// Components is the number of components (1-4).
	Components int

	// Format is the storage format of each component.
	Format vertex.Format

	// Normalized maps integer formats to [0,1] or [-1,1] when true.
	Normalized bool

	// Stride is the byte distance between consecutive vertices.
	Stride int

	// Offset is the byte offset of the attribute within a vertex.
	Offset int
}

// VertexArrayDesc describes a vertex layout object.
type VertexArrayDesc struct {
	// Label is an optional debug label.
	Label string

	// VertexBuffer supplies every attribute.
	VertexBuffer BufferID

	// IndexBuffer is optional. Use InvalidID for non-indexed geometry.
	IndexBuffer BufferID

	// Attributes are the attribute bindings.
	Attributes []AttributeBinding
}

// CompileResult reports the outcome of a compile or link step.
type CompileResult struct {
	// OK is true when the step succeeded.
	OK bool

	// Log is the compiler or linker info log. It may be non-empty on success.
	Log string
}
