package marathon

import (
	"fmt"
	"strings"

	"github.com/gogpu/marathon/device"
	"github.com/gogpu/marathon/resource"
	"github.com/gogpu/marathon/vertex"
)

// Mesh handler warnings.
const (
	WarnNoVertices       = "No vertices defined"
	WarnNoAttributes     = "No vertex attributes defined"
	WarnZeroVertexSize   = "Vertex size is 0 bytes"
	WarnNilVertexData    = "Vertex data is nil"
	WarnZeroIndexSize    = "Index size is 0 bytes"
	WarnNilIndexData     = "Index data is nil"
	warnAttributeInvalid = "Vertex attribute (%d) location invalid"
)

// Shader handler warning prefixes. The compiler or linker log follows.
const (
	WarnVertexCompile   = "Vertex shader compilation failed: "
	WarnFragmentCompile = "Fragment shader compilation failed: "
	WarnLink            = "Shader program linking failed: "
)

// MeshHandler holds the device objects of one mesh.
type MeshHandler struct {
	Mesh         *resource.Mesh
	VertexArray  device.VertexArrayID
	VertexBuffer device.BufferID
	IndexBuffer  device.BufferID
	Warnings     []string
	Valid        bool
}

// ShaderHandler holds the linked program of one shader.
type ShaderHandler struct {
	Shader   *resource.Shader
	Program  device.ProgramID
	Warnings []string
	Valid    bool

	version uint64
}

// HandlerStats reports handler cache effectiveness.
type HandlerStats struct {
	MeshHits     uint64
	MeshMisses   uint64
	ShaderHits   uint64
	ShaderMisses uint64
	Meshes       int
	Shaders      int
}

// HitRate returns the fraction of lookups served from the cache.
func (s HandlerStats) HitRate() float64 {
	hits := s.MeshHits + s.ShaderHits
	total := hits + s.MeshMisses + s.ShaderMisses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// HandlerStats returns the handler cache counters.
func (r *Renderer) HandlerStats() HandlerStats {
	s := r.handlerStats
	s.Meshes = len(r.meshes)
	s.Shaders = len(r.shaders)
	return s
}

// FindOrCreateMeshHandler returns the handler for mesh, creating its device
// objects on first use. A returned handler is never nil; check Valid.
func (r *Renderer) FindOrCreateMeshHandler(mesh *resource.Mesh) *MeshHandler {
	r.checkOpen()
	if mesh == nil {
		panic(msgNilMesh)
	}
	if h, ok := r.meshes[mesh]; ok {
		r.handlerStats.MeshHits++
		return h
	}
	r.handlerStats.MeshMisses++

	h := &MeshHandler{Mesh: mesh}
	r.createMeshObjects(h)
	mesh.ClearVertexDirty()
	mesh.ClearIndexDirty()
	r.meshes[mesh] = h
	return h
}

// ValidateMesh brings the mesh's device objects up to date and reports
// whether it can be drawn, with its warnings joined by newlines. A clean
// mesh costs no device calls.
func (r *Renderer) ValidateMesh(mesh *resource.Mesh) (bool, string) {
	r.checkOpen()
	h, existed := r.meshes[mesh]
	if !existed {
		h = r.FindOrCreateMeshHandler(mesh)
	} else {
		r.handlerStats.MeshHits++
		r.syncMesh(h)
	}
	return h.Valid, strings.Join(h.Warnings, "\n")
}

// ReleaseMesh drops the handler of mesh and releases its device objects.
func (r *Renderer) ReleaseMesh(mesh *resource.Mesh) {
	r.checkOpen()
	h, ok := r.meshes[mesh]
	if !ok {
		return
	}
	r.releaseMeshObjects(h)
	delete(r.meshes, mesh)
}

func (r *Renderer) syncMesh(h *MeshHandler) {
	m := h.Mesh
	vd, id := m.VertexDirty(), m.IndexDirty()
	if vd == resource.Clean && id == resource.Clean {
		return
	}

	switch {
	case vd >= resource.Realloc || id >= resource.Realloc:
		r.log().Debug("marathon: rebuilding mesh", "mesh", m.Name(),
			"vertex", vd.String(), "index", id.String())
		r.releaseMeshObjects(h)
		r.createMeshObjects(h)
	default:
		if vd == resource.Update && h.VertexBuffer != device.InvalidID {
			r.dev.UpdateBuffer(h.VertexBuffer, 0, m.VertexData())
		}
		if id == resource.Update && h.IndexBuffer != device.InvalidID {
			r.dev.UpdateBuffer(h.IndexBuffer, 0, m.IndexData())
		}
	}
	m.ClearVertexDirty()
	m.ClearIndexDirty()
}

// createMeshObjects validates the mesh and, if it is drawable, creates its
// buffers and vertex array. Invalid meshes get no device objects.
func (r *Renderer) createMeshObjects(h *MeshHandler) {
	m := h.Mesh
	h.Warnings = h.Warnings[:0]

	count := m.VertexCount()
	attrs := m.VertexAttributes()
	size := m.VertexSize()
	if count <= 0 {
		h.Warnings = append(h.Warnings, WarnNoVertices)
	}
	if len(attrs) == 0 {
		h.Warnings = append(h.Warnings, WarnNoAttributes)
	}
	if size == 0 {
		h.Warnings = append(h.Warnings, WarnZeroVertexSize)
	}
	if m.VertexData() == nil {
		h.Warnings = append(h.Warnings, WarnNilVertexData)
	}
	indexed := m.IndexCount() > 0
	if indexed {
		if m.IndexSize() == 0 {
			h.Warnings = append(h.Warnings, WarnZeroIndexSize)
		}
		if m.IndexData() == nil {
			h.Warnings = append(h.Warnings, WarnNilIndexData)
		}
	}

	bindings := make([]device.AttributeBinding, 0, len(attrs))
	for i, a := range attrs {
		loc := vertex.Location(a.Attribute)
		if loc < 0 {
			h.Warnings = append(h.Warnings, fmt.Sprintf(warnAttributeInvalid, i))
			continue
		}
		bindings = append(bindings, device.AttributeBinding{
			Location:   uint32(loc),
			Components: a.Components,
			Format:     a.Format,
			Normalized: a.Normalized,
			Stride:     a.Stride,
			Offset:     a.Offset,
		})
	}

	h.Valid = count > 0 && len(attrs) > 0 && size > 0 && (!indexed || m.IndexSize() > 0)
	if !h.Valid {
		r.log().Warn("marathon: mesh is not drawable", "mesh", m.Name(), "warnings", h.Warnings)
		return
	}

	h.VertexBuffer = r.dev.CreateBuffer(device.BufferTargetVertex, m.VertexData())
	if indexed {
		h.IndexBuffer = r.dev.CreateBuffer(device.BufferTargetIndex, m.IndexData())
	}
	h.VertexArray = r.dev.CreateVertexArray(&device.VertexArrayDesc{
		Label:        m.Name(),
		VertexBuffer: h.VertexBuffer,
		IndexBuffer:  h.IndexBuffer,
		Attributes:   bindings,
	})
	r.log().Debug("marathon: mesh handler created", "mesh", m.Name(),
		"vertices", count, "stride", size, "indices", m.IndexCount())
}

func (r *Renderer) releaseMeshObjects(h *MeshHandler) {
	if h.VertexArray != device.InvalidID {
		r.dev.DestroyVertexArray(h.VertexArray)
		h.VertexArray = device.InvalidID
	}
	if h.VertexBuffer != device.InvalidID {
		r.dev.DestroyBuffer(h.VertexBuffer)
		h.VertexBuffer = device.InvalidID
	}
	if h.IndexBuffer != device.InvalidID {
		r.dev.DestroyBuffer(h.IndexBuffer)
		h.IndexBuffer = device.InvalidID
	}
	h.Valid = false
}

// FindOrCreateShaderHandler returns the handler for shader, compiling and
// linking its program on first use. A returned handler is never nil; check
// Valid.
func (r *Renderer) FindOrCreateShaderHandler(shader *resource.Shader) *ShaderHandler {
	r.checkOpen()
	if shader == nil {
		panic(msgNilShader)
	}
	if h, ok := r.shaders[shader]; ok {
		r.handlerStats.ShaderHits++
		return h
	}
	r.handlerStats.ShaderMisses++

	h := &ShaderHandler{Shader: shader}
	r.buildProgram(h)
	r.shaders[shader] = h
	return h
}

// ValidateShader rebuilds the shader's program if its sources changed since
// it was built and reports whether it can be used, with its warnings joined
// by newlines.
func (r *Renderer) ValidateShader(shader *resource.Shader) (bool, string) {
	r.checkOpen()
	h, existed := r.shaders[shader]
	if !existed {
		h = r.FindOrCreateShaderHandler(shader)
	} else {
		r.handlerStats.ShaderHits++
		if h.version != shader.Version() {
			r.log().Debug("marathon: shader source changed, rebuilding", "shader", shader.Name())
			r.releaseProgram(h)
			r.buildProgram(h)
		}
	}
	return h.Valid, strings.Join(h.Warnings, "\n")
}

// ReleaseShader drops the handler of shader and releases its program.
func (r *Renderer) ReleaseShader(shader *resource.Shader) {
	r.checkOpen()
	h, ok := r.shaders[shader]
	if !ok {
		return
	}
	r.releaseProgram(h)
	delete(r.shaders, shader)
}

func (r *Renderer) buildProgram(h *ShaderHandler) {
	s := h.Shader
	h.Warnings = h.Warnings[:0]
	h.Valid = false
	h.version = s.Version()

	vsSrc, fsSrc := s.VertexSource(), s.FragmentSource()
	vs, vres := r.dev.CompileShader(device.StageVertex, vsSrc.Language,
		Prologue(device.StageVertex, vsSrc.Language)+vsSrc.Code)
	fs, fres := r.dev.CompileShader(device.StageFragment, fsSrc.Language,
		Prologue(device.StageFragment, fsSrc.Language)+fsSrc.Code)
	defer r.dev.DestroyShader(vs)
	defer r.dev.DestroyShader(fs)

	if !vres.OK {
		h.Warnings = append(h.Warnings, WarnVertexCompile+vres.Log)
	}
	if !fres.OK {
		h.Warnings = append(h.Warnings, WarnFragmentCompile+fres.Log)
	}
	if !vres.OK || !fres.OK {
		r.log().Warn("marathon: shader failed to compile", "shader", s.Name(), "warnings", h.Warnings)
		return
	}

	program, lres := r.dev.LinkProgram(vs, fs)
	if !lres.OK {
		h.Warnings = append(h.Warnings, WarnLink+lres.Log)
		r.dev.DestroyProgram(program)
		r.log().Warn("marathon: shader failed to link", "shader", s.Name(), "warnings", h.Warnings)
		return
	}
	h.Program = program
	h.Valid = true
	r.log().Debug("marathon: shader handler created", "shader", s.Name(), "program", program)
}

func (r *Renderer) releaseProgram(h *ShaderHandler) {
	if r.bound == h {
		r.dev.UseProgram(device.InvalidID)
		r.bound = nil
	}
	if h.Program != device.InvalidID {
		r.dev.DestroyProgram(h.Program)
		h.Program = device.InvalidID
	}
	h.Valid = false
}
