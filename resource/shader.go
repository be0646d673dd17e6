package resource

import (
	"hash/fnv"

	"github.com/gogpu/marathon/device"
)

// ShaderSource is the source text of one shader stage.
type ShaderSource struct {
	Stage    device.Stage
	Language device.Language
	Code     string
}

// Shader holds vertex and fragment stage sources. Compilation is done by the
// renderer; a Shader never owns a device program.
//
// Every source edit changes Version, which the renderer uses to recompile
// programs built from older sources.
type Shader struct {
	name     string
	lang     device.Language
	vertex   string
	fragment string
	version  uint64
}

// NewShader returns a GLSL shader with the given sources.
func NewShader(name, vertexSrc, fragmentSrc string) *Shader {
	s := &Shader{name: name, vertex: vertexSrc, fragment: fragmentSrc}
	s.rehash()
	return s
}

// Name returns the debug name of the shader.
func (s *Shader) Name() string { return s.name }

// Language returns the source language of both stages.
func (s *Shader) Language() device.Language { return s.lang }

// SetLanguage sets the source language of both stages.
func (s *Shader) SetLanguage(lang device.Language) {
	s.lang = lang
	s.rehash()
}

// SetVertexSource replaces the vertex stage source.
func (s *Shader) SetVertexSource(src string) {
	s.vertex = src
	s.rehash()
}

// SetFragmentSource replaces the fragment stage source.
func (s *Shader) SetFragmentSource(src string) {
	s.fragment = src
	s.rehash()
}

// SetSources replaces both stage sources.
func (s *Shader) SetSources(vertexSrc, fragmentSrc string) {
	s.vertex = vertexSrc
	s.fragment = fragmentSrc
	s.rehash()
}

// VertexSource returns the vertex stage source.
func (s *Shader) VertexSource() ShaderSource {
	return ShaderSource{Stage: device.StageVertex, Language: s.lang, Code: s.vertex}
}

// FragmentSource returns the fragment stage source.
func (s *Shader) FragmentSource() ShaderSource {
	return ShaderSource{Stage: device.StageFragment, Language: s.lang, Code: s.fragment}
}

// Version returns a stamp of the current sources. Equal sources give equal
// stamps.
func (s *Shader) Version() uint64 { return s.version }

func (s *Shader) rehash() {
	h := fnv.New64a()
	h.Write([]byte{byte(s.lang)})
	h.Write([]byte(s.vertex))
	h.Write([]byte{0})
	h.Write([]byte(s.fragment))
	s.version = h.Sum64()
}
