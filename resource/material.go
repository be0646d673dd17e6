package resource

import (
	"fmt"
	"sort"

	"github.com/gogpu/marathon/uniform"
)

// Material pairs a shader with named uniform values.
type Material struct {
	name     string
	shader   *Shader
	uniforms map[string]uniform.Value
}

// NewMaterial returns a material that draws with shader.
func NewMaterial(name string, shader *Shader) *Material {
	return &Material{name: name, shader: shader, uniforms: make(map[string]uniform.Value)}
}

// Name returns the debug name of the material.
func (m *Material) Name() string { return m.name }

// Shader returns the material's shader.
func (m *Material) Shader() *Shader { return m.shader }

// SetShader replaces the material's shader.
func (m *Material) SetShader(s *Shader) { m.shader = s }

// SetUniform inserts or overwrites a uniform. Reserved names are rejected.
func (m *Material) SetUniform(key string, v uniform.Value) error {
	if uniform.IsReserved(key) {
		Logger().Warn("resource: reserved uniform cannot be set on a material",
			"material", m.name, "uniform", key)
		return fmt.Errorf("SetUniform %q: %w", key, ErrReservedUniform)
	}
	if !v.Valid() {
		return fmt.Errorf("SetUniform %q: %w", key, ErrInvalidUniform)
	}
	m.uniforms[key] = v
	return nil
}

// GetUniform returns the value stored under key.
func (m *Material) GetUniform(key string) (uniform.Value, error) {
	v, ok := m.uniforms[key]
	if !ok {
		return uniform.Value{}, fmt.Errorf("GetUniform %q: %w", key, ErrUniformNotFound)
	}
	return v, nil
}

// HasUniform reports whether key is set. It is always false for reserved
// names.
func (m *Material) HasUniform(key string) bool {
	_, ok := m.uniforms[key]
	return ok
}

// RemoveUniform deletes key. Removing an unknown key is a no-op.
func (m *Material) RemoveUniform(key string) {
	delete(m.uniforms, key)
}

// Uniforms returns the uniform names in sorted order.
func (m *Material) Uniforms() []string {
	keys := make([]string, 0, len(m.uniforms))
	for k := range m.uniforms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
