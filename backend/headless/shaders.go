package headless

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/marathon/device"
	"github.com/gogpu/marathon/uniform"
)

type shader struct {
	stage    device.Stage
	lang     device.Language
	ok       bool
	uniforms map[string]uniformDecl
	spirv    []byte
}

type uniformDecl struct {
	typ    uniform.Type
	glType string
	active bool
}

type program struct {
	ok       bool
	uniforms map[string]uniformSlot
	values   map[device.UniformLocation]uniform.Value
}

type uniformSlot struct {
	loc    device.UniformLocation
	typ    uniform.Type
	glType string
}

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
	versionRe      = regexp.MustCompile(`^\s*#version\s+\d+(\s+(core|compatibility|es))?\s*$`)
	glslMainRe     = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void\s*)?\)\s*\{`)
	glslUniformRe  = regexp.MustCompile(`\buniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*;`)
	wgslUniformRe  = regexp.MustCompile(`\bvar\s*<\s*uniform\s*>\s*(\w+)\s*:\s*([\w<>]+)\s*;`)
	wgslEntryRe    = map[device.Stage]*regexp.Regexp{
		device.StageVertex:   regexp.MustCompile(`@vertex\b`),
		device.StageFragment: regexp.MustCompile(`@fragment\b`),
	}
)

var glslTypes = map[string]uniform.Type{
	"int":         uniform.TypeInt,
	"bool":        uniform.TypeInt,
	"sampler2D":   uniform.TypeInt,
	"samplerCube": uniform.TypeInt,
	"float":       uniform.TypeFloat,
	"vec2":        uniform.TypeVec2,
	"vec3":        uniform.TypeVec3,
	"vec4":        uniform.TypeVec4,
	"mat2":        uniform.TypeMat2,
	"mat3":        uniform.TypeMat3,
	"mat4":        uniform.TypeMat4,
}

var wgslTypes = map[string]uniform.Type{
	"i32":         uniform.TypeInt,
	"u32":         uniform.TypeInt,
	"f32":         uniform.TypeFloat,
	"vec2f":       uniform.TypeVec2,
	"vec2<f32>":   uniform.TypeVec2,
	"vec3f":       uniform.TypeVec3,
	"vec3<f32>":   uniform.TypeVec3,
	"vec4f":       uniform.TypeVec4,
	"vec4<f32>":   uniform.TypeVec4,
	"mat2x2f":     uniform.TypeMat2,
	"mat2x2<f32>": uniform.TypeMat2,
	"mat3x3f":     uniform.TypeMat3,
	"mat3x3<f32>": uniform.TypeMat3,
	"mat4x4f":     uniform.TypeMat4,
	"mat4x4<f32>": uniform.TypeMat4,
}

// CompileShader implements device.Device.
func (d *Device) CompileShader(stage device.Stage, lang device.Language, source string) (device.ShaderID, device.CompileResult) {
	id := device.ShaderID(d.allocID())
	d.record(OpCompileShader, id, stage, lang)

	s := &shader{stage: stage, lang: lang}
	var log string
	switch lang {
	case device.LanguageGLSL:
		s.uniforms, log = compileGLSL(source)
	case device.LanguageWGSL:
		s.uniforms, s.spirv, log = compileWGSL(stage, source)
	default:
		log = fmt.Sprintf("unsupported shader language %v", lang)
	}
	s.ok = log == ""
	d.shaders[id] = s

	if !s.ok {
		d.logger.Debug("headless: shader compile failed", "id", id, "stage", stage.String(), "log", log)
	}
	return id, device.CompileResult{OK: s.ok, Log: log}
}

// DestroyShader implements device.Device.
func (d *Device) DestroyShader(id device.ShaderID) {
	d.record(OpDestroyShader, id)
	_, live := d.shaders[id]
	if d.release(OpDestroyShader, uint32(id), live) {
		delete(d.shaders, id)
	}
}

// LinkProgram implements device.Device.
func (d *Device) LinkProgram(vs, fs device.ShaderID) (device.ProgramID, device.CompileResult) {
	id := device.ProgramID(d.allocID())
	d.record(OpLinkProgram, id, vs, fs)

	p := &program{
		uniforms: make(map[string]uniformSlot),
		values:   make(map[device.UniformLocation]uniform.Value),
	}
	d.programs[id] = p

	log := d.link(p, vs, fs)
	p.ok = log == ""
	return id, device.CompileResult{OK: p.ok, Log: log}
}

func (d *Device) link(p *program, vsID, fsID device.ShaderID) string {
	vs, ok := d.shaders[vsID]
	if !ok {
		return fmt.Sprintf("vertex shader %d does not exist", vsID)
	}
	fs, ok := d.shaders[fsID]
	if !ok {
		return fmt.Sprintf("fragment shader %d does not exist", fsID)
	}
	switch {
	case !vs.ok || !fs.ok:
		return "attached shaders are not compiled"
	case vs.stage != device.StageVertex:
		return fmt.Sprintf("shader %d is a %v shader, not a vertex shader", vsID, vs.stage)
	case fs.stage != device.StageFragment:
		return fmt.Sprintf("shader %d is a %v shader, not a fragment shader", fsID, fs.stage)
	case vs.lang != fs.lang:
		return fmt.Sprintf("stage languages differ: %v and %v", vs.lang, fs.lang)
	}

	decls := make(map[string]uniformDecl, len(vs.uniforms)+len(fs.uniforms))
	for _, stage := range []map[string]uniformDecl{vs.uniforms, fs.uniforms} {
		for name, u := range stage {
			prev, seen := decls[name]
			if seen && prev.glType != u.glType {
				return fmt.Sprintf("uniform %q declared as %s and %s", name, prev.glType, u.glType)
			}
			u.active = u.active || prev.active
			decls[name] = u
		}
	}

	active := make([]string, 0, len(decls))
	for name, u := range decls {
		if u.active {
			active = append(active, name)
		}
	}
	sort.Strings(active)
	for i, name := range active {
		p.uniforms[name] = uniformSlot{loc: device.UniformLocation(i), typ: decls[name].typ, glType: decls[name].glType}
	}
	return ""
}

// UseProgram implements device.Device.
func (d *Device) UseProgram(id device.ProgramID) {
	d.record(OpUseProgram, id)
	if id != device.InvalidID {
		p, ok := d.programs[id]
		if !ok {
			d.fail(OpUseProgram, fmt.Errorf("program %d: %w", id, ErrUnknownObject))
			return
		}
		if !p.ok {
			d.fail(OpUseProgram, fmt.Errorf("program %d is not linked: %w", id, ErrInvalidOperation))
			return
		}
	}
	d.boundProgram = id
}

// DestroyProgram implements device.Device.
func (d *Device) DestroyProgram(id device.ProgramID) {
	d.record(OpDestroyProgram, id)
	_, live := d.programs[id]
	if d.release(OpDestroyProgram, uint32(id), live) {
		delete(d.programs, id)
		d.locations.DeleteFunc(func(k locationKey) bool { return k.program == id })
		if d.boundProgram == id {
			d.boundProgram = device.InvalidID
		}
	}
}

// BoundProgram returns the current program.
func (d *Device) BoundProgram() device.ProgramID { return d.boundProgram }

// UniformLocation implements device.Device. Lookups are memoized per
// program; only cache misses are recorded as calls.
func (d *Device) UniformLocation(id device.ProgramID, name string) device.UniformLocation {
	p, ok := d.programs[id]
	if !ok || !p.ok {
		d.fail(OpUniformLocation, fmt.Errorf("program %d: %w", id, ErrInvalidOperation))
		return device.NoUniform
	}
	return d.locations.GetOrCreate(locationKey{program: id, name: name}, func() device.UniformLocation {
		d.record(OpUniformLocation, id, name)
		if slot, ok := p.uniforms[name]; ok {
			return slot.loc
		}
		return device.NoUniform
	})
}

// Uniform returns the last value uploaded to a uniform of a program.
func (d *Device) Uniform(id device.ProgramID, name string) (uniform.Value, bool) {
	p, ok := d.programs[id]
	if !ok {
		return uniform.Value{}, false
	}
	slot, ok := p.uniforms[name]
	if !ok {
		return uniform.Value{}, false
	}
	v, ok := p.values[slot.loc]
	return v, ok
}

// ActiveUniforms returns the active uniform names of a program, sorted.
func (d *Device) ActiveUniforms(id device.ProgramID) []string {
	p, ok := d.programs[id]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(p.uniforms))
	for name := range p.uniforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Device) setUniform(loc device.UniformLocation, v uniform.Value) {
	d.record(OpSetUniform, loc, v)
	if loc == device.NoUniform {
		return
	}
	p, ok := d.programs[d.boundProgram]
	if !ok {
		d.fail(OpSetUniform, fmt.Errorf("no program bound: %w", ErrInvalidOperation))
		return
	}
	for name, slot := range p.uniforms {
		if slot.loc != loc {
			continue
		}
		if slot.typ != v.Type() {
			d.fail(OpSetUniform, fmt.Errorf("uniform %q is %s, got %v: %w", name, slot.glType, v.Type(), ErrInvalidOperation))
			return
		}
		p.values[loc] = v
		return
	}
	d.fail(OpSetUniform, fmt.Errorf("location %d not in program %d: %w", loc, d.boundProgram, ErrInvalidOperation))
}

// stripComments removes comments and keeps line breaks so line numbers in
// diagnostics match the source.
func stripComments(src string) string {
	src = blockCommentRe.ReplaceAllStringFunc(src, func(c string) string {
		return strings.Repeat("\n", strings.Count(c, "\n"))
	})
	return lineCommentRe.ReplaceAllString(src, "")
}

func compileGLSL(source string) (map[string]uniformDecl, string) {
	src := stripComments(source)

	first := ""
	for _, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) != "" {
			first = line
			break
		}
	}
	if first == "" {
		return nil, "0:0: error: empty shader source"
	}
	if !versionRe.MatchString(first) {
		return nil, "0:1: error: #version directive must be the first statement"
	}
	if msg := checkBalanced(src); msg != "" {
		return nil, msg
	}
	if !glslMainRe.MatchString(src) {
		return nil, "0:0: error: missing entry point 'void main()'"
	}

	uniforms := make(map[string]uniformDecl)
	for _, m := range glslUniformRe.FindAllStringSubmatch(src, -1) {
		glType, name := m[1], m[2]
		typ, ok := glslTypes[glType]
		if !ok {
			return nil, fmt.Sprintf("0:0: error: unsupported uniform type '%s' for '%s'", glType, name)
		}
		if prev, dup := uniforms[name]; dup && prev.glType != glType {
			return nil, fmt.Sprintf("0:0: error: redeclaration of uniform '%s'", name)
		}
		uniforms[name] = uniformDecl{typ: typ, glType: glType}
	}
	markActive(uniforms, glslUniformRe.ReplaceAllString(src, ""))
	return uniforms, ""
}

func compileWGSL(stage device.Stage, source string) (map[string]uniformDecl, []byte, string) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, nil, err.Error()
	}
	src := stripComments(source)
	if re, ok := wgslEntryRe[stage]; ok && !re.MatchString(src) {
		return nil, nil, fmt.Sprintf("missing @%v entry point", stage)
	}

	uniforms := make(map[string]uniformDecl)
	for _, m := range wgslUniformRe.FindAllStringSubmatch(src, -1) {
		name, wgslType := m[1], m[2]
		typ, ok := wgslTypes[wgslType]
		if !ok {
			return nil, nil, fmt.Sprintf("unsupported uniform type '%s' for '%s'", wgslType, name)
		}
		uniforms[name] = uniformDecl{typ: typ, glType: wgslType}
	}
	markActive(uniforms, wgslUniformRe.ReplaceAllString(src, ""))
	return uniforms, spirv, ""
}

// markActive flags uniforms referenced by the remaining code.
func markActive(uniforms map[string]uniformDecl, body string) {
	for name, u := range uniforms {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		u.active = re.MatchString(body)
		uniforms[name] = u
	}
}

func checkBalanced(src string) string {
	pairs := map[rune]rune{')': '(', '}': '{', ']': '['}
	var stack []rune
	line := 1
	for _, r := range src {
		switch r {
		case '\n':
			line++
		case '(', '{', '[':
			stack = append(stack, r)
		case ')', '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != pairs[r] {
				return fmt.Sprintf("0:%d: error: unexpected '%c'", line, r)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Sprintf("0:%d: error: unexpected end of file, unclosed '%c'", line, stack[len(stack)-1])
	}
	return ""
}
