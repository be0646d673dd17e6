package marathon

import (
	"github.com/gogpu/marathon/device"
)

const glslVertexPrologue = `#version 330 core
layout(location = 0) in vec3 vertex_position;
layout(location = 1) in vec3 vertex_normal;
layout(location = 2) in vec4 vertex_tangent;
layout(location = 3) in vec4 vertex_colour;
layout(location = 4) in vec2 vertex_texcoord0;
layout(location = 5) in vec2 vertex_texcoord1;
layout(location = 6) in vec2 vertex_texcoord2;
layout(location = 7) in vec2 vertex_texcoord3;

out vec4 varying_position;
out vec3 varying_normal;
out vec4 varying_colour;
out vec2 varying_texcoord0;

` + glslUniforms + "#line 1\n"

const glslFragmentPrologue = `#version 330 core
in vec4 varying_position;
in vec3 varying_normal;
in vec4 varying_colour;
in vec2 varying_texcoord0;

` + glslUniforms + "#line 1\n"

const glslUniforms = `uniform float u_time;
uniform float u_time_delta;
uniform int u_frame_index;
uniform vec2 u_resolution;
uniform mat4 u_model;
uniform mat4 u_view;
uniform mat4 u_projection;
`

// Both WGSL stages share one prologue; each stage source is a full module.
const wgslPrologue = `struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) tangent: vec4<f32>,
    @location(3) colour: vec4<f32>,
    @location(4) texcoord0: vec2<f32>,
    @location(5) texcoord1: vec2<f32>,
    @location(6) texcoord2: vec2<f32>,
    @location(7) texcoord3: vec2<f32>,
}

struct Varyings {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) position: vec4<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) colour: vec4<f32>,
    @location(3) texcoord0: vec2<f32>,
}

@group(0) @binding(0) var<uniform> u_time: f32;
@group(0) @binding(1) var<uniform> u_time_delta: f32;
@group(0) @binding(2) var<uniform> u_frame_index: i32;
@group(0) @binding(3) var<uniform> u_resolution: vec2<f32>;
@group(0) @binding(4) var<uniform> u_model: mat4x4<f32>;
@group(0) @binding(5) var<uniform> u_view: mat4x4<f32>;
@group(0) @binding(6) var<uniform> u_projection: mat4x4<f32>;

`

// Prologue returns the declarations prepended to a shader stage: vertex
// inputs at their fixed locations, the varyings passed between stages and
// the engine uniforms. GLSL prologues end with a #line directive so compiler
// messages use line numbers of the user source.
func Prologue(stage device.Stage, lang device.Language) string {
	if lang == device.LanguageWGSL {
		return wgslPrologue
	}
	if stage == device.StageFragment {
		return glslFragmentPrologue
	}
	return glslVertexPrologue
}
