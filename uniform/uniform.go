// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package uniform defines the tagged uniform values carried by materials and
// the names reserved for engine-injected uniforms.
package uniform

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Reserved uniform names. The renderer uploads these before every draw; a
// material may not set them.
const (
	Time       = "u_time"
	TimeDelta  = "u_time_delta"
	FrameIndex = "u_frame_index"
	Resolution = "u_resolution"
	Model      = "u_model"
	View       = "u_view"
	Projection = "u_projection"
)

var reserved = map[string]struct{}{
	Time:       {},
	TimeDelta:  {},
	FrameIndex: {},
	Resolution: {},
	Model:      {},
	View:       {},
	Projection: {},
}

// IsReserved reports whether name is an engine-injected uniform.
func IsReserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// Reserved returns the reserved uniform names in upload order.
func Reserved() []string {
	return []string{Time, TimeDelta, FrameIndex, Resolution, Model, View, Projection}
}

// Type tags the payload of a [Value].
type Type uint8

// Uniform types. The zero value is invalid.
const (
	TypeInvalid Type = iota
	TypeInt
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat2
	TypeMat3
	TypeMat4
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeVec4:
		return "vec4"
	case TypeMat2:
		return "mat2"
	case TypeMat3:
		return "mat3"
	case TypeMat4:
		return "mat4"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Value is a uniform value tagged with its [Type]. The zero Value is invalid.
//
// Accessors for a type other than the tagged one return the zero value of the
// requested type.
type Value struct {
	typ  Type
	i    int32
	data [16]float32
}

// Int returns an int uniform value.
func Int(v int32) Value { return Value{typ: TypeInt, i: v} }

// Float returns a float uniform value.
func Float(v float32) Value {
	u := Value{typ: TypeFloat}
	u.data[0] = v
	return u
}

// Vec2 returns a vec2 uniform value.
func Vec2(v mgl32.Vec2) Value {
	u := Value{typ: TypeVec2}
	copy(u.data[:], v[:])
	return u
}

// Vec3 returns a vec3 uniform value.
func Vec3(v mgl32.Vec3) Value {
	u := Value{typ: TypeVec3}
	copy(u.data[:], v[:])
	return u
}

// Vec4 returns a vec4 uniform value.
func Vec4(v mgl32.Vec4) Value {
	u := Value{typ: TypeVec4}
	copy(u.data[:], v[:])
	return u
}

// Mat2 returns a column-major mat2 uniform value.
func Mat2(m mgl32.Mat2) Value {
	u := Value{typ: TypeMat2}
	copy(u.data[:], m[:])
	return u
}

// Mat3 returns a column-major mat3 uniform value.
func Mat3(m mgl32.Mat3) Value {
	u := Value{typ: TypeMat3}
	copy(u.data[:], m[:])
	return u
}

// Mat4 returns a column-major mat4 uniform value.
func Mat4(m mgl32.Mat4) Value {
	u := Value{typ: TypeMat4}
	copy(u.data[:], m[:])
	return u
}

// Type returns the tag of v.
func (v Value) Type() Type { return v.typ }

// Valid reports whether v carries a payload.
func (v Value) Valid() bool { return v.typ != TypeInvalid }

// Int returns the payload of an int value.
func (v Value) Int() int32 {
	if v.typ != TypeInt {
		return 0
	}
	return v.i
}

// Float returns the payload of a float value.
func (v Value) Float() float32 {
	if v.typ != TypeFloat {
		return 0
	}
	return v.data[0]
}

// Vec2 returns the payload of a vec2 value.
func (v Value) Vec2() mgl32.Vec2 {
	var out mgl32.Vec2
	if v.typ == TypeVec2 {
		copy(out[:], v.data[:])
	}
	return out
}

// Vec3 returns the payload of a vec3 value.
func (v Value) Vec3() mgl32.Vec3 {
	var out mgl32.Vec3
	if v.typ == TypeVec3 {
		copy(out[:], v.data[:])
	}
	return out
}

// Vec4 returns the payload of a vec4 value.
func (v Value) Vec4() mgl32.Vec4 {
	var out mgl32.Vec4
	if v.typ == TypeVec4 {
		copy(out[:], v.data[:])
	}
	return out
}

// Mat2 returns the payload of a mat2 value.
func (v Value) Mat2() mgl32.Mat2 {
	var out mgl32.Mat2
	if v.typ == TypeMat2 {
		copy(out[:], v.data[:])
	}
	return out
}

// Mat3 returns the payload of a mat3 value.
func (v Value) Mat3() mgl32.Mat3 {
	var out mgl32.Mat3
	if v.typ == TypeMat3 {
		copy(out[:], v.data[:])
	}
	return out
}

// Mat4 returns the payload of a mat4 value.
func (v Value) Mat4() mgl32.Mat4 {
	var out mgl32.Mat4
	if v.typ == TypeMat4 {
		copy(out[:], v.data[:])
	}
	return out
}

func (v Value) String() string {
	switch v.typ {
	case TypeInt:
		return fmt.Sprintf("int(%d)", v.i)
	case TypeFloat:
		return fmt.Sprintf("float(%g)", v.data[0])
	case TypeVec2:
		return fmt.Sprintf("vec2%v", v.data[:2])
	case TypeVec3:
		return fmt.Sprintf("vec3%v", v.data[:3])
	case TypeVec4:
		return fmt.Sprintf("vec4%v", v.data[:4])
	case TypeMat2:
		return fmt.Sprintf("mat2%v", v.data[:4])
	case TypeMat3:
		return fmt.Sprintf("mat3%v", v.data[:9])
	case TypeMat4:
		return fmt.Sprintf("mat4%v", v.data[:16])
	default:
		return "invalid"
	}
}
