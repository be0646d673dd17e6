// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package uniform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIsReserved(t *testing.T) {
	for _, name := range Reserved() {
		if !IsReserved(name) {
			t.Errorf("IsReserved(%q) = false", name)
		}
	}
	for _, name := range []string{"u_colour", "time", "", "U_TIME"} {
		if IsReserved(name) {
			t.Errorf("IsReserved(%q) = true", name)
		}
	}
}

func TestValueTagging(t *testing.T) {
	m4 := mgl32.Translate3D(1, 2, 3)
	tests := []struct {
		name string
		v    Value
		typ  Type
	}{
		{"int", Int(7), TypeInt},
		{"float", Float(1.5), TypeFloat},
		{"vec2", Vec2(mgl32.Vec2{1, 2}), TypeVec2},
		{"vec3", Vec3(mgl32.Vec3{1, 2, 3}), TypeVec3},
		{"vec4", Vec4(mgl32.Vec4{1, 2, 3, 4}), TypeVec4},
		{"mat2", Mat2(mgl32.Ident2()), TypeMat2},
		{"mat3", Mat3(mgl32.Ident3()), TypeMat3},
		{"mat4", Mat4(m4), TypeMat4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Type() != tt.typ {
				t.Errorf("Type() = %v, want %v", tt.v.Type(), tt.typ)
			}
			if !tt.v.Valid() {
				t.Error("Valid() = false")
			}
		})
	}
}

func TestValuePayloadRoundTrip(t *testing.T) {
	if got := Int(-3).Int(); got != -3 {
		t.Errorf("Int = %d, want -3", got)
	}
	if got := Float(0.25).Float(); got != 0.25 {
		t.Errorf("Float = %v, want 0.25", got)
	}
	v3 := mgl32.Vec3{4, 5, 6}
	if got := Vec3(v3).Vec3(); got != v3 {
		t.Errorf("Vec3 = %v, want %v", got, v3)
	}
	m := mgl32.Scale3D(2, 3, 4)
	if got := Mat4(m).Mat4(); got != m {
		t.Errorf("Mat4 = %v, want %v", got, m)
	}
}

func TestValueWrongAccessorIsZero(t *testing.T) {
	v := Float(2)
	if v.Int() != 0 {
		t.Error("Int() on float value should be zero")
	}
	if v.Mat4() != (mgl32.Mat4{}) {
		t.Error("Mat4() on float value should be zero")
	}
	var zero Value
	if zero.Valid() {
		t.Error("zero Value should be invalid")
	}
	if zero.String() != "invalid" {
		t.Errorf("zero String() = %q", zero.String())
	}
}
