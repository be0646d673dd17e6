package marathon

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransformStackIdentity(t *testing.T) {
	s := NewTransformStack()
	if s.Top() != mgl32.Ident4() || s.Depth() != 0 {
		t.Fatalf("new stack: top=%v depth=%d", s.Top(), s.Depth())
	}
	s.Push(mgl32.Ident4())
	if s.Top() != mgl32.Ident4() || s.Depth() != 1 {
		t.Errorf("after identity push: top=%v depth=%d", s.Top(), s.Depth())
	}
	s.Pop()
	if s.Depth() != 0 {
		t.Errorf("Depth() = %d after pop", s.Depth())
	}
}

func TestTransformStackComposes(t *testing.T) {
	s := NewTransformStack()
	base := mgl32.Translate3D(1, 0, 0)
	s.Push(base)
	s.Push(mgl32.Scale3D(2, 2, 2))
	s.Push(mgl32.Translate3D(0, 3, 0))

	p := s.Top().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !p.ApproxEqual(mgl32.Vec4{1, 6, 0, 1}) {
		t.Errorf("origin maps to %v, want (1,6,0,1)", p)
	}

	s.Pop()
	s.Pop()
	if s.Top() != base {
		t.Errorf("Top() = %v after pops, want %v", s.Top(), base)
	}
}

func TestTransformStackPopBasePanics(t *testing.T) {
	s := NewTransformStack()
	defer func() {
		if recover() == nil {
			t.Error("popping the base did not panic")
		}
	}()
	s.Pop()
}

// nearVec3 compares componentwise with an absolute tolerance, so rounding
// noise around zero is accepted.
func nearVec3(got, want mgl32.Vec3) bool {
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > 1e-5 {
			return false
		}
	}
	return true
}

func TestRotationXYZOrder(t *testing.T) {
	half := float32(math.Pi / 2)
	m := RotationXYZ(mgl32.Vec3{half, half, 0})
	got := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
	if !nearVec3(got, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("rotated (0,1,0) = %v, want (1,0,0)", got)
	}

	if RotationXYZ(mgl32.Vec3{}) != mgl32.Ident4() {
		t.Error("zero rotation is not the identity")
	}
}

func TestRendererTransforms(t *testing.T) {
	e := newTestEnv(t)
	e.r.PushTranslate(mgl32.Vec3{1, 2, 3})
	e.r.PushRotate(mgl32.Vec3{0, 0, float32(math.Pi)})
	e.r.PushScale(mgl32.Vec3{2, 2, 2})
	if e.r.TransformDepth() != 3 {
		t.Errorf("TransformDepth() = %d", e.r.TransformDepth())
	}

	p := e.r.Transform().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	if !nearVec3(p, mgl32.Vec3{-1, 2, 3}) {
		t.Errorf("(1,0,0) maps to %v, want (-1,2,3)", p)
	}

	e.r.PopTransform()
	e.r.PopTransform()
	e.r.PopTransform()
	if e.r.Transform() != mgl32.Ident4() {
		t.Errorf("Transform() = %v after pops", e.r.Transform())
	}
}

func TestEndFrameResetsLeakedTransforms(t *testing.T) {
	e := newTestEnv(t)
	e.r.BeginFrame()
	e.r.PushScale(mgl32.Vec3{2, 2, 2})
	e.r.EndFrame()

	if e.r.TransformDepth() != 0 {
		t.Errorf("TransformDepth() = %d after EndFrame", e.r.TransformDepth())
	}
	if e.warnings() == "" {
		t.Error("leaked transform not reported")
	}
}
