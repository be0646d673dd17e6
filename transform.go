package marathon

import "github.com/go-gl/mathgl/mgl32"

// TransformStack is a stack of model matrices. The bottom entry is the
// identity and is never removed, so the stack is never empty.
type TransformStack struct {
	stack []mgl32.Mat4
}

// NewTransformStack returns a stack holding only the identity.
func NewTransformStack() *TransformStack {
	return &TransformStack{stack: []mgl32.Mat4{mgl32.Ident4()}}
}

// Push pushes top × m.
func (s *TransformStack) Push(m mgl32.Mat4) {
	s.stack = append(s.stack, s.Top().Mul4(m))
}

// Pop removes and returns the top matrix. It panics on the identity base.
func (s *TransformStack) Pop() mgl32.Mat4 {
	if len(s.stack) <= 1 {
		panic(msgPopBase)
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top
}

// Top returns the accumulated matrix.
func (s *TransformStack) Top() mgl32.Mat4 { return s.stack[len(s.stack)-1] }

// Depth returns the number of pushed matrices, not counting the base.
func (s *TransformStack) Depth() int { return len(s.stack) - 1 }

// Reset drops every pushed matrix.
func (s *TransformStack) Reset() { s.stack = s.stack[:1] }

// RotationXYZ returns a rotation by euler angles in radians. The X rotation
// is applied first, then Y, then Z.
func RotationXYZ(euler mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(euler.Z()).
		Mul4(mgl32.HomogRotate3DY(euler.Y())).
		Mul4(mgl32.HomogRotate3DX(euler.X()))
}

// PushTransform pushes Transform() × m as the new model matrix.
func (r *Renderer) PushTransform(m mgl32.Mat4) { r.transforms.Push(m) }

// PushTranslate pushes a translation.
func (r *Renderer) PushTranslate(v mgl32.Vec3) {
	r.transforms.Push(mgl32.Translate3D(v.X(), v.Y(), v.Z()))
}

// PushRotate pushes a rotation by euler angles in radians, see RotationXYZ.
func (r *Renderer) PushRotate(euler mgl32.Vec3) { r.transforms.Push(RotationXYZ(euler)) }

// PushScale pushes a non-uniform scale.
func (r *Renderer) PushScale(v mgl32.Vec3) {
	r.transforms.Push(mgl32.Scale3D(v.X(), v.Y(), v.Z()))
}

// PopTransform removes and returns the top model matrix. Popping more than
// was pushed panics.
func (r *Renderer) PopTransform() mgl32.Mat4 { return r.transforms.Pop() }

// Transform returns the current model matrix.
func (r *Renderer) Transform() mgl32.Mat4 { return r.transforms.Top() }

// TransformDepth returns the number of pushed model matrices.
func (r *Renderer) TransformDepth() int { return r.transforms.Depth() }

// SetView sets the view matrix uploaded as u_view.
func (r *Renderer) SetView(m mgl32.Mat4) { r.view = m }

// View returns the view matrix.
func (r *Renderer) View() mgl32.Mat4 { return r.view }

// SetProjection sets the projection matrix uploaded as u_projection.
func (r *Renderer) SetProjection(m mgl32.Mat4) { r.projection = m }

// Projection returns the projection matrix.
func (r *Renderer) Projection() mgl32.Mat4 { return r.projection }
