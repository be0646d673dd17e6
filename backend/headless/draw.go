package headless

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/marathon/device"
	"github.com/gogpu/marathon/uniform"
	"github.com/gogpu/marathon/vertex"
)

// Uniform setters route through setUniform, which checks the declared type
// of the target location.

// SetUniformInt implements device.Device.
func (d *Device) SetUniformInt(loc device.UniformLocation, v int32) {
	d.setUniform(loc, uniform.Int(v))
}

// SetUniformFloat implements device.Device.
func (d *Device) SetUniformFloat(loc device.UniformLocation, v float32) {
	d.setUniform(loc, uniform.Float(v))
}

// SetUniformVec2 implements device.Device.
func (d *Device) SetUniformVec2(loc device.UniformLocation, v mgl32.Vec2) {
	d.setUniform(loc, uniform.Vec2(v))
}

// SetUniformVec3 implements device.Device.
func (d *Device) SetUniformVec3(loc device.UniformLocation, v mgl32.Vec3) {
	d.setUniform(loc, uniform.Vec3(v))
}

// SetUniformVec4 implements device.Device.
func (d *Device) SetUniformVec4(loc device.UniformLocation, v mgl32.Vec4) {
	d.setUniform(loc, uniform.Vec4(v))
}

// SetUniformMat2 implements device.Device.
func (d *Device) SetUniformMat2(loc device.UniformLocation, m mgl32.Mat2) {
	d.setUniform(loc, uniform.Mat2(m))
}

// SetUniformMat3 implements device.Device.
func (d *Device) SetUniformMat3(loc device.UniformLocation, m mgl32.Mat3) {
	d.setUniform(loc, uniform.Mat3(m))
}

// SetUniformMat4 implements device.Device.
func (d *Device) SetUniformMat4(loc device.UniformLocation, m mgl32.Mat4) {
	d.setUniform(loc, uniform.Mat4(m))
}

// DrawArrays implements device.Device.
func (d *Device) DrawArrays(primitive vertex.Primitive, first, count int) {
	d.record(OpDrawArrays, primitive, first, count)
	va, ok := d.checkDraw(OpDrawArrays, primitive)
	if !ok {
		return
	}
	stride := 0
	if len(va.desc.Attributes) > 0 {
		stride = va.desc.Attributes[0].Stride
	}
	vb := d.buffers[va.desc.VertexBuffer]
	if vb == nil || stride <= 0 {
		d.fail(OpDrawArrays, fmt.Errorf("vertex array has no vertex data: %w", ErrInvalidOperation))
		return
	}
	if first < 0 || count < 0 || (first+count)*stride > len(vb.data) {
		d.fail(OpDrawArrays, fmt.Errorf("vertices [%d,%d) exceed buffer of %d vertices: %w",
			first, first+count, len(vb.data)/stride, ErrInvalidOperation))
	}
}

// DrawElements implements device.Device.
func (d *Device) DrawElements(primitive vertex.Primitive, count int, format vertex.IndexFormat) {
	d.record(OpDrawElements, primitive, count, format)
	va, ok := d.checkDraw(OpDrawElements, primitive)
	if !ok {
		return
	}
	ib := d.buffers[va.desc.IndexBuffer]
	if ib == nil {
		d.fail(OpDrawElements, fmt.Errorf("vertex array has no index buffer: %w", ErrInvalidOperation))
		return
	}
	if format.Size() == 0 || count < 0 || count*format.Size() > len(ib.data) {
		d.fail(OpDrawElements, fmt.Errorf("%d %v indices exceed index buffer of %d bytes: %w",
			count, format, len(ib.data), ErrInvalidOperation))
	}
}

func (d *Device) checkDraw(op Op, primitive vertex.Primitive) (*vertexArray, bool) {
	if !primitive.Valid() {
		d.fail(op, fmt.Errorf("primitive %v: %w", primitive, ErrInvalidOperation))
		return nil, false
	}
	if d.boundProgram == device.InvalidID {
		d.fail(op, fmt.Errorf("no program bound: %w", ErrInvalidOperation))
		return nil, false
	}
	va, ok := d.arrays[d.boundArray]
	if !ok {
		d.fail(op, fmt.Errorf("no vertex array bound: %w", ErrInvalidOperation))
		return nil, false
	}
	return va, true
}
