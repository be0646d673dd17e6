package headless

import (
	"fmt"

	"github.com/gogpu/marathon/device"
)

type buffer struct {
	target device.BufferTarget
	data   []byte
}

type vertexArray struct {
	desc device.VertexArrayDesc
}

// CreateBuffer implements device.Device.
func (d *Device) CreateBuffer(target device.BufferTarget, data []byte) device.BufferID {
	id := device.BufferID(d.allocID())
	d.buffers[id] = &buffer{target: target, data: append([]byte(nil), data...)}
	d.record(OpCreateBuffer, id, target, len(data))
	return id
}

// UpdateBuffer implements device.Device.
func (d *Device) UpdateBuffer(id device.BufferID, offset int, data []byte) {
	d.record(OpUpdateBuffer, id, offset, len(data))
	b, ok := d.buffers[id]
	if !ok {
		d.fail(OpUpdateBuffer, fmt.Errorf("buffer %d: %w", id, ErrUnknownObject))
		return
	}
	if offset < 0 || offset+len(data) > len(b.data) {
		d.fail(OpUpdateBuffer, fmt.Errorf("range [%d,%d) exceeds buffer size %d: %w",
			offset, offset+len(data), len(b.data), ErrInvalidOperation))
		return
	}
	copy(b.data[offset:], data)
}

// DestroyBuffer implements device.Device.
func (d *Device) DestroyBuffer(id device.BufferID) {
	d.record(OpDestroyBuffer, id)
	_, live := d.buffers[id]
	if d.release(OpDestroyBuffer, uint32(id), live) {
		delete(d.buffers, id)
	}
}

// BufferData returns a copy of a buffer's contents.
func (d *Device) BufferData(id device.BufferID) ([]byte, bool) {
	b, ok := d.buffers[id]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.data...), true
}

// CreateVertexArray implements device.Device.
func (d *Device) CreateVertexArray(desc *device.VertexArrayDesc) device.VertexArrayID {
	id := device.VertexArrayID(d.allocID())
	va := &vertexArray{desc: *desc}
	va.desc.Attributes = append([]device.AttributeBinding(nil), desc.Attributes...)
	d.arrays[id] = va
	d.record(OpCreateVertexArray, id, desc.VertexBuffer, desc.IndexBuffer, len(desc.Attributes))

	if _, ok := d.buffers[desc.VertexBuffer]; !ok {
		d.fail(OpCreateVertexArray, fmt.Errorf("vertex buffer %d: %w", desc.VertexBuffer, ErrUnknownObject))
	}
	if desc.IndexBuffer != device.InvalidID {
		if _, ok := d.buffers[desc.IndexBuffer]; !ok {
			d.fail(OpCreateVertexArray, fmt.Errorf("index buffer %d: %w", desc.IndexBuffer, ErrUnknownObject))
		}
	}
	for _, a := range desc.Attributes {
		if a.Components < 1 || a.Components > 4 || !a.Format.Valid() {
			d.fail(OpCreateVertexArray, fmt.Errorf("attribute at location %d: %d x %v: %w",
				a.Location, a.Components, a.Format, ErrInvalidOperation))
		}
	}
	return id
}

// VertexArray returns the description a vertex array was created with.
func (d *Device) VertexArray(id device.VertexArrayID) (device.VertexArrayDesc, bool) {
	va, ok := d.arrays[id]
	if !ok {
		return device.VertexArrayDesc{}, false
	}
	return va.desc, true
}

// BindVertexArray implements device.Device.
func (d *Device) BindVertexArray(id device.VertexArrayID) {
	d.record(OpBindVertexArray, id)
	if id != device.InvalidID {
		if _, ok := d.arrays[id]; !ok {
			d.fail(OpBindVertexArray, fmt.Errorf("vertex array %d: %w", id, ErrUnknownObject))
			return
		}
	}
	d.boundArray = id
}

// DestroyVertexArray implements device.Device.
func (d *Device) DestroyVertexArray(id device.VertexArrayID) {
	d.record(OpDestroyVertexArray, id)
	_, live := d.arrays[id]
	if d.release(OpDestroyVertexArray, uint32(id), live) {
		delete(d.arrays, id)
		if d.boundArray == id {
			d.boundArray = device.InvalidID
		}
	}
}
