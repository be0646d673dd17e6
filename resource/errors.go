package resource

import "errors"

// Sentinel errors returned by resource operations.
var (
	// ErrNilData is returned when a data write is given a nil source.
	ErrNilData = errors.New("resource: data is nil")

	// ErrNotAllocated is returned when data is written before the buffer was
	// allocated with SetVertexParams or SetIndexParams.
	ErrNotAllocated = errors.New("resource: buffer not allocated")

	// ErrOutOfRange is returned when a data write does not fit the buffer.
	ErrOutOfRange = errors.New("resource: data range out of bounds")

	// ErrReservedUniform is returned when a material tries to set an
	// engine-injected uniform.
	ErrReservedUniform = errors.New("resource: uniform name is reserved")

	// ErrUniformNotFound is returned by Material.GetUniform for unknown keys.
	ErrUniformNotFound = errors.New("resource: uniform not found")

	// ErrInvalidUniform is returned when a material is given an untagged value.
	ErrInvalidUniform = errors.New("resource: uniform value is invalid")
)
