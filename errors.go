package marathon

import "errors"

// Sentinel errors returned by Renderer methods.
var (
	// ErrReservedUniform is returned when an engine-injected uniform is set
	// by name.
	ErrReservedUniform = errors.New("marathon: uniform name is reserved")

	// ErrNoShader is returned when a uniform is set with no shader bound.
	ErrNoShader = errors.New("marathon: no shader bound")

	// ErrUniformNotFound is returned when the bound shader has no active
	// uniform with the given name.
	ErrUniformNotFound = errors.New("marathon: uniform not found in shader")

	// ErrInvalidUniform is returned for a zero uniform.Value.
	ErrInvalidUniform = errors.New("marathon: uniform value is invalid")
)

// Panic messages for programmer errors.
const (
	msgClosed    = "marathon: renderer is closed"
	msgPopBase   = "marathon: PopTransform on the base transform"
	msgNilDevice = "marathon: New with nil device"
	msgNilMesh   = "marathon: nil mesh"
	msgNilShader = "marathon: nil shader"
)
