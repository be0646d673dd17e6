package backend

import (
	"errors"

	"github.com/gogpu/marathon/device"
)

// Backend names.
const (
	// NameOpenGL is the OpenGL 3.3 core device. It needs a current context.
	NameOpenGL = "opengl"

	// NameHeadless is the in-memory device.
	NameHeadless = "headless"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or could not be created.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoContext is returned by backends that need a current graphics
	// context when none is bound.
	ErrNoContext = errors.New("backend: no current graphics context")
)

// Factory creates a device. Factories for hardware backends may fail, for
// example when no graphics context is current on the calling thread.
type Factory func() (device.Device, error)
