package headless

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/marathon/backend"
	"github.com/gogpu/marathon/device"
	"github.com/gogpu/marathon/internal/cache"
)

func init() {
	backend.Register(backend.NameHeadless, func() (device.Device, error) {
		return New(), nil
	})
}

// Device errors recorded by [Device.Errors].
var (
	// ErrDoubleRelease is recorded when an object is destroyed twice.
	ErrDoubleRelease = errors.New("headless: object released twice")

	// ErrUnknownObject is recorded when an ID was never created.
	ErrUnknownObject = errors.New("headless: unknown object")

	// ErrInvalidOperation is recorded for calls the current state forbids.
	ErrInvalidOperation = errors.New("headless: invalid operation")
)

// Op names a recorded device call.
type Op string

// Recorded operations.
const (
	OpCreateBuffer       Op = "CreateBuffer"
	OpUpdateBuffer       Op = "UpdateBuffer"
	OpDestroyBuffer      Op = "DestroyBuffer"
	OpCreateVertexArray  Op = "CreateVertexArray"
	OpBindVertexArray    Op = "BindVertexArray"
	OpDestroyVertexArray Op = "DestroyVertexArray"
	OpCompileShader      Op = "CompileShader"
	OpDestroyShader      Op = "DestroyShader"
	OpLinkProgram        Op = "LinkProgram"
	OpUseProgram         Op = "UseProgram"
	OpDestroyProgram     Op = "DestroyProgram"
	OpUniformLocation    Op = "UniformLocation"
	OpSetUniform         Op = "SetUniform"
	OpSetClearColor      Op = "SetClearColor"
	OpSetColorMask       Op = "SetColorMask"
	OpSetCullEnabled     Op = "SetCullEnabled"
	OpSetCullFace        Op = "SetCullFace"
	OpSetFrontFace       Op = "SetFrontFace"
	OpSetDepthTest       Op = "SetDepthTestEnabled"
	OpSetDepthFunc       Op = "SetDepthFunc"
	OpSetDepthMask       Op = "SetDepthMask"
	OpSetLineWidth       Op = "SetLineWidth"
	OpSetPointSize       Op = "SetPointSize"
	OpSetWireframe       Op = "SetWireframe"
	OpViewport           Op = "Viewport"
	OpClear              Op = "Clear"
	OpDrawArrays         Op = "DrawArrays"
	OpDrawElements       Op = "DrawElements"
)

// Call is one recorded device call.
type Call struct {
	Op   Op
	Args []any
}

func (c Call) String() string { return fmt.Sprintf("%s%v", c.Op, c.Args) }

type locationKey struct {
	program device.ProgramID
	name    string
}

// Device is an in-memory [device.Device].
//
// Device is not safe for concurrent use.
type Device struct {
	logger *slog.Logger

	nextID   uint32
	released map[uint32]bool

	buffers  map[device.BufferID]*buffer
	arrays   map[device.VertexArrayID]*vertexArray
	shaders  map[device.ShaderID]*shader
	programs map[device.ProgramID]*program

	locations *cache.Cache[locationKey, device.UniformLocation]

	boundProgram device.ProgramID
	boundArray   device.VertexArrayID
	state        State

	calls []Call
	errs  []error
}

// New creates an empty headless device with default fixed-function state.
func New() *Device {
	return &Device{
		logger:    slog.New(slog.DiscardHandler),
		released:  make(map[uint32]bool),
		buffers:   make(map[device.BufferID]*buffer),
		arrays:    make(map[device.VertexArrayID]*vertexArray),
		shaders:   make(map[device.ShaderID]*shader),
		programs:  make(map[device.ProgramID]*program),
		locations: cache.New[locationKey, device.UniformLocation](256),
		state:     defaultState(),
	}
}

// SetLogger sets the logger used for device diagnostics. Pass nil to disable.
func (d *Device) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	d.logger = l
}

// Calls returns a copy of every recorded call.
func (d *Device) Calls() []Call {
	out := make([]Call, len(d.calls))
	copy(out, d.calls)
	return out
}

// Count returns how many times op was called.
func (d *Device) Count(op Op) int {
	n := 0
	for _, c := range d.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// ResetCalls forgets recorded calls. Objects and state are kept.
func (d *Device) ResetCalls() { d.calls = d.calls[:0] }

// Errors returns the misuse errors recorded so far.
func (d *Device) Errors() []error {
	out := make([]error, len(d.errs))
	copy(out, d.errs)
	return out
}

// Live returns the number of objects created and not yet destroyed.
func (d *Device) Live() int {
	return len(d.buffers) + len(d.arrays) + len(d.shaders) + len(d.programs)
}

// LocationCacheStats reports the uniform location cache counters.
func (d *Device) LocationCacheStats() cache.Stats { return d.locations.Stats() }

func (d *Device) record(op Op, args ...any) {
	d.calls = append(d.calls, Call{Op: op, Args: args})
}

func (d *Device) fail(op Op, err error) {
	err = fmt.Errorf("%s: %w", op, err)
	d.errs = append(d.errs, err)
	d.logger.Warn("headless: device error", "op", string(op), "err", err)
}

func (d *Device) allocID() uint32 {
	d.nextID++
	return d.nextID
}

// release checks that id names a live object before it is removed.
func (d *Device) release(op Op, id uint32, live bool) bool {
	if id == device.InvalidID {
		return false
	}
	if live {
		d.released[id] = true
		return true
	}
	if d.released[id] {
		d.fail(op, fmt.Errorf("id %d: %w", id, ErrDoubleRelease))
	} else {
		d.fail(op, fmt.Errorf("id %d: %w", id, ErrUnknownObject))
	}
	return false
}
