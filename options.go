package marathon

import "log/slog"

// Option configures a Renderer during creation.
//
// Example:
//
//	r := marathon.New(dev,
//	    marathon.WithViewport(1280, 720),
//	    marathon.WithState(st),
//	)
type Option func(*options)

type options struct {
	logger *slog.Logger
	state  State
	clock  *Clock
	width  int
	height int
}

func defaultOptions() options {
	return options{state: DefaultState()}
}

// WithLogger sets a logger for this renderer and its device, overriding the
// package logger. It does not apply to warnings from resource edits such as
// a rejected SetVertexData, which always use the package logger set with
// [SetLogger].
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithState sets the fixed-function state applied when the renderer is
// created. [Renderer.ResetState] still restores [DefaultState].
func WithState(s State) Option {
	return func(o *options) {
		o.state = s
	}
}

// WithClock sets the clock that feeds the time uniforms. Use a clock with a
// fixed time source for reproducible output.
func WithClock(c *Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

// WithViewport sets the initial viewport size in pixels.
func WithViewport(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}
