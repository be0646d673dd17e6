package config

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/marathon"
	"github.com/gogpu/marathon/device"
)

// StateConfig is the YAML form of [marathon.State]. Enumerations are
// spelled in lower case: cull_face is back, front or front_and_back;
// cull_winding is ccw or cw; depth_func is never, less, equal, less_equal,
// greater, not_equal, greater_equal or always; color_mask lists the written
// channels, e.g. "rgba", "rgb" or "none".
type StateConfig struct {
	ClearColor  []float64 `yaml:"clear_color,flow"`
	ColorMask   string    `yaml:"color_mask"`
	CullTest    bool      `yaml:"cull_test"`
	CullFace    string    `yaml:"cull_face"`
	CullWinding string    `yaml:"cull_winding"`
	DepthTest   bool      `yaml:"depth_test"`
	DepthFunc   string    `yaml:"depth_func"`
	DepthWrite  bool      `yaml:"depth_write"`
	LineWidth   float32   `yaml:"line_width"`
	PointSize   float32   `yaml:"point_size"`
	Wireframe   bool      `yaml:"wireframe"`
}

var cullFaces = map[string]device.CullFace{
	"back":           device.CullBack,
	"front":          device.CullFront,
	"front_and_back": device.CullFrontAndBack,
}

var windings = map[string]gputypes.FrontFace{
	"ccw": gputypes.FrontFaceCCW,
	"cw":  gputypes.FrontFaceCW,
}

var depthFuncs = map[string]gputypes.CompareFunction{
	"never":         gputypes.CompareFunctionNever,
	"less":          gputypes.CompareFunctionLess,
	"equal":         gputypes.CompareFunctionEqual,
	"less_equal":    gputypes.CompareFunctionLessEqual,
	"greater":       gputypes.CompareFunctionGreater,
	"not_equal":     gputypes.CompareFunctionNotEqual,
	"greater_equal": gputypes.CompareFunctionGreaterEqual,
	"always":        gputypes.CompareFunctionAlways,
}

var maskChannels = map[rune]gputypes.ColorWriteMask{
	'r': gputypes.ColorWriteMaskRed,
	'g': gputypes.ColorWriteMaskGreen,
	'b': gputypes.ColorWriteMaskBlue,
	'a': gputypes.ColorWriteMaskAlpha,
}

// DefaultState mirrors [marathon.DefaultState].
func DefaultState() StateConfig {
	return StateConfig{
		ClearColor:  []float64{0, 0, 0, 1},
		ColorMask:   "rgba",
		CullFace:    "back",
		CullWinding: "ccw",
		DepthTest:   true,
		DepthFunc:   "less",
		DepthWrite:  true,
		LineWidth:   1,
		PointSize:   1,
	}
}

// RendererState converts s to a renderer state.
func (s StateConfig) RendererState() (marathon.State, error) {
	var st marathon.State

	if len(s.ClearColor) != 4 {
		return st, fmt.Errorf("state.clear_color has %d components, want 4: %w", len(s.ClearColor), ErrInvalid)
	}
	for i, c := range s.ClearColor {
		if c < 0 || c > 1 {
			return st, fmt.Errorf("state.clear_color[%d] = %g outside [0,1]: %w", i, c, ErrInvalid)
		}
	}
	st.ClearColor = gputypes.Color{R: s.ClearColor[0], G: s.ClearColor[1], B: s.ClearColor[2], A: s.ClearColor[3]}

	mask, err := parseColorMask(s.ColorMask)
	if err != nil {
		return st, err
	}
	st.ColorMask = mask

	var ok bool
	if st.CullFace, ok = cullFaces[strings.ToLower(s.CullFace)]; !ok {
		return st, fmt.Errorf("state.cull_face %q: %w", s.CullFace, ErrInvalid)
	}
	if st.CullWinding, ok = windings[strings.ToLower(s.CullWinding)]; !ok {
		return st, fmt.Errorf("state.cull_winding %q: %w", s.CullWinding, ErrInvalid)
	}
	if st.DepthFunction, ok = depthFuncs[strings.ToLower(s.DepthFunc)]; !ok {
		return st, fmt.Errorf("state.depth_func %q: %w", s.DepthFunc, ErrInvalid)
	}
	if s.LineWidth <= 0 || s.PointSize <= 0 {
		return st, fmt.Errorf("state.line_width %g, state.point_size %g must be positive: %w",
			s.LineWidth, s.PointSize, ErrInvalid)
	}

	st.CullTest = s.CullTest
	st.DepthTest = s.DepthTest
	st.DepthWrite = s.DepthWrite
	st.LineWidth = s.LineWidth
	st.PointSize = s.PointSize
	st.Wireframe = s.Wireframe
	return st, nil
}

func parseColorMask(s string) (gputypes.ColorWriteMask, error) {
	s = strings.ToLower(s)
	if s == "none" || s == "" {
		return gputypes.ColorWriteMaskNone, nil
	}
	var mask gputypes.ColorWriteMask
	for _, ch := range s {
		bit, ok := maskChannels[ch]
		if !ok || mask&bit != 0 {
			return 0, fmt.Errorf("state.color_mask %q: %w", s, ErrInvalid)
		}
		mask |= bit
	}
	return mask, nil
}
