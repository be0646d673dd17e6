package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/marathon"
	"github.com/gogpu/marathon/device"
)

func TestDefaultMatchesRenderer(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	st, err := cfg.State.RendererState()
	if err != nil {
		t.Fatal(err)
	}
	if st != marathon.DefaultState() {
		t.Errorf("RendererState() = %+v, want %+v", st, marathon.DefaultState())
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
backend: headless
window:
  width: 320
log:
  level: debug
state:
  clear_color: [0.25, 0.5, 0.75, 1]
  color_mask: rgb
  cull_test: true
  cull_face: front
  cull_winding: cw
  depth_func: less_equal
  wireframe: true
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Backend != "headless" || cfg.Window.Width != 320 || cfg.Window.Height != 600 {
		t.Errorf("cfg = %+v", cfg)
	}
	if lvl, _ := cfg.Log.SlogLevel(); lvl != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v", lvl)
	}

	st, err := cfg.State.RendererState()
	if err != nil {
		t.Fatal(err)
	}
	want := marathon.DefaultState()
	want.ClearColor = gputypes.Color{R: 0.25, G: 0.5, B: 0.75, A: 1}
	want.ColorMask = gputypes.ColorWriteMaskRed | gputypes.ColorWriteMaskGreen | gputypes.ColorWriteMaskBlue
	want.CullTest = true
	want.CullFace = device.CullFront
	want.CullWinding = gputypes.FrontFaceCW
	want.DepthFunction = gputypes.CompareFunctionLessEqual
	want.Wireframe = true
	if st != want {
		t.Errorf("RendererState() = %+v\nwant %+v", st, want)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window != Default().Window {
		t.Errorf("Window = %+v", cfg.Window)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "colour: red\n"},
		{"backend", "backend: vulkan\n"},
		{"window", "window: {width: 0}\n"},
		{"log level", "log: {level: loud}\n"},
		{"clear colour length", "state: {clear_color: [1, 1]}\n"},
		{"clear colour range", "state: {clear_color: [2, 0, 0, 1]}\n"},
		{"colour mask", "state: {color_mask: rgbx}\n"},
		{"colour mask repeat", "state: {color_mask: rr}\n"},
		{"cull face", "state: {cull_face: sideways}\n"},
		{"winding", "state: {cull_winding: up}\n"},
		{"depth func", "state: {depth_func: sometimes}\n"},
		{"line width", "state: {line_width: 0}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse succeeded")
			}
		})
	}
}

func TestValidateIsErrInvalid(t *testing.T) {
	cfg := Default()
	cfg.Backend = "metal"
	cfg.State.DepthFunc = "nope"
	err := cfg.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Validate() = %v, want ErrInvalid", err)
	}
}

func TestColorMaskNone(t *testing.T) {
	s := DefaultState()
	s.ColorMask = "none"
	st, err := s.RendererState()
	if err != nil {
		t.Fatal(err)
	}
	if st.ColorMask != gputypes.ColorWriteMaskNone {
		t.Errorf("ColorMask = %v", st.ColorMask)
	}
}

func TestLevelOff(t *testing.T) {
	lvl, err := LogConfig{Level: "off"}.SlogLevel()
	if err != nil || lvl <= slog.LevelError {
		t.Errorf("SlogLevel() = %v, %v", lvl, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marathon.yaml")
	if err := os.WriteFile(path, []byte("window: {width: 64, height: 48}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 64 || cfg.Window.Height != 48 {
		t.Errorf("Window = %+v", cfg.Window)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v", err)
	}

	big := filepath.Join(dir, "big.yaml")
	if err := os.WriteFile(big, make([]byte, maxFileSize+1), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(big); !errors.Is(err, ErrTooLarge) {
		t.Errorf("Load(big) = %v", err)
	}
}
