// Package config loads renderer settings from YAML files.
//
// A file may set any subset of the fields; unset fields keep the values of
// [Default]:
//
//	backend: headless
//	window:
//	  width: 1280
//	  height: 720
//	log:
//	  level: debug
//	state:
//	  clear_color: [0.1, 0.1, 0.12, 1]
//	  cull_test: true
//	  depth_func: less_equal
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/marathon/backend"
)

// maxFileSize bounds configuration files read by Load.
const maxFileSize = 1 << 20

var (
	// ErrInvalid is returned by Validate for out-of-range settings.
	ErrInvalid = errors.New("config: invalid configuration")

	// ErrTooLarge is returned by Load for files over 1 MiB.
	ErrTooLarge = errors.New("config: file too large")
)

// Config is the top-level configuration.
type Config struct {
	Backend string       `yaml:"backend"`
	Window  WindowConfig `yaml:"window"`
	Log     LogConfig    `yaml:"log"`
	State   StateConfig  `yaml:"state"`
}

// WindowConfig sizes the output surface.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// LogConfig selects the log level: debug, info, warn, error or off.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given. An empty
// backend selects the highest priority registered backend.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 800, Height: 600, Title: "marathon"},
		Log:    LogConfig{Level: "warn"},
		State:  DefaultState(),
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if info.Size() > maxFileSize {
		return Config{}, fmt.Errorf("%s: %d bytes: %w", path, info.Size(), ErrTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over [Default] and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	var errs []error
	if c.Backend != "" && c.Backend != backend.NameOpenGL && c.Backend != backend.NameHeadless {
		errs = append(errs, fmt.Errorf("backend %q: %w", c.Backend, ErrInvalid))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.State.RendererState(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel returns the slog level. An empty level is warn; "off" returns
// [LevelOff].
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off":
		return LevelOff, nil
	default:
		return 0, fmt.Errorf("log level %q: %w", l.Level, ErrInvalid)
	}
}

// LevelOff is above every level slog emits.
const LevelOff = slog.Level(100)
