// Command marathon draws a spinning triangle through the marathon renderer.
//
// With a display and OpenGL 3.3 it opens a window; otherwise, or with
// -backend headless, it renders a fixed number of frames on the in-memory
// device and prints the frame statistics.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/marathon"
	"github.com/gogpu/marathon/backend"
	_ "github.com/gogpu/marathon/backend/headless"
	_ "github.com/gogpu/marathon/backend/opengl"
	"github.com/gogpu/marathon/config"
	"github.com/gogpu/marathon/device"
	"github.com/gogpu/marathon/resource"
	"github.com/gogpu/marathon/shaderfile"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		backendArg = flag.String("backend", "", "device backend: opengl or headless (overrides config)")
		frames     = flag.Int("frames", 0, "frames to render; 0 runs until the window closes (headless default 3)")
		vertexPath = flag.String("vertex", "", "vertex shader file, reloaded on change")
		fragPath   = flag.String("fragment", "", "fragment shader file, reloaded on change")
		verbose    = flag.Bool("v", false, "log at debug level")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("marathon: %v", err)
		}
	}
	if *backendArg != "" {
		cfg.Backend = *backendArg
		if err := cfg.Validate(); err != nil {
			log.Fatalf("marathon: %v", err)
		}
	}

	level, _ := cfg.Log.SlogLevel()
	if *verbose {
		level = slog.LevelDebug
	}
	marathon.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg, *frames, *vertexPath, *fragPath); err != nil {
		log.Fatalf("marathon: %v", err)
	}
}

func run(cfg config.Config, frames int, vertexPath, fragPath string) error {
	state, err := cfg.State.RendererState()
	if err != nil {
		return err
	}

	surf, dev, err := openSurface(cfg)
	if err != nil {
		return err
	}
	defer surf.Close()
	if frames == 0 && surf.Headless() {
		frames = 3
	}

	w, h := surf.Size()
	r := marathon.New(dev, marathon.WithState(state), marathon.WithViewport(w, h))
	defer r.Close()

	shader := resource.NewShader("triangle", triangleVS, triangleFS)
	if vertexPath != "" || fragPath != "" {
		if vertexPath == "" || fragPath == "" {
			return errors.New("-vertex and -fragment must be given together")
		}
		if shader, err = shaderfile.Load("triangle", vertexPath, fragPath); err != nil {
			return err
		}
		watcher, err := shaderfile.Watch(shader, vertexPath, fragPath)
		if err != nil {
			return err
		}
		defer watcher.Close()
		surf.OnFrame(func() { _, _ = watcher.Poll() })
	}

	sc, err := newScene(shader)
	if err != nil {
		return err
	}

	var total marathon.Stats
	for frame := 0; frames == 0 || frame < frames; frame++ {
		if surf.ShouldClose() {
			break
		}
		if fw, fh := surf.Size(); fw != w || fh != h {
			w, h = fw, fh
			r.SetViewport(w, h)
		}
		r.BeginFrame()
		sc.draw(r, w, h)
		st := r.EndFrame()
		total.DrawCalls += st.DrawCalls
		total.Submitted += st.Submitted
		total.Skipped += st.Skipped
		total.Triangles += st.Triangles
		surf.Present()
	}

	if surf.Headless() {
		fmt.Printf("backend=%s frames=%d draws=%d submitted=%d skipped=%d triangles=%d\n",
			surf.Backend(), frames, total.DrawCalls, total.Submitted, total.Skipped, total.Triangles)
	}
	return nil
}

// surface is where frames are presented: a window or nothing.
type surface interface {
	Backend() string
	Headless() bool
	Size() (width, height int)
	ShouldClose() bool
	OnFrame(fn func())
	Present()
	Close()
}

// openSurface selects the backend. An empty backend tries a window first and
// falls back to headless rendering.
func openSurface(cfg config.Config) (surface, device.Device, error) {
	if cfg.Backend == backend.NameHeadless {
		return openHeadless(cfg)
	}
	surf, dev, err := openWindow(cfg)
	if err == nil {
		return surf, dev, nil
	}
	if cfg.Backend == backend.NameOpenGL {
		return nil, nil, err
	}
	marathon.Logger().Warn("marathon: no window, rendering headless", "err", err)
	return openHeadless(cfg)
}

type headlessSurface struct {
	width, height int
	onFrame       []func()
}

func openHeadless(cfg config.Config) (surface, device.Device, error) {
	dev, err := backend.Get(backend.NameHeadless)
	if err != nil {
		return nil, nil, err
	}
	return &headlessSurface{width: cfg.Window.Width, height: cfg.Window.Height}, dev, nil
}

func (s *headlessSurface) Backend() string   { return backend.NameHeadless }
func (s *headlessSurface) Headless() bool    { return true }
func (s *headlessSurface) Size() (int, int)  { return s.width, s.height }
func (s *headlessSurface) ShouldClose() bool { return false }
func (s *headlessSurface) OnFrame(fn func()) { s.onFrame = append(s.onFrame, fn) }
func (s *headlessSurface) Close()            {}

func (s *headlessSurface) Present() {
	for _, fn := range s.onFrame {
		fn()
	}
}
