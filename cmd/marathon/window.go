//go:build !nogl

package main

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/marathon/backend"
	"github.com/gogpu/marathon/config"
	"github.com/gogpu/marathon/device"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

type windowSurface struct {
	win     *glfw.Window
	onFrame []func()
}

func openWindow(cfg config.Config) (surface, device.Device, error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("glfw: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("glfw: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	dev, err := backend.Get(backend.NameOpenGL)
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, nil, err
	}
	return &windowSurface{win: win}, dev, nil
}

func (s *windowSurface) Backend() string { return backend.NameOpenGL }
func (s *windowSurface) Headless() bool  { return false }

func (s *windowSurface) Size() (int, int) { return s.win.GetFramebufferSize() }

func (s *windowSurface) ShouldClose() bool { return s.win.ShouldClose() }

func (s *windowSurface) OnFrame(fn func()) { s.onFrame = append(s.onFrame, fn) }

func (s *windowSurface) Present() {
	s.win.SwapBuffers()
	glfw.PollEvents()
	if s.win.GetKey(glfw.KeyEscape) == glfw.Press {
		s.win.SetShouldClose(true)
	}
	for _, fn := range s.onFrame {
		fn()
	}
}

func (s *windowSurface) Close() {
	s.win.Destroy()
	glfw.Terminate()
}
