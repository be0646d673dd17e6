// Package shaderfile loads shader sources from disk and reloads them when
// the files change.
//
// The file extension selects the language: ".wgsl" is WGSL, anything else
// is GLSL. Both stages of a shader must use the same language.
//
// A [Watcher] never touches the shader from its own goroutine. File events
// only mark the shader stale; [Watcher.Poll], called from the render loop,
// re-reads the files and updates the sources. The renderer rebuilds the
// program on the next draw.
package shaderfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/marathon"
	"github.com/gogpu/marathon/device"
	"github.com/gogpu/marathon/resource"
)

var (
	// ErrMixedLanguages is returned when the stage files use different
	// languages.
	ErrMixedLanguages = errors.New("shaderfile: vertex and fragment languages differ")

	// ErrClosed is returned by Poll after Close.
	ErrClosed = errors.New("shaderfile: watcher closed")
)

// LanguageOf returns the shader language implied by the extension of path.
func LanguageOf(path string) device.Language {
	if strings.EqualFold(filepath.Ext(path), ".wgsl") {
		return device.LanguageWGSL
	}
	return device.LanguageGLSL
}

// Load reads a vertex and a fragment stage into a new shader.
func Load(name, vertexPath, fragmentPath string) (*resource.Shader, error) {
	lang, vs, fs, err := read(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	s := resource.NewShader(name, vs, fs)
	s.SetLanguage(lang)
	return s, nil
}

func read(vertexPath, fragmentPath string) (device.Language, string, string, error) {
	lang := LanguageOf(vertexPath)
	if LanguageOf(fragmentPath) != lang {
		return 0, "", "", fmt.Errorf("%s, %s: %w", vertexPath, fragmentPath, ErrMixedLanguages)
	}
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return 0, "", "", fmt.Errorf("shaderfile: %w", err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return 0, "", "", fmt.Errorf("shaderfile: %w", err)
	}
	return lang, string(vs), string(fs), nil
}

// Watcher reloads the sources of one shader when its files change.
type Watcher struct {
	shader       *resource.Shader
	vertexPath   string
	fragmentPath string
	logger       *slog.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup

	mu     sync.Mutex
	stale  bool
	err    error
	closed bool
}

// Watch starts watching the stage files of shader. The shader's sources are
// replaced on the next Poll after either file changes.
//
// The parent directories are watched rather than the files, so editors that
// save by renaming a temporary file are picked up.
func Watch(shader *resource.Shader, vertexPath, fragmentPath string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shaderfile: %w", err)
	}
	w := &Watcher{
		shader:       shader,
		vertexPath:   filepath.Clean(vertexPath),
		fragmentPath: filepath.Clean(fragmentPath),
		logger:       marathon.Logger(),
		fsw:          fsw,
		done:         make(chan struct{}),
	}
	dirs := map[string]struct{}{
		filepath.Dir(w.vertexPath):   {},
		filepath.Dir(w.fragmentPath): {},
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("shaderfile: watch %s: %w", dir, err)
		}
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// SetLogger sets the logger for reload diagnostics. Pass nil to disable.
func (w *Watcher) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	w.mu.Lock()
	w.logger = l
	w.mu.Unlock()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if name != w.vertexPath && name != w.fragmentPath {
				continue
			}
			w.mu.Lock()
			w.stale = true
			w.mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.err = err
			w.mu.Unlock()
		}
	}
}

// Poll applies a pending reload. It reports whether the shader sources
// changed. A failed read keeps the previous sources and is retried on the
// next file event.
func (w *Watcher) Poll() (bool, error) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return false, ErrClosed
	}
	stale, watchErr, logger := w.stale, w.err, w.logger
	w.stale, w.err = false, nil
	w.mu.Unlock()

	if watchErr != nil {
		logger.Warn("shaderfile: watch error", "shader", w.shader.Name(), "err", watchErr)
	}
	if !stale {
		return false, watchErr
	}

	lang, vs, fs, err := read(w.vertexPath, w.fragmentPath)
	if err != nil {
		logger.Warn("shaderfile: reload failed", "shader", w.shader.Name(), "err", err)
		return false, err
	}
	before := w.shader.Version()
	w.shader.SetLanguage(lang)
	w.shader.SetSources(vs, fs)
	changed := w.shader.Version() != before
	if changed {
		logger.Info("shaderfile: shader reloaded", "shader", w.shader.Name())
	}
	return changed, nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
