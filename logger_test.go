package marathon

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/marathon/backend/headless"
	"github.com/gogpu/marathon/resource"
)

func TestNopHandler_Enabled(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
}

func TestNopHandler_WithAttrs(t *testing.T) {
	h := nopHandler{}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("key", "val")}).(nopHandler); !ok {
		t.Error("nopHandler.WithAttrs() did not return nopHandler")
	}
	if _, ok := h.WithGroup("group").(nopHandler); !ok {
		t.Error("nopHandler.WithGroup() did not return nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLoggerPropagatesToResource(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	custom := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(custom)

	if Logger() != custom || resource.Logger() != custom {
		t.Fatal("SetLogger did not install the logger everywhere")
	}

	m := resource.NewMesh("m")
	_ = m.SetVertexData(nil, 1, 0, 0)
	if !strings.Contains(buf.String(), "SetVertexData rejected") {
		t.Errorf("resource warning not captured, got: %s", buf.String())
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)

	if l := Logger(); l == nil || l.Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestRendererPropagatesLoggerToDevice(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	dev := headless.New()
	r := New(dev, WithLogger(logger))
	defer r.Close()

	dev.DestroyBuffer(12345)
	if !strings.Contains(buf.String(), "headless: device error") {
		t.Errorf("device error not logged through renderer logger, got: %s", buf.String())
	}
}

func TestWithLoggerDoesNotCoverResourceWarnings(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var global, local bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&global, nil)))
	r := New(headless.New(), WithLogger(slog.New(slog.NewTextHandler(&local, nil))))
	defer r.Close()

	m := resource.NewMesh("m")
	_ = m.SetIndexData([]byte{1}, 1, 0, 0)
	if strings.Contains(local.String(), "SetIndexData rejected") {
		t.Error("resource warning reached the renderer logger")
	}
	if !strings.Contains(global.String(), "SetIndexData rejected") {
		t.Errorf("resource warning missing from package logger, got: %s", global.String())
	}
}
