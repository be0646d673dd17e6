package resource

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/marathon/vertex"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func positionColour() []vertex.Descriptor {
	return []vertex.Descriptor{
		{Attribute: vertex.Position, Format: vertex.Float32, Components: 3},
		{Attribute: vertex.Colour, Format: vertex.Uint8, Components: 4, Normalized: true},
	}
}

func TestSetVertexParamsAllocates(t *testing.T) {
	m := NewMesh("tri")
	m.SetVertexParams(3, positionColour())

	if got := m.VertexSize(); got != 16 {
		t.Errorf("VertexSize() = %d, want 16", got)
	}
	if got := len(m.VertexData()); got != 48 {
		t.Errorf("len(VertexData()) = %d, want 48", got)
	}
	if m.VertexDirty() != Realloc {
		t.Errorf("VertexDirty() = %v, want realloc", m.VertexDirty())
	}
	if got := m.VertexAttributeOffset(vertex.Colour); got != 12 {
		t.Errorf("colour offset = %d, want 12", got)
	}
	if got := m.VertexAttributeOffset(vertex.Normal); got != -1 {
		t.Errorf("normal offset = %d, want -1", got)
	}
	if got := m.VertexAttributeFormat(vertex.Colour); got != vertex.Uint8 {
		t.Errorf("colour format = %v", got)
	}
	if got := m.VertexAttributeComponents(vertex.Tangent); got != 0 {
		t.Errorf("tangent components = %d, want 0", got)
	}
	if got := m.VertexAttributeLocation(vertex.Colour); got != 3 {
		t.Errorf("colour location = %d, want 3", got)
	}
	if m.Primitive() != vertex.Triangles {
		t.Errorf("default primitive = %v", m.Primitive())
	}
}

func TestSetVertexParamsPanics(t *testing.T) {
	tests := []struct {
		name  string
		count int
		attrs []vertex.Descriptor
	}{
		{"zero count", 0, positionColour()},
		{"negative count", -1, positionColour()},
		{"no attributes", 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			NewMesh("bad").SetVertexParams(tt.count, tt.attrs)
		})
	}
}

func TestSetVertexDataRejectsBadRanges(t *testing.T) {
	buf := captureLogs(t)

	m := NewMesh("m")
	m.SetVertexParams(2, []vertex.Descriptor{{Attribute: vertex.Position, Format: vertex.Float32, Components: 1}})
	m.ClearVertexDirty()
	src := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		name                 string
		data                 []byte
		size, srcOff, dstOff int
		want                 error
	}{
		{"nil data", nil, 4, 0, 0, ErrNilData},
		{"past end", src, 8, 1, 0, ErrOutOfRange},
		{"dst offset", src, 4, 0, 5, ErrOutOfRange},
		{"negative", src, -1, 0, 0, ErrOutOfRange},
		{"short source", src[:2], 4, 0, 0, ErrOutOfRange},
		{"size overflow", src, math.MaxInt, 1, 0, ErrOutOfRange},
		{"offset overflow", src, 1, math.MaxInt, 0, ErrOutOfRange},
		{"dst offset overflow", src, 1, 0, math.MaxInt, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.SetVertexData(tt.data, tt.size, tt.srcOff, tt.dstOff)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if !bytes.Equal(m.VertexData(), make([]byte, 8)) {
		t.Errorf("buffer modified: %v", m.VertexData())
	}
	if m.VertexDirty() != Clean {
		t.Errorf("dirty = %v, want clean", m.VertexDirty())
	}
	if !strings.Contains(buf.String(), "SetVertexData rejected") {
		t.Errorf("missing warning, log: %s", buf.String())
	}
}

func TestSetVertexDataNotAllocated(t *testing.T) {
	captureLogs(t)
	m := NewMesh("empty")
	if err := m.SetVertexData([]byte{1}, 1, 0, 0); !errors.Is(err, ErrNotAllocated) {
		t.Errorf("err = %v, want ErrNotAllocated", err)
	}
}

func TestSetVertexDataDirtyTransitions(t *testing.T) {
	m := NewMesh("m")
	m.SetVertexParams(1, []vertex.Descriptor{{Attribute: vertex.Position, Format: vertex.Float32, Components: 2}})

	if err := m.SetVertexData([]byte{9, 9, 9, 9}, 4, 0, 4); err != nil {
		t.Fatal(err)
	}
	if m.VertexDirty() != Realloc {
		t.Errorf("write after params: dirty = %v, want realloc", m.VertexDirty())
	}
	want := []byte{0, 0, 0, 0, 9, 9, 9, 9}
	if !bytes.Equal(m.VertexData(), want) {
		t.Errorf("data = %v, want %v", m.VertexData(), want)
	}

	m.ClearVertexDirty()
	if err := m.SetVertexData([]byte{0, 7}, 1, 1, 0); err != nil {
		t.Fatal(err)
	}
	if m.VertexDirty() != Update {
		t.Errorf("write after clean: dirty = %v, want update", m.VertexDirty())
	}
	if m.VertexData()[0] != 7 {
		t.Errorf("data[0] = %d, want 7", m.VertexData()[0])
	}
}

func TestIndexParams(t *testing.T) {
	m := NewMesh("quad")
	m.SetIndexParams(6, vertex.IndexUint16, vertex.TriangleStrip)
	if m.IndexSize() != 2 || len(m.IndexData()) != 12 {
		t.Errorf("IndexSize=%d len=%d", m.IndexSize(), len(m.IndexData()))
	}
	if m.Primitive() != vertex.TriangleStrip {
		t.Errorf("Primitive() = %v", m.Primitive())
	}
	if m.IndexDirty() != Realloc {
		t.Errorf("IndexDirty() = %v", m.IndexDirty())
	}

	m.SetIndexParams(0, vertex.IndexNone, vertex.Triangles)
	if m.IndexData() != nil || m.IndexCount() != 0 {
		t.Error("zero-count index params should drop the index buffer")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for IndexNone with count > 0")
		}
	}()
	m.SetIndexParams(3, vertex.IndexNone, vertex.Triangles)
}

func TestSetIndexData(t *testing.T) {
	captureLogs(t)
	m := NewMesh("m")
	m.SetIndexParams(3, vertex.IndexUint8, vertex.Triangles)
	if err := m.SetIndexData([]byte{0, 1, 2}, 3, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := m.SetIndexData([]byte{0, 1, 2}, 3, 0, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
	if err := m.SetIndexData([]byte{0, 1, 2}, math.MaxInt, 1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("overflowing size: err = %v, want ErrOutOfRange", err)
	}
	if !bytes.Equal(m.IndexData(), []byte{0, 1, 2}) {
		t.Errorf("IndexData() = %v", m.IndexData())
	}
}

func TestClear(t *testing.T) {
	m := NewMesh("m")
	m.SetVertexParams(3, positionColour())
	m.SetIndexParams(3, vertex.IndexUint16, vertex.Triangles)
	m.Clear()

	if m.VertexCount() != 0 || m.VertexData() != nil || m.IndexData() != nil {
		t.Error("Clear() left data behind")
	}
	if m.VertexDirty() != Delete || m.IndexDirty() != Delete {
		t.Errorf("dirty = %v/%v, want delete", m.VertexDirty(), m.IndexDirty())
	}
}
