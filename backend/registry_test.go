package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/marathon/device"
)

// stubDevice satisfies device.Device through the embedded nil interface.
// Only identity is compared in these tests; no method is called.
type stubDevice struct {
	device.Device
	name string
}

func withCleanRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = make(map[string]Factory)
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

func stub(name string) Factory {
	return func() (device.Device, error) { return &stubDevice{name: name}, nil }
}

func TestRegisterAndGet(t *testing.T) {
	withCleanRegistry(t)

	Register("b", stub("b"))
	Register("a", stub("a"))

	if got := Available(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Available() = %v", got)
	}
	if !IsRegistered("a") {
		t.Error("IsRegistered(a) = false")
	}

	dev, err := Get("a")
	if err != nil {
		t.Fatalf("Get(a) error = %v", err)
	}
	if dev.(*stubDevice).name != "a" {
		t.Errorf("Get(a) returned %v", dev)
	}

	Unregister("a")
	if _, err := Get("a"); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Get after Unregister: err = %v", err)
	}
}

func TestDefaultPriority(t *testing.T) {
	withCleanRegistry(t)

	Register("zz-custom", stub("zz-custom"))
	Register(NameHeadless, stub(NameHeadless))
	_, name, err := Default()
	if err != nil || name != NameHeadless {
		t.Errorf("Default() = %q, %v; want headless", name, err)
	}

	Register(NameOpenGL, stub(NameOpenGL))
	_, name, _ = Default()
	if name != NameOpenGL {
		t.Errorf("Default() = %q, want opengl", name)
	}
}

func TestDefaultFallsBackOnError(t *testing.T) {
	withCleanRegistry(t)

	Register(NameOpenGL, func() (device.Device, error) { return nil, ErrNoContext })
	Register(NameHeadless, stub(NameHeadless))

	_, name, err := Default()
	if err != nil || name != NameHeadless {
		t.Errorf("Default() = %q, %v; want headless fallback", name, err)
	}

	Unregister(NameHeadless)
	_, _, err = Default()
	if !errors.Is(err, ErrBackendNotAvailable) || !errors.Is(err, ErrNoContext) {
		t.Errorf("Default() err = %v, want ErrBackendNotAvailable wrapping ErrNoContext", err)
	}
}

func TestDefaultEmpty(t *testing.T) {
	withCleanRegistry(t)
	if _, _, err := Default(); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Default() err = %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("MustDefault did not panic")
		}
	}()
	MustDefault()
}
