package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/marathon/device"
)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for backend selection (first that succeeds wins).
	priority = []string{NameOpenGL, NameHeadless}
)

// Register registers a device factory under name. It is typically called
// from init functions in backend packages. A factory registered under an
// existing name replaces it.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get creates a device from the named backend.
func Get(name string) (device.Device, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	dev, err := factory()
	if err != nil {
		return nil, fmt.Errorf("backend %q: %w", name, err)
	}
	return dev, nil
}

// Default creates a device from the best available backend and returns it
// with the backend name. Backends are tried in priority order (opengl,
// headless), then any other registered backend in name order.
func Default() (device.Device, string, error) {
	tried := make(map[string]bool, len(priority))
	var lastErr error
	for _, name := range append(append([]string(nil), priority...), Available()...) {
		if tried[name] || !IsRegistered(name) {
			continue
		}
		tried[name] = true
		dev, err := Get(name)
		if err == nil {
			return dev, name, nil
		}
		lastErr = err
	}
	if lastErr != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrBackendNotAvailable, lastErr)
	}
	return nil, "", ErrBackendNotAvailable
}

// MustDefault returns the default device or panics.
func MustDefault() device.Device {
	dev, _, err := Default()
	if err != nil {
		panic(err)
	}
	return dev
}
