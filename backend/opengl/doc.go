// Package opengl implements the graphics device on OpenGL 3.3 core through
// go-gl.
//
// A context must be current on the calling thread before a device is created
// and for every call made on it. The registered factory fails with
// backend.ErrNoContext otherwise, which lets backend.Default fall back to the
// headless device.
//
// WGSL sources are rejected; GL 3.3 has no SPIR-V ingestion.
//
// Build with -tags nogl to exclude this package's cgo dependency.
package opengl
