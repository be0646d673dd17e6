// Package backend selects the graphics device used by the renderer.
//
// Device implementations register a [Factory] from their init functions:
//
//	import _ "github.com/gogpu/marathon/backend/headless"
//	import _ "github.com/gogpu/marathon/backend/opengl"
//
// # Backend Selection
//
// Use [Default] to get the best available device, or [Get] to request one by
// name:
//
//	dev, name, err := backend.Default()
//
//	dev, err := backend.Get(backend.NameHeadless)
//
// The OpenGL backend fails to create a device unless a context is current on
// the calling thread; [Default] then falls back to the headless device.
package backend
