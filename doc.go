// Package marathon is the render-resource and draw-submission core of a 3D
// engine.
//
// It turns CPU-side meshes, shaders and materials (package resource) into
// device objects, keeps them in sync with edits, and issues validated draw
// calls with the right fixed-function state and uniforms.
//
// # Quick Start
//
//	import (
//	    "github.com/go-gl/mathgl/mgl32"
//	    "github.com/gogpu/marathon"
//	    "github.com/gogpu/marathon/backend/headless"
//	    "github.com/gogpu/marathon/resource"
//	)
//
//	r := marathon.New(headless.New())
//	defer r.Close()
//
//	shader := resource.NewShader("flat", vertexSrc, fragmentSrc)
//	mesh := resource.NewMesh("triangle")
//	mesh.SetVertexParams(3, layout)
//	mesh.SetVertexData(data, len(data), 0, 0)
//	mesh.SetMaterial(resource.NewMaterial("flat", shader))
//
//	r.BeginFrame()
//	r.Clear(true, true, false)
//	r.PushTranslate(mgl32.Vec3{0, 0, -2})
//	r.Draw(mesh)
//	r.PopTransform()
//	r.EndFrame()
//
// # Handler Cache
//
// Every mesh and shader drawn gets one handler, keyed by the resource's
// identity. Handlers own the device objects. Dirty flags on a mesh cause its
// buffers to be re-uploaded or recreated on the next draw; a changed shader
// source causes its program to be rebuilt.
//
// # Shader Prologue
//
// Shader sources are compiled with a prologue that declares the vertex
// inputs, varyings and engine uniforms (see [Prologue]). User sources start
// directly with their own declarations and main function.
//
// # Diagnostics
//
// Invalid resources never crash the renderer. Draws of invalid meshes or
// shaders are skipped and reported through the logger set with [SetLogger].
// Programmer errors (such as popping the base transform) panic.
//
// # Threading
//
// A Renderer and the resources it draws must be used from the thread that
// owns the device's graphics context.
package marathon
