// Package headless implements an in-memory graphics device.
//
// The device keeps real byte storage for buffers and validates what an OpenGL
// driver would reject: GLSL stages are checked structurally (version
// directive, balanced delimiters, a main entry point) and WGSL stages are
// compiled to SPIR-V with naga. Uniform declarations become the program's
// uniform table; uniforms declared but never referenced are inactive and have
// no location, as with a real driver.
//
// Every call is recorded so tests can assert on the exact device traffic:
//
//	dev := headless.New()
//	r := marathon.New(dev)
//	r.Draw(mesh)
//	if dev.Count(headless.OpDrawArrays) != 1 { ... }
//
// Misuse (destroying an object twice, drawing without a program, uniform type
// mismatches) is reported through [Device.Errors] instead of panicking.
package headless
