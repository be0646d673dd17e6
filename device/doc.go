// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package device defines the graphics device contract used by the marathon
// renderer.
//
// The [Device] interface abstracts over an immediate-mode, stateful graphics
// API. Every call executes synchronously and completes before it returns;
// there is no command queue. Implementations live under backend/:
//
//   - backend/opengl: OpenGL 3.3 core through go-gl
//   - backend/headless: in-memory device for tests and headless runs
//
// # Resource Management
//
// Device objects are referenced by opaque IDs ([BufferID], [VertexArrayID],
// [ShaderID], [ProgramID]). The zero ID ([InvalidID]) never names a live
// object. Objects are created by Create*/Compile*/Link* methods and must be
// released exactly once by the matching Destroy* method. An ID must not be
// used after destruction; a backend may hand it out again.
//
// # Threading
//
// A Device is bound to one graphics context. All calls must be made from the
// thread on which that context is current. Implementations are not required to
// be safe for concurrent use.
package device
