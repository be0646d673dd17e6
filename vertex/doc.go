// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package vertex describes mesh vertex layouts and index formats independently
// of any graphics backend.
//
// A layout is an ordered list of [Descriptor] values. Attributes are
// interleaved: each attribute's byte offset is the sum of the sizes of the
// attributes declared before it, and the vertex stride is the sum of all of
// them. There are no gaps.
//
//	descs := []vertex.Descriptor{
//	    {Attribute: vertex.Position, Format: vertex.Float32, Components: 3},
//	    {Attribute: vertex.TexCoord0, Format: vertex.Float32, Components: 2},
//	}
//	vertex.Stride(descs)                    // 20
//	vertex.Offset(descs, vertex.TexCoord0)  // 12
//
// Every semantic attribute has a fixed device binding location (see
// [Location]); shaders compiled by the renderer declare their inputs at the
// same locations.
//
// All functions in this package are pure and safe for concurrent use.
package vertex
