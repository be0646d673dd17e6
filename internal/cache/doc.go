// Package cache provides a small generic LRU cache.
//
// Backends use it to memoize uniform location lookups per program, which are
// comparatively expensive driver round trips:
//
//	c := cache.New[Key, int32](256)
//	loc, ok := c.Get(Key{Program: p, Name: "u_tint"})
//
// Cache is safe for concurrent use. It must not be copied after creation.
package cache
