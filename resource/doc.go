// Package resource holds the CPU-side render resources: meshes, shaders and
// materials.
//
// Resources own descriptions and data only. They never hold device objects;
// the renderer's handler cache turns them into device objects on first use
// and keeps them in sync through the dirty flags recorded here.
//
// Resources are not safe for concurrent use. They are edited and drawn on the
// render thread.
package resource
