// Package kernel defines the abstract solid-geometry interface used to
// generate preview meshes for bar placements. Implementations provide
// swept-bar primitives and meshing behind this interface, so the
// preview layer never depends on a concrete geometry backend.
package kernel

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Solid is an opaque handle to a backend solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface for bar previews.
type Kernel interface {
	// Segment creates a solid bar segment of the given radius between
	// two points.
	Segment(p0, p1 v3.Vec, radius float64) Solid

	// Union combines two solids.
	Union(a, b Solid) Solid

	// ToMesh converts a solid to a triangle mesh.
	ToMesh(s Solid) (*Mesh, error)
}
