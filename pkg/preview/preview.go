// Package preview turns computed bar placements into triangle meshes
// using a geometry kernel, for rendering inside the interactive host.
// The previewer is read-only and never mutates the placements.
package preview

import (
	"fmt"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/kernel"
	"github.com/bmarciniec/place-in-regions/pkg/placement"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

// Color codes of the host's preview pen.
const (
	// ColorValid is used for outlines accepted for polygonal placement.
	ColorValid = 4

	// ColorInvalid is used for outlines that can be previewed but not
	// placed.
	ColorInvalid = 6
)

// OutlineColor maps an outline analysis result to the host preview
// color. Outlines invalid even for preview draw nothing.
func OutlineColor(r placement.AnalysisResult) (color int, draw bool) {
	switch r {
	case placement.Valid:
		return ColorValid, true
	case placement.InvalidForPlacement:
		return ColorInvalid, true
	default:
		return 0, false
	}
}

// Meshes produces one mesh per placed shape instance: the start and,
// when it differs, the end shape of every bar group. Mesh names encode
// the position mark and instance role.
func Meshes(placements []placement.BarPlacement, k kernel.Kernel) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for _, p := range placements {
		m, err := instanceMesh(p.StartShape, k, fmt.Sprintf("pos-%d-start", p.Position))
		if err != nil {
			return nil, err
		}
		if m != nil {
			meshes = append(meshes, m)
		}

		if samePolyline(p.StartShape, p.EndShape) {
			continue
		}
		m, err = instanceMesh(p.EndShape, k, fmt.Sprintf("pos-%d-end", p.Position))
		if err != nil {
			return nil, err
		}
		if m != nil {
			meshes = append(meshes, m)
		}
	}
	return meshes, nil
}

// instanceMesh sweeps one shape polyline into a solid and meshes it.
// Shapes with no usable segment yield no mesh.
func instanceMesh(s shape.BendingShape, k kernel.Kernel, name string) (*kernel.Mesh, error) {
	radius := s.Diameter / 2
	if radius <= 0 {
		return nil, fmt.Errorf("preview: shape %s has no diameter", name)
	}

	var solid kernel.Solid
	pts := s.Polyline.Points
	for i := 1; i < len(pts); i++ {
		if geo.EqualV3(pts[i-1], pts[i]) {
			continue
		}
		seg := k.Segment(pts[i-1], pts[i], radius)
		if solid == nil {
			solid = seg
		} else {
			solid = k.Union(solid, seg)
		}
	}
	if solid == nil {
		return nil, nil
	}

	mesh, err := k.ToMesh(solid)
	if err != nil {
		return nil, fmt.Errorf("preview: meshing %s: %w", name, err)
	}
	mesh.Name = name
	return mesh, nil
}

// samePolyline reports whether two instances occupy the same position,
// as a single-bar linear group does.
func samePolyline(a, b shape.BendingShape) bool {
	if a.Polyline.Count() != b.Polyline.Count() {
		return false
	}
	for i := range a.Polyline.Points {
		if !geo.EqualV3(a.Polyline.Points[i], b.Polyline.Points[i]) {
			return false
		}
	}
	return true
}

// Extent returns the world-space bounding box of a set of placements,
// useful for fitting the preview viewport.
func Extent(placements []placement.BarPlacement) (min, max v3.Vec) {
	min = v3.Vec{X: 1e308, Y: 1e308, Z: 1e308}
	max = min.Neg()
	for _, p := range placements {
		for _, s := range []shape.BendingShape{p.StartShape, p.EndShape} {
			for _, pt := range s.Polyline.Points {
				if pt.X < min.X {
					min.X = pt.X
				}
				if pt.Y < min.Y {
					min.Y = pt.Y
				}
				if pt.Z < min.Z {
					min.Z = pt.Z
				}
				if pt.X > max.X {
					max.X = pt.X
				}
				if pt.Y > max.Y {
					max.Y = pt.Y
				}
				if pt.Z > max.Z {
					max.Z = pt.Z
				}
			}
		}
	}
	return min, max
}
