package sdfx

import (
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const bbTol = 1e-6

// containsBox reports whether the bounding box [min, max] contains
// the box [lo, hi] within tolerance. Marching cubes and SDF unions
// can pad the box slightly, so tests check containment rather than
// exact equality.
func containsBox(min, max, lo, hi [3]float64) bool {
	for i := 0; i < 3; i++ {
		if min[i] > lo[i]+bbTol || max[i] < hi[i]-bbTol {
			return false
		}
	}
	return true
}

func TestSegmentBoundingBox(t *testing.T) {
	k := New()
	s := k.Segment(v3.Vec{}, v3.Vec{X: 100}, 6)

	min, max := s.BoundingBox()
	if !containsBox(min, max, [3]float64{0, -6, -6}, [3]float64{100, 6, 6}) {
		t.Errorf("Segment bbox [%v, %v] does not contain [0 -6 -6]..[100 6 6]", min, max)
	}
}

func TestSegmentVerticalBoundingBox(t *testing.T) {
	k := New()
	s := k.Segment(v3.Vec{X: 10, Y: 20}, v3.Vec{X: 10, Y: 20, Z: 50}, 4)

	min, max := s.BoundingBox()
	if !containsBox(min, max, [3]float64{6, 16, 0}, [3]float64{14, 24, 50}) {
		t.Errorf("Segment bbox [%v, %v] does not contain [6 16 0]..[14 24 50]", min, max)
	}
}

func TestSegmentDegeneratePanics(t *testing.T) {
	k := New()

	t.Run("zero length", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Segment with zero length did not panic")
			}
		}()
		k.Segment(v3.Vec{X: 1}, v3.Vec{X: 1}, 5)
	})

	t.Run("zero radius", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("Segment with zero radius did not panic")
			}
		}()
		k.Segment(v3.Vec{}, v3.Vec{X: 10}, 0)
	})
}

func TestUnionBoundingBox(t *testing.T) {
	k := New()
	a := k.Segment(v3.Vec{}, v3.Vec{X: 100}, 5)
	b := k.Segment(v3.Vec{X: 100}, v3.Vec{X: 100, Z: 80}, 5)

	u := k.Union(a, b)
	min, max := u.BoundingBox()
	if !containsBox(min, max, [3]float64{0, -5, 0}, [3]float64{100, 5, 80}) {
		t.Errorf("Union bbox [%v, %v] does not contain [0 -5 0]..[100 5 80]", min, max)
	}
}

func TestToMesh(t *testing.T) {
	k := New()
	s := k.Segment(v3.Vec{}, v3.Vec{X: 50}, 10)

	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("ToMesh() returned empty mesh")
	}
	if m.TriangleCount() == 0 {
		t.Error("ToMesh() returned zero triangles")
	}
	if len(m.Vertices) != len(m.Normals) {
		t.Errorf("vertex data length %d != normal data length %d", len(m.Vertices), len(m.Normals))
	}
	if len(m.Indices)%3 != 0 {
		t.Errorf("index count %d is not a multiple of 3", len(m.Indices))
	}

	// Every vertex must lie within the segment bounding box, padded
	// by one tessellation cell.
	min, max := s.BoundingBox()
	pad := (max[0] - min[0]) / 50
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		x := float64(m.Vertices[i])
		y := float64(m.Vertices[i+1])
		z := float64(m.Vertices[i+2])
		if x < min[0]-pad || x > max[0]+pad ||
			y < min[1]-pad || y > max[1]+pad ||
			z < min[2]-pad || z > max[2]+pad {
			t.Fatalf("vertex (%v, %v, %v) outside bbox [%v, %v]", x, y, z, min, max)
		}
	}
}

func TestToMeshNormalsUnitLength(t *testing.T) {
	k := New()
	s := k.Segment(v3.Vec{}, v3.Vec{Z: 30}, 8)

	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	for i := 0; i+2 < len(m.Normals) && i < 30; i += 3 {
		nx := float64(m.Normals[i])
		ny := float64(m.Normals[i+1])
		nz := float64(m.Normals[i+2])
		l := math.Sqrt(nx*nx + ny*ny + nz*nz)
		if math.Abs(l-1) > 1e-3 {
			t.Fatalf("normal %d has length %v, want 1", i/3, l)
		}
	}
}
