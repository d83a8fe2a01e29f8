package kernel

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubKernel is a minimal Kernel implementation that proves the
// interface is satisfiable without a geometry backend.
type stubKernel struct{}

func (k *stubKernel) Segment(p0, p1 v3.Vec, radius float64) Solid {
	return &stubSolid{
		minBB: [3]float64{min3(p0.X, p1.X) - radius, min3(p0.Y, p1.Y) - radius, min3(p0.Z, p1.Z) - radius},
		maxBB: [3]float64{max3(p0.X, p1.X) + radius, max3(p0.Y, p1.Y) + radius, max3(p0.Z, p1.Z) + radius},
	}
}

func (k *stubKernel) Union(a, _ Solid) Solid { return a }

func (k *stubKernel) ToMesh(_ Solid) (*Mesh, error) {
	return &Mesh{}, nil
}

func min3(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max3(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelSegmentBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Segment(v3.Vec{}, v3.Vec{X: 100}, 6)
	min, max := s.BoundingBox()
	if min != [3]float64{-6, -6, -6} {
		t.Errorf("Segment min = %v, want [-6 -6 -6]", min)
	}
	if max != [3]float64{106, 6, 6} {
		t.Errorf("Segment max = %v, want [106 6 6]", max)
	}
}

func TestStubKernelToMesh(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Segment(v3.Vec{}, v3.Vec{Z: 10}, 1)
	m, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if !m.IsEmpty() {
		t.Error("stub ToMesh() should return empty mesh")
	}
}
