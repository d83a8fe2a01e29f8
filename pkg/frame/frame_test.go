package frame

import (
	"errors"
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const tol = 1e-9

func vecsClose(a, b v3.Vec) bool {
	return a.Sub(b).Length() < tol
}

func TestIdentity(t *testing.T) {
	tr := Identity()
	p := v3.Vec{X: 1, Y: 2, Z: 3}
	if got := tr.PointToReference(p); !vecsClose(got, p) {
		t.Errorf("PointToReference(%v) = %v, want unchanged", p, got)
	}
	if got := tr.PointToWorld(p); !vecsClose(got, p) {
		t.Errorf("PointToWorld(%v) = %v, want unchanged", p, got)
	}
}

func TestNewNilIsIdentity(t *testing.T) {
	tr, err := New(nil)
	if err != nil {
		t.Fatalf("New(nil) error = %v", err)
	}
	p := v3.Vec{X: -7, Y: 42, Z: 0.5}
	if got := tr.PointToWorld(p); !vecsClose(got, p) {
		t.Errorf("PointToWorld(%v) = %v, want unchanged", p, got)
	}
}

func TestNewSingular(t *testing.T) {
	m := sdf.Scale3d(v3.Vec{X: 1, Y: 1, Z: 0})
	_, err := New(&m)
	if !errors.Is(err, ErrNonInvertible) {
		t.Errorf("New(singular) error = %v, want ErrNonInvertible", err)
	}
}

func TestRoundTrip(t *testing.T) {
	m := sdf.Translate3d(v3.Vec{X: 100, Y: -50, Z: 20}).
		Mul(sdf.RotateZ(0.7)).
		Mul(sdf.RotateX(-1.2))
	tr, err := New(&m)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	points := []v3.Vec{
		{},
		{X: 1},
		{X: 123.4, Y: -56.7, Z: 89.1},
		{X: -1e3, Y: 1e3, Z: 0.001},
	}
	for _, p := range points {
		got := tr.PointToWorld(tr.PointToReference(p))
		if !vecsClose(got, p) {
			t.Errorf("round trip of %v = %v, drift %v", p, got, got.Sub(p).Length())
		}
	}
}

func TestFromBasisAxes(t *testing.T) {
	origin := v3.Vec{X: 10, Y: 20, Z: 30}
	tr, err := FromBasis(origin, v3.Vec{X: 1}, v3.Vec{Z: 1})
	if err != nil {
		t.Fatalf("FromBasis() error = %v", err)
	}

	// View origin maps to the given world origin.
	if got := tr.PointToWorld(v3.Vec{}); !vecsClose(got, origin) {
		t.Errorf("view origin = %v, want %v", got, origin)
	}
	// View X maps to world X, view Y to world Z.
	if got := tr.DirToWorld(v3.Vec{X: 1}); !vecsClose(got, v3.Vec{X: 1}) {
		t.Errorf("view X in world = %v, want (1,0,0)", got)
	}
	if got := tr.DirToWorld(v3.Vec{Y: 1}); !vecsClose(got, v3.Vec{Z: 1}) {
		t.Errorf("view Y in world = %v, want (0,0,1)", got)
	}
	// View direction is X cross Z = -Y.
	if got := tr.ViewDir(); !vecsClose(got, v3.Vec{Y: -1}) {
		t.Errorf("ViewDir() = %v, want (0,-1,0)", got)
	}
}

func TestFromBasisReorthogonalizes(t *testing.T) {
	// Y axis not perpendicular to X: the X component is dropped.
	tr, err := FromBasis(v3.Vec{}, v3.Vec{X: 2}, v3.Vec{X: 1, Y: 1})
	if err != nil {
		t.Fatalf("FromBasis() error = %v", err)
	}
	if got := tr.DirToWorld(v3.Vec{Y: 1}); !vecsClose(got, v3.Vec{Y: 1}) {
		t.Errorf("view Y in world = %v, want (0,1,0)", got)
	}
}

func TestFromBasisAntiparallelView(t *testing.T) {
	// X along world X, Y along -Y puts the view direction at -Z, the
	// antiparallel case of the tilt rotation.
	tr, err := FromBasis(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Y: -1})
	if err != nil {
		t.Fatalf("FromBasis() error = %v", err)
	}
	if got := tr.ViewDir(); !vecsClose(got, v3.Vec{Z: -1}) {
		t.Errorf("ViewDir() = %v, want (0,0,-1)", got)
	}
	if got := tr.DirToWorld(v3.Vec{X: 1}); !vecsClose(got, v3.Vec{X: 1}) {
		t.Errorf("view X in world = %v, want (1,0,0)", got)
	}
}

func TestFromBasisRoundTrip(t *testing.T) {
	tr, err := FromBasis(
		v3.Vec{X: -3, Y: 8, Z: 1},
		v3.Vec{X: 1, Y: 1, Z: 0},
		v3.Vec{X: 0, Y: 0, Z: 2},
	)
	if err != nil {
		t.Fatalf("FromBasis() error = %v", err)
	}
	p := v3.Vec{X: 0.25, Y: -17, Z: 4.5}
	if got := tr.PointToReference(tr.PointToWorld(p)); !vecsClose(got, p) {
		t.Errorf("round trip of %v = %v", p, got)
	}
}

func TestFromBasisDegenerate(t *testing.T) {
	tests := []struct {
		name       string
		xdir, ydir v3.Vec
	}{
		{"zero X", v3.Vec{}, v3.Vec{Y: 1}},
		{"zero Y", v3.Vec{X: 1}, v3.Vec{}},
		{"parallel axes", v3.Vec{X: 1}, v3.Vec{X: 5}},
		{"antiparallel axes", v3.Vec{X: 1}, v3.Vec{X: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromBasis(v3.Vec{}, tt.xdir, tt.ydir)
			if !errors.Is(err, ErrNonInvertible) {
				t.Errorf("FromBasis() error = %v, want ErrNonInvertible", err)
			}
		})
	}
}

func TestDirIgnoresTranslation(t *testing.T) {
	m := sdf.Translate3d(v3.Vec{X: 1000})
	tr, err := New(&m)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	d := v3.Vec{X: 0, Y: 1, Z: 0}
	if got := tr.DirToReference(d); !vecsClose(got, d) {
		t.Errorf("DirToReference(%v) = %v, want unchanged", d, got)
	}
	if l := tr.DirToWorld(d).Length(); math.Abs(l-1) > tol {
		t.Errorf("DirToWorld length = %v, want 1", l)
	}
}
