package placement

import (
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/geo"
)

// rectOutline is a flat rectangular outline in the world XY plane with
// vertical cap edges at x=0 and x=length.
func rectOutline(length, height float64) geo.Polygon3 {
	return geo.NewPolygon3(
		v3.Vec{},
		v3.Vec{X: length},
		v3.Vec{X: length, Y: height},
		v3.Vec{Y: height},
	)
}

// ladderOutline has one interior vertex on the top chord, splitting the
// outline into a flat and a sloped cell at x=cut.
func ladderOutline(length, height, cut, peak float64) geo.Polygon3 {
	return geo.NewPolygon3(
		v3.Vec{},
		v3.Vec{X: length},
		v3.Vec{X: length, Y: peak},
		v3.Vec{X: cut, Y: height},
		v3.Vec{Y: height},
	)
}

var alongX = v3.Vec{X: 1}

func TestAnalyzeRectangle(t *testing.T) {
	part := Analyze(rectOutline(4000, 800), frame.Identity(), alongX)

	if part.Result != Valid {
		t.Fatalf("Result = %s, want valid", part.Result)
	}
	if len(part.Cells) != 1 {
		t.Fatalf("cell count = %d, want 1", len(part.Cells))
	}
	if !geo.EqualScalar(part.TotalLength, 4000) {
		t.Errorf("TotalLength = %v, want 4000", part.TotalLength)
	}

	// The local frame puts the lower-left vertex at the origin with X
	// along the placement direction.
	origin := part.WorldToLocal.MulPosition(v3.Vec{})
	if !geo.EqualV3(origin, v3.Vec{}) {
		t.Errorf("lower-left in local frame = %v, want origin", origin)
	}
	far := part.WorldToLocal.MulPosition(v3.Vec{X: 4000, Y: 800})
	if !geo.EqualV3(far, v3.Vec{X: 4000, Y: 800}) {
		t.Errorf("far corner in local frame = %v, want (4000,800,0)", far)
	}
}

func TestAnalyzeLadder(t *testing.T) {
	part := Analyze(ladderOutline(4000, 800, 2000, 1200), frame.Identity(), alongX)

	if part.Result != Valid {
		t.Fatalf("Result = %s, want valid", part.Result)
	}
	if len(part.Cells) != 2 {
		t.Fatalf("cell count = %d, want 2", len(part.Cells))
	}
	if !geo.EqualScalar(part.TotalLength, 4000) {
		t.Errorf("TotalLength = %v, want 4000", part.TotalLength)
	}

	// Cells come out ordered along the placement direction.
	c0, ok := localCellSpan(part, 0)
	if !ok {
		t.Fatal("cell 0 is not planar in the local frame")
	}
	if !geo.EqualScalar(c0[0], 0) || !geo.EqualScalar(c0[1], 2000) {
		t.Errorf("cell 0 span = %v, want [0, 2000]", c0)
	}
	c1, ok := localCellSpan(part, 1)
	if !ok {
		t.Fatal("cell 1 is not planar in the local frame")
	}
	if !geo.EqualScalar(c1[0], 2000) || !geo.EqualScalar(c1[1], 4000) {
		t.Errorf("cell 1 span = %v, want [2000, 4000]", c1)
	}
}

// localCellSpan re-expresses a cell in the local frame and returns its
// X extent.
func localCellSpan(part Partition, i int) ([2]float64, bool) {
	c := part.Cells[i].Copy()
	c.Transform(part.WorldToLocal)
	c.Flatten()
	c2, ok := c.To2D()
	if !ok {
		return [2]float64{}, false
	}
	min, max := c2.XSpan()
	return [2]float64{min, max}, true
}

func TestAnalyzeNormalAgainstX(t *testing.T) {
	// Shape normal pointing along -X: the outline is rotated so the
	// placement direction still follows the normal.
	part := Analyze(rectOutline(4000, 800), frame.Identity(), v3.Vec{X: -1})
	if part.Result != Valid {
		t.Fatalf("Result = %s, want valid", part.Result)
	}
	if !geo.EqualScalar(part.TotalLength, 4000) {
		t.Errorf("TotalLength = %v, want 4000", part.TotalLength)
	}
}

func TestAnalyzeClockwiseOutline(t *testing.T) {
	// Winding order of the drawn outline must not matter.
	cw := geo.NewPolygon3(
		v3.Vec{},
		v3.Vec{Y: 800},
		v3.Vec{X: 4000, Y: 800},
		v3.Vec{X: 4000},
	)
	part := Analyze(cw, frame.Identity(), alongX)
	if part.Result != Valid {
		t.Errorf("Result = %s, want valid", part.Result)
	}
}

func TestAnalyzeThreeCapEdges(t *testing.T) {
	// A step outline with three edges parallel to the distortion
	// direction cannot be partitioned.
	step := geo.NewPolygon3(
		v3.Vec{},
		v3.Vec{X: 4000},
		v3.Vec{X: 4000, Y: 1000},
		v3.Vec{X: 2000, Y: 1000},
		v3.Vec{X: 2000, Y: 600},
		v3.Vec{Y: 600},
	)
	part := Analyze(step, frame.Identity(), alongX)
	if part.Result != InvalidForPlacement {
		t.Errorf("Result = %s, want invalid-for-placement", part.Result)
	}
	if part.Cells != nil {
		t.Error("invalid partition carries cells")
	}
}

func TestAnalyzeDegenerateOutline(t *testing.T) {
	tests := []struct {
		name   string
		points []v3.Vec
	}{
		{"colinear", []v3.Vec{{}, {X: 1000}, {X: 2000}}},
		{"two points", []v3.Vec{{}, {X: 1000}}},
		{"bowtie", []v3.Vec{{}, {X: 2000, Y: 800}, {X: 2000}, {Y: 800}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part := Analyze(geo.NewPolygon3(tt.points...), frame.Identity(), alongX)
			if part.Result != InvalidForPreview {
				t.Errorf("Result = %s, want invalid-for-preview", part.Result)
			}
		})
	}
}

func TestAnalyzeCoplanarShapeNormal(t *testing.T) {
	// A shape normal along the view direction projects to nothing in
	// the outline plane; the placement direction is undefined.
	part := Analyze(rectOutline(4000, 800), frame.Identity(), v3.Vec{Z: 1})
	if part.Result != InvalidForPlacement {
		t.Errorf("Result = %s, want invalid-for-placement", part.Result)
	}
}

func TestAnalyzeTransformsRoundTrip(t *testing.T) {
	part := Analyze(ladderOutline(4000, 800, 2000, 1200), frame.Identity(), alongX)
	if part.Result != Valid {
		t.Fatalf("Result = %s, want valid", part.Result)
	}
	p := v3.Vec{X: 123, Y: 456, Z: 0}
	back := part.LocalToWorld.MulPosition(part.WorldToLocal.MulPosition(p))
	if !geo.EqualV3(back, p) {
		t.Errorf("round trip of %v = %v", p, back)
	}
}

func TestAnalyzeInRotatedView(t *testing.T) {
	// The same ladder drawn in a vertical section view: the view XY
	// plane is the world XZ plane.
	view, err := frame.FromBasis(v3.Vec{}, v3.Vec{X: 1}, v3.Vec{Z: 1})
	if err != nil {
		t.Fatalf("FromBasis() error = %v", err)
	}
	outline := geo.NewPolygon3(
		v3.Vec{},
		v3.Vec{X: 4000},
		v3.Vec{X: 4000, Z: 800},
		v3.Vec{Z: 800},
	)
	part := Analyze(outline, view, alongX)
	if part.Result != Valid {
		t.Fatalf("Result = %s, want valid", part.Result)
	}
	if !geo.EqualScalar(part.TotalLength, 4000) {
		t.Errorf("TotalLength = %v, want 4000", part.TotalLength)
	}
	// Cells are returned in world space.
	c := part.Cells[0]
	for _, p := range c.Points {
		if !geo.IsZero(p.Y) {
			t.Fatalf("cell vertex %v not in the world XZ plane", p)
		}
	}
}

func TestAnalysisResultString(t *testing.T) {
	tests := []struct {
		r    AnalysisResult
		want string
	}{
		{InvalidForPreview, "invalid-for-preview"},
		{InvalidForPlacement, "invalid-for-placement"},
		{Valid, "valid"},
		{AnalysisResult(7), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
