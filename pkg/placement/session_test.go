package placement

import (
	"errors"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/host"
	"github.com/bmarciniec/place-in-regions/pkg/regions"
)

// testDocument builds an in-memory document with one picked stirrup
// representation three tree levels below its bars definition.
func testDocument() (*host.MemoryDocument, host.ElementRef) {
	doc := host.NewMemoryDocument()
	doc.AddBarsDefinition("def", host.BarData{
		Diameter:      12,
		SteelGrade:    500,
		Position:      4,
		ShapeCode:     "D1",
		BendingRoller: 4,
	})
	doc.AddIntermediate("group", "def")
	doc.AddBarsRepresentation("pick", "group", geo.NewPolyline3(
		v3.Vec{Y: 30},
		v3.Vec{Y: 770},
		v3.Vec{Y: 770, Z: 200},
		v3.Vec{Y: 30, Z: 200},
		v3.Vec{Y: 30},
	))
	return doc, "pick"
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	doc, picked := testDocument()
	s, err := NewSession(doc, picked, frame.Identity(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

func TestSessionAcquiresShape(t *testing.T) {
	s := newTestSession(t)

	sh := s.Shape()
	if sh.Diameter != 12 {
		t.Errorf("diameter = %v, want 12", sh.Diameter)
	}
	if sh.Polyline.Count() != 5 {
		t.Errorf("vertex count = %d, want 5", sh.Polyline.Count())
	}
	if s.BasePosition() != 4 {
		t.Errorf("BasePosition() = %d, want 4", s.BasePosition())
	}

	// Shape() hands out copies.
	sh.Move(v3.Vec{X: 100})
	if got := s.Shape().Polyline.Points[0]; !geo.EqualV3(got, v3.Vec{Y: 30}) {
		t.Errorf("session baseline moved to %v", got)
	}
}

func TestSessionWrongPick(t *testing.T) {
	doc, _ := testDocument()
	if _, err := NewSession(doc, "def", frame.Identity(), DefaultConfig()); !errors.Is(err, host.ErrWrongElementKind) {
		t.Errorf("NewSession() with a definition pick error = %v, want ErrWrongElementKind", err)
	}
}

func TestSessionPlaceLinear(t *testing.T) {
	s := newTestSession(t)

	err := s.Place(LinearRequest{
		Line:        geo.Line3{Start: v3.Vec{}, End: v3.Vec{X: 1000}},
		RegionsSpec: "2*100+$*200",
	})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	groups, err := s.Placements()
	if err != nil {
		t.Fatalf("Placements() error = %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("group count = %d, want 2", len(groups))
	}
	// Position marks continue from the picked group's own mark.
	if groups[0].Position != 4 || groups[1].Position != 5 {
		t.Errorf("positions = %d, %d, want 4, 5", groups[0].Position, groups[1].Position)
	}
}

func TestSessionPlaceFailureClearsPlacements(t *testing.T) {
	s := newTestSession(t)

	if err := s.Place(LinearRequest{
		Line:        geo.Line3{Start: v3.Vec{}, End: v3.Vec{X: 1000}},
		RegionsSpec: "$*200",
	}); err != nil {
		t.Fatalf("Place() error = %v", err)
	}

	err := s.Place(LinearRequest{
		Line:        geo.Line3{Start: v3.Vec{}, End: v3.Vec{X: 1000}},
		RegionsSpec: "2*100",
	})
	if !errors.Is(err, regions.ErrMalformedSpecification) {
		t.Fatalf("Place() error = %v, want ErrMalformedSpecification", err)
	}
	if _, err := s.Placements(); !errors.Is(err, ErrNoPlacements) {
		t.Errorf("Placements() after failed Place error = %v, want ErrNoPlacements", err)
	}
}

func TestSessionPlacementsBeforePlace(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.Placements(); !errors.Is(err, ErrNoPlacements) {
		t.Errorf("Placements() error = %v, want ErrNoPlacements", err)
	}
}

func TestSessionPlacePolygonal(t *testing.T) {
	s := newTestSession(t)

	err := s.Place(PolygonalRequest{
		Outline: rectOutline(4000, 800),
		CutAxis: stirrupCutAxis,
		Spacing: 500,
	})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	groups, err := s.Placements()
	if err != nil {
		t.Fatalf("Placements() error = %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("group count = %d, want 1", len(groups))
	}
	if groups[0].Position != 4 {
		t.Errorf("position = %d, want 4", groups[0].Position)
	}
	if groups[0].BarCount != 8 {
		t.Errorf("bar count = %d, want 8", groups[0].BarCount)
	}
}

func TestSessionAnalyzeOutline(t *testing.T) {
	s := newTestSession(t)

	if got := s.AnalyzeOutline(rectOutline(4000, 800)); got != Valid {
		t.Errorf("AnalyzeOutline(rect) = %s, want valid", got)
	}
	colinear := geo.NewPolygon3(v3.Vec{}, v3.Vec{X: 1000}, v3.Vec{X: 2000})
	if got := s.AnalyzeOutline(colinear); got != InvalidForPreview {
		t.Errorf("AnalyzeOutline(colinear) = %s, want invalid-for-preview", got)
	}
}

func TestBuildDispatch(t *testing.T) {
	baseline := testStirrup(t, 200)

	t.Run("linear", func(t *testing.T) {
		groups, err := Build(baseline, LinearRequest{
			Line:        geo.Line3{Start: v3.Vec{}, End: v3.Vec{X: 1000}},
			RegionsSpec: "2*100+$*200",
		}, frame.Identity(), 1, DefaultConfig())
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if len(groups) != 2 {
			t.Errorf("group count = %d, want 2", len(groups))
		}
	})

	t.Run("polygonal", func(t *testing.T) {
		groups, err := Build(baseline, PolygonalRequest{
			Outline: rectOutline(4000, 800),
			CutAxis: stirrupCutAxis,
			Spacing: 500,
		}, frame.Identity(), 1, DefaultConfig())
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if len(groups) != 1 {
			t.Errorf("group count = %d, want 1", len(groups))
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		if _, err := Build(baseline, nil, frame.Identity(), 1, DefaultConfig()); err == nil {
			t.Error("Build(nil request) error = nil")
		}
	})
}
