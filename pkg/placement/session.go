package placement

import (
	"errors"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/host"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

// ErrNoPlacements is returned when placements are read before a
// successful Place call.
var ErrNoPlacements = errors.New("placement: no placements were calculated, call Place first")

// Session holds the externally owned state of one interactive
// placement run: the baseline shape acquired from the user's pick, the
// reference view it was picked in, and the last computed placements.
// Place may be called repeatedly with speculative input; every call
// recomputes from scratch.
type Session struct {
	baseline   shape.BendingShape
	barData    host.BarData
	view       *frame.Transform
	cfg        Config
	placements []BarPlacement
}

// NewSession acquires the bending shape behind the picked bars
// representation and prepares a placement session in the given view.
func NewSession(doc host.Document, picked host.ElementRef, view *frame.Transform, cfg Config) (*Session, error) {
	baseline, data, err := host.AcquireShape(doc, picked, view)
	if err != nil {
		return nil, err
	}
	return &Session{
		baseline: baseline,
		barData:  data,
		view:     view,
		cfg:      cfg,
	}, nil
}

// Shape returns a copy of the baseline bending shape.
func (s *Session) Shape() shape.BendingShape {
	return s.baseline.Copy()
}

// BasePosition returns the position mark of the selected bar group,
// the starting value for placement marks.
func (s *Session) BasePosition() int {
	return s.barData.Position
}

// Place computes the placements for a request, replacing any previous
// result. Position marks start at the selected shape's own position.
func (s *Session) Place(req Request) error {
	placements, err := Build(s.baseline, req, s.view, s.barData.Position, s.cfg)
	if err != nil {
		s.placements = nil
		return err
	}
	s.placements = placements
	return nil
}

// Placements returns the result of the last successful Place call.
func (s *Session) Placements() ([]BarPlacement, error) {
	if len(s.placements) == 0 {
		return nil, ErrNoPlacements
	}
	return s.placements, nil
}

// AnalyzeOutline classifies a speculative placement outline for
// preview coloring without building placements.
func (s *Session) AnalyzeOutline(outline geo.Polygon3) AnalysisResult {
	return Analyze(outline, s.view, s.baseline.Normal()).Result
}
