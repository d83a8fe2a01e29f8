package engine

import (
	"github.com/google/uuid"

	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/placement"
	"github.com/bmarciniec/place-in-regions/pkg/shape"
)

// SceneRequest pairs a placement request with the bending shape it
// distributes. Requests in a scene are built in script order.
type SceneRequest struct {
	Bar shape.BendingShape
	Req placement.Request
}

// Scene is the output of evaluating a placement script: a view frame,
// cover configuration and an ordered list of placement requests.
type Scene struct {
	ID           uuid.UUID
	View         *frame.Transform
	Config       placement.Config
	BasePosition int
	Requests     []SceneRequest
}

// NewScene returns an empty scene with the global view, default covers
// and position numbering starting at 1.
func NewScene() *Scene {
	return &Scene{
		ID:           uuid.New(),
		View:         frame.Identity(),
		Config:       placement.DefaultConfig(),
		BasePosition: 1,
	}
}

// Run builds every request in order. Position marks continue across
// requests: each request starts one past the highest mark the previous
// one produced.
func (s *Scene) Run() ([]placement.BarPlacement, error) {
	var out []placement.BarPlacement
	pos := s.BasePosition
	for _, r := range s.Requests {
		groups, err := placement.Build(r.Bar, r.Req, s.View, pos, s.Config)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			if g.Position >= pos {
				pos = g.Position + 1
			}
		}
		out = append(out, groups...)
	}
	return out, nil
}
