package main

import (
	"log"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/bmarciniec/place-in-regions/pkg/engine"
	"github.com/bmarciniec/place-in-regions/pkg/frame"
	"github.com/bmarciniec/place-in-regions/pkg/geo"
	"github.com/bmarciniec/place-in-regions/pkg/kernel"
	"github.com/bmarciniec/place-in-regions/pkg/kernel/sdfx"
	"github.com/bmarciniec/place-in-regions/pkg/placement"
	"github.com/bmarciniec/place-in-regions/pkg/preview"
)

// colorPalette assigns distinct colors to successive position marks.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the host binding. A CAD host panel (or the root command) calls
// its methods and receives JSON-serializable results.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format sent to the host.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
}

// GroupData describes one placed bar group.
type GroupData struct {
	Position int     `json:"position"`
	BarCount int     `json:"barCount"`
	Spacing  float64 `json:"spacing"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of evaluating a placement script.
type EvalResult struct {
	Groups []GroupData     `json:"groups"`
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// AnalysisData reports the partition analysis of a placement outline.
type AnalysisData struct {
	Result string `json:"result"`
	Cells  int    `json:"cells"`
	Color  int    `json:"color"`
	Draw   bool   `json:"draw"`
}

// NewApp creates an App with an engine and the sdfx kernel.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
		kernel: sdfx.New(),
	}
}

// Evaluate takes placement script source and returns the placed groups,
// their preview meshes and any errors. This is the primary binding.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Groups: []GroupData{},
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}

	scene, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout).
		log.Printf("Evaluate fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	groups, err := scene.Run()
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	for _, g := range groups {
		result.Groups = append(result.Groups, GroupData{
			Position: g.Position,
			BarCount: g.BarCount,
			Spacing:  g.Spacing,
		})
	}

	meshes, err := preview.Meshes(groups, a.kernel)
	if err != nil {
		log.Printf("preview mesh error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "preview generation failed: " + err.Error(),
		})
		return result
	}
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Vertices,
			Normals:  m.Normals,
			Indices:  m.Indices,
			Name:     m.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}
	return result
}

// Analyze partitions a placement outline given in world coordinates and
// reports whether it can preview and place. The host calls this on
// every polygon edit to color the rubber-band outline.
func (a *App) Analyze(outline [][3]float64, normal [3]float64) AnalysisData {
	pts := make([]v3.Vec, 0, len(outline))
	for _, p := range outline {
		pts = append(pts, v3.Vec{X: p[0], Y: p[1], Z: p[2]})
	}
	n := v3.Vec{X: normal[0], Y: normal[1], Z: normal[2]}

	part := placement.Analyze(geo.NewPolygon3(pts...), frame.Identity(), n)
	color, draw := preview.OutlineColor(part.Result)

	return AnalysisData{
		Result: part.Result.String(),
		Cells:  len(part.Cells),
		Color:  color,
		Draw:   draw,
	}
}
