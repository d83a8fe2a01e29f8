package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bmarciniec/place-in-regions/pkg/placement"
	"github.com/bmarciniec/place-in-regions/pkg/preview"
)

// newAnalyzeCmd creates the analyze command: partition a placement
// outline described in a TOML scene file and report the result.
func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [scene.toml]",
		Short: "Partition a placement outline and report its validity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), args[0])
		},
	}
}

func runAnalyze(ctx context.Context, path string) error {
	logger := loggerFromContext(ctx)

	sf, err := loadSceneFile(path)
	if err != nil {
		return err
	}
	view, err := sf.view()
	if err != nil {
		return err
	}
	outline, err := sf.outline()
	if err != nil {
		return err
	}
	normal, err := sf.shapeNormal()
	if err != nil {
		return err
	}

	part := placement.Analyze(outline, view, normal)
	logger.Info("analysis", "result", part.Result.String())

	if color, draw := preview.OutlineColor(part.Result); draw {
		logger.Debug("preview outline", "color", color)
	}

	switch part.Result {
	case placement.Valid:
		logger.Info("partition", "cells", len(part.Cells), "length", fmt.Sprintf("%.1f", part.TotalLength))
		for i, cell := range part.Cells {
			logger.Debug("cell", "index", i, "vertices", len(cell.Points))
		}
		return nil
	case placement.InvalidForPlacement:
		return fmt.Errorf("outline previews but cannot be placed: shape plane is parallel to the outline")
	default:
		return fmt.Errorf("outline is not a usable polygon")
	}
}
