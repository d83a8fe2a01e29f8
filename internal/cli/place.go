package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bmarciniec/place-in-regions/pkg/engine"
)

// newPlaceCmd creates the place command: evaluate a placement script
// and report the resulting bar groups.
func newPlaceCmd() *cobra.Command {
	var svgOut string

	cmd := &cobra.Command{
		Use:   "place [script]",
		Short: "Evaluate a placement script and report the bar groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlace(cmd.Context(), args[0], svgOut)
		},
	}

	cmd.Flags().StringVarP(&svgOut, "svg", "o", "", "write an SVG elevation of the placements to this file")

	return cmd
}

func runPlace(ctx context.Context, path, svgOut string) error {
	logger := loggerFromContext(ctx)

	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	p := newProgress(logger)

	eng := engine.NewEngine()
	scene, evalErrs, err := eng.Evaluate(string(src))
	if err != nil {
		return err
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			logger.Error("script error", "err", e.Error())
		}
		return fmt.Errorf("%d error(s) in %s", len(evalErrs), path)
	}
	logger.Debug("script evaluated", "scene", scene.ID, "requests", len(scene.Requests))

	groups, err := scene.Run()
	if err != nil {
		return err
	}

	var bars int
	for _, g := range groups {
		bars += g.BarCount
		logger.Info("bar group",
			"position", g.Position,
			"bars", g.BarCount,
			"spacing", g.Spacing,
			"diameter", g.StartShape.Diameter,
		)
	}
	p.done(fmt.Sprintf("Placed %d groups (%d bars)", len(groups), bars))

	if svgOut != "" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := renderElevation(f, scene.View, groups); err != nil {
			return err
		}
		logger.Info("wrote elevation", "file", svgOut)
	}
	return nil
}
