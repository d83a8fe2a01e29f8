package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called by the main package with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the placeregions CLI and returns an error if any
// command fails. Logging defaults to info level on stderr; --verbose
// switches to debug level. The logger is attached to the command
// context and reachable via loggerFromContext.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "placeregions",
		Short:        "Place rebar shapes in spacing regions",
		Long:         `placeregions evaluates placement scripts that distribute bent rebar shapes along a line in spacing regions or inside a polygonal outline with per-position distortion.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("placeregions %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newPlaceCmd())
	root.AddCommand(newAnalyzeCmd())

	return root.ExecuteContext(context.Background())
}
