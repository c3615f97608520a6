package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avendel/catalog-api/internal/publish"
)

var (
	buildConfig    string
	buildOut       string
	buildNoRestore bool
)

var buildCmd = &cobra.Command{
	Use:   "build [selector]",
	Short: "Build a project and stage its runtime artifacts",
	Long: `Build the project whose manifest matches the selector and stage its
runtime artifacts into the output directory.

The selector may be an explicit manifest path, a directory, or a glob
pattern, and must match exactly one *.project.yaml manifest. An ambiguous
selector aborts the build before any output is produced; pass an explicit
manifest path to disambiguate.

Configurations (--config):
  release - optimized, stripped binary (default)
  debug   - no optimization, debugger-friendly

Examples:
  pack build                               # single manifest in current dir
  pack build catalog-api.project.yaml      # explicit manifest
  pack build services/ --config=debug      # directory selector
  pack build --out=dist --no-restore       # dependencies already restored`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildConfig, "config", "c", "release", "Build configuration (release|debug)")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "dist", "Output directory for staged artifacts")
	buildCmd.Flags().BoolVar(&buildNoRestore, "no-restore", false, "Skip dependency restore (already resolved in a prior step)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	selector := ""
	if len(args) > 0 {
		selector = args[0]
	}

	result, err := publish.Run(cmd.Context(), publish.Options{
		Selector:      selector,
		Configuration: buildConfig,
		Output:        buildOut,
		SkipRestore:   buildNoRestore,
	})
	if err != nil {
		return err
	}

	fmt.Printf("staged %s (%s) in %s\n", result.Binary, buildConfig, result.Output)
	return nil
}
