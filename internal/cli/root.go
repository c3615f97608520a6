package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pack",
	Short: "Assemble runtime artifacts from a project manifest",
	Long: `pack compiles a project identified by a *.project.yaml manifest and
stages everything required to run it into an output directory: the entry
binary, the dependency resolution record, a runtime configuration record,
and any declared static assets.

The staged directory is meant to be copied verbatim into a minimal runtime
image and invoked directly, with no compiler toolchain present.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
