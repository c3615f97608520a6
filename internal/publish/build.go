package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Flags passed to the compiler per build configuration.
var configFlags = map[string][]string{
	"release": {"-trimpath", "-ldflags", "-s -w"},
	"debug":   {"-gcflags", "all=-N -l"},
}

// Options controls a publish build.
type Options struct {
	Selector      string // Manifest path, directory, or glob; must resolve to exactly one manifest.
	Configuration string // "release" or "debug".
	Output        string // Directory receiving the staged artifacts.
	SkipRestore   bool   // Skip dependency resolution when a prior step already ran it.
	Runner        Runner // Toolchain executor; defaults to ExecRunner.
}

// Result describes a completed publish build.
type Result struct {
	Manifest string // Resolved manifest path.
	Output   string // Staged artifact directory.
	Binary   string // Path to the entry binary inside Output.
	BuildID  string // Unique ID recorded in the runtime record.
}

// Run resolves the manifest, restores and compiles the project, and stages
// the runtime artifacts into the output directory.
//
// Steps run in order: resolve, restore (unless skipped), compile, stage.
// Resolution failures abort before any output directory is created.
func Run(ctx context.Context, opts Options) (*Result, error) {
	flags, ok := configFlags[opts.Configuration]
	if !ok {
		return nil, fmt.Errorf("%w: unknown configuration %q (must be release or debug)", ErrBuild, opts.Configuration)
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}

	manifestPath, err := Resolve(opts.Selector)
	if err != nil {
		return nil, err
	}

	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	projectDir := filepath.Dir(manifestPath)
	buildID := uuid.New().String()

	slog.Info("publishing project",
		"manifest", manifestPath,
		"name", manifest.Name,
		"configuration", opts.Configuration,
		"output", opts.Output,
		"build_id", buildID,
	)

	if err := os.MkdirAll(opts.Output, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStage, err)
	}
	output, err := filepath.Abs(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStage, err)
	}

	if opts.SkipRestore {
		slog.Info("skipping dependency restore")
	} else {
		slog.Info("restoring dependencies")
		if err := opts.Runner.Run(ctx, projectDir, "go", "mod", "download"); err != nil {
			return nil, fmt.Errorf("%w: restore: %v", ErrBuild, err)
		}
	}

	binary := filepath.Join(output, manifest.Name)
	args := append([]string{"build", "-o", binary}, flags...)
	args = append(args, manifest.Entrypoint)

	slog.Info("compiling", "entrypoint", manifest.Entrypoint, "configuration", opts.Configuration)
	if err := opts.Runner.Run(ctx, projectDir, "go", args...); err != nil {
		return nil, fmt.Errorf("%w: compile: %v", ErrBuild, err)
	}
	if _, err := os.Stat(binary); err != nil {
		return nil, fmt.Errorf("%w: compiler produced no entry artifact at %s", ErrBuild, binary)
	}

	if err := stage(manifest, projectDir, output, opts.Configuration, buildID); err != nil {
		return nil, err
	}

	slog.Info("publish complete", "output", output, "binary", binary)

	return &Result{
		Manifest: manifestPath,
		Output:   output,
		Binary:   binary,
		BuildID:  buildID,
	}, nil
}

// RuntimeRecord is the runtime configuration record staged next to the
// binary, consumed by operators and start scripts.
type RuntimeRecord struct {
	BuildID       string            `yaml:"buildId"`
	Name          string            `yaml:"name"`
	Configuration string            `yaml:"configuration"`
	Entry         string            `yaml:"entry"`
	Port          int               `yaml:"port,omitempty"`
	Env           map[string]string `yaml:"env,omitempty"`
	BuiltAt       time.Time         `yaml:"builtAt"`
}
