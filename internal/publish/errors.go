package publish

import "errors"

var (
	// ErrNoTarget is returned when a selector matches no project manifest.
	ErrNoTarget = errors.New("no project manifest matches the selector")

	// ErrAmbiguousTarget is returned when a selector matches more than one
	// project manifest. The build aborts before producing any output; the
	// remedy is an explicit manifest path instead of a wildcard.
	ErrAmbiguousTarget = errors.New("selector matches more than one project manifest")

	// ErrManifest is returned for unreadable or invalid manifests.
	ErrManifest = errors.New("invalid project manifest")

	// ErrBuild is returned when the restore or compile step fails.
	ErrBuild = errors.New("build failed")

	// ErrStage is returned when assembling the output directory fails.
	ErrStage = errors.New("staging failed")
)
