package publish

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

// RuntimeRecordFile is the filename of the staged runtime configuration record.
const RuntimeRecordFile = "runtime.yaml"

// Files copied as the dependency-resolution record. go.sum is optional for
// projects with no external requirements.
var dependencyRecordFiles = []string{"go.mod", "go.sum"}

// stage assembles the non-binary artifacts into the output directory:
// the dependency record, the runtime record, and declared assets.
func stage(m *Manifest, projectDir, output, configuration, buildID string) error {
	for i, name := range dependencyRecordFiles {
		src := filepath.Join(projectDir, name)
		if _, err := os.Stat(src); err != nil {
			if i == 0 {
				return fmt.Errorf("%w: project has no %s", ErrStage, name)
			}
			continue
		}
		if err := copyPath(src, filepath.Join(output, name)); err != nil {
			return fmt.Errorf("%w: %v", ErrStage, err)
		}
	}

	for _, asset := range m.Assets {
		src := filepath.Join(projectDir, asset)
		dst := filepath.Join(output, asset)
		if err := copyPath(src, dst); err != nil {
			return fmt.Errorf("%w: asset %s: %v", ErrStage, asset, err)
		}
	}

	record := RuntimeRecord{
		BuildID:       buildID,
		Name:          m.Name,
		Configuration: configuration,
		Entry:         "./" + m.Name,
		Port:          m.Port,
		Env:           m.Env,
		BuiltAt:       time.Now().UTC(),
	}
	return writeRuntimeRecord(filepath.Join(output, RuntimeRecordFile), record)
}

// writeRuntimeRecord writes the record atomically so a partially written
// file is never observed in the output directory
func writeRuntimeRecord(path string, record RuntimeRecord) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStage, err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrStage, err)
	}
	return nil
}

// copyPath copies a file, or a directory tree recursively, preserving
// relative layout under dst
func copyPath(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return copyFile(src, dst, info.Mode())
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, fi.Mode())
	})
}

func copyFile(src, dst string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
