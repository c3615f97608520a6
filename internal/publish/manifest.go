package publish

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestSuffix is the filename suffix identifying project manifests.
const ManifestSuffix = ".project.yaml"

// Manifest identifies a buildable project: its entry point, the port its
// runtime image declares, and the static assets shipped alongside the binary.
type Manifest struct {
	Name       string            `yaml:"name"`
	Entrypoint string            `yaml:"entrypoint"`
	Port       int               `yaml:"port,omitempty"`
	Assets     []string          `yaml:"assets,omitempty"`
	Env        map[string]string `yaml:"env,omitempty"`
}

// LoadManifest reads and validates a project manifest
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifest, err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("%w: %s: name is required", ErrManifest, path)
	}
	if m.Entrypoint == "" {
		return nil, fmt.Errorf("%w: %s: entrypoint is required", ErrManifest, path)
	}

	return &m, nil
}
