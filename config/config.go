// Package config loads simulation settings from YAML files layered over engine defaults.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/mrchimp/zombies-vs-medics/engine"
)

// File is the on-disk document, keys follow the engine.Config json tags
// Absent keys keep their default value
type File struct {
	engine.Config

	// Seed fixes the random source when non-zero
	Seed uint64 `json:"seed,omitempty"`
	// HTTP is the observer listen address, empty disables the server
	HTTP string `json:"http,omitempty"`
	// Sound enables audio cues
	Sound bool `json:"sound,omitempty"`
}

// Default returns a File holding engine defaults
func Default() File {
	return File{Config: engine.DefaultConfig()}
}

// Parse decodes YAML over the defaults and validates the simulation part
func Parse(data []byte) (File, error) {
	f := Default()
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return File{}, err
	}
	if err := f.Config.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// Load reads and parses the file at path
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// Marshal renders f as YAML, used to dump the effective configuration
func Marshal(f File) ([]byte, error) {
	return yaml.Marshal(f)
}
