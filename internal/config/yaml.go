package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML configuration overlay from path and applies it on
// top of the current settings. The file is decoded over CurrentSnapshot(),
// so fields missing from the file keep their current values.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	snap := CurrentSnapshot()
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return err
	}
	ApplySnapshot(snap)
	return nil
}

// SaveFile writes the current settings to path as YAML.
func SaveFile(path string) error {
	data, err := yaml.Marshal(CurrentSnapshot())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
