// FILE: appconf/save.go
package appconf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// WriteConfigFile writes the resolved configuration (trait defaults
// overlaid by the canonical tree) to a TOML file. The write is atomic:
// a temporary file in the target directory is renamed over the
// destination.
func (a *App) WriteConfigFile(path string) error {
	a.mu.RLock()
	nested := make(map[string]any, len(a.traits))
	for component, traits := range a.traits {
		settings := make(map[string]any, len(traits))
		for name, tr := range traits {
			settings[name] = copyValue(tr.Default)
		}
		nested[component] = settings
	}
	for component, settings := range a.canonical {
		dst, ok := nested[component].(map[string]any)
		if !ok {
			dst = make(map[string]any, len(settings))
			nested[component] = dst
		}
		for name, value := range settings {
			dst[name] = copyValue(value)
		}
	}
	a.mu.RUnlock()

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(nested); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}

	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile performs an atomic file write via temp file + rename.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
