// FILE: appconf/loader.go
package appconf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Loader produces one configuration fragment from one source. A loader
// is stateless after construction: Load may be called repeatedly and
// has no side effects beyond re-reading its source.
type Loader interface {
	Load() (Tree, error)
}

// FileLoader loads a fragment from a configuration file. When a search
// path is given, the first directory containing the file wins; an
// absolute filename is used as-is. Supported formats are TOML, JSON
// and YAML, detected by extension first and content second.
type FileLoader struct {
	Filename   string
	SearchPath []string
}

// NewFileLoader returns a loader for filename, optionally resolved
// against the given search directories.
func NewFileLoader(filename string, searchPath ...string) *FileLoader {
	return &FileLoader{Filename: filename, SearchPath: searchPath}
}

// Load resolves, reads and parses the file into a Tree fragment scoped
// to whatever components the file mentions.
func (l *FileLoader) Load() (Tree, error) {
	path, err := l.resolve()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	raw, err := parseConfigData(path, data)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}

	tree, err := TreeFromMap(raw)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return tree, nil
}

// resolve finds the first existing file along the search path.
func (l *FileLoader) resolve() (string, error) {
	if filepath.IsAbs(l.Filename) || len(l.SearchPath) == 0 {
		if info, err := os.Stat(l.Filename); err == nil && !info.IsDir() {
			return l.Filename, nil
		}
		return "", &LoadError{Source: l.Filename, Err: ErrNotFound}
	}

	for _, dir := range l.SearchPath {
		candidate := filepath.Join(dir, l.Filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", &LoadError{Source: l.Filename, Err: ErrNotFound}
}

// parseConfigData parses raw file bytes into a nested map using the
// detected format.
func parseConfigData(path string, data []byte) (map[string]any, error) {
	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("unable to determine config format")
		}
	}

	raw := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}
	return raw, nil
}

// detectFileFormat determines format from the file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing. JSON
// is tried first because it is the strictest, YAML last because it
// accepts almost anything.
func detectFormatFromContent(data []byte) string {
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	return ""
}
