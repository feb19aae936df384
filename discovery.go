// FILE: appconf/discovery.go
package appconf

import (
	"os"
	"path/filepath"
)

// SearchPath assembles the standard directory list for locating an
// application's config file: any explicitly supplied directories
// first, then the working directory, then the XDG config directories
// for the application name. Hand the result to NewFileLoader or
// Builder.WithSearchPath.
func SearchPath(appName string, extra ...string) []string {
	paths := append([]string{}, extra...)

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, cwd)
	}

	paths = append(paths, xdgConfigPaths(appName)...)
	return paths
}

// xdgConfigPaths returns XDG-compliant config search paths.
func xdgConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
