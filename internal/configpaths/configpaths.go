// Package configpaths resolves the locations procon2d reads its
// configuration from.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

const appDir = "procon2d"

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDir), nil
}

// ConfigCandidatePaths returns the config files to try, grouped by format.
// Within each group later entries take precedence. An explicit userPath is
// routed to the group matching its extension and tried last.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	dirs := []string{filepath.Join(string(os.PathSeparator), "etc", appDir)}
	if d, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, d)
	}

	for _, dir := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(dir, "config.json"))
		yamlPaths = append(yamlPaths, filepath.Join(dir, "config.yaml"), filepath.Join(dir, "config.yml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, "config.toml"))
	}

	if userPath != "" {
		switch strings.ToLower(filepath.Ext(userPath)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}
