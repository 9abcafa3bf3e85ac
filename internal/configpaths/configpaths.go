// Package configpaths computes the candidate configuration file paths the
// tools try, in priority order.
package configpaths

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "lstypec"

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// ConfigCandidatePaths returns the JSON, YAML and TOML config file
// candidates, lowest priority first the way kong.Configuration expects.
// A non-empty userCfg is appended to the list matching its extension so
// it overrides everything else.
func ConfigCandidatePaths(userCfg string) (jsonPaths, yamlPaths, tomlPaths []string) {
	dirs := SystemConfigDirs()
	if userDir, err := DefaultConfigDir(); err == nil {
		dirs = append(dirs, userDir)
	}

	for _, dir := range dirs {
		jsonPaths = append(jsonPaths, filepath.Join(dir, "config.json"))
		yamlPaths = append(yamlPaths, filepath.Join(dir, "config.yaml"), filepath.Join(dir, "config.yml"))
		tomlPaths = append(tomlPaths, filepath.Join(dir, "config.toml"))
	}

	if userCfg != "" {
		switch strings.ToLower(filepath.Ext(userCfg)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userCfg)
		case ".toml":
			tomlPaths = append(tomlPaths, userCfg)
		default:
			jsonPaths = append(jsonPaths, userCfg)
		}
	}
	return jsonPaths, yamlPaths, tomlPaths
}

// VendorFileCandidates returns the candidate vendor-overlay files, lowest
// priority first.
func VendorFileCandidates() []string {
	var paths []string
	for _, dir := range SystemConfigDirs() {
		paths = append(paths, filepath.Join(dir, "vendors.toml"), filepath.Join(dir, "vendors.yaml"))
	}
	if userDir, err := DefaultConfigDir(); err == nil {
		paths = append(paths, filepath.Join(userDir, "vendors.toml"), filepath.Join(userDir, "vendors.yaml"))
	}
	return paths
}
