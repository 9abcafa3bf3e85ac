//go:build !windows

package configpaths

import "path/filepath"

// SystemConfigDirs returns the machine-wide configuration directories.
func SystemConfigDirs() []string {
	return []string{filepath.Join(string(filepath.Separator), "etc", appName)}
}
