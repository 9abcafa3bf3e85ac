//go:build windows

package configpaths

import (
	"os"
	"path/filepath"
)

// SystemConfigDirs returns the machine-wide configuration directories.
func SystemConfigDirs() []string {
	programData := os.Getenv("ProgramData")
	if programData == "" {
		return nil
	}
	return []string{filepath.Join(programData, appName)}
}
