package configpaths_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbctools/typec/internal/configpaths"
)

func TestConfigCandidatePaths(t *testing.T) {
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths("")
	require.NotEmpty(t, jsonPaths)
	require.NotEmpty(t, yamlPaths)
	require.NotEmpty(t, tomlPaths)

	for _, p := range jsonPaths {
		assert.Contains(t, p, "config.json")
	}
	for _, p := range tomlPaths {
		assert.Contains(t, p, "config.toml")
	}
}

func TestConfigCandidatePathsUserFile(t *testing.T) {
	for _, tc := range []struct {
		name string
		file string
		pick func(jsonPaths, yamlPaths, tomlPaths []string) []string
	}{
		{
			name: "yaml",
			file: "/tmp/custom.yaml",
			pick: func(_, yamlPaths, _ []string) []string { return yamlPaths },
		},
		{
			name: "toml",
			file: "/tmp/custom.toml",
			pick: func(_, _, tomlPaths []string) []string { return tomlPaths },
		},
		{
			name: "json by default",
			file: "/tmp/custom.conf",
			pick: func(jsonPaths, _, _ []string) []string { return jsonPaths },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			paths := tc.pick(configpaths.ConfigCandidatePaths(tc.file))
			// The user file is last so it overrides the defaults.
			require.NotEmpty(t, paths)
			assert.Equal(t, tc.file, paths[len(paths)-1])
		})
	}
}

func TestVendorFileCandidates(t *testing.T) {
	paths := configpaths.VendorFileCandidates()
	require.NotEmpty(t, paths)
	assert.Contains(t, paths[0], "vendors.")
}
