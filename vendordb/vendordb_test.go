package vendordb_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbctools/typec/vendordb"
)

func TestQueryBuiltin(t *testing.T) {
	db := vendordb.New()

	name, ok := db.Query("usb:v8087*")
	require.True(t, ok)
	assert.Equal(t, "Intel Corp.", name)

	name, ok = db.Query("usb:v18D1*")
	require.True(t, ok)
	assert.Equal(t, "Google Inc.", name)
}

func TestQueryUnknownVendor(t *testing.T) {
	_, ok := vendordb.New().Query("usb:vFFFE*")
	assert.False(t, ok)
}

func TestQueryMalformedPattern(t *testing.T) {
	db := vendordb.New()

	for _, tc := range []struct {
		name    string
		pattern string
	}{
		{name: "empty", pattern: ""},
		{name: "missing prefix", pattern: "v8087*"},
		{name: "missing wildcard", pattern: "usb:v8087"},
		{name: "short vid", pattern: "usb:v87*"},
		{name: "long vid", pattern: "usb:v00008087*"},
		{name: "non-hex vid", pattern: "usb:vWXYZ*"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := db.Query(tc.pattern)
			assert.False(t, ok)
		})
	}
}

func TestLoadFileOverlay(t *testing.T) {
	for _, tc := range []struct {
		name string
		file string
		data string
	}{
		{
			name: "toml",
			file: "vendors.toml",
			data: "\"f055\" = \"Prototype Gadget Works\"\n\"8087\" = \"Intel\"\n",
		},
		{
			name: "yaml",
			file: "vendors.yaml",
			data: "\"f055\": Prototype Gadget Works\n\"8087\": Intel\n",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tc.file)
			require.NoError(t, os.WriteFile(path, []byte(tc.data), 0o644))

			db := vendordb.New()
			require.NoError(t, db.LoadFile(path))

			name, ok := db.Query("usb:vF055*")
			require.True(t, ok)
			assert.Equal(t, "Prototype Gadget Works", name)

			// Overlay entries win over the built-in table.
			name, ok = db.Query("usb:v8087*")
			require.True(t, ok)
			assert.Equal(t, "Intel", name)
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, vendordb.New().LoadFile(filepath.Join(dir, "nope.toml")))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "vendors.ini")
		require.NoError(t, os.WriteFile(path, []byte("8087=Intel\n"), 0o644))
		assert.ErrorContains(t, vendordb.New().LoadFile(path), "unsupported file format")
	})

	t.Run("invalid vendor id", func(t *testing.T) {
		path := filepath.Join(dir, "vendors.yaml")
		require.NoError(t, os.WriteFile(path, []byte("\"not-a-vid\": Foo\n"), 0o644))
		assert.ErrorContains(t, vendordb.New().LoadFile(path), "invalid vendor ID")
	})
}
