// Package vendordb resolves USB vendor IDs to display names. It answers
// hwdb-style modalias queries ("usb:v8087*") from a built-in table of
// well-known vendors, optionally overlaid with user-supplied TOML or YAML
// mapping files. A DB is read-only after loading and safe for concurrent
// readers.
package vendordb

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// DB maps 16-bit USB vendor IDs to vendor names.
type DB struct {
	vendors map[uint16]string
}

// New returns a DB seeded with the built-in vendor table.
func New() *DB {
	vendors := make(map[uint16]string, len(builtinVendors))
	for id, name := range builtinVendors {
		vendors[id] = name
	}
	return &DB{vendors: vendors}
}

// LoadFile overlays a user-supplied vendor mapping onto the table.
// The format is chosen by extension: .toml, .yaml or .yml. The file holds
// a flat mapping of 4-digit hex vendor IDs to names:
//
//	"8087" = "Intel Corp."
//
// Entries replace built-in ones with the same ID.
func (db *DB) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	raw := make(map[string]string)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return fmt.Errorf("vendordb: unsupported file format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("vendordb: parse %s: %w", path, err)
	}

	for key, name := range raw {
		id, err := strconv.ParseUint(key, 16, 16)
		if err != nil {
			return fmt.Errorf("vendordb: invalid vendor ID %q in %s", key, path)
		}
		db.vendors[uint16(id)] = name
	}
	return nil
}

// Query resolves one modalias pattern of the form "usb:vXXXX*" where XXXX
// is the uppercase hex vendor ID. Malformed patterns and unknown vendors
// report ok false.
func (db *DB) Query(pattern string) (string, bool) {
	body, found := strings.CutPrefix(pattern, "usb:v")
	if !found {
		return "", false
	}
	body, found = strings.CutSuffix(body, "*")
	if !found || len(body) != 4 {
		return "", false
	}
	id, err := strconv.ParseUint(body, 16, 16)
	if err != nil {
		return "", false
	}
	name, ok := db.vendors[uint16(id)]
	return name, ok
}
