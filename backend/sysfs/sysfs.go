// Package sysfs implements the backend.Backend interface on top of the
// Linux typec and power_supply sysfs classes. All filesystem access goes
// through the FS interface, so tests drive the backend with an in-memory
// tree.
package sysfs

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"regexp"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/backend"
	"github.com/usbctools/typec/ucsi"
	"github.com/usbctools/typec/vdo"
)

const (
	typecPath = "/sys/class/typec"
	psyPath   = "/sys/class/power_supply"
)

// FS is the filesystem surface the backend needs. OsFS serves the real
// sysfs; tests substitute a fake.
type FS interface {
	// ReadFile returns the contents of the attribute at path.
	ReadFile(path string) (string, error)
	// ReadDir returns the entry names of the directory at path, sorted.
	ReadDir(path string) ([]string, error)
	// Exists reports whether path exists.
	Exists(path string) bool
}

// OsFS is the FS backed by the real filesystem.
type OsFS struct{}

func (OsFS) ReadFile(p string) (string, error) {
	b, err := os.ReadFile(p)
	return string(b), err
}

func (OsFS) ReadDir(p string) ([]string, error) {
	entries, err := os.ReadDir(p)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (OsFS) Exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func init() {
	backend.Register("sysfs", func(log *slog.Logger, db vdo.VendorDB) (backend.Backend, error) {
		return New(OsFS{}, db, log)
	})
}

// Backend reads platform Type-C state from sysfs.
type Backend struct {
	fs  FS
	db  vdo.VendorDB
	log *slog.Logger
}

// New probes fs for the typec class and returns a Backend over it. It
// fails with typec.ErrNotSupported when the class is absent or empty.
func New(fs FS, db vdo.VendorDB, log *slog.Logger) (*Backend, error) {
	if log == nil {
		log = slog.Default()
	}
	entries, err := fs.ReadDir(typecPath)
	if err != nil || len(entries) == 0 {
		return nil, typec.ErrNotSupported
	}
	return &Backend{fs: fs, db: db, log: log}, nil
}

var (
	portRe    = regexp.MustCompile(`^port\d+$`)
	altModeRe = regexp.MustCompile(`^port\d+\.\d+$`)
)

// Capabilities counts the exposed ports and their alternate modes and
// reads the per-port protocol revisions.
func (b *Backend) Capabilities() (ucsi.Capability, error) {
	var c ucsi.Capability

	entries, err := b.fs.ReadDir(typecPath)
	if err != nil {
		return c, err
	}
	for _, name := range entries {
		if !portRe.MatchString(name) {
			continue
		}
		c.NumConnectors++
		portPath := path.Join(typecPath, name)

		portEntries, err := b.fs.ReadDir(portPath)
		if err != nil {
			return c, err
		}
		for _, pe := range portEntries {
			if altModeRe.MatchString(pe) {
				c.NumAltModes++
			}
		}

		content, err := b.fs.ReadFile(path.Join(portPath, "usb_power_delivery_revision"))
		if err != nil {
			return c, err
		}
		if c.PdVersion, err = parseBcd(content); err != nil {
			return c, err
		}
		content, err = b.fs.ReadFile(path.Join(portPath, "usb_typec_revision"))
		if err != nil {
			return c, err
		}
		if c.UsbTypeCVersion, err = parseBcd(content); err != nil {
			return c, err
		}
	}
	return c, nil
}

// ConnectorCapabilities derives the operation mode from the port's
// power_role attribute.
func (b *Backend) ConnectorCapabilities(connectorNr int) (ucsi.ConnectorCapability, error) {
	var c ucsi.ConnectorCapability

	content, err := b.fs.ReadFile(fmt.Sprintf("%s/port%d/power_role", typecPath, connectorNr))
	if err != nil {
		return c, err
	}
	c.OperationMode = parsePowerRole(content)

	switch c.OperationMode {
	case ucsi.OperationModeDrp:
		c.Provider = true
		c.Consumer = true
	case ucsi.OperationModeRdOnly:
		c.Consumer = true
	default:
		c.Provider = true
	}

	// The partner's negotiated PD revision is only exposed once a partner
	// is attached.
	revPath := fmt.Sprintf("%s/port%d-partner/usb_power_delivery_revision", typecPath, connectorNr)
	if b.fs.Exists(revPath) {
		content, err := b.fs.ReadFile(revPath)
		if err != nil {
			return c, err
		}
		rev, err := parsePdRevision(content)
		if err != nil {
			return c, err
		}
		c.PartnerPdRevision = uint32(rev)
	}

	return c, nil
}

// AlternateModes enumerates the alternate mode directories of the
// connector, partner or cable plug, stopping at the first missing index.
func (b *Backend) AlternateModes(recipient ucsi.AlternateModeRecipient, connectorNr int) ([]ucsi.AlternateMode, error) {
	var modes []ucsi.AlternateMode

	for {
		i := len(modes)
		var dir string
		switch recipient {
		case ucsi.RecipientConnector:
			dir = fmt.Sprintf("%s/port%d/port%d.%d", typecPath, connectorNr, connectorNr, i)
		case ucsi.RecipientSop:
			dir = fmt.Sprintf("%s/port%d/port%d-partner/port%d-partner.%d",
				typecPath, connectorNr, connectorNr, connectorNr, i)
		case ucsi.RecipientSopPrime:
			dir = fmt.Sprintf("%s/port%d-cable/port%d-plug0/port%d-plug0.%d",
				typecPath, connectorNr, connectorNr, connectorNr, i)
		default:
			return nil, typec.ErrNotSupported
		}

		if !b.fs.Exists(path.Join(dir, "svid")) {
			break
		}
		content, err := b.fs.ReadFile(path.Join(dir, "svid"))
		if err != nil {
			return nil, err
		}
		var mode ucsi.AlternateMode
		if mode.Svid[0], err = parseHexU32(content); err != nil {
			return nil, err
		}

		if !b.fs.Exists(path.Join(dir, "vdo")) {
			break
		}
		content, err = b.fs.ReadFile(path.Join(dir, "vdo"))
		if err != nil {
			return nil, err
		}
		if mode.Vdo[0], err = parseHexU32(content); err != nil {
			return nil, err
		}
		modes = append(modes, mode)
	}

	return modes, nil
}

// CableProperty reads the cable's plug type, cable type, and whether the
// plug advertises alternate modes.
func (b *Backend) CableProperty(connectorNr int) (ucsi.CableProperty, error) {
	var p ucsi.CableProperty
	cablePath := fmt.Sprintf("%s/port%d-cable", typecPath, connectorNr)

	content, err := b.readAttr(path.Join(cablePath, "plug_type"))
	if err != nil {
		return p, err
	}
	p.PlugEndType = parsePlugType(content)

	content, err = b.readAttr(path.Join(cablePath, "type"))
	if err != nil {
		return p, err
	}
	if p.CableType, err = parseCableType(content); err != nil {
		return p, err
	}

	content, err = b.readAttr(fmt.Sprintf("%s/port%d-plug0/number_of_alternate_modes",
		typecPath, connectorNr))
	if err != nil {
		return p, err
	}
	if p.ModeSupport, err = parseModeSupport(content); err != nil {
		return p, err
	}

	return p, nil
}

// ConnectorStatus reports attachment from the partner directory and, when
// the UCSI source power supply is online, folds the measured operating and
// maximum power into the negotiated power level the way a battery RDO
// carries them (250 mW units, operating power in the upper half).
func (b *Backend) ConnectorStatus(connectorNr int) (ucsi.ConnectorStatus, error) {
	var s ucsi.ConnectorStatus

	partnerPath := fmt.Sprintf("%s/port%d/port%d-partner", typecPath, connectorNr, connectorNr)
	s.ConnectStatus = b.fs.Exists(partnerPath)

	supplyPath := fmt.Sprintf("%s/ucsi-source-psy-USBC000:00%d", psyPath, connectorNr+1)

	content, err := b.readAttr(path.Join(supplyPath, "online"))
	if err != nil {
		return s, err
	}
	online, err := parseHexU32(content)
	if err != nil {
		return s, err
	}
	if online == 0 {
		return s, nil
	}

	readMilli := func(attr string) (uint32, error) {
		content, err := b.readAttr(path.Join(supplyPath, attr))
		if err != nil {
			return 0, err
		}
		v, err := parseU32(content)
		if err != nil {
			return 0, err
		}
		return v / 1000, nil // µV and µA to mV and mA
	}

	cur, err := readMilli("current_now")
	if err != nil {
		return s, err
	}
	volt, err := readMilli("voltage_now")
	if err != nil {
		return s, err
	}
	opPower := cur * volt / (250 * 1000)

	cur, err = readMilli("current_max")
	if err != nil {
		return s, err
	}
	volt, err = readMilli("voltage_max")
	if err != nil {
		return s, err
	}
	maxPower := cur * volt / (250 * 1000)

	s.NegotiatedPowerLevel = opPower<<10 | maxPower&0x3ff
	return s, nil
}

// readAttr fails with typec.ErrNotSupported when the attribute does not
// exist, matching how optional sysfs nodes are reported.
func (b *Backend) readAttr(p string) (string, error) {
	if !b.fs.Exists(p) {
		return "", typec.ErrNotSupported
	}
	return b.fs.ReadFile(p)
}
