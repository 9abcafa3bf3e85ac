package sysfs_test

import (
	iofs "io/fs"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/backend"
	"github.com/usbctools/typec/backend/sysfs"
	"github.com/usbctools/typec/pd"
	"github.com/usbctools/typec/ucsi"
	"github.com/usbctools/typec/vdo"
)

// fakeFS serves an in-memory sysfs tree.
type fakeFS struct {
	files map[string]string
	dirs  map[string][]string
}

func (f fakeFS) ReadFile(p string) (string, error) {
	if s, ok := f.files[p]; ok {
		return s, nil
	}
	return "", iofs.ErrNotExist
}

func (f fakeFS) ReadDir(p string) ([]string, error) {
	if d, ok := f.dirs[p]; ok {
		return d, nil
	}
	return nil, iofs.ErrNotExist
}

func (f fakeFS) Exists(p string) bool {
	if _, ok := f.files[p]; ok {
		return true
	}
	_, ok := f.dirs[p]
	return ok
}

type mapVendorDB map[string]string

func (db mapVendorDB) Query(pattern string) (string, bool) {
	name, ok := db[pattern]
	return name, ok
}

func newBackend(t *testing.T, fs fakeFS, db mapVendorDB) *sysfs.Backend {
	t.Helper()
	b, err := sysfs.New(fs, db, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return b
}

func TestNewWithoutTypecClass(t *testing.T) {
	_, err := sysfs.New(fakeFS{}, nil, nil)
	assert.ErrorIs(t, err, typec.ErrNotSupported)

	_, err = sysfs.New(fakeFS{dirs: map[string][]string{"/sys/class/typec": {}}}, nil, nil)
	assert.ErrorIs(t, err, typec.ErrNotSupported)
}

func TestCapabilities(t *testing.T) {
	fs := fakeFS{
		dirs: map[string][]string{
			"/sys/class/typec":       {"port0", "port1"},
			"/sys/class/typec/port0": {"port0.0", "port0.1", "port0.2", "usb_power_delivery_revision"},
			"/sys/class/typec/port1": {"port1.0", "port1.1", "port1.2"},
		},
		files: map[string]string{
			"/sys/class/typec/port0/usb_power_delivery_revision": "3.0\n",
			"/sys/class/typec/port0/usb_typec_revision":          "3.0\n",
			"/sys/class/typec/port1/usb_power_delivery_revision": "3.0\n",
			"/sys/class/typec/port1/usb_typec_revision":          "1.2\n",
		},
	}

	c, err := newBackend(t, fs, nil).Capabilities()
	require.NoError(t, err)

	assert.Equal(t, uint32(2), c.NumConnectors)
	assert.Equal(t, uint32(6), c.NumAltModes)
	assert.Equal(t, "3.00", c.PdVersion.String())
	assert.Equal(t, "1.20", c.UsbTypeCVersion.String())
}

func TestConnectorCapabilities(t *testing.T) {
	fs := fakeFS{
		dirs: map[string][]string{"/sys/class/typec": {"port0"}},
		files: map[string]string{
			"/sys/class/typec/port0/power_role":                          "[source] sink\n",
			"/sys/class/typec/port0-partner/usb_power_delivery_revision": "3.0\n",
		},
	}

	c, err := newBackend(t, fs, nil).ConnectorCapabilities(0)
	require.NoError(t, err)

	assert.Equal(t, ucsi.OperationModeDrp, c.OperationMode)
	assert.True(t, c.Provider)
	assert.True(t, c.Consumer)
	assert.Equal(t, uint32(0x30), c.PartnerPdRevision)
}

func TestConnectorCapabilitiesSinkOnly(t *testing.T) {
	fs := fakeFS{
		dirs: map[string][]string{"/sys/class/typec": {"port0"}},
		files: map[string]string{
			"/sys/class/typec/port0/power_role": "sink\n",
		},
	}

	c, err := newBackend(t, fs, nil).ConnectorCapabilities(0)
	require.NoError(t, err)

	assert.Equal(t, ucsi.OperationModeRdOnly, c.OperationMode)
	assert.False(t, c.Provider)
	assert.True(t, c.Consumer)
	assert.Zero(t, c.PartnerPdRevision)
}

func TestAlternateModes(t *testing.T) {
	fs := fakeFS{
		dirs: map[string][]string{"/sys/class/typec": {"port0"}},
		files: map[string]string{
			"/sys/class/typec/port0/port0.0/svid": "8087\n",
			"/sys/class/typec/port0/port0.0/vdo":  "0x00000001\n",
			"/sys/class/typec/port0/port0.1/svid": "ff01\n",
			"/sys/class/typec/port0/port0.1/vdo":  "0x001c1c46\n",
		},
	}

	modes, err := newBackend(t, fs, nil).AlternateModes(ucsi.RecipientConnector, 0)
	require.NoError(t, err)

	require.Len(t, modes, 2)
	assert.Equal(t, uint32(0x8087), modes[0].Svid[0])
	assert.Equal(t, uint32(0x1), modes[0].Vdo[0])
	assert.Equal(t, uint32(0xFF01), modes[1].Svid[0])
	assert.Equal(t, uint32(0x1C1C46), modes[1].Vdo[0])
}

func TestAlternateModesUnsupportedRecipient(t *testing.T) {
	fs := fakeFS{dirs: map[string][]string{"/sys/class/typec": {"port0"}}}
	_, err := newBackend(t, fs, nil).AlternateModes(ucsi.RecipientSopDoublePrime, 0)
	assert.ErrorIs(t, err, typec.ErrNotSupported)
}

func TestCableProperty(t *testing.T) {
	fs := fakeFS{
		dirs: map[string][]string{"/sys/class/typec": {"port0"}},
		files: map[string]string{
			"/sys/class/typec/port0-cable/plug_type":                 "type-c\n",
			"/sys/class/typec/port0-cable/type":                      "active\n",
			"/sys/class/typec/port0-plug0/number_of_alternate_modes": "1\n",
		},
	}

	p, err := newBackend(t, fs, nil).CableProperty(0)
	require.NoError(t, err)

	assert.Equal(t, ucsi.PlugEndTypeC, p.PlugEndType)
	assert.Equal(t, ucsi.CableActive, p.CableType)
	assert.True(t, p.ModeSupport)
}

func TestCablePropertyWithoutCable(t *testing.T) {
	fs := fakeFS{dirs: map[string][]string{"/sys/class/typec": {"port0"}}}
	_, err := newBackend(t, fs, nil).CableProperty(0)
	assert.ErrorIs(t, err, typec.ErrNotSupported)
}

func TestConnectorStatus(t *testing.T) {
	supply := "/sys/class/power_supply/ucsi-source-psy-USBC000:001"
	fs := fakeFS{
		dirs: map[string][]string{
			"/sys/class/typec":                     {"port0"},
			"/sys/class/typec/port0/port0-partner": {},
		},
		files: map[string]string{
			supply + "/online":      "1\n",
			supply + "/current_now": "3000000\n",
			supply + "/voltage_now": "5000000\n",
			supply + "/current_max": "5000000\n",
			supply + "/voltage_max": "20000000\n",
		},
	}

	s, err := newBackend(t, fs, nil).ConnectorStatus(0)
	require.NoError(t, err)

	assert.True(t, s.ConnectStatus)
	// 15W operating, 100W maximum, in 250mW units.
	assert.Equal(t, uint32(60<<10|400), s.NegotiatedPowerLevel)
}

func TestConnectorStatusOffline(t *testing.T) {
	supply := "/sys/class/power_supply/ucsi-source-psy-USBC000:001"
	fs := fakeFS{
		dirs: map[string][]string{"/sys/class/typec": {"port0"}},
		files: map[string]string{
			supply + "/online": "0\n",
		},
	}

	s, err := newBackend(t, fs, nil).ConnectorStatus(0)
	require.NoError(t, err)

	assert.False(t, s.ConnectStatus)
	assert.Zero(t, s.NegotiatedPowerLevel)
}

func TestPdos(t *testing.T) {
	caps := "/sys/class/typec/port0/usb_power_delivery/source-capabilities"
	fs := fakeFS{
		dirs: map[string][]string{
			"/sys/class/typec": {"port0"},
			caps:               {"1:fixed_supply", "2:programmable_supply"},
		},
		files: map[string]string{
			caps + "/1:fixed_supply/dual_role_power":           "1\n",
			caps + "/1:fixed_supply/usb_suspend_supported":     "0\n",
			caps + "/1:fixed_supply/unconstrained_power":       "1\n",
			caps + "/1:fixed_supply/usb_communication_capable": "1\n",
			caps + "/1:fixed_supply/dual_role_data":            "0\n",
			caps + "/1:fixed_supply/fast_role_swap":            "0\n",
			caps + "/1:fixed_supply/voltage":                   "5000mV\n",
			caps + "/1:fixed_supply/maximum_current":           "3000mA\n",

			caps + "/2:programmable_supply/maximum_voltage": "11000mV\n",
			caps + "/2:programmable_supply/minimum_voltage": "3300mV\n",
			caps + "/2:programmable_supply/maximum_current": "3000mA\n",
		},
	}

	pdos, err := newBackend(t, fs, nil).Pdos(backend.PdoRequest{
		ConnectorNr: 0,
		PdoType:     ucsi.PdoSource,
		Revision:    pd.Revision3p2,
	})
	require.NoError(t, err)
	require.Len(t, pdos, 2)

	fixed, ok := pdos[0].(pd.FixedSupplyPDO)
	require.True(t, ok)
	assert.True(t, fixed.DualRolePower)
	assert.False(t, fixed.UsbSuspendSupported)
	assert.True(t, fixed.UnconstrainedPower)
	assert.True(t, fixed.UsbCommunicationsCapable)
	assert.False(t, fixed.DualRoleData)
	assert.Equal(t, pd.FastRoleSwapNotSupported, fixed.FastRoleSwap)
	assert.Equal(t, typec.Millivolt(5000), fixed.Voltage)
	assert.Equal(t, typec.Milliamp(3000), fixed.MaxCurrent)

	pps, ok := pdos[1].(pd.ProgrammableSupplyPDO)
	require.True(t, ok)
	assert.Equal(t, typec.Millivolt(11000), pps.MaxVoltage)
	assert.Equal(t, typec.Millivolt(3300), pps.MinVoltage)
	assert.Equal(t, typec.Milliamp(3000), pps.MaxCurrent)
}

func TestPdosWithoutCapabilities(t *testing.T) {
	fs := fakeFS{dirs: map[string][]string{"/sys/class/typec": {"port0"}}}
	_, err := newBackend(t, fs, nil).Pdos(backend.PdoRequest{ConnectorNr: 0})
	assert.ErrorIs(t, err, typec.ErrNotSupported)
}

func TestPdMessageDiscoverIdentity(t *testing.T) {
	identity := "/sys/class/typec/port0-partner/identity"
	fs := fakeFS{
		dirs: map[string][]string{"/sys/class/typec": {"port0"}},
		files: map[string]string{
			identity + "/id_header":         "0x8087040b\n",
			identity + "/cert_stat":         "0xcafe\n",
			identity + "/product":           "0x01210a21\n",
			identity + "/product_type_vdo1": "0x3\n",
			identity + "/product_type_vdo2": "0x0\n",
			identity + "/product_type_vdo3": "0x0\n",
		},
	}
	db := mapVendorDB{"usb:v8087*": "Intel Corp."}

	msg, err := newBackend(t, fs, db).PdMessage(0, ucsi.PdRecipientSop, ucsi.PdResponseDiscoverIdentity)
	require.NoError(t, err)

	resp, ok := msg.(*pd.DiscoverIdentityResponse)
	require.True(t, ok)

	assert.True(t, resp.IDHeader.UsbHostCapability)
	assert.True(t, resp.IDHeader.UsbDeviceCapability)
	assert.Equal(t, uint16(0x8087), resp.IDHeader.UsbVendorID)
	assert.Equal(t, "Intel Corp.", resp.IDHeader.VendorName())
	assert.Equal(t, uint32(0xCAFE), resp.CertStat.XID)
	assert.Equal(t, uint32(0x0A21), resp.Product.ProductID)
	assert.Equal(t, "1.21", resp.Product.Device.String())
	assert.Equal(t, vdo.ProductTypeUfp, resp.ProductType[0])
}

func TestPdMessageUnsupported(t *testing.T) {
	fs := fakeFS{dirs: map[string][]string{"/sys/class/typec": {"port0"}}}
	b := newBackend(t, fs, nil)

	_, err := b.PdMessage(0, ucsi.PdRecipientSop, ucsi.PdResponseBatteryStatus)
	assert.ErrorIs(t, err, typec.ErrNotSupported)

	_, err = b.PdMessage(0, ucsi.PdRecipientConnector, ucsi.PdResponseDiscoverIdentity)
	assert.ErrorIs(t, err, typec.ErrNotSupported)
}
