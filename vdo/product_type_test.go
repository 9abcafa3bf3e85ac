package vdo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
	"github.com/usbctools/typec/vdo"
)

func TestDecodeVpd(t *testing.T) {
	buf := make([]byte, 4)
	w := bitbuf.NewWriter(buf)
	require.NoError(t, w.WriteBits(2, 4))  // hw version
	require.NoError(t, w.WriteBits(1, 4))  // firmware version
	require.NoError(t, w.WriteBits(1, 3))  // VDO version
	require.NoError(t, w.WriteBits(1, 2))  // 30V max
	require.NoError(t, w.WriteBit(true))   // 5A charge-through current
	require.NoError(t, w.WriteBits(40, 6)) // VBUS impedance
	require.NoError(t, w.WriteBits(20, 6)) // ground impedance
	require.NoError(t, w.WriteBit(true))   // charge-through support

	v, err := vdo.DecodeVpd(bitbuf.NewReader(buf))
	require.NoError(t, err)

	assert.Equal(t, uint8(2), v.HwVersion)
	assert.Equal(t, uint8(1), v.FirmwareVersion)
	assert.Equal(t, uint8(1), v.VdoVersion)
	assert.Equal(t, vdo.MaxVbus30V, v.MaxVbusVoltage)
	assert.True(t, v.ChargeThroughCurrent)
	assert.Equal(t, typec.MilliOhm(40), v.VbusImpedance)
	assert.Equal(t, typec.MilliOhm(20), v.GroundImpedance)
	assert.True(t, v.ChargeThroughSupport)
}

func TestDecodeUfp(t *testing.T) {
	buf := make([]byte, 4)
	w := bitbuf.NewWriter(buf)
	require.NoError(t, w.WriteBits(3, 3))  // VDO version 1.3
	require.NoError(t, w.WriteBits(0, 1))  // reserved
	require.NoError(t, w.WriteBits(3, 4))  // USB4 device capable
	require.NoError(t, w.WriteBits(0, 2))  // legacy connector type
	require.NoError(t, w.WriteBits(0, 11)) // reserved
	require.NoError(t, w.WriteBits(2, 3))  // 3W VCONN
	require.NoError(t, w.WriteBit(true))   // VCONN required
	require.NoError(t, w.WriteBit(true))   // VBUS required
	require.NoError(t, w.WriteBits(1, 3))  // reconfigurable alternate modes

	v, err := vdo.DecodeUfp(bitbuf.NewReader(buf))
	require.NoError(t, err)

	assert.Equal(t, vdo.UfpVdoVersion1p3, v.Version)
	assert.Equal(t, vdo.UfpDeviceUsb4, v.DeviceCapability)
	assert.Equal(t, vdo.UfpVconnPower(2), v.VconnPower)
	assert.True(t, v.VconnRequired)
	assert.True(t, v.VbusRequired)
	assert.Equal(t, vdo.UfpAltModeReconfigurable, v.AlternateModes)
}

func TestDecodeUfpBadVersion(t *testing.T) {
	_, err := vdo.DecodeUfp(bitbuf.NewReader([]byte{0x02, 0x00, 0x00, 0x00}))
	var fe *typec.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "ufp_vdo_version", fe.Field)
	assert.Equal(t, uint32(2), fe.Value)
}

func TestDecodeDfp(t *testing.T) {
	buf := make([]byte, 4)
	w := bitbuf.NewWriter(buf)
	require.NoError(t, w.WriteBits(2, 3))  // VDO version 1.2
	require.NoError(t, w.WriteBits(0, 2))  // reserved
	require.NoError(t, w.WriteBits(2, 3))  // USB4 host capable
	require.NoError(t, w.WriteBits(0, 2))  // reserved
	require.NoError(t, w.WriteBits(12, 5)) // port number

	v, err := vdo.DecodeDfp(bitbuf.NewReader(buf))
	require.NoError(t, err)

	assert.Equal(t, vdo.DfpVdoVersion1p2, v.Version)
	assert.Equal(t, vdo.DfpHostUsb4, v.HostCapability)
	assert.Equal(t, uint32(12), v.PortNumber)
}

func TestDecodeDfpBadVersion(t *testing.T) {
	_, err := vdo.DecodeDfp(bitbuf.NewReader([]byte{0x01, 0x00, 0x00, 0x00}))
	var fe *typec.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "dfp_vdo_version", fe.Field)
	assert.Equal(t, uint32(1), fe.Value)
}
