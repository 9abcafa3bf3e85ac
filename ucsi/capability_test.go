package ucsi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbctools/typec/bitbuf"
	"github.com/usbctools/typec/ucsi"
)

func TestDecodeCapability(t *testing.T) {
	// Hand-built GET_CAPABILITY response: disabled-state and PD support,
	// AC supply that uses VBUS, two connectors, SET_CCOM and PDO details
	// optional features, one alternate mode, PD 3.00, Type-C 1.20.
	data := []byte{
		0x05, 0x41, 0x00, 0x00, // bmAttributes
		0x02,             // bNumConnectors
		0x11, 0x00, 0x00, // bmOptionalFeatures
		0x01,       // bNumAltModes
		0x00,       // reserved
		0x00, 0x00, // bcdBCVersion
		0x00, 0x03, // bcdPDVersion
		0x20, 0x01, // bcdUSBTypeCVersion
	}

	r := bitbuf.NewReader(data)
	c, err := ucsi.DecodeCapability(r)
	require.NoError(t, err)

	assert.True(t, c.BmAttributes.DisabledStateSupport)
	assert.False(t, c.BmAttributes.BatteryCharging)
	assert.True(t, c.BmAttributes.UsbPowerDelivery)
	assert.False(t, c.BmAttributes.UsbTypeCCurrent)
	assert.True(t, c.BmAttributes.BmPowerSource.AcSupply)
	assert.False(t, c.BmAttributes.BmPowerSource.Other)
	assert.True(t, c.BmAttributes.BmPowerSource.UsesVbus)

	assert.Equal(t, uint32(2), c.NumConnectors)
	assert.True(t, c.BmOptionalFeatures.SetCcomSupported)
	assert.True(t, c.BmOptionalFeatures.PdoDetailsSupported)
	assert.False(t, c.BmOptionalFeatures.SetPowerLevelSupported)
	assert.False(t, c.BmOptionalFeatures.GetPdMessageSupported)
	assert.Equal(t, uint32(1), c.NumAltModes)

	assert.Equal(t, "0.00", c.BcVersion.String())
	assert.Equal(t, "3.00", c.PdVersion.String())
	assert.Equal(t, "1.20", c.UsbTypeCVersion.String())

	// The structure consumes all 128 bits.
	assert.Equal(t, 128, r.Offset())
}

func TestDecodeCapabilityTruncated(t *testing.T) {
	r := bitbuf.NewReader([]byte{0x05, 0x41})
	_, err := ucsi.DecodeCapability(r)
	assert.ErrorIs(t, err, bitbuf.ErrTruncated)
}
