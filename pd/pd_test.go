package pd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
	"github.com/usbctools/typec/pd"
)

func TestDecodeFixedSupply(t *testing.T) {
	// Fixed supply, all flags clear, voltage 100 (5V), current 50 (500mA).
	data := []byte{0x00, 0x40, 0x86, 0x0C}

	obj, err := pd.DecodePDO(bitbuf.NewReader(data), pd.Revision3p2)
	require.NoError(t, err)

	fixed, ok := obj.(pd.FixedSupplyPDO)
	require.True(t, ok)
	assert.Equal(t, typec.Millivolt(5000), fixed.Voltage)
	assert.Equal(t, typec.Milliamp(500), fixed.MaxCurrent)
	assert.False(t, fixed.DualRolePower)
	assert.Equal(t, pd.FastRoleSwapNotSupported, fixed.FastRoleSwap)
}

func TestFastRoleSwapNames(t *testing.T) {
	assert.Equal(t, "not supported", pd.FastRoleSwapNotSupported.String())
	assert.Equal(t, "1.5A @ 5V", pd.FastRoleSwapOnePointFiveAAtFiveV.String())
	assert.Equal(t, "3A @ 5V", pd.FastRoleSwapThreeAAtFiveV.String())
}

func TestPdoRoundTrip(t *testing.T) {
	type testCase struct {
		name string
		pdo  pd.PDO
	}

	cases := []testCase{
		{
			name: "fixed supply",
			pdo: pd.FixedSupplyPDO{
				DualRolePower:            true,
				UsbCommunicationsCapable: true,
				EprModeCapable:           true,
				FastRoleSwap:             pd.FastRoleSwapOnePointFiveAAtFiveV,
				Voltage:                  typec.Millivolt(20000),
				MaxCurrent:               typec.Milliamp(5000),
			},
		},
		{
			name: "battery supply",
			pdo: pd.BatterySupplyPDO{
				MaxVoltage: typec.Millivolt(21000),
				MinVoltage: typec.Millivolt(15000),
				MaxPower:   typec.Milliwatt(45000),
			},
		},
		{
			name: "variable supply",
			pdo: pd.VariableSupplyPDO{
				MaxVoltage: typec.Millivolt(12000),
				MinVoltage: typec.Millivolt(5000),
				MaxCurrent: typec.Milliamp(1500),
			},
		},
		{
			name: "programmable supply",
			pdo: pd.ProgrammableSupplyPDO{
				PowerLimited: true,
				MaxVoltage:   typec.Millivolt(11000),
				MinVoltage:   typec.Millivolt(3300),
				MaxCurrent:   typec.Milliamp(3000),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 4)
			w := bitbuf.NewWriter(buf)
			require.NoError(t, tc.pdo.Encode(w))
			require.Equal(t, 32, w.Offset())

			got, err := pd.DecodePDO(bitbuf.NewReader(buf), pd.Revision3p2)
			require.NoError(t, err)
			assert.Equal(t, tc.pdo, got)
		})
	}
}

func TestDecodePdoUnsupportedRevision(t *testing.T) {
	r := bitbuf.NewReader([]byte{0x00, 0x40, 0x86, 0x0C})
	_, err := pd.DecodePDO(r, typec.BcdVersion(0x300))

	var ure *typec.UnsupportedRevisionError
	require.ErrorAs(t, err, &ure)
	assert.Equal(t, typec.BcdVersion(0x300), ure.Revision)
	// The discriminant is consumed, the shape fields are not.
	assert.Equal(t, 2, r.Offset())
}

func TestDecodePdoInvalidApdoType(t *testing.T) {
	// Augmented PDO with APDO type 01b, which is not SPR PPS.
	_, err := pd.DecodePDO(bitbuf.NewReader([]byte{0x07, 0x00, 0x00, 0x00}), pd.Revision3p2)

	var fe *typec.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "apdo_type", fe.Field)
	assert.Equal(t, uint32(1), fe.Value)
}

func TestDecodePdoTruncated(t *testing.T) {
	_, err := pd.DecodePDO(bitbuf.NewReader([]byte{0x00, 0x40}), pd.Revision3p2)
	assert.ErrorIs(t, err, bitbuf.ErrTruncated)
}
