package typec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usbctools/typec"
)

func TestBcdVersionString(t *testing.T) {
	type testCase struct {
		value    typec.BcdVersion
		expected string
	}

	cases := []testCase{
		{value: 0x0310, expected: "3.10"},
		{value: 0x0300, expected: "3.00"},
		{value: 0x0120, expected: "1.20"},
		{value: 0x0201, expected: "2.01"},
		{value: 0x0000, expected: "0.00"},
	}

	for _, tc := range cases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.value.String())
			assert.Equal(t, uint32(tc.value)>>8&0xff, tc.value.Major())
			assert.Equal(t, uint32(tc.value)&0xff, tc.value.Minor())
		})
	}
}

func TestScalarStrings(t *testing.T) {
	assert.Equal(t, "5000mV", typec.Millivolt(5000).String())
	assert.Equal(t, "3000mA", typec.Milliamp(3000).String())
	assert.Equal(t, "45000mW", typec.Milliwatt(45000).String())
	assert.Equal(t, "40mOhm", typec.MilliOhm(40).String())
}

func TestErrorMessages(t *testing.T) {
	fe := &typec.FieldError{Field: "operation_mode", Value: 8}
	assert.Equal(t, `typec: cannot parse field "operation_mode" with value 8`, fe.Error())

	sfe := &typec.StringFieldError{Field: "power_role", Value: "bogus"}
	assert.Equal(t, `typec: cannot parse field "power_role" with value "bogus"`, sfe.Error())

	ure := &typec.UnsupportedRevisionError{Revision: 0x0200}
	assert.Equal(t, "typec: USB revision 2.00 is not supported", ure.Error())
}
