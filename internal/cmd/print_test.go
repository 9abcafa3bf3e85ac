package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/ucsi"
)

func TestPrinterValue(t *testing.T) {
	type inner struct {
		Mode ucsi.OperationMode
	}
	type outer struct {
		Name     [8]byte
		Voltage  typec.Millivolt
		Optional *inner
		Flags    []bool
		Empty    []uint32

		hidden int
	}

	var buf bytes.Buffer
	p := &printer{w: &buf}
	p.value(outer{
		Name:    [8]byte{'u', 's', 'b', 0},
		Voltage: 5000,
		Flags:   []bool{true, false},
	})

	out := buf.String()
	assert.Contains(t, out, "outer {")
	assert.Contains(t, out, "Name: \"usb\"")
	assert.Contains(t, out, "Voltage: 5000mV")
	assert.Contains(t, out, "Optional: nil")
	assert.Contains(t, out, "Empty: []")
	assert.Contains(t, out, "true")
	assert.NotContains(t, out, "hidden")
}

func TestPrinterStringerFields(t *testing.T) {
	var buf bytes.Buffer
	p := &printer{w: &buf}
	p.value(struct {
		Mode ucsi.OperationMode
	}{Mode: ucsi.OperationModeDrp})

	assert.Contains(t, buf.String(), "Mode: DRP")
}

func TestPrinterSectionPlain(t *testing.T) {
	var buf bytes.Buffer
	p := newPrinter(&buf)
	p.section("Connector %d Capability", 1)

	assert.Equal(t, "Connector 1 Capability\n", buf.String())
}
