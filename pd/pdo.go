package pd

import (
	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
)

// Wire unit sizes for PDO fields. Decoders multiply back to absolute
// milli-units at read time; encoders divide, truncating like the hardware
// does.
const (
	fixedVoltageStep = 50  // mV
	fixedCurrentStep = 10  // mA
	batteryPowerStep = 250 // mW
	ppsVoltageStep   = 100 // mV
	ppsCurrentStep   = 50  // mA
)

// FastRoleSwap is the Fast Role Swap required USB Type-C current field of
// a Fixed Supply PDO.
type FastRoleSwap uint32

const (
	FastRoleSwapNotSupported FastRoleSwap = iota
	FastRoleSwapDefaultUsbPower
	FastRoleSwapOnePointFiveAAtFiveV
	FastRoleSwapThreeAAtFiveV

	numFastRoleSwap = iota
)

func (f FastRoleSwap) String() string {
	switch f {
	case FastRoleSwapNotSupported:
		return "not supported"
	case FastRoleSwapDefaultUsbPower:
		return "default USB power"
	case FastRoleSwapOnePointFiveAAtFiveV:
		return "1.5A @ 5V"
	case FastRoleSwapThreeAAtFiveV:
		return "3A @ 5V"
	}
	return "invalid"
}

// FixedSupplyPDO describes a fixed voltage/current power profile.
// See PD 3.2 Table 6-9.
type FixedSupplyPDO struct {
	DualRolePower                      bool
	UsbSuspendSupported                bool
	UnconstrainedPower                 bool
	UsbCommunicationsCapable           bool
	DualRoleData                       bool
	UnchunkedExtendedMessagesSupported bool
	EprModeCapable                     bool
	FastRoleSwap                       FastRoleSwap
	Voltage                            typec.Millivolt
	MaxCurrent                         typec.Milliamp
}

func (FixedSupplyPDO) pdoKind() uint32 { return kindFixed }

func decodeFixedSupply(r *bitbuf.Reader) (PDO, error) {
	var p FixedSupplyPDO
	var err error
	if p.DualRolePower, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if p.UsbSuspendSupported, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if p.UnconstrainedPower, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if p.UsbCommunicationsCapable, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if p.DualRoleData, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if p.UnchunkedExtendedMessagesSupported, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if p.EprModeCapable, err = r.ReadBit(); err != nil {
		return nil, err
	}
	frs, err := r.ReadBits(2)
	if err != nil {
		return nil, err
	}
	if frs >= numFastRoleSwap {
		return nil, &typec.FieldError{Field: "fast_role_swap", Value: frs}
	}
	p.FastRoleSwap = FastRoleSwap(frs)
	if err := r.Skip(1); err != nil { // reserved
		return nil, err
	}
	v, err := r.ReadBits(10)
	if err != nil {
		return nil, err
	}
	p.Voltage = typec.Millivolt(v * fixedVoltageStep)
	c, err := r.ReadBits(10)
	if err != nil {
		return nil, err
	}
	p.MaxCurrent = typec.Milliamp(c * fixedCurrentStep)
	return p, nil
}

// Encode writes the PDO back in decode order.
func (p FixedSupplyPDO) Encode(w *bitbuf.Writer) error {
	if err := w.WriteBits(kindFixed, 2); err != nil {
		return err
	}
	for _, b := range []bool{
		p.DualRolePower, p.UsbSuspendSupported, p.UnconstrainedPower,
		p.UsbCommunicationsCapable, p.DualRoleData,
		p.UnchunkedExtendedMessagesSupported, p.EprModeCapable,
	} {
		if err := w.WriteBit(b); err != nil {
			return err
		}
	}
	if err := w.WriteBits(uint32(p.FastRoleSwap), 2); err != nil {
		return err
	}
	if err := w.WriteBits(0, 1); err != nil { // reserved
		return err
	}
	if err := w.WriteBits(uint32(p.Voltage)/fixedVoltageStep, 10); err != nil {
		return err
	}
	return w.WriteBits(uint32(p.MaxCurrent)/fixedCurrentStep, 10)
}

// BatterySupplyPDO describes a battery power profile. See PD 3.2
// Table 6-12.
type BatterySupplyPDO struct {
	MaxVoltage typec.Millivolt
	MinVoltage typec.Millivolt
	MaxPower   typec.Milliwatt
}

func (BatterySupplyPDO) pdoKind() uint32 { return kindBattery }

func decodeBatterySupply(r *bitbuf.Reader) (PDO, error) {
	var p BatterySupplyPDO
	maxV, err := r.ReadBits(10)
	if err != nil {
		return nil, err
	}
	minV, err := r.ReadBits(10)
	if err != nil {
		return nil, err
	}
	pw, err := r.ReadBits(10)
	if err != nil {
		return nil, err
	}
	p.MaxVoltage = typec.Millivolt(maxV * fixedVoltageStep)
	p.MinVoltage = typec.Millivolt(minV * fixedVoltageStep)
	p.MaxPower = typec.Milliwatt(pw * batteryPowerStep)
	return p, nil
}

func (p BatterySupplyPDO) Encode(w *bitbuf.Writer) error {
	if err := w.WriteBits(kindBattery, 2); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(p.MaxVoltage)/fixedVoltageStep, 10); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(p.MinVoltage)/fixedVoltageStep, 10); err != nil {
		return err
	}
	return w.WriteBits(uint32(p.MaxPower)/batteryPowerStep, 10)
}

// VariableSupplyPDO describes a non-battery variable power profile.
// See PD 3.2 Table 6-11.
type VariableSupplyPDO struct {
	MaxVoltage typec.Millivolt
	MinVoltage typec.Millivolt
	MaxCurrent typec.Milliamp
}

func (VariableSupplyPDO) pdoKind() uint32 { return kindVariable }

func decodeVariableSupply(r *bitbuf.Reader) (PDO, error) {
	var p VariableSupplyPDO
	maxV, err := r.ReadBits(10)
	if err != nil {
		return nil, err
	}
	minV, err := r.ReadBits(10)
	if err != nil {
		return nil, err
	}
	c, err := r.ReadBits(10)
	if err != nil {
		return nil, err
	}
	p.MaxVoltage = typec.Millivolt(maxV * fixedVoltageStep)
	p.MinVoltage = typec.Millivolt(minV * fixedVoltageStep)
	p.MaxCurrent = typec.Milliamp(c * fixedCurrentStep)
	return p, nil
}

func (p VariableSupplyPDO) Encode(w *bitbuf.Writer) error {
	if err := w.WriteBits(kindVariable, 2); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(p.MaxVoltage)/fixedVoltageStep, 10); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(p.MinVoltage)/fixedVoltageStep, 10); err != nil {
		return err
	}
	return w.WriteBits(uint32(p.MaxCurrent)/fixedCurrentStep, 10)
}

// ProgrammableSupplyPDO describes an SPR Programmable Power Supply
// augmented PDO. See PD 3.2 Table 6-13.
type ProgrammableSupplyPDO struct {
	PowerLimited bool
	MaxVoltage   typec.Millivolt
	MinVoltage   typec.Millivolt
	MaxCurrent   typec.Milliamp
}

func (ProgrammableSupplyPDO) pdoKind() uint32 { return kindAugmented }

func decodeProgrammableSupply(r *bitbuf.Reader) (PDO, error) {
	// The 2-bit augmented PDO type: only 00b (SPR PPS) is defined here.
	apdo, err := r.ReadBits(2)
	if err != nil {
		return nil, err
	}
	if apdo != 0 {
		return nil, &typec.FieldError{Field: "apdo_type", Value: apdo}
	}
	var p ProgrammableSupplyPDO
	if p.PowerLimited, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if err := r.Skip(2); err != nil { // reserved
		return nil, err
	}
	maxV, err := r.ReadBits(8)
	if err != nil {
		return nil, err
	}
	if err := r.Skip(1); err != nil { // reserved
		return nil, err
	}
	minV, err := r.ReadBits(8)
	if err != nil {
		return nil, err
	}
	if err := r.Skip(1); err != nil { // reserved
		return nil, err
	}
	c, err := r.ReadBits(7)
	if err != nil {
		return nil, err
	}
	p.MaxVoltage = typec.Millivolt(maxV * ppsVoltageStep)
	p.MinVoltage = typec.Millivolt(minV * ppsVoltageStep)
	p.MaxCurrent = typec.Milliamp(c * ppsCurrentStep)
	return p, nil
}

func (p ProgrammableSupplyPDO) Encode(w *bitbuf.Writer) error {
	if err := w.WriteBits(kindAugmented, 2); err != nil {
		return err
	}
	if err := w.WriteBits(0, 2); err != nil { // SPR PPS
		return err
	}
	if err := w.WriteBit(p.PowerLimited); err != nil {
		return err
	}
	if err := w.WriteBits(0, 2); err != nil { // reserved
		return err
	}
	if err := w.WriteBits(uint32(p.MaxVoltage)/ppsVoltageStep, 8); err != nil {
		return err
	}
	if err := w.WriteBits(0, 1); err != nil { // reserved
		return err
	}
	if err := w.WriteBits(uint32(p.MinVoltage)/ppsVoltageStep, 8); err != nil {
		return err
	}
	if err := w.WriteBits(0, 1); err != nil { // reserved
		return err
	}
	return w.WriteBits(uint32(p.MaxCurrent)/ppsCurrentStep, 7)
}
