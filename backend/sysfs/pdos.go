package sysfs

import (
	"fmt"
	"path"
	"strings"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/backend"
	"github.com/usbctools/typec/pd"
	"github.com/usbctools/typec/ucsi"
)

// Wire step sizes for the PDO attributes. sysfs exposes absolute milli
// units; quantizing to the step the wire format would carry keeps this
// backend's output identical to a bit-level decode of the same contract.
const (
	fixedVoltageStep    = 50
	fixedCurrentStep    = 10
	batteryPowerStep    = 250
	variableVoltageStep = 100
	variableCurrentStep = 50
	ppsVoltageStep      = 50
	ppsCurrentStep      = 10
)

// Pdos reads the power data objects published under the port's or the
// partner's usb_power_delivery capability directories.
func (b *Backend) Pdos(req backend.PdoRequest) ([]pd.PDO, error) {
	side := "source-capabilities"
	if req.PdoType == ucsi.PdoSink {
		side = "sink-capabilities"
	}
	owner := fmt.Sprintf("port%d", req.ConnectorNr)
	if req.PartnerPdo {
		owner = fmt.Sprintf("port%d-partner", req.ConnectorNr)
	}
	capsPath := fmt.Sprintf("%s/%s/usb_power_delivery/%s", typecPath, owner, side)

	if !b.fs.Exists(capsPath) {
		return nil, typec.ErrNotSupported
	}
	entries, err := b.fs.ReadDir(capsPath)
	if err != nil {
		return nil, err
	}

	var pdos []pd.PDO
	for _, name := range entries {
		pdoPath := path.Join(capsPath, name)
		var (
			pdo pd.PDO
			err error
		)
		switch {
		case strings.Contains(name, "fixed"):
			pdo, err = b.readFixedSupply(pdoPath, req.PdoType)
		case strings.Contains(name, "variable"):
			pdo, err = b.readVariableSupply(pdoPath)
		case strings.Contains(name, "battery"):
			pdo, err = b.readBatterySupply(pdoPath, req.PdoType)
		case strings.Contains(name, "programmable"):
			pdo, err = b.readProgrammableSupply(pdoPath, req.PdoType)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		pdos = append(pdos, pdo)
	}
	return pdos, nil
}

func (b *Backend) readPdoBool(pdoPath, attr string) (bool, error) {
	content, err := b.readAttr(path.Join(pdoPath, attr))
	if err != nil {
		return false, err
	}
	return parseBool(content)
}

// readPdoScalar reads a milli-unit attribute quantized to the given wire
// step.
func (b *Backend) readPdoScalar(pdoPath, attr string, step uint32) (uint32, error) {
	content, err := b.readAttr(path.Join(pdoPath, attr))
	if err != nil {
		return 0, err
	}
	v, err := parseU32(content)
	if err != nil {
		return 0, err
	}
	return v / step * step, nil
}

func (b *Backend) readFixedSupply(pdoPath string, pdoType ucsi.PdoType) (pd.PDO, error) {
	var p pd.FixedSupplyPDO
	var err error

	if p.DualRolePower, err = b.readPdoBool(pdoPath, "dual_role_power"); err != nil {
		return nil, err
	}
	suspendAttr := "usb_suspend_supported"
	if pdoType == ucsi.PdoSink {
		suspendAttr = "higher_capability"
	}
	if p.UsbSuspendSupported, err = b.readPdoBool(pdoPath, suspendAttr); err != nil {
		return nil, err
	}
	if p.UnconstrainedPower, err = b.readPdoBool(pdoPath, "unconstrained_power"); err != nil {
		return nil, err
	}
	if p.UsbCommunicationsCapable, err = b.readPdoBool(pdoPath, "usb_communication_capable"); err != nil {
		return nil, err
	}
	if p.DualRoleData, err = b.readPdoBool(pdoPath, "dual_role_data"); err != nil {
		return nil, err
	}

	frsAttr := "fast_role_swap"
	if pdoType == ucsi.PdoSink {
		frsAttr = "fast_role_swap_current"
	}
	content, err := b.readAttr(path.Join(pdoPath, frsAttr))
	if err != nil {
		return nil, err
	}
	frs, err := parseU32(content)
	if err != nil {
		return nil, err
	}
	if frs > uint32(pd.FastRoleSwapThreeAAtFiveV) {
		return nil, &typec.FieldError{Field: "fast_role_swap", Value: frs}
	}
	p.FastRoleSwap = pd.FastRoleSwap(frs)

	v, err := b.readPdoScalar(pdoPath, "voltage", fixedVoltageStep)
	if err != nil {
		return nil, err
	}
	p.Voltage = typec.Millivolt(v)

	currentAttr := "maximum_current"
	if pdoType == ucsi.PdoSink {
		currentAttr = "operational_current"
	}
	c, err := b.readPdoScalar(pdoPath, currentAttr, fixedCurrentStep)
	if err != nil {
		return nil, err
	}
	p.MaxCurrent = typec.Milliamp(c)
	return p, nil
}

func (b *Backend) readBatterySupply(pdoPath string, pdoType ucsi.PdoType) (pd.PDO, error) {
	var p pd.BatterySupplyPDO

	maxV, err := b.readPdoScalar(pdoPath, "maximum_voltage", fixedVoltageStep)
	if err != nil {
		return nil, err
	}
	minV, err := b.readPdoScalar(pdoPath, "minimum_voltage", fixedVoltageStep)
	if err != nil {
		return nil, err
	}
	powerAttr := "maximum_power"
	if pdoType == ucsi.PdoSink {
		powerAttr = "operational_power"
	}
	pw, err := b.readPdoScalar(pdoPath, powerAttr, batteryPowerStep)
	if err != nil {
		return nil, err
	}
	p.MaxVoltage = typec.Millivolt(maxV)
	p.MinVoltage = typec.Millivolt(minV)
	p.MaxPower = typec.Milliwatt(pw)
	return p, nil
}

func (b *Backend) readVariableSupply(pdoPath string) (pd.PDO, error) {
	var p pd.VariableSupplyPDO

	maxV, err := b.readPdoScalar(pdoPath, "maximum_voltage", variableVoltageStep)
	if err != nil {
		return nil, err
	}
	minV, err := b.readPdoScalar(pdoPath, "minimum_voltage", variableVoltageStep)
	if err != nil {
		return nil, err
	}
	c, err := b.readPdoScalar(pdoPath, "maximum_current", variableCurrentStep)
	if err != nil {
		return nil, err
	}
	p.MaxVoltage = typec.Millivolt(maxV)
	p.MinVoltage = typec.Millivolt(minV)
	p.MaxCurrent = typec.Milliamp(c)
	return p, nil
}

func (b *Backend) readProgrammableSupply(pdoPath string, pdoType ucsi.PdoType) (pd.PDO, error) {
	var p pd.ProgrammableSupplyPDO

	maxV, err := b.readPdoScalar(pdoPath, "maximum_voltage", ppsVoltageStep)
	if err != nil {
		return nil, err
	}
	minV, err := b.readPdoScalar(pdoPath, "minimum_voltage", ppsVoltageStep)
	if err != nil {
		return nil, err
	}
	currentAttr := "maximum_current"
	if pdoType == ucsi.PdoSink {
		currentAttr = "operational_current"
	}
	c, err := b.readPdoScalar(pdoPath, currentAttr, ppsCurrentStep)
	if err != nil {
		return nil, err
	}
	p.MaxVoltage = typec.Millivolt(maxV)
	p.MinVoltage = typec.Millivolt(minV)
	p.MaxCurrent = typec.Milliamp(c)
	return p, nil
}
