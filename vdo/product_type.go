package vdo

import (
	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
)

// MaxVbusVoltage is the maximum VPD VBUS voltage. Values above 20V are
// deprecated but still decode.
type MaxVbusVoltage uint32

const (
	MaxVbus20V MaxVbusVoltage = iota
	MaxVbus30V
	MaxVbus40V
	MaxVbus50V
)

// VpdVDO is a VCONN-Powered USB Device VDO. See PD 3.2 section
// 6.4.4.3.1.9.
type VpdVDO struct {
	HwVersion            uint8
	FirmwareVersion      uint8
	VdoVersion           uint8
	MaxVbusVoltage       MaxVbusVoltage
	ChargeThroughCurrent bool
	VbusImpedance        typec.MilliOhm
	GroundImpedance      typec.MilliOhm
	ChargeThroughSupport bool
}

func (VpdVDO) isVDO() {}

func DecodeVpd(r *bitbuf.Reader) (*VpdVDO, error) {
	var v VpdVDO
	hw, err := r.ReadBits(4)
	if err != nil {
		return nil, err
	}
	fw, err := r.ReadBits(4)
	if err != nil {
		return nil, err
	}
	ver, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	v.HwVersion, v.FirmwareVersion, v.VdoVersion = uint8(hw), uint8(fw), uint8(ver)
	// All four values of the 2-bit field are defined.
	maxV, err := r.ReadBits(2)
	if err != nil {
		return nil, err
	}
	v.MaxVbusVoltage = MaxVbusVoltage(maxV)
	if v.ChargeThroughCurrent, err = r.ReadBit(); err != nil {
		return nil, err
	}
	imp, err := r.ReadBits(6)
	if err != nil {
		return nil, err
	}
	v.VbusImpedance = typec.MilliOhm(imp)
	imp, err = r.ReadBits(6)
	if err != nil {
		return nil, err
	}
	v.GroundImpedance = typec.MilliOhm(imp)
	if v.ChargeThroughSupport, err = r.ReadBit(); err != nil {
		return nil, err
	}
	return &v, nil
}

// UfpVdoVersion is the UFP VDO version field; only 1.3 (011b) is defined.
type UfpVdoVersion uint32

const UfpVdoVersion1p3 UfpVdoVersion = 3

// UfpDeviceCapability describes how the device can enumerate.
type UfpDeviceCapability uint32

const (
	UfpDeviceUsb2 UfpDeviceCapability = iota
	UfpDeviceUsb2Billboard
	UfpDeviceUsb3
	UfpDeviceUsb4

	numUfpDeviceCapability = iota
)

// UfpVconnPower is the VCONN power the UFP requires, 1W (0) through
// 6W (6). Value 7 is reserved.
type UfpVconnPower uint32

const numUfpVconnPower = 7

// UfpAlternateModes describes which class of alternate modes the UFP
// supports.
type UfpAlternateModes uint32

const (
	UfpAltModeTbt3 UfpAlternateModes = iota
	UfpAltModeReconfigurable
	UfpAltModeNonReconfigurable

	numUfpAlternateModes = iota
)

// UfpVDO describes an upstream-facing port. See PD 3.2 section
// 6.4.4.3.1.4.
type UfpVDO struct {
	Version          UfpVdoVersion
	DeviceCapability UfpDeviceCapability
	VconnPower       UfpVconnPower
	VconnRequired    bool
	VbusRequired     bool
	AlternateModes   UfpAlternateModes
}

func (UfpVDO) isVDO() {}

func DecodeUfp(r *bitbuf.Reader) (*UfpVDO, error) {
	var v UfpVDO
	ver, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	if ver != uint32(UfpVdoVersion1p3) {
		return nil, &typec.FieldError{Field: "ufp_vdo_version", Value: ver}
	}
	v.Version = UfpVdoVersion(ver)
	if err := r.Skip(1); err != nil { // reserved
		return nil, err
	}
	// The field is 4 bits wide but only 4 values are defined.
	dc, err := r.ReadBits(4)
	if err != nil {
		return nil, err
	}
	if dc >= numUfpDeviceCapability {
		return nil, &typec.FieldError{Field: "device_capability", Value: dc}
	}
	v.DeviceCapability = UfpDeviceCapability(dc)
	if err := r.Skip(2); err != nil { // connector type (legacy)
		return nil, err
	}
	if err := r.Skip(11); err != nil { // reserved
		return nil, err
	}
	pw, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	if pw >= numUfpVconnPower {
		return nil, &typec.FieldError{Field: "vconn_power", Value: pw}
	}
	v.VconnPower = UfpVconnPower(pw)
	if v.VconnRequired, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if v.VbusRequired, err = r.ReadBit(); err != nil {
		return nil, err
	}
	am, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	if am >= numUfpAlternateModes {
		return nil, &typec.FieldError{Field: "alternate_modes", Value: am}
	}
	v.AlternateModes = UfpAlternateModes(am)
	return &v, nil
}

// DfpVdoVersion is the DFP VDO version field; only 1.2 (010b) is defined.
type DfpVdoVersion uint32

const DfpVdoVersion1p2 DfpVdoVersion = 0b010

// DfpHostCapability describes how the host can enumerate.
type DfpHostCapability uint32

const (
	DfpHostUsb2 DfpHostCapability = iota
	DfpHostUsb3
	DfpHostUsb4

	numDfpHostCapability = iota
)

// DfpVDO describes a downstream-facing port. See PD 3.2 section
// 6.4.4.3.1.5.
type DfpVDO struct {
	Version        DfpVdoVersion
	HostCapability DfpHostCapability
	PortNumber     uint32
}

func (DfpVDO) isVDO() {}

func DecodeDfp(r *bitbuf.Reader) (*DfpVDO, error) {
	var v DfpVDO
	ver, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	if ver != uint32(DfpVdoVersion1p2) {
		return nil, &typec.FieldError{Field: "dfp_vdo_version", Value: ver}
	}
	v.Version = DfpVdoVersion(ver)
	if err := r.Skip(2); err != nil { // reserved
		return nil, err
	}
	hc, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	if hc >= numDfpHostCapability {
		return nil, &typec.FieldError{Field: "host_capability", Value: hc}
	}
	v.HostCapability = DfpHostCapability(hc)
	if err := r.Skip(2); err != nil { // reserved
		return nil, err
	}
	pn, err := r.ReadBits(5)
	if err != nil {
		return nil, err
	}
	v.PortNumber = pn
	return &v, nil
}
