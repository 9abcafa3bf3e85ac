package pd

import (
	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
)

// SourceCapabilitiesExtended is the Source Capabilities Extended Data
// Block (SCEDB). Fields are byte-granular; see PD 3.2 Table 6-49.
type SourceCapabilitiesExtended struct {
	VendorID          uint16
	ProductID         uint16
	XID               uint32
	FirmwareVersion   uint8
	HardwareVersion   uint8
	VoltageRegulation uint8
	HoldupTime        uint8
	Compliance        uint8
	TouchCurrent      uint8
	PeakCurrent1      uint16
	PeakCurrent2      uint16
	PeakCurrent3      uint16
	TouchTemp         uint8
	SourceInputs      uint8
	NumBatteries      uint8
	SprSourcePdp      typec.Milliwatt
	EprSourcePdp      typec.Milliwatt
}

func (SourceCapabilitiesExtended) isMessage() {}

// DecodeSourceCapabilitiesExtended reads a 25-byte SCEDB. The PDP fields
// are wire-encoded in whole watts and stored in milliwatts.
func DecodeSourceCapabilitiesExtended(r *bitbuf.Reader) (*SourceCapabilitiesExtended, error) {
	var s SourceCapabilitiesExtended
	u16 := func(dst *uint16) error {
		v, err := r.ReadBits(16)
		*dst = uint16(v)
		return err
	}
	u8 := func(dst *uint8) error {
		v, err := r.ReadBits(8)
		*dst = uint8(v)
		return err
	}
	if err := u16(&s.VendorID); err != nil {
		return nil, err
	}
	if err := u16(&s.ProductID); err != nil {
		return nil, err
	}
	xid, err := r.ReadBits(32)
	if err != nil {
		return nil, err
	}
	s.XID = xid
	for _, dst := range []*uint8{
		&s.FirmwareVersion, &s.HardwareVersion, &s.VoltageRegulation,
		&s.HoldupTime, &s.Compliance, &s.TouchCurrent,
	} {
		if err := u8(dst); err != nil {
			return nil, err
		}
	}
	for _, dst := range []*uint16{&s.PeakCurrent1, &s.PeakCurrent2, &s.PeakCurrent3} {
		if err := u16(dst); err != nil {
			return nil, err
		}
	}
	for _, dst := range []*uint8{&s.TouchTemp, &s.SourceInputs, &s.NumBatteries} {
		if err := u8(dst); err != nil {
			return nil, err
		}
	}
	var pdp uint8
	if err := u8(&pdp); err != nil {
		return nil, err
	}
	s.SprSourcePdp = typec.Milliwatt(uint32(pdp) * 1000)
	if err := u8(&pdp); err != nil {
		return nil, err
	}
	s.EprSourcePdp = typec.Milliwatt(uint32(pdp) * 1000)
	return &s, nil
}

// SinkCapabilitiesExtended is the Sink Capabilities Extended Data Block
// (SKEDB). See PD 3.2 Table 6-51.
type SinkCapabilitiesExtended struct {
	VendorID                uint16
	ProductID               uint16
	XID                     uint32
	FirmwareVersion         uint8
	HardwareVersion         uint8
	SkedbVersion            uint8
	LoadStep                uint8
	SinkLoadCharacteristics uint16
	Compliance              uint8
	TouchTemp               uint8
	BatteryInfo             uint8
	SinkModes               uint8
	SinkMinimumPdp          typec.Milliwatt
	SinkOperationalPdp      typec.Milliwatt
	SinkMaximumPdp          typec.Milliwatt
}

func (SinkCapabilitiesExtended) isMessage() {}

// DecodeSinkCapabilitiesExtended reads a 21-byte SKEDB. The PDP fields
// are wire-encoded in whole watts and stored in milliwatts.
func DecodeSinkCapabilitiesExtended(r *bitbuf.Reader) (*SinkCapabilitiesExtended, error) {
	var s SinkCapabilitiesExtended
	u16 := func(dst *uint16) error {
		v, err := r.ReadBits(16)
		*dst = uint16(v)
		return err
	}
	u8 := func(dst *uint8) error {
		v, err := r.ReadBits(8)
		*dst = uint8(v)
		return err
	}
	if err := u16(&s.VendorID); err != nil {
		return nil, err
	}
	if err := u16(&s.ProductID); err != nil {
		return nil, err
	}
	xid, err := r.ReadBits(32)
	if err != nil {
		return nil, err
	}
	s.XID = xid
	for _, dst := range []*uint8{
		&s.FirmwareVersion, &s.HardwareVersion, &s.SkedbVersion, &s.LoadStep,
	} {
		if err := u8(dst); err != nil {
			return nil, err
		}
	}
	if err := u16(&s.SinkLoadCharacteristics); err != nil {
		return nil, err
	}
	for _, dst := range []*uint8{
		&s.Compliance, &s.TouchTemp, &s.BatteryInfo, &s.SinkModes,
	} {
		if err := u8(dst); err != nil {
			return nil, err
		}
	}
	var pdp uint8
	if err := u8(&pdp); err != nil {
		return nil, err
	}
	s.SinkMinimumPdp = typec.Milliwatt(uint32(pdp) * 1000)
	if err := u8(&pdp); err != nil {
		return nil, err
	}
	s.SinkOperationalPdp = typec.Milliwatt(uint32(pdp) * 1000)
	if err := u8(&pdp); err != nil {
		return nil, err
	}
	s.SinkMaximumPdp = typec.Milliwatt(uint32(pdp) * 1000)
	return &s, nil
}

// BatteryCapabilities is the Battery Capabilities Data Block (BCDB).
// See PD 3.2 Table 6-48. Capacities are in 0.1 Wh units, 0xFFFF when
// unknown and 0x0000 when the battery reference is invalid.
type BatteryCapabilities struct {
	VendorID               uint16
	ProductID              uint16
	DesignCapacity         uint16
	LastFullChargeCapacity uint16
	InvalidRef             bool
}

func (BatteryCapabilities) isMessage() {}

func DecodeBatteryCapabilities(r *bitbuf.Reader) (*BatteryCapabilities, error) {
	var b BatteryCapabilities
	for _, dst := range []*uint16{
		&b.VendorID, &b.ProductID, &b.DesignCapacity, &b.LastFullChargeCapacity,
	} {
		v, err := r.ReadBits(16)
		if err != nil {
			return nil, err
		}
		*dst = uint16(v)
	}
	v, err := r.ReadBit()
	if err != nil {
		return nil, err
	}
	b.InvalidRef = v
	if err := r.Skip(7); err != nil { // reserved
		return nil, err
	}
	return &b, nil
}
