package ucsi

import (
	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
)

// BmPowerSource describes where the platform draws power from.
// UCSI Table 6-15.
type BmPowerSource struct {
	AcSupply bool
	Other    bool
	UsesVbus bool
}

func decodeBmPowerSource(r *bitbuf.Reader) (BmPowerSource, error) {
	var s BmPowerSource
	var err error
	if s.AcSupply, err = r.ReadBit(); err != nil {
		return s, err
	}
	if err = r.Skip(1); err != nil {
		return s, err
	}
	if s.Other, err = r.ReadBit(); err != nil {
		return s, err
	}
	if err = r.Skip(3); err != nil {
		return s, err
	}
	if s.UsesVbus, err = r.ReadBit(); err != nil {
		return s, err
	}
	if err = r.Skip(1); err != nil {
		return s, err
	}
	return s, nil
}

// BmAttributes describes platform-wide capability attributes.
// UCSI Table 6-14.
type BmAttributes struct {
	DisabledStateSupport bool
	BatteryCharging      bool
	UsbPowerDelivery     bool
	UsbTypeCCurrent      bool
	BmPowerSource        BmPowerSource
}

func decodeBmAttributes(r *bitbuf.Reader) (BmAttributes, error) {
	var a BmAttributes
	var err error
	if a.DisabledStateSupport, err = r.ReadBit(); err != nil {
		return a, err
	}
	if a.BatteryCharging, err = r.ReadBit(); err != nil {
		return a, err
	}
	if a.UsbPowerDelivery, err = r.ReadBit(); err != nil {
		return a, err
	}
	if err = r.Skip(3); err != nil {
		return a, err
	}
	if a.UsbTypeCCurrent, err = r.ReadBit(); err != nil {
		return a, err
	}
	if err = r.Skip(1); err != nil {
		return a, err
	}
	if a.BmPowerSource, err = decodeBmPowerSource(r); err != nil {
		return a, err
	}
	if err = r.Skip(16); err != nil {
		return a, err
	}
	return a, nil
}

// BmOptionalFeatures lists the optional UCSI commands and notifications
// the PPM implements. UCSI Table 6-17.
type BmOptionalFeatures struct {
	SetCcomSupported                    bool
	SetPowerLevelSupported              bool
	AlternateModeDetailsSupported       bool
	AlternateModeOverrideSupported      bool
	PdoDetailsSupported                 bool
	CableDetailsSupported               bool
	ExternalSupplyNotificationSupported bool
	PdResetNotificationSupported        bool
	GetPdMessageSupported               bool
	GetAttentionVdoSupported            bool
	FwUpdateRequestSupported            bool
	NegotiatedPowerLevelChangeSupported bool
	SecurityRequestSupported            bool
	SetRetimerModeSupported             bool
	ChunkingSupportSupported            bool
}

func decodeBmOptionalFeatures(r *bitbuf.Reader) (BmOptionalFeatures, error) {
	var f BmOptionalFeatures
	for _, dst := range []*bool{
		&f.SetCcomSupported,
		&f.SetPowerLevelSupported,
		&f.AlternateModeDetailsSupported,
		&f.AlternateModeOverrideSupported,
		&f.PdoDetailsSupported,
		&f.CableDetailsSupported,
		&f.ExternalSupplyNotificationSupported,
		&f.PdResetNotificationSupported,
		&f.GetPdMessageSupported,
		&f.GetAttentionVdoSupported,
		&f.FwUpdateRequestSupported,
		&f.NegotiatedPowerLevelChangeSupported,
		&f.SecurityRequestSupported,
		&f.SetRetimerModeSupported,
		&f.ChunkingSupportSupported,
	} {
		b, err := r.ReadBit()
		if err != nil {
			return f, err
		}
		*dst = b
	}
	if err := r.Skip(9); err != nil {
		return f, err
	}
	return f, nil
}

// Capability is the GET_CAPABILITY response. UCSI Table 6-13.
type Capability struct {
	BmAttributes       BmAttributes
	NumConnectors      uint32
	BmOptionalFeatures BmOptionalFeatures
	NumAltModes        uint32
	BcVersion          typec.BcdVersion
	PdVersion          typec.BcdVersion
	UsbTypeCVersion    typec.BcdVersion
}

// DecodeCapability consumes a 128-bit GET_CAPABILITY response from r.
func DecodeCapability(r *bitbuf.Reader) (Capability, error) {
	var c Capability
	var err error
	if c.BmAttributes, err = decodeBmAttributes(r); err != nil {
		return c, err
	}
	if c.NumConnectors, err = r.ReadBits(7); err != nil {
		return c, err
	}
	if err = r.Skip(1); err != nil {
		return c, err
	}
	if c.BmOptionalFeatures, err = decodeBmOptionalFeatures(r); err != nil {
		return c, err
	}
	if c.NumAltModes, err = r.ReadBits(8); err != nil {
		return c, err
	}
	if err = r.Skip(8); err != nil {
		return c, err
	}
	if c.BcVersion, err = readBcd(r); err != nil {
		return c, err
	}
	if c.PdVersion, err = readBcd(r); err != nil {
		return c, err
	}
	if c.UsbTypeCVersion, err = readBcd(r); err != nil {
		return c, err
	}
	return c, nil
}

func readBcd(r *bitbuf.Reader) (typec.BcdVersion, error) {
	v, err := r.ReadBits(16)
	return typec.BcdVersion(v), err
}
