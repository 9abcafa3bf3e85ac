package ucsi

import (
	"fmt"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
)

// SpeedExponent is the base-10 exponent, times 3, applied to the speed
// mantissa when computing a cable's maximum bit rate.
type SpeedExponent uint32

const (
	SpeedBps SpeedExponent = iota
	SpeedKbps
	SpeedMbps
	SpeedGbps
)

var speedExponentNames = map[SpeedExponent]string{
	SpeedBps:  "bps",
	SpeedKbps: "Kbps",
	SpeedMbps: "Mbps",
	SpeedGbps: "Gbps",
}

func (e SpeedExponent) String() string { return speedExponentNames[e] }

// CableType distinguishes passive and active cables.
type CableType uint32

const (
	CablePassive CableType = iota
	CableActive
)

func (t CableType) String() string {
	if t == CableActive {
		return "Active"
	}
	return "Passive"
}

// PlugEndType is the type of the cable's far plug end.
type PlugEndType uint32

const (
	PlugEndTypeA PlugEndType = iota
	PlugEndTypeB
	PlugEndTypeC
	PlugEndOtherNotUsb
)

var plugEndTypeNames = map[PlugEndType]string{
	PlugEndTypeA:       "USB Type-A",
	PlugEndTypeB:       "USB Type-B",
	PlugEndTypeC:       "USB Type-C",
	PlugEndOtherNotUsb: "Other, not USB",
}

func (t PlugEndType) String() string { return plugEndTypeNames[t] }

// CableProperty is the GET_CABLE_PROPERTY response. UCSI Table 6-40.
type CableProperty struct {
	SpeedExponent SpeedExponent
	SpeedMantissa uint32
	// CurrentCapability is the current the cable is designed for.
	CurrentCapability typec.Milliamp
	VbusInCable       bool
	CableType         CableType
	// Directionality is set when the lane directionality is configurable.
	Directionality bool
	PlugEndType    PlugEndType
	// ModeSupport is valid only for active cables and indicates alternate
	// mode support.
	ModeSupport     bool
	CablePdRevision uint32
	Latency         uint32
}

// Speed renders the cable's maximum bit rate.
func (p CableProperty) Speed() string {
	return fmt.Sprintf("%d %s", p.SpeedMantissa, p.SpeedExponent)
}

// cableCurrentStep is the wire granularity of the current capability
// field, in milliamps.
const cableCurrentStep = 50

// DecodeCableProperty consumes a GET_CABLE_PROPERTY response from r.
func DecodeCableProperty(r *bitbuf.Reader) (CableProperty, error) {
	var p CableProperty
	se, err := r.ReadBits(2)
	if err != nil {
		return p, err
	}
	p.SpeedExponent = SpeedExponent(se)
	if p.SpeedMantissa, err = r.ReadBits(14); err != nil {
		return p, err
	}
	cur, err := r.ReadBits(8)
	if err != nil {
		return p, err
	}
	p.CurrentCapability = typec.Milliamp(cur * cableCurrentStep)
	if p.VbusInCable, err = r.ReadBit(); err != nil {
		return p, err
	}
	ct, err := r.ReadBits(1)
	if err != nil {
		return p, err
	}
	p.CableType = CableType(ct)
	if p.Directionality, err = r.ReadBit(); err != nil {
		return p, err
	}
	pe, err := r.ReadBits(2)
	if err != nil {
		return p, err
	}
	p.PlugEndType = PlugEndType(pe)
	if p.ModeSupport, err = r.ReadBit(); err != nil {
		return p, err
	}
	if p.CablePdRevision, err = r.ReadBits(2); err != nil {
		return p, err
	}
	if p.Latency, err = r.ReadBits(4); err != nil {
		return p, err
	}
	return p, nil
}
