package pd

import (
	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
	"github.com/usbctools/typec/vdo"
)

// Message is one decoded PD message payload, as returned through the UCSI
// GET_PD_MESSAGE command. The concrete type is one of
// DiscoverIdentityResponse, BatteryStatus, RevisionMessage,
// SourceCapabilitiesExtended, SinkCapabilitiesExtended or
// BatteryCapabilities.
type Message interface {
	isMessage()
}

// CommandType is the structured VDM command type field.
type CommandType uint32

const (
	CommandTypeRequest CommandType = iota
	CommandTypeAck
	CommandTypeNak
	CommandTypeBusy
)

// Command is the structured VDM command field.
type Command uint32

const (
	CommandDiscoverIdentity Command = iota
	CommandDiscoverSVIDs
	CommandDiscoverModes
	CommandEnterMode
	CommandExitMode
	CommandAttention
	CommandSVIDSpecific

	numCommand = iota
)

// VdmHeader is the structured VDM header. See PD 3.2 Table 6-30.
type VdmHeader struct {
	Svid           uint16
	Structured     bool
	Major          uint8
	Minor          uint8
	ObjectPosition uint8
	CommandType    CommandType
	Command        Command
}

// DecodeVdmHeader reads a 32-bit structured VDM header.
func DecodeVdmHeader(r *bitbuf.Reader) (*VdmHeader, error) {
	var h VdmHeader
	svid, err := r.ReadBits(16)
	if err != nil {
		return nil, err
	}
	h.Svid = uint16(svid)
	if h.Structured, err = r.ReadBit(); err != nil {
		return nil, err
	}
	major, err := r.ReadBits(2)
	if err != nil {
		return nil, err
	}
	minor, err := r.ReadBits(2)
	if err != nil {
		return nil, err
	}
	h.Major, h.Minor = uint8(major), uint8(minor)
	pos, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	h.ObjectPosition = uint8(pos)
	// All four command type values are defined.
	ct, err := r.ReadBits(2)
	if err != nil {
		return nil, err
	}
	h.CommandType = CommandType(ct)
	if err := r.Skip(1); err != nil { // reserved
		return nil, err
	}
	cmd, err := r.ReadBits(5)
	if err != nil {
		return nil, err
	}
	if cmd >= numCommand {
		return nil, &typec.FieldError{Field: "command", Value: cmd}
	}
	h.Command = Command(cmd)
	return &h, nil
}

// DiscoverIdentityResponse is the ACK payload of a Discover Identity
// structured VDM: the VDM header followed by the identity VDOs.
type DiscoverIdentityResponse struct {
	Header      VdmHeader
	IDHeader    vdo.IDHeaderVDO
	CertStat    vdo.CertStatVDO
	Product     vdo.ProductVDO
	ProductType [3]vdo.ProductTypeVDO
}

func (DiscoverIdentityResponse) isMessage() {}

// DecodeDiscoverIdentity reads a full Discover Identity ACK: VDM header,
// ID Header (with vendor lookup through db), Cert Stat and Product VDOs.
// The product-type VDO slots are left at their zero values; callers that
// know the product-type classifications fill them in separately.
func DecodeDiscoverIdentity(r *bitbuf.Reader, db vdo.VendorDB) (*DiscoverIdentityResponse, error) {
	hdr, err := DecodeVdmHeader(r)
	if err != nil {
		return nil, err
	}
	idh, err := vdo.DecodeIDHeader(r, db)
	if err != nil {
		return nil, err
	}
	cert, err := vdo.DecodeCertStat(r)
	if err != nil {
		return nil, err
	}
	prod, err := vdo.DecodeProduct(r)
	if err != nil {
		return nil, err
	}
	return &DiscoverIdentityResponse{
		Header:   *hdr,
		IDHeader: *idh,
		CertStat: *cert,
		Product:  *prod,
	}, nil
}

// BatteryChargingStatus is the charging status carried in a Battery
// Status data object. All four values of the 2-bit field are defined.
type BatteryChargingStatus uint32

const (
	BatteryCharging BatteryChargingStatus = iota
	BatteryDischarging
	BatteryIdle
	BatteryStatusReserved
)

// BatteryStatus is the 32-bit Battery Status Data Object (BSDO).
// See PD 3.2 Table 6-46.
type BatteryStatus struct {
	// PresentCapacity is the battery's state of charge in 0.1 Wh units,
	// 0xFFFF when unknown.
	PresentCapacity uint16
	InvalidRef      bool
	Present         bool
	ChargingStatus  BatteryChargingStatus
}

func (BatteryStatus) isMessage() {}

func DecodeBatteryStatus(r *bitbuf.Reader) (*BatteryStatus, error) {
	var b BatteryStatus
	cap16, err := r.ReadBits(16)
	if err != nil {
		return nil, err
	}
	b.PresentCapacity = uint16(cap16)
	if b.InvalidRef, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if b.Present, err = r.ReadBit(); err != nil {
		return nil, err
	}
	cs, err := r.ReadBits(2)
	if err != nil {
		return nil, err
	}
	b.ChargingStatus = BatteryChargingStatus(cs)
	if err := r.Skip(4); err != nil { // reserved
		return nil, err
	}
	if err := r.Skip(8); err != nil { // reserved
		return nil, err
	}
	return &b, nil
}

// RevisionMessage is the 32-bit Revision Message Data Object (RMDO)
// carrying the negotiated specification revision and version.
type RevisionMessage struct {
	RevisionMajor uint8
	RevisionMinor uint8
	VersionMajor  uint8
	VersionMinor  uint8
}

func (RevisionMessage) isMessage() {}

// Revision returns the revision as a BCD value, e.g. 3.1 -> 0x0301.
func (m RevisionMessage) Revision() typec.BcdVersion {
	return typec.BcdVersion(uint32(m.RevisionMajor)<<8 | uint32(m.RevisionMinor))
}

func DecodeRevisionMessage(r *bitbuf.Reader) (*RevisionMessage, error) {
	var m RevisionMessage
	for _, dst := range []*uint8{
		&m.RevisionMajor, &m.RevisionMinor, &m.VersionMajor, &m.VersionMinor,
	} {
		v, err := r.ReadBits(4)
		if err != nil {
			return nil, err
		}
		*dst = uint8(v)
	}
	if err := r.Skip(16); err != nil { // reserved
		return nil, err
	}
	return &m, nil
}
