// Package pd implements the USB Power Delivery data-object codecs: the
// four Power Data Object (PDO) shapes and the message payloads returned
// through the UCSI GET_PD_MESSAGE command.
//
// See "Universal Serial Bus Power Delivery Specification", revision 3.2.
// Decoding is revision-gated: each PDO shape is only defined for the exact
// protocol revisions it supports, and an unsupported revision fails before
// any shape field is consumed from the bitstream.
package pd

import (
	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
)

// Revision3p2 is the BCD revision value (3.10) the PD 3.2 PDO layouts are
// defined for. Other revisions are rejected by DecodePDO.
const Revision3p2 = typec.BcdVersion(0x310)

// PDO is one decoded Power Data Object. The concrete type is one of
// FixedSupplyPDO, BatterySupplyPDO, VariableSupplyPDO or
// ProgrammableSupplyPDO.
type PDO interface {
	// Encode writes the 32-bit PDO, discriminant included, mirroring the
	// decode field order exactly.
	Encode(w *bitbuf.Writer) error

	pdoKind() uint32
}

// DecodePDO reads one 32-bit PDO from r.
//
// The top 2 bits select the shape (0=Fixed, 1=Battery, 2=Variable,
// 3=Augmented, see PD 3.2 Table 6-7). The shape decoder is then gated on
// revision: the remaining 30 bits are only consumed when the revision is
// one the shape layout is defined for.
func DecodePDO(r *bitbuf.Reader, revision typec.BcdVersion) (PDO, error) {
	kind, err := r.ReadBits(2)
	if err != nil {
		return nil, err
	}
	if revision != Revision3p2 {
		return nil, &typec.UnsupportedRevisionError{Revision: revision}
	}
	switch kind {
	case kindFixed:
		return decodeFixedSupply(r)
	case kindBattery:
		return decodeBatterySupply(r)
	case kindVariable:
		return decodeVariableSupply(r)
	case kindAugmented:
		return decodeProgrammableSupply(r)
	default:
		// Unreachable for a 2-bit field, kept for when the discriminant
		// set grows.
		return nil, &typec.FieldError{Field: "pdo_type", Value: kind}
	}
}

const (
	kindFixed uint32 = iota
	kindBattery
	kindVariable
	kindAugmented
)
