package ucsi

import (
	"github.com/usbctools/typec/bitbuf"
)

// Command opcodes, UCSI Table 6-1.
const (
	opGetCapability          = 0x06
	opGetConnectorCapability = 0x07
	opGetAlternateModes      = 0x0C
	opGetCamSupported        = 0x0D
	opGetCurrentCam          = 0x0E
	opGetPdos                = 0x10
	opGetCableProperty       = 0x11
	opGetConnectorStatus     = 0x12
	opGetPdMessage           = 0x15
)

// controlSize is the size of the UCSI control register, and therefore the
// size of every marshalled command.
const controlSize = 8

// A Command is an OPM request that can be packed into the PPM control
// register. Connector numbers are zero-based in the structs and shifted to
// the one-based wire encoding when marshalled.
type Command interface {
	Opcode() byte
	encodeParams(w *bitbuf.Writer) error
}

// Marshal packs cmd into an 8-byte control register image: opcode byte,
// zero data-length byte, then the command-specific parameter fields padded
// with zeros to the register size.
func Marshal(cmd Command) ([]byte, error) {
	buf := make([]byte, controlSize)
	w := bitbuf.NewWriter(buf)
	if err := w.WriteBits(uint32(cmd.Opcode()), 8); err != nil {
		return nil, err
	}
	if err := w.WriteBits(0, 8); err != nil {
		return nil, err
	}
	if err := cmd.encodeParams(w); err != nil {
		return nil, err
	}
	if err := w.AlignByte(); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeConnectorNr packs a zero-based connector number into the 7-bit
// one-based wire field.
func writeConnectorNr(w *bitbuf.Writer, nr uint32) error {
	return w.WriteBits(nr+1, 7)
}

// GetCapability requests the platform policy manager's capabilities.
type GetCapability struct{}

func (GetCapability) Opcode() byte { return opGetCapability }

func (GetCapability) encodeParams(*bitbuf.Writer) error { return nil }

// GetConnectorCapability requests the capabilities of one connector.
type GetConnectorCapability struct {
	ConnectorNr uint32
}

func (GetConnectorCapability) Opcode() byte { return opGetConnectorCapability }

func (c GetConnectorCapability) encodeParams(w *bitbuf.Writer) error {
	return writeConnectorNr(w, c.ConnectorNr)
}

// GetAlternateModes requests the alternate modes supported by a connector,
// the port partner, or a cable plug, one mode per command starting at
// AltModeOffset.
type GetAlternateModes struct {
	Recipient     AlternateModeRecipient
	ConnectorNr   uint32
	AltModeOffset uint32
}

func (GetAlternateModes) Opcode() byte { return opGetAlternateModes }

func (c GetAlternateModes) encodeParams(w *bitbuf.Writer) error {
	if err := w.WriteBits(uint32(c.Recipient), 3); err != nil {
		return err
	}
	if err := w.WriteBits(0, 5); err != nil {
		return err
	}
	if err := writeConnectorNr(w, c.ConnectorNr); err != nil {
		return err
	}
	if err := w.WriteBits(0, 1); err != nil {
		return err
	}
	return w.WriteBits(c.AltModeOffset, 8)
}

// GetCamSupported requests the bitmap of alternate modes a connector
// supports.
type GetCamSupported struct {
	ConnectorNr uint32
}

func (GetCamSupported) Opcode() byte { return opGetCamSupported }

func (c GetCamSupported) encodeParams(w *bitbuf.Writer) error {
	return writeConnectorNr(w, c.ConnectorNr)
}

// GetCurrentCam requests the alternate mode currently active on a
// connector.
type GetCurrentCam struct {
	ConnectorNr uint32
}

func (GetCurrentCam) Opcode() byte { return opGetCurrentCam }

func (c GetCurrentCam) encodeParams(w *bitbuf.Writer) error {
	return writeConnectorNr(w, c.ConnectorNr)
}

// GetPdos requests up to NrPdos+1 power data objects from a connector or
// its partner, starting at PdoOffset.
type GetPdos struct {
	ConnectorNr uint32
	PartnerPdo  bool
	PdoOffset   uint32
	NrPdos      uint32
	PdoType     PdoType
	SourceCaps  SourceCapabilitiesType
}

func (GetPdos) Opcode() byte { return opGetPdos }

func (c GetPdos) encodeParams(w *bitbuf.Writer) error {
	if err := writeConnectorNr(w, c.ConnectorNr); err != nil {
		return err
	}
	partner := uint32(0)
	if c.PartnerPdo {
		partner = 1
	}
	if err := w.WriteBits(partner, 1); err != nil {
		return err
	}
	if err := w.WriteBits(c.PdoOffset, 8); err != nil {
		return err
	}
	if err := w.WriteBits(c.NrPdos, 2); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(c.PdoType), 1); err != nil {
		return err
	}
	return w.WriteBits(uint32(c.SourceCaps), 2)
}

// GetCableProperty requests the cable properties of a connector.
type GetCableProperty struct {
	ConnectorNr uint32
}

func (GetCableProperty) Opcode() byte { return opGetCableProperty }

func (c GetCableProperty) encodeParams(w *bitbuf.Writer) error {
	return writeConnectorNr(w, c.ConnectorNr)
}

// GetConnectorStatus requests the current status of a connector.
type GetConnectorStatus struct {
	ConnectorNr uint32
}

func (GetConnectorStatus) Opcode() byte { return opGetConnectorStatus }

func (c GetConnectorStatus) encodeParams(w *bitbuf.Writer) error {
	return writeConnectorNr(w, c.ConnectorNr)
}

// GetPdMessage requests a PD message, such as a discover identity
// response, from a connector, the port partner, or a cable plug.
type GetPdMessage struct {
	ConnectorNr  uint32
	Recipient    PdMessageRecipient
	ResponseType PdMessageResponseType
}

func (GetPdMessage) Opcode() byte { return opGetPdMessage }

func (c GetPdMessage) encodeParams(w *bitbuf.Writer) error {
	if err := writeConnectorNr(w, c.ConnectorNr); err != nil {
		return err
	}
	if err := w.WriteBits(uint32(c.Recipient), 3); err != nil {
		return err
	}
	// Message offset and number of bytes, always the full message.
	if err := w.WriteBits(0, 16); err != nil {
		return err
	}
	return w.WriteBits(uint32(c.ResponseType), 6)
}
