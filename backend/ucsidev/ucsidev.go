// Package ucsidev implements the backend.Backend interface over the
// kernel's UCSI debugfs interface. Commands are marshalled into the
// 8-byte control register image, written as a hex word to the command
// node, and the response is read back from the message-in node.
//
// This backend talks to the platform policy manager directly, so it can
// answer queries the sysfs class does not expose, such as cable speed and
// current capability. It requires debugfs and root.
package ucsidev

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/backend"
	"github.com/usbctools/typec/bitbuf"
	"github.com/usbctools/typec/pd"
	"github.com/usbctools/typec/ucsi"
	"github.com/usbctools/typec/vdo"
)

const debugfsRoot = "/sys/kernel/debug/usb/ucsi"

// Response data sizes per command, in bytes: the exact number of bytes
// the matching decoder consumes. GET_CONNECTOR_STATUS exceeds the
// 16-byte MESSAGE_IN of older platforms; UCSI 3.0 allows up to 255.
const (
	capabilityRespSize          = 16 // 128-bit CAPABILITY structure
	connectorCapabilityRespSize = 4
	altModeRespSize             = 12 // one SVID/MID pair
	pdosRespSize                = 16 // up to four 32-bit PDOs
	cablePropertyRespSize       = 5  // 36 bits, byte padded
	connectorStatusRespSize     = 19 // 145 bits, byte padded
	pdMessageRespSize           = 16
)

// maxResponseSize bounds one MESSAGE_IN read, per UCSI 3.0.
const maxResponseSize = 255

func init() {
	backend.Register("ucsi", func(log *slog.Logger, db vdo.VendorDB) (backend.Backend, error) {
		return New(db, log)
	})
}

// Device drives one UCSI platform policy manager through debugfs.
type Device struct {
	commandPath  string
	responsePath string
	db           vdo.VendorDB
	log          *slog.Logger
}

// New locates the first UCSI interface under debugfs. It fails with
// typec.ErrNotSupported when debugfs or the UCSI node is absent.
func New(db vdo.VendorDB, log *slog.Logger) (*Device, error) {
	if log == nil {
		log = slog.Default()
	}
	entries, err := os.ReadDir(debugfsRoot)
	if err != nil || len(entries) == 0 {
		return nil, typec.ErrNotSupported
	}
	root := debugfsRoot + "/" + entries[0].Name()
	return &Device{
		commandPath:  root + "/command",
		responsePath: root + "/response",
		db:           db,
		log:          log,
	}, nil
}

// execute marshals cmd, writes it to the command node, and returns the
// first respSize response register bytes.
func (d *Device) execute(cmd ucsi.Command, respSize int) ([]byte, error) {
	buf, err := ucsi.Marshal(cmd)
	if err != nil {
		return nil, err
	}
	word := binary.LittleEndian.Uint64(buf)
	d.log.Debug("executing ucsi command", "opcode", cmd.Opcode(), "control", fmt.Sprintf("%#016x", word))

	fd, err := unix.Open(d.commandPath, unix.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("ucsidev: open command node: %w", err)
	}
	_, werr := unix.Write(fd, []byte(fmt.Sprintf("%#016x", word)))
	if cerr := unix.Close(fd); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return nil, fmt.Errorf("ucsidev: write command: %w", werr)
	}

	return d.readResponse(respSize)
}

// readResponse parses the hex word the response node yields into the
// first size little-endian register bytes. The node prints the register
// as one big-endian hex number, so byte 0 sits at the end of the string;
// bytes beyond size are discarded, bytes the platform did not report stay
// zero.
func (d *Device) readResponse(size int) ([]byte, error) {
	fd, err := unix.Open(d.responsePath, unix.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("ucsidev: open response node: %w", err)
	}
	raw := make([]byte, 2+2*maxResponseSize+2)
	n, rerr := unix.Read(fd, raw)
	if cerr := unix.Close(fd); rerr == nil {
		rerr = cerr
	}
	if rerr != nil {
		return nil, fmt.Errorf("ucsidev: read response: %w", rerr)
	}

	hex := strings.TrimSpace(strings.TrimPrefix(string(raw[:n]), "0x"))
	if len(hex)%2 != 0 {
		hex = "0" + hex
	}
	resp := make([]byte, size)
	for i := 0; len(hex) > 0; i++ {
		v, err := strconv.ParseUint(hex[len(hex)-2:], 16, 8)
		if err != nil {
			return nil, &typec.StringFieldError{Field: "response", Value: hex}
		}
		if i < len(resp) {
			resp[i] = byte(v)
		}
		hex = hex[:len(hex)-2]
	}
	return resp, nil
}

func (d *Device) Capabilities() (ucsi.Capability, error) {
	resp, err := d.execute(ucsi.GetCapability{}, capabilityRespSize)
	if err != nil {
		return ucsi.Capability{}, err
	}
	return ucsi.DecodeCapability(bitbuf.NewReader(resp))
}

func (d *Device) ConnectorCapabilities(connectorNr int) (ucsi.ConnectorCapability, error) {
	resp, err := d.execute(ucsi.GetConnectorCapability{ConnectorNr: uint32(connectorNr)}, connectorCapabilityRespSize)
	if err != nil {
		return ucsi.ConnectorCapability{}, err
	}
	return ucsi.DecodeConnectorCapability(bitbuf.NewReader(resp))
}

func (d *Device) AlternateModes(recipient ucsi.AlternateModeRecipient, connectorNr int) ([]ucsi.AlternateMode, error) {
	var modes []ucsi.AlternateMode
	for offset := uint32(0); offset < ucsi.MaxAltModes; offset++ {
		resp, err := d.execute(ucsi.GetAlternateModes{
			Recipient:     recipient,
			ConnectorNr:   uint32(connectorNr),
			AltModeOffset: offset,
		}, altModeRespSize)
		if err != nil {
			return nil, err
		}
		mode, err := ucsi.DecodeAlternateMode(bitbuf.NewReader(resp))
		if err != nil {
			return nil, err
		}
		if mode.Svid[0] == 0 {
			break
		}
		modes = append(modes, mode)
	}
	return modes, nil
}

func (d *Device) CableProperty(connectorNr int) (ucsi.CableProperty, error) {
	resp, err := d.execute(ucsi.GetCableProperty{ConnectorNr: uint32(connectorNr)}, cablePropertyRespSize)
	if err != nil {
		return ucsi.CableProperty{}, err
	}
	return ucsi.DecodeCableProperty(bitbuf.NewReader(resp))
}

func (d *Device) ConnectorStatus(connectorNr int) (ucsi.ConnectorStatus, error) {
	resp, err := d.execute(ucsi.GetConnectorStatus{ConnectorNr: uint32(connectorNr)}, connectorStatusRespSize)
	if err != nil {
		return ucsi.ConnectorStatus{}, err
	}
	return ucsi.DecodeConnectorStatus(bitbuf.NewReader(resp))
}

func (d *Device) Pdos(req backend.PdoRequest) ([]pd.PDO, error) {
	resp, err := d.execute(ucsi.GetPdos{
		ConnectorNr: uint32(req.ConnectorNr),
		PartnerPdo:  req.PartnerPdo,
		PdoOffset:   uint32(req.PdoOffset),
		NrPdos:      uint32(req.NrPdos),
		PdoType:     req.PdoType,
		SourceCaps:  req.SourceCaps,
	}, pdosRespSize)
	if err != nil {
		return nil, err
	}

	var pdos []pd.PDO
	r := bitbuf.NewReader(resp)
	for i := 0; i <= req.NrPdos && r.Remaining() >= 32; i++ {
		// An all-zero word terminates the list early.
		if binary.LittleEndian.Uint32(resp[i*4:]) == 0 {
			break
		}
		pdo, err := pd.DecodePDO(r, req.Revision)
		if err != nil {
			return nil, err
		}
		pdos = append(pdos, pdo)
	}
	return pdos, nil
}

func (d *Device) PdMessage(connectorNr int, recipient ucsi.PdMessageRecipient, responseType ucsi.PdMessageResponseType) (pd.Message, error) {
	resp, err := d.execute(ucsi.GetPdMessage{
		ConnectorNr:  uint32(connectorNr),
		Recipient:    recipient,
		ResponseType: responseType,
	}, pdMessageRespSize)
	if err != nil {
		return nil, err
	}

	r := bitbuf.NewReader(resp)
	switch responseType {
	case ucsi.PdResponseBatteryStatus:
		return pd.DecodeBatteryStatus(r)
	case ucsi.PdResponseBatteryCapabilities:
		return pd.DecodeBatteryCapabilities(r)
	case ucsi.PdResponseRevision:
		return pd.DecodeRevisionMessage(r)
	default:
		// The remaining message types span multiple MESSAGE_IN reads.
		return nil, typec.ErrNotSupported
	}
}
