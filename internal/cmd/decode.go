package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
	"github.com/usbctools/typec/pd"
	"github.com/usbctools/typec/ucsi"
	"github.com/usbctools/typec/vdo"
)

// Decode decodes payloads captured off the platform: PDO words, discover
// identity responses, and UCSI response registers, given as hex on the
// command line.
type Decode struct {
	Kind     string   `arg:"" enum:"pdo,identity,capability,connector-capability,connector-status,cable,altmode" help:"Payload kind"`
	Payload  []string `arg:"" help:"Hex payload: 32-bit words for pdo/identity/altmode, register bytes otherwise"`
	Revision string   `help:"PD specification revision as BCD hex, e.g. 0x0310" default:"0x0310"`
}

// Run is called by Kong when the decode command is executed.
func (c *Decode) Run(logger *slog.Logger, db vdo.VendorDB) error {
	p := newPrinter(os.Stdout)

	switch c.Kind {
	case "pdo":
		return c.decodePdos(p)
	case "identity":
		data, err := parseWords(c.Payload)
		if err != nil {
			return err
		}
		resp, err := pd.DecodeDiscoverIdentity(bitbuf.NewReader(data), db)
		if err != nil {
			return err
		}
		p.value(resp)
	case "capability":
		return decodeRegister(p, c.Payload, func(r *bitbuf.Reader) (any, error) {
			return ucsi.DecodeCapability(r)
		})
	case "connector-capability":
		return decodeRegister(p, c.Payload, func(r *bitbuf.Reader) (any, error) {
			return ucsi.DecodeConnectorCapability(r)
		})
	case "connector-status":
		return decodeRegister(p, c.Payload, func(r *bitbuf.Reader) (any, error) {
			return ucsi.DecodeConnectorStatus(r)
		})
	case "cable":
		return decodeRegister(p, c.Payload, func(r *bitbuf.Reader) (any, error) {
			return ucsi.DecodeCableProperty(r)
		})
	case "altmode":
		data, err := parseWords(c.Payload)
		if err != nil {
			return err
		}
		mode, err := ucsi.DecodeAlternateMode(bitbuf.NewReader(data))
		if err != nil {
			return err
		}
		p.value(mode)
	}
	return nil
}

func (c *Decode) decodePdos(p *printer) error {
	rev, err := parseHex(c.Revision, 16)
	if err != nil {
		return fmt.Errorf("invalid revision %q", c.Revision)
	}
	data, err := parseWords(c.Payload)
	if err != nil {
		return err
	}

	r := bitbuf.NewReader(data)
	var objs []pd.PDO
	for r.Remaining() >= 32 {
		pdo, err := pd.DecodePDO(r, typec.BcdVersion(rev))
		if err != nil {
			return err
		}
		objs = append(objs, pdo)
	}
	p.value(objs)
	return nil
}

func decodeRegister(p *printer, payload []string, decode func(*bitbuf.Reader) (any, error)) error {
	data, err := parseBytes(payload)
	if err != nil {
		return err
	}
	v, err := decode(bitbuf.NewReader(data))
	if err != nil {
		return err
	}
	p.value(v)
	return nil
}

// parseWords parses 32-bit hex words into their little-endian wire bytes.
func parseWords(args []string) ([]byte, error) {
	var data []byte
	for _, arg := range args {
		w, err := parseHex(arg, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid word %q", arg)
		}
		data = append(data, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	return data, nil
}

// parseBytes parses a contiguous hex byte string, given as one argument
// or split across several.
func parseBytes(args []string) ([]byte, error) {
	hex := strings.TrimPrefix(strings.Join(args, ""), "0x")
	if len(hex)%2 != 0 {
		return nil, fmt.Errorf("odd-length hex payload %q", hex)
	}
	data := make([]byte, 0, len(hex)/2)
	for i := 0; i < len(hex); i += 2 {
		b, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("invalid hex payload %q", hex)
		}
		data = append(data, byte(b))
	}
	return data, nil
}

func parseHex(s string, bits int) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, bits)
}
