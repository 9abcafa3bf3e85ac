package sysfs

import (
	"encoding/binary"
	"fmt"
	"path"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
	"github.com/usbctools/typec/pd"
	"github.com/usbctools/typec/ucsi"
	"github.com/usbctools/typec/vdo"
)

// PdMessage serves Discover Identity responses from the partner or cable
// identity directories. Other message types have no sysfs representation.
func (b *Backend) PdMessage(connectorNr int, recipient ucsi.PdMessageRecipient, responseType ucsi.PdMessageResponseType) (pd.Message, error) {
	if responseType != ucsi.PdResponseDiscoverIdentity {
		return nil, typec.ErrNotSupported
	}

	var identityPath string
	switch recipient {
	case ucsi.PdRecipientSop:
		identityPath = fmt.Sprintf("%s/port%d-partner/identity", typecPath, connectorNr)
	case ucsi.PdRecipientSopPrime:
		identityPath = fmt.Sprintf("%s/port%d-cable/identity", typecPath, connectorNr)
	default:
		return nil, typec.ErrNotSupported
	}

	return b.readIdentity(identityPath)
}

// readIdentity decodes the raw identity VDO attributes, which sysfs
// exposes as hex words, through the bit-level VDO decoders.
func (b *Backend) readIdentity(identityPath string) (*pd.DiscoverIdentityResponse, error) {
	idHeader, err := b.readIdentityWord(identityPath, "id_header")
	if err != nil {
		return nil, err
	}
	certStat, err := b.readIdentityWord(identityPath, "cert_stat")
	if err != nil {
		return nil, err
	}
	product, err := b.readIdentityWord(identityPath, "product")
	if err != nil {
		return nil, err
	}

	var resp pd.DiscoverIdentityResponse

	idh, err := vdo.DecodeIDHeader(bitbuf.NewReader(leWord(idHeader)), b.db)
	if err != nil {
		return nil, err
	}
	resp.IDHeader = *idh

	cert, err := vdo.DecodeCertStat(bitbuf.NewReader(leWord(certStat)))
	if err != nil {
		return nil, err
	}
	resp.CertStat = *cert

	prod, err := vdo.DecodeProduct(bitbuf.NewReader(leWord(product)))
	if err != nil {
		return nil, err
	}
	resp.Product = *prod

	for i := range resp.ProductType {
		word, err := b.readIdentityWord(identityPath, fmt.Sprintf("product_type_vdo%d", i+1))
		if err != nil {
			return nil, err
		}
		if word == 0 {
			continue
		}
		pt, err := vdo.ProductTypeFromWire(word)
		if err != nil {
			return nil, err
		}
		resp.ProductType[i] = pt
	}

	return &resp, nil
}

func (b *Backend) readIdentityWord(identityPath, attr string) (uint32, error) {
	content, err := b.readAttr(path.Join(identityPath, attr))
	if err != nil {
		return 0, err
	}
	return parseHexU32(content)
}

func leWord(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}
