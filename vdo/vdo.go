// Package vdo implements the USB Power Delivery Vendor Data Object
// decoders: the identity objects exchanged in Discover Identity and mode
// discovery (ID Header, Cert Stat, Product, product-type VDOs).
//
// Every shape decodes from a single 32-bit word with the exact field
// widths of USB PD 3.2 section 6.4.4.3. Decoding is pure except for the
// ID Header, which resolves the 16-bit vendor ID to a display name via an
// injected VendorDB.
package vdo

import (
	"bytes"
	"fmt"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
)

// VendorDB resolves hwdb-style modalias patterns (e.g. "usb:v8087*") to
// vendor names. Absence of a match is not an error. Implementations must
// be safe for concurrent readers; this package only ever queries.
type VendorDB interface {
	Query(pattern string) (name string, ok bool)
}

// VDO is one decoded Vendor Data Object.
type VDO interface {
	isVDO()
}

// SopUfpProductType is the UFP product type announced in the ID Header.
type SopUfpProductType uint32

const (
	UfpProductNotAUfp SopUfpProductType = iota
	UfpProductPdUsbHub
	UfpProductPdUsbPeripheral
	UfpProductPsd
	UfpProductNotACablePlugOrVpd
	UfpProductPassiveCable
	UfpProductActiveCable
	UfpProductVconnPoweredUsbDevice
)

// SopDfpProductType is the DFP product type announced in the ID Header.
type SopDfpProductType uint32

const (
	DfpProductNotADfp SopDfpProductType = iota
	DfpProductPdUsbHub
	DfpProductPdUsbHost
	DfpProductPowerBrick

	numDfpProductType = iota
)

// ConnectorType identifies the product connector as a USB Type-C
// receptacle or plug. Values 0 and 1 are reserved on the wire.
type ConnectorType uint32

const (
	ConnectorTypeReceptacle ConnectorType = 2
	ConnectorTypePlug       ConnectorType = 3
)

// IDHeaderVDO is the first object of a Discover Identity response.
// See PD 3.2 section 6.4.4.3.1.1.
type IDHeaderVDO struct {
	// Vendor holds the NUL-terminated vendor name resolved from the
	// vendor ID at decode time, "Unknown" when the database has no entry.
	Vendor [32]byte
	// VendorTruncated reports that the resolved name did not fit the 31
	// usable bytes and was cut; the terminator is always preserved.
	VendorTruncated bool

	UsbHostCapability       bool
	UsbDeviceCapability     bool
	SopProductTypeUfp       SopUfpProductType
	ModalOperationSupported bool
	SopProductTypeDfp       SopDfpProductType
	ConnectorType           ConnectorType
	UsbVendorID             uint16
}

func (IDHeaderVDO) isVDO() {}

// VendorName returns the resolved vendor name as a Go string.
func (v IDHeaderVDO) VendorName() string {
	if i := bytes.IndexByte(v.Vendor[:], 0); i >= 0 {
		return string(v.Vendor[:i])
	}
	return string(v.Vendor[:])
}

// DecodeIDHeader reads an ID Header VDO. db may be nil, in which case
// every vendor resolves to "Unknown".
func DecodeIDHeader(r *bitbuf.Reader, db VendorDB) (*IDHeaderVDO, error) {
	var v IDHeaderVDO
	var err error
	if v.UsbHostCapability, err = r.ReadBit(); err != nil {
		return nil, err
	}
	if v.UsbDeviceCapability, err = r.ReadBit(); err != nil {
		return nil, err
	}
	ufp, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	// All 8 values of the 3-bit UFP product type field are defined.
	v.SopProductTypeUfp = SopUfpProductType(ufp)
	if v.ModalOperationSupported, err = r.ReadBit(); err != nil {
		return nil, err
	}
	dfp, err := r.ReadBits(3)
	if err != nil {
		return nil, err
	}
	if dfp >= numDfpProductType {
		return nil, &typec.FieldError{Field: "sop_product_type_dfp", Value: dfp}
	}
	v.SopProductTypeDfp = SopDfpProductType(dfp)
	ct, err := r.ReadBits(2)
	if err != nil {
		return nil, err
	}
	if ct != uint32(ConnectorTypeReceptacle) && ct != uint32(ConnectorTypePlug) {
		return nil, &typec.FieldError{Field: "connector_type", Value: ct}
	}
	v.ConnectorType = ConnectorType(ct)
	if err := r.Skip(5); err != nil { // reserved
		return nil, err
	}
	vid, err := r.ReadBits(16)
	if err != nil {
		return nil, err
	}
	v.UsbVendorID = uint16(vid)
	v.VendorTruncated = resolveVendor(v.Vendor[:], db, v.UsbVendorID)
	return &v, nil
}

// resolveVendor fills dst with the NUL-terminated vendor name for vid and
// reports whether the name had to be truncated to fit.
func resolveVendor(dst []byte, db VendorDB, vid uint16) bool {
	name := "Unknown"
	if db != nil {
		if n, ok := db.Query(fmt.Sprintf("usb:v%04X*", vid)); ok {
			name = n
		}
	}
	truncated := false
	if len(name) > len(dst)-1 {
		name = name[:len(dst)-1]
		truncated = true
	}
	copy(dst, name)
	dst[len(name)] = 0
	return truncated
}

// CertStatVDO carries the XID assigned by USB-IF before certification.
// See PD 3.2 section 6.4.4.3.1.2.
type CertStatVDO struct {
	XID uint32
}

func (CertStatVDO) isVDO() {}

func DecodeCertStat(r *bitbuf.Reader) (*CertStatVDO, error) {
	xid, err := r.ReadBits(32)
	if err != nil {
		return nil, err
	}
	return &CertStatVDO{XID: xid}, nil
}

// ProductVDO carries the product ID and device release number.
// See PD 3.2 section 6.4.4.3.1.3.
type ProductVDO struct {
	ProductID uint32
	Device    typec.BcdVersion
}

func (ProductVDO) isVDO() {}

func DecodeProduct(r *bitbuf.Reader) (*ProductVDO, error) {
	pid, err := r.ReadBits(16)
	if err != nil {
		return nil, err
	}
	dev, err := r.ReadBits(16)
	if err != nil {
		return nil, err
	}
	return &ProductVDO{ProductID: pid, Device: typec.BcdVersion(dev)}, nil
}

// ProductTypeVDO names which product-type VDO layout follows an ID Header
// in a Discover Identity response.
type ProductTypeVDO uint32

const (
	ProductTypePassiveCable ProductTypeVDO = iota
	ProductTypeActiveCable
	ProductTypeVpd
	ProductTypeUfp
	ProductTypeDfp

	numProductType = iota
)

// ProductTypeFromWire maps a wire integer to a ProductTypeVDO.
func ProductTypeFromWire(v uint32) (ProductTypeVDO, error) {
	if v >= numProductType {
		return 0, &typec.FieldError{Field: "product_type_vdo", Value: v}
	}
	return ProductTypeVDO(v), nil
}
