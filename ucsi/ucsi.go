// Package ucsi implements the USB Type-C Connector System Software
// Interface wire codec: the command encoder for the OPM-to-PPM control
// packet and the decoders for the capability, connector, cable and
// alternate-mode response structures.
//
// Layouts follow the UCSI 3.0 specification. Commands are bit-packed with
// the bitbuf writer and padded to a byte boundary; responses are consumed
// field by field with interspersed reserved-bit skips, so a decoded
// structure always advances the reader by exactly the bits the
// specification assigns to it.
package ucsi

// MaxAltModes is the largest number of alternate modes a PPM reports.
// See UCSI Table A-2, Parameter Values.
const MaxAltModes = 128

// AlternateModeRecipient selects whose alternate modes GET_ALTERNATE_MODES
// queries. See UCSI Table 6-24.
type AlternateModeRecipient uint32

const (
	RecipientConnector AlternateModeRecipient = iota
	RecipientSop
	RecipientSopPrime
	RecipientSopDoublePrime
)

// PdoType selects between sink and source PDOs in GET_PDOS.
type PdoType uint32

const (
	PdoSink PdoType = iota
	PdoSource
)

// SourceCapabilitiesType selects which flavor of source capabilities
// GET_PDOS retrieves.
type SourceCapabilitiesType uint32

const (
	CurrentSupportedSourceCapabilities SourceCapabilitiesType = iota
	AdvertisedCapabilities
	MaximumSupportedSourceCapabilities
)

// PdMessageRecipient selects whose PD message GET_PD_MESSAGE retrieves:
// the connector itself, the port partner (SOP), or a cable plug
// (SOP prime, SOP double prime).
type PdMessageRecipient uint32

const (
	PdRecipientConnector PdMessageRecipient = iota
	PdRecipientSop
	PdRecipientSopPrime
	PdRecipientSopDoublePrime
)

// PdMessageResponseType selects which PD message GET_PD_MESSAGE retrieves.
type PdMessageResponseType uint32

const (
	PdResponseSinkCapabilitiesExtended PdMessageResponseType = iota
	PdResponseSourceCapabilitiesExtended
	PdResponseBatteryCapabilities
	PdResponseBatteryStatus
	PdResponseDiscoverIdentity
	PdResponseRevision
)
