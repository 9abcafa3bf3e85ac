package ucsi

import (
	"github.com/usbctools/typec"
	"github.com/usbctools/typec/bitbuf"
)

// OperationMode is the mode a connector can support. UCSI Table 6-19.
type OperationMode uint32

const (
	OperationModeRpOnly OperationMode = iota
	OperationModeRdOnly
	OperationModeDrp
	OperationModeAnalogAudioAccessory
	OperationModeDebugAccessory
	OperationModeUsb2
	OperationModeUsb3
	OperationModeAlternateMode
)

var operationModeNames = map[OperationMode]string{
	OperationModeRpOnly:               "Rp only",
	OperationModeRdOnly:               "Rd only",
	OperationModeDrp:                  "DRP",
	OperationModeAnalogAudioAccessory: "Analog Audio Accessory Mode",
	OperationModeDebugAccessory:       "Debug Accessory Mode",
	OperationModeUsb2:                 "USB 2",
	OperationModeUsb3:                 "USB 3",
	OperationModeAlternateMode:        "Alternate Mode",
}

func (m OperationMode) String() string { return operationModeNames[m] }

// ExtendedOperationMode lists additional connector capabilities.
type ExtendedOperationMode uint32

const (
	ExtendedOperationModeUsb4Gen2 ExtendedOperationMode = iota
	ExtendedOperationModeEprSource
	ExtendedOperationModeEprSink
	ExtendedOperationModeUsb4Gen3
	ExtendedOperationModeUsb4Gen4
)

// MiscellaneousCapabilities lists debug-level connector capabilities.
type MiscellaneousCapabilities uint32

const (
	MiscCapFwUpdate MiscellaneousCapabilities = iota
	MiscCapSecurity
)

// ConnectorCapability is the GET_CONNECTOR_CAPABILITY response.
// UCSI Table 6-18.
type ConnectorCapability struct {
	OperationMode OperationMode
	// Provider is valid when the operation mode is DRP or Rp only and
	// reports whether the connector can provide power.
	Provider bool
	// Consumer is valid when the operation mode is DRP or Rd only and
	// reports whether the connector can consume power.
	Consumer  bool
	SwapToDfp bool
	SwapToUfp bool
	SwapToSrc bool
	SwapToSnk bool

	ExtendedOperationMode           ExtendedOperationMode
	MiscellaneousCapabilities       MiscellaneousCapabilities
	ReverseCurrentProtectionSupport bool
	PartnerPdRevision               uint32
}

// DecodeConnectorCapability consumes a GET_CONNECTOR_CAPABILITY response
// from r.
func DecodeConnectorCapability(r *bitbuf.Reader) (ConnectorCapability, error) {
	var c ConnectorCapability
	om, err := r.ReadBits(8)
	if err != nil {
		return c, err
	}
	if om > uint32(OperationModeAlternateMode) {
		return c, &typec.FieldError{Field: "operation_mode", Value: om}
	}
	c.OperationMode = OperationMode(om)
	for _, dst := range []*bool{
		&c.Provider, &c.Consumer,
		&c.SwapToDfp, &c.SwapToUfp, &c.SwapToSrc, &c.SwapToSnk,
	} {
		b, err := r.ReadBit()
		if err != nil {
			return c, err
		}
		*dst = b
	}
	eom, err := r.ReadBits(8)
	if err != nil {
		return c, err
	}
	if eom > uint32(ExtendedOperationModeUsb4Gen4) {
		return c, &typec.FieldError{Field: "extended_operation_mode", Value: eom}
	}
	c.ExtendedOperationMode = ExtendedOperationMode(eom)
	misc, err := r.ReadBits(4)
	if err != nil {
		return c, err
	}
	if misc > uint32(MiscCapSecurity) {
		return c, &typec.FieldError{Field: "miscellaneous_capabilities", Value: misc}
	}
	c.MiscellaneousCapabilities = MiscellaneousCapabilities(misc)
	if c.ReverseCurrentProtectionSupport, err = r.ReadBit(); err != nil {
		return c, err
	}
	if c.PartnerPdRevision, err = r.ReadBits(2); err != nil {
		return c, err
	}
	return c, nil
}

// PowerOperationMode is the power mode a connector currently operates in.
// Values 0 and 7 are reserved by the specification but remain decodable.
type PowerOperationMode uint32

const (
	PowerOpModeReserved PowerOperationMode = iota
	PowerOpModeUsbDefault
	PowerOpModeBatteryCharging
	PowerOpModePowerDelivery
	PowerOpModeTypeC1500mA
	PowerOpModeTypeC3000mA
	PowerOpModeTypeC5000mA
	PowerOpModeReserved2
)

var powerOperationModeNames = map[PowerOperationMode]string{
	PowerOpModeReserved:        "Reserved",
	PowerOpModeUsbDefault:      "USB Default Operation",
	PowerOpModeBatteryCharging: "Battery Charging",
	PowerOpModePowerDelivery:   "Power Delivery",
	PowerOpModeTypeC1500mA:     "USB Type-C Current 1.5A",
	PowerOpModeTypeC3000mA:     "USB Type-C Current 3A",
	PowerOpModeTypeC5000mA:     "USB Type-C Current 5A",
	PowerOpModeReserved2:       "Reserved",
}

func (m PowerOperationMode) String() string { return powerOperationModeNames[m] }

// PowerDirection reports whether a connector consumes or provides power.
type PowerDirection uint32

const (
	PowerDirectionConsumer PowerDirection = iota
	PowerDirectionProvider
)

// ConnectorPartnerType identifies what is attached to a connector.
// Values 0 and 7 are reserved by the specification but remain decodable.
type ConnectorPartnerType uint32

const (
	PartnerTypeReserved ConnectorPartnerType = iota
	PartnerTypeDfpAttached
	PartnerTypeUfpAttached
	PartnerTypePoweredCableNoUfp
	PartnerTypePoweredCableUfp
	PartnerTypeDebugAccessory
	PartnerTypeAudioAdapterAccessory
	PartnerTypeReserved2
)

var connectorPartnerTypeNames = map[ConnectorPartnerType]string{
	PartnerTypeReserved:              "Reserved",
	PartnerTypeDfpAttached:           "DFP attached",
	PartnerTypeUfpAttached:           "UFP attached",
	PartnerTypePoweredCableNoUfp:     "Powered cable, no UFP attached",
	PartnerTypePoweredCableUfp:       "Powered cable, UFP attached",
	PartnerTypeDebugAccessory:        "Debug accessory attached",
	PartnerTypeAudioAdapterAccessory: "Audio adapter accessory attached",
	PartnerTypeReserved2:             "Reserved",
}

func (t ConnectorPartnerType) String() string { return connectorPartnerTypeNames[t] }

// BatteryChargingCapabilityStatus is valid only when a connector operates
// as a sink.
type BatteryChargingCapabilityStatus uint32

const (
	BatteryNotCharging BatteryChargingCapabilityStatus = iota
	BatteryNominalChargingRate
	BatterySlowChargingRate
	BatteryVerySlowChargingRate
)

// ConnectorOrientation reports whether the connection is in the direct or
// reversed plug orientation.
type ConnectorOrientation uint32

const (
	OrientationNormal ConnectorOrientation = iota
	OrientationReverse
)

// SinkPathStatus reports whether the sink path is ready.
type SinkPathStatus uint32

const (
	SinkPathNotReady SinkPathStatus = iota
	SinkPathReady
)

// ConnectorStatusChange is the bitmap of status changes on a connector.
// UCSI Table 6-44.
type ConnectorStatusChange struct {
	ExternalSupplyChange                bool
	PowerOperationModeChange            bool
	Attention                           bool
	SupportedProviderCapabilitiesChange bool
	NegotiatedPowerLevelChange          bool
	PdResetComplete                     bool
	SupportedCamChange                  bool
	BatteryChargingStatusChange         bool
	ConnectorPartnerChanged             bool
}

func decodeConnectorStatusChange(r *bitbuf.Reader) (ConnectorStatusChange, error) {
	var c ConnectorStatusChange
	// Bits 0, 4, 10 and 12 through 15 are reserved.
	fields := []*bool{
		nil,
		&c.ExternalSupplyChange,
		&c.PowerOperationModeChange,
		&c.Attention,
		nil,
		&c.SupportedProviderCapabilitiesChange,
		&c.NegotiatedPowerLevelChange,
		&c.PdResetComplete,
		&c.SupportedCamChange,
		&c.BatteryChargingStatusChange,
		nil,
		&c.ConnectorPartnerChanged,
	}
	for _, dst := range fields {
		b, err := r.ReadBit()
		if err != nil {
			return c, err
		}
		if dst != nil {
			*dst = b
		}
	}
	if err := r.Skip(4); err != nil {
		return c, err
	}
	return c, nil
}

// ConnectorStatus is the GET_CONNECTOR_STATUS response. UCSI Table 6-43.
type ConnectorStatus struct {
	ConnectorStatusChange ConnectorStatusChange
	PowerOperationMode    PowerOperationMode
	ConnectStatus         bool
	PowerDirection        PowerDirection
	// ConnectorPartnerFlags is the raw mode bitmap, valid only while
	// ConnectStatus is set.
	ConnectorPartnerFlags uint32
	ConnectorPartnerType  ConnectorPartnerType
	// NegotiatedPowerLevel is the request data object of the active
	// contract, valid only in PD power operation mode.
	NegotiatedPowerLevel            uint32
	BatteryChargingCapabilityStatus BatteryChargingCapabilityStatus
	ProviderCapabilitiesLimited     uint32
	PdVersionOperationMode          typec.BcdVersion
	Orientation                     ConnectorOrientation
	SinkPathStatus                  SinkPathStatus
	ReverseCurrentProtectionStatus  bool
	PowerReadingReady               bool
	ScaleCurrent                    uint32
	PeakCurrent                     uint32
	AverageCurrent                  uint32
	ScaleVoltage                    uint32
	VoltageReading                  uint32
}

// DecodeConnectorStatus consumes a GET_CONNECTOR_STATUS response from r.
func DecodeConnectorStatus(r *bitbuf.Reader) (ConnectorStatus, error) {
	var s ConnectorStatus
	var err error
	if s.ConnectorStatusChange, err = decodeConnectorStatusChange(r); err != nil {
		return s, err
	}
	pom, err := r.ReadBits(3)
	if err != nil {
		return s, err
	}
	s.PowerOperationMode = PowerOperationMode(pom)
	if s.ConnectStatus, err = r.ReadBit(); err != nil {
		return s, err
	}
	dir, err := r.ReadBits(1)
	if err != nil {
		return s, err
	}
	s.PowerDirection = PowerDirection(dir)
	if s.ConnectorPartnerFlags, err = r.ReadBits(8); err != nil {
		return s, err
	}
	pt, err := r.ReadBits(3)
	if err != nil {
		return s, err
	}
	s.ConnectorPartnerType = ConnectorPartnerType(pt)
	if s.NegotiatedPowerLevel, err = r.ReadBits(32); err != nil {
		return s, err
	}
	bcs, err := r.ReadBits(2)
	if err != nil {
		return s, err
	}
	s.BatteryChargingCapabilityStatus = BatteryChargingCapabilityStatus(bcs)
	if s.ProviderCapabilitiesLimited, err = r.ReadBits(4); err != nil {
		return s, err
	}
	if s.PdVersionOperationMode, err = readBcd(r); err != nil {
		return s, err
	}
	orient, err := r.ReadBits(1)
	if err != nil {
		return s, err
	}
	s.Orientation = ConnectorOrientation(orient)
	sink, err := r.ReadBits(1)
	if err != nil {
		return s, err
	}
	s.SinkPathStatus = SinkPathStatus(sink)
	if s.ReverseCurrentProtectionStatus, err = r.ReadBit(); err != nil {
		return s, err
	}
	if s.PowerReadingReady, err = r.ReadBit(); err != nil {
		return s, err
	}
	if s.ScaleCurrent, err = r.ReadBits(3); err != nil {
		return s, err
	}
	if s.PeakCurrent, err = r.ReadBits(16); err != nil {
		return s, err
	}
	if s.AverageCurrent, err = r.ReadBits(16); err != nil {
		return s, err
	}
	if s.ScaleVoltage, err = r.ReadBits(4); err != nil {
		return s, err
	}
	if s.VoltageReading, err = r.ReadBits(16); err != nil {
		return s, err
	}
	return s, nil
}
