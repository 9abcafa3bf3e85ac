// Package typec provides the shared scalar types and the error vocabulary
// for decoding USB Type-C / USB Power Delivery platform state.
//
// The data structures and field layouts are based on the USB Type-C
// Connector System Software Interface (UCSI) specification and the USB
// Power Delivery specification. The wire codecs themselves live in the
// ucsi, pd and vdo packages; the OS-facing backends live under backend.
package typec

import "fmt"

// BcdVersion is a binary-coded-decimal version number as carried by UCSI
// and PD structures: each nibble pair is a decimal digit, so the raw value
// 0x0310 denotes version "3.10".
type BcdVersion uint32

// Major returns the high decimal pair of the version.
func (v BcdVersion) Major() uint32 { return uint32(v>>8) & 0xff }

// Minor returns the low decimal pair of the version.
func (v BcdVersion) Minor() uint32 { return uint32(v) & 0xff }

// String renders the nibble pairs as decimal digits, never as plain hex:
// BcdVersion(0x0310) renders as "3.10", BcdVersion(0x0120) as "1.20".
func (v BcdVersion) String() string {
	return fmt.Sprintf("%x.%02x", v.Major(), v.Minor())
}

// Millivolt is a voltage in millivolts. Wire formats encode voltages in
// coarser steps (typically 50 mV or 100 mV units); decoders convert to
// absolute millivolts at read time, so a stored value is always mV.
type Millivolt uint32

func (v Millivolt) String() string { return fmt.Sprintf("%dmV", uint32(v)) }

// Milliamp is a current in milliamps (wire units are typically 10 mA or
// 50 mA steps, converted at read time).
type Milliamp uint32

func (a Milliamp) String() string { return fmt.Sprintf("%dmA", uint32(a)) }

// Milliwatt is a power in milliwatts (wire unit is typically 250 mW steps,
// converted at read time).
type Milliwatt uint32

func (w Milliwatt) String() string { return fmt.Sprintf("%dmW", uint32(w)) }

// MilliOhm is an impedance in milliohms.
type MilliOhm uint32

func (o MilliOhm) String() string { return fmt.Sprintf("%dmOhm", uint32(o)) }
