package sysfs

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/ucsi"
)

// parseBcd parses a sysfs revision attribute such as "3.0\n" into a BCD
// version. The attribute carries one digit, a separator, and optionally a
// second digit; some kernels report just "2\n", which reads as 2.0.
func parseBcd(content string) (typec.BcdVersion, error) {
	runes := []rune(content)
	if len(runes) < 2 {
		return 0, &typec.StringFieldError{Field: "revision", Value: content}
	}
	high := runes[0]
	low := '0'
	if len(runes) > 2 {
		low = runes[2]
	}
	if !unicode.IsDigit(high) || !unicode.IsDigit(low) {
		return 0, &typec.StringFieldError{Field: "revision", Value: content}
	}
	return typec.BcdVersion(uint32(high-'0')<<8 | uint32(low-'0')), nil
}

// parsePdRevision parses a "major.minor" revision attribute into the
// packed nibble form the connector capability structure carries.
func parsePdRevision(content string) (uint8, error) {
	runes := []rune(content)
	if len(runes) < 3 {
		return 0, &typec.StringFieldError{Field: "pd_revision", Value: content}
	}
	if !unicode.IsDigit(runes[0]) || !unicode.IsDigit(runes[2]) {
		return 0, &typec.StringFieldError{Field: "pd_revision", Value: content}
	}
	return uint8(runes[0]-'0')<<4 | uint8(runes[2]-'0'), nil
}

// parsePowerRole maps a power_role attribute to an operation mode. The
// attribute lists the supported roles with the active one in brackets,
// e.g. "[source] sink".
func parsePowerRole(content string) ucsi.OperationMode {
	if strings.Contains(content, "source") {
		if strings.Contains(content, "sink") {
			return ucsi.OperationModeDrp
		}
		return ucsi.OperationModeRpOnly
	}
	return ucsi.OperationModeRdOnly
}

func parseHexU32(content string) (uint32, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(content, "0x", ""))
	v, err := strconv.ParseUint(cleaned, 16, 32)
	if err != nil {
		return 0, &typec.StringFieldError{Field: "hex_value", Value: content}
	}
	return uint32(v), nil
}

// parseU32 parses a decimal attribute, ignoring a unit suffix such as
// "5000mV".
func parseU32(content string) (uint32, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, content)
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, &typec.StringFieldError{Field: "numeric_value", Value: content}
	}
	return uint32(v), nil
}

func parseBool(content string) (bool, error) {
	switch strings.TrimSpace(content) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, &typec.StringFieldError{Field: "bool_value", Value: content}
}

func parsePlugType(content string) ucsi.PlugEndType {
	switch {
	case strings.Contains(content, "type-c"):
		return ucsi.PlugEndTypeC
	case strings.Contains(content, "type-a"):
		return ucsi.PlugEndTypeA
	case strings.Contains(content, "type-b"):
		return ucsi.PlugEndTypeB
	default:
		return ucsi.PlugEndOtherNotUsb
	}
}

func parseCableType(content string) (ucsi.CableType, error) {
	switch {
	case strings.Contains(content, "active"):
		return ucsi.CableActive, nil
	case strings.Contains(content, "passive"):
		return ucsi.CablePassive, nil
	}
	return 0, &typec.StringFieldError{Field: "cable_type", Value: content}
}

// parseModeSupport interprets a number_of_alternate_modes attribute as a
// support flag.
func parseModeSupport(content string) (bool, error) {
	if content == "" {
		return false, &typec.StringFieldError{Field: "cable_mode_support", Value: content}
	}
	return content[0] != '0', nil
}
