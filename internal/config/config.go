// Package config defines the CLI structure and configuration for lstypec.
package config

import (
	"github.com/usbctools/typec/internal/cmd"
)

type Log struct {
	Level string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"LSTYPEC_LOG_LEVEL"`
	File  string `help:"Log file path (default: none; logs only to console)" env:"LSTYPEC_LOG_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	Log `embed:"" prefix:"log."`

	Config  string `help:"Config file path" env:"LSTYPEC_CONFIG"`
	Vendors string `help:"Vendor name overlay file, TOML or YAML" env:"LSTYPEC_VENDORS"`

	List   cmd.List   `cmd:"" default:"withargs" help:"List Type-C port and port partner details"`
	Decode cmd.Decode `cmd:"" help:"Decode hex-encoded PD and UCSI payloads"`
}
