package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/backend"
	"github.com/usbctools/typec/ucsi"
	"github.com/usbctools/typec/vdo"
)

// List walks the platform the way the PPM exposes it: global
// capabilities, then per connector the capability, status, PDOs, cable,
// alternate modes and discover identity responses.
type List struct {
	Backend string `help:"Backend to use: sysfs or ucsi (default: probe)" enum:"auto,sysfs,ucsi" default:"auto" env:"LSTYPEC_BACKEND"`
}

// Run is called by Kong when the list command is executed.
func (c *List) Run(logger *slog.Logger, db vdo.VendorDB) error {
	name := c.Backend
	if name == "auto" {
		name = ""
	}
	b, err := backend.Open(name, logger, db)
	if err != nil {
		return fmt.Errorf("no usable backend: %w", err)
	}
	return c.list(newPrinter(os.Stdout), b)
}

func (c *List) list(p *printer, b backend.Backend) error {
	caps, err := b.Capabilities()
	if err != nil {
		return fmt.Errorf("get capabilities: %w", err)
	}
	p.section("USB-C Platform Policy Manager Capability")
	p.value(caps)

	for nr := range int(caps.NumConnectors) {
		if err := c.listConnector(p, b, nr, caps.PdVersion); err != nil {
			return err
		}
	}
	return nil
}

func (c *List) listConnector(p *printer, b backend.Backend, nr int, pdVersion typec.BcdVersion) error {
	connCaps, err := b.ConnectorCapabilities(nr)
	if err != nil {
		return fmt.Errorf("connector %d capabilities: %w", nr, err)
	}
	p.section("Connector %d Capability", nr)
	p.value(connCaps)

	status, err := b.ConnectorStatus(nr)
	switch {
	case err == nil:
		p.section("Connector %d Status", nr)
		p.value(status)
	case !errors.Is(err, typec.ErrNotSupported):
		return fmt.Errorf("connector %d status: %w", nr, err)
	}

	for _, pdos := range []struct {
		title string
		kind  ucsi.PdoType
	}{
		{title: "Connector %d Source PDOs", kind: ucsi.PdoSource},
		{title: "Connector %d Sink PDOs", kind: ucsi.PdoSink},
	} {
		objs, err := b.Pdos(backend.PdoRequest{
			ConnectorNr: nr,
			PdoType:     pdos.kind,
			SourceCaps:  ucsi.CurrentSupportedSourceCapabilities,
			Revision:    pdVersion,
		})
		if err != nil {
			return fmt.Errorf("connector %d PDOs: %w", nr, err)
		}
		p.section(pdos.title, nr)
		p.value(objs)
	}

	cable, err := b.CableProperty(nr)
	switch {
	case err == nil:
		p.section("Connector %d Cable Properties", nr)
		p.value(cable)
	case errors.Is(err, typec.ErrNotSupported):
		p.note("No cable identified for connector %d", nr)
		p.blank()
	default:
		return fmt.Errorf("connector %d cable properties: %w", nr, err)
	}

	for _, am := range []struct {
		title     string
		recipient ucsi.AlternateModeRecipient
	}{
		{title: "Connector %d Alternate Modes", recipient: ucsi.RecipientConnector},
		{title: "Connector %d SOP' Alternate Modes", recipient: ucsi.RecipientSopPrime},
		{title: "Connector %d SOP Alternate Modes", recipient: ucsi.RecipientSop},
	} {
		modes, err := b.AlternateModes(am.recipient, nr)
		if err != nil && !errors.Is(err, typec.ErrNotSupported) {
			return fmt.Errorf("connector %d alternate modes: %w", nr, err)
		}
		p.section(am.title, nr)
		p.value(modes)
	}

	for _, id := range []struct {
		title     string
		recipient ucsi.PdMessageRecipient
	}{
		{title: "Connector %d SOP Discover Identity", recipient: ucsi.PdRecipientSop},
		{title: "Connector %d SOP' Discover Identity", recipient: ucsi.PdRecipientSopPrime},
	} {
		msg, err := b.PdMessage(nr, id.recipient, ucsi.PdResponseDiscoverIdentity)
		switch {
		case err == nil:
			p.section(id.title, nr)
			p.value(msg)
		case !errors.Is(err, typec.ErrNotSupported):
			return fmt.Errorf("connector %d discover identity: %w", nr, err)
		}
	}

	for _, pdos := range []struct {
		title string
		kind  ucsi.PdoType
	}{
		{title: "Connector %d Partner Source PDOs", kind: ucsi.PdoSource},
		{title: "Connector %d Partner Sink PDOs", kind: ucsi.PdoSink},
	} {
		objs, err := b.Pdos(backend.PdoRequest{
			ConnectorNr: nr,
			PartnerPdo:  true,
			PdoType:     pdos.kind,
			SourceCaps:  ucsi.CurrentSupportedSourceCapabilities,
			Revision:    pdVersion,
		})
		switch {
		case err == nil:
			p.section(pdos.title, nr)
			p.value(objs)
		case !errors.Is(err, typec.ErrNotSupported):
			return fmt.Errorf("connector %d partner PDOs: %w", nr, err)
		}
	}
	return nil
}
