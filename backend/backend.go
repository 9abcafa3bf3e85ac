// Package backend defines the OS-facing interface for querying platform
// USB Type-C state and selects a concrete implementation at runtime.
package backend

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/usbctools/typec"
	"github.com/usbctools/typec/pd"
	"github.com/usbctools/typec/ucsi"
	"github.com/usbctools/typec/vdo"
)

// Backend answers UCSI-shaped queries about the platform's Type-C
// connectors. Connector numbers are zero-based. Operations the platform
// cannot answer return typec.ErrNotSupported; callers skip those rather
// than fail.
type Backend interface {
	Capabilities() (ucsi.Capability, error)
	ConnectorCapabilities(connectorNr int) (ucsi.ConnectorCapability, error)
	AlternateModes(recipient ucsi.AlternateModeRecipient, connectorNr int) ([]ucsi.AlternateMode, error)
	CableProperty(connectorNr int) (ucsi.CableProperty, error)
	ConnectorStatus(connectorNr int) (ucsi.ConnectorStatus, error)
	Pdos(req PdoRequest) ([]pd.PDO, error)
	PdMessage(connectorNr int, recipient ucsi.PdMessageRecipient, responseType ucsi.PdMessageResponseType) (pd.Message, error)
}

// PdoRequest selects which PDOs Backend.Pdos retrieves, mirroring the
// GET_PDOS command parameters.
type PdoRequest struct {
	ConnectorNr int
	PartnerPdo  bool
	PdoOffset   int
	NrPdos      int
	PdoType     ucsi.PdoType
	SourceCaps  ucsi.SourceCapabilitiesType
	Revision    typec.BcdVersion
}

// Opener probes for one backend flavor. It returns typec.ErrNotSupported
// when the platform does not expose the interface the flavor needs.
type Opener func(log *slog.Logger, db vdo.VendorDB) (Backend, error)

type flavor struct {
	name string
	open Opener
}

var openers []flavor

// Register adds a named backend flavor to the probe order. Called from
// the init functions of the concrete backend packages.
func Register(name string, o Opener) {
	openers = append(openers, flavor{name: name, open: o})
}

// Open probes the registered backends in registration order and returns
// the first one the platform supports. A non-empty name bypasses probing
// and opens that flavor alone.
func Open(name string, log *slog.Logger, db vdo.VendorDB) (Backend, error) {
	if name != "" {
		for _, f := range openers {
			if f.name == name {
				return f.open(log, db)
			}
		}
		return nil, fmt.Errorf("backend: unknown backend %q", name)
	}
	for _, f := range openers {
		b, err := f.open(log, db)
		if err == nil {
			log.Debug("opened backend", "backend", f.name)
			return b, nil
		}
		if !errors.Is(err, typec.ErrNotSupported) {
			return nil, err
		}
		log.Debug("backend not supported", "backend", f.name)
	}
	return nil, typec.ErrNotSupported
}
