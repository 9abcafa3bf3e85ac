package typec

import (
	"errors"
	"fmt"
)

// ErrNotSupported reports an operation that is valid in the protocol but
// not available in the current context (no cable present, backend without
// the capability, and so on). Callers treat it as an informational skip,
// not as decode corruption.
var ErrNotSupported = errors.New("typec: operation not supported")

// ErrTimeout is reserved for transport layers waiting on a platform
// response. The codecs never raise it.
var ErrTimeout = errors.New("typec: timed out waiting for a response")

// FieldError reports a wire integer that does not map to any member of the
// closed enumeration a field is defined over. It carries enough context to
// reproduce the failure without re-running the decoder.
type FieldError struct {
	Field string
	Value uint32
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("typec: cannot parse field %q with value %d", e.Field, e.Value)
}

// StringFieldError is the text-attribute counterpart of FieldError, raised
// when a sysfs attribute holds a string no parser rule matches.
type StringFieldError struct {
	Field string
	Value string
}

func (e *StringFieldError) Error() string {
	return fmt.Sprintf("typec: cannot parse field %q with value %q", e.Field, e.Value)
}

// UnsupportedRevisionError reports a structure whose decode path is not
// defined for the given protocol revision. It is raised before any of the
// structure's fields are consumed from the bitstream.
type UnsupportedRevisionError struct {
	Revision BcdVersion
}

func (e *UnsupportedRevisionError) Error() string {
	return fmt.Sprintf("typec: USB revision %s is not supported", e.Revision)
}
