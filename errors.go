package bgremove

import (
	"errors"
	"fmt"
)

// ErrImagingUnavailable is returned by Probe when images cannot be decoded or encoded.
var ErrImagingUnavailable = errors.New("image support unavailable")

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindUnavailable    ErrorKind = "unavailable"
	KindNotFound       ErrorKind = "not_found"
	KindDecode         ErrorKind = "decode"
	KindEncode         ErrorKind = "encode"
	KindWrite          ErrorKind = "write"
	KindInvalidOptions ErrorKind = "invalid_options"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
