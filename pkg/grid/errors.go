package grid

import "errors"

// ErrUnsupportedGeometry is returned when an operation receives a map of
// a rank it does not handle.
var ErrUnsupportedGeometry = errors.New("unsupported map geometry")
