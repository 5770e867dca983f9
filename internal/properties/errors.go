package properties

import "errors"

// ErrInvalidKey is returned when a property key does not follow the
// upper-case environment variable naming convention.
var ErrInvalidKey = errors.New("invalid property key")
