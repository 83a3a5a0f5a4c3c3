package identifier

import "errors"

// ErrInvalidFormat is returned when an external identifier string does not
// match the expected usr_ + 8-4-4-4-12 lowercase hexadecimal layout.
var ErrInvalidFormat = errors.New("invalid identifier format")
