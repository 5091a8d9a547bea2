package record

import "errors"

// Sentinel kinds for record parsing errors.
var (
	ErrMalformedInput = errors.New("malformed input")
)
