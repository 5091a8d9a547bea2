package tablestore

import "errors"

// Sentinel kinds for table storage errors.
var (
	ErrStorageFailure = errors.New("table append failed")
	ErrCellCount      = errors.New("row must have exactly 7 cells")
	ErrClosed         = errors.New("store is closed")
)
