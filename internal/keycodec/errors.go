package keycodec

import "errors"

var (
	// ErrShortKey indicates a composite key shorter than the 12-byte prefix.
	ErrShortKey = errors.New("keycodec: key shorter than composite prefix")

	// ErrKeyLength indicates a composite key shorter than its declared user-key length.
	ErrKeyLength = errors.New("keycodec: key shorter than declared user-key length")

	// ErrShortID indicates a registry key shorter than the 4-byte scope id.
	ErrShortID = errors.New("keycodec: registry key shorter than scope id")
)
