package bitmaprle

import (
	"github.com/pkg/errors"
)

var (
	// ErrCorruptInput is returned by decode when the block stream ends in
	// the middle of a block that cannot be trailing padding.
	ErrCorruptInput = errors.New("bitmaprle: corrupt input")

	// ErrEndOfStream is returned by BitSource.ReadBit once the source is exhausted.
	ErrEndOfStream = errors.New("bitmaprle: end of stream")

	ErrInvalidFieldWidth = errors.New("bitmaprle: invalid field width")
	ErrUnknownFormat     = errors.New("bitmaprle: unknown format")
	ErrSinkClosed        = errors.New("bitmaprle: sink already closed")
)
