package bitmaprle

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// BitSource is a finite, non-restartable sequence of bits.
type BitSource interface {
	HasMore() bool
	// ReadBit returns ErrEndOfStream when called on an exhausted source.
	ReadBit() (bool, error)
	// Err returns the first failure other than end of stream that made
	// HasMore report false.
	Err() error
}

// BitSink accepts bits and pads the final partial byte with zeros on Close.
// Close must be called exactly once.
type BitSink interface {
	WriteBit(bit bool) error
	// WriteBits writes the low n bits of v, most significant first.
	WriteBits(v uint64, n uint8) error
	Close() error
}

var (
	_ BitSource = (*BitReader)(nil)
	_ BitSink   = (*BitWriter)(nil)
)

// BitReader reads bits MSB first within each byte.
type BitReader struct {
	r     *bitio.Reader
	next  bool
	ahead bool
	err   error
	read  uint64
}

func (r *BitReader) HasMore() bool {
	if r.ahead {
		return true
	}
	if r.err != nil {
		return false
	}
	bit, err := r.r.ReadBool()
	if err != nil {
		r.err = err
		return false
	}
	r.next = bit
	r.ahead = true
	return true
}

func (r *BitReader) ReadBit() (bool, error) {
	if r.HasMore() != true {
		if err := r.Err(); err != nil {
			return false, err
		}
		return false, errors.WithStack(ErrEndOfStream)
	}
	r.ahead = false
	r.read += 1
	return r.next, nil
}

func (r *BitReader) Err() error {
	if r.err == nil || errors.Is(r.err, io.EOF) {
		return nil
	}
	return errors.WithStack(r.err)
}

// BitsRead is the number of bits handed out by ReadBit so far.
func (r *BitReader) BitsRead() uint64 {
	return r.read
}

func NewBitReader(in io.Reader) *BitReader {
	return &BitReader{r: bitio.NewReader(in)}
}

// BitWriter writes bits MSB first within each byte.
type BitWriter struct {
	w       *bitio.Writer
	closed  bool
	written uint64
}

func (w *BitWriter) WriteBit(bit bool) error {
	if w.closed {
		return errors.WithStack(ErrSinkClosed)
	}
	if err := w.w.WriteBool(bit); err != nil {
		return errors.WithStack(err)
	}
	w.written += 1
	return nil
}

func (w *BitWriter) WriteBits(v uint64, n uint8) error {
	if w.closed {
		return errors.WithStack(ErrSinkClosed)
	}
	if n == 0 {
		return nil
	}
	if 64 < n {
		return errors.Errorf("bit count out of range: %d", n)
	}
	if n < 64 {
		v &= (uint64(1) << n) - 1
	}
	if err := w.w.WriteBits(v, n); err != nil {
		return errors.WithStack(err)
	}
	w.written += uint64(n)
	return nil
}

// Close pads to a byte boundary and flushes. It does not close the
// underlying io.Writer.
func (w *BitWriter) Close() error {
	if w.closed {
		return errors.WithStack(ErrSinkClosed)
	}
	w.closed = true
	if err := w.w.Close(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// BitsWritten excludes the padding added by Close.
func (w *BitWriter) BitsWritten() uint64 {
	return w.written
}

func NewBitWriter(out io.Writer) *BitWriter {
	return &BitWriter{w: bitio.NewWriter(out)}
}
