package bitmaprle

import (
	"github.com/pkg/errors"
)

// trailing bits shorter than a byte may be padding added by BitSink.Close
const maxPaddingBits = 8

type blockWriter struct {
	sink    BitSink
	format  Format
	lenBits uint8
	expect  bool
	blocks  uint64
	empty   uint64
}

func (w *blockWriter) writeBlock(b Block) error {
	if w.format == FormatAlternating {
		return w.writeAlternating(b)
	}
	if err := w.sink.WriteBit(b.Value); err != nil {
		return errors.Wrapf(err, "failed to write block tag: %s", b)
	}
	if err := w.sink.WriteBits(b.Length, w.lenBits); err != nil {
		return errors.Wrapf(err, "failed to write block length: %s", b)
	}
	w.blocks += 1
	return nil
}

func (w *blockWriter) writeAlternating(b Block) error {
	if b.Value != w.expect {
		if err := w.sink.WriteBits(0, w.lenBits); err != nil {
			return errors.Wrapf(err, "failed to write empty block before %s", b)
		}
		w.expect = !w.expect
		w.blocks += 1
		w.empty += 1
	}
	if err := w.sink.WriteBits(b.Length, w.lenBits); err != nil {
		return errors.Wrapf(err, "failed to write block length: %s", b)
	}
	w.expect = !w.expect
	w.blocks += 1
	return nil
}

func newBlockWriter(sink BitSink, cfg Config) *blockWriter {
	return &blockWriter{
		sink:    sink,
		format:  cfg.Format,
		lenBits: cfg.LengthBits(),
	}
}

// BlockReader scans blocks from a BitSource.
//
//	br, _ := NewBlockReader(src, cfg)
//	for br.Next() {
//		b := br.Block()
//	}
//	if err := br.Err(); err != nil { ... }
type BlockReader struct {
	src     BitSource
	format  Format
	lenBits uint8
	expect  bool
	block   Block
	blocks  uint64
	padding int
	done    bool
	err     error
}

func (r *BlockReader) Next() bool {
	if r.done {
		return false
	}
	if r.src.HasMore() != true {
		r.finish(r.src.Err())
		return false
	}

	consumed, nonzero := 0, false
	value := r.expect
	if r.format == FormatTagged {
		tag, err := r.readField(1, &consumed, &nonzero)
		if err != nil {
			r.finish(r.truncated(err, consumed, nonzero))
			return false
		}
		value = tag == 1
	}
	length, err := r.readField(r.lenBits, &consumed, &nonzero)
	if err != nil {
		r.finish(r.truncated(err, consumed, nonzero))
		return false
	}
	if r.format == FormatAlternating {
		r.expect = !r.expect
	}

	r.block = Block{Value: value, Length: length}
	r.blocks += 1
	return true
}

func (r *BlockReader) readField(n uint8, consumed *int, nonzero *bool) (uint64, error) {
	v := uint64(0)
	for i := uint8(0); i < n; i += 1 {
		bit, err := r.src.ReadBit()
		if err != nil {
			return 0, err
		}
		*consumed += 1
		v <<= 1
		if bit {
			v |= 1
			*nonzero = true
		}
	}
	return v, nil
}

func (r *BlockReader) truncated(err error, consumed int, nonzero bool) error {
	if errors.Is(err, ErrEndOfStream) != true {
		return err
	}
	if nonzero != true && consumed < maxPaddingBits {
		r.padding = consumed
		return nil
	}
	return errors.Wrapf(ErrCorruptInput, "stream ends %d bits into block #%d", consumed, r.blocks)
}

func (r *BlockReader) finish(err error) {
	r.done = true
	r.err = err
}

// Block returns the block read by the last successful Next.
func (r *BlockReader) Block() Block {
	return r.block
}

func (r *BlockReader) Err() error {
	return r.err
}

// Blocks is the number of blocks read so far.
func (r *BlockReader) Blocks() uint64 {
	return r.blocks
}

// Padding is the number of trailing zero bits skipped at end of stream.
func (r *BlockReader) Padding() int {
	return r.padding
}

func NewBlockReader(src BitSource, cfg Config) (*BlockReader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newBlockReader(src, cfg), nil
}

func newBlockReader(src BitSource, cfg Config) *BlockReader {
	return &BlockReader{
		src:     src,
		format:  cfg.Format,
		lenBits: cfg.LengthBits(),
	}
}
