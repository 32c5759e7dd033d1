package bitmaprle

import (
	"io"

	"github.com/pkg/errors"
)

// Encode reads a bitmap from src and writes its blocks to dst, padded to
// a whole byte.
func (c *Codec) Encode(dst io.Writer, src io.Reader) error {
	return c.EncodeBits(NewBitWriter(dst), NewBitReader(src))
}

// EncodeBits consumes src and writes one block per run. Runs longer than
// MaxRun continue in further blocks with the same value. sink is closed
// on every return path.
func (c *Codec) EncodeBits(sink BitSink, src BitSource) (err error) {
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close encode sink")
		}
	}()

	bw := newBlockWriter(sink, c.cfg)
	bits, splits, err := c.encodeRuns(bw, src)
	if err != nil {
		return err
	}
	c.logger.Debug("encoded",
		"format", c.cfg.Format.String(),
		"field_width", c.cfg.FieldWidth,
		"bits", bits,
		"blocks", bw.blocks,
		"empty", bw.empty,
		"splits", splits,
	)
	return nil
}

func (c *Codec) encodeRuns(bw *blockWriter, src BitSource) (uint64, uint64, error) {
	if src.HasMore() != true {
		return 0, 0, errors.WithStack(src.Err())
	}
	currentVal, err := src.ReadBit()
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	currentLen := uint64(1)
	bits, splits := uint64(1), uint64(0)

	for src.HasMore() {
		v, err := src.ReadBit()
		if err != nil {
			return bits, splits, errors.WithStack(err)
		}
		bits += 1

		switch {
		case v == currentVal && currentLen < c.maxRun:
			currentLen += 1
		case v == currentVal:
			if err := bw.writeBlock(Block{Value: currentVal, Length: currentLen}); err != nil {
				return bits, splits, err
			}
			splits += 1
			currentLen = 1
		default:
			if err := bw.writeBlock(Block{Value: currentVal, Length: currentLen}); err != nil {
				return bits, splits, err
			}
			currentVal = v
			currentLen = 1
		}
	}
	if err := src.Err(); err != nil {
		return bits, splits, errors.WithStack(err)
	}
	if err := bw.writeBlock(Block{Value: currentVal, Length: currentLen}); err != nil {
		return bits, splits, err
	}
	return bits, splits, nil
}
