package bitmaprle

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// Decode reads blocks from src and writes the expanded bitmap to dst.
// The output is padded to a whole byte.
func (c *Codec) Decode(dst io.Writer, src io.Reader) error {
	return c.DecodeBits(NewBitWriter(dst), NewBitReader(src))
}

// DecodeBits expands every block of src into sink. Adjacent blocks with
// the same value concatenate into one longer run. sink is closed on every
// return path.
func (c *Codec) DecodeBits(sink BitSink, src BitSource) (err error) {
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close decode sink")
		}
	}()

	br := newBlockReader(src, c.cfg)
	bits := uint64(0)
	for br.Next() {
		b := br.Block()
		if err := writeRun(sink, b.Value, b.Length); err != nil {
			return errors.Wrapf(err, "failed to expand block #%d %s", br.Blocks(), b)
		}
		bits += b.Length
	}
	if err := br.Err(); err != nil {
		return err
	}
	c.logger.Debug("decoded",
		"format", c.cfg.Format.String(),
		"field_width", c.cfg.FieldWidth,
		"bits", bits,
		"blocks", br.Blocks(),
		"padding", br.Padding(),
	)
	return nil
}

func writeRun(sink BitSink, value bool, n uint64) error {
	fill := uint64(0)
	if value {
		fill = math.MaxUint64
	}
	for ; 64 <= n; n -= 64 {
		if err := sink.WriteBits(fill, 64); err != nil {
			return err
		}
	}
	if 0 < n {
		return sink.WriteBits(fill, uint8(n))
	}
	return nil
}
