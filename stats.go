package bitmaprle

import (
	"bytes"
	"io"

	"github.com/octu0/runlength"
	"github.com/pkg/errors"
)

// Stats describes how a bitmap encodes under one Config.
type Stats struct {
	Config    Config
	InputBits uint64
	Blocks    uint64
	// BlockBits is the serialized size of every block.
	BlockBits uint64
	// EmptyBlocks are zero-length blocks inserted to keep alternation.
	EmptyBlocks uint64
	// Splits counts runs that overflowed MaxRun and continued in another block.
	Splits       uint64
	EncodedBits  uint64
	EncodedBytes int
	// ByteRLEBytes is the size of the same input under byte-wise RLE.
	ByteRLEBytes int
}

// Ratio is encoded size over input size in bits, 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.InputBits == 0 {
		return 0
	}
	return float64(s.EncodedBits) / float64(s.InputBits)
}

// Analyze encodes all of r with cfg and reports the result next to a
// byte-wise run-length baseline.
func Analyze(cfg Config, r io.Reader) (Stats, error) {
	c, err := NewCodec(cfg)
	if err != nil {
		return Stats{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Stats{}, errors.WithStack(err)
	}

	enc := bytes.NewBuffer(nil)
	sink := NewBitWriter(enc)
	bw := newBlockWriter(sink, cfg)
	bits, splits, err := c.encodeRuns(bw, NewBitReader(bytes.NewReader(data)))
	if err != nil {
		sink.Close()
		return Stats{}, err
	}
	encodedBits := sink.BitsWritten()
	if err := sink.Close(); err != nil {
		return Stats{}, err
	}

	baseline, err := byteRLESize(data)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Config:       cfg,
		InputBits:    bits,
		Blocks:       bw.blocks,
		BlockBits:    cfg.BlockBits(),
		EmptyBlocks:  bw.empty,
		Splits:       splits,
		EncodedBits:  encodedBits,
		EncodedBytes: enc.Len(),
		ByteRLEBytes: baseline,
	}, nil
}

func byteRLESize(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	buf := bytes.NewBuffer(nil)
	if err := runlength.NewEncoder(buf).Encode(data); err != nil {
		return 0, errors.Wrapf(err, "failed to byte RLE encode: len=%d", len(data))
	}
	return buf.Len(), nil
}
