package bitmaprle

import (
	"bytes"
	"testing"
)

type sliceSource struct {
	bits []bool
	pos  int
}

func (s *sliceSource) HasMore() bool {
	return s.pos < len(s.bits)
}

func (s *sliceSource) ReadBit() (bool, error) {
	if s.HasMore() != true {
		return false, ErrEndOfStream
	}
	b := s.bits[s.pos]
	s.pos += 1
	return b, nil
}

func (s *sliceSource) Err() error {
	return nil
}

type recordSink struct {
	bits   []bool
	closed int
}

func (s *recordSink) WriteBit(bit bool) error {
	s.bits = append(s.bits, bit)
	return nil
}

func (s *recordSink) WriteBits(v uint64, n uint8) error {
	for i := int(n) - 1; 0 <= i; i -= 1 {
		s.bits = append(s.bits, (v>>uint(i))&1 == 1)
	}
	return nil
}

func (s *recordSink) Close() error {
	s.closed += 1
	return nil
}

func repeat(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func concat(parts ...[]bool) []bool {
	out := make([]bool, 0)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// packBits packs MSB first and zero pads the last byte.
func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << (7 - uint(i%8))
		}
	}
	return out
}

func encodeBits(t *testing.T, cfg Config, bits []bool) []byte {
	t.Helper()
	c, err := NewCodec(cfg)
	if err != nil {
		t.Fatalf("NewCodec failed: %+v", err)
	}
	buf := bytes.NewBuffer(nil)
	if err := c.EncodeBits(NewBitWriter(buf), &sliceSource{bits: bits}); err != nil {
		t.Fatalf("EncodeBits failed: %+v", err)
	}
	return buf.Bytes()
}

func decodeBits(t *testing.T, cfg Config, data []byte) []bool {
	t.Helper()
	c, err := NewCodec(cfg)
	if err != nil {
		t.Fatalf("NewCodec failed: %+v", err)
	}
	sink := &recordSink{}
	if err := c.DecodeBits(sink, NewBitReader(bytes.NewReader(data))); err != nil {
		t.Fatalf("DecodeBits failed: %+v", err)
	}
	if sink.closed != 1 {
		t.Fatalf("sink closed %d times", sink.closed)
	}
	return sink.bits
}

func readBlocks(t *testing.T, cfg Config, data []byte) []Block {
	t.Helper()
	br, err := NewBlockReader(NewBitReader(bytes.NewReader(data)), cfg)
	if err != nil {
		t.Fatalf("NewBlockReader failed: %+v", err)
	}
	blocks := make([]Block, 0)
	for br.Next() {
		blocks = append(blocks, br.Block())
	}
	if err := br.Err(); err != nil {
		t.Fatalf("BlockReader failed: %+v", err)
	}
	return blocks
}

func tagged(w uint8) Config {
	return Config{FieldWidth: w, Format: FormatTagged}
}

func alternating(w uint8) Config {
	return Config{FieldWidth: w, Format: FormatAlternating}
}
