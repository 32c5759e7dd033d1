package bitmaprle

import (
	"fmt"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Block is one encoded unit: Length copies of Value.
type Block struct {
	Value  bool
	Length uint64
}

func (b Block) String() string {
	v := 0
	if b.Value {
		v = 1
	}
	return fmt.Sprintf("(%d,%d)", v, b.Length)
}

// Format selects the block wire layout.
type Format uint8

const (
	// FormatTagged prefixes every block with its 1-bit value.
	FormatTagged Format = iota
	// FormatAlternating stores lengths only; values alternate starting at 0
	// and a zero-length block resynchronizes polarity.
	FormatAlternating
)

func (f Format) String() string {
	switch f {
	case FormatTagged:
		return "tagged"
	case FormatAlternating:
		return "alternating"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

func ParseFormat(s string) (Format, error) {
	switch s {
	case "tagged", "explicit":
		return FormatTagged, nil
	case "alternating", "implicit":
		return FormatAlternating, nil
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%q", s)
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f *Format) UnmarshalYAML(node *yaml.Node) error {
	s := ""
	if err := node.Decode(&s); err != nil {
		return errors.WithStack(err)
	}
	return f.UnmarshalText([]byte(s))
}
