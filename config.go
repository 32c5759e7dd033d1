package bitmaprle

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFieldWidth uint8 = 8
	MaxFieldWidth     uint8 = 64
)

// Config is shared out of band by both ends of a stream; the encoded
// form records neither value.
type Config struct {
	// FieldWidth is the block width W. Tagged blocks spend 1 bit on the
	// value and W-1 bits on the length, alternating blocks spend all W
	// bits on the length.
	FieldWidth uint8  `yaml:"field_width"`
	Format     Format `yaml:"format"`
}

func DefaultConfig() Config {
	return Config{
		FieldWidth: DefaultFieldWidth,
		Format:     FormatTagged,
	}
}

func (c Config) Validate() error {
	switch c.Format {
	case FormatTagged:
		if c.FieldWidth < 2 || MaxFieldWidth < c.FieldWidth {
			return errors.Wrapf(ErrInvalidFieldWidth, "tagged format requires 2..%d: %d", MaxFieldWidth, c.FieldWidth)
		}
	case FormatAlternating:
		if c.FieldWidth < 1 || MaxFieldWidth < c.FieldWidth {
			return errors.Wrapf(ErrInvalidFieldWidth, "alternating format requires 1..%d: %d", MaxFieldWidth, c.FieldWidth)
		}
	default:
		return errors.Wrapf(ErrUnknownFormat, "%s", c.Format)
	}
	return nil
}

// LengthBits is the width of the length field of one block.
func (c Config) LengthBits() uint8 {
	if c.Format == FormatTagged {
		return c.FieldWidth - 1
	}
	return c.FieldWidth
}

// BlockBits is the serialized size of one block.
func (c Config) BlockBits() uint64 {
	return uint64(c.FieldWidth)
}

// MaxRun is the longest run a single block can hold.
func (c Config) MaxRun() uint64 {
	n := c.LengthBits()
	if 64 <= n {
		return math.MaxUint64
	}
	return (uint64(1) << n) - 1
}

// ParseConfig reads YAML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "invalid config YAML")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "cannot read config %s", path)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}
