package bitmaprle

import (
	"log/slog"
)

type Option func(*Codec)

// WithLogger receives a debug record per encode/decode call.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Codec) {
		c.logger = logger
	}
}

// Codec encodes and decodes 1-bit bitmaps as run-length blocks. It holds
// no per-stream state and may be shared.
type Codec struct {
	cfg    Config
	maxRun uint64
	logger *slog.Logger
}

func (c *Codec) Config() Config {
	return c.cfg
}

func NewCodec(cfg Config, funcs ...Option) (*Codec, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Codec{
		cfg:    cfg,
		maxRun: cfg.MaxRun(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range funcs {
		fn(c)
	}
	return c, nil
}
