package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/octu0/bitmaprle"
	"github.com/pkg/errors"
)

const (
	envConfig = "BITMAPRLE_CONFIG"

	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("invalid usage")

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, "usage: %s [flags] MODE\n", fs.Name())
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "modes:")
	fmt.Fprintln(w, "  -              encode stdin to stdout")
	fmt.Fprintln(w, "  +              decode stdin to stdout")
	fmt.Fprintln(w, "  dump [width]   print the bits of stdin, width per line")
	fmt.Fprintln(w, "  stats          report how stdin encodes")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "flags:")
	fs.PrintDefaults()
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bitmaprle", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", os.Getenv(envConfig), "YAML config file (env "+envConfig+")")
	width := fs.Uint("width", 0, "block field width in bits (default 8)")
	format := fs.String("format", "", "block format: tagged or alternating (default tagged)")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	fs.Usage = func() { usage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(fs, *configPath, *width, *format)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", fs.Name(), err)
		return exitUsage
	}
	logger.Debug("config",
		"path", *configPath,
		"format", cfg.Format.String(),
		"field_width", cfg.FieldWidth,
	)

	if err := runMode(fs.Args(), cfg, logger, stdin, stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "%s: %v\n", fs.Name(), err)
			usage(stderr, fs)
			return exitUsage
		}
		logger.Error("failed", "err", err)
		if *verbose {
			fmt.Fprintf(stderr, "%+v\n", err)
		}
		return exitFailure
	}
	return exitOK
}

func loadConfig(fs *flag.FlagSet, path string, width uint, format string) (bitmaprle.Config, error) {
	cfg := bitmaprle.DefaultConfig()
	if path != "" {
		c, err := bitmaprle.LoadConfig(path)
		if err != nil {
			return bitmaprle.Config{}, err
		}
		cfg = c
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	if set["width"] {
		if uint(bitmaprle.MaxFieldWidth) < width {
			return bitmaprle.Config{}, errors.Wrapf(bitmaprle.ErrInvalidFieldWidth, "%d", width)
		}
		cfg.FieldWidth = uint8(width)
	}
	if set["format"] {
		f, err := bitmaprle.ParseFormat(format)
		if err != nil {
			return bitmaprle.Config{}, err
		}
		cfg.Format = f
	}
	if err := cfg.Validate(); err != nil {
		return bitmaprle.Config{}, err
	}
	return cfg, nil
}

func runMode(args []string, cfg bitmaprle.Config, logger *slog.Logger, stdin io.Reader, stdout io.Writer) error {
	if len(args) < 1 {
		return errors.Wrap(errUsage, "missing mode")
	}
	mode, rest := args[0], args[1:]

	switch mode {
	case "-", "+":
		if 0 < len(rest) {
			return errors.Wrapf(errUsage, "unexpected arguments: %v", rest)
		}
		c, err := bitmaprle.NewCodec(cfg, bitmaprle.WithLogger(logger))
		if err != nil {
			return err
		}
		cc := c.Config()
		logger.Debug("codec",
			"format", cc.Format.String(),
			"field_width", cc.FieldWidth,
			"length_bits", cc.LengthBits(),
			"max_run", cc.MaxRun(),
		)
		if mode == "-" {
			return c.Encode(stdout, stdin)
		}
		return c.Decode(stdout, stdin)

	case "dump":
		width := 0
		switch len(rest) {
		case 0:
		case 1:
			w, err := strconv.Atoi(rest[0])
			if err != nil {
				return errors.Wrapf(errUsage, "invalid dump width: %q", rest[0])
			}
			width = w
		default:
			return errors.Wrapf(errUsage, "unexpected arguments: %v", rest[1:])
		}
		_, err := bitmaprle.Dump(stdout, stdin, width)
		return err

	case "stats":
		if 0 < len(rest) {
			return errors.Wrapf(errUsage, "unexpected arguments: %v", rest)
		}
		s, err := bitmaprle.Analyze(cfg, stdin)
		if err != nil {
			return err
		}
		return printStats(stdout, s)
	}
	return errors.Wrapf(errUsage, "illegal command line argument: %q", mode)
}

func printStats(w io.Writer, s bitmaprle.Stats) error {
	_, err := fmt.Fprintf(w,
		"format=%s field_width=%d max_run=%d\n"+
			"input    %d bits\n"+
			"encoded  %d bits (%d bytes) %3.2f%%\n"+
			"blocks   %d x %d bits (empty=%d splits=%d)\n"+
			"byte-rle %d bytes\n",
		s.Config.Format, s.Config.FieldWidth, s.Config.MaxRun(),
		s.InputBits,
		s.EncodedBits, s.EncodedBytes, s.Ratio()*100,
		s.Blocks, s.BlockBits, s.EmptyBlocks, s.Splits,
		s.ByteRLEBytes,
	)
	return errors.WithStack(err)
}
