package bitmaprle

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Dump prints the bits of r as '0'/'1', width per line, followed by the
// total bit count. With width <= 0 only the count is printed.
func Dump(w io.Writer, r io.Reader, width int) (uint64, error) {
	src := NewBitReader(r)
	out := bufio.NewWriter(w)

	for src.HasMore() {
		pos := src.BitsRead()
		bit, err := src.ReadBit()
		if err != nil {
			return pos, errors.WithStack(err)
		}
		if 0 < width {
			if 0 < pos && pos%uint64(width) == 0 {
				out.WriteByte('\n')
			}
			if bit {
				out.WriteByte('1')
			} else {
				out.WriteByte('0')
			}
		}
	}
	n := src.BitsRead()
	if err := src.Err(); err != nil {
		return n, err
	}
	if 0 < width && 0 < n {
		out.WriteByte('\n')
	}
	fmt.Fprintf(out, "%d bits\n", n)
	if err := out.Flush(); err != nil {
		return n, errors.WithStack(err)
	}
	return n, nil
}
