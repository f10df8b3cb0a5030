// Package hexdump turns byte buffers into fixed-width hex/ASCII rows and a
// run-compressed text rendering of them.
package hexdump

import (
	"bytes"

	"github.com/ZacharyZcR/pedump/internal/hexfmt"
)

// RowWidth is the default number of bytes per row.
const RowWidth = 16

// Row is one display line of a dump. Bytes aliases the source buffer.
type Row struct {
	Offset uint64
	Bytes  []byte
}

// Dump is an ordered sequence of rows.
type Dump []Row

// Chunk splits buf into rows of width bytes, the first starting at base.
// A width below 1 falls back to RowWidth. The final row may be short.
func Chunk(buf []byte, width int, base uint64) Dump {
	if width < 1 {
		width = RowWidth
	}
	if len(buf) == 0 {
		return Dump{}
	}

	dump := make(Dump, 0, (len(buf)+width-1)/width)
	for start := 0; start < len(buf); start += width {
		end := min(start+width, len(buf))
		dump = append(dump, Row{
			Offset: base + uint64(start),
			Bytes:  buf[start:end:end],
		})
	}
	return dump
}

// Hex returns the row bytes as space separated uppercase hex pairs.
func (r Row) Hex() string {
	return hexfmt.EncodeSpaced(r.Bytes)
}

// ASCII returns the printable rendering of the row, with '.' for every byte
// that is not a graphic ASCII character.
func (r Row) ASCII() string {
	out := make([]byte, len(r.Bytes))
	for i, b := range r.Bytes {
		out[i] = printable(b)
	}
	return string(out)
}

// Equal reports whether both rows carry the same bytes. Offsets are ignored.
func (r Row) Equal(other Row) bool {
	return bytes.Equal(r.Bytes, other.Bytes)
}

// Bytes concatenates the bytes of every row.
func (d Dump) Bytes() []byte {
	var n int
	for _, r := range d {
		n += len(r.Bytes)
	}
	out := make([]byte, 0, n)
	for _, r := range d {
		out = append(out, r.Bytes...)
	}
	return out
}

func printable(b byte) byte {
	if b > 0x20 && b < 0x7F {
		return b
	}
	return '.'
}
