// Package hexfmt holds the uppercase hex helpers shared by the dump and
// header views.
package hexfmt

import "encoding/binary"

const digits = "0123456789ABCDEF"

// AppendByte appends the two uppercase hex digits of b to dst.
func AppendByte(dst []byte, b byte) []byte {
	return append(dst, digits[b>>4], digits[b&0x0F])
}

// Encode returns b as contiguous uppercase hex.
func Encode(b []byte) string {
	out := make([]byte, 0, len(b)*2)
	for _, v := range b {
		out = AppendByte(out, v)
	}
	return string(out)
}

// EncodeSpaced returns b as uppercase hex pairs separated by a single space.
func EncodeSpaced(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out := make([]byte, 0, len(b)*3-1)
	for i, v := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = AppendByte(out, v)
	}
	return string(out)
}

// Offset encodes v big-endian. Values that fit in 32 bits use four bytes,
// larger ones use eight.
func Offset(v uint64) string {
	if v > 0xFFFFFFFF {
		return Encode(binary.BigEndian.AppendUint64(nil, v))
	}
	return Encode(binary.BigEndian.AppendUint32(nil, uint32(v)))
}
