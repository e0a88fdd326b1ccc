// Package modutf8 decodes the JVM's "modified UTF-8" byte encoding used by
// java.io.DataInput/DataOutput and, by extension, every String/LongString
// record in the object-serialization wire format. It differs from standard
// UTF-8 in two ways: the NUL code point is encoded as the two-byte sequence
// 0xC0 0x80 instead of a single zero byte, and code points outside the Basic
// Multilingual Plane are encoded as a surrogate pair, each surrogate
// separately 3-byte-encoded, rather than as one 4-byte sequence.
package modutf8

import (
	"fmt"
	"unicode/utf16"
)

// Decode converts a modified-UTF-8 byte run into a Go string.
func Decode(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))
	i := 0
	for i < len(b) {
		b0 := b[i]
		switch {
		case b0&0x80 == 0: // 0xxxxxxx
			units = append(units, uint16(b0))
			i++

		case b0&0xE0 == 0xC0: // 110xxxxx 10xxxxxx
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return "", fmt.Errorf("modutf8: truncated 2-byte sequence at offset %d", i)
			}
			v := uint16(b0&0x1F)<<6 | uint16(b[i+1]&0x3F)
			units = append(units, v)
			i += 2

		case b0&0xF0 == 0xE0: // 1110xxxx 10xxxxxx 10xxxxxx
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return "", fmt.Errorf("modutf8: truncated 3-byte sequence at offset %d", i)
			}
			v := uint16(b0&0x0F)<<12 | uint16(b[i+1]&0x3F)<<6 | uint16(b[i+2]&0x3F)
			units = append(units, v)
			i += 3

		default:
			return "", fmt.Errorf("modutf8: invalid lead byte 0x%02x at offset %d", b0, i)
		}
	}
	return string(utf16.Decode(units)), nil
}
