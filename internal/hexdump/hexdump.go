// Package hexdump renders payload bytes as offset, hex and ASCII columns.
package hexdump

// Hex dump utilities for packet inspection

import (
	"fmt"
	"io"
	"strings"
)

// DefaultWidth is the number of bytes per line.
const DefaultWidth = 16

// Dump creates a hex dump of data, width bytes per line.
//
//	0000: 26 0C 01 02 03 04 05 06  07 08 09 0A 0B 0C 0D 0E  | &...............
func Dump(data []byte, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	gap := width/2 - 1

	var sb strings.Builder
	for i := 0; i < len(data); i += width {
		fmt.Fprintf(&sb, "%-6s", fmt.Sprintf("%04X:", i))

		var ascii strings.Builder
		for j := 0; j < width; j++ {
			if i+j < len(data) {
				b := data[i+j]
				fmt.Fprintf(&sb, "%02X ", b)
				ascii.WriteByte(printable(b))
			} else {
				sb.WriteString("   ")
				ascii.WriteByte(' ')
			}
			if j == gap {
				sb.WriteByte(' ')
			}
		}

		sb.WriteString(" | ")
		sb.WriteString(ascii.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Write writes the dump of data to w.
func Write(w io.Writer, data []byte, width int) error {
	_, err := io.WriteString(w, Dump(data, width))
	return err
}

func printable(b byte) byte {
	if b >= 0x20 && b <= 0x7E {
		return b
	}
	return '.'
}
