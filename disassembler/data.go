package disassembler

import (
	"fmt"
	"strings"
)

// minStrLen is the shortest printable run rendered as a string.
const minStrLen = 4

// isPrintableASCII checks if a byte is a standard printable ASCII character.
func isPrintableASCII(b byte) bool {
	return b >= 0x20 && b <= 0x7E
}

// formatData renders bytes that are not code. Printable runs become .text,
// or .asciiz when a zero follows; everything else becomes .byte lines.
func formatData(data []byte, baseAddr int, stringCounter *int, listing bool) string {
	var sb strings.Builder
	n := len(data)
	hexStart := 0
	i := 0

	for i < n {
		if !isPrintableASCII(data[i]) {
			i++
			continue
		}

		// Find printable run
		end := i
		for end < n && isPrintableASCII(data[end]) {
			end++
		}
		if end-i < minStrLen {
			i = end
			continue
		}

		sb.WriteString(formatHexBytes(data[hexStart:i], baseAddr+hexStart, listing))
		directive := ".text"
		next := end
		if end < n && data[end] == 0 {
			directive = ".asciiz"
			next = end + 1
		}
		fmt.Fprintf(&sb, "string%d:\n    %s %s\n", *stringCounter, directive, quote(data[i:end]))
		(*stringCounter)++
		i = next
		hexStart = next
	}
	sb.WriteString(formatHexBytes(data[hexStart:], baseAddr+hexStart, listing))

	return sb.String()
}

// quote wraps s in double quotes, escaping the characters the lexer treats
// specially inside strings.
func quote(s []byte) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range s {
		if c == '"' || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	sb.WriteByte('"')
	return sb.String()
}

// formatHexBytes formats a slice of bytes into .byte directives, 16 bytes per line.
func formatHexBytes(data []byte, addr int, listing bool) string {
	var sb strings.Builder
	const bytesPerLine = 16

	for i := 0; i < len(data); i += bytesPerLine {
		end := min(i+bytesPerLine, len(data))
		parts := make([]string, 0, end-i)
		for _, b := range data[i:end] {
			parts = append(parts, fmt.Sprintf("$%02x", b))
		}
		line := ".byte " + strings.Join(parts, ",")
		if listing {
			fmt.Fprintf(&sb, "    %-20s ; $%04x\n", line, addr+i)
		} else {
			fmt.Fprintf(&sb, "    %s\n", line)
		}
	}

	return sb.String()
}
