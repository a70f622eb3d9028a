package assembler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Limits on literal values, matching a 16-bit address space and 8-bit
// negative bytes.
const (
	maxValue = 0xFFFF
	minValue = -128

	// addressSpace is the number of addressable bytes.
	addressSpace = 0x10000
)

// parseNumber converts a NUMBER token's text to its value.
func parseNumber(s string) (int64, error) {
	// Character literal ('A')
	if len(s) >= 3 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r := []rune(s[1 : len(s)-1])
		if len(r) != 1 {
			return 0, fmt.Errorf("invalid character literal: %s", s)
		}
		return int64(r[0]), nil
	}

	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	base := 10
	switch {
	case strings.HasPrefix(digits, "$"):
		digits = digits[1:]
		base = 16
	case strings.HasPrefix(strings.ToLower(digits), "0x"):
		digits = digits[2:]
		base = 16
	case strings.HasPrefix(digits, "%"):
		digits = digits[1:]
		base = 2
	case strings.HasPrefix(strings.ToLower(digits), "0b"):
		digits = digits[2:]
		base = 2
	}

	val, err := strconv.ParseInt(digits, base, 64)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %s", ErrRange, s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid number format: %s", s)
	}
	if neg {
		val = -val
	}
	return val, nil
}

// normalizeName is the symbol table key for a label or constant.
func normalizeName(name string) string {
	return strings.ToLower(name)
}

// hexValue formats a value the way the source language writes it.
func hexValue(v int) string {
	if v < 0 {
		return strconv.Itoa(v)
	}
	if v > 0xFF {
		return fmt.Sprintf("$%04X", v)
	}
	return fmt.Sprintf("$%02X", v)
}
