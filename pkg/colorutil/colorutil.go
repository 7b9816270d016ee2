// Package colorutil provides shared color utilities for the chart digitizer.
package colorutil

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is an 8-bit-per-channel RGB color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses a "#RRGGBB" or "RRGGBB" color string.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Bounds returns the lower and upper corners of the axis-aligned
// tolerance box around c, clamped to [0, 255] per channel.
func (c RGB) Bounds(tolerance int) (lower, upper RGB) {
	lower = RGB{
		R: clampChannel(int(c.R) - tolerance),
		G: clampChannel(int(c.G) - tolerance),
		B: clampChannel(int(c.B) - tolerance),
	}
	upper = RGB{
		R: clampChannel(int(c.R) + tolerance),
		G: clampChannel(int(c.G) + tolerance),
		B: clampChannel(int(c.B) + tolerance),
	}
	return lower, upper
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
