// Package timecode formats millisecond time values for ruler lines and
// block headers.
package timecode

import (
	"fmt"
	"strings"
)

// Format selects how a millisecond value is printed.
type Format int

const (
	// HHMMSSMS prints hours, minutes, seconds and milliseconds: 00:01:02.345.
	HHMMSSMS Format = iota
	// SSMS prints seconds and milliseconds: 62.345.
	SSMS
	// MS prints the raw millisecond count: 62345.
	MS
	// PAL prints hh:mm:ss:ff with 25 frames per second.
	PAL
	// NTSC prints hh:mm:ss:ff with 30 frames per second (non-drop).
	NTSC
)

var formatNames = map[Format]string{
	HHMMSSMS: "hhmmssms",
	SSMS:     "ssms",
	MS:       "ms",
	PAL:      "pal",
	NTSC:     "ntsc",
}

// String returns the configuration name of the format.
func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := formatNames[f]
	return ok
}

// Parse converts a configuration name (case-insensitive) into a Format.
// The empty string yields [HHMMSSMS].
func Parse(s string) (Format, error) {
	if s == "" {
		return HHMMSSMS, nil
	}
	s = strings.ToLower(s)
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown time format %q (must be one of: hhmmssms, ssms, ms, pal, ntsc)", s)
}

// Millis formats ms according to f. Negative values are printed with a
// leading minus sign.
func Millis(ms int64, f Format) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}

	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	frac := ms % 1000

	switch f {
	case SSMS:
		return fmt.Sprintf("%s%d.%03d", sign, ms/1000, frac)
	case MS:
		return fmt.Sprintf("%s%d", sign, ms)
	case PAL:
		return fmt.Sprintf("%s%02d:%02d:%02d:%02d", sign, h, m, s, frac*25/1000)
	case NTSC:
		return fmt.Sprintf("%s%02d:%02d:%02d:%02d", sign, h, m, s, frac*30/1000)
	default:
		return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, h, m, s, frac)
	}
}
