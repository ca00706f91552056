package colors

import (
	"strings"
)

type ColorBlindMode int

var SupportedColorBlindModes = [...]string{
	Normal,
	Universal,
	Protanopia,
	Tritanopia,
	Deuteranomaly,
}

const (
	Normal        = "Normal"
	Universal     = "Universal"
	Protanopia    = "Protanopia"
	Tritanopia    = "Tritanopia"
	Deuteranomaly = "Deuteranomaly"
	Unknown       = "Unknown"
)

const (
	ModeNormal        ColorBlindMode = iota // Green → Yellow → Red
	ModeUniversal                           // Blue → Gray → Orange
	ModeProtanopia                          // Blue → White → Brown
	ModeTritanopia                          // Teal → Gray → Red
	ModeDeuteranomaly                       // Blue → Beige → Brown
)

func (m ColorBlindMode) String() string {
	switch m {
	case ModeNormal:
		return Normal
	case ModeUniversal:
		return Universal
	case ModeProtanopia:
		return Protanopia
	case ModeTritanopia:
		return Tritanopia
	case ModeDeuteranomaly:
		return Deuteranomaly
	default:
		return Unknown
	}
}

func StringToColorBlindMode(s string) ColorBlindMode {
	for i, name := range SupportedColorBlindModes {
		if strings.EqualFold(s, name) {
			return ColorBlindMode(i)
		}
	}
	return ModeNormal
}

// palette returns the low, mid and high colors of a mode.
func (m ColorBlindMode) palette() (low, mid, high string) {
	switch m {
	case ModeUniversal:
		return "#2166AC", "#F7F7F7", "#FFA500"
	case ModeProtanopia:
		return "#0571B0", "#F7F7F7", "#964B00"
	case ModeTritanopia:
		return "#008080", "#F7F7F7", "#D73027"
	case ModeDeuteranomaly:
		return "#4A90E2", "#F5E6B3", "#8B4513"
	default:
		return "#00FF00", "#FFFF00", "#FF0000"
	}
}

// Scheme spreads the three colors of mode over min, the midpoint and max.
func Scheme(mode ColorBlindMode, min, max float64) Foreground {
	low, mid, high := mode.palette()
	fg, _ := NewStops(
		ColorStop{Threshold: min, Color: low},
		ColorStop{Threshold: min + (max-min)/2, Color: mid},
		ColorStop{Threshold: max, Color: high},
	)
	return fg
}
