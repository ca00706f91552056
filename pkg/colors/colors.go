package colors

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultForeground = "rgba(0, 150, 136, 1)"
	DefaultBackground = "rgba(0, 0, 0, 0.1)"
)

var ErrInvalidColor = errors.New("invalid color")

var hexStopPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s is a "#RRGGBB" color, the only form accepted in
// color stops.
func IsHexColor(s string) bool {
	return hexStopPattern.MatchString(s)
}

// ParseColor understands "#rgb", "#rrggbb", "#rrggbbaa", "rgb(r, g, b)",
// "rgba(r, g, b, a)" and "transparent".
func ParseColor(s string) (color.Color, error) {
	str := strings.ToLower(strings.TrimSpace(s))
	switch {
	case str == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(str, "#"):
		return parseHex(str)
	case strings.HasPrefix(str, "rgba(") && strings.HasSuffix(str, ")"):
		return parseFunc(str[5:len(str)-1], 4)
	case strings.HasPrefix(str, "rgb(") && strings.HasSuffix(str, ")"):
		return parseFunc(str[4:len(str)-1], 3)
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func parseHex(s string) (color.Color, error) {
	alpha := uint64(0xFF)
	switch len(s) {
	case 4, 7:
	case 9:
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		alpha = a
		s = s[:7]
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

func parseFunc(args string, n int) (color.Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("%w: expected %d components, got %d", ErrInvalidColor, n, len(parts))
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: bad component %q", ErrInvalidColor, parts[i])
		}
		ch[i] = uint8(v + 0.5)
	}
	alpha := 1.0
	if n == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return nil, fmt.Errorf("%w: bad alpha %q", ErrInvalidColor, parts[3])
		}
		alpha = a
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(alpha*255 + 0.5)}, nil
}

// MustParseColor is ParseColor for package level defaults.
func MustParseColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ToHex formats c as "#rrggbb", dropping alpha.
func ToHex(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
