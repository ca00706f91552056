package gauge

import (
	"errors"
	"strings"
	"time"

	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/shell"
	"github.com/spf13/cast"
)

// Attributes are loosely typed gauge inputs as they come from config files or
// a host: numbers may be strings, font sizes may carry a "px" suffix and the
// foreground may be a color or a list of {value, color} stops. Keys are
// matched case-insensitively.
type Attributes map[string]any

// Lookup returns the value of key, matched case-insensitively.
func (a Attributes) Lookup(key string) (any, bool) {
	return a.get(key)
}

func (a Attributes) get(key string) (any, bool) {
	if v, ok := a[key]; ok {
		return v, true
	}
	for k, v := range a {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func (a Attributes) number(key string, fallback float64) float64 {
	v, ok := a.get(key)
	if !ok || v == nil {
		return fallback
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !finite(f) {
		return fallback
	}
	return f
}

func (a Attributes) text(key, fallback string) string {
	v, ok := a.get(key)
	if !ok || v == nil {
		return fallback
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fallback
	}
	return s
}

// flag is true for any present value except false and "false".
func (a Attributes) flag(key string) bool {
	v, ok := a.get(key)
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return !strings.EqualFold(strings.TrimSpace(t), "false")
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return true
	}
	return b
}

func (a Attributes) fontSize(key string, fallback float32) float32 {
	v, ok := a.get(key)
	if !ok || v == nil {
		return fallback
	}
	if s, isString := v.(string); isString {
		v = strings.TrimSuffix(strings.TrimSpace(s), "px")
	}
	f, err := cast.ToFloat32E(v)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func (a Attributes) duration(key string, fallback time.Duration) time.Duration {
	v, ok := a.get(key)
	if !ok || v == nil {
		return fallback
	}
	switch t := v.(type) {
	case time.Duration:
		return t
	case string:
		if d, err := time.ParseDuration(strings.TrimSpace(t)); err == nil {
			return d
		}
	}
	ms, err := cast.ToFloat64E(v)
	if err != nil || !finite(ms) {
		return fallback
	}
	return time.Duration(ms * float64(time.Millisecond))
}

// Value returns the "value" attribute, 0 when missing or not numeric.
func (a Attributes) Value() float64 {
	return a.number("value", DefaultMin)
}

// Config coerces the attributes into a Config. Values that are not numbers
// fall back to their defaults. The returned config is always usable as a
// starting point; the error lists dropped color stops and fields that fail
// Validate.
func (a Attributes) Config() (Config, error) {
	cfg := DefaultConfig()
	cfg.Size = a.number("size", DefaultSize)
	cfg.Min = a.number("min", DefaultMin)
	cfg.Max = a.number("max", DefaultMax)
	// -1 keeps negative input visible to Validate
	cfg.Decimals = int(common.Clamp(a.number("decimals", DefaultDecimals), -1, MaxDecimals))
	cfg.Thickness = a.number("thick", DefaultThickness)
	cfg.Reverse = a.flag("reverse")
	cfg.Duration = a.duration("duration", DefaultDuration)
	cfg.BackgroundColor = a.text("backgroundColor", colors.DefaultBackground)
	cfg.Label = a.text("label", "")
	cfg.Prepend = a.text("prepend", "")
	cfg.Append = a.text("append", "")
	cfg.LabelFontSize = a.fontSize("labelFontSize", DefaultLabelFontSize)
	cfg.CenterFontSize = a.fontSize("centerFontSize", DefaultCenterFontSize)

	var errs []error
	if s := a.text("type", ""); s != "" {
		shape, err := geometry.ParseShape(s)
		if err != nil {
			shape = geometry.Shape(s)
		}
		cfg.Shape = shape
	}
	if s := a.text("cap", ""); s != "" {
		c, err := shell.ParseCap(s)
		if err != nil {
			c = shell.Cap(s)
		}
		cfg.Cap = c
	}
	if v, ok := a.get("foregroundColor"); ok && v != nil {
		fg, err := colors.ParseForeground(v)
		if err != nil {
			errs = append(errs, &ConfigError{Field: "foregroundColor", Value: v, Err: err})
		}
		cfg.Foreground = fg
	}
	return cfg, errors.Join(append(errs, cfg.Validate())...)
}

// FromAttributes coerces a loosely typed attribute map into a Config.
func FromAttributes(m map[string]any) (Config, error) {
	return Attributes(m).Config()
}
