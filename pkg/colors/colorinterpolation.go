package colors

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrInvalidStop       = errors.New("invalid color stop")
	ErrInvalidForeground = errors.New("invalid foreground color spec")
)

// ColorStop anchors Color at Threshold on the gradient scale.
type ColorStop struct {
	Threshold float64 `json:"value" mapstructure:"value"`
	Color     string  `json:"color" mapstructure:"color"`
}

// StopError describes a color stop that was dropped while building a gradient.
type StopError struct {
	Index  int
	Value  any
	Reason string
}

func (e *StopError) Error() string {
	return fmt.Sprintf("color stop %d (%v): %s", e.Index, e.Value, e.Reason)
}

func (e *StopError) Unwrap() error { return ErrInvalidStop }

type stop struct {
	ColorStop
	r, g, b uint8
}

// Foreground is either a single color or a gradient of stops sorted by
// threshold. The zero value resolves to DefaultForeground.
type Foreground struct {
	solid    string
	stops    []stop
	gradient bool
}

// Solid returns a foreground that always resolves to c.
func Solid(c string) Foreground {
	return Foreground{solid: c}
}

// NewStops builds a gradient from stops in any order. Stops whose color is not
// "#RRGGBB" or whose threshold is not a number are dropped; the returned error
// lists every dropped stop and is nil when all of them were kept.
func NewStops(stops ...ColorStop) (Foreground, error) {
	fg := Foreground{gradient: true, stops: make([]stop, 0, len(stops))}
	var errs []error
	for i, s := range stops {
		st, err := newStop(i, s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		fg.stops = append(fg.stops, st)
	}
	// equal thresholds keep their input order, stepped scales rely on it
	sort.SliceStable(fg.stops, func(i, j int) bool {
		return fg.stops[i].Threshold < fg.stops[j].Threshold
	})
	return fg, errors.Join(errs...)
}

func newStop(i int, s ColorStop) (stop, error) {
	if math.IsNaN(s.Threshold) || math.IsInf(s.Threshold, 0) {
		return stop{}, &StopError{Index: i, Value: s, Reason: "threshold is not a finite number"}
	}
	if !IsHexColor(s.Color) {
		return stop{}, &StopError{Index: i, Value: s, Reason: "color must be #RRGGBB"}
	}
	c, err := colorful.Hex(s.Color)
	if err != nil {
		return stop{}, &StopError{Index: i, Value: s, Reason: err.Error()}
	}
	r, g, b := c.RGB255()
	return stop{ColorStop: s, r: r, g: g, b: b}, nil
}

// ParseForeground accepts the loosely typed color specs found in attribute
// maps and config files: a color string, a Foreground, []ColorStop, or a list
// of {value, color} maps. Unusable entries are dropped and reported.
func ParseForeground(v any) (Foreground, error) {
	switch t := v.(type) {
	case nil:
		return Foreground{}, nil
	case Foreground:
		return t, nil
	case string:
		return Solid(t), nil
	case []ColorStop:
		return NewStops(t...)
	case []map[string]any:
		list := make([]any, len(t))
		for i, m := range t {
			list[i] = m
		}
		return parseStopList(list)
	case []any:
		return parseStopList(t)
	}
	return Foreground{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidForeground, v)
}

func parseStopList(list []any) (Foreground, error) {
	stops := make([]ColorStop, 0, len(list))
	var errs []error
	for i, item := range list {
		s, ok := stopFromAny(item)
		if !ok {
			errs = append(errs, &StopError{Index: i, Value: item, Reason: "expected {value: number, color: string}"})
			continue
		}
		stops = append(stops, s)
	}
	fg, err := NewStops(stops...)
	return fg, errors.Join(append(errs, err)...)
}

func stopFromAny(v any) (ColorStop, bool) {
	switch t := v.(type) {
	case ColorStop:
		return t, true
	case map[string]any:
		return stopFromMap(func(key string) (any, bool) {
			for k, v := range t {
				if strings.EqualFold(k, key) {
					return v, true
				}
			}
			return nil, false
		})
	case map[any]any:
		return stopFromMap(func(key string) (any, bool) {
			for k, v := range t {
				if ks, ok := k.(string); ok && strings.EqualFold(ks, key) {
					return v, true
				}
			}
			return nil, false
		})
	}
	return ColorStop{}, false
}

func stopFromMap(get func(string) (any, bool)) (ColorStop, bool) {
	raw, ok := get("value")
	if !ok {
		raw, ok = get("threshold")
	}
	if !ok {
		return ColorStop{}, false
	}
	threshold, ok := number(raw)
	if !ok {
		return ColorStop{}, false
	}
	rawColor, ok := get("color")
	if !ok {
		return ColorStop{}, false
	}
	col, ok := rawColor.(string)
	if !ok {
		return ColorStop{}, false
	}
	return ColorStop{Threshold: threshold, Color: col}, true
}

// number only accepts real numeric kinds, numeric strings are not thresholds.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func (f Foreground) IsGradient() bool { return f.gradient }

// Color returns the single color, empty for gradients.
func (f Foreground) Color() string {
	if f.gradient {
		return ""
	}
	if f.solid == "" {
		return DefaultForeground
	}
	return f.solid
}

// Stops returns a copy of the sorted gradient stops.
func (f Foreground) Stops() []ColorStop {
	out := make([]ColorStop, len(f.stops))
	for i, s := range f.stops {
		out[i] = s.ColorStop
	}
	return out
}

func (f Foreground) String() string {
	if !f.gradient {
		return f.Color()
	}
	parts := make([]string, len(f.stops))
	for i, s := range f.stops {
		parts[i] = fmt.Sprintf("%g:%s", s.Threshold, s.Color)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Resolve returns the color for value. Gradients clamp to the outer stops and
// interpolate each RGB channel linearly between the bracketing stops.
func (f Foreground) Resolve(value float64) string {
	if !f.gradient {
		return f.Color()
	}
	n := len(f.stops)
	switch {
	case n == 0:
		return DefaultForeground
	case n == 1:
		return f.stops[0].Color
	case math.IsNaN(value):
		return f.stops[0].Color
	case value < f.stops[0].Threshold:
		return f.stops[0].Color
	case value > f.stops[n-1].Threshold:
		return f.stops[n-1].Color
	}

	for i := 0; i < n-1; i++ {
		current, next := f.stops[i], f.stops[i+1]
		if value >= current.Threshold && value < next.Threshold {
			if value == current.Threshold {
				return current.Color
			}
			percent := (value - current.Threshold) / (next.Threshold - current.Threshold)
			return fmt.Sprintf("#%02x%02x%02x",
				lerpChannel(current.r, next.r, percent),
				lerpChannel(current.g, next.g, percent),
				lerpChannel(current.b, next.b, percent),
			)
		}
	}
	// value sits exactly on the last threshold
	return f.stops[n-1].Color
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(math.Floor(float64(a)*(1-t) + float64(b)*t))
}
