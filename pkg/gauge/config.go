package gauge

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/shell"
)

const (
	DefaultSize           = 200
	DefaultMin            = 0
	DefaultMax            = 100
	DefaultDecimals       = 2
	MaxDecimals           = 15
	DefaultThickness      = 25
	DefaultDuration       = 1200 * time.Millisecond
	DefaultLabelFontSize  = 20
	DefaultCenterFontSize = 32
	DefaultShape          = geometry.ShapeArch
	DefaultCap            = shell.CapButt
)

var (
	ErrRange     = errors.New("min must not exceed max")
	ErrDecimals  = errors.New("decimals must not be negative")
	ErrSize      = errors.New("size must be positive")
	ErrThickness = errors.New("thickness must be positive")
	ErrDuration  = errors.New("duration must not be negative")
)

// Config describes how a gauge looks and animates. Value is engine state and
// lives on the Gauge.
type Config struct {
	Min, Max        float64
	Decimals        int
	Size            float64
	Thickness       float64
	Cap             shell.Cap
	Shape           geometry.Shape
	Reverse         bool
	Duration        time.Duration
	BackgroundColor string
	Foreground      colors.Foreground

	Label          string
	Prepend        string
	Append         string
	LabelFontSize  float32
	CenterFontSize float32
}

func DefaultConfig() Config {
	return Config{
		Min:             DefaultMin,
		Max:             DefaultMax,
		Decimals:        DefaultDecimals,
		Size:            DefaultSize,
		Thickness:       DefaultThickness,
		Cap:             DefaultCap,
		Shape:           DefaultShape,
		Duration:        DefaultDuration,
		BackgroundColor: colors.DefaultBackground,
		Foreground:      colors.Solid(colors.DefaultForeground),
		LabelFontSize:   DefaultLabelFontSize,
		CenterFontSize:  DefaultCenterFontSize,
	}
}

// ConfigError reports one invalid configuration field.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gauge config: %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Validate checks every field and returns all problems joined, each one a
// *ConfigError.
func (c Config) Validate() error {
	var errs []error
	fail := func(field string, value any, err error) {
		errs = append(errs, &ConfigError{Field: field, Value: value, Err: err})
	}

	if !finite(c.Min) || !finite(c.Max) || c.Min > c.Max {
		fail("min/max", [2]float64{c.Min, c.Max}, ErrRange)
	}
	if c.Decimals < 0 {
		fail("decimals", c.Decimals, ErrDecimals)
	}
	if !finite(c.Size) || c.Size <= 0 {
		fail("size", c.Size, ErrSize)
	}
	if !finite(c.Thickness) || c.Thickness <= 0 {
		fail("thick", c.Thickness, ErrThickness)
	} else if err := geometry.ValidateThickness(c.Size, c.Thickness); err != nil && c.Size > 0 {
		fail("thick", c.Thickness, err)
	}
	if _, err := geometry.BoundsFor(c.Shape); err != nil {
		fail("type", c.Shape, err)
	}
	if _, err := shell.ParseCap(string(c.Cap)); err != nil {
		fail("cap", c.Cap, err)
	}
	if c.Duration < 0 {
		fail("duration", c.Duration, ErrDuration)
	}
	if _, err := colors.ParseColor(c.BackgroundColor); err != nil {
		fail("backgroundColor", c.BackgroundColor, err)
	}
	if !c.Foreground.IsGradient() {
		if _, err := colors.ParseColor(c.Foreground.Color()); err != nil {
			fail("foregroundColor", c.Foreground.Color(), err)
		}
	}
	return errors.Join(errs...)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
