// Package geometry resolves the angular bounds and circle of an arc gauge.
//
// Angles follow the 2D canvas convention used by the drawing surface: radians,
// zero pointing right, increasing clockwise with y growing downwards.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/roffe/txgauge/pkg/common"
)

type Shape string

const (
	ShapeFull Shape = "full"
	ShapeSemi Shape = "semi"
	ShapeArch Shape = "arch"
)

var (
	ErrUnknownShape     = errors.New("unknown gauge shape")
	ErrDegenerateRadius = errors.New("thickness leaves no radius")
)

// Shapes lists the supported variants in display order.
var Shapes = [...]Shape{ShapeFull, ShapeSemi, ShapeArch}

func (s Shape) String() string { return string(s) }

func (s Shape) Valid() bool {
	switch s {
	case ShapeFull, ShapeSemi, ShapeArch:
		return true
	}
	return false
}

// ParseShape is case-insensitive and only accepts the closed set of shapes.
func ParseShape(s string) (Shape, error) {
	shape := Shape(strings.ToLower(strings.TrimSpace(s)))
	if !shape.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
	}
	return shape, nil
}

// Bounds is the angular span of the gauge track.
type Bounds struct {
	Start, End float64
}

func BoundsFor(shape Shape) (Bounds, error) {
	switch shape {
	case ShapeFull:
		return Bounds{Start: common.Pi15, End: common.Pi35}, nil
	case ShapeSemi:
		return Bounds{Start: math.Pi, End: common.TwoPi}, nil
	case ShapeArch:
		return Bounds{Start: common.Pi08, End: common.Pi22}, nil
	}
	return Bounds{}, fmt.Errorf("%w: %q", ErrUnknownShape, string(shape))
}

func (b Bounds) Span() float64 {
	return b.End - b.Start
}

// Unit is the angular displacement per value unit. An empty range has no
// displacement at all.
func (b Bounds) Unit(min, max float64) float64 {
	if max <= min {
		return 0
	}
	return b.Span() / (max - min)
}

// Displacement returns the angle between Start and value. value is expected
// to be clamped by the caller.
func (b Bounds) Displacement(unit, value, min float64) float64 {
	return unit * (value - min)
}

// Split converts a displacement into the absolute angle where the foreground
// ends. It never goes below Start.
func (b Bounds) Split(displacement float64) float64 {
	if math.IsNaN(displacement) {
		return b.Start
	}
	return math.Max(b.Start, b.Start+displacement)
}

type Circle struct {
	CX, CY, Radius float64
}

// Center derives the circle for a square surface of the given size. A
// thickness of half the size or more gives a radius <= 0, see ValidateThickness.
func Center(size, thickness float64) Circle {
	c := size * common.OneHalf
	return Circle{CX: c, CY: c, Radius: c - thickness}
}

func ValidateThickness(size, thickness float64) error {
	if thickness >= size*common.OneHalf {
		return fmt.Errorf("%w: thickness %g, size %g", ErrDegenerateRadius, thickness, size)
	}
	return nil
}
