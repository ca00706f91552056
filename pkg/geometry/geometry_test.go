package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

func TestBoundsFor(t *testing.T) {
	tests := []struct {
		name       string
		shape      Shape
		start, end float64
	}{
		{name: "full", shape: ShapeFull, start: 1.5 * math.Pi, end: 3.5 * math.Pi},
		{name: "semi", shape: ShapeSemi, start: math.Pi, end: 2 * math.Pi},
		{name: "arch", shape: ShapeArch, start: 0.8 * math.Pi, end: 2.2 * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := BoundsFor(tt.shape)
			require.NoError(t, err)
			assert.InDelta(t, tt.start, b.Start, eps)
			assert.InDelta(t, tt.end, b.End, eps)
		})
	}
}

func TestBoundsForUnknown(t *testing.T) {
	_, err := BoundsFor(Shape("donut"))
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestParseShape(t *testing.T) {
	s, err := ParseShape(" Semi ")
	require.NoError(t, err)
	assert.Equal(t, ShapeSemi, s)

	_, err = ParseShape("")
	assert.ErrorIs(t, err, ErrUnknownShape)
}

func TestSemiScenario(t *testing.T) {
	b, err := BoundsFor(ShapeSemi)
	require.NoError(t, err)

	unit := b.Unit(0, 100)
	assert.InDelta(t, math.Pi/100, unit, eps)

	d := b.Displacement(unit, 50, 0)
	assert.InDelta(t, math.Pi/2, d, eps)
	assert.InDelta(t, 1.5*math.Pi, b.Split(d), eps)
}

func TestUnitEmptyRange(t *testing.T) {
	b, _ := BoundsFor(ShapeArch)
	assert.Zero(t, b.Unit(5, 5))
}

func TestSplitNeverBeforeStart(t *testing.T) {
	b, _ := BoundsFor(ShapeFull)
	assert.Equal(t, b.Start, b.Split(-1))
	assert.Equal(t, b.Start, b.Split(math.NaN()))
}

func TestCenter(t *testing.T) {
	c := Center(200, 25)
	assert.Equal(t, Circle{CX: 100, CY: 100, Radius: 75}, c)

	assert.NoError(t, ValidateThickness(200, 25))
	assert.ErrorIs(t, ValidateThickness(200, 100), ErrDegenerateRadius)
	assert.ErrorIs(t, ValidateThickness(200, 150), ErrDegenerateRadius)
}
