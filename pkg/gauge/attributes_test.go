package gauge

import (
	"testing"
	"time"

	"github.com/roffe/txgauge/pkg/animation"
	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesDefaults(t *testing.T) {
	cfg, err := Attributes{}.Config()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 0.0, Attributes{}.Value())
}

func TestAttributesCoercion(t *testing.T) {
	attrs := Attributes{
		"Size":            "300",
		"min":             "-10",
		"max":             90,
		"decimals":        "1",
		"thick":           "abc",
		"type":            "SEMI",
		"cap":             "round",
		"reverse":         "",
		"duration":        "500ms",
		"backgroundColor": "#222222",
		"label":           "Speed",
		"append":          "km/h",
		"labelFontSize":   "14px",
		"centerFontSize":  40,
		"value":           "42.5",
	}
	cfg, err := attrs.Config()
	require.NoError(t, err)

	assert.Equal(t, 300.0, cfg.Size)
	assert.Equal(t, -10.0, cfg.Min)
	assert.Equal(t, 90.0, cfg.Max)
	assert.Equal(t, 1, cfg.Decimals)
	assert.Equal(t, float64(DefaultThickness), cfg.Thickness)
	assert.Equal(t, geometry.ShapeSemi, cfg.Shape)
	assert.Equal(t, shell.CapRound, cfg.Cap)
	assert.True(t, cfg.Reverse)
	assert.Equal(t, 500*time.Millisecond, cfg.Duration)
	assert.Equal(t, "#222222", cfg.BackgroundColor)
	assert.Equal(t, "Speed", cfg.Label)
	assert.Equal(t, "km/h", cfg.Append)
	assert.Equal(t, float32(14), cfg.LabelFontSize)
	assert.Equal(t, float32(40), cfg.CenterFontSize)
	assert.Equal(t, 42.5, attrs.Value())
}

func TestAttributesDecimalsBounds(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{in: 1e300, want: MaxDecimals},
		{in: "99", want: MaxDecimals},
		{in: 3, want: 3},
		{in: -1e300, want: -1},
	}
	for _, tt := range tests {
		cfg, _ := Attributes{"decimals": tt.in}.Config()
		assert.Equal(t, tt.want, cfg.Decimals, "decimals %v", tt.in)
	}

	cfg, err := Attributes{"decimals": 1e300}.Config()
	require.NoError(t, err)
	g, err := New(cfg, &fakeSurface{}, animation.NewManualScheduler(), WithValue(12.25))
	require.NoError(t, err)
	assert.Equal(t, "12.25", g.DisplayText())

	_, err = Attributes{"decimals": -1e300}.Config()
	assert.ErrorIs(t, err, ErrDecimals)
}

func TestAttributesReverseFlag(t *testing.T) {
	for _, tt := range []struct {
		v    any
		want bool
	}{
		{v: true, want: true},
		{v: false, want: false},
		{v: "false", want: false},
		{v: "FALSE", want: false},
		{v: "yes", want: true},
		{v: 0, want: false},
		{v: nil, want: false},
	} {
		cfg, err := Attributes{"reverse": tt.v}.Config()
		require.NoError(t, err)
		assert.Equal(t, tt.want, cfg.Reverse, "reverse=%v", tt.v)
	}
}

func TestAttributesDurationMillis(t *testing.T) {
	cfg, err := Attributes{"duration": 250}.Config()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Duration)

	cfg, err = Attributes{"duration": "800"}.Config()
	require.NoError(t, err)
	assert.Equal(t, 800*time.Millisecond, cfg.Duration)
}

func TestAttributesForegroundStops(t *testing.T) {
	cfg, err := Attributes{
		"max": 1000,
		"foregroundColor": []any{
			map[string]any{"value": 700, "color": "#FFFF00"},
			map[string]any{"value": 0, "color": "#00FF00"},
			map[string]any{"value": 1000, "color": "#FF0000"},
		},
	}.Config()
	require.NoError(t, err)
	require.True(t, cfg.Foreground.IsGradient())
	assert.Equal(t, "#7fff00", cfg.Foreground.Resolve(350))
}

func TestAttributesInvalid(t *testing.T) {
	cfg, err := Attributes{
		"type":            "donut",
		"cap":             "square",
		"thick":           120,
		"foregroundColor": "notacolor",
	}.Config()
	require.Error(t, err)
	assert.ErrorIs(t, err, geometry.ErrUnknownShape)
	assert.ErrorIs(t, err, shell.ErrUnknownCap)
	assert.ErrorIs(t, err, geometry.ErrDegenerateRadius)
	assert.ErrorIs(t, err, colors.ErrInvalidColor)
	assert.Equal(t, geometry.Shape("donut"), cfg.Shape)
}
