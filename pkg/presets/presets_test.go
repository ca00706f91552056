package presets

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/widgets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPresetsParse(t *testing.T) {
	for name := range system {
		t.Run(name, func(t *testing.T) {
			d, err := Get(name)
			require.NoError(t, err)
			assert.NotEmpty(t, d.Gauges)
		})
	}
}

func TestMultiColorSteps(t *testing.T) {
	d, err := Get("Multi color")
	require.NoError(t, err)
	cfg, err := d.Gauges[1].EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", cfg.Foreground.Resolve(650))
	assert.Equal(t, "#FFFF00", cfg.Foreground.Resolve(700))
	assert.Equal(t, "#ff0000", cfg.Foreground.Resolve(950))
}

func TestSetGetDelete(t *testing.T) {
	d := &config.Dashboard{Title: "Mine", Gauges: []widgets.GaugeConfig{{Title: "x", Topic: "x"}}}
	require.NoError(t, Set("mine", d))
	assert.Contains(t, Names(), "mine")

	got, err := Get("mine")
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)

	require.NoError(t, Delete("mine"))
	_, err = Get("mine")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSystemPresetsProtected(t *testing.T) {
	d := &config.Dashboard{Gauges: []widgets.GaugeConfig{{Title: "x"}}}
	assert.ErrorIs(t, Set("demo", d), ErrSystem)
	assert.ErrorIs(t, Delete("DEMO"), ErrSystem)
}

func TestSetRejectsInvalid(t *testing.T) {
	assert.ErrorIs(t, Set("empty", &config.Dashboard{}), config.ErrNoGauges)
}

func TestSaveLoad(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	d := &config.Dashboard{Title: "Saved", Gauges: []widgets.GaugeConfig{{Title: "y", Topic: "y"}}}
	require.NoError(t, Set("saved", d))
	require.NoError(t, Save(a))
	assert.NotContains(t, a.Preferences().String(preferenceKey), `"Demo"`)

	require.NoError(t, Delete("saved"))
	require.NoError(t, Load(a))
	got, err := Get("saved")
	require.NoError(t, err)
	assert.Equal(t, "Saved", got.Title)
	assert.Contains(t, Names(), "Demo")
}
