package main

import (
	"context"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/presets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoWindowShowsPreset(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	bus := ebus.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx)

	dw := newDemoWindow(a, bus, newSimulator(bus, 7))
	defer dw.Close()

	dw.presetSelect.SetSelected("Multi color")
	require.Len(t, dw.gauges, 2)
	assert.Len(t, dw.grid.Objects, 2)
	assert.Equal(t, "Multi color", a.Preferences().String(prefsSelectedPreset))
	assert.Equal(t, []string{"demo.a"}, dw.sim.topics)

	g, ok := dw.first()
	require.True(t, ok)
	assert.Equal(t, "Gradient", g.GetConfig().Title)

	d, err := presets.Get("Demo")
	require.NoError(t, err)
	dw.showDashboard(d)
	assert.Len(t, dw.gauges, 3)
	assert.Len(t, dw.cancels, 6)

	dw.copyJSON()
	assert.Contains(t, a.Clipboard().Content(), `"title":"`+d.Title+`"`)

	dw.clear()
	assert.Empty(t, dw.cancels)
}

func TestDemoWindowStatus(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	bus := ebus.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx)

	dw := newDemoWindow(a, bus, newSimulator(bus, 7))
	defer dw.Close()

	require.NoError(t, bus.Publish("demo.rpm", 2500))
	assert.Eventually(t, func() bool {
		text, err := dw.status.Get()
		return err == nil && text == "demo.rpm: 2500"
	}, time.Second, 10*time.Millisecond)
}
