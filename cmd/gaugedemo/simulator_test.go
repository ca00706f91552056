package main

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/widgets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatorRanges(t *testing.T) {
	bus := ebus.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx)

	sim := newSimulator(bus, 1)
	sim.SetDashboard(&config.Dashboard{Gauges: []widgets.GaugeConfig{
		{Title: "a", Topic: "rpm", Attributes: gauge.Attributes{"max": 8000}},
		{Title: "b", Topic: "rpm", Attributes: gauge.Attributes{"min": -100, "max": 10}},
		{Title: "c", Topic: "temp", Attributes: gauge.Attributes{"min": 40, "max": 120}},
		{Title: "static"},
	}})
	assert.Equal(t, [2]float64{-100, 8000}, sim.ranges["rpm"])
	assert.Equal(t, [2]float64{40, 120}, sim.ranges["temp"])
	assert.Equal(t, []string{"rpm", "temp"}, sim.topics)

	_, rpm := bus.Subscribe("rpm")
	_, temp := bus.Subscribe("temp")
	for i := 0; i < 20; i++ {
		sim.Tick()
	}

	deadline := time.After(2 * time.Second)
	for _, tc := range []struct {
		ch     <-chan float64
		lo, hi float64
	}{{rpm, -100, 8000}, {temp, 40, 120}} {
		select {
		case v := <-tc.ch:
			assert.GreaterOrEqual(t, v, tc.lo)
			assert.LessOrEqual(t, v, tc.hi)
			assert.InDelta(t, math.Round(v*100), v*100, 1e-6)
		case <-deadline:
			require.FailNow(t, "no simulated value")
		}
	}
}
