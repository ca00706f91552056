// Command gaugedemo shows a dashboard of arc gauges fed with simulated
// values. An optional argument names a dashboard file to open.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/presets"
	"github.com/roffe/txgauge/pkg/theme"
)

const simulateEvery = 1 * time.Second

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile | log.Lmicroseconds)
}

func main() {
	a := app.NewWithID("com.roffe.txgauge")
	a.Settings().SetTheme(&theme.GaugeTheme{})
	if err := presets.Load(a); err != nil {
		log.Println("load presets:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := ebus.New(ebus.WithDebug(os.Getenv("TXGAUGE_DEBUG") != ""))
	go func() {
		if err := bus.Run(ctx); err != nil && ctx.Err() == nil {
			log.Println("ebus:", err)
		}
	}()
	sim := newSimulator(bus, uint64(time.Now().UnixNano()))
	go sim.Run(ctx, simulateEvery)

	dw := newDemoWindow(a, bus, sim)
	dw.Resize(fyne.NewSize(1024, 768))

	var initial *config.Dashboard
	if len(os.Args) > 1 {
		d, err := config.Load(os.Args[1])
		if err != nil {
			log.Println(err)
		} else {
			initial = d
		}
	}
	if initial != nil {
		dw.showDashboard(initial)
	} else {
		dw.presetSelect.SetSelected(a.Preferences().StringWithFallback(prefsSelectedPreset, "Demo"))
	}
	dw.ShowAndRun()
}
