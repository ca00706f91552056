package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/lusingander/colorpicker"
	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/config"
	"github.com/roffe/txgauge/pkg/ebus"
	"github.com/roffe/txgauge/pkg/layout"
	"github.com/roffe/txgauge/pkg/presets"
	"github.com/roffe/txgauge/pkg/snapshot"
	"github.com/roffe/txgauge/pkg/widgets"
	"github.com/roffe/txgauge/pkg/widgets/arcgauge"
	"github.com/roffe/txgauge/pkg/widgets/dialogs"
	"github.com/roffe/txgauge/pkg/widgets/gauge"
)

const (
	prefsSelectedPreset = "selectedPreset"
	selectPreset        = "Select preset"
	gridPadding         = 4
)

type demoWindow struct {
	fyne.Window
	app fyne.App
	bus *ebus.Bus
	sim *simulator

	presetSelect *widget.Select
	grid         *fyne.Container
	status       binding.String
	unsubAll     func()

	dashboard *config.Dashboard
	gauges    []widgets.IGauge
	cancels   []func()
}

func newDemoWindow(a fyne.App, bus *ebus.Bus, sim *simulator) *demoWindow {
	dw := &demoWindow{
		Window: a.NewWindow("txgauge"),
		app:    a,
		bus:    bus,
		sim:    sim,
		grid:   container.New(layout.NewGrid(config.DefaultColumns, gridPadding)),
		status: binding.NewString(),
	}
	dw.unsubAll = bus.SubscribeAllFunc(func(topic string, value float64) {
		if err := dw.status.Set(fmt.Sprintf("%s: %g", topic, value)); err != nil {
			log.Println(err)
		}
	})

	dw.presetSelect = widget.NewSelect(append([]string{selectPreset}, presets.Names()...), func(s string) {
		if s == selectPreset {
			return
		}
		d, err := presets.Get(s)
		if err != nil {
			dw.Error(err)
			return
		}
		dw.showDashboard(d)
		dw.app.Preferences().SetString(prefsSelectedPreset, s)
	})
	dw.presetSelect.PlaceHolder = selectPreset

	toolbar := container.NewHBox(
		dw.presetSelect,
		widget.NewButton("Save preset", dw.newPreset),
		widget.NewButton("Delete preset", dw.deletePreset),
		widget.NewButton("Open file", dw.openFile),
		widget.NewButton("Copy JSON", dw.copyJSON),
		widget.NewButton("Color", dw.pickColor),
		widget.NewButton("Export PNG", dw.exportPNG),
		widget.NewButton("Screenshot", dw.screenshot),
	)
	dw.SetContent(container.NewBorder(toolbar, widget.NewLabelWithData(dw.status), nil, nil, dw.grid))
	dw.SetOnClosed(func() {
		dw.unsubAll()
		dw.clear()
	})
	return dw
}

func (dw *demoWindow) Error(err error) {
	log.Println(err)
	dialog.ShowError(err, dw)
}

func (dw *demoWindow) clear() {
	for _, c := range dw.cancels {
		c()
	}
	dw.cancels = nil
	dw.gauges = nil
}

func (dw *demoWindow) showDashboard(d *config.Dashboard) {
	dw.clear()

	var objs []fyne.CanvasObject
	for i := range d.Gauges {
		g, cancels, err := gauge.New(&d.Gauges[i], dw.bus)
		if err != nil {
			dw.Error(err)
			continue
		}
		dw.gauges = append(dw.gauges, g)
		dw.cancels = append(dw.cancels, cancels...)
		objs = append(objs, g)
	}
	dw.dashboard = d
	dw.sim.SetDashboard(d)

	dw.grid.Layout = layout.NewGrid(d.Columns, gridPadding)
	dw.grid.Objects = objs
	dw.grid.Refresh()
	dw.SetTitle("txgauge - " + d.Title)
}

func (dw *demoWindow) first() (*arcgauge.ArcGauge, bool) {
	if len(dw.gauges) == 0 {
		return nil, false
	}
	g, ok := dw.gauges[0].(*arcgauge.ArcGauge)
	return g, ok
}

func (dw *demoWindow) reloadPresets() {
	dw.presetSelect.SetOptions(append([]string{selectPreset}, presets.Names()...))
}

func (dw *demoWindow) newPreset() {
	if dw.dashboard == nil {
		dialog.ShowInformation("Nothing to save", "Open a dashboard first", dw)
		return
	}
	presetName := widget.NewEntry()
	dialog.ShowForm("Save preset", "Save", "Cancel", []*widget.FormItem{
		widget.NewFormItem("name", presetName),
	}, func(save bool) {
		if !save {
			return
		}
		if presetName.Text == "" {
			dw.Error(fmt.Errorf("name can't be empty"))
			return
		}
		if err := presets.Set(presetName.Text, dw.dashboard); err != nil {
			dw.Error(err)
			return
		}
		if err := presets.Save(dw.app); err != nil {
			dw.Error(err)
			return
		}
		dw.reloadPresets()
		dw.presetSelect.SetSelected(presetName.Text)
	}, dw)
}

func (dw *demoWindow) deletePreset() {
	name := dw.presetSelect.Selected
	if name == "" || name == selectPreset {
		dialog.ShowInformation("No preset selected", "Select a preset to delete", dw)
		return
	}
	dialog.ShowConfirm("Confirm preset delete", "Delete preset '"+name+"', are you sure?", func(b bool) {
		if !b {
			return
		}
		if err := presets.Delete(name); err != nil {
			dw.Error(err)
			return
		}
		if err := presets.Save(dw.app); err != nil {
			dw.Error(err)
			return
		}
		dw.reloadPresets()
		dw.presetSelect.SetSelected(selectPreset)
	}, dw)
}

func (dw *demoWindow) openFile() {
	dialogs.SelectFile(func(filename string) {
		d, err := config.Load(filename)
		if err != nil {
			dw.Error(err)
			return
		}
		dw.showDashboard(d)
	}, "Dashboard", "json", "yaml", "yml", "toml")
}

func (dw *demoWindow) copyJSON() {
	if dw.dashboard == nil {
		return
	}
	str, err := dw.dashboard.MarshalJSONString()
	if err != nil {
		dw.Error(err)
		return
	}
	dw.app.Clipboard().SetContent(str)
}

// pickColor sets a solid foreground on the first gauge.
func (dw *demoWindow) pickColor() {
	g, ok := dw.first()
	if !ok {
		return
	}
	picker := colorpicker.New(200, colorpicker.StyleHue)
	picker.SetOnChanged(func(c color.Color) {
		if err := g.SetForeground(colors.Solid(colors.ToHex(c))); err != nil {
			log.Println(err)
		}
	})

	var modal *widget.PopUp
	modal = widget.NewModalPopUp(container.NewVBox(
		picker,
		widget.NewButton("Close", func() {
			modal.Hide()
		}),
	), dw.Canvas())
	modal.Show()
}

func (dw *demoWindow) exportPNG() {
	g, ok := dw.first()
	if !ok {
		return
	}
	dialogs.SaveFile(func(filename string) {
		cfg := g.Engine().Config()
		img := snapshot.Stamp(g.Image(), color.White, g.Engine().DisplayText(), cfg.Label)
		if err := snapshot.WriteFile(filename, img); err != nil {
			dw.Error(err)
			return
		}
		log.Println("exported", filename)
	}, "PNG image", "png")
}

func (dw *demoWindow) screenshot() {
	dir, err := os.Getwd()
	if err != nil {
		dw.Error(err)
		return
	}
	filename, err := snapshot.Screenshot(dw.Canvas(), dir)
	if err != nil {
		dw.Error(err)
		return
	}
	log.Println("saved", filename)
}
