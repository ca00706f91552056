// Package arcgauge is a fyne widget showing an animated arc gauge. The arcs
// are rasterized with gg and shown as a canvas.Image; value text, label and
// min/max captions are fyne text objects on top.
package arcgauge

import (
	"fmt"
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"
	"github.com/roffe/txgauge/pkg/animation"
	"github.com/roffe/txgauge/pkg/colors"
	"github.com/roffe/txgauge/pkg/common"
	"github.com/roffe/txgauge/pkg/gauge"
	"github.com/roffe/txgauge/pkg/geometry"
	"github.com/roffe/txgauge/pkg/widgets"
)

type options struct {
	sched animation.Scheduler
	value float64
}

type Option func(*options)

// WithScheduler replaces the fyne animation scheduler.
func WithScheduler(s animation.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

func WithValue(v float64) Option {
	return func(o *options) { o.value = v }
}

type ArcGauge struct {
	widget.BaseWidget

	cfg    *widgets.GaugeConfig
	gcfg   gauge.Config
	dc     *gg.Context
	engine *gauge.Gauge

	raster    *canvas.Image
	valueText *canvas.Text
	labelText *canvas.Text
	minText   *canvas.Text
	maxText   *canvas.Text

	frameMu sync.Mutex
	frame   image.Image

	size    fyne.Size
	minsize fyne.Size
}

func New(cfg *widgets.GaugeConfig, opts ...Option) (*ArcGauge, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sched == nil {
		o.sched = newFyneScheduler()
	}

	gcfg, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}

	a := &ArcGauge{
		cfg:     cfg,
		gcfg:    gcfg,
		minsize: fyne.NewSize(100, 100),
	}
	a.ExtendBaseWidget(a)
	if cfg.MinSize.Width > 0 && cfg.MinSize.Height > 0 {
		a.minsize = cfg.MinSize
	}

	px := int(gcfg.Size)
	a.dc = gg.NewContext(px, px)
	a.frame = image.NewNRGBA(image.Rect(0, 0, px, px))
	a.raster = canvas.NewImageFromImage(a.frame)
	a.raster.FillMode = canvas.ImageFillContain
	a.raster.ScaleMode = canvas.ImageScaleSmooth

	fg := theme.Color(theme.ColorNameForeground)
	a.valueText = &canvas.Text{Color: fg, TextSize: gcfg.CenterFontSize, Alignment: fyne.TextAlignCenter}
	a.labelText = &canvas.Text{Text: gcfg.Label, Color: fg, TextSize: gcfg.LabelFontSize, Alignment: fyne.TextAlignCenter}
	a.minText = &canvas.Text{Color: fg, TextSize: gcfg.LabelFontSize}
	a.maxText = &canvas.Text{Color: fg, TextSize: gcfg.LabelFontSize}
	a.setCaptionAlignment()

	a.engine, err = gauge.New(gcfg, a.dc, o.sched,
		gauge.WithValue(o.value),
		gauge.WithFrameHook(a.presentFrame),
	)
	if err != nil {
		return nil, fmt.Errorf("arc gauge %q: %w", cfg.Title, err)
	}
	a.updateText()
	return a, nil
}

// presentFrame runs after each painted frame with the engine's driver locked.
func (a *ArcGauge) presentFrame() {
	img := a.dc.Image()
	a.frameMu.Lock()
	a.frame = img
	a.frameMu.Unlock()
	fyne.Do(func() {
		a.raster.Image = img
		a.raster.Refresh()
	})
}

func (a *ArcGauge) updateText() {
	cfg := a.engine.Config()
	value := a.engine.DisplayText()
	min := gauge.FormatValue(cfg.Min, cfg.Decimals)
	max := gauge.FormatValue(cfg.Max, cfg.Decimals)
	fyne.Do(func() {
		a.valueText.Text = value
		a.minText.Text = min
		a.maxText.Text = max
		a.valueText.Refresh()
		a.minText.Refresh()
		a.maxText.Refresh()
	})
}

// setCaptionAlignment pins min/max to the track ends on full and semi
// gauges and centres them under the ends of an arch.
func (a *ArcGauge) setCaptionAlignment() {
	switch a.gcfg.Shape {
	case geometry.ShapeFull, geometry.ShapeSemi:
		a.minText.Alignment = fyne.TextAlignLeading
		a.maxText.Alignment = fyne.TextAlignTrailing
	default:
		a.minText.Alignment = fyne.TextAlignCenter
		a.maxText.Alignment = fyne.TextAlignCenter
	}
}

// captionLine is the height of the caption line box relative to the gauge
// size. Captions are centred vertically in it.
func captionLine(shape geometry.Shape) float32 {
	switch shape {
	case geometry.ShapeFull:
		return 0.2
	case geometry.ShapeSemi:
		return 1.3
	case geometry.ShapeArch:
		return 1.7
	}
	return 0.1
}

// SetValue is safe to call from any goroutine.
func (a *ArcGauge) SetValue(value float64) {
	a.engine.SetValue(value)
	a.updateText()
}

func (a *ArcGauge) SetRange(min, max float64) error {
	if err := a.engine.SetRange(min, max); err != nil {
		return err
	}
	a.updateText()
	return nil
}

func (a *ArcGauge) SetForeground(fg colors.Foreground) error {
	return a.engine.SetForeground(fg)
}

func (a *ArcGauge) Value() float64 { return a.engine.Value() }

func (a *ArcGauge) Engine() *gauge.Gauge { return a.engine }

func (a *ArcGauge) GetConfig() *widgets.GaugeConfig { return a.cfg }

// Image returns the last painted frame. Safe to call from any goroutine.
func (a *ArcGauge) Image() image.Image {
	a.frameMu.Lock()
	defer a.frameMu.Unlock()
	return a.frame
}

// Close stops the animation. The widget keeps showing an empty track.
func (a *ArcGauge) Close() {
	a.engine.Close()
}

func (a *ArcGauge) MinSize() fyne.Size { return a.minsize }

func (a *ArcGauge) CreateRenderer() fyne.WidgetRenderer {
	return &arcRenderer{
		ArcGauge: a,
		objects:  []fyne.CanvasObject{a.raster, a.minText, a.maxText, a.labelText, a.valueText},
	}
}

type arcRenderer struct {
	*ArcGauge
	objects []fyne.CanvasObject
}

func (r *arcRenderer) Layout(space fyne.Size) {
	if r.size == space {
		return
	}
	r.size = space

	side := fyne.Min(space.Width, space.Height)
	scale := side / float32(r.gcfg.Size)
	topleft := fyne.NewPos((space.Width-side)*common.OneHalf, (space.Height-side)*common.OneHalf)
	middle := topleft.AddXY(side*common.OneHalf, side*common.OneHalf)

	r.raster.Move(topleft)
	r.raster.Resize(fyne.NewSize(side, side))

	r.valueText.TextSize = r.gcfg.CenterFontSize * scale
	r.labelText.TextSize = r.gcfg.LabelFontSize * scale
	valueH := r.valueText.MinSize().Height
	labelH := r.labelText.MinSize().Height

	valueY := middle.Y - valueH*common.OneHalf
	var labelY float32
	switch r.cfg.TextPosition {
	case widgets.TextAtTop:
		labelY = valueY - labelH
	case widgets.TextAtCenter:
		labelY = middle.Y - labelH*common.OneHalf
		valueY = labelY + labelH
	default:
		labelY = valueY + valueH
	}
	r.valueText.Move(fyne.NewPos(topleft.X, valueY))
	r.valueText.Resize(fyne.NewSize(side, valueH))
	r.labelText.Move(fyne.NewPos(topleft.X, labelY))
	r.labelText.Resize(fyne.NewSize(side, labelH))

	r.minText.TextSize = r.gcfg.LabelFontSize * scale
	r.maxText.TextSize = r.gcfg.LabelFontSize * scale
	captionH := r.minText.MinSize().Height
	captionY := topleft.Y + side*captionLine(r.gcfg.Shape)*common.OneHalf - captionH*common.OneHalf
	half := fyne.NewSize(side*common.OneHalf, captionH)
	r.minText.Move(fyne.NewPos(topleft.X, captionY))
	r.minText.Resize(half)
	r.maxText.Move(fyne.NewPos(middle.X, captionY))
	r.maxText.Resize(half)
}

func (r *arcRenderer) MinSize() fyne.Size {
	return r.minsize
}

func (r *arcRenderer) Refresh() {
	for _, o := range r.objects {
		o.Refresh()
	}
}

func (r *arcRenderer) Destroy() {}

func (r *arcRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}
